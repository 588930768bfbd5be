package seminar

import (
	"context"

	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

// RecordPayment marks a registration as paid and feeds the paid-seats tally.
// Organizers and admins record payments; attendees may record their own.
func (s *Service) RecordPayment(ctx context.Context, registrationID, actorID, actorRole string) (*domain.Registration, error) {
	reg, err := s.regs.GetByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}

	ev, err := s.repo.GetByID(ctx, reg.EventID)
	if err != nil {
		return nil, err
	}
	if reg.UserID != actorID && !canManage(actorID, actorRole, ev.OrganizerIDs) {
		return nil, domain.ErrForbidden("not allowed")
	}

	now := s.clock.Now().UTC()

	err = s.repo.WithTx(ctx, func(tx TxRepo) error {
		counts, err := tx.AttendanceForUpdate(ctx, reg.EventID)
		if err != nil {
			return err
		}
		eff, err := s.resolveEffective(ctx, ev)
		if err != nil {
			return err
		}
		ledger := domain.NewLedger(eff, counts)

		if err := reg.MarkPaid(now); err != nil {
			return err
		}
		if err := ledger.RecordPayment(reg.ID, reg.Seats); err != nil {
			return err
		}
		if err := tx.UpdateRegistration(ctx, reg); err != nil {
			return err
		}
		return tx.SaveAttendance(ctx, reg.EventID, ledger.Snapshot())
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, reg.EventID)

	zlog.Info().
		Str("registration_id", reg.ID).
		Str("event_id", reg.EventID).
		Int("seats", reg.Seats).
		Msg("payment recorded")

	return reg, nil
}
