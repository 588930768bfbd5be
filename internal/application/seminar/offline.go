package seminar

import (
	"context"

	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

// RecordOfflineAdmission books seats an organizer collected outside the
// system (phone, paper list). It bypasses the deadline, collision and
// capacity rules entirely and may push the regular count above
// attendees_max; that oversell is the accepted escape hatch for manual
// bookkeeping, not a bug.
func (s *Service) RecordOfflineAdmission(ctx context.Context, eventID string, seats int, actorID, actorRole string) (domain.AttendanceCounts, error) {
	if seats < 1 {
		return domain.AttendanceCounts{}, domain.ErrValidation("seats must be >= 1")
	}

	ev, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return domain.AttendanceCounts{}, err
	}
	if !canManage(actorID, actorRole, ev.OrganizerIDs) {
		return domain.AttendanceCounts{}, domain.ErrForbidden("only an organizer or admin can record offline registrations")
	}

	eff, err := s.resolveEffective(ctx, ev)
	if err != nil {
		return domain.AttendanceCounts{}, err
	}

	var out domain.AttendanceCounts
	err = s.repo.WithTx(ctx, func(tx TxRepo) error {
		counts, err := tx.AttendanceForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		ledger := domain.NewLedger(eff, counts)
		if err := ledger.RecordOffline(seats); err != nil {
			return err
		}
		out = ledger.Snapshot()
		return tx.SaveAttendance(ctx, eventID, out)
	})
	if err != nil {
		return domain.AttendanceCounts{}, err
	}

	s.invalidate(ctx, eventID)

	zlog.Info().
		Str("event_id", eventID).
		Int("seats", seats).
		Int("offline_total", out.OfflineSeats).
		Msg("offline registration recorded")

	return out, nil
}
