package seminar

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/domain"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"
)

// Unregister withdraws the user's active registration. It is only possible
// before the effective unregistration deadline (the event's own deadline, or
// the global days-before-begin fallback), and while the waiting list is
// empty only when the event allows dropping out with nobody waiting.
// Freed regular seats are refilled from the waiting list, oldest first.
func (s *Service) Unregister(ctx context.Context, eventID, userID string) error {
	if userID == "" {
		return domain.ErrValidation("user_id is required")
	}

	now := s.clock.Now().UTC()

	ev, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	eff, err := s.resolveEffective(ctx, ev)
	if err != nil {
		return err
	}

	reg, err := s.regs.GetActiveByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return err
	}

	deadline := domain.EffectiveUnregistrationDeadline(eff, s.policy.GlobalUnregistrationDeadlineDays)

	var promoted []string
	err = s.repo.WithTx(ctx, func(tx TxRepo) error {
		counts, err := tx.AttendanceForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		ledger := domain.NewLedger(eff, counts)

		// Queue members may always leave; the deadline and empty-waitlist
		// rules protect regular seats only.
		if !reg.OnQueue && !ledger.IsUnregistrationPossible(now, deadline) {
			return domain.ErrInvalidState("unregistration is not possible for this event anymore")
		}

		if err := reg.Cancel(now); err != nil {
			return err
		}
		if reg.OnQueue {
			if err := ledger.ReleaseQueued(reg.ID, reg.Seats); err != nil {
				return err
			}
		} else {
			if err := ledger.ReleaseRegular(reg.ID, reg.Seats); err != nil {
				return err
			}
		}
		if err := tx.UpdateRegistration(ctx, reg); err != nil {
			return err
		}

		// refill freed regular seats from the waiting list
		if !reg.OnQueue {
			for !ledger.HasUnlimitedVacancies() && ledger.VacanciesRegular() > 0 {
				next, err := tx.OldestQueued(ctx, eventID, ledger.VacanciesRegular())
				if err != nil {
					var ae *domain.AppError
					if errors.As(err, &ae) && ae.Code == domain.CodeNotFound {
						break
					}
					return err
				}
				if err := next.MoveToRegular(now); err != nil {
					return err
				}
				if err := ledger.PromoteQueued(next.ID, next.Seats); err != nil {
					return err
				}
				if err := tx.UpdateRegistration(ctx, next); err != nil {
					return err
				}
				promoted = append(promoted, next.ID)
			}
		}

		if err := tx.SaveAttendance(ctx, eventID, ledger.Snapshot()); err != nil {
			return err
		}

		messageID := uuid.NewString()
		env := DomainEventEnvelope[UnregisteredPayload]{
			Version:    EventVersion,
			Producer:   EventProducer,
			MessageID:  messageID,
			TraceID:    TraceIDFromContext(ctx),
			OccurredAt: now,
			Payload: UnregisteredPayload{
				EventID:        eventID,
				RegistrationID: reg.ID,
				UserID:         userID,
				Seats:          reg.Seats,
				WasOnQueue:     reg.OnQueue,
				PromotedIDs:    promoted,
			},
		}
		body, err := json.Marshal(env)
		if err != nil {
			return err
		}
		return tx.InsertOutbox(ctx, OutboxMessage{
			MessageID:  messageID,
			RoutingKey: "seminar.unregistered",
			Body:       body,
			CreatedAt:  now,
		})
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, eventID)

	zlog.Info().
		Str("event_id", eventID).
		Str("registration_id", reg.ID).
		Int("promoted", len(promoted)).
		Msg("registration withdrawn")

	return nil
}
