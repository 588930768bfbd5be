package seminar

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/domain"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"
)

type RegisterCmd struct {
	EventID string
	UserID  string
	Seats   int

	// AttendeeData is stored verbatim: the engine counts seats, it never
	// interprets names or food/lodging selections.
	AttendeeData map[string]string
}

// errAdmissionFull aborts the admission transaction without side effects when
// neither the regular list nor the queue can take the request.
var errAdmissionFull = errors.New("admission: event full")

// Register is the admission engine entry point. The checks run in a fixed
// order: canceled status, temporal gate, needs-registration, schedule
// collision, regular capacity, queue. Collision comes before capacity so a
// user is never told "no vacancies" for an event they could not attend
// anyway; the regular list is filled before the queue.
//
// On a rejected outcome the returned registration is nil and nothing was
// written. Capacity checks and the ledger mutation run inside one
// transaction holding the per-event attendance row, so concurrent admissions
// for the same event cannot oversell attendees_max.
func (s *Service) Register(ctx context.Context, cmd RegisterCmd) (domain.Decision, *domain.Registration, error) {
	if cmd.Seats < 1 {
		return domain.Decision{}, nil, domain.ErrValidation("seats must be >= 1")
	}
	if cmd.UserID == "" {
		return domain.Decision{}, nil, domain.ErrValidation("user_id is required")
	}

	now := s.clock.Now().UTC()

	ev, err := s.repo.GetByID(ctx, cmd.EventID)
	if err != nil {
		return domain.Decision{}, nil, err
	}
	eff, err := s.resolveEffective(ctx, ev)
	if err != nil {
		return domain.Decision{}, nil, err
	}

	// 1) canceled events take no registrations
	if eff.Status == domain.StatusCanceled {
		return domain.Rejected(domain.RejectedEventCanceled), nil, nil
	}

	// 2) temporal gate
	if gate := domain.RegistrationGate(eff, now); gate != domain.ClosureNone {
		return domain.RejectedClosed(gate), nil, nil
	}

	// 3) events without registration have nothing to admit to
	if !eff.NeedsRegistration {
		return domain.Rejected(domain.RejectedRegistrationNotRequired), nil, nil
	}

	if existing, err := s.regs.GetActiveByEventAndUser(ctx, cmd.EventID, cmd.UserID); err == nil && existing != nil {
		return domain.Decision{}, nil, domain.ErrInvalidState("user already registered for this event")
	} else if err != nil {
		var ae *domain.AppError
		if !errors.As(err, &ae) || ae.Code != domain.CodeNotFound {
			return domain.Decision{}, nil, err
		}
	}

	// 4) schedule collision, unless skipped per event or globally
	if domain.IsCollisionCheckActive(eff, s.policy.SkipCollisionCheck) {
		booked, err := s.bookings.BookingsFor(ctx, cmd.UserID)
		if err != nil {
			return domain.Decision{}, nil, err
		}
		if domain.Collides(eff.Window(), booked) {
			return domain.Rejected(domain.RejectedScheduleConflict), nil, nil
		}
	}

	// 5-7) capacity decision and ledger mutation, serialized per event
	var decision domain.Decision
	var reg *domain.Registration

	err = s.repo.WithTx(ctx, func(tx TxRepo) error {
		counts, err := tx.AttendanceForUpdate(ctx, cmd.EventID)
		if err != nil {
			return err
		}
		ledger := domain.NewLedger(eff, counts)

		r, err := domain.NewRegistration(cmd.EventID, cmd.UserID, cmd.Seats, false, cmd.AttendeeData, now)
		if err != nil {
			return err
		}

		switch {
		case ledger.CanAdmitToRegular(cmd.Seats):
			if err := ledger.AdmitRegular(r.ID, cmd.Seats); err != nil {
				return err
			}
			decision = domain.Admitted(domain.AdmittedRegular, r.ID, cmd.Seats)
		case ledger.CanAdmitToQueue():
			r.OnQueue = true
			if err := ledger.AdmitQueued(r.ID, cmd.Seats); err != nil {
				return err
			}
			decision = domain.Admitted(domain.AdmittedQueued, r.ID, cmd.Seats)
		default:
			return errAdmissionFull
		}

		if err := tx.CreateRegistration(ctx, r); err != nil {
			return err
		}
		if err := tx.SaveAttendance(ctx, cmd.EventID, ledger.Snapshot()); err != nil {
			return err
		}

		messageID := uuid.NewString()
		env := DomainEventEnvelope[AdmittedPayload]{
			Version:    EventVersion,
			Producer:   EventProducer,
			MessageID:  messageID,
			TraceID:    TraceIDFromContext(ctx),
			OccurredAt: now,
			Payload: AdmittedPayload{
				EventID:        cmd.EventID,
				RegistrationID: r.ID,
				UserID:         cmd.UserID,
				Seats:          cmd.Seats,
				OnQueue:        r.OnQueue,
			},
		}
		body, err := json.Marshal(env)
		if err != nil {
			return err
		}
		if err := tx.InsertOutbox(ctx, OutboxMessage{
			MessageID:  messageID,
			RoutingKey: "seminar.admitted",
			Body:       body,
			CreatedAt:  now,
		}); err != nil {
			return err
		}

		reg = r
		return nil
	})
	if errors.Is(err, errAdmissionFull) {
		return domain.Rejected(domain.RejectedNoVacancies), nil, nil
	}
	if err != nil {
		return domain.Decision{}, nil, err
	}

	s.invalidate(ctx, cmd.EventID)

	zlog.Info().
		Str("event_id", cmd.EventID).
		Str("registration_id", reg.ID).
		Str("outcome", string(decision.Kind)).
		Int("seats", cmd.Seats).
		Msg("registration admitted")

	return decision, reg, nil
}

// invalidate drops the cached stats and detail view after a counter or
// status mutation.
func (s *Service) invalidate(ctx context.Context, eventID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKeyStats(eventID), cacheKeyEventDetails(eventID)); err != nil {
		zlog.Warn().Err(err).Str("event_id", eventID).Msg("cache invalidate failed")
	}
}
