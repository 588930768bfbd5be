package seminar

import (
	"context"

	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/domain"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"
)

// Confirm moves a planned event to confirmed. The status change itself is the
// engine's business; telling attendees about it is the notification layer's,
// so the domain event goes out best-effort.
func (s *Service) Confirm(ctx context.Context, eventID, actorID, actorRole string) (*domain.Event, error) {
	ev, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if !canManage(actorID, actorRole, ev.OrganizerIDs) {
		return nil, domain.ErrForbidden("not allowed")
	}

	oldStatus := ev.Status
	now := s.clock.Now().UTC()

	if err := ev.Confirm(now); err != nil {
		return nil, err
	}

	err = s.repo.WithTx(ctx, func(tx TxRepo) error {
		return tx.UpdateEvent(ctx, ev)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, ev.ID)

	if s.pub != nil {
		env := DomainEventEnvelope[StatusChangedPayload]{
			Version:    EventVersion,
			Producer:   EventProducer,
			MessageID:  uuid.NewString(),
			TraceID:    TraceIDFromContext(ctx),
			OccurredAt: now,
			Payload: StatusChangedPayload{
				EventID:      ev.ID,
				OldStatus:    string(oldStatus),
				NewStatus:    string(ev.Status),
				BeginDate:    ev.BeginDate,
				OrganizerIDs: ev.OrganizerIDs,
			},
		}
		if err := s.pub.PublishEvent(ctx, "seminar.status_changed", env); err != nil {
			zlog.Error().
				Err(err).
				Str("rk", "seminar.status_changed").
				Str("event_id", ev.ID).
				Msg("publish domain event failed")
		}
	}

	return ev, nil
}
