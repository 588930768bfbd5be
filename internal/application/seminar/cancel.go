package seminar

import (
	"context"
	"encoding/json"

	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/domain"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"
)

// Cancel moves a planned event to canceled. Attendees must reliably learn
// about a cancellation, so the status change and the outbox message commit in
// the same transaction (at-least-once delivery downstream).
//
// CancellationDeadline (speaker notice periods) is advisory for the
// organizer; a cancellation past the deadline still goes through but is
// logged for follow-up.
func (s *Service) Cancel(ctx context.Context, eventID, actorID, actorRole, reason string) (*domain.Event, error) {
	var out *domain.Event

	now := s.clock.Now().UTC()

	err := s.repo.WithTx(ctx, func(tx TxRepo) error {
		ev, err := tx.GetEventForUpdate(ctx, eventID)
		if err != nil {
			return err
		}

		if !canManage(actorID, actorRole, ev.OrganizerIDs) {
			return domain.ErrForbidden("not allowed")
		}

		oldStatus := ev.Status
		if err := ev.Cancel(now); err != nil {
			return err
		}

		if ev.HasBeginDate() {
			eff, err := s.resolveEffective(ctx, ev)
			if err != nil {
				return err
			}
			deadline, err := domain.CancellationDeadline(eff)
			if err != nil {
				return err
			}
			if now.After(deadline) {
				zlog.Warn().
					Str("event_id", ev.ID).
					Time("deadline", deadline).
					Msg("event canceled past the speaker cancellation deadline")
			}
		}

		if err := tx.UpdateEvent(ctx, ev); err != nil {
			return err
		}

		messageID := uuid.NewString()
		env := DomainEventEnvelope[StatusChangedPayload]{
			Version:    EventVersion,
			Producer:   EventProducer,
			MessageID:  messageID,
			TraceID:    TraceIDFromContext(ctx),
			OccurredAt: now,
			Payload: StatusChangedPayload{
				EventID:      ev.ID,
				OldStatus:    string(oldStatus),
				NewStatus:    string(ev.Status),
				BeginDate:    ev.BeginDate,
				OrganizerIDs: ev.OrganizerIDs,
				Reason:       reason,
			},
		}
		body, err := json.Marshal(env)
		if err != nil {
			return err
		}
		if err := tx.InsertOutbox(ctx, OutboxMessage{
			MessageID:  messageID,
			RoutingKey: "seminar.status_changed",
			Body:       body,
			CreatedAt:  now,
		}); err != nil {
			return err
		}

		out = ev
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, out.ID)

	return out, nil
}
