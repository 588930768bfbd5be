package seminar

import (
	"context"
	"strings"
	"time"
)

const (
	EventVersion  = 1
	EventProducer = "seminar-service"
)

// DomainEventEnvelope is the stable contract for all domain events emitted by
// seminar-service. Consumers should rely on:
// version/producer/message_id/occurred_at + payload.
type DomainEventEnvelope[T any] struct {
	Version    int       `json:"version"`
	Producer   string    `json:"producer"`
	MessageID  string    `json:"message_id"`
	TraceID    string    `json:"trace_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    T         `json:"payload"`
}

// AdmittedPayload is the business payload for routing key: seminar.admitted
type AdmittedPayload struct {
	EventID        string `json:"event_id"`
	RegistrationID string `json:"registration_id"`
	UserID         string `json:"user_id,omitempty"`
	Seats          int    `json:"seats"`
	OnQueue        bool   `json:"on_queue"`
	Offline        bool   `json:"offline,omitempty"`
}

// UnregisteredPayload is the business payload for routing key: seminar.unregistered
type UnregisteredPayload struct {
	EventID        string   `json:"event_id"`
	RegistrationID string   `json:"registration_id"`
	UserID         string   `json:"user_id,omitempty"`
	Seats          int      `json:"seats"`
	WasOnQueue     bool     `json:"was_on_queue"`
	PromotedIDs    []string `json:"promoted_ids,omitempty"`
}

// StatusChangedPayload is the business payload for routing key: seminar.status_changed
type StatusChangedPayload struct {
	EventID      string    `json:"event_id"`
	OldStatus    string    `json:"old_status"`
	NewStatus    string    `json:"new_status"`
	BeginDate    time.Time `json:"begin_date,omitempty"`
	OrganizerIDs []string  `json:"organizer_ids,omitempty"`
	Reason       string    `json:"reason,omitempty"`
}

// ---- trace id plumbing ----
// If the transport layer stores a request id in context, we read it here.
// Kept local to avoid importing transport packages from the application layer.
type ctxKey string

const ctxRequestID ctxKey = "request_id"

// WithRequestID can be called by HTTP middleware to inject request_id into context.
func WithRequestID(ctx context.Context, id string) context.Context {
	id = strings.TrimSpace(id)
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxRequestID, id)
}

// TraceIDFromContext reads request_id if available.
func TraceIDFromContext(ctx context.Context) string {
	if v := ctx.Value(ctxRequestID); v != nil {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
