package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Registration is one attendee's (or proxy's) claim on seats at an event.
// Offline registrations are entered by an organizer and have no user id.
// The engine counts AttendeeData, it never interprets it.
type Registration struct {
	ID      string
	EventID string
	UserID  string // empty for offline registrations

	Seats   int
	OnQueue bool

	PaymentDate *time.Time
	CanceledAt  *time.Time

	AttendeeData map[string]string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewRegistration(eventID, userID string, seats int, onQueue bool, attendeeData map[string]string, now time.Time) (*Registration, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, ErrValidation("event_id is required")
	}
	if seats < 1 {
		return nil, ErrValidation("seats must be >= 1")
	}
	return &Registration{
		ID:           uuid.NewString(),
		EventID:      eventID,
		UserID:       strings.TrimSpace(userID),
		Seats:        seats,
		OnQueue:      onQueue,
		AttendeeData: attendeeData,
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}, nil
}

func (r *Registration) IsOffline() bool  { return r.UserID == "" }
func (r *Registration) IsPaid() bool     { return r.PaymentDate != nil }
func (r *Registration) IsCanceled() bool { return r.CanceledAt != nil }

func (r *Registration) MarkPaid(now time.Time) error {
	if r.IsCanceled() {
		return ErrInvalidState("canceled registration cannot be paid")
	}
	if r.IsPaid() {
		return ErrInvalidState("registration already paid")
	}
	t := now.UTC()
	r.PaymentDate = &t
	r.UpdatedAt = t
	return nil
}

// MoveToRegular promotes a waiting-list registration into the regular list,
// typically after a seat was freed by an unregistration.
func (r *Registration) MoveToRegular(now time.Time) error {
	if r.IsCanceled() {
		return ErrInvalidState("canceled registration cannot be promoted")
	}
	if !r.OnQueue {
		return ErrInvalidState("registration is not on the waiting list")
	}
	r.OnQueue = false
	r.UpdatedAt = now.UTC()
	return nil
}

func (r *Registration) Cancel(now time.Time) error {
	if r.IsCanceled() {
		return ErrInvalidState("registration already canceled")
	}
	t := now.UTC()
	r.CanceledAt = &t
	r.UpdatedAt = t
	return nil
}
