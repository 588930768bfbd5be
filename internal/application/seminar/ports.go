package seminar

import (
	"context"
	"time"

	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/domain"
)

type Clock interface {
	Now() time.Time
}

// Policy holds the installation-wide knobs the engine consumes as plain
// values. ShowVacanciesThreshold is display-only and never feeds admission.
type Policy struct {
	GlobalUnregistrationDeadlineDays int
	SkipCollisionCheck               bool
	ShowVacanciesThreshold           int
}

// ListFilter narrows the public seminar listing. PageSize is clamped by the
// use case before it reaches the repo.
type ListFilter struct {
	Language  string
	EventType string
	From      *time.Time
	To        *time.Time
	PageSize  int
}

type EventRepo interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	Attendance(ctx context.Context, eventID string) (domain.AttendanceCounts, error)

	// ListUpcoming pages non-canceled seminars by (begin_date, id) keyset.
	ListUpcoming(ctx context.Context, f ListFilter, hasCursor bool, afterBegin time.Time, afterID string) ([]*domain.Event, error)

	// WithTx runs fn inside one transaction. Admission and unregistration
	// acquire the per-event attendance row FOR UPDATE through TxRepo, which
	// serializes the read-check-write sequence per event.
	WithTx(ctx context.Context, fn func(tx TxRepo) error) error
}

type TxRepo interface {
	GetEventForUpdate(ctx context.Context, id string) (*domain.Event, error)
	UpdateEvent(ctx context.Context, e *domain.Event) error

	AttendanceForUpdate(ctx context.Context, eventID string) (domain.AttendanceCounts, error)
	SaveAttendance(ctx context.Context, eventID string, c domain.AttendanceCounts) error

	CreateRegistration(ctx context.Context, r *domain.Registration) error
	UpdateRegistration(ctx context.Context, r *domain.Registration) error

	// OldestQueued returns the longest-waiting active queue registration with
	// at most maxSeats seats, or NotFound when nobody fits.
	OldestQueued(ctx context.Context, eventID string, maxSeats int) (*domain.Registration, error)

	InsertOutbox(ctx context.Context, m OutboxMessage) error
}

type RegistrationRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Registration, error)
	GetActiveByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Registration, error)
}

// BookingsProvider yields the time windows of events the user already holds
// an active regular registration for. Input to collision detection.
type BookingsProvider interface {
	BookingsFor(ctx context.Context, userID string) ([]domain.TimeWindow, error)
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, routingKey string, payload any) error
}

type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, val any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type OutboxMessage struct {
	MessageID  string
	RoutingKey string
	Body       []byte
	CreatedAt  time.Time
}
