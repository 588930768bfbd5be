package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// RecordType distinguishes self-contained events from topic templates and
// their scheduled dates. A date record inherits shared fields from its topic
// unless it overrides them locally (see Resolve).
type RecordType string

const (
	RecordComplete RecordType = "complete"
	RecordTopic    RecordType = "topic"
	RecordDate     RecordType = "date"
)

func (t RecordType) Valid() bool {
	return t == RecordComplete || t == RecordTopic || t == RecordDate
}

type Speaker struct {
	ID   string
	Name string

	// Minimum notice, in days before the event begins, this speaker requires
	// to cancel without penalty. 0 = no declared period.
	CancellationPeriodDays int
}

type Event struct {
	ID         string
	RecordType RecordType
	TopicID    string // set on date records only

	Title           string
	Language        string
	EventType       string
	PriceRegular    int64 // cents
	AttachedFileIDs []string

	BeginDate              time.Time // zero = no date yet
	EndDate                time.Time // zero = open-ended
	RegistrationBeginDate  time.Time // zero = registration not gated
	RegistrationDeadline   time.Time // zero = open until the event begins
	UnregistrationDeadline time.Time // zero = fall back to the global policy

	AllowRegistrationForEventsWithoutDate bool
	AllowRegistrationForStartedEvents     bool

	NeedsRegistration    bool
	AttendeesMax         int // 0 = unlimited
	HasRegistrationQueue bool

	AllowUnregistrationWithEmptyWaitingList bool
	SkipCollisionCheck                      bool

	Status      EventStatus
	ConfirmedAt *time.Time
	CanceledAt  *time.Time

	OrganizerIDs        []string
	Speakers            []Speaker
	PlaceIDs            []string
	RequirementTopicIDs []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewSeminar(recordType RecordType, topicID, title string, begin, end time.Time, attendeesMax int, now time.Time) (*Event, error) {
	title = strings.TrimSpace(title)
	topicID = strings.TrimSpace(topicID)

	if !recordType.Valid() {
		return nil, ErrValidation("record_type must be one of: complete, topic, date")
	}
	if recordType == RecordDate && topicID == "" {
		return nil, ErrValidation("topic_id is required for date records")
	}
	if recordType != RecordDate && topicID != "" {
		return nil, ErrValidation("topic_id is only allowed on date records")
	}
	if title == "" && recordType != RecordDate {
		return nil, ErrValidation("title is required")
	}
	if len(title) > 255 {
		return nil, ErrValidation("title must be <= 255 chars")
	}
	if !end.IsZero() && begin.IsZero() {
		return nil, ErrValidation("end_date requires a begin_date")
	}
	if !end.IsZero() && !end.After(begin) {
		return nil, ErrValidation("end_date must be after begin_date")
	}
	if attendeesMax < 0 {
		return nil, ErrValidation("attendees_max must be >= 0 (0 means unlimited)")
	}

	e := &Event{
		ID:           uuid.NewString(),
		RecordType:   recordType,
		TopicID:      topicID,
		Title:        title,
		AttendeesMax: attendeesMax,
		Status:       StatusPlanned,
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}
	if !begin.IsZero() {
		e.BeginDate = begin.UTC()
	}
	if !end.IsZero() {
		e.EndDate = end.UTC()
	}
	return e, nil
}

func (e *Event) HasBeginDate() bool { return !e.BeginDate.IsZero() }
func (e *Event) HasEndDate() bool   { return !e.EndDate.IsZero() }

func (e *Event) Window() TimeWindow {
	return TimeWindow{Begin: e.BeginDate, End: e.EndDate}
}

func (e *Event) HasStarted(now time.Time) bool {
	return e.HasBeginDate() && !now.Before(e.BeginDate)
}

// HasUnlimitedVacancies: capacity 0 means unlimited regardless of the queue
// flag, but only meaningful for events that take registrations at all.
func (e *Event) HasUnlimitedVacancies() bool {
	return e.NeedsRegistration && e.AttendeesMax == 0
}

func (e *Event) Confirm(now time.Time) error {
	if !e.Status.CanTransitionTo(StatusConfirmed) {
		return ErrInvalidState("only a planned event can be confirmed")
	}
	t := now.UTC()
	e.Status = StatusConfirmed
	e.ConfirmedAt = &t
	e.UpdatedAt = t
	return nil
}

func (e *Event) Cancel(now time.Time) error {
	if e.Status == StatusCanceled {
		return ErrInvalidState("event already canceled")
	}
	if !e.Status.CanTransitionTo(StatusCanceled) {
		return ErrInvalidState("only a planned event can be canceled")
	}
	t := now.UTC()
	e.Status = StatusCanceled
	e.CanceledAt = &t
	e.UpdatedAt = t
	return nil
}

// MaxCancellationPeriodDays is the longest notice period any linked speaker
// declared; it drives the organizer-facing cancellation deadline.
func (e *Event) MaxCancellationPeriodDays() int {
	max := 0
	for _, s := range e.Speakers {
		if s.CancellationPeriodDays > max {
			max = s.CancellationPeriodDays
		}
	}
	return max
}
