package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/domain"
)

type Repo struct {
	db *sql.DB
}

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// zero time.Time maps to NULL, open-ended semantics stay in the domain
func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

func timeOrZero(nt sql.NullTime) time.Time {
	if nt.Valid {
		return nt.Time.UTC()
	}
	return time.Time{}
}

func jsonText(v any) (string, error) {
	b, err := json.Marshal(v)
	return string(b), err
}

func (r *Repo) Create(ctx context.Context, e *domain.Event) error {
	args, err := eventArgs(e)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, insertEventSQL, args...)
	return err
}

func eventArgs(e *domain.Event) ([]any, error) {
	files, err := jsonText(e.AttachedFileIDs)
	if err != nil {
		return nil, err
	}
	organizers, err := jsonText(e.OrganizerIDs)
	if err != nil {
		return nil, err
	}
	speakers, err := jsonText(e.Speakers)
	if err != nil {
		return nil, err
	}
	places, err := jsonText(e.PlaceIDs)
	if err != nil {
		return nil, err
	}
	requirements, err := jsonText(e.RequirementTopicIDs)
	if err != nil {
		return nil, err
	}

	return []any{
		e.ID, string(e.RecordType), e.TopicID, e.Title, e.Language, e.EventType, e.PriceRegular,
		files, nullTime(e.BeginDate), nullTime(e.EndDate),
		nullTime(e.RegistrationBeginDate), nullTime(e.RegistrationDeadline), nullTime(e.UnregistrationDeadline),
		e.AllowRegistrationForEventsWithoutDate, e.AllowRegistrationForStartedEvents,
		e.NeedsRegistration, e.AttendeesMax, e.HasRegistrationQueue,
		e.AllowUnregistrationWithEmptyWaitingList, e.SkipCollisionCheck,
		string(e.Status), e.ConfirmedAt, e.CanceledAt,
		organizers, speakers, places, requirements,
		e.CreatedAt, e.UpdatedAt,
	}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	var e domain.Event
	var recordType, status string
	var begin, end, regBegin, regDeadline, unregDeadline sql.NullTime
	var files, organizers, speakers, places, requirements string

	err := row.Scan(
		&e.ID, &recordType, &e.TopicID, &e.Title, &e.Language, &e.EventType, &e.PriceRegular,
		&files, &begin, &end,
		&regBegin, &regDeadline, &unregDeadline,
		&e.AllowRegistrationForEventsWithoutDate, &e.AllowRegistrationForStartedEvents,
		&e.NeedsRegistration, &e.AttendeesMax, &e.HasRegistrationQueue,
		&e.AllowUnregistrationWithEmptyWaitingList, &e.SkipCollisionCheck,
		&status, &e.ConfirmedAt, &e.CanceledAt,
		&organizers, &speakers, &places, &requirements,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("event not found")
	}
	if err != nil {
		return nil, err
	}

	e.RecordType = domain.RecordType(recordType)
	e.Status = domain.EventStatus(status)
	if !e.Status.Valid() {
		return nil, domain.ErrInvalidState("invalid status in db")
	}
	e.BeginDate = timeOrZero(begin)
	e.EndDate = timeOrZero(end)
	e.RegistrationBeginDate = timeOrZero(regBegin)
	e.RegistrationDeadline = timeOrZero(regDeadline)
	e.UnregistrationDeadline = timeOrZero(unregDeadline)

	if err := decodeJSONColumn(files, &e.AttachedFileIDs, "attached_file_ids", e.ID); err != nil {
		return nil, err
	}
	if err := decodeJSONColumn(organizers, &e.OrganizerIDs, "organizer_ids", e.ID); err != nil {
		return nil, err
	}
	if err := decodeJSONColumn(speakers, &e.Speakers, "speakers", e.ID); err != nil {
		return nil, err
	}
	if err := decodeJSONColumn(places, &e.PlaceIDs, "place_ids", e.ID); err != nil {
		return nil, err
	}
	if err := decodeJSONColumn(requirements, &e.RequirementTopicIDs, "requirement_topic_ids", e.ID); err != nil {
		return nil, err
	}

	return &e, nil
}

func decodeJSONColumn(raw string, dest any, col, eventID string) error {
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return fmt.Errorf("decode %s for event %s: %w", col, eventID, err)
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return scanEvent(r.db.QueryRowContext(ctx, getEventSQL, id))
}

// Attendance returns the seat tally; events without registrations yet have
// no attendance row and read as all zeros.
func (r *Repo) Attendance(ctx context.Context, eventID string) (domain.AttendanceCounts, error) {
	var c domain.AttendanceCounts
	err := r.db.QueryRowContext(ctx, getAttendanceSQL, eventID).
		Scan(&c.RegularSeats, &c.QueueSeats, &c.OfflineSeats, &c.PaidSeats)
	if err == sql.ErrNoRows {
		return domain.AttendanceCounts{}, nil
	}
	if err != nil {
		return domain.AttendanceCounts{}, err
	}
	return c, nil
}
