package seminar

import (
	"context"
	"time"

	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/domain"
)

type CreateCmd struct {
	ActorID   string
	ActorRole string

	RecordType domain.RecordType
	TopicID    string
	Title      string
	Language   string
	EventType  string

	BeginDate             time.Time
	EndDate               time.Time
	RegistrationBeginDate time.Time
	RegistrationDeadline  time.Time

	NeedsRegistration    bool
	AttendeesMax         int
	HasRegistrationQueue bool

	AllowRegistrationForEventsWithoutDate bool
	AllowRegistrationForStartedEvents     bool
	SkipCollisionCheck                    bool

	Speakers []domain.Speaker
	PlaceIDs []string
}

func (s *Service) Create(ctx context.Context, cmd CreateCmd) (*domain.Event, error) {
	if cmd.ActorID == "" {
		return nil, domain.ErrForbidden("authentication required")
	}

	now := s.clock.Now()
	e, err := domain.NewSeminar(cmd.RecordType, cmd.TopicID, cmd.Title, cmd.BeginDate, cmd.EndDate, cmd.AttendeesMax, now)
	if err != nil {
		return nil, err
	}

	e.Language = domain.NormalizeLanguage(cmd.Language)
	e.EventType = cmd.EventType
	if !cmd.RegistrationBeginDate.IsZero() {
		e.RegistrationBeginDate = cmd.RegistrationBeginDate.UTC()
	}
	if !cmd.RegistrationDeadline.IsZero() {
		e.RegistrationDeadline = cmd.RegistrationDeadline.UTC()
	}
	e.NeedsRegistration = cmd.NeedsRegistration
	e.HasRegistrationQueue = cmd.HasRegistrationQueue
	e.AllowRegistrationForEventsWithoutDate = cmd.AllowRegistrationForEventsWithoutDate
	e.AllowRegistrationForStartedEvents = cmd.AllowRegistrationForStartedEvents
	e.SkipCollisionCheck = cmd.SkipCollisionCheck
	e.Speakers = cmd.Speakers
	e.PlaceIDs = cmd.PlaceIDs

	// the creator is the first organizer; notifications need at least one
	e.OrganizerIDs = []string{cmd.ActorID}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
