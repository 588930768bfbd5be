package seminar

import (
	"context"
	"strings"
	"time"

	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/domain"
)

type Service struct {
	repo     EventRepo
	regs     RegistrationRepo
	bookings BookingsProvider
	pub      EventPublisher
	cache    Cache
	clock    Clock

	policy     Policy
	ttlStats   time.Duration
	ttlDetails time.Duration
}

func New(
	repo EventRepo,
	regs RegistrationRepo,
	bookings BookingsProvider,
	clock Clock,
	pub EventPublisher,
	cache Cache,
	policy Policy,
	ttlStats time.Duration,
	ttlDetails time.Duration,
) *Service {
	if ttlStats == 0 {
		ttlStats = 15 * time.Second
	}
	if ttlDetails == 0 {
		ttlDetails = 5 * time.Minute
	}
	return &Service{
		repo:       repo,
		regs:       regs,
		bookings:   bookings,
		pub:        pub,
		cache:      cache,
		clock:      clock,
		policy:     policy,
		ttlStats:   ttlStats,
		ttlDetails: ttlDetails,
	}
}

func isAdmin(role string) bool {
	return strings.ToLower(strings.TrimSpace(role)) == "admin"
}

// canManage: admins manage everything, organizers manage their own events.
func canManage(actorID, actorRole string, organizerIDs []string) bool {
	if isAdmin(actorRole) {
		return true
	}
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return false
	}
	for _, id := range organizerIDs {
		if id == actorID {
			return true
		}
	}
	return false
}

// resolveEffective flattens topic fallbacks for date records. The loaded
// topic comes from the same repository; NotFound propagates unchanged.
func (s *Service) resolveEffective(ctx context.Context, e *domain.Event) (*domain.EffectiveEvent, error) {
	if e.RecordType != domain.RecordDate {
		return domain.Resolve(e, nil)
	}
	topic, err := s.repo.GetByID(ctx, e.TopicID)
	if err != nil {
		return nil, err
	}
	return domain.Resolve(e, topic)
}
