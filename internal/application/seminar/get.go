package seminar

import (
	"context"

	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

// EventView is the public, topic-resolved read model. Exact vacancy numbers
// are only reported while they are scarce (below the display threshold);
// above it EnoughVacancies is set instead. Purely presentational, admission
// never consults it.
type EventView struct {
	Effective *domain.EffectiveEvent

	RegistrationPossible bool
	ClosureReason        domain.RegistrationClosure

	Unlimited       bool
	Vacancies       *int
	EnoughVacancies bool
}

func (s *Service) GetEvent(ctx context.Context, eventID string) (*EventView, error) {
	if s.cache != nil {
		var cached EventView
		hit, err := s.cache.Get(ctx, cacheKeyEventDetails(eventID), &cached)
		if err != nil {
			zlog.Warn().Err(err).Str("event_id", eventID).Msg("details cache read failed")
		} else if hit {
			return &cached, nil
		}
	}

	ev, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	eff, err := s.resolveEffective(ctx, ev)
	if err != nil {
		return nil, err
	}

	counts, err := s.repo.Attendance(ctx, eventID)
	if err != nil {
		return nil, err
	}
	ledger := domain.NewLedger(eff, counts)

	now := s.clock.Now().UTC()
	gate := domain.RegistrationGate(eff, now)

	view := &EventView{
		Effective:            eff,
		RegistrationPossible: gate == domain.ClosureNone && eff.NeedsRegistration && (!ledger.IsFull() || ledger.CanAdmitToQueue()),
		ClosureReason:        gate,
		Unlimited:            ledger.HasUnlimitedVacancies(),
	}

	if !view.Unlimited {
		v := ledger.VacanciesRegular()
		if s.policy.ShowVacanciesThreshold > 0 && v >= s.policy.ShowVacanciesThreshold {
			view.EnoughVacancies = true
		} else {
			view.Vacancies = &v
		}
	} else {
		view.EnoughVacancies = true
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyEventDetails(eventID), view, s.ttlDetails); err != nil {
			zlog.Warn().Err(err).Str("event_id", eventID).Msg("details cache write failed")
		}
	}

	zlog.Debug().Str("event_id", eventID).Msg("event view resolved")
	return view, nil
}
