package seminar

import (
	"context"

	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/domain"
	zlog "github.com/rs/zerolog/log"
)

// AttendanceStats is the organizer-facing aggregate derived from the ledger.
type AttendanceStats struct {
	EventID string `json:"event_id"`

	RegularSeats int `json:"regular_seats"`
	QueueSeats   int `json:"queue_seats"`
	OfflineSeats int `json:"offline_seats"`
	PaidSeats    int `json:"paid_seats"`
	UnpaidSeats  int `json:"unpaid_seats"`

	Unlimited bool `json:"unlimited"`
	Vacancies int  `json:"vacancies"` // 0 when unlimited
	IsFull    bool `json:"is_full"`
}

func (s *Service) GetStats(ctx context.Context, eventID, actorID, actorRole string) (AttendanceStats, error) {
	ev, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return AttendanceStats{}, err
	}
	if !canManage(actorID, actorRole, ev.OrganizerIDs) {
		return AttendanceStats{}, domain.ErrForbidden("only an organizer or admin can read attendance statistics")
	}

	if s.cache != nil {
		var cached AttendanceStats
		hit, err := s.cache.Get(ctx, cacheKeyStats(eventID), &cached)
		if err != nil {
			zlog.Warn().Err(err).Str("event_id", eventID).Msg("stats cache read failed")
		} else if hit {
			return cached, nil
		}
	}

	eff, err := s.resolveEffective(ctx, ev)
	if err != nil {
		return AttendanceStats{}, err
	}
	counts, err := s.repo.Attendance(ctx, eventID)
	if err != nil {
		return AttendanceStats{}, err
	}

	ledger := domain.NewLedger(eff, counts)
	online := counts.RegularSeats + counts.QueueSeats
	unpaid := online - counts.PaidSeats
	if unpaid < 0 {
		unpaid = 0
	}

	stats := AttendanceStats{
		EventID:      eventID,
		RegularSeats: ledger.RegularCount(),
		QueueSeats:   ledger.QueueCount(),
		OfflineSeats: counts.OfflineSeats,
		PaidSeats:    counts.PaidSeats,
		UnpaidSeats:  unpaid,
		Unlimited:    ledger.HasUnlimitedVacancies(),
		Vacancies:    ledger.VacanciesRegular(),
		IsFull:       ledger.IsFull(),
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyStats(eventID), stats, s.ttlStats); err != nil {
			zlog.Warn().Err(err).Str("event_id", eventID).Msg("stats cache write failed")
		}
	}
	return stats, nil
}
