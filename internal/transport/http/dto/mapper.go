package dto

import (
	"time"

	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/application/seminar"
	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/domain"
)

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}

func speakers(in []domain.Speaker) []SpeakerReq {
	if len(in) == 0 {
		return nil
	}
	out := make([]SpeakerReq, 0, len(in))
	for _, sp := range in {
		out = append(out, SpeakerReq{
			ID:                     sp.ID,
			Name:                   sp.Name,
			CancellationPeriodDays: sp.CancellationPeriodDays,
		})
	}
	return out
}

// ToSeminarResp maps a bare event without derived view fields. Listings use
// this; the detail endpoint goes through ToSeminarViewResp.
func ToSeminarResp(e *domain.Event) SeminarResp {
	return SeminarResp{
		ID:         e.ID,
		RecordType: string(e.RecordType),
		TopicID:    e.TopicID,

		Title:        e.Title,
		Language:     e.Language,
		EventType:    e.EventType,
		PriceRegular: e.PriceRegular,

		BeginDate:             timePtr(e.BeginDate),
		EndDate:               timePtr(e.EndDate),
		RegistrationBeginDate: timePtr(e.RegistrationBeginDate),
		RegistrationDeadline:  timePtr(e.RegistrationDeadline),

		NeedsRegistration:    e.NeedsRegistration,
		AttendeesMax:         e.AttendeesMax,
		HasRegistrationQueue: e.HasRegistrationQueue,

		Status:      string(e.Status),
		ConfirmedAt: e.ConfirmedAt,
		CanceledAt:  e.CanceledAt,

		Speakers: speakers(e.Speakers),
		PlaceIDs: e.PlaceIDs,

		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToSeminarViewResp(v *seminar.EventView) SeminarResp {
	resp := ToSeminarResp(&v.Effective.Event)

	resp.RegistrationPossible = v.RegistrationPossible
	resp.ClosureReason = string(v.ClosureReason)
	resp.Unlimited = v.Unlimited
	resp.Vacancies = v.Vacancies
	resp.EnoughVacancies = v.EnoughVacancies
	return resp
}

func ToDecisionResp(d domain.Decision) DecisionResp {
	return DecisionResp{
		Outcome:        string(d.Kind),
		ClosureReason:  string(d.ClosureReason),
		RegistrationID: d.RegistrationID,
		Seats:          d.Seats,
	}
}

func ToListResp(res *seminar.ListResult) ListResp {
	items := make([]SeminarResp, 0, len(res.Items))
	for _, e := range res.Items {
		items = append(items, ToSeminarResp(e))
	}
	return ListResp{Items: items, NextCursor: res.NextCursor}
}
