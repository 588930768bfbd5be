package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/application/seminar"
	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/transport/http/dto"
	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/transport/http/middleware"
	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/transport/http/response"
	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/transport/http/validate"
)

type SeminarsHandler struct {
	svc *seminar.Service
}

func NewSeminarsHandler(svc *seminar.Service) *SeminarsHandler {
	return &SeminarsHandler{svc: svc}
}

func eventID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "event_id")
	if !validate.IsUUID(id) {
		return "", domain.ErrValidationMeta("invalid path param", map[string]string{
			"event_id": "must be uuid",
		})
	}
	return id, nil
}

// Public
func (h *SeminarsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	var fromPtr, toPtr *time.Time
	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.Err(w, r, domain.ErrValidationMeta("invalid query param", map[string]string{
				"from": "must be RFC3339 timestamp",
			}))
			return
		}
		tt := t.UTC()
		fromPtr = &tt
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.Err(w, r, domain.ErrValidationMeta("invalid query param", map[string]string{
				"to": "must be RFC3339 timestamp",
			}))
			return
		}
		tt := t.UTC()
		toPtr = &tt
	}

	filter := seminar.ListFilter{
		Language:  q.Get("language"),
		EventType: q.Get("event_type"),
		From:      fromPtr,
		To:        toPtr,
		PageSize:  pageSize,
	}

	res, err := h.svc.List(r.Context(), filter, q.Get("cursor"))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToListResp(res))
}

func (h *SeminarsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := eventID(r)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	view, err := h.svc.GetEvent(r.Context(), id)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToSeminarViewResp(view))
}

// Organizer
func (h *SeminarsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSeminarReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, domain.ErrValidationMeta("invalid json body", map[string]string{
			"body": "malformed JSON or invalid fields",
		}))
		return
	}

	deref := func(t *time.Time) time.Time {
		if t == nil {
			return time.Time{}
		}
		return t.UTC()
	}
	speakers := make([]domain.Speaker, 0, len(req.Speakers))
	for _, sp := range req.Speakers {
		speakers = append(speakers, domain.Speaker{
			ID:                     sp.ID,
			Name:                   sp.Name,
			CancellationPeriodDays: sp.CancellationPeriodDays,
		})
	}

	cmd := seminar.CreateCmd{
		ActorID:   middleware.UserID(r),
		ActorRole: middleware.Role(r),

		RecordType: domain.RecordType(req.RecordType),
		TopicID:    req.TopicID,
		Title:      req.Title,
		Language:   req.Language,
		EventType:  req.EventType,

		BeginDate:             deref(req.BeginDate),
		EndDate:               deref(req.EndDate),
		RegistrationBeginDate: deref(req.RegistrationBeginDate),
		RegistrationDeadline:  deref(req.RegistrationDeadline),

		NeedsRegistration:    req.NeedsRegistration,
		AttendeesMax:         req.AttendeesMax,
		HasRegistrationQueue: req.HasRegistrationQueue,

		AllowRegistrationForEventsWithoutDate: req.AllowRegistrationWithoutDate,
		AllowRegistrationForStartedEvents:     req.AllowRegistrationForStartedEvents,
		SkipCollisionCheck:                    req.SkipCollisionCheck,

		Speakers: speakers,
		PlaceIDs: req.PlaceIDs,
	}
	ev, err := h.svc.Create(r.Context(), cmd)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.ToSeminarResp(ev))
}

func (h *SeminarsHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, err := eventID(r)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	ev, err := h.svc.Confirm(r.Context(), id, middleware.UserID(r), middleware.Role(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToSeminarResp(ev))
}

func (h *SeminarsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := eventID(r)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	var req dto.CancelSeminarReq
	if r.ContentLength > 0 {
		if err := validate.DecodeJSON(r, &req); err != nil {
			response.Err(w, r, domain.ErrValidationMeta("invalid json body", map[string]string{
				"body": "malformed JSON or invalid fields",
			}))
			return
		}
	}
	ev, err := h.svc.Cancel(r.Context(), id, middleware.UserID(r), middleware.Role(r), req.Reason)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToSeminarResp(ev))
}

// Attendee
func (h *SeminarsHandler) Register(w http.ResponseWriter, r *http.Request) {
	id, err := eventID(r)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	var req dto.RegisterReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, domain.ErrValidationMeta("invalid json body", map[string]string{
			"body": "malformed JSON or invalid fields",
		}))
		return
	}
	if req.Seats == 0 {
		req.Seats = 1
	}

	decision, _, err := h.svc.Register(r.Context(), seminar.RegisterCmd{
		EventID:      id,
		UserID:       middleware.UserID(r),
		Seats:        req.Seats,
		AttendeeData: req.AttendeeData,
	})
	if err != nil {
		response.Err(w, r, err)
		return
	}

	status := http.StatusOK
	if decision.Admitted() {
		status = http.StatusCreated
	}
	response.Data(w, status, dto.ToDecisionResp(decision))
}

func (h *SeminarsHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	id, err := eventID(r)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	if err := h.svc.Unregister(r.Context(), id, middleware.UserID(r)); err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, map[string]string{"status": "unregistered"})
}

// Organizer bookkeeping
func (h *SeminarsHandler) OfflineAdmission(w http.ResponseWriter, r *http.Request) {
	id, err := eventID(r)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	var req dto.OfflineAdmissionReq
	if err := validate.DecodeJSON(r, &req); err != nil {
		response.Err(w, r, domain.ErrValidationMeta("invalid json body", map[string]string{
			"body": "malformed JSON or invalid fields",
		}))
		return
	}

	counts, err := h.svc.RecordOfflineAdmission(r.Context(), id, req.Seats, middleware.UserID(r), middleware.Role(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, map[string]int{
		"regular_seats": counts.RegularSeats,
		"queue_seats":   counts.QueueSeats,
		"offline_seats": counts.OfflineSeats,
		"paid_seats":    counts.PaidSeats,
	})
}

func (h *SeminarsHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	regID := chi.URLParam(r, "registration_id")
	if !validate.IsUUID(regID) {
		response.Err(w, r, domain.ErrValidationMeta("invalid path param", map[string]string{
			"registration_id": "must be uuid",
		}))
		return
	}

	reg, err := h.svc.RecordPayment(r.Context(), regID, middleware.UserID(r), middleware.Role(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, map[string]any{
		"registration_id": reg.ID,
		"payment_date":    reg.PaymentDate,
	})
}

func (h *SeminarsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, err := eventID(r)
	if err != nil {
		response.Err(w, r, err)
		return
	}
	stats, err := h.svc.GetStats(r.Context(), id, middleware.UserID(r), middleware.Role(r))
	if err != nil {
		response.Err(w, r, err)
		return
	}
	response.Data(w, http.StatusOK, stats)
}
