package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestErr(t *testing.T) {
	t.Run("maps_domain_error_to_correct_status", func(t *testing.T) {
		tests := []struct {
			name       string
			err        error
			wantStatus int
			wantCode   string
		}{
			{
				name:       "seminar_not_found",
				err:        domain.ErrNotFound("event not found"),
				wantStatus: http.StatusNotFound,
				wantCode:   "not_found",
			},
			{
				name:       "invalid_seats",
				err:        domain.ErrValidation("seats must be at least 1"),
				wantStatus: http.StatusBadRequest,
				wantCode:   "validation_error",
			},
			{
				name:       "not_the_organizer",
				err:        domain.ErrForbidden("not allowed"),
				wantStatus: http.StatusForbidden,
				wantCode:   "forbidden",
			},
			{
				name:       "double_cancel",
				err:        domain.ErrInvalidState("event already canceled"),
				wantStatus: http.StatusConflict,
				wantCode:   "invalid_state",
			},
			{
				name:       "deadline_without_begin_date",
				err:        domain.ErrMissingBeginDate("event has no begin date"),
				wantStatus: http.StatusBadRequest,
				wantCode:   "missing_begin_date",
			},
			{
				name:       "generic_error",
				err:        errors.New("db crash"),
				wantStatus: http.StatusInternalServerError,
				wantCode:   "internal_error",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rr := httptest.NewRecorder()
				req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
				Err(rr, req, tt.err)

				assert.Equal(t, tt.wantStatus, rr.Code)

				var body ErrorBody
				err := json.Unmarshal(rr.Body.Bytes(), &body)
				assert.NoError(t, err)
				assert.Equal(t, tt.wantCode, body.Error.Code)
			})
		}
	})

	t.Run("carries_validation_meta_and_request_id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
		req.Header.Set("X-Request-Id", "req_42")

		Err(rr, req, domain.ErrValidationMeta("bad time range", map[string]string{"field": "from"}))

		var body ErrorBody
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "from", body.Error.Meta["field"])
		assert.Equal(t, "req_42", body.Error.RequestID)
	})

	t.Run("hides_internal_error_details", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)

		Err(rr, req, errors.New("pq: connection reset"))

		var body ErrorBody
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "internal error", body.Error.Message)
		assert.NotContains(t, rr.Body.String(), "pq:")
	})
}

func TestData(t *testing.T) {
	t.Run("wraps_payload_in_data_envelope", func(t *testing.T) {
		rr := httptest.NewRecorder()
		payload := map[string]string{"id": "evt_123"}

		Data(rr, http.StatusOK, payload)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))

		var env Envelope
		err := json.Unmarshal(rr.Body.Bytes(), &env)
		assert.NoError(t, err)

		dataMap := env.Data.(map[string]any)
		assert.Equal(t, "evt_123", dataMap["id"])
	})
}
