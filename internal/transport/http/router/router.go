package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/redis/go-redis/v9"

	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/config"
	"github.com/baechuer/real-time-ressys/services/seminar-service/internal/transport/http/handlers"
	authmw "github.com/baechuer/real-time-ressys/services/seminar-service/internal/transport/http/middleware"
)

func New(
	h *handlers.SeminarsHandler,
	auth *authmw.AuthMiddleware,
	z *handlers.HealthHandler,
	rdb *redis.Client,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	r.Use(authmw.RequestID)
	r.Use(authmw.SecurityHeaders)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(authmw.AccessLog)

	if cfg.RLEnabled {
		if rdb == nil {
			r.Use(httprate.LimitByIP(cfg.RLLimit, cfg.RLWindow))
		} else {
			r.Use(httprate.Limit(
				cfg.RLLimit,
				cfg.RLWindow,
				httprate.WithKeyFuncs(httprate.KeyByIP),
			))
		}
	}

	r.Get("/healthz", z.Healthz)

	r.Route("/seminar/v1", func(r chi.Router) {
		r.Get("/seminars", h.List)
		r.Get("/seminars/{event_id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(auth.Require)

			r.Post("/seminars", h.Create)
			r.Post("/seminars/{event_id}/confirm", h.Confirm)
			r.Post("/seminars/{event_id}/cancel", h.Cancel)

			r.Post("/seminars/{event_id}/registrations", h.Register)
			r.Delete("/seminars/{event_id}/registrations", h.Unregister)

			r.Post("/seminars/{event_id}/offline-admissions", h.OfflineAdmission)
			r.Post("/registrations/{registration_id}/payment", h.RecordPayment)
			r.Get("/seminars/{event_id}/stats", h.Stats)
		})
	})

	return r
}
