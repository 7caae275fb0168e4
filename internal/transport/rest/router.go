// Package rest exposes the clinic API over JSON HTTP: patient and doctor
// CRUD, the raw appointment store contract, and the scheduling workflow with
// its conflict override decisions.
package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"aihc/backend/internal/observability/metrics"
)

type Config struct {
	Log          *slog.Logger
	Patients     patientsService
	Doctors      doctorsService
	Appointments schedulingService
	Auth         sessionService

	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler

	// Login attempts are throttled per client IP.
	LoginRateLimitRPS   float64
	LoginRateLimitBurst int
}

func NewRouter(cfg Config) http.Handler {
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}

	h := &handlers{
		log:          log.With(slog.String("component", "rest")),
		patients:     cfg.Patients,
		doctors:      cfg.Doctors,
		appointments: cfg.Appointments,
		auth:         cfg.Auth,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(h.log))
	if cfg.HTTPMetrics != nil {
		r.Use(requestMetrics(cfg.HTTPMetrics))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	loginLimiter := newRateLimiter(cfg.LoginRateLimitRPS, cfg.LoginRateLimitBurst)

	r.Route("/api", func(api chi.Router) {
		api.Group(func(open chi.Router) {
			open.Use(rateLimit(loginLimiter))
			open.Post("/login", h.login)
		})

		api.Group(func(api chi.Router) {
			// Everything past login requires a session once a credential
			// is configured.
			if h.auth != nil && h.auth.Enabled() {
				api.Use(requireSession(h.auth))
			}

			api.Route("/patients", func(r chi.Router) {
				r.Get("/", h.listPatients)
				r.Post("/", h.createPatient)
				r.Get("/{id}", h.getPatient)
				r.Put("/{id}", h.updatePatient)
				r.Delete("/{id}", h.deletePatient)
			})

			api.Route("/doctors", func(r chi.Router) {
				r.Get("/", h.listDoctors)
				r.Post("/", h.createDoctor)
				r.Get("/{id}", h.getDoctor)
				r.Put("/{id}", h.updateDoctor)
				r.Delete("/{id}", h.deleteDoctor)
			})

			api.Route("/appointments", func(r chi.Router) {
				r.Get("/", h.listAppointments)
				r.Post("/", h.createAppointment)
				r.Get("/{id}", h.getAppointment)
				r.Put("/{id}", h.updateAppointment)
				r.Delete("/{id}", h.deleteAppointment)
			})

			api.Route("/schedule", func(r chi.Router) {
				r.Get("/slots", h.listSlots)
				r.Get("/availability", h.availability)
				r.Get("/today", h.today)
				r.Post("/appointments", h.submitAppointment)
				r.Post("/overrides/{token}/confirm", h.confirmOverride)
				r.Post("/overrides/{token}/dismiss", h.dismissOverride)
			})
		})
	})

	return r
}
