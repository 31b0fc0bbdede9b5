package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/minesafe-lab/minesafe/pkg/domain/model"
	"github.com/minesafe-lab/minesafe/pkg/usecase"
	"github.com/minesafe-lab/minesafe/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
	policy *model.SitePolicy
}

type Options func(*Server)

// WithSitePolicy exposes the site policy on the API so clients can render
// section/shift/role pickers
func WithSitePolicy(policy *model.SitePolicy) Options {
	return func(s *Server) {
		s.policy = policy
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK")) //nolint:errcheck
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/incidents", func(r chi.Router) {
			r.Post("/", s.createIncident)
			r.Get("/", s.listIncidents)
			r.Get("/{id}", s.getIncident)
			r.Put("/{id}/status", s.updateIncidentStatus)
			r.Post("/{id}/reopen", s.reopenIncident)
		})

		r.Route("/checklists", func(r chi.Router) {
			r.Post("/", s.createChecklist)
			r.Get("/", s.listChecklists)
			r.Get("/{id}", s.getChecklist)
			r.Patch("/{id}/items/{itemID}", s.updateChecklistItem)
			r.Post("/sweep", s.runOverdueSweep)
		})

		r.Route("/alerts", func(r chi.Router) {
			r.Post("/", s.createAlert)
			r.Post("/emergency", s.createEmergencyAlert)
			r.Get("/active", s.listActiveAlerts)
			r.Post("/{id}/ack", s.acknowledgeAlert)
			r.Post("/{id}/resolve", s.resolveAlert)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/incidents", s.incidentStats)
			r.Get("/checklists", s.checklistStats)
			r.Get("/score", s.safetyScore)
			r.Get("/dashboard", s.dashboard)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Post("/daily", s.generateDailyReport)
			r.Post("/weekly", s.generateWeeklySummary)
			r.Get("/{kind}", s.listReports)
			r.Get("/{kind}/{label}", s.getReport)
		})

		if s.policy != nil {
			r.Get("/site", s.sitePolicy)
		}
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func (s *Server) sitePolicy(w http.ResponseWriter, r *http.Request) {
	respondJSON(r.Context(), w, http.StatusOK, map[string]any{
		"name":     s.policy.Name,
		"timezone": s.policy.Timezone,
		"sections": s.policy.Sections,
		"shifts":   s.policy.Shifts,
		"roles":    s.policy.Roles,
	})
}
