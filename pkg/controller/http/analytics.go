package http

import (
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minesafe-lab/minesafe/pkg/domain/model"
	"github.com/minesafe-lab/minesafe/pkg/usecase"
)

// windowFromQuery resolves the from/to query parameters (RFC3339), falling
// back to the trailing 30 days
func windowFromQuery(r *http.Request, now time.Time) (model.TimeWindow, error) {
	window := model.TrailingWindow(now, 30*24*time.Hour)

	if v := r.URL.Query().Get("from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return model.TimeWindow{}, goerr.Wrap(usecase.ErrInvalidInput, "invalid from timestamp",
				goerr.V("from", v))
		}
		window.From = from
	}
	if v := r.URL.Query().Get("to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return model.TimeWindow{}, goerr.Wrap(usecase.ErrInvalidInput, "invalid to timestamp",
				goerr.V("to", v))
		}
		window.To = to
	}
	if window.To.Before(window.From) {
		return model.TimeWindow{}, goerr.Wrap(usecase.ErrInvalidInput, "window end precedes start")
	}
	return window, nil
}

func (s *Server) incidentStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	window, err := windowFromQuery(r, time.Now())
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	stats, err := s.uc.Analytics.IncidentStats(ctx, window)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, stats)
}

func (s *Server) checklistStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	window, err := windowFromQuery(r, time.Now())
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	stats, err := s.uc.Analytics.ChecklistStats(ctx, window)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, stats)
}

func (s *Server) safetyScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	score, err := s.uc.Analytics.SafetyScore(ctx)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, score)
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dashboard, err := s.uc.Analytics.Dashboard(ctx)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, dashboard)
}
