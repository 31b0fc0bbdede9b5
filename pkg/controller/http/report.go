package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/minesafe-lab/minesafe/pkg/domain/model"
	"github.com/minesafe-lab/minesafe/pkg/usecase"
)

func parseReportKind(s string) (model.ReportKind, error) {
	switch model.ReportKind(s) {
	case model.ReportKindDaily:
		return model.ReportKindDaily, nil
	case model.ReportKindWeekly:
		return model.ReportKindWeekly, nil
	default:
		return "", goerr.Wrap(usecase.ErrInvalidInput, "invalid report kind", goerr.V("kind", s))
	}
}

type generateReportRequest struct {
	// Date in YYYY-MM-DD; the report day for daily, the week-ending day
	// for weekly. Empty means the current day.
	Date string `json:"date"`
}

func (s *Server) resolveReportDate(req generateReportRequest) (time.Time, error) {
	if req.Date == "" {
		return time.Now(), nil
	}
	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return time.Time{}, goerr.Wrap(usecase.ErrInvalidInput, "invalid date",
			goerr.V("date", req.Date))
	}
	return day, nil
}

func (s *Server) generateDailyReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req generateReportRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	day, err := s.resolveReportDate(req)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	report, err := s.uc.Report.Daily(ctx, day)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, toReportResponse(report))
}

func (s *Server) generateWeeklySummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req generateReportRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	weekEnding, err := s.resolveReportDate(req)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	report, err := s.uc.Report.Weekly(ctx, weekEnding)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, toReportResponse(report))
}

func (s *Server) getReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	kind, err := parseReportKind(chi.URLParam(r, "kind"))
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	report, err := s.uc.Report.Get(ctx, kind, chi.URLParam(r, "label"))
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toReportResponse(report))
}

func (s *Server) listReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	kind, err := parseReportKind(chi.URLParam(r, "kind"))
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 0 {
			handleError(ctx, w, goerr.Wrap(usecase.ErrInvalidInput, "invalid limit"))
			return
		}
	}

	reports, err := s.uc.Report.List(ctx, kind, limit)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	out := make([]reportResponse, len(reports))
	for i, report := range reports {
		out[i] = toReportResponse(report)
	}
	respondJSON(ctx, w, http.StatusOK, map[string]any{"reports": out})
}
