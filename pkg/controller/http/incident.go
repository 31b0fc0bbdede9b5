package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/minesafe-lab/minesafe/pkg/domain/interfaces"
	"github.com/minesafe-lab/minesafe/pkg/domain/types"
	"github.com/minesafe-lab/minesafe/pkg/usecase"
)

type createIncidentRequest struct {
	Type              string   `json:"type"`
	Severity          string   `json:"severity"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Section           string   `json:"section"`
	Level             string   `json:"level"`
	ReportedBy        string   `json:"reported_by"`
	ReporterName      string   `json:"reporter_name"`
	InjuryCount       int      `json:"injury_count"`
	WitnessCount      int      `json:"witness_count"`
	EquipmentInvolved []string `json:"equipment_involved"`
}

func (s *Server) createIncident(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createIncidentRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	incident, err := s.uc.Incident.Create(ctx, usecase.CreateIncidentInput{
		Type:              types.IncidentType(req.Type),
		Severity:          types.Severity(req.Severity),
		Title:             req.Title,
		Description:       req.Description,
		Section:           req.Section,
		Level:             req.Level,
		ReportedBy:        types.ActorID(req.ReportedBy),
		ReporterName:      req.ReporterName,
		InjuryCount:       req.InjuryCount,
		WitnessCount:      req.WitnessCount,
		EquipmentInvolved: req.EquipmentInvolved,
	})
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, toIncidentResponse(incident))
}

func (s *Server) listIncidents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	var opts []interfaces.ListIncidentOption
	if v := q.Get("status"); v != "" {
		status, err := types.ParseIncidentStatus(v)
		if err != nil {
			handleError(ctx, w, goerr.Wrap(usecase.ErrInvalidInput, err.Error()))
			return
		}
		opts = append(opts, interfaces.WithIncidentStatus(status))
	}
	if v := q.Get("severity"); v != "" {
		severity, err := types.ParseSeverity(v)
		if err != nil {
			handleError(ctx, w, goerr.Wrap(usecase.ErrInvalidInput, err.Error()))
			return
		}
		opts = append(opts, interfaces.WithIncidentSeverity(severity))
	}
	if v := q.Get("section"); v != "" {
		opts = append(opts, interfaces.WithIncidentSection(v))
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			handleError(ctx, w, goerr.Wrap(usecase.ErrInvalidInput, "invalid limit"))
			return
		}
		opts = append(opts, interfaces.WithIncidentLimit(limit))
	}
	if v := q.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			handleError(ctx, w, goerr.Wrap(usecase.ErrInvalidInput, "invalid offset"))
			return
		}
		opts = append(opts, interfaces.WithIncidentOffset(offset))
	}

	incidents, err := s.uc.Incident.List(ctx, opts...)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]any{
		"incidents": toIncidentResponses(incidents),
	})
}

func (s *Server) getIncident(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	incident, err := s.uc.Incident.Get(ctx, types.IncidentID(chi.URLParam(r, "id")))
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toIncidentResponse(incident))
}

type updateIncidentStatusRequest struct {
	Status   string `json:"status"`
	Assignee string `json:"assignee"`
}

func (s *Server) updateIncidentStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req updateIncidentStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	incident, err := s.uc.Incident.UpdateStatus(ctx,
		types.IncidentID(chi.URLParam(r, "id")),
		types.IncidentStatus(req.Status),
		types.ActorID(req.Assignee),
	)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toIncidentResponse(incident))
}

func (s *Server) reopenIncident(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req updateIncidentStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	incident, err := s.uc.Incident.Reopen(ctx,
		types.IncidentID(chi.URLParam(r, "id")),
		types.ActorID(req.Assignee),
	)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toIncidentResponse(incident))
}
