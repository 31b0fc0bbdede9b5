package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/minesafe-lab/minesafe/pkg/domain/types"
	"github.com/minesafe-lab/minesafe/pkg/usecase"
)

type createAlertRequest struct {
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	Priority       string     `json:"priority"`
	TargetSections []string   `json:"target_sections"`
	TargetRoles    []string   `json:"target_roles"`
	CreatedBy      string     `json:"created_by"`
	CreatorName    string     `json:"creator_name"`
	ExpiresAt      *time.Time `json:"expires_at"`
}

func (s *Server) createAlert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createAlertRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	alert, err := s.uc.Alert.Create(ctx, usecase.CreateAlertInput{
		Title:          req.Title,
		Message:        req.Message,
		Priority:       types.AlertPriority(req.Priority),
		TargetSections: req.TargetSections,
		TargetRoles:    req.TargetRoles,
		CreatedBy:      types.ActorID(req.CreatedBy),
		CreatorName:    req.CreatorName,
		ExpiresAt:      req.ExpiresAt,
	})
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, toAlertResponse(alert))
}

func (s *Server) createEmergencyAlert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createAlertRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	alert, err := s.uc.Alert.CreateEmergency(ctx, req.Title, req.Message,
		types.ActorID(req.CreatedBy), req.CreatorName)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, toAlertResponse(alert))
}

func (s *Server) listActiveAlerts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	alerts, err := s.uc.Alert.ListActive(ctx, usecase.ActiveAlertFilter{
		Priority: types.AlertPriority(q.Get("priority")),
		Section:  q.Get("section"),
		Role:     q.Get("role"),
	})
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]any{
		"alerts": toAlertResponses(alerts),
	})
}

type alertActorRequest struct {
	Actor string `json:"actor"`
}

func (s *Server) acknowledgeAlert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req alertActorRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	alert, err := s.uc.Alert.Acknowledge(ctx,
		types.AlertID(chi.URLParam(r, "id")), types.ActorID(req.Actor))
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toAlertResponse(alert))
}

func (s *Server) resolveAlert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req alertActorRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	alert, err := s.uc.Alert.Resolve(ctx,
		types.AlertID(chi.URLParam(r, "id")), types.ActorID(req.Actor))
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toAlertResponse(alert))
}
