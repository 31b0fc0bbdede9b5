package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/minesafe-lab/minesafe/pkg/domain/interfaces"
	"github.com/minesafe-lab/minesafe/pkg/domain/model"
	"github.com/minesafe-lab/minesafe/pkg/domain/types"
	"github.com/minesafe-lab/minesafe/pkg/usecase"
)

type createChecklistRequest struct {
	Title    string    `json:"title"`
	Category string    `json:"category"`
	Section  string    `json:"section"`
	Shift    string    `json:"shift"`
	DueDate  time.Time `json:"due_date"`
	Items    []struct {
		Description   string `json:"description"`
		RequiresPhoto bool   `json:"requires_photo"`
	} `json:"items"`
	CreatedBy string `json:"created_by"`
}

func (s *Server) createChecklist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createChecklistRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	items := make([]usecase.ChecklistItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = usecase.ChecklistItemInput{
			Description:   item.Description,
			RequiresPhoto: item.RequiresPhoto,
		}
	}

	checklist, err := s.uc.Checklist.Create(ctx, usecase.CreateChecklistInput{
		Title:     req.Title,
		Category:  req.Category,
		Section:   req.Section,
		Shift:     req.Shift,
		DueDate:   req.DueDate,
		Items:     items,
		CreatedBy: types.ActorID(req.CreatedBy),
	})
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, toChecklistResponse(checklist))
}

func (s *Server) listChecklists(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	var opts []interfaces.ListChecklistOption
	if values, ok := q["status"]; ok {
		statuses := make([]types.ChecklistStatus, 0, len(values))
		for _, v := range values {
			status := types.ChecklistStatus(v)
			if !status.IsValid() {
				handleError(ctx, w, goerr.Wrap(usecase.ErrInvalidInput, "invalid checklist status",
					goerr.V("status", v)))
				return
			}
			statuses = append(statuses, status)
		}
		opts = append(opts, interfaces.WithChecklistStatuses(statuses...))
	}
	if v := q.Get("section"); v != "" {
		opts = append(opts, interfaces.WithChecklistSection(v))
	}
	if v := q.Get("shift"); v != "" {
		opts = append(opts, interfaces.WithChecklistShift(v))
	}

	checklists, err := s.uc.Checklist.List(ctx, opts...)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]any{
		"checklists": toChecklistResponses(checklists),
	})
}

func (s *Server) getChecklist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	checklist, err := s.uc.Checklist.Get(ctx, types.ChecklistID(chi.URLParam(r, "id")))
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toChecklistResponse(checklist))
}

type updateChecklistItemRequest struct {
	IsCompleted *bool   `json:"is_completed"`
	Notes       *string `json:"notes"`
	Actor       string  `json:"actor"`
}

func (s *Server) updateChecklistItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req updateChecklistItemRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	checklist, err := s.uc.Checklist.ApplyItemUpdate(ctx,
		types.ChecklistID(chi.URLParam(r, "id")),
		types.ChecklistItemID(chi.URLParam(r, "itemID")),
		model.ItemPatch{
			IsCompleted: req.IsCompleted,
			Notes:       req.Notes,
		},
		types.ActorID(req.Actor),
	)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toChecklistResponse(checklist))
}

func (s *Server) runOverdueSweep(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := s.uc.Checklist.RunOverdueSweep(ctx)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]any{
		"scanned":  result.Scanned,
		"marked":   result.MarkedCount,
		"alert_id": result.AlertID,
	})
}
