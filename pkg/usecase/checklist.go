package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minesafe-lab/minesafe/pkg/domain/interfaces"
	"github.com/minesafe-lab/minesafe/pkg/domain/model"
	"github.com/minesafe-lab/minesafe/pkg/domain/types"
	"github.com/minesafe-lab/minesafe/pkg/utils/logging"
)

type ChecklistUseCase struct {
	repo     interfaces.Repository
	alerts   *AlertUseCase
	clock    func() time.Time
	location *time.Location
}

func NewChecklistUseCase(repo interfaces.Repository, alerts *AlertUseCase, clock func() time.Time, loc *time.Location) *ChecklistUseCase {
	return &ChecklistUseCase{
		repo:     repo,
		alerts:   alerts,
		clock:    clock,
		location: loc,
	}
}

// ChecklistItemInput is one line of a new checklist
type ChecklistItemInput struct {
	Description   string
	RequiresPhoto bool
}

// CreateChecklistInput is the caller-supplied part of a new checklist
type CreateChecklistInput struct {
	Title     string
	Category  string
	Section   string
	Shift     string
	DueDate   time.Time
	Items     []ChecklistItemInput
	CreatedBy types.ActorID
}

// Create persists a new checklist. The initial status is derived the same
// way as every later update, so a checklist created already past its due
// date starts out overdue rather than pending.
func (uc *ChecklistUseCase) Create(ctx context.Context, input CreateChecklistInput) (*model.Checklist, error) {
	if input.Title == "" {
		return nil, goerr.Wrap(ErrInvalidInput, "checklist title is required")
	}
	if len(input.Items) == 0 {
		return nil, goerr.Wrap(ErrInvalidInput, "checklist needs at least one item")
	}
	for _, item := range input.Items {
		if item.Description == "" {
			return nil, goerr.Wrap(ErrInvalidInput, "item description is required")
		}
	}

	now := uc.clock()
	items := make([]model.ChecklistItem, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, model.ChecklistItem{
			ID:            types.NewChecklistItemID(),
			Description:   item.Description,
			RequiresPhoto: item.RequiresPhoto,
		})
	}

	checklist := &model.Checklist{
		ID:        types.NewChecklistID(),
		Title:     input.Title,
		Category:  input.Category,
		Section:   input.Section,
		Shift:     input.Shift,
		Items:     items,
		DueDate:   input.DueDate,
		CreatedBy: input.CreatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	checklist.Refresh(now)

	created, err := uc.repo.Checklist().Create(ctx, checklist)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create checklist")
	}
	return created, nil
}

// Get retrieves a single checklist
func (uc *ChecklistUseCase) Get(ctx context.Context, id types.ChecklistID) (*model.Checklist, error) {
	checklist, err := uc.repo.Checklist().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrChecklistNotFound, "checklist not found", goerr.V(ChecklistIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get checklist", goerr.V(ChecklistIDKey, id))
	}
	return checklist, nil
}

// List retrieves checklists, newest first, with optional filters
func (uc *ChecklistUseCase) List(ctx context.Context, opts ...interfaces.ListChecklistOption) ([]*model.Checklist, error) {
	checklists, err := uc.repo.Checklist().List(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list checklists")
	}
	return checklists, nil
}

// ApplyItemUpdate patches a single item and recomputes the checklist status
// from the full item state. Checking the final open item stamps completion;
// unchecking an item on a completed list clears it again. The read, patch
// and write are not transactional; concurrent updates to different items of
// the same list follow last-writer-wins on the whole document.
func (uc *ChecklistUseCase) ApplyItemUpdate(ctx context.Context, checklistID types.ChecklistID, itemID types.ChecklistItemID, patch model.ItemPatch, actor types.ActorID) (*model.Checklist, error) {
	checklist, err := uc.repo.Checklist().Get(ctx, checklistID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrChecklistNotFound, "checklist not found",
				goerr.V(ChecklistIDKey, checklistID))
		}
		return nil, goerr.Wrap(err, "failed to get checklist",
			goerr.V(ChecklistIDKey, checklistID))
	}

	item := checklist.Item(itemID)
	if item == nil {
		return nil, goerr.Wrap(ErrItemNotFound, "checklist item not found",
			goerr.V(ChecklistIDKey, checklistID),
			goerr.V(ItemIDKey, itemID),
		)
	}

	now := uc.clock()
	completedBefore := checklist.Status == types.ChecklistStatusCompleted

	if patch.IsCompleted != nil && *patch.IsCompleted != item.IsCompleted {
		item.IsCompleted = *patch.IsCompleted
		if item.IsCompleted {
			t := now
			item.CompletedAt = &t
			item.CompletedBy = actor
		} else {
			item.CompletedAt = nil
			item.CompletedBy = ""
		}
	}
	if patch.Notes != nil {
		item.Notes = *patch.Notes
	}

	checklist.Refresh(now)
	checklist.UpdatedAt = now

	updated, err := uc.repo.Checklist().Update(ctx, checklist)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update checklist",
			goerr.V(ChecklistIDKey, checklistID))
	}

	if !completedBefore && updated.Status == types.ChecklistStatusCompleted {
		date := model.DateKey(now, uc.location)
		if err := uc.repo.DailyStat().Increment(ctx, date, model.DailyStatDelta{ChecklistsCompleted: 1}); err != nil {
			logging.From(ctx).Warn("failed to increment checklist counter",
				"date", date, "error", err)
		}
	}

	return updated, nil
}
