package interfaces

import (
	"context"
	"time"

	"github.com/minesafe-lab/minesafe/pkg/domain/model"
	"github.com/minesafe-lab/minesafe/pkg/domain/types"
)

// ChecklistStatusUpdate is one entry of a batch status overwrite
type ChecklistStatusUpdate struct {
	ID     types.ChecklistID
	Status types.ChecklistStatus
}

// ChecklistRepository defines data access for checklists
type ChecklistRepository interface {
	// Create persists a new checklist with the ID already assigned
	Create(ctx context.Context, checklist *model.Checklist) (*model.Checklist, error)

	// Get retrieves a checklist by ID
	Get(ctx context.Context, id types.ChecklistID) (*model.Checklist, error)

	// List retrieves checklists with optional filtering, newest first
	List(ctx context.Context, opts ...ListChecklistOption) ([]*model.Checklist, error)

	// Count returns the number of checklists matching the filters
	Count(ctx context.Context, opts ...ListChecklistOption) (int64, error)

	// Update overwrites an existing checklist
	Update(ctx context.Context, checklist *model.Checklist) (*model.Checklist, error)

	// Delete removes a checklist by ID. Returns false if it was absent.
	Delete(ctx context.Context, id types.ChecklistID) (bool, error)

	// BatchUpdateStatus applies status overwrites as a best-effort batch.
	// It returns the number of checklists actually updated; a partial
	// failure returns the successful count alongside the error.
	BatchUpdateStatus(ctx context.Context, updates []ChecklistStatusUpdate) (int, error)
}

// ListChecklistOption is a functional option for filtering checklists
type ListChecklistOption func(*listChecklistConfig)

type listChecklistConfig struct {
	statuses  []types.ChecklistStatus
	section   *string
	shift     *string
	dueBefore *time.Time
	window    *model.TimeWindow
	limit     int
}

// WithChecklistStatuses filters checklists whose status is in the given set
func WithChecklistStatuses(statuses ...types.ChecklistStatus) ListChecklistOption {
	return func(c *listChecklistConfig) {
		c.statuses = statuses
	}
}

// WithChecklistSection filters checklists by site section
func WithChecklistSection(section string) ListChecklistOption {
	return func(c *listChecklistConfig) {
		c.section = &section
	}
}

// WithChecklistShift filters checklists by shift
func WithChecklistShift(shift string) ListChecklistOption {
	return func(c *listChecklistConfig) {
		c.shift = &shift
	}
}

// WithChecklistDueBefore filters checklists whose due date is strictly
// before the given instant
func WithChecklistDueBefore(t time.Time) ListChecklistOption {
	return func(c *listChecklistConfig) {
		c.dueBefore = &t
	}
}

// WithChecklistWindow restricts checklists to those created inside the window
func WithChecklistWindow(window model.TimeWindow) ListChecklistOption {
	return func(c *listChecklistConfig) {
		c.window = &window
	}
}

// WithChecklistLimit bounds the number of results
func WithChecklistLimit(limit int) ListChecklistOption {
	return func(c *listChecklistConfig) {
		c.limit = limit
	}
}

// BuildListChecklistConfig builds a listChecklistConfig from options
func BuildListChecklistConfig(opts ...ListChecklistOption) *listChecklistConfig {
	cfg := &listChecklistConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *listChecklistConfig) Statuses() []types.ChecklistStatus { return c.statuses }
func (c *listChecklistConfig) Section() *string                  { return c.section }
func (c *listChecklistConfig) Shift() *string                    { return c.shift }
func (c *listChecklistConfig) DueBefore() *time.Time             { return c.dueBefore }
func (c *listChecklistConfig) Window() *model.TimeWindow         { return c.window }
func (c *listChecklistConfig) Limit() int                        { return c.limit }
