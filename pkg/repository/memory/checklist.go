package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minesafe-lab/minesafe/pkg/domain/interfaces"
	"github.com/minesafe-lab/minesafe/pkg/domain/model"
	"github.com/minesafe-lab/minesafe/pkg/domain/types"
)

type checklistRepository struct {
	mu         sync.RWMutex
	checklists map[types.ChecklistID]*model.Checklist
}

func newChecklistRepository() *checklistRepository {
	return &checklistRepository{
		checklists: make(map[types.ChecklistID]*model.Checklist),
	}
}

func (r *checklistRepository) Create(ctx context.Context, checklist *model.Checklist) (*model.Checklist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.checklists[checklist.ID]; exists {
		return nil, goerr.New("checklist already exists", goerr.V("id", checklist.ID))
	}

	created := checklist.Clone()
	r.checklists[created.ID] = created
	return created.Clone(), nil
}

func (r *checklistRepository) Get(ctx context.Context, id types.ChecklistID) (*model.Checklist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	checklist, exists := r.checklists[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "checklist not found", goerr.V("id", id))
	}
	return checklist.Clone(), nil
}

func matchChecklist(cfg interface {
	Statuses() []types.ChecklistStatus
	Section() *string
	Shift() *string
	DueBefore() *time.Time
	Window() *model.TimeWindow
}, checklist *model.Checklist) bool {
	if len(cfg.Statuses()) > 0 && !slices.Contains(cfg.Statuses(), checklist.Status) {
		return false
	}
	if cfg.Section() != nil && checklist.Section != *cfg.Section() {
		return false
	}
	if cfg.Shift() != nil && checklist.Shift != *cfg.Shift() {
		return false
	}
	if cfg.DueBefore() != nil && !checklist.DueDate.Before(*cfg.DueBefore()) {
		return false
	}
	if cfg.Window() != nil && !cfg.Window().Contains(checklist.CreatedAt) {
		return false
	}
	return true
}

func (r *checklistRepository) List(ctx context.Context, opts ...interfaces.ListChecklistOption) ([]*model.Checklist, error) {
	cfg := interfaces.BuildListChecklistConfig(opts...)

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*model.Checklist, 0, len(r.checklists))
	for _, checklist := range r.checklists {
		if matchChecklist(cfg, checklist) {
			matched = append(matched, checklist.Clone())
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if cfg.Limit() > 0 && len(matched) > cfg.Limit() {
		matched = matched[:cfg.Limit()]
	}
	return matched, nil
}

func (r *checklistRepository) Count(ctx context.Context, opts ...interfaces.ListChecklistOption) (int64, error) {
	cfg := interfaces.BuildListChecklistConfig(opts...)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, checklist := range r.checklists {
		if matchChecklist(cfg, checklist) {
			n++
		}
	}
	return n, nil
}

func (r *checklistRepository) Update(ctx context.Context, checklist *model.Checklist) (*model.Checklist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.checklists[checklist.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "checklist not found", goerr.V("id", checklist.ID))
	}

	updated := checklist.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.checklists[updated.ID] = updated
	return updated.Clone(), nil
}

func (r *checklistRepository) Delete(ctx context.Context, id types.ChecklistID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.checklists[id]; !exists {
		return false, nil
	}
	delete(r.checklists, id)
	return true, nil
}

func (r *checklistRepository) BatchUpdateStatus(ctx context.Context, updates []interfaces.ChecklistStatusUpdate) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	updated := 0
	var missing []types.ChecklistID
	for _, u := range updates {
		checklist, exists := r.checklists[u.ID]
		if !exists {
			missing = append(missing, u.ID)
			continue
		}
		checklist.Status = u.Status
		checklist.UpdatedAt = now
		updated++
	}

	if len(missing) > 0 {
		return updated, goerr.Wrap(ErrNotFound, "some checklists were not updated",
			goerr.V("missing", missing), goerr.V("updated", updated))
	}
	return updated, nil
}
