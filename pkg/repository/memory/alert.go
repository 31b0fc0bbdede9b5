package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minesafe-lab/minesafe/pkg/domain/interfaces"
	"github.com/minesafe-lab/minesafe/pkg/domain/model"
	"github.com/minesafe-lab/minesafe/pkg/domain/types"
)

type alertRepository struct {
	mu     sync.RWMutex
	alerts map[types.AlertID]*model.Alert
}

func newAlertRepository() *alertRepository {
	return &alertRepository{
		alerts: make(map[types.AlertID]*model.Alert),
	}
}

func (r *alertRepository) Create(ctx context.Context, alert *model.Alert) (*model.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.alerts[alert.ID]; exists {
		return nil, goerr.New("alert already exists", goerr.V("id", alert.ID))
	}

	created := alert.Clone()
	r.alerts[created.ID] = created
	return created.Clone(), nil
}

func (r *alertRepository) Get(ctx context.Context, id types.AlertID) (*model.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	alert, exists := r.alerts[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "alert not found", goerr.V("id", id))
	}
	return alert.Clone(), nil
}

func (r *alertRepository) List(ctx context.Context, opts ...interfaces.ListAlertOption) ([]*model.Alert, error) {
	cfg := interfaces.BuildListAlertConfig(opts...)

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*model.Alert, 0, len(r.alerts))
	for _, alert := range r.alerts {
		if cfg.Status() != nil && alert.Status != *cfg.Status() {
			continue
		}
		if cfg.Priority() != nil && alert.Priority != *cfg.Priority() {
			continue
		}
		matched = append(matched, alert.Clone())
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if cfg.Limit() > 0 && len(matched) > cfg.Limit() {
		matched = matched[:cfg.Limit()]
	}
	return matched, nil
}

func (r *alertRepository) Update(ctx context.Context, alert *model.Alert) (*model.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.alerts[alert.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "alert not found", goerr.V("id", alert.ID))
	}

	updated := alert.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.alerts[updated.ID] = updated
	return updated.Clone(), nil
}

func (r *alertRepository) Delete(ctx context.Context, id types.AlertID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.alerts[id]; !exists {
		return false, nil
	}
	delete(r.alerts, id)
	return true, nil
}
