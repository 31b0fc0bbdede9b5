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

type incidentRepository struct {
	mu        sync.RWMutex
	incidents map[types.IncidentID]*model.Incident
}

func newIncidentRepository() *incidentRepository {
	return &incidentRepository{
		incidents: make(map[types.IncidentID]*model.Incident),
	}
}

func (r *incidentRepository) Create(ctx context.Context, incident *model.Incident) (*model.Incident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.incidents[incident.ID]; exists {
		return nil, goerr.New("incident already exists", goerr.V("id", incident.ID))
	}

	created := incident.Clone()
	r.incidents[created.ID] = created
	return created.Clone(), nil
}

func (r *incidentRepository) Get(ctx context.Context, id types.IncidentID) (*model.Incident, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	incident, exists := r.incidents[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "incident not found", goerr.V("id", id))
	}
	return incident.Clone(), nil
}

func matchIncident(cfg interface {
	Status() *types.IncidentStatus
	Severity() *types.Severity
	Section() *string
	Window() *model.TimeWindow
}, incident *model.Incident) bool {
	if cfg.Status() != nil && incident.Status != *cfg.Status() {
		return false
	}
	if cfg.Severity() != nil && incident.Severity != *cfg.Severity() {
		return false
	}
	if cfg.Section() != nil && incident.Section != *cfg.Section() {
		return false
	}
	if cfg.Window() != nil && !cfg.Window().Contains(incident.CreatedAt) {
		return false
	}
	return true
}

func (r *incidentRepository) List(ctx context.Context, opts ...interfaces.ListIncidentOption) ([]*model.Incident, error) {
	cfg := interfaces.BuildListIncidentConfig(opts...)

	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*model.Incident, 0, len(r.incidents))
	for _, incident := range r.incidents {
		if matchIncident(cfg, incident) {
			matched = append(matched, incident.Clone())
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if cfg.Offset() > 0 {
		if cfg.Offset() >= len(matched) {
			return nil, nil
		}
		matched = matched[cfg.Offset():]
	}
	if cfg.Limit() > 0 && len(matched) > cfg.Limit() {
		matched = matched[:cfg.Limit()]
	}
	return matched, nil
}

func (r *incidentRepository) Count(ctx context.Context, opts ...interfaces.ListIncidentOption) (int64, error) {
	cfg := interfaces.BuildListIncidentConfig(opts...)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, incident := range r.incidents {
		if matchIncident(cfg, incident) {
			n++
		}
	}
	return n, nil
}

func (r *incidentRepository) Update(ctx context.Context, incident *model.Incident) (*model.Incident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.incidents[incident.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "incident not found", goerr.V("id", incident.ID))
	}

	updated := incident.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.incidents[updated.ID] = updated
	return updated.Clone(), nil
}

func (r *incidentRepository) Delete(ctx context.Context, id types.IncidentID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.incidents[id]; !exists {
		return false, nil
	}
	delete(r.incidents, id)
	return true, nil
}
