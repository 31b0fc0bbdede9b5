package memory

import (
	"context"
	"sync"
	"time"

	"github.com/minesafe-lab/minesafe/pkg/domain/model"
)

type dailyStatRepository struct {
	mu    sync.Mutex
	stats map[string]*model.DailyStat
}

func newDailyStatRepository() *dailyStatRepository {
	return &dailyStatRepository{
		stats: make(map[string]*model.DailyStat),
	}
}

// Increment adds the delta under the lock, the in-memory equivalent of the
// store's atomic field increment. The document is created lazily.
func (r *dailyStatRepository) Increment(ctx context.Context, date string, delta model.DailyStatDelta) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stat, exists := r.stats[date]
	if !exists {
		stat = &model.DailyStat{Date: date}
		r.stats[date] = stat
	}

	stat.IncidentsReported += delta.IncidentsReported
	stat.IncidentsResolved += delta.IncidentsResolved
	stat.ChecklistsCompleted += delta.ChecklistsCompleted
	stat.AlertsCreated += delta.AlertsCreated
	stat.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *dailyStatRepository) Get(ctx context.Context, date string) (*model.DailyStat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stat, exists := r.stats[date]
	if !exists {
		return &model.DailyStat{Date: date}, nil
	}
	clone := *stat
	return &clone, nil
}
