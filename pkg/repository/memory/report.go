package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minesafe-lab/minesafe/pkg/domain/model"
)

type reportKey struct {
	kind  model.ReportKind
	label string
}

type reportRepository struct {
	mu      sync.RWMutex
	reports map[reportKey]*model.Report
}

func newReportRepository() *reportRepository {
	return &reportRepository{
		reports: make(map[reportKey]*model.Report),
	}
}

func (r *reportRepository) Put(ctx context.Context, report *model.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *report
	r.reports[reportKey{kind: report.Kind, label: report.Label}] = &clone
	return nil
}

func (r *reportRepository) Get(ctx context.Context, kind model.ReportKind, label string) (*model.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report, exists := r.reports[reportKey{kind: kind, label: label}]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "report not found",
			goerr.V("kind", kind), goerr.V("label", label))
	}
	clone := *report
	return &clone, nil
}

func (r *reportRepository) List(ctx context.Context, kind model.ReportKind, limit int) ([]*model.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*model.Report
	for key, report := range r.reports {
		if key.kind != kind {
			continue
		}
		clone := *report
		matched = append(matched, &clone)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].GeneratedAt.After(matched[j].GeneratedAt)
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}
