package interfaces

import (
	"context"

	"github.com/minesafe-lab/minesafe/pkg/domain/model"
)

// ReportRepository defines data access for persisted report snapshots.
// Snapshots are immutable; re-running a job for the same period overwrites
// the snapshot with an identical recomputation.
type ReportRepository interface {
	// Put persists a report snapshot keyed by (kind, label)
	Put(ctx context.Context, report *model.Report) error

	// Get retrieves a report snapshot by kind and label
	Get(ctx context.Context, kind model.ReportKind, label string) (*model.Report, error)

	// List retrieves the most recent snapshots of a kind, newest first
	List(ctx context.Context, kind model.ReportKind, limit int) ([]*model.Report, error)
}
