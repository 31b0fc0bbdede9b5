package interfaces

import (
	"context"

	"github.com/minesafe-lab/minesafe/pkg/domain/model"
)

// DailyStatRepository defines data access for per-day counters.
//
// Increment must use the store's atomic field-increment primitive so that
// concurrent increments from independent events merge additively instead of
// clobbering each other. Documents are created lazily on first increment.
type DailyStatRepository interface {
	// Increment merges the delta into the stat document for the date key
	Increment(ctx context.Context, date string, delta model.DailyStatDelta) error

	// Get retrieves the stat document for a date key. A date with no
	// recorded events returns a zero-valued stat, not an error.
	Get(ctx context.Context, date string) (*model.DailyStat, error)
}
