package notify

import (
	"context"

	"github.com/minesafe-lab/minesafe/pkg/domain/model"
)

// Notifier delivers a newly created alert to an external channel. Delivery
// is best-effort: the alert is already persisted when Notify is called, and
// a delivery failure must not fail the originating operation.
type Notifier interface {
	Notify(ctx context.Context, alert *model.Alert) error
}

// Discard is a Notifier that drops everything. Used when no channel is
// configured.
type Discard struct{}

func (Discard) Notify(ctx context.Context, alert *model.Alert) error {
	return nil
}
