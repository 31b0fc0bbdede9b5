package notify

import (
	"context"

	"github.com/minesafe-lab/minesafe/pkg/domain/model"
	"github.com/minesafe-lab/minesafe/pkg/utils/logging"
)

// LogNotifier writes alerts to the structured log. It is the default sink
// when no webhook is configured, so alert delivery is still observable.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, alert *model.Alert) error {
	logging.From(ctx).Info("alert broadcast",
		"alert_id", alert.ID,
		"priority", alert.Priority,
		"title", alert.Title,
		"sections", alert.TargetSections,
		"roles", alert.TargetRoles,
	)
	return nil
}
