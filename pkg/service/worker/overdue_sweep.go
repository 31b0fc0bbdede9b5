package worker

import (
	"context"
	"time"

	"github.com/minesafe-lab/minesafe/pkg/usecase"
	"github.com/minesafe-lab/minesafe/pkg/utils/logging"
)

// OverdueSweepWorker periodically marks untouched past-due checklists as
// overdue. The sweep itself is idempotent, so overlapping deployments or a
// restart mid-interval cannot double-mark or double-alert.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - For future horizontal scaling, implement distributed locking or leader election
type OverdueSweepWorker struct {
	checklists *usecase.ChecklistUseCase
	interval   time.Duration
	stopCh     chan struct{}
	doneCh     chan struct{}
}

// NewOverdueSweepWorker creates a worker that runs the overdue sweep on the
// given interval
func NewOverdueSweepWorker(checklists *usecase.ChecklistUseCase, interval time.Duration) *OverdueSweepWorker {
	return &OverdueSweepWorker{
		checklists: checklists,
		interval:   interval,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start begins the sweep loop in a background goroutine. An initial sweep
// runs immediately so a restart does not wait a full interval to catch up.
func (w *OverdueSweepWorker) Start(ctx context.Context) error {
	logging.Default().Info("Overdue sweep worker starting",
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *OverdueSweepWorker) Stop() {
	logging.Default().Info("Overdue sweep worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Overdue sweep worker stopped")
}

func (w *OverdueSweepWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.sweep(ctx)

		case <-w.stopCh:
			logging.Default().Info("Overdue sweep worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("Overdue sweep worker context cancelled")
			return
		}
	}
}

func (w *OverdueSweepWorker) sweep(ctx context.Context) {
	start := time.Now()

	result, err := w.checklists.RunOverdueSweep(ctx)
	if err != nil {
		// Log and continue; the next interval retries.
		logging.Default().Error("Overdue sweep failed (will retry next interval)",
			"error", err.Error())
		return
	}

	if result.MarkedCount > 0 {
		logging.Default().Info("Overdue sweep completed",
			"scanned", result.Scanned,
			"marked", result.MarkedCount,
			"alert_id", result.AlertID,
			"duration", time.Since(start).String())
	}
}
