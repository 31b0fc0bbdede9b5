package worker

import (
	"context"
	"errors"
	"time"

	"github.com/minesafe-lab/minesafe/pkg/domain/model"
	"github.com/minesafe-lab/minesafe/pkg/usecase"
	"github.com/minesafe-lab/minesafe/pkg/utils/logging"
)

// ReportScheduler backfills report snapshots. On every check it generates
// the daily report for the previous site-local day if it is missing, and
// the weekly summary once the previous day closed a week (Sunday). Because
// generation is keyed by (kind, label) and overwrites are recomputations of
// the same data, a duplicate run after a crash is harmless.
type ReportScheduler struct {
	reports  *usecase.ReportUseCase
	interval time.Duration
	location *time.Location
	clock    func() time.Time
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewReportScheduler creates a scheduler that checks for missing reports on
// the given interval
func NewReportScheduler(reports *usecase.ReportUseCase, interval time.Duration, loc *time.Location) *ReportScheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportScheduler{
		reports:  reports,
		interval: interval,
		location: loc,
		clock:    time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the scheduling loop in a background goroutine
func (w *ReportScheduler) Start(ctx context.Context) error {
	logging.Default().Info("Report scheduler starting",
		"interval", w.interval.String(),
		"timezone", w.location.String())

	go w.run(ctx)

	return nil
}

// Stop signals the scheduler to stop and waits for completion
func (w *ReportScheduler) Stop() {
	logging.Default().Info("Report scheduler stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Report scheduler stopped")
}

func (w *ReportScheduler) run(ctx context.Context) {
	defer close(w.doneCh)

	w.check(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.check(ctx)

		case <-w.stopCh:
			logging.Default().Info("Report scheduler received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("Report scheduler context cancelled")
			return
		}
	}
}

func (w *ReportScheduler) check(ctx context.Context) {
	yesterday := w.clock().In(w.location).AddDate(0, 0, -1)
	label := model.DateKey(yesterday, w.location)

	if _, err := w.reports.Get(ctx, model.ReportKindDaily, label); errors.Is(err, usecase.ErrReportNotFound) {
		if _, err := w.reports.Daily(ctx, yesterday); err != nil {
			logging.Default().Error("Daily report generation failed (will retry next interval)",
				"label", label, "error", err.Error())
		} else {
			logging.Default().Info("Daily report generated", "label", label)
		}
	}

	if yesterday.Weekday() != time.Sunday {
		return
	}
	if _, err := w.reports.Get(ctx, model.ReportKindWeekly, label); errors.Is(err, usecase.ErrReportNotFound) {
		if _, err := w.reports.Weekly(ctx, yesterday); err != nil {
			logging.Default().Error("Weekly summary generation failed (will retry next interval)",
				"label", label, "error", err.Error())
		} else {
			logging.Default().Info("Weekly summary generated", "label", label)
		}
	}
}
