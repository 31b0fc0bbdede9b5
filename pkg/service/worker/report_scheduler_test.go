package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/minesafe-lab/minesafe/pkg/domain/model"
	"github.com/minesafe-lab/minesafe/pkg/repository/memory"
	"github.com/minesafe-lab/minesafe/pkg/service/worker"
	"github.com/minesafe-lab/minesafe/pkg/usecase"
)

func TestReportScheduler_BackfillsMissingReports(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	clock := newTestClock(baseTime) // Monday, so yesterday closed a week
	uc := usecase.New(repo, usecase.WithClock(clock.Now))

	w := worker.NewReportScheduler(uc.Report, 10*time.Minute, time.UTC)
	w.SetClockForTest(clock.Now)

	gt.NoError(t, w.Start(ctx)).Required()
	defer w.Stop()

	// Wait for the background initial check to complete.
	time.Sleep(100 * time.Millisecond)

	daily, err := uc.Report.Get(ctx, model.ReportKindDaily, "2026-03-08")
	gt.NoError(t, err).Required()
	gt.Value(t, daily.Kind).Equal(model.ReportKindDaily)

	weekly, err := uc.Report.Get(ctx, model.ReportKindWeekly, "2026-03-08")
	gt.NoError(t, err).Required()
	gt.Value(t, weekly.Kind).Equal(model.ReportKindWeekly)
}

func TestReportScheduler_SkipsExistingReports(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	clock := newTestClock(baseTime.AddDate(0, 0, 1)) // Tuesday
	uc := usecase.New(repo, usecase.WithClock(clock.Now))

	// The daily report for yesterday already exists.
	existing, err := uc.Report.Daily(ctx, baseTime)
	gt.NoError(t, err).Required()

	w := worker.NewReportScheduler(uc.Report, 10*time.Minute, time.UTC)
	w.SetClockForTest(clock.Now)

	gt.NoError(t, w.Start(ctx)).Required()
	defer w.Stop()

	time.Sleep(100 * time.Millisecond)

	got, err := uc.Report.Get(ctx, model.ReportKindDaily, "2026-03-09")
	gt.NoError(t, err).Required()
	gt.Value(t, got.ID).Equal(existing.ID)

	// Tuesday: no week closed, no weekly summary.
	_, err = uc.Report.Get(ctx, model.ReportKindWeekly, "2026-03-09")
	gt.Error(t, err)
}
