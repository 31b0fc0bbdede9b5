package worker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/minesafe-lab/minesafe/pkg/domain/interfaces"
	"github.com/minesafe-lab/minesafe/pkg/domain/types"
	"github.com/minesafe-lab/minesafe/pkg/repository/memory"
	"github.com/minesafe-lab/minesafe/pkg/service/worker"
	"github.com/minesafe-lab/minesafe/pkg/usecase"
)

var baseTime = time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)

// testClock is a settable clock shared by a test and its use cases
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(t time.Time) *testClock {
	return &testClock{now: t}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestOverdueSweepWorker_InitialSweep(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	clock := newTestClock(baseTime)
	uc := usecase.New(repo, usecase.WithClock(clock.Now))

	checklist, err := uc.Checklist.Create(ctx, usecase.CreateChecklistInput{
		Title:   "End-of-shift equipment check",
		DueDate: baseTime.Add(time.Hour),
		Items:   []usecase.ChecklistItemInput{{Description: "inspect"}},
	})
	gt.NoError(t, err).Required()

	// The due date passes before the worker starts.
	clock.Advance(2 * time.Hour)

	w := worker.NewOverdueSweepWorker(uc.Checklist, 10*time.Minute)
	gt.NoError(t, w.Start(ctx)).Required()
	defer w.Stop()

	// Wait for the background initial sweep to complete.
	time.Sleep(50 * time.Millisecond)

	got, err := uc.Checklist.Get(ctx, checklist.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, got.Status).Equal(types.ChecklistStatusOverdue)

	alerts, err := repo.Alert().List(ctx, interfaces.WithAlertPriority(types.AlertPriorityWarning))
	gt.NoError(t, err).Required()
	gt.Array(t, alerts).Length(1)
}

func TestOverdueSweepWorker_PeriodicSweep(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	clock := newTestClock(baseTime)
	uc := usecase.New(repo, usecase.WithClock(clock.Now))

	w := worker.NewOverdueSweepWorker(uc.Checklist, 100*time.Millisecond)
	gt.NoError(t, w.Start(ctx)).Required()
	defer w.Stop()

	// Nothing due yet; the initial sweep finds nothing.
	time.Sleep(50 * time.Millisecond)

	checklist, err := uc.Checklist.Create(ctx, usecase.CreateChecklistInput{
		Title:   "End-of-shift equipment check",
		DueDate: baseTime.Add(time.Hour),
		Items:   []usecase.ChecklistItemInput{{Description: "inspect"}},
	})
	gt.NoError(t, err).Required()
	clock.Advance(2 * time.Hour)

	// Wait for at least one periodic sweep.
	time.Sleep(200 * time.Millisecond)

	got, err := uc.Checklist.Get(ctx, checklist.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, got.Status).Equal(types.ChecklistStatusOverdue)
}

func TestOverdueSweepWorker_StopsCleanly(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	uc := usecase.New(repo)

	w := worker.NewOverdueSweepWorker(uc.Checklist, 100*time.Millisecond)
	gt.NoError(t, w.Start(ctx)).Required()

	time.Sleep(50 * time.Millisecond)

	stopStart := time.Now()
	w.Stop()
	gt.Value(t, time.Since(stopStart) < time.Second).Equal(true)
}
