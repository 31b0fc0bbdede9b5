package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/minesafe-lab/minesafe/pkg/domain/interfaces"
	"github.com/minesafe-lab/minesafe/pkg/domain/model"
	"github.com/minesafe-lab/minesafe/pkg/domain/types"
	"github.com/minesafe-lab/minesafe/pkg/repository/memory"
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

// recordingNotifier captures delivered alerts for assertions. Delivery is
// asynchronous, so Wait blocks until at least n alerts arrived.
type recordingNotifier struct {
	mu     sync.Mutex
	alerts []*model.Alert
	ch     chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{ch: make(chan struct{}, 16)}
}

func (n *recordingNotifier) Notify(ctx context.Context, alert *model.Alert) error {
	n.mu.Lock()
	n.alerts = append(n.alerts, alert)
	n.mu.Unlock()
	n.ch <- struct{}{}
	return nil
}

func (n *recordingNotifier) Wait(count int, timeout time.Duration) []*model.Alert {
	deadline := time.After(timeout)
	for {
		n.mu.Lock()
		got := len(n.alerts)
		n.mu.Unlock()
		if got >= count {
			break
		}
		select {
		case <-n.ch:
		case <-deadline:
			n.mu.Lock()
			defer n.mu.Unlock()
			return append([]*model.Alert(nil), n.alerts...)
		}
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]*model.Alert(nil), n.alerts...)
}

func newTestUseCases(clock *testClock, opts ...usecase.Option) (*usecase.UseCases, *memory.Memory) {
	repo := memory.New()
	options := append([]usecase.Option{usecase.WithClock(clock.Now)}, opts...)
	return usecase.New(repo, options...), repo
}

// brokenRepo wraps the memory backend and fails every lookup, simulating a
// store outage rather than a missing document.
type brokenRepo struct {
	interfaces.Repository
	err error
}

func (r *brokenRepo) Alert() interfaces.AlertRepository {
	return &brokenAlertRepo{AlertRepository: r.Repository.Alert(), err: r.err}
}

func (r *brokenRepo) Incident() interfaces.IncidentRepository {
	return &brokenIncidentRepo{IncidentRepository: r.Repository.Incident(), err: r.err}
}

type brokenAlertRepo struct {
	interfaces.AlertRepository
	err error
}

func (r *brokenAlertRepo) Get(ctx context.Context, id types.AlertID) (*model.Alert, error) {
	return nil, r.err
}

type brokenIncidentRepo struct {
	interfaces.IncidentRepository
	err error
}

func (r *brokenIncidentRepo) Get(ctx context.Context, id types.IncidentID) (*model.Incident, error) {
	return nil, r.err
}
