package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/minesafe-lab/minesafe/pkg/domain/model"
	"github.com/minesafe-lab/minesafe/pkg/domain/types"
	"github.com/minesafe-lab/minesafe/pkg/repository/memory"
	"github.com/minesafe-lab/minesafe/pkg/usecase"
)

func reportIncident(t *testing.T, uc *usecase.UseCases, severity types.Severity) *model.Incident {
	t.Helper()

	incident, err := uc.Incident.Create(context.Background(), usecase.CreateIncidentInput{
		Type:         types.IncidentTypeNearMiss,
		Severity:     severity,
		Title:        "Loader reversed without spotter",
		Section:      "north-drift",
		Level:        "L3",
		ReportedBy:   "actor-1",
		ReporterName: "Field Crew",
		WitnessCount: 1,
	})
	gt.NoError(t, err).Required()
	return incident
}

func TestIncidentCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("new incident starts reported and bumps the counter", func(t *testing.T) {
		clock := newTestClock(baseTime)
		uc, repo := newTestUseCases(clock)

		incident := reportIncident(t, uc, types.SeverityMedium)
		gt.Value(t, incident.Status).Equal(types.IncidentStatusReported)
		gt.Value(t, incident.ResolvedAt).Nil()

		stat, err := repo.DailyStat().Get(ctx, model.DateKey(baseTime, time.UTC))
		gt.NoError(t, err).Required()
		gt.Value(t, stat.IncidentsReported).Equal(int64(1))
	})

	t.Run("critical incident raises an urgent alert for the section", func(t *testing.T) {
		clock := newTestClock(baseTime)
		uc, repo := newTestUseCases(clock)

		reportIncident(t, uc, types.SeverityCritical)

		alerts, err := repo.Alert().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, alerts).Length(1)
		gt.Value(t, alerts[0].Priority).Equal(types.AlertPriorityUrgent)
		gt.Value(t, alerts[0].TargetSections).Equal([]string{"north-drift"})
		gt.Value(t, alerts[0].TargetRoles).Equal([]string{types.TargetAll})
	})

	t.Run("non-critical incident raises no alert", func(t *testing.T) {
		clock := newTestClock(baseTime)
		uc, repo := newTestUseCases(clock)

		reportIncident(t, uc, types.SeverityHigh)

		alerts, err := repo.Alert().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, alerts).Length(0)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		clock := newTestClock(baseTime)
		uc, _ := newTestUseCases(clock)

		_, err := uc.Incident.Create(ctx, usecase.CreateIncidentInput{
			Type:     types.IncidentTypeFire,
			Severity: types.SeverityLow,
		})
		gt.Error(t, err).Is(usecase.ErrInvalidInput)

		_, err = uc.Incident.Create(ctx, usecase.CreateIncidentInput{
			Title:    "bad type",
			Type:     "paperwork",
			Severity: types.SeverityLow,
		})
		gt.Error(t, err).Is(usecase.ErrInvalidInput)

		_, err = uc.Incident.Create(ctx, usecase.CreateIncidentInput{
			Title:       "negative count",
			Type:        types.IncidentTypeInjury,
			Severity:    types.SeverityLow,
			InjuryCount: -1,
		})
		gt.Error(t, err).Is(usecase.ErrInvalidInput)
	})
}

func TestIncidentUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("walks forward through the lifecycle", func(t *testing.T) {
		clock := newTestClock(baseTime)
		uc, repo := newTestUseCases(clock)
		incident := reportIncident(t, uc, types.SeverityMedium)

		updated, err := uc.Incident.UpdateStatus(ctx, incident.ID, types.IncidentStatusInvestigating, "actor-3")
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Status).Equal(types.IncidentStatusInvestigating)
		gt.Value(t, updated.AssigneeID).Equal(types.ActorID("actor-3"))

		clock.Advance(time.Hour)
		updated, err = uc.Incident.UpdateStatus(ctx, incident.ID, types.IncidentStatusResolved, "")
		gt.NoError(t, err).Required()
		gt.Value(t, updated.ResolvedAt).NotNil()
		gt.Value(t, *updated.ResolvedAt).Equal(clock.Now())

		stat, err := repo.DailyStat().Get(ctx, model.DateKey(clock.Now(), time.UTC))
		gt.NoError(t, err).Required()
		gt.Value(t, stat.IncidentsResolved).Equal(int64(1))

		updated, err = uc.Incident.UpdateStatus(ctx, incident.ID, types.IncidentStatusClosed, "")
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Status).Equal(types.IncidentStatusClosed)
	})

	t.Run("skipping a stage forward is allowed", func(t *testing.T) {
		clock := newTestClock(baseTime)
		uc, _ := newTestUseCases(clock)
		incident := reportIncident(t, uc, types.SeverityMedium)

		updated, err := uc.Incident.UpdateStatus(ctx, incident.ID, types.IncidentStatusClosed, "")
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Status).Equal(types.IncidentStatusClosed)
		// Closed without passing through resolved: no resolution stamp.
		gt.Value(t, updated.ResolvedAt).Nil()
	})

	t.Run("backward transitions are rejected", func(t *testing.T) {
		clock := newTestClock(baseTime)
		uc, _ := newTestUseCases(clock)
		incident := reportIncident(t, uc, types.SeverityMedium)

		_, err := uc.Incident.UpdateStatus(ctx, incident.ID, types.IncidentStatusResolved, "")
		gt.NoError(t, err).Required()

		_, err = uc.Incident.UpdateStatus(ctx, incident.ID, types.IncidentStatusReported, "")
		gt.Error(t, err).Is(usecase.ErrInvalidTransition)
	})

	t.Run("same-state update is a no-op", func(t *testing.T) {
		clock := newTestClock(baseTime)
		uc, repo := newTestUseCases(clock)
		incident := reportIncident(t, uc, types.SeverityMedium)

		_, err := uc.Incident.UpdateStatus(ctx, incident.ID, types.IncidentStatusResolved, "")
		gt.NoError(t, err).Required()
		_, err = uc.Incident.UpdateStatus(ctx, incident.ID, types.IncidentStatusResolved, "")
		gt.NoError(t, err).Required()

		// The resolution counter moved once, not twice.
		stat, err := repo.DailyStat().Get(ctx, model.DateKey(baseTime, time.UTC))
		gt.NoError(t, err).Required()
		gt.Value(t, stat.IncidentsResolved).Equal(int64(1))
	})

	t.Run("missing incident fails with sentinel", func(t *testing.T) {
		clock := newTestClock(baseTime)
		uc, _ := newTestUseCases(clock)

		_, err := uc.Incident.UpdateStatus(ctx, types.NewIncidentID(), types.IncidentStatusClosed, "")
		gt.Error(t, err).Is(usecase.ErrIncidentNotFound)
	})
}

func TestIncidentReopen(t *testing.T) {
	ctx := context.Background()

	t.Run("reopens a resolved incident", func(t *testing.T) {
		clock := newTestClock(baseTime)
		uc, _ := newTestUseCases(clock)
		incident := reportIncident(t, uc, types.SeverityMedium)

		_, err := uc.Incident.UpdateStatus(ctx, incident.ID, types.IncidentStatusResolved, "")
		gt.NoError(t, err).Required()

		reopened, err := uc.Incident.Reopen(ctx, incident.ID, "actor-4")
		gt.NoError(t, err).Required()
		gt.Value(t, reopened.Status).Equal(types.IncidentStatusInvestigating)
		gt.Value(t, reopened.ResolvedAt).Nil()
		gt.Value(t, reopened.AssigneeID).Equal(types.ActorID("actor-4"))

		// The reopened incident can be worked forward again.
		_, err = uc.Incident.UpdateStatus(ctx, incident.ID, types.IncidentStatusResolved, "")
		gt.NoError(t, err).Required()
	})

	t.Run("reopening an open incident fails", func(t *testing.T) {
		clock := newTestClock(baseTime)
		uc, _ := newTestUseCases(clock)
		incident := reportIncident(t, uc, types.SeverityMedium)

		_, err := uc.Incident.Reopen(ctx, incident.ID, "")
		gt.Error(t, err).Is(usecase.ErrIncidentNotClosed)
	})
}

func TestIncidentStoreFailure(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock(baseTime)

	outage := errors.New("store unavailable")
	uc := usecase.New(
		&brokenRepo{Repository: memory.New(), err: outage},
		usecase.WithClock(clock.Now),
	)

	// A store failure must surface as-is, not masquerade as a missing
	// incident.
	_, err := uc.Incident.Get(ctx, types.NewIncidentID())
	gt.Value(t, errors.Is(err, outage)).Equal(true)
	gt.Value(t, errors.Is(err, usecase.ErrIncidentNotFound)).Equal(false)

	_, err = uc.Incident.UpdateStatus(ctx, types.NewIncidentID(), types.IncidentStatusInvestigating, "")
	gt.Value(t, errors.Is(err, outage)).Equal(true)
	gt.Value(t, errors.Is(err, usecase.ErrIncidentNotFound)).Equal(false)
}
