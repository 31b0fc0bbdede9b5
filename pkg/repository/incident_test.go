package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/minesafe-lab/minesafe/pkg/domain/interfaces"
	"github.com/minesafe-lab/minesafe/pkg/domain/model"
	"github.com/minesafe-lab/minesafe/pkg/domain/types"
)

func newIncident(section string, severity types.Severity, createdAt time.Time) *model.Incident {
	return &model.Incident{
		ID:           types.NewIncidentID(),
		Type:         types.IncidentTypeNearMiss,
		Severity:     severity,
		Status:       types.IncidentStatusReported,
		Title:        "Loose rock near conveyor",
		Section:      section,
		Level:        "L2",
		ReportedBy:   "U100",
		ReporterName: "Dana",
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

func runIncidentRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create and Get round-trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		incident := newIncident("A", types.SeverityHigh, time.Now().UTC())
		incident.EquipmentInvolved = []string{"conveyor-3"}

		created, err := repo.Incident().Create(ctx, incident)
		gt.NoError(t, err).Required()
		gt.Value(t, created.ID).Equal(incident.ID)

		got, err := repo.Incident().Get(ctx, incident.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Title).Equal(incident.Title)
		gt.Value(t, got.Severity).Equal(types.SeverityHigh)
		gt.Array(t, got.EquipmentInvolved).Equal([]string{"conveyor-3"})
	})

	t.Run("Get returns not found for unknown ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Incident().Get(ctx, types.NewIncidentID())
		gt.Value(t, err).NotNil()
	})

	t.Run("List filters by status severity section and window", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		now := time.Now().UTC()

		a := newIncident("A", types.SeverityHigh, now.Add(-time.Hour))
		b := newIncident("B", types.SeverityLow, now.Add(-2*time.Hour))
		old := newIncident("A", types.SeverityHigh, now.Add(-100*24*time.Hour))
		for _, incident := range []*model.Incident{a, b, old} {
			_, err := repo.Incident().Create(ctx, incident)
			gt.NoError(t, err).Required()
		}

		bySection, err := repo.Incident().List(ctx, interfaces.WithIncidentSection("A"))
		gt.NoError(t, err).Required()
		gt.Array(t, bySection).Length(2)

		window := model.TimeWindow{From: now.Add(-24 * time.Hour), To: now}
		inWindow, err := repo.Incident().List(ctx,
			interfaces.WithIncidentWindow(window),
			interfaces.WithIncidentSeverity(types.SeverityHigh))
		gt.NoError(t, err).Required()
		gt.Array(t, inWindow).Length(1)
		gt.Value(t, inWindow[0].ID).Equal(a.ID)
	})

	t.Run("List orders newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		now := time.Now().UTC()

		older := newIncident("C", types.SeverityLow, now.Add(-time.Hour))
		newer := newIncident("C", types.SeverityLow, now)
		for _, incident := range []*model.Incident{older, newer} {
			_, err := repo.Incident().Create(ctx, incident)
			gt.NoError(t, err).Required()
		}

		listed, err := repo.Incident().List(ctx, interfaces.WithIncidentSection("C"))
		gt.NoError(t, err).Required()
		gt.Array(t, listed).Length(2)
		gt.Value(t, listed[0].ID).Equal(newer.ID)
	})

	t.Run("Count matches filters", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		now := time.Now().UTC()

		for i := 0; i < 3; i++ {
			_, err := repo.Incident().Create(ctx, newIncident("D", types.SeverityMedium, now))
			gt.NoError(t, err).Required()
		}

		n, err := repo.Incident().Count(ctx, interfaces.WithIncidentSection("D"))
		gt.NoError(t, err).Required()
		gt.Value(t, n).Equal(int64(3))
	})

	t.Run("Update preserves CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Incident().Create(ctx, newIncident("E", types.SeverityLow, time.Now().UTC().Add(-time.Hour)))
		gt.NoError(t, err).Required()

		created.Status = types.IncidentStatusInvestigating
		updated, err := repo.Incident().Update(ctx, created)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Status).Equal(types.IncidentStatusInvestigating)
		gt.Bool(t, updated.CreatedAt.Equal(created.CreatedAt)).True()
	})

	t.Run("Delete reports absence", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Incident().Create(ctx, newIncident("F", types.SeverityLow, time.Now().UTC()))
		gt.NoError(t, err).Required()

		ok, err := repo.Incident().Delete(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).True()

		ok, err = repo.Incident().Delete(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).False()
	})
}

func TestIncidentRepository_Memory(t *testing.T) {
	runIncidentRepositoryTest(t, newMemoryRepo)
}

func TestIncidentRepository_Firestore(t *testing.T) {
	runIncidentRepositoryTest(t, newFirestoreRepo)
}
