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

func newChecklist(status types.ChecklistStatus, dueDate time.Time) *model.Checklist {
	now := time.Now().UTC()
	return &model.Checklist{
		ID:       types.NewChecklistID(),
		Title:    "Pre-shift ventilation check",
		Category: "ventilation",
		Section:  "A",
		Shift:    "day",
		Items: []model.ChecklistItem{
			{ID: types.NewChecklistItemID(), Description: "Fans operational"},
			{ID: types.NewChecklistItemID(), Description: "Airflow meters read nominal", RequiresPhoto: true},
		},
		Status:    status,
		DueDate:   dueDate,
		CreatedBy: "U100",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func runChecklistRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create and Get round-trip with items", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		checklist := newChecklist(types.ChecklistStatusPending, time.Now().UTC().Add(time.Hour))
		created, err := repo.Checklist().Create(ctx, checklist)
		gt.NoError(t, err).Required()

		got, err := repo.Checklist().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, got.Items).Length(2)
		gt.Value(t, got.Items[1].RequiresPhoto).Equal(true)
		gt.Value(t, got.Status).Equal(types.ChecklistStatusPending)
	})

	t.Run("List filters by status set and due date", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		now := time.Now().UTC()

		pendingDue := newChecklist(types.ChecklistStatusPending, now.Add(-time.Hour))
		inProgressDue := newChecklist(types.ChecklistStatusInProgress, now.Add(-2*time.Hour))
		completedDue := newChecklist(types.ChecklistStatusCompleted, now.Add(-time.Hour))
		pendingFuture := newChecklist(types.ChecklistStatusPending, now.Add(time.Hour))
		for _, c := range []*model.Checklist{pendingDue, inProgressDue, completedDue, pendingFuture} {
			_, err := repo.Checklist().Create(ctx, c)
			gt.NoError(t, err).Required()
		}

		// The overdue sweep's query: open statuses, due before now.
		matched, err := repo.Checklist().List(ctx,
			interfaces.WithChecklistStatuses(types.ChecklistStatusPending, types.ChecklistStatusInProgress),
			interfaces.WithChecklistDueBefore(now))
		gt.NoError(t, err).Required()
		gt.Array(t, matched).Length(2)
		for _, c := range matched {
			gt.Bool(t, c.DueDate.Before(now)).True()
			gt.Bool(t, c.Status == types.ChecklistStatusCompleted).False()
		}
	})

	t.Run("Count with window filter", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		now := time.Now().UTC()

		fresh := newChecklist(types.ChecklistStatusPending, now.Add(time.Hour))
		stale := newChecklist(types.ChecklistStatusPending, now.Add(time.Hour))
		stale.CreatedAt = now.Add(-40 * 24 * time.Hour)
		for _, c := range []*model.Checklist{fresh, stale} {
			_, err := repo.Checklist().Create(ctx, c)
			gt.NoError(t, err).Required()
		}

		n, err := repo.Checklist().Count(ctx,
			interfaces.WithChecklistWindow(model.TimeWindow{From: now.Add(-24 * time.Hour), To: now}))
		gt.NoError(t, err).Required()
		gt.Value(t, n).Equal(int64(1))
	})

	t.Run("Update rewrites items", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Checklist().Create(ctx, newChecklist(types.ChecklistStatusPending, time.Now().UTC().Add(time.Hour)))
		gt.NoError(t, err).Required()

		created.Items[0].IsCompleted = true
		created.Status = types.ChecklistStatusInProgress
		updated, err := repo.Checklist().Update(ctx, created)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Items[0].IsCompleted).Equal(true)
		gt.Value(t, updated.Status).Equal(types.ChecklistStatusInProgress)
	})

	t.Run("BatchUpdateStatus flips all requested checklists", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		now := time.Now().UTC()

		var updates []interfaces.ChecklistStatusUpdate
		for i := 0; i < 3; i++ {
			created, err := repo.Checklist().Create(ctx, newChecklist(types.ChecklistStatusPending, now.Add(-time.Hour)))
			gt.NoError(t, err).Required()
			updates = append(updates, interfaces.ChecklistStatusUpdate{
				ID:     created.ID,
				Status: types.ChecklistStatusOverdue,
			})
		}

		updated, err := repo.Checklist().BatchUpdateStatus(ctx, updates)
		gt.NoError(t, err).Required()
		gt.Value(t, updated).Equal(3)

		for _, u := range updates {
			got, err := repo.Checklist().Get(ctx, u.ID)
			gt.NoError(t, err).Required()
			gt.Value(t, got.Status).Equal(types.ChecklistStatusOverdue)
		}
	})

	t.Run("BatchUpdateStatus reports partial success", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Checklist().Create(ctx, newChecklist(types.ChecklistStatusPending, time.Now().UTC().Add(-time.Hour)))
		gt.NoError(t, err).Required()

		updates := []interfaces.ChecklistStatusUpdate{
			{ID: created.ID, Status: types.ChecklistStatusOverdue},
			{ID: types.NewChecklistID(), Status: types.ChecklistStatusOverdue},
		}

		updated, err := repo.Checklist().BatchUpdateStatus(ctx, updates)
		gt.Value(t, err).NotNil()
		gt.Value(t, updated).Equal(1)

		got, err := repo.Checklist().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Status).Equal(types.ChecklistStatusOverdue)
	})
}

func TestChecklistRepository_Memory(t *testing.T) {
	runChecklistRepositoryTest(t, newMemoryRepo)
}

func TestChecklistRepository_Firestore(t *testing.T) {
	runChecklistRepositoryTest(t, newFirestoreRepo)
}
