package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/minesafe-lab/minesafe/pkg/domain/model"
	"github.com/minesafe-lab/minesafe/pkg/domain/types"
)

func TestDeriveChecklistStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name      string
		completed int
		total     int
		dueDate   time.Time
		want      types.ChecklistStatus
	}{
		{"all completed", 3, 3, future, types.ChecklistStatusCompleted},
		{"all completed past due", 3, 3, past, types.ChecklistStatusCompleted},
		{"partial", 1, 3, future, types.ChecklistStatusInProgress},
		// Deliberate tie-break: partial completion past due stays
		// in_progress, never overdue.
		{"partial past due", 2, 3, past, types.ChecklistStatusInProgress},
		{"untouched before due", 0, 3, future, types.ChecklistStatusPending},
		{"untouched past due", 0, 3, past, types.ChecklistStatusOverdue},
		{"untouched exactly at due", 0, 3, now, types.ChecklistStatusPending},
		{"empty item list before due", 0, 0, future, types.ChecklistStatusPending},
		{"empty item list past due", 0, 0, past, types.ChecklistStatusOverdue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.DeriveChecklistStatus(tt.completed, tt.total, tt.dueDate, now)
			gt.Value(t, got).Equal(tt.want)
		})
	}
}

func TestChecklist_Refresh(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	newChecklist := func(completed int) *model.Checklist {
		c := &model.Checklist{
			ID:      types.NewChecklistID(),
			Title:   "Pre-shift ventilation check",
			DueDate: now.Add(time.Hour),
			Status:  types.ChecklistStatusPending,
		}
		for i := 0; i < 3; i++ {
			item := model.ChecklistItem{ID: types.NewChecklistItemID(), Description: "check"}
			if i < completed {
				item.IsCompleted = true
			}
			c.Items = append(c.Items, item)
		}
		return c
	}

	t.Run("stamps CompletedAt once", func(t *testing.T) {
		c := newChecklist(3)
		c.Refresh(now)
		gt.Value(t, c.Status).Equal(types.ChecklistStatusCompleted)
		gt.Value(t, c.CompletedAt).NotNil()
		gt.Value(t, c.CompletedAt.Equal(now)).Equal(true)

		later := now.Add(time.Minute)
		c.Refresh(later)
		// CompletedAt should not move on re-derivation.
		gt.Value(t, c.CompletedAt.Equal(now)).Equal(true)
	})

	t.Run("clears CompletedAt when item unchecked", func(t *testing.T) {
		c := newChecklist(3)
		c.Refresh(now)
		c.Items[0].IsCompleted = false
		c.Refresh(now.Add(time.Minute))
		gt.Value(t, c.Status).Equal(types.ChecklistStatusInProgress)
		gt.Value(t, c.CompletedAt).Nil()
	})

	t.Run("stored status never diverges from derivation", func(t *testing.T) {
		c := newChecklist(0)
		c.DueDate = now.Add(-time.Minute)
		steps := []func(){
			func() { c.Items[0].IsCompleted = true },
			func() { c.Items[1].IsCompleted = true },
			func() { c.Items[0].IsCompleted = false },
			func() { c.Items[2].IsCompleted = true },
			func() { c.Items[1].IsCompleted = false; c.Items[2].IsCompleted = false },
		}
		at := now
		for _, step := range steps {
			step()
			at = at.Add(time.Minute)
			c.Refresh(at)
			want := model.DeriveChecklistStatus(c.CompletedCount(), len(c.Items), c.DueDate, at)
			gt.Value(t, c.Status).Equal(want)
		}
		// Final state: zero progress past due.
		gt.Value(t, c.Status).Equal(types.ChecklistStatusOverdue)
	})
}

func TestChecklist_Item(t *testing.T) {
	c := &model.Checklist{
		Items: []model.ChecklistItem{
			{ID: "a", Description: "first"},
			{ID: "b", Description: "second"},
		},
	}
	item := c.Item("b")
	gt.Value(t, item).NotNil()
	gt.Value(t, item.Description).Equal("second")
	gt.Value(t, c.Item("missing")).Nil()

	// Item must return a pointer into the slice so patches stick.
	c.Item("a").IsCompleted = true
	gt.Value(t, c.Items[0].IsCompleted).Equal(true)
}
