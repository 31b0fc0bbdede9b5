package model

import (
	"time"

	"github.com/minesafe-lab/minesafe/pkg/domain/types"
)

// ChecklistItem is one line of a recurring inspection checklist
type ChecklistItem struct {
	ID            types.ChecklistItemID
	Description   string
	IsCompleted   bool
	CompletedAt   *time.Time
	CompletedBy   types.ActorID
	Notes         string
	RequiresPhoto bool
}

// Checklist represents a recurring inspection checklist for a section/shift
type Checklist struct {
	ID          types.ChecklistID
	Title       string
	Category    string
	Section     string
	Shift       string
	Items       []ChecklistItem
	Status      types.ChecklistStatus
	DueDate     time.Time
	CompletedAt *time.Time
	CreatedBy   types.ActorID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CompletedCount returns the number of completed items
func (c *Checklist) CompletedCount() int {
	n := 0
	for _, item := range c.Items {
		if item.IsCompleted {
			n++
		}
	}
	return n
}

// Item returns the item with the given ID, or nil if absent
func (c *Checklist) Item(id types.ChecklistItemID) *ChecklistItem {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return &c.Items[i]
		}
	}
	return nil
}

// DeriveChecklistStatus is the single status derivation used by both the
// item-update path and the overdue sweep. Status is a pure function of
// (completed, total, dueDate, now):
//
//   - all items completed: completed
//   - some items completed: in_progress, even past the due date. Overdue is
//     reserved for zero-progress checklists; partially worked lists stay
//     in_progress so crews can see work is underway.
//   - no items completed and past due: overdue
//   - otherwise: pending
func DeriveChecklistStatus(completed, total int, dueDate, now time.Time) types.ChecklistStatus {
	switch {
	case total > 0 && completed == total:
		return types.ChecklistStatusCompleted
	case completed > 0:
		return types.ChecklistStatusInProgress
	case now.After(dueDate):
		return types.ChecklistStatusOverdue
	default:
		return types.ChecklistStatusPending
	}
}

// Refresh recomputes Status and CompletedAt from the current item state at
// the given instant. CompletedAt is stamped when the list first derives to
// completed and cleared if an item is later unchecked.
func (c *Checklist) Refresh(now time.Time) {
	status := DeriveChecklistStatus(c.CompletedCount(), len(c.Items), c.DueDate, now)
	if status == types.ChecklistStatusCompleted {
		if c.CompletedAt == nil {
			t := now
			c.CompletedAt = &t
		}
	} else {
		c.CompletedAt = nil
	}
	c.Status = status
}

// Clone returns a deep copy of the checklist
func (c *Checklist) Clone() *Checklist {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Items = make([]ChecklistItem, len(c.Items))
	copy(clone.Items, c.Items)
	for i := range clone.Items {
		if c.Items[i].CompletedAt != nil {
			t := *c.Items[i].CompletedAt
			clone.Items[i].CompletedAt = &t
		}
	}
	if c.CompletedAt != nil {
		t := *c.CompletedAt
		clone.CompletedAt = &t
	}
	return &clone
}

// ItemPatch is a partial update for a single checklist item. Nil fields are
// left unchanged.
type ItemPatch struct {
	IsCompleted *bool
	Notes       *string
}
