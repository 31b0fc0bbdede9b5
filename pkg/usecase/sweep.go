package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minesafe-lab/minesafe/pkg/domain/interfaces"
	"github.com/minesafe-lab/minesafe/pkg/domain/model"
	"github.com/minesafe-lab/minesafe/pkg/domain/types"
	"github.com/minesafe-lab/minesafe/pkg/utils/logging"
)

// SweepResult summarizes one overdue sweep run
type SweepResult struct {
	Scanned     int
	MarkedCount int
	Marked      []types.ChecklistID
	AlertID     types.AlertID
}

// RunOverdueSweep scans open checklists past their due date and marks the
// untouched ones overdue, using the same status derivation as the item
// update path so the two can never disagree. Partially completed lists stay
// in_progress. If anything was marked, one warning alert is raised for site
// admins and supervisors summarizing the run.
//
// The sweep is idempotent: a second run over the same data finds the
// checklists already overdue, excluded by the status filter, and raises no
// further alert.
func (uc *ChecklistUseCase) RunOverdueSweep(ctx context.Context) (*SweepResult, error) {
	now := uc.clock()

	candidates, err := uc.repo.Checklist().List(ctx,
		interfaces.WithChecklistStatuses(
			types.ChecklistStatusPending,
			types.ChecklistStatusInProgress,
		),
		interfaces.WithChecklistDueBefore(now),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list sweep candidates")
	}

	result := &SweepResult{Scanned: len(candidates)}

	var updates []interfaces.ChecklistStatusUpdate
	for _, checklist := range candidates {
		derived := model.DeriveChecklistStatus(
			checklist.CompletedCount(), len(checklist.Items),
			checklist.DueDate, now,
		)
		if derived == checklist.Status || derived != types.ChecklistStatusOverdue {
			continue
		}
		updates = append(updates, interfaces.ChecklistStatusUpdate{
			ID:     checklist.ID,
			Status: types.ChecklistStatusOverdue,
		})
		result.Marked = append(result.Marked, checklist.ID)
	}

	if len(updates) == 0 {
		return result, nil
	}

	updated, err := uc.repo.Checklist().BatchUpdateStatus(ctx, updates)
	result.MarkedCount = updated
	if err != nil {
		// Partial success: the marked count is accurate, the alert still
		// goes out for what was marked.
		logging.From(ctx).Error("overdue sweep batch partially failed",
			"attempted", len(updates), "updated", updated, "error", err)
	}

	if updated > 0 {
		alert, alertErr := uc.alerts.Create(ctx, CreateAlertInput{
			Title:    fmt.Sprintf("%d checklist(s) overdue", updated),
			Message:  fmt.Sprintf("The overdue sweep found %d checklist(s) past due with no progress. Review and reassign as needed.", updated),
			Priority: types.AlertPriorityWarning,
			TargetSections: []string{
				types.TargetAll,
			},
			TargetRoles: []string{"admin", "supervisor"},
		})
		if alertErr != nil {
			logging.From(ctx).Error("failed to raise overdue sweep alert", "error", alertErr)
		} else {
			result.AlertID = alert.ID
		}
	}

	if err != nil {
		return result, goerr.Wrap(ErrPartialBatch, "overdue sweep completed with failures",
			goerr.V("attempted", len(updates)),
			goerr.V("updated", updated),
			goerr.V("cause", err.Error()),
		)
	}
	return result, nil
}
