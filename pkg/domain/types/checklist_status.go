package types

import "fmt"

// ChecklistStatus represents the lifecycle state of a checklist. It is
// always derived from item completion counts and the due date, never set
// independently (see model.DeriveChecklistStatus).
type ChecklistStatus string

const (
	ChecklistStatusPending    ChecklistStatus = "pending"
	ChecklistStatusInProgress ChecklistStatus = "in_progress"
	ChecklistStatusCompleted  ChecklistStatus = "completed"
	ChecklistStatusOverdue    ChecklistStatus = "overdue"
)

// AllChecklistStatuses returns all valid checklist statuses
func AllChecklistStatuses() []ChecklistStatus {
	return []ChecklistStatus{
		ChecklistStatusPending,
		ChecklistStatusInProgress,
		ChecklistStatusCompleted,
		ChecklistStatusOverdue,
	}
}

// IsValid checks if the checklist status is valid
func (s ChecklistStatus) IsValid() bool {
	switch s {
	case ChecklistStatusPending,
		ChecklistStatusInProgress,
		ChecklistStatusCompleted,
		ChecklistStatusOverdue:
		return true
	default:
		return false
	}
}

func (s ChecklistStatus) String() string {
	return string(s)
}

// ParseChecklistStatus parses a string into a ChecklistStatus
func ParseChecklistStatus(s string) (ChecklistStatus, error) {
	status := ChecklistStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid checklist status: %s", s)
	}
	return status, nil
}
