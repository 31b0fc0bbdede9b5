package model

import (
	"slices"
	"time"

	"github.com/minesafe-lab/minesafe/pkg/domain/types"
)

// Alert is a broadcast message targeted at sections and roles. The sentinel
// value types.TargetAll in either set matches everything.
type Alert struct {
	ID             types.AlertID
	Title          string
	Message        string
	Priority       types.AlertPriority
	Status         types.AlertStatus
	TargetSections []string
	TargetRoles    []string
	CreatedBy      types.ActorID
	CreatorName    string
	AcknowledgedBy []types.ActorID
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ExpiresAt      *time.Time
}

// MatchesSection reports whether the alert targets the given section.
// An empty section filter matches everything.
func (a *Alert) MatchesSection(section string) bool {
	if section == "" {
		return true
	}
	return slices.Contains(a.TargetSections, types.TargetAll) ||
		slices.Contains(a.TargetSections, section)
}

// MatchesRole reports whether the alert targets the given role.
// An empty role filter matches everything.
func (a *Alert) MatchesRole(role string) bool {
	if role == "" {
		return true
	}
	return slices.Contains(a.TargetRoles, types.TargetAll) ||
		slices.Contains(a.TargetRoles, role)
}

// IsExpired reports whether the alert has an expiry that has passed
func (a *Alert) IsExpired(now time.Time) bool {
	return a.ExpiresAt != nil && !a.ExpiresAt.After(now)
}

// Acknowledge records the actor in AcknowledgedBy. It is idempotent: an
// actor appears at most once regardless of how many times it is called.
// Returns true if the set changed.
func (a *Alert) Acknowledge(actor types.ActorID) bool {
	if slices.Contains(a.AcknowledgedBy, actor) {
		return false
	}
	a.AcknowledgedBy = append(a.AcknowledgedBy, actor)
	return true
}

// Clone returns a deep copy of the alert
func (a *Alert) Clone() *Alert {
	if a == nil {
		return nil
	}
	clone := *a
	clone.TargetSections = append([]string(nil), a.TargetSections...)
	clone.TargetRoles = append([]string(nil), a.TargetRoles...)
	clone.AcknowledgedBy = append([]types.ActorID(nil), a.AcknowledgedBy...)
	if a.ExpiresAt != nil {
		t := *a.ExpiresAt
		clone.ExpiresAt = &t
	}
	return &clone
}
