package types

import "fmt"

// TargetAll is the wildcard sentinel in alert targeting sets. It matches
// every section or role.
const TargetAll = "all"

// AlertPriority represents the urgency of a broadcast alert
type AlertPriority string

const (
	AlertPriorityInfo      AlertPriority = "info"
	AlertPriorityWarning   AlertPriority = "warning"
	AlertPriorityUrgent    AlertPriority = "urgent"
	AlertPriorityEmergency AlertPriority = "emergency"
)

// AllAlertPriorities returns all valid alert priorities, lowest first
func AllAlertPriorities() []AlertPriority {
	return []AlertPriority{
		AlertPriorityInfo,
		AlertPriorityWarning,
		AlertPriorityUrgent,
		AlertPriorityEmergency,
	}
}

// IsValid checks if the alert priority is valid
func (p AlertPriority) IsValid() bool {
	switch p {
	case AlertPriorityInfo, AlertPriorityWarning, AlertPriorityUrgent, AlertPriorityEmergency:
		return true
	default:
		return false
	}
}

func (p AlertPriority) String() string {
	return string(p)
}

// ParseAlertPriority parses a string into an AlertPriority
func ParseAlertPriority(s string) (AlertPriority, error) {
	p := AlertPriority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid alert priority: %s", s)
	}
	return p, nil
}

// AlertStatus represents the lifecycle state of an alert
type AlertStatus string

const (
	AlertStatusActive       AlertStatus = "active"
	AlertStatusAcknowledged AlertStatus = "acknowledged"
	AlertStatusResolved     AlertStatus = "resolved"
)

// AllAlertStatuses returns all valid alert statuses
func AllAlertStatuses() []AlertStatus {
	return []AlertStatus{
		AlertStatusActive,
		AlertStatusAcknowledged,
		AlertStatusResolved,
	}
}

// IsValid checks if the alert status is valid
func (s AlertStatus) IsValid() bool {
	switch s {
	case AlertStatusActive, AlertStatusAcknowledged, AlertStatusResolved:
		return true
	default:
		return false
	}
}

func (s AlertStatus) String() string {
	return string(s)
}

// ParseAlertStatus parses a string into an AlertStatus
func ParseAlertStatus(s string) (AlertStatus, error) {
	status := AlertStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid alert status: %s", s)
	}
	return status, nil
}
