package types

import "fmt"

// IncidentType classifies what kind of safety incident occurred
type IncidentType string

const (
	IncidentTypeNearMiss        IncidentType = "near_miss"
	IncidentTypeInjury          IncidentType = "injury"
	IncidentTypeEquipmentDamage IncidentType = "equipment_damage"
	IncidentTypeEnvironmental   IncidentType = "environmental"
	IncidentTypeFire            IncidentType = "fire"
	IncidentTypeStructural      IncidentType = "structural"
	IncidentTypeOther           IncidentType = "other"
)

// AllIncidentTypes returns all valid incident types
func AllIncidentTypes() []IncidentType {
	return []IncidentType{
		IncidentTypeNearMiss,
		IncidentTypeInjury,
		IncidentTypeEquipmentDamage,
		IncidentTypeEnvironmental,
		IncidentTypeFire,
		IncidentTypeStructural,
		IncidentTypeOther,
	}
}

// IsValid checks if the incident type is valid
func (t IncidentType) IsValid() bool {
	switch t {
	case IncidentTypeNearMiss,
		IncidentTypeInjury,
		IncidentTypeEquipmentDamage,
		IncidentTypeEnvironmental,
		IncidentTypeFire,
		IncidentTypeStructural,
		IncidentTypeOther:
		return true
	default:
		return false
	}
}

func (t IncidentType) String() string {
	return string(t)
}

// ParseIncidentType parses a string into an IncidentType
func ParseIncidentType(s string) (IncidentType, error) {
	t := IncidentType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid incident type: %s", s)
	}
	return t, nil
}

// Severity represents incident severity, totally ordered by impact
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// AllSeverities returns all valid severities, lowest impact first
func AllSeverities() []Severity {
	return []Severity{
		SeverityLow,
		SeverityMedium,
		SeverityHigh,
		SeverityCritical,
	}
}

// IsValid checks if the severity is valid
func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	default:
		return false
	}
}

// Rank returns the ordinal position of the severity, lowest impact first.
// Invalid severities rank below low.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 0
	}
}

func (s Severity) String() string {
	return string(s)
}

// ParseSeverity parses a string into a Severity
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(s)
	if !sev.IsValid() {
		return "", fmt.Errorf("invalid severity: %s", s)
	}
	return sev, nil
}

// IncidentStatus represents the investigation status of an incident
type IncidentStatus string

const (
	IncidentStatusReported      IncidentStatus = "reported"
	IncidentStatusInvestigating IncidentStatus = "investigating"
	IncidentStatusResolved      IncidentStatus = "resolved"
	IncidentStatusClosed        IncidentStatus = "closed"
)

// AllIncidentStatuses returns all valid incident statuses in lifecycle order
func AllIncidentStatuses() []IncidentStatus {
	return []IncidentStatus{
		IncidentStatusReported,
		IncidentStatusInvestigating,
		IncidentStatusResolved,
		IncidentStatusClosed,
	}
}

// IsValid checks if the incident status is valid
func (s IncidentStatus) IsValid() bool {
	switch s {
	case IncidentStatusReported,
		IncidentStatusInvestigating,
		IncidentStatusResolved,
		IncidentStatusClosed:
		return true
	default:
		return false
	}
}

func (s IncidentStatus) order() int {
	switch s {
	case IncidentStatusReported:
		return 1
	case IncidentStatusInvestigating:
		return 2
	case IncidentStatusResolved:
		return 3
	case IncidentStatusClosed:
		return 4
	default:
		return 0
	}
}

// CanTransitionTo reports whether moving from s to next is a legal forward
// transition. Same-state transitions are allowed as no-ops. Reopening a
// resolved or closed incident goes through the dedicated reopen operation,
// not this check.
func (s IncidentStatus) CanTransitionTo(next IncidentStatus) bool {
	if !s.IsValid() || !next.IsValid() {
		return false
	}
	return next.order() >= s.order()
}

// IsTerminal reports whether the incident has completed investigation
func (s IncidentStatus) IsTerminal() bool {
	return s == IncidentStatusResolved || s == IncidentStatusClosed
}

func (s IncidentStatus) String() string {
	return string(s)
}

// ParseIncidentStatus parses a string into an IncidentStatus
func ParseIncidentStatus(s string) (IncidentStatus, error) {
	status := IncidentStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid incident status: %s", s)
	}
	return status, nil
}
