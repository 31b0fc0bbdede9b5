package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// IncidentID is a unique identifier for an incident
type IncidentID string

// NewIncidentID generates a new random incident ID
func NewIncidentID() IncidentID {
	return IncidentID(uuid.NewString())
}

func (x IncidentID) String() string {
	return string(x)
}

// Validate checks if the IncidentID is valid
func (x IncidentID) Validate() error {
	if x == "" {
		return goerr.New("incident ID cannot be empty")
	}
	return nil
}

// ChecklistID is a unique identifier for a checklist
type ChecklistID string

// NewChecklistID generates a new random checklist ID
func NewChecklistID() ChecklistID {
	return ChecklistID(uuid.NewString())
}

func (x ChecklistID) String() string {
	return string(x)
}

// Validate checks if the ChecklistID is valid
func (x ChecklistID) Validate() error {
	if x == "" {
		return goerr.New("checklist ID cannot be empty")
	}
	return nil
}

// ChecklistItemID is a unique identifier for an item within a checklist
type ChecklistItemID string

// NewChecklistItemID generates a new random checklist item ID
func NewChecklistItemID() ChecklistItemID {
	return ChecklistItemID(uuid.NewString())
}

func (x ChecklistItemID) String() string {
	return string(x)
}

// AlertID is a unique identifier for an alert
type AlertID string

// NewAlertID generates a new random alert ID
func NewAlertID() AlertID {
	return AlertID(uuid.NewString())
}

func (x AlertID) String() string {
	return string(x)
}

// Validate checks if the AlertID is valid
func (x AlertID) Validate() error {
	if x == "" {
		return goerr.New("alert ID cannot be empty")
	}
	return nil
}

// ReportID is a unique identifier for a persisted report snapshot
type ReportID string

// NewReportID generates a new random report ID
func NewReportID() ReportID {
	return ReportID(uuid.NewString())
}

func (x ReportID) String() string {
	return string(x)
}

// ActorID identifies the person performing an operation. Identity
// verification happens outside this service; the ID arrives as plain data.
type ActorID string

func (x ActorID) String() string {
	return string(x)
}

// Validate checks if the ActorID is valid
func (x ActorID) Validate() error {
	if x == "" {
		return goerr.New("actor ID cannot be empty")
	}
	return nil
}
