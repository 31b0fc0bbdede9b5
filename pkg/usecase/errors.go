package usecase

import "errors"

// Sentinel errors for the use case layer
var (
	// Not found errors
	ErrIncidentNotFound  = errors.New("incident not found")
	ErrChecklistNotFound = errors.New("checklist not found")
	ErrItemNotFound      = errors.New("checklist item not found")
	ErrAlertNotFound     = errors.New("alert not found")
	ErrReportNotFound    = errors.New("report not found")

	// State errors
	ErrInvalidTransition = errors.New("invalid incident status transition")
	ErrIncidentNotClosed = errors.New("incident is not resolved or closed")
	ErrAlertResolved     = errors.New("alert is already resolved")

	// Input errors
	ErrInvalidInput = errors.New("invalid input")
	ErrActorMissing = errors.New("actor is required")

	// ErrPartialBatch marks a batch operation where some writes failed.
	// Callers get the successful count alongside this error.
	ErrPartialBatch = errors.New("batch operation partially failed")
)

// Context keys for error values
const (
	IncidentIDKey  = "incident_id"
	ChecklistIDKey = "checklist_id"
	ItemIDKey      = "item_id"
	AlertIDKey     = "alert_id"
)
