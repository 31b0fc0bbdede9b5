package model

import (
	"time"

	"github.com/minesafe-lab/minesafe/pkg/domain/types"
)

// Incident represents a reported safety incident at the mine site
type Incident struct {
	ID          types.IncidentID
	Type        types.IncidentType
	Severity    types.Severity
	Status      types.IncidentStatus
	Title       string
	Description string

	// Location within the site
	Section string
	Level   string

	ReportedBy   types.ActorID
	ReporterName string
	AssigneeID   types.ActorID

	InjuryCount       int
	WitnessCount      int
	EquipmentInvolved []string

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ResolvedAt *time.Time
}

// Clone returns a deep copy of the incident
func (i *Incident) Clone() *Incident {
	if i == nil {
		return nil
	}
	clone := *i
	clone.EquipmentInvolved = append([]string(nil), i.EquipmentInvolved...)
	if i.ResolvedAt != nil {
		t := *i.ResolvedAt
		clone.ResolvedAt = &t
	}
	return &clone
}
