package http

import (
	"time"

	"github.com/minesafe-lab/minesafe/pkg/domain/model"
	"github.com/minesafe-lab/minesafe/pkg/domain/types"
)

type incidentResponse struct {
	ID                types.IncidentID     `json:"id"`
	Type              types.IncidentType   `json:"type"`
	Severity          types.Severity       `json:"severity"`
	Status            types.IncidentStatus `json:"status"`
	Title             string               `json:"title"`
	Description       string               `json:"description,omitempty"`
	Section           string               `json:"section,omitempty"`
	Level             string               `json:"level,omitempty"`
	ReportedBy        types.ActorID        `json:"reported_by"`
	ReporterName      string               `json:"reporter_name,omitempty"`
	AssigneeID        types.ActorID        `json:"assignee_id,omitempty"`
	InjuryCount       int                  `json:"injury_count"`
	WitnessCount      int                  `json:"witness_count"`
	EquipmentInvolved []string             `json:"equipment_involved,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
	ResolvedAt        *time.Time           `json:"resolved_at,omitempty"`
}

func toIncidentResponse(incident *model.Incident) incidentResponse {
	return incidentResponse{
		ID:                incident.ID,
		Type:              incident.Type,
		Severity:          incident.Severity,
		Status:            incident.Status,
		Title:             incident.Title,
		Description:       incident.Description,
		Section:           incident.Section,
		Level:             incident.Level,
		ReportedBy:        incident.ReportedBy,
		ReporterName:      incident.ReporterName,
		AssigneeID:        incident.AssigneeID,
		InjuryCount:       incident.InjuryCount,
		WitnessCount:      incident.WitnessCount,
		EquipmentInvolved: incident.EquipmentInvolved,
		CreatedAt:         incident.CreatedAt,
		UpdatedAt:         incident.UpdatedAt,
		ResolvedAt:        incident.ResolvedAt,
	}
}

func toIncidentResponses(incidents []*model.Incident) []incidentResponse {
	out := make([]incidentResponse, len(incidents))
	for i, incident := range incidents {
		out[i] = toIncidentResponse(incident)
	}
	return out
}

type checklistItemResponse struct {
	ID            types.ChecklistItemID `json:"id"`
	Description   string                `json:"description"`
	IsCompleted   bool                  `json:"is_completed"`
	CompletedAt   *time.Time            `json:"completed_at,omitempty"`
	CompletedBy   types.ActorID         `json:"completed_by,omitempty"`
	Notes         string                `json:"notes,omitempty"`
	RequiresPhoto bool                  `json:"requires_photo"`
}

type checklistResponse struct {
	ID          types.ChecklistID       `json:"id"`
	Title       string                  `json:"title"`
	Category    string                  `json:"category,omitempty"`
	Section     string                  `json:"section,omitempty"`
	Shift       string                  `json:"shift,omitempty"`
	Status      types.ChecklistStatus   `json:"status"`
	Items       []checklistItemResponse `json:"items"`
	DueDate     time.Time               `json:"due_date"`
	CompletedAt *time.Time              `json:"completed_at,omitempty"`
	CreatedBy   types.ActorID           `json:"created_by"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

func toChecklistResponse(checklist *model.Checklist) checklistResponse {
	items := make([]checklistItemResponse, len(checklist.Items))
	for i, item := range checklist.Items {
		items[i] = checklistItemResponse{
			ID:            item.ID,
			Description:   item.Description,
			IsCompleted:   item.IsCompleted,
			CompletedAt:   item.CompletedAt,
			CompletedBy:   item.CompletedBy,
			Notes:         item.Notes,
			RequiresPhoto: item.RequiresPhoto,
		}
	}
	return checklistResponse{
		ID:          checklist.ID,
		Title:       checklist.Title,
		Category:    checklist.Category,
		Section:     checklist.Section,
		Shift:       checklist.Shift,
		Status:      checklist.Status,
		Items:       items,
		DueDate:     checklist.DueDate,
		CompletedAt: checklist.CompletedAt,
		CreatedBy:   checklist.CreatedBy,
		CreatedAt:   checklist.CreatedAt,
		UpdatedAt:   checklist.UpdatedAt,
	}
}

func toChecklistResponses(checklists []*model.Checklist) []checklistResponse {
	out := make([]checklistResponse, len(checklists))
	for i, checklist := range checklists {
		out[i] = toChecklistResponse(checklist)
	}
	return out
}

type alertResponse struct {
	ID             types.AlertID       `json:"id"`
	Title          string              `json:"title"`
	Message        string              `json:"message,omitempty"`
	Priority       types.AlertPriority `json:"priority"`
	Status         types.AlertStatus   `json:"status"`
	TargetSections []string            `json:"target_sections"`
	TargetRoles    []string            `json:"target_roles"`
	CreatedBy      types.ActorID       `json:"created_by,omitempty"`
	CreatorName    string              `json:"creator_name,omitempty"`
	AcknowledgedBy []types.ActorID     `json:"acknowledged_by"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	ExpiresAt      *time.Time          `json:"expires_at,omitempty"`
}

func toAlertResponse(alert *model.Alert) alertResponse {
	acked := alert.AcknowledgedBy
	if acked == nil {
		acked = []types.ActorID{}
	}
	return alertResponse{
		ID:             alert.ID,
		Title:          alert.Title,
		Message:        alert.Message,
		Priority:       alert.Priority,
		Status:         alert.Status,
		TargetSections: alert.TargetSections,
		TargetRoles:    alert.TargetRoles,
		CreatedBy:      alert.CreatedBy,
		CreatorName:    alert.CreatorName,
		AcknowledgedBy: acked,
		CreatedAt:      alert.CreatedAt,
		UpdatedAt:      alert.UpdatedAt,
		ExpiresAt:      alert.ExpiresAt,
	}
}

func toAlertResponses(alerts []*model.Alert) []alertResponse {
	out := make([]alertResponse, len(alerts))
	for i, alert := range alerts {
		out[i] = toAlertResponse(alert)
	}
	return out
}

type reportResponse struct {
	ID          types.ReportID        `json:"id"`
	Kind        model.ReportKind      `json:"kind"`
	Label       string                `json:"label"`
	Window      model.TimeWindow      `json:"window"`
	Incidents   *model.IncidentStats  `json:"incidents"`
	Checklists  *model.ChecklistStats `json:"checklists"`
	Score       *model.SafetyScore    `json:"score"`
	GeneratedAt time.Time             `json:"generated_at"`
}

func toReportResponse(report *model.Report) reportResponse {
	return reportResponse{
		ID:          report.ID,
		Kind:        report.Kind,
		Label:       report.Label,
		Window:      report.Window,
		Incidents:   report.Incidents,
		Checklists:  report.Checklists,
		Score:       report.Score,
		GeneratedAt: report.GeneratedAt,
	}
}
