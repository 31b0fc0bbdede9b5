package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minesafe-lab/minesafe/pkg/domain/interfaces"
	"github.com/minesafe-lab/minesafe/pkg/domain/model"
	"github.com/minesafe-lab/minesafe/pkg/domain/types"
	"github.com/minesafe-lab/minesafe/pkg/utils/logging"
)

type IncidentUseCase struct {
	repo     interfaces.Repository
	alerts   *AlertUseCase
	clock    func() time.Time
	location *time.Location
}

func NewIncidentUseCase(repo interfaces.Repository, alerts *AlertUseCase, clock func() time.Time, loc *time.Location) *IncidentUseCase {
	return &IncidentUseCase{
		repo:     repo,
		alerts:   alerts,
		clock:    clock,
		location: loc,
	}
}

// CreateIncidentInput is the caller-supplied part of a new incident report
type CreateIncidentInput struct {
	Type              types.IncidentType
	Severity          types.Severity
	Title             string
	Description       string
	Section           string
	Level             string
	ReportedBy        types.ActorID
	ReporterName      string
	InjuryCount       int
	WitnessCount      int
	EquipmentInvolved []string
}

// Create files a new incident report. The incident starts in reported
// status. A critical-severity report additionally raises an urgent alert
// for the affected section so supervisors see it without polling.
func (uc *IncidentUseCase) Create(ctx context.Context, input CreateIncidentInput) (*model.Incident, error) {
	if input.Title == "" {
		return nil, goerr.Wrap(ErrInvalidInput, "incident title is required")
	}
	if !input.Type.IsValid() {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid incident type",
			goerr.V("type", input.Type))
	}
	if !input.Severity.IsValid() {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid severity",
			goerr.V("severity", input.Severity))
	}
	if input.InjuryCount < 0 || input.WitnessCount < 0 {
		return nil, goerr.Wrap(ErrInvalidInput, "counts must not be negative")
	}

	now := uc.clock()
	incident := &model.Incident{
		ID:                types.NewIncidentID(),
		Type:              input.Type,
		Severity:          input.Severity,
		Status:            types.IncidentStatusReported,
		Title:             input.Title,
		Description:       input.Description,
		Section:           input.Section,
		Level:             input.Level,
		ReportedBy:        input.ReportedBy,
		ReporterName:      input.ReporterName,
		InjuryCount:       input.InjuryCount,
		WitnessCount:      input.WitnessCount,
		EquipmentInvolved: input.EquipmentInvolved,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	created, err := uc.repo.Incident().Create(ctx, incident)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create incident")
	}

	date := model.DateKey(now, uc.location)
	if err := uc.repo.DailyStat().Increment(ctx, date, model.DailyStatDelta{IncidentsReported: 1}); err != nil {
		logging.From(ctx).Warn("failed to increment incident counter",
			"date", date, "error", err)
	}

	if created.Severity == types.SeverityCritical {
		sections := []string{types.TargetAll}
		if created.Section != "" {
			sections = []string{created.Section}
		}
		_, err := uc.alerts.Create(ctx, CreateAlertInput{
			Title:    fmt.Sprintf("Critical incident: %s", created.Title),
			Message:  fmt.Sprintf("A critical %s incident was reported in section %s. Incident ID: %s", created.Type, created.Section, created.ID),
			Priority: types.AlertPriorityUrgent,
			// Everyone in the affected section; site-wide when the
			// report does not name one.
			TargetSections: sections,
			TargetRoles:    []string{types.TargetAll},
			CreatedBy:      created.ReportedBy,
			CreatorName:    created.ReporterName,
		})
		if err != nil {
			logging.From(ctx).Error("failed to raise critical incident alert",
				IncidentIDKey, created.ID, "error", err)
		}
	}

	return created, nil
}

// Get retrieves a single incident
func (uc *IncidentUseCase) Get(ctx context.Context, id types.IncidentID) (*model.Incident, error) {
	incident, err := uc.repo.Incident().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrIncidentNotFound, "incident not found", goerr.V(IncidentIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get incident", goerr.V(IncidentIDKey, id))
	}
	return incident, nil
}

// List retrieves incidents, newest first, with optional filters
func (uc *IncidentUseCase) List(ctx context.Context, opts ...interfaces.ListIncidentOption) ([]*model.Incident, error) {
	incidents, err := uc.repo.Incident().List(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list incidents")
	}
	return incidents, nil
}

// UpdateStatus advances an incident through its lifecycle. Transitions only
// move forward (reported, investigating, resolved, closed); going backwards
// requires the explicit Reopen operation. Same-state updates are accepted
// as no-ops. Entering resolved stamps ResolvedAt and bumps the day's
// resolution counter.
func (uc *IncidentUseCase) UpdateStatus(ctx context.Context, id types.IncidentID, next types.IncidentStatus, assignee types.ActorID) (*model.Incident, error) {
	if !next.IsValid() {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid incident status",
			goerr.V("status", next))
	}

	incident, err := uc.repo.Incident().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrIncidentNotFound, "incident not found", goerr.V(IncidentIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get incident", goerr.V(IncidentIDKey, id))
	}

	if !incident.Status.CanTransitionTo(next) {
		return nil, goerr.Wrap(ErrInvalidTransition, "cannot move incident status backwards",
			goerr.V(IncidentIDKey, id),
			goerr.V("from", incident.Status),
			goerr.V("to", next),
		)
	}
	if incident.Status == next {
		return incident, nil
	}

	now := uc.clock()
	entersResolved := next == types.IncidentStatusResolved && incident.ResolvedAt == nil

	incident.Status = next
	incident.UpdatedAt = now
	if assignee != "" {
		incident.AssigneeID = assignee
	}
	if entersResolved {
		t := now
		incident.ResolvedAt = &t
	}

	updated, err := uc.repo.Incident().Update(ctx, incident)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update incident", goerr.V(IncidentIDKey, id))
	}

	if entersResolved {
		date := model.DateKey(now, uc.location)
		if err := uc.repo.DailyStat().Increment(ctx, date, model.DailyStatDelta{IncidentsResolved: 1}); err != nil {
			logging.From(ctx).Warn("failed to increment resolution counter",
				"date", date, "error", err)
		}
	}

	return updated, nil
}

// Reopen pulls a resolved or closed incident back to investigating, for
// when a closed report turns out to be premature. ResolvedAt is cleared.
func (uc *IncidentUseCase) Reopen(ctx context.Context, id types.IncidentID, assignee types.ActorID) (*model.Incident, error) {
	incident, err := uc.repo.Incident().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrIncidentNotFound, "incident not found", goerr.V(IncidentIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get incident", goerr.V(IncidentIDKey, id))
	}

	if !incident.Status.IsTerminal() {
		return nil, goerr.Wrap(ErrIncidentNotClosed, "only resolved or closed incidents can be reopened",
			goerr.V(IncidentIDKey, id),
			goerr.V("status", incident.Status),
		)
	}

	incident.Status = types.IncidentStatusInvestigating
	incident.ResolvedAt = nil
	incident.UpdatedAt = uc.clock()
	if assignee != "" {
		incident.AssigneeID = assignee
	}

	updated, err := uc.repo.Incident().Update(ctx, incident)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update incident", goerr.V(IncidentIDKey, id))
	}
	return updated, nil
}
