package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minesafe-lab/minesafe/pkg/domain/interfaces"
	"github.com/minesafe-lab/minesafe/pkg/domain/model"
	"github.com/minesafe-lab/minesafe/pkg/domain/types"
	"github.com/minesafe-lab/minesafe/pkg/service/notify"
	"github.com/minesafe-lab/minesafe/pkg/utils/async"
	"github.com/minesafe-lab/minesafe/pkg/utils/logging"
)

type AlertUseCase struct {
	repo     interfaces.Repository
	notifier notify.Notifier
	clock    func() time.Time
	location *time.Location
}

func NewAlertUseCase(repo interfaces.Repository, notifier notify.Notifier, clock func() time.Time, loc *time.Location) *AlertUseCase {
	return &AlertUseCase{
		repo:     repo,
		notifier: notifier,
		clock:    clock,
		location: loc,
	}
}

// CreateAlertInput is the caller-supplied part of a new alert. Empty target
// sets default to the wildcard so an untargeted alert reaches everyone.
type CreateAlertInput struct {
	Title          string
	Message        string
	Priority       types.AlertPriority
	TargetSections []string
	TargetRoles    []string
	CreatedBy      types.ActorID
	CreatorName    string
	ExpiresAt      *time.Time
}

// Create persists a new alert, bumps the day's alert counter, and hands the
// alert to the notifier off the request path.
func (uc *AlertUseCase) Create(ctx context.Context, input CreateAlertInput) (*model.Alert, error) {
	if input.Title == "" {
		return nil, goerr.Wrap(ErrInvalidInput, "alert title is required")
	}
	if !input.Priority.IsValid() {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid alert priority",
			goerr.V("priority", input.Priority))
	}

	now := uc.clock()
	alert := &model.Alert{
		ID:             types.NewAlertID(),
		Title:          input.Title,
		Message:        input.Message,
		Priority:       input.Priority,
		Status:         types.AlertStatusActive,
		TargetSections: input.TargetSections,
		TargetRoles:    input.TargetRoles,
		CreatedBy:      input.CreatedBy,
		CreatorName:    input.CreatorName,
		CreatedAt:      now,
		UpdatedAt:      now,
		ExpiresAt:      input.ExpiresAt,
	}
	if len(alert.TargetSections) == 0 {
		alert.TargetSections = []string{types.TargetAll}
	}
	if len(alert.TargetRoles) == 0 {
		alert.TargetRoles = []string{types.TargetAll}
	}

	created, err := uc.repo.Alert().Create(ctx, alert)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create alert")
	}

	// Counter and delivery are best-effort side effects. The alert is
	// already persisted; neither failure should fail the creation.
	date := model.DateKey(now, uc.location)
	if err := uc.repo.DailyStat().Increment(ctx, date, model.DailyStatDelta{AlertsCreated: 1}); err != nil {
		logging.From(ctx).Warn("failed to increment alert counter",
			"date", date, "error", err)
	}

	dispatched := created.Clone()
	async.Dispatch(ctx, func(ctx context.Context) error {
		return uc.notifier.Notify(ctx, dispatched)
	})

	return created, nil
}

// CreateEmergency is the panic-button path: an emergency-priority alert
// addressed to every section and role.
func (uc *AlertUseCase) CreateEmergency(ctx context.Context, title, message string, createdBy types.ActorID, creatorName string) (*model.Alert, error) {
	return uc.Create(ctx, CreateAlertInput{
		Title:          title,
		Message:        message,
		Priority:       types.AlertPriorityEmergency,
		TargetSections: []string{types.TargetAll},
		TargetRoles:    []string{types.TargetAll},
		CreatedBy:      createdBy,
		CreatorName:    creatorName,
	})
}

// Get retrieves a single alert
func (uc *AlertUseCase) Get(ctx context.Context, id types.AlertID) (*model.Alert, error) {
	alert, err := uc.repo.Alert().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrAlertNotFound, "alert not found", goerr.V(AlertIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get alert", goerr.V(AlertIDKey, id))
	}
	return alert, nil
}

// ActiveAlertFilter narrows the active alert listing. Zero values mean no
// filtering on that axis.
type ActiveAlertFilter struct {
	Priority types.AlertPriority
	Section  string
	Role     string
}

// ListActive returns the active alerts relevant to a viewer, newest first.
// Filtering is two-phase: the store filters on status and priority, then
// section/role wildcard matching and expiry run in memory because "contains
// X or contains the wildcard" is not an indexable predicate.
func (uc *AlertUseCase) ListActive(ctx context.Context, filter ActiveAlertFilter) ([]*model.Alert, error) {
	opts := []interfaces.ListAlertOption{
		interfaces.WithAlertStatus(types.AlertStatusActive),
	}
	if filter.Priority != "" {
		if !filter.Priority.IsValid() {
			return nil, goerr.Wrap(ErrInvalidInput, "invalid alert priority",
				goerr.V("priority", filter.Priority))
		}
		opts = append(opts, interfaces.WithAlertPriority(filter.Priority))
	}

	alerts, err := uc.repo.Alert().List(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list alerts")
	}

	now := uc.clock()
	matched := make([]*model.Alert, 0, len(alerts))
	for _, alert := range alerts {
		if alert.IsExpired(now) {
			continue
		}
		if !alert.MatchesSection(filter.Section) || !alert.MatchesRole(filter.Role) {
			continue
		}
		matched = append(matched, alert)
	}
	return matched, nil
}

// Acknowledge records that the actor has seen the alert. Acknowledging is
// idempotent: repeat calls by the same actor change nothing and do not
// error. The first acknowledgement moves an active alert to acknowledged.
func (uc *AlertUseCase) Acknowledge(ctx context.Context, id types.AlertID, actor types.ActorID) (*model.Alert, error) {
	if actor == "" {
		return nil, goerr.Wrap(ErrActorMissing, "acknowledging actor is required",
			goerr.V(AlertIDKey, id))
	}

	alert, err := uc.repo.Alert().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrAlertNotFound, "alert not found", goerr.V(AlertIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get alert", goerr.V(AlertIDKey, id))
	}
	if alert.Status == types.AlertStatusResolved {
		return nil, goerr.Wrap(ErrAlertResolved, "cannot acknowledge a resolved alert",
			goerr.V(AlertIDKey, id))
	}

	if !alert.Acknowledge(actor) {
		return alert, nil
	}

	if alert.Status == types.AlertStatusActive {
		alert.Status = types.AlertStatusAcknowledged
	}
	alert.UpdatedAt = uc.clock()

	updated, err := uc.repo.Alert().Update(ctx, alert)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update alert", goerr.V(AlertIDKey, id))
	}
	return updated, nil
}

// Resolve closes out an alert. Resolving twice is a no-op.
func (uc *AlertUseCase) Resolve(ctx context.Context, id types.AlertID, actor types.ActorID) (*model.Alert, error) {
	alert, err := uc.repo.Alert().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrAlertNotFound, "alert not found", goerr.V(AlertIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get alert", goerr.V(AlertIDKey, id))
	}
	if alert.Status == types.AlertStatusResolved {
		return alert, nil
	}

	alert.Status = types.AlertStatusResolved
	if actor != "" {
		alert.Acknowledge(actor)
	}
	alert.UpdatedAt = uc.clock()

	updated, err := uc.repo.Alert().Update(ctx, alert)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update alert", goerr.V(AlertIDKey, id))
	}
	return updated, nil
}
