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

type ReportUseCase struct {
	repo      interfaces.Repository
	analytics *AnalyticsUseCase
	alerts    *AlertUseCase
	clock     func() time.Time
	location  *time.Location
}

func NewReportUseCase(repo interfaces.Repository, analytics *AnalyticsUseCase, alerts *AlertUseCase, clock func() time.Time, loc *time.Location) *ReportUseCase {
	return &ReportUseCase{
		repo:      repo,
		analytics: analytics,
		alerts:    alerts,
		clock:     clock,
		location:  loc,
	}
}

func (uc *ReportUseCase) buildReport(ctx context.Context, kind model.ReportKind, label string, window model.TimeWindow) (*model.Report, error) {
	incidents, err := uc.analytics.IncidentStats(ctx, window)
	if err != nil {
		return nil, err
	}
	checklists, err := uc.analytics.ChecklistStats(ctx, window)
	if err != nil {
		return nil, err
	}

	report := &model.Report{
		ID:          types.NewReportID(),
		Kind:        kind,
		Label:       label,
		Window:      window,
		Incidents:   incidents,
		Checklists:  checklists,
		Score:       model.ComputeSafetyScore(window, incidents, checklists, uc.analytics.weights),
		GeneratedAt: uc.clock(),
	}

	if err := uc.repo.Report().Put(ctx, report); err != nil {
		return nil, goerr.Wrap(err, "failed to persist report",
			goerr.V("kind", kind), goerr.V("label", label))
	}
	return report, nil
}

// Daily generates and persists the snapshot for one site-local calendar
// day. Re-running the job for a day it already covered recomputes and
// overwrites the same snapshot, so retries are harmless.
func (uc *ReportUseCase) Daily(ctx context.Context, day time.Time) (*model.Report, error) {
	label := model.DateKey(day, uc.location)

	start, err := time.ParseInLocation("2006-01-02", label, uc.location)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve day boundary", goerr.V("day", day))
	}
	// Closed window covering the whole local day.
	window := model.TimeWindow{
		From: start,
		To:   start.Add(24*time.Hour - time.Nanosecond),
	}

	return uc.buildReport(ctx, model.ReportKindDaily, label, window)
}

// Weekly generates and persists the snapshot for the trailing seven days
// ending at weekEnding, then announces the checklist completion rate with
// an info alert so crews see the week's outcome.
func (uc *ReportUseCase) Weekly(ctx context.Context, weekEnding time.Time) (*model.Report, error) {
	label := model.DateKey(weekEnding, uc.location)
	window := model.TrailingWindow(weekEnding, 7*24*time.Hour)

	report, err := uc.buildReport(ctx, model.ReportKindWeekly, label, window)
	if err != nil {
		return nil, err
	}

	_, alertErr := uc.alerts.Create(ctx, CreateAlertInput{
		Title: fmt.Sprintf("Weekly safety summary (%s)", label),
		Message: fmt.Sprintf(
			"Week ending %s: %d incident(s) reported, checklist completion %d%%, safety score %d.",
			label, report.Incidents.Total, report.Checklists.CompletionRate, report.Score.Score,
		),
		Priority:       types.AlertPriorityInfo,
		TargetSections: []string{types.TargetAll},
		TargetRoles:    []string{types.TargetAll},
	})
	if alertErr != nil {
		logging.From(ctx).Error("failed to announce weekly summary", "error", alertErr)
	}

	return report, nil
}

// Get retrieves a previously generated snapshot
func (uc *ReportUseCase) Get(ctx context.Context, kind model.ReportKind, label string) (*model.Report, error) {
	report, err := uc.repo.Report().Get(ctx, kind, label)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrReportNotFound, "report not found",
				goerr.V("kind", kind), goerr.V("label", label))
		}
		return nil, goerr.Wrap(err, "failed to get report",
			goerr.V("kind", kind), goerr.V("label", label))
	}
	return report, nil
}

// List retrieves the most recent snapshots of a kind, newest first
func (uc *ReportUseCase) List(ctx context.Context, kind model.ReportKind, limit int) ([]*model.Report, error) {
	reports, err := uc.repo.Report().List(ctx, kind, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list reports")
	}
	return reports, nil
}
