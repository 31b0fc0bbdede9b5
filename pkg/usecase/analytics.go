package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minesafe-lab/minesafe/pkg/domain/interfaces"
	"github.com/minesafe-lab/minesafe/pkg/domain/model"
	"github.com/minesafe-lab/minesafe/pkg/domain/types"
	"golang.org/x/sync/errgroup"
)

// scoreWindow is the rolling window the safety score is computed over
const scoreWindow = 30 * 24 * time.Hour

type AnalyticsUseCase struct {
	repo    interfaces.Repository
	weights model.ScoreWeights
	clock   func() time.Time
}

func NewAnalyticsUseCase(repo interfaces.Repository, weights model.ScoreWeights, clock func() time.Time) *AnalyticsUseCase {
	return &AnalyticsUseCase{
		repo:    repo,
		weights: weights,
		clock:   clock,
	}
}

// IncidentStats aggregates incidents created inside the window. Every
// severity, status and type bucket is present in the result even when zero.
func (uc *AnalyticsUseCase) IncidentStats(ctx context.Context, window model.TimeWindow) (*model.IncidentStats, error) {
	incidents, err := uc.repo.Incident().List(ctx, interfaces.WithIncidentWindow(window))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list incidents for stats")
	}

	stats := model.NewIncidentStats(window)
	for _, incident := range incidents {
		stats.Tally(incident)
	}
	return stats, nil
}

// ChecklistStats aggregates checklists created inside the window, including
// the completion rate and a per-category breakdown.
func (uc *AnalyticsUseCase) ChecklistStats(ctx context.Context, window model.TimeWindow) (*model.ChecklistStats, error) {
	checklists, err := uc.repo.Checklist().List(ctx, interfaces.WithChecklistWindow(window))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list checklists for stats")
	}

	stats := model.NewChecklistStats(window)
	for _, checklist := range checklists {
		stats.Tally(checklist)
	}
	stats.Finalize()
	return stats, nil
}

// SafetyScore computes the site safety score over the trailing 30 days.
// The incident and checklist aggregations are fetched concurrently.
func (uc *AnalyticsUseCase) SafetyScore(ctx context.Context) (*model.SafetyScore, error) {
	window := model.TrailingWindow(uc.clock(), scoreWindow)
	return uc.scoreForWindow(ctx, window)
}

func (uc *AnalyticsUseCase) scoreForWindow(ctx context.Context, window model.TimeWindow) (*model.SafetyScore, error) {
	var (
		incidents  *model.IncidentStats
		checklists *model.ChecklistStats
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		incidents, err = uc.IncidentStats(egCtx, window)
		return err
	})
	eg.Go(func() error {
		var err error
		checklists, err = uc.ChecklistStats(egCtx, window)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "failed to aggregate for safety score")
	}

	return model.ComputeSafetyScore(window, incidents, checklists, uc.weights), nil
}

// Dashboard is the at-a-glance summary for the operations screen
type Dashboard struct {
	Window        model.TimeWindow
	Incidents     *model.IncidentStats
	Checklists    *model.ChecklistStats
	Score         *model.SafetyScore
	ActiveAlerts  int
	OpenIncidents int64
}

// Dashboard assembles the summary over the trailing 30 days. The component
// queries run concurrently.
func (uc *AnalyticsUseCase) Dashboard(ctx context.Context) (*Dashboard, error) {
	now := uc.clock()
	window := model.TrailingWindow(now, scoreWindow)
	dashboard := &Dashboard{Window: window}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		dashboard.Incidents, err = uc.IncidentStats(egCtx, window)
		return err
	})
	eg.Go(func() error {
		var err error
		dashboard.Checklists, err = uc.ChecklistStats(egCtx, window)
		return err
	})
	eg.Go(func() error {
		alerts, err := uc.repo.Alert().List(egCtx,
			interfaces.WithAlertStatus(types.AlertStatusActive))
		if err != nil {
			return err
		}
		for _, alert := range alerts {
			if !alert.IsExpired(now) {
				dashboard.ActiveAlerts++
			}
		}
		return nil
	})
	eg.Go(func() error {
		// Open means not yet terminal: reported or investigating.
		for _, status := range []types.IncidentStatus{
			types.IncidentStatusReported,
			types.IncidentStatusInvestigating,
		} {
			n, err := uc.repo.Incident().Count(egCtx,
				interfaces.WithIncidentStatus(status))
			if err != nil {
				return err
			}
			dashboard.OpenIncidents += n
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "failed to assemble dashboard")
	}

	dashboard.Score = model.ComputeSafetyScore(window, dashboard.Incidents, dashboard.Checklists, uc.weights)
	return dashboard, nil
}
