package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/minesafe-lab/minesafe/pkg/domain/model"
	"github.com/minesafe-lab/minesafe/pkg/domain/types"
	"github.com/minesafe-lab/minesafe/pkg/usecase"
)

func TestDailyReport(t *testing.T) {
	ctx := context.Background()

	t.Run("snapshots one local day", func(t *testing.T) {
		clock := newTestClock(baseTime)
		uc, _ := newTestUseCases(clock)

		reportIncidents(t, uc, types.SeverityHigh, types.SeverityHigh)
		done := createTestChecklist(t, uc, baseTime.Add(8*time.Hour), 1)
		completeChecklist(t, uc, done)

		report, err := uc.Report.Daily(ctx, baseTime)
		gt.NoError(t, err).Required()
		gt.Value(t, report.Kind).Equal(model.ReportKindDaily)
		gt.Value(t, report.Label).Equal("2026-03-09")
		gt.Value(t, report.Incidents.Total).Equal(2)
		gt.Value(t, report.Checklists.CompletionRate).Equal(100)
		// 100 - 20 + 20 = 100.
		gt.Value(t, report.Score.Score).Equal(100)

		got, err := uc.Report.Get(ctx, model.ReportKindDaily, "2026-03-09")
		gt.NoError(t, err).Required()
		gt.Value(t, got.ID).Equal(report.ID)
	})

	t.Run("events on other days are excluded", func(t *testing.T) {
		clock := newTestClock(baseTime)
		uc, _ := newTestUseCases(clock)

		reportIncidents(t, uc, types.SeverityLow)

		report, err := uc.Report.Daily(ctx, baseTime.AddDate(0, 0, -1))
		gt.NoError(t, err).Required()
		gt.Value(t, report.Label).Equal("2026-03-08")
		gt.Value(t, report.Incidents.Total).Equal(0)
	})

	t.Run("re-running a day overwrites the snapshot", func(t *testing.T) {
		clock := newTestClock(baseTime)
		uc, _ := newTestUseCases(clock)

		first, err := uc.Report.Daily(ctx, baseTime)
		gt.NoError(t, err).Required()
		gt.Value(t, first.Incidents.Total).Equal(0)

		reportIncidents(t, uc, types.SeverityLow)
		second, err := uc.Report.Daily(ctx, baseTime)
		gt.NoError(t, err).Required()

		reports, err := uc.Report.List(ctx, model.ReportKindDaily, 0)
		gt.NoError(t, err).Required()
		gt.Array(t, reports).Length(1)
		gt.Value(t, reports[0].ID).Equal(second.ID)
		gt.Value(t, reports[0].Incidents.Total).Equal(1)
	})

	t.Run("missing snapshot fails with sentinel", func(t *testing.T) {
		clock := newTestClock(baseTime)
		uc, _ := newTestUseCases(clock)

		_, err := uc.Report.Get(ctx, model.ReportKindDaily, "1999-12-31")
		gt.Error(t, err).Is(usecase.ErrReportNotFound)
	})
}

func TestWeeklySummary(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock(baseTime)
	uc, repo := newTestUseCases(clock)

	// Two incidents inside the trailing week, one well before it.
	reportIncidents(t, uc, types.SeverityMedium, types.SeverityLow)
	_, err := repo.Incident().Create(ctx, &model.Incident{
		ID:        types.NewIncidentID(),
		Type:      types.IncidentTypeNearMiss,
		Severity:  types.SeverityHigh,
		Status:    types.IncidentStatusReported,
		Title:     "Stale report from last week",
		CreatedAt: baseTime.AddDate(0, 0, -10),
		UpdatedAt: baseTime.AddDate(0, 0, -10),
	})
	gt.NoError(t, err).Required()

	done := createTestChecklist(t, uc, baseTime.Add(8*time.Hour), 1)
	completeChecklist(t, uc, done)

	report, err := uc.Report.Weekly(ctx, baseTime)
	gt.NoError(t, err).Required()
	gt.Value(t, report.Kind).Equal(model.ReportKindWeekly)
	gt.Value(t, report.Label).Equal("2026-03-09")
	gt.Value(t, report.Incidents.Total).Equal(2)
	gt.Value(t, report.Checklists.CompletionRate).Equal(100)

	// The summary is announced site-wide as an info alert.
	alerts, err := uc.Alert.ListActive(ctx, usecase.ActiveAlertFilter{})
	gt.NoError(t, err).Required()
	gt.Array(t, alerts).Length(1)
	gt.Value(t, alerts[0].Priority).Equal(types.AlertPriorityInfo)
	gt.Value(t, alerts[0].TargetSections).Equal([]string{types.TargetAll})
}
