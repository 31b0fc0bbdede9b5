package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"

	"github.com/minesafe-lab/minesafe/pkg/cli/config"
	"github.com/minesafe-lab/minesafe/pkg/domain/model"
	"github.com/minesafe-lab/minesafe/pkg/domain/types"
	"github.com/minesafe-lab/minesafe/pkg/repository/memory"
	"github.com/minesafe-lab/minesafe/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// cmdDemo seeds an in-memory repository with sample site activity and prints
// the resulting dashboard. Useful for trying out the scoring model without a
// Firestore project.
func cmdDemo() *cli.Command {
	var siteCfg config.Site

	return &cli.Command{
		Name:  "demo",
		Usage: "Seed sample data in memory and print the safety dashboard",
		Flags: siteCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			policy, err := siteCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load site config")
			}
			loc, err := policy.Location()
			if err != nil {
				return goerr.Wrap(err, "failed to resolve site timezone")
			}

			uc := usecase.New(memory.New(),
				usecase.WithScoreWeights(policy.Weights),
				usecase.WithLocation(loc),
			)

			section := "pit"
			if len(policy.Sections) > 0 {
				section = policy.Sections[0]
			}
			if err := seedDemoData(ctx, uc, section); err != nil {
				return goerr.Wrap(err, "failed to seed demo data")
			}

			dash, err := uc.Analytics.Dashboard(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to build dashboard")
			}

			printDashboard(dash, policy)
			return nil
		},
	}
}

func seedDemoData(ctx context.Context, uc *usecase.UseCases, section string) error {
	incidents := []usecase.CreateIncidentInput{
		{
			Type:         types.IncidentTypeNearMiss,
			Severity:     types.SeverityLow,
			Title:        "Loose rock spotted near haul road",
			Section:      section,
			ReportedBy:   "demo-miner-1",
			ReporterName: "Demo Miner",
			WitnessCount: 1,
		},
		{
			Type:              types.IncidentTypeEquipmentDamage,
			Severity:          types.SeverityHigh,
			Title:             "Conveyor belt tear at crusher feed",
			Section:           section,
			ReportedBy:        "demo-supervisor-1",
			ReporterName:      "Demo Supervisor",
			EquipmentInvolved: []string{"CV-03"},
		},
	}
	for _, input := range incidents {
		if _, err := uc.Incident.Create(ctx, input); err != nil {
			return err
		}
	}

	checklist, err := uc.Checklist.Create(ctx, usecase.CreateChecklistInput{
		Title:     "Pre-shift ventilation check",
		Category:  "ventilation",
		Section:   section,
		Shift:     "day",
		DueDate:   time.Now().Add(8 * time.Hour),
		CreatedBy: "demo-supervisor-1",
		Items: []usecase.ChecklistItemInput{
			{Description: "Main fan operational"},
			{Description: "Airflow reading within limits", RequiresPhoto: true},
		},
	})
	if err != nil {
		return err
	}

	done := true
	for _, item := range checklist.Items {
		if _, err := uc.Checklist.ApplyItemUpdate(ctx, checklist.ID, item.ID, model.ItemPatch{IsCompleted: &done}, "demo-miner-1"); err != nil {
			return err
		}
	}

	_, err = uc.Alert.Create(ctx, usecase.CreateAlertInput{
		Title:       "Blasting scheduled 14:00",
		Message:     "Clear the east bench before 13:30",
		Priority:    types.AlertPriorityWarning,
		CreatedBy:   "demo-admin-1",
		CreatorName: "Demo Admin",
	})
	return err
}

func printDashboard(dash *usecase.Dashboard, policy *model.SitePolicy) {
	title := color.New(color.Bold, color.FgCyan)
	label := color.New(color.FgWhite)

	title.Printf("Safety dashboard: %s\n", policy.Name)
	label.Printf("  window:         %s .. %s\n",
		dash.Window.From.Format("2006-01-02"), dash.Window.To.Format("2006-01-02"))

	scoreColor := color.New(color.Bold, color.FgGreen)
	switch {
	case dash.Score.Score < 50:
		scoreColor = color.New(color.Bold, color.FgRed)
	case dash.Score.Score < 80:
		scoreColor = color.New(color.Bold, color.FgYellow)
	}
	fmt.Print("  safety score:   ")
	scoreColor.Printf("%d\n", dash.Score.Score)

	label.Printf("  incidents:      %d total (%d critical, %d high)\n",
		dash.Incidents.Total,
		dash.Incidents.BySeverity[types.SeverityCritical],
		dash.Incidents.BySeverity[types.SeverityHigh],
	)
	label.Printf("  open incidents: %d\n", dash.OpenIncidents)
	label.Printf("  checklists:     %d total, %d%% completed\n",
		dash.Checklists.Total, dash.Checklists.CompletionRate)
	label.Printf("  active alerts:  %d\n", dash.ActiveAlerts)
}
