package cli

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/minesafe-lab/minesafe/pkg/cli/config"
	"github.com/minesafe-lab/minesafe/pkg/usecase"
	"github.com/minesafe-lab/minesafe/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// cmdReport generates a safety report for a given day and exits. Without a
// date it covers yesterday in site-local time, matching what the in-process
// scheduler would produce.
func cmdReport() *cli.Command {
	var kind string
	var date string
	var repoCfg config.Repository
	var notifyCfg config.Notify
	var siteCfg config.Site

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "kind",
			Usage:       "Report kind (daily or weekly)",
			Value:       "daily",
			Sources:     cli.EnvVars("MINESAFE_REPORT_KIND"),
			Destination: &kind,
		},
		&cli.StringFlag{
			Name:        "date",
			Usage:       "Report date in YYYY-MM-DD (daily: the day covered, weekly: the last day of the week). Defaults to yesterday",
			Sources:     cli.EnvVars("MINESAFE_REPORT_DATE"),
			Destination: &date,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, notifyCfg.Flags()...)
	flags = append(flags, siteCfg.Flags()...)

	return &cli.Command{
		Name:  "report",
		Usage: "Generate a daily or weekly safety report",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			notifier, err := notifyCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure notifier")
			}

			policy, err := siteCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load site config")
			}
			loc, err := policy.Location()
			if err != nil {
				return goerr.Wrap(err, "failed to resolve site timezone")
			}

			day := time.Now().In(loc).AddDate(0, 0, -1)
			if date != "" {
				day, err = time.ParseInLocation("2006-01-02", date, loc)
				if err != nil {
					return goerr.Wrap(err, "invalid date", goerr.V("date", date))
				}
			}

			uc := usecase.New(repo,
				usecase.WithNotifier(notifier),
				usecase.WithScoreWeights(policy.Weights),
				usecase.WithLocation(loc),
			)

			switch kind {
			case "daily":
				report, err := uc.Report.Daily(ctx, day)
				if err != nil {
					return goerr.Wrap(err, "failed to generate daily report")
				}
				logging.Default().Info("Daily report generated",
					"label", report.Label,
					"score", report.Score.Score,
					"incidents", report.Incidents.Total,
				)
			case "weekly":
				report, err := uc.Report.Weekly(ctx, day)
				if err != nil {
					return goerr.Wrap(err, "failed to generate weekly report")
				}
				logging.Default().Info("Weekly report generated",
					"label", report.Label,
					"score", report.Score.Score,
					"incidents", report.Incidents.Total,
				)
			default:
				return goerr.New("invalid report kind, expected daily or weekly", goerr.V("kind", kind))
			}

			return nil
		},
	}
}
