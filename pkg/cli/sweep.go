package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/minesafe-lab/minesafe/pkg/cli/config"
	"github.com/minesafe-lab/minesafe/pkg/usecase"
	"github.com/minesafe-lab/minesafe/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// cmdSweep runs a single overdue checklist sweep and exits. Meant for
// cron-style deployments where the serve process runs with --no-workers.
func cmdSweep() *cli.Command {
	var repoCfg config.Repository
	var notifyCfg config.Notify
	var siteCfg config.Site

	var flags []cli.Flag
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, notifyCfg.Flags()...)
	flags = append(flags, siteCfg.Flags()...)

	return &cli.Command{
		Name:  "sweep",
		Usage: "Run one overdue checklist sweep and exit",
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

			uc := usecase.New(repo,
				usecase.WithNotifier(notifier),
				usecase.WithScoreWeights(policy.Weights),
				usecase.WithLocation(loc),
			)

			result, err := uc.Checklist.RunOverdueSweep(ctx)
			if err != nil {
				return goerr.Wrap(err, "overdue sweep failed")
			}

			logging.Default().Info("Overdue sweep completed",
				"scanned", result.Scanned,
				"marked", result.MarkedCount,
				"alert_id", result.AlertID,
			)
			return nil
		},
	}
}
