package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/minesafe-lab/minesafe/pkg/cli/config"
	httpctrl "github.com/minesafe-lab/minesafe/pkg/controller/http"
	"github.com/minesafe-lab/minesafe/pkg/service/worker"
	"github.com/minesafe-lab/minesafe/pkg/usecase"
	"github.com/minesafe-lab/minesafe/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var sweepInterval time.Duration
	var noWorkers bool
	var repoCfg config.Repository
	var notifyCfg config.Notify
	var siteCfg config.Site

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("MINESAFE_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "sweep-interval",
			Usage:       "Interval between overdue checklist sweeps",
			Value:       5 * time.Minute,
			Sources:     cli.EnvVars("MINESAFE_SWEEP_INTERVAL"),
			Destination: &sweepInterval,
		},
		&cli.BoolFlag{
			Name:        "no-workers",
			Usage:       "Disable background workers (sweep, report scheduler)",
			Sources:     cli.EnvVars("MINESAFE_NO_WORKERS"),
			Destination: &noWorkers,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, notifyCfg.Flags()...)
	flags = append(flags, siteCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			// Initialize repository based on backend type
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
			logging.Default().Info("Site policy loaded",
				"site", policy.Name,
				"timezone", policy.Timezone,
				"sections", len(policy.Sections),
			)

			uc := usecase.New(repo,
				usecase.WithNotifier(notifier),
				usecase.WithScoreWeights(policy.Weights),
				usecase.WithLocation(loc),
			)

			var sweepWorker *worker.OverdueSweepWorker
			var scheduler *worker.ReportScheduler
			if !noWorkers {
				sweepWorker = worker.NewOverdueSweepWorker(uc.Checklist, sweepInterval)
				if err := sweepWorker.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start overdue sweep worker")
				}

				scheduler = worker.NewReportScheduler(uc.Report, time.Hour, loc)
				if err := scheduler.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start report scheduler")
				}
			}

			handler := httpctrl.New(uc, httpctrl.WithSitePolicy(policy))
			server := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				// Stop background workers first
				if sweepWorker != nil {
					sweepWorker.Stop()
				}
				if scheduler != nil {
					scheduler.Stop()
				}

				// Create shutdown context with timeout
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				// Attempt graceful shutdown
				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
