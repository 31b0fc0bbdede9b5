package config

import (
	"github.com/minesafe-lab/minesafe/pkg/service/notify"
	"github.com/minesafe-lab/minesafe/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Notify holds CLI flags for alert delivery configuration
type Notify struct {
	slackWebhookURL string
	slackChannel    string
}

// Flags returns CLI flags for notification configuration
func (n *Notify) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL for alert delivery",
			Sources:     cli.EnvVars("MINESAFE_SLACK_WEBHOOK_URL"),
			Destination: &n.slackWebhookURL,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel override for alert delivery",
			Sources:     cli.EnvVars("MINESAFE_SLACK_CHANNEL"),
			Destination: &n.slackChannel,
		},
	}
}

// IsConfigured reports whether a delivery channel is set
func (n *Notify) IsConfigured() bool {
	return n.slackWebhookURL != ""
}

// Configure returns the alert notifier. Without a webhook the log sink is
// used so alert delivery stays observable in development.
func (n *Notify) Configure() (notify.Notifier, error) {
	if n.slackWebhookURL == "" {
		logging.Default().Info("Slack webhook not configured, alerts are logged only")
		return notify.LogNotifier{}, nil
	}

	notifier, err := notify.NewSlackNotifier(n.slackWebhookURL, n.slackChannel)
	if err != nil {
		return nil, err
	}
	logging.Default().Info("Slack alert delivery enabled", "channel", n.slackChannel)
	return notifier, nil
}
