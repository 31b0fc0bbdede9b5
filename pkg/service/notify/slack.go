package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/minesafe-lab/minesafe/pkg/domain/model"
	"github.com/minesafe-lab/minesafe/pkg/domain/types"
	"github.com/slack-go/slack"
)

// SlackNotifier posts alerts to a Slack incoming webhook
type SlackNotifier struct {
	webhookURL string
	channel    string
}

// NewSlackNotifier creates a notifier for the given webhook URL. The channel
// override is optional.
func NewSlackNotifier(webhookURL, channel string) (*SlackNotifier, error) {
	if webhookURL == "" {
		return nil, goerr.New("slack webhook URL is required")
	}
	return &SlackNotifier{
		webhookURL: webhookURL,
		channel:    channel,
	}, nil
}

func attachmentColor(p types.AlertPriority) string {
	switch p {
	case types.AlertPriorityEmergency:
		return "#d00000"
	case types.AlertPriorityUrgent:
		return "#e85d04"
	case types.AlertPriorityWarning:
		return "#ffba08"
	default:
		return "#4361ee"
	}
}

// Notify posts the alert as an attachment with targeting details
func (n *SlackNotifier) Notify(ctx context.Context, alert *model.Alert) error {
	attachment := slack.Attachment{
		Color: attachmentColor(alert.Priority),
		Title: fmt.Sprintf("[%s] %s", strings.ToUpper(alert.Priority.String()), alert.Title),
		Text:  alert.Message,
		Fields: []slack.AttachmentField{
			{
				Title: "Sections",
				Value: strings.Join(alert.TargetSections, ", "),
				Short: true,
			},
			{
				Title: "Roles",
				Value: strings.Join(alert.TargetRoles, ", "),
				Short: true,
			},
		},
		Footer: "minesafe",
		Ts:     json.Number(strconv.FormatInt(alert.CreatedAt.Unix(), 10)),
	}

	msg := &slack.WebhookMessage{
		Channel:     n.channel,
		Attachments: []slack.Attachment{attachment},
	}

	if err := slack.PostWebhookContext(ctx, n.webhookURL, msg); err != nil {
		return goerr.Wrap(err, "failed to post slack webhook",
			goerr.V("alert_id", alert.ID),
		)
	}
	return nil
}
