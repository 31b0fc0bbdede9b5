package config

// NewSiteForTest creates a Site config for testing purposes
func NewSiteForTest(path string) *Site {
	return &Site{path: path}
}

// NewNotifyForTest creates a Notify config for testing purposes
func NewNotifyForTest(webhookURL, channel string) *Notify {
	return &Notify{
		slackWebhookURL: webhookURL,
		slackChannel:    channel,
	}
}
