package config

import (
	"github.com/m-mizutani/chronicle/pkg/infra/notify"
	"github.com/urfave/cli/v3"
)

// Notify holds notification configuration
type Notify struct {
	SlackWebhookURL string
}

// Flags returns CLI flags for notification configuration
func (c *Notify) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL to notify after publishing",
			Destination: &c.SlackWebhookURL,
			Sources:     cli.EnvVars("CHRONICLE_SLACK_WEBHOOK", "INPUT_SLACK_WEBHOOK_URL"),
		},
	}
}

// Notifier returns a Slack notifier, or nil when no webhook is configured
func (c *Notify) Notifier() *notify.SlackNotifier {
	if c.SlackWebhookURL == "" {
		return nil
	}
	return notify.NewSlack(c.SlackWebhookURL)
}
