package notify

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// SlackNotifier posts a short message to a Slack incoming webhook after a
// changelog was published. Best effort only; the caller logs failures and
// never fails the run over them.
type SlackNotifier struct {
	webhookURL string
}

// NewSlack creates a new Slack notifier for the webhook URL
func NewSlack(webhookURL string) *SlackNotifier {
	return &SlackNotifier{webhookURL: webhookURL}
}

// NotifyPublished announces the new changelog block for the repository
func (n *SlackNotifier) NotifyPublished(ctx context.Context, repository, headerText string) error {
	msg := &slack.WebhookMessage{
		Text: fmt.Sprintf("Changelog updated for %s: %s", repository, headerText),
	}

	if err := slack.PostWebhookContext(ctx, n.webhookURL, msg); err != nil {
		return goerr.Wrap(err, "failed to post Slack notification",
			goerr.V("repository", repository))
	}
	return nil
}
