package notify

import (
	"context"
	"fmt"

	slackapi "github.com/slack-go/slack"
)

// slackClient abstracts the Slack API methods we use, enabling test mocks.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

// SlackAdapter posts digests to a Slack channel.
type SlackAdapter struct {
	client    slackClient
	channelID string
}

// NewSlack creates a Slack digest adapter for the given bot token and
// channel.
func NewSlack(botToken, channelID string) *SlackAdapter {
	return &SlackAdapter{
		client:    slackapi.New(botToken),
		channelID: channelID,
	}
}

// Send posts the digest as a plain text message.
func (a *SlackAdapter) Send(ctx context.Context, d Digest) error {
	_, _, err := a.client.PostMessageContext(ctx, a.channelID,
		slackapi.MsgOptionText(FormatDigest(d), false))
	if err != nil {
		return fmt.Errorf("notify: slack post to %s: %w", a.channelID, err)
	}
	return nil
}

// Close is a no-op; the Slack Web API client holds no connection.
func (a *SlackAdapter) Close() error {
	return nil
}
