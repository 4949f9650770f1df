package slack

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// maxFallbackTextBytes keeps the notification fallback text well under
// Slack's message size limit
const maxFallbackTextBytes = 4000

// client implements Service interface
type client struct {
	api    *slack.Client
	apiURL string
}

// Option is a functional option for client configuration
type Option func(*client)

// WithAPIURL points the client at another Slack API base URL (with a
// trailing slash)
func WithAPIURL(apiURL string) Option {
	return func(c *client) {
		c.apiURL = apiURL
	}
}

// New creates a new Slack service with the provided bot token
func New(token string, opts ...Option) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}

	c := &client{}
	for _, opt := range opts {
		opt(c)
	}

	var apiOpts []slack.Option
	if c.apiURL != "" {
		apiOpts = append(apiOpts, slack.OptionAPIURL(c.apiURL))
	}
	c.api = slack.New(token, apiOpts...)

	return c, nil
}

// PostMessage posts msg without link or media unfurling
func (c *client) PostMessage(ctx context.Context, msg *Message) (string, error) {
	if msg == nil || msg.ChannelID == "" {
		return "", goerr.New("Slack channel is required")
	}

	options := []slack.MsgOption{
		slack.MsgOptionBlocks(msg.Blocks...),
		slack.MsgOptionDisableLinkUnfurl(),
		slack.MsgOptionDisableMediaUnfurl(),
	}
	if msg.Text != "" {
		options = append(options, slack.MsgOptionText(truncateToMaxBytes(msg.Text, maxFallbackTextBytes), false))
	}
	if msg.ThreadTS != "" {
		options = append(options, slack.MsgOptionTS(msg.ThreadTS))
	}

	_, ts, err := c.api.PostMessageContext(ctx, msg.ChannelID, options...)
	if err != nil {
		return "", goerr.Wrap(err, "failed to post Slack message",
			goerr.V("channel", msg.ChannelID),
			goerr.V("blocks", len(msg.Blocks)))
	}

	return ts, nil
}

// AuthTest calls auth.test
func (c *client) AuthTest(ctx context.Context) (*Identity, error) {
	resp, err := c.api.AuthTestContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "Slack auth.test failed")
	}

	return &Identity{
		URL:    resp.URL,
		TeamID: resp.TeamID,
		Team:   resp.Team,
		UserID: resp.UserID,
		User:   resp.User,
		BotID:  resp.BotID,
	}, nil
}
