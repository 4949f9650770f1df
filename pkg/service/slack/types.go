package slack

import (
	"context"

	"github.com/slack-go/slack"
)

// Service provides interface to Slack API for notifications
type Service interface {
	// PostMessage posts a Block Kit message and returns the message timestamp.
	// Text is the fallback shown in notifications.
	PostMessage(ctx context.Context, msg *Message) (string, error)

	// AuthTest checks the bot token and returns the identity it belongs to
	AuthTest(ctx context.Context) (*Identity, error)
}

// Message is an outgoing Slack message
type Message struct {
	ChannelID string
	Blocks    []slack.Block
	Text      string
	// ThreadTS posts the message as a reply when set
	ThreadTS string
}

// Identity is the workspace and user a bot token belongs to
type Identity struct {
	URL    string
	TeamID string
	Team   string
	UserID string
	User   string
	BotID  string
}
