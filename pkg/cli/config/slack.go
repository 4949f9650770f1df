package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sheetcast/pkg/service/slack"
	"github.com/secmon-lab/sheetcast/pkg/usecase"
	"github.com/urfave/cli/v3"
)

type Slack struct {
	botToken            string
	channel             string
	enableNotifications bool
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token (chat:write)",
			Category:    "Slack",
			Destination: &x.botToken,
			Sources:     cli.EnvVars("SHEETCAST_SLACK_BOT_TOKEN", "SLACK_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel ID for spreadsheet notifications",
			Category:    "Slack",
			Destination: &x.channel,
			Sources:     cli.EnvVars("SHEETCAST_SLACK_CHANNEL", "SLACK_CHANNEL"),
		},
		&cli.BoolFlag{
			Name:        "slack-enable-notifications",
			Usage:       "Post spreadsheet summaries to Slack",
			Category:    "Slack",
			Destination: &x.enableNotifications,
			Sources:     cli.EnvVars("SHEETCAST_SLACK_ENABLE_NOTIFICATIONS", "SLACK_ENABLE_NOTIFICATIONS"),
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
		slog.String("channel", x.channel),
		slog.Bool("enable-notifications", x.enableNotifications),
	)
}

// Validate fails when notifications are enabled without a bot token
func (x *Slack) Validate() error {
	if x.enableNotifications && x.botToken == "" {
		return goerr.Wrap(ErrMissingSlackToken, "set --slack-bot-token or disable --slack-enable-notifications")
	}
	return nil
}

// Configure builds the Slack client, or returns nil when no bot token is set
func (x *Slack) Configure() (slack.Service, error) {
	if x.botToken == "" {
		return nil, nil
	}

	svc, err := slack.New(x.botToken)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize slack service")
	}
	return svc, nil
}

// NotifyConfig returns notification defaults for the use case layer
func (x *Slack) NotifyConfig() usecase.NotifyConfig {
	return usecase.NotifyConfig{
		Enabled:         x.enableNotifications,
		Channel:         x.channel,
		IncludeMetadata: true,
	}
}
