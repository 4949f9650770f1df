package config

import (
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/sheetcast/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// AppConfig represents the optional TOML configuration file
type AppConfig struct {
	Notification Notification `toml:"notification"`
}

// Notification holds presets for the notification sent by the full sheet
// endpoint
type Notification struct {
	Channel         string `toml:"channel"`
	MaxRows         int    `toml:"max_rows"`
	IncludeMetadata *bool  `toml:"include_metadata"`
}

// Validate checks if the Notification is valid
func (n *Notification) Validate() error {
	if n.MaxRows < 0 {
		return goerr.Wrap(ErrInvalidConfig, "max_rows must not be negative", goerr.V("max_rows", n.MaxRows))
	}
	if n.MaxRows > model.MaxNotifyRows {
		return goerr.Wrap(ErrInvalidConfig, "max_rows does not fit in a single Slack message",
			goerr.V("max_rows", n.MaxRows),
			goerr.V("limit", model.MaxNotifyRows))
	}
	return nil
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	if err := a.Notification.Validate(); err != nil {
		return goerr.Wrap(err, "invalid [notification] section")
	}
	return nil
}

// LoadAppConfiguration loads the application configuration from a TOML file
func LoadAppConfiguration(path string) (*AppConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var config AppConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V(ConfigPathKey, path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &config, nil
}

// NotifyOptions converts the notification presets. Unset values fall back
// to metadata on and model.DefaultNotifyMaxRows rows.
func (a *AppConfig) NotifyOptions() model.NotifyOptions {
	opts := model.NotifyOptions{
		Channel:         a.Notification.Channel,
		IncludeMetadata: true,
		MaxRows:         model.DefaultNotifyMaxRows,
	}
	if a.Notification.MaxRows > 0 {
		opts.MaxRows = a.Notification.MaxRows
	}
	if a.Notification.IncludeMetadata != nil {
		opts.IncludeMetadata = *a.Notification.IncludeMetadata
	}
	return opts
}

// File is the --config flag
type File struct {
	path string
}

func (x *File) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "TOML configuration file with [notification] presets",
			Destination: &x.path,
			Sources:     cli.EnvVars("SHEETCAST_CONFIG"),
		},
	}
}

func (x File) LogValue() slog.Value {
	return slog.GroupValue(slog.String("path", x.path))
}

// Configure loads the file, or returns an empty configuration when no path
// is set
func (x *File) Configure() (*AppConfig, error) {
	if x.path == "" {
		return &AppConfig{}, nil
	}
	return LoadAppConfiguration(x.path)
}
