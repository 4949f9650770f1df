package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrMissingCredentials = goerr.New("missing Google credentials")
	ErrMissingSlackToken  = goerr.New("Slack notifications are enabled but no bot token is set")
	ErrInvalidConfig      = goerr.New("invalid configuration")
	ErrInvalidLogLevel    = goerr.New("invalid log level")
	ErrInvalidLogFormat   = goerr.New("invalid log format")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	KeyFileKey    = "key_file"
)
