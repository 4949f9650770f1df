package config

import "github.com/secmon-lab/sheetcast/pkg/service/google"

// NewSlackForTest creates a Slack config for testing purposes
func NewSlackForTest(botToken, channel string, enableNotifications bool) *Slack {
	return &Slack{
		botToken:            botToken,
		channel:             channel,
		enableNotifications: enableNotifications,
	}
}

// NewGoogleForTest creates a Google config for testing purposes
func NewGoogleForTest(keyFile string, sa google.ServiceAccount, oauthClientID, oauthClientSecret, oauthRedirectURL, tokenFile string) *Google {
	return &Google{
		keyFile:           keyFile,
		serviceAccount:    sa,
		oauthClientID:     oauthClientID,
		oauthClientSecret: oauthClientSecret,
		oauthRedirectURL:  oauthRedirectURL,
		tokenFile:         tokenFile,
	}
}

// SetTokenStore overrides the token store kind for testing purposes
func (x *Google) SetTokenStore(kind string) {
	x.tokenStore = kind
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}
