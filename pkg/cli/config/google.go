package config

import (
	"context"
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sheetcast/pkg/domain/interfaces"
	"github.com/secmon-lab/sheetcast/pkg/repository/file"
	"github.com/secmon-lab/sheetcast/pkg/repository/memory"
	"github.com/secmon-lab/sheetcast/pkg/service/google"
	"github.com/secmon-lab/sheetcast/pkg/service/sheets"
	"github.com/secmon-lab/sheetcast/pkg/utils/logging"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

// Google holds both credential paths for the Sheets API: a service account
// (key file or individual fields) and an OAuth web client
type Google struct {
	keyFile        string
	serviceAccount google.ServiceAccount

	oauthClientID     string
	oauthClientSecret string
	oauthRedirectURL  string
	tokenFile         string
	tokenStore        string
}

const (
	TokenStoreFile   = "file"
	TokenStoreMemory = "memory"
)

func (x *Google) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "google-service-account-key-file",
			Usage:       "Path to a Google service account key file",
			Category:    "Google",
			Destination: &x.keyFile,
			Sources:     cli.EnvVars("SHEETCAST_GOOGLE_SERVICE_ACCOUNT_KEY_FILE", "GOOGLE_SERVICE_ACCOUNT_KEY_FILE"),
		},
		&cli.StringFlag{
			Name:        "google-project-id",
			Usage:       "Service account project ID (without key file)",
			Category:    "Google",
			Destination: &x.serviceAccount.ProjectID,
			Sources:     cli.EnvVars("SHEETCAST_GOOGLE_PROJECT_ID", "GOOGLE_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "google-private-key-id",
			Usage:       "Service account private key ID (without key file)",
			Category:    "Google",
			Destination: &x.serviceAccount.PrivateKeyID,
			Sources:     cli.EnvVars("SHEETCAST_GOOGLE_PRIVATE_KEY_ID", "GOOGLE_PRIVATE_KEY_ID"),
		},
		&cli.StringFlag{
			Name:        "google-private-key",
			Usage:       `Service account private key in PEM; "\n" sequences are unescaped`,
			Category:    "Google",
			Destination: &x.serviceAccount.PrivateKey,
			Sources:     cli.EnvVars("SHEETCAST_GOOGLE_PRIVATE_KEY", "GOOGLE_PRIVATE_KEY"),
		},
		&cli.StringFlag{
			Name:        "google-client-email",
			Usage:       "Service account client email (without key file)",
			Category:    "Google",
			Destination: &x.serviceAccount.ClientEmail,
			Sources:     cli.EnvVars("SHEETCAST_GOOGLE_CLIENT_EMAIL", "GOOGLE_CLIENT_EMAIL"),
		},
		&cli.StringFlag{
			Name:        "google-client-id",
			Usage:       "Service account client ID (without key file)",
			Category:    "Google",
			Destination: &x.serviceAccount.ClientID,
			Sources:     cli.EnvVars("SHEETCAST_GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_ID"),
		},
		&cli.StringFlag{
			Name:        "google-oauth-client-id",
			Usage:       "OAuth web client ID",
			Category:    "Google OAuth",
			Destination: &x.oauthClientID,
			Sources:     cli.EnvVars("SHEETCAST_GOOGLE_OAUTH_CLIENT_ID", "GOOGLE_OAUTH_CLIENT_ID"),
		},
		&cli.StringFlag{
			Name:        "google-oauth-client-secret",
			Usage:       "OAuth web client secret",
			Category:    "Google OAuth",
			Destination: &x.oauthClientSecret,
			Sources:     cli.EnvVars("SHEETCAST_GOOGLE_OAUTH_CLIENT_SECRET", "GOOGLE_OAUTH_CLIENT_SECRET"),
		},
		&cli.StringFlag{
			Name:        "google-oauth-redirect-uri",
			Usage:       "OAuth redirect URI (e.g. http://localhost:3000/auth/google/callback)",
			Category:    "Google OAuth",
			Destination: &x.oauthRedirectURL,
			Sources:     cli.EnvVars("SHEETCAST_GOOGLE_OAUTH_REDIRECT_URI", "GOOGLE_OAUTH_REDIRECT_URI"),
		},
		&cli.StringFlag{
			Name:        "google-oauth-token-file",
			Usage:       "Path of the stored OAuth token (default: ./google-oauth-tokens.json)",
			Category:    "Google OAuth",
			Destination: &x.tokenFile,
			Sources:     cli.EnvVars("SHEETCAST_GOOGLE_OAUTH_TOKEN_FILE", "GOOGLE_OAUTH_TOKEN_FILE"),
		},
		&cli.StringFlag{
			Name:        "google-oauth-token-store",
			Usage:       "Where the OAuth token is kept: file or memory (memory is lost on restart)",
			Category:    "Google OAuth",
			Value:       TokenStoreFile,
			Destination: &x.tokenStore,
			Sources:     cli.EnvVars("SHEETCAST_GOOGLE_OAUTH_TOKEN_STORE"),
		},
	}
}

func (x Google) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("key-file", x.keyFile),
		slog.String("client-email", x.serviceAccount.ClientEmail),
		slog.Int("private-key.len", len(x.serviceAccount.PrivateKey)),
		slog.Int("oauth-client-id.len", len(x.oauthClientID)),
		slog.Int("oauth-client-secret.len", len(x.oauthClientSecret)),
		slog.String("oauth-redirect-uri", x.oauthRedirectURL),
		slog.String("token-store", x.tokenStore),
		slog.String("token-file", x.TokenFilePath()),
	)
}

// HasServiceAccount reports whether a key file or the individual service
// account fields are set
func (x *Google) HasServiceAccount() bool {
	return x.keyFile != "" || x.serviceAccount.IsConfigured()
}

// HasOAuth reports whether the OAuth client is fully configured
func (x *Google) HasOAuth() bool {
	return x.oauthClientID != "" && x.oauthClientSecret != "" && x.oauthRedirectURL != ""
}

// Validate fails when neither credential path is configured
func (x *Google) Validate() error {
	switch x.tokenStore {
	case "", TokenStoreFile, TokenStoreMemory:
	default:
		return goerr.Wrap(ErrInvalidConfig, "unknown token store", goerr.V("token_store", x.tokenStore))
	}

	if !x.HasServiceAccount() && !x.HasOAuth() {
		return goerr.Wrap(ErrMissingCredentials,
			"provide a service account (--google-service-account-key-file, or --google-project-id, --google-private-key and --google-client-email) or an OAuth client (--google-oauth-client-id, --google-oauth-client-secret and --google-oauth-redirect-uri)")
	}
	return nil
}

// TokenFilePath returns the configured token file or the default path
func (x *Google) TokenFilePath() string {
	if x.tokenFile != "" {
		return x.tokenFile
	}
	return file.DefaultPath()
}

// TokenRepository returns the configured token store
func (x *Google) TokenRepository() interfaces.TokenRepository {
	if x.tokenStore == TokenStoreMemory {
		return memory.New()
	}
	return file.New(x.TokenFilePath())
}

// OAuthClient builds the OAuth client, or returns nil when OAuth is not
// configured
func (x *Google) OAuthClient() (google.OAuthClient, error) {
	if !x.HasOAuth() {
		return nil, nil
	}

	client, err := google.NewOAuth(x.oauthClientID, x.oauthClientSecret, x.oauthRedirectURL, []string{sheets.ReadOnlyScope})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Google OAuth client")
	}
	return client, nil
}

// ServiceAccountKey returns the key JSON. A key file that cannot be read or
// lacks required fields is skipped in favour of the individual fields.
func (x *Google) ServiceAccountKey(ctx context.Context) ([]byte, error) {
	if x.keyFile != "" {
		// #nosec G304 - path is expected to be provided by CLI argument
		data, err := os.ReadFile(x.keyFile)
		if err == nil {
			err = google.ValidateKeyFile(data)
		}
		if err == nil {
			return data, nil
		}

		logging.From(ctx).Warn("service account key file is invalid, falling back to individual fields",
			"key_file", x.keyFile,
			"error", err,
		)
	}

	key, err := x.serviceAccount.KeyJSON()
	if err != nil {
		return nil, goerr.Wrap(ErrMissingCredentials, "no usable service account credentials",
			goerr.V(KeyFileKey, x.keyFile),
			goerr.V("cause", err.Error()))
	}
	return key, nil
}

// ConfigureSheets builds the Sheets client. A service account takes
// priority; otherwise oauthTokens serves the stored OAuth token.
func (x *Google) ConfigureSheets(ctx context.Context, oauthTokens oauth2.TokenSource) (sheets.Service, error) {
	var ts oauth2.TokenSource
	switch {
	case x.HasServiceAccount():
		key, err := x.ServiceAccountKey(ctx)
		if err != nil {
			return nil, err
		}
		ts, err = google.ServiceAccountTokenSource(ctx, key, sheets.ReadOnlyScope)
		if err != nil {
			return nil, err
		}
		logging.From(ctx).Info("Google Sheets uses service account credentials")

	case x.HasOAuth() && oauthTokens != nil:
		ts = oauthTokens
		logging.From(ctx).Info("Google Sheets uses OAuth credentials", "token_file", x.TokenFilePath())

	default:
		return nil, goerr.Wrap(ErrMissingCredentials, "no credentials for Google Sheets")
	}

	svc, err := sheets.New(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Google Sheets client")
	}
	return svc, nil
}
