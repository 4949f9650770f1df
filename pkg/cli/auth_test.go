package cli_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/sheetcast/pkg/cli"
	"github.com/secmon-lab/sheetcast/pkg/cli/config"
)

func TestAuthStatus(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "tokens.json")
	t.Setenv("SHEETCAST_GOOGLE_OAUTH_CLIENT_ID", "client")
	t.Setenv("SHEETCAST_GOOGLE_OAUTH_CLIENT_SECRET", "secret")
	t.Setenv("SHEETCAST_GOOGLE_OAUTH_REDIRECT_URI", "http://localhost:3000/auth/google/callback")
	t.Setenv("SHEETCAST_GOOGLE_OAUTH_TOKEN_FILE", tokenFile)

	var buf bytes.Buffer
	err := cli.RunWithWriter(context.Background(), []string{"sheetcast", "auth", "status"}, "test", &buf)
	gt.NoError(t, err).Required()
	gt.String(t, buf.String()).Contains("not authorized")
}

func TestAuthURL(t *testing.T) {
	t.Setenv("SHEETCAST_GOOGLE_OAUTH_CLIENT_ID", "client")
	t.Setenv("SHEETCAST_GOOGLE_OAUTH_CLIENT_SECRET", "secret")
	t.Setenv("SHEETCAST_GOOGLE_OAUTH_REDIRECT_URI", "http://localhost:3000/auth/google/callback")

	var buf bytes.Buffer
	err := cli.RunWithWriter(context.Background(), []string{"sheetcast", "auth", "url"}, "test", &buf)
	gt.NoError(t, err).Required()
	gt.String(t, buf.String()).Contains("access_type=offline")
	gt.String(t, buf.String()).Contains("prompt=consent")
}

func TestAuthRequiresOAuth(t *testing.T) {
	t.Setenv("SHEETCAST_GOOGLE_OAUTH_CLIENT_ID", "")
	t.Setenv("GOOGLE_OAUTH_CLIENT_ID", "")

	var buf bytes.Buffer
	err := cli.RunWithWriter(context.Background(), []string{"sheetcast", "auth", "status"}, "test", &buf)
	gt.Error(t, err).Is(config.ErrMissingCredentials)
}
