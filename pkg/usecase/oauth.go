package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sheetcast/pkg/domain/interfaces"
	"github.com/secmon-lab/sheetcast/pkg/domain/model"
	"github.com/secmon-lab/sheetcast/pkg/service/google"
	"github.com/secmon-lab/sheetcast/pkg/utils/errutil"
	"github.com/secmon-lab/sheetcast/pkg/utils/logging"
	"golang.org/x/oauth2"
)

// OAuthUseCase runs the Google authorization code flow and keeps the
// resulting token set in a TokenRepository. Tokens are never refreshed:
// an expired token is used as-is until the Sheets API rejects it.
type OAuthUseCase struct {
	client google.OAuthClient
	repo   interfaces.TokenRepository
}

func NewOAuthUseCase(client google.OAuthClient, repo interfaces.TokenRepository) *OAuthUseCase {
	return &OAuthUseCase{
		client: client,
		repo:   repo,
	}
}

// RevokeResult reports both best-effort steps of Revoke
type RevokeResult struct {
	Upstream model.Result
	Local    model.Result
}

// oauthNotConfigured is the message of operations that need the OAuth
// client when none is configured
const oauthNotConfigured = "OAuth client is not configured"

// IsConfigured reports whether the client credentials are set
func (uc *OAuthUseCase) IsConfigured() bool {
	return uc.client != nil && uc.repo != nil
}

// AuthURL returns the consent URL. The state is random and not stored.
func (uc *OAuthUseCase) AuthURL() (string, error) {
	if !uc.IsConfigured() {
		return "", configurationError(oauthNotConfigured)
	}

	return uc.client.AuthCodeURL(uuid.NewString()), nil
}

// HandleCallback exchanges code for a token set and stores it. The stored
// token is left untouched when the exchange fails.
func (uc *OAuthUseCase) HandleCallback(ctx context.Context, code string) error {
	if !uc.IsConfigured() {
		return configurationError(oauthNotConfigured)
	}
	if code == "" {
		return validationError("authorization code is required")
	}

	token, err := uc.client.Exchange(ctx, code)
	if err != nil {
		return goerr.Wrap(upstreamError(err), "failed to complete Google authorization")
	}

	if err := uc.repo.PutToken(ctx, token); err != nil {
		return goerr.Wrap(err, "failed to save Google OAuth token")
	}

	logging.From(ctx).Info("Google OAuth authorization completed",
		"has_refresh_token", token.RefreshToken != "",
		"expiry", token.Expiry,
	)
	return nil
}

// IsAuthorized reports whether a token set is stored, whether or not the
// OAuth client is configured. It never fails.
func (uc *OAuthUseCase) IsAuthorized(ctx context.Context) bool {
	if uc.repo == nil {
		return false
	}
	return uc.repo.HasToken(ctx)
}

// Revoke revokes the stored token at Google and then deletes it. It fails
// only when the OAuth client is not configured; both steps are otherwise
// best effort, with failures logged and reported in the result.
func (uc *OAuthUseCase) Revoke(ctx context.Context) (RevokeResult, error) {
	logger := logging.From(ctx)

	if !uc.IsConfigured() {
		return RevokeResult{}, configurationError(oauthNotConfigured)
	}

	var result RevokeResult
	switch {
	case !uc.repo.HasToken(ctx):
		result.Upstream = model.Failed("no stored token")

	default:
		token, err := uc.repo.GetToken(ctx)
		if err != nil {
			errutil.Handle(ctx, err, "failed to load Google OAuth token for revocation")
			result.Upstream = model.Failed(err.Error())
			break
		}

		if err := uc.client.Revoke(ctx, token); err != nil {
			errutil.Handle(ctx, err, "failed to revoke Google OAuth token")
			result.Upstream = model.Failed(err.Error())
			break
		}
		result.Upstream = model.Succeeded()
	}

	if err := uc.repo.DeleteToken(ctx); err != nil {
		logger.Warn("failed to delete Google OAuth token", "error", err)
		result.Local = model.Failed(err.Error())
	} else {
		result.Local = model.Succeeded()
	}

	logger.Info("Google OAuth credentials revoked",
		"upstream", result.Upstream.OK,
		"local", result.Local.OK,
	)
	return result, nil
}

// TokenSource serves the stored token to API clients. The token is read
// on every call so that a later authorization or revocation takes effect
// without a restart.
func (uc *OAuthUseCase) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &storedTokenSource{ctx: ctx, repo: uc.repo}
}

type storedTokenSource struct {
	ctx  context.Context
	repo interfaces.TokenRepository
}

func (x *storedTokenSource) Token() (*oauth2.Token, error) {
	if x.repo == nil {
		return nil, configurationError(oauthNotConfigured)
	}

	token, err := x.repo.GetToken(x.ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "Google OAuth is not authorized, run the authorization flow first")
	}
	return token, nil
}
