package google

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sheetcast/pkg/utils/safe"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
)

// DefaultRevokeURL is Google's token revocation endpoint
const DefaultRevokeURL = "https://oauth2.googleapis.com/revoke"

// OAuthClient is the Google authorization server as seen by sheetcast
type OAuthClient interface {
	// AuthCodeURL returns the consent URL. It requests offline access and
	// forces the consent prompt so that a refresh token is always issued.
	AuthCodeURL(state string) string

	// Exchange trades an authorization code for a token set
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)

	// Revoke invalidates the token set at the authorization server
	Revoke(ctx context.Context, token *oauth2.Token) error
}

type oauthClient struct {
	config     *oauth2.Config
	revokeURL  string
	httpClient *http.Client
}

// OAuthOption is a functional option for OAuthClient configuration
type OAuthOption func(*oauthClient)

// WithEndpoint replaces the Google authorization endpoint
func WithEndpoint(endpoint oauth2.Endpoint) OAuthOption {
	return func(c *oauthClient) {
		c.config.Endpoint = endpoint
	}
}

// WithRevokeURL replaces the token revocation endpoint
func WithRevokeURL(u string) OAuthOption {
	return func(c *oauthClient) {
		c.revokeURL = u
	}
}

// WithHTTPClient sets the HTTP client used for exchange and revocation
func WithHTTPClient(hc *http.Client) OAuthOption {
	return func(c *oauthClient) {
		c.httpClient = hc
	}
}

// NewOAuth creates an OAuthClient for the given web application credentials
func NewOAuth(clientID, clientSecret, redirectURL string, scopes []string, opts ...OAuthOption) (OAuthClient, error) {
	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil, goerr.New("OAuth client ID, client secret and redirect URL are required")
	}

	c := &oauthClient{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     googleoauth.Endpoint,
			Scopes:       scopes,
		},
		revokeURL:  DefaultRevokeURL,
		httpClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *oauthClient) AuthCodeURL(state string) string {
	return c.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

func (c *oauthClient) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to exchange authorization code")
	}

	return token, nil
}

// Revoke revokes the refresh token when present, otherwise the access token
func (c *oauthClient) Revoke(ctx context.Context, token *oauth2.Token) error {
	if token == nil {
		return goerr.New("no token to revoke")
	}

	value := token.RefreshToken
	if value == "" {
		value = token.AccessToken
	}
	if value == "" {
		return goerr.New("token has neither refresh nor access token")
	}

	form := url.Values{}
	form.Set("token", value)
	body := form.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.revokeURL, strings.NewReader(body))
	if err != nil {
		return goerr.Wrap(err, "failed to create revoke request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to send revoke request")
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return goerr.New("token revocation rejected",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(msg)))
	}

	return nil
}
