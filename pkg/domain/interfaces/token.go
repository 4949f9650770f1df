package interfaces

import (
	"context"

	"golang.org/x/oauth2"
)

// TokenRepository stores the single OAuth token set of this process.
// The presence of a stored token is the only "authorized" signal; its
// content is not validated.
type TokenRepository interface {
	PutToken(ctx context.Context, token *oauth2.Token) error
	// GetToken fails with the implementation's ErrNotFound when no token
	// is stored.
	GetToken(ctx context.Context) (*oauth2.Token, error)
	DeleteToken(ctx context.Context) error
	HasToken(ctx context.Context) bool
}
