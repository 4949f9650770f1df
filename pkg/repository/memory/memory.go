package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sheetcast/pkg/domain/interfaces"
	"golang.org/x/oauth2"
)

// ErrNotFound is returned when no token is stored
var ErrNotFound = goerr.New("token not found")

// TokenStore keeps the OAuth token set in process memory. It is used by
// tests and by `--google-oauth-token-store memory`.
type TokenStore struct {
	mu    sync.RWMutex
	token *oauth2.Token
}

var _ interfaces.TokenRepository = &TokenStore{}

func New() *TokenStore {
	return &TokenStore{}
}

func (r *TokenStore) PutToken(ctx context.Context, token *oauth2.Token) error {
	if token == nil {
		return goerr.New("token is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *token
	r.token = &copied
	return nil
}

func (r *TokenStore) GetToken(ctx context.Context) (*oauth2.Token, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.token == nil {
		return nil, ErrNotFound
	}

	copied := *r.token
	return &copied, nil
}

func (r *TokenStore) DeleteToken(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.token == nil {
		return ErrNotFound
	}

	r.token = nil
	return nil
}

func (r *TokenStore) HasToken(ctx context.Context) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.token != nil
}
