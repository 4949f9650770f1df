package file

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sheetcast/pkg/domain/interfaces"
	"golang.org/x/oauth2"
)

// ErrNotFound is returned when the token file does not exist
var ErrNotFound = goerr.New("token file not found")

// DefaultTokenFileName is the token file name used under the working directory
const DefaultTokenFileName = "google-oauth-tokens.json"

// TokenFile keeps the OAuth token set as indented JSON in one file. Writes
// are not atomic.
type TokenFile struct {
	path string
}

var _ interfaces.TokenRepository = &TokenFile{}

// New creates a TokenFile backed by path
func New(path string) *TokenFile {
	return &TokenFile{path: path}
}

// DefaultPath returns <cwd>/google-oauth-tokens.json
func DefaultPath() string {
	wd, err := os.Getwd()
	if err != nil {
		return DefaultTokenFileName
	}
	return filepath.Join(wd, DefaultTokenFileName)
}

// Path returns the backing file path
func (x *TokenFile) Path() string {
	return x.path
}

func (x *TokenFile) PutToken(ctx context.Context, token *oauth2.Token) error {
	if token == nil {
		return goerr.New("token is nil")
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to marshal token")
	}

	if err := os.MkdirAll(filepath.Dir(x.path), 0o700); err != nil {
		return goerr.Wrap(err, "failed to create token directory", goerr.V("path", x.path))
	}

	if err := os.WriteFile(x.path, data, 0o600); err != nil {
		return goerr.Wrap(err, "failed to write token file", goerr.V("path", x.path))
	}

	return nil
}

func (x *TokenFile) GetToken(ctx context.Context) (*oauth2.Token, error) {
	// #nosec G304 - path is provided by configuration
	data, err := os.ReadFile(x.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrNotFound, "no token stored", goerr.V("path", x.path))
		}
		return nil, goerr.Wrap(err, "failed to read token file", goerr.V("path", x.path))
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, goerr.Wrap(err, "failed to parse token file", goerr.V("path", x.path))
	}

	return &token, nil
}

func (x *TokenFile) DeleteToken(ctx context.Context) error {
	if err := os.Remove(x.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return goerr.Wrap(ErrNotFound, "no token stored", goerr.V("path", x.path))
		}
		return goerr.Wrap(err, "failed to delete token file", goerr.V("path", x.path))
	}
	return nil
}

// HasToken reports whether the token file exists. Any stat error counts as
// absent.
func (x *TokenFile) HasToken(ctx context.Context) bool {
	if x.path == "" {
		return false
	}
	_, err := os.Stat(x.path)
	return err == nil
}
