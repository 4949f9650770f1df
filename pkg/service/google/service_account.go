package google

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
)

// ServiceAccount holds service account fields supplied one by one through
// the environment instead of a key file
type ServiceAccount struct {
	ProjectID    string
	PrivateKeyID string
	PrivateKey   string `masq:"secret"`
	ClientEmail  string
	ClientID     string
}

type serviceAccountKey struct {
	Type                    string `json:"type"`
	ProjectID               string `json:"project_id"`
	PrivateKeyID            string `json:"private_key_id"`
	PrivateKey              string `json:"private_key"`
	ClientEmail             string `json:"client_email"`
	ClientID                string `json:"client_id"`
	AuthURI                 string `json:"auth_uri"`
	TokenURI                string `json:"token_uri"`
	AuthProviderX509CertURL string `json:"auth_provider_x509_cert_url"`
	ClientX509CertURL       string `json:"client_x509_cert_url"`
}

// IsConfigured reports whether the fields needed to build a key are set
func (x ServiceAccount) IsConfigured() bool {
	return x.ProjectID != "" && x.PrivateKey != "" && x.ClientEmail != ""
}

// KeyJSON renders the fields as a service account key file. Escaped "\n"
// sequences in the private key, as commonly found in environment variables,
// are turned into newlines.
func (x ServiceAccount) KeyJSON() ([]byte, error) {
	if !x.IsConfigured() {
		return nil, goerr.New("service account project ID, private key and client email are required")
	}

	key := serviceAccountKey{
		Type:                    "service_account",
		ProjectID:               x.ProjectID,
		PrivateKeyID:            x.PrivateKeyID,
		PrivateKey:              strings.ReplaceAll(x.PrivateKey, `\n`, "\n"),
		ClientEmail:             x.ClientEmail,
		ClientID:                x.ClientID,
		AuthURI:                 "https://accounts.google.com/o/oauth2/auth",
		TokenURI:                "https://oauth2.googleapis.com/token",
		AuthProviderX509CertURL: "https://www.googleapis.com/oauth2/v1/certs",
		ClientX509CertURL:       "https://www.googleapis.com/robot/v1/metadata/x509/" + x.ClientEmail,
	}

	data, err := json.Marshal(key)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal service account key")
	}
	return data, nil
}

// ValidateKeyFile checks that a key file carries type, private_key and
// client_email
func ValidateKeyFile(data []byte) error {
	var key serviceAccountKey
	if err := json.Unmarshal(data, &key); err != nil {
		return goerr.Wrap(err, "service account key file is not valid JSON")
	}
	if key.Type == "" || key.PrivateKey == "" || key.ClientEmail == "" {
		return goerr.New("service account key file lacks type, private_key or client_email")
	}
	return nil
}

// ServiceAccountTokenSource returns a JWT based token source for a key
func ServiceAccountTokenSource(ctx context.Context, keyJSON []byte, scopes ...string) (oauth2.TokenSource, error) {
	cfg, err := googleoauth.JWTConfigFromJSON(keyJSON, scopes...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse service account key")
	}
	return cfg.TokenSource(ctx), nil
}
