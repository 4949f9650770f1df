package http

import (
	"net/http"
)

type healthResponse struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
	Slack     struct {
		Enabled bool `json:"enabled"`
	} `json:"slack"`
	Auth struct {
		OAuthConfigured bool `json:"oauthConfigured"`
		Authorized      bool `json:"authorized"`
	} `json:"auth"`
}

type slackHealthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Enabled   bool   `json:"enabled"`
	Connected *bool  `json:"connected,omitempty"`
}

var endpoints = map[string]string{
	"GET /":                               "Health check",
	"GET /slack/health":                   "Slack connectivity check",
	"GET /sheets/{spreadsheetId}":         "Get all sheet names",
	"GET /sheets/{spreadsheetId}/{range}": "Get data from specific range",
	"GET /sheets/{spreadsheetId}/data":    "Get data with query parameters",
	"GET /sheets/{spreadsheetId}/all":     "Get ALL data from a sheet (all rows and columns) + Slack notification",
	"GET /auth/google":                    "Get Google OAuth consent URL",
	"GET /auth/google/callback":           "Complete Google OAuth authorization",
	"GET /auth/google/status":             "Google OAuth authorization status",
	"POST /auth/google/revoke":            "Revoke Google OAuth authorization",
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Message:   "sheetcast API is running!",
		Endpoints: endpoints,
	}
	resp.Slack.Enabled = s.uc.Notify.Enabled()
	resp.Auth.OAuthConfigured = s.uc.OAuth.IsConfigured()
	resp.Auth.Authorized = s.uc.OAuth.IsAuthorized(r.Context())

	writeJSON(r.Context(), w, http.StatusOK, resp)
}

func (s *Server) slackHealthHandler(w http.ResponseWriter, r *http.Request) {
	if !s.uc.Notify.Enabled() {
		writeJSON(r.Context(), w, http.StatusOK, slackHealthResponse{
			Success: false,
			Message: "Slack notifications are disabled or not configured",
			Enabled: false,
		})
		return
	}

	connected := s.uc.Notify.TestConnection(r.Context())
	if !connected {
		writeJSON(r.Context(), w, http.StatusInternalServerError, slackHealthResponse{
			Success:   false,
			Message:   "Failed to connect to Slack",
			Enabled:   true,
			Connected: &connected,
		})
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, slackHealthResponse{
		Success:   true,
		Message:   "Slack connection is working properly",
		Enabled:   true,
		Connected: &connected,
	})
}
