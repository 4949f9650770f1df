package http

import (
	"net/http"
)

type authURLResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
}

type authCallbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type authStatusResponse struct {
	Success    bool `json:"success"`
	Authorized bool `json:"authorized"`
}

type authRevokeResponse struct {
	Success bool `json:"success"`
	// Revoked is false when Google could not be reached or rejected the token
	Revoked      bool `json:"revoked"`
	TokenDeleted bool `json:"tokenDeleted"`
}

func (s *Server) authURLHandler(w http.ResponseWriter, r *http.Request) {
	u, err := s.uc.OAuth.AuthURL()
	if err != nil {
		handleError(w, r, err, "Failed to generate auth URL")
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, authURLResponse{
		Success: true,
		URL:     u,
	})
}

func (s *Server) authCallbackHandler(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		badRequest(w, r, "Missing 'code' query param")
		return
	}

	if err := s.uc.OAuth.HandleCallback(r.Context(), code); err != nil {
		handleError(w, r, err, "OAuth callback failed")
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, authCallbackResponse{
		Success: true,
		Message: "OAuth successful. Tokens stored.",
	})
}

func (s *Server) authStatusHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, authStatusResponse{
		Success:    true,
		Authorized: s.uc.OAuth.IsAuthorized(r.Context()),
	})
}

// authRevokeHandler fails only when OAuth is not configured; both
// revocation steps are best effort
func (s *Server) authRevokeHandler(w http.ResponseWriter, r *http.Request) {
	result, err := s.uc.OAuth.Revoke(r.Context())
	if err != nil {
		handleError(w, r, err, "Failed to revoke")
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, authRevokeResponse{
		Success:      true,
		Revoked:      result.Upstream.OK,
		TokenDeleted: result.Local.OK,
	})
}
