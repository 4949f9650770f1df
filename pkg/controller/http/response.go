package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/secmon-lab/sheetcast/pkg/usecase"
	"github.com/secmon-lab/sheetcast/pkg/utils/errutil"
	"github.com/secmon-lab/sheetcast/pkg/utils/logging"
	"github.com/secmon-lab/sheetcast/pkg/utils/safe"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		_ = errutil.Handle(ctx, err, "failed to marshal response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		safe.Write(ctx, w, []byte(`{"success":false,"error":"Something went wrong!"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(ctx, w, data)
}

// handleError writes the error envelope. Validation errors become 400 with
// their own message; everything else becomes 500 with msg and the error
// text as details.
func handleError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	ctx := r.Context()

	if errors.Is(err, usecase.ErrValidation) {
		logging.From(ctx).Warn("invalid request", "error", err.Error(), "path", r.URL.Path)
		writeJSON(ctx, w, http.StatusBadRequest, errorResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	_ = errutil.Handle(ctx, err, msg)
	writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{
		Success: false,
		Error:   msg,
		Details: err.Error(),
	})
}

func badRequest(w http.ResponseWriter, r *http.Request, msg string) {
	writeJSON(r.Context(), w, http.StatusBadRequest, errorResponse{
		Success: false,
		Error:   msg,
	})
}
