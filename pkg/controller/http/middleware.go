package http

import (
	"fmt"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sheetcast/pkg/utils/errutil"
)

// recoverer turns a panic in a handler into a generic 500 response. The
// panic value is only exposed in development mode.
func recoverer(development bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				var err error
				switch v := rec.(type) {
				case error:
					err = goerr.Wrap(v, "panic in HTTP handler")
				default:
					err = goerr.New("panic in HTTP handler", goerr.V("panic", fmt.Sprint(v)))
				}
				_ = errutil.Handle(r.Context(), err, "recovered from panic")

				resp := errorResponse{
					Success: false,
					Error:   "Something went wrong!",
				}
				if development {
					resp.Details = err.Error()
				}
				writeJSON(r.Context(), w, http.StatusInternalServerError, resp)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusNotFound, errorResponse{
		Success: false,
		Error:   "Endpoint not found",
	})
}
