package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/secmon-lab/sheetcast/pkg/domain/model"
	"github.com/secmon-lab/sheetcast/pkg/usecase"
	"github.com/secmon-lab/sheetcast/pkg/utils/logging"
)

type Server struct {
	router         *chi.Mux
	uc             *usecase.UseCases
	development    bool
	allowedOrigins []string
	notifyOptions  model.NotifyOptions
}

type Options func(*Server)

// WithDevelopment adds error details to 500 responses
func WithDevelopment(enabled bool) Options {
	return func(s *Server) {
		s.development = enabled
	}
}

// WithAllowedOrigins restricts CORS origins. All origins are allowed by
// default.
func WithAllowedOrigins(origins []string) Options {
	return func(s *Server) {
		s.allowedOrigins = origins
	}
}

// WithNotifyOptions sets the options of the notification sent by the full
// sheet endpoint
func WithNotifyOptions(opts model.NotifyOptions) Options {
	return func(s *Server) {
		s.notifyOptions = opts
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:         r,
		uc:             uc,
		allowedOrigins: []string{"*"},
		notifyOptions: model.NotifyOptions{
			IncludeMetadata: true,
			MaxRows:         model.DefaultNotifyMaxRows,
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(recoverer(s.development))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", s.healthHandler)
	r.Get("/slack/health", s.slackHealthHandler)

	// /all and /data must be registered before the {range} catch
	r.Route("/sheets/{spreadsheetId}", func(r chi.Router) {
		r.Get("/", s.sheetNamesHandler)
		r.Get("/all", s.allSheetDataHandler)
		r.Get("/data", s.sheetDataHandler)
		r.Get("/{range}", s.sheetRangeHandler)
	})

	r.Route("/auth/google", func(r chi.Router) {
		r.Get("/", s.authURLHandler)
		r.Get("/callback", s.authCallbackHandler)
		r.Get("/status", s.authStatusHandler)
		r.Post("/revoke", s.authRevokeHandler)
	})

	r.NotFound(notFoundHandler)
	r.MethodNotAllowed(notFoundHandler)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		logger := logging.From(r.Context()).With("request_id", middleware.GetReqID(r.Context()))
		ctx := logging.With(r.Context(), logger)

		defer func() {
			logger.Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r.WithContext(ctx))
	})
}
