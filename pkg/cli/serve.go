package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sheetcast/pkg/cli/config"
	httpctrl "github.com/secmon-lab/sheetcast/pkg/controller/http"
	"github.com/secmon-lab/sheetcast/pkg/usecase"
	"github.com/secmon-lab/sheetcast/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe(version string) *cli.Command {
	var addr string
	var port string
	var env string
	var allowedOrigins []string
	var fileCfg config.File
	var googleCfg config.Google
	var slackCfg config.Slack
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address (overrides --port)",
			Sources:     cli.EnvVars("SHEETCAST_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "port",
			Usage:       "HTTP server port",
			Value:       "3000",
			Sources:     cli.EnvVars("SHEETCAST_PORT", "PORT"),
			Destination: &port,
		},
		&cli.StringFlag{
			Name:        "env",
			Usage:       "Environment name; \"development\" adds error details to 500 responses",
			Value:       "development",
			Sources:     cli.EnvVars("SHEETCAST_ENV", "NODE_ENV"),
			Destination: &env,
		},
		&cli.StringSliceFlag{
			Name:        "cors-origin",
			Usage:       "Allowed CORS origin (repeatable, default: any)",
			Sources:     cli.EnvVars("SHEETCAST_CORS_ORIGINS"),
			Destination: &allowedOrigins,
		},
	}

	// Add shared config flags
	flags = append(flags, fileCfg.Flags()...)
	flags = append(flags, googleCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if addr == "" {
				addr = ":" + port
			}

			logging.Default().Info("Configuration",
				"addr", addr,
				"env", env,
				"config", fileCfg,
				"google", googleCfg,
				"slack", slackCfg,
				"sentry", sentryCfg,
			)

			// Fail fast on missing credentials
			if err := googleCfg.Validate(); err != nil {
				return err
			}
			if err := slackCfg.Validate(); err != nil {
				return err
			}

			appCfg, err := fileCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load configuration file")
			}

			flush, err := sentryCfg.Configure(version)
			if err != nil {
				return err
			}
			defer flush()

			uc, err := buildUseCases(ctx, &googleCfg, &slackCfg)
			if err != nil {
				return err
			}

			httpOpts := []httpctrl.Options{
				httpctrl.WithDevelopment(env == "development"),
				httpctrl.WithNotifyOptions(appCfg.NotifyOptions()),
			}
			if len(allowedOrigins) > 0 {
				httpOpts = append(httpOpts, httpctrl.WithAllowedOrigins(allowedOrigins))
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server",
					"addr", addr,
					"env", env,
					"slack_notifications", uc.Notify.Enabled(),
					"oauth", uc.OAuth.IsConfigured(),
				)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				// Create shutdown context with timeout
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				// Attempt graceful shutdown
				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}

// buildUseCases constructs every external client once and injects them
func buildUseCases(ctx context.Context, googleCfg *config.Google, slackCfg *config.Slack) (*usecase.UseCases, error) {
	oauthClient, err := googleCfg.OAuthClient()
	if err != nil {
		return nil, err
	}

	tokenRepo := googleCfg.TokenRepository()
	ucOpts := []usecase.Option{usecase.WithTokenRepository(tokenRepo)}
	if oauthClient != nil {
		ucOpts = append(ucOpts, usecase.WithOAuth(oauthClient, tokenRepo))
	}

	slackSvc, err := slackCfg.Configure()
	if err != nil {
		return nil, err
	}
	if slackSvc != nil {
		ucOpts = append(ucOpts, usecase.WithSlackService(slackSvc))
	}
	ucOpts = append(ucOpts, usecase.WithNotifyConfig(slackCfg.NotifyConfig()))

	// The OAuth token source reads the token store, so it can be built
	// before the Sheets client exists
	oauthUC := usecase.NewOAuthUseCase(oauthClient, tokenRepo)
	sheetsSvc, err := googleCfg.ConfigureSheets(ctx, oauthUC.TokenSource(ctx))
	if err != nil {
		return nil, err
	}
	ucOpts = append(ucOpts, usecase.WithSheetsService(sheetsSvc))

	return usecase.New(ucOpts...), nil
}
