package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sheetcast/pkg/cli/config"
	"github.com/secmon-lab/sheetcast/pkg/usecase"
	"github.com/urfave/cli/v3"
)

var (
	colorOK   = color.New(color.FgGreen, color.Bold)
	colorNG   = color.New(color.FgRed, color.Bold)
	colorInfo = color.New(color.FgCyan)
)

// cmdAuth runs the Google OAuth flow from a terminal, for hosts where the
// callback endpoint is not reachable by a browser
func cmdAuth() *cli.Command {
	var googleCfg config.Google
	var slackCfg config.Slack
	var code string

	flags := append(googleCfg.Flags(), slackCfg.Flags()...)

	build := func() (*usecase.UseCases, error) {
		if !googleCfg.HasOAuth() {
			return nil, goerr.Wrap(config.ErrMissingCredentials,
				"set --google-oauth-client-id, --google-oauth-client-secret and --google-oauth-redirect-uri")
		}
		if err := googleCfg.Validate(); err != nil {
			return nil, err
		}
		if err := slackCfg.Validate(); err != nil {
			return nil, err
		}

		client, err := googleCfg.OAuthClient()
		if err != nil {
			return nil, err
		}
		opts := []usecase.Option{
			usecase.WithOAuth(client, googleCfg.TokenRepository()),
			usecase.WithNotifyConfig(slackCfg.NotifyConfig()),
		}

		slackSvc, err := slackCfg.Configure()
		if err != nil {
			return nil, err
		}
		if slackSvc != nil {
			opts = append(opts, usecase.WithSlackService(slackSvc))
		}
		return usecase.New(opts...), nil
	}

	return &cli.Command{
		Name:  "auth",
		Usage: "Manage Google OAuth authorization",
		Flags: flags,
		Commands: []*cli.Command{
			{
				Name:  "url",
				Usage: "Print the consent URL",
				Action: func(ctx context.Context, c *cli.Command) error {
					uc, err := build()
					if err != nil {
						return err
					}
					u, err := uc.OAuth.AuthURL()
					if err != nil {
						return err
					}

					w := writer(c)
					colorInfo.Fprintln(w, "Open the following URL and approve access:")
					fmt.Fprintln(w, u)
					colorInfo.Fprintln(w, "Then run: sheetcast auth exchange --code <code>")
					return nil
				},
			},
			{
				Name:  "exchange",
				Usage: "Exchange an authorization code and store the token",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "code",
						Usage:       "Authorization code from the redirect",
						Required:    true,
						Destination: &code,
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					uc, err := build()
					if err != nil {
						return err
					}
					if err := uc.OAuth.HandleCallback(ctx, code); err != nil {
						printResult(writer(c), false, "authorization failed: "+err.Error())
						return err
					}
					printResult(writer(c), true, "token stored in "+googleCfg.TokenFilePath())

					if uc.Notify.Enabled() {
						uc.Notify.SendMessage(ctx, "✅ sheetcast is authorized to read Google Sheets", uc.Notify.DefaultOptions())
					}
					return nil
				},
			},
			{
				Name:  "status",
				Usage: "Show whether a token is stored",
				Action: func(ctx context.Context, c *cli.Command) error {
					uc, err := build()
					if err != nil {
						return err
					}
					if uc.OAuth.IsAuthorized(ctx) {
						printResult(writer(c), true, "authorized ("+googleCfg.TokenFilePath()+")")
					} else {
						printResult(writer(c), false, "not authorized")
					}
					return nil
				},
			},
			{
				Name:  "revoke",
				Usage: "Revoke the stored token and delete it",
				Action: func(ctx context.Context, c *cli.Command) error {
					uc, err := build()
					if err != nil {
						return err
					}
					result, err := uc.OAuth.Revoke(ctx)
					if err != nil {
						return err
					}
					w := writer(c)
					printResult(w, result.Upstream.OK, "revoke at Google: "+describe(result.Upstream.OK, result.Upstream.Reason))
					printResult(w, result.Local.OK, "delete local token: "+describe(result.Local.OK, result.Local.Reason))
					return nil
				},
			},
		},
	}
}

func writer(c *cli.Command) io.Writer {
	if w := c.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func printResult(w io.Writer, ok bool, msg string) {
	if ok {
		colorOK.Fprint(w, "✔ ")
	} else {
		colorNG.Fprint(w, "✘ ")
	}
	fmt.Fprintln(w, msg)
}

func describe(ok bool, reason string) string {
	if ok {
		return "done"
	}
	return "skipped (" + reason + ")"
}
