package usecase

import (
	"github.com/secmon-lab/sheetcast/pkg/domain/interfaces"
	"github.com/secmon-lab/sheetcast/pkg/domain/model"
	"github.com/secmon-lab/sheetcast/pkg/service/google"
	"github.com/secmon-lab/sheetcast/pkg/service/sheets"
	"github.com/secmon-lab/sheetcast/pkg/service/slack"
)

// UseCases bundles every use case of sheetcast. All external clients are
// built once at startup and injected here.
type UseCases struct {
	sheetsService sheets.Service
	slackService  slack.Service
	oauthClient   google.OAuthClient
	tokenRepo     interfaces.TokenRepository
	notifyConfig  NotifyConfig

	Sheets *SheetsUseCase
	OAuth  *OAuthUseCase
	Notify *NotifyUseCase
}

type Option func(*UseCases)

// WithSheetsService sets the Sheets API client
func WithSheetsService(svc sheets.Service) Option {
	return func(uc *UseCases) {
		uc.sheetsService = svc
	}
}

// WithSlackService sets the Slack client. Notifications stay disabled
// without it.
func WithSlackService(svc slack.Service) Option {
	return func(uc *UseCases) {
		uc.slackService = svc
	}
}

// WithOAuth sets the Google authorization server client and the token store
func WithOAuth(client google.OAuthClient, repo interfaces.TokenRepository) Option {
	return func(uc *UseCases) {
		uc.oauthClient = client
		uc.tokenRepo = repo
	}
}

// WithTokenRepository sets the token store alone, so that the authorization
// status can be read without an OAuth client
func WithTokenRepository(repo interfaces.TokenRepository) Option {
	return func(uc *UseCases) {
		uc.tokenRepo = repo
	}
}

// WithNotifyConfig sets notification defaults
func WithNotifyConfig(cfg NotifyConfig) Option {
	return func(uc *UseCases) {
		uc.notifyConfig = cfg
	}
}

func New(opts ...Option) *UseCases {
	uc := &UseCases{
		notifyConfig: NotifyConfig{
			MaxRows: model.DefaultNotifyMaxRows,
		},
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Sheets = NewSheetsUseCase(uc.sheetsService)
	uc.OAuth = NewOAuthUseCase(uc.oauthClient, uc.tokenRepo)
	uc.Notify = NewNotifyUseCase(uc.slackService, uc.notifyConfig)

	return uc
}
