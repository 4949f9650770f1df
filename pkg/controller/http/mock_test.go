package http_test

import (
	"context"

	"github.com/secmon-lab/sheetcast/pkg/domain/model"
	"github.com/secmon-lab/sheetcast/pkg/service/slack"
	"golang.org/x/oauth2"
)

type mockSheets struct {
	getValuesFn      func(ctx context.Context, id model.SpreadsheetID, rng string, opts model.RenderOptions) (model.Grid, error)
	getSpreadsheetFn func(ctx context.Context, id model.SpreadsheetID) (*model.SpreadsheetInfo, error)
}

func (m *mockSheets) GetValues(ctx context.Context, id model.SpreadsheetID, rng string, opts model.RenderOptions) (model.Grid, error) {
	if m.getValuesFn != nil {
		return m.getValuesFn(ctx, id, rng, opts)
	}
	return nil, nil
}

func (m *mockSheets) GetSpreadsheet(ctx context.Context, id model.SpreadsheetID) (*model.SpreadsheetInfo, error) {
	if m.getSpreadsheetFn != nil {
		return m.getSpreadsheetFn(ctx, id)
	}
	return &model.SpreadsheetInfo{Title: "Unknown Spreadsheet"}, nil
}

type mockSlack struct {
	postMessageFn func(ctx context.Context, msg *slack.Message) (string, error)
	authTestFn    func(ctx context.Context) (*slack.Identity, error)
}

func (m *mockSlack) PostMessage(ctx context.Context, msg *slack.Message) (string, error) {
	if m.postMessageFn != nil {
		return m.postMessageFn(ctx, msg)
	}
	return "1700000000.000100", nil
}

func (m *mockSlack) AuthTest(ctx context.Context) (*slack.Identity, error) {
	if m.authTestFn != nil {
		return m.authTestFn(ctx)
	}
	return &slack.Identity{TeamID: "T001"}, nil
}

type mockOAuth struct{}

func (m *mockOAuth) AuthCodeURL(state string) string {
	return "https://accounts.example.com/o/oauth2/auth?state=" + state
}

func (m *mockOAuth) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return &oauth2.Token{AccessToken: "access-" + code, RefreshToken: "refresh-" + code}, nil
}

func (m *mockOAuth) Revoke(ctx context.Context, token *oauth2.Token) error {
	return nil
}
