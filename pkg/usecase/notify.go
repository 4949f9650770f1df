package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/secmon-lab/sheetcast/pkg/domain/model"
	slacksvc "github.com/secmon-lab/sheetcast/pkg/service/slack"
	"github.com/secmon-lab/sheetcast/pkg/utils/errutil"
	"github.com/secmon-lab/sheetcast/pkg/utils/logging"
	"github.com/slack-go/slack"
)

// NotifyConfig holds notification defaults
type NotifyConfig struct {
	Enabled bool
	// Channel is used when NotifyOptions.Channel is empty
	Channel         string
	MaxRows         int
	IncludeMetadata bool
}

// NotifyUseCase renders spreadsheet tables as Block Kit messages and posts
// them to Slack
type NotifyUseCase struct {
	slack  slacksvc.Service
	config NotifyConfig
	now    func() time.Time
}

func NewNotifyUseCase(svc slacksvc.Service, cfg NotifyConfig) *NotifyUseCase {
	if cfg.MaxRows <= 0 {
		cfg.MaxRows = model.DefaultNotifyMaxRows
	}
	return &NotifyUseCase{
		slack:  svc,
		config: cfg,
		now:    time.Now,
	}
}

// Enabled reports whether notifications are switched on and a Slack
// client is available
func (uc *NotifyUseCase) Enabled() bool {
	return uc.config.Enabled && uc.slack != nil
}

// DefaultOptions returns the configured options for table notifications
func (uc *NotifyUseCase) DefaultOptions() model.NotifyOptions {
	return model.NotifyOptions{
		Channel:         uc.config.Channel,
		IncludeMetadata: uc.config.IncludeMetadata,
		MaxRows:         uc.config.MaxRows,
	}
}

// BuildTableBlocks renders data as Block Kit blocks. The output depends
// only on its arguments and never exceeds model.MaxSlackBlocks blocks.
func BuildTableBlocks(data *model.TableData, opts model.NotifyOptions, now time.Time) []slack.Block {
	maxRows := opts.MaxRows
	if maxRows <= 0 {
		maxRows = model.DefaultNotifyMaxRows
	}

	title := slacksvc.TruncateText("📊 Google Sheets Data: "+data.Metadata.SheetName, slacksvc.MaxHeaderTextLength)
	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, title, false, false)),
	}

	if opts.IncludeMetadata {
		m := data.Metadata
		fields := []*slack.TextBlockObject{
			mrkdwn(fmt.Sprintf("*Spreadsheet ID:*\n%s", slacksvc.EscapeMrkdwn(m.SpreadsheetID))),
			mrkdwn(fmt.Sprintf("*Sheet Name:*\n%s", slacksvc.EscapeMrkdwn(m.SheetName))),
			mrkdwn(fmt.Sprintf("*Total Rows:*\n%d", m.TotalRows)),
			mrkdwn(fmt.Sprintf("*Data Rows:*\n%d", m.ActualDataRows)),
		}
		blocks = append(blocks,
			slack.NewSectionBlock(nil, fields, nil),
			slack.NewDividerBlock(),
		)
	}

	if len(data.Headers) > 0 && len(data.Rows) > 0 {
		headerCells := make([]string, len(data.Headers))
		separator := make([]string, len(data.Headers))
		for i, h := range data.Headers {
			headerCells[i] = "*" + slacksvc.EscapeMrkdwn(h) + "*"
			separator[i] = "---"
		}
		blocks = append(blocks,
			textSection(strings.Join(headerCells, " | ")),
			textSection(strings.Join(separator, " | ")),
		)

		// Leave room for the "more rows" line and the footer
		if budget := model.MaxSlackBlocks - len(blocks) - 2; maxRows > budget {
			maxRows = budget
		}

		displayed := data.Rows
		if len(displayed) > maxRows {
			displayed = displayed[:maxRows]
		}
		for _, row := range displayed {
			blocks = append(blocks, textSection(formatRow(row, len(data.Headers))))
		}

		if more := len(data.Rows) - len(displayed); more > 0 {
			blocks = append(blocks, textSection(fmt.Sprintf("_... and %d more rows_", more)))
		}
	} else {
		blocks = append(blocks, textSection("ℹ️ No data found in the spreadsheet"))
	}

	blocks = append(blocks, slack.NewContextBlock("",
		mrkdwn("📅 Retrieved at: "+now.UTC().Format(time.RFC3339)),
	))

	return blocks
}

// formatRow pads or cuts row to width cells and shows empty cells as "-"
func formatRow(row []string, width int) string {
	cells := make([]string, width)
	for i := range cells {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if cell == "" {
			cell = "-"
		}
		cells[i] = slacksvc.EscapeMrkdwn(cell)
	}
	return strings.Join(cells, " | ")
}

func mrkdwn(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.MarkdownType, text, false, false)
}

func textSection(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(mrkdwn(slacksvc.TruncateText(text, slacksvc.MaxSectionTextLength)), nil, nil)
}

// Dispatch posts blocks to channel. It never fails: every problem is logged
// and reported as a failed Result.
func (uc *NotifyUseCase) Dispatch(ctx context.Context, channel, threadTS string, blocks []slack.Block, text string) model.Result {
	logger := logging.From(ctx)

	if !uc.Enabled() {
		logger.Debug("Slack notifications are disabled or not configured")
		return model.Failed("Slack notifications are disabled or not configured")
	}

	if channel == "" {
		channel = uc.config.Channel
	}
	if channel == "" {
		logger.Warn("no Slack channel configured for notification")
		return model.Failed("no Slack channel configured")
	}

	ts, err := uc.slack.PostMessage(ctx, &slacksvc.Message{
		ChannelID: channel,
		Blocks:    blocks,
		Text:      text,
		ThreadTS:  threadTS,
	})
	if err != nil {
		errutil.Handle(ctx, err, "failed to send Slack notification")
		return model.Failed(err.Error())
	}

	logger.Info("Slack notification sent", "channel", channel, "ts", ts)
	return model.Succeeded()
}

// SendTable renders data and posts it
func (uc *NotifyUseCase) SendTable(ctx context.Context, data *model.TableData, opts model.NotifyOptions) model.Result {
	if data == nil {
		return model.Failed("no table data")
	}

	blocks := BuildTableBlocks(data, opts, uc.now())
	text := "Google Sheets Data: " + data.Metadata.SheetName
	return uc.Dispatch(ctx, opts.Channel, opts.ThreadTS, blocks, text)
}

// SendMessage posts a plain text message
func (uc *NotifyUseCase) SendMessage(ctx context.Context, text string, opts model.NotifyOptions) model.Result {
	blocks := []slack.Block{textSection(text)}
	return uc.Dispatch(ctx, opts.Channel, opts.ThreadTS, blocks, text)
}

// TestConnection calls auth.test. It is false when notifications are
// disabled.
func (uc *NotifyUseCase) TestConnection(ctx context.Context) bool {
	if !uc.Enabled() {
		return false
	}

	id, err := uc.slack.AuthTest(ctx)
	if err != nil {
		logging.From(ctx).Warn("Slack connection test failed", "error", err)
		return false
	}

	logging.From(ctx).Debug("Slack connection test passed", "team", id.Team, "user", id.User)
	return true
}
