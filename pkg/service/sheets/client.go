package sheets

import (
	"context"
	"fmt"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sheetcast/pkg/domain/model"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// ReadOnlyScope is the only scope sheetcast requests
const ReadOnlyScope = gsheets.SpreadsheetsReadonlyScope

// client implements Service interface
type client struct {
	api *gsheets.Service
}

// New creates a Sheets service. Credentials are supplied through opts, for
// example option.WithTokenSource.
func New(ctx context.Context, opts ...option.ClientOption) (Service, error) {
	api, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create sheets service")
	}

	return &client{api: api}, nil
}

// GetValues reads cell values of one range
func (c *client) GetValues(ctx context.Context, spreadsheetID model.SpreadsheetID, rng string, opts model.RenderOptions) (model.Grid, error) {
	resp, err := c.api.Spreadsheets.Values.Get(spreadsheetID.String(), rng).
		ValueRenderOption(string(opts.Value)).
		DateTimeRenderOption(string(opts.DateTime)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get values",
			goerr.V("spreadsheet_id", spreadsheetID),
			goerr.V("range", rng))
	}

	return toGrid(resp.Values), nil
}

// GetSpreadsheet reads spreadsheet properties without grid data
func (c *client) GetSpreadsheet(ctx context.Context, spreadsheetID model.SpreadsheetID) (*model.SpreadsheetInfo, error) {
	resp, err := c.api.Spreadsheets.Get(spreadsheetID.String()).
		IncludeGridData(false).
		Context(ctx).
		Do()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get spreadsheet",
			goerr.V("spreadsheet_id", spreadsheetID))
	}

	info := &model.SpreadsheetInfo{
		Title:  "Unknown Spreadsheet",
		Sheets: make([]model.SheetInfo, 0, len(resp.Sheets)),
	}
	if resp.Properties != nil && resp.Properties.Title != "" {
		info.Title = resp.Properties.Title
	}

	for _, sheet := range resp.Sheets {
		info.Sheets = append(info.Sheets, toSheetInfo(sheet))
	}

	return info, nil
}

func toSheetInfo(sheet *gsheets.Sheet) model.SheetInfo {
	info := model.SheetInfo{Name: "Unknown"}
	if sheet == nil || sheet.Properties == nil {
		return info
	}

	props := sheet.Properties
	if props.Title != "" {
		info.Name = props.Title
	}
	info.ID = props.SheetId
	if props.GridProperties != nil {
		info.RowCount = props.GridProperties.RowCount
		info.ColumnCount = props.GridProperties.ColumnCount
	}

	return info
}

func toGrid(values [][]interface{}) model.Grid {
	grid := make(model.Grid, 0, len(values))
	for _, row := range values {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = cellString(v)
		}
		grid = append(grid, cells)
	}
	return grid
}

// cellString renders a cell the way it would appear as text. UNFORMATTED_VALUE
// responses carry numbers and booleans.
func cellString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
