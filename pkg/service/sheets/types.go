package sheets

import (
	"context"

	"github.com/secmon-lab/sheetcast/pkg/domain/model"
)

// Service provides read access to the Google Sheets API
type Service interface {
	// GetValues reads one range. An empty or absent value range yields an
	// empty grid, not an error.
	GetValues(ctx context.Context, spreadsheetID model.SpreadsheetID, rng string, opts model.RenderOptions) (model.Grid, error)

	// GetSpreadsheet reads the spreadsheet title and per-sheet grid
	// dimensions
	GetSpreadsheet(ctx context.Context, spreadsheetID model.SpreadsheetID) (*model.SpreadsheetInfo, error)
}
