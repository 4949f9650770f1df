package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/sheetcast/pkg/domain/model"
	"github.com/secmon-lab/sheetcast/pkg/service/sheets"
	"github.com/secmon-lab/sheetcast/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// SheetsUseCase reads cell values and metadata from Google Sheets
type SheetsUseCase struct {
	sheets sheets.Service
}

func NewSheetsUseCase(svc sheets.Service) *SheetsUseCase {
	return &SheetsUseCase{sheets: svc}
}

func (uc *SheetsUseCase) service() (sheets.Service, error) {
	if uc.sheets == nil {
		return nil, configurationError("Google Sheets client is not configured")
	}
	return uc.sheets, nil
}

// GetRange fetches the values of one A1 range. An empty range in the
// spreadsheet is an empty grid, not an error.
func (uc *SheetsUseCase) GetRange(ctx context.Context, id model.SpreadsheetID, rng string, opts model.RenderOptions) (model.Grid, error) {
	if err := id.Validate(); err != nil {
		return nil, validationError("spreadsheet ID is required")
	}
	if rng == "" {
		return nil, validationError("range is required", goerr.V(SpreadsheetIDKey, id))
	}
	if err := opts.Validate(); err != nil {
		return nil, &classifiedError{kind: ErrValidation, cause: err}
	}

	svc, err := uc.service()
	if err != nil {
		return nil, err
	}

	grid, err := svc.GetValues(ctx, id, rng, opts)
	if err != nil {
		return nil, goerr.Wrap(upstreamError(err), "failed to fetch values",
			goerr.V(SpreadsheetIDKey, id),
			goerr.V(RangeKey, rng))
	}

	return grid, nil
}

// GetWholeSheet reads the used region of a sheet. The values and the
// spreadsheet metadata are fetched concurrently.
func (uc *SheetsUseCase) GetWholeSheet(ctx context.Context, id model.SpreadsheetID, sheetName string) (*model.WholeSheet, error) {
	if err := id.Validate(); err != nil {
		return nil, validationError("spreadsheet ID is required")
	}
	if sheetName == "" {
		sheetName = model.DefaultSheetName
	}

	svc, err := uc.service()
	if err != nil {
		return nil, err
	}

	var (
		grid     model.Grid
		broad    bool
		metadata *model.SpreadsheetInfo
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		g, b, err := uc.fetchUsedRegion(egCtx, svc, id, sheetName)
		if err != nil {
			return err
		}
		grid, broad = g, b
		return nil
	})
	eg.Go(func() error {
		info, err := svc.GetSpreadsheet(egCtx, id)
		if err != nil {
			return goerr.Wrap(upstreamError(err), "failed to fetch spreadsheet metadata",
				goerr.V(SpreadsheetIDKey, id))
		}
		metadata = info
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	result := &model.WholeSheet{
		SheetName: sheetName,
		Data:      grid,
		Headers:   grid.Headers(),
		Records:   grid.Records(),
	}

	if sheet := metadata.FindSheet(sheetName); sheet != nil {
		result.TotalRows = sheet.RowCount
		result.TotalColumns = sheet.ColumnCount
	}
	if result.TotalRows == 0 {
		result.TotalRows = int64(len(grid))
	}
	if result.TotalColumns == 0 {
		if broad {
			result.TotalColumns = model.BroadColumnCount
		} else {
			result.TotalColumns = int64(len(grid.Headers()))
		}
	}

	return result, nil
}

// fetchUsedRegion queries the bare sheet name first. When that is empty it
// retries with the A:Z range, so columns after Z are not seen on that path.
func (uc *SheetsUseCase) fetchUsedRegion(ctx context.Context, svc sheets.Service, id model.SpreadsheetID, sheetName string) (model.Grid, bool, error) {
	opts := model.DefaultRenderOptions()

	grid, err := svc.GetValues(ctx, id, sheetName, opts)
	if err != nil {
		return nil, false, goerr.Wrap(upstreamError(err), "failed to fetch sheet values",
			goerr.V(SpreadsheetIDKey, id),
			goerr.V(SheetNameKey, sheetName))
	}
	if len(grid) > 0 {
		return grid, false, nil
	}

	broadRange := model.BroadRange(sheetName)
	logging.From(ctx).Debug("sheet returned no values, retrying with broad range",
		"spreadsheet_id", id,
		"range", broadRange,
	)

	grid, err = svc.GetValues(ctx, id, broadRange, opts)
	if err != nil {
		return nil, true, goerr.Wrap(upstreamError(err), "failed to fetch sheet values",
			goerr.V(SpreadsheetIDKey, id),
			goerr.V(RangeKey, broadRange))
	}

	return grid, true, nil
}

// GetSpreadsheetInfo returns the spreadsheet title and its sheets
func (uc *SheetsUseCase) GetSpreadsheetInfo(ctx context.Context, id model.SpreadsheetID) (*model.SpreadsheetInfo, error) {
	if err := id.Validate(); err != nil {
		return nil, validationError("spreadsheet ID is required")
	}

	svc, err := uc.service()
	if err != nil {
		return nil, err
	}

	info, err := svc.GetSpreadsheet(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(upstreamError(err), "failed to fetch spreadsheet",
			goerr.V(SpreadsheetIDKey, id))
	}
	if len(info.Sheets) == 0 {
		return nil, goerr.Wrap(ErrNoSheets, "spreadsheet has no sheets",
			goerr.V(SpreadsheetIDKey, id))
	}

	return info, nil
}
