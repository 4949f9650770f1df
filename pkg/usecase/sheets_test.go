package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/sheetcast/pkg/domain/model"
	"github.com/secmon-lab/sheetcast/pkg/usecase"
)

func TestSheetsUseCase_GetRange(t *testing.T) {
	ctx := context.Background()

	t.Run("passes range and render options through", func(t *testing.T) {
		var gotRange string
		var gotOpts model.RenderOptions
		mock := &mockSheets{
			getValuesFn: func(ctx context.Context, id model.SpreadsheetID, rng string, opts model.RenderOptions) (model.Grid, error) {
				gotRange = rng
				gotOpts = opts
				return model.Grid{{"name"}, {"alice"}}, nil
			},
		}
		uc := usecase.New(usecase.WithSheetsService(mock))

		opts := model.RenderOptions{Value: model.Formula, DateTime: model.SerialNumber}
		grid, err := uc.Sheets.GetRange(ctx, "sheet-id", "Data!A1:B2", opts)
		gt.NoError(t, err).Required()
		gt.Array(t, grid).Length(2)
		gt.Value(t, gotRange).Equal("Data!A1:B2")
		gt.Value(t, gotOpts).Equal(opts)
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		uc := usecase.New(usecase.WithSheetsService(&mockSheets{}))

		grid, err := uc.Sheets.GetRange(ctx, "sheet-id", "Sheet1", model.DefaultRenderOptions())
		gt.NoError(t, err).Required()
		gt.Array(t, grid).Length(0)
	})

	t.Run("missing spreadsheet ID is a validation error", func(t *testing.T) {
		uc := usecase.New(usecase.WithSheetsService(&mockSheets{}))

		_, err := uc.Sheets.GetRange(ctx, "", "Sheet1", model.DefaultRenderOptions())
		gt.Error(t, err).Is(usecase.ErrValidation)
	})

	t.Run("unknown render option is a validation error", func(t *testing.T) {
		uc := usecase.New(usecase.WithSheetsService(&mockSheets{}))

		opts := model.RenderOptions{Value: "RAW", DateTime: model.FormattedString}
		_, err := uc.Sheets.GetRange(ctx, "sheet-id", "Sheet1", opts)
		gt.Error(t, err).Is(usecase.ErrValidation)
	})

	t.Run("upstream failure keeps the upstream message", func(t *testing.T) {
		upstream := errors.New("Requested entity was not found.")
		mock := &mockSheets{
			getValuesFn: func(ctx context.Context, id model.SpreadsheetID, rng string, opts model.RenderOptions) (model.Grid, error) {
				return nil, upstream
			},
		}
		uc := usecase.New(usecase.WithSheetsService(mock))

		_, err := uc.Sheets.GetRange(ctx, "sheet-id", "Sheet1", model.DefaultRenderOptions())
		gt.Error(t, err).Is(usecase.ErrUpstream)
		gt.Error(t, err).Is(upstream)
		gt.String(t, err.Error()).Contains("Requested entity was not found.")
	})

	t.Run("missing client is a configuration error", func(t *testing.T) {
		uc := usecase.New()

		_, err := uc.Sheets.GetRange(ctx, "sheet-id", "Sheet1", model.DefaultRenderOptions())
		gt.Error(t, err).Is(usecase.ErrConfiguration)
	})
}

func TestSheetsUseCase_GetWholeSheet(t *testing.T) {
	ctx := context.Background()

	t.Run("uses grid properties from metadata", func(t *testing.T) {
		mock := &mockSheets{
			getValuesFn: func(ctx context.Context, id model.SpreadsheetID, rng string, opts model.RenderOptions) (model.Grid, error) {
				gt.Value(t, rng).Equal("Orders")
				return model.Grid{{"id", "item"}, {"1", "apple"}, {"2"}}, nil
			},
			getSpreadsheetFn: func(ctx context.Context, id model.SpreadsheetID) (*model.SpreadsheetInfo, error) {
				return &model.SpreadsheetInfo{
					Title: "Shop",
					Sheets: []model.SheetInfo{
						{Name: "Sheet1", RowCount: 10, ColumnCount: 5},
						{Name: "Orders", RowCount: 1000, ColumnCount: 26},
					},
				}, nil
			},
		}
		uc := usecase.New(usecase.WithSheetsService(mock))

		sheet, err := uc.Sheets.GetWholeSheet(ctx, "sheet-id", "Orders")
		gt.NoError(t, err).Required()
		gt.Value(t, sheet.SheetName).Equal("Orders")
		gt.Value(t, sheet.TotalRows).Equal(int64(1000))
		gt.Value(t, sheet.TotalColumns).Equal(int64(26))
		gt.Value(t, sheet.Headers).Equal([]string{"id", "item"})
		gt.Array(t, sheet.Records).Length(2)
		gt.Value(t, sheet.Records[1]["item"]).Equal("")
	})

	t.Run("defaults to Sheet1", func(t *testing.T) {
		var mu sync.Mutex
		var ranges []string
		mock := &mockSheets{
			getValuesFn: func(ctx context.Context, id model.SpreadsheetID, rng string, opts model.RenderOptions) (model.Grid, error) {
				mu.Lock()
				defer mu.Unlock()
				ranges = append(ranges, rng)
				return model.Grid{{"a"}}, nil
			},
		}
		uc := usecase.New(usecase.WithSheetsService(mock))

		sheet, err := uc.Sheets.GetWholeSheet(ctx, "sheet-id", "")
		gt.NoError(t, err).Required()
		gt.Value(t, sheet.SheetName).Equal("Sheet1")
		gt.Value(t, ranges).Equal([]string{"Sheet1"})
	})

	t.Run("falls back to the A:Z range when the sheet query is empty", func(t *testing.T) {
		var mu sync.Mutex
		var ranges []string
		mock := &mockSheets{
			getValuesFn: func(ctx context.Context, id model.SpreadsheetID, rng string, opts model.RenderOptions) (model.Grid, error) {
				mu.Lock()
				defer mu.Unlock()
				ranges = append(ranges, rng)
				if rng == "Sparse!A:Z" {
					return model.Grid{{"", "header"}, {"", "value"}}, nil
				}
				return nil, nil
			},
		}
		uc := usecase.New(usecase.WithSheetsService(mock))

		sheet, err := uc.Sheets.GetWholeSheet(ctx, "sheet-id", "Sparse")
		gt.NoError(t, err).Required()
		gt.Value(t, ranges).Equal([]string{"Sparse", "Sparse!A:Z"})
		gt.Value(t, sheet.TotalRows).Equal(int64(2))
		gt.Value(t, sheet.TotalColumns).Equal(int64(model.BroadColumnCount))
		gt.Value(t, sheet.Headers).Equal([]string{"", "header"})
	})

	t.Run("counts columns from the header row without metadata", func(t *testing.T) {
		mock := &mockSheets{
			getValuesFn: func(ctx context.Context, id model.SpreadsheetID, rng string, opts model.RenderOptions) (model.Grid, error) {
				return model.Grid{{"a", "b", "c"}, {"1"}}, nil
			},
		}
		uc := usecase.New(usecase.WithSheetsService(mock))

		sheet, err := uc.Sheets.GetWholeSheet(ctx, "sheet-id", "Missing")
		gt.NoError(t, err).Required()
		gt.Value(t, sheet.TotalRows).Equal(int64(2))
		gt.Value(t, sheet.TotalColumns).Equal(int64(3))
	})

	t.Run("empty sheet has no headers", func(t *testing.T) {
		uc := usecase.New(usecase.WithSheetsService(&mockSheets{}))

		sheet, err := uc.Sheets.GetWholeSheet(ctx, "sheet-id", "Empty")
		gt.NoError(t, err).Required()
		gt.Array(t, sheet.Headers).Length(0)
		gt.Array(t, sheet.Records).Length(0)
		gt.Value(t, sheet.TotalRows).Equal(int64(0))
	})

	t.Run("metadata failure fails the request", func(t *testing.T) {
		mock := &mockSheets{
			getValuesFn: func(ctx context.Context, id model.SpreadsheetID, rng string, opts model.RenderOptions) (model.Grid, error) {
				return model.Grid{{"a"}}, nil
			},
			getSpreadsheetFn: func(ctx context.Context, id model.SpreadsheetID) (*model.SpreadsheetInfo, error) {
				return nil, errors.New("The caller does not have permission")
			},
		}
		uc := usecase.New(usecase.WithSheetsService(mock))

		_, err := uc.Sheets.GetWholeSheet(ctx, "sheet-id", "Sheet1")
		gt.Error(t, err).Is(usecase.ErrUpstream)
		gt.String(t, err.Error()).Contains("The caller does not have permission")
	})
}

func TestSheetsUseCase_GetSpreadsheetInfo(t *testing.T) {
	ctx := context.Background()

	t.Run("returns sheets", func(t *testing.T) {
		mock := &mockSheets{
			getSpreadsheetFn: func(ctx context.Context, id model.SpreadsheetID) (*model.SpreadsheetInfo, error) {
				return &model.SpreadsheetInfo{
					Title:  "Budget",
					Sheets: []model.SheetInfo{{Name: "2025", ID: 7, RowCount: 100, ColumnCount: 10}},
				}, nil
			},
		}
		uc := usecase.New(usecase.WithSheetsService(mock))

		info, err := uc.Sheets.GetSpreadsheetInfo(ctx, "sheet-id")
		gt.NoError(t, err).Required()
		gt.Value(t, info.Title).Equal("Budget")
		gt.Array(t, info.Sheets).Length(1)
		gt.Value(t, info.Sheets[0].ID).Equal(int64(7))
	})

	t.Run("no sheets", func(t *testing.T) {
		uc := usecase.New(usecase.WithSheetsService(&mockSheets{}))

		_, err := uc.Sheets.GetSpreadsheetInfo(ctx, "sheet-id")
		gt.Error(t, err).Is(usecase.ErrNoSheets)
	})
}
