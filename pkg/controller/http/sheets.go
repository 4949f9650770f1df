package http

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/sheetcast/pkg/domain/model"
	"github.com/secmon-lab/sheetcast/pkg/utils/async"
	"github.com/secmon-lab/sheetcast/pkg/utils/logging"
)

type sheetNamesResponse struct {
	Success          bool              `json:"success"`
	SpreadsheetTitle string            `json:"spreadsheetTitle"`
	Sheets           []model.SheetInfo `json:"sheets"`
}

type tableData struct {
	Headers []string       `json:"headers"`
	Rows    [][]string     `json:"rows"`
	Objects []model.Record `json:"objects"`
}

type rangeResponse struct {
	Success  bool   `json:"success"`
	Range    string `json:"range"`
	RowCount int    `json:"rowCount"`
	// Data is the raw grid when empty, tableData otherwise
	Data any `json:"data"`
}

type wholeSheetMetadata struct {
	HasHeaders      bool   `json:"hasHeaders"`
	GridColumnCount int64  `json:"gridColumnCount"`
	GridRowCount    int64  `json:"gridRowCount"`
	DataRows        int    `json:"dataRows"`
	DataColumns     int    `json:"dataColumns"`
	NonEmptyRows    int    `json:"nonEmptyRows"`
	LastDataColumn  string `json:"lastDataColumn"`
	EffectiveRange  string `json:"effectiveRange"`
}

type wholeSheetData struct {
	Headers  []string           `json:"headers"`
	Raw      model.Grid         `json:"raw"`
	Objects  []model.Record     `json:"objects"`
	Metadata wholeSheetMetadata `json:"metadata"`
}

type wholeSheetResponse struct {
	Success           bool           `json:"success"`
	SpreadsheetID     string         `json:"spreadsheetId"`
	SheetName         string         `json:"sheetName"`
	TotalRows         int64          `json:"totalRows"`
	TotalColumns      int64          `json:"totalColumns"`
	ActualDataRows    int            `json:"actualDataRows"`
	ActualDataColumns int            `json:"actualDataColumns"`
	Data              wholeSheetData `json:"data"`
}

func spreadsheetID(r *http.Request) model.SpreadsheetID {
	return model.SpreadsheetID(chi.URLParam(r, "spreadsheetId"))
}

func queryOr(q url.Values, key, def string) string {
	if v := q.Get(key); v != "" {
		return v
	}
	return def
}

func (s *Server) sheetNamesHandler(w http.ResponseWriter, r *http.Request) {
	id := spreadsheetID(r)
	if id == "" {
		badRequest(w, r, "Spreadsheet ID is required")
		return
	}

	info, err := s.uc.Sheets.GetSpreadsheetInfo(r.Context(), id)
	if err != nil {
		handleError(w, r, err, "Failed to fetch sheet names")
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, sheetNamesResponse{
		Success:          true,
		SpreadsheetTitle: info.Title,
		Sheets:           info.Sheets,
	})
}

// sheetRangeHandler serves an explicit A1 range. The range segment is
// decoded exactly once, so "!" and ":" may be escaped by the client.
func (s *Server) sheetRangeHandler(w http.ResponseWriter, r *http.Request) {
	id := spreadsheetID(r)
	rawRange := chi.URLParam(r, "range")
	if id == "" || rawRange == "" {
		badRequest(w, r, "Spreadsheet ID and range are required")
		return
	}

	// chi matches on RawPath when the request has one, leaving the
	// parameter escaped; otherwise it is already decoded
	rng := rawRange
	if r.URL.RawPath != "" {
		decoded, err := url.PathUnescape(rawRange)
		if err != nil {
			badRequest(w, r, "Range is not correctly URL encoded")
			return
		}
		rng = decoded
	}

	q := r.URL.Query()
	opts := model.RenderOptions{
		Value:    model.ValueRenderOption(queryOr(q, "valueRenderOption", string(model.FormattedValue))),
		DateTime: model.DateTimeRenderOption(queryOr(q, "dateTimeRenderOption", string(model.FormattedString))),
	}

	grid, err := s.uc.Sheets.GetRange(r.Context(), id, rng, opts)
	if err != nil {
		handleError(w, r, err, "Failed to fetch data")
		return
	}

	resp := rangeResponse{
		Success:  true,
		Range:    rng,
		RowCount: len(grid),
		Data:     model.Grid{},
	}
	if len(grid) > 0 {
		resp.Data = tableData{
			Headers: grid.Headers(),
			Rows:    grid.DataRows(),
			Objects: grid.Records(),
		}
	}

	writeJSON(r.Context(), w, http.StatusOK, resp)
}

// sheetDataHandler builds the range from query parameters. format selects
// raw rows, header keyed objects or both.
func (s *Server) sheetDataHandler(w http.ResponseWriter, r *http.Request) {
	id := spreadsheetID(r)
	if id == "" {
		badRequest(w, r, "Spreadsheet ID is required")
		return
	}

	q := r.URL.Query()
	format := queryOr(q, "format", "objects")
	switch format {
	case "raw", "objects", "both":
	default:
		badRequest(w, r, "format must be one of raw, objects or both")
		return
	}

	rng := model.BuildRange(
		queryOr(q, "sheet", model.DefaultSheetName),
		queryOr(q, "startRow", "1"),
		q.Get("endRow"),
		queryOr(q, "startCol", "A"),
		q.Get("endCol"),
	)

	grid, err := s.uc.Sheets.GetRange(r.Context(), id, rng, model.DefaultRenderOptions())
	if err != nil {
		handleError(w, r, err, "Failed to fetch data")
		return
	}
	if grid == nil {
		grid = model.Grid{}
	}

	data := map[string]any{}
	if format == "raw" || format == "both" {
		data["raw"] = grid
	}
	if (format == "objects" || format == "both") && len(grid) > 0 {
		data["objects"] = grid.Records()
		data["headers"] = grid.Headers()
	}

	writeJSON(r.Context(), w, http.StatusOK, map[string]any{
		"success":  true,
		"range":    rng,
		"rowCount": len(grid),
		"data":     data,
	})
}

// allSheetDataHandler returns the used region of a sheet and posts a
// summary to Slack without waiting for it
func (s *Server) allSheetDataHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := spreadsheetID(r)
	if id == "" {
		badRequest(w, r, "Spreadsheet ID is required")
		return
	}

	q := r.URL.Query()
	sheetName := queryOr(q, "sheet", model.DefaultSheetName)
	// Blank rows are dropped unless includeEmpty is given as anything but "false"
	includeEmpty := "false"
	if q.Has("includeEmpty") {
		includeEmpty = q.Get("includeEmpty")
	}

	sheet, err := s.uc.Sheets.GetWholeSheet(ctx, id, sheetName)
	if err != nil {
		handleError(w, r, err, "Failed to fetch all sheet data")
		return
	}

	grid := sheet.Data
	objects := sheet.Records
	if grid == nil {
		grid = model.Grid{}
	}
	if includeEmpty == "false" && len(grid) > 0 {
		grid = grid.FilterNonEmpty()
		objects = model.NonEmptyRecords(objects)
	}

	rows := len(grid)
	columns := grid.Width()
	lastColumn := "A"
	effectiveRange := sheet.SheetName + "!A1:A1"
	if columns > 0 {
		if letter, err := model.ColumnToLetter(columns); err == nil {
			lastColumn = letter
			if rows > 0 {
				effectiveRange = model.BuildRange(sheet.SheetName, "1", strconv.Itoa(rows), "A", letter)
			}
		}
	}

	resp := wholeSheetResponse{
		Success:           true,
		SpreadsheetID:     id.String(),
		SheetName:         sheet.SheetName,
		TotalRows:         sheet.TotalRows,
		TotalColumns:      sheet.TotalColumns,
		ActualDataRows:    rows,
		ActualDataColumns: columns,
		Data: wholeSheetData{
			Headers: sheet.Headers,
			Raw:     grid,
			Objects: objects,
			Metadata: wholeSheetMetadata{
				HasHeaders:      rows > 0,
				GridColumnCount: sheet.TotalColumns,
				GridRowCount:    sheet.TotalRows,
				DataRows:        rows,
				DataColumns:     columns,
				NonEmptyRows:    max(0, rows-1),
				LastDataColumn:  lastColumn,
				EffectiveRange:  effectiveRange,
			},
		},
	}

	s.notifyWholeSheet(ctx, id, sheet, grid)

	writeJSON(ctx, w, http.StatusOK, resp)
}

func (s *Server) notifyWholeSheet(ctx context.Context, id model.SpreadsheetID, sheet *model.WholeSheet, grid model.Grid) {
	if !s.uc.Notify.Enabled() {
		return
	}

	data := &model.TableData{
		Headers: sheet.Headers,
		Rows:    grid.DataRows(),
		Metadata: model.TableMetadata{
			SpreadsheetID:  id.String(),
			SheetName:      sheet.SheetName,
			TotalRows:      sheet.TotalRows,
			ActualDataRows: max(0, len(grid)-1),
		},
	}
	opts := s.notifyOptions

	async.Dispatch(ctx, func(ctx context.Context) error {
		if result := s.uc.Notify.SendTable(ctx, data, opts); !result.OK {
			logging.From(ctx).Warn("sheet notification was not sent",
				"spreadsheet_id", id,
				"reason", result.Reason,
			)
		}
		return nil
	})
}
