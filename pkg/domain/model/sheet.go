package model

import (
	"slices"

	"github.com/m-mizutani/goerr/v2"
)

// SpreadsheetID identifies a spreadsheet in the Sheets API
type SpreadsheetID string

func (x SpreadsheetID) String() string {
	return string(x)
}

// Validate checks the identifier is not empty
func (x SpreadsheetID) Validate() error {
	if x == "" {
		return goerr.New("spreadsheet ID is required")
	}
	return nil
}

// SheetInfo describes one sheet (tab) of a spreadsheet
type SheetInfo struct {
	Name        string `json:"name"`
	ID          int64  `json:"id"`
	RowCount    int64  `json:"rowCount"`
	ColumnCount int64  `json:"columnCount"`
}

// SpreadsheetInfo is the spreadsheet title and its sheets
type SpreadsheetInfo struct {
	Title  string      `json:"title"`
	Sheets []SheetInfo `json:"sheets"`
}

// FindSheet returns the sheet with the given title
func (x *SpreadsheetInfo) FindSheet(name string) *SheetInfo {
	if x == nil {
		return nil
	}
	for i := range x.Sheets {
		if x.Sheets[i].Name == name {
			return &x.Sheets[i]
		}
	}
	return nil
}

// WholeSheet is the result of reading the used region of one sheet
type WholeSheet struct {
	SheetName    string
	TotalRows    int64
	TotalColumns int64
	Data         Grid
	Headers      []string
	Records      []Record
}

// ValueRenderOption controls how cell values are rendered by the Sheets API
type ValueRenderOption string

const (
	FormattedValue   ValueRenderOption = "FORMATTED_VALUE"
	UnformattedValue ValueRenderOption = "UNFORMATTED_VALUE"
	Formula          ValueRenderOption = "FORMULA"
)

// DateTimeRenderOption controls how dates are rendered by the Sheets API
type DateTimeRenderOption string

const (
	FormattedString DateTimeRenderOption = "FORMATTED_STRING"
	SerialNumber    DateTimeRenderOption = "SERIAL_NUMBER"
)

// RenderOptions is passed through to the values.get call
type RenderOptions struct {
	Value    ValueRenderOption
	DateTime DateTimeRenderOption
}

// DefaultRenderOptions returns formatted values with formatted dates
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Value:    FormattedValue,
		DateTime: FormattedString,
	}
}

// Validate checks both options are known to the Sheets API
func (x RenderOptions) Validate() error {
	if !slices.Contains([]ValueRenderOption{FormattedValue, UnformattedValue, Formula}, x.Value) {
		return goerr.New("invalid valueRenderOption", goerr.V("value", x.Value))
	}
	if !slices.Contains([]DateTimeRenderOption{FormattedString, SerialNumber}, x.DateTime) {
		return goerr.New("invalid dateTimeRenderOption", goerr.V("value", x.DateTime))
	}
	return nil
}
