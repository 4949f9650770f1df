package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// DefaultSheetName is used when a request does not name a sheet
const DefaultSheetName = "Sheet1"

// BroadColumnRange is the column span used when a bare sheet-name query
// returns nothing. Data beyond column Z is not visible through it.
const BroadColumnRange = "A:Z"

// BroadColumnCount is the number of columns covered by BroadColumnRange
const BroadColumnCount = 26

// ErrInvalidColumn is returned by ColumnToLetter for non-positive indexes
var ErrInvalidColumn = goerr.New("column index must be positive")

// BuildRange assembles an A1 notation range. Empty arguments are treated as
// absent. When no bound is given the bare sheet name is returned, which the
// Sheets API reads as the used region of that sheet. Bounds are not validated;
// the API rejects malformed ranges.
func BuildRange(sheet, startRow, endRow, startCol, endCol string) string {
	if startRow == "" && endRow == "" && startCol == "" && endCol == "" {
		return sheet
	}

	var b strings.Builder
	b.WriteString(sheet)
	b.WriteString("!")
	b.WriteString(orDefault(startCol, "A"))
	b.WriteString(orDefault(startRow, "1"))

	if endCol != "" || endRow != "" {
		b.WriteString(":")
		b.WriteString(endCol)
		b.WriteString(endRow)
	}

	return b.String()
}

// BroadRange returns the fixed-width fallback range for a sheet
func BroadRange(sheet string) string {
	return sheet + "!" + BroadColumnRange
}

// ColumnToLetter converts a 1-based column index to spreadsheet column
// letters: 1 -> A, 26 -> Z, 27 -> AA, 702 -> ZZ.
func ColumnToLetter(n int) (string, error) {
	if n <= 0 {
		return "", goerr.Wrap(ErrInvalidColumn, "cannot convert column", goerr.V("column", n))
	}

	var letters []byte
	for n > 0 {
		n--
		letters = append(letters, byte('A'+n%26))
		n /= 26
	}

	for i, j := 0, len(letters)-1; i < j; i, j = i+1, j-1 {
		letters[i], letters[j] = letters[j], letters[i]
	}

	return string(letters), nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
