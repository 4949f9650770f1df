package model

import "strings"

// Grid is a possibly ragged table of cell values. Row 0 is the header row
// when headers are in use.
type Grid [][]string

// Record is a header keyed view of one data row
type Record map[string]string

// Headers returns the first row, or an empty slice for an empty grid
func (g Grid) Headers() []string {
	if len(g) == 0 {
		return []string{}
	}
	return g[0]
}

// DataRows returns every row after the header row
func (g Grid) DataRows() [][]string {
	if len(g) <= 1 {
		return [][]string{}
	}
	return g[1:]
}

// Width returns the length of the longest row
func (g Grid) Width() int {
	width := 0
	for _, row := range g {
		width = max(width, len(row))
	}
	return width
}

// Records converts every row after the header row into a Record. Cells
// missing from short rows map to "" and cells beyond the header count are
// dropped. With duplicate headers the right-most column wins.
func (g Grid) Records() []Record {
	if len(g) == 0 {
		return []Record{}
	}

	headers := g[0]
	records := make([]Record, 0, len(g)-1)
	for _, row := range g[1:] {
		rec := make(Record, len(headers))
		for i, header := range headers {
			if i < len(row) {
				rec[header] = row[i]
			} else {
				rec[header] = ""
			}
		}
		records = append(records, rec)
	}

	return records
}

// FilterNonEmpty keeps the header row and every other row holding at least
// one non-blank cell. Row order is preserved.
func (g Grid) FilterNonEmpty() Grid {
	if len(g) == 0 {
		return Grid{}
	}

	filtered := Grid{g[0]}
	for _, row := range g[1:] {
		if !isBlankRow(row) {
			filtered = append(filtered, row)
		}
	}

	return filtered
}

// NonEmptyRecords drops records whose values are all blank
func NonEmptyRecords(records []Record) []Record {
	filtered := make([]Record, 0, len(records))
	for _, rec := range records {
		for _, v := range rec {
			if strings.TrimSpace(v) != "" {
				filtered = append(filtered, rec)
				break
			}
		}
	}
	return filtered
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
