package sheets

var (
	ToGrid      = toGrid
	CellString  = cellString
	ToSheetInfo = toSheetInfo
)
