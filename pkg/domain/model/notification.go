package model

// TableMetadata describes where a notified table came from
type TableMetadata struct {
	SpreadsheetID  string
	SheetName      string
	TotalRows      int64
	ActualDataRows int
}

// TableData is the payload of a spreadsheet notification. It is built per
// request and never stored.
type TableData struct {
	Headers  []string
	Rows     [][]string
	Metadata TableMetadata
}

const (
	// MaxSlackBlocks is the block limit of a single chat.postMessage call
	MaxSlackBlocks = 50

	// tableFixedBlocks counts the blocks of a table message other than data
	// rows: header, metadata section, divider, column row, separator,
	// "more rows" line and footer
	tableFixedBlocks = 7

	// MaxNotifyRows is the largest row cap whose message fits in
	// MaxSlackBlocks with metadata included
	MaxNotifyRows = MaxSlackBlocks - tableFixedBlocks

	// DefaultNotifyMaxRows is the row cap used when none is configured
	DefaultNotifyMaxRows = 25
)

// NotifyOptions controls how a table is rendered and where it is posted
type NotifyOptions struct {
	Channel         string
	ThreadTS        string
	IncludeMetadata bool
	MaxRows         int
}

// Result is the outcome of a best-effort operation. Callers may inspect it
// but are never required to handle it.
type Result struct {
	OK     bool
	Reason string
}

// Succeeded returns a successful Result
func Succeeded() Result {
	return Result{OK: true}
}

// Failed returns a failed Result with the given reason
func Failed(reason string) Result {
	return Result{Reason: reason}
}
