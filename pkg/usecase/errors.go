package usecase

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
)

// Sentinel errors for use case layer. Controllers map them to HTTP status
// codes.
var (
	// ErrConfiguration means credentials or client settings are missing
	ErrConfiguration = errors.New("configuration error")

	// ErrValidation means a caller supplied a missing or malformed parameter
	ErrValidation = errors.New("validation error")

	// ErrUpstream means the Sheets, Slack or OAuth API rejected a call
	ErrUpstream = errors.New("upstream error")

	// ErrNoSheets means the spreadsheet has no sheets to read
	ErrNoSheets = errors.New("no sheets found in spreadsheet")
)

// Context keys for error values
const (
	SpreadsheetIDKey = "spreadsheet_id"
	RangeKey         = "range"
	SheetNameKey     = "sheet_name"
)

// classifiedError attaches one of the sentinels above to an error while
// keeping the original message
type classifiedError struct {
	kind  error
	cause error
}

func (e *classifiedError) Error() string {
	return e.cause.Error()
}

func (e *classifiedError) Unwrap() []error {
	return []error{e.kind, e.cause}
}

func upstreamError(err error) error {
	return &classifiedError{kind: ErrUpstream, cause: err}
}

func validationError(msg string, options ...goerr.Option) error {
	return &classifiedError{kind: ErrValidation, cause: goerr.New(msg, options...)}
}

func configurationError(msg string, options ...goerr.Option) error {
	return &classifiedError{kind: ErrConfiguration, cause: goerr.New(msg, options...)}
}
