package usecase

import "time"

// FormatRow is exported for testing
var FormatRow = formatRow

// SetNow replaces the clock of NotifyUseCase for testing
func (uc *NotifyUseCase) SetNow(now func() time.Time) {
	uc.now = now
}
