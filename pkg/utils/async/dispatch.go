package async

import (
	"context"

	"github.com/secmon-lab/sheetcast/pkg/utils/errutil"
	"github.com/secmon-lab/sheetcast/pkg/utils/logging"
)

// Dispatch executes a handler function asynchronously in a new goroutine.
// The handler receives a background context that keeps the caller's logger
// but is not cancelled when the caller's request finishes.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	bgCtx := context.Background()
	if logger := logging.From(ctx); logger != nil {
		bgCtx = logging.With(bgCtx, logger)
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logging.From(bgCtx).Error("panic in async handler", "panic", r)
			}
		}()

		if err := handler(bgCtx); err != nil {
			_ = errutil.Handle(bgCtx, err, "async handler failed")
		}
	}()
}
