package playback

import (
	"fmt"
	"log/slog"
)

// Detach runs fn on its own goroutine and returns at once.
//
// The caller receives no handle: fn cannot be waited for or cancelled, and
// it is not synchronized with anything the caller does afterwards. An error
// returned by fn, or a panic inside it, is logged at warn level under name
// and goes no further.
func Detach(logger *slog.Logger, name string, fn func() error) {
	if logger == nil {
		logger = slog.Default()
	}

	go func() {
		defer func() {
			r := recover()
			if r != nil {
				logger.Warn("detached task panicked",
					slog.String("task", name),
					slog.String("panic", fmt.Sprint(r)),
				)
			}
		}()

		err := fn()
		if err != nil {
			logger.Warn("detached task failed",
				slog.String("task", name),
				slog.Any("error", err),
			)

			return
		}

		logger.Debug("detached task finished", slog.String("task", name))
	}()
}
