package timer

import (
	"time"

	"go.uber.org/zap"
)

// Track returns a function that, when executed, logs the duration.
// Usage: defer timer.Track(log, "loadUsers")()
func Track(log *zap.Logger, name string) func() {
	start := time.Now()
	return func() {
		log.Debug("timing", zap.String("op", name), zap.Duration("elapsed", time.Since(start)))
	}
}
