package app

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/five82/docket/internal/logging"
)

const (
	defaultPollInterval = 2 * time.Second
	maxBackoff          = 30 * time.Second
)

// Refresher is the part of the shell the poller drives.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// StartPoller launches a background goroutine that refreshes the collection
// at a fixed cadence, backing off exponentially while refreshes fail. It
// returns immediately.
func StartPoller(ctx context.Context, target Refresher, interval time.Duration, logger *log.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = logging.Discard()
	}
	go func() {
		failures := 0
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			if err := target.Refresh(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}
				failures++
			} else {
				failures = 0
			}

			next := calculateBackoff(failures, interval)
			if failures > 0 {
				logger.Warn("poll failed, backing off", "failures", failures, "next", next)
			}
			timer.Reset(next)
		}
	}()
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	delay := base
	for i := 0; i < failures; i++ {
		delay *= 2
		if delay >= maxBackoff {
			return maxBackoff
		}
	}
	return delay
}
