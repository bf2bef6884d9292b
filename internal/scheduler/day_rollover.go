package scheduler

import (
	"context"
	"time"

	"github.com/dailyglow/glow/internal/logger"
	"github.com/dailyglow/glow/internal/selection"
)

// DayRollover watches for calendar-day changes and starts a new session
// when one happens, so the item of the day and the streak advance even
// while the service idles across midnight.
type DayRollover struct {
	selection *selection.Service
	logger    logger.Logger
	interval  time.Duration
	now       func() time.Time
	stopCh    chan struct{}

	lastDay string
}

// NewDayRollover creates a rollover watcher. now defaults to time.Now.
func NewDayRollover(
	sel *selection.Service,
	log logger.Logger,
	interval time.Duration,
	now func() time.Time,
) *DayRollover {
	if now == nil {
		now = time.Now
	}
	return &DayRollover{
		selection: sel,
		logger:    log,
		interval:  interval,
		now:       now,
		stopCh:    make(chan struct{}),
	}
}

// Start runs the first session immediately and then polls for day changes.
func (dr *DayRollover) Start(ctx context.Context) {
	dr.lastDay = dr.dayKey()
	dr.selection.OnSessionStart(ctx)

	ticker := time.NewTicker(dr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				dr.tick(ctx)
			case <-dr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the watcher.
func (dr *DayRollover) Stop() {
	close(dr.stopCh)
}

func (dr *DayRollover) tick(ctx context.Context) {
	day := dr.dayKey()
	if day == dr.lastDay {
		return
	}
	dr.lastDay = day
	dr.logger.Info("calendar day changed, starting new session",
		logger.String("day", day))
	dr.selection.OnSessionStart(ctx)
}

func (dr *DayRollover) dayKey() string {
	return dr.now().Format("2006-01-02")
}
