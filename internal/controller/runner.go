// internal/controller/runner.go
package controller

import (
	"context"
	"math"
	"time"

	"github.com/tamzrod/wififailover/internal/status"
)

// Run drives cycles on the interval until ctx is cancelled.
// One goroutine. No overlap: a cycle that outlasts the interval delays
// the next one instead of stacking.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.cfg.Interval)
	defer ticker.Stop()

	// 1 Hz while in error
	secTicker := time.NewTicker(time.Second)
	defer secTicker.Stop()

	l.deps.Log.Info().
		Dur("interval", l.cfg.Interval).
		Int("threshold_dbm", l.cfg.Threshold).
		Msg("control loop started")

	// Full state write on start.
	l.writeState()

	for {
		select {
		case <-ctx.Done():
			l.deps.Log.Info().Msg("control loop stopped")
			return nil

		case <-ticker.C:
			l.RunOnce(ctx)

		case <-l.refresh:
			l.deps.Log.Debug().Msg("refresh requested")
			l.RunOnce(ctx)

		case <-secTicker.C:
			l.tickError(time.Now())
		}
	}
}

// tickError advances SecondsInError while the loop is in error.
func (l *Loop) tickError(now time.Time) {
	if l.snap.Health != status.HealthError || l.errorSince.IsZero() {
		return
	}

	secs := now.Sub(l.errorSince) / time.Second
	if secs > math.MaxUint32 {
		secs = math.MaxUint32
	}
	if uint32(secs) == l.snap.SecondsInError {
		return
	}

	l.snap.SecondsInError = uint32(secs)
	l.writeState()
}
