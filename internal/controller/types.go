// internal/controller/types.go
package controller

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/wififailover/internal/failover"
	"github.com/tamzrod/wififailover/internal/poller"
	"github.com/tamzrod/wififailover/internal/publisher"
	"github.com/tamzrod/wififailover/internal/telemetry"
)

// Sampler produces one sample per call.
type Sampler interface {
	PollOnce(ctx context.Context) poller.PollResult
}

// Executor performs a failover attempt.
type Executor interface {
	Execute(ctx context.Context, ssid string) (failover.Attempt, error)
}

// Config is the loop's immutable runtime config.
type Config struct {
	Interval  time.Duration
	Threshold int

	// ConnectTimeout bounds one failover attempt.
	ConnectTimeout time.Duration
}

// Deps are the collaborators the loop drives.
// Metrics is optional.
type Deps struct {
	Sampler   Sampler
	Executor  Executor
	Publisher publisher.Publisher
	State     *publisher.StateWriter
	Metrics   *telemetry.Metrics
	Log       zerolog.Logger
}

func (d Deps) validate() error {
	switch {
	case d.Sampler == nil:
		return errors.New("controller: sampler required")
	case d.Executor == nil:
		return errors.New("controller: executor required")
	case d.Publisher == nil:
		return errors.New("controller: publisher required")
	case d.State == nil:
		return errors.New("controller: state writer required")
	}
	return nil
}

// Result classifies a finished cycle.
type Result string

const (
	ResultOK       Result = "ok"
	ResultDegraded Result = "degraded" // below threshold, nothing to fail over to
	ResultFailover Result = "failover"
	ResultError    Result = "error"
)

// CycleResult is what one cycle saw and did.
type CycleResult struct {
	Result Result

	Sample   poller.PollResult
	Degraded bool
	Decision failover.Decision

	// Attempt is set whenever a candidate was chosen. A throttled attempt
	// leaves Result at ResultDegraded and the cycle publishes.
	Attempt *failover.Attempt

	// Published is true when both network lists were emitted.
	Published bool

	Err error
}
