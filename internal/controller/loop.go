// internal/controller/loop.go
package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tamzrod/wififailover/internal/failover"
	"github.com/tamzrod/wififailover/internal/publisher"
	"github.com/tamzrod/wififailover/internal/signal"
	"github.com/tamzrod/wififailover/internal/status"
)

// Loop samples, evaluates, and either fails over or publishes.
// The loop goroutine owns the state snapshot; observers read copies
// through the StateWriter.
type Loop struct {
	cfg  Config
	deps Deps
	eval signal.Evaluator

	refresh chan struct{}

	snap       status.Snapshot
	errorSince time.Time
}

// New creates a loop. Nothing runs until Run or RunOnce.
func New(cfg Config, deps Deps) (*Loop, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New("controller: interval must be > 0")
	}
	if cfg.ConnectTimeout <= 0 {
		return nil, errors.New("controller: connect timeout must be > 0")
	}
	if err := deps.validate(); err != nil {
		return nil, err
	}

	return &Loop{
		cfg:     cfg,
		deps:    deps,
		eval:    signal.NewEvaluator(cfg.Threshold),
		refresh: make(chan struct{}, 1),
		snap:    deps.State.State(),
	}, nil
}

// Refresh asks a running loop for an immediate cycle.
// Requests coalesce while one is pending.
func (l *Loop) Refresh() {
	select {
	case l.refresh <- struct{}{}:
	default:
	}
}

// State returns the current state as last written.
func (l *Loop) State() status.Snapshot {
	return l.deps.State.State()
}

// RunOnce runs exactly one cycle. Errors are reported in the result and
// logged; they never stop the loop.
func (l *Loop) RunOnce(ctx context.Context) CycleResult {
	start := time.Now()

	l.snap.Cycle++
	l.setPhase(status.PhaseSample)

	res := l.cycle(ctx)

	l.finish(res)
	if m := l.deps.Metrics; m != nil {
		m.Cycles.WithLabelValues(string(res.Result)).Inc()
		m.CycleDuration.Observe(time.Since(start).Seconds())
	}
	return res
}

func (l *Loop) cycle(ctx context.Context) CycleResult {
	log := l.deps.Log

	// ---- sample ----
	sample := l.deps.Sampler.PollOnce(ctx)
	res := CycleResult{Sample: sample}
	if sample.Err != nil {
		res.Result, res.Err = ResultError, fmt.Errorf("sample: %w", sample.Err)
		return res
	}

	l.snap.ActiveSSID = sample.Active.SSID
	l.snap.ActiveSignal = sample.Active.SignalLevel
	if rssi, err := sample.Active.RSSI(); err == nil && l.deps.Metrics != nil {
		l.deps.Metrics.ActiveSignal.Set(float64(rssi))
	}

	// ---- evaluate ----
	l.setPhase(status.PhaseEvaluate)

	degraded, err := l.eval.HasDegraded(sample.Visible, sample.Active.SSID)
	if err != nil {
		res.Result, res.Err = ResultError, fmt.Errorf("evaluate: %w", err)
		return res
	}
	res.Degraded = degraded

	decision, err := failover.Decide(degraded, sample.Visible, sample.Trusted, sample.Active.SSID)
	if err != nil {
		res.Result, res.Err = ResultError, fmt.Errorf("select: %w", err)
		return res
	}
	res.Decision = decision

	// ---- failover (no publish this cycle) ----
	if decision.ShouldFailOver {
		l.setPhase(status.PhaseFailover)
		log.Info().
			Str("active", sample.Active.SSID).
			Str("signal", sample.Active.SignalLevel).
			Str("candidate", decision.Candidate).
			Msg("active network degraded")

		cctx, cancel := context.WithTimeout(ctx, l.cfg.ConnectTimeout)
		attempt, _ := l.deps.Executor.Execute(cctx, decision.Candidate)
		cancel()

		res.Attempt = &attempt
		if m := l.deps.Metrics; m != nil {
			m.FailoverAttempts.WithLabelValues(string(attempt.Outcome)).Inc()
		}

		// A throttled attempt changed nothing; observers still get this
		// cycle's lists and the last real attempt stays on record.
		if attempt.Outcome != failover.OutcomeThrottled {
			res.Result = ResultFailover
			l.snap.LastCandidate = attempt.SSID
			l.snap.LastOutcome = string(attempt.Outcome)
			l.snap.LastAttemptAt = attempt.At
			return res
		}
	}

	switch {
	case degraded && res.Attempt == nil:
		log.Warn().Str("active", sample.Active.SSID).Msg("active network degraded, no trusted candidate")
		res.Result = ResultDegraded
	case degraded:
		res.Result = ResultDegraded
	default:
		res.Result = ResultOK
	}

	// ---- publish ----
	l.setPhase(status.PhasePublish)

	views := status.Annotate(sample.Visible, sample.Active, sample.Trusted)
	trusted := status.TrustedSubset(views, sample.Active.SSID)

	perr := l.publish(publisher.NetworksEvent(status.EventAvailableNetworks, sample.At, views))
	if err := l.publish(publisher.NetworksEvent(status.EventTrustedNetworks, sample.At, trusted)); err != nil && perr == nil {
		perr = err
	}
	res.Published = perr == nil

	return res
}

// publish failures are counted and logged, never fatal.
func (l *Loop) publish(ev publisher.Event) error {
	err := l.deps.Publisher.Publish(ev)
	if err != nil {
		l.deps.Log.Error().Err(err).Str("event", ev.Name).Msg("publish failed")
		if m := l.deps.Metrics; m != nil {
			m.PublishErrors.Inc()
		}
	}
	return err
}

// finish folds a cycle result into the snapshot and writes it.
func (l *Loop) finish(res CycleResult) {
	now := time.Now()

	l.snap.Phase = status.PhaseIdle
	l.snap.At = now
	l.snap.Degraded = res.Degraded

	switch {
	case res.Err != nil:
		l.snap.Health = status.HealthError
		l.snap.LastError = res.Err.Error()
		if l.errorSince.IsZero() {
			l.errorSince = now
		}
		l.deps.Log.Error().Err(res.Err).Uint64("cycle", l.snap.Cycle).Msg("cycle failed")
	case res.Degraded:
		l.snap.Health = status.HealthDegraded
		l.clearError()
	default:
		l.snap.Health = status.HealthOK
		l.clearError()
	}

	if res.Result == ResultFailover && res.Attempt.Err != nil {
		l.snap.LastError = res.Attempt.Err.Error()
	}

	l.writeState()
}

func (l *Loop) clearError() {
	l.snap.LastError = ""
	l.snap.SecondsInError = 0
	l.errorSince = time.Time{}
}

func (l *Loop) setPhase(p status.Phase) {
	l.snap.Phase = p
	l.snap.At = time.Now()
	l.writeState()
}

func (l *Loop) writeState() {
	if err := l.deps.State.WriteState(l.snap); err != nil {
		l.deps.Log.Error().Err(err).Msg("state write failed")
		if m := l.deps.Metrics; m != nil {
			m.PublishErrors.Inc()
		}
	}
}
