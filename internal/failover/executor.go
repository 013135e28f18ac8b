// internal/failover/executor.go
package failover

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tamzrod/wififailover/internal/vault"
)

var (
	// ErrCredentialNotFound aborts this cycle's attempt only.
	ErrCredentialNotFound = errors.New("failover: credential not found")

	// ErrThrottled means the cooldown since the last attempt has not elapsed.
	ErrThrottled = errors.New("failover: attempt throttled")
)

// Outcome classifies one failover attempt.
type Outcome string

const (
	OutcomeConnected    Outcome = "connected"
	OutcomeRejected     Outcome = "rejected" // wrong password
	OutcomeError        Outcome = "error"
	OutcomeThrottled    Outcome = "throttled"
	OutcomeNoCredential Outcome = "no_credential"
)

// Attempt records what happened when failing over to SSID.
type Attempt struct {
	SSID    string
	Outcome Outcome
	At      time.Time
	Err     error
}

// Connector is the adapter's join action.
type Connector interface {
	Connect(ctx context.Context, ssid, password string) (bool, error)
}

// Executor fetches the candidate's credential and joins it.
type Executor struct {
	vault   vault.Vault
	conn    Connector
	limiter *rate.Limiter
	log     zerolog.Logger
}

// NewExecutor builds an executor. cooldown <= 0 disables throttling.
func NewExecutor(v vault.Vault, c Connector, cooldown time.Duration, log zerolog.Logger) *Executor {
	limit := rate.Inf
	if cooldown > 0 {
		limit = rate.Every(cooldown)
	}
	return &Executor{
		vault:   v,
		conn:    c,
		limiter: rate.NewLimiter(limit, 1),
		log:     log,
	}
}

// Execute performs one attempt. The returned error mirrors Attempt.Err;
// none of them are fatal to the caller's loop.
func (e *Executor) Execute(ctx context.Context, ssid string) (Attempt, error) {
	a := Attempt{SSID: ssid, At: time.Now()}

	if !e.limiter.Allow() {
		a.Outcome = OutcomeThrottled
		a.Err = ErrThrottled
		e.log.Debug().Str("ssid", ssid).Msg("failover throttled")
		return a, a.Err
	}

	password, err := e.vault.Get(ssid)
	if err != nil {
		if errors.Is(err, vault.ErrNotFound) {
			a.Outcome = OutcomeNoCredential
			a.Err = fmt.Errorf("%w: %s", ErrCredentialNotFound, ssid)
		} else {
			a.Outcome = OutcomeError
			a.Err = err
		}
		e.log.Error().Err(a.Err).Str("ssid", ssid).Msg("failover credential lookup failed")
		return a, a.Err
	}

	e.log.Info().Str("ssid", ssid).Msg("failing over")

	ok, err := e.conn.Connect(ctx, ssid, password)
	switch {
	case err != nil:
		a.Outcome = OutcomeError
		a.Err = err
		e.log.Error().Err(err).Str("ssid", ssid).Msg("failover connect failed")
	case !ok:
		a.Outcome = OutcomeRejected
		e.log.Warn().Str("ssid", ssid).Msg("failover rejected: invalid password")
	default:
		a.Outcome = OutcomeConnected
		e.log.Info().Str("ssid", ssid).Msg("failover connected")
	}

	return a, a.Err
}
