// internal/poller/poller.go
package poller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tamzrod/wififailover/internal/adapter"
)

// Source abstracts the adapter reads needed by the poller.
type Source interface {
	ReadActive(ctx context.Context) (adapter.Snapshot, error)
	Scan(ctx context.Context) ([]adapter.VisibleNetwork, error)
}

// TrustedLister is the registry's read side.
type TrustedLister interface {
	List(ctx context.Context) ([]string, error)
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	// Timeout bounds the adapter reads of one cycle.
	Timeout time.Duration
}

// Poller is a dumb sampler: no evaluation, no retries.
type Poller struct {
	cfg     Config
	src     Source
	trusted TrustedLister
}

// New creates a poller with immutable config.
func New(cfg Config, src Source, trusted TrustedLister) (*Poller, error) {
	if cfg.Timeout <= 0 {
		return nil, errors.New("poller: timeout must be > 0")
	}
	if src == nil {
		return nil, errors.New("poller: source required")
	}
	if trusted == nil {
		return nil, errors.New("poller: trusted lister required")
	}
	return &Poller{cfg: cfg, src: src, trusted: trusted}, nil
}

// PollOnce performs exactly one sample.
// All-or-nothing: any failure aborts the cycle.
func (p *Poller) PollOnce(ctx context.Context) PollResult {
	res := PollResult{At: time.Now()}

	actx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	active, err := p.src.ReadActive(actx)
	if err != nil {
		res.Err = err
		return res
	}

	visible, err := p.src.Scan(actx)
	if err != nil {
		res.Err = err
		return res
	}

	trusted, err := p.trusted.List(ctx)
	if err != nil {
		res.Err = fmt.Errorf("poller: trusted list: %w", err)
		return res
	}

	// Commit only if all reads succeeded
	res.Active = active
	res.Visible = visible
	res.Trusted = trusted
	return res
}
