// internal/poller/types.go
package poller

import (
	"time"

	"github.com/tamzrod/wififailover/internal/adapter"
)

// PollResult is a snapshot produced by one poll cycle.
// Err non-nil means the cycle failed and the other fields are partial.
type PollResult struct {
	At time.Time

	Active  adapter.Snapshot
	Visible []adapter.VisibleNetwork
	Trusted []string

	Err error
}
