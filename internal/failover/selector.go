// internal/failover/selector.go
package failover

import (
	"github.com/tamzrod/wififailover/internal/adapter"
	"github.com/tamzrod/wififailover/internal/signal"
)

// Decision is derived fresh every cycle and never cached.
type Decision struct {
	ShouldFailOver bool
	Candidate      string // "" when no candidate
}

// Decide combines the degradation verdict with candidate selection.
func Decide(degraded bool, visible []adapter.VisibleNetwork, trusted []string, active string) (Decision, error) {
	if !degraded {
		return Decision{}, nil
	}
	ssid, ok, err := Select(visible, trusted, active)
	if err != nil || !ok {
		return Decision{}, err
	}
	return Decision{ShouldFailOver: true, Candidate: ssid}, nil
}

// Select picks the strongest trusted, visible network other than active.
// Levels compare numerically; on an exact tie the earlier scan entry wins.
// ok is false when no candidate exists.
func Select(visible []adapter.VisibleNetwork, trusted []string, active string) (ssid string, ok bool, err error) {
	allowed := make(map[string]struct{}, len(trusted))
	for _, s := range trusted {
		allowed[s] = struct{}{}
	}

	best := 0
	for _, n := range visible {
		if n.SSID == active {
			continue
		}
		if _, t := allowed[n.SSID]; !t {
			continue
		}

		lvl, err := signal.Level(n)
		if err != nil {
			return "", false, err
		}

		// strict > keeps the first of equals
		if !ok || lvl > best {
			ssid, best, ok = n.SSID, lvl, true
		}
	}

	return ssid, ok, nil
}
