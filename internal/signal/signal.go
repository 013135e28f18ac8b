// internal/signal/signal.go
package signal

import (
	"fmt"

	"github.com/tamzrod/wififailover/internal/adapter"
)

// DefaultThreshold is the dBm level below which a link counts as degraded.
const DefaultThreshold = -75

// FatalMetricError is a signal level that cannot be read as a number.
// It means the adapter broke its contract; the cycle is abandoned.
type FatalMetricError struct {
	SSID  string
	Value string
	Err   error
}

func (e *FatalMetricError) Error() string {
	return fmt.Sprintf("signal: unusable level %q for %q: %v", e.Value, e.SSID, e.Err)
}

func (e *FatalMetricError) Unwrap() error { return e.Err }

// Level parses a network's signal level, classifying failure as fatal.
func Level(n adapter.VisibleNetwork) (int, error) {
	v, err := adapter.ParseLevel(n.SignalLevel)
	if err != nil {
		return 0, &FatalMetricError{SSID: n.SSID, Value: n.SignalLevel, Err: err}
	}
	return v, nil
}

// Evaluator judges whether the active link has degraded.
type Evaluator struct {
	Threshold int
}

func NewEvaluator(threshold int) Evaluator {
	return Evaluator{Threshold: threshold}
}

// HasDegraded finds activeSSID in networks and compares its level against
// the threshold. A network that is not visible is never judged degraded.
func (e Evaluator) HasDegraded(networks []adapter.VisibleNetwork, activeSSID string) (bool, error) {
	for _, n := range networks {
		if n.SSID != activeSSID {
			continue
		}
		lvl, err := Level(n)
		if err != nil {
			return false, err
		}
		return lvl < e.Threshold, nil
	}
	return false, nil
}
