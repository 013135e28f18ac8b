// internal/poller/builder.go
package poller

import (
	"fmt"
	"time"

	"github.com/tamzrod/wififailover/internal/adapter"
	cfg "github.com/tamzrod/wififailover/internal/config"
)

// BuildAdapter constructs the OS adapter named by the config.
// Each helper invocation is bounded by timeout_ms unless the caller's
// context carries a tighter deadline.
func BuildAdapter(a cfg.AdapterConfig) (adapter.Adapter, error) {
	runner := adapter.ExecRunner{
		Timeout: time.Duration(a.TimeoutMs) * time.Millisecond,
	}

	switch a.Driver {
	case "airport":
		return &adapter.Airport{
			Path:      a.AirportPath,
			Interface: a.Interface,
			Runner:    runner,
		}, nil
	case "nmcli":
		return &adapter.NMCLI{
			Path:      a.NMCLIPath,
			Interface: a.Interface,
			Runner:    runner,
		}, nil
	default:
		return nil, fmt.Errorf("poller: unknown adapter driver %q", a.Driver)
	}
}

// Build constructs a Poller over src and the trusted registry.
func Build(a cfg.AdapterConfig, src Source, trusted TrustedLister) (*Poller, error) {
	return New(
		Config{Timeout: time.Duration(a.TimeoutMs) * time.Millisecond},
		src,
		trusted,
	)
}
