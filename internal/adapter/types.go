// internal/adapter/types.go
package adapter

import "context"

// VisibleNetwork is one row of a scan.
// Signal level and channel are carried verbatim as text.
type VisibleNetwork struct {
	SSID        string
	MAC         string
	Security    string
	SignalLevel string // dBm
	Channel     string
}

// Snapshot is one reading of the currently associated network.
// Immutable once constructed; valid for a single poll cycle.
type Snapshot struct {
	SSID     string
	BSSID    string // optional, "" when the OS does not report it
	Channel  string // first channel token
	Channels []string

	SignalLevel string // dBm, numeric by contract
	Noise       string
	Security    string
	State       string

	Associated bool
}

// RSSI returns the numeric signal level.
func (s Snapshot) RSSI() (int, error) {
	return ParseLevel(s.SignalLevel)
}

// Adapter is the wireless interface as the failover core sees it.
// Every call is bounded by ctx.
type Adapter interface {
	Scan(ctx context.Context) ([]VisibleNetwork, error)
	ReadActive(ctx context.Context) (Snapshot, error)

	// Connect joins ssid. false with a nil error means the OS refused the
	// credential; a non-nil error is a transport-level failure.
	Connect(ctx context.Context, ssid, password string) (bool, error)
}

// Runner executes an OS helper and returns its combined output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
