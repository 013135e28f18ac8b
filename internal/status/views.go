// internal/status/views.go
package status

import "github.com/tamzrod/wififailover/internal/adapter"

// NetworkView is one network as rendered by observers.
type NetworkView struct {
	SSID        string `json:"ssid"`
	MAC         string `json:"mac"`
	Security    string `json:"security"`
	SignalLevel string `json:"signal_level"`
	Channel     string `json:"channel"`
	Connected   bool   `json:"connected"`
	Trusted     bool   `json:"trusted"`
}

// Connected reports whether n is the network described by active.
// Both SSID and primary channel must match; the same SSID on another
// channel is a different radio.
func Connected(n adapter.VisibleNetwork, active adapter.Snapshot) bool {
	return n.SSID == active.SSID && n.Channel == active.Channel
}

// Annotate builds the full available list, in scan order.
// No IO. No side effects.
func Annotate(visible []adapter.VisibleNetwork, active adapter.Snapshot, trusted []string) []NetworkView {
	set := make(map[string]struct{}, len(trusted))
	for _, s := range trusted {
		set[s] = struct{}{}
	}

	out := make([]NetworkView, 0, len(visible))
	for _, n := range visible {
		_, t := set[n.SSID]
		out = append(out, NetworkView{
			SSID:        n.SSID,
			MAC:         n.MAC,
			Security:    n.Security,
			SignalLevel: n.SignalLevel,
			Channel:     n.Channel,
			Connected:   Connected(n, active),
			Trusted:     t,
		})
	}
	return out
}

// TrustedSubset keeps trusted views whose SSID differs from activeSSID.
func TrustedSubset(views []NetworkView, activeSSID string) []NetworkView {
	out := make([]NetworkView, 0, len(views))
	for _, v := range views {
		if v.Trusted && v.SSID != activeSSID {
			out = append(out, v)
		}
	}
	return out
}
