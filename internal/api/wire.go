// internal/api/wire.go
package api

import "github.com/tamzrod/wififailover/internal/adapter"

// Snapshot is the wire form of adapter.Snapshot.
type Snapshot struct {
	SSID        string   `json:"ssid"`
	BSSID       string   `json:"bssid,omitempty"`
	Channel     string   `json:"channel"`
	Channels    []string `json:"channels,omitempty"`
	SignalLevel string   `json:"signal_level"`
	Noise       string   `json:"noise,omitempty"`
	Security    string   `json:"security,omitempty"`
	State       string   `json:"state,omitempty"`
	Associated  bool     `json:"associated"`
}

func snapshotJSON(s adapter.Snapshot) Snapshot {
	return Snapshot{
		SSID:        s.SSID,
		BSSID:       s.BSSID,
		Channel:     s.Channel,
		Channels:    s.Channels,
		SignalLevel: s.SignalLevel,
		Noise:       s.Noise,
		Security:    s.Security,
		State:       s.State,
		Associated:  s.Associated,
	}
}
