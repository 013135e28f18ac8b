// internal/status/snapshot.go
package status

import "time"

// Snapshot is the control loop's state as observers see it.
// Written only by the loop; everyone else gets copies.
type Snapshot struct {
	Cycle uint64    `json:"cycle"`
	At    time.Time `json:"at"`

	Phase  Phase  `json:"phase"`
	Health Health `json:"health"`

	ActiveSSID   string `json:"active_ssid,omitempty"`
	ActiveSignal string `json:"active_signal,omitempty"`
	Degraded     bool   `json:"degraded"`

	// Last failover attempt, if any.
	LastCandidate string    `json:"last_candidate,omitempty"`
	LastOutcome   string    `json:"last_outcome,omitempty"`
	LastAttemptAt time.Time `json:"last_attempt_at,omitzero"`

	LastError string `json:"last_error,omitempty"`

	// SecondsInError counts consecutive seconds spent in HealthError.
	SecondsInError uint32 `json:"seconds_in_error"`
}
