// internal/status/constants.go
package status

// Observer event names.
// These values are part of the UI contract and MUST NOT be configurable.

// EventAvailableNetworks carries every visible network, annotated.
const EventAvailableNetworks = "available_networks"

// EventTrustedNetworks carries the visible trusted networks other than the active one.
const EventTrustedNetworks = "trusted_networks"

// EventLoopState carries the control loop's Snapshot.
const EventLoopState = "loop_state"

// ---- PHASES ----

// Phase is the control loop's position in its cycle.
type Phase string

// PhaseIdle waits for the next tick.
const PhaseIdle Phase = "idle"

// PhaseSample reads the adapter and the registry.
const PhaseSample Phase = "sample"

// PhaseEvaluate judges degradation and picks a candidate.
const PhaseEvaluate Phase = "evaluate"

// PhaseFailover joins the chosen candidate.
const PhaseFailover Phase = "failover"

// PhasePublish emits network lists to observers.
const PhasePublish Phase = "publish"

// ---- HEALTH CODES ----

// Health summarizes the last completed cycle.
type Health string

// HealthUnknown represents the boot state before any cycle completed.
const HealthUnknown Health = "unknown"

// HealthOK represents a sampled, non-degraded link.
const HealthOK Health = "ok"

// HealthDegraded represents an active link below threshold.
const HealthDegraded Health = "degraded"

// HealthError represents a cycle that failed before reaching a verdict.
const HealthError Health = "error"
