// internal/publisher/state_writer.go
package publisher

import (
	"fmt"
	"sync"
	"time"

	"github.com/tamzrod/wififailover/internal/status"
)

// StateWriter holds the control loop's current state and publishes it.
// The first write (and the first write after a failed publish) is always
// delivered; later writes are delivered only when something an observer
// would render has changed.
type StateWriter struct {
	mu  sync.RWMutex
	pub Publisher

	needFull bool
	cur      status.Snapshot
	sent     status.Snapshot
}

func NewStateWriter(pub Publisher) *StateWriter {
	return &StateWriter{
		pub:      pub,
		needFull: true,
		cur: status.Snapshot{
			Phase:  status.PhaseIdle,
			Health: status.HealthUnknown,
		},
	}
}

// WriteState records s as current and publishes it if needed.
// The state is recorded even when publishing fails.
func (w *StateWriter) WriteState(s status.Snapshot) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.cur = s

	if !w.needFull && !changed(w.sent, s) {
		return nil
	}

	snap := s
	if err := w.pub.Publish(Event{Name: status.EventLoopState, At: s.At, State: &snap}); err != nil {
		// Any failure introduces doubt: re-assert on next write.
		w.needFull = true
		return fmt.Errorf("state writer: %w", err)
	}

	w.needFull = false
	w.sent = s
	return nil
}

// State returns a copy of the current state.
func (w *StateWriter) State() status.Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cur
}

// changed ignores the fields that move every cycle.
func changed(a, b status.Snapshot) bool {
	a.Cycle, b.Cycle = 0, 0
	a.At, b.At = time.Time{}, time.Time{}
	a.ActiveSignal, b.ActiveSignal = "", ""
	return a != b
}
