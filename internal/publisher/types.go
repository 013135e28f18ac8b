// internal/publisher/types.go
package publisher

import (
	"encoding/json"
	"time"

	"github.com/tamzrod/wififailover/internal/status"
)

// Event is one named observable emitted by the control loop.
// Exactly one of Networks / State is set, depending on Name.
type Event struct {
	Name string    `json:"name"`
	At   time.Time `json:"at"`

	Networks []status.NetworkView `json:"networks,omitempty"`
	State    *status.Snapshot     `json:"state,omitempty"`
}

// ---- wire shapes ----

type networksWire struct {
	Name     string               `json:"name"`
	At       time.Time            `json:"at"`
	Networks []status.NetworkView `json:"networks"`
}

type stateWire struct {
	Name  string           `json:"name"`
	At    time.Time        `json:"at"`
	State *status.Snapshot `json:"state"`
}

// MarshalJSON writes a state event with "state" only, and a network event
// with "networks" always present; an empty list goes out as [].
func (e Event) MarshalJSON() ([]byte, error) {
	if e.State != nil {
		return json.Marshal(stateWire{Name: e.Name, At: e.At, State: e.State})
	}

	nets := e.Networks
	if nets == nil {
		nets = []status.NetworkView{}
	}
	return json.Marshal(networksWire{Name: e.Name, At: e.At, Networks: nets})
}

// Publisher delivers events. Delivery only: no logic, no interpretation.
type Publisher interface {
	Publish(ev Event) error
}

// NetworksEvent builds a network list event.
func NetworksEvent(name string, at time.Time, views []status.NetworkView) Event {
	if views == nil {
		views = []status.NetworkView{}
	}
	return Event{Name: name, At: at, Networks: views}
}
