// internal/publisher/multi.go
package publisher

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

type multi struct {
	pubs []Publisher
}

// Multi delivers every event to each publisher in order.
// A failing publisher does not stop the others.
func Multi(pubs ...Publisher) Publisher {
	return &multi{pubs: pubs}
}

func (m *multi) Publish(ev Event) error {
	var errs []string
	for i, p := range m.pubs {
		if err := p.Publish(ev); err != nil {
			errs = append(errs, fmt.Sprintf("publisher[%d] event=%s err=%v", i, ev.Name, err))
		}
	}
	if len(errs) > 0 {
		return errors.New("publisher: " + strings.Join(errs, " | "))
	}
	return nil
}

// LogPublisher writes a one-line summary of each event at debug level.
type LogPublisher struct {
	Log zerolog.Logger
}

func (l LogPublisher) Publish(ev Event) error {
	e := l.Log.Debug().Str("event", ev.Name)
	if ev.State != nil {
		e = e.Str("phase", string(ev.State.Phase)).Str("health", string(ev.State.Health))
	} else {
		e = e.Int("networks", len(ev.Networks))
	}
	e.Msg("published")
	return nil
}
