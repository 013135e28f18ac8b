// internal/api/events.go
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	eventBuffer = 32
	writeWait   = 5 * time.Second
	pongWait    = 60 * time.Second
	pingPeriod  = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 16 * 1024,
	// Local UIs are served from arbitrary origins (file://, dev servers).
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleEvents streams observer events as JSON text frames.
// The last event of each name is replayed first.
func (s *Server) handleEvents(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.deps.Log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer ws.Close()

	events, cancel := s.deps.Events.Subscribe(eventBuffer)
	defer cancel()

	log := s.deps.Log.With().Str("remote", c.Request.RemoteAddr).Logger()
	log.Debug().Msg("event stream opened")

	// Reader: observers send nothing; this drains control frames and
	// notices the peer going away.
	gone := make(chan struct{})
	ws.SetReadLimit(512)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(gone)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-gone:
			log.Debug().Msg("event stream closed by peer")
			return

		case <-s.closing:
			_ = ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
				time.Now().Add(writeWait))
			return

		case ev, ok := <-events:
			if !ok {
				return
			}
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteJSON(ev); err != nil {
				log.Debug().Err(err).Msg("event write failed")
				return
			}

		case <-ping.C:
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
