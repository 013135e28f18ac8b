// internal/api/server.go
package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tamzrod/wififailover/internal/adapter"
	"github.com/tamzrod/wififailover/internal/publisher"
	"github.com/tamzrod/wififailover/internal/status"
)

// Commands is the command surface served over HTTP.
type Commands interface {
	ListNetworks(ctx context.Context, filterToTrusted bool) ([]status.NetworkView, error)
	ReadActiveSnapshot(ctx context.Context) (adapter.Snapshot, error)
	ListTrusted(ctx context.Context) ([]string, error)
	SetTrusted(ctx context.Context, ssid string, password *string) error
}

// Loop is the control loop as the API sees it.
type Loop interface {
	Refresh()
	State() status.Snapshot
}

// Events is the observer fan-out.
type Events interface {
	Subscribe(buffer int) (<-chan publisher.Event, func())
}

// Deps are the API's collaborators. Gatherer is optional.
type Deps struct {
	Commands Commands
	Loop     Loop
	Events   Events
	Gatherer prometheus.Gatherer
	Log      zerolog.Logger
}

// Server serves the command API and the event stream.
type Server struct {
	addr string
	deps Deps

	router *gin.Engine

	closing   chan struct{}
	closeOnce sync.Once
}

func NewServer(addr string, deps Deps) *Server {
	s := &Server{
		addr:    addr,
		deps:    deps,
		closing: make(chan struct{}),
	}
	s.router = s.routes()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.accessLog())

	// SSIDs may contain '/'; clients escape them.
	r.UseRawPath = true

	v1 := r.Group("/v1")
	v1.GET("/networks", s.handleNetworks)
	v1.GET("/active", s.handleActive)
	v1.GET("/trusted", s.handleTrustedList)
	v1.PUT("/trusted/:ssid", s.handleTrust)
	v1.DELETE("/trusted/:ssid", s.handleUntrust)
	v1.POST("/refresh", s.handleRefresh)
	v1.GET("/state", s.handleState)
	v1.GET("/events", s.handleEvents)

	if s.deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.deps.Gatherer, promhttp.HandlerOpts{})))
	}

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	// hijacked websocket connections are not tracked by Shutdown
	srv.RegisterOnShutdown(s.close)

	errCh := make(chan error, 1)
	go func() {
		s.deps.Log.Info().Str("listen", s.addr).Msg("api listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.close()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	if lerr := <-errCh; lerr != nil && !errors.Is(lerr, http.ErrServerClosed) && err == nil {
		err = lerr
	}
	s.deps.Log.Info().Msg("api stopped")
	return err
}

func (s *Server) close() {
	s.closeOnce.Do(func() { close(s.closing) })
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.deps.Log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	}
}
