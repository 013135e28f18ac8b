// internal/api/handlers.go
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tamzrod/wififailover/internal/adapter"
	"github.com/tamzrod/wififailover/internal/failover"
	"github.com/tamzrod/wififailover/internal/registry"
	"github.com/tamzrod/wififailover/internal/vault"
)

// TrustRequest is the body of PUT /v1/trusted/:ssid.
type TrustRequest struct {
	Password *string `json:"password" binding:"required"`
}

// ErrorResponse is every non-2xx body.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleNetworks(c *gin.Context) {
	trusted := false
	if v := c.Query("trusted"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "trusted must be a boolean"})
			return
		}
		trusted = b
	}

	views, err := s.deps.Commands.ListNetworks(c.Request.Context(), trusted)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (s *Server) handleActive(c *gin.Context) {
	snap, err := s.deps.Commands.ReadActiveSnapshot(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshotJSON(snap))
}

func (s *Server) handleTrustedList(c *gin.Context) {
	list, err := s.deps.Commands.ListTrusted(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleTrust(c *gin.Context) {
	var req TrustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "password is required"})
		return
	}

	if err := s.deps.Commands.SetTrusted(c.Request.Context(), c.Param("ssid"), req.Password); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleUntrust(c *gin.Context) {
	if err := s.deps.Commands.SetTrusted(c.Request.Context(), c.Param("ssid"), nil); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleRefresh(c *gin.Context) {
	s.deps.Loop.Refresh()
	c.Status(http.StatusAccepted)
}

func (s *Server) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, s.deps.Loop.State())
}

func (s *Server) fail(c *gin.Context, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		s.deps.Log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// statusFor maps the error taxonomy onto HTTP.
func statusFor(err error) int {
	var (
		readErr *adapter.ReadError
		connErr *adapter.ConnectError
	)

	switch {
	case errors.Is(err, registry.ErrEmptySSID):
		return http.StatusBadRequest
	case errors.Is(err, vault.ErrNotFound), errors.Is(err, failover.ErrCredentialNotFound):
		return http.StatusNotFound
	case errors.As(err, &readErr), errors.As(err, &connErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
