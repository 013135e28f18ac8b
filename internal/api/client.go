// internal/api/client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tamzrod/wififailover/internal/status"
)

// Client talks to a running daemon's API.
type Client struct {
	base string
	http *http.Client
}

// NewClient returns a client for addr ("host:port" or a full URL).
func NewClient(addr string) *Client {
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}
	return &Client{
		base: strings.TrimRight(addr, "/"),
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// StatusError is a non-2xx response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Code, e.Message)
}

func (c *Client) Networks(ctx context.Context, trusted bool) ([]status.NetworkView, error) {
	var out []status.NetworkView
	err := c.do(ctx, http.MethodGet, "/v1/networks?trusted="+strconv.FormatBool(trusted), nil, &out)
	return out, err
}

func (c *Client) Active(ctx context.Context) (Snapshot, error) {
	var out Snapshot
	err := c.do(ctx, http.MethodGet, "/v1/active", nil, &out)
	return out, err
}

func (c *Client) Trusted(ctx context.Context) ([]string, error) {
	var out []string
	err := c.do(ctx, http.MethodGet, "/v1/trusted", nil, &out)
	return out, err
}

func (c *Client) Trust(ctx context.Context, ssid, password string) error {
	return c.do(ctx, http.MethodPut, "/v1/trusted/"+url.PathEscape(ssid), TrustRequest{Password: &password}, nil)
}

func (c *Client) Untrust(ctx context.Context, ssid string) error {
	return c.do(ctx, http.MethodDelete, "/v1/trusted/"+url.PathEscape(ssid), nil, nil)
}

func (c *Client) Refresh(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/v1/refresh", nil, nil)
}

func (c *Client) State(ctx context.Context) (status.Snapshot, error) {
	var out status.Snapshot
	err := c.do(ctx, http.MethodGet, "/v1/state", nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		var er ErrorResponse
		if derr := json.NewDecoder(resp.Body).Decode(&er); derr != nil || er.Error == "" {
			er.Error = http.StatusText(resp.StatusCode)
		}
		return &StatusError{Code: resp.StatusCode, Message: er.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}
