// internal/api/api_test.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/wififailover/internal/adapter"
	"github.com/tamzrod/wififailover/internal/logger"
	"github.com/tamzrod/wififailover/internal/publisher"
	"github.com/tamzrod/wififailover/internal/registry"
	"github.com/tamzrod/wififailover/internal/status"
	"github.com/tamzrod/wififailover/internal/telemetry"
	"github.com/tamzrod/wififailover/internal/vault"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ---- fakes ----

type fakeCommands struct {
	mu      sync.Mutex
	trusted map[string]string
	readErr error
	setErr  error
	filter  bool
}

func newFakeCommands() *fakeCommands {
	return &fakeCommands{trusted: map[string]string{}}
}

func (f *fakeCommands) ListNetworks(ctx context.Context, filterToTrusted bool) ([]status.NetworkView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filter = filterToTrusted
	if f.readErr != nil {
		return nil, f.readErr
	}
	if filterToTrusted {
		return []status.NetworkView{{SSID: "Office", Trusted: true}}, nil
	}
	return []status.NetworkView{
		{SSID: "Home", Connected: true, Trusted: true},
		{SSID: "Office", Trusted: true},
	}, nil
}

func (f *fakeCommands) ReadActiveSnapshot(ctx context.Context) (adapter.Snapshot, error) {
	if f.readErr != nil {
		return adapter.Snapshot{}, f.readErr
	}
	return adapter.Snapshot{SSID: "Home", Channel: "149", SignalLevel: "-61", Associated: true}, nil
}

func (f *fakeCommands) ListTrusted(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []string{}
	for s := range f.trusted {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeCommands) SetTrusted(ctx context.Context, ssid string, password *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ssid == "" {
		return registry.ErrEmptySSID
	}
	if f.setErr != nil {
		return f.setErr
	}
	if password == nil {
		delete(f.trusted, ssid)
		return nil
	}
	f.trusted[ssid] = *password
	return nil
}

type fakeLoop struct {
	mu        sync.Mutex
	refreshed int
}

func (l *fakeLoop) Refresh() {
	l.mu.Lock()
	l.refreshed++
	l.mu.Unlock()
}

func (l *fakeLoop) State() status.Snapshot {
	return status.Snapshot{Cycle: 7, Phase: status.PhaseIdle, Health: status.HealthOK, ActiveSSID: "Home"}
}

type fixture struct {
	srv  *Server
	cmds *fakeCommands
	loop *fakeLoop
	hub  *publisher.Hub
}

func newFixture() *fixture {
	reg := prometheus.NewRegistry()
	telemetry.NewMetrics(reg)

	f := &fixture{cmds: newFakeCommands(), loop: &fakeLoop{}, hub: publisher.NewHub()}
	f.srv = NewServer("127.0.0.1:0", Deps{
		Commands: f.cmds,
		Loop:     f.loop,
		Events:   f.hub,
		Gatherer: reg,
		Log:      logger.NewTestLogger(),
	})
	return f
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	f.srv.Handler().ServeHTTP(w, req)
	return w
}

// ---- handlers ----

func TestNetworks(t *testing.T) {
	f := newFixture()

	w := f.do("GET", "/v1/networks", "")
	require.Equal(t, http.StatusOK, w.Code)

	var views []status.NetworkView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	assert.Len(t, views, 2)
	assert.False(t, f.cmds.filter)

	w = f.do("GET", "/v1/networks?trusted=true", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, f.cmds.filter)

	w = f.do("GET", "/v1/networks?trusted=maybe", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestActive_AdapterErrorIsBadGateway(t *testing.T) {
	f := newFixture()
	f.cmds.readErr = &adapter.ReadError{Op: "read_active", Field: "agrCtlRSSI", Err: adapter.ErrMalformedOutput}

	w := f.do("GET", "/v1/active", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)

	var er ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &er))
	assert.Contains(t, er.Error, "agrCtlRSSI")
}

func TestTrustAndUntrust(t *testing.T) {
	f := newFixture()

	w := f.do("PUT", "/v1/trusted/Office", `{"password":"s3cret"}`)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "s3cret", f.cmds.trusted["Office"])

	w = f.do("GET", "/v1/trusted", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["Office"]`, w.Body.String())

	w = f.do("DELETE", "/v1/trusted/Office", "")
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.NotContains(t, f.cmds.trusted, "Office")
}

func TestTrust_EscapedSSID(t *testing.T) {
	f := newFixture()

	w := f.do("PUT", "/v1/trusted/Guest%2F5G%20Net", `{"password":"x"}`)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, f.cmds.trusted, "Guest/5G Net")
}

func TestTrust_MissingPassword(t *testing.T) {
	f := newFixture()

	w := f.do("PUT", "/v1/trusted/Office", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, f.cmds.trusted)
}

func TestTrust_VaultErrorIsInternal(t *testing.T) {
	f := newFixture()
	f.cmds.setErr = &vault.Error{Op: "set", SSID: "Office", Err: errors.New("keychain locked")}

	w := f.do("PUT", "/v1/trusted/Office", `{"password":"x"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRefreshAndState(t *testing.T) {
	f := newFixture()

	w := f.do("POST", "/v1/refresh", "")
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, 1, f.loop.refreshed)

	w = f.do("GET", "/v1/state", "")
	require.Equal(t, http.StatusOK, w.Code)

	var st status.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Equal(t, uint64(7), st.Cycle)
	assert.Equal(t, status.HealthOK, st.Health)
}

func TestMetrics(t *testing.T) {
	f := newFixture()

	w := f.do("GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "wififailover_publish_errors_total")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(registry.ErrEmptySSID))
	assert.Equal(t, http.StatusNotFound, statusFor(&vault.Error{Op: "get", Err: vault.ErrNotFound}))
	assert.Equal(t, http.StatusBadGateway, statusFor(&adapter.ConnectError{SSID: "x"}))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("boom")))
}

// ---- event stream ----

func TestEvents_ReplayAndLive(t *testing.T) {
	f := newFixture()
	at := time.Now()
	require.NoError(t, f.hub.Publish(publisher.NetworksEvent(status.EventAvailableNetworks, at,
		[]status.NetworkView{{SSID: "Home"}})))

	ts := httptest.NewServer(f.srv.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var ev publisher.Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, status.EventAvailableNetworks, ev.Name)
	require.Len(t, ev.Networks, 1)
	assert.Equal(t, "Home", ev.Networks[0].SSID)

	require.NoError(t, f.hub.Publish(publisher.NetworksEvent(status.EventTrustedNetworks, at, nil)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var frame map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &frame))
	assert.JSONEq(t, `"trusted_networks"`, string(frame["name"]))
	require.Contains(t, frame, "networks", "empty list must still be sent")
	assert.JSONEq(t, `[]`, string(frame["networks"]))
}

// ---- client ----

func TestClient_RoundTrip(t *testing.T) {
	f := newFixture()
	ts := httptest.NewServer(f.srv.Handler())
	defer ts.Close()

	c := NewClient(ts.URL)
	ctx := context.Background()

	require.NoError(t, c.Trust(ctx, "Guest/5G", "pw"))
	list, err := c.Trusted(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Guest/5G"}, list)

	active, err := c.Active(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Home", active.SSID)
	assert.Equal(t, "-61", active.SignalLevel)

	views, err := c.Networks(ctx, true)
	require.NoError(t, err)
	require.Len(t, views, 1)

	require.NoError(t, c.Refresh(ctx))
	st, err := c.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Home", st.ActiveSSID)

	require.NoError(t, c.Untrust(ctx, "Guest/5G"))

	f.cmds.readErr = &adapter.ReadError{Op: "scan", Err: errors.New("exit status 1")}
	_, err = c.Networks(ctx, false)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.Code)
}

func TestServer_RunStops(t *testing.T) {
	f := newFixture()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.srv.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
