// internal/commands/service_test.go
package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/wififailover/internal/adapter"
	"github.com/tamzrod/wififailover/internal/logger"
	"github.com/tamzrod/wififailover/internal/registry"
	"github.com/tamzrod/wififailover/internal/store"
	"github.com/tamzrod/wififailover/internal/vault"
)

type fakeReader struct {
	err error
}

func (f *fakeReader) ReadActive(ctx context.Context) (adapter.Snapshot, error) {
	if f.err != nil {
		return adapter.Snapshot{}, f.err
	}
	return adapter.Snapshot{SSID: "Home", Channel: "149", SignalLevel: "-62"}, nil
}

func (f *fakeReader) Scan(ctx context.Context) ([]adapter.VisibleNetwork, error) {
	return []adapter.VisibleNetwork{
		{SSID: "Home", SignalLevel: "-62", Channel: "149"},
		{SSID: "Office", SignalLevel: "-70", Channel: "6"},
		{SSID: "Cafe", SignalLevel: "-50", Channel: "11"},
	}, nil
}

type memVault struct {
	data map[string]string
	fail error
}

func newMemVault() *memVault { return &memVault{data: map[string]string{}} }

func (m *memVault) Set(ssid, pw string) error {
	if m.fail != nil {
		return m.fail
	}
	m.data[ssid] = pw
	return nil
}

func (m *memVault) Get(ssid string) (string, error) {
	pw, ok := m.data[ssid]
	if !ok {
		return "", vault.ErrNotFound
	}
	return pw, nil
}

func (m *memVault) Delete(ssid string) error {
	if _, ok := m.data[ssid]; !ok {
		return &vault.Error{Op: "delete", SSID: ssid, Err: vault.ErrNotFound}
	}
	delete(m.data, ssid)
	return nil
}

type failingRegistry struct{ Registry }

func (failingRegistry) Add(ctx context.Context, ssid string) error {
	return &store.Error{Op: "commit", Err: errors.New("disk full")}
}

func newService(t *testing.T) (*Service, *registry.Registry, *memVault) {
	t.Helper()

	st, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	reg := registry.New(st, logger.NewTestLogger())
	v := newMemVault()
	return NewService(&fakeReader{}, reg, v, logger.NewTestLogger()), reg, v
}

func ptr(s string) *string { return &s }

func TestSetTrusted_AddThenRemove(t *testing.T) {
	svc, reg, v := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetTrusted(ctx, "Office", ptr("s3cret")))
	assert.Equal(t, "s3cret", v.data["Office"])

	list, err := reg.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Office"}, list)

	require.NoError(t, svc.SetTrusted(ctx, "Office", nil))
	assert.NotContains(t, v.data, "Office")

	list, err = reg.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSetTrusted_RemoveAbsentIsNoop(t *testing.T) {
	svc, _, _ := newService(t)
	assert.NoError(t, svc.SetTrusted(context.Background(), "Nowhere", nil))
}

func TestSetTrusted_EmptySSID(t *testing.T) {
	svc, _, _ := newService(t)
	assert.ErrorIs(t, svc.SetTrusted(context.Background(), "", ptr("x")), registry.ErrEmptySSID)
}

func TestSetTrusted_VaultFailureSkipsRegistry(t *testing.T) {
	svc, reg, v := newService(t)
	v.fail = &vault.Error{Op: "set", SSID: "Office", Err: errors.New("locked")}

	err := svc.SetTrusted(context.Background(), "Office", ptr("pw"))
	var ve *vault.Error
	require.ErrorAs(t, err, &ve)

	list, err := reg.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSetTrusted_RegistryFailureRollsBackVault(t *testing.T) {
	v := newMemVault()
	svc := NewService(&fakeReader{}, failingRegistry{}, v, logger.NewTestLogger())

	err := svc.SetTrusted(context.Background(), "Office", ptr("pw"))
	var se *store.Error
	require.ErrorAs(t, err, &se)
	assert.NotContains(t, v.data, "Office")
}

func TestSetTrusted_RegistryFailureKeepsPriorCredential(t *testing.T) {
	v := newMemVault()
	v.data["Office"] = "old"
	svc := NewService(&fakeReader{}, failingRegistry{}, v, logger.NewTestLogger())

	err := svc.SetTrusted(context.Background(), "Office", ptr("new"))
	require.Error(t, err)

	pw, err := v.Get("Office")
	require.NoError(t, err)
	assert.Equal(t, "old", pw)
}

func TestSetTrusted_ReAddUpdatesCredential(t *testing.T) {
	svc, reg, v := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetTrusted(ctx, "Office", ptr("old")))
	require.NoError(t, svc.SetTrusted(ctx, "Office", ptr("new")))
	assert.Equal(t, "new", v.data["Office"])

	list, err := reg.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Office"}, list)
}

func TestListNetworks(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetTrusted(ctx, "Home", ptr("a")))
	require.NoError(t, svc.SetTrusted(ctx, "Office", ptr("b")))

	all, err := svc.ListNetworks(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].Connected)
	assert.True(t, all[0].Trusted)
	assert.False(t, all[2].Trusted)

	trusted, err := svc.ListNetworks(ctx, true)
	require.NoError(t, err)
	require.Len(t, trusted, 1)
	assert.Equal(t, "Office", trusted[0].SSID)
}

func TestListNetworks_ReadError(t *testing.T) {
	st, err := store.OpenInMemory()
	require.NoError(t, err)
	defer st.Close()

	boom := &adapter.ReadError{Op: "read_active", Err: adapter.ErrMalformedOutput}
	svc := NewService(&fakeReader{err: boom}, registry.New(st, logger.NewTestLogger()), newMemVault(), logger.NewTestLogger())

	_, err = svc.ListNetworks(context.Background(), false)
	assert.ErrorIs(t, err, adapter.ErrMalformedOutput)
}
