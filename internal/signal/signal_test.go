// internal/signal/signal_test.go
package signal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/wififailover/internal/adapter"
)

func nets(pairs ...string) []adapter.VisibleNetwork {
	var out []adapter.VisibleNetwork
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, adapter.VisibleNetwork{SSID: pairs[i], SignalLevel: pairs[i+1]})
	}
	return out
}

func TestHasDegraded_Threshold(t *testing.T) {
	e := NewEvaluator(DefaultThreshold)

	cases := []struct {
		level string
		want  bool
	}{
		{"-90", true},
		{"-76", true},
		{"-75", false}, // equal is not below
		{"-74", false},
		{"-40", false},
	}

	for _, tc := range cases {
		got, err := e.HasDegraded(nets("Home", tc.level, "Office", "-50"), "Home")
		require.NoError(t, err, tc.level)
		assert.Equal(t, tc.want, got, tc.level)
	}
}

func TestHasDegraded_ActiveAbsent(t *testing.T) {
	e := NewEvaluator(DefaultThreshold)

	got, err := e.HasDegraded(nets("Office", "-90"), "Home")
	require.NoError(t, err)
	assert.False(t, got)

	got, err = e.HasDegraded(nil, "Home")
	require.NoError(t, err)
	assert.False(t, got)
}

func TestHasDegraded_ConfigurableThreshold(t *testing.T) {
	got, err := NewEvaluator(-60).HasDegraded(nets("Home", "-65"), "Home")
	require.NoError(t, err)
	assert.True(t, got)
}

func TestHasDegraded_NonNumericIsFatal(t *testing.T) {
	_, err := NewEvaluator(DefaultThreshold).HasDegraded(nets("Home", "n/a"), "Home")
	require.Error(t, err)

	var fe *FatalMetricError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "Home", fe.SSID)
	assert.ErrorIs(t, err, adapter.ErrInvalidMetric)
}

func TestHasDegraded_IgnoresOtherBadLevels(t *testing.T) {
	got, err := NewEvaluator(DefaultThreshold).HasDegraded(nets("Cafe", "??", "Home", "-50"), "Home")
	require.NoError(t, err)
	assert.False(t, got)
}
