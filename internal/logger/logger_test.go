// internal/logger/logger_test.go
package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Level(t *testing.T) {
	require.NoError(t, Init(Config{Level: "warn", Output: "stderr"}))
	assert.Equal(t, zerolog.WarnLevel, Get().GetLevel())

	require.NoError(t, Init(Config{Level: "warn", Debug: true}))
	assert.Equal(t, zerolog.DebugLevel, Get().GetLevel())
}

func TestInit_BadLevel(t *testing.T) {
	assert.Error(t, Init(Config{Level: "loud"}))
}

func TestNewTestLogger_Disabled(t *testing.T) {
	l := NewTestLogger()
	assert.Equal(t, zerolog.Disabled, l.GetLevel())
}
