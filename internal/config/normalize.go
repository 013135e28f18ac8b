// internal/config/normalize.go
package config

import "strings"

const (
	DefaultIntervalMs   = 1000
	DefaultThresholdDBm = -75
	DefaultCooldownMs   = 30000

	DefaultDriver           = "airport"
	DefaultInterface        = "en0"
	DefaultTimeoutMs        = 5000
	DefaultConnectTimeoutMs = 30000
	DefaultAirportPath      = "/System/Library/PrivateFrameworks/Apple80211.framework/Versions/Current/Resources/airport"
	DefaultNMCLIPath        = "nmcli"

	DefaultStorePath    = "./storage.badger"
	DefaultGCIntervalMs = 5 * 60 * 1000

	DefaultVaultService = "wifi_backup"
	DefaultListen       = "127.0.0.1:7878"
)

// Normalize fills unset fields with defaults.
// It is allowed to mutate configuration.
// It MUST be called before Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	// ---- failover ----
	if cfg.Failover.IntervalMs == 0 {
		cfg.Failover.IntervalMs = DefaultIntervalMs
	}
	if cfg.Failover.ThresholdDBm == nil {
		v := DefaultThresholdDBm
		cfg.Failover.ThresholdDBm = &v
	}
	if cfg.Failover.CooldownMs == nil {
		v := DefaultCooldownMs
		cfg.Failover.CooldownMs = &v
	}

	// ---- adapter ----
	cfg.Adapter.Driver = strings.ToLower(strings.TrimSpace(cfg.Adapter.Driver))
	if cfg.Adapter.Driver == "" {
		cfg.Adapter.Driver = DefaultDriver
	}
	if cfg.Adapter.Interface == "" {
		cfg.Adapter.Interface = DefaultInterface
	}
	if cfg.Adapter.TimeoutMs == 0 {
		cfg.Adapter.TimeoutMs = DefaultTimeoutMs
	}
	if cfg.Adapter.ConnectTimeoutMs == 0 {
		cfg.Adapter.ConnectTimeoutMs = DefaultConnectTimeoutMs
	}
	if cfg.Adapter.AirportPath == "" {
		cfg.Adapter.AirportPath = DefaultAirportPath
	}
	if cfg.Adapter.NMCLIPath == "" {
		cfg.Adapter.NMCLIPath = DefaultNMCLIPath
	}

	// ---- store ----
	if cfg.Store.Path == "" && !cfg.Store.InMemory {
		cfg.Store.Path = DefaultStorePath
	}
	if cfg.Store.GCIntervalMs == 0 {
		cfg.Store.GCIntervalMs = DefaultGCIntervalMs
	}

	// ---- vault / api ----
	if cfg.Vault.Service == "" {
		cfg.Vault.Service = DefaultVaultService
	}
	if cfg.API.Listen == "" {
		cfg.API.Listen = DefaultListen
	}
}

// Default returns a normalized config with every default applied.
func Default() *Config {
	cfg := &Config{}
	Normalize(cfg)
	return cfg
}
