// internal/config/config.go
package config

import "github.com/tamzrod/wififailover/internal/logger"

type Config struct {
	Failover FailoverConfig `yaml:"failover"`
	Adapter  AdapterConfig  `yaml:"adapter"`
	Store    StoreConfig    `yaml:"store"`
	Vault    VaultConfig    `yaml:"vault"`
	API      APIConfig      `yaml:"api"`
	Logging  logger.Config  `yaml:"logging"`
}

// ---- FAILOVER LOOP ----

type FailoverConfig struct {
	IntervalMs int `yaml:"interval_ms" validate:"gt=0"`

	// Signal level (dBm) below which the active network counts as degraded.
	// nil => DefaultThresholdDBm.
	ThresholdDBm *int `yaml:"threshold_dbm" validate:"required,gte=-120,lte=0"`

	// Minimum gap between two failover attempts. 0 disables the cooldown.
	// nil => DefaultCooldownMs.
	CooldownMs *int `yaml:"cooldown_ms" validate:"required,gte=0"`
}

// ---- ADAPTER ----

type AdapterConfig struct {
	Driver    string `yaml:"driver" validate:"required,oneof=airport nmcli"`
	Interface string `yaml:"interface" validate:"required"`

	// Bound on one read (scan or active snapshot).
	TimeoutMs int `yaml:"timeout_ms" validate:"gt=0"`

	// Bound on one join attempt. Joining is slower than reading.
	ConnectTimeoutMs int `yaml:"connect_timeout_ms" validate:"gt=0"`

	AirportPath string `yaml:"airport_path"`
	NMCLIPath   string `yaml:"nmcli_path"`
}

// ---- STORE ----

type StoreConfig struct {
	Path         string `yaml:"path"`
	InMemory     bool   `yaml:"in_memory"`
	GCIntervalMs int    `yaml:"gc_interval_ms" validate:"gte=0"`
}

// ---- VAULT ----

type VaultConfig struct {
	Service string `yaml:"service" validate:"required"`
}

// ---- API ----

type APIConfig struct {
	Listen string `yaml:"listen" validate:"required,hostname_port"`
}
