// Package config handles application configuration.
//
// Configuration is split into two categories:
//   - Chain well-known parameters: hardcoded per network, shared by every node
//   - Pipeline settings: runtime configuration, can vary per operator
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// NetworkType identifies mainnet or testnet.
type NetworkType string

const (
	Mainnet NetworkType = "mainnet"
	Testnet NetworkType = "testnet"
)

// =============================================================================
// Pipeline Configuration (runtime, per-operator settings)
// =============================================================================

// Config holds the pipeline's runtime configuration.
type Config struct {
	// Core
	Network NetworkType `conf:"network"`
	DataDir string      `conf:"datadir"`

	// Peer the chain-sync stage dials.
	Peer PeerConfig

	// Intersection policy chain-sync bootstraps from when no cursor exists.
	Intersect IntersectConfig

	// Finalize policy: when the pipeline should stop itself.
	Finalize FinalizeConfig

	// Reducer bank, in declaration order.
	Reducers ReducersConfig

	// Storage backend.
	Storage StorageConfig

	// Metrics HTTP endpoint.
	Metrics MetricsConfig

	// Logging
	Log LogConfig
}

// PeerConfig holds the chain-sync peer connection settings.
type PeerConfig struct {
	Addr string `conf:"peer.addr"`
}

// IntersectConfig is the file/flag-facing form of the intersection policy.
// Policy is one of "origin", "tip", or "point:<slot>,<hex-hash>". Fallbacks
// is a comma-separated list of the same point format, used when Policy is
// "fallbacks".
type IntersectConfig struct {
	Policy    string   `conf:"chainsync.intersect"`
	Fallbacks []string `conf:"chainsync.intersect_fallbacks"`

	// MinDepth is how many confirmations a header needs before chain-sync
	// hands it to block-fetch.
	MinDepth uint64 `conf:"chainsync.mindepth"`
}

// FinalizeConfig is the file/flag-facing form of the finalize policy.
type FinalizeConfig struct {
	MaxBlocks  uint64 `conf:"finalize.maxblocks"`
	UntilPoint string `conf:"finalize.untilpoint"`
}

// ReducersConfig lists the reducer bank and any reducer-specific settings.
type ReducersConfig struct {
	Kinds          []string `conf:"reducers.enabled"`
	WatchAddresses []string `conf:"reducers.watch_addresses"`
}

// StorageConfig holds the storage backend's connection settings.
type StorageConfig struct {
	ConnectionParams string `conf:"storage.redis"`
}

// MetricsConfig holds the /metrics HTTP server settings.
type MetricsConfig struct {
	Enabled bool   `conf:"metrics.enabled"`
	Addr    string `conf:"metrics.addr"`
	Port    int    `conf:"metrics.port"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// =============================================================================
// Directory helpers
// =============================================================================

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.chainpipeline
//	macOS:   ~/Library/Application Support/ChainPipeline
//	Windows: %APPDATA%\ChainPipeline
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".chainpipeline"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "ChainPipeline")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "ChainPipeline")
		}
		return filepath.Join(home, "AppData", "Roaming", "ChainPipeline")
	default:
		return filepath.Join(home, ".chainpipeline")
	}
}

// LogsDir returns the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "chainpipeline.conf")
}
