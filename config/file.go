package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadFile loads pipeline configuration from a .conf file.
// Format: key = value (one per line, # for comments)
func LoadFile(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}
	defer file.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("line %d: invalid format (expected key = value)", lineNum)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		values[key] = value
	}

	return values, scanner.Err()
}

// ApplyFileConfig applies file configuration to a Config struct.
func ApplyFileConfig(cfg *Config, values map[string]string) error {
	for key, value := range values {
		if err := setConfigValue(cfg, key, value); err != nil {
			return fmt.Errorf("config key %q: %w", key, err)
		}
	}
	return nil
}

func setConfigValue(cfg *Config, key, value string) error {
	switch key {
	// Core
	case "network":
		cfg.Network = NetworkType(value)
	case "datadir":
		cfg.DataDir = value

	// Peer
	case "peer.addr":
		cfg.Peer.Addr = value

	// Chain-sync
	case "chainsync.intersect":
		cfg.Intersect.Policy = value
	case "chainsync.intersect_fallbacks":
		cfg.Intersect.Fallbacks = parseStringList(value)
	case "chainsync.mindepth":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		cfg.Intersect.MinDepth = n

	// Finalize
	case "finalize.maxblocks":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		cfg.Finalize.MaxBlocks = n
	case "finalize.untilpoint":
		cfg.Finalize.UntilPoint = value

	// Reducers
	case "reducers.enabled":
		cfg.Reducers.Kinds = parseStringList(value)
	case "reducers.watch_addresses":
		cfg.Reducers.WatchAddresses = parseStringList(value)

	// Storage
	case "storage.redis":
		cfg.Storage.ConnectionParams = value

	// Metrics
	case "metrics.enabled":
		cfg.Metrics.Enabled = parseBool(value)
	case "metrics.addr":
		cfg.Metrics.Addr = value
	case "metrics.port":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.Metrics.Port = n

	// Logging
	case "log.level":
		cfg.Log.Level = value
	case "log.file":
		cfg.Log.File = value
	case "log.json":
		cfg.Log.JSON = parseBool(value)

	default:
		// Unknown keys are ignored
	}
	return nil
}

func parseBool(s string) bool {
	s = strings.ToLower(s)
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

func parseStringList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// WriteDefaultConfig writes a default pipeline configuration file.
func WriteDefaultConfig(path string, network NetworkType) error {
	defaults := Default(network)
	content := `# Chain pipeline configuration
#
# This file contains pipeline settings only. Chain well-known parameters
# (network magic, epoch lengths) are hardcoded per network.

# Network: mainnet or testnet
network = ` + string(network) + `

# Data directory (default: ~/.chainpipeline)
# datadir = ~/.chainpipeline

# ============================================================================
# Peer
# ============================================================================

# Address of the chain-sync peer to dial.
# peer.addr = relay.mainnet.example:3001

# ============================================================================
# Chain Sync
# ============================================================================

# Intersection policy when no cursor is persisted yet: origin, tip, or
# point:<slot>,<hex-hash>
chainsync.intersect = tip

# Confirmations required before a header is handed to block-fetch.
chainsync.mindepth = 6

# ============================================================================
# Finalize (stop the pipeline once reached; leave blank to run forever)
# ============================================================================

# finalize.maxblocks = 1000
# finalize.untilpoint = slot,hex(hash)

# ============================================================================
# Reducers (comma-separated, applied in order)
# ============================================================================

reducers.enabled = UtxoByAddress,PointByTx,PoolByStake

# Addresses TotalTransactionsCountByAddresses tracks (comma-separated).
# reducers.watch_addresses =

# ============================================================================
# Storage
# ============================================================================

storage.redis = ` + defaults.Storage.ConnectionParams + `

# ============================================================================
# Metrics
# ============================================================================

metrics.enabled = true
metrics.addr = 127.0.0.1
metrics.port = ` + strconv.Itoa(defaults.Metrics.Port) + `

# ============================================================================
# Logging
# ============================================================================

log.level = info
# log.file =
log.json = false
`
	return os.WriteFile(path, []byte(content), 0644)
}
