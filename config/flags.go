package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// Flags holds parsed command-line flags.
type Flags struct {
	// Commands
	Help    bool
	Version bool

	// Core
	Network string
	DataDir string
	Config  string

	// Peer
	PeerAddr string

	// Chain-sync
	Intersect string
	MinDepth  uint64

	// Finalize
	MaxBlocks  uint64
	UntilPoint string

	// Reducers
	Reducers       string
	WatchAddresses string

	// Storage
	StorageConn string

	// Metrics
	Metrics     bool
	MetricsAddr string
	MetricsPort int

	// Logging
	LogLevel string
	LogFile  string
	LogJSON  bool

	// Remaining args
	Args []string

	// Explicitly-set bool flags (for true/false overrides).
	SetMetrics bool
	SetLogJSON bool
}

// ParseFlags parses command-line flags.
func ParseFlags() *Flags {
	f := &Flags{}
	fs := flag.NewFlagSet("chainpipelined", flag.ContinueOnError)

	fs.BoolVar(&f.Help, "help", false, "Show help message")
	fs.BoolVar(&f.Help, "h", false, "Show help message (shorthand)")
	fs.BoolVar(&f.Version, "version", false, "Show version information")
	fs.BoolVar(&f.Version, "v", false, "Show version (shorthand)")

	fs.StringVar(&f.Network, "network", "", "Network type (mainnet or testnet)")
	var testnet bool
	fs.BoolVar(&testnet, "testnet", false, "Use testnet (shorthand for --network=testnet)")
	fs.StringVar(&f.DataDir, "datadir", "", "Data directory path")
	fs.StringVar(&f.Config, "config", "", "Config file path")
	fs.StringVar(&f.Config, "c", "", "Config file path (shorthand)")

	fs.StringVar(&f.PeerAddr, "peer", "", "Chain-sync peer address")

	fs.StringVar(&f.Intersect, "intersect", "", "Intersection policy: origin, tip, or point:<slot>,<hex-hash>")
	fs.Uint64Var(&f.MinDepth, "min-depth", 0, "Confirmations required before block-fetch")

	fs.Uint64Var(&f.MaxBlocks, "finalize-max-blocks", 0, "Stop after this many confirmed blocks")
	fs.StringVar(&f.UntilPoint, "finalize-until", "", "Stop once this point is confirmed")

	fs.StringVar(&f.Reducers, "reducers", "", "Comma-separated reducer kinds, applied in order")
	fs.StringVar(&f.WatchAddresses, "watch-addresses", "", "Comma-separated addresses for TotalTransactionsCountByAddresses")

	fs.StringVar(&f.StorageConn, "storage", "", "Storage connection string")

	fs.BoolVar(&f.Metrics, "metrics", true, "Enable the /metrics HTTP endpoint")
	fs.StringVar(&f.MetricsAddr, "metrics-addr", "", "Metrics listen address")
	fs.IntVar(&f.MetricsPort, "metrics-port", 0, "Metrics listen port")

	fs.StringVar(&f.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.LogFile, "log-file", "", "Log file path")
	fs.BoolVar(&f.LogJSON, "log-json", false, "Output logs as JSON")

	fs.Usage = func() {
		printUsage()
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if testnet {
		f.Network = "testnet"
	}
	f.SetMetrics = isFlagSet(fs, "metrics")
	f.SetLogJSON = isFlagSet(fs, "log-json")

	f.Args = fs.Args()

	for _, arg := range f.Args {
		if strings.HasPrefix(arg, "-") {
			fmt.Fprintf(os.Stderr, "Error: flag %q was not parsed (positional argument stopped parsing)\n", arg)
			os.Exit(1)
		}
	}

	return f
}

// ApplyFlags applies command-line flags to a Config struct.
func ApplyFlags(cfg *Config, f *Flags) {
	if f.Network != "" {
		cfg.Network = NetworkType(f.Network)
	}
	if f.DataDir != "" {
		cfg.DataDir = f.DataDir
	}

	if f.PeerAddr != "" {
		cfg.Peer.Addr = f.PeerAddr
	}

	if f.Intersect != "" {
		cfg.Intersect.Policy = f.Intersect
	}
	if f.MinDepth != 0 {
		cfg.Intersect.MinDepth = f.MinDepth
	}

	if f.MaxBlocks != 0 {
		cfg.Finalize.MaxBlocks = f.MaxBlocks
	}
	if f.UntilPoint != "" {
		cfg.Finalize.UntilPoint = f.UntilPoint
	}

	if f.Reducers != "" {
		cfg.Reducers.Kinds = parseStringList(f.Reducers)
	}
	if f.WatchAddresses != "" {
		cfg.Reducers.WatchAddresses = parseStringList(f.WatchAddresses)
	}

	if f.StorageConn != "" {
		cfg.Storage.ConnectionParams = f.StorageConn
	}

	if f.SetMetrics {
		cfg.Metrics.Enabled = f.Metrics
	}
	if f.MetricsAddr != "" {
		cfg.Metrics.Addr = f.MetricsAddr
	}
	if f.MetricsPort != 0 {
		cfg.Metrics.Port = f.MetricsPort
	}

	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
	if f.LogFile != "" {
		cfg.Log.File = f.LogFile
	}
	if f.SetLogJSON {
		cfg.Log.JSON = f.LogJSON
	}
}

// isFlagSet checks if a flag was explicitly set.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func printUsage() {
	usage := `chain pipeline - ingests chain-sync events into a CRDT-backed store

Usage:
  chainpipelined run [options]
  chainpipelined cursor show
  chainpipelined cursor reset
  chainpipelined --help

Core Options:
  --network       Network type: mainnet (default) or testnet
  --testnet       Shorthand for --network=testnet
  --datadir       Data directory (default: ~/.chainpipeline)
  --config, -c    Config file path (default: <datadir>/chainpipeline.conf)

Chain Sync Options:
  --peer          Chain-sync peer address
  --intersect     Intersection policy: origin, tip, or point:<slot>,<hex-hash>
  --min-depth     Confirmations required before block-fetch

Finalize Options:
  --finalize-max-blocks   Stop after this many confirmed blocks
  --finalize-until        Stop once this point is confirmed

Reducer Options:
  --reducers          Comma-separated reducer kinds, applied in order
  --watch-addresses   Addresses for TotalTransactionsCountByAddresses

Storage Options:
  --storage       Storage connection string

Metrics Options:
  --metrics       Enable the /metrics HTTP endpoint (default: true)
  --metrics-addr  Metrics listen address
  --metrics-port  Metrics listen port

Logging Options:
  --log-level     Log level: debug, info, warn, error (default: info)
  --log-file      Log file path (default: <datadir>/logs/chainpipeline.log)
  --log-json      Output logs as JSON
`
	fmt.Print(usage)
}

// Load loads configuration with the following precedence:
// 1. Default values
// 2. Auto-create data dirs + default config (idempotent)
// 3. Config file
// 4. Command-line flags
func Load() (*Config, *Flags, error) {
	flags := ParseFlags()

	if flags.Help {
		printUsage()
		os.Exit(0)
	}
	if flags.Version {
		fmt.Println("chainpipelined version 0.1.0")
		os.Exit(0)
	}

	network := Mainnet
	if strings.ToLower(flags.Network) == "testnet" {
		network = Testnet
	}

	cfg := Default(network)

	if flags.DataDir != "" {
		cfg.DataDir = flags.DataDir
	}

	if err := EnsureDataDirs(cfg); err != nil {
		return nil, nil, fmt.Errorf("ensuring data dirs: %w", err)
	}

	configPath := flags.Config
	if configPath == "" {
		configPath = cfg.ConfigFile()
	}

	fileValues, err := LoadFile(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config file: %w", err)
	}

	if err := ApplyFileConfig(cfg, fileValues); err != nil {
		return nil, nil, fmt.Errorf("applying config file: %w", err)
	}

	ApplyFlags(cfg, flags)
	if err := Validate(cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, flags, nil
}

// EnsureDataDirs creates the data directory structure and a default config
// file if they don't already exist. Idempotent.
func EnsureDataDirs(cfg *Config) error {
	dirs := []string{
		cfg.DataDir,
		cfg.LogsDir(),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	configPath := cfg.ConfigFile()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := WriteDefaultConfig(configPath, cfg.Network); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}
	}

	return nil
}
