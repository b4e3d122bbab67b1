package config

// DefaultMainnet returns the default pipeline configuration for mainnet.
func DefaultMainnet() *Config {
	return &Config{
		Network: Mainnet,
		DataDir: DefaultDataDir(),
		Peer: PeerConfig{
			Addr: "relay.mainnet.example:3001",
		},
		Intersect: IntersectConfig{
			Policy:   "tip",
			MinDepth: 6,
		},
		Finalize: FinalizeConfig{},
		Reducers: ReducersConfig{
			Kinds: []string{
				"UtxoByAddress",
				"PointByTx",
				"PoolByStake",
			},
		},
		Storage: StorageConfig{
			ConnectionParams: "redis://127.0.0.1:6379/0",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Addr:    "127.0.0.1",
			Port:    9187,
		},
		Log: LogConfig{
			Level: "info",
			JSON:  false,
		},
	}
}

// DefaultTestnet returns the default pipeline configuration for testnet.
func DefaultTestnet() *Config {
	cfg := DefaultMainnet()
	cfg.Network = Testnet
	cfg.Peer.Addr = "relay.testnet.example:3001"
	cfg.Storage.ConnectionParams = "redis://127.0.0.1:6379/1"
	cfg.Metrics.Port = 9188
	return cfg
}

// Default returns the default pipeline configuration for the given network.
func Default(network NetworkType) *Config {
	switch network {
	case Testnet:
		return DefaultTestnet()
	default:
		return DefaultMainnet()
	}
}
