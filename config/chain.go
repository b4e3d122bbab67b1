package config

import "github.com/Klingon-tech/chain-pipeline/internal/crosscut"

// ChainWellKnownInfoFor returns the hardcoded network parameters for the
// given network, the way genesis used to be hardcoded per network.
func ChainWellKnownInfoFor(network NetworkType) *crosscut.ChainWellKnownInfo {
	if network == Testnet {
		return crosscut.TestnetWellKnownInfo()
	}
	return crosscut.MainnetWellKnownInfo()
}
