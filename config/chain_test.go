package config

import "testing"

func TestChainWellKnownInfoForNetwork(t *testing.T) {
	mainnet := ChainWellKnownInfoFor(Mainnet)
	testnet := ChainWellKnownInfoFor(Testnet)

	if mainnet.NetworkMagic == testnet.NetworkMagic {
		t.Fatalf("expected mainnet and testnet to carry distinct network magics")
	}
}

func TestChainWellKnownInfoForUnknownNetworkFallsBackToMainnet(t *testing.T) {
	got := ChainWellKnownInfoFor(NetworkType("bogus"))
	want := ChainWellKnownInfoFor(Mainnet)
	if got.NetworkMagic != want.NetworkMagic {
		t.Fatalf("expected unrecognized network to fall back to mainnet params")
	}
}
