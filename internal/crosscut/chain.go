// Package crosscut holds the small pieces of configuration that more than
// one stage needs to agree on: chain well-known parameters, the intersection
// policy chain-sync bootstraps from, cursor string encoding, and the
// optional finalize policy that lets the pipeline stop itself.
package crosscut

// ChainWellKnownInfo carries the network parameters a chain-sync bootstrap
// needs to talk about eras and epochs without hardcoding a single network.
type ChainWellKnownInfo struct {
	NetworkMagic uint32

	ByronEpochLength uint64
	ByronSlotLength  uint64
	// ByronKnownSlot is the last slot of the Byron era: slots at or before
	// it fall under ByronEpochLength, slots after under ShelleyEpochLength.
	ByronKnownSlot uint64

	ShelleyGenesisHash string
	ShelleyEpochLength uint64
}

// EpochForSlot derives the epoch a slot belongs to from the Byron/Shelley
// era boundary at ByronKnownSlot, rather than trusting a decoded block's own
// epoch field.
func (c *ChainWellKnownInfo) EpochForSlot(slot uint64) uint64 {
	if slot <= c.ByronKnownSlot {
		return slot / c.ByronEpochLength
	}
	byronEpochs := c.ByronKnownSlot / c.ByronEpochLength
	return byronEpochs + (slot-c.ByronKnownSlot)/c.ShelleyEpochLength
}

// MainnetWellKnownInfo returns the hardcoded well-known parameters for the
// default network.
func MainnetWellKnownInfo() *ChainWellKnownInfo {
	return &ChainWellKnownInfo{
		NetworkMagic:       764824073,
		ByronEpochLength:   21600,
		ByronSlotLength:    20,
		ByronKnownSlot:     4492800,
		ShelleyGenesisHash: "1a3be38bcbb7911969283716ad7aa550250226b76a61fc51cc9a9a35d9276d81",
		ShelleyEpochLength: 432000,
	}
}

// TestnetWellKnownInfo returns the well-known parameters for the test
// network.
func TestnetWellKnownInfo() *ChainWellKnownInfo {
	return &ChainWellKnownInfo{
		NetworkMagic:       1097911063,
		ByronEpochLength:   21600,
		ByronSlotLength:    20,
		ByronKnownSlot:     1598400,
		ShelleyGenesisHash: "849a1764f152e1b09c89c0dfdbcbdd38d711d1fec2db5dfa0f87cf2737d18e5a",
		ShelleyEpochLength: 432000,
	}
}
