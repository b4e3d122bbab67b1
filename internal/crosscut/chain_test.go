package crosscut

import "testing"

func TestEpochForSlotByronEra(t *testing.T) {
	c := MainnetWellKnownInfo()
	got := c.EpochForSlot(c.ByronEpochLength * 3)
	if got != 3 {
		t.Fatalf("expected epoch 3, got %d", got)
	}
}

func TestEpochForSlotAtByronBoundary(t *testing.T) {
	c := MainnetWellKnownInfo()
	got := c.EpochForSlot(c.ByronKnownSlot)
	want := c.ByronKnownSlot / c.ByronEpochLength
	if got != want {
		t.Fatalf("expected boundary slot to resolve to last byron epoch %d, got %d", want, got)
	}
}

func TestEpochForSlotShelleyEra(t *testing.T) {
	c := MainnetWellKnownInfo()
	byronEpochs := c.ByronKnownSlot / c.ByronEpochLength
	got := c.EpochForSlot(c.ByronKnownSlot + c.ShelleyEpochLength*2 + 1)
	if got != byronEpochs+2 {
		t.Fatalf("expected epoch %d, got %d", byronEpochs+2, got)
	}
}
