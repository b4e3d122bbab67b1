package reducer

import (
	"errors"
	"testing"

	"github.com/Klingon-tech/chain-pipeline/internal/crosscut"
	"github.com/Klingon-tech/chain-pipeline/internal/model"
	"github.com/Klingon-tech/chain-pipeline/internal/wire"
)

// blockWithUnresolvedInput builds a one-transaction block whose single input
// has no corresponding entry in an empty model.BlockContext.
func blockWithUnresolvedInput() *wire.MultiEraBlock {
	return &wire.MultiEraBlock{
		Slot: 1,
		Txs: []wire.Tx{
			{
				Hash:    "tx1",
				Inputs:  []wire.TxInput{{TxHash: "prev", Index: 0}},
				Outputs: []wire.TxOutput{{Address: "addr1", Value: 5}},
			},
		},
	}
}

func TestTransactionsCountByAddressReturnsErrContextMissOnUnresolvedInput(t *testing.T) {
	r := &TransactionsCountByAddress{}
	err := r.ReduceBlock(model.NewPoint(1, []byte{0x01}), blockWithUnresolvedInput(), model.BlockContext{}, func(model.CRDTCommand) {})
	if !errors.Is(err, ErrContextMiss) {
		t.Fatalf("expected ErrContextMiss, got %v", err)
	}
}

func TestTotalTransactionsCountByAddressesReturnsErrContextMissOnUnresolvedInput(t *testing.T) {
	r := &TotalTransactionsCountByAddresses{Addresses: []string{"addr1"}}
	err := r.ReduceBlock(model.NewPoint(1, []byte{0x01}), blockWithUnresolvedInput(), model.BlockContext{}, func(model.CRDTCommand) {})
	if !errors.Is(err, ErrContextMiss) {
		t.Fatalf("expected ErrContextMiss, got %v", err)
	}
}

func TestTransactionsCountByAddressByEpochReturnsErrContextMissOnUnresolvedInput(t *testing.T) {
	r := &TransactionsCountByAddressByEpoch{Chain: crosscut.MainnetWellKnownInfo()}
	err := r.ReduceBlock(model.NewPoint(1, []byte{0x01}), blockWithUnresolvedInput(), model.BlockContext{}, func(model.CRDTCommand) {})
	if !errors.Is(err, ErrContextMiss) {
		t.Fatalf("expected ErrContextMiss, got %v", err)
	}
}
