package reducer

import (
	"fmt"

	"github.com/Klingon-tech/chain-pipeline/internal/crosscut"
	"github.com/Klingon-tech/chain-pipeline/internal/model"
	"github.com/Klingon-tech/chain-pipeline/internal/wire"
)

// TransactionsCountByAddressByEpoch projects "address.epoch" -> PN-counter.
type TransactionsCountByAddressByEpoch struct {
	Chain *crosscut.ChainWellKnownInfo
}

func (r *TransactionsCountByAddressByEpoch) Kind() string {
	return string(KindTransactionsCountByAddressByEpoch)
}

func (r *TransactionsCountByAddressByEpoch) ReduceBlock(point model.Point, block *wire.MultiEraBlock, ctx model.BlockContext, emit Emit) error {
	epoch := r.Chain.EpochForSlot(point.Slot)
	for _, tx := range block.Txs {
		seen := make(map[string]bool)
		for _, out := range tx.Outputs {
			seen[out.Address] = true
		}
		for _, in := range tx.Inputs {
			resolved, ok := ctx.Resolve(model.TxoRef{TxHash: in.TxHash, Index: in.Index})
			if !ok {
				return ErrContextMiss
			}
			seen[resolved.Address] = true
		}
		for addr := range seen {
			emit(model.PNCounter(fmt.Sprintf("%s.%d", addr, epoch), 1))
		}
	}
	return nil
}
