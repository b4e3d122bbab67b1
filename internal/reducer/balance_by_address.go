package reducer

import (
	"github.com/Klingon-tech/chain-pipeline/internal/model"
	"github.com/Klingon-tech/chain-pipeline/internal/wire"
)

// BalanceByAddress projects address -> PN-counter of net value change:
// sum(outputs) minus sum(resolved inputs).
type BalanceByAddress struct{}

func (r *BalanceByAddress) Kind() string { return string(KindBalanceByAddress) }

func (r *BalanceByAddress) ReduceBlock(_ model.Point, block *wire.MultiEraBlock, ctx model.BlockContext, emit Emit) error {
	deltas := make(map[string]int64)
	for _, tx := range block.Txs {
		for _, out := range tx.Outputs {
			deltas[out.Address] += int64(out.Value)
		}
		for _, in := range tx.Inputs {
			resolved, ok := ctx.Resolve(model.TxoRef{TxHash: in.TxHash, Index: in.Index})
			if !ok {
				return ErrContextMiss
			}
			deltas[resolved.Address] -= int64(resolved.Value)
		}
	}
	for addr, delta := range deltas {
		if delta != 0 {
			emit(model.PNCounter(addr, delta))
		}
	}
	return nil
}
