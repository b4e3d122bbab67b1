package reducer

import (
	"github.com/Klingon-tech/chain-pipeline/internal/model"
	"github.com/Klingon-tech/chain-pipeline/internal/wire"
)

// TransactionsCountByAddress projects address -> PN-counter of transactions
// touching it, counting each address once per transaction regardless of how
// many inputs or outputs it appears in.
type TransactionsCountByAddress struct{}

func (r *TransactionsCountByAddress) Kind() string {
	return string(KindTransactionsCountByAddress)
}

func (r *TransactionsCountByAddress) ReduceBlock(_ model.Point, block *wire.MultiEraBlock, ctx model.BlockContext, emit Emit) error {
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
			emit(model.PNCounter(addr, 1))
		}
	}
	return nil
}
