package reducer

import (
	"fmt"

	"github.com/Klingon-tech/chain-pipeline/internal/model"
	"github.com/Klingon-tech/chain-pipeline/internal/wire"
)

// TotalTransactionsCountByAddresses projects a PN-counter per address drawn
// from a configured watch-list, regardless of epoch. Unlike
// TransactionsCountByAddress, which tracks every address, this reducer only
// emits for addresses the operator named.
type TotalTransactionsCountByAddresses struct {
	Addresses []string
}

func (r *TotalTransactionsCountByAddresses) Kind() string {
	return string(KindTotalTransactionsCountByAddresses)
}

func (r *TotalTransactionsCountByAddresses) ReduceBlock(_ model.Point, block *wire.MultiEraBlock, ctx model.BlockContext, emit Emit) error {
	if len(r.Addresses) == 0 {
		return nil
	}
	watch := make(map[string]bool, len(r.Addresses))
	for _, a := range r.Addresses {
		watch[a] = true
	}

	for _, tx := range block.Txs {
		seen := make(map[string]bool)
		for _, out := range tx.Outputs {
			if watch[out.Address] {
				seen[out.Address] = true
			}
		}
		for _, in := range tx.Inputs {
			resolved, ok := ctx.Resolve(model.TxoRef{TxHash: in.TxHash, Index: in.Index})
			if !ok {
				return ErrContextMiss
			}
			if watch[resolved.Address] {
				seen[resolved.Address] = true
			}
		}
		for addr := range seen {
			emit(model.PNCounter(fmt.Sprintf("total_transactions_count_by_addresses.%s", addr), 1))
		}
	}
	return nil
}
