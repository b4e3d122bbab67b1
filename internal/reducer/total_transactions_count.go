package reducer

import (
	"github.com/Klingon-tech/chain-pipeline/internal/model"
	"github.com/Klingon-tech/chain-pipeline/internal/wire"
)

// totalTransactionsCountKey is the fixed key TotalTransactionsCount
// accumulates into.
const totalTransactionsCountKey = "total_transactions_count"

// TotalTransactionsCount projects a single PN-counter of every transaction
// seen across the whole chain.
type TotalTransactionsCount struct{}

func (r *TotalTransactionsCount) Kind() string { return string(KindTotalTransactionsCount) }

func (r *TotalTransactionsCount) ReduceBlock(_ model.Point, block *wire.MultiEraBlock, _ model.BlockContext, emit Emit) error {
	if len(block.Txs) == 0 {
		return nil
	}
	emit(model.PNCounter(totalTransactionsCountKey, int64(len(block.Txs))))
	return nil
}
