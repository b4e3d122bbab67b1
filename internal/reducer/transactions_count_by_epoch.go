package reducer

import (
	"fmt"

	"github.com/Klingon-tech/chain-pipeline/internal/crosscut"
	"github.com/Klingon-tech/chain-pipeline/internal/model"
	"github.com/Klingon-tech/chain-pipeline/internal/wire"
)

// TransactionsCountByEpoch projects epoch -> PN-counter of transactions seen
// in that epoch.
type TransactionsCountByEpoch struct {
	Chain *crosscut.ChainWellKnownInfo
}

func (r *TransactionsCountByEpoch) Kind() string { return string(KindTransactionsCountByEpoch) }

func (r *TransactionsCountByEpoch) ReduceBlock(point model.Point, block *wire.MultiEraBlock, _ model.BlockContext, emit Emit) error {
	if len(block.Txs) == 0 {
		return nil
	}
	epoch := r.Chain.EpochForSlot(point.Slot)
	key := fmt.Sprintf("transactions_count_by_epoch.%d", epoch)
	emit(model.PNCounter(key, int64(len(block.Txs))))
	return nil
}
