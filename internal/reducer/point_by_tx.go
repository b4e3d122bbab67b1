package reducer

import (
	"github.com/Klingon-tech/chain-pipeline/internal/crosscut"
	"github.com/Klingon-tech/chain-pipeline/internal/model"
	"github.com/Klingon-tech/chain-pipeline/internal/wire"
)

// PointByTx projects tx_hash -> the point of the block containing it.
type PointByTx struct{}

func (r *PointByTx) Kind() string { return string(KindPointByTx) }

func (r *PointByTx) ReduceBlock(point model.Point, block *wire.MultiEraBlock, _ model.BlockContext, emit Emit) error {
	value := crosscut.FormatPointArg(point)
	for _, tx := range block.Txs {
		emit(model.AnyWriteWins(tx.Hash, value))
	}
	return nil
}
