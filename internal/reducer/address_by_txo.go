package reducer

import (
	"fmt"

	"github.com/Klingon-tech/chain-pipeline/internal/model"
	"github.com/Klingon-tech/chain-pipeline/internal/wire"
)

// AddressByTxo is the reverse index of UtxoByAddress: tx_hash#index -> the
// address that owns it.
type AddressByTxo struct{}

func (r *AddressByTxo) Kind() string { return string(KindAddressByTxo) }

func (r *AddressByTxo) ReduceBlock(_ model.Point, block *wire.MultiEraBlock, _ model.BlockContext, emit Emit) error {
	for _, tx := range block.Txs {
		for i, out := range tx.Outputs {
			emit(model.AnyWriteWins(fmt.Sprintf("%s#%d", tx.Hash, i), out.Address))
		}
	}
	return nil
}
