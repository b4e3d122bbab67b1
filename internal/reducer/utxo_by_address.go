package reducer

import (
	"fmt"

	"github.com/Klingon-tech/chain-pipeline/internal/model"
	"github.com/Klingon-tech/chain-pipeline/internal/wire"
)

// UtxoByAddress projects address -> set of tx_hash#index currently unspent.
// Consumed outputs are resolved via the block context and removed from the
// owning address's set.
type UtxoByAddress struct{}

func (r *UtxoByAddress) Kind() string { return string(KindUtxoByAddress) }

func (r *UtxoByAddress) ReduceBlock(_ model.Point, block *wire.MultiEraBlock, ctx model.BlockContext, emit Emit) error {
	for _, tx := range block.Txs {
		for i, out := range tx.Outputs {
			emit(model.SetAdd(out.Address, fmt.Sprintf("%s#%d", tx.Hash, i)))
		}
		for _, in := range tx.Inputs {
			ref := model.TxoRef{TxHash: in.TxHash, Index: in.Index}
			resolved, ok := ctx.Resolve(ref)
			if !ok {
				return fmt.Errorf("utxo_by_address: %w: %s", ErrContextMiss, ref)
			}
			emit(model.SetRemove(resolved.Address, ref.String()))
		}
	}
	return nil
}
