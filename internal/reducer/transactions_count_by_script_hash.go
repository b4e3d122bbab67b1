package reducer

import (
	"github.com/Klingon-tech/chain-pipeline/internal/model"
	"github.com/Klingon-tech/chain-pipeline/internal/wire"
)

// TransactionsCountByScriptHash projects script_hash -> PN-counter of
// transactions referencing an output locked by that script, counting each
// script hash once per transaction. Supplements the named reducer table
// with the broader set original_source's unstable reducer bank carries.
type TransactionsCountByScriptHash struct{}

func (r *TransactionsCountByScriptHash) Kind() string {
	return string(KindTransactionsCountByScriptHash)
}

func (r *TransactionsCountByScriptHash) ReduceBlock(_ model.Point, block *wire.MultiEraBlock, _ model.BlockContext, emit Emit) error {
	for _, tx := range block.Txs {
		seen := make(map[string]bool)
		for _, out := range tx.Outputs {
			if out.ScriptHash != "" {
				seen[out.ScriptHash] = true
			}
		}
		for hash := range seen {
			emit(model.PNCounter(hash, 1))
		}
	}
	return nil
}
