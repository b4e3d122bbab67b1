package reducer

import (
	"strconv"

	"github.com/Klingon-tech/chain-pipeline/internal/model"
	"github.com/Klingon-tech/chain-pipeline/internal/wire"
)

// PoolByStake projects pool_id -> last-write-wins total delegated stake,
// ordered by the slot of the block that reported it.
type PoolByStake struct{}

func (r *PoolByStake) Kind() string { return string(KindPoolByStake) }

func (r *PoolByStake) ReduceBlock(point model.Point, block *wire.MultiEraBlock, _ model.BlockContext, emit Emit) error {
	for _, d := range block.Delegations {
		emit(model.LastWriteWins(d.PoolID, strconv.FormatUint(d.Stake, 10), int64(point.Slot)))
	}
	return nil
}
