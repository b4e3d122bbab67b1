package crosscut

import "github.com/Klingon-tech/chain-pipeline/internal/model"

// FinalizeConfig lets an operator bound how long the pipeline runs: by a
// maximum number of confirmed blocks, by a target point, or both. A nil
// FinalizeConfig means run forever.
type FinalizeConfig struct {
	MaxBlocks   uint64 // 0 means unbounded
	UntilPoint  *model.Point
}

// ShouldFinalize reports whether the pipeline should stop after processing
// the given point, having now confirmed blockCount blocks in total.
func (f *FinalizeConfig) ShouldFinalize(point model.Point, blockCount uint64) bool {
	if f == nil {
		return false
	}
	if f.MaxBlocks > 0 && blockCount >= f.MaxBlocks {
		return true
	}
	if f.UntilPoint != nil && point.Equal(*f.UntilPoint) {
		return true
	}
	return false
}
