package chainsync

import "github.com/Klingon-tech/chain-pipeline/internal/model"

// RollbackEffect reports how a roll-back was absorbed by the buffer.
type RollbackEffect int

const (
	// Handled means the rollback point was still in the buffer; the buffer
	// was truncated and no downstream stage needs to know.
	Handled RollbackEffect = iota
	// OutOfScope means the rollback point was not found in the buffer; the
	// buffer was cleared and the rollback must propagate.
	OutOfScope
)

// RollbackBuffer is an ordered, in-memory record of headers seen but not yet
// confirmed. Its size is implicit in the confirmation depth callers request
// via PopWithDepth, so a plain slice used as a deque is sufficient; no
// linked structure is needed.
type RollbackBuffer struct {
	points []model.Point
}

// RollForward appends a newly observed point to the tail of the buffer.
func (b *RollbackBuffer) RollForward(p model.Point) {
	b.points = append(b.points, p)
}

// RollBack truncates the buffer to and including p if present, or clears it
// entirely if p is not buffered.
func (b *RollbackBuffer) RollBack(p model.Point) RollbackEffect {
	for i := len(b.points) - 1; i >= 0; i-- {
		if b.points[i].Equal(p) {
			b.points = b.points[:i+1]
			return Handled
		}
	}
	b.points = nil
	return OutOfScope
}

// PopWithDepth removes and returns, in FIFO order, every point that has at
// least depth more recent points buffered behind it. A point at buffer index
// i (0 based from the head) has len(points)-1-i points behind it, so the
// tail itself is released only when depth is 0.
func (b *RollbackBuffer) PopWithDepth(depth int) []model.Point {
	ready := len(b.points) - depth
	if ready <= 0 {
		return nil
	}
	out := make([]model.Point, ready)
	copy(out, b.points[:ready])
	b.points = b.points[ready:]
	return out
}

// Len reports how many points are currently buffered, unconfirmed.
func (b *RollbackBuffer) Len() int {
	return len(b.points)
}
