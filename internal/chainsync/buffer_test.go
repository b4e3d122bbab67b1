package chainsync

import (
	"testing"

	"github.com/Klingon-tech/chain-pipeline/internal/model"
)

func h(slot uint64) model.Point {
	return model.NewPoint(slot, []byte{byte(slot)})
}

func TestPopWithDepthPreservesFIFOAndDepth(t *testing.T) {
	var buf RollbackBuffer
	for _, slot := range []uint64{1, 2, 3, 4, 5} {
		buf.RollForward(h(slot))
	}

	ready := buf.PopWithDepth(2)
	var gotSlots []uint64
	for _, p := range ready {
		gotSlots = append(gotSlots, p.Slot)
	}
	want := []uint64{1, 2, 3}
	if len(gotSlots) != len(want) {
		t.Fatalf("got %v, want %v", gotSlots, want)
	}
	for i := range want {
		if gotSlots[i] != want[i] {
			t.Fatalf("got %v, want %v", gotSlots, want)
		}
	}
	if buf.Len() != 2 {
		t.Fatalf("buffer should retain 2 points behind depth 2, has %d", buf.Len())
	}
}

func TestMinDepthZeroConfirmsImmediately(t *testing.T) {
	var buf RollbackBuffer
	buf.RollForward(h(1))
	ready := buf.PopWithDepth(0)
	if len(ready) != 1 {
		t.Fatalf("min_depth=0 should confirm every header immediately, got %d", len(ready))
	}
}

func TestShallowReorgAbsorbed(t *testing.T) {
	var buf RollbackBuffer
	minDepth := 6
	var confirmed []model.Point
	for _, slot := range []uint64{1, 2, 3, 4, 5} {
		buf.RollForward(h(slot))
		confirmed = append(confirmed, buf.PopWithDepth(minDepth)...)
	}
	if len(confirmed) != 0 {
		t.Fatalf("expected no confirmed points with min_depth=6 and only 5 headers, got %d", len(confirmed))
	}

	effect := buf.RollBack(h(3))
	if effect != Handled {
		t.Fatalf("rollback to a buffered point must be Handled")
	}
	if buf.Len() != 3 {
		t.Fatalf("buffer should retain h1,h2,h3 after rollback to h3, has %d", buf.Len())
	}
}

func TestDeepReorgSurfaces(t *testing.T) {
	var buf RollbackBuffer
	minDepth := 2
	var confirmed []model.Point
	for _, slot := range []uint64{1, 2, 3, 4, 5} {
		buf.RollForward(h(slot))
		confirmed = append(confirmed, buf.PopWithDepth(minDepth)...)
	}
	if len(confirmed) != 3 {
		t.Fatalf("expected h1,h2,h3 confirmed with min_depth=2, got %d", len(confirmed))
	}

	outOfScopePoint := h(0)
	effect := buf.RollBack(outOfScopePoint)
	if effect != OutOfScope {
		t.Fatalf("rollback to a point predating the buffer must be OutOfScope")
	}
	if buf.Len() != 0 {
		t.Fatalf("buffer must be cleared after an out-of-scope rollback")
	}
}
