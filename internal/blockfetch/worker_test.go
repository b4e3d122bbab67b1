package blockfetch

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Klingon-tech/chain-pipeline/internal/model"
)

func TestWorkerForwardsRollForward(t *testing.T) {
	point := model.NewPoint(1, []byte{0xaa})
	src := NewMemSource()
	src.Put(point, []byte("block-bytes"), model.BlockContext{})

	in := make(chan model.SyncEvent, 1)
	out := make(chan model.EnrichedBlockPayload, 1)
	w := &Worker{Source: src, Input: in, Output: out, Log: zerolog.Nop()}

	in <- model.NewSyncRollForward(point)
	if _, err := w.Work(context.Background()); err != nil {
		t.Fatalf("Work: %v", err)
	}

	payload := <-out
	if payload.Kind != model.RollForwardPayload {
		t.Fatalf("expected RollForwardPayload")
	}
	if string(payload.Block) != "block-bytes" {
		t.Fatalf("got block %q, want %q", payload.Block, "block-bytes")
	}
}

func TestWorkerForwardsRollBack(t *testing.T) {
	point := model.NewPoint(1, []byte{0xaa})
	in := make(chan model.SyncEvent, 1)
	out := make(chan model.EnrichedBlockPayload, 1)
	w := &Worker{Source: NewMemSource(), Input: in, Output: out, Log: zerolog.Nop()}

	in <- model.NewSyncRollBack(point)
	if _, err := w.Work(context.Background()); err != nil {
		t.Fatalf("Work: %v", err)
	}

	payload := <-out
	if payload.Kind != model.RollBackPayload {
		t.Fatalf("expected RollBackPayload")
	}
	if !payload.Point.Equal(point) {
		t.Fatalf("got point %v, want %v", payload.Point, point)
	}
}
