package chainsync

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Klingon-tech/chain-pipeline/internal/crosscut"
	"github.com/Klingon-tech/chain-pipeline/internal/model"
	"github.com/Klingon-tech/chain-pipeline/internal/stage"
	"github.com/Klingon-tech/chain-pipeline/internal/wire"
)

func TestWorkerConfirmsAtMinDepth(t *testing.T) {
	origin := model.OriginPoint()
	events := []wire.Event{
		wire.RollForwardEvent(0, 1, []byte{1}, model.Tip{}),
		wire.RollForwardEvent(0, 2, []byte{2}, model.Tip{}),
		wire.RollForwardEvent(0, 3, []byte{3}, model.Tip{}),
	}
	peer := wire.NewMemPeer([]model.Point{origin}, events, model.Tip{})

	out := make(chan model.SyncEvent, 10)
	w := &Worker{
		Peer:      peer,
		MinDepth:  2,
		Intersect: crosscut.IntersectConfig{Kind: crosscut.IntersectOrigin},
		Output:    out,
		Log:       zerolog.Nop(),
	}

	ctx := context.Background()
	if err := w.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	for i := 0; i < len(events); i++ {
		if _, err := w.Work(ctx); err != nil {
			t.Fatalf("Work: %v", err)
		}
	}

	close(out)
	var confirmed []model.SyncEvent
	for ev := range out {
		confirmed = append(confirmed, ev)
	}
	if len(confirmed) != 1 {
		t.Fatalf("expected 1 confirmed point at min_depth=2 after 3 headers, got %d", len(confirmed))
	}
	if confirmed[0].Point.Slot != 1 {
		t.Fatalf("expected slot 1 confirmed first, got %d", confirmed[0].Point.Slot)
	}
}

func TestWorkerIntersectionNotFound(t *testing.T) {
	peer := wire.NewMemPeer([]model.Point{model.NewPoint(99, []byte{0x1})}, nil, model.Tip{})
	w := &Worker{
		Peer:      peer,
		Intersect: crosscut.IntersectConfig{Kind: crosscut.IntersectOrigin},
		Output:    make(chan model.SyncEvent, 1),
		Log:       zerolog.Nop(),
	}
	if err := w.Bootstrap(context.Background()); err == nil {
		t.Fatalf("expected intersection failure when peer knows no offered point")
	}
}

func TestWorkerDoneOnPeerEndOfStream(t *testing.T) {
	peer := wire.NewMemPeer([]model.Point{model.OriginPoint()}, nil, model.Tip{})
	w := &Worker{
		Peer:      peer,
		Intersect: crosscut.IntersectConfig{Kind: crosscut.IntersectOrigin},
		Output:    make(chan model.SyncEvent, 1),
		Log:       zerolog.Nop(),
	}
	ctx := context.Background()
	if err := w.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	outcome, err := w.Work(ctx)
	if err != nil {
		t.Fatalf("Work: %v", err)
	}
	if outcome != stage.Done {
		t.Fatalf("expected Done outcome when peer has no more events")
	}
}
