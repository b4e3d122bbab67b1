package chainsync

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Klingon-tech/chain-pipeline/internal/crosscut"
	"github.com/Klingon-tech/chain-pipeline/internal/metrics"
	"github.com/Klingon-tech/chain-pipeline/internal/model"
	"github.com/Klingon-tech/chain-pipeline/internal/stage"
	"github.com/Klingon-tech/chain-pipeline/internal/wire"
)

// Worker drives the chain-sync mini-protocol against a Peer, buffers headers
// until they reach MinDepth, and emits confirmed points and escaped
// rollbacks to Output. It implements stage.Stage.
type Worker struct {
	Peer      wire.Peer
	MinDepth  int
	Intersect crosscut.IntersectConfig
	Cursor    crosscut.Cursor
	Output    chan<- model.SyncEvent
	Metrics   *metrics.Registry
	Log       zerolog.Logger
	Finalize  *crosscut.FinalizeConfig

	buffer     RollbackBuffer
	blockCount uint64
}

func (w *Worker) Name() string { return "chain-sync" }

func (w *Worker) Bootstrap(ctx context.Context) error {
	var tip *model.Tip
	if w.Intersect.Kind == crosscut.IntersectTip {
		t, err := w.Peer.Tip(ctx)
		if err != nil {
			return fmt.Errorf("chain-sync: querying peer tip: %w", err)
		}
		tip = &t
	}

	candidates := w.Intersect.KnownPoints(w.Cursor, tip)
	w.Log.Debug().Interface("candidates", candidates).Msg("offering intersection points")

	accepted, err := w.Peer.Intersect(ctx, candidates)
	if err != nil {
		return fmt.Errorf("chain-sync: %w", crosscut.ErrIntersectionNotFound)
	}

	w.Log.Info().Str("point", accepted.String()).Msg("intersection established")
	return nil
}

func (w *Worker) Work(ctx context.Context) (stage.Outcome, error) {
	ev, err := w.Peer.RequestNext(ctx)
	if err != nil {
		return stage.Partial, fmt.Errorf("chain-sync: request-next: %w", err)
	}

	switch ev.Kind {
	case wire.EventRollForward:
		return w.handleRollForward(ev)
	case wire.EventRollBack:
		return w.handleRollBack(ev.Point)
	case wire.EventDone:
		w.Log.Info().Msg("peer signaled end of stream")
		return stage.Done, nil
	default:
		return stage.Partial, fmt.Errorf("chain-sync: unknown event kind %d", ev.Kind)
	}
}

func (w *Worker) handleRollForward(ev wire.Event) (stage.Outcome, error) {
	point, err := wire.DecodeHeader(ev.Header)
	if err != nil {
		return stage.Partial, fmt.Errorf("chain-sync: %w", err)
	}

	w.Log.Info().Str("point", point.String()).Msg("rolling forward")
	w.buffer.RollForward(point)

	ready := w.buffer.PopWithDepth(w.MinDepth)
	w.Log.Debug().Int("count", len(ready)).Msg("points reached min_depth")

	for _, p := range ready {
		w.Output <- model.NewSyncRollForward(p)
		w.blockCount++
		if w.Metrics != nil {
			w.Metrics.BlockCount.Inc()
		}
		if w.Finalize.ShouldFinalize(p, w.blockCount) {
			return stage.Done, nil
		}
	}

	if w.Metrics != nil && !ev.Tip.Point.Origin {
		w.Metrics.ChainTip.Set(float64(ev.Tip.Point.Slot))
	}

	return stage.Partial, nil
}

func (w *Worker) handleRollBack(point model.Point) (stage.Outcome, error) {
	w.Log.Info().Str("point", point.String()).Msg("rolling back")

	switch w.buffer.RollBack(point) {
	case Handled:
		w.Log.Debug().Msg("rollback absorbed within buffer")
	case OutOfScope:
		w.Log.Debug().Msg("rollback out of buffer scope, forwarding downstream")
		w.Output <- model.NewSyncRollBack(point)
	}

	return stage.Partial, nil
}

func (w *Worker) Teardown() error {
	return w.Peer.Close()
}
