package blockfetch

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Klingon-tech/chain-pipeline/internal/model"
	"github.com/Klingon-tech/chain-pipeline/internal/stage"
)

// Worker consumes confirmed points and escaped rollbacks from chain-sync and
// turns them into EnrichedBlockPayload for the reducer stage.
type Worker struct {
	Source BlockSource
	Input  <-chan model.SyncEvent
	Output chan<- model.EnrichedBlockPayload
	Log    zerolog.Logger
}

func (w *Worker) Name() string { return "block-fetch" }

func (w *Worker) Bootstrap(context.Context) error { return nil }

func (w *Worker) Work(ctx context.Context) (stage.Outcome, error) {
	ev, ok := <-w.Input
	if !ok {
		return stage.Done, nil
	}

	switch ev.Kind {
	case model.SyncRollForward:
		body, blockCtx, err := w.Source.FetchBlock(ctx, ev.Point)
		if err != nil {
			return stage.Partial, fmt.Errorf("block-fetch: %w", err)
		}
		w.Output <- model.RollForward(ev.Point, body, blockCtx)
	case model.SyncRollBack:
		w.Log.Info().Str("point", ev.Point.String()).Msg("forwarding rollback")
		w.Output <- model.RollBack(ev.Point)
	}

	return stage.Partial, nil
}

func (w *Worker) Teardown() error { return nil }
