package storepipe

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Klingon-tech/chain-pipeline/internal/crosscut"
	"github.com/Klingon-tech/chain-pipeline/internal/model"
	"github.com/Klingon-tech/chain-pipeline/internal/stage"
)

// Worker applies the ordered CRDT command stream the reducer stage produces
// against a Store, one command at a time, and persists the resume cursor on
// every BlockFinished.
type Worker struct {
	Store Store
	Input <-chan model.CRDTCommand
	Log   zerolog.Logger
}

func (w *Worker) Name() string { return "storage" }

func (w *Worker) Bootstrap(context.Context) error { return nil }

func (w *Worker) Work(ctx context.Context) (stage.Outcome, error) {
	cmd, ok := <-w.Input
	if !ok {
		return stage.Done, nil
	}
	if err := w.apply(ctx, cmd); err != nil {
		return stage.Partial, fmt.Errorf("storage: %w", err)
	}
	return stage.Partial, nil
}

// apply maps one CRDTCommand onto at most one Store call (BlockStarting is
// logged and makes none). Grown-only and
// two-phase set adds land on the same operation as a plain set add: the
// distinction only matters on the remove side, where a two-phase removal
// writes a tombstone member to a companion ".ts" set instead of deleting
// anything.
func (w *Worker) apply(ctx context.Context, cmd model.CRDTCommand) error {
	switch cmd.Kind {
	case model.BlockStartingCmd:
		w.Log.Debug().Str("point", cmd.Point.String()).Msg("block starting")
		return nil
	case model.GrowOnlySetAddCmd, model.TwoPhaseSetAddCmd, model.SetAddCmd:
		return w.Store.SetAdd(ctx, cmd.Key, cmd.Member)
	case model.TwoPhaseSetRemoveCmd:
		return w.Store.SetAdd(ctx, cmd.Key+".ts", cmd.Member)
	case model.SetRemoveCmd:
		return w.Store.SetRemove(ctx, cmd.Key, cmd.Member)
	case model.LastWriteWinsCmd:
		return w.Store.SortedSetAdd(ctx, cmd.Key, cmd.Member, cmd.Score)
	case model.AnyWriteWinsCmd:
		return w.Store.Set(ctx, cmd.Key, cmd.Member)
	case model.PNCounterCmd:
		return w.Store.IncrBy(ctx, cmd.Key, cmd.Delta)
	case model.BlockFinishedCmd:
		cursor := crosscut.FormatPointArg(cmd.Point)
		if err := w.Store.Set(ctx, cursorKey, cursor); err != nil {
			return err
		}
		w.Log.Info().Str("cursor", cursor).Msg("new cursor saved")
		return nil
	default:
		return fmt.Errorf("unknown command kind %v", cmd.Kind)
	}
}

func (w *Worker) Teardown() error { return nil }
