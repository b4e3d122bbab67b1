package reducer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Klingon-tech/chain-pipeline/internal/metrics"
	"github.com/Klingon-tech/chain-pipeline/internal/model"
	"github.com/Klingon-tech/chain-pipeline/internal/stage"
	"github.com/Klingon-tech/chain-pipeline/internal/wire"
)

// Worker decodes each incoming block once and runs it through the reducer
// bank in declaration order, bracketed by BlockStarting/BlockFinished.
type Worker struct {
	Bank    Bank
	Input   <-chan model.EnrichedBlockPayload
	Output  chan<- model.CRDTCommand
	Metrics *metrics.Registry
	Log     zerolog.Logger
}

func (w *Worker) Name() string { return "reducers" }

func (w *Worker) Bootstrap(context.Context) error { return nil }

func (w *Worker) Work(context.Context) (stage.Outcome, error) {
	payload, ok := <-w.Input
	if !ok {
		return stage.Done, nil
	}

	switch payload.Kind {
	case model.RollForwardPayload:
		return stage.Partial, w.reduceBlock(payload)
	case model.RollBackPayload:
		w.Log.Warn().Str("point", payload.Point.String()).Msg("rollback requested, bank not consulted")
		return stage.Partial, nil
	default:
		return stage.Partial, fmt.Errorf("reducers: unknown payload kind %d", payload.Kind)
	}
}

func (w *Worker) reduceBlock(payload model.EnrichedBlockPayload) error {
	block, err := wire.DecodeBlock(payload.Block)
	if err != nil {
		return fmt.Errorf("reducers: %w", err)
	}

	w.Output <- model.BlockStarting(payload.Point)

	emit := func(cmd model.CRDTCommand) { w.Output <- cmd }
	for _, r := range w.Bank {
		if err := r.ReduceBlock(payload.Point, block, payload.Context, emit); err != nil {
			return fmt.Errorf("reducers: %s: %w", r.Kind(), err)
		}
		if w.Metrics != nil {
			w.Metrics.OpsCount.Inc()
		}
	}

	w.Output <- model.BlockFinished(payload.Point)
	return nil
}

func (w *Worker) Teardown() error { return nil }
