// Package bootstrap wires the four pipeline stages together and supervises
// them as a group: one goroutine per stage, bounded channels between them,
// first error wins.
package bootstrap

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Klingon-tech/chain-pipeline/config"
	"github.com/Klingon-tech/chain-pipeline/internal/blockfetch"
	"github.com/Klingon-tech/chain-pipeline/internal/chainsync"
	"github.com/Klingon-tech/chain-pipeline/internal/log"
	"github.com/Klingon-tech/chain-pipeline/internal/metrics"
	"github.com/Klingon-tech/chain-pipeline/internal/model"
	"github.com/Klingon-tech/chain-pipeline/internal/reducer"
	"github.com/Klingon-tech/chain-pipeline/internal/stage"
	"github.com/Klingon-tech/chain-pipeline/internal/storepipe"
	"github.com/Klingon-tech/chain-pipeline/internal/wire"
)

// ChannelCapacity bounds every inter-stage channel. A full channel blocks
// the upstream stage's Work call, which is the pipeline's only backpressure
// mechanism.
const ChannelCapacity = 64

// Pipeline holds the four constructed stages and the channels between them,
// ready to Run.
type Pipeline struct {
	ChainSync  *chainsync.Worker
	BlockFetch *blockfetch.Worker
	Reducers   *reducer.Worker
	Storage    *storepipe.Worker

	Metrics *metrics.Registry

	peer  wire.Peer
	store storepipe.Store
}

// Build constructs a Pipeline from configuration. It opens the storage
// connection and dials the chain-sync peer, reads back any persisted
// cursor, and wires the three inter-stage channels.
//
// Stages are constructed leaves-first: storage has no dependency on the
// others, reducers depend on storage's input channel, block-fetch depends
// on reducers', and chain-sync depends on block-fetch's and the cursor
// storage already holds.
func Build(ctx context.Context, cfg *config.Config) (*Pipeline, error) {
	reg := metrics.NewRegistry()

	store, err := storepipe.DialRedisStore(cfg.Storage.ConnectionParams)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	cursor, err := storepipe.ReadCursor(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: reading persisted cursor: %w", err)
	}

	chain := config.ChainWellKnownInfoFor(cfg.Network)

	bank, err := reducer.Build(reducerConfigs(cfg.Reducers), chain)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	intersect, err := config.BuildIntersectConfig(cfg.Intersect)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	finalize, err := config.BuildFinalizeConfig(cfg.Finalize)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	peer, err := wire.DialTCPPeer(ctx, cfg.Peer.Addr, chain.NetworkMagic)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	commands := make(chan model.CRDTCommand, ChannelCapacity)
	payloads := make(chan model.EnrichedBlockPayload, ChannelCapacity)
	syncEvents := make(chan model.SyncEvent, ChannelCapacity)

	storageWorker := &storepipe.Worker{
		Store: store,
		Input: commands,
		Log:   log.Storage,
	}

	reducerWorker := &reducer.Worker{
		Bank:    bank,
		Input:   payloads,
		Output:  commands,
		Metrics: reg,
		Log:     log.Reducers,
	}

	blockFetchWorker := &blockfetch.Worker{
		Source: blockfetch.NewMemSource(),
		Input:  syncEvents,
		Output: payloads,
		Log:    log.ChainSync,
	}

	chainSyncWorker := &chainsync.Worker{
		Peer:      peer,
		MinDepth:  int(cfg.Intersect.MinDepth),
		Intersect: intersect,
		Cursor:    cursor,
		Output:    syncEvents,
		Metrics:   reg,
		Log:       log.ChainSync,
		Finalize:  finalize,
	}

	return &Pipeline{
		ChainSync:  chainSyncWorker,
		BlockFetch: blockFetchWorker,
		Reducers:   reducerWorker,
		Storage:    storageWorker,
		Metrics:    reg,
		peer:       peer,
		store:      store,
	}, nil
}

// Run drives all four stages concurrently under a single errgroup: the
// first stage to return an error cancels the shared context, which unwinds
// the rest through their own blocking reads.
func (p *Pipeline) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	stages := []stage.Stage{p.Storage, p.Reducers, p.BlockFetch, p.ChainSync}
	for _, s := range stages {
		s := s
		g.Go(func() error {
			if err := stage.Run(ctx, s); err != nil && ctx.Err() == nil {
				return fmt.Errorf("%s: %w", s.Name(), err)
			}
			return nil
		})
	}

	return g.Wait()
}

// Close releases the peer connection and storage client. Call after Run
// returns, regardless of outcome.
func (p *Pipeline) Close() error {
	peerErr := p.peer.Close()
	storeErr := p.store.(interface{ Close() error }).Close()
	if peerErr != nil {
		return peerErr
	}
	return storeErr
}

func reducerConfigs(cfg config.ReducersConfig) []reducer.Config {
	out := make([]reducer.Config, 0, len(cfg.Kinds))
	for _, k := range cfg.Kinds {
		out = append(out, reducer.Config{Kind: reducer.Kind(k), Addresses: cfg.WatchAddresses})
	}
	return out
}
