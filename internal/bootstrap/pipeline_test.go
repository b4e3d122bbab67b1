package bootstrap

import (
	"context"
	"errors"
	"testing"

	"github.com/Klingon-tech/chain-pipeline/config"
	"github.com/Klingon-tech/chain-pipeline/internal/model"
	"github.com/Klingon-tech/chain-pipeline/internal/reducer"
	"github.com/Klingon-tech/chain-pipeline/internal/wire"
)

func TestReducerConfigsCarriesWatchAddressesToEveryKind(t *testing.T) {
	cfg := config.ReducersConfig{
		Kinds:          []string{"UtxoByAddress", "TotalTransactionsCountByAddresses"},
		WatchAddresses: []string{"addr1xyz"},
	}
	got := reducerConfigs(cfg)
	if len(got) != 2 {
		t.Fatalf("expected 2 configs, got %d", len(got))
	}
	for _, c := range got {
		if len(c.Addresses) != 1 || c.Addresses[0] != "addr1xyz" {
			t.Fatalf("expected watch address to be threaded onto %s, got %v", c.Kind, c.Addresses)
		}
	}
}

func TestReducerConfigsBuildIntoAWorkingBank(t *testing.T) {
	cfg := config.ReducersConfig{Kinds: []string{"UtxoByAddress", "PointByTx"}}
	bank, err := reducer.Build(reducerConfigs(cfg), config.ChainWellKnownInfoFor(config.Mainnet))
	if err != nil {
		t.Fatalf("reducer.Build: %v", err)
	}
	if len(bank) != 2 {
		t.Fatalf("expected a 2-reducer bank, got %d", len(bank))
	}
}

type closingPeer struct{ closed bool }

func (p *closingPeer) Intersect(context.Context, []model.Point) (model.Point, error) {
	return model.OriginPoint(), nil
}
func (p *closingPeer) RequestNext(context.Context) (wire.Event, error) {
	return wire.Event{Kind: wire.EventDone}, nil
}
func (p *closingPeer) Tip(context.Context) (model.Tip, error) { return model.Tip{}, nil }
func (p *closingPeer) Close() error                           { p.closed = true; return nil }

type closingStore struct{ closed bool }

func (s *closingStore) SetAdd(context.Context, string, string) error      { return nil }
func (s *closingStore) SetRemove(context.Context, string, string) error   { return nil }
func (s *closingStore) SortedSetAdd(context.Context, string, string, int64) error {
	return nil
}
func (s *closingStore) Set(context.Context, string, string) error       { return nil }
func (s *closingStore) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (s *closingStore) IncrBy(context.Context, string, int64) error     { return nil }
func (s *closingStore) Close() error                                    { s.closed = true; return nil }

func TestPipelineCloseClosesPeerAndStore(t *testing.T) {
	peer := &closingPeer{}
	store := &closingStore{}
	p := &Pipeline{peer: peer, store: store}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !peer.closed || !store.closed {
		t.Fatalf("expected both peer and store to be closed")
	}
}

func TestPipelineClosePropagatesPeerErrorFirst(t *testing.T) {
	p := &Pipeline{peer: failingPeer{}, store: &closingStore{}}
	if err := p.Close(); !errors.Is(err, errPeerClose) {
		t.Fatalf("expected peer close error, got %v", err)
	}
}

type failingPeer struct{}

func (failingPeer) Intersect(context.Context, []model.Point) (model.Point, error) {
	return model.Point{}, nil
}
func (failingPeer) RequestNext(context.Context) (wire.Event, error) { return wire.Event{}, nil }
func (failingPeer) Tip(context.Context) (model.Tip, error)          { return model.Tip{}, nil }
func (failingPeer) Close() error                                    { return errPeerClose }

var errPeerClose = errors.New("peer close failed")
