package wire

import (
	"context"
	"sync"

	"github.com/Klingon-tech/chain-pipeline/internal/model"

	"github.com/Klingon-tech/chain-pipeline/internal/crosscut"
)

// MemPeer is an in-memory, scripted Peer used by tests and local demos. It
// replays a fixed sequence of events after intersection succeeds against
// whichever points it was constructed to know about.
type MemPeer struct {
	mu        sync.Mutex
	known     map[string]bool
	events    []Event
	pos       int
	tip       model.Tip
	intersect bool
}

// NewMemPeer builds a MemPeer that knows the given points (accepts them
// during Intersect) and will replay events in order on RequestNext.
func NewMemPeer(knownPoints []model.Point, events []Event, tip model.Tip) *MemPeer {
	known := make(map[string]bool, len(knownPoints))
	for _, p := range knownPoints {
		known[crosscut.FormatPointArg(p)] = true
	}
	return &MemPeer{known: known, events: events, tip: tip}
}

func (p *MemPeer) Intersect(_ context.Context, points []model.Point) (model.Point, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, candidate := range points {
		if p.known[crosscut.FormatPointArg(candidate)] {
			p.intersect = true
			return candidate, nil
		}
	}
	return model.Point{}, crosscut.ErrIntersectionNotFound
}

func (p *MemPeer) RequestNext(_ context.Context) (Event, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pos >= len(p.events) {
		return Event{Kind: EventDone}, nil
	}
	ev := p.events[p.pos]
	p.pos++
	return ev, nil
}

func (p *MemPeer) Tip(_ context.Context) (model.Tip, error) {
	return p.tip, nil
}

func (p *MemPeer) Close() error { return nil }

// RollForwardEvent builds a scripted header-delivery event for tests.
func RollForwardEvent(variant uint8, slot uint64, hash []byte, tip model.Tip) Event {
	h, err := EncodeHeader(variant, slot, hash)
	if err != nil {
		panic(err)
	}
	return Event{Kind: EventRollForward, Header: h, Tip: tip}
}

// RollBackEvent builds a scripted rollback event for tests.
func RollBackEvent(point model.Point) Event {
	return Event{Kind: EventRollBack, Point: point}
}
