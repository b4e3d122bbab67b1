package wire

import (
	"context"

	"github.com/Klingon-tech/chain-pipeline/internal/model"
)

// EventKind discriminates a protocol Event coming off a Peer.
type EventKind int

const (
	EventRollForward EventKind = iota
	EventRollBack
	EventDone
)

// Event is one message of the chain-sync mini-protocol as observed by the
// chain-sync stage: a new header, a rollback to a point, or end-of-stream.
type Event struct {
	Kind   EventKind
	Header HeaderContent
	Point  model.Point
	Tip    model.Tip
}

// Peer abstracts the chain-sync mini-protocol: intersect-with(points),
// request-next, await-reply. The concrete transport (a real node-to-node
// socket) is a collaborator outside this repo's scope; Peer is the seam a
// production transport plugs into, and this repo ships MemPeer and TCPPeer
// as reference implementations for tests and demos.
type Peer interface {
	// Intersect offers candidate points and returns the one the peer
	// accepted. It returns ErrIntersectionNotFound if none were accepted.
	Intersect(ctx context.Context, points []model.Point) (model.Point, error)

	// RequestNext blocks until the peer produces the next protocol event.
	RequestNext(ctx context.Context) (Event, error)

	// Tip reports the peer's current tip, used by IntersectTip bootstraps.
	Tip(ctx context.Context) (model.Tip, error)

	Close() error
}
