package model

// PayloadKind discriminates an EnrichedBlockPayload.
type PayloadKind int

const (
	RollForwardPayload PayloadKind = iota
	RollBackPayload
)

// EnrichedBlockPayload is what block-fetch hands to the reducer stage: either
// a block body plus its resolution context, or a downstream-visible reorg.
type EnrichedBlockPayload struct {
	Kind    PayloadKind
	Point   Point
	Block   []byte
	Context BlockContext
}

// RollForward builds the block-delivery variant of EnrichedBlockPayload.
func RollForward(point Point, block []byte, ctx BlockContext) EnrichedBlockPayload {
	return EnrichedBlockPayload{Kind: RollForwardPayload, Point: point, Block: block, Context: ctx}
}

// RollBack builds the reorg variant of EnrichedBlockPayload.
func RollBack(point Point) EnrichedBlockPayload {
	return EnrichedBlockPayload{Kind: RollBackPayload, Point: point}
}

// SyncEventKind discriminates a SyncEvent.
type SyncEventKind int

const (
	SyncRollForward SyncEventKind = iota
	SyncRollBack
)

// SyncEvent is what chain-sync hands to block-fetch: a confirmed point ready
// for download, or a rollback that escaped the rollback buffer.
type SyncEvent struct {
	Kind  SyncEventKind
	Point Point
}

func NewSyncRollForward(p Point) SyncEvent {
	return SyncEvent{Kind: SyncRollForward, Point: p}
}

func NewSyncRollBack(p Point) SyncEvent {
	return SyncEvent{Kind: SyncRollBack, Point: p}
}
