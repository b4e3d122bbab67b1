// Package blockfetch implements the block-fetch collaborator: turning
// confirmed points into enriched block payloads. The concrete download
// protocol is a pluggable BlockSource so the worker itself stays agnostic to
// how bytes are actually retrieved.
package blockfetch

import (
	"context"
	"fmt"

	"github.com/Klingon-tech/chain-pipeline/internal/model"
)

// BlockSource downloads a block body and resolves every output its inputs
// consume. A missing resolution for a consumed input is a bug in the
// source, not something the reducer stage should paper over (see
// ErrContextMiss at the point of use).
type BlockSource interface {
	FetchBlock(ctx context.Context, point model.Point) ([]byte, model.BlockContext, error)
}

// MemSource is a fixed in-memory BlockSource for tests and demos: it answers
// from a point-keyed lookup table populated ahead of time.
type MemSource struct {
	blocks map[string]sourceEntry
}

type sourceEntry struct {
	body []byte
	ctx  model.BlockContext
}

func NewMemSource() *MemSource {
	return &MemSource{blocks: make(map[string]sourceEntry)}
}

// Put registers the body+context a later FetchBlock(point) call should
// return.
func (s *MemSource) Put(point model.Point, body []byte, ctx model.BlockContext) {
	s.blocks[point.String()] = sourceEntry{body: body, ctx: ctx}
}

func (s *MemSource) FetchBlock(_ context.Context, point model.Point) ([]byte, model.BlockContext, error) {
	entry, ok := s.blocks[point.String()]
	if !ok {
		return nil, nil, fmt.Errorf("blockfetch: no block registered for point %s", point)
	}
	return entry.body, entry.ctx, nil
}
