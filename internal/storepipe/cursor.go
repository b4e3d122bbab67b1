package storepipe

import (
	"context"
	"fmt"

	"github.com/Klingon-tech/chain-pipeline/internal/crosscut"
	"github.com/Klingon-tech/chain-pipeline/internal/model"
)

// ReadCursor returns the last point a BlockFinished command persisted, or
// nil if the store has never completed a block. Bootstrap calls this before
// chain-sync starts to decide where to resume.
func ReadCursor(ctx context.Context, s Store) (*model.Point, error) {
	raw, ok, err := s.Get(ctx, cursorKey)
	if err != nil {
		return nil, fmt.Errorf("storepipe: read cursor: %w", err)
	}
	if !ok {
		return nil, nil
	}
	point, err := crosscut.ParsePointArg(raw)
	if err != nil {
		return nil, fmt.Errorf("storepipe: read cursor: %w", err)
	}
	return &point, nil
}

// ResetCursor rewinds the persisted cursor to the origin sentinel, so the
// next bootstrap offers the origin point instead of resuming from the last
// completed block. The key is overwritten, not deleted: ReadCursor then
// returns the origin point rather than nil, so the configured intersection
// policy is still not consulted.
func ResetCursor(ctx context.Context, s Store) error {
	if err := s.Set(ctx, cursorKey, crosscut.FormatPointArg(model.OriginPoint())); err != nil {
		return fmt.Errorf("storepipe: reset cursor: %w", err)
	}
	return nil
}
