package crosscut

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/Klingon-tech/chain-pipeline/internal/model"
)

// Cursor is the persisted resume token. A nil Cursor means the store has
// never completed a block and the pipeline should bootstrap from the
// configured intersection policy instead.
type Cursor = *model.Point

// originSentinel is the literal cursor string for the pre-genesis point.
const originSentinel = "origin"

// FormatPointArg encodes a point as the persisted cursor string form,
// "slot,hex(hash)", or the sentinel "origin".
func FormatPointArg(p model.Point) string {
	if p.Origin {
		return originSentinel
	}
	return fmt.Sprintf("%d,%s", p.Slot, hex.EncodeToString(p.Hash))
}

// ParsePointArg decodes a cursor string back into a point. It is the
// inverse of FormatPointArg: parse(format(p)) == p.
func ParsePointArg(s string) (model.Point, error) {
	if s == originSentinel {
		return model.OriginPoint(), nil
	}
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return model.Point{}, fmt.Errorf("crosscut: malformed point arg %q", s)
	}
	slot, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return model.Point{}, fmt.Errorf("crosscut: malformed point arg %q: %w", s, err)
	}
	hash, err := hex.DecodeString(parts[1])
	if err != nil {
		return model.Point{}, fmt.Errorf("crosscut: malformed point arg %q: %w", s, err)
	}
	return model.NewPoint(slot, hash), nil
}
