package crosscut

import (
	"errors"

	"github.com/Klingon-tech/chain-pipeline/internal/model"
)

// ErrIntersectionNotFound is fatal at bootstrap: the peer refused every
// offered point.
var ErrIntersectionNotFound = errors.New("crosscut: peer refused every offered intersection point")

// IntersectKind discriminates an IntersectConfig.
type IntersectKind int

const (
	IntersectOrigin IntersectKind = iota
	IntersectTip
	IntersectPoint
	IntersectFallbacks
)

// IntersectConfig is the intersection policy a chain-sync stage bootstraps
// from. A persisted cursor (see Cursor, below) always takes precedence over
// this when one exists.
type IntersectConfig struct {
	Kind      IntersectKind
	Point     model.Point
	Fallbacks []model.Point
}

// KnownPoints derives the candidate intersection points to offer the peer,
// given an optional persisted cursor. A non-nil cursor always wins.
func (c IntersectConfig) KnownPoints(cursor *model.Point, tip *model.Tip) []model.Point {
	if cursor != nil {
		return []model.Point{*cursor}
	}
	switch c.Kind {
	case IntersectOrigin:
		return []model.Point{model.OriginPoint()}
	case IntersectTip:
		if tip != nil {
			return []model.Point{tip.Point}
		}
		return []model.Point{model.OriginPoint()}
	case IntersectPoint:
		return []model.Point{c.Point}
	case IntersectFallbacks:
		return append([]model.Point(nil), c.Fallbacks...)
	default:
		return []model.Point{model.OriginPoint()}
	}
}
