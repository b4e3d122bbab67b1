// Package model holds the data types that flow through the pipeline stages:
// chain positions, the rollback-aware sync events chain-sync hands to
// block-fetch, the enriched payloads block-fetch hands to reducers, and the
// CRDT commands reducers hand to storage.
package model

import (
	"encoding/hex"
	"fmt"
)

// Point is a chain position. The zero value is not a valid point; use Origin
// for the pre-genesis position.
type Point struct {
	Origin bool
	Slot   uint64
	Hash   []byte
}

// NewPoint builds a specific chain position.
func NewPoint(slot uint64, hash []byte) Point {
	return Point{Slot: slot, Hash: hash}
}

// OriginPoint is the well-known pre-genesis position.
func OriginPoint() Point {
	return Point{Origin: true}
}

func (p Point) String() string {
	if p.Origin {
		return "origin"
	}
	return fmt.Sprintf("(%d, %s)", p.Slot, hex.EncodeToString(p.Hash))
}

// Equal compares two points by slot and hash, per spec.md's total order
// (equal slot with different hash means divergent histories, not equality).
func (p Point) Equal(other Point) bool {
	if p.Origin || other.Origin {
		return p.Origin == other.Origin
	}
	if p.Slot != other.Slot {
		return false
	}
	return hex.EncodeToString(p.Hash) == hex.EncodeToString(other.Hash)
}

// Less orders points by slot, origin sorting before everything else.
func (p Point) Less(other Point) bool {
	if p.Origin {
		return !other.Origin
	}
	if other.Origin {
		return false
	}
	return p.Slot < other.Slot
}

// Tip is the peer's latest-known position; advisory only.
type Tip struct {
	Point   Point
	BlockNo uint64
}
