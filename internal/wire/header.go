// Package wire implements the bit-compatible edges of the system: the
// length-prefixed, era-tagged CBOR header format the chain-sync mini-protocol
// exchanges with a peer, and the Peer interface that abstracts the transport
// carrying it.
package wire

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/Klingon-tech/chain-pipeline/internal/model"
)

// ErrUndecodableHeader is fatal to chain-sync: the peer sent header bytes
// that do not parse as one of the known era variants.
var ErrUndecodableHeader = errors.New("wire: header CBOR undecodable")

// ByronPrefix carries the extra leading tag byron-era headers wrap their
// body in; other eras leave it empty.
type ByronPrefix struct {
	Tag     uint64
	Present bool
}

// HeaderContent is the wire-level envelope for one header: an era
// discriminator, an optional byron prefix, and the raw per-era CBOR payload.
type HeaderContent struct {
	Variant     uint8  `cbor:"0,keyasint"`
	ByronPrefix uint64 `cbor:"1,keyasint,omitempty"`
	HasByron    bool   `cbor:"2,keyasint,omitempty"`
	CBOR        []byte `cbor:"3,keyasint"`
}

// EncodeHeaderContent serializes a HeaderContent the way a peer would place
// it on the wire, length-prefixed by the caller.
func EncodeHeaderContent(h HeaderContent) ([]byte, error) {
	return cbor.Marshal(h)
}

// DecodeHeaderContent parses a length-delimited HeaderContent frame.
func DecodeHeaderContent(data []byte) (HeaderContent, error) {
	var h HeaderContent
	if err := cbor.Unmarshal(data, &h); err != nil {
		return HeaderContent{}, fmt.Errorf("%w: %v", ErrUndecodableHeader, err)
	}
	return h, nil
}

// multiEraHeaderBody is the minimal per-era payload this repo decodes: the
// slot and block hash every era's header carries, regardless of its other
// era-specific fields (body size, VRF proof, operational certificate, ...).
// Those fields are consumed by ledger validation, which is out of scope.
type multiEraHeaderBody struct {
	Slot uint64 `cbor:"0,keyasint"`
	Hash []byte `cbor:"1,keyasint"`
}

// DecodeHeader turns era-tagged header content into the common point
// representation chain-sync needs: a slot and a hash. Decoding failure is
// fatal per spec (the peer is speaking an incompatible protocol).
func DecodeHeader(h HeaderContent) (model.Point, error) {
	var body multiEraHeaderBody
	if err := cbor.Unmarshal(h.CBOR, &body); err != nil {
		return model.Point{}, fmt.Errorf("%w: variant %d: %v", ErrUndecodableHeader, h.Variant, err)
	}
	return model.NewPoint(body.Slot, body.Hash), nil
}

// EncodeHeader is the inverse of DecodeHeader, used by the in-memory peer's
// RollForwardEvent and by tests to produce wire-shaped headers.
func EncodeHeader(variant uint8, slot uint64, hash []byte) (HeaderContent, error) {
	payload, err := cbor.Marshal(multiEraHeaderBody{Slot: slot, Hash: hash})
	if err != nil {
		return HeaderContent{}, err
	}
	return HeaderContent{Variant: variant, CBOR: payload}, nil
}
