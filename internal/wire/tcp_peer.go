package wire

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"

	"github.com/fxamacker/cbor/v2"

	"github.com/Klingon-tech/chain-pipeline/internal/crosscut"
	"github.com/Klingon-tech/chain-pipeline/internal/model"
)

// frameKind discriminates the small set of messages TCPPeer exchanges over
// the wire: each frame is a 4-byte big-endian length prefix followed by a
// CBOR-encoded frame struct, mirroring the length-prefixed framing spec.md
// mandates for header content.
type frameKind uint8

const (
	frameHandshakeReq frameKind = iota
	frameHandshakeResp
	frameIntersectReq
	frameIntersectResp
	frameRequestNext
	frameRollForward
	frameRollBack
	frameAwaitReply
	frameDone
	frameTipReq
	frameTipResp
)

type frame struct {
	Kind    frameKind     `cbor:"0,keyasint"`
	Points  []pointWire   `cbor:"1,keyasint,omitempty"`
	Header  HeaderContent `cbor:"2,keyasint,omitempty"`
	Point   pointWire     `cbor:"3,keyasint,omitempty"`
	Tip     tipWire       `cbor:"4,keyasint,omitempty"`
	Ok      bool          `cbor:"5,keyasint,omitempty"`
	Magic   uint32        `cbor:"6,keyasint,omitempty"`
}

type pointWire struct {
	Origin bool   `cbor:"0,keyasint"`
	Slot   uint64 `cbor:"1,keyasint"`
	Hash   []byte `cbor:"2,keyasint,omitempty"`
}

type tipWire struct {
	Point   pointWire `cbor:"0,keyasint"`
	BlockNo uint64    `cbor:"1,keyasint"`
}

func toWire(p model.Point) pointWire {
	return pointWire{Origin: p.Origin, Slot: p.Slot, Hash: p.Hash}
}

func fromWire(p pointWire) model.Point {
	if p.Origin {
		return model.OriginPoint()
	}
	return model.NewPoint(p.Slot, p.Hash)
}

// TCPPeer implements Peer over a plain net.Conn using the length-prefixed
// CBOR framing above. It is a reference transport: a production deployment
// would instead speak the real upstream mini-protocol over this same Peer
// seam.
type TCPPeer struct {
	conn net.Conn
}

// DialTCPPeer connects to a peer address, exchanges network magic, and
// returns a ready-to-use TCPPeer. It refuses to proceed if the peer reports
// a different network than magic.
func DialTCPPeer(ctx context.Context, addr string, magic uint32) (*TCPPeer, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("wire: dial peer %s: %w", addr, err)
	}
	if err := writeFrame(conn, frame{Kind: frameHandshakeReq, Magic: magic}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("wire: handshake request: %w", err)
	}
	resp, err := readFrame(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("wire: handshake response: %w", err)
	}
	if resp.Kind != frameHandshakeResp {
		conn.Close()
		return nil, fmt.Errorf("wire: unexpected frame kind %d during handshake", resp.Kind)
	}
	if resp.Magic != magic {
		conn.Close()
		return nil, fmt.Errorf("%w: peer %s reported %d, wanted %d", ErrNetworkMismatch, addr, resp.Magic, magic)
	}
	return &TCPPeer{conn: conn}, nil
}

// NewTCPPeer wraps an already-established connection, for servers accepting
// inbound peers in tests.
func NewTCPPeer(conn net.Conn) *TCPPeer {
	return &TCPPeer{conn: conn}
}

func writeFrame(w io.Writer, f frame) error {
	payload, err := cbor.Marshal(f)
	if err != nil {
		return err
	}
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err = w.Write(payload)
	return err
}

func readFrame(r io.Reader) (frame, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return frame{}, err
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return frame{}, err
	}
	var f frame
	if err := cbor.Unmarshal(payload, &f); err != nil {
		return frame{}, fmt.Errorf("%w: %v", ErrUndecodableHeader, err)
	}
	return f, nil
}

func (p *TCPPeer) Intersect(_ context.Context, points []model.Point) (model.Point, error) {
	wirePoints := make([]pointWire, len(points))
	for i, pt := range points {
		wirePoints[i] = toWire(pt)
	}
	if err := writeFrame(p.conn, frame{Kind: frameIntersectReq, Points: wirePoints}); err != nil {
		return model.Point{}, fmt.Errorf("wire: intersect request: %w", err)
	}
	resp, err := readFrame(p.conn)
	if err != nil {
		return model.Point{}, fmt.Errorf("wire: intersect response: %w", err)
	}
	if resp.Kind != frameIntersectResp || !resp.Ok {
		return model.Point{}, ErrIntersectionRefused
	}
	return fromWire(resp.Point), nil
}

func (p *TCPPeer) RequestNext(_ context.Context) (Event, error) {
	if err := writeFrame(p.conn, frame{Kind: frameRequestNext}); err != nil {
		return Event{}, fmt.Errorf("wire: request-next: %w", err)
	}
	resp, err := readFrame(p.conn)
	if err != nil {
		return Event{}, fmt.Errorf("wire: request-next reply: %w", err)
	}
	switch resp.Kind {
	case frameRollForward:
		return Event{Kind: EventRollForward, Header: resp.Header, Tip: model.Tip{Point: fromWire(resp.Tip.Point), BlockNo: resp.Tip.BlockNo}}, nil
	case frameRollBack:
		return Event{Kind: EventRollBack, Point: fromWire(resp.Point)}, nil
	case frameDone:
		return Event{Kind: EventDone}, nil
	default:
		return Event{}, fmt.Errorf("wire: unexpected frame kind %d from request-next", resp.Kind)
	}
}

func (p *TCPPeer) Tip(_ context.Context) (model.Tip, error) {
	if err := writeFrame(p.conn, frame{Kind: frameTipReq}); err != nil {
		return model.Tip{}, fmt.Errorf("wire: tip request: %w", err)
	}
	resp, err := readFrame(p.conn)
	if err != nil {
		return model.Tip{}, fmt.Errorf("wire: tip response: %w", err)
	}
	return model.Tip{Point: fromWire(resp.Tip.Point), BlockNo: resp.Tip.BlockNo}, nil
}

func (p *TCPPeer) Close() error {
	return p.conn.Close()
}

// ErrIntersectionRefused is returned by TCPPeer when the remote end rejects
// every offered point at the frame level. It wraps
// crosscut.ErrIntersectionNotFound.
var ErrIntersectionRefused = fmt.Errorf("wire: peer rejected intersect request: %w", crosscut.ErrIntersectionNotFound)

// ErrNetworkMismatch is returned by DialTCPPeer when the peer's handshake
// reports a different network magic than expected.
var ErrNetworkMismatch = fmt.Errorf("wire: peer network magic mismatch")
