package wire

import "testing"

func TestDecodeHeaderRoundTrip(t *testing.T) {
	h, err := EncodeHeader(2, 12345, []byte{0x01, 0x02, 0x03})
	if err != nil {
		t.Fatalf("EncodeHeader: %v", err)
	}

	point, err := DecodeHeader(h)
	if err != nil {
		t.Fatalf("DecodeHeader: %v", err)
	}
	if point.Slot != 12345 {
		t.Fatalf("got slot %d, want 12345", point.Slot)
	}
	if string(point.Hash) != "\x01\x02\x03" {
		t.Fatalf("got hash %x, want 010203", point.Hash)
	}
}

func TestDecodeHeaderContentRoundTrip(t *testing.T) {
	h, err := EncodeHeader(0, 1, []byte{0xff})
	if err != nil {
		t.Fatalf("EncodeHeader: %v", err)
	}
	encoded, err := EncodeHeaderContent(h)
	if err != nil {
		t.Fatalf("EncodeHeaderContent: %v", err)
	}
	decoded, err := DecodeHeaderContent(encoded)
	if err != nil {
		t.Fatalf("DecodeHeaderContent: %v", err)
	}
	if decoded.Variant != 0 {
		t.Fatalf("got variant %d, want 0", decoded.Variant)
	}
}

func TestDecodeHeaderUndecodable(t *testing.T) {
	_, err := DecodeHeader(HeaderContent{Variant: 9, CBOR: []byte{0xff, 0xff}})
	if err == nil {
		t.Fatalf("expected error decoding garbage CBOR")
	}
}
