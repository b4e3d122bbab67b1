package crosscut

import (
	"testing"

	"github.com/Klingon-tech/chain-pipeline/internal/model"
)

func TestPointArgRoundTrip(t *testing.T) {
	cases := []model.Point{
		model.OriginPoint(),
		model.NewPoint(0, []byte{}),
		model.NewPoint(123456, []byte{0xde, 0xad, 0xbe, 0xef}),
	}

	for _, p := range cases {
		got, err := ParsePointArg(FormatPointArg(p))
		if err != nil {
			t.Fatalf("ParsePointArg(FormatPointArg(%v)) error: %v", p, err)
		}
		if !got.Equal(p) {
			t.Fatalf("round trip mismatch: got %v, want %v", got, p)
		}
	}
}

func TestFormatPointArgOrigin(t *testing.T) {
	if got := FormatPointArg(model.OriginPoint()); got != "origin" {
		t.Fatalf("FormatPointArg(origin) = %q, want %q", got, "origin")
	}
}

func TestParsePointArgMalformed(t *testing.T) {
	if _, err := ParsePointArg("not-a-point"); err == nil {
		t.Fatalf("expected error for malformed point arg")
	}
}
