package model

import "testing"

func TestPointEqual(t *testing.T) {
	cases := []struct {
		name string
		a, b Point
		want bool
	}{
		{"both origin", OriginPoint(), OriginPoint(), true},
		{"origin vs specific", OriginPoint(), NewPoint(1, []byte{0x01}), false},
		{"same slot same hash", NewPoint(10, []byte{0xaa}), NewPoint(10, []byte{0xaa}), true},
		{"same slot different hash", NewPoint(10, []byte{0xaa}), NewPoint(10, []byte{0xbb}), false},
		{"different slot", NewPoint(10, []byte{0xaa}), NewPoint(11, []byte{0xaa}), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.a.Equal(c.b); got != c.want {
				t.Fatalf("Equal(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestPointLess(t *testing.T) {
	if !OriginPoint().Less(NewPoint(0, nil)) {
		t.Fatalf("origin should sort before any specific point")
	}
	if NewPoint(5, nil).Less(OriginPoint()) {
		t.Fatalf("specific point should never sort before origin")
	}
	if !NewPoint(1, nil).Less(NewPoint(2, nil)) {
		t.Fatalf("lower slot should sort first")
	}
}
