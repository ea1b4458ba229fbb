package png

import (
	"bytes"
	"testing"
)

func TestPaeth(t *testing.T) {
	cases := []struct {
		a, b, c, want byte
	}{
		{0, 0, 0, 0},
		{10, 20, 0, 20}, // p=30, |30-10|=20,|30-20|=10,|30-0|=30 -> b wins
		{10, 0, 0, 10},  // p=10 -> a wins (|10-10|=0, b and c both at 10)
		{5, 5, 5, 5},
	}
	for _, c := range cases {
		if got := paeth(c.a, c.b, c.c); got != c.want {
			t.Errorf("paeth(%d,%d,%d) = %d, want %d", c.a, c.b, c.c, got, c.want)
		}
	}
}

// TestFilterRoundTrip exercises filterScanlines (encode-side MAD selection)
// followed by reverseScanlines (decode-side reversal) for RGBA8 data and
// checks the original raw scanline bytes come back exactly, per spec §4.7
// step 2 / §4.4.
func TestFilterRoundTrip(t *testing.T) {
	const width, height, bpp = 5, 3, 32 // RGBA8: 4 channels * 8 bits
	raw := make([]byte, height*width*4)
	for i := range raw {
		raw[i] = byte(i*37 + 11)
	}

	filtered := filterScanlines(raw, width, height, bpp)
	reversed, err := reverseScanlines(filtered, width, height, bpp)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if !bytes.Equal(raw, reversed) {
		t.Fatalf("round trip mismatch:\n got  %v\n want %v", reversed, raw)
	}
}

func TestReverseScanlinesInvalidFilter(t *testing.T) {
	raw := []byte{9, 0, 0, 0, 0} // filter type byte 9 is invalid
	if _, err := reverseScanlines(raw, 4, 1, 8); err == nil {
		t.Fatalf("expected INVALID_FILTER error")
	}
}

func TestBppCeil(t *testing.T) {
	cases := []struct {
		bits, want int
	}{
		{1, 1}, {4, 1}, {8, 1}, {9, 2}, {24, 3}, {32, 4},
	}
	for _, c := range cases {
		if got := bppCeil(c.bits); got != c.want {
			t.Errorf("bppCeil(%d) = %d, want %d", c.bits, got, c.want)
		}
	}
}
