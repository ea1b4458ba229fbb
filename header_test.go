package png

import "testing"

func TestLegalCombinations(t *testing.T) {
	legal := []struct {
		ct    ColorType
		depth uint8
	}{
		{ColorGrayscale, 1}, {ColorGrayscale, 16},
		{ColorRGB, 8}, {ColorRGB, 16},
		{ColorIndexed, 1}, {ColorIndexed, 8},
		{ColorGrayscaleAlpha, 8}, {ColorGrayscaleAlpha, 16},
		{ColorRGBA, 8}, {ColorRGBA, 16},
	}
	for _, c := range legal {
		if !legalCombination(c.ct, c.depth) {
			t.Errorf("expected (%d,%d) to be legal", c.ct, c.depth)
		}
	}
}

// TestIllegalCombination covers spec §8 scenario 4: colorType=2, bitDepth=4.
func TestIllegalCombination(t *testing.T) {
	if legalCombination(ColorRGB, 4) {
		t.Fatalf("(RGB,4) should be illegal")
	}

	chunk := Chunk{
		Type:       ctIHDR,
		DataLength: ihdrLength,
		Data:       []byte{0, 0, 0, 1, 0, 0, 0, 1, 4, 2, 0, 0, 0},
		CRCValid:   true,
	}
	if _, err := parseIHDR(chunk); err == nil {
		t.Fatalf("expected fatal error for illegal color type/bit depth combination")
	}
}

func TestFilterUnit(t *testing.T) {
	h := Header{BitDepth: 8, ColorType: ColorRGBA}
	if got := h.FilterUnit(); got != 4 {
		t.Errorf("FilterUnit() = %d, want 4", got)
	}
	h2 := Header{BitDepth: 1, ColorType: ColorGrayscale}
	if got := h2.FilterUnit(); got != 1 {
		t.Errorf("FilterUnit() = %d, want 1", got)
	}
}
