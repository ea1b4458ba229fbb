package png

import (
	"bytes"
	"testing"
)

func makeRGBA8(width, height int, fill func(x, y int) [4]uint8) Image {
	img := Image{Width: width, Height: height, BitsPerChannel: 8, Pix8: make([]uint8, 4*width*height)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px := fill(x, y)
			off := 4 * (y*width + x)
			copy(img.Pix8[off:off+4], px[:])
		}
	}
	return img
}

// TestRoundTripRedPixel covers spec §8 scenario 1: a 1x1 RGBA8 red opaque
// pixel round-trips through Encode/Decode unchanged.
func TestRoundTripRedPixel(t *testing.T) {
	img := makeRGBA8(1, 1, func(x, y int) [4]uint8 { return [4]uint8{0xFF, 0x00, 0x00, 0xFF} })

	encoded, err := Encode(img, EncodeOptions{BitDepth: 8, ColorType: ColorRGBA})
	if err != nil {
		t.Fatalf("%+v", err)
	}

	result, err := Decode(encoded, DecodeOptions{})
	if err != nil {
		t.Fatalf("%+v", err)
	}
	want := []byte{0xFF, 0x00, 0x00, 0xFF}
	if !bytes.Equal(result.Image.Pix8, want) {
		t.Fatalf("got %v, want %v", result.Image.Pix8, want)
	}
}

// TestRoundTripColorTypes covers spec §8 invariant 4: round trip for
// colorTypes 2 and 6 is byte-for-byte identical. colorType 4 is covered by
// TestRoundTripOpaqueGrayAlpha, since its gray reduction is only lossless
// when the RGB channels are equal.
func TestRoundTripColorTypes(t *testing.T) {
	img := makeRGBA8(4, 3, func(x, y int) [4]uint8 {
		return [4]uint8{uint8(x * 50), uint8(y * 70), uint8(x + y), 0xFF}
	})

	for _, ct := range []ColorType{ColorRGB, ColorRGBA} {
		encoded, err := Encode(img, EncodeOptions{BitDepth: 8, ColorType: ct})
		if err != nil {
			t.Fatalf("colorType %d: %+v", ct, err)
		}
		result, err := Decode(encoded, DecodeOptions{})
		if err != nil {
			t.Fatalf("colorType %d: %+v", ct, err)
		}
		if !bytes.Equal(result.Image.Pix8, img.Pix8) {
			t.Fatalf("colorType %d: round trip mismatch\n got  %v\n want %v", ct, result.Image.Pix8, img.Pix8)
		}
	}
}

// TestRoundTripOpaqueGrayAlpha covers spec §8 invariant 4 for colorType 4:
// an opaque image round trips exactly (alpha 255 is exactly representable,
// and RGB equal across channels so the grayscale reduction is lossless).
func TestRoundTripOpaqueGrayAlpha(t *testing.T) {
	img := makeRGBA8(3, 2, func(x, y int) [4]uint8 {
		v := uint8(20 + 30*x + 10*y)
		return [4]uint8{v, v, v, 0xFF}
	})

	encoded, err := Encode(img, EncodeOptions{BitDepth: 8, ColorType: ColorGrayscaleAlpha})
	if err != nil {
		t.Fatalf("%+v", err)
	}
	result, err := Decode(encoded, DecodeOptions{})
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if !bytes.Equal(result.Image.Pix8, img.Pix8) {
		t.Fatalf("round trip mismatch\n got  %v\n want %v", result.Image.Pix8, img.Pix8)
	}
}

// TestRoundTripIndexed covers spec §8 invariant 5: a palette of distinct
// colors round trips through colorType 3 exactly.
func TestRoundTripIndexed(t *testing.T) {
	colors := [][4]uint8{
		{10, 20, 30, 255},
		{200, 100, 50, 255},
		{0, 0, 0, 255},
		{255, 255, 255, 255},
	}
	img := makeRGBA8(2, 2, func(x, y int) [4]uint8 { return colors[y*2+x] })

	encoded, err := Encode(img, EncodeOptions{BitDepth: 8, ColorType: ColorIndexed})
	if err != nil {
		t.Fatalf("%+v", err)
	}
	result, err := Decode(encoded, DecodeOptions{})
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if len(result.Palette) != 4 {
		t.Fatalf("got %d palette entries, want 4", len(result.Palette))
	}
	if !bytes.Equal(result.Image.Pix8, img.Pix8) {
		t.Fatalf("round trip mismatch\n got  %v\n want %v", result.Image.Pix8, img.Pix8)
	}
}

// TestRoundTripIndexedAlpha covers spec §8 invariant 5 plus §4.7 step 4: two
// pixels sharing RGB but differing in alpha must land in distinct palette
// slots, and the resulting tRNS chunk must carry the per-entry alpha back
// through decode unchanged.
func TestRoundTripIndexedAlpha(t *testing.T) {
	img := makeRGBA8(2, 1, func(x, y int) [4]uint8 {
		if x == 0 {
			return [4]uint8{10, 20, 30, 255}
		}
		return [4]uint8{10, 20, 30, 0}
	})

	encoded, err := Encode(img, EncodeOptions{BitDepth: 8, ColorType: ColorIndexed})
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if !bytes.Contains(encoded, []byte("tRNS")) {
		t.Fatalf("expected a tRNS chunk for a palette with non-opaque entries")
	}

	result, err := Decode(encoded, DecodeOptions{})
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if len(result.Palette) != 2 {
		t.Fatalf("got %d palette entries, want 2 (same RGB, different alpha)", len(result.Palette))
	}
	if !bytes.Equal(result.Image.Pix8, img.Pix8) {
		t.Fatalf("round trip mismatch\n got  %v\n want %v", result.Image.Pix8, img.Pix8)
	}
}

// TestEncodeIndexedPaletteOverflow covers spec §8 scenario 6: a 17x16 image
// of 272 distinct colors (more than 256) requested as colorType=3 fails with
// a palette overflow error.
func TestEncodeIndexedPaletteOverflow(t *testing.T) {
	img := makeRGBA8(17, 16, func(x, y int) [4]uint8 {
		n := y*17 + x // 272 distinct cells, well over 256
		return [4]uint8{uint8(n), uint8(n >> 8), 0, 255}
	})
	if _, err := Encode(img, EncodeOptions{BitDepth: 8, ColorType: ColorIndexed}); err == nil {
		t.Fatalf("expected palette overflow error")
	}
}

// TestNonConsecutiveIDATFatal covers spec §8 scenario 5: IDAT chunks
// separated by another chunk type is a fatal error, per spec §9's resolved
// Open Question.
func TestNonConsecutiveIDATFatal(t *testing.T) {
	var stream bytes.Buffer
	stream.Write(pngSignature[:])
	stream.Write(buildChunk(ctIHDR, encodeIHDR(Header{Width: 1, Height: 1, BitDepth: 8, ColorType: ColorRGBA})))
	stream.Write(buildChunk(ctIDAT, []byte{1, 2, 3}))
	stream.Write(buildChunk([4]byte{'t', 'E', 'X', 't'}, []byte("a\x00b")))
	stream.Write(buildChunk(ctIDAT, []byte{4, 5, 6}))
	stream.Write(buildChunk(ctIEND, nil))

	if _, err := Decode(stream.Bytes(), DecodeOptions{}); err == nil {
		t.Fatalf("expected fatal error for non-consecutive IDAT")
	}
}

// TestStrictModePromotesWarnings exercises spec §7: a CRC mismatch is a
// warning in lenient mode but a fatal error under StrictMode.
func TestStrictModePromotesWarnings(t *testing.T) {
	img := makeRGBA8(1, 1, func(x, y int) [4]uint8 { return [4]uint8{1, 2, 3, 255} })
	encoded, err := Encode(img, EncodeOptions{BitDepth: 8, ColorType: ColorRGBA})
	if err != nil {
		t.Fatalf("%+v", err)
	}

	// Corrupt only the IDAT chunk's stored CRC (not its data), so the
	// zlib stream stays valid and the only observable effect is the CRC
	// mismatch warning.
	idx := bytes.Index(encoded, []byte("IDAT"))
	if idx < 0 {
		t.Fatalf("IDAT not found")
	}
	length := int(uint32(encoded[idx-4])<<24 | uint32(encoded[idx-3])<<16 | uint32(encoded[idx-2])<<8 | uint32(encoded[idx-1]))
	crcStart := idx + 4 + length
	corrupted := append([]byte(nil), encoded...)
	corrupted[crcStart] ^= 0xFF

	lenient, err := Decode(corrupted, DecodeOptions{})
	if err != nil {
		t.Fatalf("lenient decode should succeed with a warning: %+v", err)
	}
	if len(lenient.Warnings) == 0 {
		t.Fatalf("expected at least one warning")
	}

	if _, err := Decode(corrupted, DecodeOptions{StrictMode: true}); err == nil {
		t.Fatalf("expected strict mode to promote the warning to a fatal error")
	}
}
