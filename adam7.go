package png

// adam7Pass describes one of the 7 Adam7 interlacing passes, spec §4.5.
// This table and the de-interlacer built on it have no grounding in the
// retrieval pack (the teacher and every other pack repo decode
// non-interlaced images only); it is built directly from spec §4.5's pass
// table, noted in DESIGN.md per the grounding-ledger requirement to flag
// ungrounded parts.
type adam7Pass struct {
	xStart, yStart, xStride, yStride int
}

var adam7Passes = [7]adam7Pass{
	{0, 0, 8, 8},
	{4, 0, 8, 8},
	{0, 4, 4, 8},
	{2, 0, 4, 4},
	{0, 2, 2, 4},
	{1, 0, 2, 2},
	{0, 1, 1, 2},
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// adam7PassDims returns the reduced (width, height) of pass p against the
// full image described by h.
func adam7PassDims(h Header, p adam7Pass) (int, int) {
	w := ceilDiv(int(h.Width)-p.xStart, p.xStride)
	ht := ceilDiv(int(h.Height)-p.yStart, p.yStride)
	if w < 0 {
		w = 0
	}
	if ht < 0 {
		ht = 0
	}
	return w, ht
}

// deinterlaceAdam7 reverses Adam7 interlacing: raw is the full inflated
// stream (seven concatenated, independently filtered sub-images); it
// returns a single raw (filter-reversed) scanline buffer for the full
// width/height, in the layout reverseScanlines would have produced for a
// non-interlaced image of the same header, ready for unpacking.
func deinterlaceAdam7(raw []byte, h Header) ([]byte, error) {
	bpp := h.BitsPerPixel()
	fullRowBytes := (int(h.Width)*bpp + 7) / 8
	out := make([]byte, int(h.Height)*fullRowBytes)

	off := 0
	for _, p := range adam7Passes {
		pw, ph := adam7PassDims(h, p)
		if pw == 0 || ph == 0 {
			continue
		}
		passRaw := raw[off:]
		passRowBytes := (pw*bpp + 7) / 8
		passLen := ph * (1 + passRowBytes)
		reversed, err := reverseScanlines(passRaw[:passLen], pw, ph, bpp)
		if err != nil {
			return nil, err
		}
		off += passLen

		scatterPass(out, reversed, h, p, pw, ph, bpp, fullRowBytes)
	}
	return out, nil
}

// scatterPass writes the pw x ph pixels of one reversed Adam7 pass into
// their final positions in out (a fullWidth x fullHeight raw scanline
// buffer), per the scatter rule of spec §4.5: pixel (col,row) of the pass
// lands at (xStart+col*xStride, yStart+row*yStride) of the final grid.
// Bit-packed rows (depth<8) are handled a bit at a time; byte-aligned
// samples (depth>=8) a whole pixel (all channels) at a time.
func scatterPass(out, passPixels []byte, h Header, p adam7Pass, pw, ph, bpp, fullRowBytes int) {
	passRowBytes := (pw*bpp + 7) / 8
	if h.BitDepth >= 8 {
		sampleBytes := bpp / 8
		for row := 0; row < ph; row++ {
			srcRow := passPixels[row*passRowBytes : (row+1)*passRowBytes]
			dstY := p.yStart + row*p.yStride
			dstRow := out[dstY*fullRowBytes : (dstY+1)*fullRowBytes]
			for col := 0; col < pw; col++ {
				dstX := p.xStart + col*p.xStride
				copy(dstRow[dstX*sampleBytes:], srcRow[col*sampleBytes:(col+1)*sampleBytes])
			}
		}
		return
	}

	// Sub-byte depths: one bit-packed channel sample per pixel (grayscale
	// or indexed only, per spec §3's legal-combination table).
	depth := int(h.BitDepth)
	for row := 0; row < ph; row++ {
		srcRow := passPixels[row*passRowBytes : (row+1)*passRowBytes]
		dstY := p.yStart + row*p.yStride
		dstRow := out[dstY*fullRowBytes : (dstY+1)*fullRowBytes]
		for col := 0; col < pw; col++ {
			v := readBits(srcRow, col*depth, depth)
			dstX := p.xStart + col*p.xStride
			writeBits(dstRow, dstX*depth, depth, v)
		}
	}
}

func readBits(row []byte, bitOffset, depth int) uint8 {
	byteIdx := bitOffset / 8
	bitIdx := bitOffset % 8
	shift := 8 - bitIdx - depth
	mask := byte(1<<depth - 1)
	return (row[byteIdx] >> shift) & mask
}

func writeBits(row []byte, bitOffset, depth int, v uint8) {
	byteIdx := bitOffset / 8
	bitIdx := bitOffset % 8
	shift := 8 - bitIdx - depth
	mask := byte(1<<depth - 1)
	row[byteIdx] = (row[byteIdx] &^ (mask << shift)) | ((v & mask) << shift)
}
