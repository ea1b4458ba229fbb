package png

import "github.com/pkg/errors"

// packContext carries the encode-time layout decisions: target color type,
// bit depth, and (for indexed output) the palette synthesized from the
// source image.
type packContext struct {
	colorType ColorType
	bitDepth  uint8
	palette   Palette
	// index maps an RGB(A) tuple to its palette slot, populated alongside
	// palette during synthesizePalette.
	index map[[4]uint8]uint8
}

// synthesizePalette scans img for distinct RGBA colors and builds a
// Palette plus its parallel per-entry alpha array, failing if there are
// more than 256 — spec §4.7 step 1, exercised by scenario 6 in spec §8.
// Grounded on the RGB triplet shape of XC-Zero-simple-png/chunk.go's PLTE
// struct. The dedup key is the full RGBA tuple, not just RGB: two pixels
// sharing color but differing in alpha need distinct palette entries, or
// tRNS (which is indexed by palette slot) cannot tell them apart.
func synthesizePalette(img Image) (Palette, []uint8, map[[4]uint8]uint8, error) {
	img8 := img
	if img.Is16() {
		img8 = img.To8()
	}
	index := make(map[[4]uint8]uint8)
	var pal Palette
	var alpha []uint8
	for i := 0; i < img8.Width*img8.Height; i++ {
		off := 4 * i
		key := [4]uint8{img8.Pix8[off], img8.Pix8[off+1], img8.Pix8[off+2], img8.Pix8[off+3]}
		if _, ok := index[key]; ok {
			continue
		}
		if len(pal) >= 256 {
			return nil, nil, nil, errors.WithStack(FormatError("more than 256 distinct colors for indexed output"))
		}
		index[key] = uint8(len(pal))
		pal = append(pal, RGB{R: key[0], G: key[1], B: key[2]})
		alpha = append(alpha, key[3])
	}
	return pal, alpha, index, nil
}

// packScanlines converts img into the native (colorType,bitDepth) raw
// scanline layout (without filter bytes), the mirror image of unpack.
func packScanlines(img Image, pc packContext) ([]byte, error) {
	width, height := img.Width, img.Height
	channels := pc.colorType.Channels()
	bpp := channels * int(pc.bitDepth)
	rowBytes := (width*bpp + 7) / 8
	out := make([]byte, height*rowBytes)

	for y := 0; y < height; y++ {
		row := out[y*rowBytes : (y+1)*rowBytes]
		for x := 0; x < width; x++ {
			if err := packPixel(row, img, x, y, pc); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func packPixel(row []byte, img Image, x, y int, pc packContext) error {
	off := 4 * (y*img.Width + x)
	var r, g, b, a uint16
	if img.Is16() {
		r, g, b, a = img.Pix16[off], img.Pix16[off+1], img.Pix16[off+2], img.Pix16[off+3]
	} else {
		r = uint16(img.Pix8[off]) * 257
		g = uint16(img.Pix8[off+1]) * 257
		b = uint16(img.Pix8[off+2]) * 257
		a = uint16(img.Pix8[off+3]) * 257
	}

	depth := int(pc.bitDepth)
	switch pc.colorType {
	case ColorGrayscale:
		gray := rec601Gray(r, g, b)
		writeSample(row, x, depth, 1, 0, reduceSample(gray, depth))
	case ColorRGB:
		writeSample(row, x, depth, 3, 0, reduceSample(r, depth))
		writeSample(row, x, depth, 3, 1, reduceSample(g, depth))
		writeSample(row, x, depth, 3, 2, reduceSample(b, depth))
	case ColorIndexed:
		var r8, g8, b8, a8 uint8
		if img.Is16() {
			r8, g8, b8, a8 = uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8)
		} else {
			r8, g8, b8, a8 = img.Pix8[off], img.Pix8[off+1], img.Pix8[off+2], img.Pix8[off+3]
		}
		idx, ok := pc.index[[4]uint8{r8, g8, b8, a8}]
		if !ok {
			return errors.WithStack(FormatError("pixel color not present in synthesized palette"))
		}
		writeSample(row, x, depth, 1, 0, uint32(idx))
	case ColorGrayscaleAlpha:
		gray := rec601Gray(r, g, b)
		writeSample(row, x, depth, 2, 0, reduceSample(gray, depth))
		writeSample(row, x, depth, 2, 1, reduceSample(a, depth))
	case ColorRGBA:
		writeSample(row, x, depth, 4, 0, reduceSample(r, depth))
		writeSample(row, x, depth, 4, 1, reduceSample(g, depth))
		writeSample(row, x, depth, 4, 2, reduceSample(b, depth))
		writeSample(row, x, depth, 4, 3, reduceSample(a, depth))
	default:
		return errors.WithStack(FormatError("unsupported encode color type"))
	}
	return nil
}

func rec601Gray(r, g, b uint16) uint16 {
	return uint16((299*uint32(r) + 587*uint32(g) + 114*uint32(b)) / 1000)
}

// reduceSample is the inverse of expandSample: a 16-bit sample scaled down
// to depth bits.
func reduceSample(x uint16, depth int) uint32 {
	if depth == 16 {
		return uint32(x)
	}
	maxVal := uint32(1<<uint(depth)) - 1
	return uint32(x) * maxVal / 65535
}

func writeSample(row []byte, x, depth, channels, channelIdx int, v uint32) {
	if depth == 16 {
		byteOff := 2 * (x*channels + channelIdx)
		row[byteOff] = byte(v >> 8)
		row[byteOff+1] = byte(v)
		return
	}
	if depth == 8 {
		row[x*channels+channelIdx] = byte(v)
		return
	}
	bitOff := x*depth + channelIdx*depth
	writeBits(row, bitOff, depth, uint8(v))
}
