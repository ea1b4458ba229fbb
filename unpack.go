package png

import "github.com/pkg/errors"

// unpackContext carries the inputs the pixel unpacker needs beyond the raw
// scanline bytes: the header, an optional palette (colorType 3), and
// optional transparency info.
type unpackContext struct {
	h     Header
	pal   Palette
	trns  *Transparency
	force32 bool
}

// unpack converts raw (filter-reversed, de-interlaced, bit-packed-per-row)
// scanline bytes into a normalized RGBA Image, per spec §4.6. This
// generalizes fumin-png's bytesPerPixel/row accounting (which only ever
// handles colorType 6 depth 8) across all five color types and depths
// 1/2/4/8/16.
func unpack(raw []byte, uc unpackContext) (Image, error) {
	h := uc.h
	width, height := int(h.Width), int(h.Height)
	bpp := h.BitsPerPixel()
	rowBytes := (width*bpp + 7) / 8

	out16 := h.BitDepth == 16 && !uc.force32
	img := Image{Width: width, Height: height}
	if out16 {
		img.BitsPerChannel = 16
		img.Pix16 = make([]uint16, 4*width*height)
	} else {
		img.BitsPerChannel = 8
		img.Pix8 = make([]uint8, 4*width*height)
	}

	for y := 0; y < height; y++ {
		row := raw[y*rowBytes : (y+1)*rowBytes]
		if err := unpackRow(row, y, width, uc, img, out16); err != nil {
			return Image{}, err
		}
	}
	return img, nil
}

func unpackRow(row []byte, y, width int, uc unpackContext, img Image, out16 bool) error {
	h := uc.h
	depth := int(h.BitDepth)

	for x := 0; x < width; x++ {
		pixelOff := 4 * (y*width + x)
		switch h.ColorType {
		case ColorGrayscale:
			sample := readSample(row, x, depth, h.ColorType.Channels(), 0)
			gray16 := expandSample(sample, depth)
			alpha16 := uint16(0xFFFF)
			if uc.trns != nil && sample == uint32(uc.trns.GraySample) {
				alpha16 = 0
			}
			setGray(img, pixelOff, gray16, alpha16, out16)

		case ColorRGB:
			r := readSample(row, x, depth, 3, 0)
			g := readSample(row, x, depth, 3, 1)
			bch := readSample(row, x, depth, 3, 2)
			r16, g16, b16 := expandSample(r, depth), expandSample(g, depth), expandSample(bch, depth)
			alpha16 := uint16(0xFFFF)
			if uc.trns != nil && uint16(r) == uc.trns.RGBSample[0] && uint16(g) == uc.trns.RGBSample[1] && uint16(bch) == uc.trns.RGBSample[2] {
				alpha16 = 0
			}
			setRGBA(img, pixelOff, r16, g16, b16, alpha16, out16)

		case ColorIndexed:
			idx := readSample(row, x, depth, 1, 0)
			if int(idx) >= len(uc.pal) {
				return errors.WithStack(FormatError("PALETTE_INDEX_OOR"))
			}
			entry := uc.pal[idx]
			alpha := uint8(255)
			if uc.trns != nil && int(idx) < len(uc.trns.IndexedAlpha) {
				alpha = uc.trns.IndexedAlpha[idx]
			}
			// Indexed output is always 8-bit per spec §4.6.
			img.Pix8[pixelOff] = entry.R
			img.Pix8[pixelOff+1] = entry.G
			img.Pix8[pixelOff+2] = entry.B
			img.Pix8[pixelOff+3] = alpha

		case ColorGrayscaleAlpha:
			gray := readSample(row, x, depth, 2, 0)
			alpha := readSample(row, x, depth, 2, 1)
			setGray(img, pixelOff, expandSample(gray, depth), expandSample(alpha, depth), out16)

		case ColorRGBA:
			r := readSample(row, x, depth, 4, 0)
			g := readSample(row, x, depth, 4, 1)
			bch := readSample(row, x, depth, 4, 2)
			a := readSample(row, x, depth, 4, 3)
			setRGBA(img, pixelOff, expandSample(r, depth), expandSample(g, depth), expandSample(bch, depth), expandSample(a, depth), out16)

		default:
			return errors.WithStack(FormatError("unsupported color type"))
		}
	}
	return nil
}

func setGray(img Image, off int, gray16, alpha16 uint16, out16 bool) {
	if out16 {
		img.Pix16[off], img.Pix16[off+1], img.Pix16[off+2], img.Pix16[off+3] = gray16, gray16, gray16, alpha16
		return
	}
	g8, a8 := uint8(gray16>>8), uint8(alpha16>>8)
	img.Pix8[off], img.Pix8[off+1], img.Pix8[off+2], img.Pix8[off+3] = g8, g8, g8, a8
}

func setRGBA(img Image, off int, r16, g16, b16, a16 uint16, out16 bool) {
	if out16 {
		img.Pix16[off], img.Pix16[off+1], img.Pix16[off+2], img.Pix16[off+3] = r16, g16, b16, a16
		return
	}
	img.Pix8[off] = uint8(r16 >> 8)
	img.Pix8[off+1] = uint8(g16 >> 8)
	img.Pix8[off+2] = uint8(b16 >> 8)
	img.Pix8[off+3] = uint8(a16 >> 8)
}

// readSample extracts the nth-of-channels sample for pixel x at the given
// bit depth, MSB-first within each byte for depths<8 (spec §4.6), or
// big-endian 16-bit for depth==16.
func readSample(row []byte, x, depth, channels, channelIdx int) uint32 {
	if depth == 16 {
		byteOff := 2 * (x*channels + channelIdx)
		return uint32(row[byteOff])<<8 | uint32(row[byteOff+1])
	}
	if depth == 8 {
		return uint32(row[x*channels+channelIdx])
	}
	// depth in {1,2,4}: channels is always 1 here (grayscale or indexed,
	// per spec §3's legal-combination table).
	bitOff := x*depth + channelIdx*depth
	return uint32(readBits(row, bitOff, depth))
}

// expandSample replicates a sub-8-bit sample to fill 16 bits, per spec
// §4.6: x * 65535 / (2^d - 1), equivalent to bit replication.
func expandSample(x uint32, depth int) uint16 {
	if depth == 16 {
		return uint16(x)
	}
	maxVal := uint32(1<<uint(depth)) - 1
	// Scale into 16 bits, then the 8-bit path elsewhere takes the high byte.
	return uint16(x * 65535 / maxVal)
}
