package png

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// ColorType enumerates the five legal PNG color types, spec §3.
type ColorType uint8

const (
	ColorGrayscale      ColorType = 0
	ColorRGB            ColorType = 2
	ColorIndexed        ColorType = 3
	ColorGrayscaleAlpha ColorType = 4
	ColorRGBA           ColorType = 6
)

// Channels returns the number of samples per pixel for c, before any
// alpha/RGBA normalization.
func (c ColorType) Channels() int {
	switch c {
	case ColorGrayscale:
		return 1
	case ColorRGB:
		return 3
	case ColorIndexed:
		return 1
	case ColorGrayscaleAlpha:
		return 2
	case ColorRGBA:
		return 4
	default:
		return 0
	}
}

// legalDepths lists the bit depths allowed for each color type, spec §3's
// invariant table.
var legalDepths = map[ColorType][]uint8{
	ColorGrayscale:      {1, 2, 4, 8, 16},
	ColorRGB:            {8, 16},
	ColorIndexed:        {1, 2, 4, 8},
	ColorGrayscaleAlpha: {8, 16},
	ColorRGBA:           {8, 16},
}

func legalCombination(c ColorType, depth uint8) bool {
	depths, ok := legalDepths[c]
	if !ok {
		return false
	}
	for _, d := range depths {
		if d == depth {
			return true
		}
	}
	return false
}

// Header is the parsed IHDR chunk, spec §3.
type Header struct {
	Width             uint32
	Height            uint32
	BitDepth          uint8
	ColorType         ColorType
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   uint8
}

// SampleDepth is the bit depth of each stored sample: always 8 for indexed
// color, otherwise BitDepth, per spec §3's note.
func (h Header) SampleDepth() uint8 {
	if h.ColorType == ColorIndexed {
		return 8
	}
	return h.BitDepth
}

// BitsPerPixel returns channels*bitDepth, the "bpp" used throughout filter
// reversal and row-size accounting (spec §4.3/§4.4).
func (h Header) BitsPerPixel() int {
	return h.ColorType.Channels() * int(h.BitDepth)
}

// FilterUnit is bpp_ceil from spec §4.4: max(1, ceil(bpp/8)).
func (h Header) FilterUnit() int {
	u := (h.BitsPerPixel() + 7) / 8
	if u < 1 {
		u = 1
	}
	return u
}

const ihdrLength = 13

func parseIHDR(c Chunk) (Header, error) {
	if c.Type != ctIHDR {
		return Header{}, errors.WithStack(FormatError("first chunk is not IHDR"))
	}
	if c.DataLength != ihdrLength {
		return Header{}, errors.WithStack(FormatError("bad IHDR length"))
	}
	d := c.Data
	h := Header{
		Width:             binary.BigEndian.Uint32(d[0:4]),
		Height:            binary.BigEndian.Uint32(d[4:8]),
		BitDepth:          d[8],
		ColorType:         ColorType(d[9]),
		CompressionMethod: d[10],
		FilterMethod:      d[11],
		InterlaceMethod:   d[12],
	}
	if h.Width == 0 || h.Height == 0 {
		return Header{}, errors.WithStack(FormatError("zero width or height"))
	}
	if h.Width > 1<<31-1 || h.Height > 1<<31-1 {
		return Header{}, errors.WithStack(FormatError("dimension overflow"))
	}
	if h.CompressionMethod != 0 {
		return Header{}, errors.WithStack(UnsupportedError("compression method"))
	}
	if h.FilterMethod != 0 {
		return Header{}, errors.WithStack(UnsupportedError("filter method"))
	}
	if h.InterlaceMethod != 0 && h.InterlaceMethod != 1 {
		return Header{}, errors.WithStack(UnsupportedError("interlace method"))
	}
	if !legalCombination(h.ColorType, h.BitDepth) {
		return Header{}, errors.WithStack(FormatError("illegal color type and bit depth combination"))
	}
	return h, nil
}
