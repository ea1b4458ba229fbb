package png

import "github.com/pkg/errors"

// RGB is a single palette entry, spec §3. Grounded on
// XC-Zero-simple-png/chunk.go's PLTE{Red,Green,Blue} record shape.
type RGB struct {
	R, G, B uint8
}

// Palette is the ordered PLTE entry list, length 1..256.
type Palette []RGB

func parsePLTE(c Chunk) (Palette, error) {
	if c.DataLength == 0 || c.DataLength%3 != 0 {
		return nil, errors.WithStack(FormatError("PLTE length not divisible by 3"))
	}
	n := int(c.DataLength) / 3
	if n > 256 {
		return nil, errors.WithStack(FormatError("PLTE has more than 256 entries"))
	}
	pal := make(Palette, n)
	for i := 0; i < n; i++ {
		pal[i] = RGB{R: c.Data[3*i], G: c.Data[3*i+1], B: c.Data[3*i+2]}
	}
	return pal, nil
}

// Transparency is the decoded tRNS chunk, spec §3. Exactly one of the
// three fields is meaningful, selected by the header's color type.
type Transparency struct {
	// IndexedAlpha holds one alpha byte per palette entry (colorType 3).
	IndexedAlpha []uint8
	// GraySample is the 16-bit "transparent" gray value (colorType 0).
	GraySample uint16
	// RGBSample is the 16-bit RGB "transparent" triple (colorType 2).
	RGBSample [3]uint16
}

func parseTRNS(c Chunk, h Header, palLen int) (Transparency, error) {
	switch h.ColorType {
	case ColorIndexed:
		if int(c.DataLength) > palLen {
			return Transparency{}, errors.WithStack(FormatError("tRNS has more entries than PLTE"))
		}
		return Transparency{IndexedAlpha: append([]uint8(nil), c.Data...)}, nil
	case ColorGrayscale:
		if c.DataLength != 2 {
			return Transparency{}, errors.WithStack(FormatError("bad tRNS length for grayscale"))
		}
		return Transparency{GraySample: be16(c.Data)}, nil
	case ColorRGB:
		if c.DataLength != 6 {
			return Transparency{}, errors.WithStack(FormatError("bad tRNS length for RGB"))
		}
		return Transparency{RGBSample: [3]uint16{be16(c.Data[0:2]), be16(c.Data[2:4]), be16(c.Data[4:6])}}, nil
	default:
		return Transparency{}, errors.WithStack(FormatError("tRNS forbidden for this color type"))
	}
}

func be16(b []byte) uint16 { return uint16(b[0])<<8 | uint16(b[1]) }
