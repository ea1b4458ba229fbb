package ancillary

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// BkgdRecord is the decoded bKGD chunk. Its shape depends on color type, so
// exactly one field group is populated, mirroring Transparency in the core
// package's tRNS handling. This implements what
// XC-Zero-simple-png/chunk.go's BKGD stub left as panic("implement me"),
// following the field layout transcribed in that file's doc comment.
type BkgdRecord struct {
	PaletteIndex *uint8
	Gray         *uint16
	RGB          *[3]uint16
}

func decodeBkgd(h Header, c Chunk) (interface{}, error) {
	switch h.ColorType {
	case 3: // indexed
		if len(c.Data) != 1 {
			return nil, errors.New("bKGD: chunk must be 1 byte for indexed color")
		}
		v := c.Data[0]
		return BkgdRecord{PaletteIndex: &v}, nil
	case 0, 4: // grayscale, grayscale+alpha
		if len(c.Data) != 2 {
			return nil, errors.New("bKGD: chunk must be 2 bytes for grayscale")
		}
		v := binary.BigEndian.Uint16(c.Data)
		return BkgdRecord{Gray: &v}, nil
	case 2, 6: // truecolor, truecolor+alpha
		if len(c.Data) != 6 {
			return nil, errors.New("bKGD: chunk must be 6 bytes for truecolor")
		}
		v := [3]uint16{
			binary.BigEndian.Uint16(c.Data[0:2]),
			binary.BigEndian.Uint16(c.Data[2:4]),
			binary.BigEndian.Uint16(c.Data[4:6]),
		}
		return BkgdRecord{RGB: &v}, nil
	default:
		return nil, errors.New("bKGD: unknown color type")
	}
}

// SbitRecord is the decoded sBIT chunk: original significant-bit counts per
// channel before PNG's depth normalization, shape depending on color type.
type SbitRecord struct {
	Bits []uint8
}

func decodeSbit(h Header, c Chunk) (interface{}, error) {
	var want int
	switch h.ColorType {
	case 0:
		want = 1
	case 2, 3:
		want = 3
	case 4:
		want = 2
	case 6:
		want = 4
	default:
		return nil, errors.New("sBIT: unknown color type")
	}
	if len(c.Data) != want {
		return nil, errors.New("sBIT: unexpected chunk length for color type")
	}
	return SbitRecord{Bits: append([]uint8(nil), c.Data...)}, nil
}

// HistRecord is the decoded hIST chunk: one approximate usage count per
// palette entry.
type HistRecord struct {
	Frequency []uint16
}

func decodeHist(_ Header, c Chunk) (interface{}, error) {
	if len(c.Data)%2 != 0 {
		return nil, errors.New("hIST: chunk length must be even")
	}
	n := len(c.Data) / 2
	freq := make([]uint16, n)
	for i := 0; i < n; i++ {
		freq[i] = binary.BigEndian.Uint16(c.Data[2*i : 2*i+2])
	}
	return HistRecord{Frequency: freq}, nil
}

// SpltEntry is one suggested-palette entry; Sample width is 8 or 16 bits
// per SpltRecord.SampleDepth.
type SpltEntry struct {
	R, G, B, A uint16
	Frequency  uint16
}

// SpltRecord is the decoded sPLT chunk: a named suggested reduced palette.
type SpltRecord struct {
	Name       string
	SampleDepth uint8
	Entries    []SpltEntry
}

func decodeSplt(_ Header, c Chunk) (interface{}, error) {
	i := indexNUL(c.Data)
	if i < 0 || i == 0 || i > 79 {
		return nil, errors.New("sPLT: missing or oversized palette name")
	}
	if i+1 >= len(c.Data) {
		return nil, errors.New("sPLT: missing sample depth byte")
	}
	depth := c.Data[i+1]
	rest := c.Data[i+2:]

	var entrySize int
	switch depth {
	case 8:
		entrySize = 6 // 4x1-byte samples + 2-byte frequency
	case 16:
		entrySize = 10 // 4x2-byte samples + 2-byte frequency
	default:
		return nil, errors.New("sPLT: sample depth must be 8 or 16")
	}
	if len(rest)%entrySize != 0 {
		return nil, errors.New("sPLT: entry data not a multiple of entry size")
	}

	n := len(rest) / entrySize
	entries := make([]SpltEntry, n)
	for e := 0; e < n; e++ {
		chunk := rest[e*entrySize : (e+1)*entrySize]
		if depth == 8 {
			entries[e] = SpltEntry{
				R: uint16(chunk[0]), G: uint16(chunk[1]), B: uint16(chunk[2]), A: uint16(chunk[3]),
				Frequency: binary.BigEndian.Uint16(chunk[4:6]),
			}
		} else {
			entries[e] = SpltEntry{
				R: binary.BigEndian.Uint16(chunk[0:2]),
				G: binary.BigEndian.Uint16(chunk[2:4]),
				B: binary.BigEndian.Uint16(chunk[4:6]),
				A: binary.BigEndian.Uint16(chunk[6:8]),
				Frequency: binary.BigEndian.Uint16(chunk[8:10]),
			}
		}
	}
	return SpltRecord{Name: string(c.Data[:i]), SampleDepth: depth, Entries: entries}, nil
}
