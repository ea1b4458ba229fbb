// Package ancillary implements the small, independent parsers for PNG
// ancillary metadata chunks (gAMA, cHRM, tEXt, and so on), invoked by the
// core decoder once a chunk has been framed and validated, per spec §6's
// collaborator contract. Selection by type is a static table, per spec
// §9's design note, rather than any runtime/dynamic-loading mechanism.
package ancillary

import "github.com/pkg/errors"

// Header is the subset of the parsed IHDR the ancillary decoders need to
// interpret their payload (e.g. bKGD's shape depends on color type).
type Header struct {
	Width, Height     uint32
	BitDepth          uint8
	ColorType         uint8
	CompressionMethod uint8
	FilterMethod      uint8
	InterlaceMethod   uint8
}

// Chunk is the minimal chunk view an ancillary decoder reads from.
type Chunk struct {
	Type [4]byte
	Data []byte
}

func (c Chunk) TypeString() string { return string(c.Type[:]) }

// Decoder is the collaborator contract of spec §6: a pure function reading
// chunk.Data, returning a metadata record or an error (treated by the
// caller as a decode warning, which is fatal only under strict mode).
type Decoder func(h Header, c Chunk) (interface{}, error)

// Registry maps the 15 known ancillary chunk types to their decoders, spec
// §9's static table. Types not present here are simply unknown ancillary
// chunks, reported as info by the core, never dispatched.
var Registry = map[string]Decoder{
	"tEXt": decodeText,
	"zTXt": decodeZTXt,
	"iTXt": decodeIText,
	"tIME": decodeTime,
	"pHYs": decodePhys,
	"gAMA": decodeGama,
	"cHRM": decodeChrm,
	"sRGB": decodeSRGB,
	"iCCP": decodeICCP,
	"bKGD": decodeBkgd,
	"sBIT": decodeSbit,
	"hIST": decodeHist,
	"sPLT": decodeSplt,
	"oFFs": decodeOffs,
	"pCAL": decodePcal,
}

// Known reports whether typ is one of the 15 registered ancillary chunk
// types.
func Known(typ string) bool {
	_, ok := Registry[typ]
	return ok
}

// Decode dispatches c to its registered decoder, or returns (nil, false) if
// typ is not known.
func Decode(h Header, c Chunk) (interface{}, bool, error) {
	dec, ok := Registry[c.TypeString()]
	if !ok {
		return nil, false, nil
	}
	rec, err := dec(h, c)
	if err != nil {
		return nil, true, errors.WithStack(err)
	}
	return rec, true, nil
}
