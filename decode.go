package png

import (
	"github.com/pkg/errors"

	"github.com/fumin/pngcodec/internal/ancillary"
)

// Metadata is one decoded ancillary-chunk record, tagged with its chunk
// type and the byte offset of the chunk it came from.
type Metadata struct {
	Type   string
	Offset int64
	Record interface{}
}

// Details mirrors spec §6's decode-result "details" field.
type Details struct {
	BitDepth        uint8
	ColorType       ColorType
	InterlaceMethod uint8
}

// Result is the full decode output, spec §6.
type Result struct {
	Image     Image
	Details   Details
	Palette   Palette
	Metadata  []Metadata
	RawChunks []Chunk
	Warnings  []Warning
	Info      []string
}

// decodeContext is the short-lived record threaded through every decode
// subroutine, per spec §3/§9: it owns the warnings list, the
// already-parsed-chunk-types set, and the options snapshot, modeled as an
// explicit value rather than the mutate-the-receiver global state
// XC-Zero-simple-png/png.go's Png/ParseChunk uses.
type decodeContext struct {
	opts     DecodeOptions
	Warnings []Warning
	Info     []string
	seen     map[ChunkType]bool
}

func newDecodeContext(opts DecodeOptions) *decodeContext {
	return &decodeContext{opts: opts, seen: make(map[ChunkType]bool)}
}

func (ctx *decodeContext) knownAncillary(t ChunkType) bool {
	return ancillary.Known(t.String())
}

// Decode runs the full pipeline of spec §2: signature check, chunk
// framing, ordering validation, IHDR parse, IDAT concatenation+inflate,
// filter reversal, de-interlacing, pixel unpacking, and ancillary chunk
// dispatch.
func Decode(b []byte, opts DecodeOptions) (Result, error) {
	ctx := newDecodeContext(opts)

	rest, err := checkSignature(b)
	if err != nil {
		return Result{}, err
	}

	chunks, err := frameChunks(rest)
	if err != nil {
		return Result{}, err
	}
	if len(chunks) == 0 {
		return Result{}, errors.WithStack(FormatError("no chunks present"))
	}

	if err := ctx.validateOrdering(chunks); err != nil {
		return Result{}, err
	}

	h, err := parseIHDR(chunks[0])
	if err != nil {
		return Result{}, err
	}

	var (
		pal          Palette
		trns         *Transparency
		idatChunks   []Chunk
		metadata     []Metadata
	)

	for _, c := range chunks {
		if c.Type == ctIEND {
			break // chunks after IEND were warned about by validateOrdering and are ignored
		}
		switch c.Type {
		case ctIHDR, ctIEND:
			// handled elsewhere
		case ctPLTE:
			if h.ColorType == ColorGrayscale || h.ColorType == ColorGrayscaleAlpha {
				if err := ctx.warnf(c.Offset, "PLTE forbidden for color type %d", h.ColorType); err != nil {
					return Result{}, err
				}
				continue
			}
			p, err := parsePLTE(c)
			if err != nil {
				return Result{}, err
			}
			pal = p
		case ctTRNS:
			t, err := parseTRNS(c, h, len(pal))
			if err != nil {
				return Result{}, err
			}
			trns = &t
		case ctIDAT:
			idatChunks = append(idatChunks, c)
		default:
			if !c.IsAncillary() {
				continue // unrecognized critical chunks already failed validateOrdering
			}
			if !opts.allows(c.Type.String()) {
				continue
			}
			rec, known, err := ancillary.Decode(ancillary.Header{
				Width: h.Width, Height: h.Height, BitDepth: h.BitDepth,
				ColorType: uint8(h.ColorType), CompressionMethod: h.CompressionMethod,
				FilterMethod: h.FilterMethod, InterlaceMethod: h.InterlaceMethod,
			}, ancillary.Chunk{Type: c.Type, Data: c.Data})
			if !known {
				continue
			}
			if err != nil {
				if werr := ctx.warnf(c.Offset, "ancillary chunk %s: %v", c.Type, err); werr != nil {
					return Result{}, werr
				}
				continue
			}
			metadata = append(metadata, Metadata{Type: c.Type.String(), Offset: c.Offset, Record: rec})
		}
	}

	if h.ColorType == ColorIndexed && len(pal) == 0 {
		return Result{}, errors.WithStack(FormatError("indexed color type requires a PLTE chunk"))
	}

	wantLen := rawScanlineLength(h)
	inflated, err := inflateIDAT(idatChunks, wantLen)
	if err != nil {
		return Result{}, err
	}

	var raw []byte
	if h.InterlaceMethod == 0 {
		raw, err = reverseScanlines(inflated, int(h.Width), int(h.Height), h.BitsPerPixel())
	} else {
		raw, err = deinterlaceAdam7(inflated, h)
	}
	if err != nil {
		return Result{}, err
	}

	img, err := unpack(raw, unpackContext{h: h, pal: pal, trns: trns, force32: opts.Force32})
	if err != nil {
		return Result{}, err
	}

	return Result{
		Image:     img,
		Details:   Details{BitDepth: h.BitDepth, ColorType: h.ColorType, InterlaceMethod: h.InterlaceMethod},
		Palette:   pal,
		Metadata:  metadata,
		RawChunks: chunks,
		Warnings:  ctx.Warnings,
		Info:      ctx.Info,
	}, nil
}
