package png

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"

	"github.com/pkg/errors"
)

// Encode runs the mirror image of Decode, spec §4.7/§6: pack the RGBA
// image into the requested native layout, select filters per scanline,
// deflate, frame chunks with CRC, and prefix the signature. fumin-png's
// retrieved snapshot references a writer (writer_test.go calls
// NewEncoder(BestSpeed).Encode) but ships no body for it; this implements
// that missing writer in the reader's own idiom (same stage ordering, same
// scratch-buffer discipline).
func Encode(img Image, opts EncodeOptions) ([]byte, error) {
	if opts.BitDepth != 8 && opts.BitDepth != 16 {
		return nil, errors.WithStack(FormatError("bit depth must be 8 or 16"))
	}
	if !legalCombination(opts.ColorType, opts.BitDepth) {
		return nil, errors.WithStack(FormatError("illegal color type and bit depth combination"))
	}

	pc := packContext{colorType: opts.ColorType, bitDepth: opts.BitDepth}
	var pal Palette
	var palAlpha []uint8
	if opts.ColorType == ColorIndexed {
		p, a, index, err := synthesizePalette(img)
		if err != nil {
			return nil, err
		}
		pal, pc.palette, pc.index = p, p, index
		palAlpha = a
	}

	raw, err := packScanlines(img, pc)
	if err != nil {
		return nil, err
	}

	bpp := opts.ColorType.Channels() * int(opts.BitDepth)
	filtered := filterScanlines(raw, img.Width, img.Height, bpp)

	var deflated bytes.Buffer
	zw := zlib.NewWriter(&deflated)
	if _, err := zw.Write(filtered); err != nil {
		return nil, errors.Wrap(err, "deflate IDAT")
	}
	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(err, "deflate IDAT")
	}

	var out bytes.Buffer
	out.Write(pngSignature[:])

	h := Header{
		Width: uint32(img.Width), Height: uint32(img.Height),
		BitDepth: opts.BitDepth, ColorType: opts.ColorType,
		CompressionMethod: 0, FilterMethod: 0, InterlaceMethod: 0,
	}
	if err := writeChunk(&out, ctIHDR, encodeIHDR(h)); err != nil {
		return nil, err
	}

	if pal != nil {
		if err := writeChunk(&out, ctPLTE, encodePalette(pal)); err != nil {
			return nil, err
		}
		if trns := encodeTRNS(palAlpha); trns != nil {
			if err := writeChunk(&out, ctTRNS, trns); err != nil {
				return nil, err
			}
		}
	}

	if deflated.Len() > 1<<31-1 {
		return nil, errors.WithStack(UnsupportedError("compressed IDAT payload exceeds 2^31-1 bytes"))
	}
	if err := writeChunk(&out, ctIDAT, deflated.Bytes()); err != nil {
		return nil, err
	}

	for _, anc := range opts.AncillaryChunks {
		if err := writeChunk(&out, ChunkType(anc.Type), anc.Data); err != nil {
			return nil, err
		}
	}

	if err := writeChunk(&out, ctIEND, nil); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

func encodeIHDR(h Header) []byte {
	b := make([]byte, ihdrLength)
	binary.BigEndian.PutUint32(b[0:4], h.Width)
	binary.BigEndian.PutUint32(b[4:8], h.Height)
	b[8] = h.BitDepth
	b[9] = uint8(h.ColorType)
	b[10] = h.CompressionMethod
	b[11] = h.FilterMethod
	b[12] = h.InterlaceMethod
	return b
}

// encodeTRNS builds the tRNS chunk data for an indexed-color palette's
// alpha array, spec §4.7 step 4. Trailing fully-opaque entries are legally
// omittable (readers assume 255 for any palette slot past the tRNS
// length), so they are trimmed; if every entry is opaque, no tRNS chunk
// is needed at all and encodeTRNS reports that with a nil return.
func encodeTRNS(alpha []uint8) []byte {
	last := -1
	for i, a := range alpha {
		if a != 255 {
			last = i
		}
	}
	if last < 0 {
		return nil
	}
	return append([]byte(nil), alpha[:last+1]...)
}

func encodePalette(pal Palette) []byte {
	b := make([]byte, 3*len(pal))
	for i, e := range pal {
		b[3*i], b[3*i+1], b[3*i+2] = e.R, e.G, e.B
	}
	return b
}

func writeChunk(out *bytes.Buffer, typ ChunkType, data []byte) error {
	if len(data) > 1<<31-1 {
		return errors.WithStack(UnsupportedError("chunk data exceeds 2^31-1 bytes"))
	}
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(data)))
	out.Write(lenBuf[:])
	out.Write(typ[:])
	out.Write(data)
	var crcBuf [4]byte
	binary.BigEndian.PutUint32(crcBuf[:], crcOf(typ, data))
	out.Write(crcBuf[:])
	return nil
}
