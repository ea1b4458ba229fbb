package png

import (
	"bytes"
	"compress/zlib"
	"io"

	"github.com/pkg/errors"
)

// concatIDAT gathers the consecutive IDAT chunk payloads in order. Per spec
// §4.3, this does not copy each byte individually: it builds a small
// io.Reader chain over the existing chunk.Data slices (each already a view
// into the original input, per frameChunks) rather than allocating one
// combined buffer up front.
func concatIDAT(chunks []Chunk) io.Reader {
	readers := make([]io.Reader, 0, len(chunks))
	for _, c := range chunks {
		if c.Type == ctIDAT {
			readers = append(readers, bytes.NewReader(c.Data))
		}
	}
	return io.MultiReader(readers...)
}

// inflateIDAT runs the opaque zlib inflate primitive over the concatenated
// IDAT stream and checks the result against the exact expected length from
// spec §4.3, grounded on fumin-png's use of compress/zlib as the inflate
// adapter.
func inflateIDAT(chunks []Chunk, wantLen int) ([]byte, error) {
	zr, err := zlib.NewReader(concatIDAT(chunks))
	if err != nil {
		return nil, errors.WithStack(FormatError("IDAT inflate failed: " + err.Error()))
	}
	defer zr.Close()

	buf := make([]byte, wantLen)
	n, err := io.ReadFull(zr, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, errors.WithStack(FormatError("IDAT inflate failed: " + err.Error()))
	}
	if n < wantLen {
		return nil, errors.WithStack(FormatError("TRUNCATED_IDAT"))
	}

	// Confirm there is no excess: one more byte shouldn't be readable.
	var extra [1]byte
	if m, _ := zr.Read(extra[:]); m > 0 {
		return nil, errors.WithStack(FormatError("EXCESS_IDAT"))
	}
	return buf, nil
}

// rawScanlineLength computes the exact decompressed length expected from
// the IDAT stream, per spec §4.3.
func rawScanlineLength(h Header) int {
	if h.InterlaceMethod == 0 {
		return scanlineTotal(int(h.Width), int(h.Height), h.BitsPerPixel())
	}
	total := 0
	for _, p := range adam7Passes {
		pw, ph := adam7PassDims(h, p)
		if pw == 0 || ph == 0 {
			continue
		}
		total += scanlineTotal(pw, ph, h.BitsPerPixel())
	}
	return total
}

func scanlineTotal(width, height, bpp int) int {
	rowBytes := 1 + (width*bpp+7)/8
	return height * rowBytes
}
