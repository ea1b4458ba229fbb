package png

import "github.com/pkg/errors"

// pngSignature is the fixed 8-byte prefix every PNG file starts with.
var pngSignature = [8]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// checkSignature verifies that b begins with the PNG signature and returns
// the remaining bytes (positioned immediately after it), per spec §3/§4.1.
func checkSignature(b []byte) ([]byte, error) {
	if len(b) < len(pngSignature) {
		return nil, errors.WithStack(FormatError("truncated signature"))
	}
	for i, want := range pngSignature {
		if b[i] != want {
			return nil, errors.WithStack(FormatError("not a PNG file"))
		}
	}
	return b[len(pngSignature):], nil
}
