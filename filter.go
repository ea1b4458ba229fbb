package png

import "github.com/pkg/errors"

// Filter type bytes, spec §4.4.
const (
	filterNone = iota
	filterSub
	filterUp
	filterAverage
	filterPaeth
	numFilters
)

// reverseScanlines undoes the per-scanline filter for a raw inflated region
// of bufferWidth=width, height=height at the given bpp, generalizing
// fumin-png's DecodeRow filter switch (which hard-codes bytesPerPixel=4)
// to the variable filter unit spec §4.4 defines. raw is the full inflated
// slice (filter byte + row data repeated per scanline); it is left
// unmodified, each row being reconstructed in a pair of swapped scratch
// buffers, and the per-row pixel data (without filter bytes) is returned
// concatenated in a new slice.
func reverseScanlines(raw []byte, width, height, bpp int) ([]byte, error) {
	filterUnit := bppCeil(bpp)
	rowBytes := (width*bpp + 7) / 8
	stride := 1 + rowBytes

	out := make([]byte, height*rowBytes)
	prev := make([]byte, rowBytes)
	cur := make([]byte, rowBytes)

	for y := 0; y < height; y++ {
		rowStart := y * stride
		if rowStart+stride > len(raw) {
			return nil, errors.WithStack(FormatError("not enough pixel data"))
		}
		ft := raw[rowStart]
		copy(cur, raw[rowStart+1:rowStart+stride])

		switch ft {
		case filterNone:
			// no-op
		case filterSub:
			for i := filterUnit; i < rowBytes; i++ {
				cur[i] += cur[i-filterUnit]
			}
		case filterUp:
			for i := 0; i < rowBytes; i++ {
				cur[i] += prev[i]
			}
		case filterAverage:
			for i := 0; i < rowBytes; i++ {
				var a byte
				if i >= filterUnit {
					a = cur[i-filterUnit]
				}
				cur[i] += byte((int(a) + int(prev[i])) / 2)
			}
		case filterPaeth:
			for i := 0; i < rowBytes; i++ {
				var a, c byte
				if i >= filterUnit {
					a = cur[i-filterUnit]
					c = prev[i-filterUnit]
				}
				cur[i] += paeth(a, prev[i], c)
			}
		default:
			return nil, errors.WithStack(FormatError("INVALID_FILTER"))
		}

		copy(out[y*rowBytes:], cur)
		prev, cur = cur, prev
	}
	return out, nil
}

// paeth is the Paeth predictor, spec §4.4: p = a+b-c, pick whichever of
// a,b,c minimizes |p-candidate|, ties broken in order a, b, c.
func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// bppCeil is the "filter unit" from spec §4.4/GLOSSARY: max(1, ceil(bpp/8)).
func bppCeil(bppBits int) int {
	u := (bppBits + 7) / 8
	if u < 1 {
		u = 1
	}
	return u
}

// filterScanlines applies the MAD (minimum absolute difference) heuristic
// from spec §4.7 step 2: for each row, compute all five filtered
// candidates and keep the one minimizing the sum of absolute signed byte
// values, prefixed by its filter type byte. No example in the retrieval
// pack writes PNG filters (the teacher only decodes); this mirrors
// reverseScanlines's forward counterpart using the same filterUnit/rowBytes
// accounting.
func filterScanlines(raw []byte, width, height, bpp int) []byte {
	filterUnit := bppCeil(bpp)
	rowBytes := (width*bpp + 7) / 8
	out := make([]byte, height*(1+rowBytes))

	prev := make([]byte, rowBytes)
	candidates := make([][]byte, numFilters)
	for i := range candidates {
		candidates[i] = make([]byte, rowBytes)
	}

	for y := 0; y < height; y++ {
		cur := raw[y*rowBytes : (y+1)*rowBytes]

		sub, up, avg, pae := candidates[filterSub], candidates[filterUp], candidates[filterAverage], candidates[filterPaeth]
		copy(candidates[filterNone], cur)
		for i := 0; i < rowBytes; i++ {
			var a, c byte
			if i >= filterUnit {
				a = cur[i-filterUnit]
				c = prev[i-filterUnit]
			}
			b := prev[i]
			sub[i] = cur[i] - a
			up[i] = cur[i] - b
			avg[i] = cur[i] - byte((int(a)+int(b))/2)
			pae[i] = cur[i] - paeth(a, b, c)
		}

		best := filterNone
		bestScore := madScore(candidates[filterNone])
		for ft := filterSub; ft < numFilters; ft++ {
			if s := madScore(candidates[ft]); s < bestScore {
				best, bestScore = ft, s
			}
		}

		dst := out[y*(1+rowBytes):]
		dst[0] = byte(best)
		copy(dst[1:], candidates[best])

		copy(prev, cur)
	}
	return out
}

func madScore(row []byte) int64 {
	var sum int64
	for _, b := range row {
		v := int(int8(b))
		if v < 0 {
			v = -v
		}
		sum += int64(v)
	}
	return sum
}
