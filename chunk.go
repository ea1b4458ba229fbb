package png

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// ChunkType is a chunk's 4-ASCII-byte type code, e.g. "IHDR".
type ChunkType [4]byte

func (t ChunkType) String() string { return string(t[:]) }

// Casing-derived flags, per spec §3. Bit 5 (0x20) of the relevant byte
// distinguishes upper/lower case in ASCII.
func (t ChunkType) isAncillary() bool     { return t[0]&0x20 != 0 }
func (t ChunkType) isPrivate() bool       { return t[1]&0x20 != 0 }
func (t ChunkType) isReservedValid() bool { return t[2]&0x20 == 0 }
func (t ChunkType) isSafeToCopy() bool    { return t[3]&0x20 != 0 }

// Well-known chunk types the ordering validator and core decoder care about
// directly; everything else is either dispatched to internal/ancillary or
// ignored per its casing.
var (
	ctIHDR = ChunkType{'I', 'H', 'D', 'R'}
	ctPLTE = ChunkType{'P', 'L', 'T', 'E'}
	ctIDAT = ChunkType{'I', 'D', 'A', 'T'}
	ctIEND = ChunkType{'I', 'E', 'N', 'D'}
	ctTRNS = ChunkType{'t', 'R', 'N', 'S'}
	ctBKGD = ChunkType{'b', 'K', 'G', 'D'}
	ctHIST = ChunkType{'h', 'I', 'S', 'T'}
	ctSPLT = ChunkType{'s', 'P', 'L', 'T'}
)

// Chunk is a framed PNG chunk record, spec §3.
type Chunk struct {
	Offset     int64
	Type       ChunkType
	DataLength uint32
	Data       []byte
	CRC        uint32
	// CRCValid is false when the on-disk CRC did not match; a mismatch is
	// recorded as a warning, not a fatal error, per spec §3/§7.
	CRCValid bool
}

func (c Chunk) IsAncillary() bool     { return c.Type.isAncillary() }
func (c Chunk) IsPrivate() bool       { return c.Type.isPrivate() }
func (c Chunk) IsReservedValid() bool { return c.Type.isReservedValid() }
func (c Chunk) IsSafeToCopy() bool    { return c.Type.isSafeToCopy() }

// isCritical reports whether the chunk type's first letter is uppercase.
func (t ChunkType) isCritical() bool { return t[0]&0x20 == 0 }

// frameChunks walks b (positioned right after the 8-byte signature) and
// splits it into an ordered list of chunks, per spec §4.1. It never copies
// chunk data out of b; each Chunk.Data is a slice into the input.
func frameChunks(b []byte) ([]Chunk, error) {
	var chunks []Chunk
	offset := int64(8)
	for len(b) > 0 {
		if len(b) < 8 {
			return chunks, errors.WithStack(FormatError("truncated chunk header"))
		}
		length := binary.BigEndian.Uint32(b[0:4])
		if length > 1<<31-1 {
			return chunks, errors.WithStack(FormatError("chunk length exceeds 2^31-1"))
		}
		var typ ChunkType
		copy(typ[:], b[4:8])

		need := int64(12) + int64(length)
		if int64(len(b)) < need {
			return chunks, errors.WithStack(FormatError("truncated chunk data"))
		}

		data := b[8 : 8+length]
		storedCRC := binary.BigEndian.Uint32(b[8+length : 12+length])
		computedCRC := crcOf(typ, data)

		chunks = append(chunks, Chunk{
			Offset:     offset,
			Type:       typ,
			DataLength: length,
			Data:       data,
			CRC:        storedCRC,
			CRCValid:   storedCRC == computedCRC,
		})

		b = b[need:]
		offset += need
	}
	return chunks, nil
}
