package png

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// buildChunk frames one chunk (used by tests to hand-assemble byte streams
// without going through the public Encode path).
func buildChunk(typ [4]byte, data []byte) []byte {
	var buf bytes.Buffer
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(data)))
	buf.Write(lenBuf[:])
	buf.Write(typ[:])
	buf.Write(data)
	var crcBuf [4]byte
	binary.BigEndian.PutUint32(crcBuf[:], crcOf(ChunkType(typ), data))
	buf.Write(crcBuf[:])
	return buf.Bytes()
}

func TestFrameChunksWellFormed(t *testing.T) {
	var stream bytes.Buffer
	stream.Write(buildChunk(ctIHDR, make([]byte, 13)))
	stream.Write(buildChunk(ctIDAT, []byte{1, 2, 3}))
	stream.Write(buildChunk(ctIEND, nil))

	chunks, err := frameChunks(stream.Bytes())
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	if chunks[0].Type != ctIHDR || chunks[1].Type != ctIDAT || chunks[2].Type != ctIEND {
		t.Fatalf("unexpected chunk order: %+v", chunks)
	}
	for _, c := range chunks {
		if !c.CRCValid {
			t.Fatalf("chunk %s: CRC should be valid", c.Type)
		}
	}
}

func TestFrameChunksTruncated(t *testing.T) {
	full := buildChunk(ctIHDR, make([]byte, 13))
	if _, err := frameChunks(full[:len(full)-5]); err == nil {
		t.Fatalf("expected truncation error")
	}
}

// TestCRCMismatchIsWarningNotFatal covers spec §8 scenario 3: corrupting
// one byte of a chunk's data flips CRCValid to false but frameChunks itself
// does not fail; the ordering validator is what turns that into a warning.
func TestCRCMismatchIsWarningNotFatal(t *testing.T) {
	corrupted := buildChunk(ctIDAT, []byte{1, 2, 3})
	corrupted[8] ^= 0xFF // flip a data byte after length+type

	chunks, err := frameChunks(corrupted)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if chunks[0].CRCValid {
		t.Fatalf("expected CRC mismatch to be detected")
	}
}
