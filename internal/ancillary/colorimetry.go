package ancillary

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// GamaRecord is the decoded gAMA chunk: image gamma * 100000, per the W3C
// field layout transcribed as doc comments in
// XC-Zero-simple-png/chunk.go's GAMA stub (this implements what that stub
// left as panic("implement me")).
type GamaRecord struct {
	GammaTimes100000 uint32
}

func decodeGama(_ Header, c Chunk) (interface{}, error) {
	if len(c.Data) != 4 {
		return nil, errors.New("gAMA: chunk must be 4 bytes")
	}
	return GamaRecord{GammaTimes100000: binary.BigEndian.Uint32(c.Data)}, nil
}

// ChrmRecord is the decoded cHRM chunk: CIE 1931 x,y chromaticities of the
// white point and the red/green/blue primaries, each times 100000.
type ChrmRecord struct {
	WhiteX, WhiteY uint32
	RedX, RedY     uint32
	GreenX, GreenY uint32
	BlueX, BlueY   uint32
}

func decodeChrm(_ Header, c Chunk) (interface{}, error) {
	if len(c.Data) != 32 {
		return nil, errors.New("cHRM: chunk must be 32 bytes")
	}
	u := func(i int) uint32 { return binary.BigEndian.Uint32(c.Data[i : i+4]) }
	return ChrmRecord{
		WhiteX: u(0), WhiteY: u(4),
		RedX: u(8), RedY: u(12),
		GreenX: u(16), GreenY: u(20),
		BlueX: u(24), BlueY: u(28),
	}, nil
}

// SRGBRecord is the decoded sRGB chunk: rendering intent.
type SRGBRecord struct {
	RenderingIntent uint8
}

func decodeSRGB(_ Header, c Chunk) (interface{}, error) {
	if len(c.Data) != 1 {
		return nil, errors.New("sRGB: chunk must be 1 byte")
	}
	if c.Data[0] > 3 {
		return nil, errors.New("sRGB: unknown rendering intent")
	}
	return SRGBRecord{RenderingIntent: c.Data[0]}, nil
}

// ICCPRecord is the decoded iCCP chunk: a named, deflate-compressed ICC
// profile. The profile bytes are kept opaque (matching spec §1's treatment
// of color management as out of scope beyond preserving metadata).
type ICCPRecord struct {
	ProfileName       string
	CompressionMethod uint8
	CompressedProfile []byte
}

func decodeICCP(_ Header, c Chunk) (interface{}, error) {
	i := indexNUL(c.Data)
	if i < 0 || i == 0 || i > 79 {
		return nil, errors.New("iCCP: missing or oversized profile name")
	}
	if i+1 >= len(c.Data) {
		return nil, errors.New("iCCP: missing compression method byte")
	}
	return ICCPRecord{
		ProfileName:       string(c.Data[:i]),
		CompressionMethod: c.Data[i+1],
		CompressedProfile: append([]byte(nil), c.Data[i+2:]...),
	}, nil
}
