package ancillary

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// PhysRecord is the decoded pHYs chunk, grounded on
// XC-Zero-simple-png/chunk.go's PHYS struct.
type PhysRecord struct {
	PixelsPerUnitX uint32
	PixelsPerUnitY uint32
	UnitSpecifier  uint8
}

func decodePhys(_ Header, c Chunk) (interface{}, error) {
	if len(c.Data) != 9 {
		return nil, errors.New("pHYs: chunk must be 9 bytes")
	}
	return PhysRecord{
		PixelsPerUnitX: binary.BigEndian.Uint32(c.Data[0:4]),
		PixelsPerUnitY: binary.BigEndian.Uint32(c.Data[4:8]),
		UnitSpecifier:  c.Data[8],
	}, nil
}

// OffsRecord is the decoded oFFs chunk (image position relative to a
// display device), a common PNG extension not in the core W3C set but
// recognized by most decoders.
type OffsRecord struct {
	PositionX     int32
	PositionY     int32
	UnitSpecifier uint8
}

func decodeOffs(_ Header, c Chunk) (interface{}, error) {
	if len(c.Data) != 9 {
		return nil, errors.New("oFFs: chunk must be 9 bytes")
	}
	return OffsRecord{
		PositionX:     int32(binary.BigEndian.Uint32(c.Data[0:4])),
		PositionY:     int32(binary.BigEndian.Uint32(c.Data[4:8])),
		UnitSpecifier: c.Data[8],
	}, nil
}

// PcalRecord is the decoded pCAL chunk (calibration of sample values), a
// textual+numeric extension chunk.
type PcalRecord struct {
	CalibrationName string
	OriginalZeroX   int32
	OriginalZeroY   int32
	EquationType    uint8
	NumParams       uint8
	UnitName        string
}

func decodePcal(_ Header, c Chunk) (interface{}, error) {
	i := indexNUL(c.Data)
	if i < 0 || i == 0 {
		return nil, errors.New("pCAL: missing calibration name")
	}
	rest := c.Data[i+1:]
	if len(rest) < 10 {
		return nil, errors.New("pCAL: truncated header")
	}
	originalZeroX := int32(binary.BigEndian.Uint32(rest[0:4]))
	originalZeroY := int32(binary.BigEndian.Uint32(rest[4:8]))
	equationType := rest[8]
	numParams := rest[9]
	rest = rest[10:]
	j := indexNUL(rest)
	if j < 0 {
		return nil, errors.New("pCAL: missing unit name")
	}
	return PcalRecord{
		CalibrationName: string(c.Data[:i]),
		OriginalZeroX:   originalZeroX,
		OriginalZeroY:   originalZeroY,
		EquationType:    equationType,
		NumParams:       numParams,
		UnitName:        string(rest[:j]),
	}, nil
}

func indexNUL(b []byte) int {
	for i, v := range b {
		if v == 0 {
			return i
		}
	}
	return -1
}
