package ancillary

import (
	"encoding/binary"
	"time"

	"github.com/pkg/errors"
)

// TimeRecord is the decoded tIME chunk, grounded on
// XC-Zero-simple-png/chunk.go's TIME struct and its ToTime helper.
type TimeRecord struct {
	Year   uint16
	Month  uint8
	Day    uint8
	Hour   uint8
	Minute uint8
	Second uint8
}

// AsTime converts the record to a time.Time in UTC, matching
// XC-Zero-simple-png/chunk.go's TIME.ToTime.
func (t TimeRecord) AsTime() time.Time {
	return time.Date(int(t.Year), time.Month(t.Month), int(t.Day), int(t.Hour), int(t.Minute), int(t.Second), 0, time.UTC)
}

func decodeTime(_ Header, c Chunk) (interface{}, error) {
	if len(c.Data) != 7 {
		return nil, errors.New("tIME: chunk must be 7 bytes")
	}
	return TimeRecord{
		Year:   binary.BigEndian.Uint16(c.Data[0:2]),
		Month:  c.Data[2],
		Day:    c.Data[3],
		Hour:   c.Data[4],
		Minute: c.Data[5],
		Second: c.Data[6],
	}, nil
}
