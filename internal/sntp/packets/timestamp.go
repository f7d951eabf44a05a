package packets

import (
	"encoding/binary"
	"time"
)

// eraOffset is the offset between the NTP epoch (1900-01-01) and the Unix
// epoch (1970-01-01) in seconds.
const eraOffset = 2208988800

// Timestamp implements the 64-bit NTP timestamp format: seconds since the
// NTP epoch in the high 32 bits, the second fraction in units of 1/2^32 s
// in the low 32 bits. The seconds counter wraps every 2^32 s (~136 years),
// the first era ending in 2036.
//
// The all-zero timestamp is used on the wire as the "not supplied"
// sentinel. It is bit-identical to the literal NTP epoch instant; whether
// a zero field means "absent" depends on the role of the field within the
// packet and must be tracked by the caller.
type Timestamp struct {
	Seconds  uint32
	Fraction uint32
}

// NewTimestamp converts the given time to the NTP timestamp format. The
// fraction is truncated, not rounded.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{
		Seconds:  uint32(t.Unix() + eraOffset),
		Fraction: uint32(uint64(t.Nanosecond()) << 32 / uint64(time.Second)),
	}
}

// Time converts the timestamp to a time.Time. The subtraction of the era
// offset is signed, so timestamps below the era offset map to instants
// before the Unix epoch.
func (t Timestamp) Time() time.Time {
	sec := int64(t.Seconds) - eraOffset
	nsec := int64(uint64(t.Fraction) * uint64(time.Second) >> 32)
	return time.Unix(sec, nsec).UTC()
}

// IsZero returns true when the timestamp is the all-zero sentinel.
func (t Timestamp) IsZero() bool {
	return t.Seconds == 0 && t.Fraction == 0
}

// ShortDuration converts the 32-bit NTP short format (16-bit seconds,
// 16-bit fraction) used by the root delay and root dispersion fields to a
// time.Duration.
func ShortDuration(v uint32) time.Duration {
	sec := uint64(v>>16) * uint64(time.Second)
	frac := uint64(v&0xffff) * uint64(time.Second) >> 16
	return time.Duration(sec + frac)
}

func (t Timestamp) marshalTo(b []byte) {
	binary.BigEndian.PutUint32(b[0:4], t.Seconds)
	binary.BigEndian.PutUint32(b[4:8], t.Fraction)
}

func unmarshalTimestamp(b []byte) Timestamp {
	return Timestamp{
		Seconds:  binary.BigEndian.Uint32(b[0:4]),
		Fraction: binary.BigEndian.Uint32(b[4:8]),
	}
}
