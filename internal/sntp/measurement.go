package sntp

import (
	"encoding/binary"
	"time"
)

// Measurement is the result of one request / response exchange against a
// single server. It is published as-is: no filtering or combining of
// measurements takes place.
type Measurement struct {
	Server         string        `json:"server"`
	Stratum        uint8         `json:"stratum"`
	LeapIndicator  uint8         `json:"leap_indicator"`
	Precision      int8          `json:"precision"`
	ReferenceID    uint32        `json:"reference_id"`
	RootDelay      time.Duration `json:"root_delay_ns"`
	RootDispersion time.Duration `json:"root_dispersion_ns"`
	Delay          time.Duration `json:"delay_ns"`
	Offset         time.Duration `json:"offset_ns"`
	Time           time.Time     `json:"time"`
}

// KissCode returns the ASCII kiss-of-death code carried in the reference
// identifier of a stratum 0 response, or an empty string.
func (m Measurement) KissCode() string {
	if m.Stratum != 0 {
		return ""
	}
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], m.ReferenceID)
	for _, c := range b {
		if c < ' ' || c > '~' {
			return ""
		}
	}
	return string(b[:])
}
