// Package sntp implements the client-side SNTP arithmetic: the round-trip
// delay and clock offset computation over the four timestamps of a single
// request / response exchange (RFC 4330 §5).
package sntp

import (
	"errors"
	"time"
)

// ErrMissingTimestamp is returned when the delay or offset is requested
// while one of the four exchange timestamps is absent.
var ErrMissingTimestamp = errors.New("sntp: missing exchange timestamp")

// Sample holds the four timestamps of one completed exchange: the client
// transmit instant T1 (originate), the server receive instant T2, the
// server transmit instant T3 and the locally captured receipt instant T4
// (destination). A zero time.Time marks an absent value; an all-zero wire
// field must be mapped to the zero time.Time by the caller before
// constructing a Sample, never to the literal protocol epoch.
//
// The Sample only borrows the values, it holds no reference to the packets
// they came from. All methods are pure and safe for concurrent use.
type Sample struct {
	Originate   time.Time // T1
	Receive     time.Time // T2
	Transmit    time.Time // T3
	Destination time.Time // T4
}

// Complete returns true when all four timestamps are present.
func (s Sample) Complete() bool {
	return !s.Originate.IsZero() && !s.Receive.IsZero() &&
		!s.Transmit.IsZero() && !s.Destination.IsZero()
}

// Delay returns the round-trip delay (T4-T1)-(T3-T2). No plausibility
// check is applied; with asymmetric paths or skewed clocks the result can
// be negative and it is up to the caller to discard such samples.
func (s Sample) Delay() (time.Duration, error) {
	if !s.Complete() {
		return 0, ErrMissingTimestamp
	}
	return s.Destination.Sub(s.Originate) - s.Transmit.Sub(s.Receive), nil
}

// Offset returns the local clock offset ((T2-T1)+(T3-T4))/2 relative to
// the server clock.
func (s Sample) Offset() (time.Duration, error) {
	if !s.Complete() {
		return 0, ErrMissingTimestamp
	}
	return (s.Receive.Sub(s.Originate) + s.Transmit.Sub(s.Destination)) / 2, nil
}
