// Package packets implements the SNTP wire format (RFC 4330 §4): the
// 48-byte message, the bit-packed header byte and the 32.32 fixed-point
// timestamp format.
package packets

import (
	"errors"
)

// LeapIndicator warns of an impending leap second (2-bit field).
type LeapIndicator byte

// Available leap indicator values.
const (
	LeapNoWarning LeapIndicator = iota
	LeapAddSecond
	LeapDeleteSecond
	LeapNotInSync
)

// Mode defines the protocol mode (3-bit field).
type Mode byte

// Available modes.
const (
	ModeReserved Mode = iota
	ModeSymmetricActive
	ModeSymmetricPassive
	ModeClient
	ModeServer
	ModeBroadcast
	ModeControlMessage
	ModePrivate
)

// Protocol versions.
const (
	ProtocolVersion3 uint8 = 3
	ProtocolVersion4 uint8 = 4
)

// Errors
var (
	ErrInvalidPacketLength  = errors.New("sntp: at least 48 bytes of data are expected")
	ErrInvalidLeapIndicator = errors.New("sntp: leap indicator must fit in 2 bits")
	ErrInvalidVersion       = errors.New("sntp: version must fit in 3 bits")
	ErrInvalidMode          = errors.New("sntp: mode must fit in 3 bits")
)

// PackHeader packs the leap indicator, version and mode fields into the
// first header byte (leap indicator bits 7-6, version bits 5-3, mode
// bits 2-0). Values outside the 2 / 3-bit domains return an error.
func PackHeader(li LeapIndicator, version uint8, mode Mode) (byte, error) {
	if li > 0x03 {
		return 0, ErrInvalidLeapIndicator
	}
	if version > 0x07 {
		return 0, ErrInvalidVersion
	}
	if mode > 0x07 {
		return 0, ErrInvalidMode
	}
	return byte(li)<<6 | version<<3 | byte(mode), nil
}

// UnpackHeader unpacks the first header byte into its leap indicator,
// version and mode fields. Both sub-byte domains are exhaustive, so every
// bit pattern is valid and unpacking can not fail.
func UnpackHeader(b byte) (LeapIndicator, uint8, Mode) {
	return LeapIndicator(b >> 6), (b >> 3) & 0x07, Mode(b & 0x07)
}

// String implements the Stringer interface.
func (li LeapIndicator) String() string {
	switch li {
	case LeapNoWarning:
		return "NoWarning"
	case LeapAddSecond:
		return "AddSecond"
	case LeapDeleteSecond:
		return "DeleteSecond"
	case LeapNotInSync:
		return "NotInSync"
	default:
		return "Invalid"
	}
}

// String implements the Stringer interface.
func (m Mode) String() string {
	switch m {
	case ModeReserved:
		return "Reserved"
	case ModeSymmetricActive:
		return "SymmetricActive"
	case ModeSymmetricPassive:
		return "SymmetricPassive"
	case ModeClient:
		return "Client"
	case ModeServer:
		return "Server"
	case ModeBroadcast:
		return "Broadcast"
	case ModeControlMessage:
		return "ControlMessage"
	case ModePrivate:
		return "Private"
	default:
		return "Invalid"
	}
}
