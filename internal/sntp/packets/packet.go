package packets

import (
	"encoding/binary"
	"time"
)

// packetLength is the fixed wire size of an SNTP message. The optional
// authenticator extension is not supported.
const packetLength = 48

// Packet implements the SNTP message format (RFC 4330 §4). All four
// timestamp fields use the all-zero value as the "not supplied" sentinel.
type Packet struct {
	LeapIndicator  LeapIndicator
	Version        uint8
	Mode           Mode
	Stratum        uint8
	Poll           int8   // log2 seconds between polls
	Precision      int8   // signed log2 seconds clock resolution
	RootDelay      uint32 // 16.16 fixed point, seconds
	RootDispersion uint32 // 16.16 fixed point, seconds
	ReferenceID    uint32
	Reference      Timestamp
	Originate      Timestamp
	Receive        Timestamp
	Transmit       Timestamp
}

// NewClientPacket returns a client request packet. Only the header fields
// and the transmit timestamp are set, all other fields stay at the absent
// sentinel.
func NewClientPacket(version uint8, xmt time.Time) Packet {
	return Packet{
		LeapIndicator: LeapNoWarning,
		Version:       version,
		Mode:          ModeClient,
		Transmit:      NewTimestamp(xmt),
	}
}

// MarshalBinary marshals the object in binary form.
func (p Packet) MarshalBinary() ([]byte, error) {
	header, err := PackHeader(p.LeapIndicator, p.Version, p.Mode)
	if err != nil {
		return nil, err
	}

	out := make([]byte, packetLength)
	out[0] = header
	out[1] = p.Stratum
	out[2] = byte(p.Poll)
	out[3] = byte(p.Precision)
	binary.BigEndian.PutUint32(out[4:8], p.RootDelay)
	binary.BigEndian.PutUint32(out[8:12], p.RootDispersion)
	binary.BigEndian.PutUint32(out[12:16], p.ReferenceID)
	p.Reference.marshalTo(out[16:24])
	p.Originate.marshalTo(out[24:32])
	p.Receive.marshalTo(out[32:40])
	p.Transmit.marshalTo(out[40:48])
	return out, nil
}

// UnmarshalBinary decodes the object from binary form. Datagrams shorter
// than 48 bytes are rejected; trailing bytes (e.g. an authenticator) are
// ignored. Since the leap indicator, version and mode domains are
// exhaustive, no header bit pattern can fail to decode.
func (p *Packet) UnmarshalBinary(data []byte) error {
	if len(data) < packetLength {
		return ErrInvalidPacketLength
	}

	p.LeapIndicator, p.Version, p.Mode = UnpackHeader(data[0])
	p.Stratum = data[1]
	p.Poll = int8(data[2])
	p.Precision = int8(data[3])
	p.RootDelay = binary.BigEndian.Uint32(data[4:8])
	p.RootDispersion = binary.BigEndian.Uint32(data[8:12])
	p.ReferenceID = binary.BigEndian.Uint32(data[12:16])
	p.Reference = unmarshalTimestamp(data[16:24])
	p.Originate = unmarshalTimestamp(data[24:32])
	p.Receive = unmarshalTimestamp(data[32:40])
	p.Transmit = unmarshalTimestamp(data[40:48])
	return nil
}
