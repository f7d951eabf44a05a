package packets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacket(t *testing.T) {
	testTable := []struct {
		Name   string
		Bytes  []byte
		Packet Packet
	}{
		{
			Name:  "empty packet",
			Bytes: make([]byte, 48),
		},
		{
			Name: "client request",
			Bytes: []byte{
				0x23, 0, 0, 0,
				0, 0, 0, 0,
				0, 0, 0, 0,
				0, 0, 0, 0,
				0, 0, 0, 0, 0, 0, 0, 0,
				0, 0, 0, 0, 0, 0, 0, 0,
				0, 0, 0, 0, 0, 0, 0, 0,
				0xe1, 0xb6, 0x5f, 0x80, 0x80, 0, 0, 0,
			},
			Packet: Packet{
				LeapIndicator: LeapNoWarning,
				Version:       ProtocolVersion4,
				Mode:          ModeClient,
				Transmit:      Timestamp{Seconds: 3786825600, Fraction: 1 << 31},
			},
		},
		{
			Name: "server response",
			Bytes: []byte{
				0x24, 1, 6, 0xec,
				0, 0, 0x02, 0x3f,
				0, 0, 0x08, 0x96,
				0x47, 0x50, 0x53, 0x00,
				0xe1, 0xb6, 0x5f, 0x7f, 0, 0, 0, 0,
				0xe1, 0xb6, 0x5f, 0x80, 0x80, 0, 0, 0,
				0xe1, 0xb6, 0x5f, 0x81, 0, 0, 0, 0,
				0xe1, 0xb6, 0x5f, 0x81, 0x40, 0, 0, 0,
			},
			Packet: Packet{
				LeapIndicator:  LeapNoWarning,
				Version:        ProtocolVersion4,
				Mode:           ModeServer,
				Stratum:        1,
				Poll:           6,
				Precision:      -20,
				RootDelay:      0x023f,
				RootDispersion: 0x0896,
				ReferenceID:    0x47505300, // "GPS"
				Reference:      Timestamp{Seconds: 3786825599},
				Originate:      Timestamp{Seconds: 3786825600, Fraction: 1 << 31},
				Receive:        Timestamp{Seconds: 3786825601},
				Transmit:       Timestamp{Seconds: 3786825601, Fraction: 1 << 30},
			},
		},
	}

	for _, test := range testTable {
		t.Run(test.Name, func(t *testing.T) {
			assert := require.New(t)

			b, err := test.Packet.MarshalBinary()
			assert.NoError(err)
			assert.Len(b, 48)
			assert.Equal(test.Bytes, b)

			var p Packet
			assert.NoError(p.UnmarshalBinary(test.Bytes))
			assert.Equal(test.Packet, p)
		})
	}
}

func TestPacketRoundTrip(t *testing.T) {
	assert := assert.New(t)

	xmt := time.Date(2023, 6, 15, 12, 30, 45, 500000000, time.UTC)

	// Every header combination survives a marshal / unmarshal round trip.
	for li := LeapIndicator(0); li <= 3; li++ {
		for version := uint8(0); version <= 7; version++ {
			for mode := Mode(0); mode <= 7; mode++ {
				p := Packet{
					LeapIndicator: li,
					Version:       version,
					Mode:          mode,
					Stratum:       2,
					Transmit:      NewTimestamp(xmt),
				}

				b, err := p.MarshalBinary()
				assert.Nil(err)
				assert.Len(b, 48)

				var out Packet
				assert.Nil(out.UnmarshalBinary(b))
				assert.Equal(p, out)
			}
		}
	}
}

func TestPacketUnmarshalLength(t *testing.T) {
	assert := assert.New(t)

	var p Packet
	assert.Equal(ErrInvalidPacketLength, p.UnmarshalBinary(make([]byte, 40)))
	assert.Equal(ErrInvalidPacketLength, p.UnmarshalBinary(nil))

	// 48 bytes always decode, whatever the header bit pattern.
	for i := 0; i <= 255; i++ {
		b := make([]byte, 48)
		b[0] = byte(i)
		assert.Nil(p.UnmarshalBinary(b))
	}

	// Trailing authenticator bytes are ignored.
	assert.Nil(p.UnmarshalBinary(make([]byte, 68)))
}

func TestNewClientPacket(t *testing.T) {
	assert := assert.New(t)

	xmt := time.Date(2023, 6, 15, 12, 30, 45, 0, time.UTC)
	p := NewClientPacket(ProtocolVersion4, xmt)

	assert.Equal(LeapNoWarning, p.LeapIndicator)
	assert.Equal(ProtocolVersion4, p.Version)
	assert.Equal(ModeClient, p.Mode)
	assert.Equal(NewTimestamp(xmt), p.Transmit)

	// All other fields stay at the absent sentinel.
	assert.True(p.Reference.IsZero())
	assert.True(p.Originate.IsZero())
	assert.True(p.Receive.IsZero())
	assert.EqualValues(0, p.Stratum)
	assert.EqualValues(0, p.RootDelay)
	assert.EqualValues(0, p.RootDispersion)
}
