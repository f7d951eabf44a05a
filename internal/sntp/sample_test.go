package sntp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSampleDelayOffset(t *testing.T) {
	base := time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)

	testTable := []struct {
		Name   string
		Sample Sample
		Delay  time.Duration
		Offset time.Duration
	}{
		{
			// T1=0s, T2=1s, T3=1s, T4=2s: one second each way, clocks in
			// agreement.
			Name: "symmetric exchange",
			Sample: Sample{
				Originate:   base,
				Receive:     base.Add(time.Second),
				Transmit:    base.Add(time.Second),
				Destination: base.Add(2 * time.Second),
			},
			Delay:  2 * time.Second,
			Offset: 0,
		},
		{
			Name: "server clock ahead",
			Sample: Sample{
				Originate:   base,
				Receive:     base.Add(1500 * time.Millisecond),
				Transmit:    base.Add(1600 * time.Millisecond),
				Destination: base.Add(1100 * time.Millisecond),
			},
			Delay:  time.Second,
			Offset: time.Second,
		},
		{
			Name: "instant exchange",
			Sample: Sample{
				Originate:   base,
				Receive:     base,
				Transmit:    base,
				Destination: base,
			},
			Delay:  0,
			Offset: 0,
		},
	}

	for _, test := range testTable {
		t.Run(test.Name, func(t *testing.T) {
			assert := assert.New(t)

			delay, err := test.Sample.Delay()
			assert.Nil(err)
			assert.Equal(test.Delay, delay)
			assert.EqualValues(test.Delay.Milliseconds(), delay.Milliseconds())

			offset, err := test.Sample.Offset()
			assert.Nil(err)
			assert.Equal(test.Offset, offset)
		})
	}
}

func TestSampleMissingTimestamp(t *testing.T) {
	assert := assert.New(t)

	base := time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)
	complete := Sample{
		Originate:   base,
		Receive:     base.Add(time.Second),
		Transmit:    base.Add(time.Second),
		Destination: base.Add(2 * time.Second),
	}
	assert.True(complete.Complete())

	// Zeroing any of the four timestamps makes the sample unusable. An
	// all-zero originate field on the wire maps to the zero time.Time, so
	// it must fail here instead of being computed as the protocol epoch.
	for i := 0; i < 4; i++ {
		s := complete
		switch i {
		case 0:
			s.Originate = time.Time{}
		case 1:
			s.Receive = time.Time{}
		case 2:
			s.Transmit = time.Time{}
		case 3:
			s.Destination = time.Time{}
		}

		assert.False(s.Complete())

		_, err := s.Delay()
		assert.Equal(ErrMissingTimestamp, err)

		_, err = s.Offset()
		assert.Equal(ErrMissingTimestamp, err)
	}
}

func TestMeasurementKissCode(t *testing.T) {
	assert := assert.New(t)

	m := Measurement{Stratum: 0, ReferenceID: 0x52415445} // "RATE"
	assert.Equal("RATE", m.KissCode())

	m = Measurement{Stratum: 0, ReferenceID: 0x44454e59} // "DENY"
	assert.Equal("DENY", m.KissCode())

	m = Measurement{Stratum: 2, ReferenceID: 0x52415445}
	assert.Equal("", m.KissCode())

	m = Measurement{Stratum: 0, ReferenceID: 0x00000001}
	assert.Equal("", m.KissCode())
}
