package packets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimestampEpochs(t *testing.T) {
	assert := assert.New(t)

	// The era offset maps to the Unix epoch.
	assert.Equal(time.Unix(0, 0).UTC(), Timestamp{Seconds: eraOffset}.Time())

	// The zero timestamp maps to the NTP epoch, 2208988800 seconds before
	// the Unix epoch.
	assert.Equal(time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC), Timestamp{}.Time())
	assert.Equal(time.Unix(-eraOffset, 0).UTC(), Timestamp{}.Time())
}

func TestTimestampConversion(t *testing.T) {
	assert := assert.New(t)

	testTable := []struct {
		Time      time.Time
		Timestamp Timestamp
	}{
		{
			Time:      time.Unix(0, 0),
			Timestamp: Timestamp{Seconds: eraOffset},
		},
		{
			Time:      time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			Timestamp: Timestamp{Seconds: 3786825600},
		},
		{
			// 0.5 s is exactly representable in 32-bit fractions.
			Time:      time.Date(2020, 1, 1, 0, 0, 0, 500000000, time.UTC),
			Timestamp: Timestamp{Seconds: 3786825600, Fraction: 1 << 31},
		},
		{
			Time:      time.Date(2020, 1, 1, 0, 0, 0, 250000000, time.UTC),
			Timestamp: Timestamp{Seconds: 3786825600, Fraction: 1 << 30},
		},
	}

	for _, test := range testTable {
		assert.Equal(test.Timestamp, NewTimestamp(test.Time))
		assert.True(test.Time.UTC().Equal(test.Timestamp.Time()))
	}
}

func TestTimestampFractionTruncates(t *testing.T) {
	assert := assert.New(t)

	// 1 ns is below the ~233 ps fraction resolution times four, the
	// fraction must be truncated instead of rounded up.
	ts := NewTimestamp(time.Unix(10, 1))
	assert.Equal(uint32(4), ts.Fraction)

	ts = NewTimestamp(time.Unix(10, 0))
	assert.Equal(uint32(0), ts.Fraction)
}

func TestShortDuration(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(time.Duration(0), ShortDuration(0))
	assert.Equal(time.Second, ShortDuration(1<<16))
	assert.Equal(500*time.Millisecond, ShortDuration(1<<15))
	assert.Equal(2*time.Second+250*time.Millisecond, ShortDuration(2<<16|1<<14))
}

func TestTimestampIsZero(t *testing.T) {
	assert := assert.New(t)

	assert.True(Timestamp{}.IsZero())
	assert.False(Timestamp{Seconds: 1}.IsZero())
	assert.False(Timestamp{Fraction: 1}.IsZero())
}
