package packets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackUnpackHeader(t *testing.T) {
	assert := assert.New(t)

	// The 2 and 3-bit domains are exhaustive, test every combination.
	for li := LeapIndicator(0); li <= 3; li++ {
		for version := uint8(0); version <= 7; version++ {
			for mode := Mode(0); mode <= 7; mode++ {
				b, err := PackHeader(li, version, mode)
				assert.Nil(err)

				gotLI, gotVersion, gotMode := UnpackHeader(b)
				assert.Equal(li, gotLI)
				assert.Equal(version, gotVersion)
				assert.Equal(mode, gotMode)
			}
		}
	}
}

func TestPackHeaderRange(t *testing.T) {
	assert := assert.New(t)

	testTable := []struct {
		Name          string
		LeapIndicator LeapIndicator
		Version       uint8
		Mode          Mode
		Error         error
	}{
		{
			Name:          "leap indicator out of range",
			LeapIndicator: 4,
			Version:       ProtocolVersion4,
			Mode:          ModeClient,
			Error:         ErrInvalidLeapIndicator,
		},
		{
			Name:          "version out of range",
			LeapIndicator: LeapNoWarning,
			Version:       8,
			Mode:          ModeClient,
			Error:         ErrInvalidVersion,
		},
		{
			Name:          "mode out of range",
			LeapIndicator: LeapNoWarning,
			Version:       ProtocolVersion4,
			Mode:          8,
			Error:         ErrInvalidMode,
		},
	}

	for _, test := range testTable {
		t.Run(test.Name, func(t *testing.T) {
			_, err := PackHeader(test.LeapIndicator, test.Version, test.Mode)
			assert.Equal(test.Error, err)
		})
	}
}

func TestHeaderBitLayout(t *testing.T) {
	assert := assert.New(t)

	// leap indicator bits 7-6, version bits 5-3, mode bits 2-0
	b, err := PackHeader(LeapNotInSync, ProtocolVersion4, ModeClient)
	assert.Nil(err)
	assert.Equal(byte(0xe3), b)

	b, err = PackHeader(LeapNoWarning, ProtocolVersion3, ModeServer)
	assert.Nil(err)
	assert.Equal(byte(0x1c), b)
}
