package backend

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/gridclock/sntp-bridge/internal/backend/sntpudp"
	"github.com/gridclock/sntp-bridge/internal/config"
	"github.com/gridclock/sntp-bridge/internal/sntp"
)

var backend Backend

// Setup configures the backend.
func Setup(conf config.Config) error {
	var err error

	switch conf.Backend.Type {
	case "sntp_udp":
		backend, err = sntpudp.NewBackend(conf)
	default:
		return fmt.Errorf("unknown backend type: %s", conf.Backend.Type)
	}

	if err != nil {
		return errors.Wrap(err, "new backend error")
	}

	return nil
}

// GetBackend returns the backend.
func GetBackend() Backend {
	return backend
}

// Backend defines the interface that a backend must implement.
type Backend interface {
	// Start starts the backend.
	Start() error

	// Stop closes the backend.
	Stop() error

	// SetMeasurementFunc sets the measurement handler func.
	SetMeasurementFunc(func(sntp.Measurement))
}
