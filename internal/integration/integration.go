package integration

import (
	"github.com/pkg/errors"

	"github.com/gridclock/sntp-bridge/internal/config"
	"github.com/gridclock/sntp-bridge/internal/integration/mqtt"
	"github.com/gridclock/sntp-bridge/internal/sntp"
)

// Event types.
const (
	EventMeasurement = "measurement"
)

var integration Integration

// Setup configures the integration.
func Setup(conf config.Config) error {
	if !conf.Integration.MQTT.Enabled {
		integration = &nopIntegration{}
		return nil
	}

	var err error
	integration, err = mqtt.NewBackend(conf)
	if err != nil {
		return errors.Wrap(err, "setup mqtt integration error")
	}

	return nil
}

// GetIntegration returns the integration.
func GetIntegration() Integration {
	return integration
}

// Integration defines the interface that an integration must implement.
type Integration interface {
	// Start starts the integration.
	Start() error

	// PublishMeasurement publishes the given measurement event.
	PublishMeasurement(event string, m sntp.Measurement) error

	// Stop stops the integration.
	Stop() error
}

// nopIntegration is used when no integration is enabled.
type nopIntegration struct{}

func (n *nopIntegration) Start() error { return nil }

func (n *nopIntegration) PublishMeasurement(event string, m sntp.Measurement) error { return nil }

func (n *nopIntegration) Stop() error { return nil }
