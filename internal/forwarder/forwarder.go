package forwarder

import (
	log "github.com/sirupsen/logrus"

	"github.com/gridclock/sntp-bridge/internal/backend"
	"github.com/gridclock/sntp-bridge/internal/config"
	"github.com/gridclock/sntp-bridge/internal/integration"
	"github.com/gridclock/sntp-bridge/internal/sntp"
)

// Setup configures the forwarder. It connects the backend measurement
// stream to the integration.
func Setup(conf config.Config) error {
	b := backend.GetBackend()
	if b == nil {
		return nil
	}

	b.SetMeasurementFunc(onMeasurement)
	return nil
}

func onMeasurement(m sntp.Measurement) {
	if err := integration.GetIntegration().PublishMeasurement(integration.EventMeasurement, m); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"server": m.Server,
			"event":  integration.EventMeasurement,
		}).Error("forwarder: publish measurement event error")
	}
}
