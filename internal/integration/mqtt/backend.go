package mqtt

import (
	"bytes"
	"encoding/json"
	"sync"
	"text/template"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/gridclock/sntp-bridge/internal/config"
	"github.com/gridclock/sntp-bridge/internal/integration/mqtt/auth"
	"github.com/gridclock/sntp-bridge/internal/sntp"
)

// Backend implements a MQTT integration publishing measurement events.
type Backend struct {
	auth auth.Authentication

	conn       paho.Client
	connMux    sync.RWMutex
	connClosed bool
	clientOpts *paho.ClientOptions

	terminateOnConnectError bool
	maxTokenWait            time.Duration

	qos                uint8
	eventTopicTemplate *template.Template
}

// NewBackend creates a new Backend.
func NewBackend(conf config.Config) (*Backend, error) {
	var err error

	b := Backend{
		qos:                     conf.Integration.MQTT.Auth.Generic.QOS,
		terminateOnConnectError: conf.Integration.MQTT.TerminateOnConnectError,
		maxTokenWait:            conf.Integration.MQTT.MaxTokenWait,
		clientOpts:              paho.NewClientOptions(),
	}

	b.auth, err = auth.NewGenericAuthentication(conf)
	if err != nil {
		return nil, errors.Wrap(err, "integration/mqtt: new generic authentication error")
	}

	b.eventTopicTemplate, err = template.New("event").Parse(conf.Integration.MQTT.EventTopicTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "integration/mqtt: parse event-topic template error")
	}

	b.clientOpts.SetProtocolVersion(4)
	b.clientOpts.SetAutoReconnect(true) // this is required for buffering messages in case offline!
	b.clientOpts.SetOnConnectHandler(b.onConnected)
	b.clientOpts.SetConnectionLostHandler(b.onConnectionLost)
	b.clientOpts.SetKeepAlive(conf.Integration.MQTT.KeepAlive)
	b.clientOpts.SetMaxReconnectInterval(conf.Integration.MQTT.MaxReconnectInterval)

	if err = b.auth.Init(b.clientOpts); err != nil {
		return nil, errors.Wrap(err, "integration/mqtt: init authentication error")
	}

	return &b, nil
}

// Start starts the integration.
func (b *Backend) Start() error {
	b.connectLoop()
	go b.reconnectLoop()
	return nil
}

// Stop stops the integration.
func (b *Backend) Stop() error {
	b.connMux.Lock()
	defer b.connMux.Unlock()

	if b.connClosed {
		return nil
	}

	b.conn.Disconnect(250)
	b.connClosed = true
	return nil
}

// PublishMeasurement publishes the given measurement event as JSON.
func (b *Backend) PublishMeasurement(event string, m sntp.Measurement) error {
	mqttEventCounter(event).Inc()

	topic := bytes.NewBuffer(nil)
	if err := b.eventTopicTemplate.Execute(topic, struct {
		Server    string
		EventType string
	}{m.Server, event}); err != nil {
		return errors.Wrap(err, "execute event-topic template error")
	}

	bb, err := json.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "marshal measurement error")
	}

	log.WithFields(log.Fields{
		"topic":  topic.String(),
		"qos":    b.qos,
		"event":  event,
		"server": m.Server,
	}).Info("integration/mqtt: publishing event")

	return tokenWrapper(b.conn.Publish(topic.String(), b.qos, false, bb), b.maxTokenWait)
}

func (b *Backend) connect() error {
	b.connMux.Lock()
	defer b.connMux.Unlock()

	if err := b.auth.Update(b.clientOpts); err != nil {
		return errors.Wrap(err, "integration/mqtt: update authentication error")
	}

	b.conn = paho.NewClient(b.clientOpts)
	return tokenWrapper(b.conn.Connect(), b.maxTokenWait)
}

// connectLoop blocks until the client is connected.
func (b *Backend) connectLoop() {
	for {
		if err := b.connect(); err != nil {
			if b.terminateOnConnectError {
				log.Fatal(err)
			}

			log.WithError(err).Error("integration/mqtt: connection error")
			time.Sleep(time.Second * 2)

		} else {
			break
		}
	}
}

func (b *Backend) disconnect() error {
	mqttDisconnectCounter().Inc()

	b.connMux.Lock()
	defer b.connMux.Unlock()

	b.conn.Disconnect(250)
	return nil
}

func (b *Backend) reconnectLoop() {
	if b.auth.ReconnectAfter() > 0 {
		for {
			if b.isClosed() {
				break
			}

			time.Sleep(b.auth.ReconnectAfter())
			log.Info("integration/mqtt: re-connect triggered")

			mqttReconnectCounter().Inc()

			b.disconnect()
			b.connectLoop()
		}
	}
}

func (b *Backend) onConnected(c paho.Client) {
	mqttConnectCounter().Inc()
	log.Info("integration/mqtt: connected to mqtt broker")
}

func (b *Backend) onConnectionLost(c paho.Client, err error) {
	if b.terminateOnConnectError {
		log.Fatal(err)
	}
	mqttDisconnectCounter().Inc()
	log.WithError(err).Error("integration/mqtt: connection error")
}

// isClosed returns true when the integration is shutting down.
func (b *Backend) isClosed() bool {
	b.connMux.RLock()
	defer b.connMux.RUnlock()
	return b.connClosed
}

func tokenWrapper(token paho.Token, timeout time.Duration) error {
	if !token.WaitTimeout(timeout) {
		return errors.New("token wait timeout error")
	}
	return token.Error()
}
