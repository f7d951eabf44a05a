package cmd

import (
	"html/template"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/gridclock/sntp-bridge/internal/config"
)

// when updating this template, don't forget to update config.md!
const configTemplate = `[general]
# debug=5, info=4, warning=3, error=2, fatal=1, panic=0
log_level={{ .General.LogLevel }}


# SNTP backend configuration.
[backend]

# Backend type.
#
# Valid options are:
#   * sntp_udp
type="{{ .Backend.Type }}"


  # SNTP (UDP) client backend.
  [backend.sntp_udp]

  # Servers to poll, as host:port.
  #
  # Example:
  # servers=[
  #   "pool.ntp.org:123",
  #   "time.google.com:123",
  # ]
  servers=[{{ range $index, $elm := .Backend.SNTPUDP.Servers }}
    "{{ $elm }}",{{ end }}
  ]

  # Read deadline for the single reply of an exchange.
  timeout="{{ .Backend.SNTPUDP.Timeout }}"

  # Interval between exchanges per server.
  #
  # Per RFC 4330 this must not be below 15 seconds when polling public
  # servers.
  poll_interval="{{ .Backend.SNTPUDP.PollInterval }}"

  # SNTP protocol version to send (3 or 4).
  protocol_version={{ .Backend.SNTPUDP.ProtocolVersion }}

  # How long a resolved server address may be reused before the hostname
  # is resolved again.
  resolve_cache_ttl="{{ .Backend.SNTPUDP.ResolveCacheTTL }}"


# Integration configuration.
[integration]

  # MQTT integration.
  [integration.mqtt]

  # Publish measurement events over MQTT.
  enabled={{ .Integration.MQTT.Enabled }}

  # Event topic template.
  event_topic_template="{{ .Integration.MQTT.EventTopicTemplate }}"

  # Keep alive will set the amount of time (in seconds) that the client should
  # wait before sending a PING request to the broker. This will allow the client
  # to know that a connection has not been lost with the server.
  # Valid units are 'ms', 's', 'm', 'h'. Set to '0s' to disable the keep alive interval.
  keep_alive="{{ .Integration.MQTT.KeepAlive }}"

  # Maximum interval that will be waited between reconnection attempts when connection is lost.
  # Valid units are 'ms', 's', 'm', 'h'.
  max_reconnect_interval="{{ .Integration.MQTT.MaxReconnectInterval }}"

  # Max. token wait time.
  #
  # The max. time to wait for the MQTT broker to acknowledge a published
  # message.
  max_token_wait="{{ .Integration.MQTT.MaxTokenWait }}"

  # Terminate on connect error.
  #
  # When set to true, instead of re-trying to connect, the SNTP Bridge
  # process will be terminated on a connection error.
  terminate_on_connect_error={{ .Integration.MQTT.TerminateOnConnectError }}


    # MQTT authentication.
    [integration.mqtt.auth]

      # Generic MQTT authentication.
      [integration.mqtt.auth.generic]
      # MQTT servers.
      #
      # Configure one or multiple MQTT server to connect to. Each item must be in
      # the following format: scheme://host:port where scheme is tcp, ssl or ws.
      servers=[{{ range $index, $elm := .Integration.MQTT.Auth.Generic.Servers }}
        "{{ $elm }}",{{ end }}
      ]

      # Connect with the given username (optional)
      username="{{ .Integration.MQTT.Auth.Generic.Username }}"

      # Connect with the given password (optional)
      password="{{ .Integration.MQTT.Auth.Generic.Password }}"

      # Quality of service level
      #
      # 0: at most once
      # 1: guaranteed at least once
      # 2: exactly once
      #
      # Note: an increase of this value will decrease the performance.
      # For more information: https://www.hivemq.com/blog/mqtt-essentials-part-6-mqtt-quality-of-service-levels
      qos={{ .Integration.MQTT.Auth.Generic.QOS }}

      # Clean session
      #
      # Set the "clean session" flag in the connect message when this client
      # connects to an MQTT broker. By setting this flag, you are indicating
      # that no messages saved by the broker for this client should be delivered.
      clean_session={{ .Integration.MQTT.Auth.Generic.CleanSession }}

      # Client ID
      #
      # Set the client id to be used by this client when connecting to the MQTT
      # broker. A client id must be no longer than 23 characters. When left blank,
      # a random id will be generated. This requires clean_session=true.
      client_id="{{ .Integration.MQTT.Auth.Generic.ClientID }}"

      # CA certificate file (optional)
      #
      # Use this when setting up a secure connection (when server uses ssl://...)
      # but the certificate used by the server is not trusted by any CA certificate
      # on the server (e.g. when self generated).
      ca_cert="{{ .Integration.MQTT.Auth.Generic.CACert }}"

      # mqtt TLS certificate file (optional)
      tls_cert="{{ .Integration.MQTT.Auth.Generic.TLSCert }}"

      # mqtt TLS key file (optional)
      tls_key="{{ .Integration.MQTT.Auth.Generic.TLSKey }}"


# Metrics configuration.
[metrics]

  # Metrics stored in Prometheus.
  #
  # These metrics expose information about the state of the SNTP Bridge
  # instance.
  [metrics.prometheus]
  # Expose Prometheus metrics endpoint.
  endpoint_enabled={{ .Metrics.Prometheus.EndpointEnabled }}

  # The ip:port to bind the Prometheus metrics server to for serving the
  # metrics endpoint.
  bind="{{ .Metrics.Prometheus.Bind }}"
`

var configCmd = &cobra.Command{
	Use:   "configfile",
	Short: "Print the SNTP Bridge configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		t := template.Must(template.New("config").Parse(configTemplate))
		err := t.Execute(os.Stdout, config.C)
		if err != nil {
			return errors.Wrap(err, "execute config template error")
		}
		return nil
	},
}
