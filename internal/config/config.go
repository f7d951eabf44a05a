package config

import (
	"time"
)

// Config defines the configuration structure.
type Config struct {
	General struct {
		LogLevel int `mapstructure:"log_level"`
	} `mapstructure:"general"`

	Backend struct {
		Type string `mapstructure:"type"`

		SNTPUDP struct {
			// Servers to exchange with, as host:port.
			Servers []string `mapstructure:"servers"`

			// Read deadline for the single reply of an exchange.
			Timeout time.Duration `mapstructure:"timeout"`

			// Interval between exchanges per server.
			PollInterval time.Duration `mapstructure:"poll_interval"`

			// SNTP protocol version to send (3 or 4).
			ProtocolVersion uint8 `mapstructure:"protocol_version"`

			// How long a resolved server address may be reused before the
			// hostname is resolved again.
			ResolveCacheTTL time.Duration `mapstructure:"resolve_cache_ttl"`
		} `mapstructure:"sntp_udp"`
	} `mapstructure:"backend"`

	Integration struct {
		MQTT struct {
			Enabled              bool          `mapstructure:"enabled"`
			EventTopicTemplate   string        `mapstructure:"event_topic_template"`
			KeepAlive            time.Duration `mapstructure:"keep_alive"`
			MaxReconnectInterval time.Duration `mapstructure:"max_reconnect_interval"`
			MaxTokenWait         time.Duration `mapstructure:"max_token_wait"`

			TerminateOnConnectError bool `mapstructure:"terminate_on_connect_error"`

			Auth struct {
				Generic struct {
					Servers      []string `mapstructure:"servers"`
					Username     string   `mapstructure:"username"`
					Password     string   `mapstructure:"password"`
					CleanSession bool     `mapstructure:"clean_session"`
					ClientID     string   `mapstructure:"client_id"`
					QOS          uint8    `mapstructure:"qos"`

					CACert  string `mapstructure:"ca_cert"`
					TLSCert string `mapstructure:"tls_cert"`
					TLSKey  string `mapstructure:"tls_key"`
				} `mapstructure:"generic"`
			} `mapstructure:"auth"`
		} `mapstructure:"mqtt"`
	} `mapstructure:"integration"`

	Metrics struct {
		Prometheus struct {
			EndpointEnabled bool   `mapstructure:"endpoint_enabled"`
			Bind            string `mapstructure:"bind"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"metrics"`
}

// C holds the global configuration.
var C Config
