package sntpudp

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gridclock/sntp-bridge/internal/metrics"
)

var (
	udpWriteCounter      func(string)
	udpReadCounter       func(string)
	exchangeErrorCounter func(string)
	offsetGauge          func(string, float64)
	delayGauge           func(string, float64)
)

func init() {
	uwc := metrics.MustRegisterNewCounter(
		"backend_sntpudp_udp_write",
		"UDP packets written by server.",
		[]string{"server"},
	)

	urc := metrics.MustRegisterNewCounter(
		"backend_sntpudp_udp_read",
		"UDP packets read by server.",
		[]string{"server"},
	)

	eec := metrics.MustRegisterNewCounter(
		"backend_sntpudp_exchange_error",
		"Failed exchanges by server.",
		[]string{"server"},
	)

	og := metrics.MustRegisterNewGauge(
		"backend_sntpudp_offset_seconds",
		"Clock offset of the last exchange by server.",
		[]string{"server"},
	)

	dg := metrics.MustRegisterNewGauge(
		"backend_sntpudp_delay_seconds",
		"Round-trip delay of the last exchange by server.",
		[]string{"server"},
	)

	udpWriteCounter = func(server string) {
		uwc(prometheus.Labels{"server": server})
	}

	udpReadCounter = func(server string) {
		urc(prometheus.Labels{"server": server})
	}

	exchangeErrorCounter = func(server string) {
		eec(prometheus.Labels{"server": server})
	}

	offsetGauge = func(server string, v float64) {
		og(prometheus.Labels{"server": server}, v)
	}

	delayGauge = func(server string, v float64) {
		dg(prometheus.Labels{"server": server}, v)
	}
}
