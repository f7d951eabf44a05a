package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MustRegisterNewCounter registers and returns a function for counting.
func MustRegisterNewCounter(name string, help string, labels []string) func(prometheus.Labels) {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sntp_" + name + "_count",
		Help: help,
	}, labels)

	prometheus.MustRegister(counter)

	return func(labels prometheus.Labels) {
		counter.With(labels).Inc()
	}
}

// MustRegisterNewGauge registers and returns a function for setting a gauge.
func MustRegisterNewGauge(name string, help string, labels []string) func(prometheus.Labels, float64) {
	gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sntp_" + name,
		Help: help,
	}, labels)

	prometheus.MustRegister(gauge)

	return func(labels prometheus.Labels, v float64) {
		gauge.With(labels).Set(v)
	}
}
