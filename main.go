package main

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/relex/gotils/logger"
	"github.com/relex/slog-client/cmd"
)

var version string

func main() {
	logger.Infof("version: %s", version)
	logger.Infof("GOMAXPROCS: %d", runtime.GOMAXPROCS(0))

	registerInfoMetric()

	cmd.Execute()
}

func registerInfoMetric() {
	opts := prometheus.GaugeOpts{}
	opts.Name = "slog_client_info"
	opts.Help = "slog-client application information"
	gauge := prometheus.NewGaugeVec(opts, []string{"version"})
	gauge.WithLabelValues(version).Set(1)
	prometheus.MustRegister(gauge)
}
