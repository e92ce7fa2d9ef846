package util

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/relex/gotils/logger"
	"github.com/relex/slog-client/defs"
)

func init() {
	_ = pprof.Handler // to trigger registrations under "/debug/pprof/"
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `
<html>
	<head>
		<title>slog-client metrics listener</title>
	</head>
	<body>
		<h1>Metrics listener for slog-client</h1>
		<ul>
			<li><a href='/debug/pprof'>/debug/pprof</a></li>
			<li><a href='/metrics'>/metrics</a></li>
		</ul>
	</body>
</html>`)
	})
}

// LaunchMetricsListener starts a HTTP server for Prometheus metrics
func LaunchMetricsListener(address string) *http.Server {
	mlogger := logger.WithField(defs.LabelComponent, "MetricsListener")
	server := &http.Server{}
	server.Addr = address
	go func() {
		mlogger.Infof("listening on %s for metrics...", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			mlogger.Error("Prometheus listener error: ", err)
		}
	}()
	return server
}
