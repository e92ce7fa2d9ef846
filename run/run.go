// Package run wires configuration, sink and transport together and controls their lifecycle
package run

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/relex/gotils/logger"
	"github.com/relex/gotils/promexporter/promreg"
	"github.com/relex/slog-client/base"
	"github.com/relex/slog-client/defs"
	"github.com/relex/slog-client/mapper"
	"github.com/relex/slog-client/sink"
	"github.com/relex/slog-client/transport"
)

// Run ships records from standard input until EOF or a shutdown signal
//
// Shutdown order is fixed: stop ingress, drain the transport, then close the sink, so the
// connection outlives the final write.
func Run(configFile string, localMode bool) {
	runLogger := logger.WithField(defs.LabelComponent, "Lifecycle")

	trans, logSink := launch(configFile, localMode)

	ingressDone := make(chan struct{})
	go func() {
		defer close(ingressDone)
		pumpLines(os.Stdin, trans)
	}()

	sigChan := make(chan os.Signal, 10)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case s := <-sigChan:
		runLogger.Infof("received %s, shutting down", s)
	case <-ingressDone:
		runLogger.Info("ingress closed, shutting down")
	}

	shutdown(runLogger, trans, logSink)
	runLogger.Info("clean exit")
}

// Emit ships records from a JSON-lines file and exits after draining
func Emit(configFile string, inputPath string, localMode bool) {
	runLogger := logger.WithField(defs.LabelComponent, "Lifecycle")

	trans, logSink := launch(configFile, localMode)

	file, err := os.Open(inputPath)
	if err != nil {
		logger.Fatalf("failed to open input %s: %s", inputPath, err.Error())
	}
	pumpLines(file, trans)
	file.Close()

	shutdown(runLogger, trans, logSink)
	runLogger.Infof("emitted input %s, dropped records: %d", inputPath, trans.DroppedRecords())
}

// launch resolves configuration and builds the sink and the transport; any failure here is
// fatal by design, before the first record is accepted
func launch(configFile string, localMode bool) (*transport.Transport, base.LogSink) {
	config, err := LoadConfigFile(configFile)
	if err != nil {
		logger.Fatal(err)
	}
	if err := config.VerifyConfig(localMode); err != nil {
		logger.Fatal(err)
	}

	metricCreator := promreg.NewMetricFactory("slogclient_", nil, nil)

	var logSink base.LogSink
	if localMode {
		logger.Info("local mode, discarding all records")
		logSink = sink.NewNullSink()
	} else {
		mongoSink, sinkErr := sink.NewMongoSink(logger.Root(), config.Sink)
		if sinkErr != nil {
			logger.Fatal(sinkErr)
		}
		logSink = mongoSink
	}

	trans := transport.NewTransport(logger.Root(), logSink, mapper.NewMapper(config.Service),
		metricCreator, transport.Config{
			BatchSize:     config.BatchSize,
			FlushInterval: time.Duration(config.FlushIntervalMS) * time.Millisecond,
		})
	return trans, logSink
}

func shutdown(runLogger logger.Logger, trans *transport.Transport, logSink base.LogSink) {
	trans.Drain()

	ctx, cancel := context.WithTimeout(context.Background(), defs.SinkCloseTimeout)
	defer cancel()
	if err := logSink.Close(ctx); err != nil {
		runLogger.Errorf("error closing sink: %s", err.Error())
	}
}
