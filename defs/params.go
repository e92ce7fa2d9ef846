package defs

import (
	"time"
)

var (
	// TransportBatchSize defines the default numbers of records to buffer before a size-triggered flush
	TransportBatchSize = 50

	// TransportFlushInterval defines the default max duration records may sit in the buffer before a
	// timer-triggered flush
	//
	// The value affects the delay of logs visible in the sink, not throughput
	TransportFlushInterval = 2000 * time.Millisecond

	// InputLineMaxBytes defines the maximum length of one encoded ingress line
	//
	// Longer lines are dropped as malformed and counted
	InputLineMaxBytes = 1 * 1024 * 1024

	// SinkConnectTimeout is for establishing and verifying the initial sink connection
	SinkConnectTimeout = 10 * time.Second

	// SinkWriteTimeout bounds a single batch write to the sink
	//
	// Drain() waits for in-flight writes and is therefore bounded by this value plus scheduling slack
	SinkWriteTimeout = 30 * time.Second

	// SinkCloseTimeout bounds the final disconnection from the sink at shutdown
	SinkCloseTimeout = 10 * time.Second
)

// EnableTestMode shortens timeouts for integration tests and manual runs
func EnableTestMode() {
	SinkConnectTimeout = 3 * time.Second
	SinkWriteTimeout = 5 * time.Second
	SinkCloseTimeout = 3 * time.Second
}
