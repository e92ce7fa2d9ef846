package run

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/relex/gotils/logger"
	"github.com/relex/gotils/promexporter/promreg"
	"github.com/relex/slog-client/base"
	"github.com/relex/slog-client/defs"
	"github.com/relex/slog-client/mapper"
	"github.com/relex/slog-client/transport"
	"github.com/stretchr/testify/assert"
)

// countingSink stores written records for ingress tests
type countingSink struct {
	mutex   sync.Mutex
	records []base.LogRecord
}

func (sink *countingSink) Write(_ context.Context, batch base.FlushBatch) error {
	sink.mutex.Lock()
	defer sink.mutex.Unlock()
	sink.records = append(sink.records, batch.Records...)
	return nil
}

func (sink *countingSink) Close(_ context.Context) error { return nil }

func newIngressTransport(name string, sink base.LogSink) *transport.Transport {
	return transport.NewTransport(logger.Root(), sink, mapper.NewMapper("ingress-test"),
		promreg.NewMetricFactory("testingress_"+name+"_", nil, nil),
		transport.Config{BatchSize: 100, FlushInterval: 10 * time.Second})
}

func TestPumpLines(t *testing.T) {
	input := strings.Join([]string{
		`{"level":30,"msg":"one"}`,
		``,
		`not json`,
		`{"level":50,"msg":"two","reqId":"req-9"}`,
	}, "\n")

	sink := &countingSink{}
	trans := newIngressTransport("basic", sink)

	pumpLines(strings.NewReader(input), trans)
	trans.Drain()

	assert.Equal(t, int64(1), trans.DroppedRecords(), "the malformed line is dropped and counted")
	if assert.Len(t, sink.records, 2) {
		assert.Equal(t, "one", sink.records[0].Message)
		assert.Equal(t, "two", sink.records[1].Message)
		assert.Equal(t, "req-9", sink.records[1].ReqID)
		assert.Equal(t, "ingress-test", sink.records[0].Service)
	}
}

func TestPumpLinesOversizedLine(t *testing.T) {
	savedLimit := defs.InputLineMaxBytes
	defs.InputLineMaxBytes = 256 // below the read buffer size, to verify the limit holds anyway
	defer func() { defs.InputLineMaxBytes = savedLimit }()

	// long enough to cross the read buffer several times
	oversized := `{"level":30,"msg":"` + strings.Repeat("x", 3*ingressReadBufferSize) + `"}`
	input := strings.Join([]string{
		`{"level":30,"msg":"one"}`,
		oversized,
		`{"level":30,"msg":"after"}`, // no trailing newline, emitted at EOF
	}, "\n")

	sink := &countingSink{}
	trans := newIngressTransport("oversized", sink)

	pumpLines(strings.NewReader(input), trans)
	trans.Drain()

	assert.Equal(t, int64(1), trans.DroppedRecords(), "the oversized line counts as one dropped record")
	if assert.Len(t, sink.records, 2, "lines after an oversized one must not be lost") {
		assert.Equal(t, "one", sink.records[0].Message)
		assert.Equal(t, "after", sink.records[1].Message)
	}
}

func TestPumpLinesOversizedLast(t *testing.T) {
	savedLimit := defs.InputLineMaxBytes
	defs.InputLineMaxBytes = 64
	defer func() { defs.InputLineMaxBytes = savedLimit }()

	oversized := `{"level":30,"msg":"` + strings.Repeat("y", 200) + `"}`

	sink := &countingSink{}
	trans := newIngressTransport("oversizedlast", sink)

	pumpLines(strings.NewReader(oversized), trans)
	trans.Drain()

	assert.Equal(t, int64(1), trans.DroppedRecords(), "an oversized final line without newline is still counted")
	assert.Empty(t, sink.records)
}
