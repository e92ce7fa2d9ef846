// Package transport implements the batching log transport between record producers and the sink
//
// Records are buffered in memory and flushed as detached batches, either when the buffer reaches
// the configured batch size or when the flush timer fires, whichever comes first. Writes are
// asynchronous and never block producers; a failed write drops its batch and reports once.
package transport

import (
	"context"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync"
	"github.com/relex/gotils/channels"
	"github.com/relex/gotils/logger"
	"github.com/relex/gotils/promexporter/promreg"
	"github.com/relex/slog-client/base"
	"github.com/relex/slog-client/defs"
	"github.com/relex/slog-client/mapper"
)

// Config defines the flush thresholds of a Transport
type Config struct {
	BatchSize     int           // Numbers of buffered records that trigger an immediate flush
	FlushInterval time.Duration // Max duration records may wait in the buffer before a flush
}

// withDefaults replaces non-positive thresholds with the package defaults
func (config Config) withDefaults() Config {
	if config.BatchSize <= 0 {
		config.BatchSize = defs.TransportBatchSize
	}
	if config.FlushInterval <= 0 {
		config.FlushInterval = defs.TransportFlushInterval
	}
	return config
}

// Transport buffers log records and ships them to the sink in batches
//
// Append and AppendLine may be called concurrently. The buffer is the only shared mutable state;
// each flush detaches its own immutable snapshot, so any number of writes may be in flight at
// once without touching each other's data. Ordering across batches is not guaranteed.
type Transport struct {
	logger logger.Logger
	sink   base.LogSink
	mapper *mapper.Mapper
	config Config

	mutex    sync.Mutex
	buffer   []base.LogRecord
	timer    *time.Timer // pending flush timer, nil when none
	timerGen uint64      // incremented at each timer start, to ignore stale timer callbacks
	stopped  bool

	inflight   sync.WaitGroup
	dropped    *xsync.Counter
	metrics    transportMetrics
	signalOnce sync.Once
	drainedSig *channels.SignalAwaitable
}

// NewTransport creates a Transport writing to the given sink
//
// The mapper is used by AppendLine to parse encoded ingress lines; it may be nil if only Append
// is used.
func NewTransport(parentLogger logger.Logger, logSink base.LogSink, recordMapper *mapper.Mapper,
	metricCreator promreg.MetricCreator, config Config) *Transport {

	cfg := config.withDefaults()
	return &Transport{
		logger:     parentLogger.WithField(defs.LabelComponent, "Transport"),
		sink:       logSink,
		mapper:     recordMapper,
		config:     cfg,
		buffer:     make([]base.LogRecord, 0, cfg.BatchSize),
		dropped:    new(xsync.Counter),
		metrics:    newTransportMetrics(metricCreator),
		drainedSig: channels.NewSignalAwaitable(),
	}
}

// AppendLine parses one encoded ingress line and buffers the resulting record
//
// A malformed line is counted as dropped and discarded without error: log loss is preferred over
// caller-visible failure on the best-effort logging path.
func (trans *Transport) AppendLine(line []byte) {
	record, err := trans.mapper.MapLine(line)
	if err != nil {
		trans.DropMalformed(1)
		return
	}
	trans.Append(record)
}

// DropMalformed counts records discarded before they could reach the buffer, such as oversized
// ingress lines skipped by the reader
func (trans *Transport) DropMalformed(count int) {
	trans.dropped.Add(int64(count))
	trans.metrics.OnRecordDropped(dropReasonMalformed, count)
}

// Append buffers one record and flushes if the size threshold is reached
//
// Never blocks on sink I/O. Records appended after Drain are counted as dropped.
func (trans *Transport) Append(record base.LogRecord) {
	trans.mutex.Lock()
	defer trans.mutex.Unlock()

	if trans.stopped {
		trans.dropped.Inc()
		trans.metrics.OnRecordDropped(dropReasonStopped, 1)
		return
	}

	trans.buffer = append(trans.buffer, record)
	trans.metrics.OnRecordAppended(len(trans.buffer))

	if len(trans.buffer) >= trans.config.BatchSize {
		trans.flushLocked(flushTriggerSize)
	} else if trans.timer == nil {
		trans.startTimerLocked()
	}
}

// Flush detaches the current buffer, if not empty, and submits it asynchronously to the sink
func (trans *Transport) Flush() {
	trans.mutex.Lock()
	defer trans.mutex.Unlock()
	trans.flushLocked(flushTriggerManual)
}

// Drain stops the transport for shutdown: cancels the pending timer, flushes remaining records
// and waits until all in-flight writes have settled
//
// Drain is idempotent and safe to call concurrently; every caller returns only after all writes
// have settled. Waiting is bounded by the per-write sink timeout. Records appended afterwards
// are dropped and counted.
func (trans *Transport) Drain() {
	trans.mutex.Lock()
	if !trans.stopped {
		trans.stopped = true
		trans.flushLocked(flushTriggerDrain)
		trans.stopTimerLocked()
	}
	trans.mutex.Unlock()

	trans.inflight.Wait()
	trans.signalOnce.Do(trans.drainedSig.Signal)
	trans.logger.Info("drained")
}

// Drained returns an Awaitable signaled once Drain has completed
func (trans *Transport) Drained() channels.Awaitable {
	return trans.drainedSig
}

// DroppedRecords returns the total numbers of records dropped so far, for any reason: malformed
// input, failed batch writes and appends after Drain
func (trans *Transport) DroppedRecords() int64 {
	return trans.dropped.Value()
}

// flushLocked detaches the buffer into a batch and launches the asynchronous write.
// Caller must hold the mutex. No-op on an empty buffer.
func (trans *Transport) flushLocked(trigger string) {
	if len(trans.buffer) == 0 {
		return
	}
	trans.stopTimerLocked()

	batch := base.NewFlushBatch(trans.buffer)
	trans.buffer = make([]base.LogRecord, 0, trans.config.BatchSize)
	trans.metrics.OnBatchFlushed(batch, trigger)

	trans.inflight.Add(1)
	go trans.writeBatch(batch)
}

func (trans *Transport) writeBatch(batch base.FlushBatch) {
	defer trans.inflight.Done()
	defer trans.metrics.OnWriteSettled()

	ctx, cancel := context.WithTimeout(context.Background(), defs.SinkWriteTimeout)
	defer cancel()

	if err := trans.sink.Write(ctx, batch); err != nil {
		// the one operator-visible effect of a failed write; the batch is dropped, not retried
		trans.logger.Errorf("dropping batch %s: failed to write %d records: %s",
			batch.ID, len(batch.Records), err.Error())
		trans.dropped.Add(int64(len(batch.Records)))
		trans.metrics.OnWriteFailed(batch)
		return
	}
	trans.metrics.OnWriteSucceeded(batch)
}

// startTimerLocked starts the flush timer unless one is already pending. Caller must hold the mutex.
func (trans *Transport) startTimerLocked() {
	if trans.timer != nil {
		return
	}
	trans.timerGen++
	gen := trans.timerGen
	trans.timer = time.AfterFunc(trans.config.FlushInterval, func() {
		trans.onFlushTimer(gen)
	})
}

// stopTimerLocked cancels the pending timer if any; safe to call when none is pending.
// Caller must hold the mutex.
func (trans *Transport) stopTimerLocked() {
	if trans.timer == nil {
		return
	}
	trans.timer.Stop()
	trans.timer = nil
}

func (trans *Transport) onFlushTimer(gen uint64) {
	trans.mutex.Lock()
	defer trans.mutex.Unlock()
	// a stale callback may arrive after cancellation or after a newer timer was started
	if trans.timer == nil || trans.timerGen != gen {
		return
	}
	trans.timer = nil
	trans.flushLocked(flushTriggerTimer)
}
