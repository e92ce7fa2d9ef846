package transport

import (
	"github.com/relex/gotils/promexporter/promext"
	"github.com/relex/gotils/promexporter/promreg"
	"github.com/relex/slog-client/base"
)

const (
	flushTriggerSize   = "size"
	flushTriggerTimer  = "timer"
	flushTriggerManual = "manual"
	flushTriggerDrain  = "drain"
)

const (
	dropReasonMalformed    = "malformed"
	dropReasonWriteFailure = "write_failure"
	dropReasonStopped      = "stopped"
)

// transportMetrics defines metrics of the batching transport
type transportMetrics struct {
	appendedRecordsTotal promext.RWCounter
	flushedBatchesTotal  *promext.RWCounterVec // by trigger
	writtenRecordsTotal  promext.RWCounter
	failedBatchesTotal   promext.RWCounter
	droppedRecordsTotal  *promext.RWCounterVec // by reason
	queuedRecords        promext.RWGauge
	inflightWrites       promext.RWGauge
}

func newTransportMetrics(metricCreator promreg.MetricCreator) transportMetrics {
	transportMetricCreator := metricCreator.AddOrGetPrefix("transport_", nil, nil)

	metrics := transportMetrics{
		appendedRecordsTotal: transportMetricCreator.AddOrGetCounter("appended_records_total", "Numbers of records accepted into the buffer", nil, nil),
		flushedBatchesTotal:  transportMetricCreator.AddOrGetCounterVec("flushed_batches_total", "Numbers of flushed batches", []string{"trigger"}, nil),
		writtenRecordsTotal:  transportMetricCreator.AddOrGetCounter("written_records_total", "Numbers of records written to the sink", nil, nil),
		failedBatchesTotal:   transportMetricCreator.AddOrGetCounter("failed_batches_total", "Numbers of batches dropped due to sink write failure", nil, nil),
		droppedRecordsTotal:  transportMetricCreator.AddOrGetCounterVec("dropped_records_total", "Numbers of dropped records", []string{"reason"}, nil),
		queuedRecords:        transportMetricCreator.AddOrGetGauge("queued_records", "Current numbers of records in the buffer", nil, nil),
		inflightWrites:       transportMetricCreator.AddOrGetGauge("inflight_writes", "Current numbers of batch writes in flight", nil, nil),
	}
	// reset gauges in case metricCreator is reused
	metrics.queuedRecords.Set(0)
	metrics.inflightWrites.Set(0)

	return metrics
}

func (metrics *transportMetrics) OnRecordAppended(queueLength int) {
	metrics.appendedRecordsTotal.Inc()
	metrics.queuedRecords.Set(int64(queueLength))
}

func (metrics *transportMetrics) OnBatchFlushed(batch base.FlushBatch, trigger string) {
	metrics.flushedBatchesTotal.WithLabelValues(trigger).Inc()
	metrics.queuedRecords.Set(0)
	metrics.inflightWrites.Inc()
}

func (metrics *transportMetrics) OnWriteSucceeded(batch base.FlushBatch) {
	metrics.writtenRecordsTotal.Add(uint64(len(batch.Records)))
}

func (metrics *transportMetrics) OnWriteFailed(batch base.FlushBatch) {
	metrics.failedBatchesTotal.Inc()
	metrics.droppedRecordsTotal.WithLabelValues(dropReasonWriteFailure).Add(uint64(len(batch.Records)))
}

func (metrics *transportMetrics) OnWriteSettled() {
	metrics.inflightWrites.Dec()
}

func (metrics *transportMetrics) OnRecordDropped(reason string, count int) {
	metrics.droppedRecordsTotal.WithLabelValues(reason).Add(uint64(count))
}
