package base

import (
	"context"
)

// LogSink is the write side of the persistent log store
//
// Write may be called concurrently by in-flight flushes. All failures must surface through the
// returned error so the transport's drop-and-report policy applies uniformly; Write must never
// panic for transport-level errors. Partial success inside one batch is allowed and reported
// as an error.
type LogSink interface {
	// Write stores one batch; record order within the batch is preserved but no ordering is
	// guaranteed across concurrent batches
	Write(ctx context.Context, batch FlushBatch) error

	// Close releases the sink connection; must be called only after all writes have settled
	Close(ctx context.Context) error
}
