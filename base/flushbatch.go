package base

import (
	"fmt"

	"github.com/google/uuid"
)

// FlushBatch represents a detached snapshot of buffered records ready for one sink write
//
// A batch is created by the transport at flush time and never mutated afterwards; concurrent
// in-flight writes each own their own batch
type FlushBatch struct {
	ID      string      // Unique ID of this batch, for diagnostics and tracing
	Records []LogRecord // Buffered records in insertion order
}

// NewFlushBatch wraps the given records into a batch; ownership of the slice transfers to the batch
func NewFlushBatch(records []LogRecord) FlushBatch {
	return FlushBatch{
		ID:      uuid.NewString(),
		Records: records,
	}
}

func (batch FlushBatch) String() string {
	return fmt.Sprintf("id=%s records=%d", batch.ID, len(batch.Records))
}
