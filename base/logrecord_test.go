package base

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestToDocumentOmitsEmptyOptionals(t *testing.T) {
	ts := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	record := LogRecord{
		Severity:  SeverityInfo,
		Message:   "started",
		Service:   "orders",
		Timestamp: ts,
	}

	doc := record.ToDocument()
	assert.Equal(t, bson.M{
		"level":     "info",
		"message":   "started",
		"service":   "orders",
		"timestamp": ts,
	}, doc)
}

func TestToDocumentFullRecord(t *testing.T) {
	ts := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	record := LogRecord{
		Severity:  SeverityError,
		Message:   "query failed",
		Service:   "orders",
		Timestamp: ts,
		ReqID:     "req-1",
		UserID:    "user-7",
		Endpoint:  "/api/orders",
		Request:   map[string]any{"method": "GET"},
		Response:  map[string]any{"status": 500},
		Meta:      map[string]any{"shard": "eu-1"},
	}

	doc := record.ToDocument()
	assert.Equal(t, "error", doc["level"])
	assert.Equal(t, "req-1", doc["reqId"])
	assert.Equal(t, "user-7", doc["userId"])
	assert.Equal(t, "/api/orders", doc["endpoint"])
	assert.Equal(t, map[string]any{"method": "GET"}, doc["request"])
	assert.Equal(t, map[string]any{"status": 500}, doc["response"])
	assert.Equal(t, map[string]any{"shard": "eu-1"}, doc["meta"])
}

func TestFlushBatchString(t *testing.T) {
	batch := NewFlushBatch([]LogRecord{{Message: "a"}, {Message: "b"}})
	assert.NotEmpty(t, batch.ID)
	assert.Contains(t, batch.String(), "records=2")
}
