package mapper

import (
	"testing"
	"time"

	"github.com/relex/slog-client/base"
	"github.com/stretchr/testify/assert"
)

func TestMapLineFullRecord(t *testing.T) {
	line := []byte(`{
		"level": 40,
		"msg": "slow query",
		"time": 1661320000000,
		"reqId": "req-1",
		"userId": "user-7",
		"endpoint": "/api/orders",
		"req": {"method": "GET"},
		"res": {"status": 200},
		"durationMs": 1532,
		"shard": "eu-1"
	}`)

	record, err := NewMapper("orders").MapLine(line)
	assert.NoError(t, err)
	assert.Equal(t, base.SeverityWarn, record.Severity)
	assert.Equal(t, "slow query", record.Message)
	assert.Equal(t, "orders", record.Service)
	assert.Equal(t, time.UnixMilli(1661320000000), record.Timestamp)
	assert.Equal(t, "req-1", record.ReqID)
	assert.Equal(t, "user-7", record.UserID)
	assert.Equal(t, "/api/orders", record.Endpoint)
	assert.Equal(t, map[string]any{"method": "GET"}, record.Request)
	assert.Equal(t, map[string]any{"status": float64(200)}, record.Response)
	assert.Equal(t, map[string]any{"durationMs": float64(1532), "shard": "eu-1"}, record.Meta)
}

func TestMapLineMalformed(t *testing.T) {
	mapper := NewMapper("orders")

	_, err := mapper.MapLine([]byte("plain text, not json"))
	assert.Error(t, err)

	_, err = mapper.MapLine([]byte(`[1, 2, 3]`))
	assert.Error(t, err)

	// one bad line must not affect the next
	record, err := mapper.MapLine([]byte(`{"level":50,"message":"boom"}`))
	assert.NoError(t, err)
	assert.Equal(t, base.SeverityError, record.Severity)
	assert.Equal(t, "boom", record.Message)
}

func TestMapLineDefaults(t *testing.T) {
	before := time.Now()
	record, err := NewMapper("orders").MapLine([]byte(`{"msg":"hello"}`))
	assert.NoError(t, err)
	assert.Equal(t, base.SeverityInfo, record.Severity)
	assert.False(t, record.Timestamp.Before(before), "timestamp should default to mapping time")
	assert.Empty(t, record.ReqID)
	assert.Nil(t, record.Meta)
}

func TestMapFieldsNamedLevelAndTimeString(t *testing.T) {
	record := NewMapper("orders").MapFields(map[string]any{
		"level":     "warning",
		"message":   "disk almost full",
		"timestamp": "2026-08-24T10:30:00Z",
	})
	assert.Equal(t, base.SeverityWarn, record.Severity)
	assert.Equal(t, "disk almost full", record.Message)
	assert.Equal(t, time.Date(2026, 8, 24, 10, 30, 0, 0, time.UTC), record.Timestamp.UTC())
}

func TestMapFieldsBadTypes(t *testing.T) {
	before := time.Now()
	record := NewMapper("orders").MapFields(map[string]any{
		"level": true,
		"msg":   42,
		"time":  "yesterday",
		"req":   "not an object",
	})
	assert.Equal(t, base.SeverityInfo, record.Severity)
	assert.Equal(t, "42", record.Message)
	assert.False(t, record.Timestamp.Before(before))
	assert.Nil(t, record.Request)
}
