// Package mapper normalizes raw ingress records into storage-ready LogRecord structures
package mapper

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/relex/slog-client/base"
)

// Mapper converts raw ingress lines or structured objects into LogRecord for one service
//
// Mapping is pure and stateless apart from the bound service name; it is safe for concurrent use
type Mapper struct {
	service string
}

// NewMapper creates a Mapper stamping the given service name onto every record
func NewMapper(service string) *Mapper {
	return &Mapper{service: service}
}

// MapLine parses one encoded JSON line into a LogRecord
//
// Errors are per-line so one malformed line never affects neighboring records; the caller decides
// whether to count or report the loss
func (mapper *Mapper) MapLine(line []byte) (base.LogRecord, error) {
	fields := make(map[string]any, 10)
	if err := json.Unmarshal(line, &fields); err != nil {
		return base.LogRecord{}, fmt.Errorf("malformed record line: %w", err)
	}
	return mapper.MapFields(fields), nil
}

// MapFields maps an already-structured ingress object into a LogRecord
//
// Recognized keys are consumed into dedicated fields; everything else lands in Meta. The input
// map is not retained.
func (mapper *Mapper) MapFields(fields map[string]any) base.LogRecord {
	record := base.LogRecord{
		Severity:  base.SeverityInfo,
		Service:   mapper.service,
		Timestamp: time.Now(),
	}

	var meta map[string]any
	for key, value := range fields {
		switch key {
		case "level":
			record.Severity = mapSeverity(value)
		case "msg", "message":
			record.Message = asString(value)
		case "time", "timestamp":
			if ts, ok := mapTimestamp(value); ok {
				record.Timestamp = ts
			}
		case "reqId":
			record.ReqID = asString(value)
		case "userId":
			record.UserID = asString(value)
		case "endpoint":
			record.Endpoint = asString(value)
		case "req", "request":
			record.Request = asObject(value)
		case "res", "response":
			record.Response = asObject(value)
		default:
			if meta == nil {
				meta = make(map[string]any, len(fields))
			}
			meta[key] = value
		}
	}
	record.Meta = meta
	return record
}

// mapSeverity accepts either the numeric or the named form of the ingress level field
func mapSeverity(value any) base.Severity {
	switch level := value.(type) {
	case float64:
		return base.SeverityFromLevel(int(level))
	case int:
		return base.SeverityFromLevel(level)
	case string:
		return base.ParseSeverity(level)
	default:
		return base.SeverityInfo
	}
}

// mapTimestamp accepts unix milliseconds or an RFC 3339 string
func mapTimestamp(value any) (time.Time, bool) {
	switch ts := value.(type) {
	case float64:
		if ts <= 0 || math.IsNaN(ts) {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(ts)), true
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	default:
		return time.Time{}, false
	}
}

func asString(value any) string {
	switch s := value.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprint(s)
	}
}

func asObject(value any) map[string]any {
	if obj, ok := value.(map[string]any); ok {
		return obj
	}
	return nil
}
