package base

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// LogRecord defines the structure of one log record after mapping and before storage
//
// A LogRecord is immutable once appended to the transport buffer; the maps inside must not be
// modified after construction
type LogRecord struct {
	Severity  Severity       // Normalized level, one of the Severity* constants
	Message   string         // Main message field
	Service   string         // Name of the producing service
	Timestamp time.Time      // Record timestamp, parsed from ingress or defaulted to mapping time
	ReqID     string         // Request ID if present
	UserID    string         // User ID if present
	Endpoint  string         // Request endpoint if present
	Request   map[string]any // Nested request detail if present
	Response  map[string]any // Nested response detail if present
	Meta      map[string]any // Catch-all bucket for unrecognized ingress fields
}

// ToDocument builds the storage document for the sink
//
// The field set and names are part of the storage schema and must not change without migration
func (record *LogRecord) ToDocument() bson.M {
	doc := bson.M{
		"level":     string(record.Severity),
		"message":   record.Message,
		"service":   record.Service,
		"timestamp": record.Timestamp,
	}
	if record.ReqID != "" {
		doc["reqId"] = record.ReqID
	}
	if record.UserID != "" {
		doc["userId"] = record.UserID
	}
	if record.Endpoint != "" {
		doc["endpoint"] = record.Endpoint
	}
	if len(record.Request) > 0 {
		doc["request"] = record.Request
	}
	if len(record.Response) > 0 {
		doc["response"] = record.Response
	}
	if len(record.Meta) > 0 {
		doc["meta"] = record.Meta
	}
	return doc
}
