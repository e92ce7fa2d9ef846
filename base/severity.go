package base

import (
	"strings"
)

// Severity is the normalized level of a log record as stored in the sink
type Severity string

// Severity values ordered from least to most severe
const (
	SeverityTrace Severity = "trace"
	SeverityDebug Severity = "debug"
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
	SeverityFatal Severity = "fatal"
)

// SeverityFromLevel maps a numeric ingress level to a Severity
//
// The scale follows the common 10..60 convention used by structured loggers;
// values in between round up to the next named level
func SeverityFromLevel(level int) Severity {
	switch {
	case level <= 10:
		return SeverityTrace
	case level <= 20:
		return SeverityDebug
	case level <= 30:
		return SeverityInfo
	case level <= 40:
		return SeverityWarn
	case level <= 50:
		return SeverityError
	default:
		return SeverityFatal
	}
}

// ParseSeverity maps a named ingress level to a Severity, case-insensitively
//
// Unrecognized names default to info rather than failing, as a wrong level is
// preferable to losing the record
func ParseSeverity(name string) Severity {
	switch strings.ToLower(name) {
	case "trace":
		return SeverityTrace
	case "debug":
		return SeverityDebug
	case "info":
		return SeverityInfo
	case "warn", "warning":
		return SeverityWarn
	case "error":
		return SeverityError
	case "fatal", "critical":
		return SeverityFatal
	default:
		return SeverityInfo
	}
}
