package xtrace

import (
	"log/slog"
	"strings"
)

// LogType classifies a record. Values are ordered by severity and share
// slog's numeric scale (Info == 0, Warning == 4, Error == 8) so that backends
// can map them without a lookup table.
type LogType int

const (
	LogTypeSuccess  LogType = -4
	LogTypeInfo     LogType = 0
	LogTypeEvent    LogType = 2
	LogTypeWarning  LogType = 4
	LogTypeFailure  LogType = 6
	LogTypeError    LogType = 8
	LogTypeCritical LogType = 12
)

func (t LogType) String() string {
	switch t {
	case LogTypeSuccess:
		return "Success"
	case LogTypeInfo:
		return "Info"
	case LogTypeEvent:
		return "Event"
	case LogTypeWarning:
		return "Warning"
	case LogTypeFailure:
		return "Failure"
	case LogTypeError:
		return "Error"
	case LogTypeCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// SlogLevel returns the slog level with the same severity.
func (t LogType) SlogLevel() slog.Level { return slog.Level(t) }

// ParseLogType resolves a case-insensitive name produced by String.
func ParseLogType(s string) (LogType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "success":
		return LogTypeSuccess, true
	case "info":
		return LogTypeInfo, true
	case "event":
		return LogTypeEvent, true
	case "warning", "warn":
		return LogTypeWarning, true
	case "failure":
		return LogTypeFailure, true
	case "error":
		return LogTypeError, true
	case "critical":
		return LogTypeCritical, true
	default:
		return 0, false
	}
}
