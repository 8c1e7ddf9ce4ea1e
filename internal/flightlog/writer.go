// Package flightlog persists flight telemetry and mission events to
// pluggable sinks: stdout, JSONL files, GreptimeDB, or a live TUI.
package flightlog

import "missionctl/internal/telemetry"

// TelemetryWriter is an interface to support different output writers.
type TelemetryWriter interface {
	Write(telemetry.Row) error
}

// EventWriter handles mission event rows (transitions and commands).
type EventWriter interface {
	WriteEvent(telemetry.EventRow) error
}

// Optional: writers can also support batch mode.
type batchWriter interface {
	WriteBatch([]telemetry.Row) error
}

// Optional: event writers may support batch mode.
type batchEventWriter interface {
	WriteEvents([]telemetry.EventRow) error
}
