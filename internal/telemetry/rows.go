package telemetry

import (
	"os"
	"time"
)

// Row represents one flight telemetry record for GreptimeDB.
type Row struct {
	MissionID string    `json:"mission_id"` // TAG
	VehicleID string    `json:"vehicle_id"` // TAG
	Phase     string    `json:"phase"`      // FIELD
	North     float64   `json:"north"`      // FIELD
	East      float64   `json:"east"`       // FIELD
	Down      float64   `json:"down"`       // FIELD
	AltM      float64   `json:"alt_m"`      // FIELD
	SpeedMPS  float64   `json:"speed_mps"`  // FIELD
	Armed     bool      `json:"armed"`      // FIELD
	Guided    bool      `json:"guided"`     // FIELD
	Timestamp time.Time `json:"ts"`         // TIME INDEX
}

// TelemetryTableName holds the table name used when writing to GreptimeDB.
// It defaults to "flight_telemetry" but can be overridden via the
// GREPTIMEDB_TABLE environment variable.
var TelemetryTableName = func() string {
	if env := os.Getenv("GREPTIMEDB_TABLE"); env != "" {
		return env
	}
	return "flight_telemetry"
}()

func (Row) TableName() string {
	return TelemetryTableName
}

// EventRow records a phase transition or issued command for observability.
type EventRow struct {
	MissionID string    `json:"mission_id"`
	VehicleID string    `json:"vehicle_id"`
	Event     string    `json:"event"`
	FromPhase string    `json:"from_phase,omitempty"`
	ToPhase   string    `json:"to_phase,omitempty"`
	Command   string    `json:"command,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"ts"`
}

// Mission event types.
const (
	EventTransition = "transition"
	EventCommand    = "command"
)
