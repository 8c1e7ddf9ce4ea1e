package flightlog

import (
	"context"
	"log/slog"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"

	"missionctl/internal/telemetry"
)

// greptimeClient abstracts the ingester client for testing.
type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeDBWriter writes telemetry to GreptimeDB via the ingester client.
// Tables are auto-created by the ingest path on first write.
type GreptimeDBWriter struct {
	client     greptimeClient
	teleTable  string
	eventTable string
	log        *slog.Logger
}

// NewGreptimeDBWriter creates a GreptimeDB writer. Empty table names fall
// back to the defaults ("flight_telemetry" and "mission_events").
func NewGreptimeDBWriter(host, database, teleTable, eventTable string, log *slog.Logger) (*GreptimeDBWriter, error) {
	cfg := greptime.NewConfig(host).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	if teleTable == "" {
		teleTable = telemetry.TelemetryTableName
	}
	if eventTable == "" {
		eventTable = "mission_events"
	}
	if log == nil {
		log = slog.Default()
	}
	return &GreptimeDBWriter{client: client, teleTable: teleTable, eventTable: eventTable, log: log}, nil
}

// Write inserts a single telemetry row.
func (w *GreptimeDBWriter) Write(row telemetry.Row) error {
	return w.WriteBatch([]telemetry.Row{row})
}

// WriteBatch inserts multiple telemetry rows.
func (w *GreptimeDBWriter) WriteBatch(rows []telemetry.Row) error {
	if len(rows) == 0 {
		return nil
	}

	tbl, err := table.New(w.teleTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("mission_id", types.STRING)
	tbl.AddTagColumn("vehicle_id", types.STRING)
	tbl.AddFieldColumn("phase", types.STRING)
	tbl.AddFieldColumn("north", types.FLOAT64)
	tbl.AddFieldColumn("east", types.FLOAT64)
	tbl.AddFieldColumn("down", types.FLOAT64)
	tbl.AddFieldColumn("alt_m", types.FLOAT64)
	tbl.AddFieldColumn("speed_mps", types.FLOAT64)
	tbl.AddFieldColumn("armed", types.BOOLEAN)
	tbl.AddFieldColumn("guided", types.BOOLEAN)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	for _, r := range rows {
		if err := tbl.AddRow(r.MissionID, r.VehicleID, r.Phase,
			r.North, r.East, r.Down, r.AltM, r.SpeedMPS,
			r.Armed, r.Guided, r.Timestamp); err != nil {
			return err
		}
	}

	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		w.log.Error("telemetry write failed", "table", w.teleTable, "err", err)
		return err
	}
	return nil
}

// WriteEvent inserts a single mission event row.
func (w *GreptimeDBWriter) WriteEvent(row telemetry.EventRow) error {
	return w.WriteEvents([]telemetry.EventRow{row})
}

// WriteEvents inserts multiple mission event rows.
func (w *GreptimeDBWriter) WriteEvents(rows []telemetry.EventRow) error {
	if len(rows) == 0 {
		return nil
	}

	tbl, err := table.New(w.eventTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("mission_id", types.STRING)
	tbl.AddTagColumn("vehicle_id", types.STRING)
	tbl.AddFieldColumn("event", types.STRING)
	tbl.AddFieldColumn("from_phase", types.STRING)
	tbl.AddFieldColumn("to_phase", types.STRING)
	tbl.AddFieldColumn("command", types.STRING)
	tbl.AddFieldColumn("detail", types.STRING)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	for _, r := range rows {
		if err := tbl.AddRow(r.MissionID, r.VehicleID, r.Event,
			r.FromPhase, r.ToPhase, r.Command, r.Detail, r.Timestamp); err != nil {
			return err
		}
	}

	if _, err := w.client.Write(context.Background(), tbl); err != nil {
		w.log.Error("event write failed", "table", w.eventTable, "err", err)
		return err
	}
	return nil
}
