package flightlog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"missionctl/internal/telemetry"
)

func TestFileWriterWritesJSONL(t *testing.T) {
	dir := t.TempDir()
	telePath := filepath.Join(dir, "flight.jsonl")
	eventPath := filepath.Join(dir, "flight.jsonl.events")

	fw, err := NewFileWriter(telePath, eventPath)
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}

	rows := []telemetry.Row{
		{MissionID: "m1", VehicleID: "v1", Phase: "takeoff", AltM: 1.5, Timestamp: time.Unix(1, 0).UTC()},
		{MissionID: "m1", VehicleID: "v1", Phase: "waypoint", AltM: 3.0, Timestamp: time.Unix(2, 0).UTC()},
	}
	if err := fw.WriteBatch(rows); err != nil {
		t.Fatalf("WriteBatch: %v", err)
	}
	ev := telemetry.EventRow{MissionID: "m1", Event: telemetry.EventTransition, FromPhase: "takeoff", ToPhase: "waypoint"}
	if err := fw.WriteEvent(ev); err != nil {
		t.Fatalf("WriteEvent: %v", err)
	}
	if err := fw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(telePath)
	if err != nil {
		t.Fatalf("open telemetry log: %v", err)
	}
	defer f.Close()
	var got []telemetry.Row
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var row telemetry.Row
		if err := json.Unmarshal(sc.Bytes(), &row); err != nil {
			t.Fatalf("bad JSONL line: %v", err)
		}
		got = append(got, row)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[1].Phase != "waypoint" || got[1].AltM != 3.0 {
		t.Errorf("unexpected row: %+v", got[1])
	}

	evBytes, err := os.ReadFile(eventPath)
	if err != nil {
		t.Fatalf("read event log: %v", err)
	}
	var gotEv telemetry.EventRow
	if err := json.Unmarshal(evBytes, &gotEv); err != nil {
		t.Fatalf("bad event line: %v", err)
	}
	if gotEv.ToPhase != "waypoint" {
		t.Errorf("unexpected event: %+v", gotEv)
	}
}

func TestFileWriterWithoutEventLog(t *testing.T) {
	dir := t.TempDir()
	fw, err := NewFileWriter(filepath.Join(dir, "flight.jsonl"), "")
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}
	defer fw.Close()

	if err := fw.WriteEvent(telemetry.EventRow{Event: telemetry.EventCommand}); err != nil {
		t.Errorf("WriteEvent with no event log must be a no-op, got %v", err)
	}
}
