package flightlog

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"missionctl/internal/plan"
	"missionctl/internal/telemetry"
)

func TestColorStdoutWriterPrintsRowAndOverview(t *testing.T) {
	var buf bytes.Buffer
	p := &plan.MissionPlan{XStart: 0, XEnd: 20, YStart: 0, YEnd: 20, AltitudeM: 3.0}
	w := &ColorStdoutWriter{plan: p, out: &buf}

	row := telemetry.Row{
		MissionID: "m1", VehicleID: "v1", Phase: "waypoint",
		North: 12.5, East: 4.25, AltM: 3.0, SpeedMPS: 2.1,
		Armed: true, Guided: true, Timestamp: time.Unix(10, 0).UTC(),
	}
	if err := w.Write(row); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Flight Plan:", "mission=m1", "vehicle=v1", "phase=waypoint", "north=12.50", "armed=true"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := w.Write(row); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if strings.Contains(buf.String(), "Flight Plan:") {
		t.Error("overview must only print once")
	}
}

func TestColorStdoutWriterPrintsEvents(t *testing.T) {
	var buf bytes.Buffer
	w := &ColorStdoutWriter{out: &buf}

	err := w.WriteEvent(telemetry.EventRow{
		Event: telemetry.EventTransition, FromPhase: "takeoff", ToPhase: "waypoint",
		Detail: "reached takeoff altitude", Timestamp: time.Unix(10, 0).UTC(),
	})
	if err != nil {
		t.Fatalf("WriteEvent: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"TRANSITION", "takeoff -> ", "waypoint", "reached takeoff altitude"} {
		if !strings.Contains(out, want) {
			t.Errorf("transition output missing %q: %s", want, out)
		}
	}

	buf.Reset()
	if err := w.WriteEvent(telemetry.EventRow{Event: telemetry.EventCommand, Command: "land"}); err != nil {
		t.Fatalf("WriteEvent: %v", err)
	}
	if !strings.Contains(buf.String(), "COMMAND") || !strings.Contains(buf.String(), "land") {
		t.Errorf("unexpected command output: %s", buf.String())
	}
}

func TestJSONStdoutWriterEmitsValidJSON(t *testing.T) {
	var buf bytes.Buffer
	w := &JSONStdoutWriter{out: &buf}

	row := telemetry.Row{MissionID: "m1", Phase: "landing", Timestamp: time.Unix(3, 0).UTC()}
	if err := w.Write(row); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var got telemetry.Row
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.MissionID != "m1" || got.Phase != "landing" {
		t.Errorf("unexpected row: %+v", got)
	}
}
