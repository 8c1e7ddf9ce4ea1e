package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"missionctl/internal/flightlog"
	"missionctl/internal/telemetry"
)

func TestNewWritersJSONStdout(t *testing.T) {
	tw, ew, cleanup, err := newWriters(nil, false, true, false, "")
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	cleanup()
	if _, ok := tw.(*flightlog.JSONStdoutWriter); !ok {
		t.Fatalf("expected *flightlog.JSONStdoutWriter, got %T", tw)
	}
	if _, ok := ew.(*flightlog.JSONStdoutWriter); !ok {
		t.Fatalf("expected event writer *flightlog.JSONStdoutWriter, got %T", ew)
	}
}

func TestNewWritersGreptimeFallback(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")
	tw, _, cleanup, err := newWriters(nil, false, true, false, "")
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	cleanup()
	if _, ok := tw.(*flightlog.JSONStdoutWriter); !ok {
		t.Fatalf("expected *flightlog.JSONStdoutWriter, got %T", tw)
	}
}

func TestNewWritersLogFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "telemetry.log")
	tw, ew, cleanup, err := newWriters(nil, false, true, false, path)
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	defer cleanup()
	if _, ok := tw.(*flightlog.MultiWriter); !ok {
		t.Fatalf("expected *flightlog.MultiWriter, got %T", tw)
	}
	if _, ok := ew.(*flightlog.MultiWriter); !ok {
		t.Fatalf("expected event writer *flightlog.MultiWriter, got %T", ew)
	}
	row := telemetry.Row{MissionID: "m1", VehicleID: "v1", Timestamp: time.Now()}
	if err := tw.Write(row); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	ev := telemetry.EventRow{MissionID: "m1", Event: telemetry.EventTransition, Timestamp: time.Now()}
	if err := ew.WriteEvent(ev); err != nil {
		t.Fatalf("write event failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected log file to be non-empty")
	}
	evInfo, err := os.Stat(path + ".events")
	if err != nil {
		t.Fatalf("stat events failed: %v", err)
	}
	if evInfo.Size() == 0 {
		t.Fatalf("expected event file to be non-empty")
	}
}
