package flightlog

import (
	"testing"

	"missionctl/internal/telemetry"
)

// collectWriter records rows without batch support.
type collectWriter struct {
	rows   []telemetry.Row
	events []telemetry.EventRow
}

func (w *collectWriter) Write(row telemetry.Row) error {
	w.rows = append(w.rows, row)
	return nil
}

func (w *collectWriter) WriteEvent(row telemetry.EventRow) error {
	w.events = append(w.events, row)
	return nil
}

// batchCollectWriter records rows and counts batch calls.
type batchCollectWriter struct {
	collectWriter
	batches int
}

func (w *batchCollectWriter) WriteBatch(rows []telemetry.Row) error {
	w.batches++
	w.rows = append(w.rows, rows...)
	return nil
}

func TestMultiWriterFansOut(t *testing.T) {
	a := &collectWriter{}
	b := &collectWriter{}
	mw := NewMultiWriter([]TelemetryWriter{a, b}, []EventWriter{a})

	if err := mw.Write(telemetry.Row{MissionID: "m1"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(a.rows) != 1 || len(b.rows) != 1 {
		t.Errorf("expected row in both writers, got %d and %d", len(a.rows), len(b.rows))
	}

	if err := mw.WriteEvent(telemetry.EventRow{Event: telemetry.EventCommand}); err != nil {
		t.Fatalf("WriteEvent: %v", err)
	}
	if len(a.events) != 1 {
		t.Errorf("expected 1 event, got %d", len(a.events))
	}
	if len(b.events) != 0 {
		t.Errorf("b is not an event writer, got %d events", len(b.events))
	}
}

func TestMultiWriterUsesBatchWhenSupported(t *testing.T) {
	plain := &collectWriter{}
	batch := &batchCollectWriter{}
	mw := NewMultiWriter([]TelemetryWriter{plain, batch}, nil)

	rows := []telemetry.Row{{MissionID: "m1"}, {MissionID: "m1"}}
	if err := mw.WriteBatch(rows); err != nil {
		t.Fatalf("WriteBatch: %v", err)
	}
	if len(plain.rows) != 2 || len(batch.rows) != 2 {
		t.Errorf("expected 2 rows each, got %d and %d", len(plain.rows), len(batch.rows))
	}
	if batch.batches != 1 {
		t.Errorf("expected 1 batch call, got %d", batch.batches)
	}
}
