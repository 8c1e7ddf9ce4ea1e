package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"missionctl/internal/plan"
)

const testSchema = `
vehicle_id?: string & !=""
tick?:       string

plan: {
	x_start:    number
	x_end:      number
	y_start:    number
	y_end:      number
	altitude_m: number & >0
}
`

func writeFiles(t *testing.T, yamlBody string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "flightplan.yaml")
	cuePath := filepath.Join(dir, "flightplan.cue")
	if err := os.WriteFile(cfgPath, []byte(yamlBody), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cuePath, []byte(testSchema), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfgPath, cuePath
}

func TestLoadValidConfig(t *testing.T) {
	cfgPath, cuePath := writeFiles(t, `
vehicle_id: test-1
tick: 50ms
plan:
  x_start: 0.0
  x_end: 20.0
  y_start: 0.0
  y_end: 20.0
  altitude_m: 3.0
`)
	cfg, err := Load(cfgPath, cuePath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.VehicleID != "test-1" {
		t.Errorf("unexpected vehicle id %q", cfg.VehicleID)
	}
	if cfg.TickInterval() != 50*time.Millisecond {
		t.Errorf("unexpected tick %v", cfg.TickInterval())
	}
	if cfg.Plan.AltitudeM != 3.0 {
		t.Errorf("unexpected plan: %+v", cfg.Plan)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfgPath, cuePath := writeFiles(t, `
plan:
  x_start: 0.0
  x_end: 10.0
  y_start: 0.0
  y_end: 10.0
  altitude_m: 5.0
`)
	cfg, err := Load(cfgPath, cuePath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.VehicleID != "sim-01" {
		t.Errorf("expected default vehicle id, got %q", cfg.VehicleID)
	}
	if cfg.TickInterval() != defaultTick {
		t.Errorf("expected default tick, got %v", cfg.TickInterval())
	}
}

func TestLoadRejectsSchemaViolation(t *testing.T) {
	// altitude_m must be > 0 per the schema.
	cfgPath, cuePath := writeFiles(t, `
plan:
  x_start: 0.0
  x_end: 10.0
  y_start: 0.0
  y_end: 10.0
  altitude_m: -1.0
`)
	if _, err := Load(cfgPath, cuePath); err == nil {
		t.Fatal("expected schema validation error")
	}
}

func TestLoadRejectsInvalidPlan(t *testing.T) {
	// A schema without the altitude bound lets the plan check catch it.
	cfgPath, cuePath := writeFiles(t, `
plan:
  x_start: 0.0
  x_end: 10.0
  y_start: 0.0
  y_end: 10.0
  altitude_m: 0.0
`)
	if err := os.WriteFile(cuePath, []byte(`
plan: {
	x_start:    number
	x_end:      number
	y_start:    number
	y_end:      number
	altitude_m: number
}
`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(cfgPath, cuePath)
	if !errors.Is(err, plan.ErrInvalidPlan) {
		t.Fatalf("expected ErrInvalidPlan, got %v", err)
	}
}

func TestLoadRejectsBadTick(t *testing.T) {
	cfgPath, cuePath := writeFiles(t, `
tick: soon
plan:
  x_start: 0.0
  x_end: 10.0
  y_start: 0.0
  y_end: 10.0
  altitude_m: 3.0
`)
	if _, err := Load(cfgPath, cuePath); err == nil {
		t.Fatal("expected tick parse error")
	}
}

func TestLoadMissingFiles(t *testing.T) {
	if _, err := Load("missing.yaml", "missing.cue"); err == nil {
		t.Fatal("expected error for missing files")
	}
}
