// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"missionctl/internal/plan"
)

const defaultTick = 100 * time.Millisecond

// Config is the root configuration for one mission flight.
type Config struct {
	VehicleID string           `yaml:"vehicle_id"`
	Tick      string           `yaml:"tick"`
	Plan      plan.MissionPlan `yaml:"plan"`

	tick time.Duration
}

// TickInterval returns the parsed telemetry tick interval.
func (c *Config) TickInterval() time.Duration {
	return c.tick
}

// Load loads YAML config, validates it against a CUE schema, and checks
// the mission plan before any mission is started.
func Load(configPath, cueSchemaPath string) (*Config, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.VehicleID == "" {
		cfg.VehicleID = "sim-01"
	}
	cfg.tick = defaultTick
	if cfg.Tick != "" {
		d, err := time.ParseDuration(cfg.Tick)
		if err != nil {
			return nil, fmt.Errorf("invalid tick %q: %w", cfg.Tick, err)
		}
		cfg.tick = d
	}
	if err := cfg.Plan.Validate(); err != nil {
		return nil, err
	}

	slog.Info("configuration loaded", "vehicle_id", cfg.VehicleID, "tick", cfg.tick,
		"altitude_m", cfg.Plan.AltitudeM)

	return &cfg, nil
}
