package main

import (
	"os"

	"missionctl/internal/config"
	"missionctl/internal/flightlog"
)

// newWriters sets up telemetry and event writers based on flags and env
// vars. It returns the writers and a cleanup function to close any
// resources.
func newWriters(cfg *config.Config, printOnly, jsonOut, tui bool, logFile string) (flightlog.TelemetryWriter, flightlog.EventWriter, func(), error) {
	cleanup := func() {}

	writer, events, c, err := baseWriters(cfg, printOnly, jsonOut, tui)
	if err != nil {
		return nil, nil, nil, err
	}
	cleanup = c

	if logFile == "" {
		return writer, events, cleanup, nil
	}

	fw, err := flightlog.NewFileWriter(logFile, logFile+".events")
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	mw := flightlog.NewMultiWriter(
		[]flightlog.TelemetryWriter{writer, fw},
		[]flightlog.EventWriter{events, fw},
	)
	base := cleanup
	cleanup = func() {
		fw.Close()
		base()
	}
	return mw, mw, cleanup, nil
}

// baseWriters chooses the underlying writers based on flags and env vars.
func baseWriters(cfg *config.Config, printOnly, jsonOut, tui bool) (flightlog.TelemetryWriter, flightlog.EventWriter, func(), error) {
	if !printOnly && !jsonOut && os.Getenv("GREPTIMEDB_ENDPOINT") != "" {
		endpoint := os.Getenv("GREPTIMEDB_ENDPOINT")
		table := os.Getenv("GREPTIMEDB_TABLE")
		eventTable := os.Getenv("MISSION_EVENT_TABLE")
		w, err := flightlog.NewGreptimeDBWriter(endpoint, "public", table, eventTable, nil)
		if err != nil {
			return nil, nil, nil, err
		}
		return w, w, func() {}, nil
	}
	if tui {
		w := flightlog.NewTUIWriter(&cfg.Plan)
		return w, w, func() { w.Close() }, nil
	}
	if jsonOut {
		w := flightlog.NewJSONStdoutWriter()
		return w, w, func() {}, nil
	}
	w := flightlog.NewColorStdoutWriter(&cfg.Plan)
	return w, w, func() {}, nil
}
