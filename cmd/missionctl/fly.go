package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"missionctl/internal/config"
	"missionctl/internal/driver"
	"missionctl/internal/logging"
	"missionctl/internal/mission"
	"missionctl/internal/vehicle"
)

var (
	flyConfigPath string
	flySchemaPath string
	flyTick       time.Duration
	flyLogFile    string
	flyPrintOnly  bool
	flyJSON       bool
	flyTUI        bool
)

var flyCmd = &cobra.Command{
	Use:   "fly",
	Short: "Fly the configured box mission against the simulated vehicle",
	Long:  "fly arms the vehicle, climbs to cruise altitude, visits the four rectangle corners, lands, and disarms.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flyConfigPath, flySchemaPath)
		if err != nil {
			return err
		}

		tickInterval := cfg.TickInterval()
		if flyTick > 0 {
			tickInterval = flyTick
		}
		if envTick := os.Getenv("TICK_INTERVAL"); envTick != "" {
			d, err := time.ParseDuration(envTick)
			if err != nil {
				return err
			}
			tickInterval = d
		}

		useTUI := flyTUI
		if !cmd.Flags().Changed("tui") {
			useTUI = !flyPrintOnly && !flyJSON && term.IsTerminal(int(os.Stdout.Fd()))
		}

		logger := logging.New(os.Stderr)
		writer, events, cleanup, err := newWriters(cfg, flyPrintOnly, flyJSON, useTUI, flyLogFile)
		if err != nil {
			return err
		}
		defer cleanup()

		machine, err := mission.NewMachine(cfg.Plan, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		ctx = logging.NewContext(ctx, logger)

		sim := vehicle.NewSimulator(tickInterval, logger)
		go sim.Run(ctx)

		drv := driver.New(machine, sim, cfg.VehicleID, writer, events, logger)
		if err := drv.Run(ctx, sim.Events()); err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Info("mission aborted")
				return nil
			}
			return err
		}
		return nil
	},
}

func init() {
	flyCmd.Flags().StringVar(&flyConfigPath, "config", "config/flightplan.yaml", "Path to flight plan YAML")
	flyCmd.Flags().StringVar(&flySchemaPath, "schema", "schemas/flightplan.cue", "Path to CUE schema file")
	flyCmd.Flags().DurationVar(&flyTick, "tick", 0, "Telemetry tick interval override (e.g. 50ms)")
	flyCmd.Flags().StringVar(&flyLogFile, "log-file", "", "Path to export telemetry/event logs (JSONL)")
	flyCmd.Flags().BoolVar(&flyPrintOnly, "print-only", false, "Print telemetry to STDOUT instead of writing to DB")
	flyCmd.Flags().BoolVar(&flyJSON, "json", false, "Print telemetry as JSON lines")
	flyCmd.Flags().BoolVar(&flyTUI, "tui", false, "Render a live TUI (defaults to on when stdout is a terminal)")
}
