package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"missionctl/internal/flightlog"
)

var (
	replayInput string
	replaySpeed float64
	replayJSON  bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a recorded telemetry log file",
	Long:  "replay feeds telemetry rows from a JSONL log file back to STDOUT at the recorded pace.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayInput == "" {
			return fmt.Errorf("input file required")
		}
		var writer flightlog.TelemetryWriter
		if replayJSON {
			writer = flightlog.NewJSONStdoutWriter()
		} else {
			writer = flightlog.NewColorStdoutWriter(nil)
		}
		return flightlog.ReplayLogFile(replayInput, writer, replaySpeed)
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to telemetry log file")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier")
	replayCmd.Flags().BoolVar(&replayJSON, "json", false, "Print rows as JSON lines")
	replayCmd.MarkFlagRequired("input")
}
