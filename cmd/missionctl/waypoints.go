package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"missionctl/internal/config"
	"missionctl/internal/plan"
)

var (
	waypointsConfigPath string
	waypointsSchemaPath string
)

var waypointsCmd = &cobra.Command{
	Use:   "waypoints",
	Short: "Print the waypoint itinerary for the configured flight plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(waypointsConfigPath, waypointsSchemaPath)
		if err != nil {
			return err
		}
		wps, err := plan.GenerateBox(cfg.Plan)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tNorth (m)\tEast (m)\tAltitude (m)")
		for i, wp := range wps {
			fmt.Fprintf(tw, "%d\t%.1f\t%.1f\t%.1f\n", i+1, wp.North, wp.East, wp.AltM)
		}
		return tw.Flush()
	},
}

func init() {
	waypointsCmd.Flags().StringVar(&waypointsConfigPath, "config", "config/flightplan.yaml", "Path to flight plan YAML")
	waypointsCmd.Flags().StringVar(&waypointsSchemaPath, "schema", "schemas/flightplan.cue", "Path to CUE schema file")
}
