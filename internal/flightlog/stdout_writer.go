// ColorStdoutWriter prints human-friendly, colorized telemetry to STDOUT.
package flightlog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"missionctl/internal/plan"
	"missionctl/internal/telemetry"
)

const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorBlue    = "\x1b[34m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
	colorWhite   = "\x1b[37m"
	colorGray    = "\x1b[90m"
)

// phaseColors maps flight phases to their display color.
var phaseColors = map[string]string{
	"manual":    colorGray,
	"arming":    colorYellow,
	"takeoff":   colorCyan,
	"waypoint":  colorGreen,
	"landing":   colorMagenta,
	"disarming": colorYellow,
}

// ColorStdoutWriter prints telemetry rows using ANSI colors.
type ColorStdoutWriter struct {
	plan *plan.MissionPlan
	out  io.Writer
	once sync.Once
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter(p *plan.MissionPlan) *ColorStdoutWriter {
	return &ColorStdoutWriter{plan: p, out: os.Stdout}
}

func (w *ColorStdoutWriter) printOverview() {
	if w.plan == nil {
		return
	}

	fmt.Fprintln(w.out, "Flight Plan:")
	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "X Range (m):\t%.1f .. %.1f\n", w.plan.XStart, w.plan.XEnd)
	fmt.Fprintf(tw, "Y Range (m):\t%.1f .. %.1f\n", w.plan.YStart, w.plan.YEnd)
	fmt.Fprintf(tw, "Cruise Altitude (m):\t%.1f\n", w.plan.AltitudeM)
	tw.Flush()
	fmt.Fprintln(w.out)
}

func phaseColor(phase string) string {
	if c, ok := phaseColors[phase]; ok {
		return c
	}
	return colorWhite
}

// Write outputs a single telemetry row in colorized format.
func (w *ColorStdoutWriter) Write(row telemetry.Row) error {
	w.once.Do(w.printOverview)

	fmt.Fprintf(w.out, "%s[%s]%s ", colorGray, row.Timestamp.Format(time.RFC3339), colorReset)
	fmt.Fprintf(w.out, "%smission=%s%s ", colorBlue, row.MissionID, colorReset)
	fmt.Fprintf(w.out, "%svehicle=%s%s ", colorWhite, row.VehicleID, colorReset)
	fmt.Fprintf(w.out, "%sphase=%s%s ", phaseColor(row.Phase), row.Phase, colorReset)
	fmt.Fprintf(w.out, "%snorth=%.2f%s ", colorGreen, row.North, colorReset)
	fmt.Fprintf(w.out, "%seast=%.2f%s ", colorYellow, row.East, colorReset)
	fmt.Fprintf(w.out, "%salt=%.2f%s ", colorMagenta, row.AltM, colorReset)
	fmt.Fprintf(w.out, "%sspd=%.2f%s ", colorCyan, row.SpeedMPS, colorReset)
	fmt.Fprintf(w.out, "armed=%t guided=%t", row.Armed, row.Guided)
	fmt.Fprintln(w.out)
	return nil
}

// WriteBatch outputs multiple telemetry rows.
func (w *ColorStdoutWriter) WriteBatch(rows []telemetry.Row) error {
	for _, r := range rows {
		_ = w.Write(r)
	}
	return nil
}

// WriteEvent prints a mission event to STDOUT.
func (w *ColorStdoutWriter) WriteEvent(row telemetry.EventRow) error {
	w.once.Do(w.printOverview)
	switch row.Event {
	case telemetry.EventTransition:
		fmt.Fprintf(w.out, "%s[%s]%s %sTRANSITION%s %s -> %s%s%s (%s)\n",
			colorGray, row.Timestamp.Format(time.RFC3339), colorReset,
			colorRed, colorReset, row.FromPhase,
			phaseColor(row.ToPhase), row.ToPhase, colorReset, row.Detail)
	case telemetry.EventCommand:
		fmt.Fprintf(w.out, "%s[%s]%s %sCOMMAND%s %s\n",
			colorGray, row.Timestamp.Format(time.RFC3339), colorReset,
			colorCyan, colorReset, row.Command)
	default:
		fmt.Fprintf(w.out, "%s[%s]%s %s %s\n",
			colorGray, row.Timestamp.Format(time.RFC3339), colorReset,
			row.Event, row.Detail)
	}
	return nil
}

// WriteEvents prints multiple mission events.
func (w *ColorStdoutWriter) WriteEvents(rows []telemetry.EventRow) error {
	for _, r := range rows {
		_ = w.WriteEvent(r)
	}
	return nil
}
