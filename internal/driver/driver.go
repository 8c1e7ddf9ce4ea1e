// Package driver wires the flight state machine to a vehicle link: it
// serializes telemetry delivery into the machine and forwards the
// machine's command intents to the vehicle.
package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"missionctl/internal/command"
	"missionctl/internal/flightlog"
	"missionctl/internal/mission"
	"missionctl/internal/telemetry"
)

// Commander executes command intents on the vehicle. Calls are
// fire-and-forget from the machine's perspective; failures are logged and
// not retried.
type Commander interface {
	TakeControl() error
	ReleaseControl() error
	Arm() error
	Disarm() error
	SetHomePosition() error
	Takeoff(altitudeM float64) error
	CommandPosition(north, east, altM, headingDeg float64) error
	Land() error
}

// Driver owns one mission: it consumes telemetry events, runs the state
// machine, and executes the resulting commands.
type Driver struct {
	machine   *mission.Machine
	session   *mission.Session
	commander Commander
	vehicleID string
	writer    flightlog.TelemetryWriter
	events    flightlog.EventWriter
	lastState telemetry.StateSample
	log       *slog.Logger
}

// New starts a mission session on the machine and returns a driver for it.
// writer and events may be nil to disable persistence.
func New(m *mission.Machine, cmdr Commander, vehicleID string, writer flightlog.TelemetryWriter, events flightlog.EventWriter, log *slog.Logger) *Driver {
	if log == nil {
		log = slog.Default()
	}
	return &Driver{
		machine:   m,
		session:   m.Start(),
		commander: cmdr,
		vehicleID: vehicleID,
		writer:    writer,
		events:    events,
		log:       log,
	}
}

// Session exposes the mission session for inspection. The driver remains
// the only writer.
func (d *Driver) Session() *mission.Session {
	return d.session
}

// Run consumes telemetry events until the mission completes or the context
// is cancelled. Delivery is single-threaded: each event runs to completion
// in the machine before the next is dispatched.
func (d *Driver) Run(ctx context.Context, events <-chan telemetry.Event) error {
	d.log.Info("mission started", "session_id", d.session.ID, "vehicle_id", d.vehicleID)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return fmt.Errorf("telemetry link closed before mission completion")
			}
			d.Dispatch(ev)
			if d.machine.Complete(d.session) {
				d.log.Info("mission complete", "session_id", d.session.ID)
				return nil
			}
		}
	}
}

// Dispatch routes one telemetry event into the machine and executes any
// resulting commands.
func (d *Driver) Dispatch(ev telemetry.Event) {
	var cmds []command.Command
	var tr *mission.Transition

	switch ev.Kind {
	case telemetry.KindPosition:
		cmds, tr = d.machine.OnPosition(d.session, ev.Sample)
		d.record(ev.Sample)
	case telemetry.KindVelocity:
		cmds, tr = d.machine.OnVelocity(d.session, ev.Sample)
	case telemetry.KindState:
		d.lastState = ev.State
		cmds, tr = d.machine.OnState(d.session, ev.State)
	default:
		d.log.Warn("unknown telemetry kind", "kind", int(ev.Kind))
		return
	}

	at := time.Now()
	if tr != nil {
		at = tr.At
		d.recordTransition(tr)
	}
	for _, c := range cmds {
		if err := d.execute(c); err != nil {
			d.log.Error("command failed", "command", c.String(), "err", err)
		}
		d.recordCommand(c, at)
	}
}

func (d *Driver) execute(c command.Command) error {
	switch c.Kind {
	case command.TakeControl:
		return d.commander.TakeControl()
	case command.ReleaseControl:
		return d.commander.ReleaseControl()
	case command.Arm:
		return d.commander.Arm()
	case command.Disarm:
		return d.commander.Disarm()
	case command.SetHome:
		return d.commander.SetHomePosition()
	case command.Takeoff:
		return d.commander.Takeoff(c.AltitudeM)
	case command.FlyTo:
		return d.commander.CommandPosition(c.Target.North, c.Target.East, c.Target.AltM, c.HeadingDeg)
	case command.Land:
		return d.commander.Land()
	}
	return fmt.Errorf("unknown command kind %d", int(c.Kind))
}

func (d *Driver) record(sample telemetry.Sample) {
	if d.writer == nil {
		return
	}
	row := telemetry.Row{
		MissionID: d.session.ID,
		VehicleID: d.vehicleID,
		Phase:     d.session.Phase.String(),
		North:     sample.Position.North,
		East:      sample.Position.East,
		Down:      sample.Position.Down,
		AltM:      sample.Position.Altitude(),
		SpeedMPS:  sample.Velocity.PlanarSpeed(),
		Armed:     d.lastState.Armed,
		Guided:    d.lastState.Guided,
		Timestamp: sample.Time,
	}
	if err := d.writer.Write(row); err != nil {
		d.log.Error("telemetry write failed", "err", err)
	}
}

func (d *Driver) recordTransition(tr *mission.Transition) {
	if d.events == nil {
		return
	}
	row := telemetry.EventRow{
		MissionID: d.session.ID,
		VehicleID: d.vehicleID,
		Event:     telemetry.EventTransition,
		FromPhase: tr.From.String(),
		ToPhase:   tr.To.String(),
		Detail:    tr.Reason,
		Timestamp: tr.At,
	}
	if err := d.events.WriteEvent(row); err != nil {
		d.log.Error("event write failed", "err", err)
	}
}

func (d *Driver) recordCommand(c command.Command, at time.Time) {
	if d.events == nil {
		return
	}
	row := telemetry.EventRow{
		MissionID: d.session.ID,
		VehicleID: d.vehicleID,
		Event:     telemetry.EventCommand,
		Command:   c.String(),
		Timestamp: at,
	}
	if err := d.events.WriteEvent(row); err != nil {
		d.log.Error("event write failed", "err", err)
	}
}
