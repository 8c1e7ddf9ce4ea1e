// Package command defines the abstract instruction set emitted by the
// flight state machine and executed by the vehicle link.
package command

import (
	"fmt"

	"missionctl/internal/plan"
)

// Kind enumerates the command intents.
type Kind int

const (
	TakeControl Kind = iota
	ReleaseControl
	Arm
	Disarm
	SetHome
	Takeoff
	FlyTo
	Land
)

// String returns the wire-friendly name of the command kind.
func (k Kind) String() string {
	switch k {
	case TakeControl:
		return "take_control"
	case ReleaseControl:
		return "release_control"
	case Arm:
		return "arm"
	case Disarm:
		return "disarm"
	case SetHome:
		return "set_home"
	case Takeoff:
		return "takeoff"
	case FlyTo:
		return "fly_to"
	case Land:
		return "land"
	}
	return "unknown"
}

// Command is one intent for the vehicle. AltitudeM is set for Takeoff,
// Target and HeadingDeg for FlyTo; other kinds carry no payload.
type Command struct {
	Kind       Kind
	AltitudeM  float64
	Target     plan.Waypoint
	HeadingDeg float64
}

// String renders the command with its payload for logs.
func (c Command) String() string {
	switch c.Kind {
	case Takeoff:
		return fmt.Sprintf("takeoff(%.1fm)", c.AltitudeM)
	case FlyTo:
		return fmt.Sprintf("fly_to(%.1f, %.1f, %.1fm)", c.Target.North, c.Target.East, c.Target.AltM)
	}
	return c.Kind.String()
}
