// Telemetry sample types shared by the link, state machine, and writers.
package telemetry

import (
	"math"
	"time"
)

// Vector3 is a local-frame NED vector. Down is positive, so the vehicle's
// altitude above the local origin is -Down.
type Vector3 struct {
	North float64 `json:"north"`
	East  float64 `json:"east"`
	Down  float64 `json:"down"`
}

// Altitude returns the altitude implied by the NED down component.
func (v Vector3) Altitude() float64 {
	return -v.Down
}

// PlanarDistance returns the horizontal distance to o, ignoring altitude.
func (v Vector3) PlanarDistance(o Vector3) float64 {
	return math.Hypot(v.North-o.North, v.East-o.East)
}

// PlanarSpeed returns the magnitude of the horizontal components.
func (v Vector3) PlanarSpeed() float64 {
	return math.Hypot(v.North, v.East)
}

// Sample is one position/velocity telemetry update from the vehicle link.
// GlobalAltitude and HomeAltitude carry the global-frame altitudes needed
// for the near-ground checks during landing.
type Sample struct {
	Position       Vector3
	Velocity       Vector3
	GlobalAltitude float64
	HomeAltitude   float64
	Time           time.Time
}

// StateSample is one armed/guided state update from the vehicle link.
type StateSample struct {
	Armed  bool
	Guided bool
	Time   time.Time
}

// Kind tags a telemetry event with the update it carries.
type Kind int

const (
	KindPosition Kind = iota
	KindVelocity
	KindState
)

// String returns the lower-case name of the telemetry kind.
func (k Kind) String() string {
	switch k {
	case KindPosition:
		return "position"
	case KindVelocity:
		return "velocity"
	case KindState:
		return "state"
	}
	return "unknown"
}

// Event is the envelope delivered by the link. Sample is valid for
// KindPosition and KindVelocity, State for KindState.
type Event struct {
	Kind   Kind
	Sample Sample
	State  StateSample
}
