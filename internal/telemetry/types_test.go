package telemetry

import (
	"math"
	"testing"
)

func TestVector3Altitude(t *testing.T) {
	v := Vector3{Down: -3.2}
	if got := v.Altitude(); got != 3.2 {
		t.Errorf("Altitude() = %v, want 3.2", got)
	}
}

func TestVector3PlanarDistanceIgnoresAltitude(t *testing.T) {
	a := Vector3{North: 3, East: 4, Down: -10}
	b := Vector3{North: 0, East: 0, Down: 25}
	if got := a.PlanarDistance(b); got != 5 {
		t.Errorf("PlanarDistance() = %v, want 5", got)
	}
}

func TestVector3PlanarSpeed(t *testing.T) {
	v := Vector3{North: 1, East: 1, Down: -9}
	if got := v.PlanarSpeed(); math.Abs(got-math.Sqrt2) > 1e-12 {
		t.Errorf("PlanarSpeed() = %v, want sqrt(2)", got)
	}
}

func TestKindString(t *testing.T) {
	names := map[Kind]string{
		KindPosition: "position",
		KindVelocity: "velocity",
		KindState:    "state",
		Kind(99):     "unknown",
	}
	for k, want := range names {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}
