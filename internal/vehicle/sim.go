// Package vehicle provides a simulated vehicle link: it executes command
// intents against a simple kinematic model and publishes telemetry events
// on a fixed tick, standing in for a real MAVLink-style transport.
package vehicle

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"missionctl/internal/telemetry"
)

const (
	climbRateMPS   = 2.0
	descentRateMPS = 1.0
	cruiseSpeedMPS = 5.0
	// Launch site elevation in the global frame. Arbitrary non-zero value
	// so the home-relative and body-relative altitude checks are distinct.
	launchElevationM = 120.0
)

type flightMode int

const (
	modeIdle flightMode = iota
	modeTakeoff
	modeFly
	modeLand
)

// Simulator is a kinematic stand-in for a real vehicle. It implements the
// driver's Commander interface and produces telemetry events.
type Simulator struct {
	mu        sync.Mutex
	pos       telemetry.Vector3
	vel       telemetry.Vector3
	globalAlt float64
	homeAlt   float64
	armed     bool
	guided    bool
	mode      flightMode
	targetN   float64
	targetE   float64
	targetAlt float64

	tick time.Duration
	out  chan telemetry.Event
	log  *slog.Logger
}

// NewSimulator creates a simulator emitting telemetry every tick.
func NewSimulator(tick time.Duration, log *slog.Logger) *Simulator {
	if log == nil {
		log = slog.Default()
	}
	return &Simulator{
		globalAlt: launchElevationM,
		homeAlt:   launchElevationM,
		tick:      tick,
		out:       make(chan telemetry.Event, 16),
		log:       log,
	}
}

// Events returns the telemetry event stream.
func (s *Simulator) Events() <-chan telemetry.Event {
	return s.out
}

// Run steps the vehicle model and emits telemetry until the context is
// done. The event channel is closed on return.
func (s *Simulator) Run(ctx context.Context) {
	s.log.Info("vehicle link up", "tick", s.tick)
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	defer close(s.out)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("vehicle link down")
			return
		case now := <-ticker.C:
			s.step(s.tick.Seconds())
			for _, ev := range s.snapshot(now) {
				select {
				case s.out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

// step advances the kinematic model by dt seconds.
func (s *Simulator) step(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.mode {
	case modeTakeoff:
		alt := s.pos.Altitude()
		if alt >= s.targetAlt {
			s.vel = telemetry.Vector3{}
			break
		}
		climb := math.Min(climbRateMPS*dt, s.targetAlt-alt)
		s.pos.Down -= climb
		s.vel = telemetry.Vector3{Down: -climb / dt}
	case modeFly:
		dn := s.targetN - s.pos.North
		de := s.targetE - s.pos.East
		dist := math.Hypot(dn, de)
		if dist == 0 {
			s.vel = telemetry.Vector3{}
			break
		}
		// Proportional approach capped at cruise speed, so the vehicle
		// decelerates and settles as it closes on the target.
		speed := math.Min(cruiseSpeedMPS, dist)
		s.vel = telemetry.Vector3{North: speed * dn / dist, East: speed * de / dist}
		s.pos.North += s.vel.North * dt
		s.pos.East += s.vel.East * dt
	case modeLand:
		alt := s.pos.Altitude()
		if alt <= 0 {
			s.pos.Down = 0
			s.vel = telemetry.Vector3{}
			break
		}
		drop := math.Min(descentRateMPS*dt, alt)
		s.pos.Down += drop
		s.vel = telemetry.Vector3{Down: drop / dt}
	case modeIdle:
		s.vel = telemetry.Vector3{}
	}
	s.globalAlt = launchElevationM + s.pos.Altitude()
}

// snapshot builds the telemetry events for one tick.
func (s *Simulator) snapshot(now time.Time) []telemetry.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	sample := telemetry.Sample{
		Position:       s.pos,
		Velocity:       s.vel,
		GlobalAltitude: s.globalAlt,
		HomeAltitude:   s.homeAlt,
		Time:           now,
	}
	state := telemetry.StateSample{Armed: s.armed, Guided: s.guided, Time: now}
	return []telemetry.Event{
		{Kind: telemetry.KindState, State: state},
		{Kind: telemetry.KindPosition, Sample: sample},
		{Kind: telemetry.KindVelocity, Sample: sample},
	}
}

// TakeControl switches the vehicle to guided mode.
func (s *Simulator) TakeControl() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guided = true
	return nil
}

// ReleaseControl returns the vehicle to manual control.
func (s *Simulator) ReleaseControl() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guided = false
	s.mode = modeIdle
	return nil
}

// Arm spins up the motors.
func (s *Simulator) Arm() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.armed = true
	return nil
}

// Disarm stops the motors.
func (s *Simulator) Disarm() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.armed = false
	s.mode = modeIdle
	return nil
}

// SetHomePosition records the current global position as home.
func (s *Simulator) SetHomePosition() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.homeAlt = s.globalAlt
	return nil
}

// Takeoff climbs vertically to the given altitude.
func (s *Simulator) Takeoff(altitudeM float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = modeTakeoff
	s.targetAlt = altitudeM
	return nil
}

// CommandPosition flies toward the given local position.
func (s *Simulator) CommandPosition(north, east, altM, headingDeg float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = modeFly
	s.targetN = north
	s.targetE = east
	s.targetAlt = altM
	return nil
}

// Land descends to the ground at the current position.
func (s *Simulator) Land() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = modeLand
	return nil
}
