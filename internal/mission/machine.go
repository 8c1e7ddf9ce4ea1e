// Package mission holds the flight state machine driving a scripted
// box mission: arm, climb, fly four waypoints, land, disarm.
package mission

import (
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"missionctl/internal/command"
	"missionctl/internal/plan"
	"missionctl/internal/telemetry"
)

const (
	// The climb counts as done at 95% of the target altitude.
	takeoffAltitudeRatio = 0.95
	// A waypoint counts as reached inside this planar radius.
	waypointRadiusM = 1.0
	// Horizontal speed must settle below this before landing begins.
	settleSpeedMPS = 0.1
	// Both near-ground checks must hold at once before disarm.
	homeAltThresholdM   = 0.1
	groundAltThresholdM = 0.05
)

// Phase is the single discrete flight-control state of the mission.
type Phase int

const (
	Manual Phase = iota
	Arming
	Takeoff
	Waypoint
	Landing
	Disarming
)

// String returns the lower-case phase name.
func (p Phase) String() string {
	switch p {
	case Manual:
		return "manual"
	case Arming:
		return "arming"
	case Takeoff:
		return "takeoff"
	case Waypoint:
		return "waypoint"
	case Landing:
		return "landing"
	case Disarming:
		return "disarming"
	}
	return "unknown"
}

// Transition records one phase change for observability.
type Transition struct {
	From   Phase
	To     Phase
	Reason string
	At     time.Time
}

// Session is the mutable state of one mission. It is owned exclusively by
// the Machine; the driver only reads it.
type Session struct {
	ID        string
	Phase     Phase
	Target    plan.Waypoint
	Waypoints []plan.Waypoint
	InMission bool
}

// Machine reacts to telemetry samples and decides phase transitions and
// the commands to issue on each. It holds no locks and never blocks;
// callers must serialize event delivery.
type Machine struct {
	plan plan.MissionPlan
	box  []plan.Waypoint
	log  *slog.Logger
	now  func() time.Time
}

// NewMachine validates the plan and returns a machine for it.
func NewMachine(p plan.MissionPlan, log *slog.Logger) (*Machine, error) {
	box, err := plan.GenerateBox(p)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	return &Machine{plan: p, box: box, log: log, now: time.Now}, nil
}

// Start creates a new mission session in the Manual phase.
func (m *Machine) Start() *Session {
	return &Session{
		ID:        uuid.New().String(),
		Phase:     Manual,
		InMission: true,
	}
}

// Complete reports whether the mission has finished.
func (m *Machine) Complete(s *Session) bool {
	return !s.InMission
}

// OnPosition handles a local-position update. During takeoff it watches
// for the climb to finish; during waypoint flight it advances the
// itinerary. Samples in any other phase are ignored.
func (m *Machine) OnPosition(s *Session, sample telemetry.Sample) ([]command.Command, *Transition) {
	switch s.Phase {
	case Takeoff:
		if sample.Position.Altitude() > takeoffAltitudeRatio*s.Target.AltM {
			s.Waypoints = append([]plan.Waypoint(nil), m.box...)
			return m.waypointTransition(s, "reached takeoff altitude")
		}
	case Waypoint:
		dist := sample.Position.PlanarDistance(telemetry.Vector3{North: s.Target.North, East: s.Target.East})
		if dist >= waypointRadiusM {
			return nil, nil
		}
		if len(s.Waypoints) > 0 {
			return m.waypointTransition(s, "reached waypoint")
		}
		// Last corner reached: wait for horizontal speed to settle.
		if sample.Velocity.PlanarSpeed() < settleSpeedMPS {
			return m.landingTransition(s)
		}
	case Manual, Arming, Landing, Disarming:
	}
	return nil, nil
}

// OnVelocity handles a local-velocity update. It is only meaningful while
// landing, where it watches for the vehicle to reach the ground.
func (m *Machine) OnVelocity(s *Session, sample telemetry.Sample) ([]command.Command, *Transition) {
	switch s.Phase {
	case Landing:
		nearHome := sample.GlobalAltitude-sample.HomeAltitude < homeAltThresholdM
		nearGround := math.Abs(sample.Position.Down) < groundAltThresholdM
		if nearHome && nearGround {
			return m.disarmingTransition(s)
		}
	case Manual, Arming, Takeoff, Waypoint, Disarming:
	}
	return nil, nil
}

// OnState handles an armed/guided state update. State updates drive the
// transitions that do not depend on vehicle motion.
func (m *Machine) OnState(s *Session, st telemetry.StateSample) ([]command.Command, *Transition) {
	if !s.InMission {
		return nil, nil
	}
	switch s.Phase {
	case Manual:
		return m.armingTransition(s)
	case Arming:
		return m.takeoffTransition(s)
	case Disarming:
		return m.manualTransition(s)
	case Takeoff, Waypoint, Landing:
	}
	return nil, nil
}

func (m *Machine) armingTransition(s *Session) ([]command.Command, *Transition) {
	t := m.transition(s, Arming, "state update")
	return []command.Command{
		{Kind: command.TakeControl},
		{Kind: command.Arm},
		{Kind: command.SetHome},
	}, t
}

func (m *Machine) takeoffTransition(s *Session) ([]command.Command, *Transition) {
	s.Target = plan.Waypoint{AltM: m.plan.AltitudeM}
	t := m.transition(s, Takeoff, "armed")
	return []command.Command{{Kind: command.Takeoff, AltitudeM: m.plan.AltitudeM}}, t
}

func (m *Machine) waypointTransition(s *Session, reason string) ([]command.Command, *Transition) {
	s.Target = s.Waypoints[0]
	s.Waypoints = s.Waypoints[1:]
	t := m.transition(s, Waypoint, reason)
	return []command.Command{{Kind: command.FlyTo, Target: s.Target}}, t
}

func (m *Machine) landingTransition(s *Session) ([]command.Command, *Transition) {
	t := m.transition(s, Landing, "itinerary complete")
	return []command.Command{{Kind: command.Land}}, t
}

func (m *Machine) disarmingTransition(s *Session) ([]command.Command, *Transition) {
	t := m.transition(s, Disarming, "on ground")
	return []command.Command{{Kind: command.Disarm}}, t
}

func (m *Machine) manualTransition(s *Session) ([]command.Command, *Transition) {
	s.InMission = false
	t := m.transition(s, Manual, "mission complete")
	return []command.Command{{Kind: command.ReleaseControl}}, t
}

func (m *Machine) transition(s *Session, to Phase, reason string) *Transition {
	t := &Transition{From: s.Phase, To: to, Reason: reason, At: m.now()}
	s.Phase = to
	m.log.Info("phase transition",
		"session_id", s.ID,
		"from", t.From.String(),
		"to", t.To.String(),
		"reason", reason,
	)
	return t
}
