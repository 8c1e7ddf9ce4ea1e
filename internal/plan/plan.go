// Package plan generates the waypoint itinerary for a mission.
package plan

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidPlan is returned when a mission plan contains non-finite
// coordinates or a non-positive cruise altitude.
var ErrInvalidPlan = errors.New("invalid mission plan")

// MissionPlan describes a rectangular flight path relative to the launch
// point: corner coordinates in metres and a cruise altitude.
type MissionPlan struct {
	XStart    float64 `yaml:"x_start"`
	XEnd      float64 `yaml:"x_end"`
	YStart    float64 `yaml:"y_start"`
	YEnd      float64 `yaml:"y_end"`
	AltitudeM float64 `yaml:"altitude_m"`
}

// Waypoint is one target of the itinerary. AltM is altitude-positive,
// matching the convention of position commands rather than NED.
type Waypoint struct {
	North float64 `json:"north"`
	East  float64 `json:"east"`
	AltM  float64 `json:"alt_m"`
}

// Validate checks the plan fields against ErrInvalidPlan conditions.
func (p MissionPlan) Validate() error {
	for _, v := range []float64{p.XStart, p.XEnd, p.YStart, p.YEnd, p.AltitudeM} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite coordinate", ErrInvalidPlan)
		}
	}
	if p.AltitudeM <= 0 {
		return fmt.Errorf("%w: altitude %v not positive", ErrInvalidPlan, p.AltitudeM)
	}
	return nil
}

// GenerateBox returns the four corners of the plan rectangle at cruise
// altitude, in fixed visiting order: (x_end,y_start), (x_end,y_end),
// (x_start,y_end), closing back at (x_start,y_start).
func GenerateBox(p MissionPlan) ([]Waypoint, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return []Waypoint{
		{North: p.XEnd, East: p.YStart, AltM: p.AltitudeM},
		{North: p.XEnd, East: p.YEnd, AltM: p.AltitudeM},
		{North: p.XStart, East: p.YEnd, AltM: p.AltitudeM},
		{North: p.XStart, East: p.YStart, AltM: p.AltitudeM},
	}, nil
}
