package motion

import (
	"math"
	"time"
)

// Default kinematic constants, in preview canvas units.
const (
	DefaultUnitDistance = 40.0
	DefaultUnitTurnDeg  = 90.0
)

// Units holds the distance and turn covered by one full command.
type Units struct {
	Distance float64 `json:"distance"`
	TurnDeg  float64 `json:"turn_deg"`
}

// DefaultUnits returns the stock kinematic constants.
func DefaultUnits() Units {
	return Units{Distance: DefaultUnitDistance, TurnDeg: DefaultUnitTurnDeg}
}

// Progress maps elapsed time to a fraction in [0, 1]. A zero duration is
// complete immediately.
func Progress(elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	p := float64(elapsed) / float64(duration)
	return math.Min(p, 1)
}

// Delta returns the pose change for command type t at progress p. p is
// clamped to [0, 1]. The result is relative to the pose at the start of the
// command, never to the previous frame.
func Delta(t CommandType, p float64, u Units) Pose {
	p = math.Max(0, math.Min(p, 1))
	switch t {
	case Forward:
		return Pose{Y: -u.Distance * p}
	case Backward:
		return Pose{Y: u.Distance * p}
	case Left:
		return Pose{X: -u.Distance * p}
	case Right:
		return Pose{X: u.Distance * p}
	case RotateLeft:
		return Pose{Heading: -u.TurnDeg * p}
	case RotateRight:
		return Pose{Heading: u.TurnDeg * p}
	default:
		return Pose{}
	}
}

// Final returns the pose reached after running the whole playlist from start.
func (p Playlist) Final(start Pose, u Units) Pose {
	pose := start
	for _, c := range p {
		pose = pose.Add(Delta(c.Type, 1, u))
	}
	return pose
}

// Extent returns the largest absolute X or Y the playlist reaches from the
// origin, useful for sizing charts.
func (p Playlist) Extent(u Units) float64 {
	var ext float64
	pose := Origin
	for _, c := range p {
		pose = pose.Add(Delta(c.Type, 1, u))
		ext = math.Max(ext, math.Max(math.Abs(pose.X), math.Abs(pose.Y)))
	}
	return ext
}
