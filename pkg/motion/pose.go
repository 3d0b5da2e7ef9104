package motion

import "fmt"

// Pose is a simulated robot placement. Heading is in degrees, positive is
// clockwise; negative Y is "forward" on the preview canvas.
type Pose struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Heading float64 `json:"headingDeg"`
}

// Origin is the pose every engine starts from.
var Origin = Pose{}

// Add returns p offset by d.
func (p Pose) Add(d Pose) Pose {
	return Pose{
		X:       p.X + d.X,
		Y:       p.Y + d.Y,
		Heading: p.Heading + d.Heading,
	}
}

func (p Pose) String() string {
	return fmt.Sprintf("(%.2f, %.2f) %.1f°", p.X, p.Y, p.Heading)
}
