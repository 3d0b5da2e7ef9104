// Package robot describes the previewed robot: its initialized hardware, the
// chassis mount points that light up for it, and preview configuration.
package robot

import "fmt"

// HardwareType is the kind of an initialized device.
type HardwareType string

const (
	Motor  HardwareType = "motor"
	Sensor HardwareType = "sensor"
	Servo  HardwareType = "servo"
)

// Valid reports whether t is a known hardware type.
func (t HardwareType) Valid() bool {
	return t == Motor || t == Sensor || t == Servo
}

// Position is a location on the 200x200 preview canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Item is one initialized hardware device.
type Item struct {
	Name     string       `json:"name"`
	Type     HardwareType `json:"type"`
	Position Position     `json:"position"`
}

// Hardware is the ordered list of initialized devices supplied by a page.
type Hardware []Item

// Has returns true if a device with this name and type is present.
func (h Hardware) Has(name string, t HardwareType) bool {
	for _, item := range h {
		if item.Name == name && item.Type == t {
			return true
		}
	}
	return false
}

// HasType returns true if any device of type t is present.
func (h Hardware) HasType(t HardwareType) bool {
	for _, item := range h {
		if item.Type == t {
			return true
		}
	}
	return false
}

// Validate checks that every item has a name and a known type.
func (h Hardware) Validate() error {
	for i, item := range h {
		if item.Name == "" {
			return fmt.Errorf("hardware %d: missing name", i)
		}
		if !item.Type.Valid() {
			return fmt.Errorf("hardware %d (%s): unknown type %q", i, item.Name, item.Type)
		}
	}
	return nil
}

// Mount names on the preview chassis.
const (
	LeftFront  = "leftFront"
	RightFront = "rightFront"
	LeftRear   = "leftRear"
	RightRear  = "rightRear"
	IMU        = "imu"
)

// Mount is a fixed spot on the chassis drawing.
type Mount struct {
	Name     string
	Type     HardwareType
	Position Position
	// AnyOfType lights the mount for any device of Type, regardless of name.
	AnyOfType bool
}

// Lit reports whether the mount is backed by a device in h.
func (m Mount) Lit(h Hardware) bool {
	if m.AnyOfType {
		return h.HasType(m.Type)
	}
	return h.Has(m.Name, m.Type)
}

// DefaultMounts returns the chassis mount points in drawing order.
func DefaultMounts() []Mount {
	return []Mount{
		{Name: LeftFront, Type: Motor, Position: Position{X: 60, Y: 60}},
		{Name: RightFront, Type: Motor, Position: Position{X: 130, Y: 60}},
		{Name: LeftRear, Type: Motor, Position: Position{X: 60, Y: 130}},
		{Name: RightRear, Type: Motor, Position: Position{X: 130, Y: 130}},
		{Name: IMU, Type: Sensor, Position: Position{X: 100, Y: 100}, AnyOfType: true},
	}
}

// Highlights maps each mount name to whether it is lit by h.
func Highlights(h Hardware, mounts []Mount) map[string]bool {
	lit := make(map[string]bool, len(mounts))
	for _, m := range mounts {
		lit[m.Name] = m.Lit(h)
	}
	return lit
}
