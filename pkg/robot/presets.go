package robot

import (
	"sort"

	"github.com/gwillem/ftcpreview/pkg/motion"
)

func driveMotors() Hardware {
	return Hardware{
		{Name: LeftFront, Type: Motor, Position: Position{X: 60, Y: 60}},
		{Name: RightFront, Type: Motor, Position: Position{X: 140, Y: 60}},
		{Name: LeftRear, Type: Motor, Position: Position{X: 60, Y: 140}},
		{Name: RightRear, Type: Motor, Position: Position{X: 140, Y: 140}},
	}
}

func imu() Item {
	return Item{Name: IMU, Type: Sensor, Position: Position{X: 100, Y: 100}}
}

// presets mirror the pages of the documentation site.
var presets = map[string]func() Config{
	"autonomous": func() Config {
		return Config{
			Caption:  "Autonomous routine: Drive forward, turn right, drive forward again",
			Hardware: driveMotors(),
			Sequence: motion.Playlist{
				{Type: motion.Forward, DurationMs: 2000, Power: motion.PowerOf(0.5)},
				{Type: motion.RotateRight, DurationMs: 1000, Power: motion.PowerOf(0.3)},
				{Type: motion.Forward, DurationMs: 1500, Power: motion.PowerOf(0.5)},
				{Type: motion.Stop, DurationMs: 500},
			},
		}
	},
	"movement-systems": func() Config {
		return Config{
			Caption:  "Mecanum hareket: İleri, sağa strafe, geri, sola strafe",
			Hardware: driveMotors(),
			Sequence: motion.Playlist{
				{Type: motion.Forward, DurationMs: 1000, Power: motion.PowerOf(0.5)},
				{Type: motion.Right, DurationMs: 1000, Power: motion.PowerOf(0.5)},
				{Type: motion.Backward, DurationMs: 1000, Power: motion.PowerOf(0.5)},
				{Type: motion.Left, DurationMs: 1000, Power: motion.PowerOf(0.5)},
				{Type: motion.Stop, DurationMs: 500},
			},
		}
	},
	"robot-init": func() Config {
		return Config{Hardware: driveMotors()}
	},
	"sensors": func() Config {
		return Config{Hardware: append(driveMotors(), imu())}
	},
	"imu": func() Config {
		return Config{Hardware: Hardware{imu()}}
	},
}

// PresetNames returns the built-in preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset returns a fresh copy of the named preset.
func Preset(name string) (Config, bool) {
	build, ok := presets[name]
	if !ok {
		return Config{}, false
	}
	return build(), true
}
