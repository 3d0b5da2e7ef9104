// Package ftcpreview plays FTC robot movement sequences on a simulated
// pose, the way the programming guide's robot preview panels do.
//
// A sequence is a list of timed commands (forward, rotate-right, ...). The
// playback engine interpolates the robot's pose frame by frame, pauses
// briefly between commands, and can be stopped or reset at any time.
// Separately, the initialized hardware list decides which chassis mount
// points light up.
//
// # Installation
//
//	go install github.com/gwillem/ftcpreview/cmd/ftcpreview@latest
//
// # Usage
//
// Create a config from one of the guide's pages:
//
//	ftcpreview init
//
// Then play it in the terminal, print a deterministic trace, or serve it
// to the documentation site:
//
//	ftcpreview preview
//	ftcpreview trace --preset autonomous
//	ftcpreview serve --port 9099
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/ftcpreview: CLI with init, preview, trace, serve and scan commands
//   - pkg/motion: Commands, poses and the interpolator
//   - pkg/playback: Playback engine, schedulers and events
//   - pkg/robot: Hardware, mount highlights, presets, configuration and servo discovery
//   - pkg/server: HTTP API for preview panels
package ftcpreview
