// Package motion defines timed motion primitives and the pure math that turns
// them into pose changes.
package motion

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidCommand is wrapped by every playlist validation failure.
var ErrInvalidCommand = errors.New("invalid motion command")

// MaxDurationMs is the longest duration that still fits in a time.Duration.
const MaxDurationMs = math.MaxInt64 / int64(time.Millisecond)

// CommandType identifies a motion primitive.
type CommandType string

// Motion primitives understood by the interpolator.
const (
	Forward     CommandType = "forward"
	Backward    CommandType = "backward"
	Left        CommandType = "left"
	Right       CommandType = "right"
	RotateLeft  CommandType = "rotate-left"
	RotateRight CommandType = "rotate-right"
	Stop        CommandType = "stop"
)

// AllTypes returns every command type in display order.
func AllTypes() []CommandType {
	return []CommandType{
		Forward,
		Backward,
		Left,
		Right,
		RotateLeft,
		RotateRight,
		Stop,
	}
}

// Valid reports whether t is a known command type.
func (t CommandType) Valid() bool {
	for _, known := range AllTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Command is one timed motion primitive.
type Command struct {
	Type       CommandType `json:"type"`
	DurationMs int64       `json:"duration"`
	Power      *float64    `json:"power,omitempty"` // display only
}

// Duration returns the command duration as a time.Duration.
func (c Command) Duration() time.Duration {
	return time.Duration(c.DurationMs) * time.Millisecond
}

// Validate checks the command type and duration.
func (c Command) Validate() error {
	if !c.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidCommand, c.Type)
	}
	if c.DurationMs < 0 {
		return fmt.Errorf("%w: negative duration %dms", ErrInvalidCommand, c.DurationMs)
	}
	if c.DurationMs > MaxDurationMs {
		return fmt.Errorf("%w: duration %dms exceeds %dms", ErrInvalidCommand, c.DurationMs, MaxDurationMs)
	}
	return nil
}

func (c Command) String() string {
	if c.Power != nil {
		return fmt.Sprintf("%s %dms @%.2f", c.Type, c.DurationMs, *c.Power)
	}
	return fmt.Sprintf("%s %dms", c.Type, c.DurationMs)
}

// Playlist is an ordered list of commands. Treat it as immutable once
// handed to an engine.
type Playlist []Command

// NewPlaylist copies cmds into a validated playlist.
func NewPlaylist(cmds ...Command) (Playlist, error) {
	p := make(Playlist, len(cmds))
	copy(p, cmds)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks every command, reporting the first failure with its index.
func (p Playlist) Validate() error {
	for i, c := range p {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("command %d: %w", i, err)
		}
	}
	return nil
}

// TotalDuration sums command durations, excluding settle delays.
func (p Playlist) TotalDuration() time.Duration {
	var total time.Duration
	for _, c := range p {
		total += c.Duration()
	}
	return total
}

// ParsePlaylist decodes a JSON array of commands and validates it.
func ParsePlaylist(data []byte) (Playlist, error) {
	var cmds []Command
	if err := json.Unmarshal(data, &cmds); err != nil {
		return nil, fmt.Errorf("parse playlist JSON: %w", err)
	}
	return NewPlaylist(cmds...)
}

// PowerOf is a helper for building commands with a display power.
func PowerOf(v float64) *float64 {
	return &v
}
