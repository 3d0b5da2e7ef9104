// Package playback runs a motion playlist against a simulated pose, one
// frame at a time, under run/stop/reset control.
package playback

import (
	"errors"
	"fmt"
	"time"

	"github.com/gwillem/ftcpreview/pkg/motion"
)

// DefaultSettleDelay is the pause between consecutive commands.
const DefaultSettleDelay = 100 * time.Millisecond

// ErrClosed is returned by Run after Close.
var ErrClosed = errors.New("engine closed")

// Phase is the transport state of an engine.
type Phase int

const (
	Idle Phase = iota
	Running
	Stopped
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// State is a snapshot of playback progress.
type State struct {
	Phase   Phase           `json:"phase"`
	Index   int             `json:"index"`
	Current *motion.Command `json:"currentCommand"`
}

// Config holds configuration for an engine.
type Config struct {
	Playlist    motion.Playlist
	Scheduler   Scheduler
	Units       motion.Units  // zero value uses motion.DefaultUnits
	SettleDelay time.Duration // zero uses DefaultSettleDelay, negative means none
	Logf        func(format string, args ...any)
}

// Engine plays a playlist on a simulated pose. It is not safe for concurrent
// use: every method and every scheduler callback must run on the
// scheduler's loop.
type Engine struct {
	playlist motion.Playlist
	sched    Scheduler
	units    motion.Units
	settle   time.Duration
	logf     func(format string, args ...any)

	pose  poseStore
	phase Phase
	index int

	// gen is bumped whenever scheduled work must be abandoned. Callbacks
	// capture it at registration and bail out if it has moved on.
	gen       uint64
	startTime time.Time
	startPose motion.Pose
	closed    bool

	listeners []subscriber
	nextSubID int
}

// NewEngine creates an idle engine at the origin pose.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Scheduler == nil {
		return nil, fmt.Errorf("create engine: scheduler is required")
	}
	if cfg.Units == (motion.Units{}) {
		cfg.Units = motion.DefaultUnits()
	}
	switch {
	case cfg.SettleDelay == 0:
		cfg.SettleDelay = DefaultSettleDelay
	case cfg.SettleDelay < 0:
		cfg.SettleDelay = 0
	}

	playlist := make(motion.Playlist, len(cfg.Playlist))
	copy(playlist, cfg.Playlist)

	return &Engine{
		playlist: playlist,
		sched:    cfg.Scheduler,
		units:    cfg.Units,
		settle:   cfg.SettleDelay,
		logf:     cfg.Logf,
		pose:     poseStore{pose: motion.Origin},
	}, nil
}

func (e *Engine) log(format string, args ...any) {
	if e.logf != nil {
		e.logf(format, args...)
	}
}

// Playlist returns a copy of the engine's playlist.
func (e *Engine) Playlist() motion.Playlist {
	out := make(motion.Playlist, len(e.playlist))
	copy(out, e.playlist)
	return out
}

// Units returns the kinematic constants in use.
func (e *Engine) Units() motion.Units {
	return e.units
}

// Pose returns the current pose.
func (e *Engine) Pose() motion.Pose {
	return e.pose.get()
}

// State returns the current playback state.
func (e *Engine) State() State {
	s := State{Phase: e.phase, Index: e.index}
	if e.phase == Running && e.index < len(e.playlist) {
		cmd := e.playlist[e.index]
		s.Current = &cmd
	}
	return s
}

// Run starts playback from the first command at the origin pose. It is a
// no-op while already running. An invalid playlist is rejected before any
// state changes.
func (e *Engine) Run() error {
	if e.closed {
		return ErrClosed
	}
	if e.phase == Running {
		e.log("Run ignored: already running command %d", e.index+1)
		return nil
	}
	if err := e.playlist.Validate(); err != nil {
		return fmt.Errorf("run playlist: %w", err)
	}

	e.gen++
	e.index = 0

	if len(e.playlist) == 0 {
		e.phase = Stopped
		e.log("Empty playlist, nothing to run")
		e.emitState()
		return nil
	}

	e.setPose(motion.Origin)
	e.phase = Running
	e.log("Playback started (%d commands)", len(e.playlist))
	e.emitState()
	e.enter()
	return nil
}

// Stop cancels pending work and freezes the pose where it is.
func (e *Engine) Stop() {
	if e.closed {
		return
	}
	e.gen++
	if e.phase == Stopped {
		return
	}
	if e.phase == Running {
		e.log("Playback stopped at command %d", e.index+1)
	}
	e.phase = Stopped
	e.emitState()
}

// Reset cancels pending work and returns to the initial idle state.
func (e *Engine) Reset() {
	if e.closed {
		return
	}
	e.gen++
	e.setPose(motion.Origin)
	e.index = 0
	e.phase = Idle
	e.log("Playback reset")
	e.emitState()
}

// Close cancels all pending callbacks and drops subscribers. The engine
// cannot be run again.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.gen++
	e.closed = true
	if e.phase == Running {
		e.phase = Stopped
	}
	e.listeners = nil
}

// enter starts the command at e.index from the current pose.
func (e *Engine) enter() {
	cmd := e.playlist[e.index]
	e.startTime = e.sched.Now()
	e.startPose = e.pose.get()
	e.log("Command %d/%d: %s", e.index+1, len(e.playlist), cmd)

	gen := e.gen
	e.sched.AfterFrame(func() { e.tick(gen) })
}

// tick is the only place interpolated poses are written.
func (e *Engine) tick(gen uint64) {
	if gen != e.gen || e.phase != Running {
		return
	}

	cmd := e.playlist[e.index]
	p := motion.Progress(e.sched.Now().Sub(e.startTime), cmd.Duration())
	e.setPose(e.startPose.Add(motion.Delta(cmd.Type, p, e.units)))

	if p < 1 {
		e.sched.AfterFrame(func() { e.tick(gen) })
		return
	}
	e.sched.AfterDelay(e.settle, func() { e.advance(gen) })
}

func (e *Engine) advance(gen uint64) {
	if gen != e.gen || e.phase != Running {
		return
	}

	if e.index+1 >= len(e.playlist) {
		e.gen++
		e.index = len(e.playlist)
		e.phase = Stopped
		e.log("Playback finished at %s", e.pose.get())
		e.emitState()
		return
	}

	e.index++
	e.emitState()
	e.enter()
}

func (e *Engine) setPose(p motion.Pose) {
	if !e.pose.set(p) {
		return
	}
	e.emit(Event{Kind: PoseChanged, Pose: p, State: e.State()})
}

func (e *Engine) emitState() {
	e.emit(Event{Kind: StateChanged, Pose: e.pose.get(), State: e.State()})
}

// poseStore holds the engine's pose. Only the engine writes to it.
type poseStore struct {
	pose motion.Pose
}

func (s *poseStore) get() motion.Pose {
	return s.pose
}

// set stores p and reports whether it changed.
func (s *poseStore) set(p motion.Pose) bool {
	if s.pose == p {
		return false
	}
	s.pose = p
	return true
}
