package playback

import (
	"sort"
	"time"
)

// DefaultFrameInterval approximates one display frame at 60 Hz.
const DefaultFrameInterval = time.Second / 60

// Scheduler is the host event loop the engine runs on. Callbacks must be
// invoked one at a time on the same goroutine that calls the engine.
// Schedulers never need to cancel anything: the engine ignores callbacks
// from superseded runs.
type Scheduler interface {
	Now() time.Time
	AfterFrame(fn func())
	AfterDelay(d time.Duration, fn func())
}

// ManualScheduler is a deterministic Scheduler driven by Advance and Step.
// Time only moves when the caller says so.
type ManualScheduler struct {
	now   time.Time
	frame time.Duration
	seq   uint64
	queue []manualTimer
}

type manualTimer struct {
	at  time.Time
	seq uint64
	fn  func()
}

// NewManualScheduler creates a scheduler whose frames are frame apart.
func NewManualScheduler(frame time.Duration) *ManualScheduler {
	if frame <= 0 {
		frame = DefaultFrameInterval
	}
	return &ManualScheduler{
		now:   time.Unix(0, 0),
		frame: frame,
	}
}

func (s *ManualScheduler) Now() time.Time {
	return s.now
}

func (s *ManualScheduler) AfterFrame(fn func()) {
	s.add(s.frame, fn)
}

func (s *ManualScheduler) AfterDelay(d time.Duration, fn func()) {
	s.add(d, fn)
}

func (s *ManualScheduler) add(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	s.seq++
	s.queue = append(s.queue, manualTimer{at: s.now.Add(d), seq: s.seq, fn: fn})
}

// Pending returns the number of callbacks waiting to fire, stale ones included.
func (s *ManualScheduler) Pending() int {
	return len(s.queue)
}

// Elapsed returns how far the clock has moved since creation.
func (s *ManualScheduler) Elapsed() time.Duration {
	return s.now.Sub(time.Unix(0, 0))
}

// Step fires the earliest pending callback, moving the clock to its due
// time. It returns false when nothing is pending.
func (s *ManualScheduler) Step() bool {
	if len(s.queue) == 0 {
		return false
	}
	t := s.pop()
	if t.at.After(s.now) {
		s.now = t.at
	}
	t.fn()
	return true
}

// Advance moves the clock forward by d, firing every callback that comes due
// on the way (including ones scheduled by earlier callbacks). It returns the
// number of callbacks fired. A negative d is treated as zero.
func (s *ManualScheduler) Advance(d time.Duration) int {
	if d < 0 {
		d = 0
	}
	deadline := s.now.Add(d)
	fired := 0
	for len(s.queue) > 0 {
		s.sortQueue()
		if s.queue[0].at.After(deadline) {
			break
		}
		s.Step()
		fired++
	}
	s.now = deadline
	return fired
}

// RunUntilIdle fires callbacks until none remain or limit is reached.
func (s *ManualScheduler) RunUntilIdle(limit int) int {
	fired := 0
	for fired < limit && s.Step() {
		fired++
	}
	return fired
}

func (s *ManualScheduler) pop() manualTimer {
	s.sortQueue()
	t := s.queue[0]
	s.queue = s.queue[1:]
	return t
}

func (s *ManualScheduler) sortQueue() {
	sort.Slice(s.queue, func(i, j int) bool {
		if s.queue[i].at.Equal(s.queue[j].at) {
			return s.queue[i].seq < s.queue[j].seq
		}
		return s.queue[i].at.Before(s.queue[j].at)
	})
}
