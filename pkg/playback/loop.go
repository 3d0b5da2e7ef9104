package playback

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrLoopClosed is returned when work is posted to a loop that has exited.
var ErrLoopClosed = errors.New("loop closed")

// Loop is a Scheduler backed by one goroutine that runs posted tasks in
// order. Timers fire on their own goroutines but only post back into the
// loop, so engine code never runs concurrently with itself.
type Loop struct {
	frame time.Duration
	tasks chan func()
	done  chan struct{}
	once  sync.Once
}

// NewLoop creates a loop with the given frame interval.
func NewLoop(frame time.Duration) *Loop {
	if frame <= 0 {
		frame = DefaultFrameInterval
	}
	return &Loop{
		frame: frame,
		tasks: make(chan func(), 64),
		done:  make(chan struct{}),
	}
}

// Run drains tasks until ctx is cancelled or Close is called.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			l.Close()
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Close stops the loop. Pending timers become no-ops.
func (l *Loop) Close() {
	l.once.Do(func() { close(l.done) })
}

// Call runs fn on the loop goroutine and waits for it to finish. It must not
// be called from the loop goroutine itself.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if !l.post(func() {
		defer close(finished)
		fn()
	}) {
		return ErrLoopClosed
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrLoopClosed
	}
}

func (l *Loop) Now() time.Time {
	return time.Now()
}

func (l *Loop) AfterFrame(fn func()) {
	l.AfterDelay(l.frame, fn)
}

func (l *Loop) AfterDelay(d time.Duration, fn func()) {
	time.AfterFunc(d, func() { l.post(fn) })
}

func (l *Loop) post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}
