package playback

import "github.com/gwillem/ftcpreview/pkg/motion"

// EventKind identifies what changed.
type EventKind int

const (
	PoseChanged EventKind = iota
	StateChanged
)

func (k EventKind) String() string {
	switch k {
	case PoseChanged:
		return "pose"
	case StateChanged:
		return "state"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers on the engine's loop. Pose and State are
// both filled in regardless of Kind.
type Event struct {
	Kind  EventKind   `json:"-"`
	Pose  motion.Pose `json:"pose"`
	State State       `json:"state"`
}

// Listener receives engine events. It must not block.
type Listener func(Event)

type subscriber struct {
	id int
	fn Listener
}

// Subscribe registers l and returns a function that removes it.
func (e *Engine) Subscribe(l Listener) (unsubscribe func()) {
	if e.closed || l == nil {
		return func() {}
	}
	e.nextSubID++
	id := e.nextSubID
	e.listeners = append(e.listeners, subscriber{id: id, fn: l})

	return func() {
		for i, s := range e.listeners {
			if s.id == id {
				e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

// Subscribers returns the number of registered listeners.
func (e *Engine) Subscribers() int {
	return len(e.listeners)
}

func (e *Engine) emit(ev Event) {
	// Listeners may unsubscribe while we iterate.
	subs := append([]subscriber(nil), e.listeners...)
	for _, s := range subs {
		s.fn(ev)
	}
}
