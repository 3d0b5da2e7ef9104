package server

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gwillem/ftcpreview/pkg/playback"
)

const eventBuffer = 32

// handleEvents streams pose and state changes as Server-Sent Events. The
// first event is always the current state.
func (s *Server) handleEvents(c *gin.Context) {
	inst, ok := s.lookup(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	events := make(chan playback.Event, eventBuffer)

	// unsubscribe is only touched on the loop. The cleanup is queued behind
	// the subscribe task, so it also runs when Call gave up waiting early.
	var unsubscribe func()
	defer func() {
		_ = s.loop.Call(context.Background(), func() {
			if unsubscribe != nil {
				unsubscribe()
			}
		})
	}()

	err := s.loop.Call(ctx, func() {
		if ctx.Err() != nil {
			return
		}
		e := inst.Engine
		unsubscribe = e.Subscribe(func(ev playback.Event) { sendEvent(events, ev) })
		sendEvent(events, playback.Event{Kind: playback.StateChanged, Pose: e.Pose(), State: e.State()})
	})
	if err != nil {
		errorResponse(c, http.StatusServiceUnavailable, "subscribe: "+err.Error())
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		select {
		case ev := <-events:
			c.SSEvent(ev.Kind.String(), ev)
			return true
		case <-inst.Done():
			return false
		case <-ctx.Done():
			return false
		}
	})
}

// sendEvent never blocks the loop: when the client falls behind, the oldest
// queued event is dropped.
func sendEvent(ch chan playback.Event, ev playback.Event) {
	select {
	case ch <- ev:
	default:
		select {
		case <-ch:
		default:
		}
		ch <- ev
	}
}
