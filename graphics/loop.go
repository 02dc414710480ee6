// Package graphics drives the frame loop from window events.
package graphics

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// EventKind is the part of a window event the frame loop reacts to.
type EventKind int

const (
	// EventIdle means the event queue is drained and a frame may be drawn.
	EventIdle EventKind = iota
	EventCloseRequested
	EventResized
	EventMinimized
	EventRestored
	// EventOther is any event the loop ignores.
	EventOther
)

func (k EventKind) String() string {
	switch k {
	case EventIdle:
		return "idle"
	case EventCloseRequested:
		return "close requested"
	case EventResized:
		return "resized"
	case EventMinimized:
		return "minimized"
	case EventRestored:
		return "restored"
	}
	return "other"
}

type Event struct {
	Kind          EventKind
	Width, Height int32
}

// Drawer draws frames into the window.
type Drawer interface {
	DrawFrame() error
	// Invalidate is called when the window size changed.
	Invalidate()
}

// EventSource yields window events, EventIdle when none are pending.
type EventSource interface {
	Next() Event
}

type Hider interface {
	Hide()
}

// LoopState is owned by the frame loop and replaced on every step.
type LoopState struct {
	Running   bool
	Rendering bool
	Frames    uint64
}

func InitialState() LoopState {
	return LoopState{Running: true, Rendering: true}
}

// Step applies one event to the loop state, drawing exactly one frame on
// EventIdle while rendering.
func Step(state LoopState, event Event, drawer Drawer) (LoopState, error) {
	if !state.Running {
		return state, nil
	}

	switch event.Kind {
	case EventCloseRequested:
		state.Running = false

	case EventMinimized:
		state.Rendering = false

	case EventRestored:
		state.Rendering = true

	case EventResized:
		if event.Width > 0 && event.Height > 0 {
			state.Rendering = true
			drawer.Invalidate()
		} else {
			state.Rendering = false
		}

	case EventIdle:
		if state.Rendering {
			if err := drawer.DrawFrame(); err != nil {
				return state, errors.Wrap(err, "failed to draw frame")
			}
			state.Frames++
		}
	}

	return state, nil
}

// Run steps through events until the window is asked to close, then hides
// the window.
func Run(source EventSource, drawer Drawer, hider Hider, log logrus.FieldLogger) error {
	state := InitialState()
	for state.Running {
		event := source.Next()
		if event.Kind != EventIdle && event.Kind != EventOther {
			log.WithField("event", event.Kind.String()).Debug("Window event")
		}

		var err error
		state, err = Step(state, event, drawer)
		if err != nil {
			return err
		}
	}

	hider.Hide()
	log.WithField("frames", state.Frames).Info("Window closed, stopping the frame loop")
	return nil
}
