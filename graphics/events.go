package graphics

import (
	"github.com/veandco/go-sdl2/sdl"
)

// SDLEvents reads events from the SDL event queue. It must be used from
// the thread that initialized SDL.
type SDLEvents struct{}

func (SDLEvents) Next() Event {
	event := sdl.PollEvent()
	if event == nil {
		return Event{Kind: EventIdle}
	}
	return translate(event)
}

func translate(event sdl.Event) Event {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Kind: EventCloseRequested}
	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_CLOSE:
			return Event{Kind: EventCloseRequested}
		case sdl.WINDOWEVENT_MINIMIZED:
			return Event{Kind: EventMinimized}
		case sdl.WINDOWEVENT_RESTORED:
			return Event{Kind: EventRestored}
		case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
			return Event{Kind: EventResized, Width: e.Data1, Height: e.Data2}
		}
	}
	return Event{Kind: EventOther}
}
