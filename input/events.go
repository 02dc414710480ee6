package input

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
)

// Category sorts events for the dump tools.
type Category int

const (
	// Spammy events are dropped.
	Spammy Category = iota
	Window
	Gamepad
	Quit
)

// Classify sorts an SDL event.
func Classify(event sdl.Event) Category {
	switch event.(type) {
	case *sdl.QuitEvent:
		return Quit
	case *sdl.ControllerDeviceEvent, *sdl.ControllerAxisEvent, *sdl.ControllerButtonEvent:
		return Gamepad
	case *sdl.MouseMotionEvent, *sdl.JoyAxisEvent, *sdl.JoyBallEvent, *sdl.JoyHatEvent,
		*sdl.JoyButtonEvent, *sdl.JoyDeviceAddedEvent, *sdl.JoyDeviceRemovedEvent:
		return Spammy
	}
	return Window
}

func windowEventName(id uint8) string {
	switch id {
	case sdl.WINDOWEVENT_SHOWN:
		return "shown"
	case sdl.WINDOWEVENT_HIDDEN:
		return "hidden"
	case sdl.WINDOWEVENT_EXPOSED:
		return "exposed"
	case sdl.WINDOWEVENT_MOVED:
		return "moved"
	case sdl.WINDOWEVENT_RESIZED:
		return "resized"
	case sdl.WINDOWEVENT_SIZE_CHANGED:
		return "size changed"
	case sdl.WINDOWEVENT_MINIMIZED:
		return "minimized"
	case sdl.WINDOWEVENT_MAXIMIZED:
		return "maximized"
	case sdl.WINDOWEVENT_RESTORED:
		return "restored"
	case sdl.WINDOWEVENT_ENTER:
		return "mouse entered"
	case sdl.WINDOWEVENT_LEAVE:
		return "mouse left"
	case sdl.WINDOWEVENT_FOCUS_GAINED:
		return "focus gained"
	case sdl.WINDOWEVENT_FOCUS_LOST:
		return "focus lost"
	case sdl.WINDOWEVENT_CLOSE:
		return "close"
	}
	return fmt.Sprintf("event %d", id)
}

// Describe renders an event as one line.
func Describe(event sdl.Event) string {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return "Quit requested"
	case *sdl.WindowEvent:
		return fmt.Sprintf("Window %s (%d, %d)", windowEventName(e.Event), e.Data1, e.Data2)
	case *sdl.KeyboardEvent:
		state := "released"
		if e.State == sdl.PRESSED {
			state = "pressed"
		}
		return fmt.Sprintf("Key %s %s", sdl.GetKeyName(e.Keysym.Sym), state)
	case *sdl.MouseButtonEvent:
		return fmt.Sprintf("Mouse button %d at (%d, %d), state %d", e.Button, e.X, e.Y, e.State)
	case *sdl.MouseWheelEvent:
		return fmt.Sprintf("Mouse wheel (%d, %d)", e.X, e.Y)
	case *sdl.ControllerDeviceEvent:
		switch e.Type {
		case sdl.CONTROLLERDEVICEADDED:
			return fmt.Sprintf("Gamepad %d connected", e.Which)
		case sdl.CONTROLLERDEVICEREMOVED:
			return fmt.Sprintf("Gamepad %d disconnected", e.Which)
		}
		return fmt.Sprintf("Gamepad %d remapped", e.Which)
	case *sdl.ControllerAxisEvent:
		return fmt.Sprintf("Gamepad %d axis %d = %d", e.Which, e.Axis, e.Value)
	case *sdl.ControllerButtonEvent:
		state := "released"
		if e.State == sdl.PRESSED {
			state = "pressed"
		}
		return fmt.Sprintf("Gamepad %d button %d %s", e.Which, e.Button, state)
	}
	return fmt.Sprintf("%T %+v", event, event)
}
