// Package input lists game controllers and describes input events for the
// dump tools.
package input

import (
	"github.com/google/uuid"
	"github.com/veandco/go-sdl2/sdl"
)

// Gamepad is a connected game controller.
type Gamepad struct {
	Index   int
	Name    string
	UUID    uuid.UUID
	Mapping string
	Power   string
}

func powerLevel(level sdl.JoystickPowerLevel) string {
	switch level {
	case sdl.JOYSTICK_POWER_EMPTY:
		return "empty"
	case sdl.JOYSTICK_POWER_LOW:
		return "low"
	case sdl.JOYSTICK_POWER_MEDIUM:
		return "medium"
	case sdl.JOYSTICK_POWER_FULL:
		return "full"
	case sdl.JOYSTICK_POWER_WIRED:
		return "wired"
	}
	return "unknown"
}

// Gamepads opens and describes every connected game controller. SDL's
// game controller subsystem must be initialized. The returned controllers
// stay open so their events are delivered.
func Gamepads() ([]Gamepad, []*sdl.GameController) {
	var gamepads []Gamepad
	var controllers []*sdl.GameController
	for i := 0; i < sdl.NumJoysticks(); i++ {
		if !sdl.IsGameController(i) {
			continue
		}
		controller := sdl.GameControllerOpen(i)
		if controller == nil {
			continue
		}
		controllers = append(controllers, controller)

		// A malformed GUID leaves the nil UUID.
		id, _ := uuid.Parse(sdl.JoystickGetGUIDString(sdl.JoystickGetDeviceGUID(i)))
		gamepads = append(gamepads, Gamepad{
			Index:   i,
			Name:    controller.Name(),
			UUID:    id,
			Mapping: controller.Mapping(),
			Power:   powerLevel(controller.Joystick().CurrentPowerLevel()),
		})
	}
	return gamepads, controllers
}
