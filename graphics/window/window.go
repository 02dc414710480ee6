// Package window creates the game window from its configuration.
package window

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
)

const Title = "Halley Kart"

// Monitors lists the connected displays and their video modes.
func Monitors() ([]Monitor, error) {
	count, err := sdl.GetNumVideoDisplays()
	if err != nil {
		return nil, errors.Wrap(err, "counting displays")
	}

	monitors := make([]Monitor, 0, count)
	for i := 0; i < count; i++ {
		name, err := sdl.GetDisplayName(i)
		if err != nil {
			return nil, errors.Wrapf(err, "naming display %d", i)
		}
		modeCount, err := sdl.GetNumDisplayModes(i)
		if err != nil {
			return nil, errors.Wrapf(err, "counting modes of display %q", name)
		}

		monitor := Monitor{Index: i, Name: name}
		for m := 0; m < modeCount; m++ {
			mode, err := sdl.GetDisplayMode(i, m)
			if err != nil {
				return nil, errors.Wrapf(err, "reading mode %d of display %q", m, name)
			}
			monitor.Modes = append(monitor.Modes, VideoMode{
				Size:        Size{Width: int(mode.W), Height: int(mode.H)},
				BitDepth:    int(sdl.BitsPerPixel(mode.Format)),
				RefreshRate: int(mode.RefreshRate),
				Index:       m,
			})
		}
		monitors = append(monitors, monitor)
	}
	return monitors, nil
}

// windowedFlags maps the windowed config onto SDL window flags. The window
// starts hidden and is shown once the renderer is ready.
func windowedFlags(cfg WindowedConfig) uint32 {
	flags := uint32(sdl.WINDOW_VULKAN | sdl.WINDOW_HIDDEN)
	if cfg.Resizable {
		flags |= sdl.WINDOW_RESIZABLE
	}
	if !cfg.Decorations {
		flags |= sdl.WINDOW_BORDERLESS
	}
	if cfg.Maximized {
		flags |= sdl.WINDOW_MAXIMIZED
	}
	if cfg.AlwaysOnTop {
		flags |= sdl.WINDOW_ALWAYS_ON_TOP
	}
	return flags
}

// Build creates the SDL window. SDL video must already be initialized.
func Build(cfg Config, log logrus.FieldLogger) (*sdl.Window, error) {
	if cfg.Mode == Windowed {
		size := cfg.Windowed.Size
		window, err := sdl.CreateWindow(Title,
			sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
			int32(size.Width), int32(size.Height),
			windowedFlags(cfg.Windowed))
		if err != nil {
			return nil, errors.Wrap(err, "failed to create window")
		}
		return window, nil
	}

	monitors, err := Monitors()
	if err != nil {
		return nil, err
	}
	fullscreen, err := ResolveFullscreen(cfg, monitors, log)
	if err != nil {
		return nil, err
	}

	pos := int32(sdl.WINDOWPOS_UNDEFINED_MASK | fullscreen.Monitor.Index)
	flags := uint32(sdl.WINDOW_VULKAN | sdl.WINDOW_FULLSCREEN_DESKTOP)
	width, height := int32(0), int32(0)
	if fullscreen.Mode != nil {
		flags = sdl.WINDOW_VULKAN | sdl.WINDOW_FULLSCREEN
		width, height = int32(fullscreen.Mode.Size.Width), int32(fullscreen.Mode.Size.Height)
	}

	window, err := sdl.CreateWindow(Title, pos, pos, width, height, flags)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create window")
	}

	if fullscreen.Mode != nil {
		mode, err := sdl.GetDisplayMode(fullscreen.Monitor.Index, fullscreen.Mode.Index)
		if err != nil {
			window.Destroy()
			return nil, errors.Wrap(err, "reading fullscreen video mode")
		}
		if err := window.SetDisplayMode(&mode); err != nil {
			window.Destroy()
			return nil, errors.Wrap(err, "setting fullscreen video mode")
		}
	}

	log.WithFields(logrus.Fields{
		"mode":    cfg.Mode,
		"monitor": fullscreen.Monitor.Name,
	}).Info("Created fullscreen window")
	return window, nil
}
