package window

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// VideoMode is a display mode reported by a monitor.
type VideoMode struct {
	Size        Size
	BitDepth    int
	RefreshRate int
	// Index is the platform's index for this mode on its monitor.
	Index int
}

// Matches reports whether the mode is exactly the one requested.
func (c VideoModeConfig) Matches(mode VideoMode) bool {
	return c.Size == mode.Size &&
		c.BitDepth == mode.BitDepth &&
		c.RefreshRate == mode.RefreshRate
}

// Monitor is a display the window can go fullscreen on.
type Monitor struct {
	Index int
	Name  string
	Modes []VideoMode
}

var errNoMonitor = errors.New("could not find any monitor for fullscreen")

// FindMonitor returns the monitor with the given name.
func FindMonitor(monitors []Monitor, name string) (Monitor, bool) {
	for _, m := range monitors {
		if m.Name == name {
			return m, true
		}
	}
	return Monitor{}, false
}

// PrimaryMonitor is the first reported monitor.
func PrimaryMonitor(monitors []Monitor) (Monitor, error) {
	if len(monitors) == 0 {
		return Monitor{}, errNoMonitor
	}
	return monitors[0], nil
}

// FindVideoMode returns the configured mode if the monitor offers it,
// otherwise the monitor's first mode.
func FindVideoMode(monitor Monitor, config *VideoModeConfig) (VideoMode, error) {
	if config != nil {
		for _, mode := range monitor.Modes {
			if config.Matches(mode) {
				return mode, nil
			}
		}
	}
	if len(monitor.Modes) == 0 {
		return VideoMode{}, errors.Newf("monitor %q reports no video modes", monitor.Name)
	}
	return monitor.Modes[0], nil
}

// Fullscreen is the resolved fullscreen placement. Mode is only set for
// exclusive fullscreen.
type Fullscreen struct {
	Monitor Monitor
	Mode    *VideoMode
}

// ResolveFullscreen picks the monitor and video mode for a fullscreen
// config. It returns nil for windowed mode.
func ResolveFullscreen(cfg Config, monitors []Monitor, log logrus.FieldLogger) (*Fullscreen, error) {
	if cfg.Mode == Windowed {
		return nil, nil
	}

	monitor, found := Monitor{}, false
	if cfg.Monitor != "" {
		monitor, found = FindMonitor(monitors, cfg.Monitor)
		if !found {
			log.WithField("monitor", cfg.Monitor).Warn("Could not find requested monitor")
		}
	}
	if !found {
		primary, err := PrimaryMonitor(monitors)
		if err != nil {
			return nil, err
		}
		monitor = primary
	}

	if cfg.Mode == BorderlessFullscreen {
		return &Fullscreen{Monitor: monitor}, nil
	}

	var requested *VideoModeConfig
	if mc, ok := cfg.Monitors[monitor.Name]; ok {
		requested = &mc.VideoMode
	}
	mode, err := FindVideoMode(monitor, requested)
	if err != nil {
		return nil, err
	}
	return &Fullscreen{Monitor: monitor, Mode: &mode}, nil
}
