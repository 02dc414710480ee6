package window

// Mode is how the game window occupies the screen.
type Mode int

const (
	Windowed Mode = iota
	BorderlessFullscreen
	ExclusiveFullscreen
)

func (m Mode) String() string {
	switch m {
	case Windowed:
		return "windowed"
	case BorderlessFullscreen:
		return "borderless"
	case ExclusiveFullscreen:
		return "exclusive"
	}
	return "unknown"
}

// Size is a size in physical pixels.
type Size struct {
	Width  int
	Height int
}

// WindowedConfig applies when Mode is Windowed.
type WindowedConfig struct {
	Size        Size
	AlwaysOnTop bool
	Decorations bool
	Maximized   bool
	Resizable   bool
	// ScaleFactor is nil when the platform should decide.
	ScaleFactor *float64
}

// DefaultWindowedConfig is used for a missing `windowed` section.
func DefaultWindowedConfig() WindowedConfig {
	return WindowedConfig{
		Size:        Size{Width: 1280, Height: 720},
		AlwaysOnTop: false,
		Decorations: false,
		Maximized:   true,
		Resizable:   true,
	}
}

// VideoModeConfig is an exclusive fullscreen display mode request.
type VideoModeConfig struct {
	Size        Size
	BitDepth    int
	RefreshRate int
}

// MonitorConfig holds per-monitor overrides, keyed by monitor name.
type MonitorConfig struct {
	ScaleFactor *float64
	VideoMode   VideoModeConfig
}

// Config is the `graphics.window` configuration section.
type Config struct {
	Mode     Mode
	Windowed WindowedConfig
	// Monitor is empty for "auto".
	Monitor  string
	Monitors map[string]MonitorConfig
}

// DefaultConfig is used when the `window` section is missing.
func DefaultConfig() Config {
	return Config{
		Mode:     Windowed,
		Windowed: DefaultWindowedConfig(),
		Monitors: map[string]MonitorConfig{},
	}
}
