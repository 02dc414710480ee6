package window

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/veandco/go-sdl2/sdl"
)

var testMonitors = []Monitor{
	{
		Index: 0,
		Name:  "DP-1",
		Modes: []VideoMode{
			{Size: Size{2560, 1440}, BitDepth: 24, RefreshRate: 144, Index: 0},
			{Size: Size{1920, 1080}, BitDepth: 24, RefreshRate: 60, Index: 1},
		},
	},
	{
		Index: 1,
		Name:  "HDMI-1",
		Modes: []VideoMode{
			{Size: Size{1920, 1080}, BitDepth: 24, RefreshRate: 60, Index: 0},
			{Size: Size{1280, 720}, BitDepth: 24, RefreshRate: 60, Index: 1},
		},
	},
}

func TestResolveFullscreen(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		wantMonitor string
		wantMode    *VideoMode
		wantWarning bool
	}{
		{
			name: "windowed",
			cfg:  DefaultConfig(),
		},
		{
			name:        "borderless on named monitor",
			cfg:         Config{Mode: BorderlessFullscreen, Monitor: "HDMI-1"},
			wantMonitor: "HDMI-1",
		},
		{
			name:        "borderless falls back to primary",
			cfg:         Config{Mode: BorderlessFullscreen, Monitor: "VGA-9"},
			wantMonitor: "DP-1",
			wantWarning: true,
		},
		{
			name:        "exclusive without monitor config takes first mode",
			cfg:         Config{Mode: ExclusiveFullscreen},
			wantMonitor: "DP-1",
			wantMode:    &testMonitors[0].Modes[0],
		},
		{
			name: "exclusive with matching video mode",
			cfg: Config{
				Mode:    ExclusiveFullscreen,
				Monitor: "HDMI-1",
				Monitors: map[string]MonitorConfig{
					"HDMI-1": {VideoMode: VideoModeConfig{Size: Size{1280, 720}, BitDepth: 24, RefreshRate: 60}},
				},
			},
			wantMonitor: "HDMI-1",
			wantMode:    &testMonitors[1].Modes[1],
		},
		{
			name: "exclusive with unmatched video mode",
			cfg: Config{
				Mode: ExclusiveFullscreen,
				Monitors: map[string]MonitorConfig{
					"DP-1": {VideoMode: VideoModeConfig{Size: Size{800, 600}, BitDepth: 16, RefreshRate: 75}},
				},
			},
			wantMonitor: "DP-1",
			wantMode:    &testMonitors[0].Modes[0],
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, hook := test.NewNullLogger()
			fs, err := ResolveFullscreen(tt.cfg, testMonitors, logger)
			if err != nil {
				t.Fatalf("ResolveFullscreen: %v", err)
			}

			if tt.wantMonitor == "" {
				if fs != nil {
					t.Fatalf("expected windowed, got %+v", fs)
				}
				return
			}
			if fs.Monitor.Name != tt.wantMonitor {
				t.Errorf("monitor = %q, want %q", fs.Monitor.Name, tt.wantMonitor)
			}
			switch {
			case tt.wantMode == nil && fs.Mode != nil:
				t.Errorf("unexpected video mode %+v", *fs.Mode)
			case tt.wantMode != nil && (fs.Mode == nil || *fs.Mode != *tt.wantMode):
				t.Errorf("mode = %+v, want %+v", fs.Mode, *tt.wantMode)
			}

			warned := false
			for _, entry := range hook.AllEntries() {
				if entry.Level == logrus.WarnLevel {
					warned = true
				}
			}
			if warned != tt.wantWarning {
				t.Errorf("warned = %v, want %v", warned, tt.wantWarning)
			}
		})
	}
}

func TestResolveFullscreenWithoutMonitors(t *testing.T) {
	logger, _ := test.NewNullLogger()
	_, err := ResolveFullscreen(Config{Mode: BorderlessFullscreen}, nil, logger)
	if err == nil {
		t.Fatal("expected an error without monitors")
	}
}

func TestWindowedFlags(t *testing.T) {
	cfg := DefaultWindowedConfig()
	flags := windowedFlags(cfg)
	for name, flag := range map[string]uint32{
		"vulkan":     sdl.WINDOW_VULKAN,
		"hidden":     sdl.WINDOW_HIDDEN,
		"resizable":  sdl.WINDOW_RESIZABLE,
		"borderless": sdl.WINDOW_BORDERLESS,
		"maximized":  sdl.WINDOW_MAXIMIZED,
	} {
		if flags&flag == 0 {
			t.Errorf("default windowed config lacks %s flag", name)
		}
	}
	if flags&sdl.WINDOW_ALWAYS_ON_TOP != 0 {
		t.Error("default windowed config should not be always on top")
	}

	cfg.Decorations = true
	cfg.Resizable = false
	flags = windowedFlags(cfg)
	if flags&sdl.WINDOW_BORDERLESS != 0 || flags&sdl.WINDOW_RESIZABLE != 0 {
		t.Error("decorated fixed-size window has borderless or resizable flag")
	}
}
