package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gobuffalo/envy"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/halley-kart/halley-kart/graphics/vulkan"
	"github.com/halley-kart/halley-kart/graphics/window"
)

func warnedOptions(hook *test.Hook) []string {
	var options []string
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			options = append(options, entry.Data["option"].(string))
		}
	}
	return options
}

func TestParseSampleConfig(t *testing.T) {
	data, err := os.ReadFile("config.yml")
	if err != nil {
		t.Fatal(err)
	}
	log, hook := test.NewNullLogger()

	cfg, err := Parse(data, log)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if len(hook.AllEntries()) != 0 {
		t.Errorf("sample config should be complete, got warnings for %v", warnedOptions(hook))
	}

	want := Default()
	if len(cfg.Audio.Hosts) != 2 || cfg.Audio.Host != "" {
		t.Errorf("audio = %+v", cfg.Audio)
	}
	if cfg.Graphics.Vulkan != want.Graphics.Vulkan {
		t.Errorf("vulkan = %+v, want %+v", cfg.Graphics.Vulkan, want.Graphics.Vulkan)
	}
	if cfg.Graphics.Window.Windowed != want.Graphics.Window.Windowed {
		t.Errorf("windowed = %+v, want %+v", cfg.Graphics.Window.Windowed, want.Graphics.Window.Windowed)
	}
}

func TestParseFullConfig(t *testing.T) {
	data := []byte(`
audio:
  host: jack
  hosts:
    jack:
      output_device: system
graphics:
  device: 0a1b2c3d-0000-4000-8000-000000000001
  instance:
    layers:
      khronos_validation: false
      mesa_device_select: false
      mesa_overlay: true
  window:
    mode: exclusive
    monitor: DP-1
    monitors:
      DP-1:
        scale_factor: 1.5
        video_mode:
          width: 2560
          height: 1440
          bit_depth: 24
          refresh_rate: 144
    windowed:
      width: 800
      height: 600
      always_on_top: true
      decorations: true
      maximized: false
      resizable: false
      scale_factor: 2
`)
	log, hook := test.NewNullLogger()

	cfg, err := Parse(data, log)
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if len(hook.AllEntries()) != 0 {
		t.Errorf("unexpected warnings for %v", warnedOptions(hook))
	}

	if cfg.Audio.Host != "jack" || cfg.Audio.Hosts["jack"].OutputDevice != "system" {
		t.Errorf("audio = %+v", cfg.Audio)
	}

	wantDevice := vulkan.DeviceSelection{Kind: vulkan.SelectExplicit, UUID: uuid.MustParse("0a1b2c3d-0000-4000-8000-000000000001")}
	if cfg.Graphics.Vulkan.Device != wantDevice {
		t.Errorf("device = %v", cfg.Graphics.Vulkan.Device)
	}
	if cfg.Graphics.Vulkan.Instance.Layers != (vulkan.LayersConfig{MesaOverlay: true}) {
		t.Errorf("layers = %+v", cfg.Graphics.Vulkan.Instance.Layers)
	}

	win := cfg.Graphics.Window
	if win.Mode != window.ExclusiveFullscreen || win.Monitor != "DP-1" {
		t.Errorf("window = %v on %q", win.Mode, win.Monitor)
	}
	monitor := win.Monitors["DP-1"]
	if monitor.ScaleFactor == nil || *monitor.ScaleFactor != 1.5 {
		t.Errorf("monitor scale factor = %v", monitor.ScaleFactor)
	}
	if monitor.VideoMode != (window.VideoModeConfig{Size: window.Size{Width: 2560, Height: 1440}, BitDepth: 24, RefreshRate: 144}) {
		t.Errorf("video mode = %+v", monitor.VideoMode)
	}
	windowed := win.Windowed
	if windowed.Size != (window.Size{Width: 800, Height: 600}) || !windowed.AlwaysOnTop || !windowed.Decorations || windowed.Maximized || windowed.Resizable {
		t.Errorf("windowed = %+v", windowed)
	}
	if windowed.ScaleFactor == nil || *windowed.ScaleFactor != 2 {
		t.Errorf("windowed scale factor = %v", windowed.ScaleFactor)
	}
}

func TestParseMissingOptions(t *testing.T) {
	tests := []struct {
		name        string
		data        string
		check       func(t *testing.T, cfg Config)
		wantWarning []string
	}{
		{
			name: "missing sections",
			data: "graphics:\n  device: best\n",
			check: func(t *testing.T, cfg Config) {
				if cfg.Graphics.Vulkan.Device.Kind != vulkan.SelectBest {
					t.Errorf("device = %v", cfg.Graphics.Vulkan.Device)
				}
				if cfg.Graphics.Vulkan.Instance.Layers != vulkan.DefaultLayersConfig() {
					t.Errorf("layers = %+v", cfg.Graphics.Vulkan.Instance.Layers)
				}
			},
			wantWarning: []string{"audio", "graphics.instance", "graphics.window"},
		},
		{
			name: "missing layer option is off",
			data: "audio: {host: auto, hosts: {}}\ngraphics:\n  device: auto\n  instance:\n    layers:\n      mesa_overlay: true\n      mesa_device_select: true\n  window: {mode: windowed, monitor: auto, monitors: {}, windowed: {width: 1280, height: 720, always_on_top: false, decorations: false, maximized: true, resizable: true, scale_factor: auto}}\n",
			check: func(t *testing.T, cfg Config) {
				want := vulkan.LayersConfig{MesaDeviceSelect: true, MesaOverlay: true}
				if cfg.Graphics.Vulkan.Instance.Layers != want {
					t.Errorf("layers = %+v, want %+v", cfg.Graphics.Vulkan.Instance.Layers, want)
				}
			},
			wantWarning: []string{"graphics.instance.layers.khronos_validation"},
		},
		{
			name: "missing windowed options",
			data: "audio: {host: auto, hosts: {}}\ngraphics:\n  device: auto\n  instance: {layers: {khronos_validation: true, mesa_device_select: true, mesa_overlay: false}}\n  window: {mode: windowed, monitor: auto, monitors: {}, windowed: {width: 1024}}\n",
			check: func(t *testing.T, cfg Config) {
				want := window.DefaultWindowedConfig()
				want.Size.Width = 1024
				if cfg.Graphics.Window.Windowed != want {
					t.Errorf("windowed = %+v, want %+v", cfg.Graphics.Window.Windowed, want)
				}
			},
			wantWarning: []string{
				"graphics.window.windowed.height",
				"graphics.window.windowed.always_on_top",
				"graphics.window.windowed.decorations",
				"graphics.window.windowed.maximized",
				"graphics.window.windowed.resizable",
				"graphics.window.windowed.scale_factor",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, hook := test.NewNullLogger()
			cfg, err := Parse([]byte(tt.data), log)
			if err != nil {
				t.Fatalf("unexpected error: %+v", err)
			}
			tt.check(t, cfg)

			got := warnedOptions(hook)
			if len(got) != len(tt.wantWarning) {
				t.Fatalf("warnings for %v, want %v", got, tt.wantWarning)
			}
			for i := range got {
				if got[i] != tt.wantWarning[i] {
					t.Errorf("warning %d for %s, want %s", i, got[i], tt.wantWarning[i])
				}
			}
		})
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "graphics: [unclosed"},
		{"root is a list", "- audio\n"},
		{"section is a scalar", "graphics: fast\n"},
		{"bad device", "graphics:\n  device: fastest\n"},
		{"bad layer bool", "graphics:\n  instance:\n    layers:\n      khronos_validation: sometimes\n"},
		{"bad mode", "graphics:\n  window:\n    mode: fullscreen\n"},
		{"bad width", "graphics:\n  window:\n    windowed:\n      width: wide\n"},
		{"bad scale factor", "graphics:\n  window:\n    windowed:\n      scale_factor: big\n"},
		{"monitor without video mode", "graphics:\n  window:\n    monitors:\n      DP-1:\n        scale_factor: auto\n"},
		{"video mode missing a field", "graphics:\n  window:\n    monitors:\n      DP-1:\n        video_mode: {width: 1920, height: 1080, bit_depth: 24}\n"},
		{"automatic video mode field", "graphics:\n  window:\n    monitors:\n      DP-1:\n        video_mode: {width: auto, height: 1080, bit_depth: 24, refresh_rate: 60}\n"},
		{"host is a list", "audio:\n  hosts:\n    jack: [system]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, _ := test.NewNullLogger()
			_, err := Parse([]byte(tt.data), log)
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("got %v, want ErrMalformed", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("graphics:\n  device: best\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	envy.Temp(func() {
		envy.Set(PathEnv, path)
		log, _ := test.NewNullLogger()

		cfg, err := Load(log)
		if err != nil {
			t.Fatalf("unexpected error: %+v", err)
		}
		if cfg.Graphics.Vulkan.Device.Kind != vulkan.SelectBest {
			t.Errorf("device = %v", cfg.Graphics.Vulkan.Device)
		}
	})
}

func TestLoadMissingFile(t *testing.T) {
	envy.Temp(func() {
		envy.Set(PathEnv, filepath.Join(t.TempDir(), "missing.yml"))
		log, hook := test.NewNullLogger()

		cfg, err := Load(log)
		if err != nil {
			t.Fatalf("unexpected error: %+v", err)
		}
		if cfg.Graphics.Vulkan != vulkan.DefaultConfig() {
			t.Errorf("vulkan = %+v, want defaults", cfg.Graphics.Vulkan)
		}
		if entry := hook.LastEntry(); entry == nil || entry.Level != logrus.WarnLevel {
			t.Errorf("last entry = %v, want a warning", entry)
		}
	})
}
