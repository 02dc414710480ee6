// Package config reads the game configuration file.
package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/gobuffalo/envy"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/halley-kart/halley-kart/audio"
	"github.com/halley-kart/halley-kart/graphics/vulkan"
	"github.com/halley-kart/halley-kart/graphics/window"
)

const (
	// PathEnv names the environment variable that overrides DefaultPath.
	PathEnv     = "HK_CONFIG"
	DefaultPath = "config/config.yml"
)

type Graphics struct {
	Vulkan vulkan.Config
	Window window.Config
}

type Config struct {
	Audio    audio.Config
	Graphics Graphics
}

func Default() Config {
	return Config{
		Audio: audio.DefaultConfig(),
		Graphics: Graphics{
			Vulkan: vulkan.DefaultConfig(),
			Window: window.DefaultConfig(),
		},
	}
}

// Path is where the config file is read from.
func Path() string {
	return envy.Get(PathEnv, DefaultPath)
}

// Load reads the config file at Path. A missing file gives the default
// config with a warning.
func Load(log logrus.FieldLogger) (Config, error) {
	path := Path()
	data, err := os.ReadFile(path)
	if err != nil {
		log.WithField("path", path).WithError(err).Warn("Unable to open config file, using the default config")
		return Default(), nil
	}

	cfg, err := Parse(data, log)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading %s", path)
	}
	return cfg, nil
}

// Parse decodes a config document.
func Parse(data []byte, log logrus.FieldLogger) (Config, error) {
	var document yaml.Node
	if err := yaml.Unmarshal(data, &document); err != nil {
		return Config{}, errors.Mark(errors.Wrap(err, "parsing YAML"), ErrMalformed)
	}
	if document.Kind != yaml.DocumentNode || len(document.Content) == 0 {
		return Config{}, errors.Wrap(ErrMalformed, "config file is empty")
	}
	root := document.Content[0]
	if root.Kind != yaml.MappingNode {
		return Config{}, errors.Wrap(ErrMalformed, "config root is not a mapping")
	}

	p := &parser{log: log}
	cfg := Default()

	node, err := p.section(root, "", "audio")
	if err != nil {
		return Config{}, err
	}
	if node != nil {
		if cfg.Audio, err = p.audio(node, "audio"); err != nil {
			return Config{}, err
		}
	}

	node, err = p.section(root, "", "graphics")
	if err != nil {
		return Config{}, err
	}
	if node != nil {
		if cfg.Graphics, err = p.graphics(node, "graphics"); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

func (p *parser) audio(node *yaml.Node, path string) (audio.Config, error) {
	cfg := audio.DefaultConfig()

	var err error
	if cfg.Host, err = p.autoString(node, path, "host"); err != nil {
		return cfg, err
	}

	hosts, err := p.section(node, path, "hosts")
	if err != nil || hosts == nil {
		return cfg, err
	}
	for _, entry := range entries(hosts) {
		name := entry[0].Value
		hostPath := join(join(path, "hosts"), name)
		if entry[1].Kind != yaml.MappingNode {
			return cfg, malformed(hostPath, "expected a mapping")
		}
		device, err := p.autoString(entry[1], hostPath, "output_device")
		if err != nil {
			return cfg, err
		}
		cfg.Hosts[name] = audio.HostConfig{OutputDevice: device}
	}
	return cfg, nil
}

func (p *parser) graphics(node *yaml.Node, path string) (Graphics, error) {
	cfg := Graphics{Vulkan: vulkan.DefaultConfig(), Window: window.DefaultConfig()}

	var err error
	if cfg.Vulkan.Device, err = p.deviceSelection(node, path); err != nil {
		return cfg, err
	}

	instance, err := p.section(node, path, "instance")
	if err != nil {
		return cfg, err
	}
	if instance != nil {
		if cfg.Vulkan.Instance, err = p.instance(instance, join(path, "instance")); err != nil {
			return cfg, err
		}
	}

	win, err := p.section(node, path, "window")
	if err != nil {
		return cfg, err
	}
	if win != nil {
		if cfg.Window, err = p.window(win, join(path, "window")); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func (p *parser) deviceSelection(node *yaml.Node, path string) (vulkan.DeviceSelection, error) {
	value, ok, err := p.scalar(node, path, "device")
	if err != nil || !ok {
		return vulkan.DeviceSelection{Kind: vulkan.SelectAuto}, err
	}

	switch value {
	case auto:
		return vulkan.DeviceSelection{Kind: vulkan.SelectAuto}, nil
	case "best":
		return vulkan.DeviceSelection{Kind: vulkan.SelectBest}, nil
	}

	id, err := uuid.Parse(value)
	if err != nil {
		return vulkan.DeviceSelection{}, malformed(join(path, "device"), "%q is not auto, best or a device UUID", value)
	}
	return vulkan.DeviceSelection{Kind: vulkan.SelectExplicit, UUID: id}, nil
}

func (p *parser) instance(node *yaml.Node, path string) (vulkan.InstanceConfig, error) {
	cfg := vulkan.DefaultInstanceConfig()

	layers, err := p.section(node, path, "layers")
	if err != nil || layers == nil {
		return cfg, err
	}

	layersPath := join(path, "layers")
	if cfg.Layers.KhronosValidation, err = p.boolean(layers, layersPath, "khronos_validation", false); err != nil {
		return cfg, err
	}
	if cfg.Layers.MesaDeviceSelect, err = p.boolean(layers, layersPath, "mesa_device_select", false); err != nil {
		return cfg, err
	}
	if cfg.Layers.MesaOverlay, err = p.boolean(layers, layersPath, "mesa_overlay", false); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (p *parser) window(node *yaml.Node, path string) (window.Config, error) {
	cfg := window.DefaultConfig()

	mode, ok, err := p.scalar(node, path, "mode")
	if err != nil {
		return cfg, err
	}
	if ok {
		switch mode {
		case "windowed":
			cfg.Mode = window.Windowed
		case "borderless":
			cfg.Mode = window.BorderlessFullscreen
		case "exclusive":
			cfg.Mode = window.ExclusiveFullscreen
		default:
			return cfg, malformed(join(path, "mode"), "unknown window mode %q", mode)
		}
	}

	if cfg.Monitor, err = p.autoString(node, path, "monitor"); err != nil {
		return cfg, err
	}

	monitors, err := p.section(node, path, "monitors")
	if err != nil {
		return cfg, err
	}
	if monitors != nil {
		for _, entry := range entries(monitors) {
			name := entry[0].Value
			monitor, err := p.monitor(entry[1], join(join(path, "monitors"), name))
			if err != nil {
				return cfg, err
			}
			cfg.Monitors[name] = monitor
		}
	}

	windowed, err := p.section(node, path, "windowed")
	if err != nil {
		return cfg, err
	}
	if windowed != nil {
		if cfg.Windowed, err = p.windowed(windowed, join(path, "windowed")); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func (p *parser) monitor(node *yaml.Node, path string) (window.MonitorConfig, error) {
	var cfg window.MonitorConfig
	if node.Kind != yaml.MappingNode {
		return cfg, malformed(path, "expected a mapping")
	}

	var err error
	if cfg.ScaleFactor, err = p.autoFloat(node, path, "scale_factor"); err != nil {
		return cfg, err
	}

	modePath := join(path, "video_mode")
	mode := get(node, "video_mode")
	if mode == nil {
		return cfg, malformed(modePath, "there is no default video mode")
	}
	if mode.Kind != yaml.MappingNode {
		return cfg, malformed(modePath, "expected a mapping")
	}

	if cfg.VideoMode.Size.Width, err = p.requiredInteger(mode, modePath, "width"); err != nil {
		return cfg, err
	}
	if cfg.VideoMode.Size.Height, err = p.requiredInteger(mode, modePath, "height"); err != nil {
		return cfg, err
	}
	if cfg.VideoMode.BitDepth, err = p.requiredInteger(mode, modePath, "bit_depth"); err != nil {
		return cfg, err
	}
	if cfg.VideoMode.RefreshRate, err = p.requiredInteger(mode, modePath, "refresh_rate"); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (p *parser) windowed(node *yaml.Node, path string) (window.WindowedConfig, error) {
	cfg := window.DefaultWindowedConfig()

	var err error
	if cfg.Size.Width, err = p.integer(node, path, "width", cfg.Size.Width); err != nil {
		return cfg, err
	}
	if cfg.Size.Height, err = p.integer(node, path, "height", cfg.Size.Height); err != nil {
		return cfg, err
	}
	if cfg.AlwaysOnTop, err = p.boolean(node, path, "always_on_top", cfg.AlwaysOnTop); err != nil {
		return cfg, err
	}
	if cfg.Decorations, err = p.boolean(node, path, "decorations", cfg.Decorations); err != nil {
		return cfg, err
	}
	if cfg.Maximized, err = p.boolean(node, path, "maximized", cfg.Maximized); err != nil {
		return cfg, err
	}
	if cfg.Resizable, err = p.boolean(node, path, "resizable", cfg.Resizable); err != nil {
		return cfg, err
	}
	if cfg.ScaleFactor, err = p.autoFloat(node, path, "scale_factor"); err != nil {
		return cfg, err
	}
	return cfg, nil
}
