package vulkan

import (
	"github.com/google/uuid"
)

// SelectionKind is the device selection policy.
type SelectionKind int

const (
	// SelectAuto takes the first eligible device.
	SelectAuto SelectionKind = iota
	// SelectBest prefers discrete, then integrated GPUs.
	SelectBest
	// SelectExplicit picks the device with a given UUID.
	SelectExplicit
)

// DeviceSelection is the configured `graphics.device` value.
type DeviceSelection struct {
	Kind SelectionKind
	UUID uuid.UUID
}

func (s DeviceSelection) String() string {
	switch s.Kind {
	case SelectAuto:
		return "auto"
	case SelectBest:
		return "best"
	case SelectExplicit:
		return s.UUID.String()
	}
	return "unknown"
}

// LayersConfig toggles the optional instance layers.
type LayersConfig struct {
	KhronosValidation bool
	MesaDeviceSelect  bool
	MesaOverlay       bool
}

// DefaultLayersConfig is used when the `layers` section is missing.
func DefaultLayersConfig() LayersConfig {
	return LayersConfig{
		KhronosValidation: true,
		MesaDeviceSelect:  true,
		MesaOverlay:       false,
	}
}

// InstanceConfig is the `graphics.instance` section.
type InstanceConfig struct {
	Layers LayersConfig
}

// DefaultInstanceConfig is used when the `instance` section is missing.
func DefaultInstanceConfig() InstanceConfig {
	return InstanceConfig{Layers: DefaultLayersConfig()}
}

// Config is everything the Vulkan setup reads from configuration.
type Config struct {
	Device   DeviceSelection
	Instance InstanceConfig
}

// DefaultConfig is used when the graphics section is missing.
func DefaultConfig() Config {
	return Config{Instance: DefaultInstanceConfig()}
}
