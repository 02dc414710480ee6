package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_portability_enumeration"
)

const (
	applicationName = "Halley Kart"
	engineName      = "Halley Kart"
)

var applicationVersion = common.CreateVersion(0, 1, 0)

// availableInstanceFeatures asks the loader for every instance extension
// and layer it can provide.
func availableInstanceFeatures(driver core1_0.GlobalDriver) (InstanceFeatures, error) {
	extensions, _, err := driver.AvailableExtensions()
	if err != nil {
		return InstanceFeatures{}, errors.Wrap(err, "enumerating instance extensions")
	}
	layers, _, err := driver.AvailableLayers()
	if err != nil {
		return InstanceFeatures{}, errors.Wrap(err, "enumerating instance layers")
	}

	available := InstanceFeatures{Extensions: FeatureSet{}, Layers: FeatureSet{}}
	for name := range extensions {
		available.Extensions[name] = struct{}{}
	}
	for name := range layers {
		available.Layers[name] = struct{}{}
	}
	return available, nil
}

// requestedInstanceFeatures adds the extensions that go with the optional
// layers: debug utils for validation, portability enumeration everywhere.
func requestedInstanceFeatures(cfg InstanceConfig) InstanceFeatures {
	requested := cfg.Layers.Features()
	if cfg.Layers.KhronosValidation {
		requested.Extensions[ext_debug_utils.ExtensionName] = struct{}{}
	}
	requested.Extensions[khr_portability_enumeration.ExtensionName] = struct{}{}
	return requested
}

// logLayerSelection reports which requested layers made it into the
// instance.
func logLayerSelection(requested, selected InstanceFeatures, log logrus.FieldLogger) {
	for _, layer := range requested.Layers.Sorted() {
		if selected.Layers.Contains(layer) {
			log.WithField("layer", layer).Info("Enabling Vulkan instance layer")
		} else {
			log.WithField("layer", layer).Warn("Requested Vulkan instance layer is not available")
		}
	}
}

func debugMessengerOptions(log logrus.FieldLogger) ext_debug_utils.DebugUtilsMessengerCreateInfo {
	return ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: ext_debug_utils.SeverityError | ext_debug_utils.SeverityWarning,
		MessageType:     ext_debug_utils.TypeGeneral | ext_debug_utils.TypeValidation | ext_debug_utils.TypePerformance,
		UserCallback: func(msgType ext_debug_utils.DebugUtilsMessageTypeFlags, severity ext_debug_utils.DebugUtilsMessageSeverityFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
			entry := log.WithField("type", msgType.String())
			if severity&ext_debug_utils.SeverityError != 0 {
				entry.Error(data.Message)
			} else {
				entry.Warn(data.Message)
			}
			return false
		},
	}
}

// debugMessengerEnabled reports whether the selected features allow a
// debug messenger.
func debugMessengerEnabled(selected InstanceFeatures) bool {
	return selected.Layers.Contains(LayerKhronosValidation) &&
		selected.Extensions.Contains(ext_debug_utils.ExtensionName)
}

// createInstance creates a Vulkan instance with the selected features.
// There is no way to recover from a failure here.
func createInstance(driver core1_0.GlobalDriver, selected InstanceFeatures, log logrus.FieldLogger) (core1_0.CoreInstanceDriver, error) {
	options := core1_0.InstanceCreateInfo{
		ApplicationName:       applicationName,
		ApplicationVersion:    applicationVersion,
		EngineName:            engineName,
		EngineVersion:         applicationVersion,
		APIVersion:            common.Vulkan1_2,
		EnabledExtensionNames: selected.Extensions.Sorted(),
		EnabledLayerNames:     selected.Layers.Sorted(),
	}

	if selected.Extensions.Contains(khr_portability_enumeration.ExtensionName) {
		options.Flags |= khr_portability_enumeration.InstanceCreateEnumeratePortability
	}

	if debugMessengerEnabled(selected) {
		options.Next = debugMessengerOptions(log)
	}

	instanceDriver, _, err := driver.CreateInstance(nil, options)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Vulkan instance")
	}
	return instanceDriver, nil
}
