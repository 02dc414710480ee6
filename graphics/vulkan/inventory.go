package vulkan

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/core/v3"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_portability_enumeration"
)

// LayerInfo describes an available instance layer.
type LayerInfo struct {
	Name        string
	Description string
}

// DeviceInventory is everything reported about one physical device.
type DeviceInventory struct {
	PhysicalDeviceInfo
	Extensions    []string
	QueueFamilies []QueueFamilyInfo
	Features      *core1_0.PhysicalDeviceFeatures
}

// Inventory is what the Vulkan loader and drivers offer on this machine.
type Inventory struct {
	Layers     []LayerInfo
	Extensions []string
	Devices    []DeviceInventory
}

// QueryInventory creates a bare instance and lists the layers, extensions
// and physical devices it can see. SDL video must be initialized.
func QueryInventory(log logrus.FieldLogger) (*Inventory, error) {
	if err := sdl.VulkanLoadLibrary(""); err != nil {
		return nil, errors.Wrap(err, "failed to load the Vulkan library")
	}
	defer sdl.VulkanUnloadLibrary()

	globalDriver, err := core.CreateDriverFromProcAddr(sdl.VulkanGetVkGetInstanceProcAddr())
	if err != nil {
		return nil, errors.Wrap(err, "failed to load Vulkan")
	}

	layers, _, err := globalDriver.AvailableLayers()
	if err != nil {
		return nil, errors.Wrap(err, "enumerating instance layers")
	}
	available, err := availableInstanceFeatures(globalDriver)
	if err != nil {
		return nil, err
	}

	inventory := &Inventory{Extensions: available.Extensions.Sorted()}
	for name, layer := range layers {
		inventory.Layers = append(inventory.Layers, LayerInfo{Name: name, Description: layer.Description})
	}
	sort.Slice(inventory.Layers, func(i, j int) bool {
		return inventory.Layers[i].Name < inventory.Layers[j].Name
	})

	selected := available.Intersection(InstanceFeatures{
		Extensions: NewFeatureSet(khr_portability_enumeration.ExtensionName),
		Layers:     NewFeatureSet(),
	})
	instance, err := createInstance(globalDriver, selected, log)
	if err != nil {
		return nil, err
	}
	defer instance.DestroyInstance(nil)

	prober := &vulkanProber{instance: instance}
	devices, err := prober.PhysicalDevices()
	if err != nil {
		return nil, errors.Wrap(err, "enumerating physical devices")
	}

	for _, device := range devices {
		entry, err := inventoryDevice(device)
		if err != nil {
			log.WithError(err).Warn("Could not query Vulkan physical device")
			continue
		}
		entry.Features = instance.GetPhysicalDeviceFeatures(device.Handle())
		inventory.Devices = append(inventory.Devices, entry)
	}

	return inventory, nil
}

func inventoryDevice(device deviceProbe) (DeviceInventory, error) {
	info, err := device.Describe()
	if err != nil {
		return DeviceInventory{}, err
	}
	extensions, err := device.Extensions()
	if err != nil {
		return DeviceInventory{}, err
	}
	families, err := device.QueueFamilies()
	if err != nil {
		return DeviceInventory{}, err
	}

	return DeviceInventory{
		PhysicalDeviceInfo: info,
		Extensions:         extensions.Sorted(),
		QueueFamilies:      families,
	}, nil
}
