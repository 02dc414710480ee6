package vulkan

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

// DeviceType is the kind of GPU a physical device is.
type DeviceType int

const (
	DeviceTypeOther DeviceType = iota
	DeviceTypeIntegratedGPU
	DeviceTypeDiscreteGPU
	DeviceTypeVirtualGPU
	DeviceTypeCPU
)

func (t DeviceType) String() string {
	switch t {
	case DeviceTypeIntegratedGPU:
		return "integrated GPU"
	case DeviceTypeDiscreteGPU:
		return "discrete GPU"
	case DeviceTypeVirtualGPU:
		return "virtual GPU"
	case DeviceTypeCPU:
		return "CPU"
	}
	return "other"
}

// PhysicalDeviceInfo identifies a physical device.
type PhysicalDeviceInfo struct {
	Name          string
	UUID          uuid.UUID
	Type          DeviceType
	APIVersion    string
	DriverVersion string
	VendorID      uint32
	DeviceID      uint32
}

func (i PhysicalDeviceInfo) String() string {
	return fmt.Sprintf("%s (UUID: %s)", i.Name, i.UUID)
}

// QueueFamilyInfo is what the enumerator needs to know about a queue family.
type QueueFamilyInfo struct {
	Index      int
	QueueCount int
	Graphics   bool
	Compute    bool
	Transfer   bool
	// Present is whether the family can present to the target surface.
	Present bool
}

// QueueFamilies are the families the game submits to. They may be equal.
type QueueFamilies struct {
	Graphics int
	Present  int
}

// DualPurpose reports whether one family serves both roles.
func (f QueueFamilies) DualPurpose() bool {
	return f.Graphics == f.Present
}

// PhysicalDeviceCandidate is an eligible device. Candidates only live until
// one is selected.
type PhysicalDeviceCandidate struct {
	PhysicalDeviceInfo
	Handle              core1_0.PhysicalDevice
	Families            QueueFamilies
	SupportedExtensions FeatureSet
}

// deviceProbe answers the capability questions the enumerator asks about
// one physical device.
type deviceProbe interface {
	Handle() core1_0.PhysicalDevice
	Describe() (PhysicalDeviceInfo, error)
	Extensions() (FeatureSet, error)
	QueueFamilies() ([]QueueFamilyInfo, error)
}

type deviceProber interface {
	PhysicalDevices() ([]deviceProbe, error)
}

// findQueueFamilies picks the first graphics family and the first family
// that can present.
func findQueueFamilies(families []QueueFamilyInfo) (QueueFamilies, error) {
	graphics, present := -1, -1
	for _, family := range families {
		if graphics < 0 && family.Graphics {
			graphics = family.Index
		}
		if present < 0 && family.Present {
			present = family.Index
		}
	}

	if graphics < 0 {
		return QueueFamilies{}, errors.New("does not have a graphics queue family")
	}
	if present < 0 {
		return QueueFamilies{}, errors.New("does not have a present queue family")
	}
	return QueueFamilies{Graphics: graphics, Present: present}, nil
}

// EnumeratePhysicalDevices returns the devices that can render and present
// to the surface, in platform order. Ineligible devices are logged and
// skipped.
func EnumeratePhysicalDevices(prober deviceProber, log logrus.FieldLogger) ([]PhysicalDeviceCandidate, error) {
	devices, err := prober.PhysicalDevices()
	if err != nil {
		return nil, errors.Wrap(err, "enumerating physical devices")
	}

	var candidates []PhysicalDeviceCandidate
	for _, device := range devices {
		info, err := device.Describe()
		if err != nil {
			log.WithError(err).Warn("Could not read Vulkan physical device properties")
			continue
		}
		entry := log.WithField("device", info.String())

		extensions, err := device.Extensions()
		if err != nil {
			entry.WithError(err).Warn("Could not enumerate Vulkan physical device extensions")
			continue
		}
		if !extensions.Contains(khr_swapchain.ExtensionName) {
			entry.Warn("Vulkan physical device does not support swapchains and thus cannot be used")
			continue
		}

		queueFamilies, err := device.QueueFamilies()
		if err != nil {
			entry.WithError(err).Warn("Could not query Vulkan physical device queue families")
			continue
		}
		families, err := findQueueFamilies(queueFamilies)
		if err != nil {
			entry.Warnf("Vulkan physical device %s and thus cannot be used", err)
			continue
		}

		entry.Info("Found eligible Vulkan physical device")
		candidates = append(candidates, PhysicalDeviceCandidate{
			PhysicalDeviceInfo:  info,
			Handle:              device.Handle(),
			Families:            families,
			SupportedExtensions: extensions,
		})
	}

	return candidates, nil
}
