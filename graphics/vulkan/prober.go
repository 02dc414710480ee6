package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
)

// vulkanProber answers deviceProber questions through the instance driver.
// Without a surface no family reports Present.
type vulkanProber struct {
	instance         core1_0.CoreInstanceDriver
	surfaceExtension khr_surface.ExtensionDriver
	surface          khr_surface.Surface
}

func (p *vulkanProber) PhysicalDevices() ([]deviceProbe, error) {
	devices, _, err := p.instance.EnumeratePhysicalDevices()
	if err != nil {
		return nil, err
	}

	probes := make([]deviceProbe, 0, len(devices))
	for _, device := range devices {
		probes = append(probes, &vulkanProbe{prober: p, device: device})
	}
	return probes, nil
}

type vulkanProbe struct {
	prober *vulkanProber
	device core1_0.PhysicalDevice
}

func (p *vulkanProbe) Handle() core1_0.PhysicalDevice {
	return p.device
}

func deviceType(t core1_0.PhysicalDeviceType) DeviceType {
	switch t {
	case core1_0.PhysicalDeviceTypeIntegratedGPU:
		return DeviceTypeIntegratedGPU
	case core1_0.PhysicalDeviceTypeDiscreteGPU:
		return DeviceTypeDiscreteGPU
	case core1_0.PhysicalDeviceTypeVirtualGPU:
		return DeviceTypeVirtualGPU
	case core1_0.PhysicalDeviceTypeCPU:
		return DeviceTypeCPU
	}
	return DeviceTypeOther
}

func (p *vulkanProbe) Describe() (PhysicalDeviceInfo, error) {
	props, err := p.prober.instance.GetPhysicalDeviceProperties(p.device)
	if err != nil {
		return PhysicalDeviceInfo{}, err
	}
	return PhysicalDeviceInfo{
		Name:          props.DriverName,
		UUID:          props.PipelineCacheUUID,
		Type:          deviceType(props.DriverType),
		APIVersion:    props.APIVersion.String(),
		DriverVersion: props.DriverVersion.String(),
		VendorID:      props.VendorID,
		DeviceID:      props.DeviceID,
	}, nil
}

func (p *vulkanProbe) Extensions() (FeatureSet, error) {
	extensions, _, err := p.prober.instance.EnumerateDeviceExtensionProperties(p.device)
	if err != nil {
		return nil, err
	}
	set := FeatureSet{}
	for name := range extensions {
		set[name] = struct{}{}
	}
	return set, nil
}

func (p *vulkanProbe) QueueFamilies() ([]QueueFamilyInfo, error) {
	properties := p.prober.instance.GetPhysicalDeviceQueueFamilyProperties(p.device)

	families := make([]QueueFamilyInfo, 0, len(properties))
	for index, family := range properties {
		info := QueueFamilyInfo{
			Index:      index,
			QueueCount: family.QueueCount,
			Graphics:   family.QueueFlags&core1_0.QueueGraphics != 0,
			Compute:    family.QueueFlags&core1_0.QueueCompute != 0,
			Transfer:   family.QueueFlags&core1_0.QueueTransfer != 0,
		}
		if p.prober.surfaceExtension != nil {
			supported, _, err := p.prober.surfaceExtension.GetPhysicalDeviceSurfaceSupport(p.prober.surface, p.device, index)
			if err != nil {
				return nil, errors.Wrapf(err, "querying present support of queue family %d", index)
			}
			info.Present = supported
		}
		families = append(families, info)
	}
	return families, nil
}
