package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_portability_subset"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

const (
	graphicsQueuePriority = float32(1.0)
	presentQueuePriority  = float32(0.5)
)

// Queues are the device queues the game submits to. Present aliases
// Graphics when one family serves both roles.
type Queues struct {
	Graphics core1_0.Queue
	Present  core1_0.Queue
	Families QueueFamilies
}

// DualPurpose reports whether both roles share one queue.
func (q Queues) DualPurpose() bool {
	return q.Families.DualPurpose()
}

// queueCreateInfos requests one queue from each distinct family.
func queueCreateInfos(families QueueFamilies) []core1_0.DeviceQueueCreateInfo {
	infos := []core1_0.DeviceQueueCreateInfo{
		{
			QueueFamilyIndex: families.Graphics,
			QueuePriorities:  []float32{graphicsQueuePriority},
		},
	}
	if !families.DualPurpose() {
		infos = append(infos, core1_0.DeviceQueueCreateInfo{
			QueueFamilyIndex: families.Present,
			QueuePriorities:  []float32{presentQueuePriority},
		})
	}
	return infos
}

// resolveQueues fetches the queues requested by queueCreateInfos.
func resolveQueues(families QueueFamilies, getQueue func(family, index int) core1_0.Queue) Queues {
	queues := Queues{Families: families}
	queues.Graphics = getQueue(families.Graphics, 0)
	if families.DualPurpose() {
		queues.Present = queues.Graphics
	} else {
		queues.Present = getQueue(families.Present, 0)
	}
	return queues
}

// deviceExtensions is khr_swapchain plus the portability subset on
// platforms that expose it.
func deviceExtensions(supported FeatureSet) []string {
	extensions := []string{khr_swapchain.ExtensionName}
	if supported.Contains(khr_portability_subset.ExtensionName) {
		extensions = append(extensions, khr_portability_subset.ExtensionName)
	}
	return extensions
}

// createDevice creates the logical device for the selected candidate.
func createDevice(instance core1_0.CoreInstanceDriver, selected PhysicalDeviceCandidate, log logrus.FieldLogger) (core1_0.CoreDeviceDriver, Queues, error) {
	extensions := deviceExtensions(selected.SupportedExtensions)

	deviceDriver, _, err := instance.CreateDevice(selected.Handle, nil, core1_0.DeviceCreateInfo{
		QueueCreateInfos:      queueCreateInfos(selected.Families),
		EnabledFeatures:       &core1_0.PhysicalDeviceFeatures{},
		EnabledExtensionNames: extensions,
	})
	if err != nil {
		return nil, Queues{}, errors.Wrap(err, "failed to create Vulkan logical device")
	}

	queues := resolveQueues(selected.Families, deviceDriver.GetQueue)
	log.WithFields(logrus.Fields{
		"graphics_family": selected.Families.Graphics,
		"present_family":  selected.Families.Present,
		"dual_purpose":    queues.DualPurpose(),
		"extensions":      extensions,
	}).Debug("Created Vulkan logical device")
	return deviceDriver, queues, nil
}
