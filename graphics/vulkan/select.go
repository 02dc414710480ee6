package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// ErrNoEligibleDevice is returned when no physical device can render and
// present to the window surface.
var ErrNoEligibleDevice = errors.New("no eligible Vulkan physical device found")

// bestRank orders device types for SelectBest. Lower is better.
func bestRank(t DeviceType) int {
	switch t {
	case DeviceTypeDiscreteGPU:
		return 0
	case DeviceTypeIntegratedGPU:
		return 1
	}
	return 2
}

// SelectPhysicalDevice picks one candidate according to selection.
//
// An explicit UUID that matches nothing falls back to the first candidate
// with a warning. SelectBest keeps platform order among equally ranked
// devices.
func SelectPhysicalDevice(selection DeviceSelection, candidates []PhysicalDeviceCandidate, log logrus.FieldLogger) (PhysicalDeviceCandidate, error) {
	if len(candidates) == 0 {
		return PhysicalDeviceCandidate{}, ErrNoEligibleDevice
	}

	chosen := candidates[0]
	switch selection.Kind {
	case SelectExplicit:
		found := false
		for _, candidate := range candidates {
			if candidate.UUID == selection.UUID {
				chosen = candidate
				found = true
				break
			}
		}
		if !found {
			log.WithField("uuid", selection.UUID.String()).
				Warn("Requested Vulkan physical device is not available, falling back to the first eligible device")
		}

	case SelectBest:
		for _, candidate := range candidates[1:] {
			if bestRank(candidate.Type) < bestRank(chosen.Type) {
				chosen = candidate
			}
		}
	}

	log.WithFields(logrus.Fields{
		"device":    chosen.String(),
		"type":      chosen.Type.String(),
		"selection": selection.String(),
	}).Info("Selected Vulkan physical device")
	return chosen, nil
}
