package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
)

// MaxFramesInFlight is the number of frames the CPU may record ahead of
// the GPU.
const MaxFramesInFlight = 2

// frameSync holds the per-slot and per-image synchronization objects.
type frameSync struct {
	imageAvailable []core1_0.Semaphore
	inFlight       []core1_0.Fence
	renderFinished []core1_0.Semaphore
}

func createFrameSync(device core1_0.CoreDeviceDriver, imageCount int) (*frameSync, error) {
	sync := &frameSync{}

	for i := 0; i < MaxFramesInFlight; i++ {
		semaphore, _, err := device.CreateSemaphore(nil, core1_0.SemaphoreCreateInfo{})
		if err != nil {
			sync.destroy(device)
			return nil, errors.Wrap(err, "failed to create image available semaphore")
		}
		sync.imageAvailable = append(sync.imageAvailable, semaphore)

		fence, _, err := device.CreateFence(nil, core1_0.FenceCreateInfo{
			Flags: core1_0.FenceCreateSignaled,
		})
		if err != nil {
			sync.destroy(device)
			return nil, errors.Wrap(err, "failed to create in flight fence")
		}
		sync.inFlight = append(sync.inFlight, fence)
	}

	if err := sync.createImageSemaphores(device, imageCount); err != nil {
		sync.destroy(device)
		return nil, err
	}

	return sync, nil
}

// createImageSemaphores replaces the per-image semaphores, which follow
// the swapchain's image count.
func (s *frameSync) createImageSemaphores(device core1_0.CoreDeviceDriver, imageCount int) error {
	s.destroyImageSemaphores(device)

	for i := 0; i < imageCount; i++ {
		semaphore, _, err := device.CreateSemaphore(nil, core1_0.SemaphoreCreateInfo{})
		if err != nil {
			return errors.Wrap(err, "failed to create render finished semaphore")
		}
		s.renderFinished = append(s.renderFinished, semaphore)
	}
	return nil
}

func (s *frameSync) destroyImageSemaphores(device core1_0.CoreDeviceDriver) {
	for _, semaphore := range s.renderFinished {
		device.DestroySemaphore(semaphore, nil)
	}
	s.renderFinished = nil
}

func (s *frameSync) destroy(device core1_0.CoreDeviceDriver) {
	s.destroyImageSemaphores(device)

	for _, fence := range s.inFlight {
		device.DestroyFence(fence, nil)
	}
	s.inFlight = nil

	for _, semaphore := range s.imageAvailable {
		device.DestroySemaphore(semaphore, nil)
	}
	s.imageAvailable = nil
}
