package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/core/v3"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
	vkng_sdl2 "github.com/vkngwrapper/integrations/sdl2/v3"
)

// Context owns every Vulkan object the game draws with. It is used from
// the thread that created the window.
type Context struct {
	log    logrus.FieldLogger
	window *sdl.Window

	instance       core1_0.CoreInstanceDriver
	debugExtension ext_debug_utils.ExtensionDriver
	debugMessenger ext_debug_utils.DebugUtilsMessenger

	surfaceExtension khr_surface.ExtensionDriver
	surface          khr_surface.Surface

	physicalDevice PhysicalDeviceCandidate
	memProperties  *core1_0.PhysicalDeviceMemoryProperties
	device         core1_0.CoreDeviceDriver
	queues         Queues

	swapchainExtension khr_swapchain.ExtensionDriver
	commandPool        core1_0.CommandPool
	vertices           *VertexBuffer
	swapchain          *Swapchain
	pipeline           *Pipeline
	recording          *Recording
	sync               *frameSync

	presenter *Presenter
}

// Setup brings up Vulkan for window: instance, surface, physical and
// logical device, swapchain, pipeline and the recorded frames. Any error
// is fatal to the game. A partially set up context is destroyed before
// returning.
func Setup(cfg Config, window *sdl.Window, log logrus.FieldLogger) (*Context, error) {
	c := &Context{log: log, window: window}
	if err := c.setup(cfg); err != nil {
		c.Destroy()
		return nil, err
	}
	return c, nil
}

func (c *Context) setup(cfg Config) error {
	globalDriver, err := core.CreateDriverFromProcAddr(sdl.VulkanGetVkGetInstanceProcAddr())
	if err != nil {
		return errors.Wrap(err, "failed to load Vulkan")
	}

	available, err := availableInstanceFeatures(globalDriver)
	if err != nil {
		return err
	}
	required := InstanceFeatures{
		Extensions: NewFeatureSet(c.window.VulkanGetInstanceExtensions()...),
		Layers:     NewFeatureSet(),
	}
	queried, err := QueryInstanceFeatures(available, required)
	if err != nil {
		return errors.Wrap(err, "Vulkan cannot present to this window")
	}

	requested := requestedInstanceFeatures(cfg.Instance)
	selected := queried.Select(requested)
	logLayerSelection(requested, selected, c.log)

	c.instance, err = createInstance(globalDriver, selected, c.log)
	if err != nil {
		return err
	}

	if debugMessengerEnabled(selected) {
		c.debugExtension = ext_debug_utils.CreateExtensionDriverFromCoreDriver(c.instance)
		c.debugMessenger, _, err = c.debugExtension.CreateDebugUtilsMessenger(nil, debugMessengerOptions(c.log))
		if err != nil {
			return errors.Wrap(err, "failed to create debug messenger")
		}
	}

	c.surfaceExtension = khr_surface.CreateExtensionDriverFromCoreDriver(c.instance)
	c.surface, err = vkng_sdl2.CreateSurface(c.instance.Instance(), c.surfaceExtension, c.window)
	if err != nil {
		return errors.Wrap(err, "failed to create window surface")
	}

	candidates, err := EnumeratePhysicalDevices(&vulkanProber{
		instance:         c.instance,
		surfaceExtension: c.surfaceExtension,
		surface:          c.surface,
	}, c.log)
	if err != nil {
		return err
	}
	c.physicalDevice, err = SelectPhysicalDevice(cfg.Device, candidates, c.log)
	if err != nil {
		return err
	}
	c.memProperties = c.instance.GetPhysicalDeviceMemoryProperties(c.physicalDevice.Handle)

	c.device, c.queues, err = createDevice(c.instance, c.physicalDevice, c.log)
	if err != nil {
		return err
	}
	c.swapchainExtension = khr_swapchain.CreateExtensionDriverFromCoreDriver(c.device)

	c.commandPool, _, err = c.device.CreateCommandPool(nil, core1_0.CommandPoolCreateInfo{
		QueueFamilyIndex: c.queues.Families.Graphics,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create command pool")
	}

	mesh, err := loadMesh(triangleMesh)
	if err != nil {
		return err
	}
	c.vertices, err = createVertexBuffer(c.device, c.memProperties, mesh)
	if err != nil {
		return err
	}

	if err := c.createSwapchainResources(); err != nil {
		return err
	}

	c.sync, err = createFrameSync(c.device, len(c.swapchain.Images))
	if err != nil {
		return err
	}

	c.presenter = NewPresenter(c, c.log)
	return nil
}

func (c *Context) drawableExtent() core1_0.Extent2D {
	w, h := c.window.VulkanGetDrawableSize()
	return core1_0.Extent2D{Width: int(w), Height: int(h)}
}

// createSwapchainResources builds everything that depends on the surface
// size.
func (c *Context) createSwapchainResources() error {
	support, err := querySurfaceSupport(c.surfaceExtension, c.surface, c.physicalDevice.Handle)
	if err != nil {
		return err
	}

	c.swapchain, err = createSwapchain(c.device, c.swapchainExtension, c.surface, support, c.drawableExtent(), c.queues.Families, c.log)
	if err != nil {
		return err
	}

	c.pipeline, err = createPipeline(c.device, c.swapchain.Format, c.swapchain.Extent)
	if err != nil {
		return err
	}

	c.recording, err = recordFrames(c.device, c.commandPool, c.swapchain, c.pipeline, c.vertices)
	return err
}

func (c *Context) destroySwapchainResources() {
	if c.recording != nil {
		c.recording.destroy(c.device)
		c.recording = nil
	}
	if c.pipeline != nil {
		c.pipeline.destroy(c.device)
		c.pipeline = nil
	}
	if c.swapchain != nil {
		c.swapchain.destroy(c.device, c.swapchainExtension)
		c.swapchain = nil
	}
}

// DrawFrame presents one frame.
func (c *Context) DrawFrame() error {
	return c.presenter.DrawFrame()
}

// Invalidate rebuilds the swapchain before the next frame, after the window
// has been resized.
func (c *Context) Invalidate() {
	c.presenter.Invalidate()
}

// PhysicalDevice describes the device the context renders with.
func (c *Context) PhysicalDevice() PhysicalDeviceInfo {
	return c.physicalDevice.PhysicalDeviceInfo
}

func (c *Context) ImageCount() int {
	if c.swapchain == nil {
		return 0
	}
	return len(c.swapchain.Images)
}

func (c *Context) WaitFrame(slot int) error {
	_, err := c.device.WaitForFences(true, common.NoTimeout, c.sync.inFlight[slot])
	return err
}

func (c *Context) Acquire(slot int) (int, error) {
	imageIndex, res, err := c.swapchainExtension.AcquireNextImage(c.swapchain.Handle, common.NoTimeout, &c.sync.imageAvailable[slot], nil)
	if res == khr_swapchain.VKErrorOutOfDate {
		return 0, errSwapchainStale
	} else if err != nil {
		return 0, err
	}
	return imageIndex, nil
}

func (c *Context) ResetFrame(slot int) error {
	_, err := c.device.ResetFences(c.sync.inFlight[slot])
	return err
}

func (c *Context) Submit(slot, image int) error {
	_, err := c.device.QueueSubmit(c.queues.Graphics, &c.sync.inFlight[slot],
		core1_0.SubmitInfo{
			WaitSemaphores:   []core1_0.Semaphore{c.sync.imageAvailable[slot]},
			WaitDstStageMask: []core1_0.PipelineStageFlags{core1_0.PipelineStageColorAttachmentOutput},
			CommandBuffers:   []core1_0.CommandBuffer{c.recording.CommandBuffers[image]},
			SignalSemaphores: []core1_0.Semaphore{c.sync.renderFinished[image]},
		},
	)
	return err
}

func (c *Context) Present(image int) error {
	res, err := c.swapchainExtension.QueuePresent(c.queues.Present, khr_swapchain.PresentInfo{
		WaitSemaphores: []core1_0.Semaphore{c.sync.renderFinished[image]},
		Swapchains:     []khr_swapchain.Swapchain{c.swapchain.Handle},
		ImageIndices:   []int{image},
	})
	if res == khr_swapchain.VKErrorOutOfDate || res == khr_swapchain.VKSuboptimal {
		return errSwapchainStale
	}
	return err
}

func (c *Context) Rebuild() (bool, error) {
	extent := c.drawableExtent()
	if extent.Width == 0 || extent.Height == 0 {
		return false, nil
	}
	if (c.window.GetFlags() & sdl.WINDOW_MINIMIZED) != 0 {
		return false, nil
	}

	_, err := c.device.DeviceWaitIdle()
	if err != nil {
		return false, err
	}

	c.destroySwapchainResources()
	if err := c.createSwapchainResources(); err != nil {
		return false, err
	}
	if err := c.sync.createImageSemaphores(c.device, len(c.swapchain.Images)); err != nil {
		return false, err
	}
	return true, nil
}

// Destroy waits for the GPU and releases everything in reverse creation
// order. It is safe on a partially set up context.
func (c *Context) Destroy() {
	if c.device != nil {
		if _, err := c.device.DeviceWaitIdle(); err != nil {
			c.log.WithError(err).Warn("Could not wait for the Vulkan device to go idle")
		}
	}

	if c.sync != nil {
		c.sync.destroy(c.device)
		c.sync = nil
	}

	c.destroySwapchainResources()

	if c.vertices != nil {
		c.vertices.destroy(c.device)
		c.vertices = nil
	}

	if c.commandPool.Initialized() {
		c.device.DestroyCommandPool(c.commandPool, nil)
		c.commandPool = core1_0.CommandPool{}
	}

	if c.device != nil {
		c.device.DestroyDevice(nil)
		c.device = nil
	}

	if c.debugMessenger.Initialized() {
		c.debugExtension.DestroyDebugUtilsMessenger(c.debugMessenger, nil)
		c.debugMessenger = ext_debug_utils.DebugUtilsMessenger{}
	}

	if c.surface.Initialized() {
		c.surfaceExtension.DestroySurface(c.surface, nil)
		c.surface = khr_surface.Surface{}
	}

	if c.instance != nil {
		c.instance.DestroyInstance(nil)
		c.instance = nil
	}
}
