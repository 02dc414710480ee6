package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

// minSwapchainImages guarantees double buffering.
const minSwapchainImages = 2

// SurfaceSupport is what the surface reports for a physical device.
type SurfaceSupport struct {
	Capabilities *khr_surface.SurfaceCapabilities
	Formats      []khr_surface.SurfaceFormat
	PresentModes []khr_surface.PresentMode
}

func querySurfaceSupport(surfaceExtension khr_surface.ExtensionDriver, surface khr_surface.Surface, device core1_0.PhysicalDevice) (SurfaceSupport, error) {
	var support SurfaceSupport
	var err error

	support.Capabilities, _, err = surfaceExtension.GetPhysicalDeviceSurfaceCapabilities(surface, device)
	if err != nil {
		return support, errors.Wrap(err, "querying surface capabilities")
	}

	support.Formats, _, err = surfaceExtension.GetPhysicalDeviceSurfaceFormats(surface, device)
	if err != nil {
		return support, errors.Wrap(err, "querying surface formats")
	}

	support.PresentModes, _, err = surfaceExtension.GetPhysicalDeviceSurfacePresentModes(surface, device)
	return support, errors.Wrap(err, "querying surface present modes")
}

type swapchainParameters struct {
	ImageCount         int
	Format             khr_surface.SurfaceFormat
	Extent             core1_0.Extent2D
	SharingMode        core1_0.SharingMode
	QueueFamilyIndices []int
}

// chooseSwapchainParameters sizes the swapchain. drawable is the window's
// pixel size, used when the surface leaves the extent to the application.
func chooseSwapchainParameters(support SurfaceSupport, drawable core1_0.Extent2D, families QueueFamilies) (swapchainParameters, error) {
	if support.Capabilities == nil {
		return swapchainParameters{}, errors.New("surface reported no capabilities")
	}
	if len(support.Formats) == 0 {
		return swapchainParameters{}, errors.New("surface reported no formats")
	}

	params := swapchainParameters{
		ImageCount:  support.Capabilities.MinImageCount,
		Format:      support.Formats[0],
		Extent:      support.Capabilities.CurrentExtent,
		SharingMode: core1_0.SharingModeExclusive,
	}

	if params.ImageCount < minSwapchainImages {
		params.ImageCount = minSwapchainImages
	}

	if params.Extent.Width == -1 {
		params.Extent = drawable
	}

	if !families.DualPurpose() {
		params.SharingMode = core1_0.SharingModeConcurrent
		params.QueueFamilyIndices = []int{families.Graphics, families.Present}
	}

	return params, nil
}

// Swapchain is the presentable image chain and one view per image.
type Swapchain struct {
	Handle     khr_swapchain.Swapchain
	Format     core1_0.Format
	Extent     core1_0.Extent2D
	Images     []core1_0.Image
	ImageViews []core1_0.ImageView
}

func createSwapchain(
	device core1_0.CoreDeviceDriver,
	swapchainExtension khr_swapchain.ExtensionDriver,
	surface khr_surface.Surface,
	support SurfaceSupport,
	drawable core1_0.Extent2D,
	families QueueFamilies,
	log logrus.FieldLogger,
) (*Swapchain, error) {
	params, err := chooseSwapchainParameters(support, drawable, families)
	if err != nil {
		return nil, err
	}

	handle, _, err := swapchainExtension.CreateSwapchain(nil, khr_swapchain.SwapchainCreateInfo{
		Surface: surface,

		MinImageCount:    params.ImageCount,
		ImageFormat:      params.Format.Format,
		ImageColorSpace:  params.Format.ColorSpace,
		ImageExtent:      params.Extent,
		ImageArrayLayers: 1,
		ImageUsage:       core1_0.ImageUsageColorAttachment,

		ImageSharingMode:   params.SharingMode,
		QueueFamilyIndices: params.QueueFamilyIndices,

		PreTransform:   khr_surface.TransformIdentity,
		CompositeAlpha: khr_surface.CompositeAlphaOpaque,
		PresentMode:    khr_surface.PresentModeFIFO,
		Clipped:        true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create swapchain")
	}

	swapchain := &Swapchain{
		Handle: handle,
		Format: params.Format.Format,
		Extent: params.Extent,
	}

	swapchain.Images, _, err = swapchainExtension.GetSwapchainImages(handle)
	if err != nil {
		swapchain.destroy(device, swapchainExtension)
		return nil, errors.Wrap(err, "failed to get swapchain images")
	}

	for _, image := range swapchain.Images {
		view, _, err := device.CreateImageView(nil, core1_0.ImageViewCreateInfo{
			Image:    image,
			ViewType: core1_0.ImageViewType2D,
			Format:   swapchain.Format,
			SubresourceRange: core1_0.ImageSubresourceRange{
				AspectMask:     core1_0.ImageAspectColor,
				BaseMipLevel:   0,
				LevelCount:     1,
				BaseArrayLayer: 0,
				LayerCount:     1,
			},
		})
		if err != nil {
			swapchain.destroy(device, swapchainExtension)
			return nil, errors.Wrap(err, "failed to create swapchain image view")
		}
		swapchain.ImageViews = append(swapchain.ImageViews, view)
	}

	log.WithFields(logrus.Fields{
		"images": len(swapchain.Images),
		"format": swapchain.Format.String(),
		"width":  swapchain.Extent.Width,
		"height": swapchain.Extent.Height,
	}).Debug("Created swapchain")
	return swapchain, nil
}

func (s *Swapchain) destroy(device core1_0.CoreDeviceDriver, swapchainExtension khr_swapchain.ExtensionDriver) {
	for _, view := range s.ImageViews {
		device.DestroyImageView(view, nil)
	}
	s.ImageViews = nil

	if s.Handle.Initialized() {
		swapchainExtension.DestroySwapchain(s.Handle, nil)
		s.Handle = khr_swapchain.Swapchain{}
	}
	s.Images = nil
}
