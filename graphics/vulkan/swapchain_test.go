package vulkan

import (
	"reflect"
	"testing"

	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
)

func surfaceSupport(minImages int, current core1_0.Extent2D) SurfaceSupport {
	return SurfaceSupport{
		Capabilities: &khr_surface.SurfaceCapabilities{
			MinImageCount: minImages,
			MaxImageCount: 8,
			CurrentExtent: current,
		},
		Formats: []khr_surface.SurfaceFormat{
			{Format: core1_0.FormatB8G8R8A8UnsignedNormalized, ColorSpace: khr_surface.ColorSpaceSRGBNonlinear},
			{Format: core1_0.FormatB8G8R8A8SRGB, ColorSpace: khr_surface.ColorSpaceSRGBNonlinear},
		},
		PresentModes: []khr_surface.PresentMode{khr_surface.PresentModeFIFO},
	}
}

func TestChooseSwapchainParametersImageCount(t *testing.T) {
	drawable := core1_0.Extent2D{Width: 1280, Height: 720}
	for minImages, want := range map[int]int{0: 2, 1: 2, 2: 2, 3: 3} {
		params, err := chooseSwapchainParameters(surfaceSupport(minImages, drawable), drawable, QueueFamilies{})
		if err != nil {
			t.Fatalf("unexpected error: %+v", err)
		}
		if params.ImageCount != want {
			t.Errorf("min %d: image count = %d, want %d", minImages, params.ImageCount, want)
		}
	}
}

func TestChooseSwapchainParameters(t *testing.T) {
	drawable := core1_0.Extent2D{Width: 800, Height: 600}

	params, err := chooseSwapchainParameters(surfaceSupport(2, core1_0.Extent2D{Width: 1920, Height: 1080}), drawable, QueueFamilies{Graphics: 1, Present: 1})
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if params.Format.Format != core1_0.FormatB8G8R8A8UnsignedNormalized {
		t.Errorf("format = %s, want the first reported format", params.Format.Format)
	}
	if params.Extent != (core1_0.Extent2D{Width: 1920, Height: 1080}) {
		t.Errorf("extent = %+v, want the current extent", params.Extent)
	}
	if params.SharingMode != core1_0.SharingModeExclusive || params.QueueFamilyIndices != nil {
		t.Errorf("dual purpose queues should use exclusive sharing, got %v %v", params.SharingMode, params.QueueFamilyIndices)
	}

	params, err = chooseSwapchainParameters(surfaceSupport(2, core1_0.Extent2D{Width: -1, Height: -1}), drawable, QueueFamilies{Graphics: 0, Present: 2})
	if err != nil {
		t.Fatalf("unexpected error: %+v", err)
	}
	if params.Extent != drawable {
		t.Errorf("extent = %+v, want the drawable size", params.Extent)
	}
	if params.SharingMode != core1_0.SharingModeConcurrent || !reflect.DeepEqual(params.QueueFamilyIndices, []int{0, 2}) {
		t.Errorf("split queues should share concurrently, got %v %v", params.SharingMode, params.QueueFamilyIndices)
	}
}

func TestChooseSwapchainParametersNoFormats(t *testing.T) {
	support := surfaceSupport(2, core1_0.Extent2D{Width: 1, Height: 1})
	support.Formats = nil
	if _, err := chooseSwapchainParameters(support, core1_0.Extent2D{}, QueueFamilies{}); err == nil {
		t.Error("expected an error without formats")
	}
}
