package vulkan

import (
	"testing"

	"github.com/vkngwrapper/core/v3/core1_0"
)

func TestCheckFrameCounts(t *testing.T) {
	if err := checkFrameCounts(3, 3, 3); err != nil {
		t.Errorf("matching counts: %v", err)
	}
	if err := checkFrameCounts(3, 2, 3); err == nil {
		t.Error("expected an error for missing framebuffers")
	}
	if err := checkFrameCounts(2, 2, 3); err == nil {
		t.Error("expected an error for extra command buffers")
	}
}

func TestClearValueIsBlue(t *testing.T) {
	if got := clearValue(); got != (core1_0.ClearValueFloat{0, 0, 1, 1}) {
		t.Errorf("clear value = %v", got)
	}
}

func TestFindMemoryType(t *testing.T) {
	props := &core1_0.PhysicalDeviceMemoryProperties{
		MemoryTypes: []core1_0.MemoryType{
			{PropertyFlags: core1_0.MemoryPropertyDeviceLocal},
			{PropertyFlags: core1_0.MemoryPropertyHostVisible},
			{PropertyFlags: core1_0.MemoryPropertyHostVisible | core1_0.MemoryPropertyHostCoherent},
		},
	}
	want := core1_0.MemoryPropertyHostVisible | core1_0.MemoryPropertyHostCoherent

	if got, err := findMemoryType(props, 0b111, want); err != nil || got != 2 {
		t.Errorf("got %d, %v; want 2", got, err)
	}
	if _, err := findMemoryType(props, 0b011, want); err == nil {
		t.Error("expected an error when the filter excludes the only match")
	}
}
