package vulkan

import (
	"reflect"
	"testing"

	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_portability_subset"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

func TestQueueCreateInfos(t *testing.T) {
	dual := queueCreateInfos(QueueFamilies{Graphics: 2, Present: 2})
	if len(dual) != 1 {
		t.Fatalf("dual purpose family requested %d queues, want 1", len(dual))
	}
	if dual[0].QueueFamilyIndex != 2 || !reflect.DeepEqual(dual[0].QueuePriorities, []float32{1.0}) {
		t.Errorf("dual purpose request = %+v", dual[0])
	}

	split := queueCreateInfos(QueueFamilies{Graphics: 0, Present: 1})
	if len(split) != 2 {
		t.Fatalf("distinct families requested %d queues, want 2", len(split))
	}
	if split[0].QueueFamilyIndex != 0 || split[0].QueuePriorities[0] != 1.0 {
		t.Errorf("graphics request = %+v", split[0])
	}
	if split[1].QueueFamilyIndex != 1 || split[1].QueuePriorities[0] != 0.5 {
		t.Errorf("present request = %+v", split[1])
	}
}

func TestResolveQueues(t *testing.T) {
	var requested [][2]int
	getQueue := func(family, index int) core1_0.Queue {
		requested = append(requested, [2]int{family, index})
		return core1_0.Queue{}
	}

	queues := resolveQueues(QueueFamilies{Graphics: 3, Present: 3}, getQueue)
	if !queues.DualPurpose() {
		t.Error("queues from one family should be dual purpose")
	}
	if !reflect.DeepEqual(requested, [][2]int{{3, 0}}) {
		t.Errorf("dual purpose fetched %v", requested)
	}

	requested = nil
	queues = resolveQueues(QueueFamilies{Graphics: 0, Present: 1}, getQueue)
	if queues.DualPurpose() {
		t.Error("queues from two families should not be dual purpose")
	}
	if !reflect.DeepEqual(requested, [][2]int{{0, 0}, {1, 0}}) {
		t.Errorf("split fetched %v", requested)
	}
}

func TestDeviceExtensions(t *testing.T) {
	got := deviceExtensions(NewFeatureSet(khr_swapchain.ExtensionName))
	if !reflect.DeepEqual(got, []string{khr_swapchain.ExtensionName}) {
		t.Errorf("got %v", got)
	}

	got = deviceExtensions(NewFeatureSet(khr_swapchain.ExtensionName, khr_portability_subset.ExtensionName))
	if !reflect.DeepEqual(got, []string{khr_swapchain.ExtensionName, khr_portability_subset.ExtensionName}) {
		t.Errorf("got %v", got)
	}
}
