package vulkan

import (
	"bytes"
	"encoding/binary"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
)

// findMemoryType returns the first memory type allowed by typeFilter that
// has all the requested properties.
func findMemoryType(memProperties *core1_0.PhysicalDeviceMemoryProperties, typeFilter uint32, properties core1_0.MemoryPropertyFlags) (int, error) {
	for i, memoryType := range memProperties.MemoryTypes {
		typeBit := uint32(1 << i)

		if (typeFilter&typeBit) != 0 && (memoryType.PropertyFlags&properties) == properties {
			return i, nil
		}
	}

	return 0, errors.New("failed to find any suitable memory type")
}

func writeData(device core1_0.CoreDeviceDriver, memory core1_0.DeviceMemory, offset int, data any) error {
	bufferSize := binary.Size(data)

	memoryPtr, _, err := device.MapMemory(memory, offset, bufferSize, 0)
	if err != nil {
		return err
	}
	defer device.UnmapMemory(memory)

	dataBuffer := unsafe.Slice((*byte)(memoryPtr), bufferSize)

	buf := &bytes.Buffer{}
	err = binary.Write(buf, common.ByteOrder, data)
	if err != nil {
		return err
	}

	copy(dataBuffer, buf.Bytes())
	return nil
}

// VertexBuffer is a host visible buffer holding the scene's vertices.
type VertexBuffer struct {
	Buffer core1_0.Buffer
	Memory core1_0.DeviceMemory
	Count  int
}

func createVertexBuffer(device core1_0.CoreDeviceDriver, memProperties *core1_0.PhysicalDeviceMemoryProperties, vertices []Vertex) (*VertexBuffer, error) {
	size := binary.Size(vertices)
	if size <= 0 {
		return nil, errors.New("no vertices to upload")
	}

	vb := &VertexBuffer{Count: len(vertices)}

	var err error
	vb.Buffer, _, err = device.CreateBuffer(nil, core1_0.BufferCreateInfo{
		Size:        size,
		Usage:       core1_0.BufferUsageVertexBuffer,
		SharingMode: core1_0.SharingModeExclusive,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create vertex buffer")
	}

	memRequirements := device.GetBufferMemoryRequirements(vb.Buffer)
	memoryTypeIndex, err := findMemoryType(memProperties, memRequirements.MemoryTypeBits,
		core1_0.MemoryPropertyHostVisible|core1_0.MemoryPropertyHostCoherent)
	if err != nil {
		vb.destroy(device)
		return nil, err
	}

	vb.Memory, _, err = device.AllocateMemory(nil, core1_0.MemoryAllocateInfo{
		AllocationSize:  memRequirements.Size,
		MemoryTypeIndex: memoryTypeIndex,
	})
	if err != nil {
		vb.destroy(device)
		return nil, errors.Wrap(err, "failed to allocate vertex buffer memory")
	}

	_, err = device.BindBufferMemory(vb.Buffer, vb.Memory, 0)
	if err != nil {
		vb.destroy(device)
		return nil, errors.Wrap(err, "failed to bind vertex buffer memory")
	}

	err = writeData(device, vb.Memory, 0, vertices)
	if err != nil {
		vb.destroy(device)
		return nil, errors.Wrap(err, "failed to upload vertices")
	}

	return vb, nil
}

func (vb *VertexBuffer) destroy(device core1_0.CoreDeviceDriver) {
	if vb.Buffer.Initialized() {
		device.DestroyBuffer(vb.Buffer, nil)
		vb.Buffer = core1_0.Buffer{}
	}
	if vb.Memory.Initialized() {
		device.FreeMemory(vb.Memory, nil)
		vb.Memory = core1_0.DeviceMemory{}
	}
}
