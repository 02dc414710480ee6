package vulkan

import (
	"reflect"
	"testing"
)

func TestBytesToBytecode(t *testing.T) {
	got := bytesToBytecode([]byte{0x03, 0x02, 0x23, 0x07, 0x00, 0x00, 0x01, 0x00})
	if !reflect.DeepEqual(got, []uint32{0x07230203, 0x00010000}) {
		t.Errorf("got %#x", got)
	}
}

func TestVertexLayout(t *testing.T) {
	bindings := vertexBindingDescriptions()
	if len(bindings) != 1 || bindings[0].Stride != 12 {
		t.Errorf("bindings = %+v, want one binding with a 12 byte stride", bindings)
	}

	attributes := vertexAttributeDescriptions()
	if len(attributes) != 1 || attributes[0].Location != 0 || attributes[0].Offset != 0 {
		t.Errorf("attributes = %+v, want a single position attribute", attributes)
	}
}
