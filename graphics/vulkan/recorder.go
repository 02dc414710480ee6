package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
)

// Recording is one framebuffer and one pre-recorded command buffer per
// swapchain image. It is immutable until the swapchain is rebuilt.
type Recording struct {
	Framebuffers   []core1_0.Framebuffer
	CommandBuffers []core1_0.CommandBuffer
}

func checkFrameCounts(images, framebuffers, commandBuffers int) error {
	if images != framebuffers || images != commandBuffers {
		return errors.Newf("swapchain has %d images but %d framebuffers and %d command buffers",
			images, framebuffers, commandBuffers)
	}
	return nil
}

func clearValue() core1_0.ClearValueFloat {
	return core1_0.ClearValueFloat{ClearColor[0], ClearColor[1], ClearColor[2], ClearColor[3]}
}

func recordFrames(device core1_0.CoreDeviceDriver, pool core1_0.CommandPool, swapchain *Swapchain, pipeline *Pipeline, vertices *VertexBuffer) (*Recording, error) {
	recording := &Recording{}

	for _, imageView := range swapchain.ImageViews {
		framebuffer, _, err := device.CreateFramebuffer(nil, core1_0.FramebufferCreateInfo{
			RenderPass:  pipeline.RenderPass,
			Layers:      1,
			Attachments: []core1_0.ImageView{imageView},
			Width:       swapchain.Extent.Width,
			Height:      swapchain.Extent.Height,
		})
		if err != nil {
			recording.destroy(device)
			return nil, errors.Wrap(err, "failed to create framebuffer")
		}
		recording.Framebuffers = append(recording.Framebuffers, framebuffer)
	}

	buffers, _, err := device.AllocateCommandBuffers(core1_0.CommandBufferAllocateInfo{
		CommandPool:        pool,
		Level:              core1_0.CommandBufferLevelPrimary,
		CommandBufferCount: len(swapchain.Images),
	})
	if err != nil {
		recording.destroy(device)
		return nil, errors.Wrap(err, "failed to allocate command buffers")
	}
	recording.CommandBuffers = buffers

	if err := checkFrameCounts(len(swapchain.Images), len(recording.Framebuffers), len(recording.CommandBuffers)); err != nil {
		recording.destroy(device)
		return nil, err
	}

	for bufferIdx, buffer := range buffers {
		_, err = device.BeginCommandBuffer(buffer, core1_0.CommandBufferBeginInfo{})
		if err != nil {
			recording.destroy(device)
			return nil, errors.Wrap(err, "failed to begin command buffer")
		}

		err = device.CmdBeginRenderPass(buffer, core1_0.SubpassContentsInline,
			core1_0.RenderPassBeginInfo{
				RenderPass:  pipeline.RenderPass,
				Framebuffer: recording.Framebuffers[bufferIdx],
				RenderArea: core1_0.Rect2D{
					Offset: core1_0.Offset2D{X: 0, Y: 0},
					Extent: swapchain.Extent,
				},
				ClearValues: []core1_0.ClearValue{clearValue()},
			})
		if err != nil {
			recording.destroy(device)
			return nil, errors.Wrap(err, "failed to begin render pass")
		}

		device.CmdBindPipeline(buffer, core1_0.PipelineBindPointGraphics, pipeline.Handle)
		device.CmdBindVertexBuffers(buffer, 0, []core1_0.Buffer{vertices.Buffer}, []int{0})
		device.CmdDraw(buffer, vertices.Count, 1, 0, 0)
		device.CmdEndRenderPass(buffer)

		_, err = device.EndCommandBuffer(buffer)
		if err != nil {
			recording.destroy(device)
			return nil, errors.Wrap(err, "failed to record command buffer")
		}
	}

	return recording, nil
}

func (r *Recording) destroy(device core1_0.CoreDeviceDriver) {
	for _, framebuffer := range r.Framebuffers {
		device.DestroyFramebuffer(framebuffer, nil)
	}
	r.Framebuffers = nil

	if len(r.CommandBuffers) > 0 {
		device.FreeCommandBuffers(r.CommandBuffers...)
		r.CommandBuffers = nil
	}
}
