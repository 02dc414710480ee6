package vulkan

import (
	"path"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

const (
	vertexShader   = "vertex.spv"
	fragmentShader = "fragment.spv"
)

// viewportExtent is the size of the fixed viewport the scene is drawn into.
var viewportExtent = core1_0.Extent2D{Width: 1280, Height: 720}

func bytesToBytecode(b []byte) []uint32 {
	byteCode := make([]uint32, len(b)/4)
	for i := 0; i < len(byteCode); i++ {
		byteIndex := i * 4
		byteCode[i] = 0
		byteCode[i] |= uint32(b[byteIndex])
		byteCode[i] |= uint32(b[byteIndex+1]) << 8
		byteCode[i] |= uint32(b[byteIndex+2]) << 16
		byteCode[i] |= uint32(b[byteIndex+3]) << 24
	}

	return byteCode
}

func loadShader(name string) ([]uint32, error) {
	b, err := assets.ReadFile(path.Join("shaders", name))
	if err != nil {
		return nil, errors.Wrapf(err, "reading shader %s", name)
	}
	if len(b)%4 != 0 {
		return nil, errors.Newf("shader %s is not a whole number of words", name)
	}
	return bytesToBytecode(b), nil
}

func createShaderModule(device core1_0.CoreDeviceDriver, name string) (core1_0.ShaderModule, error) {
	code, err := loadShader(name)
	if err != nil {
		return core1_0.ShaderModule{}, err
	}

	module, _, err := device.CreateShaderModule(nil, core1_0.ShaderModuleCreateInfo{
		Code: code,
	})
	if err != nil {
		return core1_0.ShaderModule{}, errors.Wrapf(err, "failed to create shader module %s", name)
	}
	return module, nil
}

func vertexBindingDescriptions() []core1_0.VertexInputBindingDescription {
	v := Vertex{}
	return []core1_0.VertexInputBindingDescription{
		{
			Binding:   0,
			Stride:    int(unsafe.Sizeof(v)),
			InputRate: core1_0.VertexInputRateVertex,
		},
	}
}

func vertexAttributeDescriptions() []core1_0.VertexInputAttributeDescription {
	v := Vertex{}
	return []core1_0.VertexInputAttributeDescription{
		{
			Binding:  0,
			Location: 0,
			Format:   core1_0.FormatR32G32B32SignedFloat,
			Offset:   int(unsafe.Offsetof(v.Position)),
		},
	}
}

// Pipeline is the render pass and the single graphics pipeline drawn with
// it.
type Pipeline struct {
	RenderPass core1_0.RenderPass
	Layout     core1_0.PipelineLayout
	Handle     core1_0.Pipeline
}

func createRenderPass(device core1_0.CoreDeviceDriver, format core1_0.Format) (core1_0.RenderPass, error) {
	renderPass, _, err := device.CreateRenderPass(nil, core1_0.RenderPassCreateInfo{
		Attachments: []core1_0.AttachmentDescription{
			{
				Format:         format,
				Samples:        core1_0.Samples1,
				LoadOp:         core1_0.AttachmentLoadOpClear,
				StoreOp:        core1_0.AttachmentStoreOpStore,
				StencilLoadOp:  core1_0.AttachmentLoadOpDontCare,
				StencilStoreOp: core1_0.AttachmentStoreOpDontCare,
				InitialLayout:  core1_0.ImageLayoutUndefined,
				FinalLayout:    khr_swapchain.ImageLayoutPresentSrc,
			},
		},
		Subpasses: []core1_0.SubpassDescription{
			{
				PipelineBindPoint: core1_0.PipelineBindPointGraphics,
				ColorAttachments: []core1_0.AttachmentReference{
					{
						Attachment: 0,
						Layout:     core1_0.ImageLayoutColorAttachmentOptimal,
					},
				},
			},
		},
		SubpassDependencies: []core1_0.SubpassDependency{
			{
				SrcSubpass: core1_0.SubpassExternal,
				DstSubpass: 0,

				SrcStageMask:  core1_0.PipelineStageColorAttachmentOutput,
				SrcAccessMask: 0,

				DstStageMask:  core1_0.PipelineStageColorAttachmentOutput,
				DstAccessMask: core1_0.AccessColorAttachmentWrite,
			},
		},
	})
	if err != nil {
		return core1_0.RenderPass{}, errors.Wrap(err, "failed to create render pass")
	}
	return renderPass, nil
}

// createPipeline builds the render pass and pipeline for a swapchain of the
// given format and extent.
func createPipeline(device core1_0.CoreDeviceDriver, format core1_0.Format, extent core1_0.Extent2D) (*Pipeline, error) {
	pipeline := &Pipeline{}

	var err error
	pipeline.RenderPass, err = createRenderPass(device, format)
	if err != nil {
		return nil, err
	}

	vertShader, err := createShaderModule(device, vertexShader)
	if err != nil {
		pipeline.destroy(device)
		return nil, err
	}
	defer device.DestroyShaderModule(vertShader, nil)

	fragShader, err := createShaderModule(device, fragmentShader)
	if err != nil {
		pipeline.destroy(device)
		return nil, err
	}
	defer device.DestroyShaderModule(fragShader, nil)

	pipeline.Layout, _, err = device.CreatePipelineLayout(nil, core1_0.PipelineLayoutCreateInfo{})
	if err != nil {
		pipeline.destroy(device)
		return nil, errors.Wrap(err, "failed to create pipeline layout")
	}

	pipelines, _, err := device.CreateGraphicsPipelines(nil, nil,
		core1_0.GraphicsPipelineCreateInfo{
			Stages: []core1_0.PipelineShaderStageCreateInfo{
				{
					Stage:  core1_0.StageVertex,
					Module: vertShader,
					Name:   "main",
				},
				{
					Stage:  core1_0.StageFragment,
					Module: fragShader,
					Name:   "main",
				},
			},
			VertexInputState: &core1_0.PipelineVertexInputStateCreateInfo{
				VertexBindingDescriptions:   vertexBindingDescriptions(),
				VertexAttributeDescriptions: vertexAttributeDescriptions(),
			},
			InputAssemblyState: &core1_0.PipelineInputAssemblyStateCreateInfo{
				Topology:               core1_0.PrimitiveTopologyTriangleList,
				PrimitiveRestartEnable: false,
			},
			ViewportState: &core1_0.PipelineViewportStateCreateInfo{
				Viewports: []core1_0.Viewport{
					{
						X:        0,
						Y:        0,
						Width:    float32(viewportExtent.Width),
						Height:   float32(viewportExtent.Height),
						MinDepth: 0,
						MaxDepth: 1,
					},
				},
				Scissors: []core1_0.Rect2D{
					{
						Offset: core1_0.Offset2D{X: 0, Y: 0},
						Extent: extent,
					},
				},
			},
			RasterizationState: &core1_0.PipelineRasterizationStateCreateInfo{
				PolygonMode: core1_0.PolygonModeFill,
				CullMode:    core1_0.CullModeNone,
				FrontFace:   core1_0.FrontFaceCounterClockwise,
				LineWidth:   1.0,
			},
			MultisampleState: &core1_0.PipelineMultisampleStateCreateInfo{
				RasterizationSamples: core1_0.Samples1,
				MinSampleShading:     1.0,
			},
			ColorBlendState: &core1_0.PipelineColorBlendStateCreateInfo{
				LogicOp: core1_0.LogicOpCopy,
				Attachments: []core1_0.PipelineColorBlendAttachmentState{
					{
						BlendEnabled:   false,
						ColorWriteMask: core1_0.ColorComponentRed | core1_0.ColorComponentGreen | core1_0.ColorComponentBlue | core1_0.ColorComponentAlpha,
					},
				},
			},
			Layout:            pipeline.Layout,
			RenderPass:        pipeline.RenderPass,
			Subpass:           0,
			BasePipelineIndex: -1,
		},
	)
	if err != nil {
		pipeline.destroy(device)
		return nil, errors.Wrap(err, "failed to create graphics pipeline")
	}
	pipeline.Handle = pipelines[0]

	return pipeline, nil
}

func (p *Pipeline) destroy(device core1_0.CoreDeviceDriver) {
	if p.Handle.Initialized() {
		device.DestroyPipeline(p.Handle, nil)
		p.Handle = core1_0.Pipeline{}
	}

	if p.Layout.Initialized() {
		device.DestroyPipelineLayout(p.Layout, nil)
		p.Layout = core1_0.PipelineLayout{}
	}

	if p.RenderPass.Initialized() {
		device.DestroyRenderPass(p.RenderPass, nil)
		p.RenderPass = core1_0.RenderPass{}
	}
}
