// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package driver_test

import (
	"log"
	"time"

	"github.com/gviegas/glemu/driver"
)

const triVert = `#version 450 core
layout(LAYOUT_ID(0, 0)) uniform Xform {
	mat4 m;
} xform;
layout(location = 0) in vec3 position;
layout(location = 1) in vec4 color;
layout(location = 0) out vec4 vertColor;
void main() {
	vertColor = color;
	gl_Position = xform.m * vec4(position, 1.0);
}
`

const triFrag = `#version 450 core
layout(location = 0) in vec4 vertColor;
layout(location = 0) out vec4 fragColor;
void main() {
	fragColor = vertColor;
}
`

// Example_draw renders a triangle and reads the result
// back into CPU memory.
func Example_draw() {
	// Create an image resource and a 2D image view
	// to use as render target.
	pf := driver.RGBA8un
	dim := driver.Dim3D{
		Width:  256,
		Height: 256,
	}
	img, err := gpu.NewImage(pf, dim, 1, 1, 1, driver.URenderTarget)
	if err != nil {
		log.Fatal(err)
	}
	defer img.Destroy()
	view, err := img.NewView(driver.IView2D, 0, 1, 0, 1)
	if err != nil {
		log.Fatal(err)
	}
	defer view.Destroy()

	// Create a device-local buffer to store vertex
	// and constant data. Constants must be aligned
	// to 256 bytes.
	const bsz = (triPosSize+triColSize+255)&^255 + 256
	buf, err := gpu.NewBuffer(bsz, driver.MDeviceLocal, driver.UVertexData|driver.UShaderConst)
	if err != nil {
		log.Fatal(err)
	}
	defer buf.Destroy()

	// Staging buffers are used to copy data from/to
	// device-local memory.
	rdbk, err := gpu.NewBuffer(int64(dim.Width*dim.Height*4), driver.MHostVisible|driver.MHostRead, driver.UGeneric)
	if err != nil {
		log.Fatal(err)
	}
	defer rdbk.Destroy()
	upld, err := gpu.NewBuffer(bsz, driver.MHostVisible|driver.MHostCoherent, driver.UGeneric)
	if err != nil {
		log.Fatal(err)
	}
	defer upld.Destroy()

	if err := upld.Write(0, bytesOf(&triPos)); err != nil {
		log.Fatal(err)
	}
	if err := upld.Write(triPosSize, bytesOf(&triCol)); err != nil {
		log.Fatal(err)
	}
	if err := upld.Write(bsz-256, bytesOf(&triM)); err != nil {
		log.Fatal(err)
	}

	// Shader code is GLSL source. Descriptors are
	// referred to by set and binding.
	vs, err := gpu.NewShaderCode(driver.SVertex, []byte(triVert))
	if err != nil {
		log.Fatal(err)
	}
	defer vs.Destroy()
	fs, err := gpu.NewShaderCode(driver.SFragment, []byte(triFrag))
	if err != nil {
		log.Fatal(err)
	}
	defer fs.Destroy()

	// A single descriptor set holds the transform.
	ds, err := gpu.NewDescSet([]driver.Descriptor{{
		Type:   driver.DConstant,
		Stages: driver.SVertex,
		Nr:     0,
		Len:    1,
	}})
	if err != nil {
		log.Fatal(err)
	}
	defer ds.Destroy()
	ds.SetBuffer(0, 0, []driver.Buffer{buf}, []int64{bsz - 256}, []int64{triMSize})

	// The render pass clears the target and stores
	// the contents at the end, since we want to copy
	// them to CPU memory afterwards.
	pass, err := gpu.NewRenderPass(
		[]driver.Attachment{{
			Format:  pf,
			Samples: 1,
			Load:    [2]driver.LoadOp{driver.LClear, driver.LDontCare},
			Store:   [2]driver.StoreOp{driver.SStore, driver.SDontCare},
		}},
		[]driver.Subpass{{Color: []int{0}, DS: -1}},
	)
	if err != nil {
		log.Fatal(err)
	}
	defer pass.Destroy()
	fb, err := pass.NewFB([]driver.ImageView{view}, dim.Width, dim.Height, 1)
	if err != nil {
		log.Fatal(err)
	}
	defer fb.Destroy()

	// Create a graphics pipeline.
	pl, err := gpu.NewPipeline(&driver.GraphState{
		VertFunc: driver.ShaderFunc{Code: vs, Name: "main"},
		FragFunc: driver.ShaderFunc{Code: fs, Name: "main"},
		Input: []driver.VertexIn{
			{
				Format: driver.Float32x3,
				Stride: 4 * 3,
				Nr:     0,
			},
			{
				Format: driver.Float32x4,
				Stride: 4 * 4,
				Nr:     1,
			},
		},
		Topology: driver.TTriangle,
		Raster: driver.RasterState{
			Clockwise: false,
			Cull:      driver.CBack,
			Fill:      driver.FFill,
			LineWidth: 1,
		},
		Samples: 1,
		DS:      driver.DSState{DepthCmp: driver.CAlways},
		Blend: driver.BlendState{
			Color: []driver.ColorBlend{{
				Blend:     true,
				WriteMask: driver.CAll,
				Op:        [2]driver.BlendOp{driver.BRevSubtract, driver.BAdd},
				SrcFac:    [2]driver.BlendFac{driver.BBlendColor, driver.BOne},
				DstFac:    [2]driver.BlendFac{driver.BDstColor, driver.BZero},
			}},
		},
		Viewport: driver.Viewport{
			Width:  float32(dim.Width),
			Height: float32(dim.Height),
			Zfar:   1,
		},
		Scissor: driver.Scissor{
			Width:  dim.Width,
			Height: dim.Height,
		},
		Dynamic: driver.DynBlendColor,
		Pass:    pass,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer gpu.DestroyPipeline(pl)

	// Create a command buffer and record commands.
	// First we upload the vertices and constants
	// from host-visible to device-local memory.
	// We then record a render pass that draws the
	// triangle. Finally, we copy the rendered image
	// into the readback buffer.
	cb, err := gpu.NewCmdBuffer()
	if err != nil {
		log.Fatal(err)
	}
	defer cb.Destroy()

	// Begin must be called before recording any
	// commands in the command buffer.
	if err = cb.Begin(); err != nil {
		log.Fatal(err)
	}

	cb.CopyBuffer(&driver.BufferCopy{
		From: upld,
		To:   buf,
		Size: bsz,
	})

	// This barrier ensures that the following
	// render pass sees the above copy's results.
	cb.Barrier([]driver.Barrier{{
		SyncBefore:   driver.SCopy,
		SyncAfter:    driver.SVertexInput | driver.SVertexShading,
		AccessBefore: driver.ACopyWrite,
		AccessAfter:  driver.AVertexBufRead | driver.AShaderRead,
	}})

	cb.BeginPass(pass, fb, []driver.ClearValue{{Color: [4]float32{1, 1, 1, 1}}})
	if err := cb.SetPipeline(pl); err != nil {
		log.Fatal(err)
	}
	cb.SetBlendColor(0.25, 0.5, 0.75, 0)
	cb.SetVertexBuf(0, []driver.Buffer{buf, buf}, []int64{0, triPosSize})
	cb.SetDescSet(0, []driver.DescSet{ds}, nil)
	if err := cb.Draw(3, 1, 0, 0); err != nil {
		log.Fatal(err)
	}
	cb.EndPass()

	cb.Barrier([]driver.Barrier{{
		SyncBefore:   driver.SColorOutput,
		SyncAfter:    driver.SCopy,
		AccessBefore: driver.AColorWrite,
		AccessAfter:  driver.ACopyRead,
	}})

	err = cb.CopyImgToBuf(&driver.BufImgCopy{
		Buf:    rdbk,
		Stride: [2]int64{int64(dim.Width), int64(dim.Height)},
		Img:    img,
		Size:   dim,
	})
	if err != nil {
		log.Fatal(err)
	}

	// End must be called before submitting the
	// command buffer.
	if err = cb.End(); err != nil {
		log.Fatal(err)
	}

	// The fence is signaled once the commands have
	// completed. Only then the readback buffer holds
	// the rendered image.
	fence, err := gpu.NewFence(false)
	if err != nil {
		log.Fatal(err)
	}
	defer fence.Destroy()
	if err = gpu.Submit([]driver.CmdBuffer{cb}, fence); err != nil {
		log.Fatal(err)
	}
	if err = gpu.WaitFences([]driver.Fence{fence}, true, time.Second); err != nil {
		log.Fatal(err)
	}

	// The image uses a 8 bits per channel RGBA format
	// and the data is tightly packed.
	pix := make([]byte, rdbk.Cap())
	if err = rdbk.Read(0, pix); err != nil {
		log.Fatal(err)
	}
	log.Printf("read %d bytes of %v image", len(pix), dim)
}
