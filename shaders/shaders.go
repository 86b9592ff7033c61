// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package shaders provides full-screen programs built on
// top of driver: blit, flip-y and clear.
// They are ordinary clients of a driver.GPU and record
// into caller-provided command buffers.
package shaders

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gviegas/glemu/driver"
)

// Every program draws a single triangle that covers the
// viewport. p is in the [0, 1] square over it.
const fullVert = `#version 450 core
layout(push_constant) uniform Xform {
	mat4 uv;
} xform;
layout(location = 0) out vec2 texCoord;
void main() {
	vec2 p = vec2((gl_VertexID << 1) & 2, gl_VertexID & 2);
	texCoord = (xform.uv * vec4(p, 0.0, 1.0)).xy;
	gl_Position = vec4(p * 2.0 - 1.0, 0.0, 1.0);
}
`

const blitFrag = `#version 450 core
layout(LAYOUT_ID(0, 0)) uniform sampler2D src;
layout(location = 0) in vec2 texCoord;
layout(location = 0) out vec4 color;
void main() {
	color = texture(src, texCoord);
}
`

const clearVert = `#version 450 core
void main() {
	vec2 p = vec2((gl_VertexID << 1) & 2, gl_VertexID & 2);
	gl_Position = vec4(p * 2.0 - 1.0, 0.0, 1.0);
}
`

const clearFrag = `#version 450 core
layout(push_constant) uniform Clear {
	vec4 color;
} clr;
layout(location = 0) out vec4 color;
void main() {
	color = clr.color;
}
`

// Rect is a rectangle in texel coordinates.
type Rect struct {
	X, Y, Width, Height int
}

// UVTransform returns the matrix that maps the unit square
// into r, normalized by the size of an image.
// If flip is set, the vertical axis is reversed first.
func UVTransform(r Rect, size driver.Dim3D, flip bool) mgl32.Mat4 {
	w, h := float32(size.Width), float32(max(size.Height, 1))
	m := mgl32.Translate3D(float32(r.X)/w, float32(r.Y)/h, 0).
		Mul4(mgl32.Scale3D(float32(r.Width)/w, float32(r.Height)/h, 1))
	if flip {
		m = m.Mul4(mgl32.Translate3D(0, 1, 0)).Mul4(mgl32.Scale3D(1, -1, 1))
	}
	return m
}

// floatBytes encodes f as little-endian float32 values.
func floatBytes(f ...float32) []byte {
	b := make([]byte, 0, len(f)*4)
	for _, x := range f {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(x))
	}
	return b
}

// program is the state shared by the full-screen programs.
type program struct {
	gpu  driver.GPU
	code []driver.ShaderCode
	pass driver.RenderPass
	pipe driver.PipelineID
}

// newProgram builds a single-target pipeline for pf from
// the given sources.
// The render pass loads the target, so programs can draw
// into part of it.
func newProgram(gpu driver.GPU, pf driver.PixelFmt, vert, frag string) (_ *program, err error) {
	p := &program{gpu: gpu}
	defer func() {
		if err != nil {
			p.destroy()
		}
	}()
	for _, x := range [2]struct {
		stage driver.Stage
		src   string
	}{{driver.SVertex, vert}, {driver.SFragment, frag}} {
		c, err := gpu.NewShaderCode(x.stage, []byte(x.src))
		if err != nil {
			return nil, err
		}
		p.code = append(p.code, c)
	}
	p.pass, err = gpu.NewRenderPass(
		[]driver.Attachment{{
			Format:  pf,
			Samples: 1,
			Load:    [2]driver.LoadOp{driver.LLoad, driver.LDontCare},
			Store:   [2]driver.StoreOp{driver.SStore, driver.SDontCare},
		}},
		[]driver.Subpass{{Color: []int{0}, DS: -1}},
	)
	if err != nil {
		return nil, err
	}
	p.pipe, err = gpu.NewPipeline(&driver.GraphState{
		VertFunc: driver.ShaderFunc{Code: p.code[0], Name: "main"},
		FragFunc: driver.ShaderFunc{Code: p.code[1], Name: "main"},
		Topology: driver.TTriangle,
		Raster:   driver.RasterState{Cull: driver.CNone, Fill: driver.FFill, LineWidth: 1},
		Samples:  1,
		DS:       driver.DSState{DepthCmp: driver.CAlways},
		Blend: driver.BlendState{Color: []driver.ColorBlend{{
			WriteMask: driver.CAll,
			Op:        [2]driver.BlendOp{driver.BAdd, driver.BAdd},
			SrcFac:    [2]driver.BlendFac{driver.BOne, driver.BOne},
			DstFac:    [2]driver.BlendFac{driver.BZero, driver.BZero},
		}}},
		Dynamic: driver.DynViewport,
		Pass:    p.pass,
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// NewFB creates a framebuffer for the program's render
// pass that targets view.
func (p *program) NewFB(view driver.ImageView, width, height int) (driver.Framebuf, error) {
	return p.pass.NewFB([]driver.ImageView{view}, width, height, 1)
}

// record draws the full-screen triangle into fb.
func (p *program) record(cb driver.CmdBuffer, fb driver.Framebuf, vp driver.Viewport, push []byte, ds driver.DescSet) error {
	cb.BeginPass(p.pass, fb, nil)
	defer cb.EndPass()
	if err := cb.SetPipeline(p.pipe); err != nil {
		return err
	}
	if vp.Zfar == 0 {
		vp.Zfar = 1
	}
	cb.SetViewport([]driver.Viewport{vp})
	if ds != nil {
		cb.SetDescSet(0, []driver.DescSet{ds}, nil)
	}
	cb.PushConstants(0, push)
	return cb.Draw(3, 1, 0, 0)
}

func (p *program) destroy() {
	if p.pipe != 0 {
		p.gpu.DestroyPipeline(p.pipe)
	}
	if p.pass != nil {
		p.pass.Destroy()
	}
	for _, c := range p.code {
		c.Destroy()
	}
	*p = program{}
}
