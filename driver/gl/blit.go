// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"encoding/binary"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gviegas/glemu/driver"
)

// Blitter shaders.
// A single triangle covers the viewport. The push constant
// block maps its [0, 1] square into the source rectangle.
const (
	blitVert = `#version 450 core
layout(push_constant) uniform Blit {
	mat4 uv;
} blit;
layout(location = 0) out vec2 texCoord;
void main() {
	vec2 p = vec2((gl_VertexID << 1) & 2, gl_VertexID & 2);
	texCoord = (blit.uv * vec4(p, 0.0, 1.0)).xy;
	gl_Position = vec4(p * 2.0 - 1.0, 0.0, 1.0);
}
`
	blitFrag = `#version 450 core
layout(LAYOUT_ID(0, 0)) uniform sampler2D src;
layout(location = 0) in vec2 texCoord;
layout(location = 0) out vec4 color;
void main() {
	color = texture(src, texCoord);
}
`
)

// blitter draws textured triangles to copy from images that
// cannot be attached to framebuffers, such as compressed
// ones.
type blitter struct {
	d    *Driver
	prog uint32
	unit uint32
	// Nearest and linear samplers.
	splr [2]uint32
}

// blitter returns the driver's blitter, building it on
// first use.
func (d *Driver) blitter() (*blitter, error) {
	if d.blit != nil {
		return d.blit, nil
	}
	codes := []*shaderCode{
		{stage: driver.SVertex, src: blitVert},
		{stage: driver.SFragment, src: blitFrag},
	}
	prog, table, err := d.link(codes)
	if err != nil {
		return nil, errors.Wrap(err, "gl: failed to build blitter")
	}
	unit, _ := table.Lookup(0, 0)
	b := &blitter{d: d, prog: prog, unit: uint32(unit)}
	for i, f := range [2]int32{NEAREST, LINEAR} {
		s := d.n.CreateSampler()
		d.n.SamplerParameteri(s, TEXTURE_MIN_FILTER, f)
		d.n.SamplerParameteri(s, TEXTURE_MAG_FILTER, f)
		d.n.SamplerParameteri(s, TEXTURE_WRAP_S, CLAMP_TO_EDGE)
		d.n.SamplerParameteri(s, TEXTURE_WRAP_T, CLAMP_TO_EDGE)
		b.splr[i] = s
	}
	d.blit = b
	return b, nil
}

func (b *blitter) destroy() {
	b.d.n.DeleteProgram(b.prog)
	for _, s := range b.splr {
		b.d.n.DeleteSampler(s)
	}
	*b = blitter{}
}

// uvTransform returns the matrix that maps the unit square
// into the rectangle [r0, r1) of an image of size ext,
// in normalized coordinates.
func uvTransform(r0, r1 [2]int, ext driver.Dim3D) mgl32.Mat4 {
	w, h := float32(ext.Width), float32(ext.Height)
	t := mgl32.Translate3D(float32(r0[0])/w, float32(r0[1])/h, 0)
	s := mgl32.Scale3D(float32(r1[0]-r0[0])/w, float32(r1[1]-r0[1])/h, 1)
	return t.Mul4(s)
}

// matBytes encodes m in std140 layout.
func matBytes(m mgl32.Mat4) []byte {
	b := make([]byte, 0, len(m)*4)
	for _, f := range m {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(f))
	}
	return b
}

// blitTex copies the rectangle [s0, s1) of src's layer and
// level to the rectangle [d0, d1) of dst's by drawing.
// The context state is restored afterwards.
func (c *cmdBuffer) blitTex(src *image, layer, level int, s0, s1 [2]int, dst *image, dlayer, dlevel int, d0, d1 [2]int, linear bool) error {
	if src.target == TEXTURE_3D || src.samples > 1 {
		return errors.Mark(errors.New("gl: drawing from 3D or multisample images"), driver.ErrUnsupported)
	}
	b, err := c.d.blitter()
	if err != nil {
		return err
	}
	n := c.d.n
	tex := n.GenTexture()
	n.TextureView(tex, TEXTURE_2D, src.tex, src.info.internal, level, 1, layer, 1)
	defer n.DeleteTexture(tex)

	saved := c.d.push.save()
	c.d.push.write(0, matBytes(uvTransform(s0, s1, mipExtent(src.size, level))))

	c.openMasks()
	c.disableAttribs()
	n.Disablei(BLEND, 0)
	n.Disable(DEPTH_TEST)
	n.Disable(STENCIL_TEST)
	n.Disable(CULL_FACE)
	n.Disable(POLYGON_OFFSET_FILL)
	n.PolygonMode(FRONT_AND_BACK, FILL)
	n.UseProgram(b.prog)
	n.BindTextureUnit(b.unit, tex)
	splr := b.splr[0]
	if linear {
		splr = b.splr[1]
	}
	n.BindSampler(b.unit, splr)
	df := dst.subFramebuffer(dlayer, 1, dlevel, 1)
	n.BindFramebuffer(FRAMEBUFFER, df.fb)
	c.applyViewport(driver.Viewport{
		X:      float32(d0[0]),
		Y:      float32(d0[1]),
		Width:  float32(d1[0] - d0[0]),
		Height: float32(d1[1] - d0[1]),
		Zfar:   1,
	})
	n.DrawArraysInstancedBaseInstance(TRIANGLES, 0, 3, 1, 0)
	c.d.val.check(n, "blit")

	c.d.push.restore(saved)
	c.restore()
	return nil
}
