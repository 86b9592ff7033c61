// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"math"

	"github.com/gviegas/glemu/driver"
)

// viewState mirrors the viewport and scissor last applied
// to the context.
type viewState struct {
	vp        driver.Viewport
	sc        driver.Scissor
	scissorOn bool
}

// dynState holds values set by dynamic state commands.
// They are reapplied whenever the context state is
// rebuilt.
type dynState struct {
	// Dynamic states that were set.
	has       driver.Dynamic
	vp        driver.Viewport
	sc        driver.Scissor
	lineWidth float32
	biasValue float32
	biasSlope float32
	blend     [4]float32

	stencilRef uint32
	// Stencil write masks that override the pipeline's.
	// [0] is front and [1] is back.
	writeMask [2]uint32
	writeSet  [2]bool
}

const faceCount = 2

var faces = [faceCount]uint32{FRONT, BACK}

// applyViewport sets the viewport and depth range.
func (c *cmdBuffer) applyViewport(vp driver.Viewport) {
	c.d.n.Viewport(int32(vp.X), int32(vp.Y), int32(vp.Width), int32(vp.Height))
	c.d.n.DepthRangef(vp.Znear, vp.Zfar)
	c.view.vp = vp
}

// applyScissor sets the scissor rectangle.
// A zero rectangle disables the scissor test.
func (c *cmdBuffer) applyScissor(sc driver.Scissor) {
	if sc == (driver.Scissor{}) {
		c.d.n.Disable(SCISSOR_TEST)
		c.view.scissorOn = false
		c.view.sc = sc
		return
	}
	c.d.n.Enable(SCISSOR_TEST)
	c.d.n.Scissor(int32(sc.X), int32(sc.Y), int32(sc.Width), int32(sc.Height))
	c.view.scissorOn = true
	c.view.sc = sc
}

// applyDynamic reapplies the dynamic values in mask that
// have been set.
func (c *cmdBuffer) applyDynamic(mask driver.Dynamic) {
	n := c.d.n
	set := c.dyn.has & mask
	if set&driver.DynViewport != 0 {
		c.applyViewport(c.dyn.vp)
	}
	if set&driver.DynScissor != 0 {
		c.applyScissor(c.dyn.sc)
	}
	if set&driver.DynLineWidth != 0 {
		n.LineWidth(c.dyn.lineWidth)
	}
	if set&driver.DynDepthBias != 0 {
		n.PolygonOffset(c.dyn.biasSlope, c.dyn.biasValue)
	}
	if set&driver.DynBlendColor != 0 {
		b := &c.dyn.blend
		n.BlendColor(b[0], b[1], b[2], b[3])
	}
	for i, f := range faces {
		if c.dyn.writeSet[i] {
			n.StencilMaskSeparate(f, c.dyn.writeMask[i])
		}
	}
}

// applyStatic applies every piece of fixed-function state
// of g. State that g declares dynamic is taken from the
// values last set by commands.
// Nothing is assumed about the current context state, so
// no state of a previous pipeline survives.
func (c *cmdBuffer) applyStatic(g *graphState) {
	n := c.d.n

	for i := range g.blend {
		b := &g.blend[i]
		idx := uint32(i)
		if b.enable {
			n.Enablei(BLEND, idx)
		} else {
			n.Disablei(BLEND, idx)
		}
		n.BlendEquationSeparatei(idx, b.opRGB, b.opA)
		n.BlendFuncSeparatei(idx, b.srcRGB, b.dstRGB, b.srcA, b.dstA)
		n.ColorMaski(idx, b.r, b.g, b.b, b.a)
	}
	for i := len(g.blend); i < c.nblend; i++ {
		n.Disablei(BLEND, uint32(i))
		n.ColorMaski(uint32(i), true, true, true, true)
	}
	c.nblend = len(g.blend)

	if g.cull == NONE {
		n.Disable(CULL_FACE)
	} else {
		n.Enable(CULL_FACE)
		n.CullFace(g.cull)
	}
	n.FrontFace(g.front)
	n.PolygonMode(FRONT_AND_BACK, g.fill)
	if g.dynamic&driver.DynLineWidth == 0 {
		n.LineWidth(g.lineWidth)
	}
	if g.bias {
		n.Enable(POLYGON_OFFSET_FILL)
		n.Enable(POLYGON_OFFSET_LINE)
		if g.dynamic&driver.DynDepthBias == 0 {
			n.PolygonOffset(g.biasSlope, g.biasValue)
		}
	} else {
		n.Disable(POLYGON_OFFSET_FILL)
		n.Disable(POLYGON_OFFSET_LINE)
	}

	if g.dynamic&driver.DynViewport == 0 {
		c.applyViewport(g.viewport)
	}
	if g.dynamic&driver.DynScissor == 0 {
		c.applyScissor(g.scissor)
	}

	if g.depthTest {
		n.Enable(DEPTH_TEST)
	} else {
		n.Disable(DEPTH_TEST)
	}
	n.DepthFunc(g.depthFunc)
	n.DepthMask(g.depthWrite)

	if g.stencilTest {
		n.Enable(STENCIL_TEST)
	} else {
		n.Disable(STENCIL_TEST)
	}
	for i, f := range faces {
		s := &g.stencil[i]
		n.StencilFuncSeparate(f, s.fn, int32(c.dyn.stencilRef), s.readMask)
		n.StencilOpSeparate(f, s.sfail, s.dpfail, s.dppass)
		n.StencilMaskSeparate(f, s.writeMask)
	}

	c.applyDynamic(g.dynamic)
}

// openMasks disables the scissor test and enables writes
// to every color, depth and stencil bit, as required by
// clears and blits.
func (c *cmdBuffer) openMasks() {
	n := c.d.n
	c.saved = c.view
	n.Disable(SCISSOR_TEST)
	c.view.scissorOn = false
	for i := range max(c.nblend, c.d.lim.MaxColorTargets) {
		n.ColorMaski(uint32(i), true, true, true, true)
	}
	n.DepthMask(true)
	n.StencilMaskSeparate(FRONT_AND_BACK, math.MaxUint32)
}

// restore rebuilds the context state that commands rely on
// after it was disturbed by clears or blits.
func (c *cmdBuffer) restore() {
	n := c.d.n
	if c.inPass {
		n.BindFramebuffer(FRAMEBUFFER, c.fb.fb)
	} else {
		n.BindFramebuffer(FRAMEBUFFER, 0)
	}
	p, ok := c.bound()
	if !ok {
		n.UseProgram(0)
		if c.saved.scissorOn {
			c.applyScissor(c.saved.sc)
		}
		c.applyDynamic(^driver.Dynamic(0))
		return
	}
	n.UseProgram(p.prog)
	if p.graph != nil {
		c.applyStatic(p.graph)
	}
	c.rebindSets(p)
}

// checkViewState compares the context's viewport and
// scissor with the values last applied.
func (c *cmdBuffer) checkViewState(call string) {
	if !c.d.val.on {
		return
	}
	var v [4]int32
	c.d.n.GetIntegerv(VIEWPORT, v[:])
	vp := &c.view.vp
	if v != [4]int32{int32(vp.X), int32(vp.Y), int32(vp.Width), int32(vp.Height)} {
		c.d.val.report(SevError, "%s: viewport is %v, expected %v", call, v, *vp)
	}
	if on := c.d.n.IsEnabled(SCISSOR_TEST); on != c.view.scissorOn {
		c.d.val.report(SevError, "%s: scissor test is %t, expected %t", call, on, c.view.scissorOn)
		return
	}
	if c.view.scissorOn {
		c.d.n.GetIntegerv(SCISSOR_BOX, v[:])
		sc := &c.view.sc
		if v != [4]int32{int32(sc.X), int32(sc.Y), int32(sc.Width), int32(sc.Height)} {
			c.d.val.report(SevError, "%s: scissor is %v, expected %v", call, v, *sc)
		}
	}
}

// dynamic reports a warning when the bound pipeline does
// not declare st dynamic.
func (c *cmdBuffer) dynamic(call string, st driver.Dynamic) {
	if p, ok := c.bound(); ok && p.graph != nil && p.graph.dynamic&st == 0 {
		c.d.val.report(SevWarning, "%s: state is static in the bound pipeline", call)
	}
}

// SetViewport sets the viewport.
// Only the first viewport is used.
func (c *cmdBuffer) SetViewport(vp []driver.Viewport) {
	if !c.recording("SetViewport") || len(vp) == 0 {
		return
	}
	if len(vp) > 1 {
		c.d.val.report(SevWarning, "SetViewport: %d viewports given, only the first is used", len(vp))
	}
	c.dynamic("SetViewport", driver.DynViewport)
	c.dyn.vp = vp[0]
	c.dyn.has |= driver.DynViewport
	c.applyViewport(vp[0])
}

// SetScissor sets the scissor rectangle.
// Only the first rectangle is used.
func (c *cmdBuffer) SetScissor(sciss []driver.Scissor) {
	if !c.recording("SetScissor") || len(sciss) == 0 {
		return
	}
	if len(sciss) > 1 {
		c.d.val.report(SevWarning, "SetScissor: %d rectangles given, only the first is used", len(sciss))
	}
	c.dynamic("SetScissor", driver.DynScissor)
	c.dyn.sc = sciss[0]
	c.dyn.has |= driver.DynScissor
	c.applyScissor(sciss[0])
}

// SetLineWidth sets the line width.
func (c *cmdBuffer) SetLineWidth(w float32) {
	if !c.recording("SetLineWidth") {
		return
	}
	c.dynamic("SetLineWidth", driver.DynLineWidth)
	c.dyn.lineWidth = w
	c.dyn.has |= driver.DynLineWidth
	c.d.n.LineWidth(w)
}

// SetDepthBias sets the depth bias parameters.
// The clamp is not supported.
func (c *cmdBuffer) SetDepthBias(value, slope, clamp float32) {
	if !c.recording("SetDepthBias") {
		return
	}
	if clamp != 0 {
		c.d.val.report(SevWarning, "SetDepthBias: depth bias clamp is not supported")
	}
	c.dynamic("SetDepthBias", driver.DynDepthBias)
	c.dyn.biasValue = value
	c.dyn.biasSlope = slope
	c.dyn.has |= driver.DynDepthBias
	c.d.n.PolygonOffset(slope, value)
}

// SetBlendColor sets the constant blend color.
func (c *cmdBuffer) SetBlendColor(r, g, b, a float32) {
	if !c.recording("SetBlendColor") {
		return
	}
	c.dyn.blend = [4]float32{r, g, b, a}
	c.dyn.has |= driver.DynBlendColor
	c.d.n.BlendColor(r, g, b, a)
}

// SetStencilRef sets the stencil reference value.
func (c *cmdBuffer) SetStencilRef(value uint32) {
	if !c.recording("SetStencilRef") {
		return
	}
	c.dyn.stencilRef = value
	c.dyn.has |= driver.DynStencilRef
	p, ok := c.bound()
	if !ok || p.graph == nil {
		return
	}
	for i, f := range faces {
		s := &p.graph.stencil[i]
		c.d.n.StencilFuncSeparate(f, s.fn, int32(value), s.readMask)
	}
}

// SetStencilWriteMask sets the stencil write mask.
// It overrides the bound pipeline's mask until another
// pipeline is bound.
func (c *cmdBuffer) SetStencilWriteMask(front, back bool, mask uint32) {
	if !c.recording("SetStencilWriteMask") {
		return
	}
	for i, set := range [faceCount]bool{front, back} {
		if !set {
			continue
		}
		c.dyn.writeMask[i] = mask
		c.dyn.writeSet[i] = true
		c.d.n.StencilMaskSeparate(faces[i], mask)
	}
}
