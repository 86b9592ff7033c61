// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"github.com/cockroachdb/errors"

	"github.com/gviegas/glemu/driver"
)

// cmdState is the state of a command buffer.
type cmdState int

const (
	cmdInitial cmdState = iota
	cmdRecording
	cmdStopped
)

// boundSet is a descriptor set bound to a command buffer.
type boundSet struct {
	ds     *descSet
	dynOff []int64
}

// vertexBuf is a vertex buffer binding.
type vertexBuf struct {
	buf driver.Buffer
	off int64
}

// cmdBuffer implements driver.CmdBuffer.
// Commands execute on the context as they are recorded.
type cmdBuffer struct {
	d     *Driver
	state cmdState

	// Render pass.
	inPass  bool
	pass    *renderPass
	fb      *framebuf
	subpass int

	// Bound pipeline. It is resolved through the pipeline
	// table on every use.
	pipeID driver.PipelineID
	// Number of color buffers configured by the last
	// graphics pipeline.
	nblend int

	sets []boundSet

	vbuf   []vertexBuf
	vdirty bool
	// Enabled vertex attributes.
	attrs []uint32
	ibuf  driver.Buffer
	ioff  int64
	ifmt  driver.IndexFmt

	view viewState
	// View state before the last openMasks call.
	saved viewState
	dyn   dynState

	// Active query.
	query    *queryPool
	queryIdx int
}

// NewCmdBuffer creates a new command buffer.
func (d *Driver) NewCmdBuffer() (driver.CmdBuffer, error) {
	return &cmdBuffer{d: d}, nil
}

// recording reports whether c is recording.
func (c *cmdBuffer) recording(call string) bool {
	if c.state == cmdRecording {
		return true
	}
	c.d.val.report(SevError, "%s: command buffer is not recording", call)
	return false
}

// errNotRecording is returned by commands recorded outside
// of Begin/End.
var errNotRecording = errors.New("gl: command buffer is not recording")

// Begin prepares the command buffer for recording.
func (c *cmdBuffer) Begin() error {
	if c.state == cmdRecording {
		return errors.New("gl: command buffer is already recording")
	}
	c.reset()
	c.state = cmdRecording
	return nil
}

// reset unbinds every piece of state.
func (c *cmdBuffer) reset() {
	if c.pipeID != 0 {
		c.ClearBoundPipeline()
	}
	c.inPass = false
	c.pass = nil
	c.fb = nil
	c.subpass = 0
	c.sets = c.sets[:0]
	c.vbuf = c.vbuf[:0]
	c.vdirty = false
	c.ibuf = nil
	c.ioff = 0
	c.view = viewState{}
	c.dyn = dynState{}
	c.query = nil
}

// End ends command recording.
func (c *cmdBuffer) End() error {
	if c.state != cmdRecording {
		return errNotRecording
	}
	if c.inPass {
		return errors.New("gl: End called inside a render pass")
	}
	if c.query != nil {
		return errors.New("gl: End called with an active query")
	}
	c.state = cmdStopped
	return nil
}

// Reset discards recorded commands.
func (c *cmdBuffer) Reset() error {
	c.reset()
	c.state = cmdInitial
	return nil
}

// Destroy destroys the command buffer.
func (c *cmdBuffer) Destroy() {
	if c == nil || c.d == nil {
		return
	}
	if c.pipeID != 0 {
		c.ClearBoundPipeline()
	}
	*c = cmdBuffer{}
}

// BeginPass begins the first subpass of pass.
// Attachments whose load operation is LClear are cleared
// through framebuffers that target exactly the attached
// subresources.
func (c *cmdBuffer) BeginPass(pass driver.RenderPass, fb driver.Framebuf, clear []driver.ClearValue) {
	if !c.recording("BeginPass") {
		return
	}
	if c.inPass {
		c.d.val.report(SevError, "BeginPass: already inside a render pass")
		return
	}
	rp := pass.(*renderPass)
	f := fb.(*framebuf)
	if f.rp != rp {
		c.d.val.report(SevWarning, "BeginPass: framebuffer was created for another render pass")
	}
	c.inPass = true
	c.pass = rp
	c.fb = f
	c.subpass = 0
	c.d.n.BindFramebuffer(FRAMEBUFFER, f.fb)

	opened := false
	for i, v := range f.views {
		if f.def && !v.m.swapchain {
			continue
		}
		a := &rp.att[i]
		color := a.Load[0] == driver.LClear
		depth, stencil := false, false
		if a.Format.IsDS() {
			_, buf := dsAttachment(a.Format)
			depth = buf != STENCIL && a.Load[0] == driver.LClear
			stencil = buf != DEPTH && a.Load[1] == driver.LClear
			color = false
		}
		if !color && !depth && !stencil {
			continue
		}
		if i >= len(clear) {
			c.d.val.report(SevError, "BeginPass: no clear value for attachment %d", i)
			continue
		}
		if !opened {
			c.openMasks()
			opened = true
		}
		v.m.clearRange(v.layer, min(v.layers, f.layers), v.level, clear[i], depth, stencil)
	}
	if opened {
		c.restore()
	}
	if !f.def {
		c.d.n.NamedFramebufferDrawBuffers(f.fb, rp.drawBuffers(0))
	}
	c.d.val.check(c.d.n, "BeginPass")
}

// NextSubpass begins the next subpass.
func (c *cmdBuffer) NextSubpass() {
	if !c.recording("NextSubpass") {
		return
	}
	if !c.inPass || c.subpass+1 >= len(c.pass.sub) {
		c.d.val.report(SevError, "NextSubpass: no next subpass")
		return
	}
	c.resolveSubpass()
	c.subpass++
	if !c.fb.def {
		c.d.n.NamedFramebufferDrawBuffers(c.fb.fb, c.pass.drawBuffers(c.subpass))
	}
}

// EndPass ends the current render pass.
// Clears happen at BeginPass and stores need no action,
// so only multisample resolves are performed.
func (c *cmdBuffer) EndPass() {
	if !c.recording("EndPass") {
		return
	}
	if !c.inPass {
		c.d.val.report(SevError, "EndPass: not inside a render pass")
		return
	}
	c.resolveSubpass()
	c.inPass = false
	c.pass = nil
	c.fb = nil
	c.subpass = 0
}

// resolveSubpass resolves the color attachments of the
// current subpass into its resolve attachments.
func (c *cmdBuffer) resolveSubpass() {
	s := &c.pass.sub[c.subpass]
	if len(s.MSR) == 0 || c.fb.def {
		return
	}
	n := c.d.n
	scissor := c.view.scissorOn
	if scissor {
		n.Disable(SCISSOR_TEST)
	}
	for i, src := range s.Color {
		if i >= len(s.MSR) {
			break
		}
		sv, dv := c.fb.views[src], c.fb.views[s.MSR[i]]
		sf := sv.m.subFramebuffer(sv.layer, 1, sv.level, 1)
		df := dv.m.subFramebuffer(dv.layer, 1, dv.level, 1)
		ext := mipExtent(sv.m.size, sv.level)
		r := [2]int32{int32(min(ext.Width, c.fb.width)), int32(min(ext.Height, c.fb.height))}
		n.BlitNamedFramebuffer(sf.fb, df.fb, [2]int32{}, r, [2]int32{}, r, COLOR_BUFFER_BIT, NEAREST)
	}
	if scissor {
		n.Enable(SCISSOR_TEST)
	}
	c.d.val.check(n, "resolve")
}

// SetPipeline binds a pipeline and reapplies all of its
// static state.
// Descriptor sets bound earlier are rebound to the new
// pipeline's binding points.
func (c *cmdBuffer) SetPipeline(id driver.PipelineID) error {
	if !c.recording("SetPipeline") {
		return errNotRecording
	}
	p, ok := c.d.pipeline(id)
	if !ok {
		return errors.Mark(errors.Newf("gl: stale or invalid pipeline %#x", uint64(id)), driver.ErrPipeline)
	}
	if c.pipeID != 0 {
		c.disableAttribs()
	}
	c.pipeID = id
	c.d.n.UseProgram(p.prog)
	if p.graph != nil {
		c.dyn.writeSet = [faceCount]bool{}
		c.applyStatic(p.graph)
		c.vdirty = true
	}
	c.rebindSets(p)
	c.d.val.check(c.d.n, "SetPipeline")
	return nil
}

// ClearBoundPipeline unbinds the current pipeline.
// Vertex attributes enabled for the pipeline are disabled.
func (c *cmdBuffer) ClearBoundPipeline() {
	c.disableAttribs()
	c.pipeID = 0
	c.d.n.UseProgram(0)
}

// bound resolves the bound pipeline.
// It fails when no pipeline is bound and when the bound
// pipeline has been destroyed since SetPipeline.
func (c *cmdBuffer) bound() (*pipeline, bool) {
	if c.pipeID == 0 {
		return nil, false
	}
	return c.d.pipeline(c.pipeID)
}

// boundPipeline is like bound but returns an error matching
// driver.ErrPipeline.
func (c *cmdBuffer) boundPipeline(call string) (*pipeline, error) {
	if c.state != cmdRecording {
		return nil, errNotRecording
	}
	if c.pipeID == 0 {
		return nil, errors.Mark(errors.Newf("gl: %s: no pipeline bound", call), driver.ErrPipeline)
	}
	p, ok := c.d.pipeline(c.pipeID)
	if !ok {
		return nil, errors.Mark(errors.Newf("gl: %s: bound pipeline %#x was destroyed", call, uint64(c.pipeID)), driver.ErrPipeline)
	}
	return p, nil
}

// disableAttribs disables every enabled vertex attribute.
func (c *cmdBuffer) disableAttribs() {
	for _, a := range c.attrs {
		c.d.n.DisableVertexAttribArray(a)
		c.d.n.VertexAttribDivisor(a, 0)
	}
	c.attrs = c.attrs[:0]
	c.vdirty = true
}

// SetDescSet binds descriptor sets starting at set index
// start.
func (c *cmdBuffer) SetDescSet(start int, ds []driver.DescSet, dynOff []int64) {
	if !c.recording("SetDescSet") {
		return
	}
	for i := range ds {
		set := start + i
		for len(c.sets) <= set {
			c.sets = append(c.sets, boundSet{})
		}
		s, ok := ds[i].(*descSet)
		if !ok || s == nil {
			c.sets[set] = boundSet{}
			continue
		}
		nd := 0
		for j := range s.desc {
			if s.desc[j].typ == driver.DDynConstant {
				nd += len(s.desc[j].bufs)
			}
		}
		if nd > len(dynOff) {
			c.d.val.report(SevError, "SetDescSet: set %d needs %d dynamic offsets, %d remain", set, nd, len(dynOff))
			nd = len(dynOff)
		}
		c.sets[set] = boundSet{ds: s, dynOff: append([]int64(nil), dynOff[:nd]...)}
		dynOff = dynOff[nd:]
		if p, ok := c.bound(); ok {
			c.bindSet(p, set, &c.sets[set])
		}
	}
	c.d.val.check(c.d.n, "SetDescSet")
}

// rebindSets binds every stored descriptor set to the
// binding points of p.
func (c *cmdBuffer) rebindSets(p *pipeline) {
	for i := range c.sets {
		if c.sets[i].ds != nil {
			c.bindSet(p, i, &c.sets[i])
		}
	}
}

// bindSet binds the descriptors of set to the binding
// points of p.
// Descriptors the pipeline does not use are skipped.
func (c *cmdBuffer) bindSet(p *pipeline, set int, bs *boundSet) {
	n := c.d.n
	dyn := bs.dynOff
	for di := range bs.ds.desc {
		desc := &bs.ds.desc[di]
		// Offsets are consumed per element, even when
		// the pipeline does not use the descriptor.
		var offs []int64
		if desc.typ == driver.DDynConstant {
			k := min(len(desc.bufs), len(dyn))
			offs, dyn = dyn[:k], dyn[k:]
		}
		bp, ok := p.table.Lookup(set, desc.nr)
		if !ok {
			continue
		}
		switch desc.typ {
		case driver.DTexture, driver.DArrayTexture:
			for j, e := range desc.imgs {
				unit := uint32(bp + j)
				if e.view == nil || e.view.m == nil {
					n.BindTextureUnit(unit, 0)
					n.BindSampler(unit, 0)
					continue
				}
				tex := e.view.tex
				if e.layer >= 0 {
					if desc.typ == driver.DTexture {
						c.d.val.report(SevError, "SetDescSet: layer %d selected for set %d binding %d, which cannot address layers", e.layer, set, desc.nr)
					} else {
						tex = e.view.layerTex(e.layer)
					}
				}
				n.BindTextureUnit(unit, tex)
				var splr uint32
				if e.splr != nil {
					splr = e.splr.splr
				}
				n.BindSampler(unit, splr)
			}
		default:
			target := uint32(UNIFORM_BUFFER)
			if desc.typ == driver.DBuffer {
				target = SHADER_STORAGE_BUFFER
			}
			for j, e := range desc.bufs {
				index := uint32(bp + j)
				var off int64
				if j < len(offs) {
					off = offs[j]
				}
				if e.buf == nil {
					n.BindBufferBase(target, index, 0)
					continue
				}
				h, boff, bsize, err := resolveBuffer(e.buf)
				if err != nil {
					c.d.val.report(SevError, "SetDescSet: set %d binding %d: %v", set, desc.nr, err)
					n.BindBufferBase(target, index, 0)
					continue
				}
				size := e.size
				if size <= 0 {
					size = bsize - e.off
				}
				if e.off+off < 0 || e.off+off+size > bsize {
					c.d.val.report(SevError, "SetDescSet: range [%d, %d) exceeds buffer size %d", e.off+off, e.off+off+size, bsize)
				}
				n.BindBufferRange(target, index, h.name, int(boff+e.off+off), int(size))
			}
		}
	}
}

// PushConstants updates push constant data.
func (c *cmdBuffer) PushConstants(off int, data []byte) {
	if !c.recording("PushConstants") {
		return
	}
	c.d.push.write(off, data)
}

// SetVertexBuf sets vertex buffers.
// Attributes are specified at draw time, when both the
// pipeline's input layout and the buffers are known.
func (c *cmdBuffer) SetVertexBuf(start int, buf []driver.Buffer, off []int64) {
	if !c.recording("SetVertexBuf") {
		return
	}
	for len(c.vbuf) < start+len(buf) {
		c.vbuf = append(c.vbuf, vertexBuf{})
	}
	for i := range buf {
		c.vbuf[start+i] = vertexBuf{buf: buf[i]}
		if i < len(off) {
			c.vbuf[start+i].off = off[i]
		}
	}
	c.vdirty = true
}

// flushVertexInput specifies vertex attributes from the
// inputs of g and the bound vertex buffers.
func (c *cmdBuffer) flushVertexInput(g *graphState) {
	if !c.vdirty {
		return
	}
	c.vdirty = false
	n := c.d.n
	for i := range g.input {
		in := &g.input[i]
		if i >= len(c.vbuf) || c.vbuf[i].buf == nil {
			c.d.val.report(SevError, "Draw: no vertex buffer for input %d", i)
			continue
		}
		h, boff, _, err := resolveBuffer(c.vbuf[i].buf)
		if err != nil {
			c.d.val.report(SevError, "Draw: vertex buffer %d: %v", i, err)
			continue
		}
		n.BindBuffer(ARRAY_BUFFER, h.name)
		off := int(boff + c.vbuf[i].off)
		if in.integer {
			n.VertexAttribIPointer(in.index, in.size, in.typ, in.stride, off)
		} else {
			n.VertexAttribPointer(in.index, in.size, in.typ, in.normalized, in.stride, off)
		}
		n.VertexAttribDivisor(in.index, in.divisor)
		if !c.attribEnabled(in.index) {
			n.EnableVertexAttribArray(in.index)
			c.attrs = append(c.attrs, in.index)
		}
	}
	n.BindBuffer(ARRAY_BUFFER, 0)
}

func (c *cmdBuffer) attribEnabled(index uint32) bool {
	for _, a := range c.attrs {
		if a == index {
			return true
		}
	}
	return false
}

// SetIndexBuf sets the index buffer.
func (c *cmdBuffer) SetIndexBuf(format driver.IndexFmt, buf driver.Buffer, off int64) {
	if !c.recording("SetIndexBuf") {
		return
	}
	c.ifmt = format
	c.ibuf = buf
	c.ioff = off
}

// graphics returns the bound graphics pipeline, or an error
// matching driver.ErrPipeline.
func (c *cmdBuffer) graphics(call string) (*graphState, error) {
	p, err := c.boundPipeline(call)
	if err != nil {
		return nil, err
	}
	if p.graph == nil {
		return nil, errors.Mark(errors.Newf("gl: %s: no graphics pipeline bound", call), driver.ErrPipeline)
	}
	return p.graph, nil
}

// Draw draws primitives.
func (c *cmdBuffer) Draw(vertCount, instCount, baseVert, baseInst int) error {
	g, err := c.graphics("Draw")
	if err != nil {
		return err
	}
	c.flushVertexInput(g)
	c.checkViewState("Draw")
	c.d.n.DrawArraysInstancedBaseInstance(g.topology, baseVert, vertCount, instCount, baseInst)
	c.d.val.check(c.d.n, "Draw")
	return nil
}

// DrawIndexed draws indexed primitives.
func (c *cmdBuffer) DrawIndexed(idxCount, instCount, baseIdx, vertOff, baseInst int) error {
	g, err := c.graphics("DrawIndexed")
	if err != nil {
		return err
	}
	if c.ibuf == nil {
		return errors.New("gl: DrawIndexed: no index buffer bound")
	}
	h, boff, _, err := resolveBuffer(c.ibuf)
	if err != nil {
		return err
	}
	c.flushVertexInput(g)
	c.checkViewState("DrawIndexed")
	n := c.d.n
	n.BindBuffer(ELEMENT_ARRAY_BUFFER, h.name)
	ptr := int(boff+c.ioff) + baseIdx*int(c.ifmt)
	n.DrawElementsInstancedBaseVertexBaseInstance(g.topology, idxCount, convIndexFmt(c.ifmt), ptr, instCount, vertOff, baseInst)
	c.d.val.check(n, "DrawIndexed")
	return nil
}

// Sizes of indirect command structures.
const (
	drawIndirectSize        = 16
	drawIndexedIndirectSize = 20
)

// indirectDraw validates an indirect draw and binds buf.
func (c *cmdBuffer) indirectDraw(call string, buf driver.Buffer, count, stride, tight int) (base int64, err error) {
	if count > 1 && stride != 0 && stride != tight {
		return 0, errors.Mark(errors.Newf("gl: %s with stride %d", call, stride), driver.ErrUnsupported)
	}
	h, boff, _, err := resolveBuffer(buf)
	if err != nil {
		return 0, err
	}
	c.d.n.BindBuffer(DRAW_INDIRECT_BUFFER, h.name)
	return boff, nil
}

// DrawIndirect draws primitives with parameters sourced
// from buf.
// Multiple draws must be tightly packed.
func (c *cmdBuffer) DrawIndirect(buf driver.Buffer, off int64, count, stride int) error {
	g, err := c.graphics("DrawIndirect")
	if err != nil {
		return err
	}
	base, err := c.indirectDraw("DrawIndirect", buf, count, stride, drawIndirectSize)
	if err != nil {
		return err
	}
	c.flushVertexInput(g)
	c.checkViewState("DrawIndirect")
	for i := range count {
		c.d.n.DrawArraysIndirect(g.topology, int(base+off)+i*drawIndirectSize)
	}
	c.d.n.BindBuffer(DRAW_INDIRECT_BUFFER, 0)
	c.d.val.check(c.d.n, "DrawIndirect")
	return nil
}

// DrawIndexedIndirect draws indexed primitives with
// parameters sourced from buf.
func (c *cmdBuffer) DrawIndexedIndirect(buf driver.Buffer, off int64, count, stride int) error {
	g, err := c.graphics("DrawIndexedIndirect")
	if err != nil {
		return err
	}
	if c.ibuf == nil {
		return errors.New("gl: DrawIndexedIndirect: no index buffer bound")
	}
	ih, ioff, _, err := resolveBuffer(c.ibuf)
	if err != nil {
		return err
	}
	base, err := c.indirectDraw("DrawIndexedIndirect", buf, count, stride, drawIndexedIndirectSize)
	if err != nil {
		return err
	}
	c.flushVertexInput(g)
	c.checkViewState("DrawIndexedIndirect")
	n := c.d.n
	n.BindBuffer(ELEMENT_ARRAY_BUFFER, ih.name)
	if ioff+c.ioff != 0 {
		c.d.val.report(SevWarning, "DrawIndexedIndirect: index buffer offset %d is ignored", ioff+c.ioff)
	}
	for i := range count {
		n.DrawElementsIndirect(g.topology, convIndexFmt(c.ifmt), int(base+off)+i*drawIndexedIndirectSize)
	}
	n.BindBuffer(DRAW_INDIRECT_BUFFER, 0)
	c.d.val.check(n, "DrawIndexedIndirect")
	return nil
}

// compute returns an error unless a compute pipeline is
// bound.
func (c *cmdBuffer) compute(call string) error {
	p, err := c.boundPipeline(call)
	if err != nil {
		return err
	}
	if p.graph != nil {
		return errors.Mark(errors.Newf("gl: %s: no compute pipeline bound", call), driver.ErrPipeline)
	}
	return nil
}

// Dispatch dispatches compute thread groups.
func (c *cmdBuffer) Dispatch(grpCountX, grpCountY, grpCountZ int) error {
	if err := c.compute("Dispatch"); err != nil {
		return err
	}
	c.d.n.DispatchCompute(uint32(grpCountX), uint32(grpCountY), uint32(grpCountZ))
	c.d.val.check(c.d.n, "Dispatch")
	return nil
}

// DispatchIndirect dispatches compute thread groups with
// parameters sourced from buf.
func (c *cmdBuffer) DispatchIndirect(buf driver.Buffer, off int64) error {
	if err := c.compute("DispatchIndirect"); err != nil {
		return err
	}
	h, boff, _, err := resolveBuffer(buf)
	if err != nil {
		return err
	}
	n := c.d.n
	n.BindBuffer(DISPATCH_INDIRECT_BUFFER, h.name)
	n.DispatchComputeIndirect(int(boff + off))
	n.BindBuffer(DISPATCH_INDIRECT_BUFFER, 0)
	c.d.val.check(n, "DispatchIndirect")
	return nil
}
