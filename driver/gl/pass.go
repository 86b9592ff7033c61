// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"github.com/cockroachdb/errors"

	"github.com/gviegas/glemu/driver"
)

// renderPass implements driver.RenderPass.
type renderPass struct {
	d   *Driver
	att []driver.Attachment
	sub []driver.Subpass
	// Color attachment point of each attachment, or
	// -1 for depth/stencil attachments.
	color []int
}

// NewRenderPass creates a new render pass.
func (d *Driver) NewRenderPass(att []driver.Attachment, sub []driver.Subpass) (driver.RenderPass, error) {
	if len(sub) == 0 {
		return nil, errors.New("gl: render pass has no subpasses")
	}
	rp := &renderPass{
		d:     d,
		att:   append([]driver.Attachment(nil), att...),
		sub:   make([]driver.Subpass, len(sub)),
		color: make([]int, len(att)),
	}
	nc := 0
	for i := range att {
		if att[i].Format.IsDS() {
			rp.color[i] = -1
			continue
		}
		rp.color[i] = nc
		nc++
	}
	if d.lim.MaxColorTargets > 0 && nc > d.lim.MaxColorTargets {
		return nil, errors.Newf("gl: render pass has %d color attachments (max %d)", nc, d.lim.MaxColorTargets)
	}
	for i, s := range sub {
		for _, c := range s.Color {
			if c < 0 || c >= len(att) || rp.color[c] < 0 {
				return nil, errors.Newf("gl: subpass %d refers to invalid color attachment %d", i, c)
			}
		}
		for _, c := range s.MSR {
			if c < 0 || c >= len(att) || rp.color[c] < 0 {
				return nil, errors.Newf("gl: subpass %d refers to invalid resolve attachment %d", i, c)
			}
		}
		if s.DS >= len(att) || (s.DS >= 0 && rp.color[s.DS] >= 0) {
			return nil, errors.Newf("gl: subpass %d refers to invalid depth/stencil attachment %d", i, s.DS)
		}
		rp.sub[i] = driver.Subpass{
			Color: append([]int(nil), s.Color...),
			DS:    s.DS,
			MSR:   append([]int(nil), s.MSR...),
			Wait:  s.Wait,
		}
	}
	return rp, nil
}

// drawBuffers returns the draw buffers of subpass i.
func (rp *renderPass) drawBuffers(i int) []uint32 {
	s := &rp.sub[i]
	bufs := make([]uint32, len(s.Color))
	for j, c := range s.Color {
		bufs[j] = uint32(COLOR_ATTACHMENT0 + rp.color[c])
	}
	if len(bufs) == 0 {
		bufs = append(bufs, NONE)
	}
	return bufs
}

// Destroy destroys the render pass.
func (rp *renderPass) Destroy() {
	if rp != nil {
		*rp = renderPass{}
	}
}

// framebuf implements driver.Framebuf.
type framebuf struct {
	rp     *renderPass
	views  []*imageView
	width  int
	height int
	layers int
	fb     uint32
	// Whether fb is the default framebuffer.
	def bool
}

// NewFB creates a new framebuffer.
// A framebuffer whose color target is a swapchain view
// renders to the default framebuffer.
func (rp *renderPass) NewFB(iv []driver.ImageView, width, height, layers int) (driver.Framebuf, error) {
	if len(iv) != len(rp.att) {
		return nil, errors.Newf("gl: framebuffer has %d views, render pass has %d attachments", len(iv), len(rp.att))
	}
	f := &framebuf{
		rp:     rp,
		views:  make([]*imageView, len(iv)),
		width:  width,
		height: height,
		layers: max(layers, 1),
	}
	for i := range iv {
		v, ok := iv[i].(*imageView)
		if !ok || v == nil || v.m == nil {
			return nil, errors.Newf("gl: invalid view for attachment %d", i)
		}
		f.views[i] = v
		if v.m.swapchain {
			f.def = true
		}
	}
	if f.def {
		if len(iv) > 1 {
			rp.d.val.report(SevWarning, "NewFB: attachments other than the swapchain view are ignored")
		}
		return f, nil
	}
	n := rp.d.n
	f.fb = n.CreateFramebuffer()
	for i, v := range f.views {
		att := uint32(COLOR_ATTACHMENT0 + rp.color[i])
		if rp.color[i] < 0 {
			att, _ = dsAttachment(v.m.pf)
		}
		n.NamedFramebufferTexture(f.fb, att, v.tex, 0)
	}
	n.NamedFramebufferDrawBuffers(f.fb, rp.drawBuffers(0))
	if rp.d.val.on {
		if st := n.CheckNamedFramebufferStatus(f.fb, DRAW_FRAMEBUFFER); st != FRAMEBUFFER_COMPLETE {
			rp.d.val.report(SevError, "NewFB: %s", FramebufferStatus(st))
		}
	}
	return f, nil
}

// Destroy destroys the framebuffer.
func (f *framebuf) Destroy() {
	if f == nil || f.rp == nil {
		return
	}
	if f.fb != 0 {
		f.rp.d.n.DeleteFramebuffer(f.fb)
	}
	*f = framebuf{}
}
