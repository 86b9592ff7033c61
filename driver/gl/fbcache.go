// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"github.com/gviegas/glemu/driver"
)

// subFB is a framebuffer that targets a subresource range
// of an image.
type subFB struct {
	layer, layers int
	level, levels int
	fb            uint32
	// Number of color attachments.
	ncolor int
}

// subFramebuffer returns a framebuffer whose attachments are
// the given subresource range of m.
// Framebuffers are created on first request and kept until
// the image is destroyed. Requests match by exact range.
// Only the base level is attached, since a framebuffer can
// render to a single level.
// Color images attach one layer per color attachment.
// Depth/stencil images attach the base layer only.
// The swapchain image resolves to the default framebuffer.
func (m *image) subFramebuffer(layer, layers, level, levels int) *subFB {
	if m.swapchain {
		return &subFB{layers: 1, levels: 1, ncolor: 1}
	}
	for _, s := range m.fbs {
		if s.layer == layer && s.layers == layers && s.level == level && s.levels == levels {
			return s
		}
	}
	n := m.d.n
	fb := n.CreateFramebuffer()
	s := &subFB{
		layer:  layer,
		layers: layers,
		level:  level,
		levels: levels,
		fb:     fb,
	}
	layered := m.target != TEXTURE_1D && m.target != TEXTURE_2D && m.target != TEXTURE_2D_MULTISAMPLE
	if m.pf.IsDS() {
		att, _ := dsAttachment(m.pf)
		if layered {
			n.NamedFramebufferTextureLayer(fb, att, m.tex, level, layer)
		} else {
			n.NamedFramebufferTexture(fb, att, m.tex, level)
		}
		n.NamedFramebufferDrawBuffers(fb, []uint32{NONE})
		n.NamedFramebufferReadBuffer(fb, NONE)
	} else {
		if !layered {
			layers = 1
		}
		if lim := m.d.lim.MaxColorTargets; lim > 0 && layers > lim {
			m.d.val.report(SevError, "framebuffer for layers [%d, %d) exceeds %d color attachments", layer, layer+layers, lim)
			layers = lim
		}
		bufs := make([]uint32, layers)
		for k := range layers {
			att := uint32(COLOR_ATTACHMENT0 + k)
			if layered {
				n.NamedFramebufferTextureLayer(fb, att, m.tex, level, layer+k)
			} else {
				n.NamedFramebufferTexture(fb, att, m.tex, level)
			}
			bufs[k] = att
		}
		n.NamedFramebufferDrawBuffers(fb, bufs)
		n.NamedFramebufferReadBuffer(fb, COLOR_ATTACHMENT0)
		s.ncolor = layers
	}
	if m.d.val.on {
		if st := n.CheckNamedFramebufferStatus(fb, DRAW_FRAMEBUFFER); st != FRAMEBUFFER_COMPLETE {
			m.d.val.report(SevError, "framebuffer for layers [%d, %d) level %d: %s", layer, layer+s.layers, level, FramebufferStatus(st))
		}
	}
	m.fbs = append(m.fbs, s)
	return s
}

// clearFB clears every attachment of s.
// For depth/stencil images, depth and stencil select the
// aspects to clear.
// The caller must have disabled the scissor test and opened
// every write mask.
func (m *image) clearFB(s *subFB, value driver.ClearValue, depth, stencil bool) {
	n := m.d.n
	if m.pf.IsDS() {
		_, buf := dsAttachment(m.pf)
		switch {
		case buf == DEPTH_STENCIL && depth && stencil:
			n.ClearNamedFramebufferfi(s.fb, DEPTH_STENCIL, 0, value.Depth, int32(value.Stencil))
		case buf != STENCIL && depth:
			n.ClearNamedFramebufferfv(s.fb, DEPTH, 0, [4]float32{value.Depth})
		case buf != DEPTH && stencil:
			n.ClearNamedFramebufferiv(s.fb, STENCIL, 0, int32(value.Stencil))
		}
		return
	}
	for i := range s.ncolor {
		n.ClearNamedFramebufferfv(s.fb, COLOR, i, value.Color)
	}
}

// clearRange clears layers [layer, layer+layers) of level.
// Layers of 3D images are depth slices.
// Color layers are cleared in batches of up to
// MaxColorTargets attachments. Depth/stencil layers are
// cleared one at a time.
func (m *image) clearRange(layer, layers, level int, value driver.ClearValue, depth, stencil bool) {
	step := 1
	if !m.pf.IsDS() {
		step = max(m.d.lim.MaxColorTargets, 1)
	}
	for l := layer; l < layer+layers; l += step {
		s := m.subFramebuffer(l, min(step, layer+layers-l), level, 1)
		m.clearFB(s, value, depth, stencil)
	}
}
