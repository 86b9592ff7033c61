// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package shaders

import (
	"github.com/gviegas/glemu/driver"
)

// Blit copies image regions by drawing a textured
// full-screen triangle.
// Unlike driver.CmdBuffer.BlitImage, it can read from any
// sampleable view and write into any render target,
// including swapchain views.
type Blit struct {
	program
	ds   driver.DescSet
	splr [2]driver.Sampler
	flip bool
}

// NewBlit creates a Blit that writes into targets of
// format pf.
func NewBlit(gpu driver.GPU, pf driver.PixelFmt) (*Blit, error) {
	return newBlit(gpu, pf, false)
}

// NewFlip creates a Blit that also reverses the vertical
// axis of the source.
func NewFlip(gpu driver.GPU, pf driver.PixelFmt) (*Blit, error) {
	return newBlit(gpu, pf, true)
}

func newBlit(gpu driver.GPU, pf driver.PixelFmt, flip bool) (_ *Blit, err error) {
	p, err := newProgram(gpu, pf, fullVert, blitFrag)
	if err != nil {
		return nil, err
	}
	b := &Blit{program: *p, flip: flip}
	defer func() {
		if err != nil {
			b.Destroy()
		}
	}()
	b.ds, err = gpu.NewDescSet([]driver.Descriptor{{
		Type:   driver.DTexture,
		Stages: driver.SFragment,
		Nr:     0,
	}})
	if err != nil {
		return nil, err
	}
	for i, f := range [2]driver.Filter{driver.FNearest, driver.FLinear} {
		b.splr[i], err = gpu.NewSampler(&driver.Sampling{
			Min:    f,
			Mag:    f,
			Mipmap: driver.FNearest,
			AddrU:  driver.AClamp,
			AddrV:  driver.AClamp,
			AddrW:  driver.AClamp,
			MaxLOD: 0.25,
		})
		if err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Record records commands that copy the region r of src,
// whose extent is size, into the viewport vp of fb.
// fb must have been created by b.NewFB.
// It must be called outside of a render pass.
func (b *Blit) Record(cb driver.CmdBuffer, fb driver.Framebuf, vp driver.Viewport, src driver.ImageView, size driver.Dim3D, r Rect, linear bool) error {
	splr := b.splr[0]
	if linear {
		splr = b.splr[1]
	}
	b.ds.SetImage(0, 0, []driver.ImageView{src}, []driver.Sampler{splr})
	m := UVTransform(r, size, b.flip)
	return b.record(cb, fb, vp, floatBytes(m[:]...), b.ds)
}

// Destroy destroys the Blit.
func (b *Blit) Destroy() {
	for _, s := range b.splr {
		if s != nil {
			s.Destroy()
		}
	}
	if b.ds != nil {
		b.ds.Destroy()
	}
	b.program.destroy()
	*b = Blit{}
}
