// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"github.com/cockroachdb/errors"

	"github.com/gviegas/glemu/driver"
)

// swapchain implements driver.Swapchain.
// The context's default framebuffer is the only backbuffer,
// so the swapchain exposes a single view that framebuffers
// and copies resolve to framebuffer zero.
type swapchain struct {
	d        *Driver
	sf       driver.Surface
	img      *image
	view     *imageView
	acquired bool
}

// NewSwapchain creates a new swapchain.
// The surface must own the driver's context.
// imageCount is ignored.
func (d *Driver) NewSwapchain(sf driver.Surface, imageCount int) (driver.Swapchain, error) {
	if sf == nil {
		return nil, errors.Mark(errors.New("gl: nil surface"), driver.ErrWindow)
	}
	if d.sc != nil {
		return nil, errors.Mark(errors.New("gl: surface already has a swapchain"), driver.ErrWindow)
	}
	if imageCount > 1 {
		d.val.report(SevInfo, "NewSwapchain: %d images requested, the default framebuffer is double-buffered", imageCount)
	}
	s := &swapchain{d: d, sf: sf}
	s.init()
	d.sc = s
	return s, nil
}

func (s *swapchain) init() {
	s.img = &image{
		d:         s.d,
		target:    TEXTURE_2D,
		pf:        driver.RGBA8un,
		size:      driver.Dim3D{Width: s.sf.Width(), Height: s.sf.Height()},
		layers:    1,
		levels:    1,
		samples:   1,
		usg:       driver.URenderTarget | driver.UShaderRead,
		swapchain: true,
	}
	s.img.info, _ = convPixelFmt(driver.RGBA8un)
	s.view = &imageView{
		m:      s.img,
		target: TEXTURE_2D,
		layers: 1,
		levels: 1,
	}
	s.acquired = false
}

// Views returns the swapchain's single view.
func (s *swapchain) Views() []driver.ImageView { return []driver.ImageView{s.view} }

// Next acquires the backbuffer.
func (s *swapchain) Next() (int, error) {
	if s.acquired {
		return -1, driver.ErrNoBackbuffer
	}
	if w, h := s.sf.Width(), s.sf.Height(); w != s.img.size.Width || h != s.img.size.Height {
		return -1, errors.Mark(errors.Newf("gl: surface resized to %dx%d", w, h), driver.ErrSwapchain)
	}
	s.acquired = true
	return 0, nil
}

// Present swaps the surface's buffers.
func (s *swapchain) Present(index int) error {
	if index != 0 || !s.acquired {
		return errors.Newf("gl: Present of unacquired view %d", index)
	}
	s.sf.SwapBuffers()
	s.acquired = false
	return nil
}

// Recreate picks up the surface's current size.
// Views obtained earlier must not be used afterwards.
func (s *swapchain) Recreate() error {
	s.init()
	return nil
}

// Format returns RGBA8un.
func (s *swapchain) Format() driver.PixelFmt { return s.img.pf }

// Usage returns the usage of the swapchain's view.
func (s *swapchain) Usage() driver.Usage { return s.img.usg }

// Destroy destroys the swapchain.
func (s *swapchain) Destroy() {
	if s == nil || s.d == nil {
		return
	}
	if s.d.sc == s {
		s.d.sc = nil
	}
	*s = swapchain{}
}
