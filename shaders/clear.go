// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package shaders

import (
	"github.com/gviegas/glemu/driver"
)

// Clear fills a viewport of a render target with a
// constant color.
type Clear struct {
	program
}

// NewClear creates a Clear for targets of format pf.
func NewClear(gpu driver.GPU, pf driver.PixelFmt) (*Clear, error) {
	p, err := newProgram(gpu, pf, clearVert, clearFrag)
	if err != nil {
		return nil, err
	}
	return &Clear{*p}, nil
}

// Record records commands that fill vp of fb with color.
func (c *Clear) Record(cb driver.CmdBuffer, fb driver.Framebuf, vp driver.Viewport, color [4]float32) error {
	return c.record(cb, fb, vp, floatBytes(color[:]...), nil)
}

// Destroy destroys the Clear.
func (c *Clear) Destroy() { c.program.destroy() }
