// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package shaders

import (
	"log"
	"os"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gviegas/glemu/driver"
	"github.com/gviegas/glemu/driver/gl"
	"github.com/gviegas/glemu/internal/fakegl"
)

var (
	tGL  = fakegl.New()
	tDrv = gl.New(tGL, gl.Config{})
	tGPU driver.GPU
)

func TestMain(m *testing.M) {
	var err error
	if tGPU, err = tDrv.Open(); err != nil {
		log.Fatalf("fatal: Driver.Open failed: %v", err)
	}
	c := m.Run()
	tDrv.Close()
	os.Exit(c)
}

// tSurface is a driver.Surface that counts buffer swaps.
type tSurface struct {
	w, h  int
	swaps int
}

func (s *tSurface) Width() int   { return s.w }
func (s *tSurface) Height() int  { return s.h }
func (s *tSurface) SwapBuffers() { s.swaps++ }

// tView creates a 2D image and a view of it or fails
// the test.
func tView(t *testing.T, w, h int) driver.ImageView {
	t.Helper()
	m, err := tGPU.NewImage(driver.RGBA8un, driver.Dim3D{Width: w, Height: h}, 1, 1, 1, driver.UShaderSample|driver.URenderTarget)
	if err != nil {
		t.Fatalf("tGPU.NewImage\nhave %v\nwant nil", err)
	}
	v, err := m.NewView(driver.IView2D, 0, 1, 0, 1)
	if err != nil {
		t.Fatalf("Image.NewView\nhave %v\nwant nil", err)
	}
	t.Cleanup(func() {
		v.Destroy()
		m.Destroy()
	})
	return v
}

func TestUVTransform(t *testing.T) {
	cases := [...]struct {
		r         Rect
		size      driver.Dim3D
		flip      bool
		p0, p1    mgl32.Vec2
		want0, w1 mgl32.Vec2
	}{
		{Rect{0, 0, 32, 16}, driver.Dim3D{Width: 32, Height: 16}, false, mgl32.Vec2{0, 0}, mgl32.Vec2{1, 1}, mgl32.Vec2{0, 0}, mgl32.Vec2{1, 1}},
		{Rect{8, 4, 16, 8}, driver.Dim3D{Width: 32, Height: 16}, false, mgl32.Vec2{0, 0}, mgl32.Vec2{1, 1}, mgl32.Vec2{0.25, 0.25}, mgl32.Vec2{0.75, 0.75}},
		{Rect{0, 0, 32, 16}, driver.Dim3D{Width: 32, Height: 16}, true, mgl32.Vec2{0, 0}, mgl32.Vec2{1, 1}, mgl32.Vec2{0, 1}, mgl32.Vec2{1, 0}},
		{Rect{8, 4, 16, 8}, driver.Dim3D{Width: 32, Height: 16}, true, mgl32.Vec2{0, 0}, mgl32.Vec2{1, 1}, mgl32.Vec2{0.25, 0.75}, mgl32.Vec2{0.75, 0.25}},
	}
	for _, c := range cases {
		m := UVTransform(c.r, c.size, c.flip)
		for _, x := range [2][2]mgl32.Vec2{{c.p0, c.want0}, {c.p1, c.w1}} {
			have := m.Mul4x1(x[0].Vec4(0, 1)).Vec2()
			if !have.ApproxEqual(x[1]) {
				t.Errorf("UVTransform(%v, %v, %t) * %v\nhave %v\nwant %v", c.r, c.size, c.flip, x[0], have, x[1])
			}
		}
	}
	if n := len(floatBytes(make([]float32, 16)...)); n != 64 {
		t.Errorf("floatBytes(16 floats)\nhave %d bytes\nwant 64", n)
	}
}

func TestBlit(t *testing.T) {
	for _, flip := range [2]bool{false, true} {
		newFn := NewBlit
		if flip {
			newFn = NewFlip
		}
		b, err := newFn(tGPU, driver.RGBA8un)
		if err != nil {
			t.Fatalf("NewBlit/NewFlip\nhave %v\nwant nil", err)
		}
		src := tView(t, 32, 16)
		dst := tView(t, 64, 64)
		fb, err := b.NewFB(dst, 64, 64)
		if err != nil {
			t.Fatalf("Blit.NewFB\nhave %v\nwant nil", err)
		}
		cb, err := tGPU.NewCmdBuffer()
		if err != nil {
			t.Fatalf("tGPU.NewCmdBuffer\nhave %v\nwant nil", err)
		}
		cb.Begin()
		tGL.Reset()
		vp := driver.Viewport{Width: 64, Height: 64}
		if err := b.Record(cb, fb, vp, src, driver.Dim3D{Width: 32, Height: 16}, Rect{0, 0, 32, 16}, true); err != nil {
			t.Fatalf("Blit.Record\nhave %v\nwant nil", err)
		}
		if len(tGL.Draws) != 1 {
			t.Fatalf("Blit.Record: draws\nhave %d\nwant 1", len(tGL.Draws))
		}
		if d := tGL.Draws[0]; d.Count != 3 || d.Instances != 1 || d.Program == 0 || d.FB == 0 {
			t.Errorf("Blit.Record: draw\nhave %+v\nwant 3 vertices into a framebuffer", d)
		}
		if err := cb.End(); err != nil {
			t.Errorf("cb.End()\nhave %v\nwant nil", err)
		}
		cb.Destroy()
		fb.Destroy()
		b.Destroy()
	}
}

func TestClear(t *testing.T) {
	sf := &tSurface{w: 320, h: 240}
	sc, err := tGPU.(driver.Presenter).NewSwapchain(sf, 2)
	if err != nil {
		t.Fatalf("NewSwapchain\nhave %v\nwant nil", err)
	}
	defer sc.Destroy()
	c, err := NewClear(tGPU, sc.Format())
	if err != nil {
		t.Fatalf("NewClear\nhave %v\nwant nil", err)
	}
	defer c.Destroy()
	fb, err := c.NewFB(sc.Views()[0], 320, 240)
	if err != nil {
		t.Fatalf("Clear.NewFB\nhave %v\nwant nil", err)
	}
	defer fb.Destroy()
	cb, _ := tGPU.NewCmdBuffer()
	defer cb.Destroy()
	cb.Begin()
	tGL.Reset()
	if err := c.Record(cb, fb, driver.Viewport{X: 10, Y: 10, Width: 100, Height: 50}, [4]float32{1, 0, 1, 1}); err != nil {
		t.Fatalf("Clear.Record\nhave %v\nwant nil", err)
	}
	if len(tGL.Draws) != 1 || tGL.Draws[0].FB != 0 {
		t.Errorf("Clear.Record (swapchain)\nhave %+v\nwant one draw into framebuffer 0", tGL.Draws)
	}
	// The pass loads the target.
	if len(tGL.Clears) != 0 {
		t.Errorf("Clear.Record: native clears\nhave %d\nwant 0", len(tGL.Clears))
	}
	cb.End()
}

func TestFrames(t *testing.T) {
	sf := &tSurface{w: 64, h: 64}
	sc, err := tGPU.(driver.Presenter).NewSwapchain(sf, 2)
	if err != nil {
		t.Fatalf("NewSwapchain\nhave %v\nwant nil", err)
	}
	defer sc.Destroy()
	f, err := NewFrames(tGPU, sc)
	if err != nil {
		t.Fatalf("NewFrames\nhave %v\nwant nil", err)
	}
	defer f.Destroy()

	calls := 0
	draw := func(cb driver.CmdBuffer, view int) error {
		if view != 0 {
			t.Errorf("DrawFrame: view\nhave %d\nwant 0", view)
		}
		calls++
		return nil
	}
	for i := 1; i <= 3; i++ {
		if i == 3 {
			// Resizing requires the swapchain to be recreated.
			sf.w, sf.h = 128, 96
		}
		if err := f.DrawFrame(draw); err != nil {
			t.Fatalf("DrawFrame #%d\nhave %v\nwant nil", i, err)
		}
		if calls != i || sf.swaps != i {
			t.Fatalf("DrawFrame #%d\nhave %d calls, %d swaps\nwant %d, %d", i, calls, sf.swaps, i, i)
		}
	}

	// Failed frames still release the view.
	errFrame := errors.New("frame failed")
	if err := f.DrawFrame(func(driver.CmdBuffer, int) error { return errFrame }); err != errFrame {
		t.Errorf("DrawFrame (failure)\nhave %v\nwant %v", err, errFrame)
	}
	if err := f.DrawFrame(draw); err != nil {
		t.Errorf("DrawFrame (after failure)\nhave %v\nwant nil", err)
	}
}
