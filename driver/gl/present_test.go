// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"testing"

	"github.com/gviegas/glemu/driver"
)

// tSurface is a driver.Surface that counts buffer swaps.
type tSurface struct {
	w, h  int
	swaps int
}

func (s *tSurface) Width() int   { return s.w }
func (s *tSurface) Height() int  { return s.h }
func (s *tSurface) SwapBuffers() { s.swaps++ }

func TestSwapchain(t *testing.T) {
	if _, err := tDrv.NewSwapchain(nil, 2); !isError(err, driver.ErrWindow) {
		t.Errorf("tDrv.NewSwapchain(nil, 2)\nhave %v\nwant %v", err, driver.ErrWindow)
	}
	sf := &tSurface{w: 640, h: 480}
	sc, err := tDrv.NewSwapchain(sf, 2)
	if err != nil {
		t.Fatalf("tDrv.NewSwapchain\nhave %v\nwant nil", err)
	}
	defer sc.Destroy()
	if _, err := tDrv.NewSwapchain(sf, 2); !isError(err, driver.ErrWindow) {
		t.Errorf("tDrv.NewSwapchain (again)\nhave %v\nwant %v", err, driver.ErrWindow)
	}
	if f := sc.Format(); f != driver.RGBA8un {
		t.Errorf("sc.Format()\nhave %d\nwant %d", f, driver.RGBA8un)
	}
	views := sc.Views()
	if len(views) != 1 {
		t.Fatalf("sc.Views()\nhave %d views\nwant 1", len(views))
	}
	if m := views[0].Image().(*image); !m.swapchain || m.size.Width != 640 || m.size.Height != 480 {
		t.Errorf("sc.Views()[0].Image()\nhave %+v\nwant 640x480 swapchain image", m.size)
	}

	idx, err := sc.Next()
	if idx != 0 || err != nil {
		t.Fatalf("sc.Next()\nhave %d, %v\nwant 0, nil", idx, err)
	}
	if _, err := sc.Next(); err != driver.ErrNoBackbuffer {
		t.Errorf("sc.Next() (acquired)\nhave %v\nwant %v", err, driver.ErrNoBackbuffer)
	}
	if err := sc.Present(0); err != nil || sf.swaps != 1 {
		t.Errorf("sc.Present(0)\nhave %v, %d swaps\nwant nil, 1 swap", err, sf.swaps)
	}
	if err := sc.Present(0); err == nil {
		t.Error("sc.Present(0) (unacquired)\nhave nil\nwant error")
	}

	// Resizing the surface invalidates the swapchain.
	sf.w, sf.h = 800, 600
	if _, err := sc.Next(); !isError(err, driver.ErrSwapchain) {
		t.Errorf("sc.Next() (resized)\nhave %v\nwant %v", err, driver.ErrSwapchain)
	}
	if err := sc.Recreate(); err != nil {
		t.Fatalf("sc.Recreate()\nhave %v\nwant nil", err)
	}
	if m := sc.Views()[0].Image().(*image); m.size.Width != 800 || m.size.Height != 600 {
		t.Errorf("sc.Recreate(): image size\nhave %dx%d\nwant 800x600", m.size.Width, m.size.Height)
	}
	if idx, err := sc.Next(); idx != 0 || err != nil {
		t.Errorf("sc.Next() (recreated)\nhave %d, %v\nwant 0, nil", idx, err)
	}
	sc.Present(0)

	sc.Destroy()
	sc2, err := tDrv.NewSwapchain(sf, 2)
	if err != nil {
		t.Fatalf("tDrv.NewSwapchain (after Destroy)\nhave %v\nwant nil", err)
	}
	sc2.Destroy()
}

func TestSwapchainPass(t *testing.T) {
	sf := &tSurface{w: 320, h: 240}
	sc, err := tDrv.NewSwapchain(sf, 2)
	if err != nil {
		t.Fatalf("tDrv.NewSwapchain\nhave %v\nwant nil", err)
	}
	defer sc.Destroy()
	rp, err := tDrv.NewRenderPass(
		[]driver.Attachment{{Format: driver.RGBA8un, Samples: 1, Load: [2]driver.LoadOp{driver.LClear}}},
		[]driver.Subpass{{Color: []int{0}, DS: -1}},
	)
	if err != nil {
		t.Fatalf("tDrv.NewRenderPass\nhave %v\nwant nil", err)
	}
	defer rp.Destroy()
	fb, err := rp.NewFB(sc.Views(), 320, 240, 1)
	if err != nil {
		t.Fatalf("rp.NewFB\nhave %v\nwant nil", err)
	}
	defer fb.Destroy()
	if f := fb.(*framebuf); !f.def || f.fb != 0 {
		t.Errorf("rp.NewFB (swapchain view)\nhave def %t, fb %d\nwant true, 0", f.def, f.fb)
	}
	if _, err := sc.Views()[0].Image().NewView(driver.IView2D, 0, 1, 0, 1); err == nil {
		t.Error("NewView (swapchain image)\nhave nil\nwant error")
	}

	cb := tCmdBuffer(t)
	defer cb.Destroy()
	tGL.Reset()
	clr := []driver.ClearValue{{Color: [4]float32{0, 0, 1, 1}}}
	cb.BeginPass(rp, fb, clr)
	if len(tGL.Clears) != 1 || tGL.Clears[0].FB != 0 || tGL.Clears[0].Color != clr[0].Color {
		t.Errorf("cb.BeginPass (swapchain)\nhave %+v\nwant one clear of framebuffer 0", tGL.Clears)
	}
	if tGL.DrawFB != 0 {
		t.Errorf("cb.BeginPass (swapchain): draw framebuffer\nhave %d\nwant 0", tGL.DrawFB)
	}
	cb.EndPass()

	// Copies into the backbuffer blit to framebuffer zero.
	src := tImage(t, driver.RGBA8un, driver.Dim3D{Width: 320, Height: 240}, 1, 1, 1)
	defer src.Destroy()
	p := driver.ImageCopy{
		From:   src,
		To:     sc.Views()[0].Image(),
		Size:   driver.Dim3D{Width: 320, Height: 240},
		Layers: 1,
	}
	if err := cb.CopyImage(&p); err != nil {
		t.Fatalf("cb.CopyImage (into swapchain)\nhave %v\nwant nil", err)
	}
	if b := tGL.Blits[len(tGL.Blits)-1]; b.Dst != 0 || b.D1 != [2]int32{320, 240} {
		t.Errorf("cb.CopyImage (into swapchain)\nhave %+v\nwant blit into framebuffer 0", b)
	}
	if err := cb.End(); err != nil {
		t.Errorf("cb.End()\nhave %v\nwant nil", err)
	}
}
