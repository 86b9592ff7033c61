// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"reflect"
	"testing"

	"github.com/gviegas/glemu/driver"
	"github.com/gviegas/glemu/internal/fakegl"
)

// tImage creates an image or fails the test.
func tImage(t *testing.T, pf driver.PixelFmt, size driver.Dim3D, layers, levels, samples int) *image {
	t.Helper()
	img, err := tDrv.NewImage(pf, size, layers, levels, samples, driver.URenderTarget|driver.UShaderSample)
	if err != nil {
		t.Fatalf("tDrv.NewImage(%d, %v, ...)\nhave %v\nwant nil", pf, size, err)
	}
	return img.(*image)
}

// tView creates an image view or fails the test.
func tView(t *testing.T, m *image, typ driver.ViewType, layer, layers, level, levels int) *imageView {
	t.Helper()
	v, err := m.NewView(typ, layer, layers, level, levels)
	if err != nil {
		t.Fatalf("image.NewView(%d, %d, %d, %d, %d)\nhave %v\nwant nil", typ, layer, layers, level, levels, err)
	}
	return v.(*imageView)
}

func TestSubFramebuffer(t *testing.T) {
	m := tImage(t, driver.RGBA8un, driver.Dim3D{Width: 16, Height: 16}, 4, 2, 1)
	tGL.Reset()

	s := m.subFramebuffer(2, 2, 0, 2)
	if n := tGL.Calls["CreateFramebuffer"]; n != 1 {
		t.Fatalf("m.subFramebuffer(2, 2, 0, 2): CreateFramebuffer calls\nhave %d\nwant 1", n)
	}
	fb := tGL.Framebuffers[s.fb]
	wantAtt := map[uint32]fakegl.Attachment{
		COLOR_ATTACHMENT0:     {Tex: m.tex, Level: 0, Layer: 2},
		COLOR_ATTACHMENT0 + 1: {Tex: m.tex, Level: 0, Layer: 3},
	}
	if !reflect.DeepEqual(fb.Att, wantAtt) {
		t.Errorf("m.subFramebuffer(2, 2, 0, 2): attachments\nhave %v\nwant %v", fb.Att, wantAtt)
	}
	if want := []uint32{COLOR_ATTACHMENT0, COLOR_ATTACHMENT0 + 1}; !reflect.DeepEqual(fb.DrawBufs, want) {
		t.Errorf("m.subFramebuffer(2, 2, 0, 2): draw buffers\nhave %v\nwant %v", fb.DrawBufs, want)
	}
	if s.ncolor != 2 {
		t.Errorf("m.subFramebuffer(2, 2, 0, 2): ncolor\nhave %d\nwant 2", s.ncolor)
	}

	// The same range yields the same framebuffer.
	if s2 := m.subFramebuffer(2, 2, 0, 2); s2 != s {
		t.Errorf("m.subFramebuffer(2, 2, 0, 2) (again)\nhave %p\nwant %p", s2, s)
	}
	if n := tGL.Calls["CreateFramebuffer"]; n != 1 {
		t.Errorf("m.subFramebuffer (again): CreateFramebuffer calls\nhave %d\nwant 1", n)
	}

	// A different range does not.
	s3 := m.subFramebuffer(2, 2, 1, 1)
	if s3 == s || s3.fb == s.fb {
		t.Errorf("m.subFramebuffer(2, 2, 1, 1)\nhave %d\nwant a new framebuffer", s3.fb)
	}
	if att := tGL.Framebuffers[s3.fb].Att[COLOR_ATTACHMENT0]; att.Level != 1 {
		t.Errorf("m.subFramebuffer(2, 2, 1, 1): level\nhave %d\nwant 1", att.Level)
	}

	m.Destroy()
	if n := tGL.Calls["DeleteFramebuffer"]; n != 2 {
		t.Errorf("m.Destroy(): DeleteFramebuffer calls\nhave %d\nwant 2", n)
	}
	for _, x := range [...]uint32{s.fb, s3.fb} {
		if _, ok := tGL.Framebuffers[x]; ok {
			t.Errorf("m.Destroy(): framebuffer %d\nhave live\nwant deleted", x)
		}
	}
}

func TestSubFramebufferDS(t *testing.T) {
	m := tImage(t, driver.D24unS8ui, driver.Dim3D{Width: 16, Height: 16}, 3, 1, 1)
	defer m.Destroy()
	s := m.subFramebuffer(1, 2, 0, 1)
	fb := tGL.Framebuffers[s.fb]
	want := map[uint32]fakegl.Attachment{
		DEPTH_STENCIL_ATTACHMENT: {Tex: m.tex, Level: 0, Layer: 1},
	}
	if !reflect.DeepEqual(fb.Att, want) {
		t.Errorf("m.subFramebuffer(1, 2, 0, 1): attachments\nhave %v\nwant %v", fb.Att, want)
	}
	if want := []uint32{NONE}; !reflect.DeepEqual(fb.DrawBufs, want) {
		t.Errorf("m.subFramebuffer(1, 2, 0, 1): draw buffers\nhave %v\nwant %v", fb.DrawBufs, want)
	}
	if s.ncolor != 0 {
		t.Errorf("m.subFramebuffer(1, 2, 0, 1): ncolor\nhave %d\nwant 0", s.ncolor)
	}
}

func TestClearImage(t *testing.T) {
	m := tImage(t, driver.RGBA8un, driver.Dim3D{Width: 16, Height: 16}, 4, 2, 1)
	defer m.Destroy()
	cb := tCmdBuffer(t)
	defer cb.Destroy()
	tGL.Reset()

	value := driver.ClearValue{Color: [4]float32{0.25, 0.5, 0.75, 1}}
	if err := cb.ClearImage(m, 2, 2, 0, 2, value); err != nil {
		t.Fatalf("cb.ClearImage\nhave %v\nwant nil", err)
	}
	// One framebuffer per level, two color attachments each.
	if n := tGL.Calls["CreateFramebuffer"]; n != 2 {
		t.Errorf("cb.ClearImage: CreateFramebuffer calls\nhave %d\nwant 2", n)
	}
	if n := len(tGL.Clears); n != 4 {
		t.Fatalf("cb.ClearImage: clears\nhave %d\nwant 4", n)
	}
	for i, c := range tGL.Clears {
		if c.Buffer != COLOR || c.DrawBuf != i%2 || c.Color != value.Color {
			t.Errorf("cb.ClearImage: clear %d\nhave %+v\nwant COLOR, draw buffer %d, %v", i, c, i%2, value.Color)
		}
	}
	if tGL.Caps[SCISSOR_TEST] || tGL.DrawFB != 0 {
		t.Errorf("cb.ClearImage: scissor %t, draw framebuffer %d\nwant false, 0", tGL.Caps[SCISSOR_TEST], tGL.DrawFB)
	}

	// Clearing the same range again reuses framebuffers.
	tGL.Reset()
	if err := cb.ClearImage(m, 2, 2, 0, 2, value); err != nil {
		t.Fatalf("cb.ClearImage (again)\nhave %v\nwant nil", err)
	}
	if n := tGL.Calls["CreateFramebuffer"]; n != 0 {
		t.Errorf("cb.ClearImage (again): CreateFramebuffer calls\nhave %d\nwant 0", n)
	}
	if n := len(tGL.Clears); n != 4 {
		t.Errorf("cb.ClearImage (again): clears\nhave %d\nwant 4", n)
	}

	for _, c := range [...][4]int{{3, 2, 0, 1}, {0, 1, 1, 2}, {-1, 1, 0, 1}} {
		if err := cb.ClearImage(m, c[0], c[1], c[2], c[3], value); err == nil {
			t.Errorf("cb.ClearImage(%v)\nhave nil\nwant error", c)
		}
	}
	bc := tImage(t, driver.BC1un, driver.Dim3D{Width: 16, Height: 16}, 1, 1, 1)
	defer bc.Destroy()
	if err := cb.ClearImage(bc, 0, 1, 0, 1, value); !isError(err, driver.ErrUnsupported) {
		t.Errorf("cb.ClearImage (compressed)\nhave %v\nwant %v", err, driver.ErrUnsupported)
	}
	if err := cb.End(); err != nil {
		t.Errorf("cb.End()\nhave %v\nwant nil", err)
	}
}

func TestNewRenderPass(t *testing.T) {
	att := []driver.Attachment{
		{Format: driver.RGBA8un, Samples: 1},
		{Format: driver.D32f, Samples: 1},
	}
	cases := [...]struct {
		sub []driver.Subpass
		ok  bool
	}{
		{[]driver.Subpass{{Color: []int{0}, DS: 1}}, true},
		{[]driver.Subpass{{Color: []int{0}, DS: -1}, {DS: 1}}, true},
		{nil, false},
		{[]driver.Subpass{{Color: []int{1}, DS: -1}}, false},
		{[]driver.Subpass{{Color: []int{0}, DS: 0}}, false},
		{[]driver.Subpass{{Color: []int{0}, DS: 2}}, false},
		{[]driver.Subpass{{Color: []int{0}, DS: -1, MSR: []int{1}}}, false},
	}
	for _, c := range cases {
		rp, err := tDrv.NewRenderPass(att, c.sub)
		switch {
		case c.ok && err != nil:
			t.Errorf("tDrv.NewRenderPass(..., %v)\nhave %v\nwant nil", c.sub, err)
		case !c.ok && err == nil:
			t.Errorf("tDrv.NewRenderPass(..., %v)\nhave nil\nwant error", c.sub)
		}
		if rp != nil {
			rp.Destroy()
		}
	}

	rp, err := tDrv.NewRenderPass(att, []driver.Subpass{{Color: []int{0}, DS: 1}})
	if err != nil {
		t.Fatalf("tDrv.NewRenderPass\nhave %v\nwant nil", err)
	}
	defer rp.Destroy()
	m := tImage(t, driver.RGBA8un, driver.Dim3D{Width: 8, Height: 8}, 1, 1, 1)
	defer m.Destroy()
	v := tView(t, m, driver.IView2D, 0, 1, 0, 1)
	defer v.Destroy()
	if _, err := rp.NewFB([]driver.ImageView{v}, 8, 8, 1); err == nil {
		t.Error("rp.NewFB (missing view)\nhave nil\nwant error")
	}
}

func TestRenderPass(t *testing.T) {
	rp, err := tDrv.NewRenderPass(
		[]driver.Attachment{
			{Format: driver.RGBA8un, Samples: 1, Load: [2]driver.LoadOp{driver.LClear}},
			{Format: driver.D32f, Samples: 1, Load: [2]driver.LoadOp{driver.LClear}},
		},
		[]driver.Subpass{{Color: []int{0}, DS: 1}},
	)
	if err != nil {
		t.Fatalf("tDrv.NewRenderPass\nhave %v\nwant nil", err)
	}
	defer rp.Destroy()
	size := driver.Dim3D{Width: 64, Height: 64}
	cm := tImage(t, driver.RGBA8un, size, 1, 1, 1)
	defer cm.Destroy()
	dm := tImage(t, driver.D32f, size, 1, 1, 1)
	defer dm.Destroy()
	cv := tView(t, cm, driver.IView2D, 0, 1, 0, 1)
	defer cv.Destroy()
	dv := tView(t, dm, driver.IView2D, 0, 1, 0, 1)
	defer dv.Destroy()
	fb, err := rp.NewFB([]driver.ImageView{cv, dv}, 64, 64, 1)
	if err != nil {
		t.Fatalf("rp.NewFB\nhave %v\nwant nil", err)
	}
	defer fb.Destroy()
	f := fb.(*framebuf)
	native := tGL.Framebuffers[f.fb]
	wantAtt := map[uint32]fakegl.Attachment{
		COLOR_ATTACHMENT0: {Tex: cv.tex, Level: 0, Layer: -1},
		DEPTH_ATTACHMENT:  {Tex: dv.tex, Level: 0, Layer: -1},
	}
	if !reflect.DeepEqual(native.Att, wantAtt) {
		t.Errorf("rp.NewFB: attachments\nhave %v\nwant %v", native.Att, wantAtt)
	}

	cb := tCmdBuffer(t)
	defer cb.Destroy()
	tGL.Reset()
	resetMsgs()
	clr := []driver.ClearValue{
		{Color: [4]float32{1, 0, 0, 1}},
		{Depth: 1},
	}
	cb.BeginPass(rp, fb, clr)
	if n := len(tGL.Clears); n != 2 {
		t.Fatalf("cb.BeginPass: clears\nhave %d\nwant 2", n)
	}
	cc, dc := tGL.Clears[0], tGL.Clears[1]
	if cc.Buffer != COLOR || cc.Color != clr[0].Color {
		t.Errorf("cb.BeginPass: color clear\nhave %+v\nwant COLOR, %v", cc, clr[0].Color)
	}
	if dc.Buffer != DEPTH || dc.Depth != 1 {
		t.Errorf("cb.BeginPass: depth clear\nhave %+v\nwant DEPTH, 1", dc)
	}
	// Clears target the attached subresources, not the
	// pass' framebuffer.
	if cc.FB == f.fb || dc.FB == f.fb {
		t.Errorf("cb.BeginPass: cleared framebuffer %d is the pass' framebuffer", f.fb)
	}
	if tGL.DrawFB != f.fb {
		t.Errorf("cb.BeginPass: draw framebuffer\nhave %d\nwant %d", tGL.DrawFB, f.fb)
	}
	if want := []uint32{COLOR_ATTACHMENT0}; !reflect.DeepEqual(tGL.Framebuffers[f.fb].DrawBufs, want) {
		t.Errorf("cb.BeginPass: draw buffers\nhave %v\nwant %v", tGL.Framebuffers[f.fb].DrawBufs, want)
	}
	if err := cb.End(); err == nil {
		t.Error("cb.End() (inside pass)\nhave nil\nwant error")
	}
	cb.BeginPass(rp, fb, clr)
	if e := tErrors(); len(e) != 1 {
		t.Errorf("cb.BeginPass (nested)\nhave %v\nwant one error", e)
	}

	// Beginning the pass again reuses the clear framebuffers.
	cb.EndPass()
	n := tGL.Calls["CreateFramebuffer"]
	cb.BeginPass(rp, fb, clr)
	if m := tGL.Calls["CreateFramebuffer"]; m != n {
		t.Errorf("cb.BeginPass (again): CreateFramebuffer calls\nhave %d\nwant %d", m, n)
	}
	cb.EndPass()
	cb.EndPass()
	if e := tErrors(); len(e) != 2 {
		t.Errorf("cb.EndPass (outside pass)\nhave %v\nwant two errors", e)
	}
	if err := cb.End(); err != nil {
		t.Errorf("cb.End()\nhave %v\nwant nil", err)
	}
}

func TestRenderPassResolve(t *testing.T) {
	rp, err := tDrv.NewRenderPass(
		[]driver.Attachment{
			{Format: driver.RGBA8un, Samples: 4, Load: [2]driver.LoadOp{driver.LLoad}},
			{Format: driver.RGBA8un, Samples: 1},
		},
		[]driver.Subpass{{Color: []int{0}, DS: -1, MSR: []int{1}}},
	)
	if err != nil {
		t.Fatalf("tDrv.NewRenderPass\nhave %v\nwant nil", err)
	}
	defer rp.Destroy()
	size := driver.Dim3D{Width: 32, Height: 32}
	ms := tImage(t, driver.RGBA8un, size, 1, 1, 4)
	defer ms.Destroy()
	ss := tImage(t, driver.RGBA8un, size, 1, 1, 1)
	defer ss.Destroy()
	msv := tView(t, ms, driver.IView2DMS, 0, 1, 0, 1)
	defer msv.Destroy()
	ssv := tView(t, ss, driver.IView2D, 0, 1, 0, 1)
	defer ssv.Destroy()
	fb, err := rp.NewFB([]driver.ImageView{msv, ssv}, 32, 32, 1)
	if err != nil {
		t.Fatalf("rp.NewFB\nhave %v\nwant nil", err)
	}
	defer fb.Destroy()

	cb := tCmdBuffer(t)
	defer cb.Destroy()
	tGL.Reset()
	cb.BeginPass(rp, fb, nil)
	if n := len(tGL.Clears); n != 0 {
		t.Errorf("cb.BeginPass (LLoad): clears\nhave %d\nwant 0", n)
	}
	if n := len(tGL.Blits); n != 0 {
		t.Errorf("cb.BeginPass: blits\nhave %d\nwant 0", n)
	}
	cb.EndPass()
	if n := len(tGL.Blits); n != 1 {
		t.Fatalf("cb.EndPass: blits\nhave %d\nwant 1", n)
	}
	b := tGL.Blits[0]
	want := fakegl.Blit{
		Src:    ms.subFramebuffer(0, 1, 0, 1).fb,
		Dst:    ss.subFramebuffer(0, 1, 0, 1).fb,
		S1:     [2]int32{32, 32},
		D1:     [2]int32{32, 32},
		Mask:   COLOR_BUFFER_BIT,
		Filter: NEAREST,
	}
	if b != want {
		t.Errorf("cb.EndPass: resolve\nhave %+v\nwant %+v", b, want)
	}
	if err := cb.End(); err != nil {
		t.Errorf("cb.End()\nhave %v\nwant nil", err)
	}
}
