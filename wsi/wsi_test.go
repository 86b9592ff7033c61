// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package wsi

import (
	"testing"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestWSI(t *testing.T) {
	if _, err := NewWindow(0, 360, "Invalid"); err == nil {
		t.Fatal("NewWindow(0, 360, ...)\nhave nil\nwant error")
	}
	switch PlatformInUse() {
	case None:
		win, err := NewWindow(480, 360, "Will fail")
		if win != nil || err != errMissing {
			t.Fatalf("NewWindow: win, err\nhave %v, %v\nwant nil, %v", win, err, errMissing)
		}
		if _, err := ContextWindow(); err != errMissing {
			t.Fatalf("ContextWindow\nhave %v\nwant %v", err, errMissing)
		}
		if n := len(Windows()); n != 0 {
			t.Fatalf("len(Windows())\nhave %v\nwant 0", n)
		}
		// Dummy Dispatch does nothing.
		Dispatch()
		// Dummy SetAppName does nothing.
		SetAppName("Won't be displayed")
	default:
		ctx, err := ContextWindow()
		if err != nil {
			t.Logf("ContextWindow (error): %v", err)
			return
		}
		// The hidden context window is adopted by NewWindow.
		win, err := NewWindow(480, 360, "My window")
		if err != nil {
			t.Fatalf("NewWindow\nhave %v\nwant nil", err)
		}
		if win != ctx {
			t.Fatalf("NewWindow\nhave %v\nwant context window %v", win, ctx)
		}
		if n := len(Windows()); n != 1 {
			t.Fatalf("len(Windows())\nhave %v\nwant 1", n)
		}
		win.Map()
		for i := 0; i < 10; i++ {
			win.MakeCurrent()
			win.SwapBuffers()
			Dispatch()
			time.Sleep(time.Millisecond * 16)
		}
		win.Resize(600, 300)
		win.SetTitle(time.Now().Format(time.RFC1123))
		SetAppName("My app")
		if s := AppName(); s != "My app" {
			t.Fatalf("AppName\nhave %s\nwant My app", s)
		}
		win2, err := NewWindow(320, 240, "Another window")
		if err != nil {
			t.Fatalf("NewWindow (shared)\nhave %v\nwant nil", err)
		}
		if n := len(Windows()); n != 2 {
			t.Fatalf("len(Windows())\nhave %v\nwant 2", n)
		}
		win2.Close()
		ReleaseCurrent()
		win.Close()
		if n := len(Windows()); n != 0 {
			t.Fatalf("len(Windows())\nhave %v\nwant 0", n)
		}
		if ctxWindow != nil {
			t.Fatalf("ctxWindow\nhave %v\nwant nil", ctxWindow)
		}
	}
}

// tWindow is a Window that does nothing.
type tWindow struct{ w, h int }

func (*tWindow) Map() error            { return nil }
func (*tWindow) Unmap() error          { return nil }
func (*tWindow) Resize(int, int) error { return nil }
func (*tWindow) SetTitle(string) error { return nil }
func (w *tWindow) Close()              { closeWindow(w) }
func (w *tWindow) Width() int          { return w.w }
func (w *tWindow) Height() int         { return w.h }
func (*tWindow) Title() string         { return "" }
func (*tWindow) MakeCurrent()          {}
func (*tWindow) SwapBuffers()          {}

func TestRegistry(t *testing.T) {
	saved := newWindow
	defer func() { newWindow = saved }()
	newWindow = func(w, h int, _ string) (Window, error) { return &tWindow{w, h}, nil }

	var wins []Window
	for i := 0; i < MaxWindows; i++ {
		win, err := NewWindow(i+1, i+1, "")
		if err != nil {
			t.Fatalf("NewWindow #%d\nhave %v\nwant nil", i, err)
		}
		wins = append(wins, win)
	}
	if _, err := NewWindow(1, 1, ""); err == nil {
		t.Fatal("NewWindow (too many)\nhave nil\nwant error")
	}
	if ctx, err := ContextWindow(); err != nil || ctx != wins[0] {
		t.Errorf("ContextWindow\nhave %v, %v\nwant %v, nil", ctx, err, wins[0])
	}
	wins[3].Close()
	if n := len(Windows()); n != MaxWindows-1 {
		t.Errorf("len(Windows())\nhave %d\nwant %d", n, MaxWindows-1)
	}
	for _, w := range Windows() {
		if w == wins[3] {
			t.Error("Windows()\nhave closed window\nwant not present")
		}
	}
	for _, w := range wins {
		w.Close()
	}
	if n := len(Windows()); n != 0 || ctxWindow != nil {
		t.Errorf("Windows() (all closed)\nhave %d, %v\nwant 0, nil", n, ctxWindow)
	}

	// A hidden context window is adopted once.
	ctx, err := ContextWindow()
	if err != nil {
		t.Fatalf("ContextWindow\nhave %v\nwant nil", err)
	}
	win, _ := NewWindow(64, 48, "")
	if win != ctx {
		t.Errorf("NewWindow (adopt)\nhave %v\nwant %v", win, ctx)
	}
	win2, _ := NewWindow(64, 48, "")
	if win2 == ctx {
		t.Error("NewWindow (after adopt)\nhave context window\nwant new window")
	}
	win2.Close()
	win.Close()
}

func TestKeymap(t *testing.T) {
	cases := [...]struct {
		code int
		want Key
	}{
		{int(glfw.KeyA), KeyA},
		{int(glfw.KeyEnter), KeyReturn},
		{int(glfw.KeyKPEnter), KeyPadEnter},
		{int(glfw.KeyRightSuper), KeyRMeta},
		{int(glfw.KeyF24), KeyF24},
		{int(glfw.KeyWorld1), KeyUnknown},
		{-1, KeyUnknown},
		{int(glfw.KeyLast) + 1, KeyUnknown},
	}
	for _, c := range cases {
		if have := keyFrom(c.code); have != c.want {
			t.Errorf("keyFrom(%d)\nhave %d\nwant %d", c.code, have, c.want)
		}
	}
	if m := modFrom(glfw.ModShift | glfw.ModControl | glfw.ModSuper); m != ModShift|ModCtrl {
		t.Errorf("modFrom\nhave %#x\nwant %#x", m, ModShift|ModCtrl)
	}
	if b := buttonFrom(glfw.MouseButtonMiddle); b != BtnMiddle {
		t.Errorf("buttonFrom(MouseButtonMiddle)\nhave %d\nwant %d", b, BtnMiddle)
	}
	if b := buttonFrom(glfw.MouseButton8); b != BtnUnknown {
		t.Errorf("buttonFrom(MouseButton8)\nhave %d\nwant %d", b, BtnUnknown)
	}
}
