// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package wsi

import (
	"os"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gviegas/glemu/driver/gl"
)

// EnvNoWSI disables window system integration when set.
const EnvNoWSI = "GLEMU_NO_WSI"

func init() {
	// GLFW must be driven from the main thread.
	runtime.LockOSThread()
	if _, ok := os.LookupEnv(EnvNoWSI); ok {
		initDummy()
		return
	}
	if err := initGLFW(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		initDummy()
	}
}

// initGLFW initializes the GLFW platform.
func initGLFW() error {
	if err := glfw.Init(); err != nil {
		return errors.Wrap(err, "wsi: glfw.Init failed")
	}
	newWindow = newWindowGLFW
	dispatch = dispatchGLFW
	setAppName = setAppNameGLFW
	platform = GLFW
	return nil
}

// Terminate closes every window and releases the window
// system. NewWindow fails afterwards.
func Terminate() {
	if platform != GLFW {
		return
	}
	for _, w := range Windows() {
		w.Close()
	}
	glfw.Terminate()
	initDummy()
}

// windowGLFW implements Window.
type windowGLFW struct {
	win    *glfw.Window
	width  int
	height int
	title  string
	hidden bool
}

// newWindowGLFW creates a new window with an OpenGL 4.5
// core context.
// The context shares objects with the context window's,
// if there is one.
func newWindowGLFW(width, height int, title string) (Window, error) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 5)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.StencilBits, 8)
	if gl.ConfigFromEnv().Validation {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}
	var share *glfw.Window
	if w, ok := ctxWindow.(*windowGLFW); ok {
		share = w.win
	}
	win, err := glfw.CreateWindow(width, height, title, nil, share)
	if err != nil {
		return nil, errors.Wrap(err, "wsi: glfw.CreateWindow failed")
	}
	win.SetInputMode(glfw.LockKeyMods, glfw.True)
	w := &windowGLFW{
		win:    win,
		title:  title,
		hidden: true,
	}
	w.width, w.height = win.GetFramebufferSize()
	win.SetCloseCallback(closeEventGLFW)
	win.SetFramebufferSizeCallback(resizeEventGLFW)
	win.SetFocusCallback(focusEventGLFW)
	win.SetKeyCallback(keyEventGLFW)
	win.SetCursorEnterCallback(enterEventGLFW)
	win.SetCursorPosCallback(motionEventGLFW)
	win.SetMouseButtonCallback(buttonEventGLFW)
	return w, nil
}

// Map makes the window visible.
func (w *windowGLFW) Map() error {
	if w.win == nil {
		return errors.New("wsi: window closed")
	}
	if w.hidden {
		w.win.Show()
		w.hidden = false
	}
	return nil
}

// Unmap hides the window.
func (w *windowGLFW) Unmap() error {
	if w.win == nil {
		return errors.New("wsi: window closed")
	}
	if !w.hidden {
		w.win.Hide()
		w.hidden = true
	}
	return nil
}

// Resize resizes the window.
func (w *windowGLFW) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.New("wsi: width/height less than or equal 0")
	}
	if w.win == nil {
		return errors.New("wsi: window closed")
	}
	w.win.SetSize(width, height)
	w.width, w.height = w.win.GetFramebufferSize()
	return nil
}

// SetTitle sets the window's title.
func (w *windowGLFW) SetTitle(title string) error {
	if w.win == nil {
		return errors.New("wsi: window closed")
	}
	if title != w.title {
		w.win.SetTitle(title)
		w.title = title
	}
	return nil
}

// Close closes the window.
func (w *windowGLFW) Close() {
	if w != nil && w.win != nil {
		closeWindow(w)
		w.win.Destroy()
		*w = windowGLFW{}
	}
}

// Width returns the framebuffer width.
func (w *windowGLFW) Width() int { return w.width }

// Height returns the framebuffer height.
func (w *windowGLFW) Height() int { return w.height }

// Title returns the window's title.
func (w *windowGLFW) Title() string { return w.title }

// MakeCurrent makes the window's context current.
func (w *windowGLFW) MakeCurrent() {
	if w.win != nil {
		w.win.MakeContextCurrent()
	}
}

// SwapBuffers swaps the window's buffers.
func (w *windowGLFW) SwapBuffers() {
	if w.win != nil {
		w.win.SwapBuffers()
	}
}

// ReleaseCurrent detaches the current context from the
// calling thread.
func ReleaseCurrent() {
	if platform == GLFW {
		glfw.DetachCurrentContext()
	}
}

// windowFromGLFW returns the Window that wraps win,
// or nil if there is none.
func windowFromGLFW(win *glfw.Window) *windowGLFW {
	for _, w := range createdWindows {
		if w, ok := w.(*windowGLFW); ok && w.win == win {
			return w
		}
	}
	return nil
}

// closeEventGLFW handles close requests.
func closeEventGLFW(win *glfw.Window) {
	// The window stays open until the handler closes it.
	win.SetShouldClose(false)
	if windowHandler != nil {
		if w := windowFromGLFW(win); w != nil {
			windowHandler.WindowClose(w)
		}
	}
}

// resizeEventGLFW handles framebuffer size changes.
func resizeEventGLFW(win *glfw.Window, width, height int) {
	w := windowFromGLFW(win)
	if w == nil {
		return
	}
	w.width, w.height = width, height
	if windowHandler != nil {
		windowHandler.WindowResize(w, width, height)
	}
}

// focusEventGLFW handles focus changes.
func focusEventGLFW(win *glfw.Window, focused bool) {
	if keyboardHandler == nil {
		return
	}
	w := windowFromGLFW(win)
	if w == nil {
		return
	}
	if focused {
		keyboardHandler.KeyboardIn(w)
	} else {
		keyboardHandler.KeyboardOut(w)
	}
}

// keyEventGLFW handles key press/release events.
// Repeats are reported as presses.
func keyEventGLFW(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
	if keyboardHandler != nil {
		keyboardHandler.KeyboardKey(keyFrom(int(key)), action != glfw.Release, modFrom(mods))
	}
}

// enterEventGLFW handles cursor enter/leave events.
func enterEventGLFW(win *glfw.Window, entered bool) {
	if pointerHandler == nil {
		return
	}
	w := windowFromGLFW(win)
	if w == nil {
		return
	}
	if entered {
		x, y := win.GetCursorPos()
		pointerHandler.PointerIn(w, int(x), int(y))
	} else {
		pointerHandler.PointerOut(w)
	}
}

// motionEventGLFW handles cursor motion events.
func motionEventGLFW(_ *glfw.Window, x, y float64) {
	if pointerHandler != nil {
		pointerHandler.PointerMotion(int(x), int(y))
	}
}

// buttonEventGLFW handles button press/release events.
func buttonEventGLFW(win *glfw.Window, btn glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if pointerHandler != nil {
		x, y := win.GetCursorPos()
		pointerHandler.PointerButton(buttonFrom(btn), action == glfw.Press, int(x), int(y))
	}
}

// dispatchGLFW dispatches queued events.
func dispatchGLFW() {
	glfw.PollEvents()
}

// setAppNameGLFW renames the hidden context window.
func setAppNameGLFW(s string) {
	if w, ok := ctxWindow.(*windowGLFW); ok && !ctxClaimed {
		w.SetTitle(s)
	}
}
