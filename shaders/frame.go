// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package shaders

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/gviegas/glemu/driver"
)

// FrameTimeout is how long DrawFrame waits for the
// previous frame to complete.
const FrameTimeout = time.Second

// Frames draws frames into a swapchain with a single
// command buffer.
type Frames struct {
	gpu   driver.GPU
	sc    driver.Swapchain
	cb    driver.CmdBuffer
	fence driver.Fence
}

// NewFrames creates a Frames that presents to sc.
func NewFrames(gpu driver.GPU, sc driver.Swapchain) (*Frames, error) {
	cb, err := gpu.NewCmdBuffer()
	if err != nil {
		return nil, err
	}
	fence, err := gpu.NewFence(true)
	if err != nil {
		cb.Destroy()
		return nil, err
	}
	return &Frames{gpu: gpu, sc: sc, cb: cb, fence: fence}, nil
}

// DrawFrame acquires the next swapchain view, calls fn
// to record commands that draw into it, then submits the
// commands and presents.
// A swapchain invalidated by window changes is recreated
// before acquiring, so views must be looked up through
// the swapchain on every call.
func (f *Frames) DrawFrame(fn func(cb driver.CmdBuffer, view int) error) error {
	if err := f.gpu.WaitFences([]driver.Fence{f.fence}, true, FrameTimeout); err != nil {
		return errors.Wrap(err, "shaders: previous frame")
	}
	idx, err := f.sc.Next()
	if errors.Is(err, driver.ErrSwapchain) {
		if err = f.sc.Recreate(); err != nil {
			return err
		}
		idx, err = f.sc.Next()
	}
	if err != nil {
		return err
	}
	if err := f.cb.Begin(); err != nil {
		return err
	}
	if err := fn(f.cb, idx); err != nil {
		// Release the view without drawing.
		f.cb.Reset()
		f.sc.Present(idx)
		return err
	}
	if err := f.cb.End(); err != nil {
		return err
	}
	if err := f.fence.Reset(); err != nil {
		return err
	}
	if err := f.gpu.Submit([]driver.CmdBuffer{f.cb}, f.fence); err != nil {
		return err
	}
	return f.sc.Present(idx)
}

// Destroy destroys the Frames.
// It does not destroy the swapchain.
func (f *Frames) Destroy() {
	f.gpu.WaitFences([]driver.Fence{f.fence}, true, FrameTimeout)
	f.fence.Destroy()
	f.cb.Destroy()
	*f = Frames{}
}
