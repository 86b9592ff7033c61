// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package driver

import (
	"github.com/cockroachdb/errors"
)

// ErrCannotPresent means that the driver and/or device do not
// support presentation.
var ErrCannotPresent = errors.New("driver: presentation not supported")

// ErrWindow represents an error related to a specific window.
// This error usually indicates that a window misconfiguration
// is preventing correct operation. For instance, the driver
// may require the window to own the rendering context.
var ErrWindow = errors.New("driver: window-related error")

// ErrSwapchain represents an error related to a specific
// swapchain.
// This error usually indicates that changes to the window
// made the swapchain unusable.
var ErrSwapchain = errors.New("driver: swapchain-related error")

// ErrNoBackbuffer means that all available backbuffers
// were acquired.
// Backbuffers are released during presentation.
var ErrNoBackbuffer = errors.New("driver: all backbuffers in use")

// Surface is the interface that a window provides to
// enable presentation.
type Surface interface {
	Width() int
	Height() int

	// SwapBuffers displays the drawable's back buffer.
	SwapBuffers()
}

// Presenter is the interface that a GPU may implement
// to enable presentation on a display.
type Presenter interface {
	// NewSwapchain creates a new swapchain.
	// Only one swapchain can be associated with a specific
	// Surface at a time.
	NewSwapchain(sf Surface, imageCount int) (Swapchain, error)
}

// Swapchain is the interface that defines a n-buffered
// swapchain for presentation.
// To present, one calls Next to obtain the index of an
// image view to target, records commands as needed,
// submits these commands and then calls Present to
// present the image view.
type Swapchain interface {
	Destroyer

	// Views returns the list of image views that
	// comprises the swapchain.
	// This value remains unchanged as long as the
	// swapchain's Destroy or Recreate methods are
	// not called.
	Views() []ImageView

	// Next returns the index of the next writable
	// image view.
	Next() (int, error)

	// Present presents the image view identified
	// by index.
	Present(index int) error

	// Recreate recreates the swapchain.
	// It is meant to be called in response to a
	// ErrSwapchain error.
	Recreate() error

	// Format returns the image views' PixelFmt.
	Format() PixelFmt

	// Usage returns the image views' Usage.
	// URenderTarget is guaranteed to be set.
	Usage() Usage
}
