// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package driver_test

import (
	"log"
	"unsafe"

	"github.com/gviegas/glemu/driver"
	"github.com/gviegas/glemu/driver/gl"
	"github.com/gviegas/glemu/internal/fakegl"
)

var (
	drv driver.Driver
	gpu driver.GPU
)

// The tests run against a recording GL so they do not
// need a window system.
func init() {
	driver.Register(gl.New(fakegl.New(), gl.Config{Validation: true}))

	// Select a driver to use.
	drivers := driver.Drivers()
drvLoop:
	for i := range drivers {
		switch drivers[i].Name() {
		case "opengl":
			drv = drivers[i]
			break drvLoop
		}
	}
	if drv == nil {
		log.Fatal("driver.Drivers(): driver not found")
	}
	var err error
	gpu, err = drv.Open()
	if err != nil {
		log.Fatal(err)
	}
}

var (
	// Vertex positions (CCW).
	triPos = [9]float32{
		-1, 1, 0,
		1, 1, 0,
		0, -1, 0,
	}
	// Vertex colors.
	triCol = [12]float32{
		0, 1, 1, 1,
		1, 0, 1, 1,
		1, 1, 0, 1,
	}
	// Transform.
	triM = [16]float32{
		0.7, 0, 0, 0,
		0, 0.7, 0, 0,
		0, 0, 0.7, 0,
		0, 0, 0, 1,
	}
)

const (
	triPosSize = int64(unsafe.Sizeof(triPos))
	triColSize = int64(unsafe.Sizeof(triCol))
	triMSize   = int64(unsafe.Sizeof(triM))
)

// bytesOf returns the memory of a float32 array.
func bytesOf[T any](p *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(p)), unsafe.Sizeof(*p))
}
