// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package driver_test

import (
	"encoding/binary"
	"log"
	"time"

	"github.com/gviegas/glemu/driver"
)

// Each invocation stores either white or black, based
// on its group ID.
const checkerComp = `#version 450 core
layout(local_size_x = 10, local_size_y = 10) in;
layout(LAYOUT_ID(0, 0), std430) writeonly buffer Pixels {
	uint rgba[];
} pixels;
void main() {
	uvec2 grp = gl_WorkGroupID.xy;
	uvec2 pos = gl_GlobalInvocationID.xy;
	uint w = gl_NumWorkGroups.x * gl_WorkGroupSize.x;
	pixels.rgba[pos.y * w + pos.x] = ((grp.x + grp.y) & 1) == 0 ? 0xffffffffu : 0xff000000u;
}
`

// Example_dispatch creates a checker pattern using
// compute and reads the result back.
func Example_dispatch() {
	// Each 2D group defines a cell where all pixels
	// have the same color.
	grpCntX := 8
	grpCntY := 9
	invCntX := 10 // From shader code.
	invCntY := 10 // From shader code.
	w := grpCntX * invCntX
	h := grpCntY * invCntY
	sz := int64(w * h * 4)

	// Create the storage buffer, written by the
	// shader and then copied to a host-visible
	// buffer.
	stor, err := gpu.NewBuffer(sz, driver.MDeviceLocal, driver.UShaderWrite)
	if err != nil {
		log.Fatal(err)
	}
	defer stor.Destroy()
	stg, err := gpu.NewBuffer(sz, driver.MHostVisible|driver.MHostRead, driver.UGeneric)
	if err != nil {
		log.Fatal(err)
	}
	defer stg.Destroy()

	// Create the descriptor set that will contain
	// the storage buffer.
	ds, err := gpu.NewDescSet([]driver.Descriptor{{
		Type:   driver.DBuffer,
		Stages: driver.SCompute,
		Nr:     0,
		Len:    1,
	}})
	if err != nil {
		log.Fatal(err)
	}
	defer ds.Destroy()
	ds.SetBuffer(0, 0, []driver.Buffer{stor}, nil, nil)

	// Create the compute pipeline.
	cs, err := gpu.NewShaderCode(driver.SCompute, []byte(checkerComp))
	if err != nil {
		log.Fatal(err)
	}
	defer cs.Destroy()
	pl, err := gpu.NewPipeline(&driver.CompState{
		Func: driver.ShaderFunc{Code: cs, Name: "main"},
	})
	if err != nil {
		log.Fatal(err)
	}
	defer gpu.DestroyPipeline(pl)

	// We will record the dispatch and the copy in
	// separate command buffers.
	cbDisp, err := gpu.NewCmdBuffer()
	if err != nil {
		log.Fatal(err)
	}
	defer cbDisp.Destroy()
	cbCopy, err := gpu.NewCmdBuffer()
	if err != nil {
		log.Fatal(err)
	}
	defer cbCopy.Destroy()

	// Dispatch.
	if err := cbDisp.Begin(); err != nil {
		log.Fatal(err)
	}
	if err := cbDisp.SetPipeline(pl); err != nil {
		log.Fatal(err)
	}
	cbDisp.SetDescSet(0, []driver.DescSet{ds}, nil)
	if err := cbDisp.Dispatch(grpCntX, grpCntY, 1); err != nil {
		log.Fatal(err)
	}
	if err := cbDisp.End(); err != nil {
		log.Fatal(err)
	}

	// Copy.
	if err := cbCopy.Begin(); err != nil {
		log.Fatal(err)
	}
	cbCopy.Barrier([]driver.Barrier{{
		SyncBefore:   driver.SComputeShading,
		SyncAfter:    driver.SCopy,
		AccessBefore: driver.AShaderWrite,
		AccessAfter:  driver.ACopyRead,
	}})
	if err := cbCopy.CopyBuffer(&driver.BufferCopy{From: stor, To: stg, Size: sz}); err != nil {
		log.Fatal(err)
	}
	if err := cbCopy.End(); err != nil {
		log.Fatal(err)
	}

	// The order here matters.
	fence, err := gpu.NewFence(false)
	if err != nil {
		log.Fatal(err)
	}
	defer fence.Destroy()
	if err := gpu.Submit([]driver.CmdBuffer{cbDisp, cbCopy}, fence); err != nil {
		log.Fatal(err)
	}
	if err := gpu.WaitFences([]driver.Fence{fence}, true, time.Second); err != nil {
		log.Fatal(err)
	}

	pix := make([]byte, sz)
	if err := stg.Read(0, pix); err != nil {
		log.Fatal(err)
	}
	black := 0
	for i := 0; i < len(pix); i += 4 {
		if binary.LittleEndian.Uint32(pix[i:]) == 0xff000000 {
			black++
		}
	}
	log.Printf("%d of %d pixels are black", black, w*h)
}
