// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"testing"

	"github.com/gviegas/glemu/driver"
)

func TestUniformPool(t *testing.T) {
	buf, err := tDrv.NewBuffer(256, driver.MHostVisible, driver.UShaderConst)
	if err != nil {
		t.Fatalf("tDrv.NewBuffer\nhave %v\nwant nil", err)
	}
	name := buf.(*buffer).h.name
	up, err := tDrv.NewUniformPool(buf, 64, 4096)
	if err != nil {
		t.Fatalf("tDrv.NewUniformPool(buf, 64, 4096)\nhave %v\nwant nil", err)
	}
	defer up.Destroy()
	// The pool owns the adopted storage.
	if h := up.(*uniPool).h; h.name != name {
		t.Errorf("uniform pool handle\nhave %d\nwant %d", h.name, name)
	}
	buf.Destroy()
	if h := up.(*uniPool).h; h.name == 0 {
		t.Fatal("buf.Destroy: adopted storage was deleted")
	}
	align := tDrv.Limits().ConstantAlign
	stride := up.Stride()
	if stride < 64 || stride%align != 0 {
		t.Fatalf("up.Stride()\nhave %d\nwant multiple of %d no less than 64", stride, align)
	}

	var offs []int64
	for range 5 {
		off, err := up.Alloc()
		if err != nil {
			t.Fatalf("up.Alloc()\nhave %v\nwant nil", err)
		}
		if off%align != 0 {
			t.Errorf("up.Alloc(): offset %d is not a multiple of %d", off, align)
		}
		if off+64 > up.Cap() {
			t.Errorf("up.Alloc(): range [%d, %d) exceeds pool size %d", off, off+64, up.Cap())
		}
		for _, x := range offs {
			if off < x+64 && x < off+64 {
				t.Errorf("up.Alloc(): range [%d, %d) overlaps [%d, %d)", off, off+64, x, x+64)
			}
		}
		offs = append(offs, off)
	}

	// Freed instances are reused.
	up.Free(offs[2])
	if off, err := up.Alloc(); err != nil || off != offs[2] {
		t.Errorf("up.Alloc() (after Free)\nhave %d, %v\nwant %d, nil", off, err, offs[2])
	}

	// The pool never grows beyond its maximum size.
	n := 4096/stride - 5
	for range n {
		if _, err := up.Alloc(); err != nil {
			t.Fatalf("up.Alloc()\nhave %v\nwant nil", err)
		}
	}
	if _, err := up.Alloc(); !isError(err, driver.ErrNoDeviceMemory) {
		t.Errorf("up.Alloc() (exhausted)\nhave %v\nwant %v", err, driver.ErrNoDeviceMemory)
	}
	if c := up.Cap(); c > 4096 {
		t.Errorf("up.Cap()\nhave %d\nwant at most 4096", c)
	}

	if _, err := up.Sub(0, 64); !isError(err, driver.ErrUnsupported) {
		t.Errorf("up.Sub\nhave %v\nwant %v", err, driver.ErrUnsupported)
	}
	small, _ := tDrv.NewBuffer(256, driver.MHostVisible, driver.UShaderConst)
	defer small.Destroy()
	if _, err := tDrv.NewUniformPool(small, 64, 32); err == nil {
		t.Error("tDrv.NewUniformPool(small, 64, 32)\nhave nil\nwant error")
	}
	// A failed adoption leaves the buffer usable.
	if err := small.Write(0, make([]byte, 16)); err != nil {
		t.Errorf("small.Write (after failed adoption)\nhave %v\nwant nil", err)
	}
	sub, _ := small.Sub(0, 128)
	if _, err := tDrv.NewUniformPool(sub, 64, 4096); err == nil {
		t.Error("tDrv.NewUniformPool(sub-buffer, 64, 4096)\nhave nil\nwant error")
	}
	sub.Destroy()
}

func TestDynamicPool(t *testing.T) {
	buf, err := tDrv.NewBuffer(1024, driver.MHostVisible, driver.UGeneric)
	if err != nil {
		t.Fatalf("tDrv.NewBuffer\nhave %v\nwant nil", err)
	}
	dp, err := tDrv.NewDynamicPool(buf, 4096)
	if err != nil {
		t.Fatalf("tDrv.NewDynamicPool\nhave %v\nwant nil", err)
	}
	defer dp.Destroy()
	if err := buf.Write(0, []byte{1}); err == nil {
		t.Error("buf.Write (adopted)\nhave nil\nwant error")
	}
	if _, err := tDrv.NewDynamicPool(buf, 4096); err == nil {
		t.Error("tDrv.NewDynamicPool (adopted buffer)\nhave nil\nwant error")
	}

	align := dp.(*dynPool).align
	type alloc struct{ off, size int64 }
	var allocs []alloc
	for _, size := range [...]int64{100, 300, 256} {
		off, err := dp.Alloc(size)
		if err != nil {
			t.Fatalf("dp.Alloc(%d)\nhave %v\nwant nil", size, err)
		}
		if off%align != 0 {
			t.Errorf("dp.Alloc(%d): offset %d is not a multiple of %d", size, off, align)
		}
		for _, a := range allocs {
			if off < a.off+a.size && a.off < off+size {
				t.Errorf("dp.Alloc(%d): range [%d, %d) overlaps [%d, %d)", size, off, off+size, a.off, a.off+a.size)
			}
		}
		allocs = append(allocs, alloc{off, size})
	}

	// Allocations that do not fit grow the pool.
	name := dp.(*dynPool).h.name
	c0 := dp.Cap()
	off, err := dp.Alloc(c0)
	if err != nil {
		t.Fatalf("dp.Alloc(%d)\nhave %v\nwant nil", c0, err)
	}
	if c := dp.Cap(); c < off+c0 || c > 4096 {
		t.Errorf("dp.Cap() (after growth)\nhave %d\nwant in [%d, 4096]", c, off+c0)
	}
	if n := dp.(*dynPool).h.name; n == name {
		t.Errorf("dp.Alloc: native buffer\nhave %d\nwant new name", n)
	}
	if _, ok := tGL.Buffers[name]; ok {
		t.Errorf("dp.Alloc: old native buffer %d\nhave live\nwant deleted", name)
	}

	// Freed ranges are coalesced.
	dp.Free(allocs[0].off)
	dp.Free(allocs[1].off)
	if a, err := dp.Alloc(allocs[0].size + allocs[1].size); err != nil || a != allocs[0].off {
		t.Errorf("dp.Alloc (after Free)\nhave %d, %v\nwant %d, nil", a, err, allocs[0].off)
	}

	if _, err := dp.Alloc(8192); !isError(err, driver.ErrNoDeviceMemory) {
		t.Errorf("dp.Alloc(8192)\nhave %v\nwant %v", err, driver.ErrNoDeviceMemory)
	}
	if err := dp.Grow(8192); !isError(err, driver.ErrNoDeviceMemory) {
		t.Errorf("dp.Grow(8192)\nhave %v\nwant %v", err, driver.ErrNoDeviceMemory)
	}
	for _, size := range [...]int64{0, -64} {
		if _, err := dp.Alloc(size); err == nil {
			t.Errorf("dp.Alloc(%d)\nhave nil\nwant error", size)
		}
	}
}
