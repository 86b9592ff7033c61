// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package glcore

import (
	"bytes"
	"testing"
	"time"

	"github.com/gviegas/glemu/driver"
)

// tOpen opens the registered driver, skipping the test
// when no context can be created.
func tOpen(t *testing.T) (driver.Driver, driver.GPU) {
	t.Helper()
	var drv driver.Driver
	for _, d := range driver.Drivers() {
		if d.Name() == "opengl" {
			drv = d
		}
	}
	if drv == nil {
		t.Fatal("driver.Drivers()\nhave no \"opengl\" driver\nwant registered")
	}
	gpu, err := drv.Open()
	if err != nil {
		t.Skipf("drv.Open: %v", err)
	}
	return drv, gpu
}

func TestTargets(t *testing.T) {
	cases := [...]struct {
		target uint32
		want   int
	}{
		{0x0DE0, 1}, // TEXTURE_1D
		{0x0DE1, 2}, // TEXTURE_2D
		{0x8C18, 2}, // TEXTURE_1D_ARRAY
		{0x8C1A, 3}, // TEXTURE_2D_ARRAY
		{0x8513, 3}, // TEXTURE_CUBE_MAP
		{0x806F, 3}, // TEXTURE_3D
	}
	for _, c := range cases {
		if have := dims(c.target); have != c.want {
			t.Errorf("dims(%#x)\nhave %d\nwant %d", c.target, have, c.want)
		}
	}
}

func TestBufferRoundTrip(t *testing.T) {
	drv, gpu := tOpen(t)
	defer drv.Close()

	data := []byte("round trip through a real context")
	src, err := gpu.NewBuffer(64, driver.MHostVisible|driver.MHostRead, driver.UGeneric)
	if err != nil {
		t.Fatalf("gpu.NewBuffer\nhave %v\nwant nil", err)
	}
	defer src.Destroy()
	dst, err := gpu.NewBuffer(64, driver.MHostVisible|driver.MHostRead, driver.UGeneric)
	if err != nil {
		t.Fatalf("gpu.NewBuffer\nhave %v\nwant nil", err)
	}
	defer dst.Destroy()
	if err := src.Write(0, data); err != nil {
		t.Fatalf("src.Write\nhave %v\nwant nil", err)
	}

	cb, err := gpu.NewCmdBuffer()
	if err != nil {
		t.Fatalf("gpu.NewCmdBuffer\nhave %v\nwant nil", err)
	}
	defer cb.Destroy()
	cb.Begin()
	if err := cb.CopyBuffer(&driver.BufferCopy{From: src, To: dst, Size: int64(len(data))}); err != nil {
		t.Fatalf("cb.CopyBuffer\nhave %v\nwant nil", err)
	}
	cb.End()
	f, _ := gpu.NewFence(false)
	defer f.Destroy()
	if err := gpu.Submit([]driver.CmdBuffer{cb}, f); err != nil {
		t.Fatalf("gpu.Submit\nhave %v\nwant nil", err)
	}
	if err := gpu.WaitFences([]driver.Fence{f}, true, time.Second); err != nil {
		t.Fatalf("gpu.WaitFences\nhave %v\nwant nil", err)
	}
	got := make([]byte, len(data))
	if err := dst.Read(0, got); err != nil || !bytes.Equal(got, data) {
		t.Errorf("dst.Read\nhave %q, %v\nwant %q, nil", got, err, data)
	}
}
