// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"testing"
	"time"

	"github.com/gviegas/glemu/driver"
)

func TestFence(t *testing.T) {
	f, err := tDrv.NewFence(false)
	if err != nil {
		t.Fatalf("tDrv.NewFence(false)\nhave %v\nwant nil", err)
	}
	defer f.Destroy()
	if f.Signaled() {
		t.Error("f.Signaled() (new)\nhave true\nwant false")
	}
	if err := tDrv.WaitFences([]driver.Fence{f}, true, 0); err != driver.ErrTimeout {
		t.Errorf("tDrv.WaitFences (unsubmitted)\nhave %v\nwant %v", err, driver.ErrTimeout)
	}

	cb := tCmdBuffer(t)
	defer cb.Destroy()
	if err := tDrv.Submit([]driver.CmdBuffer{cb}, f); err == nil {
		t.Error("tDrv.Submit (recording)\nhave nil\nwant error")
	}
	if err := cb.End(); err != nil {
		t.Fatalf("cb.End()\nhave %v\nwant nil", err)
	}
	tGL.Reset()
	if err := tDrv.Submit([]driver.CmdBuffer{cb}, f); err != nil {
		t.Fatalf("tDrv.Submit\nhave %v\nwant nil", err)
	}
	if n := tGL.Calls["FenceSync"]; n != 1 {
		t.Errorf("tDrv.Submit: FenceSync calls\nhave %d\nwant 1", n)
	}
	if cb.state != cmdInitial {
		t.Errorf("tDrv.Submit: command buffer state\nhave %d\nwant %d", cb.state, cmdInitial)
	}
	if err := tDrv.WaitFences([]driver.Fence{f}, true, time.Second); err != nil {
		t.Errorf("tDrv.WaitFences\nhave %v\nwant nil", err)
	}
	if !f.Signaled() {
		t.Error("f.Signaled() (after wait)\nhave false\nwant true")
	}
	if n := len(tGL.Syncs); n != 0 {
		t.Errorf("f.Signaled(): live sync objects\nhave %d\nwant 0", n)
	}

	if err := f.Reset(); err != nil {
		t.Errorf("f.Reset()\nhave %v\nwant nil", err)
	}
	if f.Signaled() {
		t.Error("f.Signaled() (after Reset)\nhave true\nwant false")
	}

	// Waiting for any fence returns once one is signaled.
	g, err := tDrv.NewFence(true)
	if err != nil {
		t.Fatalf("tDrv.NewFence(true)\nhave %v\nwant nil", err)
	}
	defer g.Destroy()
	if err := tDrv.WaitFences([]driver.Fence{f, g}, false, 0); err != nil {
		t.Errorf("tDrv.WaitFences(..., false, 0)\nhave %v\nwant nil", err)
	}
	if err := tDrv.WaitFences([]driver.Fence{f, g}, true, 0); err != driver.ErrTimeout {
		t.Errorf("tDrv.WaitFences(..., true, 0)\nhave %v\nwant %v", err, driver.ErrTimeout)
	}

	// Submitting without a fence only flushes.
	tGL.Reset()
	if err := cb.Begin(); err != nil {
		t.Fatalf("cb.Begin()\nhave %v\nwant nil", err)
	}
	cb.End()
	if err := tDrv.Submit([]driver.CmdBuffer{cb}, nil); err != nil {
		t.Errorf("tDrv.Submit(..., nil)\nhave %v\nwant nil", err)
	}
	if n, m := tGL.Calls["Flush"], tGL.Calls["FenceSync"]; n != 1 || m != 0 {
		t.Errorf("tDrv.Submit(..., nil): Flush, FenceSync calls\nhave %d, %d\nwant 1, 0", n, m)
	}
}

func TestEvent(t *testing.T) {
	ev, err := tDrv.NewEvent()
	if err != nil {
		t.Fatalf("tDrv.NewEvent()\nhave %v\nwant nil", err)
	}
	defer ev.Destroy()
	if ev.IsSet() {
		t.Error("ev.IsSet() (new)\nhave true\nwant false")
	}
	cb := tCmdBuffer(t)
	defer cb.Destroy()
	cb.SetEvent(ev)
	if !ev.IsSet() {
		t.Error("cb.SetEvent: ev.IsSet()\nhave false\nwant true")
	}
	cb.ResetEvent(ev)
	if ev.IsSet() {
		t.Error("cb.ResetEvent: ev.IsSet()\nhave true\nwant false")
	}
	ev.Set()
	if !ev.IsSet() {
		t.Error("ev.Set: ev.IsSet()\nhave false\nwant true")
	}
	if err := cb.End(); err != nil {
		t.Errorf("cb.End()\nhave %v\nwant nil", err)
	}
	// Commands outside recording have no effect.
	resetMsgs()
	cb.ResetEvent(ev)
	if !ev.IsSet() {
		t.Error("cb.ResetEvent (not recording): ev.IsSet()\nhave false\nwant true")
	}
	if e := tErrors(); len(e) != 1 {
		t.Errorf("cb.ResetEvent (not recording): errors\nhave %v\nwant 1", e)
	}
}
