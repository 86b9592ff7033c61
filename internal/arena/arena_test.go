// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package arena

import (
	"testing"
)

func TestBitsGrow(t *testing.T) {
	var b Bits
	for _, x := range [...]struct {
		nplus, wantLen int
	}{
		{1, 64},
		{2, 192},
		{0, 192},
		{-1, 192},
		{5, 512},
	} {
		if n, i := b.Len(), b.Grow(x.nplus); n != i {
			t.Fatalf("Bits.Grow:\nhave %d\nwant %d", i, n)
		}
		if n := b.Len(); n != x.wantLen {
			t.Fatalf("Bits.Grow: Len:\nhave %d\nwant %d", n, x.wantLen)
		}
		if n := b.Rem(); n != x.wantLen {
			t.Fatalf("Bits.Grow: Rem:\nhave %d\nwant %d", n, x.wantLen)
		}
	}
}

func TestBitsSearch(t *testing.T) {
	var b Bits
	if _, ok := b.Search(); ok {
		t.Fatal("Bits.Search: unexpected success on empty Bits")
	}
	b.Grow(2)
	for i := range 70 {
		idx, ok := b.Search()
		if !ok || idx != i {
			t.Fatalf("Bits.Search:\nhave %d, %t\nwant %d, true", idx, ok, i)
		}
		b.Set(idx)
	}
	b.Unset(3)
	b.Unset(65)
	if idx, _ := b.Search(); idx != 3 {
		t.Fatalf("Bits.Search:\nhave %d\nwant 3", idx)
	}
	if n := b.Rem(); n != 128-68 {
		t.Fatalf("Bits.Rem:\nhave %d\nwant %d", n, 128-68)
	}
	b.Clear()
	if n := b.Rem(); n != b.Len() {
		t.Fatalf("Bits.Clear: Rem:\nhave %d\nwant %d", n, b.Len())
	}
}

func TestArena(t *testing.T) {
	var a Arena[string]
	ids := make([]ID, 3)
	for i, s := range [...]string{"a", "b", "c"} {
		ids[i] = a.Insert(s)
		if ids[i] == 0 {
			t.Fatalf("Arena.Insert: zero ID")
		}
		if ids[i].Index() != i {
			t.Fatalf("Arena.Insert: Index:\nhave %d\nwant %d", ids[i].Index(), i)
		}
	}
	if n := a.Len(); n != 3 {
		t.Fatalf("Arena.Len:\nhave %d\nwant 3", n)
	}
	if v, ok := a.Get(ids[1]); !ok || *v != "b" {
		t.Fatalf("Arena.Get: unexpected result")
	}

	old := ids[1]
	if v, ok := a.Remove(old); !ok || v != "b" {
		t.Fatalf("Arena.Remove:\nhave %q, %t\nwant \"b\", true", v, ok)
	}
	if _, ok := a.Remove(old); ok {
		t.Fatal("Arena.Remove: removed twice")
	}
	if _, ok := a.Get(old); ok {
		t.Fatal("Arena.Get: stale ID resolved")
	}

	// The freed slot is reused with a new generation.
	id := a.Insert("d")
	if id.Index() != old.Index() {
		t.Fatalf("Arena.Insert: Index:\nhave %d\nwant %d", id.Index(), old.Index())
	}
	if id.Gen() == old.Gen() {
		t.Fatal("Arena.Insert: generation not bumped")
	}
	if _, ok := a.Get(old); ok {
		t.Fatal("Arena.Get: stale ID resolved after reuse")
	}
	if v, ok := a.Get(id); !ok || *v != "d" {
		t.Fatal("Arena.Get: unexpected result after reuse")
	}

	n := 0
	for id, v := range a.All() {
		if w, _ := a.Get(id); w != v {
			t.Fatal("Arena.All: ID/value mismatch")
		}
		n++
	}
	if n != 3 {
		t.Fatalf("Arena.All: count:\nhave %d\nwant 3", n)
	}
	if _, ok := a.Get(0); ok {
		t.Fatal("Arena.Get: zero ID resolved")
	}
}
