// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"slices"

	"github.com/cockroachdb/errors"
)

// ResourceKind is the kind of resource a binding refers to.
// Buffers and images are assigned binding points from
// independent numeric spaces.
type ResourceKind int

// Resource kinds.
const (
	KindBuffer ResourceKind = iota
	KindImage
)

func (k ResourceKind) String() string {
	if k == KindImage {
		return "image"
	}
	return "buffer"
}

// BindingInfo describes a binding of a descriptor set as
// declared in shader code.
type BindingInfo struct {
	Binding   int
	Kind      ResourceKind
	ArraySize int
}

// SetReflection lists the bindings declared for a
// descriptor set.
type SetReflection struct {
	Set      int
	Bindings []BindingInfo
}

// NoBinding marks a binding that the shader does not
// declare.
const NoBinding = -1

// PushConstantBinding is the uniform buffer binding point
// reserved for push constants.
const PushConstantBinding = 0

// BindingTable maps (set, binding) pairs to flat binding
// points.
// table[set][binding] is either a binding point or NoBinding.
type BindingTable [][]int

// Lookup returns the binding point of the given binding.
func (t BindingTable) Lookup(set, binding int) (int, bool) {
	if set < 0 || set >= len(t) || binding < 0 || binding >= len(t[set]) {
		return NoBinding, false
	}
	bp := t[set][binding]
	return bp, bp != NoBinding
}

// AllocateBindings assigns binding points to every binding
// in sets.
// Sets and bindings are processed in increasing index
// order. Buffer binding points start at 1, after the push
// constant block, and image binding points start at 0.
// Each binding consumes one binding point per array
// element. Every set index up to the highest one must
// declare at least one binding.
// The result depends only on the contents of sets, which
// are not modified.
func AllocateBindings(sets []SetReflection) (BindingTable, error) {
	nset := 0
	for _, s := range sets {
		if s.Set < 0 {
			return nil, errors.Newf("gl: invalid descriptor set index %d", s.Set)
		}
		nset = max(nset, s.Set+1)
	}
	merged := make([][]BindingInfo, nset)
	for _, s := range sets {
		for _, b := range s.Bindings {
			if b.Binding < 0 {
				return nil, errors.Newf("gl: invalid binding %d in descriptor set %d", b.Binding, s.Set)
			}
			i := slices.IndexFunc(merged[s.Set], func(x BindingInfo) bool { return x.Binding == b.Binding })
			if i < 0 {
				merged[s.Set] = append(merged[s.Set], b)
				continue
			}
			// Stages may declare the same binding.
			x := &merged[s.Set][i]
			if x.Kind != b.Kind {
				return nil, errors.Newf("gl: binding %d of descriptor set %d declared as both %s and %s", b.Binding, s.Set, x.Kind, b.Kind)
			}
			x.ArraySize = max(x.ArraySize, b.ArraySize)
		}
	}
	next := [2]int{KindBuffer: PushConstantBinding + 1, KindImage: 0}
	table := make(BindingTable, nset)
	for set, bs := range merged {
		if len(bs) == 0 {
			return nil, errors.Newf("gl: descriptor set %d is undefined", set)
		}
		slices.SortFunc(bs, func(a, b BindingInfo) int { return a.Binding - b.Binding })
		table[set] = make([]int, bs[len(bs)-1].Binding+1)
		for i := range table[set] {
			table[set][i] = NoBinding
		}
		for _, b := range bs {
			table[set][b.Binding] = next[b.Kind]
			next[b.Kind] += max(b.ArraySize, 1)
		}
	}
	return table, nil
}
