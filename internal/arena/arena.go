// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package arena implements slot storage addressed by
// generation-checked identifiers.
package arena

import (
	"iter"
)

// ID identifies a value stored in an Arena.
// The low 32 bits hold the slot index and the high 32 bits
// hold the slot's generation. The zero ID is never valid.
type ID uint64

func makeID(index int, gen uint32) ID { return ID(uint64(gen)<<32 | uint64(uint32(index))) }

// Index returns the slot index of id.
func (id ID) Index() int { return int(uint32(id)) }

// Gen returns the generation of id.
func (id ID) Gen() uint32 { return uint32(id >> 32) }

type slot[T any] struct {
	val T
	gen uint32
}

// Arena is a dense array of values with free slot
// recycling.
// A slot's generation is bumped whenever its value is
// removed, so IDs obtained before the removal no longer
// resolve.
type Arena[T any] struct {
	slots []slot[T]
	used  Bits
}

// Insert stores v in the lowest free slot.
func (a *Arena[T]) Insert(v T) ID {
	index, ok := a.used.Search()
	if !ok {
		index = a.used.Grow(1)
		a.slots = append(a.slots, make([]slot[T], wordBits)...)
		for i := index; i < len(a.slots); i++ {
			a.slots[i].gen = 1
		}
	}
	a.used.Set(index)
	a.slots[index].val = v
	return makeID(index, a.slots[index].gen)
}

// Get returns a pointer to the value identified by id.
// The pointer is valid until the next Insert or Remove.
func (a *Arena[T]) Get(id ID) (*T, bool) {
	i := id.Index()
	if !a.used.IsSet(i) || a.slots[i].gen != id.Gen() {
		return nil, false
	}
	return &a.slots[i].val, true
}

// Remove removes the value identified by id.
// The slot is cleared before it becomes available
// for reuse.
func (a *Arena[T]) Remove(id ID) (v T, ok bool) {
	i := id.Index()
	if !a.used.IsSet(i) || a.slots[i].gen != id.Gen() {
		return
	}
	v = a.slots[i].val
	var zero T
	a.slots[i].val = zero
	a.slots[i].gen++
	if a.slots[i].gen == 0 {
		a.slots[i].gen = 1
	}
	a.used.Unset(i)
	return v, true
}

// Len returns the number of stored values.
func (a *Arena[T]) Len() int { return a.used.Len() - a.used.Rem() }

// All returns an iterator over the stored values.
func (a *Arena[T]) All() iter.Seq2[ID, *T] {
	return func(yield func(ID, *T) bool) {
		for i := range a.slots {
			if !a.used.IsSet(i) {
				continue
			}
			if !yield(makeID(i, a.slots[i].gen), &a.slots[i].val) {
				return
			}
		}
	}
}
