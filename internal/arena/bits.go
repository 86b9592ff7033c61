// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package arena

import (
	"math/bits"
)

const wordBits = 64

// Bits is a growable set of slot bits.
// A set bit marks a slot in use.
type Bits struct {
	w   []uint64
	rem int
}

// Len returns the number of slots.
func (b *Bits) Len() int { return len(b.w) * wordBits }

// Rem returns the number of free slots.
func (b *Bits) Rem() int { return b.rem }

// Grow appends nplus words of free slots and returns
// the index of the first new slot.
func (b *Bits) Grow(nplus int) (index int) {
	index = b.Len()
	if nplus > 0 {
		b.rem += nplus * wordBits
		b.w = append(b.w, make([]uint64, nplus)...)
	}
	return
}

// Set marks slot index as in use.
func (b *Bits) Set(index int) {
	i, m := index/wordBits, uint64(1)<<(index%wordBits)
	if b.w[i]&m == 0 {
		b.w[i] |= m
		b.rem--
	}
}

// Unset marks slot index as free.
func (b *Bits) Unset(index int) {
	i, m := index/wordBits, uint64(1)<<(index%wordBits)
	if b.w[i]&m != 0 {
		b.w[i] &^= m
		b.rem++
	}
}

// IsSet returns whether slot index is in use.
func (b *Bits) IsSet(index int) bool {
	if index < 0 || index >= b.Len() {
		return false
	}
	return b.w[index/wordBits]&(1<<(index%wordBits)) != 0
}

// Search locates the lowest free slot.
func (b *Bits) Search() (index int, ok bool) {
	if b.rem == 0 {
		return
	}
	for i, x := range b.w {
		if x == ^uint64(0) {
			continue
		}
		return i*wordBits + bits.TrailingZeros64(^x), true
	}
	return
}

// Clear frees every slot.
func (b *Bits) Clear() {
	clear(b.w)
	b.rem = b.Len()
}
