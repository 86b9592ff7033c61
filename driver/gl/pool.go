// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/gviegas/glemu/driver"
	"github.com/gviegas/glemu/internal/arena"
)

// alignUp rounds n up to a multiple of a.
func alignUp(n, a int64) int64 {
	if a <= 1 {
		return n
	}
	return (n + a - 1) / a * a
}

// span is a range of pool storage.
type span struct {
	off, size int64
}

// dynPool implements driver.DynamicPool.
// Allocation is first-fit over a sorted free list.
type dynPool struct {
	buffer
	max   int64
	align int64
	free  []span
	used  map[int64]int64
}

// NewDynamicPool creates a new dynamic pool that adopts the
// storage of buf.
func (d *Driver) NewDynamicPool(buf driver.Buffer, maxSize int64) (driver.DynamicPool, error) {
	b, ok := buf.(*buffer)
	if !ok {
		return nil, errors.Newf("gl: cannot adopt buffer of type %T", buf)
	}
	h, err := b.steal()
	if err != nil {
		return nil, err
	}
	if maxSize < h.cap {
		maxSize = h.cap
	}
	return &dynPool{
		buffer: buffer{h: h, size: h.cap},
		max:    maxSize,
		align:  max(d.lim.ConstantAlign, d.lim.BufferAlign, 1),
		free:   []span{{0, h.cap}},
		used:   make(map[int64]int64),
	}, nil
}

// Alloc allocates size bytes.
// The pool grows if no free range fits.
func (p *dynPool) Alloc(size int64) (int64, error) {
	if size <= 0 {
		return 0, errors.Newf("gl: invalid allocation size %d", size)
	}
	size = alignUp(size, p.align)
	for {
		for i, s := range p.free {
			if s.size < size {
				continue
			}
			if s.size == size {
				p.free = slices.Delete(p.free, i, i+1)
			} else {
				p.free[i] = span{s.off + size, s.size - size}
			}
			p.used[s.off] = size
			return s.off, nil
		}
		need := p.tail() + size
		if need > p.max {
			return 0, errors.Mark(errors.Newf("gl: pool cannot fit %d bytes (max %d)", size, p.max), driver.ErrNoDeviceMemory)
		}
		n := p.size * 2
		for n < need {
			n *= 2
		}
		if err := p.Grow(min(n, p.max)); err != nil {
			return 0, err
		}
	}
}

// tail returns the start of the trailing free range, or
// the pool size if the last byte is in use.
func (p *dynPool) tail() int64 {
	if n := len(p.free); n > 0 && p.free[n-1].off+p.free[n-1].size == p.size {
		return p.free[n-1].off
	}
	return p.size
}

// Free frees the allocation at off.
func (p *dynPool) Free(off int64) {
	size, ok := p.used[off]
	if !ok {
		p.h.d.val.report(SevError, "DynamicPool.Free: no allocation at offset %d", off)
		return
	}
	delete(p.used, off)
	i, _ := slices.BinarySearchFunc(p.free, off, func(s span, off int64) int {
		switch {
		case s.off < off:
			return -1
		case s.off > off:
			return 1
		}
		return 0
	})
	p.free = slices.Insert(p.free, i, span{off, size})
	// Coalesce with neighbors.
	if i+1 < len(p.free) && p.free[i].off+p.free[i].size == p.free[i+1].off {
		p.free[i].size += p.free[i+1].size
		p.free = slices.Delete(p.free, i+1, i+2)
	}
	if i > 0 && p.free[i-1].off+p.free[i-1].size == p.free[i].off {
		p.free[i-1].size += p.free[i].size
		p.free = slices.Delete(p.free, i, i+1)
	}
}

// Grow grows the pool to at least size bytes.
// Live allocations keep their offsets.
func (p *dynPool) Grow(size int64) error {
	if size <= p.size {
		return nil
	}
	if size > p.max {
		return errors.Mark(errors.Newf("gl: pool cannot grow to %d bytes (max %d)", size, p.max), driver.ErrNoDeviceMemory)
	}
	if err := p.h.swap(size); err != nil {
		return err
	}
	if n := len(p.free); n > 0 && p.free[n-1].off+p.free[n-1].size == p.size {
		p.free[n-1].size += size - p.size
	} else {
		p.free = append(p.free, span{p.size, size - p.size})
	}
	p.size = size
	return nil
}

// Sub is not supported on pools; allocations are
// addressed by offset.
func (p *dynPool) Sub(off, size int64) (driver.Buffer, error) {
	return nil, errors.Mark(errors.New("gl: sub-buffer of a pool"), driver.ErrUnsupported)
}

// Destroy destroys the pool.
func (p *dynPool) Destroy() {
	p.buffer.Destroy()
	p.free = nil
	p.used = nil
}

// uniPool implements driver.UniformPool.
// Instances are fixed-stride slots tracked by a bit set.
type uniPool struct {
	buffer
	max    int64
	stride int64
	slots  arena.Bits
}

// NewUniformPool creates a new uniform pool that adopts the
// storage of buf.
// The initial instance count is the capacity of buf divided
// by the stride.
func (d *Driver) NewUniformPool(buf driver.Buffer, instSize, maxSize int64) (driver.UniformPool, error) {
	if instSize <= 0 {
		return nil, errors.Newf("gl: invalid instance size %d", instSize)
	}
	b, ok := buf.(*buffer)
	if !ok {
		return nil, errors.Newf("gl: cannot adopt buffer of type %T", buf)
	}
	stride := alignUp(instSize, max(d.lim.ConstantAlign, 1))
	if b.size < stride {
		return nil, errors.Newf("gl: uniform pool buffer size %d is less than stride %d", b.size, stride)
	}
	if maxSize < b.size {
		return nil, errors.Newf("gl: uniform pool max size %d is less than buffer size %d", maxSize, b.size)
	}
	h, err := b.steal()
	if err != nil {
		return nil, err
	}
	return &uniPool{
		buffer: buffer{h: h, size: h.cap / stride * stride},
		max:    maxSize / stride * stride,
		stride: stride,
	}, nil
}

// Stride returns the distance between instances.
func (p *uniPool) Stride() int64 { return p.stride }

// Alloc allocates an instance.
// The pool doubles its storage when full, up to the
// maximum size.
func (p *uniPool) Alloc() (int64, error) {
	i, ok := p.slots.Search()
	if !ok {
		i = p.slots.Grow(1)
	}
	off := int64(i) * p.stride
	if off+p.stride > p.size {
		n := min(max(p.size*2, off+p.stride), p.max)
		if off+p.stride > n {
			return 0, errors.Mark(errors.Newf("gl: uniform pool exhausted (max %d)", p.max), driver.ErrNoDeviceMemory)
		}
		if err := p.h.swap(n); err != nil {
			return 0, err
		}
		p.size = n
	}
	p.slots.Set(i)
	return off, nil
}

// Free frees the instance at off.
func (p *uniPool) Free(off int64) {
	i := int(off / p.stride)
	if off%p.stride != 0 || !p.slots.IsSet(i) {
		p.h.d.val.report(SevError, "UniformPool.Free: no instance at offset %d", off)
		return
	}
	p.slots.Unset(i)
}

// Sub is not supported on pools.
func (p *uniPool) Sub(off, size int64) (driver.Buffer, error) {
	return nil, errors.Mark(errors.New("gl: sub-buffer of a pool"), driver.ErrUnsupported)
}

// Destroy destroys the pool.
func (p *uniPool) Destroy() {
	p.buffer.Destroy()
	p.slots.Clear()
}
