// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"github.com/cockroachdb/errors"

	"github.com/gviegas/glemu/driver"
)

// handle owns a native buffer name.
// Every buffer variant delegates storage to a handle.
// Pools swap the name in place when they grow, so buffers
// sharing the handle observe the new storage.
type handle struct {
	d       *Driver
	name    uint32
	cap     int64
	storage uint32
	mem     driver.MemFlag

	// Active mapping, if any.
	mapped []byte
	mapOff int64
	mapFlg driver.MapFlag
}

// bufferRes is implemented by every buffer variant.
// span resolves the native range once, so that commands
// never need to know which variant they were given.
type bufferRes interface {
	driver.Buffer
	span() (h *handle, off, size int64)
}

// resolveBuffer returns the native range of buf.
func resolveBuffer(buf driver.Buffer) (*handle, int64, int64, error) {
	r, ok := buf.(bufferRes)
	if !ok {
		return nil, 0, 0, errors.Newf("gl: foreign buffer type %T", buf)
	}
	h, off, size := r.span()
	if h == nil || h.name == 0 {
		return nil, 0, 0, errors.New("gl: use of destroyed buffer")
	}
	return h, off, size, nil
}

// buffer implements driver.Buffer.
// A buffer with a parent is a sub-buffer: it refers to a
// range of the parent's storage and never deletes the
// native name.
type buffer struct {
	h      *handle
	off    int64
	size   int64
	parent *buffer
	subs   int
}

// storageFlags derives buffer storage flags from memory
// properties.
func storageFlags(mem driver.MemFlag) uint32 {
	flags := uint32(DYNAMIC_STORAGE_BIT)
	if mem&driver.MReadOnly == 0 {
		flags |= MAP_WRITE_BIT
	}
	if mem&driver.MHostCoherent != 0 {
		flags |= MAP_COHERENT_BIT | MAP_PERSISTENT_BIT
	}
	if mem&driver.MPersistent != 0 {
		flags |= MAP_PERSISTENT_BIT
	}
	if mem&driver.MHostCached != 0 && mem&driver.MDeviceLocal == 0 {
		flags |= CLIENT_STORAGE_BIT
	}
	if mem&(driver.MHostRead|driver.MReadOnly) != 0 {
		flags |= MAP_READ_BIT
	}
	return flags
}

// newHandle creates native storage of the given size.
func (d *Driver) newHandle(size int64, mem driver.MemFlag, data []byte) (*handle, error) {
	if size <= 0 {
		return nil, errors.Newf("gl: invalid buffer size %d", size)
	}
	name := d.n.CreateBuffer()
	if name == 0 {
		return nil, errors.Mark(errors.New("gl: failed to create buffer"), driver.ErrNoDeviceMemory)
	}
	flags := storageFlags(mem)
	d.n.NamedBufferStorage(name, int(size), data, flags)
	d.val.check(d.n, "NewBuffer")
	return &handle{
		d:       d,
		name:    name,
		cap:     size,
		storage: flags,
		mem:     mem,
	}, nil
}

// NewBuffer creates a new buffer.
func (d *Driver) NewBuffer(size int64, mem driver.MemFlag, usg driver.Usage) (driver.Buffer, error) {
	h, err := d.newHandle(size, mem, nil)
	if err != nil {
		return nil, err
	}
	return &buffer{h: h, size: size}, nil
}

func (b *buffer) span() (*handle, int64, int64) { return b.h, b.off, b.size }

// root returns the buffer that owns the handle.
func (b *buffer) root() *buffer {
	for b.parent != nil {
		b = b.parent
	}
	return b
}

// Visible returns whether the buffer is host visible.
func (b *buffer) Visible() bool {
	return b.h != nil && b.h.storage&(MAP_READ_BIT|MAP_WRITE_BIT) != 0
}

// Bytes returns the persistently mapped range of the buffer.
func (b *buffer) Bytes() []byte {
	h := b.h
	if h == nil || h.mapped == nil || h.mapFlg&driver.MapPersistent == 0 {
		return nil
	}
	lo, hi := b.off-h.mapOff, b.off+b.size-h.mapOff
	if lo < 0 || hi > int64(len(h.mapped)) {
		return nil
	}
	return h.mapped[lo:hi:hi]
}

// Cap returns the size of the buffer.
func (b *buffer) Cap() int64 { return b.size }

// checkRange validates [off, off+size) against the buffer.
// Violations are reported in validation mode only.
func (b *buffer) checkRange(call string, off, size int64) bool {
	if off >= 0 && size >= 0 && off+size <= b.size {
		return true
	}
	if b.h != nil {
		b.h.d.val.report(SevError, "%s: range [%d, %d) exceeds buffer size %d", call, off, off+size, b.size)
	}
	return false
}

// mapAccess converts mapping options to access bits.
func mapAccess(flags driver.MapFlag) (access uint32) {
	if flags&driver.MapRead != 0 {
		access |= MAP_READ_BIT
	}
	if flags&driver.MapWrite != 0 {
		access |= MAP_WRITE_BIT
	}
	if flags&driver.MapPersistent != 0 {
		access |= MAP_PERSISTENT_BIT
	}
	if flags&driver.MapCoherent != 0 {
		access |= MAP_COHERENT_BIT
	}
	if flags&driver.MapUnsync != 0 {
		access |= MAP_UNSYNCHRONIZED_BIT
	}
	return
}

// Map maps a range of the buffer.
func (b *buffer) Map(off, size int64, flags driver.MapFlag) ([]byte, error) {
	h := b.h
	if h == nil || h.name == 0 {
		return nil, errors.New("gl: map of destroyed buffer")
	}
	if flags&(driver.MapPersistent|driver.MapCoherent) != 0 && h.storage&MAP_PERSISTENT_BIT == 0 {
		return nil, errors.New("gl: persistent mapping of non-persistent buffer")
	}
	access := mapAccess(flags)
	if access&^h.storage&(MAP_READ_BIT|MAP_WRITE_BIT) != 0 {
		return nil, errors.Newf("gl: buffer storage does not allow access 0x%X", access)
	}
	if !b.checkRange("Map", off, size) {
		off = min(max(off, 0), b.size)
		size = min(max(size, 0), b.size-off)
	}
	if h.mapped != nil {
		h.d.val.report(SevWarning, "Map: buffer %d is already mapped", h.name)
		b.unmap()
	}
	p := h.d.n.MapNamedBufferRange(h.name, int(b.off+off), int(size), access)
	h.d.val.check(h.d.n, "Map")
	if p == nil && size > 0 {
		return nil, errors.Newf("gl: failed to map buffer %d", h.name)
	}
	h.mapped = p
	h.mapOff = b.off + off
	h.mapFlg = flags
	return p, nil
}

// unmap unmaps the handle and reports whether the data store
// is intact.
func (b *buffer) unmap() bool {
	h := b.h
	ok := h.d.n.UnmapNamedBuffer(h.name)
	h.mapped = nil
	h.mapOff = 0
	h.mapFlg = 0
	return ok
}

// Unmap unmaps the buffer.
func (b *buffer) Unmap() error {
	h := b.h
	if h == nil || h.mapped == nil {
		if h != nil {
			h.d.val.report(SevWarning, "Unmap: buffer %d is not mapped", h.name)
		}
		return nil
	}
	if !b.unmap() {
		return errors.Mark(errors.New("gl: buffer data store was corrupted while mapped"), driver.ErrFatal)
	}
	return nil
}

// mappedRange returns the mapped bytes covering [off, off+n)
// of the buffer, if any.
func (b *buffer) mappedRange(off, n int64) []byte {
	h := b.h
	if h.mapped == nil {
		return nil
	}
	lo := b.off + off - h.mapOff
	if lo < 0 || lo+n > int64(len(h.mapped)) {
		return nil
	}
	return h.mapped[lo : lo+n]
}

// Write copies data into the buffer at off.
// It reuses an active mapping, otherwise it maps, copies and
// unmaps.
// While the buffer is mapped without MapPersistent, only the
// mapped range can be written.
func (b *buffer) Write(off int64, data []byte) error {
	h := b.h
	if h == nil || h.name == 0 {
		return errors.New("gl: write to destroyed buffer")
	}
	n := int64(len(data))
	if !b.checkRange("Write", off, n) {
		if off < 0 || off >= b.size {
			return nil
		}
		data = data[:b.size-off]
		n = int64(len(data))
	}
	if p := b.mappedRange(off, n); p != nil && h.mapFlg&driver.MapWrite != 0 {
		copy(p, data)
		return nil
	}
	if h.mapped != nil && h.mapFlg&driver.MapPersistent == 0 {
		return errors.Newf("gl: Write: range [%d, %d) is not accessible while buffer %d is mapped", off, off+n, h.name)
	}
	if h.mapped != nil || h.storage&MAP_WRITE_BIT == 0 {
		h.d.n.NamedBufferSubData(h.name, int(b.off+off), data)
		h.d.val.check(h.d.n, "Write")
		return nil
	}
	p := h.d.n.MapNamedBufferRange(h.name, int(b.off+off), int(n), MAP_WRITE_BIT|MAP_INVALIDATE_RANGE_BIT)
	if p == nil {
		return errors.Newf("gl: failed to map buffer %d for writing", h.name)
	}
	copy(p, data)
	if !h.d.n.UnmapNamedBuffer(h.name) {
		return errors.Mark(errors.New("gl: buffer data store was corrupted while mapped"), driver.ErrFatal)
	}
	h.d.val.check(h.d.n, "Write")
	return nil
}

// Read copies buffer contents at off into data.
// The restrictions of Write apply.
func (b *buffer) Read(off int64, data []byte) error {
	h := b.h
	if h == nil || h.name == 0 {
		return errors.New("gl: read from destroyed buffer")
	}
	n := int64(len(data))
	if !b.checkRange("Read", off, n) {
		if off < 0 || off >= b.size {
			return nil
		}
		data = data[:b.size-off]
		n = int64(len(data))
	}
	if p := b.mappedRange(off, n); p != nil && h.mapFlg&driver.MapRead != 0 {
		copy(data, p)
		return nil
	}
	if h.mapped != nil && h.mapFlg&driver.MapPersistent == 0 {
		return errors.Newf("gl: Read: range [%d, %d) is not accessible while buffer %d is mapped", off, off+n, h.name)
	}
	if h.mapped != nil || h.storage&MAP_READ_BIT == 0 {
		h.d.n.GetNamedBufferSubData(h.name, int(b.off+off), data)
		h.d.val.check(h.d.n, "Read")
		return nil
	}
	p := h.d.n.MapNamedBufferRange(h.name, int(b.off+off), int(n), MAP_READ_BIT)
	if p == nil {
		return errors.Newf("gl: failed to map buffer %d for reading", h.name)
	}
	copy(data, p)
	if !h.d.n.UnmapNamedBuffer(h.name) {
		return errors.Mark(errors.New("gl: buffer data store was corrupted while mapped"), driver.ErrFatal)
	}
	h.d.val.check(h.d.n, "Read")
	return nil
}

// Sub creates a sub-buffer.
func (b *buffer) Sub(off, size int64) (driver.Buffer, error) {
	if b.h == nil || b.h.name == 0 {
		return nil, errors.New("gl: sub-buffer of destroyed buffer")
	}
	if off < 0 || size <= 0 || off+size > b.size {
		return nil, errors.Newf("gl: sub-buffer range [%d, %d) exceeds buffer size %d", off, off+size, b.size)
	}
	b.subs++
	return &buffer{
		h:      b.h,
		off:    b.off + off,
		size:   size,
		parent: b,
	}, nil
}

// Destroy destroys the buffer.
// Sub-buffers and buffers whose handle was adopted by a pool
// leave the native name alone.
func (b *buffer) Destroy() {
	if b == nil {
		return
	}
	switch {
	case b.parent != nil:
		b.parent.subs--
	case b.h != nil && b.h.name != 0:
		h := b.h
		if b.subs > 0 {
			h.d.val.report(SevError, "Destroy: buffer %d has %d live sub-buffers", h.name, b.subs)
		}
		if h.mapped != nil {
			h.d.n.UnmapNamedBuffer(h.name)
		}
		h.d.n.DeleteBuffer(h.name)
		*h = handle{}
	}
	*b = buffer{}
}

// steal transfers b's handle to the caller and leaves b
// inert.
func (b *buffer) steal() (*handle, error) {
	if b.parent != nil {
		return nil, errors.New("gl: cannot adopt the storage of a sub-buffer")
	}
	if b.h == nil || b.h.name == 0 {
		return nil, errors.New("gl: cannot adopt the storage of a destroyed buffer")
	}
	if b.subs > 0 {
		return nil, errors.Newf("gl: cannot adopt buffer with %d live sub-buffers", b.subs)
	}
	h := b.h
	b.h = nil
	return h, nil
}

// swap replaces the handle's storage with a new native buffer
// of size newCap, preserving contents.
// Bindings referring to the old name are not migrated.
func (h *handle) swap(newCap int64) error {
	name := h.d.n.CreateBuffer()
	if name == 0 {
		return errors.Mark(errors.New("gl: failed to create buffer"), driver.ErrNoDeviceMemory)
	}
	h.d.n.NamedBufferStorage(name, int(newCap), nil, h.storage)
	h.d.n.CopyNamedBufferSubData(h.name, name, 0, 0, int(min(h.cap, newCap)))
	var remap driver.MapFlag
	if h.mapped != nil {
		remap = h.mapFlg
		h.d.n.UnmapNamedBuffer(h.name)
		h.mapped = nil
	}
	h.d.n.DeleteBuffer(h.name)
	h.name = name
	h.cap = newCap
	if remap != 0 {
		h.mapped = h.d.n.MapNamedBufferRange(name, 0, int(newCap), mapAccess(remap))
		h.mapOff = 0
		h.mapFlg = remap
	}
	h.d.val.check(h.d.n, "swap")
	return nil
}
