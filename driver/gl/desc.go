// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"github.com/gviegas/glemu/driver"
)

// bufferElem is an element of a buffer descriptor.
type bufferElem struct {
	buf  driver.Buffer
	off  int64
	size int64
}

// imageElem is an element of an image descriptor.
// A negative layer selects the whole view.
type imageElem struct {
	view  *imageView
	splr  *sampler
	layer int
}

// descriptor is a descriptor of a descSet.
type descriptor struct {
	typ  driver.DescType
	nr   int
	bufs []bufferElem
	imgs []imageElem
}

// descSet implements driver.DescSet.
// Descriptors are kept in layout order.
type descSet struct {
	d    *Driver
	desc []descriptor
}

// NewDescSet creates a new descriptor set.
func (d *Driver) NewDescSet(layout []driver.Descriptor) (driver.DescSet, error) {
	ds := &descSet{d: d, desc: make([]descriptor, len(layout))}
	for i, l := range layout {
		n := max(l.Len, 1)
		ds.desc[i] = descriptor{typ: l.Type, nr: l.Nr}
		if l.Type.IsImage() {
			ds.desc[i].imgs = make([]imageElem, n)
			for j := range ds.desc[i].imgs {
				ds.desc[i].imgs[j].layer = -1
			}
		} else {
			ds.desc[i].bufs = make([]bufferElem, n)
		}
	}
	return ds, nil
}

// find returns the descriptor whose binding number is nr.
func (ds *descSet) find(nr int) *descriptor {
	for i := range ds.desc {
		if ds.desc[i].nr == nr {
			return &ds.desc[i]
		}
	}
	ds.d.val.report(SevError, "DescSet: no descriptor %d", nr)
	return nil
}

// SetBuffer updates buffer elements of descriptor nr.
// A nil or omitted size covers the rest of the buffer.
func (ds *descSet) SetBuffer(nr, start int, buf []driver.Buffer, off, size []int64) {
	desc := ds.find(nr)
	if desc == nil {
		return
	}
	if desc.typ.IsImage() {
		ds.d.val.report(SevError, "DescSet.SetBuffer: descriptor %d is not a buffer descriptor", nr)
		return
	}
	for i := range buf {
		j := start + i
		if j < 0 || j >= len(desc.bufs) {
			ds.d.val.report(SevError, "DescSet.SetBuffer: element %d out of range [0, %d)", j, len(desc.bufs))
			return
		}
		e := bufferElem{buf: buf[i]}
		if i < len(off) {
			e.off = off[i]
		}
		if i < len(size) {
			e.size = size[i]
		}
		desc.bufs[j] = e
	}
}

// SetImage updates image elements of descriptor nr.
func (ds *descSet) SetImage(nr, start int, iv []driver.ImageView, splr []driver.Sampler) {
	desc := ds.find(nr)
	if desc == nil {
		return
	}
	if !desc.typ.IsImage() {
		ds.d.val.report(SevError, "DescSet.SetImage: descriptor %d is not an image descriptor", nr)
		return
	}
	for i := range iv {
		j := start + i
		if j < 0 || j >= len(desc.imgs) {
			ds.d.val.report(SevError, "DescSet.SetImage: element %d out of range [0, %d)", j, len(desc.imgs))
			return
		}
		e := imageElem{layer: -1}
		if iv[i] != nil {
			e.view = iv[i].(*imageView)
		}
		if i < len(splr) && splr[i] != nil {
			e.splr = splr[i].(*sampler)
		}
		desc.imgs[j] = e
	}
}

// SetLayer selects a single layer of element idx.
func (ds *descSet) SetLayer(nr, idx, layer int) {
	desc := ds.find(nr)
	if desc == nil {
		return
	}
	if !desc.typ.IsImage() || idx < 0 || idx >= len(desc.imgs) {
		ds.d.val.report(SevError, "DescSet.SetLayer: invalid element %d of descriptor %d", idx, nr)
		return
	}
	desc.imgs[idx].layer = layer
}

// Destroy destroys the descriptor set.
func (ds *descSet) Destroy() {
	if ds == nil {
		return
	}
	*ds = descSet{}
}
