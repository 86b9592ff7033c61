// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"github.com/cockroachdb/errors"

	"github.com/gviegas/glemu/driver"
)

// copyImage asserts that img is a live image.
func copyImage(call string, img driver.Image) (*image, error) {
	m, ok := img.(*image)
	if !ok || m == nil || m.d == nil {
		return nil, errors.Newf("gl: %s: invalid image %T", call, img)
	}
	return m, nil
}

// slices returns the first layer and the number of layers
// addressed by a copy. Depth slices of 3D images count as
// layers.
func (m *image) slices(layer, z, layers, depth int) (first, count int) {
	if m.target == TEXTURE_3D {
		return z, max(depth, 1)
	}
	return layer, max(layers, 1)
}

// checkSub checks that [layer, layer+layers) and level are
// within m.
func (m *image) checkSub(call string, layer, layers, level int) error {
	n := m.layers
	if m.target == TEXTURE_3D {
		n = mipExtent(m.size, max(level, 0)).Depth
	}
	if layer < 0 || layer+layers > n || level < 0 || level >= m.levels {
		return errors.Newf("gl: %s: subresource [%d, %d) level %d exceeds image", call, layer, layer+layers, level)
	}
	return nil
}

// CopyBuffer copies data between buffers.
func (c *cmdBuffer) CopyBuffer(param *driver.BufferCopy) error {
	if c.state != cmdRecording {
		return errNotRecording
	}
	src, soff, ssize, err := resolveBuffer(param.From)
	if err != nil {
		return err
	}
	dst, doff, dsize, err := resolveBuffer(param.To)
	if err != nil {
		return err
	}
	if param.FromOff < 0 || param.FromOff+param.Size > ssize || param.ToOff < 0 || param.ToOff+param.Size > dsize {
		return errors.Newf("gl: CopyBuffer: range of size %d out of bounds", param.Size)
	}
	c.d.n.CopyNamedBufferSubData(src.name, dst.name, int(soff+param.FromOff), int(doff+param.ToOff), int(param.Size))
	c.d.val.check(c.d.n, "CopyBuffer")
	return nil
}

// blitLayers blits count layers from src to dst through
// framebuffers that target single layers.
func (c *cmdBuffer) blitLayers(src *image, sFirst, sLevel int, s0, s1 [2]int32, dst *image, dFirst, dLevel int, d0, d1 [2]int32, count int, filter uint32) {
	n := c.d.n
	mask := blitMask(dst.pf)
	if mask != COLOR_BUFFER_BIT {
		filter = NEAREST
	}
	c.openMasks()
	for i := range count {
		sf := src.subFramebuffer(sFirst+i, 1, sLevel, 1)
		df := dst.subFramebuffer(dFirst+i, 1, dLevel, 1)
		n.BlitNamedFramebuffer(sf.fb, df.fb, s0, s1, d0, d1, mask, filter)
	}
	c.restore()
}

func rect(off driver.Off3D, w, h int) (r0, r1 [2]int32) {
	r0 = [2]int32{int32(off.X), int32(off.Y)}
	r1 = [2]int32{int32(off.X + w), int32(off.Y + max(h, 1))}
	return
}

// compatibleBlocks reports whether data can be copied
// between a and b bit for bit.
func compatibleBlocks(a, b *pixelInfo) bool {
	if a.block != b.block {
		return false
	}
	return a.bw == b.bw || a.bw == 1 || b.bw == 1
}

// CopyImage copies data between images.
// Compressed sources are decoded by drawing. Compressed
// destinations require a source with the same block size.
func (c *cmdBuffer) CopyImage(param *driver.ImageCopy) error {
	if c.state != cmdRecording {
		return errNotRecording
	}
	src, err := copyImage("CopyImage", param.From)
	if err != nil {
		return err
	}
	dst, err := copyImage("CopyImage", param.To)
	if err != nil {
		return err
	}
	sFirst, count := src.slices(param.FromLayer, param.FromOff.Z, param.Layers, param.Size.Depth)
	dFirst, dcount := dst.slices(param.ToLayer, param.ToOff.Z, param.Layers, param.Size.Depth)
	if count != dcount {
		return errors.Newf("gl: CopyImage: copying %d layers into %d", count, dcount)
	}
	if !src.swapchain {
		if err := src.checkSub("CopyImage", sFirst, count, param.FromLevel); err != nil {
			return err
		}
	}
	if !dst.swapchain {
		if err := dst.checkSub("CopyImage", dFirst, count, param.ToLevel); err != nil {
			return err
		}
	}

	switch {
	case dst.pf.IsCompressed():
		if src.swapchain || !compatibleBlocks(&src.info, &dst.info) {
			return errors.Mark(errors.New("gl: CopyImage into compressed image with incompatible format"), driver.ErrUnsupported)
		}
		sz, dz := param.FromOff.Z, param.ToOff.Z
		if src.target != TEXTURE_3D {
			sz = sFirst
		}
		if dst.target != TEXTURE_3D {
			dz = dFirst
		}
		c.d.n.CopyImageSubData(
			src.tex, src.target, param.FromLevel, param.FromOff.X, param.FromOff.Y, sz,
			dst.tex, dst.target, param.ToLevel, param.ToOff.X, param.ToOff.Y, dz,
			param.Size.Width, max(param.Size.Height, 1), count)

	case src.pf.IsCompressed():
		s0 := [2]int{param.FromOff.X, param.FromOff.Y}
		s1 := [2]int{param.FromOff.X + param.Size.Width, param.FromOff.Y + max(param.Size.Height, 1)}
		d0 := [2]int{param.ToOff.X, param.ToOff.Y}
		d1 := [2]int{param.ToOff.X + param.Size.Width, param.ToOff.Y + max(param.Size.Height, 1)}
		for i := range count {
			if err := c.blitTex(src, sFirst+i, param.FromLevel, s0, s1, dst, dFirst+i, param.ToLevel, d0, d1, false); err != nil {
				return err
			}
		}

	default:
		if src.pf.IsDS() != dst.pf.IsDS() {
			return errors.New("gl: CopyImage between color and depth/stencil images")
		}
		s0, s1 := rect(param.FromOff, param.Size.Width, param.Size.Height)
		d0, d1 := rect(param.ToOff, param.Size.Width, param.Size.Height)
		c.blitLayers(src, sFirst, param.FromLevel, s0, s1, dst, dFirst, param.ToLevel, d0, d1, count, NEAREST)
	}
	c.d.val.check(c.d.n, "CopyImage")
	return nil
}

// BlitImage copies scaled regions between images.
func (c *cmdBuffer) BlitImage(param *driver.ImageBlit) error {
	if c.state != cmdRecording {
		return errNotRecording
	}
	src, err := copyImage("BlitImage", param.From)
	if err != nil {
		return err
	}
	dst, err := copyImage("BlitImage", param.To)
	if err != nil {
		return err
	}
	if dst.pf.IsCompressed() {
		return errors.Mark(errors.New("gl: BlitImage into compressed image"), driver.ErrUnsupported)
	}
	sr, dr := param.FromRect, param.ToRect
	sFirst, count := src.slices(param.FromLayer, sr[0].Z, param.Layers, sr[1].Z-sr[0].Z)
	dFirst, dcount := dst.slices(param.ToLayer, dr[0].Z, param.Layers, dr[1].Z-dr[0].Z)
	if count != dcount {
		return errors.Newf("gl: BlitImage: blitting %d layers into %d", count, dcount)
	}
	if !src.swapchain {
		if err := src.checkSub("BlitImage", sFirst, count, param.FromLevel); err != nil {
			return err
		}
	}
	if !dst.swapchain {
		if err := dst.checkSub("BlitImage", dFirst, count, param.ToLevel); err != nil {
			return err
		}
	}
	if src.pf.IsCompressed() {
		s0, s1 := [2]int{sr[0].X, sr[0].Y}, [2]int{sr[1].X, sr[1].Y}
		d0, d1 := [2]int{dr[0].X, dr[0].Y}, [2]int{dr[1].X, dr[1].Y}
		for i := range count {
			if err := c.blitTex(src, sFirst+i, param.FromLevel, s0, s1, dst, dFirst+i, param.ToLevel, d0, d1, param.Filter == driver.FLinear); err != nil {
				return err
			}
		}
		return nil
	}
	c.blitLayers(src, sFirst, param.FromLevel,
		[2]int32{int32(sr[0].X), int32(sr[0].Y)}, [2]int32{int32(sr[1].X), int32(sr[1].Y)},
		dst, dFirst, param.ToLevel,
		[2]int32{int32(dr[0].X), int32(dr[0].Y)}, [2]int32{int32(dr[1].X), int32(dr[1].Y)},
		count, convFilter(param.Filter))
	c.d.val.check(c.d.n, "BlitImage")
	return nil
}

// ResolveImage resolves a multisample image into a
// single-sample image.
func (c *cmdBuffer) ResolveImage(param *driver.ImageCopy) error {
	if c.state != cmdRecording {
		return errNotRecording
	}
	src, err := copyImage("ResolveImage", param.From)
	if err != nil {
		return err
	}
	dst, err := copyImage("ResolveImage", param.To)
	if err != nil {
		return err
	}
	if src.samples <= 1 || dst.samples != 1 {
		return errors.Newf("gl: ResolveImage from %d samples into %d", src.samples, dst.samples)
	}
	count := max(param.Layers, 1)
	if err := src.checkSub("ResolveImage", param.FromLayer, count, 0); err != nil {
		return err
	}
	if !dst.swapchain {
		if err := dst.checkSub("ResolveImage", param.ToLayer, count, param.ToLevel); err != nil {
			return err
		}
	}
	s0, s1 := rect(param.FromOff, param.Size.Width, param.Size.Height)
	d0, d1 := rect(param.ToOff, param.Size.Width, param.Size.Height)
	c.blitLayers(src, param.FromLayer, 0, s0, s1, dst, param.ToLayer, param.ToLevel, d0, d1, count, NEAREST)
	c.d.val.check(c.d.n, "ResolveImage")
	return nil
}

// ClearImage clears a subresource range of an image.
func (c *cmdBuffer) ClearImage(img driver.Image, layer, layers, level, levels int, value driver.ClearValue) error {
	if c.state != cmdRecording {
		return errNotRecording
	}
	m, err := copyImage("ClearImage", img)
	if err != nil {
		return err
	}
	if m.pf.IsCompressed() {
		return errors.Mark(errors.New("gl: ClearImage of compressed image"), driver.ErrUnsupported)
	}
	layers = max(layers, 1)
	levels = max(levels, 1)
	if !m.swapchain && (layer < 0 || layer+layers > m.layers || level < 0 || level+levels > m.levels) {
		return errors.Newf("gl: ClearImage: range [%d, %d)x[%d, %d) exceeds image", layer, layer+layers, level, level+levels)
	}
	c.openMasks()
	for l := level; l < level+levels; l++ {
		if m.target == TEXTURE_3D {
			m.clearRange(0, mipExtent(m.size, l).Depth, l, value, true, true)
		} else {
			m.clearRange(layer, layers, l, value, true, true)
		}
	}
	c.restore()
	c.d.val.check(c.d.n, "ClearImage")
	return nil
}

// transfer describes a pixel transfer between a buffer and
// a texture.
type transfer struct {
	m             *image
	x, y, z       int
	width, height int
	depth         int
	format, typ   uint32
	// Size in bytes of the transfer, given the row length
	// and image height in pixels.
	size int64
}

// newTransfer validates param and computes its transfer.
func newTransfer(call string, param *driver.BufImgCopy, bsize int64) (*transfer, error) {
	m, err := copyImage(call, param.Img)
	if err != nil {
		return nil, err
	}
	if m.swapchain || m.samples > 1 {
		return nil, errors.Mark(errors.Newf("gl: %s with swapchain or multisample image", call), driver.ErrUnsupported)
	}
	if param.Level < 0 || param.Level >= m.levels || param.Layer < 0 || param.Layer >= m.layers {
		return nil, errors.Newf("gl: %s: subresource (%d, %d) out of range", call, param.Layer, param.Level)
	}
	t := &transfer{
		m:      m,
		x:      param.ImgOff.X,
		y:      param.ImgOff.Y,
		z:      param.ImgOff.Z,
		width:  param.Size.Width,
		height: max(param.Size.Height, 1),
		depth:  max(param.Size.Depth, 1),
		format: m.info.format,
		typ:    m.info.typ,
	}
	switch m.target {
	case TEXTURE_1D_ARRAY:
		t.y = param.Layer
	case TEXTURE_2D_ARRAY, TEXTURE_CUBE_MAP, TEXTURE_CUBE_MAP_ARRAY:
		t.z = param.Layer
		t.depth = 1
	}
	row := param.Stride[0]
	if row <= 0 {
		row = int64(t.width)
	}
	img := param.Stride[1]
	if img <= 0 {
		img = int64(t.height)
	}
	info := m.info
	t.size = info.rowPitch(int(row))*info.rows(int(img))*int64(t.depth-1) +
		info.rowPitch(int(row))*(info.rows(t.height)-1) + info.rowPitch(t.width)
	if param.BufOff < 0 || param.BufOff+t.size > bsize {
		return nil, errors.Newf("gl: %s: %d bytes at offset %d exceed buffer size %d", call, t.size, param.BufOff, bsize)
	}
	return t, nil
}

// pixelStore sets the row length and image height of a
// pixel transfer. Zero restores tight packing.
func (c *cmdBuffer) pixelStore(pack bool, stride [2]int64) {
	rl, ih := uint32(UNPACK_ROW_LENGTH), uint32(UNPACK_IMAGE_HEIGHT)
	if pack {
		rl, ih = PACK_ROW_LENGTH, PACK_IMAGE_HEIGHT
	}
	c.d.n.PixelStorei(rl, int32(max(stride[0], 0)))
	c.d.n.PixelStorei(ih, int32(max(stride[1], 0)))
}

// CopyBufToImg copies data from a buffer to an image.
// Compressed images are written one whole level at a time.
// Combined depth/stencil images cannot be written one
// aspect at a time.
func (c *cmdBuffer) CopyBufToImg(param *driver.BufImgCopy) error {
	if c.state != cmdRecording {
		return errNotRecording
	}
	h, boff, bsize, err := resolveBuffer(param.Buf)
	if err != nil {
		return err
	}
	t, err := newTransfer("CopyBufToImg", param, bsize)
	if err != nil {
		return err
	}
	m := t.m
	if m.info.format == DEPTH_STENCIL {
		return errors.Mark(errors.New("gl: CopyBufToImg into combined depth/stencil image"), driver.ErrUnsupported)
	}
	n := c.d.n
	if m.pf.IsCompressed() {
		ext := mipExtent(m.size, param.Level)
		if t.x != 0 || t.y != 0 || param.ImgOff.Z != 0 || t.width != ext.Width || t.height != max(ext.Height, 1) {
			return errors.Mark(errors.New("gl: CopyBufToImg into part of a compressed level"), driver.ErrUnsupported)
		}
	}
	n.BindBuffer(PIXEL_UNPACK_BUFFER, h.name)
	c.pixelStore(false, param.Stride)
	off := int(boff + param.BufOff)
	if m.pf.IsCompressed() {
		n.CompressedTextureSubImage(m.tex, param.Level, t.x, t.y, t.z, t.width, t.height, t.depth, m.info.internal, int(t.size), off)
	} else {
		n.TextureSubImage(m.tex, param.Level, t.x, t.y, t.z, t.width, t.height, t.depth, t.format, t.typ, off)
	}
	c.pixelStore(false, [2]int64{})
	n.BindBuffer(PIXEL_UNPACK_BUFFER, 0)
	c.d.val.check(n, "CopyBufToImg")
	return nil
}

// CopyImgToBuf copies data from an image to a buffer.
// For combined depth/stencil images, DepthCopy selects the
// aspect that is read.
func (c *cmdBuffer) CopyImgToBuf(param *driver.BufImgCopy) error {
	if c.state != cmdRecording {
		return errNotRecording
	}
	h, boff, bsize, err := resolveBuffer(param.Buf)
	if err != nil {
		return err
	}
	t, err := newTransfer("CopyImgToBuf", param, bsize)
	if err != nil {
		return err
	}
	m := t.m
	if m.pf.IsCompressed() {
		return errors.Mark(errors.New("gl: CopyImgToBuf from compressed image"), driver.ErrUnsupported)
	}
	if m.info.format == DEPTH_STENCIL {
		if param.DepthCopy {
			t.format = DEPTH_COMPONENT
			t.typ = FLOAT
		} else {
			t.format = STENCIL_INDEX
			t.typ = UNSIGNED_BYTE
		}
	}
	n := c.d.n
	n.BindBuffer(PIXEL_PACK_BUFFER, h.name)
	c.pixelStore(true, param.Stride)
	n.GetTextureSubImage(m.tex, param.Level, t.x, t.y, t.z, t.width, t.height, t.depth, t.format, t.typ, int(bsize-param.BufOff), int(boff+param.BufOff))
	c.pixelStore(true, [2]int64{})
	n.BindBuffer(PIXEL_PACK_BUFFER, 0)
	c.d.val.check(n, "CopyImgToBuf")
	return nil
}

// Fill fills a buffer range with copies of value.
func (c *cmdBuffer) Fill(buf driver.Buffer, off int64, value uint32, size int64) {
	if !c.recording("Fill") {
		return
	}
	h, boff, bsize, err := resolveBuffer(buf)
	if err != nil {
		c.d.val.report(SevError, "Fill: %v", err)
		return
	}
	if off%4 != 0 || size%4 != 0 {
		c.d.val.report(SevError, "Fill: offset %d and size %d must be aligned to 4 bytes", off, size)
		return
	}
	if off < 0 || off+size > bsize {
		c.d.val.report(SevError, "Fill: range [%d, %d) exceeds buffer size %d", off, off+size, bsize)
		return
	}
	c.d.n.ClearNamedBufferSubData(h.name, int(boff+off), int(size), value)
	c.d.val.check(c.d.n, "Fill")
}

// Update writes data into a buffer range.
func (c *cmdBuffer) Update(buf driver.Buffer, off int64, data []byte) {
	if !c.recording("Update") {
		return
	}
	h, boff, bsize, err := resolveBuffer(buf)
	if err != nil {
		c.d.val.report(SevError, "Update: %v", err)
		return
	}
	if off < 0 || off+int64(len(data)) > bsize {
		c.d.val.report(SevError, "Update: range [%d, %d) exceeds buffer size %d", off, off+int64(len(data)), bsize)
		return
	}
	c.d.n.NamedBufferSubData(h.name, int(boff+off), data)
	c.d.val.check(c.d.n, "Update")
}

// Barrier inserts global memory barriers.
func (c *cmdBuffer) Barrier(b []driver.Barrier) {
	if !c.recording("Barrier") {
		return
	}
	if bits := convBarrier(b); bits != 0 {
		c.d.n.MemoryBarrier(bits)
	}
}
