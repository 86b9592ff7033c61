// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"github.com/cockroachdb/errors"

	"github.com/gviegas/glemu/driver"
)

// image implements driver.Image.
type image struct {
	d       *Driver
	tex     uint32
	target  uint32
	pf      driver.PixelFmt
	info    pixelInfo
	size    driver.Dim3D
	layers  int
	levels  int
	samples int
	usg     driver.Usage
	// Linear layout of every subresource, layer-major.
	layout []driver.SubLayout
	// Framebuffers created for subresource ranges.
	fbs []*subFB
	// The swapchain's logical image has no texture and
	// always resolves to the default framebuffer.
	swapchain bool
}

// imageTarget selects a texture target for the given
// dimensions.
func imageTarget(size driver.Dim3D, layers, samples int) uint32 {
	switch {
	case size.Height <= 0:
		if layers > 1 {
			return TEXTURE_1D_ARRAY
		}
		return TEXTURE_1D
	case size.Depth > 1:
		return TEXTURE_3D
	case samples > 1:
		if layers > 1 {
			return TEXTURE_2D_MULTISAMPLE_ARRAY
		}
		return TEXTURE_2D_MULTISAMPLE
	case layers > 1:
		return TEXTURE_2D_ARRAY
	}
	return TEXTURE_2D
}

// subLayouts computes the linear layout of every subresource.
// Entries are ordered by layer, then by level.
func subLayouts(info *pixelInfo, size driver.Dim3D, layers, levels int) (lay []driver.SubLayout, total int64) {
	size.Height = max(size.Height, 1)
	size.Depth = max(size.Depth, 1)
	lay = make([]driver.SubLayout, 0, layers*levels)
	for range layers {
		for j := range levels {
			ext := mipExtent(size, j)
			row := info.rowPitch(ext.Width)
			slice := row * info.rows(ext.Height)
			n := slice * int64(ext.Depth)
			lay = append(lay, driver.SubLayout{
				Offset:     total,
				Size:       n,
				RowPitch:   row,
				SlicePitch: slice,
			})
			total += n
		}
	}
	return
}

// MemoryRequirement returns the number of bytes needed to
// store every subresource of an image linearly.
func MemoryRequirement(pf driver.PixelFmt, size driver.Dim3D, layers, levels int) (int64, error) {
	info, ok := convPixelFmt(pf)
	if !ok {
		return 0, errors.Mark(errors.Newf("gl: pixel format %d", pf), driver.ErrUnsupported)
	}
	_, n := subLayouts(&info, size, max(layers, 1), max(levels, 1))
	return n, nil
}

// NewImage creates a new image.
func (d *Driver) NewImage(pf driver.PixelFmt, size driver.Dim3D, layers, levels, samples int, usg driver.Usage) (driver.Image, error) {
	info, ok := convPixelFmt(pf)
	if !ok {
		return nil, errors.Mark(errors.Newf("gl: pixel format %d", pf), driver.ErrUnsupported)
	}
	if size.Width <= 0 {
		return nil, errors.Newf("gl: invalid image width %d", size.Width)
	}
	layers = max(layers, 1)
	levels = max(levels, 1)
	samples = max(samples, 1)
	if samples > 1 && levels > 1 {
		return nil, errors.New("gl: multisample image cannot have multiple levels")
	}
	if pf.IsCompressed() && samples > 1 {
		return nil, errors.Mark(errors.New("gl: multisample compressed image"), driver.ErrUnsupported)
	}
	target := imageTarget(size, layers, samples)
	tex := d.n.CreateTexture(target)
	if tex == 0 {
		return nil, errors.Mark(errors.New("gl: failed to create texture"), driver.ErrNoDeviceMemory)
	}
	w, h, z := size.Width, max(size.Height, 1), max(size.Depth, 1)
	switch target {
	case TEXTURE_1D_ARRAY:
		h = layers
	case TEXTURE_2D_ARRAY, TEXTURE_2D_MULTISAMPLE_ARRAY:
		z = layers
	}
	if samples > 1 {
		d.n.TextureStorageMS(tex, target, samples, info.internal, w, h, z)
	} else {
		d.n.TextureStorage(tex, target, levels, info.internal, w, h, z)
	}
	d.val.check(d.n, "NewImage")
	lay, _ := subLayouts(&info, size, layers, levels)
	return &image{
		d:       d,
		tex:     tex,
		target:  target,
		pf:      pf,
		info:    info,
		size:    size,
		layers:  layers,
		levels:  levels,
		samples: samples,
		usg:     usg,
		layout:  lay,
	}, nil
}

// Layout returns the linear layout of a subresource.
func (m *image) Layout(layer, level int) driver.SubLayout {
	if layer < 0 || layer >= m.layers || level < 0 || level >= m.levels {
		m.d.val.report(SevError, "Layout: subresource (%d, %d) out of range", layer, level)
		return driver.SubLayout{}
	}
	return m.layout[layer*m.levels+level]
}

// Format returns the image's pixel format.
func (m *image) Format() driver.PixelFmt { return m.pf }

// Destroy destroys the image and every framebuffer created
// for it.
func (m *image) Destroy() {
	if m == nil || m.d == nil {
		return
	}
	for _, fb := range m.fbs {
		m.d.n.DeleteFramebuffer(fb.fb)
	}
	if m.tex != 0 {
		m.d.n.DeleteTexture(m.tex)
	}
	*m = image{}
}

// viewTarget converts a driver.ViewType.
func viewTarget(typ driver.ViewType) (uint32, bool) {
	switch typ {
	case driver.IView1D:
		return TEXTURE_1D, true
	case driver.IView2D:
		return TEXTURE_2D, true
	case driver.IView3D:
		return TEXTURE_3D, true
	case driver.IViewCube:
		return TEXTURE_CUBE_MAP, true
	case driver.IView1DArray:
		return TEXTURE_1D_ARRAY, true
	case driver.IView2DArray:
		return TEXTURE_2D_ARRAY, true
	case driver.IViewCubeArray:
		return TEXTURE_CUBE_MAP_ARRAY, true
	case driver.IView2DMS:
		return TEXTURE_2D_MULTISAMPLE, true
	case driver.IView2DMSArray:
		return TEXTURE_2D_MULTISAMPLE_ARRAY, true
	}
	return 0, false
}

// imageView implements driver.ImageView.
type imageView struct {
	m      *image
	tex    uint32
	target uint32
	layer  int
	layers int
	level  int
	levels int
	// Single-layer views created on demand for
	// DArrayTexture descriptors.
	single map[int]uint32
}

// NewView creates a new image view.
func (m *image) NewView(typ driver.ViewType, layer, layers, level, levels int) (driver.ImageView, error) {
	if m.swapchain {
		return nil, errors.New("gl: cannot create views of a swapchain image")
	}
	target, ok := viewTarget(typ)
	if !ok {
		return nil, errors.Newf("gl: invalid view type %d", typ)
	}
	layers = max(layers, 1)
	levels = max(levels, 1)
	if layer < 0 || layer+layers > m.layers || level < 0 || level+levels > m.levels {
		return nil, errors.Newf("gl: view range [%d, %d)x[%d, %d) exceeds image", layer, layer+layers, level, level+levels)
	}
	if (typ == driver.IViewCube && layers != 6) || (typ == driver.IViewCubeArray && layers%6 != 0) {
		return nil, errors.Newf("gl: cube view with %d layers", layers)
	}
	tex := m.d.n.GenTexture()
	m.d.n.TextureView(tex, target, m.tex, m.info.internal, level, levels, layer, layers)
	m.d.val.check(m.d.n, "NewView")
	return &imageView{
		m:      m,
		tex:    tex,
		target: target,
		layer:  layer,
		layers: layers,
		level:  level,
		levels: levels,
	}, nil
}

// Image returns the image from which the view was created.
func (v *imageView) Image() driver.Image { return v.m }

// layerTex returns a texture that views a single layer
// of v, relative to the view's base layer.
func (v *imageView) layerTex(layer int) uint32 {
	if layer < 0 || layer >= v.layers {
		v.m.d.val.report(SevError, "SetLayer: layer %d out of view range [0, %d)", layer, v.layers)
		return v.tex
	}
	if tex, ok := v.single[layer]; ok {
		return tex
	}
	target := uint32(TEXTURE_2D)
	switch v.target {
	case TEXTURE_1D_ARRAY:
		target = TEXTURE_1D
	case TEXTURE_2D_MULTISAMPLE_ARRAY:
		target = TEXTURE_2D_MULTISAMPLE
	}
	tex := v.m.d.n.GenTexture()
	v.m.d.n.TextureView(tex, target, v.tex, v.m.info.internal, 0, v.levels, layer, 1)
	if v.single == nil {
		v.single = make(map[int]uint32)
	}
	v.single[layer] = tex
	return tex
}

// Destroy destroys the image view.
func (v *imageView) Destroy() {
	if v == nil || v.m == nil {
		return
	}
	for _, tex := range v.single {
		v.m.d.n.DeleteTexture(tex)
	}
	if v.tex != 0 {
		v.m.d.n.DeleteTexture(v.tex)
	}
	*v = imageView{}
}
