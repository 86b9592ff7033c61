// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"github.com/gviegas/glemu/driver"
)

// pixelInfo describes how a driver.PixelFmt maps to
// texture storage and pixel transfers.
type pixelInfo struct {
	internal uint32
	format   uint32
	typ      uint32
	// Size of a texel block in bytes, and block extent.
	// Uncompressed formats use 1x1 blocks.
	block  int
	bw, bh int
}

// convPixelFmt converts a driver.PixelFmt.
func convPixelFmt(pf driver.PixelFmt) (pixelInfo, bool) {
	switch pf {
	case driver.RGBA8un:
		return pixelInfo{RGBA8, RGBA, UNSIGNED_BYTE, 4, 1, 1}, true
	case driver.RGBA8n:
		return pixelInfo{RGBA8_SNORM, RGBA, BYTE, 4, 1, 1}, true
	case driver.RGBA8sRGB:
		return pixelInfo{SRGB8_ALPHA8, RGBA, UNSIGNED_BYTE, 4, 1, 1}, true
	case driver.BGRA8un:
		return pixelInfo{RGBA8, BGRA, UNSIGNED_BYTE, 4, 1, 1}, true
	case driver.BGRA8sRGB:
		return pixelInfo{SRGB8_ALPHA8, BGRA, UNSIGNED_BYTE, 4, 1, 1}, true
	case driver.RG8un:
		return pixelInfo{RG8, RG, UNSIGNED_BYTE, 2, 1, 1}, true
	case driver.RG8n:
		return pixelInfo{RG8_SNORM, RG, BYTE, 2, 1, 1}, true
	case driver.R8un:
		return pixelInfo{R8, RED, UNSIGNED_BYTE, 1, 1, 1}, true
	case driver.R8n:
		return pixelInfo{R8_SNORM, RED, BYTE, 1, 1, 1}, true
	case driver.RGBA16f:
		return pixelInfo{RGBA16F, RGBA, HALF_FLOAT, 8, 1, 1}, true
	case driver.RG16f:
		return pixelInfo{RG16F, RG, HALF_FLOAT, 4, 1, 1}, true
	case driver.R16f:
		return pixelInfo{R16F, RED, HALF_FLOAT, 2, 1, 1}, true
	case driver.RGBA32f:
		return pixelInfo{RGBA32F, RGBA, FLOAT, 16, 1, 1}, true
	case driver.RG32f:
		return pixelInfo{RG32F, RG, FLOAT, 8, 1, 1}, true
	case driver.R32f:
		return pixelInfo{R32F, RED, FLOAT, 4, 1, 1}, true
	case driver.D16un:
		return pixelInfo{DEPTH_COMPONENT16, DEPTH_COMPONENT, UNSIGNED_SHORT, 2, 1, 1}, true
	case driver.D32f:
		return pixelInfo{DEPTH_COMPONENT32F, DEPTH_COMPONENT, FLOAT, 4, 1, 1}, true
	case driver.S8ui:
		return pixelInfo{STENCIL_INDEX8, STENCIL_INDEX, UNSIGNED_BYTE, 1, 1, 1}, true
	case driver.D24unS8ui:
		return pixelInfo{DEPTH24_STENCIL8, DEPTH_STENCIL, UNSIGNED_INT_24_8, 4, 1, 1}, true
	case driver.D32fS8ui:
		return pixelInfo{DEPTH32F_STENCIL8, DEPTH_STENCIL, FLOAT_32_UNSIGNED_INT_24_8, 8, 1, 1}, true
	case driver.BC1un:
		return pixelInfo{COMPRESSED_RGBA_S3TC_1, RGBA, UNSIGNED_BYTE, 8, 4, 4}, true
	case driver.BC3un:
		return pixelInfo{COMPRESSED_RGBA_S3TC_5, RGBA, UNSIGNED_BYTE, 16, 4, 4}, true
	case driver.BC7un:
		return pixelInfo{COMPRESSED_RGBA_BPTC, RGBA, UNSIGNED_BYTE, 16, 4, 4}, true
	case driver.BC7sRGB:
		return pixelInfo{COMPRESSED_SRGB_BPTC, RGBA, UNSIGNED_BYTE, 16, 4, 4}, true
	case driver.ETC2un:
		return pixelInfo{COMPRESSED_RGBA8_ETC2, RGBA, UNSIGNED_BYTE, 16, 4, 4}, true
	case driver.ASTC4un:
		return pixelInfo{COMPRESSED_RGBA_ASTC4x4, RGBA, UNSIGNED_BYTE, 16, 4, 4}, true
	}
	return pixelInfo{}, false
}

// rowPitch returns the size in bytes of a row of blocks
// that is width texels wide.
func (p *pixelInfo) rowPitch(width int) int64 {
	return int64((width+p.bw-1)/p.bw) * int64(p.block)
}

// rows returns the number of block rows in height texels.
func (p *pixelInfo) rows(height int) int64 { return int64((height + p.bh - 1) / p.bh) }

// dsAttachment returns the framebuffer attachment point and
// clear buffer for a depth/stencil format.
func dsAttachment(pf driver.PixelFmt) (att, buffer uint32) {
	switch pf {
	case driver.S8ui:
		return STENCIL_ATTACHMENT, STENCIL
	case driver.D24unS8ui, driver.D32fS8ui:
		return DEPTH_STENCIL_ATTACHMENT, DEPTH_STENCIL
	}
	return DEPTH_ATTACHMENT, DEPTH
}

// blitMask returns the blit mask of pf.
func blitMask(pf driver.PixelFmt) uint32 {
	switch pf {
	case driver.D16un, driver.D32f:
		return DEPTH_BUFFER_BIT
	case driver.S8ui:
		return STENCIL_BUFFER_BIT
	case driver.D24unS8ui, driver.D32fS8ui:
		return DEPTH_BUFFER_BIT | STENCIL_BUFFER_BIT
	}
	return COLOR_BUFFER_BIT
}

// mipExtent returns the size of a mip level.
func mipExtent(size driver.Dim3D, level int) driver.Dim3D {
	return driver.Dim3D{
		Width:  max(1, size.Width>>level),
		Height: max(1, size.Height>>level),
		Depth:  max(1, size.Depth>>level),
	}
}
