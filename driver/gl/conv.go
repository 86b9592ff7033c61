// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"github.com/gviegas/glemu/driver"
)

func convBlendOp(op driver.BlendOp) uint32 {
	switch op {
	case driver.BAdd:
		return FUNC_ADD
	case driver.BSubtract:
		return FUNC_SUBTRACT
	case driver.BRevSubtract:
		return FUNC_REVERSE_SUBTRACT
	case driver.BMin:
		return MIN
	case driver.BMax:
		return MAX
	}
	return FUNC_ADD
}

func convBlendFac(fac driver.BlendFac) uint32 {
	switch fac {
	case driver.BZero:
		return ZERO
	case driver.BOne:
		return ONE
	case driver.BSrcColor:
		return SRC_COLOR
	case driver.BInvSrcColor:
		return ONE_MINUS_SRC_COLOR
	case driver.BSrcAlpha:
		return SRC_ALPHA
	case driver.BInvSrcAlpha:
		return ONE_MINUS_SRC_ALPHA
	case driver.BDstColor:
		return DST_COLOR
	case driver.BInvDstColor:
		return ONE_MINUS_DST_COLOR
	case driver.BDstAlpha:
		return DST_ALPHA
	case driver.BInvDstAlpha:
		return ONE_MINUS_DST_ALPHA
	case driver.BSrcAlphaSaturated:
		return SRC_ALPHA_SATURATE
	case driver.BBlendColor:
		return CONSTANT_COLOR
	case driver.BInvBlendColor:
		return ONE_MINUS_CONSTANT_COLOR
	}
	return ONE
}

func convCmpFunc(fn driver.CmpFunc) uint32 {
	switch fn {
	case driver.CNever:
		return NEVER
	case driver.CLess:
		return LESS
	case driver.CEqual:
		return EQUAL
	case driver.CLessEqual:
		return LEQUAL
	case driver.CGreater:
		return GREATER
	case driver.CNotEqual:
		return NOTEQUAL
	case driver.CGreaterEqual:
		return GEQUAL
	case driver.CAlways:
		return ALWAYS
	}
	return ALWAYS
}

func convStencilOp(op driver.StencilOp) uint32 {
	switch op {
	case driver.SKeep:
		return KEEP
	case driver.SZero:
		return ZERO
	case driver.SReplace:
		return REPLACE
	case driver.SIncClamp:
		return INCR
	case driver.SDecClamp:
		return DECR
	case driver.SInvert:
		return INVERT
	case driver.SIncWrap:
		return INCR_WRAP
	case driver.SDecWrap:
		return DECR_WRAP
	}
	return KEEP
}

// convCullMode returns the face to cull, or NONE if
// culling is disabled.
func convCullMode(mode driver.CullMode) uint32 {
	switch mode {
	case driver.CFront:
		return FRONT
	case driver.CBack:
		return BACK
	}
	return NONE
}

func convFillMode(mode driver.FillMode) uint32 {
	if mode == driver.FLines {
		return LINE
	}
	return FILL
}

func convTopology(top driver.Topology) uint32 {
	switch top {
	case driver.TPoint:
		return POINTS
	case driver.TLine:
		return LINES
	case driver.TLnStrip:
		return LINE_STRIP
	case driver.TTriangle:
		return TRIANGLES
	case driver.TTriStrip:
		return TRIANGLE_STRIP
	case driver.TTriFan:
		return TRIANGLE_FAN
	}
	return TRIANGLES
}

// vertexInfo describes the attribute format of a
// driver.VertexFmt.
type vertexInfo struct {
	size       int
	typ        uint32
	integer    bool
	normalized bool
}

func convVertexFmt(f driver.VertexFmt) (vertexInfo, bool) {
	var typ uint32
	var base driver.VertexFmt
	integer := true
	normalized := false
	switch {
	case f >= driver.Int8 && f <= driver.Int8x4:
		typ, base = BYTE, driver.Int8
	case f >= driver.Int16 && f <= driver.Int16x4:
		typ, base = SHORT, driver.Int16
	case f >= driver.Int32 && f <= driver.Int32x4:
		typ, base = INT, driver.Int32
	case f >= driver.UInt8 && f <= driver.UInt8x4:
		typ, base = UNSIGNED_BYTE, driver.UInt8
	case f >= driver.UInt16 && f <= driver.UInt16x4:
		typ, base = UNSIGNED_SHORT, driver.UInt16
	case f >= driver.UInt32 && f <= driver.UInt32x4:
		typ, base = UNSIGNED_INT, driver.UInt32
	case f >= driver.Float32 && f <= driver.Float32x4:
		typ, base, integer = FLOAT, driver.Float32, false
	case f >= driver.UNorm8 && f <= driver.UNorm8x4:
		typ, base, integer, normalized = UNSIGNED_BYTE, driver.UNorm8, false, true
	default:
		return vertexInfo{}, false
	}
	return vertexInfo{
		size:       int(f-base) + 1,
		typ:        typ,
		integer:    integer,
		normalized: normalized,
	}, true
}

func convIndexFmt(f driver.IndexFmt) uint32 {
	if f == driver.Index16 {
		return UNSIGNED_SHORT
	}
	return UNSIGNED_INT
}

func convStage(s driver.Stage) uint32 {
	switch s {
	case driver.SVertex:
		return VERTEX_SHADER
	case driver.SFragment:
		return FRAGMENT_SHADER
	case driver.SCompute:
		return COMPUTE_SHADER
	}
	return 0
}

func convFilter(f driver.Filter) uint32 {
	if f == driver.FLinear {
		return LINEAR
	}
	return NEAREST
}

// convMinFilter combines minification and mip filters.
func convMinFilter(minf, mip driver.Filter) uint32 {
	switch mip {
	case driver.FNearest:
		if minf == driver.FLinear {
			return LINEAR_MIPMAP_NEAREST
		}
		return NEAREST_MIPMAP_NEAREST
	case driver.FLinear:
		if minf == driver.FLinear {
			return LINEAR_MIPMAP_LINEAR
		}
		return NEAREST_MIPMAP_LINEAR
	}
	return convFilter(minf)
}

func convAddrMode(m driver.AddrMode) int32 {
	switch m {
	case driver.AWrap:
		return REPEAT
	case driver.AMirror:
		return MIRRORED_REPEAT
	case driver.AClamp:
		return CLAMP_TO_EDGE
	case driver.AClampBorder:
		return CLAMP_TO_BORDER
	case driver.AMirrorClamp:
		return MIRROR_CLAMP_TO_EDGE
	}
	return REPEAT
}

// convBarrier returns the memory barrier bits that cover
// a set of barriers.
// Scopes map coarsely, so any barrier yields every bit.
func convBarrier(b []driver.Barrier) uint32 {
	if len(b) == 0 {
		return 0
	}
	return ALL_BARRIER_BITS
}
