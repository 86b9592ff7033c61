// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package glcore implements gl.Native on top of the
// OpenGL 4.5 core profile bindings.
// Importing it registers the "opengl" driver, whose
// context is owned by wsi.ContextWindow.
package glcore

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/gl/v4.5-core/gl"

	"github.com/gviegas/glemu/driver"
	gldrv "github.com/gviegas/glemu/driver/gl"
	"github.com/gviegas/glemu/wsi"
)

func init() {
	driver.Register(gldrv.New(New(nil), gldrv.ConfigFromEnv()))
}

// Context is the interface of a window system context.
// wsi.Window satisfies it.
type Context interface {
	MakeCurrent()
}

// GL implements gl.Native.
// Texture targets are tracked per name, since the 4.5
// entry points for storage and uploads differ by
// dimensionality.
type GL struct {
	ctx     Context
	targets map[uint32]uint32
	debug   func(source, typ, id, severity uint32, msg string)
}

// New creates a new GL that renders with ctx.
// If ctx is nil, Load uses wsi.ContextWindow.
func New(ctx Context) *GL {
	return &GL{ctx: ctx, targets: make(map[uint32]uint32)}
}

// Load makes the context current and resolves entry
// points.
func (g *GL) Load() error {
	if g.ctx == nil {
		win, err := wsi.ContextWindow()
		if err != nil {
			return errors.Wrap(err, "glcore: no context")
		}
		g.ctx = win
	}
	g.ctx.MakeCurrent()
	if err := gl.Init(); err != nil {
		return errors.Wrap(err, "glcore: gl.Init failed")
	}
	return nil
}

// Unload detaches the context.
func (g *GL) Unload() {
	wsi.ReleaseCurrent()
	clear(g.targets)
	g.debug = nil
}

func (g *GL) GetError() uint32 { return gl.GetError() }

func (g *GL) GetString(name uint32) string {
	s := gl.GetString(name)
	if s == nil {
		return ""
	}
	return gl.GoStr(s)
}

func (g *GL) GetIntegerv(pname uint32, data []int32) {
	if len(data) > 0 {
		gl.GetIntegerv(pname, &data[0])
	}
}

func (g *GL) GetIntegeri(pname, index uint32) (v int32) {
	gl.GetIntegeri_v(pname, index, &v)
	return
}

func (g *GL) Enable(cap uint32)          { gl.Enable(cap) }
func (g *GL) Disable(cap uint32)         { gl.Disable(cap) }
func (g *GL) Enablei(cap, index uint32)  { gl.Enablei(cap, index) }
func (g *GL) Disablei(cap, index uint32) { gl.Disablei(cap, index) }
func (g *GL) IsEnabled(cap uint32) bool  { return gl.IsEnabled(cap) }

func (g *GL) PixelStorei(pname uint32, param int32) { gl.PixelStorei(pname, param) }

// DebugMessageCallback installs cb as the debug output
// callback.
func (g *GL) DebugMessageCallback(cb func(source, typ, id, severity uint32, msg string)) {
	g.debug = cb
	if cb == nil {
		gl.DebugMessageCallback(nil, nil)
		return
	}
	gl.DebugMessageCallback(func(source, typ, id, severity uint32, _ int32, msg string, _ unsafe.Pointer) {
		if g.debug != nil {
			g.debug(source, typ, id, severity, msg)
		}
	}, nil)
}

func (g *GL) Flush()  { gl.Flush() }
func (g *GL) Finish() { gl.Finish() }

// ptr returns a pointer to the first element of b,
// or nil if b is empty.
func ptr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Pointer(&b[0])
}

func (g *GL) CreateBuffer() (buf uint32) {
	gl.CreateBuffers(1, &buf)
	return
}

func (g *GL) DeleteBuffer(buf uint32) { gl.DeleteBuffers(1, &buf) }

func (g *GL) NamedBufferStorage(buf uint32, size int, data []byte, flags uint32) {
	gl.NamedBufferStorage(buf, size, ptr(data), flags)
}

func (g *GL) NamedBufferSubData(buf uint32, off int, data []byte) {
	gl.NamedBufferSubData(buf, off, len(data), ptr(data))
}

func (g *GL) GetNamedBufferSubData(buf uint32, off int, data []byte) {
	gl.GetNamedBufferSubData(buf, off, len(data), ptr(data))
}

func (g *GL) CopyNamedBufferSubData(src, dst uint32, srcOff, dstOff, size int) {
	gl.CopyNamedBufferSubData(src, dst, srcOff, dstOff, size)
}

// ClearNamedBufferSubData fills the range with the 32-bit
// pattern value.
func (g *GL) ClearNamedBufferSubData(buf uint32, off, size int, value uint32) {
	gl.ClearNamedBufferSubData(buf, gl.R32UI, off, size, gl.RED_INTEGER, gl.UNSIGNED_INT, unsafe.Pointer(&value))
}

// MapNamedBufferRange returns the mapped range as a slice,
// or nil if mapping failed.
func (g *GL) MapNamedBufferRange(buf uint32, off, size int, access uint32) []byte {
	p := gl.MapNamedBufferRange(buf, off, size, access)
	if p == nil {
		return nil
	}
	return unsafe.Slice((*byte)(p), size)
}

func (g *GL) UnmapNamedBuffer(buf uint32) bool { return gl.UnmapNamedBuffer(buf) }

func (g *GL) BindBuffer(target, buf uint32) { gl.BindBuffer(target, buf) }

func (g *GL) BindBufferRange(target, index, buf uint32, off, size int) {
	gl.BindBufferRange(target, index, buf, off, size)
}

func (g *GL) BindBufferBase(target, index, buf uint32) { gl.BindBufferBase(target, index, buf) }

func (g *GL) CreateTexture(target uint32) (tex uint32) {
	gl.CreateTextures(target, 1, &tex)
	g.targets[tex] = target
	return
}

// GenTexture reserves a name for TextureView.
func (g *GL) GenTexture() (tex uint32) {
	gl.GenTextures(1, &tex)
	return
}

func (g *GL) DeleteTexture(tex uint32) {
	delete(g.targets, tex)
	gl.DeleteTextures(1, &tex)
}

// dims returns the number of dimensions that a sub-image
// call on target takes.
// Array layers and cube faces count as a dimension.
func dims(target uint32) int {
	switch target {
	case gl.TEXTURE_1D:
		return 1
	case gl.TEXTURE_2D, gl.TEXTURE_1D_ARRAY, gl.TEXTURE_2D_MULTISAMPLE, gl.TEXTURE_RECTANGLE:
		return 2
	default:
		return 3
	}
}

func (g *GL) TextureStorage(tex, target uint32, levels int, internalFmt uint32, width, height, depth int) {
	switch target {
	case gl.TEXTURE_1D:
		gl.TextureStorage1D(tex, int32(levels), internalFmt, int32(width))
	case gl.TEXTURE_2D, gl.TEXTURE_1D_ARRAY, gl.TEXTURE_CUBE_MAP, gl.TEXTURE_RECTANGLE:
		gl.TextureStorage2D(tex, int32(levels), internalFmt, int32(width), int32(height))
	default:
		gl.TextureStorage3D(tex, int32(levels), internalFmt, int32(width), int32(height), int32(depth))
	}
}

func (g *GL) TextureStorageMS(tex, target uint32, samples int, internalFmt uint32, width, height, depth int) {
	if target == gl.TEXTURE_2D_MULTISAMPLE {
		gl.TextureStorage2DMultisample(tex, int32(samples), internalFmt, int32(width), int32(height), true)
	} else {
		gl.TextureStorage3DMultisample(tex, int32(samples), internalFmt, int32(width), int32(height), int32(depth), true)
	}
}

func (g *GL) TextureView(view, target, orig, internalFmt uint32, level, levels, layer, layers int) {
	gl.TextureView(view, target, orig, internalFmt, uint32(level), uint32(levels), uint32(layer), uint32(layers))
	g.targets[view] = target
}

func (g *GL) TextureSubImage(tex uint32, level, x, y, z, width, height, depth int, format, typ uint32, off int) {
	p := gl.PtrOffset(off)
	switch dims(g.targets[tex]) {
	case 1:
		gl.TextureSubImage1D(tex, int32(level), int32(x), int32(width), format, typ, p)
	case 2:
		gl.TextureSubImage2D(tex, int32(level), int32(x), int32(y), int32(width), int32(height), format, typ, p)
	default:
		gl.TextureSubImage3D(tex, int32(level), int32(x), int32(y), int32(z), int32(width), int32(height), int32(depth), format, typ, p)
	}
}

func (g *GL) CompressedTextureSubImage(tex uint32, level, x, y, z, width, height, depth int, format uint32, size, off int) {
	p := gl.PtrOffset(off)
	switch dims(g.targets[tex]) {
	case 1:
		gl.CompressedTextureSubImage1D(tex, int32(level), int32(x), int32(width), format, int32(size), p)
	case 2:
		gl.CompressedTextureSubImage2D(tex, int32(level), int32(x), int32(y), int32(width), int32(height), format, int32(size), p)
	default:
		gl.CompressedTextureSubImage3D(tex, int32(level), int32(x), int32(y), int32(z), int32(width), int32(height), int32(depth), format, int32(size), p)
	}
}

func (g *GL) GetTextureSubImage(tex uint32, level, x, y, z, width, height, depth int, format, typ uint32, size, off int) {
	gl.GetTextureSubImage(tex, int32(level), int32(x), int32(y), int32(z), int32(width), int32(height), int32(depth), format, typ, int32(size), gl.PtrOffset(off))
}

func (g *GL) BindTextureUnit(unit, tex uint32) { gl.BindTextureUnit(unit, tex) }

func (g *GL) CopyImageSubData(src, srcTarget uint32, srcLevel, srcX, srcY, srcZ int, dst, dstTarget uint32, dstLevel, dstX, dstY, dstZ, width, height, depth int) {
	gl.CopyImageSubData(src, srcTarget, int32(srcLevel), int32(srcX), int32(srcY), int32(srcZ),
		dst, dstTarget, int32(dstLevel), int32(dstX), int32(dstY), int32(dstZ),
		int32(width), int32(height), int32(depth))
}

func (g *GL) CreateSampler() (splr uint32) {
	gl.CreateSamplers(1, &splr)
	return
}

func (g *GL) DeleteSampler(splr uint32) { gl.DeleteSamplers(1, &splr) }

func (g *GL) SamplerParameteri(splr, pname uint32, param int32) {
	gl.SamplerParameteri(splr, pname, param)
}

func (g *GL) SamplerParameterf(splr, pname uint32, param float32) {
	gl.SamplerParameterf(splr, pname, param)
}

func (g *GL) SamplerParameterfv(splr, pname uint32, param []float32) {
	if len(param) > 0 {
		gl.SamplerParameterfv(splr, pname, &param[0])
	}
}

func (g *GL) BindSampler(unit, splr uint32) { gl.BindSampler(unit, splr) }

func (g *GL) CreateFramebuffer() (fb uint32) {
	gl.CreateFramebuffers(1, &fb)
	return
}

func (g *GL) DeleteFramebuffer(fb uint32) { gl.DeleteFramebuffers(1, &fb) }

func (g *GL) NamedFramebufferTexture(fb, attachment, tex uint32, level int) {
	gl.NamedFramebufferTexture(fb, attachment, tex, int32(level))
}

func (g *GL) NamedFramebufferTextureLayer(fb, attachment, tex uint32, level, layer int) {
	gl.NamedFramebufferTextureLayer(fb, attachment, tex, int32(level), int32(layer))
}

func (g *GL) NamedFramebufferDrawBuffers(fb uint32, bufs []uint32) {
	if len(bufs) == 0 {
		return
	}
	gl.NamedFramebufferDrawBuffers(fb, int32(len(bufs)), &bufs[0])
}

func (g *GL) NamedFramebufferReadBuffer(fb, buf uint32) { gl.NamedFramebufferReadBuffer(fb, buf) }

func (g *GL) CheckNamedFramebufferStatus(fb, target uint32) uint32 {
	return gl.CheckNamedFramebufferStatus(fb, target)
}

func (g *GL) BindFramebuffer(target, fb uint32) { gl.BindFramebuffer(target, fb) }

func (g *GL) BlitNamedFramebuffer(src, dst uint32, src0, src1, dst0, dst1 [2]int32, mask, filter uint32) {
	gl.BlitNamedFramebuffer(src, dst, src0[0], src0[1], src1[0], src1[1], dst0[0], dst0[1], dst1[0], dst1[1], mask, filter)
}

func (g *GL) ClearNamedFramebufferfv(fb, buffer uint32, drawBuf int, value [4]float32) {
	gl.ClearNamedFramebufferfv(fb, buffer, int32(drawBuf), &value[0])
}

func (g *GL) ClearNamedFramebufferfi(fb, buffer uint32, drawBuf int, depth float32, stencil int32) {
	gl.ClearNamedFramebufferfi(fb, buffer, int32(drawBuf), depth, stencil)
}

func (g *GL) ClearNamedFramebufferiv(fb, buffer uint32, drawBuf int, value int32) {
	gl.ClearNamedFramebufferiv(fb, buffer, int32(drawBuf), &value)
}

func (g *GL) CreateShader(typ uint32) uint32 { return gl.CreateShader(typ) }

func (g *GL) ShaderSource(sh uint32, src string) {
	csrc, free := gl.Strs(src + "\x00")
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
}

func (g *GL) CompileShader(sh uint32) { gl.CompileShader(sh) }

func (g *GL) GetShaderi(sh, pname uint32) (v int32) {
	gl.GetShaderiv(sh, pname, &v)
	return
}

func (g *GL) GetShaderInfoLog(sh uint32) string {
	n := g.GetShaderi(sh, gl.INFO_LOG_LENGTH)
	if n <= 0 {
		return ""
	}
	log := make([]byte, n)
	gl.GetShaderInfoLog(sh, n, nil, &log[0])
	return gl.GoStr(&log[0])
}

func (g *GL) DeleteShader(sh uint32)       { gl.DeleteShader(sh) }
func (g *GL) CreateProgram() uint32        { return gl.CreateProgram() }
func (g *GL) AttachShader(prog, sh uint32) { gl.AttachShader(prog, sh) }
func (g *GL) DetachShader(prog, sh uint32) { gl.DetachShader(prog, sh) }
func (g *GL) LinkProgram(prog uint32)      { gl.LinkProgram(prog) }
func (g *GL) DeleteProgram(prog uint32)    { gl.DeleteProgram(prog) }
func (g *GL) UseProgram(prog uint32)       { gl.UseProgram(prog) }

func (g *GL) GetProgrami(prog, pname uint32) (v int32) {
	gl.GetProgramiv(prog, pname, &v)
	return
}

func (g *GL) GetProgramInfoLog(prog uint32) string {
	n := g.GetProgrami(prog, gl.INFO_LOG_LENGTH)
	if n <= 0 {
		return ""
	}
	log := make([]byte, n)
	gl.GetProgramInfoLog(prog, n, nil, &log[0])
	return gl.GoStr(&log[0])
}

func (g *GL) CreateVertexArray() (vao uint32) {
	gl.CreateVertexArrays(1, &vao)
	return
}

func (g *GL) DeleteVertexArray(vao uint32)              { gl.DeleteVertexArrays(1, &vao) }
func (g *GL) BindVertexArray(vao uint32)                { gl.BindVertexArray(vao) }
func (g *GL) EnableVertexAttribArray(index uint32)      { gl.EnableVertexAttribArray(index) }
func (g *GL) DisableVertexAttribArray(index uint32)     { gl.DisableVertexAttribArray(index) }
func (g *GL) VertexAttribDivisor(index, divisor uint32) { gl.VertexAttribDivisor(index, divisor) }

func (g *GL) VertexAttribPointer(index uint32, size int, typ uint32, normalized bool, stride, off int) {
	gl.VertexAttribPointerWithOffset(index, int32(size), typ, normalized, int32(stride), uintptr(off))
}

func (g *GL) VertexAttribIPointer(index uint32, size int, typ uint32, stride, off int) {
	gl.VertexAttribIPointerWithOffset(index, int32(size), typ, int32(stride), uintptr(off))
}

func (g *GL) DrawArraysInstancedBaseInstance(mode uint32, first, count, instCount, baseInst int) {
	gl.DrawArraysInstancedBaseInstance(mode, int32(first), int32(count), int32(instCount), uint32(baseInst))
}

func (g *GL) DrawElementsInstancedBaseVertexBaseInstance(mode uint32, count int, typ uint32, off, instCount, baseVert, baseInst int) {
	gl.DrawElementsInstancedBaseVertexBaseInstance(mode, int32(count), typ, gl.PtrOffset(off), int32(instCount), int32(baseVert), uint32(baseInst))
}

func (g *GL) DrawArraysIndirect(mode uint32, off int) {
	gl.DrawArraysIndirect(mode, gl.PtrOffset(off))
}

func (g *GL) DrawElementsIndirect(mode, typ uint32, off int) {
	gl.DrawElementsIndirect(mode, typ, gl.PtrOffset(off))
}

func (g *GL) DispatchCompute(x, y, z uint32)  { gl.DispatchCompute(x, y, z) }
func (g *GL) DispatchComputeIndirect(off int) { gl.DispatchComputeIndirect(off) }
func (g *GL) MemoryBarrier(bits uint32)       { gl.MemoryBarrier(bits) }

func (g *GL) BlendEquationSeparatei(buf, modeRGB, modeAlpha uint32) {
	gl.BlendEquationSeparatei(buf, modeRGB, modeAlpha)
}

func (g *GL) BlendFuncSeparatei(buf, srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	gl.BlendFuncSeparatei(buf, srcRGB, dstRGB, srcAlpha, dstAlpha)
}

func (g *GL) ColorMaski(buf uint32, r, gr, b, a bool) { gl.ColorMaski(buf, r, gr, b, a) }
func (g *GL) BlendColor(r, gr, b, a float32)          { gl.BlendColor(r, gr, b, a) }
func (g *GL) CullFace(mode uint32)                    { gl.CullFace(mode) }
func (g *GL) FrontFace(mode uint32)                   { gl.FrontFace(mode) }
func (g *GL) PolygonMode(face, mode uint32)           { gl.PolygonMode(face, mode) }
func (g *GL) LineWidth(w float32)                     { gl.LineWidth(w) }
func (g *GL) PolygonOffset(factor, units float32)     { gl.PolygonOffset(factor, units) }
func (g *GL) Viewport(x, y, width, height int32)      { gl.Viewport(x, y, width, height) }
func (g *GL) DepthRangef(near, far float32)           { gl.DepthRangef(near, far) }
func (g *GL) Scissor(x, y, width, height int32)       { gl.Scissor(x, y, width, height) }
func (g *GL) DepthFunc(fn uint32)                     { gl.DepthFunc(fn) }
func (g *GL) DepthMask(flag bool)                     { gl.DepthMask(flag) }

func (g *GL) StencilFuncSeparate(face, fn uint32, ref int32, mask uint32) {
	gl.StencilFuncSeparate(face, fn, ref, mask)
}

func (g *GL) StencilOpSeparate(face, sfail, dpfail, dppass uint32) {
	gl.StencilOpSeparate(face, sfail, dpfail, dppass)
}

func (g *GL) StencilMaskSeparate(face, mask uint32) { gl.StencilMaskSeparate(face, mask) }

func (g *GL) FenceSync() uintptr {
	return gl.FenceSync(gl.SYNC_GPU_COMMANDS_COMPLETE, 0)
}

func (g *GL) ClientWaitSync(sync uintptr, flags uint32, timeout uint64) uint32 {
	return gl.ClientWaitSync(sync, flags, timeout)
}

func (g *GL) GetSynci(sync uintptr, pname uint32) (v int32) {
	gl.GetSynciv(sync, pname, 1, nil, &v)
	return
}

func (g *GL) DeleteSync(sync uintptr) { gl.DeleteSync(sync) }

func (g *GL) CreateQuery(target uint32) (q uint32) {
	gl.CreateQueries(target, 1, &q)
	return
}

func (g *GL) DeleteQuery(q uint32)        { gl.DeleteQueries(1, &q) }
func (g *GL) BeginQuery(target, q uint32) { gl.BeginQuery(target, q) }
func (g *GL) EndQuery(target uint32)      { gl.EndQuery(target) }

func (g *GL) GetQueryObjectui64(q, pname uint32) (v uint64) {
	gl.GetQueryObjectui64v(q, pname, &v)
	return
}

var _ gldrv.Native = (*GL)(nil)
