// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package gl

// Native is the interface through which the package issues
// OpenGL 4.5 calls.
// Methods mirror the direct state access entry points of
// the API, with Go types replacing pointers. Object names
// and enumerants are passed through unchanged.
// A Native is bound to a single context and must only be
// used from the goroutine on which that context is current.
type Native interface {
	// Load makes the context current and resolves
	// entry points.
	Load() error
	// Unload releases the context.
	Unload()

	GetError() uint32
	GetString(name uint32) string
	GetIntegerv(pname uint32, data []int32)
	GetIntegeri(pname, index uint32) int32
	Enable(cap uint32)
	Disable(cap uint32)
	Enablei(cap, index uint32)
	Disablei(cap, index uint32)
	IsEnabled(cap uint32) bool
	PixelStorei(pname uint32, param int32)
	DebugMessageCallback(cb func(source, typ, id, severity uint32, msg string))
	Flush()
	Finish()

	// Buffers.
	CreateBuffer() uint32
	DeleteBuffer(buf uint32)
	NamedBufferStorage(buf uint32, size int, data []byte, flags uint32)
	NamedBufferSubData(buf uint32, off int, data []byte)
	GetNamedBufferSubData(buf uint32, off int, data []byte)
	CopyNamedBufferSubData(src, dst uint32, srcOff, dstOff, size int)
	ClearNamedBufferSubData(buf uint32, off, size int, value uint32)
	MapNamedBufferRange(buf uint32, off, size int, access uint32) []byte
	UnmapNamedBuffer(buf uint32) bool
	BindBuffer(target, buf uint32)
	BindBufferRange(target, index, buf uint32, off, size int)
	BindBufferBase(target, index, buf uint32)

	// Textures.
	CreateTexture(target uint32) uint32
	GenTexture() uint32
	DeleteTexture(tex uint32)
	TextureStorage(tex, target uint32, levels int, internalFmt uint32, width, height, depth int)
	TextureStorageMS(tex, target uint32, samples int, internalFmt uint32, width, height, depth int)
	TextureView(view, target, orig, internalFmt uint32, level, levels, layer, layers int)
	// TextureSubImage reads from the bound pixel unpack buffer
	// at off.
	TextureSubImage(tex uint32, level, x, y, z, width, height, depth int, format, typ uint32, off int)
	CompressedTextureSubImage(tex uint32, level, x, y, z, width, height, depth int, format uint32, size, off int)
	// GetTextureSubImage writes to the bound pixel pack buffer
	// at off.
	GetTextureSubImage(tex uint32, level, x, y, z, width, height, depth int, format, typ uint32, size, off int)
	BindTextureUnit(unit, tex uint32)
	CopyImageSubData(src, srcTarget uint32, srcLevel, srcX, srcY, srcZ int, dst, dstTarget uint32, dstLevel, dstX, dstY, dstZ, width, height, depth int)

	// Samplers.
	CreateSampler() uint32
	DeleteSampler(splr uint32)
	SamplerParameteri(splr, pname uint32, param int32)
	SamplerParameterf(splr, pname uint32, param float32)
	SamplerParameterfv(splr, pname uint32, param []float32)
	BindSampler(unit, splr uint32)

	// Framebuffers.
	CreateFramebuffer() uint32
	DeleteFramebuffer(fb uint32)
	NamedFramebufferTexture(fb, attachment, tex uint32, level int)
	NamedFramebufferTextureLayer(fb, attachment, tex uint32, level, layer int)
	NamedFramebufferDrawBuffers(fb uint32, bufs []uint32)
	NamedFramebufferReadBuffer(fb, buf uint32)
	CheckNamedFramebufferStatus(fb, target uint32) uint32
	BindFramebuffer(target, fb uint32)
	BlitNamedFramebuffer(src, dst uint32, src0, src1, dst0, dst1 [2]int32, mask, filter uint32)
	ClearNamedFramebufferfv(fb, buffer uint32, drawBuf int, value [4]float32)
	ClearNamedFramebufferfi(fb, buffer uint32, drawBuf int, depth float32, stencil int32)
	ClearNamedFramebufferiv(fb, buffer uint32, drawBuf int, value int32)

	// Shaders and programs.
	CreateShader(typ uint32) uint32
	ShaderSource(sh uint32, src string)
	CompileShader(sh uint32)
	GetShaderi(sh, pname uint32) int32
	GetShaderInfoLog(sh uint32) string
	DeleteShader(sh uint32)
	CreateProgram() uint32
	AttachShader(prog, sh uint32)
	DetachShader(prog, sh uint32)
	LinkProgram(prog uint32)
	GetProgrami(prog, pname uint32) int32
	GetProgramInfoLog(prog uint32) string
	DeleteProgram(prog uint32)
	UseProgram(prog uint32)

	// Vertex input.
	CreateVertexArray() uint32
	DeleteVertexArray(vao uint32)
	BindVertexArray(vao uint32)
	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int, typ uint32, normalized bool, stride, off int)
	VertexAttribIPointer(index uint32, size int, typ uint32, stride, off int)
	VertexAttribDivisor(index, divisor uint32)

	// Drawing and compute.
	DrawArraysInstancedBaseInstance(mode uint32, first, count, instCount, baseInst int)
	DrawElementsInstancedBaseVertexBaseInstance(mode uint32, count int, typ uint32, off, instCount, baseVert, baseInst int)
	DrawArraysIndirect(mode uint32, off int)
	DrawElementsIndirect(mode, typ uint32, off int)
	DispatchCompute(x, y, z uint32)
	DispatchComputeIndirect(off int)
	MemoryBarrier(bits uint32)

	// Fixed-function state.
	BlendEquationSeparatei(buf, modeRGB, modeAlpha uint32)
	BlendFuncSeparatei(buf, srcRGB, dstRGB, srcAlpha, dstAlpha uint32)
	ColorMaski(buf uint32, r, g, b, a bool)
	BlendColor(r, g, b, a float32)
	CullFace(mode uint32)
	FrontFace(mode uint32)
	PolygonMode(face, mode uint32)
	LineWidth(w float32)
	PolygonOffset(factor, units float32)
	Viewport(x, y, width, height int32)
	DepthRangef(near, far float32)
	Scissor(x, y, width, height int32)
	DepthFunc(fn uint32)
	DepthMask(flag bool)
	StencilFuncSeparate(face, fn uint32, ref int32, mask uint32)
	StencilOpSeparate(face, sfail, dpfail, dppass uint32)
	StencilMaskSeparate(face, mask uint32)

	// Sync objects.
	FenceSync() uintptr
	ClientWaitSync(sync uintptr, flags uint32, timeout uint64) uint32
	GetSynci(sync uintptr, pname uint32) int32
	DeleteSync(sync uintptr)

	// Queries.
	CreateQuery(target uint32) uint32
	DeleteQuery(q uint32)
	BeginQuery(target, q uint32)
	EndQuery(target uint32)
	GetQueryObjectui64(q, pname uint32) uint64
}
