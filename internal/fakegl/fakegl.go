// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package fakegl provides an in-memory OpenGL context for
// tests.
// It records object state and call counts but does not
// rasterize anything.
package fakegl

import (
	"encoding/binary"
	"strings"

	"github.com/cockroachdb/errors"
)

// Enumerants the fake inspects.
const (
	compileStatus     = 0x8B81
	linkStatus        = 0x8B82
	viewport          = 0x0BA2
	scissorBox        = 0x0C10
	fbComplete        = 0x8CD5
	alreadySignaled   = 0x911A
	syncStatus        = 0x9114
	signaled          = 0x9119
	frontAndBack      = 0x0408
	front             = 0x0404
	back              = 0x0405
	pixelUnpackBuffer = 0x88EC
	pixelPackBuffer   = 0x88EB
	queryResult       = 0x8866
	uniformOffAlign   = 0x8A34
	maxColorAtt       = 0x8CDF
)

// ErrorDirective makes shader compilation fail when found
// in the source.
const ErrorDirective = "#error"

// Buffer is a buffer object.
type Buffer struct {
	Data   []byte
	Flags  uint32
	Mapped bool
}

// Texture is a texture object.
type Texture struct {
	Target   uint32
	Internal uint32
	Levels   int
	Samples  int
	Size     [3]int
	// Orig is the viewed texture for texture views.
	Orig uint32
}

// Attachment is a framebuffer attachment.
// Layer is negative when every layer is attached.
type Attachment struct {
	Tex   uint32
	Level int
	Layer int
}

// Framebuffer is a framebuffer object.
type Framebuffer struct {
	Att      map[uint32]Attachment
	DrawBufs []uint32
	ReadBuf  uint32
}

// Shader is a shader object.
type Shader struct {
	Type   uint32
	Source string
	OK     bool
}

// Program is a program object.
type Program struct {
	attached []uint32
	// Sources of the shaders at link time.
	Sources []string
	OK      bool
}

// Attrib is the state of a vertex attribute.
type Attrib struct {
	Enabled    bool
	Buffer     uint32
	Size       int
	Type       uint32
	Normalized bool
	Integer    bool
	Stride     int
	Off        int
	Divisor    uint32
}

// Range is an indexed buffer binding.
type Range struct {
	Buffer    uint32
	Off, Size int
}

// Draw records a draw or dispatch call.
type Draw struct {
	Call      string
	Mode      uint32
	First     int
	Count     int
	Instances int
	BaseVert  int
	BaseInst  int
	Off       int
	Program   uint32
	FB        uint32
}

// Clear records a framebuffer clear.
type Clear struct {
	FB      uint32
	Buffer  uint32
	DrawBuf int
	Color   [4]float32
	Depth   float32
	Stencil int32
}

// Blit records a framebuffer blit.
type Blit struct {
	Src, Dst       uint32
	S0, S1, D0, D1 [2]int32
	Mask, Filter   uint32
}

// Transfer records a pixel transfer.
type Transfer struct {
	Call    string
	Tex     uint32
	Level   int
	Off     [3]int
	Size    [3]int
	Format  uint32
	Type    uint32
	Buffer  uint32
	BufOff  int
	RowLen  int32
	ImgHgt  int32
	DataLen int
}

// Stencil is per-face stencil state.
type Stencil struct {
	Func      uint32
	Ref       int32
	ReadMask  uint32
	WriteMask uint32
	Op        [3]uint32
}

// GL is an in-memory context.
// Its zero value is not usable; call New.
type GL struct {
	// LoadErr is returned by Load.
	LoadErr error
	// Errors are returned by GetError in order.
	Errors []uint32
	// Limits answers GetIntegerv and GetIntegeri queries.
	Limits map[uint32]int32
	// QueryResult answers GetQueryObjectui64.
	QueryResult uint64

	Loaded bool
	Calls  map[string]int
	next   uint32

	Buffers      map[uint32]*Buffer
	Textures     map[uint32]*Texture
	Samplers     map[uint32]map[uint32]float32
	Framebuffers map[uint32]*Framebuffer
	Shaders      map[uint32]*Shader
	Programs     map[uint32]*Program
	Queries      map[uint32]uint32
	Syncs        map[uintptr]bool
	VertexArrays map[uint32]bool

	Caps        map[uint32]bool
	IndexedCaps map[[2]uint32]bool
	PixelStore  map[uint32]int32
	Bound       map[uint32]uint32
	Ranges      map[[2]uint32]Range
	Units       map[uint32]uint32
	SamplerAt   map[uint32]uint32
	Attribs     map[uint32]*Attrib

	Program     uint32
	DrawFB      uint32
	ReadFB      uint32
	VertexArray uint32
	ActiveQuery uint32

	BlendEq    map[uint32][2]uint32
	BlendFunc  map[uint32][4]uint32
	ColorMask  map[uint32][4]bool
	BlendConst [4]float32
	Cull       uint32
	Winding    uint32
	Fill       uint32
	LineW      float32
	Offset     [2]float32
	VP         [4]int32
	DepthRange [2]float32
	ScissorBox [4]int32
	DepthCmp   uint32
	DepthWrite bool
	// [0] is front and [1] is back.
	Stencil [2]Stencil
	Barrier uint32

	Draws     []Draw
	Clears    []Clear
	Blits     []Blit
	Transfers []Transfer
	Copies    int

	debug func(source, typ, id, severity uint32, msg string)
}

// New creates a new GL.
// The uniform buffer offset alignment is 256 and eight
// color attachments are supported.
func New() *GL {
	return &GL{
		Limits: map[uint32]int32{
			uniformOffAlign: 256,
			maxColorAtt:     8,
		},
		Calls:        make(map[string]int),
		Buffers:      make(map[uint32]*Buffer),
		Textures:     make(map[uint32]*Texture),
		Samplers:     make(map[uint32]map[uint32]float32),
		Framebuffers: make(map[uint32]*Framebuffer),
		Shaders:      make(map[uint32]*Shader),
		Programs:     make(map[uint32]*Program),
		Queries:      make(map[uint32]uint32),
		Syncs:        make(map[uintptr]bool),
		VertexArrays: make(map[uint32]bool),
		Caps:         make(map[uint32]bool),
		IndexedCaps:  make(map[[2]uint32]bool),
		PixelStore:   make(map[uint32]int32),
		Bound:        make(map[uint32]uint32),
		Ranges:       make(map[[2]uint32]Range),
		Units:        make(map[uint32]uint32),
		SamplerAt:    make(map[uint32]uint32),
		Attribs:      make(map[uint32]*Attrib),
		BlendEq:      make(map[uint32][2]uint32),
		BlendFunc:    make(map[uint32][4]uint32),
		ColorMask:    make(map[uint32][4]bool),
		LineW:        1,
		DepthWrite:   true,
	}
}

func (g *GL) call(name string) { g.Calls[name]++ }

func (g *GL) name() uint32 {
	g.next++
	return g.next
}

// Reset clears call counts and recorded commands.
// Object state is kept.
func (g *GL) Reset() {
	clear(g.Calls)
	g.Draws = nil
	g.Clears = nil
	g.Blits = nil
	g.Transfers = nil
	g.Copies = 0
}

// EnabledAttribs returns the number of enabled vertex
// attributes.
func (g *GL) EnabledAttribs() int {
	n := 0
	for _, a := range g.Attribs {
		if a.Enabled {
			n++
		}
	}
	return n
}

// Debug delivers a message to the installed debug
// callback, if any.
func (g *GL) Debug(source, typ, id, severity uint32, msg string) {
	if g.debug != nil {
		g.debug(source, typ, id, severity, msg)
	}
}

func (g *GL) Load() error {
	g.call("Load")
	if g.LoadErr != nil {
		return errors.Wrap(g.LoadErr, "fakegl")
	}
	g.Loaded = true
	return nil
}

func (g *GL) Unload() {
	g.call("Unload")
	g.Loaded = false
}

func (g *GL) GetError() uint32 {
	if len(g.Errors) == 0 {
		return 0
	}
	e := g.Errors[0]
	g.Errors = g.Errors[1:]
	return e
}

func (g *GL) GetString(name uint32) string { return "fakegl" }

func (g *GL) GetIntegerv(pname uint32, data []int32) {
	switch pname {
	case viewport:
		copy(data, g.VP[:])
	case scissorBox:
		copy(data, g.ScissorBox[:])
	default:
		if len(data) > 0 {
			data[0] = g.Limits[pname]
		}
	}
}

func (g *GL) GetIntegeri(pname, index uint32) int32 { return g.Limits[pname] }

func (g *GL) Enable(cap uint32) { g.call("Enable"); g.Caps[cap] = true }

func (g *GL) Disable(cap uint32) { g.call("Disable"); g.Caps[cap] = false }

func (g *GL) Enablei(cap, index uint32) { g.IndexedCaps[[2]uint32{cap, index}] = true }

func (g *GL) Disablei(cap, index uint32) { g.IndexedCaps[[2]uint32{cap, index}] = false }

func (g *GL) IsEnabled(cap uint32) bool { return g.Caps[cap] }

func (g *GL) PixelStorei(pname uint32, param int32) { g.PixelStore[pname] = param }

func (g *GL) DebugMessageCallback(cb func(source, typ, id, severity uint32, msg string)) {
	g.debug = cb
}

func (g *GL) Flush()  { g.call("Flush") }
func (g *GL) Finish() { g.call("Finish") }

func (g *GL) CreateBuffer() uint32 {
	g.call("CreateBuffer")
	n := g.name()
	g.Buffers[n] = &Buffer{}
	return n
}

func (g *GL) DeleteBuffer(buf uint32) {
	g.call("DeleteBuffer")
	delete(g.Buffers, buf)
}

func (g *GL) NamedBufferStorage(buf uint32, size int, data []byte, flags uint32) {
	g.call("NamedBufferStorage")
	b := g.Buffers[buf]
	b.Data = make([]byte, size)
	copy(b.Data, data)
	b.Flags = flags
}

func (g *GL) NamedBufferSubData(buf uint32, off int, data []byte) {
	g.call("NamedBufferSubData")
	copy(g.Buffers[buf].Data[off:], data)
}

func (g *GL) GetNamedBufferSubData(buf uint32, off int, data []byte) {
	g.call("GetNamedBufferSubData")
	copy(data, g.Buffers[buf].Data[off:])
}

func (g *GL) CopyNamedBufferSubData(src, dst uint32, srcOff, dstOff, size int) {
	g.call("CopyNamedBufferSubData")
	copy(g.Buffers[dst].Data[dstOff:dstOff+size], g.Buffers[src].Data[srcOff:srcOff+size])
}

func (g *GL) ClearNamedBufferSubData(buf uint32, off, size int, value uint32) {
	g.call("ClearNamedBufferSubData")
	p := g.Buffers[buf].Data[off : off+size]
	for i := 0; i+4 <= len(p); i += 4 {
		binary.LittleEndian.PutUint32(p[i:], value)
	}
}

func (g *GL) MapNamedBufferRange(buf uint32, off, size int, access uint32) []byte {
	g.call("MapNamedBufferRange")
	b := g.Buffers[buf]
	b.Mapped = true
	return b.Data[off : off+size : off+size]
}

func (g *GL) UnmapNamedBuffer(buf uint32) bool {
	g.call("UnmapNamedBuffer")
	g.Buffers[buf].Mapped = false
	return true
}

func (g *GL) BindBuffer(target, buf uint32) { g.Bound[target] = buf }

func (g *GL) BindBufferRange(target, index, buf uint32, off, size int) {
	g.call("BindBufferRange")
	g.Ranges[[2]uint32{target, index}] = Range{buf, off, size}
}

func (g *GL) BindBufferBase(target, index, buf uint32) {
	g.call("BindBufferBase")
	size := 0
	if b, ok := g.Buffers[buf]; ok {
		size = len(b.Data)
	}
	g.Ranges[[2]uint32{target, index}] = Range{buf, 0, size}
}

func (g *GL) CreateTexture(target uint32) uint32 {
	g.call("CreateTexture")
	n := g.name()
	g.Textures[n] = &Texture{Target: target}
	return n
}

func (g *GL) GenTexture() uint32 {
	g.call("GenTexture")
	n := g.name()
	g.Textures[n] = &Texture{}
	return n
}

func (g *GL) DeleteTexture(tex uint32) {
	g.call("DeleteTexture")
	delete(g.Textures, tex)
}

func (g *GL) TextureStorage(tex, target uint32, levels int, internalFmt uint32, width, height, depth int) {
	t := g.Textures[tex]
	t.Levels = levels
	t.Internal = internalFmt
	t.Samples = 1
	t.Size = [3]int{width, height, depth}
}

func (g *GL) TextureStorageMS(tex, target uint32, samples int, internalFmt uint32, width, height, depth int) {
	t := g.Textures[tex]
	t.Levels = 1
	t.Internal = internalFmt
	t.Samples = samples
	t.Size = [3]int{width, height, depth}
}

func (g *GL) TextureView(view, target, orig, internalFmt uint32, level, levels, layer, layers int) {
	g.call("TextureView")
	t := g.Textures[view]
	t.Target = target
	t.Internal = internalFmt
	t.Levels = levels
	t.Orig = orig
}

func (g *GL) transfer(call string, tex uint32, level, x, y, z, width, height, depth int, format, typ uint32, target uint32, off, n int) {
	rl, ih := uint32(0x0CF2), uint32(0x806E)
	if target == pixelPackBuffer {
		rl, ih = 0x0D02, 0x806C
	}
	g.Transfers = append(g.Transfers, Transfer{
		Call:    call,
		Tex:     tex,
		Level:   level,
		Off:     [3]int{x, y, z},
		Size:    [3]int{width, height, depth},
		Format:  format,
		Type:    typ,
		Buffer:  g.Bound[target],
		BufOff:  off,
		RowLen:  g.PixelStore[rl],
		ImgHgt:  g.PixelStore[ih],
		DataLen: n,
	})
}

func (g *GL) TextureSubImage(tex uint32, level, x, y, z, width, height, depth int, format, typ uint32, off int) {
	g.transfer("TextureSubImage", tex, level, x, y, z, width, height, depth, format, typ, pixelUnpackBuffer, off, 0)
}

func (g *GL) CompressedTextureSubImage(tex uint32, level, x, y, z, width, height, depth int, format uint32, size, off int) {
	g.transfer("CompressedTextureSubImage", tex, level, x, y, z, width, height, depth, format, 0, pixelUnpackBuffer, off, size)
}

func (g *GL) GetTextureSubImage(tex uint32, level, x, y, z, width, height, depth int, format, typ uint32, size, off int) {
	g.transfer("GetTextureSubImage", tex, level, x, y, z, width, height, depth, format, typ, pixelPackBuffer, off, size)
}

func (g *GL) BindTextureUnit(unit, tex uint32) { g.Units[unit] = tex }

func (g *GL) CopyImageSubData(src, srcTarget uint32, srcLevel, srcX, srcY, srcZ int, dst, dstTarget uint32, dstLevel, dstX, dstY, dstZ, width, height, depth int) {
	g.call("CopyImageSubData")
	g.Copies++
}

func (g *GL) CreateSampler() uint32 {
	n := g.name()
	g.Samplers[n] = make(map[uint32]float32)
	return n
}

func (g *GL) DeleteSampler(splr uint32) { delete(g.Samplers, splr) }

func (g *GL) SamplerParameteri(splr, pname uint32, param int32) {
	g.Samplers[splr][pname] = float32(param)
}

func (g *GL) SamplerParameterf(splr, pname uint32, param float32) {
	g.Samplers[splr][pname] = param
}

func (g *GL) SamplerParameterfv(splr, pname uint32, param []float32) {
	if len(param) > 0 {
		g.Samplers[splr][pname] = param[0]
	}
}

func (g *GL) BindSampler(unit, splr uint32) { g.SamplerAt[unit] = splr }

func (g *GL) CreateFramebuffer() uint32 {
	g.call("CreateFramebuffer")
	n := g.name()
	g.Framebuffers[n] = &Framebuffer{Att: make(map[uint32]Attachment)}
	return n
}

func (g *GL) DeleteFramebuffer(fb uint32) {
	g.call("DeleteFramebuffer")
	delete(g.Framebuffers, fb)
}

func (g *GL) NamedFramebufferTexture(fb, attachment, tex uint32, level int) {
	g.Framebuffers[fb].Att[attachment] = Attachment{tex, level, -1}
}

func (g *GL) NamedFramebufferTextureLayer(fb, attachment, tex uint32, level, layer int) {
	g.Framebuffers[fb].Att[attachment] = Attachment{tex, level, layer}
}

func (g *GL) NamedFramebufferDrawBuffers(fb uint32, bufs []uint32) {
	if f, ok := g.Framebuffers[fb]; ok {
		f.DrawBufs = append([]uint32(nil), bufs...)
	}
}

func (g *GL) NamedFramebufferReadBuffer(fb, buf uint32) {
	if f, ok := g.Framebuffers[fb]; ok {
		f.ReadBuf = buf
	}
}

func (g *GL) CheckNamedFramebufferStatus(fb, target uint32) uint32 { return fbComplete }

func (g *GL) BindFramebuffer(target, fb uint32) {
	switch target {
	case 0x8CA8:
		g.ReadFB = fb
	case 0x8CA9:
		g.DrawFB = fb
	default:
		g.ReadFB = fb
		g.DrawFB = fb
	}
}

func (g *GL) BlitNamedFramebuffer(src, dst uint32, src0, src1, dst0, dst1 [2]int32, mask, filter uint32) {
	g.call("BlitNamedFramebuffer")
	g.Blits = append(g.Blits, Blit{src, dst, src0, src1, dst0, dst1, mask, filter})
}

func (g *GL) ClearNamedFramebufferfv(fb, buffer uint32, drawBuf int, value [4]float32) {
	g.Clears = append(g.Clears, Clear{FB: fb, Buffer: buffer, DrawBuf: drawBuf, Color: value, Depth: value[0]})
}

func (g *GL) ClearNamedFramebufferfi(fb, buffer uint32, drawBuf int, depth float32, stencil int32) {
	g.Clears = append(g.Clears, Clear{FB: fb, Buffer: buffer, DrawBuf: drawBuf, Depth: depth, Stencil: stencil})
}

func (g *GL) ClearNamedFramebufferiv(fb, buffer uint32, drawBuf int, value int32) {
	g.Clears = append(g.Clears, Clear{FB: fb, Buffer: buffer, DrawBuf: drawBuf, Stencil: value})
}

func (g *GL) CreateShader(typ uint32) uint32 {
	g.call("CreateShader")
	n := g.name()
	g.Shaders[n] = &Shader{Type: typ}
	return n
}

func (g *GL) ShaderSource(sh uint32, src string) { g.Shaders[sh].Source = src }

func (g *GL) CompileShader(sh uint32) {
	g.call("CompileShader")
	s := g.Shaders[sh]
	s.OK = !strings.Contains(s.Source, ErrorDirective)
}

func (g *GL) GetShaderi(sh, pname uint32) int32 {
	if pname == compileStatus && g.Shaders[sh].OK {
		return 1
	}
	return 0
}

func (g *GL) GetShaderInfoLog(sh uint32) string {
	if g.Shaders[sh].OK {
		return ""
	}
	return "0:1(1): error: " + ErrorDirective + " directive"
}

func (g *GL) DeleteShader(sh uint32) {
	g.call("DeleteShader")
	delete(g.Shaders, sh)
}

func (g *GL) CreateProgram() uint32 {
	g.call("CreateProgram")
	n := g.name()
	g.Programs[n] = &Program{}
	return n
}

func (g *GL) AttachShader(prog, sh uint32) {
	p := g.Programs[prog]
	p.attached = append(p.attached, sh)
}

func (g *GL) DetachShader(prog, sh uint32) {
	p := g.Programs[prog]
	for i, s := range p.attached {
		if s == sh {
			p.attached = append(p.attached[:i], p.attached[i+1:]...)
			break
		}
	}
}

func (g *GL) LinkProgram(prog uint32) {
	g.call("LinkProgram")
	p := g.Programs[prog]
	p.Sources = p.Sources[:0]
	p.OK = len(p.attached) > 0
	for _, sh := range p.attached {
		s := g.Shaders[sh]
		p.Sources = append(p.Sources, s.Source)
		p.OK = p.OK && s.OK
	}
}

func (g *GL) GetProgrami(prog, pname uint32) int32 {
	if pname == linkStatus && g.Programs[prog].OK {
		return 1
	}
	return 0
}

func (g *GL) GetProgramInfoLog(prog uint32) string {
	if g.Programs[prog].OK {
		return ""
	}
	return "error: program has no valid shaders"
}

func (g *GL) DeleteProgram(prog uint32) {
	g.call("DeleteProgram")
	delete(g.Programs, prog)
}

func (g *GL) UseProgram(prog uint32) {
	g.call("UseProgram")
	g.Program = prog
}

func (g *GL) CreateVertexArray() uint32 {
	n := g.name()
	g.VertexArrays[n] = true
	return n
}

func (g *GL) DeleteVertexArray(vao uint32) { delete(g.VertexArrays, vao) }

func (g *GL) BindVertexArray(vao uint32) { g.VertexArray = vao }

func (g *GL) attrib(index uint32) *Attrib {
	a, ok := g.Attribs[index]
	if !ok {
		a = &Attrib{}
		g.Attribs[index] = a
	}
	return a
}

func (g *GL) EnableVertexAttribArray(index uint32) {
	g.call("EnableVertexAttribArray")
	g.attrib(index).Enabled = true
}

func (g *GL) DisableVertexAttribArray(index uint32) {
	g.call("DisableVertexAttribArray")
	g.attrib(index).Enabled = false
}

func (g *GL) VertexAttribPointer(index uint32, size int, typ uint32, normalized bool, stride, off int) {
	a := g.attrib(index)
	*a = Attrib{Enabled: a.Enabled, Buffer: g.Bound[0x8892], Size: size, Type: typ, Normalized: normalized, Stride: stride, Off: off, Divisor: a.Divisor}
}

func (g *GL) VertexAttribIPointer(index uint32, size int, typ uint32, stride, off int) {
	a := g.attrib(index)
	*a = Attrib{Enabled: a.Enabled, Buffer: g.Bound[0x8892], Size: size, Type: typ, Integer: true, Stride: stride, Off: off, Divisor: a.Divisor}
}

func (g *GL) VertexAttribDivisor(index, divisor uint32) { g.attrib(index).Divisor = divisor }

func (g *GL) draw(d Draw) {
	g.call(d.Call)
	d.Program = g.Program
	d.FB = g.DrawFB
	g.Draws = append(g.Draws, d)
}

func (g *GL) DrawArraysInstancedBaseInstance(mode uint32, first, count, instCount, baseInst int) {
	g.draw(Draw{Call: "DrawArraysInstancedBaseInstance", Mode: mode, First: first, Count: count, Instances: instCount, BaseInst: baseInst})
}

func (g *GL) DrawElementsInstancedBaseVertexBaseInstance(mode uint32, count int, typ uint32, off, instCount, baseVert, baseInst int) {
	g.draw(Draw{Call: "DrawElementsInstancedBaseVertexBaseInstance", Mode: mode, Count: count, Off: off, Instances: instCount, BaseVert: baseVert, BaseInst: baseInst})
}

func (g *GL) DrawArraysIndirect(mode uint32, off int) {
	g.draw(Draw{Call: "DrawArraysIndirect", Mode: mode, Off: off})
}

func (g *GL) DrawElementsIndirect(mode, typ uint32, off int) {
	g.draw(Draw{Call: "DrawElementsIndirect", Mode: mode, Off: off})
}

func (g *GL) DispatchCompute(x, y, z uint32) {
	g.draw(Draw{Call: "DispatchCompute", Count: int(x * y * z)})
}

func (g *GL) DispatchComputeIndirect(off int) {
	g.draw(Draw{Call: "DispatchComputeIndirect", Off: off})
}

func (g *GL) MemoryBarrier(bits uint32) {
	g.call("MemoryBarrier")
	g.Barrier = bits
}

func (g *GL) BlendEquationSeparatei(buf, modeRGB, modeAlpha uint32) {
	g.BlendEq[buf] = [2]uint32{modeRGB, modeAlpha}
}

func (g *GL) BlendFuncSeparatei(buf, srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	g.BlendFunc[buf] = [4]uint32{srcRGB, dstRGB, srcAlpha, dstAlpha}
}

func (g *GL) ColorMaski(buf uint32, r, gr, b, a bool) { g.ColorMask[buf] = [4]bool{r, gr, b, a} }

func (g *GL) BlendColor(r, gr, b, a float32) { g.BlendConst = [4]float32{r, gr, b, a} }

func (g *GL) CullFace(mode uint32) { g.Cull = mode }

func (g *GL) FrontFace(mode uint32) { g.Winding = mode }

func (g *GL) PolygonMode(face, mode uint32) { g.Fill = mode }

func (g *GL) LineWidth(w float32) { g.LineW = w }

func (g *GL) PolygonOffset(factor, units float32) { g.Offset = [2]float32{factor, units} }

func (g *GL) Viewport(x, y, width, height int32) {
	g.call("Viewport")
	g.VP = [4]int32{x, y, width, height}
}

func (g *GL) DepthRangef(near, far float32) { g.DepthRange = [2]float32{near, far} }

func (g *GL) Scissor(x, y, width, height int32) { g.ScissorBox = [4]int32{x, y, width, height} }

func (g *GL) DepthFunc(fn uint32) { g.DepthCmp = fn }

func (g *GL) DepthMask(flag bool) { g.DepthWrite = flag }

// faces returns the stencil state of face.
func (g *GL) faces(face uint32) []*Stencil {
	switch face {
	case front:
		return []*Stencil{&g.Stencil[0]}
	case back:
		return []*Stencil{&g.Stencil[1]}
	case frontAndBack:
		return []*Stencil{&g.Stencil[0], &g.Stencil[1]}
	}
	return nil
}

func (g *GL) StencilFuncSeparate(face, fn uint32, ref int32, mask uint32) {
	for _, s := range g.faces(face) {
		s.Func, s.Ref, s.ReadMask = fn, ref, mask
	}
}

func (g *GL) StencilOpSeparate(face, sfail, dpfail, dppass uint32) {
	for _, s := range g.faces(face) {
		s.Op = [3]uint32{sfail, dpfail, dppass}
	}
}

func (g *GL) StencilMaskSeparate(face, mask uint32) {
	for _, s := range g.faces(face) {
		s.WriteMask = mask
	}
}

func (g *GL) FenceSync() uintptr {
	g.call("FenceSync")
	n := uintptr(g.name())
	g.Syncs[n] = true
	return n
}

func (g *GL) ClientWaitSync(sync uintptr, flags uint32, timeout uint64) uint32 {
	return alreadySignaled
}

func (g *GL) GetSynci(sync uintptr, pname uint32) int32 {
	if pname == syncStatus {
		return signaled
	}
	return 0
}

func (g *GL) DeleteSync(sync uintptr) {
	g.call("DeleteSync")
	delete(g.Syncs, sync)
}

func (g *GL) CreateQuery(target uint32) uint32 {
	n := g.name()
	g.Queries[n] = target
	return n
}

func (g *GL) DeleteQuery(q uint32) { delete(g.Queries, q) }

func (g *GL) BeginQuery(target, q uint32) { g.ActiveQuery = q }

func (g *GL) EndQuery(target uint32) { g.ActiveQuery = 0 }

func (g *GL) GetQueryObjectui64(q, pname uint32) uint64 {
	if pname == queryResult {
		return g.QueryResult
	}
	return 1
}
