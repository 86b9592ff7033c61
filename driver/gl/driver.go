// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package gl implements driver interfaces on top of
// OpenGL 4.5.
//
// OpenGL has no pipeline objects, no render passes and a
// single mutable context, so the package emulates them:
// binding a pipeline reapplies all of its fixed-function
// state, descriptor sets are translated into flat binding
// points assigned when the pipeline is built, and render
// pass clears target per-subresource framebuffers.
//
// Commands execute as they are recorded. Submit only
// signals fences. A Driver, and everything created from
// it, must be used from a single goroutine.
package gl

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/gviegas/glemu/driver"
	"github.com/gviegas/glemu/internal/arena"
)

const driverName = "opengl"

// Default size of the push constant block.
const defaultPushSize = 128

// Well-supported values reported when the context does
// not expose a limit.
const (
	defMaxAnisotropy   = 16
	defMaxBufferRange  = 134217728
	defMaxImageLayers  = 2048
	defConstantAlign   = 256
	defBufferAlign     = 16
	defMaxColorTargets = 8
)

// Driver implements driver.Driver and driver.GPU.
type Driver struct {
	n    Native
	cfg  Config
	val  validator
	open bool

	vao   uint32
	pipes arena.Arena[pipeline]
	push  pushConst
	blit  *blitter
	sc    *swapchain
	lim   driver.Limits
}

// New creates a new Driver that issues calls through n.
// The driver is not opened.
func New(n Native, cfg Config) *Driver {
	if cfg.PushConstantSize <= 0 {
		cfg.PushConstantSize = defaultPushSize
	}
	return &Driver{
		n:   n,
		cfg: cfg,
		val: newValidator(&cfg),
	}
}

// Open initializes the driver.
func (d *Driver) Open() (driver.GPU, error) {
	if d.open {
		return d, nil
	}
	if err := d.n.Load(); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "gl: failed to load context"), driver.ErrNotInstalled)
	}
	if d.val.on {
		d.n.Enable(DEBUG_OUTPUT)
		d.n.Enable(DEBUG_OUTPUT_SYNCHRONOUS)
		d.n.DebugMessageCallback(d.val.debugMessage)
	}
	// Pixel transfers are tightly packed.
	d.n.PixelStorei(UNPACK_ALIGNMENT, 1)
	d.n.PixelStorei(PACK_ALIGNMENT, 1)
	d.n.Enable(TEXTURE_CUBE_MAP_SEAMLESS)
	d.vao = d.n.CreateVertexArray()
	d.n.BindVertexArray(d.vao)
	d.setLimits()
	d.val.log.Info("context loaded",
		"vendor", d.n.GetString(VENDOR),
		"renderer", d.n.GetString(RENDERER),
		"version", d.n.GetString(VERSION))
	if err := d.push.init(d, d.cfg.PushConstantSize); err != nil {
		d.n.DeleteVertexArray(d.vao)
		d.n.Unload()
		return nil, err
	}
	d.val.check(d.n, "Open")
	d.open = true
	return d, nil
}

// Name returns the driver name.
func (d *Driver) Name() string { return driverName }

// Close deinitializes the driver.
func (d *Driver) Close() {
	if !d.open {
		return
	}
	for _, p := range d.pipes.All() {
		d.n.DeleteProgram(p.prog)
	}
	if d.blit != nil {
		d.blit.destroy()
	}
	if d.sc != nil {
		d.sc.Destroy()
	}
	d.push.destroy()
	d.n.BindVertexArray(0)
	d.n.DeleteVertexArray(d.vao)
	d.n.Unload()
	*d = Driver{
		n:   d.n,
		cfg: d.cfg,
		val: d.val,
	}
}

// Driver returns the receiver.
func (d *Driver) Driver() driver.Driver { return d }

// Limits returns the implementation limits.
func (d *Driver) Limits() driver.Limits { return d.lim }

// Submit signals fence. Commands in cb have already
// executed.
func (d *Driver) Submit(cb []driver.CmdBuffer, fence driver.Fence) error {
	for i := range cb {
		c := cb[i].(*cmdBuffer)
		if c.state != cmdStopped {
			return errors.Newf("gl: command buffer %d was not ended", i)
		}
		c.state = cmdInitial
	}
	d.n.Flush()
	if fence != nil {
		fence.(*fenceSync).signal()
	}
	return nil
}

// WaitFences waits for one or all fences to be signaled.
func (d *Driver) WaitFences(fence []driver.Fence, all bool, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		n := 0
		for _, f := range fence {
			if f.(*fenceSync).poll(0) {
				n++
			}
		}
		if n == len(fence) || (!all && n > 0) {
			return nil
		}
		if !time.Now().Before(deadline) {
			return driver.ErrTimeout
		}
		time.Sleep(fencePoll)
	}
}

// WaitIdle waits for all submitted work to complete.
func (d *Driver) WaitIdle() error {
	d.n.Finish()
	return nil
}

// SavePipelineCache is not supported.
func (d *Driver) SavePipelineCache() ([]byte, error) {
	return nil, errors.Mark(errors.New("gl: pipeline cache persistence"), driver.ErrUnsupported)
}

// setLimits queries implementation limits.
func (d *Driver) setLimits() {
	get := func(pname uint32, def int) int {
		var v [1]int32
		d.n.GetIntegerv(pname, v[:])
		if v[0] <= 0 {
			return def
		}
		return int(v[0])
	}
	d.lim = driver.Limits{
		MaxImage1D:        get(MAX_TEXTURE_SIZE, 4096),
		MaxImage2D:        get(MAX_TEXTURE_SIZE, 4096),
		MaxImageCube:      get(MAX_CUBE_MAP_TEXTURE_SIZE, 4096),
		MaxImage3D:        get(MAX_3D_TEXTURE_SIZE, 256),
		MaxLayers:         get(MAX_ARRAY_TEXTURE_LAYERS, defMaxImageLayers),
		MaxDBuffer:        get(MAX_SSBO_BINDINGS, 8),
		MaxDConstant:      get(MAX_UNIFORM_BUFFER_BINDINGS, 36) - 1,
		MaxDTexture:       get(MAX_COMBINED_TEXTURE_UNITS, 48),
		MaxDBufferRange:   int64(get(MAX_SHADER_STORAGE_BLOCK, defMaxBufferRange)),
		MaxDConstantRange: int64(get(MAX_UNIFORM_BLOCK_SIZE, 16384)),
		MaxPushConstants:  d.cfg.PushConstantSize,
		ConstantAlign:     int64(get(UNIFORM_BUFFER_OFFSET_ALIGN, defConstantAlign)),
		BufferAlign:       int64(get(SSBO_OFFSET_ALIGNMENT, defBufferAlign)),
		MaxColorTargets:   get(MAX_COLOR_ATTACHMENTS, defMaxColorTargets),
		MaxFBSize:         [2]int{get(MAX_FRAMEBUFFER_WIDTH, 4096), get(MAX_FRAMEBUFFER_HEIGHT, 4096)},
		MaxFBLayers:       get(MAX_FRAMEBUFFER_LAYERS, defMaxImageLayers),
		MaxPointSize:      1,
		MaxViewports:      get(MAX_VIEWPORTS, 16),
		MaxAnisotropy:     defMaxAnisotropy,
		MaxVertexIn:       get(MAX_VERTEX_ATTRIBS, 16),
		MaxFragmentIn:     get(MAX_VARYING_COMPONENTS, 60) / 4,
	}
	for i := range d.lim.MaxDispatch {
		d.lim.MaxDispatch[i] = int(d.n.GetIntegeri(MAX_COMPUTE_WORK_GROUP_COUNT, uint32(i)))
		if d.lim.MaxDispatch[i] <= 0 {
			d.lim.MaxDispatch[i] = 65535
		}
	}
}

// pushConst is the context-wide push constant block.
// It is bound to uniform buffer binding 0 for the lifetime
// of the driver, which is why binding point allocation for
// buffers starts at 1.
// The shadow copy makes uploads of unchanged data no-ops.
// It is shared by every command buffer, which is sound
// only because recording is single-threaded.
type pushConst struct {
	d      *Driver
	buf    uint32
	shadow []byte
	known  []bool
}

func (p *pushConst) init(d *Driver, size int) error {
	p.d = d
	p.buf = d.n.CreateBuffer()
	if p.buf == 0 {
		return errors.Mark(errors.New("gl: failed to create push constant buffer"), driver.ErrNoDeviceMemory)
	}
	d.n.NamedBufferStorage(p.buf, size, nil, DYNAMIC_STORAGE_BIT)
	d.n.BindBufferRange(UNIFORM_BUFFER, 0, p.buf, 0, size)
	p.shadow = make([]byte, size)
	p.known = make([]bool, size)
	return nil
}

// write updates the block.
// It reports whether an upload was issued.
func (p *pushConst) write(off int, data []byte) bool {
	if off < 0 || off+len(data) > len(p.shadow) {
		p.d.val.report(SevError, "PushConstants: range [%d, %d) exceeds block size %d", off, off+len(data), len(p.shadow))
		if off < 0 || off >= len(p.shadow) {
			return false
		}
		data = data[:len(p.shadow)-off]
	}
	same := true
	for i, b := range data {
		if !p.known[off+i] || p.shadow[off+i] != b {
			same = false
			break
		}
	}
	if same {
		return false
	}
	copy(p.shadow[off:], data)
	for i := range data {
		p.known[off+i] = true
	}
	p.d.n.NamedBufferSubData(p.buf, off, data)
	p.d.n.BindBufferRange(UNIFORM_BUFFER, 0, p.buf, 0, len(p.shadow))
	return true
}

// pushSave is a copy of the push constant block.
type pushSave struct {
	data  []byte
	known []bool
}

// save copies the block contents.
func (p *pushConst) save() pushSave {
	return pushSave{
		data:  append([]byte(nil), p.shadow...),
		known: append([]bool(nil), p.known...),
	}
}

// restore uploads contents copied by save.
func (p *pushConst) restore(s pushSave) {
	copy(p.shadow, s.data)
	copy(p.known, s.known)
	p.d.n.NamedBufferSubData(p.buf, 0, p.shadow)
	p.d.n.BindBufferRange(UNIFORM_BUFFER, 0, p.buf, 0, len(p.shadow))
}

// invalidate forgets the shadow contents.
func (p *pushConst) invalidate() { clear(p.known) }

func (p *pushConst) destroy() {
	if p.buf != 0 {
		p.d.n.DeleteBuffer(p.buf)
	}
	*p = pushConst{}
}
