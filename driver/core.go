// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package driver

import (
	"time"
)

// GPU is the main interface to an underlying driver
// implementation.
// It is used to create other types and to execute commands.
// A GPU is obtained from a call to Driver.Open.
// A GPU must only be used from the goroutine that opened it.
type GPU interface {
	// Driver returns the Driver that owns the GPU.
	Driver() Driver

	// Submit submits a batch of command buffers to the GPU
	// for execution.
	// Command buffers must have been ended. If fence is not
	// nil, it is signaled when every command in the batch
	// completes.
	Submit(cb []CmdBuffer, fence Fence) error

	// NewCmdBuffer creates a new command buffer.
	NewCmdBuffer() (CmdBuffer, error)

	// NewRenderPass creates a new render pass.
	NewRenderPass(att []Attachment, sub []Subpass) (RenderPass, error)

	// NewShaderCode creates a new shader code from
	// source text.
	NewShaderCode(stage Stage, src []byte) (ShaderCode, error)

	// NewDescSet creates a new descriptor set.
	NewDescSet(layout []Descriptor) (DescSet, error)

	// NewPipeline creates a new pipeline.
	// The state parameter must be a pointer to a GraphState,
	// a pointer to a CompState or a pointer to a RTState.
	// Drivers that cannot honor a given state return an
	// error matching ErrUnsupported.
	NewPipeline(state any) (PipelineID, error)

	// DestroyPipeline destroys the pipeline identified by
	// id. The id must not be used afterwards, even if a
	// new pipeline reuses its storage.
	DestroyPipeline(id PipelineID)

	// NewBuffer creates a new buffer.
	NewBuffer(size int64, mem MemFlag, usg Usage) (Buffer, error)

	// NewDynamicPool creates a new pool that adopts the
	// storage of buf and can grow up to maxSize bytes.
	// buf must not be used after this call.
	NewDynamicPool(buf Buffer, maxSize int64) (DynamicPool, error)

	// NewUniformPool creates a new pool of fixed-stride
	// constant buffer instances that adopts the storage
	// of buf. buf must not be used after this call.
	NewUniformPool(buf Buffer, instSize, maxSize int64) (UniformPool, error)

	// NewImage creates a new image.
	NewImage(pf PixelFmt, size Dim3D, layers, levels, samples int, usg Usage) (Image, error)

	// NewSampler creates a new Sampler.
	NewSampler(spln *Sampling) (Sampler, error)

	// NewFence creates a new fence.
	NewFence(signaled bool) (Fence, error)

	// NewEvent creates a new event.
	NewEvent() (Event, error)

	// NewQueryPool creates a new query pool.
	NewQueryPool(typ QueryType, n int) (QueryPool, error)

	// WaitFences waits for one or all fences to be
	// signaled, up to timeout.
	WaitFences(fence []Fence, all bool, timeout time.Duration) error

	// WaitIdle waits for all submitted work to complete.
	WaitIdle() error

	// SavePipelineCache writes the pipeline cache.
	SavePipelineCache() ([]byte, error)

	// Limits returns the implementation limits.
	// They are immutable for the lifetime of the GPU.
	Limits() Limits
}

// Destroyer is the interface that wraps the Destroy method.
// Types that implement this interface may allocate external
// memory that is not managed by GC, so Destroy must be
// called explicitly to ensure such memory is deallocated.
type Destroyer interface {
	Destroy()
}

// PipelineID identifies a pipeline created by a GPU.
// The zero value never identifies a pipeline.
type PipelineID uint64

// CmdBuffer is the interface that defines a command buffer.
// The usage is as follows:
// First, call Begin to prepare the command buffer for
// recording. Then, if it succeeds:
//
// To record commands for a render pass:
//  1. call BeginPass
//  2. call Set* methods to configure rendering state
//  3. call Draw* commands
//  4. call NextSubpass (if using multiple subpasses)
//  5. repeat 2-4 as needed
//  6. call EndPass
//
// Compute and copy commands are recorded outside of
// render passes.
// Finally, call End and, if it succeeds, GPU.Submit.
type CmdBuffer interface {
	Destroyer

	// Begin prepares the command buffer for recording.
	// It resets every piece of bound state.
	Begin() error

	// End ends command recording.
	End() error

	// Reset discards all recorded commands from the
	// command buffer.
	Reset() error

	// BeginPass begins the first subpass of a given
	// render pass. Attachments whose load operation
	// is LClear are cleared with the given values.
	BeginPass(pass RenderPass, fb Framebuf, clear []ClearValue)

	// NextSubpass ends the current subpass and begins
	// the next one.
	NextSubpass()

	// EndPass ends the current render pass.
	EndPass()

	// SetPipeline binds a pipeline.
	SetPipeline(id PipelineID) error

	// ClearBoundPipeline unbinds the current pipeline.
	ClearBoundPipeline()

	// SetDescSet binds descriptor sets starting at set
	// index start. dynOff provides one offset for each
	// element of every DDynConstant descriptor, in order.
	SetDescSet(start int, ds []DescSet, dynOff []int64)

	// PushConstants updates push constant data.
	PushConstants(off int, data []byte)

	// SetVertexBuf sets one or more vertex buffers.
	SetVertexBuf(start int, buf []Buffer, off []int64)

	// SetIndexBuf sets the index buffer.
	SetIndexBuf(format IndexFmt, buf Buffer, off int64)

	// SetViewport sets the bounds of one or more
	// viewports.
	SetViewport(vp []Viewport)

	// SetScissor sets the rectangles of one or more
	// viewport scissors.
	SetScissor(sciss []Scissor)

	// SetLineWidth sets the line width.
	SetLineWidth(w float32)

	// SetDepthBias sets the depth bias parameters.
	SetDepthBias(value, slope, clamp float32)

	// SetBlendColor sets the constant blend color.
	SetBlendColor(r, g, b, a float32)

	// SetStencilRef sets the stencil reference value.
	SetStencilRef(value uint32)

	// SetStencilWriteMask sets the stencil write mask
	// of front and/or back faces.
	SetStencilWriteMask(front, back bool, mask uint32)

	// Draw draws primitives.
	Draw(vertCount, instCount, baseVert, baseInst int) error

	// DrawIndexed draws indexed primitives.
	DrawIndexed(idxCount, instCount, baseIdx, vertOff, baseInst int) error

	// DrawIndirect draws primitives with parameters
	// sourced from buf.
	DrawIndirect(buf Buffer, off int64, count, stride int) error

	// DrawIndexedIndirect draws indexed primitives with
	// parameters sourced from buf.
	DrawIndexedIndirect(buf Buffer, off int64, count, stride int) error

	// Dispatch dispatches compute thread groups.
	Dispatch(grpCountX, grpCountY, grpCountZ int) error

	// DispatchIndirect dispatches compute thread groups
	// with parameters sourced from buf.
	DispatchIndirect(buf Buffer, off int64) error

	// CopyBuffer copies data between buffers.
	CopyBuffer(param *BufferCopy) error

	// CopyImage copies data between images.
	CopyImage(param *ImageCopy) error

	// CopyBufToImg copies data from a buffer to
	// an image.
	CopyBufToImg(param *BufImgCopy) error

	// CopyImgToBuf copies data from an image to
	// a buffer.
	CopyImgToBuf(param *BufImgCopy) error

	// BlitImage copies scaled regions between images.
	BlitImage(param *ImageBlit) error

	// ResolveImage resolves a multisample image into
	// a single-sample image.
	ResolveImage(param *ImageCopy) error

	// ClearImage clears a subresource range of an image.
	ClearImage(img Image, layer, layers, level, levels int, value ClearValue) error

	// Fill fills a buffer range with copies of a
	// 32-bit value.
	// off and size must be aligned to 4 bytes.
	Fill(buf Buffer, off int64, value uint32, size int64)

	// Update writes data into a buffer range.
	Update(buf Buffer, off int64, data []byte)

	// Barrier inserts a number of global barriers
	// in the command buffer.
	Barrier(b []Barrier)

	// SetEvent sets an event.
	SetEvent(ev Event)

	// ResetEvent resets an event.
	ResetEvent(ev Event)

	// BeginQuery begins a query.
	BeginQuery(qp QueryPool, index int) error

	// EndQuery ends a query.
	EndQuery(qp QueryPool, index int) error
}

// BufferCopy describes the parameters of a copy command
// that copies data from one buffer to another.
type BufferCopy struct {
	From    Buffer
	FromOff int64
	To      Buffer
	ToOff   int64
	Size    int64
}

// ImageCopy describes the parameters of a copy command
// that copies data from one image to another.
type ImageCopy struct {
	From      Image
	FromOff   Off3D
	FromLayer int
	FromLevel int
	To        Image
	ToOff     Off3D
	ToLayer   int
	ToLevel   int
	Size      Dim3D
	Layers    int
}

// ImageBlit describes the parameters of a blit command.
// Rectangles are given as [min, max) corners.
type ImageBlit struct {
	From      Image
	FromRect  [2]Off3D
	FromLayer int
	FromLevel int
	To        Image
	ToRect    [2]Off3D
	ToLayer   int
	ToLevel   int
	Layers    int
	Filter    Filter
}

// BufImgCopy describes the parameters of a copy command
// that copies data between a buffer and an image.
type BufImgCopy struct {
	Buf    Buffer
	BufOff int64
	// Stride specifies the addressing of image data
	// in the buffer. It is given in pixels.
	// Stride[0] refers to the row length and Stride[1]
	// refers to the image height.
	Stride [2]int64
	Img    Image
	ImgOff Off3D
	Layer  int
	Level  int
	Size   Dim3D
	// DepthCopy selects either the depth or stencil
	// aspects to copy. It is only used if Img has a
	// combined depth/stencil format.
	DepthCopy bool
}

// Sync is the type of a synchronization scope.
type Sync int

// Synchronization scopes.
const (
	SVertexInput Sync = 1 << iota
	SVertexShading
	SFragmentShading
	SComputeShading
	SColorOutput
	SDSOutput
	SDraw
	SResolve
	SCopy
	SAll
	SNone Sync = 0
)

// Access is the type of a memory access scope.
type Access int

// Memory access scopes.
const (
	AVertexBufRead Access = 1 << iota
	AIndexBufRead
	AColorRead
	AColorWrite
	ADSRead
	ADSWrite
	AResolveRead
	AResolveWrite
	ACopyRead
	ACopyWrite
	AShaderRead
	AShaderWrite
	AHostRead
	AAnyRead
	AAnyWrite
	ANone Access = 0
)

// Barrier represents a synchronization barrier.
type Barrier struct {
	SyncBefore   Sync
	SyncAfter    Sync
	AccessBefore Access
	AccessAfter  Access
}

// LoadOp is the type of an attachment's load operation.
type LoadOp int

// Load operations.
const (
	LDontCare LoadOp = iota
	LClear
	LLoad
)

// StoreOp is the type of an attachment's store operation.
type StoreOp int

// Store operations.
const (
	SDontCare StoreOp = iota
	SStore
)

// Attachment describes the configuration of a single
// render target for use in a render pass.
// Load[1] and Store[1] apply to the stencil aspect.
type Attachment struct {
	Format  PixelFmt
	Samples int
	Load    [2]LoadOp
	Store   [2]StoreOp
}

// Subpass defines a subpass of a render pass.
// The Color, DS (depth/stencil) and MSR (multisample resolve)
// fields contain indices in the render pass' attachment list.
// DS is negative when the subpass has no depth/stencil
// attachment.
type Subpass struct {
	Color []int
	DS    int
	MSR   []int
	Wait  bool
}

// RenderPass is the interface that defines a render pass
// into which draw commands operate.
type RenderPass interface {
	Destroyer

	// NewFB creates a new framebuffer.
	// Each image view in iv correspond to the render pass'
	// attachment of same index.
	NewFB(iv []ImageView, width, height, layers int) (Framebuf, error)
}

// Framebuf is the interface that defines the render targets
// of a render pass.
type Framebuf interface {
	Destroyer
}

// ClearValue defines clear values for color or depth/stencil
// aspects of a render target.
type ClearValue struct {
	Color   [4]float32
	Depth   float32
	Stencil uint32
}

// ShaderCode is the interface that defines the source of a
// shader for execution in a programmable pipeline stage.
type ShaderCode interface {
	Destroyer

	// Stage returns the stage the code was created for.
	Stage() Stage
}

// ShaderFunc specifies a function within a shader.
type ShaderFunc struct {
	Code ShaderCode
	Name string
}

// Stage is a mask of programmable stages.
type Stage int

// Stages.
const (
	SVertex Stage = 1 << iota
	SFragment
	SCompute
)

// DescType is the type of a descriptor.
type DescType int

// Descriptor types.
const (
	// Combined texture and sampler, accessed through a
	// binding point that addresses a single layer.
	DTexture DescType = iota
	// Combined texture and sampler whose layers can
	// be addressed individually.
	DArrayTexture
	// Constant buffer.
	DConstant
	// Constant buffer whose offset is given at bind time.
	DDynConstant
	// Read/write buffer.
	DBuffer
)

// IsImage returns whether descriptors of type t refer
// to images.
func (t DescType) IsImage() bool { return t == DTexture || t == DArrayTexture }

// Descriptor describes data for use in shaders.
// Nr is the binding number within the set and Len is
// the array length (zero means one).
type Descriptor struct {
	Type   DescType
	Stages Stage
	Nr     int
	Len    int
}

// DescSet is the interface that defines a set of descriptors
// for use in programmable pipeline stages.
type DescSet interface {
	Destroyer

	// SetBuffer updates the buffer ranges referred by the
	// given descriptor.
	// The descriptor must be of type DConstant, DDynConstant
	// or DBuffer.
	SetBuffer(nr, start int, buf []Buffer, off, size []int64)

	// SetImage updates the image views and samplers
	// referred by the given descriptor.
	// The descriptor must be of type DTexture or
	// DArrayTexture. A nil view leaves the element unset.
	SetImage(nr, start int, iv []ImageView, splr []Sampler)

	// SetLayer selects a single layer of the view bound
	// to element idx of the given descriptor.
	// A negative layer selects the whole view.
	SetLayer(nr, idx, layer int)
}

// VertexFmt describes the format of a vertex input.
type VertexFmt int

// Vertex formats.
const (
	// Signed 8-bit integer, 1-4 components.
	Int8 VertexFmt = iota
	Int8x2
	Int8x3
	Int8x4
	// Signed 16-bit integer, 1-4 components.
	Int16
	Int16x2
	Int16x3
	Int16x4
	// Signed 32-bit integer, 1-4 components.
	Int32
	Int32x2
	Int32x3
	Int32x4
	// Unsigned 8-bit integer, 1-4 components.
	UInt8
	UInt8x2
	UInt8x3
	UInt8x4
	// Unsigned 16-bit integer, 1-4 components.
	UInt16
	UInt16x2
	UInt16x3
	UInt16x4
	// Unsigned 32-bit integer, 1-4 components.
	UInt32
	UInt32x2
	UInt32x3
	UInt32x4
	// Single precision floating-point, 1-4 components.
	Float32
	Float32x2
	Float32x3
	Float32x4
	// Normalized unsigned 8-bit integer, 1-4 components.
	UNorm8
	UNorm8x2
	UNorm8x3
	UNorm8x4
)

// VertexIn describes a vertex input.
// Consecutive vertices are fetched Stride bytes apart.
// Each vertex input represents a separate buffer binding,
// interleaved inputs are not supported.
// Nr is the attribute location and Name is informative.
// Instanced inputs advance once per instance.
type VertexIn struct {
	Format    VertexFmt
	Stride    int
	Nr        int
	Name      string
	Instanced bool
}

// Topology is the type of primitive topologies,
// which determines how vertex data is assembled.
type Topology int

// Primitive topologies.
const (
	TPoint Topology = iota
	TLine
	TLnStrip
	TTriangle
	TTriStrip
	TTriFan
)

// IndexFmt describes the format of index buffer data.
type IndexFmt int

// Index formats.
const (
	Index16 IndexFmt = 2
	Index32 IndexFmt = 4
)

// Viewport defines the bounds of a viewport.
type Viewport struct {
	X, Y, Width, Height, Znear, Zfar float32
}

// Scissor defines a scissor rectangle.
type Scissor struct {
	X, Y, Width, Height int
}

// Cullmode is the type of cull modes, which
// determines primitive culling based on triangle
// facing direction.
type CullMode int

// Cull modes.
const (
	CNone CullMode = iota
	CFront
	CBack
)

// FillMode is the type of triangle fill modes, which
// determines the final rasterization of triangles.
type FillMode int

// Triangle fill modes.
const (
	FFill FillMode = iota
	FLines
)

// RasterState defines the rasterization state of a
// graphics pipeline.
type RasterState struct {
	// Winding order is either clockwise or counter-clockwise.
	Clockwise bool
	Cull      CullMode
	Fill      FillMode
	LineWidth float32
	// DepthBias enables depth bias computation.
	DepthBias bool
	BiasValue float32
	BiasSlope float32
	BiasClamp float32
}

// CmpFunc is the type of comparison functions.
type CmpFunc int

// Comparison functions.
const (
	CNever CmpFunc = iota
	CLess
	CEqual
	CLessEqual
	CGreater
	CNotEqual
	CGreaterEqual
	CAlways
)

// StencilOp is the type of stencil operations.
type StencilOp int

// Stencil operations.
const (
	SKeep StencilOp = iota
	SZero
	SReplace
	SIncClamp
	SDecClamp
	SInvert
	SIncWrap
	SDecWrap
)

// StencilT defines stencil test parameters for the
// depth/stencil state of a graphics pipeline.
type StencilT struct {
	DSFail    [2]StencilOp
	Pass      StencilOp
	ReadMask  uint32
	WriteMask uint32
	Cmp       CmpFunc
}

// DSState defines the depth/stencil state of a
// graphics pipeline.
type DSState struct {
	// DepthTest enables the depth test.
	DepthTest bool
	// DepthWrite enables depth writes.
	DepthWrite bool
	DepthCmp   CmpFunc
	// StencilTest enables the stencil test.
	StencilTest bool
	Front       StencilT
	Back        StencilT
}

// BlenOp is the type of blend operations.
type BlendOp int

// Blend operations.
const (
	BAdd BlendOp = iota
	BSubtract
	BRevSubtract
	BMin
	BMax
)

// BlendFac is the type of blend factors.
type BlendFac int

// Blend factors.
const (
	BZero BlendFac = iota
	BOne
	BSrcColor
	BInvSrcColor
	BSrcAlpha
	BInvSrcAlpha
	BDstColor
	BInvDstColor
	BDstAlpha
	BInvDstAlpha
	BSrcAlphaSaturated
	BBlendColor
	BInvBlendColor
)

// ColorMask is the type of a color write mask.
type ColorMask int

// Color write masks.
const (
	CRed ColorMask = 1 << iota
	CGreen
	CBlue
	CAlpha
	// Write to all channels.
	CAll ColorMask = 1<<iota - 1
)

// ColorBlend defines a render target's blend parameters
// for the color blend state of a graphics pipeline.
type ColorBlend struct {
	// Blend enables blending.
	Blend bool
	// WriteMask specifies which color channels to write.
	WriteMask ColorMask
	// In the arrays that follows, [0] is for color and
	// [1] is for alpha.
	Op     [2]BlendOp
	SrcFac [2]BlendFac
	DstFac [2]BlendFac
}

// BlendState defines the color blend state of a
// graphics pipeline.
type BlendState struct {
	// IndependentBlend enables each render target to use
	// different blend parameters.
	IndependentBlend bool
	// Color contains color blend parameters for each
	// render target. If IndependentBlend is false,
	// only Color[0] is used.
	Color []ColorBlend
}

// Dynamic is a mask of pipeline state that is provided
// by commands rather than by the pipeline itself.
type Dynamic int

// Dynamic states.
const (
	DynViewport Dynamic = 1 << iota
	DynScissor
	DynLineWidth
	DynDepthBias
	DynBlendColor
	DynStencilRef
)

// GraphState defines the combination of programmable and
// fixed stages of a graphics pipeline.
// Viewport and Scissor are ignored when the respective
// state is dynamic. A zero Scissor disables the scissor
// test.
type GraphState struct {
	VertFunc ShaderFunc
	FragFunc ShaderFunc
	Input    []VertexIn
	Topology Topology
	Raster   RasterState
	Samples  int
	DS       DSState
	Blend    BlendState
	Viewport Viewport
	Scissor  Scissor
	Dynamic  Dynamic
	Pass     RenderPass
	Subpass  int
}

// CompState defines the state of a compute pipeline.
type CompState struct {
	Func ShaderFunc
}

// RTState defines the state of a ray tracing pipeline.
type RTState struct {
	RayGen ShaderFunc
	Miss   []ShaderFunc
	Hit    []ShaderFunc
	Depth  int
}

// Usage is a mask indicating valid uses for a resource.
type Usage int

// Usage flags for Buffer and Image.
const (
	// The resource can be read in shaders.
	UShaderRead Usage = 1 << iota
	// The resource can be written in shaders.
	UShaderWrite
	// The resource can provide constant data for shaders.
	// Valid only for Buffer.
	UShaderConst
	// The resource can be sampled in shaders.
	// Valid only for Image.
	UShaderSample
	// The resource can provide vertex data for draw calls.
	// Valid only for Buffer.
	UVertexData
	// The resource can provide index data for draw calls.
	// Valid only for Buffer.
	UIndexData
	// The resource can be used as render target.
	// Valid only for Image.
	URenderTarget
	// The resource can provide indirect command parameters.
	// Valid only for Buffer.
	UIndirect
	// The resource can be used for any purpose.
	UGeneric Usage = 1<<iota - 1
)

// MemFlag is a mask of buffer memory properties.
type MemFlag int

// Memory properties.
const (
	// The host can map the buffer for writing.
	MHostVisible MemFlag = 1 << iota
	// The host can map the buffer for reading.
	MHostRead
	// Host writes are visible without flushes.
	// It implies MPersistent.
	MHostCoherent
	// Host accesses are cached.
	MHostCached
	// The buffer can stay mapped while in use.
	MPersistent
	// The buffer is preferably placed in device memory.
	MDeviceLocal
	// The buffer is never written by the host.
	MReadOnly
)

// MapFlag is a mask of buffer mapping options.
type MapFlag int

// Mapping options.
const (
	MapRead MapFlag = 1 << iota
	MapWrite
	MapPersistent
	MapCoherent
	MapUnsync
)

// Buffer is the interface that defines a GPU buffer.
// The size of the buffer is fixed. Pools provide growth.
type Buffer interface {
	Destroyer

	// Visible returns whether the buffer is host visible.
	Visible() bool

	// Bytes returns the persistently mapped range of the
	// buffer, or nil if it is not mapped.
	Bytes() []byte

	// Cap returns the capacity of the buffer in bytes.
	Cap() int64

	// Map maps a range of the buffer.
	Map(off, size int64, flags MapFlag) ([]byte, error)

	// Unmap unmaps the buffer.
	Unmap() error

	// Write copies data into the buffer at off.
	Write(off int64, data []byte) error

	// Read copies buffer contents at off into data.
	Read(off int64, data []byte) error

	// Sub creates a buffer that refers to the range
	// [off, off+size) of this buffer's storage.
	// Sub-buffers must be destroyed before the buffer.
	Sub(off, size int64) (Buffer, error)
}

// DynamicPool is the interface that defines a buffer pool
// that grows by reallocation.
// Growing replaces the pool's storage, so bindings that
// refer to the pool must be renewed afterwards.
type DynamicPool interface {
	Buffer

	// Alloc allocates size bytes and returns the offset
	// of the allocation.
	Alloc(size int64) (int64, error)

	// Free frees the allocation at off.
	Free(off int64)

	// Grow grows the pool to at least size bytes.
	Grow(size int64) error
}

// UniformPool is the interface that defines a pool of
// fixed-size constant buffer instances.
type UniformPool interface {
	Buffer

	// Alloc allocates an instance and returns its offset.
	Alloc() (int64, error)

	// Free frees the instance at off.
	Free(off int64)

	// Stride returns the distance in bytes between
	// consecutive instances.
	Stride() int64
}

// PixelFmt describes the format of a pixel.
type PixelFmt int

// Internal format bit.
// All internal formats have this bit set. Client code
// must not create images using internal formats.
const FInternal PixelFmt = 1 << 31

// IsInternal returns whether f is an internal format.
func (f PixelFmt) IsInternal() bool { return f&FInternal == FInternal }

// Pixel formats.
const (
	// Color, 8-bit channels.
	RGBA8un PixelFmt = iota
	RGBA8n
	RGBA8sRGB
	BGRA8un
	BGRA8sRGB
	RG8un
	RG8n
	R8un
	R8n
	// Color, 16-bit channels.
	RGBA16f
	RG16f
	R16f
	// Color, 32-bit channels.
	RGBA32f
	RG32f
	R32f
	// Depth/Stencil.
	D16un
	D32f
	S8ui
	D24unS8ui
	D32fS8ui
	// Block-compressed color.
	BC1un
	BC3un
	BC7un
	BC7sRGB
	ETC2un
	ASTC4un
)

// IsCompressed returns whether f is a block-compressed
// format.
func (f PixelFmt) IsCompressed() bool { return f >= BC1un && f <= ASTC4un }

// IsDS returns whether f is a depth and/or stencil format.
func (f PixelFmt) IsDS() bool { return f >= D16un && f <= D32fS8ui }

// Dim3D is a three-dimensional size.
type Dim3D struct {
	Width, Height, Depth int
}

// Off3D is a three-dimensional offset.
type Off3D struct {
	X, Y, Z int
}

// SubLayout describes the byte layout of an image
// subresource when stored linearly.
type SubLayout struct {
	Offset     int64
	Size       int64
	RowPitch   int64
	SlicePitch int64
}

// Image is the interface that defines a GPU image.
type Image interface {
	Destroyer

	// NewView creates a new image view.
	NewView(typ ViewType, layer, layers, level, levels int) (ImageView, error)

	// Layout returns the linear layout of the subresource
	// identified by layer and level.
	Layout(layer, level int) SubLayout

	// Format returns the image's pixel format.
	Format() PixelFmt
}

// ViewType is the type of a resource view.
type ViewType int

// View types.
const (
	IView1D ViewType = iota
	IView2D
	IView3D
	IViewCube
	IView1DArray
	IView2DArray
	IViewCubeArray
	IView2DMS
	IView2DMSArray
)

// ImageView is the interface that defines a typed view of
// an Image resource.
type ImageView interface {
	Destroyer

	// Image returns the image from which the view was
	// created.
	Image() Image
}

// Filter is the type of sampler filters.
type Filter int

// Filters.
const (
	FNearest Filter = iota
	FLinear
	// FNoMipmap forces mip level 0 to be used.
	// It is only valid as the mip filter of a sampler.
	FNoMipmap
)

// AddrMode is the type of sampler address modes.
type AddrMode int

// Address modes.
const (
	AWrap AddrMode = iota
	AMirror
	AClamp
	AClampBorder
	AMirrorClamp
)

// Sampler is the interface that defines an image sampler.
type Sampler interface {
	Destroyer
}

// Sampling describes image sampler state.
// Cmp is only used when Compare is set.
type Sampling struct {
	Min      Filter
	Mag      Filter
	Mipmap   Filter
	AddrU    AddrMode
	AddrV    AddrMode
	AddrW    AddrMode
	MaxAniso int
	Compare  bool
	Cmp      CmpFunc
	MinLOD   float32
	MaxLOD   float32
	LODBias  float32
	Border   [4]float32
}

// Fence is the interface that defines a host/device
// synchronization primitive.
type Fence interface {
	Destroyer

	// Signaled returns whether the fence is signaled.
	Signaled() bool

	// Reset unsignals the fence.
	Reset() error
}

// Event is the interface that defines a fine-grained
// synchronization primitive set by commands or by
// the host.
type Event interface {
	Destroyer

	// Set sets the event.
	Set()

	// Reset resets the event.
	Reset()

	// IsSet returns whether the event is set.
	IsSet() bool
}

// QueryType is the type of a query.
type QueryType int

// Query types.
const (
	QOcclusion QueryType = iota
	QTimestamp
	QPipelineStats
)

// QueryPool is the interface that defines a set of queries.
type QueryPool interface {
	Destroyer

	// Result returns the result of query index.
	Result(index int) (uint64, error)
}

// Limits describes implementation limits.
// These may vary across drivers and devices.
type Limits struct {
	// Maximum width of 1D images.
	MaxImage1D int
	// Maximum width and height of 2D images.
	MaxImage2D int
	// Maximum width and height of cube images.
	MaxImageCube int
	// Maximum width, height and depth of 3D images.
	MaxImage3D int
	// Maximum number of layers in an image.
	MaxLayers int

	// Maximum number of buffer descriptors across
	// all sets of a pipeline.
	MaxDBuffer int
	// Maximum number of constant descriptors across
	// all sets of a pipeline.
	MaxDConstant int
	// Maximum number of texture descriptors across
	// all sets of a pipeline.
	MaxDTexture int
	// Maximum range of buffer descriptors.
	MaxDBufferRange int64
	// Maximum range of constant descriptors.
	MaxDConstantRange int64
	// Maximum size of push constants.
	MaxPushConstants int
	// Required alignment of constant buffer offsets.
	ConstantAlign int64
	// Required alignment of buffer offsets.
	BufferAlign int64

	// Maximum number of color render targets in a
	// subpass of a render pass.
	MaxColorTargets int
	// Maximum width/height for a framebuffer.
	MaxFBSize [2]int
	// Maximum number of layers in a framebuffer.
	MaxFBLayers int
	// Maximum size of a point primitive.
	MaxPointSize float32
	// Maximum number of viewports.
	MaxViewports int
	// Maximum sampler anisotropy.
	MaxAnisotropy int

	// Maximum number of vertex inputs in a
	// vertex shader.
	MaxVertexIn int
	// Maximum number of fragment inputs in a
	// fragment shader.
	MaxFragmentIn int

	// Maximum dipatch count.
	MaxDispatch [3]int
}
