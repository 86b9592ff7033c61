// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package gl

// OpenGL enumerants used by the package.
// Values match the Khronos registry.
const (
	NONE = 0
	ZERO = 0
	ONE  = 1

	// Errors.
	NO_ERROR                      = 0
	INVALID_ENUM                  = 0x0500
	INVALID_VALUE                 = 0x0501
	INVALID_OPERATION             = 0x0502
	STACK_OVERFLOW                = 0x0503
	STACK_UNDERFLOW               = 0x0504
	OUT_OF_MEMORY                 = 0x0505
	INVALID_FRAMEBUFFER_OPERATION = 0x0506
	CONTEXT_LOST                  = 0x0507

	// Capabilities.
	BLEND                        = 0x0BE2
	CULL_FACE                    = 0x0B44
	DEPTH_TEST                   = 0x0B71
	STENCIL_TEST                 = 0x0B90
	SCISSOR_TEST                 = 0x0C11
	POLYGON_OFFSET_FILL          = 0x8037
	POLYGON_OFFSET_LINE          = 0x2A02
	MULTISAMPLE                  = 0x809D
	FRAMEBUFFER_SRGB             = 0x8DB9
	TEXTURE_CUBE_MAP_SEAMLESS    = 0x884F
	DEBUG_OUTPUT                 = 0x92E0
	DEBUG_OUTPUT_SYNCHRONOUS     = 0x8242
	PRIMITIVE_RESTART_FIXED_IDX  = 0x8D69
	RASTERIZER_DISCARD           = 0x8C89
	PROGRAM_POINT_SIZE           = 0x8642
	SAMPLE_ALPHA_TO_COVERAGE     = 0x809E
	DEPTH_CLAMP                  = 0x864F
	VIEWPORT                     = 0x0BA2
	SCISSOR_BOX                  = 0x0C10
	DEPTH_RANGE                  = 0x0B70
	MAX_TEXTURE_SIZE             = 0x0D33
	MAX_3D_TEXTURE_SIZE          = 0x8073
	MAX_CUBE_MAP_TEXTURE_SIZE    = 0x851C
	MAX_ARRAY_TEXTURE_LAYERS     = 0x88FF
	MAX_COLOR_ATTACHMENTS        = 0x8CDF
	MAX_VERTEX_ATTRIBS           = 0x8869
	MAX_VARYING_COMPONENTS       = 0x8B4B
	MAX_UNIFORM_BLOCK_SIZE       = 0x8A30
	MAX_UNIFORM_BUFFER_BINDINGS  = 0x8A2F
	MAX_SSBO_BINDINGS            = 0x90DD
	MAX_COMBINED_TEXTURE_UNITS   = 0x8B4D
	MAX_VIEWPORTS                = 0x825B
	MAX_FRAMEBUFFER_WIDTH        = 0x9315
	MAX_FRAMEBUFFER_HEIGHT       = 0x9316
	MAX_FRAMEBUFFER_LAYERS       = 0x9317
	MAX_SHADER_STORAGE_BLOCK     = 0x90DE
	UNIFORM_BUFFER_OFFSET_ALIGN  = 0x8A34
	SSBO_OFFSET_ALIGNMENT        = 0x90DF
	MAX_COMPUTE_WORK_GROUP_COUNT = 0x91BE
	VENDOR                       = 0x1F00
	RENDERER                     = 0x1F01
	VERSION                      = 0x1F02
	PACK_ALIGNMENT               = 0x0D05
	UNPACK_ALIGNMENT             = 0x0CF5
	PACK_ROW_LENGTH              = 0x0D02
	PACK_IMAGE_HEIGHT            = 0x806C
	UNPACK_ROW_LENGTH            = 0x0CF2
	UNPACK_IMAGE_HEIGHT          = 0x806E

	// Faces and winding.
	FRONT          = 0x0404
	BACK           = 0x0405
	FRONT_AND_BACK = 0x0408
	CW             = 0x0900
	CCW            = 0x0901
	POINT          = 0x1B00
	LINE           = 0x1B01
	FILL           = 0x1B02

	// Primitives.
	POINTS         = 0x0000
	LINES          = 0x0001
	LINE_STRIP     = 0x0003
	TRIANGLES      = 0x0004
	TRIANGLE_STRIP = 0x0005
	TRIANGLE_FAN   = 0x0006

	// Data types.
	BYTE                       = 0x1400
	UNSIGNED_BYTE              = 0x1401
	SHORT                      = 0x1402
	UNSIGNED_SHORT             = 0x1403
	INT                        = 0x1404
	UNSIGNED_INT               = 0x1405
	FLOAT                      = 0x1406
	HALF_FLOAT                 = 0x140B
	UNSIGNED_INT_24_8          = 0x84FA
	FLOAT_32_UNSIGNED_INT_24_8 = 0x8DAD

	// Comparison functions.
	NEVER    = 0x0200
	LESS     = 0x0201
	EQUAL    = 0x0202
	LEQUAL   = 0x0203
	GREATER  = 0x0204
	NOTEQUAL = 0x0205
	GEQUAL   = 0x0206
	ALWAYS   = 0x0207

	// Stencil operations.
	KEEP      = 0x1E00
	REPLACE   = 0x1E01
	INCR      = 0x1E02
	DECR      = 0x1E03
	INVERT    = 0x150A
	INCR_WRAP = 0x8507
	DECR_WRAP = 0x8508

	// Blending.
	FUNC_ADD                 = 0x8006
	MIN                      = 0x8007
	MAX                      = 0x8008
	FUNC_SUBTRACT            = 0x800A
	FUNC_REVERSE_SUBTRACT    = 0x800B
	SRC_COLOR                = 0x0300
	ONE_MINUS_SRC_COLOR      = 0x0301
	SRC_ALPHA                = 0x0302
	ONE_MINUS_SRC_ALPHA      = 0x0303
	DST_ALPHA                = 0x0304
	ONE_MINUS_DST_ALPHA      = 0x0305
	DST_COLOR                = 0x0306
	ONE_MINUS_DST_COLOR      = 0x0307
	SRC_ALPHA_SATURATE       = 0x0308
	CONSTANT_COLOR           = 0x8001
	ONE_MINUS_CONSTANT_COLOR = 0x8002

	// Buffers.
	ARRAY_BUFFER             = 0x8892
	ELEMENT_ARRAY_BUFFER     = 0x8893
	PIXEL_PACK_BUFFER        = 0x88EB
	PIXEL_UNPACK_BUFFER      = 0x88EC
	UNIFORM_BUFFER           = 0x8A11
	SHADER_STORAGE_BUFFER    = 0x90D2
	DRAW_INDIRECT_BUFFER     = 0x8F3F
	DISPATCH_INDIRECT_BUFFER = 0x90EE
	MAP_READ_BIT             = 0x0001
	MAP_WRITE_BIT            = 0x0002
	MAP_INVALIDATE_RANGE_BIT = 0x0004
	MAP_FLUSH_EXPLICIT_BIT   = 0x0010
	MAP_UNSYNCHRONIZED_BIT   = 0x0020
	MAP_PERSISTENT_BIT       = 0x0040
	MAP_COHERENT_BIT         = 0x0080
	DYNAMIC_STORAGE_BIT      = 0x0100
	CLIENT_STORAGE_BIT       = 0x0200
	ALL_BARRIER_BITS         = 0xFFFFFFFF

	// Textures.
	TEXTURE_1D                   = 0x0DE0
	TEXTURE_2D                   = 0x0DE1
	TEXTURE_3D                   = 0x806F
	TEXTURE_CUBE_MAP             = 0x8513
	TEXTURE_1D_ARRAY             = 0x8C18
	TEXTURE_2D_ARRAY             = 0x8C1A
	TEXTURE_CUBE_MAP_ARRAY       = 0x9009
	TEXTURE_2D_MULTISAMPLE       = 0x9100
	TEXTURE_2D_MULTISAMPLE_ARRAY = 0x9102

	// Internal formats.
	RGBA8                   = 0x8058
	RGBA8_SNORM             = 0x8F97
	SRGB8_ALPHA8            = 0x8C43
	RG8                     = 0x822B
	RG8_SNORM               = 0x8F95
	R8                      = 0x8229
	R8_SNORM                = 0x8F94
	RGBA16F                 = 0x881A
	RG16F                   = 0x822F
	R16F                    = 0x822D
	RGBA32F                 = 0x8814
	RG32F                   = 0x8230
	R32F                    = 0x822E
	DEPTH_COMPONENT16       = 0x81A5
	DEPTH_COMPONENT32F      = 0x8CAC
	STENCIL_INDEX8          = 0x8D48
	DEPTH24_STENCIL8        = 0x88F0
	DEPTH32F_STENCIL8       = 0x8CAD
	COMPRESSED_RGBA_S3TC_1  = 0x83F1
	COMPRESSED_RGBA_S3TC_5  = 0x83F3
	COMPRESSED_RGBA_BPTC    = 0x8E8C
	COMPRESSED_SRGB_BPTC    = 0x8E8D
	COMPRESSED_RGBA8_ETC2   = 0x9278
	COMPRESSED_RGBA_ASTC4x4 = 0x93B0

	// Pixel formats.
	RED             = 0x1903
	RG              = 0x8227
	RGBA            = 0x1908
	BGRA            = 0x80E1
	DEPTH_COMPONENT = 0x1902
	STENCIL_INDEX   = 0x1901
	DEPTH_STENCIL   = 0x84F9

	// Samplers.
	NEAREST                = 0x2600
	LINEAR                 = 0x2601
	NEAREST_MIPMAP_NEAREST = 0x2700
	LINEAR_MIPMAP_NEAREST  = 0x2701
	NEAREST_MIPMAP_LINEAR  = 0x2702
	LINEAR_MIPMAP_LINEAR   = 0x2703
	TEXTURE_MAG_FILTER     = 0x2800
	TEXTURE_MIN_FILTER     = 0x2801
	TEXTURE_WRAP_S         = 0x2802
	TEXTURE_WRAP_T         = 0x2803
	TEXTURE_WRAP_R         = 0x8072
	TEXTURE_MIN_LOD        = 0x813A
	TEXTURE_MAX_LOD        = 0x813B
	TEXTURE_LOD_BIAS       = 0x8501
	TEXTURE_COMPARE_MODE   = 0x884C
	TEXTURE_COMPARE_FUNC   = 0x884D
	COMPARE_REF_TO_TEXTURE = 0x884E
	TEXTURE_BORDER_COLOR   = 0x1004
	TEXTURE_MAX_ANISOTROPY = 0x84FE
	REPEAT                 = 0x2901
	MIRRORED_REPEAT        = 0x8370
	CLAMP_TO_EDGE          = 0x812F
	CLAMP_TO_BORDER        = 0x812D
	MIRROR_CLAMP_TO_EDGE   = 0x8743

	// Framebuffers.
	FRAMEBUFFER                   = 0x8D40
	READ_FRAMEBUFFER              = 0x8CA8
	DRAW_FRAMEBUFFER              = 0x8CA9
	COLOR_ATTACHMENT0             = 0x8CE0
	DEPTH_ATTACHMENT              = 0x8D00
	STENCIL_ATTACHMENT            = 0x8D20
	DEPTH_STENCIL_ATTACHMENT      = 0x821A
	COLOR                         = 0x1800
	DEPTH                         = 0x1801
	STENCIL                       = 0x1802
	COLOR_BUFFER_BIT              = 0x4000
	DEPTH_BUFFER_BIT              = 0x0100
	STENCIL_BUFFER_BIT            = 0x0400
	FRAMEBUFFER_COMPLETE          = 0x8CD5
	FRAMEBUFFER_UNDEFINED         = 0x8219
	FRAMEBUFFER_INCOMPLETE_ATT    = 0x8CD6
	FRAMEBUFFER_MISSING_ATT       = 0x8CD7
	FRAMEBUFFER_INCOMPLETE_DRAW   = 0x8CDB
	FRAMEBUFFER_INCOMPLETE_READ   = 0x8CDC
	FRAMEBUFFER_UNSUPPORTED       = 0x8CDD
	FRAMEBUFFER_INCOMPLETE_MS     = 0x8D56
	FRAMEBUFFER_INCOMPLETE_LAYERS = 0x8DA8

	// Shaders.
	VERTEX_SHADER   = 0x8B31
	FRAGMENT_SHADER = 0x8B30
	COMPUTE_SHADER  = 0x91B9
	COMPILE_STATUS  = 0x8B81
	LINK_STATUS     = 0x8B82

	// Sync objects.
	SYNC_GPU_COMMANDS_COMPLETE = 0x9117
	SYNC_FLUSH_COMMANDS_BIT    = 0x0001
	SYNC_STATUS                = 0x9114
	SIGNALED                   = 0x9119
	UNSIGNALED                 = 0x9118
	ALREADY_SIGNALED           = 0x911A
	TIMEOUT_EXPIRED            = 0x911B
	CONDITION_SATISFIED        = 0x911C
	WAIT_FAILED                = 0x911D

	// Queries.
	SAMPLES_PASSED          = 0x8914
	QUERY_RESULT            = 0x8866
	QUERY_RESULT_AVAILABLE  = 0x8867
	ANY_SAMPLES_PASSED      = 0x8C2F
	TIME_ELAPSED            = 0x88BF
	TIMESTAMP               = 0x8E28
	PRIMITIVES_GENERATED    = 0x8C87
	QUERY_NO_WAIT           = 0x8E14
	QUERY_BUFFER            = 0x9192
	DEBUG_SEVERITY_HIGH     = 0x9146
	DEBUG_SEVERITY_MEDIUM   = 0x9147
	DEBUG_SEVERITY_LOW      = 0x9148
	DEBUG_SEVERITY_NOTIF    = 0x826B
	DEBUG_SOURCE_API        = 0x8246
	DEBUG_SOURCE_WINDOW     = 0x8247
	DEBUG_SOURCE_COMPILER   = 0x8248
	DEBUG_SOURCE_THIRDPARTY = 0x8249
	DEBUG_SOURCE_APP        = 0x824A
	DEBUG_SOURCE_OTHER      = 0x824B
)
