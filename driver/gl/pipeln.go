// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"github.com/cockroachdb/errors"

	"github.com/gviegas/glemu/driver"
	"github.com/gviegas/glemu/internal/arena"
)

// pipeline is an entry of the pipeline table.
// It is immutable once created.
type pipeline struct {
	prog  uint32
	table BindingTable
	// nil for compute pipelines.
	graph *graphState
}

// blendState is the blend state of a color attachment.
type blendState struct {
	enable       bool
	opRGB, opA   uint32
	srcRGB, srcA uint32
	dstRGB, dstA uint32
	r, g, b, a   bool
}

// stencilState is the stencil state of a face.
type stencilState struct {
	fn                    uint32
	sfail, dpfail, dppass uint32
	readMask, writeMask   uint32
}

// vertexAttr is a vertex input converted to attribute
// parameters.
type vertexAttr struct {
	index   uint32
	stride  int
	divisor uint32
	vertexInfo
}

// graphState is the static state of a graphics pipeline,
// converted to native values once at creation.
type graphState struct {
	topology uint32
	input    []vertexAttr
	blend    []blendState

	cull      uint32
	front     uint32
	fill      uint32
	lineWidth float32
	bias      bool
	biasValue float32
	biasSlope float32

	viewport driver.Viewport
	scissor  driver.Scissor
	dynamic  driver.Dynamic

	depthTest  bool
	depthWrite bool
	depthFunc  uint32

	stencilTest bool
	// [0] is front and [1] is back.
	stencil [2]stencilState
}

// NewPipeline creates a new pipeline.
func (d *Driver) NewPipeline(state any) (driver.PipelineID, error) {
	var p pipeline
	var err error
	switch s := state.(type) {
	case *driver.GraphState:
		p, err = d.newGraph(s)
	case *driver.CompState:
		p, err = d.newComp(s)
	case *driver.RTState:
		return 0, errors.Mark(errors.New("gl: ray tracing pipelines"), driver.ErrUnsupported)
	default:
		return 0, errors.Newf("gl: invalid pipeline state type %T", state)
	}
	if err != nil {
		return 0, err
	}
	return driver.PipelineID(d.pipes.Insert(p)), nil
}

// DestroyPipeline destroys a pipeline.
// Stale identifiers are ignored.
func (d *Driver) DestroyPipeline(id driver.PipelineID) {
	p, ok := d.pipes.Remove(arena.ID(id))
	if !ok {
		d.val.report(SevWarning, "DestroyPipeline: stale or invalid pipeline %#x", uint64(id))
		return
	}
	d.n.DeleteProgram(p.prog)
}

// pipeline returns the pipeline identified by id.
func (d *Driver) pipeline(id driver.PipelineID) (*pipeline, bool) {
	return d.pipes.Get(arena.ID(id))
}

// shaderFunc resolves f into its stage and source.
func (d *Driver) shaderFunc(f *driver.ShaderFunc, want driver.Stage) (*shaderCode, error) {
	c, ok := f.Code.(*shaderCode)
	if !ok || c == nil || c.src == "" {
		return nil, errors.Newf("gl: invalid shader code %T", f.Code)
	}
	if c.stage != want {
		return nil, errors.Newf("gl: shader code for stage %d used as stage %d", c.stage, want)
	}
	if f.Name != "" && f.Name != "main" {
		d.val.report(SevWarning, "shader entry point %q is ignored; GLSL uses main", f.Name)
	}
	return c, nil
}

// link reflects, rewrites, compiles and links shader code.
func (d *Driver) link(codes []*shaderCode) (prog uint32, table BindingTable, err error) {
	srcs := make([]string, len(codes))
	stages := make([]driver.Stage, len(codes))
	for i, c := range codes {
		srcs[i] = c.src
		stages[i] = c.stage
	}
	refl, err := ReflectGLSL(srcs...)
	if err != nil {
		return 0, nil, errors.Mark(err, driver.ErrShaderBuild)
	}
	if table, err = AllocateBindings(refl); err != nil {
		return 0, nil, errors.Mark(err, driver.ErrShaderBuild)
	}
	for i := range srcs {
		if srcs[i], err = RewriteBindings(srcs[i], table); err != nil {
			return 0, nil, errors.Mark(err, driver.ErrShaderBuild)
		}
	}
	prog, err = d.buildProgram(stages, srcs)
	return
}

func (d *Driver) newComp(s *driver.CompState) (pipeline, error) {
	c, err := d.shaderFunc(&s.Func, driver.SCompute)
	if err != nil {
		return pipeline{}, err
	}
	prog, table, err := d.link([]*shaderCode{c})
	if err != nil {
		return pipeline{}, err
	}
	return pipeline{prog: prog, table: table}, nil
}

func (d *Driver) newGraph(s *driver.GraphState) (pipeline, error) {
	vs, err := d.shaderFunc(&s.VertFunc, driver.SVertex)
	if err != nil {
		return pipeline{}, err
	}
	codes := []*shaderCode{vs}
	if s.FragFunc.Code != nil {
		fs, err := d.shaderFunc(&s.FragFunc, driver.SFragment)
		if err != nil {
			return pipeline{}, err
		}
		codes = append(codes, fs)
	}
	g, err := d.convGraph(s)
	if err != nil {
		return pipeline{}, err
	}
	prog, table, err := d.link(codes)
	if err != nil {
		return pipeline{}, err
	}
	return pipeline{prog: prog, table: table, graph: g}, nil
}

// colorTargets returns the number of color attachments that
// the pipeline's subpass writes.
func colorTargets(s *driver.GraphState) int {
	if rp, ok := s.Pass.(*renderPass); ok && s.Subpass >= 0 && s.Subpass < len(rp.sub) {
		return len(rp.sub[s.Subpass].Color)
	}
	return len(s.Blend.Color)
}

// convGraph converts the fixed-function state of s.
func (d *Driver) convGraph(s *driver.GraphState) (*graphState, error) {
	g := &graphState{
		topology:  convTopology(s.Topology),
		cull:      convCullMode(s.Raster.Cull),
		front:     CCW,
		fill:      convFillMode(s.Raster.Fill),
		lineWidth: max(s.Raster.LineWidth, 1),
		bias:      s.Raster.DepthBias,
		biasValue: s.Raster.BiasValue,
		biasSlope: s.Raster.BiasSlope,
		viewport:  s.Viewport,
		scissor:   s.Scissor,
		dynamic:   s.Dynamic,

		depthTest:  s.DS.DepthTest,
		depthWrite: s.DS.DepthWrite,
		depthFunc:  convCmpFunc(s.DS.DepthCmp),

		stencilTest: s.DS.StencilTest,
	}
	if s.Raster.Clockwise {
		g.front = CW
	}
	if s.Raster.DepthBias && s.Raster.BiasClamp != 0 {
		d.val.report(SevWarning, "NewPipeline: depth bias clamp is not supported")
	}
	for i, st := range [2]*driver.StencilT{&s.DS.Front, &s.DS.Back} {
		g.stencil[i] = stencilState{
			fn:        convCmpFunc(st.Cmp),
			sfail:     convStencilOp(st.DSFail[0]),
			dpfail:    convStencilOp(st.DSFail[1]),
			dppass:    convStencilOp(st.Pass),
			readMask:  st.ReadMask,
			writeMask: st.WriteMask,
		}
	}

	n := colorTargets(s)
	if n > 0 && len(s.Blend.Color) == 0 {
		return nil, errors.New("gl: graphics pipeline has color targets but no blend state")
	}
	g.blend = make([]blendState, n)
	for i := range g.blend {
		cb := &s.Blend.Color[0]
		if s.Blend.IndependentBlend {
			if i >= len(s.Blend.Color) {
				return nil, errors.Newf("gl: missing blend state for color target %d", i)
			}
			cb = &s.Blend.Color[i]
		}
		g.blend[i] = blendState{
			enable: cb.Blend,
			opRGB:  convBlendOp(cb.Op[0]),
			opA:    convBlendOp(cb.Op[1]),
			srcRGB: convBlendFac(cb.SrcFac[0]),
			srcA:   convBlendFac(cb.SrcFac[1]),
			dstRGB: convBlendFac(cb.DstFac[0]),
			dstA:   convBlendFac(cb.DstFac[1]),
			r:      cb.WriteMask&driver.CRed != 0,
			g:      cb.WriteMask&driver.CGreen != 0,
			b:      cb.WriteMask&driver.CBlue != 0,
			a:      cb.WriteMask&driver.CAlpha != 0,
		}
	}

	g.input = make([]vertexAttr, len(s.Input))
	for i, in := range s.Input {
		vi, ok := convVertexFmt(in.Format)
		if !ok {
			return nil, errors.Newf("gl: invalid vertex format %d", in.Format)
		}
		if in.Nr < 0 || (d.lim.MaxVertexIn > 0 && in.Nr >= d.lim.MaxVertexIn) {
			return nil, errors.Newf("gl: vertex input location %d out of range", in.Nr)
		}
		g.input[i] = vertexAttr{
			index:      uint32(in.Nr),
			stride:     in.Stride,
			vertexInfo: vi,
		}
		if in.Instanced {
			g.input[i].divisor = 1
		}
	}
	return g, nil
}
