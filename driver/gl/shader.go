// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/gviegas/glemu/driver"
)

// BuildError is the error returned when shader code fails
// to compile or link.
// It matches driver.ErrShaderBuild.
type BuildError struct {
	// Stage is zero for link errors.
	Stage driver.Stage
	Log   string
}

func (e *BuildError) Error() string {
	var what string
	switch e.Stage {
	case driver.SVertex:
		what = "vertex shader"
	case driver.SFragment:
		what = "fragment shader"
	case driver.SCompute:
		what = "compute shader"
	default:
		return fmt.Sprintf("gl: program link failed:\n%s", e.Log)
	}
	return fmt.Sprintf("gl: %s compilation failed:\n%s", what, e.Log)
}

// Is reports whether target is driver.ErrShaderBuild.
func (e *BuildError) Is(target error) bool { return target == driver.ErrShaderBuild }

// shaderCode implements driver.ShaderCode.
// It holds source text; compilation happens when a
// pipeline is created, after binding points are known.
type shaderCode struct {
	stage driver.Stage
	src   string
}

// NewShaderCode creates a new shader code.
func (d *Driver) NewShaderCode(stage driver.Stage, src []byte) (driver.ShaderCode, error) {
	if convStage(stage) == 0 {
		return nil, errors.Newf("gl: invalid shader stage %d", stage)
	}
	if len(src) == 0 {
		return nil, errors.New("gl: empty shader code")
	}
	return &shaderCode{stage: stage, src: string(src)}, nil
}

// Stage returns the stage the code was created for.
func (c *shaderCode) Stage() driver.Stage { return c.stage }

// Destroy destroys the shader code.
func (c *shaderCode) Destroy() {
	if c != nil {
		*c = shaderCode{}
	}
}

// CompileShader compiles src for stage.
// It returns the shader name and true on success, or
// zero, false and the info log on failure.
func CompileShader(n Native, stage driver.Stage, src string) (uint32, bool, string) {
	sh := n.CreateShader(convStage(stage))
	n.ShaderSource(sh, src)
	n.CompileShader(sh)
	if n.GetShaderi(sh, COMPILE_STATUS) == 0 {
		log := n.GetShaderInfoLog(sh)
		n.DeleteShader(sh)
		return 0, false, log
	}
	return sh, true, ""
}

// LinkProgram links a program from compiled shaders.
// The shaders are detached but not deleted.
func LinkProgram(n Native, sh ...uint32) (uint32, bool, string) {
	prog := n.CreateProgram()
	for _, s := range sh {
		n.AttachShader(prog, s)
	}
	n.LinkProgram(prog)
	for _, s := range sh {
		n.DetachShader(prog, s)
	}
	if n.GetProgrami(prog, LINK_STATUS) == 0 {
		log := n.GetProgramInfoLog(prog)
		n.DeleteProgram(prog)
		return 0, false, log
	}
	return prog, true, ""
}

// buildProgram compiles every stage and links a program.
// Sources must already refer to flat binding points.
func (d *Driver) buildProgram(stages []driver.Stage, srcs []string) (uint32, error) {
	shs := make([]uint32, 0, len(stages))
	defer func() {
		for _, s := range shs {
			d.n.DeleteShader(s)
		}
	}()
	for i, st := range stages {
		sh, ok, log := CompileShader(d.n, st, srcs[i])
		if !ok {
			return 0, &BuildError{Stage: st, Log: log}
		}
		shs = append(shs, sh)
	}
	prog, ok, log := LinkProgram(d.n, shs...)
	if !ok {
		return 0, &BuildError{Log: log}
	}
	d.val.check(d.n, "buildProgram")
	return prog, nil
}
