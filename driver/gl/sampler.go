// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"github.com/cockroachdb/errors"

	"github.com/gviegas/glemu/driver"
)

// sampler implements driver.Sampler.
type sampler struct {
	d    *Driver
	splr uint32
}

// NewSampler creates a new sampler.
func (d *Driver) NewSampler(spln *driver.Sampling) (driver.Sampler, error) {
	splr := d.n.CreateSampler()
	if splr == 0 {
		return nil, errors.New("gl: failed to create sampler")
	}
	n := d.n
	n.SamplerParameteri(splr, TEXTURE_MIN_FILTER, int32(convMinFilter(spln.Min, spln.Mipmap)))
	n.SamplerParameteri(splr, TEXTURE_MAG_FILTER, int32(convFilter(spln.Mag)))
	n.SamplerParameteri(splr, TEXTURE_WRAP_S, convAddrMode(spln.AddrU))
	n.SamplerParameteri(splr, TEXTURE_WRAP_T, convAddrMode(spln.AddrV))
	n.SamplerParameteri(splr, TEXTURE_WRAP_R, convAddrMode(spln.AddrW))
	if spln.MaxAniso > 1 {
		aniso := min(spln.MaxAniso, d.lim.MaxAnisotropy)
		n.SamplerParameterf(splr, TEXTURE_MAX_ANISOTROPY, float32(aniso))
	}
	if spln.Compare {
		n.SamplerParameteri(splr, TEXTURE_COMPARE_MODE, COMPARE_REF_TO_TEXTURE)
		n.SamplerParameteri(splr, TEXTURE_COMPARE_FUNC, int32(convCmpFunc(spln.Cmp)))
	}
	minLOD, maxLOD := spln.MinLOD, spln.MaxLOD
	if spln.Mipmap == driver.FNoMipmap {
		minLOD, maxLOD = 0, 0
	} else if maxLOD < minLOD {
		d.val.report(SevWarning, "NewSampler: MaxLOD %g is less than MinLOD %g", maxLOD, minLOD)
		maxLOD = minLOD
	}
	n.SamplerParameterf(splr, TEXTURE_MIN_LOD, minLOD)
	n.SamplerParameterf(splr, TEXTURE_MAX_LOD, maxLOD)
	if spln.LODBias != 0 {
		n.SamplerParameterf(splr, TEXTURE_LOD_BIAS, spln.LODBias)
	}
	if spln.AddrU == driver.AClampBorder || spln.AddrV == driver.AClampBorder || spln.AddrW == driver.AClampBorder {
		n.SamplerParameterfv(splr, TEXTURE_BORDER_COLOR, spln.Border[:])
	}
	d.val.check(n, "NewSampler")
	return &sampler{d: d, splr: splr}, nil
}

// Destroy destroys the sampler.
func (s *sampler) Destroy() {
	if s == nil || s.d == nil {
		return
	}
	s.d.n.DeleteSampler(s.splr)
	*s = sampler{}
}
