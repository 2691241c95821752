package main

import "github.com/pthm-cable/gridsense/sense"

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string
	Min     float64
	Max     float64
	Default float64
}

// ParamVector holds the ripple profile parameters being fitted.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the parameter set for a ripple profile, seeded with
// the profile's current values.
func NewParamVector(start sense.RippleProfile) *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "damping", Min: 0, Max: 12, Default: start.Damping},
			{Name: "tolerance", Min: 0, Max: 1.5, Default: start.Tolerance},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values, clamped to bounds.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = min(max(spec.Min+normalized[i]*(spec.Max-spec.Min), spec.Min), spec.Max)
	}
	return raw
}

// Profile builds a ripple profile from raw values.
func (pv *ParamVector) Profile(raw []float64) sense.RippleProfile {
	return sense.RippleProfile{Damping: raw[0], Tolerance: raw[1]}
}
