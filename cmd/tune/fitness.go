package main

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/gridsense/config"
	"github.com/pthm-cable/gridsense/geom"
	"github.com/pthm-cable/gridsense/grid"
	"github.com/pthm-cable/gridsense/sense"
	"github.com/pthm-cable/gridsense/terrain"
)

// probe is one generated map plus the light origins sampled on it.
type probe struct {
	res     *grid.Array[float64]
	origins []geom.Point
}

// Evaluator scores ripple profiles by how far their light spreads from what
// plain shadow casting would light on the same maps.
type Evaluator struct {
	algo   sense.Algorithm
	radius float64
	shape  geom.Radius
	target float64
	probes []probe
}

// NewEvaluator generates one map per seed from the map section of cfg and
// samples that many open floor cells on each as light origins.
func NewEvaluator(cfg *config.Config, algo sense.Algorithm, radius float64, shape geom.Radius, target float64, seeds []int64, origins int) (*Evaluator, error) {
	if !algo.IsRipple() {
		return nil, fmt.Errorf("%w: %s is not a ripple variant", sense.ErrUnknownAlgorithm, algo)
	}
	ev := &Evaluator{algo: algo, radius: radius, shape: shape, target: target}
	for _, seed := range seeds {
		res := terrain.Generate(terrain.ParamsFromConfig(cfg.Map, seed))
		rng := rand.New(rand.NewSource(seed))
		p := probe{res: res}
		for range origins {
			at, ok := terrain.OpenSpot(res, rng)
			if !ok {
				return nil, errors.New("generated map has no open floor")
			}
			p.origins = append(p.origins, at)
		}
		ev.probes = append(ev.probes, p)
	}
	return ev, nil
}

// Evaluate returns the mean divergence over all maps for profile.
func (ev *Evaluator) Evaluate(profile sense.RippleProfile) (float64, error) {
	results := make([]float64, len(ev.probes))
	errs := make([]error, len(ev.probes))
	var wg sync.WaitGroup
	for i, p := range ev.probes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = Divergence(p.res, p.origins, ev.algo, profile, ev.radius, ev.shape)
		}()
	}
	wg.Wait()
	if err := errors.Join(errs...); err != nil {
		return 0, err
	}
	return floats.Sum(results) / float64(len(results)), nil
}

// Fitness scores the result of Evaluate by its distance from the target
// (lower = better). A failed evaluation scores +Inf.
func (ev *Evaluator) Fitness(d float64, err error) float64 {
	if err != nil {
		return math.Inf(1)
	}
	return math.Abs(d - ev.target)
}

// Divergence lights res from every origin twice, once by shadow casting and
// once with algo under profile, and returns the mean absolute difference over
// cells lit by either.
func Divergence(res grid.View[float64], origins []geom.Point, algo sense.Algorithm, profile sense.RippleProfile, radius float64, shape geom.Radius) (float64, error) {
	shadow := sense.NewSenseMap(res)
	ripple := sense.NewSenseMap(res)
	if err := ripple.SetRippleProfile(algo, profile); err != nil {
		return 0, err
	}
	// Overlapping sources must not clamp.
	ceiling := float64(max(len(origins), 1))
	for _, m := range []*sense.SenseMap{shadow, ripple} {
		if err := m.SetMaxIntensity(ceiling); err != nil {
			return 0, err
		}
	}

	for _, o := range origins {
		s, err := sense.NewSenseSource(sense.Shadow, o, radius, shape, 1)
		if err != nil {
			return 0, err
		}
		r, err := sense.NewSenseSource(algo, o, radius, shape, 1)
		if err != nil {
			return 0, err
		}
		if err := errors.Join(shadow.AddSenseSource(s), ripple.AddSenseSource(r)); err != nil {
			return 0, err
		}
	}
	if err := errors.Join(shadow.Calculate(), ripple.Calculate()); err != nil {
		return 0, err
	}

	a := grid.CopyOf(shadow.Light()).Cells()
	b := grid.CopyOf(ripple.Light()).Cells()
	lit := 0
	for i := range a {
		if a[i] > 0 || b[i] > 0 {
			lit++
		}
	}
	if lit == 0 {
		return 0, nil
	}
	return floats.Distance(a, b, 1) / float64(lit), nil
}
