// Package profile constructs the 2D silhouette of involute spur gears as
// closed polygon loops, one loop per tooth-and-gap sector.
package profile

import (
	"fmt"
	"math"

	gear "github.com/ariaga-ii/gear-demo"
	"github.com/ariaga-ii/gear-demo/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultStep is the involute unwind angle increment between samples.
const DefaultStep = 0.05

// Sampler produces points along the involute of a circle one at a time:
// the curve traced by unwinding a taut string from a circle of radius
// Base, from the base circle out to radius Max. The sequence is finite and
// Reset makes it restartable.
type Sampler struct {
	Base float64 // base circle radius
	Max  float64 // radius at which the curve terminates
	Step float64 // unwind angle increment, DefaultStep if zero

	t    float64
	done bool
	end  bool
}

// Next returns the next point of the curve and false after the sequence is
// exhausted. The stepped samples are emitted before their distance to the
// origin is tested, so at least the t=0 point always comes out; one exact
// endpoint at distance Max terminates the sequence regardless of step size.
func (s *Sampler) Next() (r2.Vec, bool) {
	if s.done {
		return r2.Vec{}, false
	}
	if s.end {
		s.done = true
		tEnd := math.Sqrt(s.Max*s.Max/(s.Base*s.Base) - 1)
		return involutePoint(s.Base, tEnd), true
	}
	step := s.Step
	if step == 0 {
		step = DefaultStep
	}
	p := involutePoint(s.Base, s.t)
	s.t += step
	if r2.Norm(p) >= s.Max {
		s.end = true
	}
	return p, true
}

// Reset restarts the sequence from the base circle.
func (s *Sampler) Reset() {
	s.t = 0
	s.done = false
	s.end = false
}

// involutePoint evaluates the involute at unwind angle t.
func involutePoint(base, t float64) r2.Vec {
	sin, cos := math.Sincos(t)
	return r2.Vec{
		X: base * (cos + t*sin),
		Y: base * (sin - t*cos),
	}
}

// Involute samples the involute of a circle of radius base from the base
// circle out to radius max with the given unwind angle step (DefaultStep if
// zero). The returned set has at least 2 points and its last point lies at
// distance max from the origin exactly.
func Involute(base, max, step float64) (d2.Set, error) {
	switch {
	case base <= 0 || math.IsNaN(base):
		return nil, fmt.Errorf("%w: base radius=%g, need positive", gear.ErrInvalidParameter, base)
	case max < base || math.IsNaN(max):
		return nil, fmt.Errorf("%w: max radius=%g under base radius=%g", gear.ErrInvalidParameter, max, base)
	case step < 0:
		return nil, fmt.Errorf("%w: step=%g, need non-negative", gear.ErrInvalidParameter, step)
	}
	s := Sampler{Base: base, Max: max, Step: step}
	var pts d2.Set
	for p, ok := s.Next(); ok; p, ok = s.Next() {
		pts = append(pts, p)
	}
	return pts, nil
}
