// Package gear derives the geometric parameters of involute spur gears and
// simulates the kinematic coupling of a tree of meshed gears: placement of
// each driven gear on its pinion's pitch circle, angular velocity ratios and
// tooth engagement phase.
package gear

import (
	"fmt"
	"math"
)

const (
	pi  = math.Pi
	tau = 2 * pi
)

// DedendumRatio scales the module to obtain the dedendum, the radial depth
// of the tooth gap below the pitch circle.
const DedendumRatio = 1.2

// Parameters holds the derived dimensions of an involute spur gear.
// It is immutable once computed by NewParameters.
type Parameters struct {
	// Teeth is the tooth count, at least 1. Counts under 5 produce an
	// undercut involute at common pressure angles but are accepted.
	Teeth int
	// Module is the pitch circle diameter per tooth.
	Module float64
	// PressureAngle defines the flank steepness in radians. 20 degrees
	// is the common standard.
	PressureAngle float64

	// PitchAngle is the angle subtended by one tooth and gap, 2pi/Teeth.
	PitchAngle float64
	// PitchRadius is the radius at which two meshing gears are tangent.
	PitchRadius float64
	// BaseRadius is the radius of the circle the involute unwinds from.
	BaseRadius float64
	// Addendum is the radial extension of a tooth beyond the pitch circle.
	Addendum float64
	// Dedendum is the radial depth of the gap below the pitch circle.
	Dedendum float64
	// MaxRadius is the outside radius, PitchRadius+Addendum.
	MaxRadius float64
	// MinRadius is the root radius, PitchRadius-Dedendum.
	MinRadius float64
	// Alpha is the polar angle swept by the involute between the base
	// circle and the pitch circle. It phase-aligns the two mirrored tooth
	// flanks symmetrically about the pitch point.
	Alpha float64
}

// NewParameters derives all gear dimensions from tooth count, module and
// pressure angle (radians). teeth must be at least 1 and module positive.
func NewParameters(teeth int, module, pressureAngle float64) (Parameters, error) {
	switch {
	case teeth < 1:
		return Parameters{}, fmt.Errorf("%w: teeth=%d, need at least 1", ErrInvalidParameter, teeth)
	case module <= 0 || math.IsNaN(module) || math.IsInf(module, 0):
		return Parameters{}, fmt.Errorf("%w: module=%g, need positive", ErrInvalidParameter, module)
	case pressureAngle <= 0 || pressureAngle >= pi/2:
		return Parameters{}, fmt.Errorf("%w: pressure angle=%g rad, need within (0, pi/2)", ErrInvalidParameter, pressureAngle)
	}
	p := Parameters{
		Teeth:         teeth,
		Module:        module,
		PressureAngle: pressureAngle,
	}
	p.PitchAngle = tau / float64(teeth)
	p.PitchRadius = module * float64(teeth) / 2
	p.BaseRadius = p.PitchRadius * math.Cos(pressureAngle)
	p.Addendum = module
	p.Dedendum = DedendumRatio * module
	p.MaxRadius = p.PitchRadius + p.Addendum
	p.MinRadius = p.PitchRadius - p.Dedendum
	// The involute reaches the pitch circle at unwind parameter
	// t = tan(pressureAngle); the polar angle of that point is t - atan(t).
	p.Alpha = math.Tan(pressureAngle) - pressureAngle
	return p, nil
}

// CenterDistance returns the distance between the centers of two meshing
// gears, the sum of both pitch radii. Both gears must share a module for
// the result to be meaningful; Train.Mesh enforces this.
func CenterDistance(a, b Parameters) float64 {
	return a.Module * float64(a.Teeth+b.Teeth) / 2
}
