package d2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Transform represents a 2D spatial transformation
// including translation, rotation and reflection.
type Transform struct {
	data [3 * 3]float64 // stack stronk
}

// Identity returns the identity transform.
func Identity() Transform {
	t := Transform{}
	t.Set(0, 0, 1)
	t.Set(1, 1, 1)
	t.Set(2, 2, 1)
	return t
}

func (t *Transform) At(i, j int) float64 {
	return t.data[i*3+j]
}

func (t *Transform) Set(i, j int, v float64) {
	t.data[i*3+j] = v
}

// Translate returns a translation transform by v.
func Translate(v r2.Vec) Transform {
	t := Identity()
	t.Set(0, 2, v.X)
	t.Set(1, 2, v.Y)
	return t
}

// Rotate returns an anticlockwise rotation about the origin by theta radians.
func Rotate(theta float64) Transform {
	s, c := math.Sincos(theta)
	t := Identity()
	t.Set(0, 0, c)
	t.Set(0, 1, -s)
	t.Set(1, 0, s)
	t.Set(1, 1, c)
	return t
}

// RotateAbout returns an anticlockwise rotation by theta radians about origin.
func RotateAbout(theta float64, origin r2.Vec) Transform {
	return Translate(origin).Mul(Rotate(theta)).Mul(Translate(r2.Scale(-1, origin)))
}

// Reflect returns a reflection across the line through the origin at
// angle rayAngle. The reflection matrix is the rotation matrix for
// angle 2*rayAngle with the sign of the second column flipped.
func Reflect(rayAngle float64) Transform {
	s, c := math.Sincos(2 * rayAngle)
	t := Identity()
	t.Set(0, 0, c)
	t.Set(0, 1, s)
	t.Set(1, 0, s)
	t.Set(1, 1, -c)
	return t
}

// Mul multiplies 3x3 matrices.
func (a Transform) Mul(b Transform) Transform {
	m := Transform{}
	m.Set(0, 0, a.At(0, 0)*b.At(0, 0)+a.At(0, 1)*b.At(1, 0)+a.At(0, 2)*b.At(2, 0))
	m.Set(1, 0, a.At(1, 0)*b.At(0, 0)+a.At(1, 1)*b.At(1, 0)+a.At(1, 2)*b.At(2, 0))
	m.Set(2, 0, a.At(2, 0)*b.At(0, 0)+a.At(2, 1)*b.At(1, 0)+a.At(2, 2)*b.At(2, 0))
	m.Set(0, 1, a.At(0, 0)*b.At(0, 1)+a.At(0, 1)*b.At(1, 1)+a.At(0, 2)*b.At(2, 1))
	m.Set(1, 1, a.At(1, 0)*b.At(0, 1)+a.At(1, 1)*b.At(1, 1)+a.At(1, 2)*b.At(2, 1))
	m.Set(2, 1, a.At(2, 0)*b.At(0, 1)+a.At(2, 1)*b.At(1, 1)+a.At(2, 2)*b.At(2, 1))
	m.Set(0, 2, a.At(0, 0)*b.At(0, 2)+a.At(0, 1)*b.At(1, 2)+a.At(0, 2)*b.At(2, 2))
	m.Set(1, 2, a.At(1, 0)*b.At(0, 2)+a.At(1, 1)*b.At(1, 2)+a.At(1, 2)*b.At(2, 2))
	m.Set(2, 2, a.At(2, 0)*b.At(0, 2)+a.At(2, 1)*b.At(1, 2)+a.At(2, 2)*b.At(2, 2))
	return m
}

func (t Transform) ApplyPos(b r2.Vec) r2.Vec {
	return r2.Vec{
		X: t.At(0, 0)*b.X + t.At(0, 1)*b.Y + t.At(0, 2),
		Y: t.At(1, 0)*b.X + t.At(1, 1)*b.Y + t.At(1, 2),
	}
}

// ApplySet transforms every point of s into a new set.
func (t Transform) ApplySet(s Set) Set {
	out := make(Set, len(s))
	for i := range s {
		out[i] = t.ApplyPos(s[i])
	}
	return out
}

// RotateSet rotates every point of s about origin by theta radians,
// anticlockwise positive. Angles that are a multiple of 2pi return s itself
// so that repeated no-op rotations accumulate no floating point drift.
func RotateSet(s Set, theta float64, origin r2.Vec) Set {
	if math.Mod(theta, 2*math.Pi) == 0 {
		return s
	}
	if origin == (r2.Vec{}) {
		return Rotate(theta).ApplySet(s)
	}
	return RotateAbout(theta, origin).ApplySet(s)
}

// ReflectSet reflects every point of s across the line through the origin
// at angle rayAngle.
func ReflectSet(s Set, rayAngle float64) Set {
	return Reflect(rayAngle).ApplySet(s)
}
