// Package render turns gear silhouettes into renderable solid bodies:
// extruded triangle meshes, binary STL files and software-rendered PNG
// previews.
package render

import (
	"math"

	"github.com/ariaga-ii/gear-demo/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle3 is a 3D triangle.
type Triangle3 struct {
	V [3]r3.Vec
}

// Normal returns the normal vector to the plane defined by the 3D triangle.
func (t Triangle3) Normal() r3.Vec {
	e1 := r3.Sub(t.V[1], t.V[0])
	e2 := r3.Sub(t.V[2], t.V[0])
	return r3.Unit(r3.Cross(e1, e2))
}

// Bounds returns the axis-aligned bounding box of the model.
func Bounds(model []Triangle3) (min, max r3.Vec) {
	min = d3.Elem(math.Inf(1))
	max = d3.Elem(math.Inf(-1))
	for _, t := range model {
		for _, v := range t.V {
			min = d3.MinElem(min, v)
			max = d3.MaxElem(max, v)
		}
	}
	return min, max
}

// Place returns a copy of model rotated by rotation radians about the z
// axis and translated to center (x, y). Use it to bake a gear's world
// transform into its mesh before STL export.
func Place(model []Triangle3, x, y, rotation float64) []Triangle3 {
	sin, cos := math.Sincos(rotation)
	out := make([]Triangle3, len(model))
	for i, t := range model {
		for j, v := range t.V {
			out[i].V[j] = r3.Vec{
				X: v.X*cos - v.Y*sin + x,
				Y: v.X*sin + v.Y*cos + y,
				Z: v.Z,
			}
		}
	}
	return out
}
