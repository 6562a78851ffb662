package render

import (
	"errors"
	"fmt"

	gear "github.com/ariaga-ii/gear-demo"
	"github.com/ariaga-ii/gear-demo/internal/d2"
	"github.com/ariaga-ii/gear-demo/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

const tolerance = 1e-9

// Extrude converts an ordered sequence of closed 2D polygon loops into a
// solid triangle mesh of the given depth, with the bottom face at z=0.
// Loops may touch but must not overlap; the gear silhouette's per-tooth
// loops satisfy this since every tooth owns its own angular sector.
func Extrude(loops []d2.Set, depth float64) ([]Triangle3, error) {
	if depth <= 0 {
		return nil, fmt.Errorf("%w: extrusion depth=%g, need positive", gear.ErrInvalidParameter, depth)
	}
	if len(loops) == 0 {
		return nil, errors.New("render: no loops to extrude")
	}
	var model []Triangle3
	for i, loop := range loops {
		tris, verts, err := triangulate(loop)
		if err != nil {
			return nil, fmt.Errorf("render: loop %d: %w", i, err)
		}
		bot := make([]r3.Vec, len(verts))
		top := make([]r3.Vec, len(verts))
		for j, v := range verts {
			bot[j] = d3.FromR2(v, 0)
			top[j] = d3.FromR2(v, depth)
		}
		for _, tri := range tris {
			// Bottom face winds clockwise seen from above so its normal
			// points down; top face keeps the loop's anticlockwise winding.
			model = append(model,
				Triangle3{V: [3]r3.Vec{bot[tri[0]], bot[tri[2]], bot[tri[1]]}},
				Triangle3{V: [3]r3.Vec{top[tri[0]], top[tri[1]], top[tri[2]]}},
			)
		}
		for j := range verts {
			k := (j + 1) % len(verts)
			model = append(model,
				Triangle3{V: [3]r3.Vec{bot[j], bot[k], top[k]}},
				Triangle3{V: [3]r3.Vec{bot[j], top[k], top[j]}},
			)
		}
	}
	return model, nil
}

// triangulate ear-clips a closed loop. It returns triangles as index
// triples into the cleaned anticlockwise vertex list it also returns.
func triangulate(loop d2.Set) ([][3]int, d2.Set, error) {
	verts := dedup(loop)
	if len(verts) < 3 {
		return nil, nil, errors.New("fewer than 3 distinct vertices")
	}
	if signedArea(verts) < 0 {
		for i, j := 0, len(verts)-1; i < j; i, j = i+1, j-1 {
			verts[i], verts[j] = verts[j], verts[i]
		}
	}

	idx := make([]int, len(verts))
	for i := range idx {
		idx[i] = i
	}
	var tris [][3]int
	for len(idx) > 3 {
		clipped := false
		for k := 0; k < len(idx); k++ {
			a := idx[(k+len(idx)-1)%len(idx)]
			b := idx[k]
			c := idx[(k+1)%len(idx)]
			if cross2(verts[a], verts[b], verts[c]) <= tolerance {
				continue // reflex or collinear corner
			}
			if anyInside(verts, idx, a, b, c) {
				continue
			}
			tris = append(tris, [3]int{a, b, c})
			idx = append(idx[:k], idx[k+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return nil, nil, errors.New("no ear found, loop may self-intersect")
		}
	}
	if cross2(verts[idx[0]], verts[idx[1]], verts[idx[2]]) <= tolerance {
		return nil, nil, errors.New("degenerate loop")
	}
	tris = append(tris, [3]int{idx[0], idx[1], idx[2]})
	return tris, verts, nil
}

// dedup drops consecutive duplicate vertices and an explicit closing vertex.
func dedup(loop d2.Set) d2.Set {
	out := make(d2.Set, 0, len(loop))
	for _, v := range loop {
		if len(out) > 0 && d2.EqualWithin(out[len(out)-1], v, tolerance) {
			continue
		}
		out = append(out, v)
	}
	for len(out) > 1 && d2.EqualWithin(out[0], out[len(out)-1], tolerance) {
		out = out[:len(out)-1]
	}
	return out
}

// signedArea is positive for anticlockwise loops.
func signedArea(p d2.Set) float64 {
	var sum float64
	for i := range p {
		j := (i + 1) % len(p)
		sum += p[i].X*p[j].Y - p[j].X*p[i].Y
	}
	return sum / 2
}

func cross2(a, b, c r2.Vec) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// anyInside reports whether any loop vertex other than the corner a,b,c
// lies strictly inside triangle abc.
func anyInside(verts d2.Set, idx []int, a, b, c int) bool {
	for _, i := range idx {
		if i == a || i == b || i == c {
			continue
		}
		p := verts[i]
		if cross2(verts[a], verts[b], p) > tolerance &&
			cross2(verts[b], verts[c], p) > tolerance &&
			cross2(verts[c], verts[a], p) > tolerance {
			return true
		}
	}
	return false
}
