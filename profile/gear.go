package profile

import (
	gear "github.com/ariaga-ii/gear-demo"
	"github.com/ariaga-ii/gear-demo/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// Gear replicates the tooth polygon of p around the full circle and
// returns the complete silhouette: Teeth closed loops, tooth i rotated by
// i*pitchAngle. The loops are not unioned into one boundary; turning the
// loop set into a single solid is the renderer's job.
func Gear(p gear.Parameters) ([]d2.Set, error) {
	tooth, err := Tooth(p)
	if err != nil {
		return nil, err
	}
	loops := make([]d2.Set, p.Teeth)
	loops[0] = tooth
	for i := 1; i < p.Teeth; i++ {
		loops[i] = d2.RotateSet(tooth, float64(i)*p.PitchAngle, r2.Vec{})
	}
	return loops, nil
}

// Bounds returns the bounding box enclosing all loops.
func Bounds(loops []d2.Set) d2.Box {
	var bb d2.Box
	for i, loop := range loops {
		lb := d2.Box{Min: loop.Min(), Max: loop.Max()}
		if i == 0 {
			bb = lb
			continue
		}
		bb = bb.Extend(lb)
	}
	return bb
}
