package profile

import (
	gear "github.com/ariaga-ii/gear-demo"
	"github.com/ariaga-ii/gear-demo/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
)

// Tooth builds the closed polygon of one tooth and its trailing gap.
//
// The leading flank is the involute from the base circle to the outside
// radius. The trailing flank is its mirror image across the ray at
// pitchAngle/4+alpha, which makes the two flanks meet symmetrically about
// the pitch point. The root is closed with straight chords through two
// points on the root circle and the gear center; a true fillet arc adds
// nothing at this fidelity since the load-bearing shape is the involute.
// The finished polygon is rotated by -alpha so the tooth is centered in
// its angular slot.
func Tooth(p gear.Parameters) (d2.Set, error) {
	flank, err := Involute(p.BaseRadius, p.MaxRadius, DefaultStep)
	if err != nil {
		return nil, err
	}
	mirror := d2.ReflectSet(flank, p.PitchAngle/4+p.Alpha)

	verts := make(d2.Set, 0, 2*len(flank)+3)
	verts = append(verts, flank...)
	for i := len(mirror) - 1; i >= 0; i-- { // tip to root on the far flank
		verts = append(verts, mirror[i])
	}
	verts = append(verts,
		d2.PolarToXY(p.MinRadius, p.PitchAngle/2+2*p.Alpha),
		d2.PolarToXY(p.MinRadius, p.PitchAngle),
		r2.Vec{},
	)
	return d2.RotateSet(verts, -p.Alpha, r2.Vec{}), nil
}
