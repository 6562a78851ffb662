package gear

import (
	"fmt"
	"math"
)

// Train is a tree of meshed gears backed by an arena of gear records.
// The zero value is ready to use. A Train expects a single logical writer;
// wrap it in a mutex if gears are attached or driven from several
// goroutines.
type Train struct {
	// gears is the arena. Detached gears leave nil slots so that ids of
	// live gears stay stable.
	gears []*Gear
	// OnGeometryRebuilt, if set, fires whenever Reset recomputes a gear's
	// parameters so that callers can dispose and rebuild the rendered
	// solid for that gear.
	OnGeometryRebuilt func(*Gear)
}

// Gear is one gear of a Train. Its parameters are immutable after
// construction; position and rotation change as gears are attached and
// driven. The back-reference to the pinion is an arena index, never an
// owning pointer, so teardown stays children-first and cycles cannot be
// represented.
type Gear struct {
	train    *Train
	id       int
	pinion   int // arena index of the driving gear, -1 for roots
	children []int

	params   Parameters
	x, y     float64
	rotation float64 // rotation about own axis, radians
	angle    float64 // azimuth in the pinion frame, fixed at attach
	ratio    float64 // teeth_pinion / teeth_self, 1 for roots
	speed    float64 // signed rotation multiplier, alternates sign each level
}

const noPinion = -1

// NewGear creates a free root gear at the origin.
func (t *Train) NewGear(teeth int, module, pressureAngle float64) (*Gear, error) {
	p, err := NewParameters(teeth, module, pressureAngle)
	if err != nil {
		return nil, err
	}
	g := &Gear{
		train:  t,
		id:     len(t.gears),
		pinion: noPinion,
		params: p,
		ratio:  1,
		speed:  1,
	}
	t.gears = append(t.gears, g)
	return g, nil
}

// Attach constructs a new gear with the given tooth count, meshed with
// pinion at azimuth radians in the pinion's frame. Module and pressure
// angle are shared with the pinion. The new gear is positioned on the
// pinion's pitch circle and phase-locked so the teeth interlock at the
// moment of attachment.
func (t *Train) Attach(pinion *Gear, teeth int, azimuth float64) (*Gear, error) {
	if err := t.owns(pinion); err != nil {
		return nil, err
	}
	g, err := t.NewGear(teeth, pinion.params.Module, pinion.params.PressureAngle)
	if err != nil {
		return nil, err
	}
	if err := t.Mesh(pinion, g, azimuth); err != nil {
		// The fresh gear never entered the tree; drop it again.
		t.gears = t.gears[:len(t.gears)-1]
		g.train = nil
		return nil, err
	}
	return g, nil
}

// Mesh attaches an existing free gear to pinion at azimuth radians in the
// pinion's frame. It fails, leaving the train unchanged, if the gears'
// modules differ, if child already has a pinion, or if the attachment
// would create a cycle.
func (t *Train) Mesh(pinion, child *Gear, azimuth float64) error {
	if err := t.owns(pinion); err != nil {
		return err
	}
	if err := t.owns(child); err != nil {
		return err
	}
	if child.params.Module != pinion.params.Module {
		return fmt.Errorf("%w: child %g, pinion %g", ErrModuleMismatch,
			child.params.Module, pinion.params.Module)
	}
	if child.pinion != noPinion {
		return ErrAttached
	}
	if child == pinion || t.descends(pinion, child) {
		return ErrCycle
	}

	child.pinion = pinion.id
	child.angle = azimuth
	child.ratio = float64(pinion.params.Teeth) / float64(child.params.Teeth)
	child.speed = -child.ratio * pinion.speed
	pinion.children = append(pinion.children, child.id)

	child.position()
	// Phase lock: pi+azimuth faces the first tooth gap at the pinion along
	// the line of centers; the second term compensates for whatever the
	// pinion had already rotated at attach time.
	child.rotation += pi + azimuth
	child.rotation += (azimuth - pinion.rotation) * child.ratio
	return nil
}

// position places g tangent to its pinion's pitch circle. Roots keep their
// caller-assigned position.
func (g *Gear) position() {
	if g.pinion == noPinion {
		return
	}
	pinion := g.train.gears[g.pinion]
	cd := CenterDistance(g.params, pinion.params)
	g.x = pinion.x + cd*math.Cos(g.angle)
	g.y = pinion.y + cd*math.Sin(g.angle)
}

// descends reports whether g is a transitive driven gear of root.
func (t *Train) descends(g, root *Gear) bool {
	for _, id := range root.children {
		c := t.gears[id]
		if c == g || t.descends(g, c) {
			return true
		}
	}
	return false
}

func (t *Train) owns(g *Gear) error {
	if g == nil || g.train == nil {
		return ErrDetached
	}
	if g.train != t {
		return ErrForeignGear
	}
	return nil
}

// Detach removes g and, transitively, all gears it drives from the train.
// Detaching a root discards the whole tree under it.
func (t *Train) Detach(g *Gear) error {
	if err := t.owns(g); err != nil {
		return err
	}
	if g.pinion != noPinion {
		pinion := t.gears[g.pinion]
		for i, id := range pinion.children {
			if id == g.id {
				pinion.children = append(pinion.children[:i], pinion.children[i+1:]...)
				break
			}
		}
	}
	t.free(g)
	return nil
}

func (t *Train) free(g *Gear) {
	for _, id := range g.children {
		t.free(t.gears[id])
	}
	t.gears[g.id] = nil
	g.train = nil
	g.children = nil
}

// Reset recomputes g's derived parameters from its stored tooth count,
// module and pressure angle. Geometry derivation is pure, so the result is
// identical unless callers cached stale state; the OnGeometryRebuilt hook
// fires so external solids can be rebuilt. Pressure angle is fixed for a
// gear's lifetime.
func (t *Train) Reset(g *Gear) error {
	if err := t.owns(g); err != nil {
		return err
	}
	p, err := NewParameters(g.params.Teeth, g.params.Module, g.params.PressureAngle)
	if err != nil {
		return err
	}
	g.params = p
	if t.OnGeometryRebuilt != nil {
		t.OnGeometryRebuilt(g)
	}
	return nil
}

// Gears returns the live gears of the train in creation order.
func (t *Train) Gears() []*Gear {
	out := make([]*Gear, 0, len(t.gears))
	for _, g := range t.gears {
		if g != nil {
			out = append(out, g)
		}
	}
	return out
}

// DriveAll applies DriveBy(angle) to root and every gear it transitively
// drives. Each gear's speed already encodes its total ratio from the root,
// so per-gear rotation is independent and order does not matter.
func (t *Train) DriveAll(root *Gear, angle float64) error {
	if err := t.owns(root); err != nil {
		return err
	}
	root.DriveBy(angle)
	for _, id := range root.children {
		t.DriveAll(t.gears[id], angle)
	}
	return nil
}

// Params returns the gear's derived dimensions.
func (g *Gear) Params() Parameters { return g.params }

// Pinion returns the gear driving g, or nil for roots.
func (g *Gear) Pinion() *Gear {
	if g.pinion == noPinion || g.train == nil {
		return nil
	}
	return g.train.gears[g.pinion]
}

// Children returns the gears driven directly by g.
func (g *Gear) Children() []*Gear {
	out := make([]*Gear, 0, len(g.children))
	for _, id := range g.children {
		if c := g.train.gears[id]; c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Transform returns the world placement to apply to the gear's rendered
// solid: center position and rotation about its own axis.
func (g *Gear) Transform() (x, y, rotation float64) {
	return g.x, g.y, g.rotation
}

// Rotation returns the gear's rotation about its own axis in radians.
func (g *Gear) Rotation() float64 { return g.rotation }

// Angle returns the azimuth, in the pinion's frame, at which the gear was
// attached. It is zero for roots and never changes after attachment.
func (g *Gear) Angle() float64 { return g.angle }

// Ratio returns teeth_pinion/teeth_self, 1 for roots.
func (g *Gear) Ratio() float64 { return g.ratio }

// RotationSpeed returns the signed rotation multiplier relative to driving
// the root. The sign alternates at each tree level since meshed gears
// counter-rotate; the magnitude is the accumulated ratio chain.
func (g *Gear) RotationSpeed() float64 { return g.speed }

// DriveBy rotates the gear by angle scaled through its accumulated ratio.
// It does not recurse into driven gears; use Train.DriveAll to move a
// whole tree.
func (g *Gear) DriveBy(angle float64) {
	g.rotation += angle * g.speed
}

// SetPosition moves a root gear to a caller-assigned position and
// repositions every gear it drives. Attached gears take their position
// from the pinion and cannot be moved directly.
func (g *Gear) SetPosition(x, y float64) error {
	if g.train == nil {
		return ErrDetached
	}
	if g.pinion != noPinion {
		return fmt.Errorf("%w: position is dictated by pitch circle tangency", ErrAttached)
	}
	g.x, g.y = x, y
	g.train.reposition(g)
	return nil
}

func (t *Train) reposition(g *Gear) {
	for _, id := range g.children {
		c := t.gears[id]
		c.position()
		t.reposition(c)
	}
}
