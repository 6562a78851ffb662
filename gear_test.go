package gear_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	gear "github.com/ariaga-ii/gear-demo"
)

const (
	tol           = 1e-9
	pressureAngle = 20 * math.Pi / 180
)

func TestParametersOrdering(t *testing.T) {
	for _, tc := range []struct {
		teeth  int
		module float64
	}{
		{5, 1}, {10, 0.5}, {20, 3}, {64, 2.5}, {113, 0.1},
	} {
		p, err := gear.NewParameters(tc.teeth, tc.module, pressureAngle)
		if err != nil {
			t.Fatal(err)
		}
		if !(p.BaseRadius < p.PitchRadius && p.PitchRadius < p.MaxRadius) {
			t.Errorf("teeth=%d: want base < pitch < max, got %g, %g, %g",
				tc.teeth, p.BaseRadius, p.PitchRadius, p.MaxRadius)
		}
		if p.MinRadius >= p.PitchRadius {
			t.Errorf("teeth=%d: want min < pitch, got %g, %g", tc.teeth, p.MinRadius, p.PitchRadius)
		}
		if got := p.PitchAngle * float64(tc.teeth); math.Abs(got-2*math.Pi) > tol {
			t.Errorf("teeth=%d: pitch angles sum to %g, want 2pi", tc.teeth, got)
		}
	}
}

func TestParametersDerived(t *testing.T) {
	p, err := gear.NewParameters(20, 3, pressureAngle)
	if err != nil {
		t.Fatal(err)
	}
	if p.PitchRadius != 30 {
		t.Errorf("pitch radius: got %g, want 30", p.PitchRadius)
	}
	if want := 30 * math.Cos(pressureAngle); math.Abs(p.BaseRadius-want) > tol {
		t.Errorf("base radius: got %g, want %g", p.BaseRadius, want)
	}
	if p.MaxRadius != 33 || p.MinRadius != 30-3.6 {
		t.Errorf("outside/root radii: got %g, %g, want 33, 26.4", p.MaxRadius, p.MinRadius)
	}
	if want := math.Tan(pressureAngle) - pressureAngle; math.Abs(p.Alpha-want) > tol {
		t.Errorf("alpha: got %g, want %g", p.Alpha, want)
	}
}

func TestParametersInvalid(t *testing.T) {
	for _, tc := range []struct {
		name          string
		teeth         int
		module, angle float64
	}{
		{"zero teeth", 0, 1, pressureAngle},
		{"negative teeth", -5, 1, pressureAngle},
		{"zero module", 10, 0, pressureAngle},
		{"negative module", 10, -2, pressureAngle},
		{"zero pressure angle", 10, 1, 0},
		{"right angle flank", 10, 1, math.Pi / 2},
	} {
		_, err := gear.NewParameters(tc.teeth, tc.module, tc.angle)
		if !errors.Is(err, gear.ErrInvalidParameter) {
			t.Errorf("%s: got %v, want ErrInvalidParameter", tc.name, err)
		}
	}
}

func TestAttachPlacesOnPitchCircle(t *testing.T) {
	var train gear.Train
	root, err := train.NewGear(20, 3, pressureAngle)
	if err != nil {
		t.Fatal(err)
	}
	child, err := train.Attach(root, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	x, y, _ := child.Transform()
	if math.Abs(x-45) > tol || math.Abs(y) > tol {
		t.Errorf("child at (%g,%g), want (45,0)", x, y)
	}
	if math.Abs(child.Ratio()-2) > tol {
		t.Errorf("ratio: got %g, want 2", child.Ratio())
	}
	if math.Abs(child.RotationSpeed()+2) > tol {
		t.Errorf("rotation speed: got %g, want -2", child.RotationSpeed())
	}
}

func TestAttachAzimuth(t *testing.T) {
	var train gear.Train
	root, _ := train.NewGear(12, 2, pressureAngle)
	if err := root.SetPosition(10, -5); err != nil {
		t.Fatal(err)
	}
	child, err := train.Attach(root, 8, math.Pi/2)
	if err != nil {
		t.Fatal(err)
	}
	cd := gear.CenterDistance(root.Params(), child.Params())
	if want := 2.0 * (12 + 8) / 2; cd != want {
		t.Errorf("center distance: got %g, want %g", cd, want)
	}
	x, y, _ := child.Transform()
	if math.Abs(x-10) > tol || math.Abs(y-(-5+cd)) > tol {
		t.Errorf("child at (%g,%g), want (10,%g)", x, y, -5+cd)
	}
}

func TestRatioChain(t *testing.T) {
	var train gear.Train
	root, _ := train.NewGear(20, 1, pressureAngle)
	mid, err := train.Attach(root, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	leaf, err := train.Attach(mid, 5, math.Pi/4)
	if err != nil {
		t.Fatal(err)
	}
	// Two sign flips cancel, magnitudes multiply: (-10/20)*(-5/10)... the
	// speed chain gives (-2)*(-2) relative factors on a ratio of 4.
	if got := mid.RotationSpeed(); math.Abs(got+2) > tol {
		t.Errorf("mid speed: got %g, want -2", got)
	}
	if got := leaf.RotationSpeed(); math.Abs(got-4) > tol {
		t.Errorf("leaf speed: got %g, want 4", got)
	}
}

func TestDriveByScalesThroughRatio(t *testing.T) {
	var train gear.Train
	root, _ := train.NewGear(20, 1, pressureAngle)
	child, _ := train.Attach(root, 10, 0)
	before := child.Rotation()
	if err := train.DriveAll(root, 0.5); err != nil {
		t.Fatal(err)
	}
	if got := root.Rotation(); math.Abs(got-0.5) > tol {
		t.Errorf("root rotation: got %g, want 0.5", got)
	}
	if got := child.Rotation() - before; math.Abs(got+1) > tol {
		t.Errorf("child rotation delta: got %g, want -1", got)
	}
}

func TestPhaseLockAtAttach(t *testing.T) {
	var train gear.Train
	root, _ := train.NewGear(20, 1, pressureAngle)
	root.DriveBy(0.7) // pinion already turned before the child arrives
	child, err := train.Attach(root, 10, 0.3)
	if err != nil {
		t.Fatal(err)
	}
	want := math.Pi + 0.3 + (0.3-0.7)*2
	if got := child.Rotation(); math.Abs(got-want) > tol {
		t.Errorf("phase lock: got %g, want %g", got, want)
	}
}

func TestMeshModuleMismatch(t *testing.T) {
	var train gear.Train
	root, _ := train.NewGear(20, 3, pressureAngle)
	stray, _ := train.NewGear(10, 2, pressureAngle)
	err := train.Mesh(root, stray, 0)
	if !errors.Is(err, gear.ErrModuleMismatch) {
		t.Fatalf("got %v, want ErrModuleMismatch", err)
	}
	// The failed mesh must leave the tree unchanged.
	if stray.Pinion() != nil {
		t.Error("stray gear gained a pinion from a failed mesh")
	}
	if len(root.Children()) != 0 {
		t.Error("root gained a child from a failed mesh")
	}
	if stray.RotationSpeed() != 1 || stray.Ratio() != 1 {
		t.Error("stray gear kinematics changed by a failed mesh")
	}
}

func TestMeshRejectsDuplicateAndCycle(t *testing.T) {
	var train gear.Train
	root, _ := train.NewGear(20, 3, pressureAngle)
	child, _ := train.Attach(root, 10, 0)
	leaf, _ := train.Attach(child, 5, 0)

	if err := train.Mesh(root, child, 1); !errors.Is(err, gear.ErrAttached) {
		t.Errorf("re-attach: got %v, want ErrAttached", err)
	}
	if err := train.Mesh(root, root, 0); !errors.Is(err, gear.ErrCycle) {
		t.Errorf("self mesh: got %v, want ErrCycle", err)
	}
	// Meshing the root onto its own descendant would close a loop.
	free, _ := train.NewGear(20, 3, pressureAngle)
	if err := train.Mesh(leaf, free, 0); err != nil {
		t.Fatal(err)
	}
	if err := train.Mesh(free, root, 0); !errors.Is(err, gear.ErrCycle) {
		t.Errorf("descendant mesh: got %v, want ErrCycle", err)
	}
}

func TestDetachRemovesSubtree(t *testing.T) {
	var train gear.Train
	root, _ := train.NewGear(20, 3, pressureAngle)
	mid, _ := train.Attach(root, 10, 0)
	if _, err := train.Attach(mid, 5, 1); err != nil {
		t.Fatal(err)
	}
	if got := len(train.Gears()); got != 3 {
		t.Fatalf("train size: got %d, want 3", got)
	}
	if err := train.Detach(mid); err != nil {
		t.Fatal(err)
	}
	if got := len(train.Gears()); got != 1 {
		t.Errorf("train size after detach: got %d, want 1", got)
	}
	if len(root.Children()) != 0 {
		t.Error("root still references detached child")
	}
	if err := train.Detach(mid); !errors.Is(err, gear.ErrDetached) {
		t.Errorf("double detach: got %v, want ErrDetached", err)
	}
}

func TestSetPositionMovesSubtree(t *testing.T) {
	var train gear.Train
	root, _ := train.NewGear(20, 3, pressureAngle)
	child, _ := train.Attach(root, 10, 0)
	if err := root.SetPosition(7, 11); err != nil {
		t.Fatal(err)
	}
	x, y, _ := child.Transform()
	if math.Abs(x-52) > tol || math.Abs(y-11) > tol {
		t.Errorf("child at (%g,%g), want (52,11)", x, y)
	}
	if err := child.SetPosition(0, 0); !errors.Is(err, gear.ErrAttached) {
		t.Errorf("moving attached gear: got %v, want ErrAttached", err)
	}
}

func TestResetFiresGeometryHook(t *testing.T) {
	var train gear.Train
	root, _ := train.NewGear(20, 3, pressureAngle)
	before := root.Params()
	var rebuilt []*gear.Gear
	train.OnGeometryRebuilt = func(g *gear.Gear) { rebuilt = append(rebuilt, g) }
	if err := train.Reset(root); err != nil {
		t.Fatal(err)
	}
	if len(rebuilt) != 1 || rebuilt[0] != root {
		t.Fatalf("hook fired for %v, want exactly the reset gear", rebuilt)
	}
	if root.Params() != before {
		t.Error("reset changed derived parameters; derivation must be pure")
	}
}

func TestTrainJSONRoundTrip(t *testing.T) {
	var train gear.Train
	root, _ := train.NewGear(20, 3, pressureAngle)
	if err := root.SetPosition(5, -2); err != nil {
		t.Fatal(err)
	}
	mid, _ := train.Attach(root, 10, 0)
	if _, err := train.Attach(mid, 5, math.Pi/3); err != nil {
		t.Fatal(err)
	}

	b, err := json.Marshal(&train)
	if err != nil {
		t.Fatal(err)
	}
	var loaded gear.Train
	if err := json.Unmarshal(b, &loaded); err != nil {
		t.Fatal(err)
	}
	got := loaded.Gears()
	want := train.Gears()
	if len(got) != len(want) {
		t.Fatalf("gear count: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i].Params() != want[i].Params() {
			t.Errorf("gear %d parameters differ after reload", i)
		}
		gx, gy, _ := got[i].Transform()
		wx, wy, _ := want[i].Transform()
		if math.Abs(gx-wx) > tol || math.Abs(gy-wy) > tol {
			t.Errorf("gear %d at (%g,%g), want (%g,%g)", i, gx, gy, wx, wy)
		}
		if math.Abs(got[i].RotationSpeed()-want[i].RotationSpeed()) > tol {
			t.Errorf("gear %d speed: got %g, want %g", i,
				got[i].RotationSpeed(), want[i].RotationSpeed())
		}
	}
}
