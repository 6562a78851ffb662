package gear

import (
	"encoding/json"
	"fmt"
)

// gearRecord is the minimal persisted state per gear: identity, the pinion
// link and the attach azimuth. All geometry and kinematics re-derive
// deterministically from these on load. Rotation is intentionally not
// stored; a reloaded train starts phase-locked as if every pinion stood at
// zero when its children attached.
type gearRecord struct {
	Teeth         int     `json:"teeth"`
	Module        float64 `json:"module"`
	PressureAngle float64 `json:"pressure_angle"`
	Pinion        int     `json:"pinion"` // record index, -1 for roots
	Angle         float64 `json:"angle"`
	X             float64 `json:"x"` // root placement only, derived otherwise
	Y             float64 `json:"y"`
}

// MarshalJSON encodes the train as a flat list of gear records with
// parent links by record index. Parents always precede their children.
func (t *Train) MarshalJSON() ([]byte, error) {
	idx := make(map[int]int, len(t.gears)) // arena id -> record index
	var records []gearRecord
	var walk func(g *Gear)
	walk = func(g *Gear) {
		rec := gearRecord{
			Teeth:         g.params.Teeth,
			Module:        g.params.Module,
			PressureAngle: g.params.PressureAngle,
			Pinion:        noPinion,
			Angle:         g.angle,
		}
		if g.pinion != noPinion {
			rec.Pinion = idx[g.pinion]
		} else {
			rec.X, rec.Y = g.x, g.y
		}
		idx[g.id] = len(records)
		records = append(records, rec)
		for _, id := range g.children {
			if c := t.gears[id]; c != nil {
				walk(c)
			}
		}
	}
	for _, g := range t.gears {
		if g != nil && g.pinion == noPinion {
			walk(g)
		}
	}
	return json.Marshal(records)
}

// UnmarshalJSON rebuilds a train from records produced by MarshalJSON.
// The receiver must be an empty train.
func (t *Train) UnmarshalJSON(data []byte) error {
	if len(t.gears) != 0 {
		return fmt.Errorf("gear: unmarshal into non-empty train")
	}
	var records []gearRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}
	gears := make([]*Gear, len(records))
	for i, rec := range records {
		if rec.Pinion == noPinion {
			g, err := t.NewGear(rec.Teeth, rec.Module, rec.PressureAngle)
			if err != nil {
				return err
			}
			if err := g.SetPosition(rec.X, rec.Y); err != nil {
				return err
			}
			gears[i] = g
			continue
		}
		if rec.Pinion < 0 || rec.Pinion >= i || gears[rec.Pinion] == nil {
			return fmt.Errorf("gear: record %d references bad pinion %d", i, rec.Pinion)
		}
		g, err := t.NewGear(rec.Teeth, rec.Module, rec.PressureAngle)
		if err != nil {
			return err
		}
		if err := t.Mesh(gears[rec.Pinion], g, rec.Angle); err != nil {
			return err
		}
		gears[i] = g
	}
	return nil
}
