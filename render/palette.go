package render

import "math/rand"

// DefaultPalette is a set of hex colors that read well against the
// preview background.
var DefaultPalette = []string{
	"#468966", "#FFB03B", "#B64926", "#8E2800", "#464159",
}

// Palette assigns display colors to gears. Color choice is cosmetic and
// not part of the kinematic contract; the random source is injected so
// callers and tests stay reproducible. A nil source falls back to
// round-robin assignment.
type Palette struct {
	colors []string
	rng    *rand.Rand
	next   int
}

// NewPalette returns a palette over colors. rng may be nil for
// deterministic round-robin picks. An empty colors list falls back to
// DefaultPalette.
func NewPalette(rng *rand.Rand, colors ...string) *Palette {
	if len(colors) == 0 {
		colors = DefaultPalette
	}
	return &Palette{colors: colors, rng: rng}
}

// Pick returns the next display color.
func (p *Palette) Pick() string {
	if p.rng != nil {
		return p.colors[p.rng.Intn(len(p.colors))]
	}
	c := p.colors[p.next%len(p.colors)]
	p.next++
	return c
}
