// Package scene lays out a full skyline: ground line, landmark tower, podium
// and the layers of catalog buildings around them.
//
// A scene is drawn in a single pass onto one canvas. All randomness comes from
// the *rand.Rand handed to [Render], so a given config and seed always yield
// the same picture:
//
//	cfg := scene.DefaultConfig()
//	cv, stats := scene.Render(cfg, scene.NewRand(cfg.SeedValue()))
//	cv.Print(os.Stdout)
package scene

import (
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/skyline/pkg/building"
	"github.com/matzehuels/skyline/pkg/canvas"
)

// Rows between the bottom of the canvas and the base row and ground line.
const (
	baseOffset   = 4
	groundOffset = 3
)

// Stats summarizes a rendered scene.
type Stats struct {
	Buildings int            `json:"buildings"`
	PerLayer  map[string]int `json:"per_layer,omitempty"`
}

// NewRand returns the PCG source used for scenes, seeded from seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Option configures [Render].
type Option func(*renderer)

type renderer struct {
	logger *log.Logger
}

// WithLogger sets the logger used for per-layer debug output.
func WithLogger(l *log.Logger) Option {
	return func(r *renderer) { r.logger = l }
}

// Render draws cfg onto a new canvas. The config is expected to be valid; see
// [Config.Validate]. Unset top-level fields fall back to [DefaultConfig].
func Render(cfg Config, rng *rand.Rand, opts ...Option) (*canvas.Canvas, Stats) {
	r := renderer{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&r)
	}
	cfg = cfg.WithDefaults()

	cv := canvas.New(cfg.Height, cfg.Width, canvas.Blank)
	base := cfg.Height - baseOffset
	center := cfg.Width / 2
	if cfg.Landmark.Center != nil {
		center = *cfg.Landmark.Center
	}

	cv.HLine(cfg.Height-groundOffset, 0, cfg.Width-1, canvas.Ground)
	if !cfg.Landmark.Skip {
		drawLandmark(cv, base, center, cfg.Landmark)
	}
	for _, b := range cfg.Podium {
		cv.Rect(base-b.Height, center+b.Left, b.Height, b.Width, canvas.Fill, true, false)
	}

	stats := Stats{PerLayer: make(map[string]int, len(cfg.Layers))}
	for _, l := range cfg.Layers {
		n := drawLayer(cv, base-l.Rise, l, rng)
		stats.Buildings += n
		stats.PerLayer[l.Name] += n
		r.logger.Debug("drew layer", "layer", l.Name, "buildings", n)
	}
	return cv, stats
}

// leftFromCenter returns the left column of a w-wide span centered on col.
func leftFromCenter(col, w int) int {
	return col - (w-1)/2
}

// drawLandmark stacks the tiers bottom-up with a seam between neighbours and
// finishes with a spire.
func drawLandmark(cv *canvas.Canvas, base, center int, lm Landmark) {
	top := base
	for i, t := range lm.Tiers {
		left := leftFromCenter(center, t.Width)
		top -= t.Height
		cv.Rect(top, left, t.Height, t.Width, canvas.Fill, true, false)
		if i+1 < len(lm.Tiers) {
			top--
			w := max(t.Width, lm.Tiers[i+1].Width)
			seamLeft := leftFromCenter(center, w)
			cv.HLine(top, seamLeft, seamLeft+w-1, canvas.Seam)
		}
	}
	if lm.Spire > 0 {
		cv.VLine(top-lm.Spire, top-1, center, canvas.Mast)
		cv.Set(top-lm.Spire-1, center, canvas.Peak)
	}
}

// drawLayer draws one layer and returns how many presets it placed.
func drawLayer(cv *canvas.Canvas, base int, l Layer, rng *rand.Rand) int {
	if l.Fixed() {
		n := 0
		for _, p := range l.Place {
			if preset, ok := building.Lookup(p.Preset); ok {
				preset.Draw(cv, base, p.Column)
				n++
			}
		}
		return n
	}
	if l.MinGap <= 0 {
		return 0
	}

	// Unvalidated configs are held to the column range so the walk ends.
	start, stop := max(l.Start, MinColumn), min(l.Stop, MaxColumn)
	n := 0
	for col := start; col < stop; col += gap(l, rng) {
		if l.skips(col) {
			continue
		}
		if preset, ok := pick(l, rng); ok {
			preset.Draw(cv, base, col)
			n++
		}
	}
	return n
}

// pick chooses the next preset for a walking layer. A layer with a single
// candidate consumes no randomness.
func pick(l Layer, rng *rand.Rand) (building.Preset, bool) {
	switch len(l.Presets) {
	case 0:
		return building.Random(rng), true
	case 1:
		return building.Lookup(l.Presets[0])
	default:
		return building.Lookup(l.Presets[rng.IntN(len(l.Presets))])
	}
}

func gap(l Layer, rng *rand.Rand) int {
	g := min(l.MinGap, MaxExtent)
	if l.GapJitter > 0 {
		g += min(rng.IntN(l.GapJitter), MaxExtent)
	}
	return min(max(g, 1), MaxExtent)
}
