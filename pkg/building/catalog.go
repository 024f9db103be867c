package building

import (
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/skyline/pkg/canvas"
)

// DrawFunc draws a preset whose base rests on baseRow around column center.
type DrawFunc func(cv *canvas.Canvas, baseRow, center int)

// Preset is a named, fixed parameterization of [Compose].
type Preset struct {
	Name        string
	Description string
	Draw        DrawFunc
}

// Preset names, in catalog order.
const (
	TinyBox           = "tiny-box"
	SmallRibbed       = "small-ribbed"
	MediumCrown       = "medium-crown"
	MediumStepAntenna = "medium-step-antenna"
	WideBlock         = "wide-block"
	WideStep          = "wide-step"
	TallSlim          = "tall-slim"
	TallRibbed        = "tall-ribbed"
	DoubleStep        = "double-step"
	Ziggurat3         = "ziggurat-3"
	Ziggurat4         = "ziggurat-4"
	CrownOnly         = "crown-only"
	AntennaOnly       = "antenna-only"
	Pyramid           = "pyramid"
	LLeft             = "l-left"
	LRight            = "l-right"
	Needle            = "needle"
	Campus            = "campus"
	GlassTower        = "glass-tower"
	Industrial        = "industrial"
	LowRise           = "low-rise"
	MidRise           = "mid-rise"
	HighRise          = "high-rise"
)

// box draws a building without a setback.
func box(shaftW, shaftH int, crown, antenna bool) DrawFunc {
	return func(cv *canvas.Canvas, baseRow, center int) {
		Compose(cv, Spec{BaseRow: baseRow, Center: center, ShaftW: shaftW, ShaftH: shaftH, Crown: crown, Antenna: antenna})
	}
}

// stepped draws a crowned building with a setback.
func stepped(shaftW, shaftH, stepW, stepH int, antenna bool) DrawFunc {
	return func(cv *canvas.Canvas, baseRow, center int) {
		Compose(cv, Spec{
			BaseRow: baseRow, Center: center,
			ShaftW: shaftW, ShaftH: shaftH,
			StepW: stepW, StepH: stepH,
			Crown: true, Antenna: antenna,
		})
	}
}

// tier is one stage of a compound preset, offset from the preset's anchor.
type tier struct {
	rise, shift int
	draw        DrawFunc
}

// stack draws tiers in order; each tier sits rise rows above the base and
// shift columns beside the center.
func stack(tiers ...tier) DrawFunc {
	return func(cv *canvas.Canvas, baseRow, center int) {
		for _, t := range tiers {
			t.draw(cv, baseRow-t.rise, center+t.shift)
		}
	}
}

func glassTower(cv *canvas.Canvas, baseRow, center int) {
	box(10, 22, true, false)(cv, baseRow, center)
	for i := 2; i < 20; i += 3 {
		cv.HLine(baseRow-i, center-4, center+4, canvas.Window)
	}
}

func industrial(cv *canvas.Canvas, baseRow, center int) {
	stack(
		tier{0, 0, box(20, 8, false, false)},
		tier{9, -5, box(8, 6, false, false)},
		tier{9, 5, box(8, 6, false, false)},
	)(cv, baseRow, center)
	for _, col := range []int{center - 2, center + 2} {
		cv.VLine(baseRow-18, baseRow-9, col, canvas.Mast)
		cv.Set(baseRow-19, col, canvas.Beacon)
	}
}

var catalog = []Preset{
	{TinyBox, "6x8 box with a crown", box(6, 8, true, false)},
	{SmallRibbed, "10x14 box with a crown", box(10, 14, true, false)},
	{MediumCrown, "12x18 box with a crown", box(12, 18, true, false)},
	{MediumStepAntenna, "12x16 shaft, 8x4 setback, crown and twin masts", stepped(12, 16, 8, 4, true)},
	{WideBlock, "24x10 block with a crown", box(24, 10, true, false)},
	{WideStep, "26x12 ribbed shaft with a 16x3 setback and crown", stepped(26, 12, 16, 3, false)},
	{TallSlim, "6x32 slim tower with a crown", box(6, 32, true, false)},
	{TallRibbed, "14x28 ribbed tower with a crown", box(14, 28, true, false)},
	{DoubleStep, "two stacked setback towers", stack(
		tier{0, 0, stepped(18, 18, 12, 4, false)},
		tier{22, 0, stepped(12, 10, 8, 3, false)},
	)},
	{Ziggurat3, "three narrowing tiers with a mast", stack(
		tier{0, 0, box(20, 12, true, false)},
		tier{13, 0, box(14, 9, true, false)},
		tier{23, 0, box(8, 7, true, true)},
	)},
	{Ziggurat4, "four narrowing tiers with a mast", stack(
		tier{0, 0, box(28, 10, true, false)},
		tier{11, 0, box(22, 8, true, false)},
		tier{20, 0, box(16, 7, true, false)},
		tier{28, 0, box(10, 6, true, true)},
	)},
	{CrownOnly, "12x14 box with a crown", box(12, 14, true, false)},
	{AntennaOnly, "8x16 shaft without a crown", box(8, 16, false, true)},
	{Pyramid, "three small narrowing tiers with a mast", stack(
		tier{0, 0, box(16, 10, true, false)},
		tier{11, 0, box(12, 8, true, false)},
		tier{20, 0, box(8, 6, true, true)},
	)},
	{LLeft, "tower with a low wing on the left", stack(
		tier{0, 0, box(14, 18, true, false)},
		tier{0, -7, box(8, 10, true, false)},
	)},
	{LRight, "tower with a low wing on the right", stack(
		tier{0, 0, box(14, 18, true, false)},
		tier{0, 7, box(8, 10, true, false)},
	)},
	{Needle, "6x26 needle with a mast", box(6, 26, true, true)},
	{Campus, "three low buildings side by side", stack(
		tier{0, -10, box(12, 8, true, false)},
		tier{0, 0, box(16, 8, true, false)},
		tier{0, 10, box(12, 8, true, false)},
	)},
	{GlassTower, "10x22 tower with window bands", glassTower},
	{Industrial, "plant with two sheds and beaconed pipes", industrial},
	{LowRise, "16x6 bare block", box(16, 6, false, false)},
	{MidRise, "14x12 ribbed block with a crown", box(14, 12, true, false)},
	{HighRise, "12x20 tower with a crown and mast", box(12, 20, true, true)},
}

// Catalog returns every preset in dispatch order.
func Catalog() []Preset {
	return slices.Clone(catalog)
}

// Len returns the number of presets.
func Len() int { return len(catalog) }

// Names returns preset names in dispatch order.
func Names() []string {
	names := make([]string, len(catalog))
	for i, p := range catalog {
		names[i] = p.Name
	}
	return names
}

// Lookup returns the preset called name.
func Lookup(name string) (Preset, bool) {
	i := slices.IndexFunc(catalog, func(p Preset) bool { return p.Name == name })
	if i < 0 {
		return Preset{}, false
	}
	return catalog[i], true
}

// Random picks a preset uniformly using rng.
func Random(rng *rand.Rand) Preset {
	return catalog[rng.IntN(len(catalog))]
}
