package building

import "github.com/matzehuels/skyline/pkg/canvas"

// Edge distances kept between a shaft and the canvas sides.
const (
	marginLeft  = 2
	marginRight = 3
)

// ribMinWidth is the narrowest shaft that gets vertical ribs.
const ribMinWidth = 14

// Spec describes one building: a shaft resting on BaseRow, centered on
// Center, optionally topped by a setback, a crown and antenna masts.
// A setback is drawn only when both StepW and StepH are positive.
type Spec struct {
	BaseRow int
	Center  int
	ShaftW  int
	ShaftH  int
	StepW   int
	StepH   int
	Crown   bool
	Antenna bool
}

// HasSetback reports whether the spec asks for a setback tier.
func (s Spec) HasSetback() bool { return s.StepW > 0 && s.StepH > 0 }

// ClampCenter keeps a shaft of width shaftW at least two columns from the left
// edge and three from the right edge of a canvas that is width columns wide.
// The lower bound is applied first, so on a canvas too narrow for the range
// the upper bound wins.
func ClampCenter(width, shaftW, center int) int {
	lo := marginLeft + shaftW/2
	hi := width - marginRight - shaftW/2
	if center < lo {
		center = lo
	}
	if center > hi {
		center = hi
	}
	return center
}

// Compose draws s onto cv. Drawing is deterministic: the same spec on the
// same canvas always produces the same cells.
func Compose(cv *canvas.Canvas, s Spec) {
	center := ClampCenter(cv.Width(), s.ShaftW, s.Center)
	left := center - s.ShaftW/2
	top := s.BaseRow - s.ShaftH
	cv.Rect(top, left, s.ShaftH, s.ShaftW, canvas.Fill, true, s.ShaftW >= ribMinWidth)

	switch {
	case s.HasSetback():
		seam := top - 1
		cv.HLine(seam, left, left+s.ShaftW-1, canvas.Seam)

		stepLeft := left + (s.ShaftW-s.StepW)/2
		stepTop := seam - s.StepH
		cv.Rect(stepTop, stepLeft, s.StepH, s.StepW, canvas.Fill, true, false)

		if !s.Crown || s.StepW <= 6 {
			return
		}
		cW, cH := s.StepW-4, max(2, s.StepH/2)
		cLeft := stepLeft + (s.StepW-cW)/2
		cTop := stepTop - cH
		cv.Rect(cTop, cLeft, cH, cW, canvas.Fill, true, false)

		if s.Antenna {
			base := cTop - 1
			mast(cv, base, 4, cLeft+cW/3)
			mast(cv, base, 6, cLeft+2*cW/3)
		}

	case s.Crown:
		cW, cH := max(6, s.ShaftW-6), max(2, s.ShaftH/8)
		cLeft := left + (s.ShaftW-cW)/2
		cTop := top - cH - 1
		cv.HLine(top-1, left, left+s.ShaftW-1, canvas.Seam)
		cv.Rect(cTop, cLeft, cH, cW, canvas.Fill, true, false)

		if s.Antenna {
			mast(cv, cTop-1, 5, cLeft+cW/2)
		}
	}
}

// mast draws a stalk rising from base with its peak marker height rows above.
func mast(cv *canvas.Canvas, base, height, col int) {
	cv.VLine(base-height+1, base, col, canvas.Mast)
	cv.Set(base-height, col, canvas.Peak)
}
