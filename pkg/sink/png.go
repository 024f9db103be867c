package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/skyline/pkg/canvas"
	"github.com/matzehuels/skyline/pkg/errors"
)

// Cell size of basicfont.Face7x13.
const (
	cellW  = 7
	cellH  = 13
	ascent = 11
)

// MaxPNGPixels bounds the area of a rendered PNG (256 MiB of RGBA).
const MaxPNGPixels = 1 << 26

// PNGSize returns the pixel size of a width x height canvas at scale.
func PNGSize(width, height, scale int) (int, int) {
	scale = max(scale, 1)
	return max(width, 1) * cellW * scale, max(height, 1) * cellH * scale
}

// PNGOption configures PNG rendering via [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      int
	foreground color.Color
	background color.Color
}

// WithScale enlarges the image by an integer factor (default 1).
func WithScale(s int) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithPNGColors sets the glyph and background colors.
func WithPNGColors(fg, bg color.Color) PNGOption {
	return func(r *pngRenderer) { r.foreground, r.background = fg, bg }
}

// RenderPNG rasterizes the canvas with a 7x13 bitmap font, one cell per
// character.
func RenderPNG(cv *canvas.Canvas, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1, foreground: color.Black, background: color.White}
	for _, opt := range opts {
		opt(&r)
	}

	if w, h := PNGSize(cv.Width(), cv.Height(), r.scale); w*h > MaxPNGPixels {
		return nil, errors.New(errors.ErrCodeInvalidSize, "png of %dx%d pixels is too large", w, h)
	}

	img := rasterize(cv, r.foreground, r.background)
	var out image.Image = img
	if r.scale > 1 {
		b := img.Bounds()
		dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*r.scale, b.Dy()*r.scale))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		out = dst
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func rasterize(cv *canvas.Canvas, fg, bg color.Color) *image.RGBA {
	w, h := max(cv.Width(), 1), max(cv.Height(), 1)
	img := image.NewRGBA(image.Rect(0, 0, w*cellW, h*cellH))
	draw.Draw(img, img.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{fg},
		Face: basicfont.Face7x13,
	}
	for i, line := range cv.Lines() {
		d.Dot = fixed.P(0, i*cellH+ascent)
		d.DrawString(line)
	}
	return img
}
