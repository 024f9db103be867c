package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/skyline/pkg/canvas"
)

// Monospace glyphs are about 0.6em wide; rows are spaced 1.2em apart.
const (
	charWidthEm  = 0.6
	lineHeightEm = 1.2
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	fontSize   float64
	foreground string
	background string
}

// WithFontSize sets the font size in pixels (default 14).
func WithFontSize(px float64) SVGOption {
	return func(r *svgRenderer) {
		if px > 0 {
			r.fontSize = px
		}
	}
}

// WithColors sets the text and background colors. An empty background leaves
// the image transparent.
func WithColors(fg, bg string) SVGOption {
	return func(r *svgRenderer) { r.foreground, r.background = fg, bg }
}

// RenderSVG draws each canvas row as a preformatted monospace text line.
func RenderSVG(cv *canvas.Canvas, opts ...SVGOption) []byte {
	r := svgRenderer{fontSize: 14, foreground: "#222222", background: "#ffffff"}
	for _, opt := range opts {
		opt(&r)
	}

	lineH := r.fontSize * lineHeightEm
	width := float64(cv.Width()) * r.fontSize * charWidthEm
	height := float64(cv.Height()) * lineH

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.background)
	}
	fmt.Fprintf(&buf, `  <g font-family="monospace" font-size="%.1f" fill="%s" xml:space="preserve" style="white-space:pre">`+"\n",
		r.fontSize, r.foreground)

	for i, line := range cv.Lines() {
		fmt.Fprintf(&buf, `    <text x="0" y="%.1f">`, float64(i)*lineH+r.fontSize)
		xml.EscapeText(&buf, []byte(line))
		buf.WriteString("</text>\n")
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}
