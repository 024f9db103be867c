// Package sink turns a finished [canvas.Canvas] into bytes for a given
// output format.
//
// # Formats
//
//   - text: the rows joined with newlines, exactly what the terminal shows
//   - JSON: the rows plus size, seed and building counts
//   - SVG: one monospace <text> element per row
//   - PNG: the rows drawn with a fixed 7x13 bitmap font
//
// Each renderer takes functional options:
//
//	data, err := sink.RenderJSON(cv, sink.WithJSONSeed(42), sink.WithJSONStats(stats))
//	svg := sink.RenderSVG(cv, sink.WithFontSize(12))
//	png, err := sink.RenderPNG(cv, sink.WithScale(2))
//
// None of the renderers modify the canvas, and all of them are deterministic:
// the same canvas and options always produce the same bytes.
//
// [canvas.Canvas]: github.com/matzehuels/skyline/pkg/canvas.Canvas
package sink
