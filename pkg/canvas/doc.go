// Package canvas provides a fixed-size character grid with bounded drawing
// primitives.
//
// # Overview
//
// A [Canvas] is the raster that every skyline is drawn onto. It behaves like a
// tiny immediate-mode rasterizer that works on characters instead of pixels:
// callers issue point, line and rectangle writes and the canvas stores the
// resulting bytes. Nothing about a drawn shape is retained beyond the
// characters it left behind.
//
// # Clipping
//
// The canvas never grows and never reports an error. Any write whose
// coordinates fall outside [0, Height) × [0, Width) is dropped. This makes every
// primitive total over arbitrary integer input, so callers may draw shapes that
// hang off an edge without checking bounds themselves:
//
//	cv := canvas.New(10, 20, canvas.Blank)
//	cv.Set(-1, 5, '#')          // ignored
//	cv.HLine(3, -100, 100, '-') // clipped to columns 0..19
//
// # Rectangles
//
// [Canvas.Rect] fills a block, optionally overlays a window grid and vertical
// ribs, and finally draws its border. Borders are written last so they always
// win over interior patterns:
//
//	=====        top and bottom rows use [EdgeH]
//	|.#.|        left and right columns use [EdgeV]
//	|###|        windows use [Window], ribs use [Rib]
//	|=#=|
//
// Corners belong to the columns, so a rectangle's corners are [EdgeV].
//
// # Output
//
// [Canvas.WriteTo] emits one newline-terminated line per row, top row first.
// [Canvas.Lines] and [Canvas.String] expose the same content for sinks and tests.
package canvas
