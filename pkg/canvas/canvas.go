package canvas

import (
	"bytes"
	"io"
)

// Characters used by the drawing primitives and the building composer.
const (
	Blank  byte = ' '
	Fill   byte = '#'
	Window byte = '.'
	Rib    byte = '|'
	EdgeH  byte = '='
	EdgeV  byte = '|'
	Seam   byte = '-'
	Mast   byte = '|'
	Peak   byte = '^'
	Ground byte = '_'
	Beacon byte = 'o'
)

// Alphabet lists every character a skyline may contain.
const Alphabet = " #=|-.^_o"

// Canvas is a height × width grid of single-byte characters.
// It is not safe for concurrent use.
type Canvas struct {
	h, w int
	rows [][]byte
}

// New returns a canvas of the given size with every cell set to fill.
// Non-positive dimensions yield an empty canvas that ignores all writes.
func New(height, width int, fill byte) *Canvas {
	height, width = max(height, 0), max(width, 0)
	rows := make([][]byte, height)
	for i := range rows {
		rows[i] = bytes.Repeat([]byte{fill}, width)
	}
	return &Canvas{h: height, w: width, rows: rows}
}

func (c *Canvas) Height() int { return c.h }
func (c *Canvas) Width() int  { return c.w }

// In reports whether (row, col) lies inside the canvas.
func (c *Canvas) In(row, col int) bool {
	return row >= 0 && row < c.h && col >= 0 && col < c.w
}

// At returns the character at (row, col), or 0 when out of bounds.
func (c *Canvas) At(row, col int) byte {
	if !c.In(row, col) {
		return 0
	}
	return c.rows[row][col]
}

// Set writes ch at (row, col). Out-of-bounds writes are ignored.
func (c *Canvas) Set(row, col int, ch byte) {
	if c.In(row, col) {
		c.rows[row][col] = ch
	}
}

// HLine fills columns c1..c2 (inclusive, either order) of row with ch.
func (c *Canvas) HLine(row, c1, c2 int, ch byte) {
	if row < 0 || row >= c.h {
		return
	}
	if c1 > c2 {
		c1, c2 = c2, c1
	}
	for col := max(c1, 0); col <= min(c2, c.w-1); col++ {
		c.rows[row][col] = ch
	}
}

// VLine fills rows r1..r2 (inclusive, either order) of col with ch.
func (c *Canvas) VLine(r1, r2, col int, ch byte) {
	if col < 0 || col >= c.w {
		return
	}
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	for row := max(r1, 0); row <= min(r2, c.h-1); row++ {
		c.rows[row][col] = ch
	}
}

// Rect draws an h × w block with its top-left corner at (top, left).
//
// The interior is filled with fill. When windows is set, every even local row
// gets a [Window] at every third column starting at 1. When ribs is set, every
// sixth local column starting at 0 becomes a [Rib]; ribs overwrite windows.
// The border is drawn last: [EdgeH] across the top and bottom rows, then [EdgeV]
// down the left and right columns. Only cells on the canvas are visited.
func (c *Canvas) Rect(top, left, h, w int, fill byte, windows, ribs bool) {
	if h <= 0 || w <= 0 {
		return
	}
	bottom, right := top+h-1, left+w-1
	for row := max(top, 0); row <= min(bottom, c.h-1); row++ {
		i := row - top
		for col := max(left, 0); col <= min(right, c.w-1); col++ {
			j := col - left
			ch := fill
			if windows && i%2 == 0 && j%3 == 1 {
				ch = Window
			}
			if ribs && j%6 == 0 {
				ch = Rib
			}
			c.rows[row][col] = ch
		}
	}
	c.HLine(top, left, right, EdgeH)
	c.HLine(bottom, left, right, EdgeH)
	c.VLine(top, bottom, left, EdgeV)
	c.VLine(top, bottom, right, EdgeV)
}

// Lines returns a copy of every row as a string, top row first.
func (c *Canvas) Lines() []string {
	lines := make([]string, c.h)
	for i, row := range c.rows {
		lines[i] = string(row)
	}
	return lines
}

// String returns the grid as newline-terminated rows.
func (c *Canvas) String() string {
	var buf bytes.Buffer
	_, _ = c.WriteTo(&buf)
	return buf.String()
}

// WriteTo writes each row followed by a newline, top row first.
func (c *Canvas) WriteTo(w io.Writer) (int64, error) {
	var total int64
	line := make([]byte, 0, c.w+1)
	for _, row := range c.rows {
		line = append(append(line[:0], row...), '\n')
		n, err := w.Write(line)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Print writes the grid to w. It is shorthand for WriteTo that drops the count.
func (c *Canvas) Print(w io.Writer) error {
	_, err := c.WriteTo(w)
	return err
}

// Clone returns an independent copy of the canvas.
func (c *Canvas) Clone() *Canvas {
	rows := make([][]byte, c.h)
	for i, row := range c.rows {
		rows[i] = bytes.Clone(row)
	}
	return &Canvas{h: c.h, w: c.w, rows: rows}
}

// Equal reports whether two canvases have the same size and content.
func (c *Canvas) Equal(other *Canvas) bool {
	if other == nil || c.h != other.h || c.w != other.w {
		return false
	}
	for i := range c.rows {
		if !bytes.Equal(c.rows[i], other.rows[i]) {
			return false
		}
	}
	return true
}

// Count returns how many cells hold ch.
func (c *Canvas) Count(ch byte) int {
	n := 0
	for _, row := range c.rows {
		n += bytes.Count(row, []byte{ch})
	}
	return n
}
