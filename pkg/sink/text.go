package sink

import (
	"bytes"

	"github.com/matzehuels/skyline/pkg/canvas"
)

// RenderText returns the canvas rows, each followed by a newline.
func RenderText(cv *canvas.Canvas) []byte {
	var buf bytes.Buffer
	buf.Grow(cv.Height() * (cv.Width() + 1))
	_, _ = cv.WriteTo(&buf)
	return buf.Bytes()
}
