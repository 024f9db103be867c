package canvas

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		h, w  int
		wantH int
		wantW int
	}{
		{"regular", 4, 7, 4, 7},
		{"zero height", 0, 5, 0, 5},
		{"negative width", 3, -2, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cv := New(tt.h, tt.w, Blank)
			if cv.Height() != tt.wantH || cv.Width() != tt.wantW {
				t.Errorf("New(%d, %d) size = %dx%d, want %dx%d",
					tt.h, tt.w, cv.Height(), cv.Width(), tt.wantH, tt.wantW)
			}
		})
	}
}

func TestSetOutOfBounds(t *testing.T) {
	cv := New(5, 8, Blank)
	before := cv.Clone()

	coords := [][2]int{
		{-1, 0}, {0, -1}, {5, 0}, {0, 8}, {5, 8},
		{-100, -100}, {100, 100}, {2, 8}, {-1, 4},
	}
	for _, rc := range coords {
		cv.Set(rc[0], rc[1], '#')
	}

	if !cv.Equal(before) {
		t.Errorf("out-of-bounds writes changed the grid:\n%s", cv)
	}
}

func TestSetInBounds(t *testing.T) {
	cv := New(3, 3, Blank)
	cv.Set(1, 2, '#')

	if got := cv.At(1, 2); got != '#' {
		t.Errorf("At(1, 2) = %q, want '#'", got)
	}
	if got := cv.At(3, 0); got != 0 {
		t.Errorf("At(3, 0) = %q, want 0", got)
	}
}

func TestLinesSymmetricUnderSwap(t *testing.T) {
	tests := []struct {
		name   string
		a, b   int
		across int
	}{
		{"ordered", 2, 9, 3},
		{"reversed", 9, 2, 3},
		{"single cell", 4, 4, 0},
		{"clipped", -5, 30, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h1, h2 := New(10, 12, Blank), New(10, 12, Blank)
			h1.HLine(tt.across, tt.a, tt.b, '-')
			h2.HLine(tt.across, tt.b, tt.a, '-')
			if diff := cmp.Diff(h1.Lines(), h2.Lines()); diff != "" {
				t.Errorf("HLine not symmetric (-forward +reversed):\n%s", diff)
			}

			v1, v2 := New(12, 10, Blank), New(12, 10, Blank)
			v1.VLine(tt.a, tt.b, tt.across, '|')
			v2.VLine(tt.b, tt.a, tt.across, '|')
			if diff := cmp.Diff(v1.Lines(), v2.Lines()); diff != "" {
				t.Errorf("VLine not symmetric (-forward +reversed):\n%s", diff)
			}
		})
	}
}

func TestHLineClipped(t *testing.T) {
	cv := New(2, 5, Blank)
	cv.HLine(1, -3, 10, '-')

	want := []string{"     ", "-----"}
	if diff := cmp.Diff(want, cv.Lines()); diff != "" {
		t.Errorf("HLine clipped (-want +got):\n%s", diff)
	}
}

func TestRectPlain(t *testing.T) {
	cv := New(6, 7, Blank)
	cv.Rect(1, 1, 4, 5, Fill, false, false)

	want := []string{
		"       ",
		" |===| ",
		" |###| ",
		" |###| ",
		" |===| ",
		"       ",
	}
	if diff := cmp.Diff(want, cv.Lines()); diff != "" {
		t.Errorf("Rect (-want +got):\n%s", diff)
	}
}

func TestRectWindows(t *testing.T) {
	cv := New(5, 8, Blank)
	cv.Rect(0, 0, 5, 8, Fill, true, false)

	want := []string{
		"|======|",
		"|######|",
		"|.##.##|",
		"|######|",
		"|======|",
	}
	if diff := cmp.Diff(want, cv.Lines()); diff != "" {
		t.Errorf("Rect with windows (-want +got):\n%s", diff)
	}
}

func TestRectRibs(t *testing.T) {
	cv := New(4, 14, Blank)
	cv.Rect(0, 0, 4, 14, Fill, true, true)

	want := []string{
		"|============|",
		"|#####|#####||",
		"|.##.#|.##.#||",
		"|============|",
	}
	if diff := cmp.Diff(want, cv.Lines()); diff != "" {
		t.Errorf("Rect with ribs (-want +got):\n%s", diff)
	}
}

func TestRectBorderPrecedence(t *testing.T) {
	flags := []struct{ windows, ribs bool }{
		{false, false}, {true, false}, {false, true}, {true, true},
	}
	sizes := []struct{ top, left, h, w int }{
		{2, 3, 6, 9}, {0, 0, 3, 3}, {1, 2, 11, 20}, {4, 1, 2, 2},
	}

	for _, f := range flags {
		for _, s := range sizes {
			cv := New(20, 30, Blank)
			cv.Rect(s.top, s.left, s.h, s.w, Fill, f.windows, f.ribs)

			bottom, right := s.top+s.h-1, s.left+s.w-1
			for j := s.left + 1; j < right; j++ {
				if cv.At(s.top, j) != EdgeH || cv.At(bottom, j) != EdgeH {
					t.Fatalf("rect %+v flags %+v: row edge at col %d not %q", s, f, j, EdgeH)
				}
			}
			for i := s.top; i <= bottom; i++ {
				if cv.At(i, s.left) != EdgeV || cv.At(i, right) != EdgeV {
					t.Fatalf("rect %+v flags %+v: column edge at row %d not %q", s, f, i, EdgeV)
				}
			}
		}
	}
}

func TestRectIdempotent(t *testing.T) {
	once := New(15, 25, Blank)
	once.Rect(3, 4, 9, 16, Fill, true, true)

	twice := New(15, 25, Blank)
	twice.Rect(3, 4, 9, 16, Fill, true, true)
	twice.Rect(3, 4, 9, 16, Fill, true, true)

	if !once.Equal(twice) {
		t.Errorf("drawing the same rect twice differs from drawing it once")
	}
}

func TestRectPartiallyOffCanvas(t *testing.T) {
	cv := New(3, 3, Blank)
	cv.Rect(-2, -2, 4, 4, Fill, false, false)

	want := []string{"#| ", "=| ", "   "}
	if diff := cmp.Diff(want, cv.Lines()); diff != "" {
		t.Errorf("clipped Rect (-want +got):\n%s", diff)
	}
}

func TestExtremeCoordinates(t *testing.T) {
	cv := New(3, 4, Blank)
	cv.HLine(0, math.MinInt, math.MaxInt, Seam)
	cv.VLine(math.MaxInt, math.MinInt, 3, Mast)
	cv.Rect(1, 0, 1<<40, 1<<40, Fill, false, false)

	want := []string{"---|", "|===", "|###"}
	if diff := cmp.Diff(want, cv.Lines()); diff != "" {
		t.Errorf("extreme coordinates (-want +got):\n%s", diff)
	}
}

func TestWriteToBlank(t *testing.T) {
	const h, w = 4, 6
	cv := New(h, w, Blank)

	var buf bytes.Buffer
	n, err := cv.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo error: %v", err)
	}
	if n != int64(h*(w+1)) {
		t.Errorf("WriteTo wrote %d bytes, want %d", n, h*(w+1))
	}

	want := strings.Repeat(strings.Repeat(" ", w)+"\n", h)
	if buf.String() != want {
		t.Errorf("WriteTo output = %q, want %q", buf.String(), want)
	}
	if cv.String() != want {
		t.Errorf("String() = %q, want %q", cv.String(), want)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("boom") }

func TestPrintPropagatesError(t *testing.T) {
	cv := New(2, 2, Blank)
	if err := cv.Print(failingWriter{}); err == nil {
		t.Error("Print should return the writer's error")
	}
}

func TestCloneIndependent(t *testing.T) {
	cv := New(2, 2, Blank)
	cp := cv.Clone()
	cp.Set(0, 0, '#')

	if cv.At(0, 0) != Blank {
		t.Error("writing to a clone changed the original")
	}
	if cv.Equal(cp) {
		t.Error("Equal should report differing content")
	}
}

func TestCount(t *testing.T) {
	cv := New(3, 4, Blank)
	cv.HLine(1, 0, 3, Ground)
	if got := cv.Count(Ground); got != 4 {
		t.Errorf("Count(Ground) = %d, want 4", got)
	}
	if got := cv.Count(Blank); got != 8 {
		t.Errorf("Count(Blank) = %d, want 8", got)
	}
}
