package sink

import (
	"encoding/json"

	"github.com/matzehuels/skyline/pkg/canvas"
	"github.com/matzehuels/skyline/pkg/scene"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	seed  *uint64
	stats *scene.Stats
}

// WithJSONSeed records the seed the scene was drawn with.
func WithJSONSeed(seed uint64) JSONOption { return func(r *jsonRenderer) { r.seed = &seed } }

// WithJSONStats includes building counts.
func WithJSONStats(s scene.Stats) JSONOption { return func(r *jsonRenderer) { r.stats = &s } }

type jsonOutput struct {
	Seed      *uint64        `json:"seed,omitempty"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Buildings int            `json:"buildings,omitempty"`
	PerLayer  map[string]int `json:"per_layer,omitempty"`
	Lines     []string       `json:"lines"`
}

// RenderJSON exports the canvas rows with their dimensions.
func RenderJSON(cv *canvas.Canvas, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Seed:   r.seed,
		Width:  cv.Width(),
		Height: cv.Height(),
		Lines:  cv.Lines(),
	}
	if r.stats != nil {
		out.Buildings = r.stats.Buildings
		out.PerLayer = r.stats.PerLayer
	}
	return json.MarshalIndent(out, "", "  ")
}
