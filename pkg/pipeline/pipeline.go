// Package pipeline runs config → scene → artifacts with caching. The CLI and
// the HTTP server both go through a [Runner] so they render identically.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Config:  scene.DefaultConfig(),
//	    Seed:    scene.SeedOf(7),
//	    Formats: []string{pipeline.FormatText, pipeline.FormatSVG},
//	})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(result.Artifacts[pipeline.FormatText])
//
// Artifacts are cached under a hash of the fully defaulted scene config (seed
// included) and the per-format render options, so any change to the picture
// changes the key.
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/skyline/pkg/cache"
	"github.com/matzehuels/skyline/pkg/canvas"
	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/scene"
	"github.com/matzehuels/skyline/pkg/sink"
)

// Format constants for output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// DefaultFormat is used when no format is requested.
const DefaultFormat = FormatText

// MaxScale caps the PNG pixel scale. Larger canvases are further limited by
// [sink.MaxPNGPixels].
const MaxScale = 8

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatJSON: true,
	FormatSVG:  true,
	FormatPNG:  true,
}

var contentTypes = map[string]string{
	FormatText: "text/plain; charset=utf-8",
	FormatJSON: "application/json",
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
}

// Extensions maps formats to output file extensions.
var Extensions = map[string]string{
	FormatText: ".txt",
	FormatJSON: ".json",
	FormatSVG:  ".svg",
	FormatPNG:  ".png",
}

// ContentType returns the MIME type for format.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// FormatNames returns the supported formats, sorted.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Options configures one pipeline run.
type Options struct {
	// Config is the scene to draw. Zero fields take scene defaults.
	Config scene.Config `json:"config"`
	// Seed overrides Config.Seed when set. After validation it holds the
	// seed the scene is drawn with.
	Seed    *uint64  `json:"seed,omitempty"`
	Formats []string `json:"formats,omitempty"`

	// Scale enlarges PNG output; FontSize sets the SVG font size in pixels.
	Scale    int     `json:"scale,omitempty"`
	FontSize float64 `json:"font_size,omitempty"`

	// Refresh skips the cache lookup; fresh artifacts are still stored.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults resolves the scene config and checks every option.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 || o.FontSize < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale and font size must not be negative")
	}
	if o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale %d exceeds the maximum of %d", o.Scale, MaxScale)
	}

	cfg := o.Config
	if o.Seed != nil {
		cfg.Seed = scene.SeedOf(*o.Seed)
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if slices.Contains(o.Formats, FormatPNG) {
		if w, h := sink.PNGSize(cfg.Width, cfg.Height, o.Scale); w*h > sink.MaxPNGPixels {
			return errors.New(errors.ErrCodeInvalidInput,
				"png of %dx%d pixels is too large; lower the scale or canvas size", w, h)
		}
	}
	o.Config = cfg
	o.Seed = scene.SeedOf(cfg.SeedValue())

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatPNG:
		opts.Scale = o.Scale
	case FormatSVG:
		opts.FontSize = o.FontSize
	}
	return opts
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RenderID identifies this run in logs and HTTP responses.
	RenderID string
	// Seed is the seed the scene was drawn with.
	Seed uint64
	// SceneHash fingerprints the resolved config.
	SceneHash string
	// Canvas is the drawn scene; nil when every artifact came from the cache.
	Canvas *canvas.Canvas
	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains run statistics.
type Stats struct {
	Scene      scene.Stats
	DrawTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo reports whether the artifacts came from the cache.
type CacheInfo struct {
	RenderHit bool
}
