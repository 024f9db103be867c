package scene

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/skyline/pkg/building"
	"github.com/matzehuels/skyline/pkg/errors"
)

// Default values for a scene.
const (
	DefaultWidth  = 200
	DefaultHeight = 100
	DefaultSeed   = uint64(42)

	// MaxWidth and MaxHeight bound the canvas a config may request.
	MaxWidth  = 1000
	MaxHeight = 500

	// Buildings may stand partly off canvas, so columns reach one maximum
	// canvas width past either edge. MaxExtent bounds every size and gap.
	MinColumn = -MaxWidth
	MaxColumn = 2 * MaxWidth
	MaxExtent = MaxColumn - MinColumn
)

// Config describes a whole skyline: canvas size, seed, the landmark and its
// podium, and the ordered layers of buildings drawn around them.
type Config struct {
	Width    int      `toml:"width" yaml:"width" json:"width"`
	Height   int      `toml:"height" yaml:"height" json:"height"`
	// Seed is nil when unset; zero is a valid seed.
	Seed     *uint64  `toml:"seed" yaml:"seed" json:"seed"`
	Landmark Landmark `toml:"landmark" yaml:"landmark" json:"landmark"`
	Podium   []Block  `toml:"podium" yaml:"podium" json:"podium"`
	Layers   []Layer  `toml:"layer" yaml:"layers" json:"layers"`
}

// Landmark is the central stepped tower.
type Landmark struct {
	// Skip leaves the landmark out; otherwise an empty landmark takes the default.
	Skip bool `toml:"skip" yaml:"skip" json:"skip,omitempty"`
	// Center is the landmark column; nil means the middle of the canvas.
	Center *int   `toml:"center" yaml:"center" json:"center,omitempty"`
	Tiers  []Tier `toml:"tier" yaml:"tiers" json:"tiers"`
	Spire  int    `toml:"spire" yaml:"spire" json:"spire"`
}

// Tier is one landmark stage, listed bottom first.
type Tier struct {
	Width  int `toml:"width" yaml:"width" json:"width"`
	Height int `toml:"height" yaml:"height" json:"height"`
}

// Block is a windowed rectangle resting on the base row. Left is relative to
// the landmark center.
type Block struct {
	Left   int `toml:"left" yaml:"left" json:"left"`
	Width  int `toml:"width" yaml:"width" json:"width"`
	Height int `toml:"height" yaml:"height" json:"height"`
}

// Layer is one pass of buildings. A layer with Place entries draws those
// presets at fixed columns; otherwise it walks columns from Start while below
// Stop, drawing a preset and advancing by MinGap plus up to GapJitter-1.
type Layer struct {
	Name string `toml:"name" yaml:"name" json:"name"`
	// Rise lifts the layer's base row above the scene base row.
	Rise      int         `toml:"rise" yaml:"rise" json:"rise,omitempty"`
	Start     int         `toml:"start" yaml:"start" json:"start,omitempty"`
	Stop      int         `toml:"stop" yaml:"stop" json:"stop,omitempty"`
	MinGap    int         `toml:"min_gap" yaml:"min_gap" json:"min_gap,omitempty"`
	GapJitter int         `toml:"gap_jitter" yaml:"gap_jitter" json:"gap_jitter,omitempty"`
	SkipFrom  int         `toml:"skip_from" yaml:"skip_from" json:"skip_from,omitempty"`
	SkipTo    int         `toml:"skip_to" yaml:"skip_to" json:"skip_to,omitempty"`
	Presets   []string    `toml:"presets" yaml:"presets" json:"presets,omitempty"`
	Place     []Placement `toml:"place" yaml:"place" json:"place,omitempty"`
}

// Placement pins a preset to a column.
type Placement struct {
	Preset string `toml:"preset" yaml:"preset" json:"preset"`
	Column int    `toml:"column" yaml:"column" json:"column"`
}

// Fixed reports whether the layer places presets at fixed columns.
func (l Layer) Fixed() bool { return len(l.Place) > 0 }

func (l Layer) skips(col int) bool {
	return l.SkipTo > l.SkipFrom && col >= l.SkipFrom && col <= l.SkipTo
}

// DefaultConfig returns the stock downtown skyline on a 200x100 canvas.
func DefaultConfig() Config {
	return Config{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Seed:   SeedOf(DefaultSeed),
		Landmark: Landmark{
			Tiers: []Tier{
				{64, 10}, {54, 10}, {46, 9}, {38, 9}, {30, 8}, {24, 7},
				{20, 6}, {16, 6}, {12, 5}, {9, 4}, {6, 4}, {4, 4},
			},
			Spire: 22,
		},
		Podium: []Block{
			{Left: -39, Width: 80, Height: 6},
			{Left: -51, Width: 14, Height: 8},
			{Left: 39, Width: 14, Height: 9},
		},
		Layers: []Layer{
			{Name: "west", Start: 5, Stop: 86, MinGap: 8, GapJitter: 12},
			{Name: "east", Start: 115, Stop: 195, MinGap: 8, GapJitter: 12},
			{Name: "downtown-west", Place: []Placement{
				{building.LowRise, 2}, {building.SmallRibbed, 8}, {building.MediumCrown, 15},
				{building.TallSlim, 22}, {building.WideBlock, 30}, {building.Industrial, 40},
				{building.Pyramid, 50}, {building.Ziggurat3, 60}, {building.DoubleStep, 70},
				{building.Campus, 80},
			}},
			{Name: "core", Place: []Placement{
				{building.GlassTower, 92}, {building.HighRise, 98}, {building.MidRise, 104},
				{building.MidRise, 108}, {building.HighRise, 112}, {building.GlassTower, 118},
			}},
			{Name: "downtown-east", Place: []Placement{
				{building.Campus, 125}, {building.DoubleStep, 135}, {building.Ziggurat3, 145},
				{building.Pyramid, 155}, {building.Industrial, 165}, {building.WideBlock, 175},
				{building.TallSlim, 185}, {building.MediumCrown, 192}, {building.SmallRibbed, 198},
				{building.LowRise, 198},
			}},
			{
				Name: "front", Rise: 2, Start: 10, Stop: 190, MinGap: 12, GapJitter: 15,
				SkipFrom: 80, SkipTo: 120,
				Presets: []string{building.LowRise, building.SmallRibbed, building.MediumCrown},
			},
			{
				Name: "street", Rise: 1, Start: 15, Stop: 185, MinGap: 8, GapJitter: 10,
				SkipFrom: 75, SkipTo: 125,
				Presets: []string{building.LowRise},
			},
		},
	}
}

// Canvas size and column used by [PresetConfig]; large enough for every
// catalog preset.
const (
	PresetWidth  = 48
	PresetHeight = 52
	presetColumn = PresetWidth / 2
)

// PresetConfig returns a scene holding only the named preset on a bare
// ground line. Unknown names fail validation with PRESET_NOT_FOUND.
func PresetConfig(name string) Config {
	return Config{
		Width:    PresetWidth,
		Height:   PresetHeight,
		Landmark: Landmark{Skip: true},
		Podium:   []Block{},
		Layers: []Layer{{
			Name:  name,
			Place: []Placement{{Preset: name, Column: presetColumn}},
		}},
	}
}

// SeedOf returns a pointer to seed, for setting [Config.Seed].
func SeedOf(seed uint64) *uint64 { return &seed }

// SeedValue returns the configured seed, or [DefaultSeed] when unset.
func (c Config) SeedValue() uint64 {
	if c.Seed == nil {
		return DefaultSeed
	}
	return *c.Seed
}

// WithDefaults fills unset top-level fields from [DefaultConfig]. A nil
// Podium or Layers takes the default; an empty non-nil slice stays empty.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.Width == 0 {
		c.Width = d.Width
	}
	if c.Height == 0 {
		c.Height = d.Height
	}
	if c.Seed == nil {
		c.Seed = d.Seed
	}
	if !c.Landmark.Skip && len(c.Landmark.Tiers) == 0 && c.Landmark.Spire == 0 {
		c.Landmark = d.Landmark
	}
	if c.Podium == nil {
		c.Podium = d.Podium
	}
	if c.Layers == nil {
		c.Layers = d.Layers
	}
	return c
}

// Validate checks sizes, coordinates, layer spacing and preset names.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 || c.Width > MaxWidth || c.Height > MaxHeight {
		return errors.New(errors.ErrCodeInvalidSize,
			"canvas %dx%d out of range (1..%d wide, 1..%d high)", c.Width, c.Height, MaxWidth, MaxHeight)
	}
	if err := c.Landmark.validate(); err != nil {
		return err
	}
	for i, b := range c.Podium {
		if !within(b.Width, 1, MaxExtent) || !within(b.Height, 1, MaxExtent) {
			return errors.New(errors.ErrCodeInvalidConfig, "podium block %d: width and height must be in 1..%d", i, MaxExtent)
		}
		if !within(b.Left, -MaxExtent, MaxExtent) {
			return errors.New(errors.ErrCodeInvalidConfig, "podium block %d: left %d out of range", i, b.Left)
		}
	}
	for i, l := range c.Layers {
		name := l.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		if err := l.validate(name); err != nil {
			return err
		}
	}
	return nil
}

func (lm Landmark) validate() error {
	for i, t := range lm.Tiers {
		if !within(t.Width, 1, MaxExtent) || !within(t.Height, 1, MaxExtent) {
			return errors.New(errors.ErrCodeInvalidConfig, "landmark tier %d: width and height must be in 1..%d", i, MaxExtent)
		}
	}
	if !within(lm.Spire, 0, MaxExtent) {
		return errors.New(errors.ErrCodeInvalidConfig, "landmark spire must be in 0..%d", MaxExtent)
	}
	if lm.Center != nil && !within(*lm.Center, MinColumn, MaxColumn) {
		return errors.New(errors.ErrCodeInvalidConfig, "landmark center %d out of range (%d..%d)", *lm.Center, MinColumn, MaxColumn)
	}
	return nil
}

func (l Layer) validate(name string) error {
	if !within(l.Rise, -MaxHeight, MaxHeight) {
		return errors.New(errors.ErrCodeInvalidConfig, "layer %s: rise %d out of range", name, l.Rise)
	}
	for _, p := range l.Place {
		if _, ok := building.Lookup(p.Preset); !ok {
			return errors.New(errors.ErrCodePresetNotFound, "layer %s: unknown preset %q", name, p.Preset)
		}
		if !within(p.Column, MinColumn, MaxColumn) {
			return errors.New(errors.ErrCodeInvalidConfig, "layer %s: column %d out of range (%d..%d)", name, p.Column, MinColumn, MaxColumn)
		}
	}
	if l.Fixed() {
		return nil
	}
	if !within(l.Start, MinColumn, MaxColumn) || !within(l.Stop, MinColumn, MaxColumn) {
		return errors.New(errors.ErrCodeInvalidConfig, "layer %s: start and stop must be in %d..%d", name, MinColumn, MaxColumn)
	}
	if !within(l.MinGap, 1, MaxExtent) {
		return errors.New(errors.ErrCodeInvalidConfig, "layer %s: min_gap must be in 1..%d", name, MaxExtent)
	}
	if !within(l.GapJitter, 0, MaxExtent) {
		return errors.New(errors.ErrCodeInvalidConfig, "layer %s: gap_jitter must be in 0..%d", name, MaxExtent)
	}
	for _, p := range l.Presets {
		if _, ok := building.Lookup(p); !ok {
			return errors.New(errors.ErrCodePresetNotFound, "layer %s: unknown preset %q", name, p)
		}
	}
	return nil
}

func within(v, lo, hi int) bool { return v >= lo && v <= hi }

// LoadConfig reads a TOML (.toml) or YAML (.yaml, .yml) scene file. Fields
// left out of the file take their default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return DecodeTOML(bytes.NewReader(data))
	case ".yaml", ".yml":
		return DecodeYAML(bytes.NewReader(data))
	default:
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unsupported config extension %q (want .toml, .yaml or .yml)", ext)
	}
}

// DecodeTOML parses a TOML scene. Unknown keys are rejected.
func DecodeTOML(r io.Reader) (Config, error) {
	var c Config
	md, err := toml.NewDecoder(r).Decode(&c)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	return finish(c)
}

// DecodeYAML parses a YAML scene. Unknown keys are rejected.
func DecodeYAML(r io.Reader) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse yaml")
	}
	return finish(c)
}

func finish(c Config) (Config, error) {
	c = c.WithDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
