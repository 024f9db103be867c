package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/skyline/pkg/building"
	"github.com/matzehuels/skyline/pkg/errors"
)

const sampleTOML = `
width = 120
height = 60
seed = 7

[landmark]
spire = 10

[[landmark.tier]]
width = 20
height = 12

[[landmark.tier]]
width = 10
height = 8

[[layer]]
name = "row"
start = 5
stop = 110
min_gap = 10
gap_jitter = 5
presets = ["tiny-box", "needle"]

[[layer]]
name = "pins"

[[layer.place]]
preset = "pyramid"
column = 30
`

const sampleYAML = `
width: 80
height: 40
landmark:
  skip: true
podium: []
layers:
  - name: street
    rise: 1
    start: 4
    stop: 76
    min_gap: 9
    presets: [low-rise]
`

func TestDecodeTOML(t *testing.T) {
	cfg, err := DecodeTOML(strings.NewReader(sampleTOML))
	if err != nil {
		t.Fatalf("DecodeTOML error: %v", err)
	}

	if cfg.Width != 120 || cfg.Height != 60 || cfg.SeedValue() != 7 {
		t.Errorf("size/seed = %dx%d/%d, want 120x60/7", cfg.Width, cfg.Height, cfg.SeedValue())
	}
	if len(cfg.Landmark.Tiers) != 2 || cfg.Landmark.Spire != 10 {
		t.Errorf("landmark = %+v", cfg.Landmark)
	}
	if len(cfg.Layers) != 2 {
		t.Fatalf("got %d layers, want 2", len(cfg.Layers))
	}
	if !cfg.Layers[1].Fixed() || cfg.Layers[1].Place[0].Preset != building.Pyramid {
		t.Errorf("second layer = %+v, want a fixed pyramid", cfg.Layers[1])
	}
	if len(cfg.Podium) != len(DefaultConfig().Podium) {
		t.Errorf("podium should fall back to the default, got %+v", cfg.Podium)
	}
}

func TestDecodeYAML(t *testing.T) {
	cfg, err := DecodeYAML(strings.NewReader(sampleYAML))
	if err != nil {
		t.Fatalf("DecodeYAML error: %v", err)
	}

	if cfg.Width != 80 || cfg.Height != 40 {
		t.Errorf("size = %dx%d, want 80x40", cfg.Width, cfg.Height)
	}
	if cfg.SeedValue() != DefaultSeed {
		t.Errorf("Seed = %d, want default %d", cfg.SeedValue(), DefaultSeed)
	}
	if !cfg.Landmark.Skip {
		t.Error("landmark.skip not decoded")
	}
	if cfg.Podium == nil || len(cfg.Podium) != 0 {
		t.Errorf("explicit empty podium should stay empty, got %+v", cfg.Podium)
	}
	if len(cfg.Layers) != 1 || cfg.Layers[0].Rise != 1 {
		t.Errorf("layers = %+v", cfg.Layers)
	}
}

func TestDecodeEmpty(t *testing.T) {
	cfg, err := DecodeYAML(strings.NewReader(""))
	if err != nil {
		t.Fatalf("DecodeYAML(empty) error: %v", err)
	}
	def := DefaultConfig()
	if cfg.Width != def.Width || len(cfg.Layers) != len(def.Layers) {
		t.Errorf("empty config should equal the default, got %dx? with %d layers", cfg.Width, len(cfg.Layers))
	}
}

func TestDecodeExplicitZero(t *testing.T) {
	cfg, err := DecodeTOML(strings.NewReader("seed = 0\n[landmark]\ncenter = 0\nspire = 5\n"))
	if err != nil {
		t.Fatalf("DecodeTOML error: %v", err)
	}
	if cfg.Seed == nil || cfg.SeedValue() != 0 {
		t.Errorf("seed = %v, want explicit 0", cfg.Seed)
	}
	if cfg.Landmark.Center == nil || *cfg.Landmark.Center != 0 {
		t.Errorf("landmark center = %v, want explicit 0", cfg.Landmark.Center)
	}

	unset, err := DecodeTOML(strings.NewReader("width = 50\n"))
	if err != nil {
		t.Fatal(err)
	}
	if unset.SeedValue() != DefaultSeed || unset.Landmark.Center != nil {
		t.Errorf("unset seed/center = %d/%v, want %d/nil", unset.SeedValue(), unset.Landmark.Center, DefaultSeed)
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	if _, err := DecodeTOML(strings.NewReader("colour = \"red\"\n")); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("DecodeTOML unknown key error = %v, want INVALID_CONFIG", err)
	}
	if _, err := DecodeYAML(strings.NewReader("colour: red\n")); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("DecodeYAML unknown key error = %v, want INVALID_CONFIG", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		code   errors.Code
	}{
		{"default is valid", func(*Config) {}, ""},
		{"zero width", func(c *Config) { c.Width = 0 }, errors.ErrCodeInvalidSize},
		{"too tall", func(c *Config) { c.Height = MaxHeight + 1 }, errors.ErrCodeInvalidSize},
		{"bad tier", func(c *Config) { c.Landmark.Tiers[0].Height = 0 }, errors.ErrCodeInvalidConfig},
		{"negative spire", func(c *Config) { c.Landmark.Spire = -1 }, errors.ErrCodeInvalidConfig},
		{"bad podium", func(c *Config) { c.Podium[1].Width = -3 }, errors.ErrCodeInvalidConfig},
		{"zero gap", func(c *Config) { c.Layers[0].MinGap = 0 }, errors.ErrCodeInvalidConfig},
		{"negative jitter", func(c *Config) { c.Layers[0].GapJitter = -1 }, errors.ErrCodeInvalidConfig},
		{"unknown random preset", func(c *Config) { c.Layers[5].Presets = []string{"castle"} }, errors.ErrCodePresetNotFound},
		{"unknown fixed preset", func(c *Config) { c.Layers[2].Place[0].Preset = "castle" }, errors.ErrCodePresetNotFound},
		{"stop far past canvas", func(c *Config) { c.Layers[0].Stop = 9000000000000000000 }, errors.ErrCodeInvalidConfig},
		{"start far before canvas", func(c *Config) { c.Layers[0].Start = MinColumn - 1 }, errors.ErrCodeInvalidConfig},
		{"stop at limit", func(c *Config) { c.Layers[0].Stop = MaxColumn }, ""},
		{"huge gap", func(c *Config) { c.Layers[0].MinGap = MaxExtent + 1 }, errors.ErrCodeInvalidConfig},
		{"huge jitter", func(c *Config) { c.Layers[0].GapJitter = MaxExtent + 1 }, errors.ErrCodeInvalidConfig},
		{"huge tier", func(c *Config) { c.Landmark.Tiers[0].Width = MaxExtent + 1 }, errors.ErrCodeInvalidConfig},
		{"huge spire", func(c *Config) { c.Landmark.Spire = MaxExtent + 1 }, errors.ErrCodeInvalidConfig},
		{"center out of range", func(c *Config) { c.Landmark.Center = new(int); *c.Landmark.Center = MaxColumn + 1 }, errors.ErrCodeInvalidConfig},
		{"column out of range", func(c *Config) { c.Layers[2].Place[0].Column = MinColumn - 1 }, errors.ErrCodeInvalidConfig},
		{"rise out of range", func(c *Config) { c.Layers[5].Rise = MaxHeight + 1 }, errors.ErrCodeInvalidConfig},
		{"podium far away", func(c *Config) { c.Podium[0].Left = -MaxExtent - 1 }, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestDecodeRejectsRunawayLayer(t *testing.T) {
	const cfg = `
width = 40
height = 20

[[layer]]
name = "runaway"
start = 0
stop = 9000000000000000000
min_gap = 1
`
	if _, err := DecodeTOML(strings.NewReader(cfg)); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("DecodeTOML error = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	tests := []struct {
		name    string
		path    string
		wantW   int
		wantErr errors.Code
	}{
		{"toml", write("city.toml", sampleTOML), 120, ""},
		{"yaml", write("city.yaml", sampleYAML), 80, ""},
		{"yml upper case", write("CITY.YML", sampleYAML), 80, ""},
		{"unsupported", write("city.json", "{}"), 0, errors.ErrCodeInvalidConfig},
		{"missing", filepath.Join(dir, "nope.toml"), 0, errors.ErrCodeInvalidPath},
		{"invalid values", write("bad.toml", "width = -5\n"), 0, errors.ErrCodeInvalidSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(tt.path)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadConfig(%s) error = %v, want %s", tt.name, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfig(%s) error: %v", tt.name, err)
			}
			if cfg.Width != tt.wantW {
				t.Errorf("Width = %d, want %d", cfg.Width, tt.wantW)
			}
		})
	}
}
