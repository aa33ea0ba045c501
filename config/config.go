package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Screen  ScreenSpec  `yaml:"screen"`
	Paths   PathsSpec   `yaml:"paths"`
	Editor  EditorSpec  `yaml:"editor"`
	Player  PlayerSpec  `yaml:"player"`
	Palette PaletteSpec `yaml:"palette"`
}

type ScreenSpec struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type PathsSpec struct {
	Tiles    string `yaml:"tiles"`
	Textures string `yaml:"textures"`
	Rules    string `yaml:"rules"`
}

type EditorSpec struct {
	// PanelWidthFraction is the share of the screen width the panel takes.
	PanelWidthFraction float64 `yaml:"panel_width_fraction"`
	NudgeSpeed         float64 `yaml:"nudge_speed"`
	ZoomStep           float64 `yaml:"zoom_step"`
	TileSize           float64 `yaml:"tile_size"`
	MaxUndo            int     `yaml:"max_undo"`
}

type PlayerSpec struct {
	MoveSpeed float64 `yaml:"move_speed"`
	JumpSpeed float64 `yaml:"jump_speed"`
	Gravity   float64 `yaml:"gravity"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	SpawnX    float64 `yaml:"spawn_x"`
	SpawnY    float64 `yaml:"spawn_y"`
}

type PaletteSpec struct {
	Selected Color `yaml:"selected"`
	Wall     Color `yaml:"wall"`
	Default  Color `yaml:"default"`
}

// Default returns a complete configuration. Load overlays a file on top of it.
func Default() Config {
	return Config{
		Screen: ScreenSpec{Width: 1280, Height: 720, Title: "platformer"},
		Paths: PathsSpec{
			Tiles:    "tiles.csv",
			Textures: "assets",
			Rules:    "rules.tengo",
		},
		Editor: EditorSpec{
			PanelWidthFraction: 0.25,
			NudgeSpeed:         60,
			ZoomStep:           0.1,
			TileSize:           50,
			MaxUndo:            100,
		},
		Player: PlayerSpec{
			MoveSpeed: 240,
			JumpSpeed: 520,
			Gravity:   1400,
			Width:     32,
			Height:    48,
			SpawnX:    100,
			SpawnY:    100,
		},
		Palette: PaletteSpec{
			Selected: Color{R: 0x00, G: 0xff, B: 0x00, A: 0xff},
			Wall:     Color{R: 0x00, G: 0x00, B: 0xff, A: 0xff},
			Default:  Color{R: 0xff, G: 0x00, B: 0x00, A: 0xff},
		},
	}
}

// LoadSpec reads filename as YAML into a fresh T.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := os.ReadFile(filename)
	if err != nil {
		return zero, fmt.Errorf("config: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("config: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

// Load reads filename over Default. Keys absent from the file keep their
// defaults.
func Load(filename string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(filename)
	if err != nil {
		return cfg, fmt.Errorf("config: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: unmarshal %s: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", filename, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if f := c.Editor.PanelWidthFraction; f <= 0 || f >= 1 {
		return fmt.Errorf("panel_width_fraction must be in (0, 1), got %v", f)
	}
	if c.Editor.TileSize <= 0 {
		return fmt.Errorf("tile_size must be positive, got %v", c.Editor.TileSize)
	}
	if c.Editor.MaxUndo < 0 {
		return fmt.Errorf("max_undo must not be negative, got %d", c.Editor.MaxUndo)
	}
	if c.Paths.Tiles == "" {
		return fmt.Errorf("paths.tiles is required")
	}
	return nil
}

// Color is an RGBA color written as "#rrggbb" or "#rrggbbaa".
type Color color.RGBA

func (c Color) ToRGBA() color.RGBA {
	return color.RGBA(c)
}

func (c Color) String() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseHex(value.Value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Color) MarshalYAML() (any, error) {
	return c.String(), nil
}

// ParseHex parses "#rrggbb" or "#rrggbbaa". The leading '#' is optional.
func ParseHex(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid color format: %s", s)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(hex[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %s: %w", s, err)
	}
	g, err := parse(2)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %s: %w", s, err)
	}
	b, err := parse(4)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %s: %w", s, err)
	}
	a := uint8(0xff)
	if len(hex) == 8 {
		if a, err = parse(6); err != nil {
			return Color{}, fmt.Errorf("invalid color %s: %w", s, err)
		}
	}
	return Color{R: r, G: g, B: b, A: a}, nil
}
