package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeFile(t, `
screen:
  width: 800
paths:
  tiles: level1.csv
editor:
  max_undo: 5
palette:
  wall: "#336699"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Screen.Width)
	assert.Equal(t, 720, cfg.Screen.Height, "missing keys keep defaults")
	assert.Equal(t, "level1.csv", cfg.Paths.Tiles)
	assert.Equal(t, "assets", cfg.Paths.Textures)
	assert.Equal(t, 5, cfg.Editor.MaxUndo)
	assert.Equal(t, 0.25, cfg.Editor.PanelWidthFraction)
	assert.Equal(t, Color{R: 0x33, G: 0x66, B: 0x99, A: 0xff}, cfg.Palette.Wall)
	assert.Equal(t, Default().Palette.Selected, cfg.Palette.Selected)
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"bad yaml", "screen: ["},
		{"bad color", "palette:\n  wall: \"#12\"\n"},
		{"panel too wide", "editor:\n  panel_width_fraction: 1.5\n"},
		{"negative undo", "editor:\n  max_undo: -1\n"},
		{"zero screen", "screen:\n  width: 0\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tc.body))
			require.Error(t, err)
			assert.Equal(t, Default(), cfg)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseHex(t *testing.T) {
	cases := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{in: "#ff0000", want: Color{R: 0xff, A: 0xff}},
		{in: "00ff0080", want: Color{G: 0xff, A: 0x80}},
		{in: " #0000FF ", want: Color{B: 0xff, A: 0xff}},
		{in: "#abc", wantErr: true},
		{in: "#gg0000", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseHex(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestColorMarshal(t *testing.T) {
	out, err := yaml.Marshal(PaletteSpec{
		Selected: Color{R: 1, G: 2, B: 3, A: 0xff},
		Wall:     Color{R: 0xaa, G: 0xbb, B: 0xcc, A: 0x10},
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), "#010203")
	assert.Contains(t, string(out), "#aabbcc10")

	var back PaletteSpec
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, Color{R: 0xaa, G: 0xbb, B: 0xcc, A: 0x10}, back.Wall)
}

func TestLoadSpecGeneric(t *testing.T) {
	path := writeFile(t, "move_speed: 12\njump_speed: 3\n")
	spec, err := LoadSpec[PlayerSpec](path)
	require.NoError(t, err)
	assert.Equal(t, 12.0, spec.MoveSpeed)
	assert.Equal(t, 3.0, spec.JumpSpeed)
}
