package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `Wall,0,0,50,50,0,1,0,1,brick
Coin,60,0,16,16,1,0,1,1,
broken line
Coin,80,0,16,16,1,0,1,1,coin
`

func writeSample(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tiles.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	path := writeSample(t, sample)
	out, err := run("list", path)
	require.NoError(t, err)
	assert.Contains(t, out, "0\tWall\t0\t0\t50\t50\t0\t1\t0\t1\tbrick")
	assert.Contains(t, out, "3 tiles, 1 dropped")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
		want    string
	}{
		{name: "clean", content: "Wall,0,0,50,50,0,1,0,1,\n", want: "1 records ok"},
		{name: "dropped", content: sample, wantErr: true, want: ":3: malformed record"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run("validate", writeSample(t, tt.content))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestValidateMissingFile(t *testing.T) {
	_, err := run("validate", filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestArchetype(t *testing.T) {
	tests := []struct {
		name  string
		force bool
	}{
		{name: "refuses to drop malformed lines"},
		{name: "force drops malformed lines", force: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSample(t, sample)
			args := []string{"archetype", path, "--tag", "Coin", "--as", "Platform"}
			if tt.force {
				args = append(args, "--force")
			}
			out, err := run(args...)

			if !tt.force {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "--force")
				data, rerr := os.ReadFile(path)
				require.NoError(t, rerr)
				assert.Equal(t, sample, string(data), "file left untouched")
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, "2 tiles set to Platform")

			tiles, rep, err := readTiles(path)
			require.NoError(t, err)
			assert.Empty(t, rep.Dropped)
			require.Len(t, tiles, 3)
			assert.Equal(t, "Wall", tiles[0].Tag())
			for _, tl := range tiles[1:] {
				assert.Equal(t, "Platform", tl.Tag())
				assert.True(t, tl.Static())
				assert.False(t, tl.Trigger())
			}
			assert.Equal(t, "coin", tiles[2].TextureName())
		})
	}
}

func TestArchetypeCleanFile(t *testing.T) {
	path := writeSample(t, "Coin,60,0,16,16,1,0,1,1,\n")
	out, err := run("archetype", path, "--tag", "Coin", "--as", "Checkpoint")
	require.NoError(t, err)
	assert.Contains(t, out, "1 tiles set to Checkpoint")
}

func TestArchetypeUnknown(t *testing.T) {
	path := writeSample(t, sample)
	_, err := run("archetype", path, "--tag", "Coin", "--as", "Boulder")
	assert.Error(t, err)
}
