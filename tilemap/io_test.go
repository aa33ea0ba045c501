package tilemap

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRecordLayout(t *testing.T) {
	wall := tile.NewAt(cp.Vector{X: 0, Y: 300})
	wall.Size = cp.Vector{X: 800, Y: 50}
	wall.SetTag("Wall")
	wall.SetStatic(true)

	coin := tile.NewAt(cp.Vector{X: 120.5, Y: 250})
	coin.Size = cp.Vector{X: 16, Y: 16}
	tile.Collectable.Apply(coin)
	coin.SetTexture("coin", nil)

	odd := tile.New()
	odd.SetTag("a,b\nc")

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, []*tile.Tile{wall, coin, odd}))

	want := "Wall,0,300,800,50,0,1,0,1,\n" +
		"Collectable,120.5,250,16,16,1,0,1,1,coin\n" +
		"\"a,b c\",0,0,50,50,0,0,0,1,\n"
	assert.Equal(t, want, buf.String())
}

func TestDecode(t *testing.T) {
	m, _ := newTestManager(t)
	input := strings.Join([]string{
		"Wall,0,300,800,50,0,1,0,1,",
		"Coin,120,250,16,16,1,0,1,1,coin",
		"short,1,2,3",
		"Bad,x,0,1,1,0,0,0,0",
		"",
		"Spike,5,6,7,8,2,0,-1,0,missing",
		"\"a,b\",1,1,1,1,0,0,0,0",
	}, "\n")

	tiles, rep, err := Decode(strings.NewReader(input), m.textures)
	require.NoError(t, err)

	assert.Equal(t, 7, rep.Lines)
	assert.Equal(t, 4, rep.Accepted)
	assert.Equal(t, []int{3, 4}, rep.Dropped)
	require.Len(t, tiles, 4)

	wall := tiles[0]
	assert.Equal(t, "Wall", wall.Tag())
	assert.Equal(t, cp.Vector{X: 800, Y: 50}, wall.Size)
	assert.True(t, wall.Static())
	assert.Empty(t, wall.TextureName())

	coin := tiles[1]
	assert.Equal(t, "coin", coin.TextureName())
	assert.NotNil(t, coin.Texture())

	spike := tiles[2]
	assert.True(t, spike.Trigger(), "any nonzero integer is true")
	assert.True(t, spike.Massless())
	assert.False(t, spike.IsTile())
	assert.Equal(t, "missing", spike.TextureName())
	assert.Nil(t, spike.Texture())

	assert.Equal(t, "a,b", tiles[3].Tag())
}

func TestDecodeOversizedLine(t *testing.T) {
	input := "A,0,0,1,1,0,0,0,1,\n" +
		strings.Repeat("x", 70000) + "\n" +
		"B,5,5,1,1,0,0,0,1,\n"

	tiles, rep, err := Decode(strings.NewReader(input), nil)
	require.NoError(t, err)
	require.Len(t, tiles, 2)
	assert.Equal(t, "B", tiles[1].Tag())
	assert.Equal(t, []int{2}, rep.Dropped)

	m, _ := newTestManager(t)
	require.NoError(t, os.WriteFile(m.Path(), []byte(input), 0o644))
	require.True(t, m.LoadTiles())
	assert.Equal(t, 2, m.Len())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	m, w := newTestManager(t)
	seed(m, 0, 100)
	m.Tile(0).SetTag(tile.TagWall)
	m.Tile(0).SetStatic(true)
	m.Tile(1).Position = cp.Vector{X: 0.1, Y: 1e-7}
	m.Tile(1).Size = cp.Vector{X: 33.333333333333336, Y: 12}
	m.SelectOnly(1)
	m.ApplyTexture("coin")
	m.SetTag("Coin")
	m.SetFlag(tile.FlagTrigger, true)
	m.SetFlag(tile.FlagMassless, true)
	m.SetFlag(tile.FlagTile, false)

	require.True(t, m.Save())

	loaded, lw := newTestManager(t)
	loaded.SetPath(m.Path())
	require.True(t, loaded.LoadTiles())
	require.Equal(t, 2, loaded.Len())
	assert.Equal(t, 2, lw.Len())
	for i, want := range m.Tiles() {
		got := loaded.Tile(i)
		assert.Equal(t, want.Position, got.Position)
		assert.Equal(t, want.Size, got.Size)
		assert.Equal(t, want.Tag(), got.Tag())
		for _, f := range tile.Flags {
			assert.Equal(t, f.Get(want), f.Get(got), "tile %d flag %s", i, f)
		}
		assert.Equal(t, want.TextureName(), got.TextureName())
		assert.False(t, got.Editing())
	}
	assert.NotNil(t, loaded.Tile(1).Texture())
	assert.True(t, loaded.Tile(1).Trigger())
	assert.True(t, loaded.Tile(1).Massless())
	assert.False(t, loaded.Tile(1).IsTile())
	assert.True(t, loaded.Tile(0).IsTile())
	assert.Equal(t, 2, w.Len())
}

func TestLoadTilesAppends(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, os.WriteFile(m.Path(), []byte("A,0,0,1,1,0,0,0,1,\n"), 0o644))
	seed(m, 500)

	require.True(t, m.LoadTiles())
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, "A", m.Tile(1).Tag())
}

func TestLoadTilesMissingFile(t *testing.T) {
	m, _ := newTestManager(t)
	seed(m, 0)
	assert.False(t, m.LoadTiles())
	assert.Equal(t, 1, m.Len())
}

func TestLoadTilesOnlyMalformedSucceeds(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, os.WriteFile(m.Path(), []byte("junk\n"), 0o644))
	assert.True(t, m.LoadTiles())
	assert.Equal(t, 0, m.Len())
}

func TestSaveTilesUnwritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "tiles.csv")
	assert.False(t, SaveTiles([]*tile.Tile{tile.New()}, path))
}

func TestReload(t *testing.T) {
	m, w := newTestManager(t)
	require.NoError(t, os.WriteFile(m.Path(), []byte("A,0,0,1,1,0,0,0,1,\nB,5,0,1,1,0,0,0,1,\n"), 0o644))
	seed(m, 100, 200, 300)
	m.SelectOnly(2)

	require.True(t, m.Reload())
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 2, w.Len())
	assert.Equal(t, 0, m.Selection().Len())
	assert.False(t, m.CanUndo())
}
