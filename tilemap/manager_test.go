package tilemap

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/control"
	"github.com/milk9111/platformer/scene"
	"github.com/milk9111/platformer/texture"
	"github.com/milk9111/platformer/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, *scene.World) {
	t.Helper()
	w := scene.NewWorld()
	cat := texture.NewCatalog()
	cat.Add("brick", image.NewRGBA(image.Rect(0, 0, 16, 16)))
	cat.Add("coin", image.NewRGBA(image.Rect(0, 0, 64, 16)))
	return NewManager(w, w, cat, filepath.Join(t.TempDir(), "tiles.csv")), w
}

// seed places tiles at the given x positions along y=0.
func seed(m *Manager, xs ...float64) {
	for _, x := range xs {
		m.appendTile(m.newTile(cp.Vector{X: x}))
	}
}

func click(m *Manager, in *control.Fake, x, y float64) {
	in.Click(x, y)
	m.HandleInput(1.0/60, in)
}

func TestClickOnEmptySpaceCreatesTile(t *testing.T) {
	m, w := newTestManager(t)
	in := control.NewFake()

	click(m, in, 100, 40)

	require.Equal(t, 1, m.Len())
	tl := m.Tile(0)
	assert.Equal(t, cp.Vector{X: 100, Y: 40}, tl.Position)
	assert.True(t, w.Contains(tl))
	assert.Equal(t, []int{0}, m.Selection().Indices())
	assert.True(t, tl.Editing())
	assert.False(t, in.IsDown(control.ActionSelect), "select is consumed")
}

func TestClickRules(t *testing.T) {
	cases := []struct {
		name      string
		selected  []int
		modifier  bool
		x         float64
		wantSel   []int
		wantCount int
	}{
		{"plain click selects exclusively", []int{0, 2}, false, 110, []int{1}, 3},
		{"modifier adds to selection", []int{0}, true, 210, []int{0, 2}, 3},
		{"modifier removes from selection", []int{0, 2}, true, 10, []int{2}, 3},
		{"empty click with selection only deselects", []int{1}, false, 900, nil, 3},
		{"modifier empty click only deselects", []int{1}, true, 900, nil, 3},
		{"empty click without selection creates", nil, false, 900, []int{3}, 4},
		{"modifier empty click without selection creates nothing", nil, true, 900, nil, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, _ := newTestManager(t)
			seed(m, 0, 100, 200)
			for _, idx := range tc.selected {
				m.ToggleSelected(idx)
			}
			in := control.NewFake()
			if tc.modifier {
				in.Press(control.ActionModifier)
			}
			click(m, in, tc.x, 25)

			assert.Equal(t, tc.wantCount, m.Len())
			want := tc.wantSel
			if want == nil {
				want = []int{}
			}
			assert.Equal(t, want, m.Selection().Indices())
			for i, tl := range m.Tiles() {
				assert.Equal(t, m.Selection().Has(i), tl.Editing(), "tile %d", i)
			}
		})
	}
}

func TestDeselectThenCreate(t *testing.T) {
	m, _ := newTestManager(t)
	seed(m, 0)
	m.SelectOnly(0)
	in := control.NewFake()

	click(m, in, 500, 500)
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 0, m.Selection().Len())

	click(m, in, 500, 500)
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []int{1}, m.Selection().Indices())
}

func TestHitTestFirstInInsertionOrder(t *testing.T) {
	m, _ := newTestManager(t)
	seed(m, 0, 20)
	assert.Equal(t, 0, m.HitTest(cp.Vector{X: 30, Y: 10}))
	assert.Equal(t, 1, m.HitTest(cp.Vector{X: 60, Y: 10}))
	assert.Equal(t, -1, m.HitTest(cp.Vector{X: 500, Y: 10}))
}

func TestHandleInputDuplicate(t *testing.T) {
	m, w := newTestManager(t)
	seed(m, 0, 100, 200)
	m.Tile(0).SetTag("Coin")
	m.ToggleSelected(0)
	m.ToggleSelected(2)

	in := control.NewFake()
	in.Press(control.ActionModifier, control.ActionDuplicate)
	m.HandleInput(1.0/60, in)

	require.Equal(t, 5, m.Len())
	assert.Equal(t, []int{3, 4}, m.Selection().Indices())
	assert.Equal(t, "Coin", m.Tile(3).Tag())
	assert.Equal(t, m.Tile(2).Position, m.Tile(4).Position)
	assert.False(t, m.Tile(0).Editing())
	assert.True(t, m.Tile(3).Editing())
	assert.Equal(t, 5, w.Len())
	assert.False(t, in.IsDown(control.ActionDuplicate), "duplicate is consumed")

	// held key does not duplicate again
	m.HandleInput(1.0/60, in)
	assert.Equal(t, 5, m.Len())
}

func TestHandleInputDelete(t *testing.T) {
	m, w := newTestManager(t)
	seed(m, 0, 100, 200, 300)
	kept := []*tile.Tile{m.Tile(1), m.Tile(3)}
	m.ToggleSelected(0)
	m.ToggleSelected(2)

	in := control.NewFake()
	in.Press(control.ActionDelete)
	m.HandleInput(1.0/60, in)

	assert.Equal(t, kept, m.Tiles())
	assert.Equal(t, 0, m.Selection().Len())
	assert.Equal(t, 2, w.Len())
	assert.False(t, in.IsDown(control.ActionDelete))
}

func TestHandleInputForwardsNudge(t *testing.T) {
	m, _ := newTestManager(t)
	seed(m, 0, 100)
	m.SelectOnly(1)

	in := control.NewFake()
	in.Press(control.ActionNudgeRight)
	m.HandleInput(0.5, in)

	assert.Equal(t, 0.0, m.Tile(0).Position.X)
	assert.InDelta(t, 130, m.Tile(1).Position.X, 1e-9)
}

func TestRecolor(t *testing.T) {
	m, _ := newTestManager(t)
	seed(m, 0, 100, 200)
	m.Tile(1).SetTag(tile.TagWall)
	m.Tile(2).SetTag(tile.TagWall)
	m.SelectOnly(2)

	m.HandleInput(0, control.NewFake())

	p := DefaultPalette()
	assert.Equal(t, p.Default, m.Tile(0).Color())
	assert.Equal(t, p.Wall, m.Tile(1).Color())
	assert.Equal(t, p.Selected, m.Tile(2).Color())
}

type drawCall struct {
	tile   *tile.Tile
	box    cp.BB
	filled bool
	tint   bool
}

type recordRenderer struct {
	calls []drawCall
}

func (r *recordRenderer) DrawTile(t *tile.Tile, tint bool) {
	r.calls = append(r.calls, drawCall{tile: t, tint: tint})
}

func (r *recordRenderer) DrawRect(box cp.BB, c color.RGBA, filled bool) {
	r.calls = append(r.calls, drawCall{box: box, filled: filled})
}

func TestRender(t *testing.T) {
	m, _ := newTestManager(t)
	seed(m, 0, 100)
	brick, _ := m.textures.Get("brick")
	m.Tile(1).SetTexture("brick", brick)

	t.Run("play mode draws textured tiles only", func(t *testing.T) {
		r := &recordRenderer{}
		m.Render(r, false)
		require.Len(t, r.calls, 1)
		assert.Same(t, m.Tile(1), r.calls[0].tile)
		assert.False(t, r.calls[0].tint)
	})

	t.Run("edit mode adds outlines and fills", func(t *testing.T) {
		r := &recordRenderer{}
		m.Render(r, true)
		// untextured: fill + outline, textured: outline + sprite
		require.Len(t, r.calls, 4)
		assert.True(t, r.calls[0].filled)
		assert.False(t, r.calls[1].filled)
		assert.Equal(t, m.Tile(1).Bounds(), r.calls[2].box)
		assert.True(t, r.calls[3].tint)
	})
}

func TestUpdateAnimates(t *testing.T) {
	m, _ := newTestManager(t)
	seed(m, 0)
	coin, _ := m.textures.Get("coin")
	m.Tile(0).SetTexture("coin", coin)

	m.Update(0.25)
	assert.Equal(t, 2, m.Tile(0).Frame())
}
