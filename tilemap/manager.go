package tilemap

import (
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/control"
	"github.com/milk9111/platformer/scene"
	"github.com/milk9111/platformer/texture"
	"github.com/milk9111/platformer/tile"
	"golang.org/x/image/colornames"
)

// SceneGraph tracks live entities for rendering and collision.
type SceneGraph interface {
	AddObject(o scene.Object)
	RemoveObject(o scene.Object)
}

// Collider answers the bounding box questions the manager needs.
type Collider interface {
	BoundingBoxContains(box cp.BB, point cp.Vector) bool
	OverlapsWithTag(o scene.Object, tag string) bool
}

// TextureSource resolves texture names. *texture.Catalog satisfies it.
type TextureSource interface {
	Get(name string) (texture.Texture, bool)
	Names() []string
}

// Renderer draws tiles and debug rectangles in world space.
type Renderer interface {
	DrawTile(t *tile.Tile, tint bool)
	DrawRect(box cp.BB, c color.RGBA, filled bool)
}

// Palette holds the editor feedback colors.
type Palette struct {
	Selected color.RGBA
	Wall     color.RGBA
	Default  color.RGBA
}

func DefaultPalette() Palette {
	return Palette{
		Selected: colornames.Lime,
		Wall:     colornames.Blue,
		Default:  colornames.Red,
	}
}

// Manager owns the level's tiles and the editor selection over them.
type Manager struct {
	tiles     []*tile.Tile
	selection Selection

	scene    SceneGraph
	collider Collider
	textures TextureSource

	path    string
	palette Palette
	history history

	// consumed holds collectables removed during play, in removal order.
	consumed []consumedTile

	tileSize   cp.Vector
	nudgeSpeed float64
}

// NewManager creates an empty manager persisting to path. Any collaborator
// may be nil.
func NewManager(sg SceneGraph, collider Collider, textures TextureSource, path string) *Manager {
	return &Manager{
		scene:      sg,
		collider:   collider,
		textures:   textures,
		path:       path,
		palette:    DefaultPalette(),
		history:    history{max: 100},
		tileSize:   cp.Vector{X: tile.DefaultSize, Y: tile.DefaultSize},
		nudgeSpeed: 60,
	}
}

func (m *Manager) SetPalette(p Palette) { m.palette = p }

// SetMaxUndo bounds the undo stack; zero disables undo.
func (m *Manager) SetMaxUndo(n int) { m.history.setMax(n) }

// SetTileDefaults configures tiles created by clicks and the add action.
func (m *Manager) SetTileDefaults(size cp.Vector, nudgeSpeed float64) {
	if size.X > 0 && size.Y > 0 {
		m.tileSize = size
	}
	if nudgeSpeed > 0 {
		m.nudgeSpeed = nudgeSpeed
	}
}

// Path is the persistence file used by Save and LoadTiles.
func (m *Manager) Path() string { return m.path }

func (m *Manager) SetPath(path string) { m.path = path }

// Tiles returns the collection in insertion order.
func (m *Manager) Tiles() []*tile.Tile {
	out := make([]*tile.Tile, len(m.tiles))
	copy(out, m.tiles)
	return out
}

func (m *Manager) Len() int { return len(m.tiles) }

// Tile returns the tile at idx, or nil when out of range.
func (m *Manager) Tile(idx int) *tile.Tile {
	if idx < 0 || idx >= len(m.tiles) {
		return nil
	}
	return m.tiles[idx]
}

// Selection exposes the current selection for read access.
func (m *Manager) Selection() *Selection { return &m.selection }

// Selected returns the selected tiles in index order.
func (m *Manager) Selected() []*tile.Tile {
	idxs := m.selection.Indices()
	out := make([]*tile.Tile, 0, len(idxs))
	for _, idx := range idxs {
		out = append(out, m.tiles[idx])
	}
	return out
}

// HitTest returns the index of the first tile, in insertion order, whose
// bounding box contains point, or -1.
func (m *Manager) HitTest(point cp.Vector) int {
	for i, t := range m.tiles {
		if m.contains(t.Bounds(), point) {
			return i
		}
	}
	return -1
}

func (m *Manager) contains(box cp.BB, point cp.Vector) bool {
	if m.collider != nil {
		return m.collider.BoundingBoxContains(box, point)
	}
	return box.ContainsVect(point)
}

// HandleInput processes one frame of editor input.
func (m *Manager) HandleInput(dt float64, in control.Source) {
	if in == nil {
		return
	}
	modifier := in.IsDown(control.ActionModifier)

	if in.IsDown(control.ActionSelect) {
		m.click(in.CursorWorld(), modifier)
		in.Consume(control.ActionSelect)
	}

	for _, idx := range m.selection.Indices() {
		m.tiles[idx].HandleInput(dt, in)
	}

	m.recolor()

	if modifier && in.IsDown(control.ActionDuplicate) {
		m.DuplicateSelected()
		in.Consume(control.ActionDuplicate)
	}

	if modifier && in.IsDown(control.ActionUndo) {
		m.Undo()
		in.Consume(control.ActionUndo)
	}

	if in.IsDown(control.ActionDelete) {
		m.DeleteSelected()
		in.Consume(control.ActionDelete)
	}
}

// click applies the selection rules for a press at pos. An empty-space click
// with a live selection only deselects; a tile is created only when nothing
// was selected.
func (m *Manager) click(pos cp.Vector, modifier bool) {
	hit := m.HitTest(pos)
	switch {
	case hit >= 0 && modifier:
		m.ToggleSelected(hit)
	case hit >= 0:
		m.SelectOnly(hit)
	case modifier:
		m.ClearSelection()
	case m.selection.Len() > 0:
		m.ClearSelection()
	default:
		m.AddTileAt(pos)
	}
}

func (m *Manager) recolor() {
	for i, t := range m.tiles {
		switch {
		case m.selection.Has(i):
			t.SetColor(m.palette.Selected)
		case t.Tag() == tile.TagWall:
			t.SetColor(m.palette.Wall)
		default:
			t.SetColor(m.palette.Default)
		}
	}
}

// Update advances every tile.
func (m *Manager) Update(dt float64) {
	for _, t := range m.tiles {
		if t != nil {
			t.Update(dt)
		}
	}
}

// Render draws every tile. In edit mode each tile also gets its bounding
// box outline and untextured tiles are filled so they can be found.
func (m *Manager) Render(r Renderer, editMode bool) {
	if r == nil {
		return
	}
	for i, t := range m.tiles {
		if t == nil {
			continue
		}
		if editMode {
			outline := m.palette.Default
			if m.selection.Has(i) {
				outline = m.palette.Selected
			}
			if t.Texture() == nil {
				fill := t.Color()
				fill.A = 0x60
				r.DrawRect(t.Bounds(), fill, true)
			}
			r.DrawRect(t.Bounds(), outline, false)
		}
		if t.Texture() != nil {
			r.DrawTile(t, editMode)
		}
	}
}

func (m *Manager) newTile(pos cp.Vector) *tile.Tile {
	t := tile.NewAt(pos)
	t.Size = m.tileSize
	t.NudgeSpeed = m.nudgeSpeed
	t.SetColor(m.palette.Default)
	return t
}

func (m *Manager) register(t *tile.Tile) {
	if m.scene != nil {
		m.scene.AddObject(t)
	}
}

func (m *Manager) unregister(t *tile.Tile) {
	if m.scene != nil {
		m.scene.RemoveObject(t)
	}
}

// appendTile adds t to the collection and scene and returns its index.
func (m *Manager) appendTile(t *tile.Tile) int {
	m.register(t)
	m.tiles = append(m.tiles, t)
	return len(m.tiles) - 1
}
