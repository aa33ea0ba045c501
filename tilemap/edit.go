package tilemap

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/tile"
)

const (
	minAverageSize = tile.MinSize
	maxAverageSize = 1000.0
)

// SelectOnly makes idx the sole selected tile.
func (m *Manager) SelectOnly(idx int) {
	if idx < 0 || idx >= len(m.tiles) {
		return
	}
	m.ClearSelection()
	m.selection.Add(idx)
	m.tiles[idx].SetEditing(true)
}

// ToggleSelected flips idx in or out of the selection.
func (m *Manager) ToggleSelected(idx int) {
	if idx < 0 || idx >= len(m.tiles) {
		return
	}
	m.tiles[idx].SetEditing(m.selection.Toggle(idx))
}

// ClearSelection deselects every tile.
func (m *Manager) ClearSelection() {
	for _, idx := range m.selection.Indices() {
		if t := m.Tile(idx); t != nil {
			t.SetEditing(false)
		}
	}
	m.selection.Clear()
}

// AddTileAt creates a tile with its top-left corner at pos, registers it and
// selects it exclusively.
func (m *Manager) AddTileAt(pos cp.Vector) *tile.Tile {
	m.pushHistory()
	t := m.newTile(pos)
	idx := m.appendTile(t)
	m.SelectOnly(idx)
	return t
}

// DuplicateSelected clones every selected tile. The clones become the whole
// selection. It returns the number of clones.
func (m *Manager) DuplicateSelected() int {
	idxs := m.selection.Indices()
	if len(idxs) == 0 {
		return 0
	}
	m.pushHistory()
	clones := make([]*tile.Tile, 0, len(idxs))
	for _, idx := range idxs {
		clones = append(clones, m.tiles[idx].Clone())
	}
	m.ClearSelection()
	for _, c := range clones {
		idx := m.appendTile(c)
		m.selection.Add(idx)
		c.SetEditing(true)
	}
	return len(clones)
}

// DeleteSelected removes and unregisters the selected tiles, highest index
// first, and clears the selection. It returns the number removed.
func (m *Manager) DeleteSelected() int {
	idxs := m.selection.Descending()
	if len(idxs) == 0 {
		return 0
	}
	m.pushHistory()
	removed := 0
	for _, idx := range idxs {
		if idx < 0 || idx >= len(m.tiles) {
			continue
		}
		m.unregister(m.tiles[idx])
		m.tiles = append(m.tiles[:idx], m.tiles[idx+1:]...)
		removed++
	}
	m.selection.Clear()
	return removed
}

// consumedTile remembers where a collected tile sat in the list.
type consumedTile struct {
	idx  int
	tile *tile.Tile
}

// RemoveCollectable removes every collectable tile touching the player and
// returns them. The selection is renumbered to keep pointing at the
// surviving tiles. Removed tiles are kept until RestoreCollected so play
// never alters the saved level.
func (m *Manager) RemoveCollectable() []*tile.Tile {
	if m.collider == nil {
		return nil
	}
	var collected []*tile.Tile
	var removed []int
	kept := m.tiles[:0]
	for i, t := range m.tiles {
		if t.Tag() == tile.TagCollectable && m.collider.OverlapsWithTag(t, tile.TagPlayer) {
			m.unregister(t)
			collected = append(collected, t)
			removed = append(removed, i)
			m.consumed = append(m.consumed, consumedTile{idx: i - len(removed) + 1, tile: t})
			continue
		}
		kept = append(kept, t)
	}
	for i := len(kept); i < len(m.tiles); i++ {
		m.tiles[i] = nil
	}
	m.tiles = kept
	m.selection.Remap(removed)
	return collected
}

// RestoreCollected puts every tile consumed by RemoveCollectable back at its
// original index and clears the selection. It returns the number restored.
func (m *Manager) RestoreCollected() int {
	n := len(m.consumed)
	if n == 0 {
		return 0
	}
	m.ClearSelection()
	for i := n - 1; i >= 0; i-- {
		c := m.consumed[i]
		idx := min(max(c.idx, 0), len(m.tiles))
		m.tiles = append(m.tiles, nil)
		copy(m.tiles[idx+1:], m.tiles[idx:])
		m.tiles[idx] = c.tile
		c.tile.SetEditing(false)
		m.register(c.tile)
	}
	m.consumed = nil
	m.recolor()
	return n
}

// Clear unregisters and drops every tile, the selection, the undo stack and
// any pending collected tiles.
func (m *Manager) Clear() {
	for _, t := range m.tiles {
		m.unregister(t)
	}
	m.tiles = nil
	m.consumed = nil
	m.selection.Clear()
	m.history.reset()
}

// SetTag sets the tag of every selected tile.
func (m *Manager) SetTag(tag string) {
	if m.selection.Len() == 0 {
		return
	}
	m.pushHistory()
	for _, t := range m.Selected() {
		t.SetTag(tag)
	}
}

// SetFlag sets f on every selected tile.
func (m *Manager) SetFlag(f tile.Flag, v bool) {
	if m.selection.Len() == 0 {
		return
	}
	m.pushHistory()
	for _, t := range m.Selected() {
		f.Set(t, v)
	}
}

// ApplyArchetype writes the preset onto every selected tile.
func (m *Manager) ApplyArchetype(a tile.Archetype) {
	if m.selection.Len() == 0 {
		return
	}
	m.pushHistory()
	for _, t := range m.Selected() {
		a.Apply(t)
	}
}

// ApplyTexture resolves name through the texture source and assigns it to
// every selected tile. It reports false when the name is unknown.
func (m *Manager) ApplyTexture(name string) bool {
	if m.textures == nil || m.selection.Len() == 0 {
		return false
	}
	tex, ok := m.textures.Get(name)
	if !ok {
		return false
	}
	m.pushHistory()
	for _, t := range m.Selected() {
		t.SetTexture(name, tex)
	}
	return true
}

// TextureNames lists the names the texture picker offers.
func (m *Manager) TextureNames() []string {
	if m.textures == nil {
		return nil
	}
	return m.textures.Names()
}

// AveragePosition is the mean top-left corner of the selection.
func (m *Manager) AveragePosition() (cp.Vector, bool) {
	return m.average(func(t *tile.Tile) cp.Vector { return t.Position })
}

// AverageSize is the mean size of the selection.
func (m *Manager) AverageSize() (cp.Vector, bool) {
	return m.average(func(t *tile.Tile) cp.Vector { return t.Size })
}

func (m *Manager) average(get func(*tile.Tile) cp.Vector) (cp.Vector, bool) {
	sel := m.Selected()
	if len(sel) == 0 {
		return cp.Vector{}, false
	}
	var sum cp.Vector
	for _, t := range sel {
		sum = sum.Add(get(t))
	}
	return sum.Mult(1 / float64(len(sel))), true
}

// SetAveragePosition moves every selected tile by the difference between
// target and the current average position.
func (m *Manager) SetAveragePosition(target cp.Vector) {
	avg, ok := m.AveragePosition()
	if !ok {
		return
	}
	m.MoveSelected(target.Sub(avg))
}

// MoveSelected offsets every selected tile by delta.
func (m *Manager) MoveSelected(delta cp.Vector) {
	if m.selection.Len() == 0 || (delta.X == 0 && delta.Y == 0) {
		return
	}
	m.pushHistory()
	for _, t := range m.Selected() {
		t.Position = t.Position.Add(delta)
	}
}

// SetAverageSize grows or shrinks every selected tile by the difference
// between target, clamped to the editor range, and the current average size.
func (m *Manager) SetAverageSize(target cp.Vector) {
	avg, ok := m.AverageSize()
	if !ok {
		return
	}
	target.X = clampf(target.X, minAverageSize, maxAverageSize)
	target.Y = clampf(target.Y, minAverageSize, maxAverageSize)
	m.ResizeSelected(target.Sub(avg))
}

// ResizeSelected adds delta to every selected tile's size. No dimension goes
// below tile.MinSize.
func (m *Manager) ResizeSelected(delta cp.Vector) {
	if m.selection.Len() == 0 || (delta.X == 0 && delta.Y == 0) {
		return
	}
	m.pushHistory()
	for _, t := range m.Selected() {
		t.Size = cp.Vector{
			X: max(t.Size.X+delta.X, tile.MinSize),
			Y: max(t.Size.Y+delta.Y, tile.MinSize),
		}
	}
}

// ShowDetails reports whether per-field controls are meaningful: exactly
// one tile is selected, or every selected tile shares a tag.
func (m *Manager) ShowDetails() bool {
	n := m.selection.Len()
	if n == 0 {
		return false
	}
	return n == 1 || m.allSelectedShareTag()
}

func (m *Manager) allSelectedShareTag() bool {
	sel := m.Selected()
	if len(sel) < 2 {
		return true
	}
	first := sel[0].Tag()
	for _, t := range sel[1:] {
		if t.Tag() != first {
			return false
		}
	}
	return true
}

// DetailTile is the tile whose values the detail controls display: the
// lowest selected index.
func (m *Manager) DetailTile() *tile.Tile {
	idx, ok := m.selection.First()
	if !ok {
		return nil
	}
	return m.Tile(idx)
}

func clampf(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
