package tilemap

import "github.com/milk9111/platformer/tile"

// history is a bounded stack of full tile-list snapshots.
type history struct {
	stack [][]*tile.Tile
	max   int
}

func (h *history) setMax(n int) {
	if n < 0 {
		n = 0
	}
	h.max = n
	h.trim()
}

func (h *history) push(tiles []*tile.Tile) {
	if h.max == 0 {
		return
	}
	snap := make([]*tile.Tile, len(tiles))
	for i, t := range tiles {
		snap[i] = t.Snapshot()
	}
	h.stack = append(h.stack, snap)
	h.trim()
}

func (h *history) pop() ([]*tile.Tile, bool) {
	n := len(h.stack)
	if n == 0 {
		return nil, false
	}
	snap := h.stack[n-1]
	h.stack[n-1] = nil
	h.stack = h.stack[:n-1]
	return snap, true
}

func (h *history) trim() {
	if over := len(h.stack) - h.max; over > 0 {
		// drop oldest
		h.stack = append(h.stack[:0], h.stack[over:]...)
	}
}

func (h *history) reset() {
	h.stack = nil
}

func (m *Manager) pushHistory() {
	m.history.push(m.tiles)
}

// CanUndo reports whether an undo snapshot is available.
func (m *Manager) CanUndo() bool {
	return len(m.history.stack) > 0
}

// Undo restores the tile list captured before the last edit. The restored
// tiles replace the current ones in the scene and the selection is cleared.
func (m *Manager) Undo() bool {
	snap, ok := m.history.pop()
	if !ok {
		return false
	}
	for _, t := range m.tiles {
		m.unregister(t)
	}
	m.selection.Clear()
	m.tiles = m.tiles[:0]
	for _, t := range snap {
		t.SetEditing(false)
		m.appendTile(t)
	}
	m.recolor()
	return true
}
