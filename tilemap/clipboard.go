package tilemap

import (
	"bytes"
	"log"
	"strings"

	"github.com/jakecoffman/cp"
)

// CopySelected encodes the selected tiles as records, one per line.
func (m *Manager) CopySelected() string {
	sel := m.Selected()
	if len(sel) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := Encode(&buf, sel); err != nil {
		log.Printf("tilemap: copy: %v", err)
		return ""
	}
	return buf.String()
}

// Paste decodes records from text, shifts them by offset, appends them and
// makes them the selection. It returns the number of pasted tiles.
func (m *Manager) Paste(text string, offset cp.Vector) int {
	tiles, _, err := Decode(strings.NewReader(text), m.textures)
	if err != nil {
		log.Printf("tilemap: paste: %v", err)
	}
	if len(tiles) == 0 {
		return 0
	}
	m.pushHistory()
	m.ClearSelection()
	for _, t := range tiles {
		t.Position = t.Position.Add(offset)
		t.NudgeSpeed = m.nudgeSpeed
		idx := m.appendTile(t)
		m.selection.Add(idx)
		t.SetEditing(true)
	}
	m.recolor()
	return len(tiles)
}
