package editorui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/tile"
	"github.com/milk9111/platformer/tilemap"
)

// Help is shown at the top of the panel.
var Help = []string{
	"Click: select / place tile",
	"Ctrl+Click: toggle selection",
	"Ctrl+D: duplicate   Del: delete",
	"Ctrl+C / Ctrl+V: copy / paste",
	"Ctrl+Z: undo   Arrows: nudge",
	"Right drag: pan   Wheel: zoom",
	"Tab: save and play",
}

// TileEntry is one row of the tile list.
type TileEntry struct {
	Index int
	Label string
}

// Model adapts the manager's selection-bound operations to the text and
// button oriented controls of the panel.
type Model struct {
	m *tilemap.Manager
}

func NewModel(m *tilemap.Manager) *Model {
	return &Model{m: m}
}

func (md *Model) Manager() *tilemap.Manager { return md.m }

// Summary is the selected tile count line.
func (md *Model) Summary() string {
	return fmt.Sprintf("Selected: %d of %d", md.m.Selection().Len(), md.m.Len())
}

// Entries lists every tile for the tile list.
func (md *Model) Entries() []TileEntry {
	tiles := md.m.Tiles()
	out := make([]TileEntry, len(tiles))
	for i, t := range tiles {
		tag := t.Tag()
		if tag == "" {
			tag = "(untagged)"
		}
		out[i] = TileEntry{
			Index: i,
			Label: fmt.Sprintf("%d. %s (%s, %s)", i, tag, formatNumber(t.Position.X), formatNumber(t.Position.Y)),
		}
	}
	return out
}

// SelectEntry applies a tile list click; toggle mirrors the modifier key.
func (md *Model) SelectEntry(idx int, toggle bool) {
	if toggle {
		md.m.ToggleSelected(idx)
		return
	}
	md.m.SelectOnly(idx)
}

// Signature changes whenever the panel needs to refresh its widgets.
func (md *Model) Signature() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d|", md.m.Len())
	for _, idx := range md.m.Selection().Indices() {
		fmt.Fprintf(&b, "%d,", idx)
	}
	if t := md.m.DetailTile(); t != nil {
		fmt.Fprintf(&b, "|%s|%v|%v", t.Tag(), t.Position, t.Size)
		for _, f := range tile.Flags {
			fmt.Fprintf(&b, "%t", f.Get(t))
		}
	}
	return b.String()
}

// PositionText is the average position of the selection as field text.
func (md *Model) PositionText() (string, string) {
	v, ok := md.m.AveragePosition()
	if !ok {
		return "", ""
	}
	return formatNumber(v.X), formatNumber(v.Y)
}

// SizeText is the average size of the selection as field text.
func (md *Model) SizeText() (string, string) {
	v, ok := md.m.AverageSize()
	if !ok {
		return "", ""
	}
	return formatNumber(v.X), formatNumber(v.Y)
}

// SetPositionText moves the selection so its average lands on the typed
// values.
func (md *Model) SetPositionText(xs, ys string) error {
	v, err := parseVector(xs, ys)
	if err != nil {
		return fmt.Errorf("editorui: position: %w", err)
	}
	md.m.SetAveragePosition(v)
	return nil
}

// SetSizeText resizes the selection so its average size matches the typed
// values, within the editor's clamp range.
func (md *Model) SetSizeText(ws, hs string) error {
	v, err := parseVector(ws, hs)
	if err != nil {
		return fmt.Errorf("editorui: size: %w", err)
	}
	md.m.SetAverageSize(v)
	return nil
}

// StepPosition backs the position ± buttons.
func (md *Model) StepPosition(dx, dy float64) {
	md.m.MoveSelected(cp.Vector{X: dx, Y: dy})
}

// StepSize backs the scale ± buttons.
func (md *Model) StepSize(dw, dh float64) {
	md.m.ResizeSelected(cp.Vector{X: dw, Y: dh})
}

func (md *Model) ShowDetails() bool { return md.m.ShowDetails() }

// Tag is the tag shown in the detail field.
func (md *Model) Tag() string {
	if t := md.m.DetailTile(); t != nil {
		return t.Tag()
	}
	return ""
}

func (md *Model) SetTag(tag string) {
	md.m.SetTag(strings.TrimSpace(tag))
}

// Flag is the flag value shown in the detail toggle.
func (md *Model) Flag(f tile.Flag) bool {
	return f.Get(md.m.DetailTile())
}

// ToggleFlag flips f on the whole selection, using the detail tile's value
// as the current state.
func (md *Model) ToggleFlag(f tile.Flag) bool {
	v := !md.Flag(f)
	md.m.SetFlag(f, v)
	return v
}

// ApplyArchetype applies the named preset to the selection.
func (md *Model) ApplyArchetype(name string) bool {
	a, ok := tile.ArchetypeByName(name)
	if !ok {
		return false
	}
	md.m.ApplyArchetype(a)
	return true
}

func (md *Model) TextureNames() []string { return md.m.TextureNames() }

func (md *Model) ApplyTexture(name string) bool { return md.m.ApplyTexture(name) }

// AddTile places a new tile at pos and selects it.
func (md *Model) AddTile(pos cp.Vector) { md.m.AddTileAt(pos) }

func (md *Model) DeleteSelected() int { return md.m.DeleteSelected() }

func (md *Model) Save() bool { return md.m.Save() }

func parseVector(xs, ys string) (cp.Vector, error) {
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return cp.Vector{}, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return cp.Vector{}, err
	}
	return cp.Vector{X: x, Y: y}, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
