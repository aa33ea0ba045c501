package tilemap

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/texture"
	"github.com/milk9111/platformer/tile"
)

// Field order of one tile record.
const (
	fieldTag = iota
	fieldX
	fieldY
	fieldW
	fieldH
	fieldTrigger
	fieldStatic
	fieldMassless
	fieldIsTile
	fieldTexture

	minFields = fieldTexture
)

// Report describes what Decode accepted.
type Report struct {
	Lines    int
	Accepted int
	// Dropped holds the 1-based line numbers of rejected records.
	Dropped []int
}

// Encode writes one record per tile.
func Encode(w io.Writer, tiles []*tile.Tile) error {
	cw := csv.NewWriter(w)
	for _, t := range tiles {
		if t == nil {
			continue
		}
		if err := cw.Write(Record(t)); err != nil {
			return fmt.Errorf("tilemap: encode: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("tilemap: encode: %w", err)
	}
	return nil
}

// Record renders t as its persisted fields.
func Record(t *tile.Tile) []string {
	return []string{
		singleLine(t.Tag()),
		formatFloat(t.Position.X),
		formatFloat(t.Position.Y),
		formatFloat(t.Size.X),
		formatFloat(t.Size.Y),
		formatBool(t.Trigger()),
		formatBool(t.Static()),
		formatBool(t.Massless()),
		formatBool(t.IsTile()),
		singleLine(t.TextureName()),
	}
}

// Decode reads records line by line. Malformed lines are skipped and listed
// in the report. Texture names resolve through textures, which may be nil.
// Lines have no length limit.
func Decode(r io.Reader, textures TextureSource) ([]*tile.Tile, Report, error) {
	var (
		tiles []*tile.Tile
		rep   Report
	)
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			rep.Lines++
			line = strings.TrimRight(line, "\r\n")
			if strings.TrimSpace(line) != "" {
				if t, ok := ParseRecord(line, textures); ok {
					tiles = append(tiles, t)
					rep.Accepted++
				} else {
					rep.Dropped = append(rep.Dropped, rep.Lines)
				}
			}
		}
		if err == io.EOF {
			return tiles, rep, nil
		}
		if err != nil {
			return tiles, rep, fmt.Errorf("tilemap: decode: %w", err)
		}
	}
}

// ParseRecord parses a single line. It reports false for lines with fewer
// than nine fields or a field that does not parse.
func ParseRecord(line string, textures TextureSource) (*tile.Tile, bool) {
	cr := csv.NewReader(strings.NewReader(line))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	fields, err := cr.Read()
	if err != nil || len(fields) < minFields {
		return nil, false
	}

	var nums [4]float64
	for i := range nums {
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[fieldX+i]), 64)
		if err != nil {
			return nil, false
		}
		nums[i] = v
	}
	var flags [4]bool
	for i := range flags {
		v, err := strconv.Atoi(strings.TrimSpace(fields[fieldTrigger+i]))
		if err != nil {
			return nil, false
		}
		flags[i] = v != 0
	}

	t := tile.NewAt(cp.Vector{X: nums[0], Y: nums[1]})
	t.Size = cp.Vector{X: nums[2], Y: nums[3]}
	t.SetTag(fields[fieldTag])
	t.SetTrigger(flags[0])
	t.SetStatic(flags[1])
	t.SetMassless(flags[2])
	t.SetIsTile(flags[3])

	if len(fields) > fieldTexture {
		if name := strings.TrimSpace(fields[fieldTexture]); name != "" {
			t.SetTexture(name, lookupTexture(textures, name))
		}
	}
	return t, true
}

func lookupTexture(textures TextureSource, name string) texture.Texture {
	if textures == nil {
		return nil
	}
	tex, ok := textures.Get(name)
	if !ok {
		return nil
	}
	return tex
}

// SaveTiles writes tiles to path. A failure is logged and reported as false;
// a write interrupted part way leaves the partial file in place.
func SaveTiles(tiles []*tile.Tile, path string) bool {
	f, err := os.Create(path)
	if err != nil {
		log.Printf("tilemap: save %s: %v", path, err)
		return false
	}
	defer f.Close()
	if err := Encode(f, tiles); err != nil {
		log.Printf("tilemap: save %s: %v", path, err)
		return false
	}
	return true
}

// Save writes the manager's tiles to its path.
func (m *Manager) Save() bool {
	return SaveTiles(m.tiles, m.path)
}

// LoadTiles appends the tiles stored at the manager's path and registers
// them. It fails only when the file cannot be opened.
func (m *Manager) LoadTiles() bool {
	f, err := os.Open(m.path)
	if err != nil {
		log.Printf("tilemap: load %s: %v", m.path, err)
		return false
	}
	defer f.Close()

	tiles, rep, err := Decode(f, m.textures)
	if err != nil {
		log.Printf("tilemap: load %s: %v", m.path, err)
	}
	if len(rep.Dropped) > 0 {
		log.Printf("tilemap: load %s: dropped %d malformed lines", m.path, len(rep.Dropped))
	}
	for _, t := range tiles {
		t.NudgeSpeed = m.nudgeSpeed
		m.appendTile(t)
	}
	m.recolor()
	return true
}

// Reload drops every tile and loads the file again.
func (m *Manager) Reload() bool {
	m.Clear()
	return m.LoadTiles()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// singleLine keeps a field on one line so records stay line oriented.
func singleLine(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}
