package rules

import (
	"fmt"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/platformer/tile"
)

// DefaultScript awards one point per collectable.
const DefaultScript = `
score := func(tile, total) {
	if tile.tag == "Collectable" {
		return 1
	}
	return 0
}
`

const dispatchScript = `
__points = score(__tile, __total)
`

// Scorer runs a tengo script that decides how many points a consumed tile
// is worth. The script must define score(tile, total).
type Scorer struct {
	path     string
	compiled *tengo.Compiled
}

// New compiles src.
func New(src []byte) (*Scorer, error) {
	compiled, err := compile(src)
	if err != nil {
		return nil, err
	}
	return &Scorer{compiled: compiled}, nil
}

// Load compiles the script at path.
func Load(path string) (*Scorer, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rules: load %s: %w", path, err)
	}
	s, err := New(src)
	if err != nil {
		return nil, fmt.Errorf("rules: %s: %w", path, err)
	}
	s.path = path
	return s, nil
}

func (s *Scorer) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Reload recompiles the script from its path. On failure the previous
// script stays active.
func (s *Scorer) Reload() error {
	if s == nil || s.path == "" {
		return fmt.Errorf("rules: reload: no script path")
	}
	next, err := Load(s.path)
	if err != nil {
		return err
	}
	s.compiled = next.compiled
	return nil
}

// Score returns the points for consuming t when total points have already
// been scored.
func (s *Scorer) Score(t *tile.Tile, total int) (int, error) {
	if s == nil || s.compiled == nil || t == nil {
		return 0, nil
	}
	if err := s.compiled.Set("__tile", tileObject(t)); err != nil {
		return 0, fmt.Errorf("rules: score: %w", err)
	}
	if err := s.compiled.Set("__total", total); err != nil {
		return 0, fmt.Errorf("rules: score: %w", err)
	}
	if err := s.compiled.Run(); err != nil {
		return 0, fmt.Errorf("rules: score: %w", err)
	}
	return s.compiled.Get("__points").Int(), nil
}

func compile(src []byte) (*tengo.Compiled, error) {
	full := string(src) + "\n" + dispatchScript
	script := tengo.NewScript([]byte(full))
	_ = script.Add("__tile", map[string]any{})
	_ = script.Add("__total", 0)
	_ = script.Add("__points", 0)

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return compiled, nil
}

func tileObject(t *tile.Tile) *tengo.ImmutableMap {
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"tag":      &tengo.String{Value: t.Tag()},
		"texture":  &tengo.String{Value: t.TextureName()},
		"x":        &tengo.Float{Value: t.Position.X},
		"y":        &tengo.Float{Value: t.Position.Y},
		"w":        &tengo.Float{Value: t.Size.X},
		"h":        &tengo.Float{Value: t.Size.Y},
		"trigger":  boolObject(t.Trigger()),
		"static":   boolObject(t.Static()),
		"massless": boolObject(t.Massless()),
	}}
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}
