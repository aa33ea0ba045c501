package main

import (
	"fmt"
	"log"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/camera"
	"github.com/milk9111/platformer/config"
	"github.com/milk9111/platformer/control"
	"github.com/milk9111/platformer/editorui"
	"github.com/milk9111/platformer/input"
	"github.com/milk9111/platformer/render"
	"github.com/milk9111/platformer/rules"
	"github.com/milk9111/platformer/scene"
	"github.com/milk9111/platformer/tilemap"
	"github.com/milk9111/platformer/watch"
	"golang.design/x/clipboard"
)

type gameState int

const (
	stateLevel gameState = iota
	stateTileEditor
)

const (
	frameDt = 1.0 / 60
	// ownWriteWindow hides watcher events caused by the game's own save.
	ownWriteWindow = 500 * time.Millisecond
)

// Clipboard carries copied tile records between editor sessions.
type Clipboard interface {
	WriteText(s string)
	ReadText() string
}

// systemClipboard uses the OS clipboard and falls back to process memory
// when it is unavailable, such as on a headless X server.
type systemClipboard struct {
	ok       bool
	fallback string
}

func newSystemClipboard() *systemClipboard {
	c := &systemClipboard{}
	if err := clipboard.Init(); err != nil {
		log.Printf("game: clipboard unavailable, using memory: %v", err)
		return c
	}
	c.ok = true
	return c
}

func (c *systemClipboard) WriteText(s string) {
	c.fallback = s
	if c.ok {
		clipboard.Write(clipboard.FmtText, []byte(s))
	}
}

func (c *systemClipboard) ReadText() string {
	if c.ok {
		if b := clipboard.Read(clipboard.FmtText); len(b) > 0 {
			return string(b)
		}
	}
	return c.fallback
}

type Game struct {
	cfg   config.Config
	state gameState

	world    *scene.World
	tiles    *tilemap.Manager
	camera   *camera.Camera
	input    *input.Input
	renderer *render.Renderer
	scorer   *rules.Scorer
	watcher  *watch.Watcher
	clip     Clipboard

	level  *Level
	editor *Editor

	pauseUI *ebitenui.UI
	paused  bool
	quit    bool
	savedAt time.Time
}

func NewGame(cfg config.Config, startInEditor bool) (*Game, error) {
	world := scene.NewWorld()
	textures := render.LoadTextures(cfg.Paths.Textures)

	tiles := tilemap.NewManager(world, world, textures, cfg.Paths.Tiles)
	tiles.SetPalette(tilemap.Palette{
		Selected: cfg.Palette.Selected.ToRGBA(),
		Wall:     cfg.Palette.Wall.ToRGBA(),
		Default:  cfg.Palette.Default.ToRGBA(),
	})
	tiles.SetMaxUndo(cfg.Editor.MaxUndo)
	tiles.SetTileDefaults(cp.Vector{X: cfg.Editor.TileSize, Y: cfg.Editor.TileSize}, cfg.Editor.NudgeSpeed)
	if !tiles.LoadTiles() {
		log.Printf("game: starting with an empty level, %s will be created on save", cfg.Paths.Tiles)
	}

	scorer := loadScorer(cfg.Paths.Rules)

	cam := camera.New(cfg.Screen.Width, cfg.Screen.Height)
	in := input.NewInput(cam)

	g := &Game{
		cfg:      cfg,
		world:    world,
		tiles:    tiles,
		camera:   cam,
		input:    in,
		renderer: render.NewRenderer(cam),
		scorer:   scorer,
		clip:     newSystemClipboard(),
	}

	layout := editorui.Layout{
		ScreenWidth:   cfg.Screen.Width,
		ScreenHeight:  cfg.Screen.Height,
		WidthFraction: cfg.Editor.PanelWidthFraction,
	}
	editor, err := NewEditor(tiles, cam, layout, cfg.Editor.ZoomStep, in)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	g.editor = editor
	editor.panel.OnSave = func(ok bool) {
		if ok {
			g.savedAt = time.Now()
		}
	}
	g.level = NewLevel(cfg.Player, world, tiles, cam, scorer)
	g.pauseUI = NewPauseUI(g)

	w, err := watch.NewWatcher(cfg.Paths.Tiles, cfg.Paths.Rules)
	if err != nil {
		log.Printf("game: hot reload disabled: %v", err)
	} else {
		g.watcher = w
	}

	if startInEditor {
		g.enterEditor()
	} else {
		g.enterLevel()
	}
	return g, nil
}

// loadScorer compiles the rules script, falling back to the built-in one.
func loadScorer(path string) *rules.Scorer {
	if path != "" {
		s, err := rules.Load(path)
		if err == nil {
			return s
		}
		log.Printf("game: %v; using default scoring", err)
	}
	s, err := rules.New([]byte(rules.DefaultScript))
	if err != nil {
		log.Printf("game: default rules: %v", err)
	}
	return s
}

func (g *Game) enterEditor() {
	g.level.Exit()
	g.state = stateTileEditor
	g.input.Blocked = g.editor.Blocked
	g.input.Typing = g.editor.Typing
}

func (g *Game) enterLevel() {
	if g.state == stateTileEditor {
		g.tiles.ClearSelection()
	}
	g.state = stateLevel
	g.input.Blocked = nil
	g.input.Typing = nil
	g.level.Enter()
}

func (g *Game) Update() error {
	g.input.Update()
	if g.quit || g.input.Pressed(control.ActionQuit) {
		g.Close()
		return ebiten.Termination
	}

	switch g.state {
	case stateLevel:
		g.updateLevel()
	case stateTileEditor:
		if g.input.Pressed(control.ActionToggleEditor) {
			g.save()
			g.enterLevel()
			return nil
		}
		g.editor.Update(frameDt, g.input, g.clip)
	}
	return nil
}

func (g *Game) updateLevel() {
	if g.input.Pressed(control.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return
	}
	if g.input.Pressed(control.ActionToggleEditor) {
		g.enterEditor()
		return
	}
	g.hotReload()
	g.level.Update(frameDt, g.input)
}

// hotReload applies external edits to the tile file and the rules script.
func (g *Game) hotReload() {
	if g.watcher == nil {
		return
	}
	for _, name := range g.watcher.Drain() {
		switch {
		case watch.Matches(g.tiles.Path(), name):
			if time.Since(g.savedAt) < ownWriteWindow {
				continue
			}
			log.Printf("game: reloading %s", name)
			g.level.Exit()
			g.tiles.Reload()
			g.level.Enter()
		case watch.Matches(g.scorer.Path(), name):
			if err := g.scorer.Reload(); err != nil {
				log.Printf("game: %v", err)
				continue
			}
			log.Printf("game: reloaded %s", name)
		}
	}
}

func (g *Game) save() {
	if g.tiles.Save() {
		g.savedAt = time.Now()
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Begin(screen)
	switch g.state {
	case stateLevel:
		g.level.Draw(screen, g.renderer)
		if g.paused {
			g.pauseUI.Draw(screen)
		}
	case stateTileEditor:
		g.editor.Draw(screen, g.renderer)
	}
}

// Close releases the file watcher.
func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("game: %v", err)
		}
		g.watcher = nil
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.cfg.Screen.Width), float64(g.cfg.Screen.Height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
