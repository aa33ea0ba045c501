package main

import (
	"fmt"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/camera"
	"github.com/milk9111/platformer/config"
	"github.com/milk9111/platformer/input"
	"github.com/milk9111/platformer/render"
	"github.com/milk9111/platformer/rules"
	"github.com/milk9111/platformer/scene"
	"github.com/milk9111/platformer/tilemap"
	"golang.org/x/image/colornames"
)

// killMargin is how far below the lowest tile the player may fall before
// respawning.
const killMargin = 600

// Level is play mode: the tiles become static physics boxes, the player runs
// over them and collectables are consumed on contact.
type Level struct {
	cfg    config.PlayerSpec
	world  *scene.World
	tiles  *tilemap.Manager
	camera *camera.Camera
	scorer *rules.Scorer

	physics *scene.Physics
	player  *scene.Player

	score     int
	collected int
}

func NewLevel(cfg config.PlayerSpec, world *scene.World, tiles *tilemap.Manager, cam *camera.Camera, scorer *rules.Scorer) *Level {
	return &Level{
		cfg:    cfg,
		world:  world,
		tiles:  tiles,
		camera: cam,
		scorer: scorer,
	}
}

// Enter rebuilds the physics space from the current tiles and respawns the
// player. Called on startup, after leaving the editor and after a reload.
func (l *Level) Enter() {
	if l.player != nil {
		l.world.RemoveObject(l.player)
	}
	l.score, l.collected = 0, 0

	l.physics = scene.NewPhysics(l.cfg.Gravity)
	var solids []cp.BB
	lowest := 0.0
	for _, t := range l.tiles.Tiles() {
		bb := t.Bounds()
		lowest = math.Max(lowest, bb.T)
		if t.Trigger() {
			continue
		}
		solids = append(solids, bb)
	}
	l.physics.SetSolids(solids)

	_, screenH := l.camera.ScreenSize()
	l.player = scene.NewPlayer(l.physics, cp.Vector{X: l.cfg.SpawnX, Y: l.cfg.SpawnY}, scene.PlayerConfig{
		MoveSpeed: l.cfg.MoveSpeed,
		JumpSpeed: l.cfg.JumpSpeed,
		Width:     l.cfg.Width,
		Height:    l.cfg.Height,
		KillY:     math.Max(lowest, float64(screenH)) + killMargin,
	})
	l.world.AddObject(l.player)

	l.camera.Reset()
	l.camera.SetSmooth(0.15)
	l.camera.Follow(l.player.Center().X)
}

// Exit removes the player and puts collected tiles back so the editor sees
// and saves the level as authored.
func (l *Level) Exit() {
	if l.player != nil {
		l.world.RemoveObject(l.player)
		l.player = nil
	}
	if n := l.tiles.RestoreCollected(); n > 0 {
		log.Printf("level: restored %d collected tiles", n)
	}
	l.camera.SetSmooth(0)
}

func (l *Level) Update(dt float64, in *input.Input) {
	if l.player == nil {
		return
	}
	l.player.Update(dt, in.Intent())
	l.physics.Step(dt)
	l.player.AfterStep()
	l.camera.Follow(l.player.Center().X)

	l.tiles.Update(dt)
	for _, t := range l.tiles.RemoveCollectable() {
		points, err := l.scorer.Score(t, l.score)
		if err != nil {
			log.Printf("level: %v", err)
			continue
		}
		l.score += points
		l.collected++
	}
}

func (l *Level) Draw(screen *ebiten.Image, r *render.Renderer) {
	// untextured tiles are outlined so the level stays playable
	for _, t := range l.tiles.Tiles() {
		switch {
		case t.Texture() != nil:
		case t.Trigger():
			r.DrawRect(t.Bounds(), colornames.Gold, false)
		default:
			r.DrawRect(t.Bounds(), colornames.Gray, false)
		}
	}
	l.tiles.Render(r, false)
	if l.player != nil {
		r.DrawRect(l.player.Bounds(), colornames.Orange, true)
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("Score: %d  Collected: %d\nTab: edit  P: pause  Esc: quit", l.score, l.collected))
}
