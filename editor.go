package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/camera"
	"github.com/milk9111/platformer/control"
	"github.com/milk9111/platformer/editorui"
	"github.com/milk9111/platformer/editorui/panel"
	"github.com/milk9111/platformer/input"
	"github.com/milk9111/platformer/render"
	"github.com/milk9111/platformer/tilemap"
)

// pasteOffset shifts pasted tiles so they do not hide the originals.
var pasteOffset = cp.Vector{X: 16, Y: 16}

// Editor is tile edit mode: a pannable, zoomable canvas on the left and the
// inspector panel on the right.
type Editor struct {
	tiles    *tilemap.Manager
	camera   *camera.Camera
	panel    *panel.Panel
	layout   editorui.Layout
	zoomStep float64

	panning      bool
	lastX, lastY int
}

func NewEditor(tiles *tilemap.Manager, cam *camera.Camera, layout editorui.Layout, zoomStep float64, in *input.Input) (*Editor, error) {
	p, err := panel.New(layout, editorui.NewModel(tiles))
	if err != nil {
		return nil, err
	}
	e := &Editor{
		tiles:    tiles,
		camera:   cam,
		panel:    p,
		layout:   layout,
		zoomStep: zoomStep,
	}
	p.Modifier = func() bool { return in.IsDown(control.ActionModifier) }
	p.AddPosition = func() cp.Vector {
		x, y := layout.CanvasCenter()
		return cam.ScreenToWorld(x, y)
	}
	return e, nil
}

// Typing reports whether a panel text field owns the keyboard.
func (e *Editor) Typing() bool { return e.panel.Typing() }

// Blocked reports whether the screen point belongs to the panel.
func (e *Editor) Blocked(x, y int) bool { return e.panel.Contains(x, y) }

func (e *Editor) Update(dt float64, in *input.Input, clip Clipboard) {
	e.updateCamera(in)

	modifier := in.IsDown(control.ActionModifier)
	if modifier && in.Pressed(control.ActionCopy) {
		if text := e.tiles.CopySelected(); text != "" {
			clip.WriteText(text)
		}
	}
	if modifier && in.Pressed(control.ActionPaste) {
		if text := clip.ReadText(); text != "" {
			e.tiles.Paste(text, pasteOffset)
		}
	}

	e.tiles.HandleInput(dt, in)
	e.tiles.Update(dt)
	e.panel.Update()
}

func (e *Editor) updateCamera(in *input.Input) {
	x, y := in.CursorScreen()
	if in.IsDown(control.ActionPan) {
		if e.panning {
			e.camera.Pan(float64(x-e.lastX), float64(y-e.lastY))
		}
		e.panning = true
	} else {
		e.panning = false
	}
	e.lastX, e.lastY = x, y

	if w := in.Wheel(); w != 0 {
		step := e.zoomStep
		if w < 0 {
			step = -step
		}
		e.camera.ZoomAt(step, float64(x), float64(y))
	}
}

func (e *Editor) Draw(screen *ebiten.Image, r *render.Renderer) {
	e.tiles.Render(r, true)
	e.panel.Draw(screen)
}
