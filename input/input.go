package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/camera"
	"github.com/milk9111/platformer/control"
	"github.com/milk9111/platformer/scene"
)

// Input polls Ebiten once per frame and serves it as a control.Source.
// A consumed action stays up until it is released.
type Input struct {
	camera *camera.Camera

	down     map[control.Action]bool
	consumed map[control.Action]bool

	cursorX, cursorY int
	wheelY           float64

	// Blocked reports screen positions owned by an overlay, such as the
	// editor panel. Pointer actions there are ignored.
	Blocked func(x, y int) bool
	// Typing reports whether a text field has keyboard focus.
	Typing func() bool
}

func NewInput(cam *camera.Camera) *Input {
	return &Input{
		camera:   cam,
		down:     map[control.Action]bool{},
		consumed: map[control.Action]bool{},
	}
}

var keyBindings = map[control.Action][]ebiten.Key{
	control.ActionModifier:     {ebiten.KeyControl, ebiten.KeyMeta},
	control.ActionFast:         {ebiten.KeyShift},
	control.ActionDuplicate:    {ebiten.KeyD},
	control.ActionDelete:       {ebiten.KeyDelete, ebiten.KeyBackspace},
	control.ActionCopy:         {ebiten.KeyC},
	control.ActionPaste:        {ebiten.KeyV},
	control.ActionUndo:         {ebiten.KeyZ},
	control.ActionNudgeLeft:    {ebiten.KeyArrowLeft},
	control.ActionNudgeRight:   {ebiten.KeyArrowRight},
	control.ActionNudgeUp:      {ebiten.KeyArrowUp},
	control.ActionNudgeDown:    {ebiten.KeyArrowDown},
	control.ActionMoveLeft:     {ebiten.KeyA},
	control.ActionMoveRight:    {ebiten.KeyD},
	control.ActionJump:         {ebiten.KeySpace, ebiten.KeyW},
	control.ActionToggleEditor: {ebiten.KeyTab},
	control.ActionPause:        {ebiten.KeyP},
	control.ActionQuit:         {ebiten.KeyEscape},
}

var mouseBindings = map[control.Action]ebiten.MouseButton{
	control.ActionSelect: ebiten.MouseButtonLeft,
	control.ActionPan:    ebiten.MouseButtonRight,
}

// Update polls the devices. Call it once at the start of every frame.
func (i *Input) Update() {
	i.cursorX, i.cursorY = ebiten.CursorPosition()
	_, i.wheelY = ebiten.Wheel()

	typing := i.Typing != nil && i.Typing()
	blocked := i.Blocked != nil && i.Blocked(i.cursorX, i.cursorY)

	for a, keys := range keyBindings {
		pressed := false
		if !typing || a == control.ActionQuit {
			for _, k := range keys {
				if ebiten.IsKeyPressed(k) {
					pressed = true
					break
				}
			}
		}
		i.set(a, pressed)
	}
	for a, b := range mouseBindings {
		pressed := ebiten.IsMouseButtonPressed(b)
		// a press that started over an overlay never reaches the canvas
		if blocked && !i.down[a] {
			pressed = false
		}
		i.set(a, pressed)
	}
}

func (i *Input) set(a control.Action, pressed bool) {
	if !pressed {
		delete(i.down, a)
		delete(i.consumed, a)
		return
	}
	i.down[a] = true
}

// CursorWorld is the cursor position mapped through the camera.
func (i *Input) CursorWorld() cp.Vector {
	if i.camera == nil {
		return cp.Vector{X: float64(i.cursorX), Y: float64(i.cursorY)}
	}
	return i.camera.ScreenToWorld(float64(i.cursorX), float64(i.cursorY))
}

// CursorScreen is the raw cursor position.
func (i *Input) CursorScreen() (int, int) {
	return i.cursorX, i.cursorY
}

// Wheel is the vertical scroll of this frame.
func (i *Input) Wheel() float64 {
	if i.Blocked != nil && i.Blocked(i.cursorX, i.cursorY) {
		return 0
	}
	return i.wheelY
}

func (i *Input) IsDown(a control.Action) bool {
	return i.down[a] && !i.consumed[a]
}

func (i *Input) Consume(a control.Action) {
	if i.down[a] {
		i.consumed[a] = true
	}
}

// Pressed reports a fresh press and consumes it, so it fires once per press.
func (i *Input) Pressed(a control.Action) bool {
	if !i.IsDown(a) {
		return false
	}
	i.Consume(a)
	return true
}

// Intent converts the movement actions into player controls.
func (i *Input) Intent() scene.Intent {
	var in scene.Intent
	if i.down[control.ActionMoveLeft] {
		in.MoveX--
	}
	if i.down[control.ActionMoveRight] {
		in.MoveX++
	}
	in.Jump = i.down[control.ActionJump]
	return in
}
