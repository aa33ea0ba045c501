package tile

import (
	"image"
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/control"
	"github.com/milk9111/platformer/texture"
	"golang.org/x/image/colornames"
)

const (
	DefaultSize = 50.0
	// MinSize is the smallest width or height a tile may be edited down to.
	MinSize = 0.01

	TagWall        = "Wall"
	TagCollectable = "Collectable"
	TagPlatform    = "Platform"
	TagCheckpoint  = "Checkpoint"
	TagPlayer      = "Player"

	animationFPS = 8.0
)

// Tile is a placeable rectangular level entity. Position is the top-left
// corner in world pixels.
type Tile struct {
	Position cp.Vector
	Size     cp.Vector

	tag         string
	trigger     bool
	static      bool
	massless    bool
	isTile      bool
	textureName string
	texture     texture.Texture

	editing bool
	color   color.RGBA

	frames     int
	frame      int
	frameTimer float64

	NudgeSpeed float64
}

// New returns an untagged, untextured tile of the default size at the origin.
func New() *Tile {
	return &Tile{
		Size:       cp.Vector{X: DefaultSize, Y: DefaultSize},
		isTile:     true,
		color:      colornames.Red,
		frames:     1,
		NudgeSpeed: 60,
	}
}

// NewAt returns a default tile whose top-left corner is at pos.
func NewAt(pos cp.Vector) *Tile {
	t := New()
	t.Position = pos
	return t
}

func (t *Tile) Tag() string           { return t.tag }
func (t *Tile) SetTag(tag string)     { t.tag = tag }
func (t *Tile) Trigger() bool         { return t.trigger }
func (t *Tile) SetTrigger(v bool)     { t.trigger = v }
func (t *Tile) Static() bool          { return t.static }
func (t *Tile) SetStatic(v bool)      { t.static = v }
func (t *Tile) Massless() bool        { return t.massless }
func (t *Tile) SetMassless(v bool)    { t.massless = v }
func (t *Tile) IsTile() bool          { return t.isTile }
func (t *Tile) SetIsTile(v bool)      { t.isTile = v }
func (t *Tile) Editing() bool         { return t.editing }
func (t *Tile) SetEditing(v bool)     { t.editing = v }
func (t *Tile) Color() color.RGBA     { return t.color }
func (t *Tile) SetColor(c color.RGBA) { t.color = c }

// TextureName is the persisted texture reference.
func (t *Tile) TextureName() string { return t.textureName }

// Texture is the runtime handle resolved from TextureName, or nil.
func (t *Tile) Texture() texture.Texture { return t.texture }

// SetTexture sets both the name and the resolved handle. A nil handle keeps
// the name so it survives a save even when the texture is missing.
func (t *Tile) SetTexture(name string, tex texture.Texture) {
	t.textureName = name
	t.texture = tex
	t.frames = frameCount(tex)
	t.frame = 0
	t.frameTimer = 0
}

// Bounds is the tile's bounding box in world space.
func (t *Tile) Bounds() cp.BB {
	return cp.BB{
		L: t.Position.X,
		B: t.Position.Y,
		R: t.Position.X + t.Size.X,
		T: t.Position.Y + t.Size.Y,
	}
}

// Center is the middle of the bounding box.
func (t *Tile) Center() cp.Vector {
	return t.Position.Add(t.Size.Mult(0.5))
}

// Clone copies position, size, tag, texture and the trigger, static and
// massless flags. The clone is not editing and keeps the default IsTile.
func (t *Tile) Clone() *Tile {
	c := New()
	c.Position = t.Position
	c.Size = t.Size
	c.tag = t.tag
	c.SetTexture(t.textureName, t.texture)
	c.trigger = t.trigger
	c.static = t.static
	c.massless = t.massless
	c.NudgeSpeed = t.NudgeSpeed
	return c
}

// Snapshot returns a full value copy, IsTile and editing included. The
// undo stack relies on it.
func (t *Tile) Snapshot() *Tile {
	c := *t
	return &c
}

// HandleInput nudges a selected tile with the arrow keys.
func (t *Tile) HandleInput(dt float64, in control.Source) {
	if in == nil || !t.editing {
		return
	}
	var dir cp.Vector
	if in.IsDown(control.ActionNudgeLeft) {
		dir.X--
	}
	if in.IsDown(control.ActionNudgeRight) {
		dir.X++
	}
	if in.IsDown(control.ActionNudgeUp) {
		dir.Y--
	}
	if in.IsDown(control.ActionNudgeDown) {
		dir.Y++
	}
	if dir.X == 0 && dir.Y == 0 {
		return
	}
	speed := t.NudgeSpeed
	if in.IsDown(control.ActionFast) {
		speed *= 4
	}
	t.Position = t.Position.Add(dir.Mult(speed * dt))
}

// Update advances the strip animation, if the texture has one.
func (t *Tile) Update(dt float64) {
	if t.frames <= 1 || dt <= 0 {
		return
	}
	t.frameTimer += dt
	step := 1.0 / animationFPS
	for t.frameTimer >= step {
		t.frameTimer -= step
		t.frame = (t.frame + 1) % t.frames
	}
}

// Frame returns the current animation frame index.
func (t *Tile) Frame() int { return t.frame }

// FrameRect is the source rectangle of the current frame within the texture.
func (t *Tile) FrameRect() image.Rectangle {
	if t.texture == nil {
		return image.Rectangle{}
	}
	b := t.texture.Bounds()
	if t.frames <= 1 {
		return b
	}
	side := b.Dy()
	x0 := b.Min.X + t.frame*side
	return image.Rect(x0, b.Min.Y, x0+side, b.Max.Y)
}

// frameCount treats a texture whose width is an exact multiple of its
// height as a strip of square frames.
func frameCount(tex texture.Texture) int {
	if tex == nil {
		return 1
	}
	b := tex.Bounds()
	w, h := b.Dx(), b.Dy()
	if h <= 0 || w <= h || w%h != 0 {
		return 1
	}
	return w / h
}
