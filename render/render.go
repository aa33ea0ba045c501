package render

import (
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/camera"
	"github.com/milk9111/platformer/texture"
	"github.com/milk9111/platformer/tile"
)

// tintStrength is how much of the feedback color is mixed into a sprite.
const tintStrength = 0.35

// Renderer draws world-space primitives onto the screen through a camera.
type Renderer struct {
	screen *ebiten.Image
	camera *camera.Camera
}

func NewRenderer(cam *camera.Camera) *Renderer {
	return &Renderer{camera: cam}
}

// Begin sets the target for the frame's draw calls.
func (r *Renderer) Begin(screen *ebiten.Image) {
	r.screen = screen
}

func (r *Renderer) toScreen(box cp.BB) (x, y, w, h float32) {
	tl := cp.Vector{X: box.L, Y: box.B}
	zoom := 1.0
	if r.camera != nil {
		tl = r.camera.WorldToScreen(tl)
		zoom = r.camera.Zoom()
	}
	return float32(tl.X), float32(tl.Y), float32((box.R - box.L) * zoom), float32((box.T - box.B) * zoom)
}

// DrawTile draws the tile's current frame stretched over its bounds. With
// tint the feedback color is blended in.
func (r *Renderer) DrawTile(t *tile.Tile, tint bool) {
	if r.screen == nil || t == nil {
		return
	}
	img, ok := t.Texture().(*ebiten.Image)
	if !ok || img == nil {
		return
	}
	src := t.FrameRect()
	if src.Empty() {
		return
	}
	frame := img.SubImage(src).(*ebiten.Image)

	x, y, w, h := r.toScreen(t.Bounds())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w)/float64(src.Dx()), float64(h)/float64(src.Dy()))
	op.GeoM.Translate(float64(x), float64(y))
	op.Filter = ebiten.FilterNearest
	if tint {
		c := t.Color()
		op.ColorScale.Scale(
			mix(c.R),
			mix(c.G),
			mix(c.B),
			1,
		)
	}
	r.screen.DrawImage(frame, op)
}

func mix(v uint8) float32 {
	return 1 - tintStrength + tintStrength*float32(v)/0xff
}

// DrawRect outlines or fills a world-space box.
func (r *Renderer) DrawRect(box cp.BB, c color.RGBA, filled bool) {
	if r.screen == nil {
		return
	}
	x, y, w, h := r.toScreen(box)
	if filled {
		vector.DrawFilledRect(r.screen, x, y, w, h, c, false)
		return
	}
	vector.StrokeRect(r.screen, x, y, w, h, 1, c, false)
}

// LoadTextures decodes every image in dir into GPU images.
func LoadTextures(dir string) *texture.Catalog {
	cat, err := texture.LoadDir(dir, func(img image.Image) texture.Texture {
		return ebiten.NewImageFromImage(img)
	})
	if err != nil {
		log.Printf("render: %v", err)
	}
	return cat
}
