package camera

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
)

const (
	minZoom = 0.1
	maxZoom = 8
)

// Camera maps between world and screen space. Pos is the world point shown
// at the center of the screen.
type Camera struct {
	Pos cp.Vector

	screenW int
	screenH int
	zoom    float64

	// smoothing factor (0..1), 0 snaps
	smooth float64
}

// New creates a camera centered on the middle of the first screen.
func New(screenW, screenH int) *Camera {
	return &Camera{
		Pos:     cp.Vector{X: float64(screenW) / 2, Y: float64(screenH) / 2},
		screenW: screenW,
		screenH: screenH,
		zoom:    1,
	}
}

func (c *Camera) Zoom() float64 { return c.zoom }

func (c *Camera) SetZoom(z float64) {
	if z <= 0 {
		return
	}
	c.zoom = common.Clamp(z, minZoom, maxZoom)
}

func (c *Camera) SetSmooth(f float64) {
	c.smooth = common.Clamp(f, 0, 1)
}

// SetScreenSize updates the logical screen size.
func (c *Camera) SetScreenSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.screenW = w
	c.screenH = h
}

func (c *Camera) ScreenSize() (int, int) { return c.screenW, c.screenH }

// ViewSize is the visible world area.
func (c *Camera) ViewSize() cp.Vector {
	return cp.Vector{X: float64(c.screenW) / c.zoom, Y: float64(c.screenH) / c.zoom}
}

// ViewTopLeft returns the world-space top-left of the current view.
func (c *Camera) ViewTopLeft() cp.Vector {
	return c.Pos.Sub(c.ViewSize().Mult(0.5))
}

func (c *Camera) ScreenToWorld(x, y float64) cp.Vector {
	return c.ViewTopLeft().Add(cp.Vector{X: x, Y: y}.Mult(1 / c.zoom))
}

func (c *Camera) WorldToScreen(p cp.Vector) cp.Vector {
	return p.Sub(c.ViewTopLeft()).Mult(c.zoom)
}

// Follow moves toward target horizontally. The view never scrolls left of
// the world origin and the vertical position stays fixed.
func (c *Camera) Follow(targetX float64) {
	x := math.Max(targetX, c.ViewSize().X/2)
	if c.smooth <= 0 {
		c.Pos.X = x
		return
	}
	c.Pos.X = common.Lerp(c.Pos.X, x, c.smooth)
}

// Pan shifts the view by a screen-space drag delta.
func (c *Camera) Pan(dx, dy float64) {
	c.Pos = c.Pos.Sub(cp.Vector{X: dx, Y: dy}.Mult(1 / c.zoom))
}

// ZoomAt changes zoom by step while keeping the world point under the
// screen position (sx, sy) fixed.
func (c *Camera) ZoomAt(step, sx, sy float64) {
	before := c.ScreenToWorld(sx, sy)
	c.SetZoom(c.zoom * (1 + step))
	after := c.ScreenToWorld(sx, sy)
	c.Pos = c.Pos.Add(before.Sub(after))
}

// Reset restores zoom 1 centered on the first screen.
func (c *Camera) Reset() {
	c.zoom = 1
	c.Pos = cp.Vector{X: float64(c.screenW) / 2, Y: float64(c.screenH) / 2}
}
