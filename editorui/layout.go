package editorui

import "image"

// Layout places the editor panel along the right edge of the screen.
type Layout struct {
	ScreenWidth   int
	ScreenHeight  int
	WidthFraction float64
}

// PanelRect is the screen rectangle the panel occupies.
func (l Layout) PanelRect() image.Rectangle {
	f := l.WidthFraction
	if f <= 0 || f > 1 {
		f = 0.25
	}
	w := int(float64(l.ScreenWidth) * f)
	return image.Rect(l.ScreenWidth-w, 0, l.ScreenWidth, l.ScreenHeight)
}

// Contains reports whether the screen point (x, y) is over the panel.
func (l Layout) Contains(x, y int) bool {
	return image.Pt(x, y).In(l.PanelRect())
}

// CanvasCenter is the middle of the screen area left of the panel.
func (l Layout) CanvasCenter() (float64, float64) {
	r := l.PanelRect()
	return float64(r.Min.X) / 2, float64(l.ScreenHeight) / 2
}
