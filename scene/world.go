package scene

import "github.com/jakecoffman/cp"

// Object is anything the world tracks for collision queries.
type Object interface {
	Tag() string
	Bounds() cp.BB
}

// World is the registry of live game objects. It answers bounding box
// queries for the editor and the level.
type World struct {
	objects []Object
}

func NewWorld() *World {
	return &World{}
}

// AddObject registers o. Registering the same object twice is a no-op.
func (w *World) AddObject(o Object) {
	if w == nil || o == nil {
		return
	}
	if w.indexOf(o) >= 0 {
		return
	}
	w.objects = append(w.objects, o)
}

// RemoveObject unregisters o if present.
func (w *World) RemoveObject(o Object) {
	if w == nil || o == nil {
		return
	}
	idx := w.indexOf(o)
	if idx < 0 {
		return
	}
	w.objects = append(w.objects[:idx], w.objects[idx+1:]...)
}

// Objects returns the registered objects in registration order.
func (w *World) Objects() []Object {
	if w == nil {
		return nil
	}
	out := make([]Object, len(w.objects))
	copy(out, w.objects)
	return out
}

func (w *World) Len() int {
	if w == nil {
		return 0
	}
	return len(w.objects)
}

// Contains reports whether o is registered.
func (w *World) Contains(o Object) bool {
	return w != nil && w.indexOf(o) >= 0
}

// BoundingBoxContains reports whether point lies inside box, edges included.
func (w *World) BoundingBoxContains(box cp.BB, point cp.Vector) bool {
	return box.ContainsVect(point)
}

// OverlapsWithTag reports whether o overlaps any other registered object
// carrying tag.
func (w *World) OverlapsWithTag(o Object, tag string) bool {
	if w == nil || o == nil {
		return false
	}
	bb := o.Bounds()
	for _, other := range w.objects {
		if other == o || other.Tag() != tag {
			continue
		}
		if bb.Intersects(other.Bounds()) {
			return true
		}
	}
	return false
}

func (w *World) indexOf(o Object) int {
	for i, existing := range w.objects {
		if existing == o {
			return i
		}
	}
	return -1
}
