package scene

import (
	"math"

	"github.com/jakecoffman/cp"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeBody
)

// Physics owns the Chipmunk space used by level mode: one static box per
// solid tile and dynamic boxes for actors.
type Physics struct {
	space  *cp.Space
	static []*cp.Shape
	solids []cp.BB
}

// NewPhysics creates a space with downward gravity (screen coordinates).
func NewPhysics(gravity float64) *Physics {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	return &Physics{space: space}
}

// Space returns the underlying Chipmunk space.
func (p *Physics) Space() *cp.Space {
	if p == nil {
		return nil
	}
	return p.space
}

// SetSolids replaces every static shape with one box per bounding box.
func (p *Physics) SetSolids(boxes []cp.BB) {
	if p == nil || p.space == nil {
		return
	}
	for _, s := range p.static {
		p.space.RemoveShape(s)
	}
	p.static = p.static[:0]
	p.solids = p.solids[:0]
	for _, bb := range boxes {
		if bb.R <= bb.L || bb.T <= bb.B {
			continue
		}
		shape := cp.NewBox2(p.space.StaticBody, bb, 0)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		p.space.AddShape(shape)
		p.static = append(p.static, shape)
		p.solids = append(p.solids, bb)
	}
}

// Solids returns the boxes of the current static shapes.
func (p *Physics) Solids() []cp.BB {
	if p == nil {
		return nil
	}
	return p.solids
}

// AddBox creates a dynamic, rotation-locked box body centered at center.
func (p *Physics) AddBox(center cp.Vector, w, h float64) *cp.Body {
	if p == nil || p.space == nil {
		return nil
	}
	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(center)
	shape := cp.NewBox(body, w, h, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeBody)
	p.space.AddBody(body)
	p.space.AddShape(shape)
	return body
}

// Supported reports whether a thin strip just below bb touches a solid.
func (p *Physics) Supported(bb cp.BB) bool {
	if p == nil {
		return false
	}
	feet := cp.BB{L: bb.L + 1, B: bb.T, R: bb.R - 1, T: bb.T + 2}
	for _, s := range p.solids {
		if feet.Intersects(s) {
			return true
		}
	}
	return false
}

// Step advances the simulation by dt seconds.
func (p *Physics) Step(dt float64) {
	if p == nil || p.space == nil || dt <= 0 {
		return
	}
	p.space.Step(dt)
}
