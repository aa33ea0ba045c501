package control

import "github.com/jakecoffman/cp"

// Fake is a scriptable Source for headless callers such as tests and the
// tiles CLI. Consumed actions stay up until Release is called.
type Fake struct {
	Cursor   cp.Vector
	down     map[Action]bool
	consumed map[Action]bool
}

func NewFake() *Fake {
	return &Fake{down: map[Action]bool{}, consumed: map[Action]bool{}}
}

func (f *Fake) CursorWorld() cp.Vector {
	return f.Cursor
}

func (f *Fake) IsDown(a Action) bool {
	return f.down[a] && !f.consumed[a]
}

func (f *Fake) Consume(a Action) {
	if f.down[a] {
		f.consumed[a] = true
	}
}

// Press holds an action down.
func (f *Fake) Press(actions ...Action) {
	for _, a := range actions {
		f.down[a] = true
	}
}

// Release lets go of an action, clearing any consumed mark.
func (f *Fake) Release(actions ...Action) {
	for _, a := range actions {
		delete(f.down, a)
		delete(f.consumed, a)
	}
}

// Click moves the cursor and presses the select button.
func (f *Fake) Click(x, y float64) {
	f.Release(ActionSelect)
	f.Cursor = cp.Vector{X: x, Y: y}
	f.Press(ActionSelect)
}
