package tile

import (
	"image"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/control"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	tl := NewAt(cp.Vector{X: 10, Y: 20})
	assert.Equal(t, cp.Vector{X: DefaultSize, Y: DefaultSize}, tl.Size)
	assert.True(t, tl.IsTile())
	assert.False(t, tl.Trigger())
	assert.Empty(t, tl.Tag())
	assert.Nil(t, tl.Texture())
	assert.Equal(t, cp.BB{L: 10, B: 20, R: 60, T: 70}, tl.Bounds())
	assert.Equal(t, cp.Vector{X: 35, Y: 45}, tl.Center())
}

func TestClone(t *testing.T) {
	src := NewAt(cp.Vector{X: 3, Y: 4})
	src.Size = cp.Vector{X: 7, Y: 9}
	src.SetTag("Coin")
	src.SetTrigger(true)
	src.SetStatic(true)
	src.SetMassless(true)
	src.SetIsTile(false)
	src.SetEditing(true)
	tex := image.NewRGBA(image.Rect(0, 0, 16, 16))
	src.SetTexture("coin", tex)

	c := src.Clone()
	require.NotSame(t, src, c)
	assert.Equal(t, src.Position, c.Position)
	assert.Equal(t, src.Size, c.Size)
	assert.Equal(t, "Coin", c.Tag())
	assert.True(t, c.Trigger())
	assert.True(t, c.Static())
	assert.True(t, c.Massless())
	assert.Equal(t, "coin", c.TextureName())
	assert.Equal(t, tex, c.Texture())
	assert.False(t, c.Editing(), "clones start unselected")
	assert.True(t, c.IsTile(), "clones keep the new-tile default")
}

func TestSnapshotIsIndependent(t *testing.T) {
	src := New()
	src.SetIsTile(false)
	snap := src.Snapshot()
	src.Position = cp.Vector{X: 100}
	assert.Zero(t, snap.Position.X)
	assert.False(t, snap.IsTile())
}

func TestHandleInputNudges(t *testing.T) {
	cases := []struct {
		name    string
		editing bool
		keys    []control.Action
		want    cp.Vector
	}{
		{"not_editing", false, []control.Action{control.ActionNudgeRight}, cp.Vector{}},
		{"right", true, []control.Action{control.ActionNudgeRight}, cp.Vector{X: 60}},
		{"up_left", true, []control.Action{control.ActionNudgeUp, control.ActionNudgeLeft}, cp.Vector{X: -60, Y: -60}},
		{"fast_down", true, []control.Action{control.ActionNudgeDown, control.ActionFast}, cp.Vector{Y: 240}},
		{"opposite_cancel", true, []control.Action{control.ActionNudgeLeft, control.ActionNudgeRight}, cp.Vector{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tl := New()
			tl.SetEditing(c.editing)
			in := control.NewFake()
			in.Press(c.keys...)
			tl.HandleInput(1.0, in)
			assert.InDelta(t, c.want.X, tl.Position.X, 1e-9)
			assert.InDelta(t, c.want.Y, tl.Position.Y, 1e-9)
		})
	}
}

func TestUpdateAnimatesStrips(t *testing.T) {
	tl := New()
	tl.SetTexture("coin", image.NewRGBA(image.Rect(0, 0, 64, 16)))
	assert.Equal(t, image.Rect(0, 0, 16, 16), tl.FrameRect())

	tl.Update(1.0 / animationFPS)
	assert.Equal(t, 1, tl.Frame())
	assert.Equal(t, image.Rect(16, 0, 32, 16), tl.FrameRect())

	tl.Update(3.0 / animationFPS)
	assert.Equal(t, 0, tl.Frame(), "animation wraps")
}

func TestUpdateStaticTexture(t *testing.T) {
	cases := []struct {
		name string
		w, h int
	}{
		{"square", 16, 16},
		{"uneven", 40, 16},
		{"tall", 16, 64},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tl := New()
			tl.SetTexture("x", image.NewRGBA(image.Rect(0, 0, c.w, c.h)))
			tl.Update(10)
			assert.Zero(t, tl.Frame())
			assert.Equal(t, image.Rect(0, 0, c.w, c.h), tl.FrameRect())
		})
	}
}

func TestArchetypes(t *testing.T) {
	cases := []struct {
		arch                             Archetype
		trigger, static, massless, isTile bool
		tag                              string
	}{
		{Collectable, true, false, true, true, "Collectable"},
		{Platform, false, true, false, true, "Platform"},
		{Checkpoint, true, true, false, true, "Checkpoint"},
	}
	for _, c := range cases {
		t.Run(c.arch.Name, func(t *testing.T) {
			tl := New()
			tl.SetIsTile(false)
			tl.SetStatic(!c.static)
			c.arch.Apply(tl)
			assert.Equal(t, c.trigger, tl.Trigger())
			assert.Equal(t, c.static, tl.Static())
			assert.Equal(t, c.massless, tl.Massless())
			assert.Equal(t, c.isTile, tl.IsTile())
			assert.Equal(t, c.tag, tl.Tag())

			found, ok := ArchetypeByName(c.arch.Name)
			require.True(t, ok)
			assert.Equal(t, c.arch, found)
		})
	}

	_, ok := ArchetypeByName("Lava")
	assert.False(t, ok)
}

func TestFlags(t *testing.T) {
	tl := New()
	for _, f := range Flags {
		t.Run(f.String(), func(t *testing.T) {
			f.Set(tl, true)
			assert.True(t, f.Get(tl))
			f.Set(tl, false)
			assert.False(t, f.Get(tl))
			assert.NotEmpty(t, f.Help())
		})
	}
	assert.False(t, FlagTrigger.Get(nil))
	assert.Equal(t, "Unknown", Flag(42).String())
}
