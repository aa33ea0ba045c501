// Package panel draws the editor's property inspector with ebitenui.
package panel

import (
	"fmt"
	"log"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/editorui"
	"github.com/milk9111/platformer/tile"
)

const (
	fieldStep = 1.0
	fastStep  = 10.0
)

// Panel is the inspector docked on the right edge of the editor. It reads
// and writes the tile manager only through an editorui.Model.
type Panel struct {
	ui     *ebitenui.UI
	model  *editorui.Model
	layout editorui.Layout
	face   text.Face
	theme  *widget.Theme

	root        *widget.Container
	summary     *widget.Label
	status      *widget.Label
	tileList    *widget.List
	posX, posY  *widget.TextInput
	sizeW       *widget.TextInput
	sizeH       *widget.TextInput
	details     *widget.Container
	tagInput    *widget.TextInput
	flagButtons map[tile.Flag]*widget.Button
	textureList *widget.List

	signature string
	// suppress guards list handlers while entries are set programmatically.
	suppress bool

	// AddPosition is where "Add New Tile" places the tile, normally the
	// center of the visible canvas.
	AddPosition func() cp.Vector
	// Modifier reports whether the toggle modifier is held.
	Modifier func() bool
	// OnSave is called after the Save button wrote the tile file.
	OnSave func(ok bool)
}

// New builds the widget tree for layout. The font is embedded, so the only
// failure is a corrupt font source.
func New(layout editorui.Layout, model *editorui.Model) (*Panel, error) {
	face, err := loadFace(14)
	if err != nil {
		return nil, fmt.Errorf("panel: load font: %w", err)
	}
	p := &Panel{
		model:       model,
		layout:      layout,
		face:        face,
		flagButtons: map[tile.Flag]*widget.Button{},
	}
	p.theme = newTheme(&p.face)
	p.build()
	return p, nil
}

func (p *Panel) build() {
	rect := p.layout.PanelRect()

	p.root = widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))

	body := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(p.theme.PanelTheme.BackgroundImage),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Left: 8, Right: 8, Bottom: 8}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(rect.Dx(), rect.Dy()),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
				StretchVertical:    true,
			}),
		),
	)
	p.root.AddChild(body)

	for _, line := range editorui.Help {
		body.AddChild(p.label(line))
	}

	p.summary = p.label("")
	body.AddChild(p.summary)

	p.tileList = widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if entry, ok := e.(editorui.TileEntry); ok {
				return entry.Label
			}
			return ""
		}),
		// reselect lets a modifier click on the highlighted entry toggle it
		widget.ListOpts.AllowReselect(),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if p.suppress {
				return
			}
			entry, ok := args.Entry.(editorui.TileEntry)
			if !ok {
				return
			}
			p.model.SelectEntry(entry.Index, p.Modifier != nil && p.Modifier())
		}),
	)
	p.tileList.GetWidget().MinHeight = 120
	body.AddChild(p.tileList)

	archetypes := p.row()
	for _, a := range tile.Archetypes {
		name := a.Name
		archetypes.AddChild(p.button(name, func() {
			p.model.ApplyArchetype(name)
		}))
	}
	body.AddChild(archetypes)

	body.AddChild(p.label("Position"))
	p.posX, p.posY = p.vectorRow(body, p.model.SetPositionText, p.model.StepPosition)
	body.AddChild(p.label("Scale"))
	p.sizeW, p.sizeH = p.vectorRow(body, p.model.SetSizeText, p.model.StepSize)

	p.details = widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
		)),
	)
	p.details.AddChild(p.label("Tag"))
	p.tagInput = p.input(func(s string) { p.model.SetTag(s) })
	p.details.AddChild(p.tagInput)
	for _, f := range tile.Flags {
		flag := f
		btn := p.button(flagLabel(flag, false), func() {
			p.model.ToggleFlag(flag)
		})
		p.flagButtons[flag] = btn
		p.details.AddChild(btn)
		p.details.AddChild(p.label("  " + flag.Help()))
	}
	body.AddChild(p.details)

	body.AddChild(p.label("Texture"))
	p.textureList = widget.NewList(
		widget.ListOpts.Entries(stringEntries(p.model.TextureNames())),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			s, _ := e.(string)
			return s
		}),
		widget.ListOpts.AllowReselect(),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if p.suppress {
				return
			}
			if name, ok := args.Entry.(string); ok {
				p.model.ApplyTexture(name)
			}
		}),
	)
	p.textureList.GetWidget().MinHeight = 80
	body.AddChild(p.textureList)

	actions := p.row()
	actions.AddChild(p.button("Add New Tile", func() {
		pos := cp.Vector{}
		if p.AddPosition != nil {
			pos = p.AddPosition()
		}
		p.model.AddTile(pos)
	}))
	actions.AddChild(p.button("Delete Selected", func() {
		p.model.DeleteSelected()
	}))
	actions.AddChild(p.button("Save", func() {
		ok := p.model.Save()
		if ok {
			p.status.Label = "Saved " + p.model.Manager().Path()
		} else {
			p.status.Label = "Save failed"
		}
		if p.OnSave != nil {
			p.OnSave(ok)
		}
	}))
	body.AddChild(actions)

	p.status = p.label("")
	body.AddChild(p.status)

	p.ui = &ebitenui.UI{Container: p.root}
	p.ui.PrimaryTheme = p.theme
}

// vectorRow adds an x/y field pair with ± buttons. Typed values are applied
// on submit.
func (p *Panel) vectorRow(parent *widget.Container, set func(x, y string) error, step func(dx, dy float64)) (*widget.TextInput, *widget.TextInput) {
	var x, y *widget.TextInput
	submit := func(string) {
		if err := set(x.GetText(), y.GetText()); err != nil {
			log.Printf("panel: %v", err)
			p.signature = ""
		}
	}
	x = p.input(submit)
	y = p.input(submit)

	amount := func() float64 {
		if p.Modifier != nil && p.Modifier() {
			return fastStep
		}
		return fieldStep
	}
	for _, axis := range []struct {
		input  *widget.TextInput
		dx, dy float64
	}{
		{input: x, dx: 1},
		{input: y, dy: 1},
	} {
		a := axis
		r := p.row()
		r.AddChild(a.input)
		r.AddChild(p.button("-", func() { step(-a.dx*amount(), -a.dy*amount()) }))
		r.AddChild(p.button("+", func() { step(a.dx*amount(), a.dy*amount()) }))
		parent.AddChild(r)
	}
	return x, y
}

func (p *Panel) label(s string) *widget.Label {
	return widget.NewLabel(widget.LabelOpts.Text(s, &p.face, labelColor))
}

func (p *Panel) button(s string, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(p.theme.ButtonTheme.Image),
		widget.ButtonOpts.Text(s, &p.face, p.theme.ButtonTheme.TextColor),
		widget.ButtonOpts.TextPadding(&widget.Insets{Left: 6, Right: 6, Top: 2, Bottom: 2}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func (p *Panel) input(onSubmit func(string)) *widget.TextInput {
	return widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(120, 24)),
		widget.TextInputOpts.Image(inputImage),
		widget.TextInputOpts.Color(inputColor),
		widget.TextInputOpts.Face(&p.face),
		widget.TextInputOpts.SubmitHandler(func(args *widget.TextInputChangedEventArgs) {
			onSubmit(args.InputText)
		}),
	)
}

func (p *Panel) row() *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(4),
		)),
	)
}

// Update refreshes widgets whose model changed and runs the UI.
func (p *Panel) Update() {
	if sig := p.model.Signature(); sig != p.signature {
		p.signature = sig
		p.refresh()
	}
	p.ui.Update()
}

func (p *Panel) refresh() {
	p.suppress = true
	defer func() { p.suppress = false }()

	p.summary.Label = p.model.Summary()

	entries := p.model.Entries()
	items := make([]any, len(entries))
	for i, e := range entries {
		items[i] = e
	}
	p.tileList.SetEntries(items)
	if idx, ok := p.model.Manager().Selection().First(); ok && idx < len(items) {
		p.tileList.SetSelectedEntry(items[idx])
	}

	p.setText(p.posX, p.posY, p.model.PositionText)
	p.setText(p.sizeW, p.sizeH, p.model.SizeText)

	if !p.model.ShowDetails() {
		p.details.GetWidget().Visibility = widget.Visibility_Hide
		return
	}
	p.details.GetWidget().Visibility = widget.Visibility_Show
	if !p.focused(p.tagInput) {
		p.tagInput.SetText(p.model.Tag())
	}
	for f, btn := range p.flagButtons {
		btn.Text().Label = flagLabel(f, p.model.Flag(f))
	}
}

// setText fills a field pair unless the user is typing in one of them.
func (p *Panel) setText(a, b *widget.TextInput, get func() (string, string)) {
	if p.focused(a) || p.focused(b) {
		return
	}
	x, y := get()
	a.SetText(x)
	b.SetText(y)
}

func (p *Panel) focused(in *widget.TextInput) bool {
	fw := p.ui.GetFocusedWidget()
	if fw == nil {
		return false
	}
	t, ok := fw.(*widget.TextInput)
	return ok && t == in
}

// Draw renders the panel over the canvas.
func (p *Panel) Draw(screen *ebiten.Image) {
	p.ui.Draw(screen)
}

// Typing reports whether a text field has keyboard focus, in which case
// editor hotkeys are suppressed.
func (p *Panel) Typing() bool {
	if p.ui == nil {
		return false
	}
	if fw := p.ui.GetFocusedWidget(); fw != nil {
		switch fw.(type) {
		case *widget.TextInput:
			return true
		}
	}
	return false
}

// Contains reports whether the screen point is over the panel.
func (p *Panel) Contains(x, y int) bool {
	return p.layout.Contains(x, y)
}

func flagLabel(f tile.Flag, on bool) string {
	state := "Off"
	if on {
		state = "On"
	}
	return fmt.Sprintf("%s: %s", f, state)
}

func stringEntries(names []string) []any {
	out := make([]any, len(names))
	for i, n := range names {
		out[i] = n
	}
	return out
}
