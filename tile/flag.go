package tile

// Flag names one of the boolean tile properties the editor toggles.
type Flag int

const (
	FlagTrigger Flag = iota
	FlagStatic
	FlagMassless
	FlagTile
)

// Flags lists every flag in editor display order.
var Flags = []Flag{FlagTrigger, FlagStatic, FlagMassless, FlagTile}

func (f Flag) String() string {
	switch f {
	case FlagTrigger:
		return "Trigger"
	case FlagStatic:
		return "Static"
	case FlagMassless:
		return "Massless"
	case FlagTile:
		return "Tile"
	default:
		return "Unknown"
	}
}

// Help is the tooltip text shown next to the flag's toggle.
func (f Flag) Help() string {
	switch f {
	case FlagTrigger:
		return "Triggers do not impede movement; used for checkpoints and collectables."
	case FlagStatic:
		return "Static tiles never move and ignore physics; use for walls."
	case FlagMassless:
		return "Massless tiles ignore gravity but still collide."
	case FlagTile:
		return "Tiles do not collide with other tiles."
	default:
		return ""
	}
}

// Get reads the flag from t.
func (f Flag) Get(t *Tile) bool {
	if t == nil {
		return false
	}
	switch f {
	case FlagTrigger:
		return t.trigger
	case FlagStatic:
		return t.static
	case FlagMassless:
		return t.massless
	case FlagTile:
		return t.isTile
	}
	return false
}

// Set writes the flag on t.
func (f Flag) Set(t *Tile, v bool) {
	if t == nil {
		return
	}
	switch f {
	case FlagTrigger:
		t.trigger = v
	case FlagStatic:
		t.static = v
	case FlagMassless:
		t.massless = v
	case FlagTile:
		t.isTile = v
	}
}
