package control

import "github.com/jakecoffman/cp"

// Action is a logical input the editor and game react to. Concrete key and
// button bindings live in the input package.
type Action int

const (
	ActionSelect Action = iota
	ActionPan
	ActionModifier
	ActionFast
	ActionDuplicate
	ActionDelete
	ActionCopy
	ActionPaste
	ActionUndo
	ActionNudgeLeft
	ActionNudgeRight
	ActionNudgeUp
	ActionNudgeDown
	ActionMoveLeft
	ActionMoveRight
	ActionJump
	ActionToggleEditor
	ActionPause
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionSelect:
		return "Select"
	case ActionPan:
		return "Pan"
	case ActionModifier:
		return "Modifier"
	case ActionFast:
		return "Fast"
	case ActionDuplicate:
		return "Duplicate"
	case ActionDelete:
		return "Delete"
	case ActionCopy:
		return "Copy"
	case ActionPaste:
		return "Paste"
	case ActionUndo:
		return "Undo"
	case ActionNudgeLeft:
		return "NudgeLeft"
	case ActionNudgeRight:
		return "NudgeRight"
	case ActionNudgeUp:
		return "NudgeUp"
	case ActionNudgeDown:
		return "NudgeDown"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionJump:
		return "Jump"
	case ActionToggleEditor:
		return "ToggleEditor"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Source is the per-frame input state queried by the editor.
//
// Consume marks a held action as handled: IsDown reports false for it until
// the underlying key or button is released and pressed again.
type Source interface {
	CursorWorld() cp.Vector
	IsDown(a Action) bool
	Consume(a Action)
}
