package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the simulation to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone          Action = iota
	ActionMoveUp               // W, Up arrow
	ActionMoveDown             // S, Down arrow
	ActionMoveLeft             // A, Left arrow
	ActionMoveRight            // D, Right arrow
	ActionToggleSlot1          // 1 - toggle mask slot 1
	ActionToggleSlot2          // 2 - toggle mask slot 2
	ActionToggleSlot3          // 3 - toggle mask slot 3
	ActionDeactivateAll        // X - deactivate every mask
	ActionDropMask             // G - drop the first active mask
	ActionConfirm              // Enter - confirm selection in menu
	ActionBack                 // B, Escape - go back to menu
	ActionRestart              // R - restart level after death/game over
	ActionQuit                 // Q, Ctrl+C - exit game/session
	ActionPause                // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveUp:
		return "MoveUp"
	case ActionMoveDown:
		return "MoveDown"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionToggleSlot1:
		return "ToggleSlot1"
	case ActionToggleSlot2:
		return "ToggleSlot2"
	case ActionToggleSlot3:
		return "ToggleSlot3"
	case ActionDeactivateAll:
		return "DeactivateAll"
	case ActionDropMask:
		return "DropMask"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// ToggleSlot returns the inventory slot index targeted by a toggle action,
// or -1 when the action is not a slot toggle.
func (a Action) ToggleSlot() int {
	switch a {
	case ActionToggleSlot1:
		return 0
	case ActionToggleSlot2:
		return 1
	case ActionToggleSlot3:
		return 2
	default:
		return -1
	}
}

// InputFrame represents the input state for a single simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
