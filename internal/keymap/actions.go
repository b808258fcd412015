// Package keymap defines key bindings and action dispatch for the board.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Card navigation
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionMoveLeft  Action = "move_left"
	ActionMoveRight Action = "move_right"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"

	// Playback actions
	ActionPlayPause   Action = "play_pause"
	ActionStop        Action = "stop"
	ActionStopAll     Action = "stop_all"
	ActionSeekForward Action = "seek_forward"
	ActionSeekBack    Action = "seek_back"
	ActionRestart     Action = "restart"
	ActionSeekTenth   Action = "seek_tenth" // 0-9 - seek to n tenths of the clip

	// Effect toggles
	ActionEffectBass    Action = "effect_bass"
	ActionEffectFast    Action = "effect_fast"
	ActionEffectSlow    Action = "effect_slow"
	ActionEffectChopped Action = "effect_chopped"
	ActionEffectNormal  Action = "effect_normal"
)
