// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit       Action = "quit"
	ActionHelp       Action = "help"
	ActionInfo       Action = "info"
	ActionMiniMode   Action = "mini_mode"
	ActionCycleTheme Action = "cycle_theme"

	// Playback actions
	ActionPlayPause       Action = "play_pause"
	ActionNextTrack       Action = "next_track"
	ActionPrevTrack       Action = "prev_track"
	ActionSeekForward     Action = "seek_forward"
	ActionSeekBack        Action = "seek_back"
	ActionVolumeUp        Action = "volume_up"
	ActionVolumeDown      Action = "volume_down"
	ActionSpeedUp         Action = "speed_up"
	ActionSpeedDown       Action = "speed_down"
	ActionToggleShuffle   Action = "toggle_shuffle"
	ActionCycleRepeat     Action = "cycle_repeat"
	ActionCycleVisualizer Action = "cycle_visualizer"
	ActionToggleSleep     Action = "toggle_sleep"

	// Library list actions
	ActionSelect       Action = "select"       // enter - play track under cursor
	ActionMoveUp       Action = "move_up"      // k/up
	ActionMoveDown     Action = "move_down"    // j/down
	ActionJumpStart    Action = "jump_start"   // g/home
	ActionJumpEnd      Action = "jump_end"     // G/end
	ActionHalfPageUp   Action = "half_page_up" // ctrl+u/pgup
	ActionHalfPageDown Action = "half_page_down"
	ActionFilter       Action = "filter"       // /
	ActionClearFilter  Action = "clear_filter" // esc
)
