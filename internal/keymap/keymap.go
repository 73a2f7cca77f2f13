package keymap

// Binding describes a single key binding.
type Binding struct {
	Keys        []string
	Action      Action
	Description string
	Context     string // "global", "playback", "library"
}

// All contains all key bindings, used for dispatch and help generation.
var All = []Binding{
	// Global
	{[]string{"q", "ctrl+c"}, ActionQuit, "Quit", "global"},
	{[]string{"?"}, ActionHelp, "Toggle help", "global"},
	{[]string{"i"}, ActionInfo, "Toggle track info", "global"},
	{[]string{"m"}, ActionMiniMode, "Toggle mini mode", "global"},
	{[]string{"T"}, ActionCycleTheme, "Cycle theme", "global"},

	// Playback
	{[]string{"space"}, ActionPlayPause, "Play/pause", "playback"},
	{[]string{"n"}, ActionNextTrack, "Next track", "playback"},
	{[]string{"p"}, ActionPrevTrack, "Previous track", "playback"},
	{[]string{"s"}, ActionToggleShuffle, "Toggle shuffle", "playback"},
	{[]string{"r"}, ActionCycleRepeat, "Cycle repeat mode", "playback"},
	{[]string{"left"}, ActionSeekBack, "Seek back", "playback"},
	{[]string{"right"}, ActionSeekForward, "Seek forward", "playback"},
	{[]string{"+", "="}, ActionVolumeUp, "Volume up", "playback"},
	{[]string{"-"}, ActionVolumeDown, "Volume down", "playback"},
	{[]string{"<"}, ActionSpeedDown, "Slower (pitch follows)", "playback"},
	{[]string{">"}, ActionSpeedUp, "Faster (pitch follows)", "playback"},
	{[]string{"v"}, ActionCycleVisualizer, "Cycle visualizer", "playback"},
	{[]string{"t"}, ActionToggleSleep, "Sleep timer", "playback"},

	// Library list
	{[]string{"j", "down"}, ActionMoveDown, "Move down", "library"},
	{[]string{"k", "up"}, ActionMoveUp, "Move up", "library"},
	{[]string{"g", "home"}, ActionJumpStart, "First track", "library"},
	{[]string{"G", "end"}, ActionJumpEnd, "Last track", "library"},
	{[]string{"ctrl+d", "pgdown"}, ActionHalfPageDown, "Half page down", "library"},
	{[]string{"ctrl+u", "pgup"}, ActionHalfPageUp, "Half page up", "library"},
	{[]string{"enter"}, ActionSelect, "Play selected track", "library"},
	{[]string{"/"}, ActionFilter, "Filter tracks", "library"},
	{[]string{"esc"}, ActionClearFilter, "Clear filter", "library"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
