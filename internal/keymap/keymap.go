package keymap

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "board", "playback", "effects"
}

// Bindings contains all key bindings.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Toggle help", "global"},

	// Board
	{ActionMoveLeft, []string{"h", "left"}, "Previous clip", "board"},
	{ActionMoveRight, []string{"l", "right"}, "Next clip", "board"},
	{ActionMoveUp, []string{"k", "up"}, "Clip above", "board"},
	{ActionMoveDown, []string{"j", "down"}, "Clip below", "board"},
	{ActionJumpStart, []string{"g", "home"}, "First clip", "board"},
	{ActionJumpEnd, []string{"G", "end"}, "Last clip", "board"},
	{ActionSeekTenth, []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0"}, "Seek to n×10%", "playback"},

	// Playback
	{ActionPlayPause, []string{" ", "enter"}, "Play/pause", "playback"},
	{ActionStop, []string{"s"}, "Stop", "playback"},
	{ActionStopAll, []string{"S"}, "Stop all", "playback"},
	{ActionSeekBack, []string{","}, "Seek back 5%", "playback"},
	{ActionSeekForward, []string{"."}, "Seek forward 5%", "playback"},
	{ActionRestart, []string{"r"}, "Restart clip", "playback"},

	// Effects
	{ActionEffectBass, []string{"b"}, "Toggle bass boost", "effects"},
	{ActionEffectFast, []string{"f"}, "Toggle fast", "effects"},
	{ActionEffectSlow, []string{"w"}, "Toggle slow", "effects"},
	{ActionEffectChopped, []string{"c"}, "Toggle chopped", "effects"},
	{ActionEffectNormal, []string{"n"}, "Back to normal", "effects"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// DisplayKey returns the label shown for key in help text.
func DisplayKey(key string) string {
	if key == " " {
		return "space"
	}
	return key
}
