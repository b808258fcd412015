package playback

import "github.com/llehouerou/voicenotes/internal/effect"

// StateChange is emitted when a clip changes playback state.
//
// Emitted by Play, Pause, Stop, preemption by another clip, natural end and
// engine errors. Seek never emits it.
type StateChange struct {
	Clip     int
	Previous State
	Current  State
}

// EffectChange is emitted when a clip's active effect changes.
type EffectChange struct {
	Clip     int
	Previous effect.Effect
	Current  effect.Effect
}

// ErrorEvent is emitted when a clip becomes unavailable, at load time or
// during playback.
type ErrorEvent struct {
	Clip int
	Err  error
}
