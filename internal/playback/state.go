// internal/playback/state.go
package playback

// State is a clip's playback state.
//
//	┌──────────┐      play       ┌──────────┐
//	│ Stopped  │ ───────────────▶│ Playing  │
//	└──────────┘                 └──────────┘
//	     ▲                        │   ▲   │
//	     │ stop / end       pause │   │   │ stop / end / preempt
//	     │                        ▼   │   │
//	     │                 ┌──────────┐   │
//	     └─────────────────│  Paused  │   │
//	           stop        └──────────┘   │
//	                             play ────┘
//
// Only a controller holding the transport slot is Playing. Seek and effect
// changes keep the current state.
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if playback is active (playing or paused).
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}
