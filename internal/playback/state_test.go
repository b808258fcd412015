package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_Names(t *testing.T) {
	names := map[State]string{
		StateStopped: "Stopped",
		StatePlaying: "Playing",
		StatePaused:  "Paused",
		State(-1):    "Unknown",
		State(42):    "Unknown",
	}
	for s, want := range names {
		assert.Equal(t, want, s.String())
	}
}

func TestState_ActiveHoldsPosition(t *testing.T) {
	// Playing and Paused keep a position worth showing; Stopped does not.
	assert.False(t, StateStopped.IsActive())
	assert.True(t, StatePlaying.IsActive())
	assert.True(t, StatePaused.IsActive())
}

func TestState_ZeroValueIsStopped(t *testing.T) {
	var s State
	assert.Equal(t, StateStopped, s)
}
