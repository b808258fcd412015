package player

import (
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// Sink is the audio output every engine plays into. Lock and Unlock guard
// the streamers the sink is pulling from.
type Sink interface {
	SampleRate() beep.SampleRate
	Play(s beep.Streamer)
	Lock()
	Unlock()
}

var (
	speakerOnce sync.Once
	speakerErr  error
	speakerRate beep.SampleRate
)

type speakerSink struct {
	rate beep.SampleRate
}

// NewSpeaker initialises the system speaker at sampleRate and returns it as a
// Sink. The speaker is initialised once per process; later calls return a
// sink at the first rate.
func NewSpeaker(sampleRate beep.SampleRate) (Sink, error) {
	speakerOnce.Do(func() {
		speakerRate = sampleRate
		speakerErr = speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	})
	if speakerErr != nil {
		return nil, speakerErr
	}
	return &speakerSink{rate: speakerRate}, nil
}

func (s *speakerSink) SampleRate() beep.SampleRate { return s.rate }

func (s *speakerSink) Play(st beep.Streamer) { speaker.Play(st) }

func (s *speakerSink) Lock() { speaker.Lock() }

func (s *speakerSink) Unlock() { speaker.Unlock() }
