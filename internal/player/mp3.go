package player

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/go-mp3"
)

var _ beep.StreamSeekCloser = (*mp3Source)(nil)

// mp3Source adapts a go-mp3 decoder, which yields interleaved 16-bit stereo
// PCM, to beep.StreamSeekCloser.
type mp3Source struct {
	dec    *mp3.Decoder
	closer io.Closer
	err    error
	pcm    []byte
}

func decodeMP3(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
	dec, err := mp3.NewDecoder(rc)
	if err != nil {
		return nil, beep.Format{}, err
	}
	if dec.SampleRate() == 0 {
		return nil, beep.Format{}, errors.New("mp3: invalid sample rate")
	}
	format := beep.Format{
		SampleRate:  beep.SampleRate(dec.SampleRate()),
		NumChannels: 2,
		Precision:   2,
	}
	return &mp3Source{dec: dec, closer: rc, pcm: make([]byte, 8192)}, format, nil
}

func (s *mp3Source) Stream(samples [][2]float64) (n int, ok bool) {
	if s.err != nil {
		return 0, false
	}

	want := len(samples) * 4
	if len(s.pcm) < want {
		s.pcm = make([]byte, want)
	}
	read, err := io.ReadFull(s.dec, s.pcm[:want])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		s.err = err
		return 0, false
	}

	frames := read / 4
	if frames == 0 {
		return 0, false
	}
	for i := range frames {
		l := int16(binary.LittleEndian.Uint16(s.pcm[i*4:]))   //nolint:gosec // pcm sample
		r := int16(binary.LittleEndian.Uint16(s.pcm[i*4+2:])) //nolint:gosec // pcm sample
		samples[i][0] = float64(l) / 32768
		samples[i][1] = float64(r) / 32768
	}
	return frames, true
}

func (s *mp3Source) Err() error { return s.err }

func (s *mp3Source) Len() int {
	return max(int(s.dec.SampleCount()), 0)
}

func (s *mp3Source) Position() int {
	return int(s.dec.SamplePosition())
}

func (s *mp3Source) Seek(p int) error {
	p = min(max(p, 0), s.Len())
	if err := s.dec.SeekToSample(int64(p)); err != nil {
		return err
	}
	s.err = nil
	return nil
}

func (s *mp3Source) Close() error { return s.closer.Close() }
