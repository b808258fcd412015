package player

import (
	"context"
	"fmt"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/alac"
	"github.com/llehouerou/go-faad2"
	"github.com/llehouerou/go-m4a"
)

var _ beep.StreamSeekCloser = (*m4aSource)(nil)

// frameDecoder turns one container sample into stereo frames.
type frameDecoder interface {
	decode(data []byte) ([][2]float64, error)
	close()
}

// m4aSource reads samples from an MP4 container and decodes them with the
// codec the container declares (AAC or ALAC).
type m4aSource struct {
	container *m4a.Reader
	closer    io.Closer
	codec     frameDecoder
	next      int
	length    int
	err       error

	pending [][2]float64
}

func decodeM4A(rc io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, string, error) {
	c, err := m4a.Open(rc)
	if err != nil {
		return nil, beep.Format{}, "", err
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(c.SampleRate()),
		NumChannels: 2,
		Precision:   2,
	}

	var codec frameDecoder
	switch c.Codec() {
	case m4a.CodecAAC:
		codec, err = newAACFrames(c.CodecConfig(), int(c.Channels()))
	case m4a.CodecALAC:
		if c.SampleSize() == 24 {
			format.Precision = 3
		}
		codec, err = newALACFrames(int(c.SampleRate()), int(c.SampleSize()), int(c.Channels()))
	default:
		err = fmt.Errorf("%w: m4a codec %s", ErrUnsupportedFormat, c.Codec())
	}
	if err != nil {
		return nil, beep.Format{}, "", err
	}

	s := &m4aSource{
		container: c,
		closer:    rc,
		codec:     codec,
		length:    format.SampleRate.N(c.Duration()),
	}
	return s, format, c.Codec().String(), nil
}

func (s *m4aSource) Stream(samples [][2]float64) (n int, ok bool) {
	if s.err != nil {
		return 0, false
	}
	for n < len(samples) {
		if len(s.pending) > 0 {
			k := copy(samples[n:], s.pending)
			s.pending = s.pending[k:]
			n += k
			continue
		}
		if s.next >= s.container.SampleCount() {
			break
		}
		data, err := s.container.ReadSample(s.next)
		if err == nil {
			s.pending, err = s.codec.decode(data)
		}
		if err != nil {
			s.err = err
			break
		}
		s.next++
	}
	return n, n > 0
}

func (s *m4aSource) Err() error { return s.err }

func (s *m4aSource) Len() int { return s.length }

func (s *m4aSource) Position() int {
	sr := beep.SampleRate(s.container.SampleRate())
	return max(sr.N(s.container.SampleTime(s.next))-len(s.pending), 0)
}

func (s *m4aSource) Seek(p int) error {
	p = min(max(p, 0), s.length)
	sr := beep.SampleRate(s.container.SampleRate())
	s.next = s.container.SeekToTime(sr.D(p))
	s.pending = nil
	s.err = nil
	return nil
}

func (s *m4aSource) Close() error {
	s.codec.close()
	return s.closer.Close()
}

type aacFrames struct {
	dec      *faad2.Decoder
	channels int
}

func newAACFrames(config []byte, channels int) (*aacFrames, error) {
	ctx := context.Background()
	dec, err := faad2.NewDecoder(ctx)
	if err != nil {
		return nil, err
	}
	if err := dec.Init(ctx, config); err != nil {
		dec.Close(ctx)
		return nil, err
	}
	return &aacFrames{dec: dec, channels: channels}, nil
}

func (a *aacFrames) decode(data []byte) ([][2]float64, error) {
	pcm, err := a.dec.Decode(context.Background(), data)
	if err != nil {
		return nil, err
	}
	if a.channels != 2 {
		frames := make([][2]float64, len(pcm))
		for i, v := range pcm {
			f := float64(v) / 32768
			frames[i] = [2]float64{f, f}
		}
		return frames, nil
	}
	frames := make([][2]float64, len(pcm)/2)
	for i := range frames {
		frames[i] = [2]float64{float64(pcm[2*i]) / 32768, float64(pcm[2*i+1]) / 32768}
	}
	return frames, nil
}

func (a *aacFrames) close() { a.dec.Close(context.Background()) }

type alacFrames struct {
	dec      *alac.Alac
	bits     int
	channels int
}

func newALACFrames(sampleRate, bits, channels int) (*alacFrames, error) {
	dec, err := alac.NewWithConfig(alac.Config{
		SampleRate:  sampleRate,
		SampleSize:  bits,
		NumChannels: channels,
		FrameSize:   4096,
	})
	if err != nil {
		return nil, err
	}
	return &alacFrames{dec: dec, bits: bits, channels: channels}, nil
}

func (a *alacFrames) decode(data []byte) ([][2]float64, error) {
	raw := a.dec.Decode(data)
	width := a.bits / 8
	stride := width * a.channels
	frames := make([][2]float64, len(raw)/stride)
	for i := range frames {
		off := i * stride
		l := pcmSample(raw[off:], width)
		r := l
		if a.channels > 1 {
			r = pcmSample(raw[off+width:], width)
		}
		frames[i] = [2]float64{l, r}
	}
	return frames, nil
}

func (a *alacFrames) close() {}

// pcmSample reads one little-endian signed sample of width bytes (2 or 3).
func pcmSample(b []byte, width int) float64 {
	if width == 3 {
		v := int32(b[0]) | int32(b[1])<<8 | int32(int8(b[2]))<<16 //nolint:gosec // sign extension
		return float64(v) / (1 << 23)
	}
	v := int16(uint16(b[0]) | uint16(b[1])<<8) //nolint:gosec // pcm sample
	return float64(v) / (1 << 15)
}
