package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/loopdeck/loopdeck/audio"
)

// preferredBufSize is what BufSize advertises; vorbis packets decode to
// floats already, so there is no conversion buffer to size it from.
const preferredBufSize = 4096

// vorbisStream is the slice of oggvorbis.Reader the source needs; tests
// substitute their own.
type vorbisStream interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	stream   vorbisStream
	rate     int
	channels int
}

func (s *source) SampleRate() int { return s.rate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return preferredBufSize }
func (s *source) Close() error    { return nil }

// ReadSamples decodes straight into dst; oggvorbis already produces
// interleaved float32 in [-1, 1]. Reads are rounded down to whole frames,
// which is all the underlying reader hands out.
func (s *source) ReadSamples(dst []float32) (int, error) {
	want := (len(dst) / s.channels) * s.channels
	if want == 0 {
		return 0, nil
	}

	n, err := s.stream.Read(dst[:want])
	if n == 0 {
		return 0, err
	}
	return n, err
}

// Decoder decodes Ogg Vorbis streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		stream:   dec,
		rate:     dec.SampleRate(),
		channels: dec.Channels(),
	}, nil
}
