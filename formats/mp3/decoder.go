// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/loopdeck/loopdeck/audio"
)

// bytesPerSample is go-mp3's fixed output width: signed 16-bit
// little-endian PCM.
const bytesPerSample = 2

// pcmStream is the slice of gomp3.Decoder the source needs; tests
// substitute their own.
type pcmStream interface {
	io.Reader
	SampleRate() int
}

type source struct {
	stream pcmStream
	rate   int
	raw    []byte
}

func (s *source) SampleRate() int { return s.rate }

// Channels is always 2: go-mp3 upmixes mono streams while decoding.
func (s *source) Channels() int { return 2 }

func (s *source) BufSize() int { return cap(s.raw) / bytesPerSample }
func (s *source) Close() error { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	need := len(dst) * bytesPerSample
	if cap(s.raw) < need {
		s.raw = make([]byte, need)
	}
	raw := s.raw[:need]

	n, err := s.stream.Read(raw)
	if n == 0 {
		return 0, err
	}

	samples := n / bytesPerSample
	for i := 0; i < samples; i++ {
		v := int16(binary.LittleEndian.Uint16(raw[i*bytesPerSample:]))
		dst[i] = float32(v) / 32768
	}
	return samples, err
}

// Decoder decodes MP3 streams into stereo float32 sources.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		stream: dec,
		rate:   dec.SampleRate(),
		raw:    make([]byte, 8192),
	}, nil
}
