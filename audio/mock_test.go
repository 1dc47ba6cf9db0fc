package audio

import (
	"io"
	"math"
)

// pcmSource serves a precomputed interleaved PCM slab as a Source. Tests
// build one through the generator helpers below.
type pcmSource struct {
	rate     int
	channels int
	data     []float32
	pos      int
}

func (p *pcmSource) SampleRate() int { return p.rate }
func (p *pcmSource) Channels() int   { return p.channels }
func (p *pcmSource) BufSize() int    { return 4096 }
func (p *pcmSource) Close() error    { return nil }

func (p *pcmSource) ReadSamples(dst []float32) (int, error) {
	if p.pos >= len(p.data) {
		return 0, io.EOF
	}
	want := (len(dst) / p.channels) * p.channels
	n := copy(dst[:want], p.data[p.pos:])
	p.pos += n
	if p.pos >= len(p.data) {
		return n, io.EOF
	}
	return n, nil
}

// newMockSource precomputes frames from a per-frame generator.
func newMockSource(rate, channels, frames int, gen func(frame, channel int) float32) *pcmSource {
	data := make([]float32, frames*channels)
	for f := 0; f < frames; f++ {
		for c := 0; c < channels; c++ {
			data[f*channels+c] = gen(f, c)
		}
	}
	return &pcmSource{rate: rate, channels: channels, data: data}
}

func newSilentSource(rate, channels, frames int) *pcmSource {
	return &pcmSource{rate: rate, channels: channels, data: make([]float32, frames*channels)}
}

func newSineSource(rate, channels, frames int, freq float64) *pcmSource {
	return newMockSource(rate, channels, frames, func(frame, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * freq * float64(frame) / float64(rate)))
	})
}

func newConstantSource(rate, channels, frames int, value float32) *pcmSource {
	return newMockSource(rate, channels, frames, func(int, int) float32 { return value })
}
