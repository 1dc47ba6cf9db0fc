// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic PCM sources for tests and examples.
// The sources satisfy audio.Source without importing it.
package audiotest

import (
	"io"
	"math"
)

// MockSource streams a precomputed slab of interleaved PCM.
type MockSource struct {
	rate     int
	channels int
	data     []float32
	pos      int
}

// NewMockSource precomputes frames from a per-frame generator.
func NewMockSource(rate, channels, frames int, gen func(frame, channel int) float32) *MockSource {
	data := make([]float32, frames*channels)
	for f := 0; f < frames; f++ {
		for c := 0; c < channels; c++ {
			data[f*channels+c] = gen(f, c)
		}
	}
	return &MockSource{rate: rate, channels: channels, data: data}
}

// NewSilentSource generates all-zero frames.
func NewSilentSource(rate, channels, frames int) *MockSource {
	return &MockSource{rate: rate, channels: channels, data: make([]float32, frames*channels)}
}

// NewSineSource generates a sine tone at the given frequency.
func NewSineSource(rate, channels, frames int, freq float64) *MockSource {
	return NewMockSource(rate, channels, frames, func(frame, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * freq * float64(frame) / float64(rate)))
	})
}

// NewConstantSource holds every sample at value.
func NewConstantSource(rate, channels, frames int, value float32) *MockSource {
	return NewMockSource(rate, channels, frames, func(int, int) float32 { return value })
}

func (m *MockSource) SampleRate() int { return m.rate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { return nil }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.pos >= len(m.data) {
		return 0, io.EOF
	}
	want := (len(dst) / m.channels) * m.channels
	n := copy(dst[:want], m.data[m.pos:])
	m.pos += n
	if m.pos >= len(m.data) {
		return n, io.EOF
	}
	return n, nil
}
