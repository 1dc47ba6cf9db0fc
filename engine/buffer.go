// SPDX-License-Identifier: EPL-2.0

package engine

// Channels is the channel count of every engine buffer. The engine is
// stereo-only; use the audio package to bring other layouts to stereo.
const Channels = 2

// Buffer holds interleaved stereo float32 PCM at a fixed sample rate.
// Samples are nominally in [-1, 1] but may exceed it before the final mix
// stage; the engine clips only mixed output, never rendered material.
//
// A Buffer must not be modified once it has been handed to a Slot: the
// audio thread reads it without synchronization.
type Buffer struct {
	Data       []float32
	SampleRate int

	// WrapFrame is the frame the playback cursor jumps to after the last
	// frame. Plain buffers leave it 0; a renderer that blends the tail
	// into the head sets it past the blended intro so the jump lands
	// where the blend converges.
	WrapFrame int
}

// Frames returns the number of stereo frames in the buffer.
func (b *Buffer) Frames() int { return len(b.Data) / Channels }

// Duration returns the buffer length in seconds.
func (b *Buffer) Duration() float64 {
	if b.SampleRate == 0 {
		return 0
	}
	return float64(b.Frames()) / float64(b.SampleRate)
}
