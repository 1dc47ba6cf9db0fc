// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"math"
	"sync/atomic"
)

// PromoteThreshold is the gain at or below which a slot counts as silent
// for buffer promotion.
const PromoteThreshold = 1e-3

// atomicFloat is a float64 published with release semantics and read with
// acquire semantics, for single-writer control parameters consumed by the
// audio thread.
type atomicFloat struct {
	bits atomic.Uint64
}

func (f *atomicFloat) Store(v float64) { f.bits.Store(math.Float64bits(v)) }
func (f *atomicFloat) Load() float64   { return math.Float64frombits(f.bits.Load()) }

// Slot is one logical playback channel. It holds the active loop buffer
// plus an optional pre-loaded replacement, and the playback cursor.
//
// Concurrency: the cursor belongs to the audio thread alone. The current
// and next buffer pointers are atomic so the control goroutine can stage a
// replacement while audio runs; the swap itself happens on the audio thread
// inside promoteIfSilent, and only when the slot is inaudible.
type Slot struct {
	current atomic.Pointer[Buffer]
	next    atomic.Pointer[Buffer]
	gain    atomicFloat

	cursor int // frames into current; audio thread only
}

// LoadCurrent replaces the active buffer and resets the cursor. Call only
// before playback starts or while the engine is stopped; replacing a buffer
// under an active callback must go through PreloadNext and promotion.
func (s *Slot) LoadCurrent(b *Buffer) {
	s.cursor = 0
	s.current.Store(b)
}

// PreloadNext stages a buffer for later promotion. Safe to call at any
// time; it never touches the buffer being played.
func (s *Slot) PreloadNext(b *Buffer) {
	s.next.Store(b)
}

// Gain returns the slot's current linear gain.
func (s *Slot) Gain() float64 { return s.gain.Load() }

func (s *Slot) setGain(g float64) { s.gain.Store(g) }

// PendingPromotion reports whether a staged buffer is waiting for the slot
// to fall silent.
func (s *Slot) PendingPromotion() bool { return s.next.Load() != nil }

// Ready reports whether the slot has an active buffer. A slot that is not
// ready contributes silence; it is never an error on the audio path.
func (s *Slot) Ready() bool { return s.current.Load() != nil }

// promoteIfSilent swaps the staged buffer into place iff the slot's gain is
// at or below threshold and a staged buffer exists. Runs on the audio
// thread. Calling it when the gain is above threshold, or again after a
// promotion, is a no-op.
func (s *Slot) promoteIfSilent(threshold float64) bool {
	if s.gain.Load() > threshold {
		return false
	}
	nb := s.next.Swap(nil)
	if nb == nil {
		return false
	}
	s.cursor = 0
	s.current.Store(nb)
	return true
}

// copyChunk fills dst with interleaved frames starting at the cursor,
// wrapping to the buffer's WrapFrame at the end, and advances the cursor.
// With no buffer loaded it writes silence. Never blocks, never allocates.
func (s *Slot) copyChunk(dst []float32) {
	buf := s.current.Load()
	if buf == nil || len(buf.Data) == 0 {
		clear(dst)
		return
	}
	total := buf.Frames()
	wrap := buf.WrapFrame
	if wrap < 0 || wrap >= total {
		wrap = 0
	}
	frames := len(dst) / Channels
	written := 0
	for written < frames {
		if s.cursor >= total {
			s.cursor = wrap
		}
		n := frames - written
		if avail := total - s.cursor; n > avail {
			n = avail
		}
		copy(dst[written*Channels:(written+n)*Channels],
			buf.Data[s.cursor*Channels:(s.cursor+n)*Channels])
		written += n
		s.cursor += n
	}
	if s.cursor >= total {
		s.cursor = wrap
	}
}
