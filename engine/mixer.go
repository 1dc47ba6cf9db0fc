// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"math"
	"sync/atomic"
)

// GainCurveExponent shapes the crossfader-to-gain mapping. The concave
// power curve keeps more ambient presence through the middle of the sweep
// than a straight linear fade would.
const GainCurveExponent = 1.5

// maxChunkFrames sizes the pre-allocated per-slot scratch block. Larger
// callback blocks are processed in pieces of this size, still without
// allocating.
const maxChunkFrames = 8192

// Mode says which playback model currently drives the two slot gains.
// Exactly one model is active at any instant: whichever of SetVolumes and
// SetCrossfader was called last wins.
type Mode uint8

const (
	// ModeManual means independent per-slot volumes set by SetVolumes.
	ModeManual Mode = iota
	// ModeCrossfader means both gains derive from the crossfader position.
	ModeCrossfader
)

func (m Mode) String() string {
	if m == ModeCrossfader {
		return "crossfader"
	}
	return "manual"
}

// Engine mixes the ambient and rhythm slots into one stereo stream. One
// Engine drives one audio device; construct it explicitly and hand it to
// the callback registration, there are no hidden singletons.
type Engine struct {
	sampleRate int

	ambient Slot
	rhythm  Slot
	effects *Chain

	crossfader atomicFloat
	mode       atomic.Uint32
	running    atomic.Bool

	scratch []float32 // audio thread only
}

func New(sampleRate int) *Engine {
	return &Engine{
		sampleRate: sampleRate,
		effects:    NewChain(sampleRate),
		scratch:    make([]float32, maxChunkFrames*Channels),
	}
}

// SampleRate returns the fixed rate every buffer handed to the engine must
// carry.
func (e *Engine) SampleRate() int { return e.sampleRate }

// Start lets RenderBlock produce audio. Until then it emits silence.
func (e *Engine) Start() { e.running.Store(true) }

// EnsureReady returns ErrBufferNotReady when neither slot has a buffer
// loaded. Hosts check it before Start; starting anyway is safe, the mix is
// just silent.
func (e *Engine) EnsureReady() error {
	if !e.ambient.Ready() && !e.rhythm.Ready() {
		return ErrBufferNotReady
	}
	return nil
}

// Stop silences RenderBlock without tearing down the callback.
func (e *Engine) Stop() { e.running.Store(false) }

// Running reports whether the engine is producing audio.
func (e *Engine) Running() bool { return e.running.Load() }

// SetVolumes sets independent slot gains, clamped to [0,1], and switches
// the engine to manual mode.
func (e *Engine) SetVolumes(ambient, rhythm float64) {
	e.ambient.setGain(clamp01(ambient))
	e.rhythm.setGain(clamp01(rhythm))
	e.mode.Store(uint32(ModeManual))
}

// SetCrossfader sets the fader position, clamped to [0,1], switches the
// engine to crossfader mode, and derives both gains from the shared power
// curve: ambient (1-p)^1.5, rhythm p^1.5.
func (e *Engine) SetCrossfader(p float64) {
	p = clamp01(p)
	e.crossfader.Store(p)
	e.ambient.setGain(math.Pow(1-p, GainCurveExponent))
	e.rhythm.setGain(math.Pow(p, GainCurveExponent))
	e.mode.Store(uint32(ModeCrossfader))
}

// Crossfader returns the last fader position set.
func (e *Engine) Crossfader() float64 { return e.crossfader.Load() }

// SetDelayAmount sets the delay knob, clamped to [0,1].
func (e *Engine) SetDelayAmount(x float64) { e.effects.SetDelayAmount(x) }

// SetReverbAmount sets the reverb knob, clamped to [0,1].
func (e *Engine) SetReverbAmount(x float64) { e.effects.SetReverbAmount(x) }

// LoadAmbient installs the ambient slot's buffer before playback starts.
func (e *Engine) LoadAmbient(b *Buffer) { e.ambient.LoadCurrent(b) }

// LoadRhythm installs the rhythm slot's buffer before playback starts.
func (e *Engine) LoadRhythm(b *Buffer) { e.rhythm.LoadCurrent(b) }

// PreloadAmbient stages a replacement ambient buffer; it is promoted on the
// audio thread once the slot is silent.
func (e *Engine) PreloadAmbient(b *Buffer) { e.ambient.PreloadNext(b) }

// PreloadRhythm stages a replacement rhythm buffer.
func (e *Engine) PreloadRhythm(b *Buffer) { e.rhythm.PreloadNext(b) }

// Ambient exposes the ambient slot for observability.
func (e *Engine) Ambient() *Slot { return &e.ambient }

// Rhythm exposes the rhythm slot for observability.
func (e *Engine) Rhythm() *Slot { return &e.rhythm }

// RenderBlock is the audio callback body. It fills dst (interleaved
// stereo) with the mixed, effected, hard-clipped output of both slots and
// advances their cursors. It never allocates, locks, logs, or touches the
// filesystem; a slot with no buffer simply contributes silence.
func (e *Engine) RenderBlock(dst []float32) {
	clear(dst)
	if !e.running.Load() {
		return
	}
	step := len(e.scratch)
	for off := 0; off < len(dst); off += step {
		end := off + step
		if end > len(dst) {
			end = len(dst)
		}
		e.mixChunk(dst[off:end])
	}
}

func (e *Engine) mixChunk(dst []float32) {
	e.mixSlot(&e.ambient, dst)
	e.mixSlot(&e.rhythm, dst)
	if e.effects.DelayAmount() > 0 || e.effects.ReverbAmount() > 0 {
		e.effects.Process(dst)
	}
	for i, v := range dst {
		if v > 1 {
			dst[i] = 1
		} else if v < -1 {
			dst[i] = -1
		}
	}
}

func (e *Engine) mixSlot(s *Slot, dst []float32) {
	s.promoteIfSilent(PromoteThreshold)
	// The cursor advances even when inaudible, so a track keeps its place
	// in the loop while faded out.
	s.copyChunk(e.scratch[:len(dst)])
	g := float32(s.Gain())
	if g == 0 {
		return
	}
	for i := range dst {
		dst[i] += e.scratch[i] * g
	}
}

// Snapshot is a read-only view of engine state for a display collaborator.
// Poll it at UI rate, not per audio block.
type Snapshot struct {
	Mode Mode

	Crossfader   float64
	AmbientGain  float64
	RhythmGain   float64
	DelayAmount  float64
	ReverbAmount float64

	AmbientReady   bool
	RhythmReady    bool
	AmbientPending bool
	RhythmPending  bool

	Running bool
}

// Snapshot captures the engine's observable state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Mode:           Mode(e.mode.Load()),
		Crossfader:     e.crossfader.Load(),
		AmbientGain:    e.ambient.Gain(),
		RhythmGain:     e.rhythm.Gain(),
		DelayAmount:    e.effects.DelayAmount(),
		ReverbAmount:   e.effects.ReverbAmount(),
		AmbientReady:   e.ambient.Ready(),
		RhythmReady:    e.rhythm.Ready(),
		AmbientPending: e.ambient.PendingPromotion(),
		RhythmPending:  e.rhythm.PendingPromotion(),
		Running:        e.running.Load(),
	}
}
