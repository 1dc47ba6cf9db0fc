// SPDX-License-Identifier: EPL-2.0

package engine

import "math"

// DefaultMaxLoops caps how many source repetitions a single render may
// produce. It guards against degenerate requests (tiny crossfade, huge
// target duration) allocating unbounded memory.
const DefaultMaxLoops = 512

// Renderer pre-renders seamlessly loopable buffers. The zero value is not
// usable; construct with NewRenderer.
type Renderer struct {
	// MaxLoops is the loop-count ceiling. Render fails with
	// ErrRenderTooLarge when a request would exceed it.
	MaxLoops int

	// WrapCrossfade also crossfades the final frames of the rendered
	// buffer into its own head and sets Buffer.WrapFrame past the blended
	// intro, so the cursor wrap lands exactly where the blend converges
	// and sounds like an interior loop boundary. The intro frames play
	// once, on the first pass only.
	WrapCrossfade bool
}

func NewRenderer() *Renderer {
	return &Renderer{
		MaxLoops:      DefaultMaxLoops,
		WrapCrossfade: true,
	}
}

// RenderResult is the output of Renderer.Render.
type RenderResult struct {
	Buffer *Buffer

	// LoopsNeeded is how many source repetitions the buffer contains.
	LoopsNeeded int

	// CrossfadeFrames is the effective crossfade window in frames.
	CrossfadeFrames int

	// EffectiveCrossfadeMS is the crossfade actually used. It differs
	// from the requested value only when Clamped is true.
	EffectiveCrossfadeMS int

	// Clamped reports that the requested crossfade was at least as long
	// as the source and was reduced to half the source duration. It is a
	// warning, not an error.
	Clamped bool
}

// Render builds one long buffer of crossfaded repetitions of src, long
// enough to cover targetSeconds, trimmed to exactly that duration.
//
// Each repetition boundary overlap-mixes the tail of the already written
// output with the head of the source using linear fade curves: at position
// t in [0,1] across the window the outgoing signal is weighted 1-t and the
// incoming t, so the weights always sum to one. Fades operate in linear
// amplitude space and the result is never clipped here; headroom is
// preserved for the mix stage.
func (r *Renderer) Render(src *Buffer, crossfadeMS int, targetSeconds float64) (*RenderResult, error) {
	srcFrames := src.Frames()
	if srcFrames == 0 {
		return nil, ErrEmptySource
	}
	rate := src.SampleRate

	cf := int(math.Round(float64(crossfadeMS) * float64(rate) / 1000.0))
	if cf < 0 {
		cf = 0
	}

	clamped := false
	if cf >= srcFrames {
		cf = srcFrames / 2
		clamped = true
		if cf == 0 {
			// Source too short to hold any crossfade window.
			return nil, ErrInvalidCrossfade
		}
	}
	effMS := crossfadeMS
	if clamped {
		effMS = int(math.Round(float64(cf) * 1000.0 / float64(rate)))
	}

	targetFrames := int(math.Round(targetSeconds * float64(rate)))
	if targetFrames < 1 {
		targetFrames = 1
	}

	stride := srcFrames - cf // frames added by each repetition after the first
	loops := (targetFrames + stride - 1) / stride
	if loops < 1 {
		loops = 1
	}
	maxLoops := r.MaxLoops
	if maxLoops <= 0 {
		maxLoops = DefaultMaxLoops
	}
	if loops > maxLoops {
		return nil, ErrRenderTooLarge
	}

	totalFrames := srcFrames + (loops-1)*stride
	out := make([]float32, totalFrames*Channels)

	// First repetition verbatim.
	copy(out, src.Data)

	// Each later repetition crossfades into the tail of what is written.
	for loop := 1; loop < loops; loop++ {
		start := srcFrames + (loop-1)*stride
		crossfadeInto(out, (start-cf)*Channels, src.Data, cf)
		copy(out[start*Channels:], src.Data[cf*Channels:])
	}

	// Trim to the exact target. Pad (if a caller-supplied MaxLoops left
	// the buffer short) by copying post-crossfade source material, never
	// silence.
	if totalFrames > targetFrames {
		out = out[:targetFrames*Channels]
	} else if totalFrames < targetFrames {
		padded := make([]float32, targetFrames*Channels)
		copy(padded, out)
		fill := padded[totalFrames*Channels:]
		from := src.Data[cf*Channels:]
		for len(fill) > 0 {
			n := copy(fill, from)
			fill = fill[n:]
		}
		out = padded
	}

	// Final wrap: blend the buffer's own tail into its head. The blend
	// converges on frame cf-1, so the cursor must continue at frame cf
	// rather than 0; WrapFrame tells the slot where to land.
	wrapFrame := 0
	if r.WrapCrossfade && cf > 0 && targetFrames >= 2*cf {
		crossfadeInto(out, (targetFrames-cf)*Channels, out, cf)
		wrapFrame = cf
	}

	return &RenderResult{
		Buffer:               &Buffer{Data: out, SampleRate: rate, WrapFrame: wrapFrame},
		LoopsNeeded:          loops,
		CrossfadeFrames:      cf,
		EffectiveCrossfadeMS: effMS,
		Clamped:              clamped,
	}, nil
}

// crossfadeInto overlap-mixes frames frames of incoming (from its start)
// into out at sample offset outOff. t runs 0..1 across the window, matching
// a linspace over the window length.
func crossfadeInto(out []float32, outOff int, incoming []float32, frames int) {
	if frames <= 0 {
		return
	}
	den := float32(frames - 1)
	for i := 0; i < frames; i++ {
		var t float32
		if den > 0 {
			t = float32(i) / den
		}
		for c := 0; c < Channels; c++ {
			idx := outOff + i*Channels + c
			out[idx] = out[idx]*(1-t) + incoming[i*Channels+c]*t
		}
	}
}
