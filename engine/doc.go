// SPDX-License-Identifier: EPL-2.0

// Package engine implements the real-time loop mixing core of loopdeck.
//
// The engine plays two channels (an ambient bed and a rhythm bed) from
// pre-rendered loop buffers, mixes them under a crossfader or manual
// volumes, applies a delay/reverb chain, and hard-clips the result.
//
// # Loop pre-rendering
//
// A Renderer turns decoded PCM into one long buffer containing several
// repetitions of the source, with each repetition boundary crossfaded so
// playback never produces an audible seam:
//
//	r := engine.NewRenderer()
//	res, err := r.Render(src, 1000, 300) // 1s crossfade, 5 minute buffer
//	if err != nil {
//	    // Handle error
//	}
//	eng.PreloadAmbient(res.Buffer)
//
// Rendering happens off the audio thread; the result is handed to a Slot
// through an atomic pointer and promoted only while the slot is silent.
//
// # The audio callback
//
// Engine.RenderBlock is the audio callback body. It is written for a hard
// real-time deadline: after construction it never allocates, locks, logs,
// or performs I/O. A slot with no buffer contributes silence instead of an
// error, so audio never halts on a bad file.
//
// All parameter setters (SetCrossfader, SetVolumes, SetDelayAmount,
// SetReverbAmount, PreloadAmbient, PreloadRhythm) are safe to call from a
// control goroutine while RenderBlock runs on the audio thread.
package engine
