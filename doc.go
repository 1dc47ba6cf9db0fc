// SPDX-License-Identifier: EPL-2.0

// Package loopdeck provides a real-time two-track loop mixing engine for
// Go applications.
//
// Loopdeck turns finite audio files into seamless, endlessly repeating
// loops and mixes two of them (an ambient bed and a rhythmic layer) with a
// DJ-style crossfader and a send-style effects chain. All expensive work
// (decoding, resampling, loop rendering) happens off the audio thread;
// the mix callback itself never allocates.
//
// # Supported Formats
//
// The package supports decoding the following audio formats:
//   - WAV via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF via formats/aiff
//
// # Quick Start
//
// The simplest way to turn a file into a loop is PrepareLoop:
//
//	// Decode an audio file
//	src, _ := loopdeck.DecodeFile("pad.wav")
//	defer src.Close()
//
//	// Pre-render a 60 second loop with a 500ms crossfade at 44.1kHz
//	res, _ := loopdeck.PrepareLoop(src, 44100, 500, 60)
//
//	// Hand it to the engine
//	eng := engine.New(44100)
//	eng.LoadAmbient(res.Buffer)
//	eng.Start()
//
// The engine then produces audio through RenderBlock, which a host feeds
// to its output device:
//
//	block := make([]float32, 2048)
//	eng.RenderBlock(block)
//
// # Loop Rendering
//
// Loops are rendered ahead of time by overlap-mixing repetitions of the
// source with equal-power linear fades, so the audio thread only ever
// plays back a fixed buffer. See the engine package for the renderer,
// the lock-free slot handoff, and the delay/reverb effects.
//
// # Audio Processing Pipeline
//
// For more control, build the pipeline from the audio subpackage:
//
//	// Create a resampler
//	resampler := audio.NewResampler(source, 44100)
//
//	// Normalize the channel layout to stereo
//	stereo := audio.NewStereoMixer(resampler)
//
//	// Read samples
//	buf := make([]float32, 4096)
//	n, err := stereo.ReadSamples(buf)
//
// # Format Decoders
//
// Each format has its own decoder:
//
//	// WAV
//	wavDecoder := wav.Decoder{}
//	src, _ := wavDecoder.Decode(reader)
//
//	// MP3
//	mp3Decoder := mp3.Decoder{}
//	src, _ := mp3Decoder.Decode(reader)
//
//	// Vorbis
//	vorbisDecoder := vorbis.Decoder{}
//	src, _ := vorbisDecoder.Decode(reader)
//
//	// AIFF
//	aiffDecoder := aiff.Decoder{}
//	src, _ := aiffDecoder.Decode(reader)
//
// DecodeFile picks the decoder by file extension using NewRegistry.
//
// # Track Library and Control
//
// The library package scans a directory for tracks and their per-track
// crossfade settings; the control package drives background loading and
// the crossfader trigger pattern. The cmd/loopdeck host wires everything
// to a sound device and the keyboard.
package loopdeck
