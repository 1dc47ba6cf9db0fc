// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming primitives of the track load
// pipeline: decode, resample, and channel conversion.
//
// This package contains the building blocks that turn an arbitrary audio
// file into the fixed-rate interleaved stereo PCM the loop engine consumes:
//   - Source interface for audio input
//   - Resampler for sample rate conversion
//   - StereoMixer for channel layout conversion
//   - Format registry for decoder registration
//
// # Source Interface
//
// The Source interface is the foundation of the pipeline:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// All audio decoders and processors implement this interface, allowing
// them to be chained together in processing pipelines.
//
// # Resampling
//
// The Resampler changes the sample rate of audio using cubic interpolation:
//
//	resampler := audio.NewResampler(source, 44100)
//	buf := make([]float32, 4096)
//	n, err := resampler.ReadSamples(buf)
//
// Resampling works for both upsampling and downsampling. Tracks recorded
// at any rate end up at the engine's fixed rate before loop rendering.
//
// # Channel Conversion
//
// The StereoMixer converts any channel layout to interleaved stereo:
//
//	stereo := audio.NewStereoMixer(source)
//	buf := make([]float32, 4096)
//	n, err := stereo.ReadSamples(buf)
//
// Mono sources are duplicated into both channels; wider layouts are
// averaged down.
//
// # Format Registry
//
// The registry allows dynamic decoder registration:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get("wav")
//
// The track library uses it to decode by file extension.
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// Intermediate stages may exceed the nominal range; only the engine's
// final mix stage clips.
//
// # Error Handling
//
// Pipeline stages return io.EOF when no more data is available. Other
// errors indicate problems with the source or processing:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    if err == io.EOF {
//	        break // Normal end of stream
//	    }
//	    if err != nil {
//	        return err // Processing error
//	    }
//	    // Process n samples from buf
//	}
//
// Everything in this package runs off the audio thread: the engine only
// ever sees fully decoded, fully rendered buffers.
package audio
