package audio

import (
	"fmt"
	"io"
)

// ResampleToStereo resamples a source to targetRate, converts it to
// interleaved stereo, and collects every sample as float32 PCM, the form
// the loop renderer consumes.
//
// The pipeline:
//  1. Resamples the source to targetRate using cubic interpolation
//  2. Converts the result to interleaved stereo
//  3. Drains the pipeline into one slice
//
// Parameters:
//   - src: The audio source to process (implements Source interface)
//   - targetRate: Target sample rate in Hz (e.g., 44100, 48000)
//   - bufferSize: Size of the read buffer in float32 values (e.g., 4096);
//     it is rounded down to a whole number of stereo frames
//
// Decoding and collection happen entirely off the audio thread; loops are
// rendered from fully decoded PCM.
func ResampleToStereo(src Source, targetRate int, bufferSize int) ([]float32, error) {
	resampler := NewResampler(src, targetRate)
	stereo := NewStereoMixer(resampler)

	if bufferSize < 2 {
		bufferSize = 2
	}
	bufferSize -= bufferSize % 2

	var pcm []float32
	buf := make([]float32, bufferSize)

	for {
		n, err := stereo.ReadSamples(buf)
		if n > 0 {
			pcm = append(pcm, buf[:n]...)
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	return pcm, nil
}
