// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"
	"io"

	"github.com/loopdeck/loopdeck/audio"
	"github.com/loopdeck/loopdeck/internal/audiotest"
)

// Example_resampler demonstrates how to use the Resampler to change sample rates.
func Example_resampler() {
	// Create a test audio source at 22.05kHz
	source := audiotest.NewSineSource(22050, 1, 22050, 440.0) // 1 second, 440Hz tone

	// Create a resampler to convert to the engine rate
	resampler := audio.NewResampler(source, 44100)

	// Check the output properties
	fmt.Printf("Output sample rate: %d Hz\n", resampler.SampleRate())
	fmt.Printf("Channels: %d\n", resampler.Channels())

	// Read samples
	buf := make([]float32, 4096)
	totalSamples := 0

	for {
		n, err := resampler.ReadSamples(buf)
		totalSamples += n

		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
	}

	fmt.Printf("Read more than a second's worth: %v\n", totalSamples > 22050)
	// Output:
	// Output sample rate: 44100 Hz
	// Channels: 1
	// Read more than a second's worth: true
}

// Example_stereoMixer demonstrates converting mono to stereo.
func Example_stereoMixer() {
	// Create a mono audio source
	source := audiotest.NewSineSource(44100, 1, 44100, 440.0) // 1 second mono

	// Convert to interleaved stereo
	stereo := audio.NewStereoMixer(source)

	fmt.Printf("Input channels: %d\n", source.Channels())
	fmt.Printf("Output channels: %d\n", stereo.Channels())
	fmt.Printf("Sample rate: %d Hz\n", stereo.SampleRate())

	// Read interleaved stereo samples
	buf := make([]float32, 4096)
	n, err := stereo.ReadSamples(buf)
	if err != nil && err != io.EOF {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Frames read: %d\n", n/2)
	fmt.Printf("Left equals right: %v\n", buf[0] == buf[1])
	// Output:
	// Input channels: 1
	// Output channels: 2
	// Sample rate: 44100 Hz
	// Frames read: 2048
	// Left equals right: true
}

// Example_registry demonstrates decoder registration by format key.
func Example_registry() {
	registry := audio.NewRegistry()

	// The host registers the formats it supports at startup; the track
	// library then decodes by file extension.
	_, ok := registry.Get("wav")
	fmt.Printf("wav registered: %v\n", ok)
	// Output:
	// wav registered: false
}

// Example_pipeline demonstrates a full load pipeline: resample then
// stereo-ize, ready for loop rendering.
func Example_pipeline() {
	source := audiotest.NewSineSource(48000, 1, 48000, 330.0)

	pcm, err := audio.ResampleToStereo(source, 44100, 4096)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Stereo samples: %v\n", len(pcm)%2 == 0)
	fmt.Printf("Got roughly a second: %v\n", len(pcm)/2 > 43000 && len(pcm)/2 < 45000)
	// Output:
	// Stereo samples: true
	// Got roughly a second: true
}
