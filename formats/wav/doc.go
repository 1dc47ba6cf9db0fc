// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV decoding for the load pipeline and 16-bit PCM
// encoding for loop export.
//
// Decoding is built on github.com/go-audio/wav and accepts PCM files at
// 8, 16, 24 and 32 bits per sample, mono or multi-channel, at any sample
// rate. Samples are normalized to float32 in [-1, 1] by the file's bit
// depth. Readers that cannot seek are buffered in memory first.
//
//	src, err := wav.Decoder{}.Decode(f)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // skip the file
//	}
//
// Encoding writes plain 16-bit PCM. WriteWAV16 takes mono samples,
// WriteWAV16Stereo interleaved stereo pairs; both write the complete
// container in one pass, staging sample data through a fixed slab.
//
//	err := wav.WriteWAV16Stereo(file, 44100, samples)
package wav
