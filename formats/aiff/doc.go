// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF tracks into the float PCM the load pipeline
// works in.
//
// Decoding is built on github.com/go-audio/aiff. Only 16-bit PCM is
// supported; Decode returns ErrOnlyPCM16bitSupported for anything else.
// Mono and multi-channel files at any sample rate are accepted, and
// readers that cannot seek are buffered in memory first.
//
//	f, _ := os.Open("rhythm/pulse.aiff")
//	src, err := aiff.Decoder{}.Decode(f)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // skip the file, it is not an AIFF container
//	}
//
// Samples come out as float32 in [-1, 1].
package aiff
