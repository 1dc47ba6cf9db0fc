// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis tracks into the float PCM the load
// pipeline works in.
//
// Decoding is built on github.com/jfreymuth/oggvorbis, which already
// produces float32 samples, so they pass through unscaled. Reads are
// rounded down to whole frames; mono and stereo files at any sample rate
// are accepted.
//
//	f, _ := os.Open("ambient/drone.ogg")
//	src, err := vorbis.Decoder{}.Decode(f)
//	if err != nil {
//	    // not an Ogg Vorbis stream
//	}
//
// Encoding is not supported.
package vorbis
