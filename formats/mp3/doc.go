// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 tracks into the float PCM the load pipeline
// works in.
//
// Decoding is built on github.com/hajimehoshi/go-mp3, which upmixes mono
// streams while decoding, so the source always reports two channels. The
// sample rate is whatever the file was encoded at; feed the source
// through audio.ResampleToStereo to bring a track to the engine rate:
//
//	f, _ := os.Open("ambient/rain.mp3")
//	src, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    // not an MP3, or a corrupt stream
//	}
//	pcm, err := audio.ResampleToStereo(src, 44100, 4096)
//
// Samples come out as float32 in [-1, 1]. Encoding is not supported.
package mp3
