// SPDX-License-Identifier: EPL-2.0

package mp3_test

import (
	"fmt"
	"log"
	"os"

	"github.com/loopdeck/loopdeck/audio"
	"github.com/loopdeck/loopdeck/formats/mp3"
)

// Loading an MP3 track for the loop engine: decode, then bring it to the
// engine rate as interleaved stereo.
func ExampleDecoder_Decode() {
	f, err := os.Open("ambient/rain.mp3")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	src, err := mp3.Decoder{}.Decode(f)
	if err != nil {
		log.Fatal(err)
	}
	defer src.Close()

	pcm, err := audio.ResampleToStereo(src, 44100, 4096)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("decoded %d stereo frames at %d Hz\n", len(pcm)/2, src.SampleRate())
}
