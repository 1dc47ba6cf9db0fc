// SPDX-License-Identifier: EPL-2.0

package library

// Kind distinguishes the two slot roles a track can fill.
type Kind string

const (
	KindAmbient Kind = "ambient"
	KindRhythm  Kind = "rhythm"
)

// TrackInfo describes one playable track found during a scan.
type TrackInfo struct {
	// Name is the file name without directory.
	Name string

	// Path is the full path to the audio file.
	Path string

	Kind Kind

	// CrossfadeMS is the loop crossfade from the sidecar config.
	CrossfadeMS int

	// Duration of the source material in seconds, 0 if never probed.
	Duration float64
}
