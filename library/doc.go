// SPDX-License-Identifier: EPL-2.0

// Package library manages the on-disk track collection.
//
// Tracks live in two directories, one per slot kind (ambient and rhythm).
// A track is any supported audio file (.wav, .mp3, .ogg, .aiff)
// accompanied by a sidecar "<base>.txt" JSON config carrying the loop
// crossfade in milliseconds:
//
//	{"crossfade_ms": 500}
//
// Files without a readable sidecar are skipped during scanning, so a
// directory can hold work-in-progress material that never reaches the
// engine.
//
// # Selection
//
// The Manager picks tracks at random but always keeps one upcoming track
// per kind pre-picked, so a host can display what will load next before
// the fader trigger fires:
//
//	mgr := library.NewManager("samples/ambient", "samples/rhythm", nil)
//	if err := mgr.Scan(); err != nil {
//	    log.Fatal(err)
//	}
//
//	track, _ := mgr.NextAmbient() // consume the pre-pick, pick a new one
//	upcoming, _ := mgr.PeekNextAmbient()
//
// # Metadata Cache
//
// Probing a track's duration means decoding it end to end. The optional
// Cache stores probed durations in a sqlite database keyed by path and
// file modification time, so rescans only pay for new or changed files.
package library
