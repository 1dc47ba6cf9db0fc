// SPDX-License-Identifier: EPL-2.0

// Package control drives the engine from a control surface.
//
// Two pieces cooperate:
//
// The Loader prepares loop buffers in the background. Each slot kind has
// one worker goroutine and a single-pending-request mailbox: queueing a
// newer track replaces an unstarted older one, and a render that finishes
// after being superseded is discarded. The audio thread is never involved;
// finished buffers go through the engine's Preload methods and take over
// only when the slot is silent.
//
// The Controller polls a Controls surface (typically the keyboard state in
// the host) at a fixed interval, pushes changed values into the engine,
// and fires the track swap trigger when the crossfader reaches an
// extreme: moving to >= 0.95 queues a fresh ambient track (the ambient
// slot is silent there), moving to <= 0.05 queues a fresh rhythm track.
// Each trigger re-arms only after the fader leaves the extreme, so parking
// the fader loads exactly one track.
package control
