// SPDX-License-Identifier: EPL-2.0

package main

import (
	"math"
	"sync/atomic"
)

// controlState is the keyboard-driven control surface. The key reader
// goroutine writes it, the controller goroutine reads it.
type controlState struct {
	fader  atomic.Uint64
	delay  atomic.Uint64
	reverb atomic.Uint64
}

func newControlState() *controlState {
	s := &controlState{}
	s.fader.Store(math.Float64bits(0.5))
	return s
}

func (s *controlState) Crossfader() float64   { return math.Float64frombits(s.fader.Load()) }
func (s *controlState) DelayAmount() float64  { return math.Float64frombits(s.delay.Load()) }
func (s *controlState) ReverbAmount() float64 { return math.Float64frombits(s.reverb.Load()) }

func nudge(v *atomic.Uint64, delta float64) {
	next := math.Float64frombits(v.Load()) + delta
	if next < 0 {
		next = 0
	} else if next > 1 {
		next = 1
	}
	v.Store(math.Float64bits(next))
}

func (s *controlState) nudgeFader(d float64)  { nudge(&s.fader, d) }
func (s *controlState) nudgeDelay(d float64)  { nudge(&s.delay, d) }
func (s *controlState) nudgeReverb(d float64) { nudge(&s.reverb, d) }
