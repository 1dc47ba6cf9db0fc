// SPDX-License-Identifier: EPL-2.0

package main

import (
	"strings"
	"testing"

	"github.com/loopdeck/loopdeck/engine"
)

func TestDelayDescription(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"off", 0, "OFF"},
		{"short low", 0.1, "SHORT (10%)"},
		{"short boundary", 0.3, "SHORT (30%)"},
		{"medium", 0.5, "MEDIUM (50%)"},
		{"medium boundary", 0.7, "MEDIUM (70%)"},
		{"long", 0.9, "LONG (90%)"},
		{"long max", 1.0, "LONG (100%)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := delayDescription(tt.amount); got != tt.want {
				t.Errorf("delayDescription(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()

	if got := progressBar(0, 10); got != "[░░░░░░░░░░]   0%" {
		t.Errorf("progressBar(0) = %q", got)
	}

	if got := progressBar(1, 10); got != "[██████████] 100%" {
		t.Errorf("progressBar(1) = %q", got)
	}

	half := progressBar(0.5, 10)
	if !strings.Contains(half, "50%") {
		t.Errorf("progressBar(0.5) = %q, want 50%%", half)
	}
	if strings.Count(half, "█") != 5 {
		t.Errorf("progressBar(0.5) = %q, want 5 filled cells", half)
	}
}

func TestCrossfaderBar_Position(t *testing.T) {
	t.Parallel()

	low := crossfaderBar(0, 30)
	high := crossfaderBar(1, 30)

	if strings.Index(low, "█") >= strings.Index(high, "█") {
		t.Errorf("fader marker did not move: low %q, high %q", low, high)
	}

	// Fader 0 is full ambient, so the marker sits at the A end; fader 1
	// is full rhythm, marker at the R end.
	if !strings.HasPrefix(low, "A ") || !strings.HasSuffix(low, " R") {
		t.Errorf("bar labels wrong: %q, want A on the left, R on the right", low)
	}
	if strings.Index(low, "█") > len("A ◄─█") {
		t.Errorf("fader 0 marker not at the ambient end: %q", low)
	}
	if strings.Index(high, "█") < len(high)-len("█─► R") {
		t.Errorf("fader 1 marker not at the rhythm end: %q", high)
	}
}

func TestRenderStatus_Markers(t *testing.T) {
	t.Parallel()

	eng := engine.New(44100)
	eng.PreloadAmbient(&engine.Buffer{Data: make([]float32, 4), SampleRate: 44100})

	out := renderStatus(eng.Snapshot(), "pad.wav", "beat.wav")

	if !strings.Contains(out, "pad.wav") || !strings.Contains(out, "beat.wav") {
		t.Errorf("renderStatus missing track names:\n%s", out)
	}

	// Staged ambient buffer shows a pending marker
	ambientLine := strings.SplitN(out, "\r\n", 3)[1]
	if !strings.Contains(ambientLine, "*") {
		t.Errorf("ambient line missing pending marker: %q", ambientLine)
	}
}

func TestControlState_Nudges(t *testing.T) {
	t.Parallel()

	s := newControlState()

	if s.Crossfader() != 0.5 {
		t.Fatalf("initial Crossfader() = %v, want 0.5", s.Crossfader())
	}

	for range 20 {
		s.nudgeFader(0.05)
	}
	if s.Crossfader() != 1 {
		t.Errorf("Crossfader() = %v after nudging past top, want 1", s.Crossfader())
	}

	for range 40 {
		s.nudgeFader(-0.05)
	}
	if s.Crossfader() != 0 {
		t.Errorf("Crossfader() = %v after nudging past bottom, want 0", s.Crossfader())
	}

	s.nudgeDelay(0.3)
	if d := s.DelayAmount(); d < 0.29 || d > 0.31 {
		t.Errorf("DelayAmount() = %v, want ≈0.3", d)
	}

	s.nudgeReverb(2)
	if s.ReverbAmount() != 1 {
		t.Errorf("ReverbAmount() = %v, want clamped to 1", s.ReverbAmount())
	}
}
