// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/loopdeck/loopdeck/engine"
)

// trackNames tracks what each slot is playing and loading, fed by loader
// callbacks.
type trackNames struct {
	mu      sync.Mutex
	ambient string
	rhythm  string
}

func (t *trackNames) set(kind, name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if kind == "ambient" {
		t.ambient = name
	} else {
		t.rhythm = name
	}
}

func (t *trackNames) get() (string, string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ambient, t.rhythm
}

// delayDescription names the active delay preset.
func delayDescription(amount float64) string {
	switch {
	case amount == 0:
		return "OFF"
	case amount <= 0.3:
		return fmt.Sprintf("SHORT (%d%%)", int(amount*100))
	case amount <= 0.7:
		return fmt.Sprintf("MEDIUM (%d%%)", int(amount*100))
	default:
		return fmt.Sprintf("LONG (%d%%)", int(amount*100))
	}
}

// progressBar renders value in [0,1] as a fixed-width bar with a percent.
func progressBar(value float64, width int) string {
	filled := int(value * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %3d%%", bar, int(value*100))
}

// crossfaderBar renders the fader position between the two slot labels.
func crossfaderBar(value float64, width int) string {
	pos := int(value * float64(width-1))
	if pos > width-1 {
		pos = width - 1
	}
	bar := strings.Repeat(" ", pos) + "█" + strings.Repeat(" ", width-pos-1)
	return fmt.Sprintf("A ◄─%s─► R", bar)
}

// renderStatus formats the periodic status box. Lines end with \r\n
// because the terminal is in raw mode.
func renderStatus(snap engine.Snapshot, ambientName, rhythmName string) string {
	var b strings.Builder

	marker := func(pending bool) string {
		if pending {
			return " *"
		}
		return ""
	}

	name := func(n string, ready bool) string {
		if n == "" {
			if ready {
				return "(unnamed)"
			}
			return "(none)"
		}
		return n
	}

	fmt.Fprintf(&b, "┌──────────────────────────────────────────────────────────────┐\r\n")
	fmt.Fprintf(&b, "│ AMBIENT: %-24s %s%s\r\n",
		name(ambientName, snap.AmbientReady), progressBar(snap.AmbientGain, 20), marker(snap.AmbientPending))
	fmt.Fprintf(&b, "│ RHYTHM:  %-24s %s%s\r\n",
		name(rhythmName, snap.RhythmReady), progressBar(snap.RhythmGain, 20), marker(snap.RhythmPending))
	fmt.Fprintf(&b, "│ FADER:   %s\r\n", crossfaderBar(snap.Crossfader, 30))
	fmt.Fprintf(&b, "│ DELAY:   %-15s %s\r\n", delayDescription(snap.DelayAmount), progressBar(snap.DelayAmount, 20))
	fmt.Fprintf(&b, "│ REVERB:  %3d%%            %s\r\n", int(snap.ReverbAmount*100), progressBar(snap.ReverbAmount, 20))
	fmt.Fprintf(&b, "│ MODE:    %-12s\r\n", snap.Mode)
	fmt.Fprintf(&b, "└──────────────────────────────────────────────────────────────┘\r\n")

	return b.String()
}
