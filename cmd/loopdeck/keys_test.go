// SPDX-License-Identifier: EPL-2.0

package main

import "testing"

func TestHandleKey_FaderDirections(t *testing.T) {
	t.Parallel()

	k := &keyReader{controls: newControlState()}

	// Q raises the ambient bed, which lives at fader 0.
	k.handleKey('Q')
	if got := k.controls.Crossfader(); got >= 0.5 {
		t.Errorf("Crossfader() = %v after Q, want below 0.5", got)
	}

	k.handleKey('a')
	k.handleKey('A')
	if got := k.controls.Crossfader(); got <= 0.5 {
		t.Errorf("Crossfader() = %v after A twice, want above 0.5", got)
	}
}

func TestHandleKey_EffectNudges(t *testing.T) {
	t.Parallel()

	k := &keyReader{controls: newControlState()}

	k.handleKey('w')
	k.handleKey('e')
	if k.controls.DelayAmount() != nudgeStep {
		t.Errorf("DelayAmount() = %v, want %v", k.controls.DelayAmount(), nudgeStep)
	}
	if k.controls.ReverbAmount() != nudgeStep {
		t.Errorf("ReverbAmount() = %v, want %v", k.controls.ReverbAmount(), nudgeStep)
	}

	k.handleKey('s')
	k.handleKey('d')
	if k.controls.DelayAmount() != 0 || k.controls.ReverbAmount() != 0 {
		t.Errorf("amounts = %v, %v after lowering, want 0, 0",
			k.controls.DelayAmount(), k.controls.ReverbAmount())
	}
}
