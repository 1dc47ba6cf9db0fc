// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/loopdeck/loopdeck/engine"
	"github.com/loopdeck/loopdeck/library"
)

const nudgeStep = 0.05

// keyReader puts the terminal into raw mode and maps single keystrokes to
// control actions. Only instantiated interactively, never in tests.
type keyReader struct {
	controls *controlState
	engine   *engine.Engine
	manager  *library.Manager
	quit     func()

	stopCh       chan struct{}
	done         chan struct{}
	stopped      sync.Once
	fd           int
	nonblockSet  bool
	oldTermState *term.State

	// manual volumes mirrored here so Z/X nudges have a base to move from
	manualAmbient float64
	manualRhythm  float64
}

func newKeyReader(controls *controlState, eng *engine.Engine, mgr *library.Manager, quit func()) *keyReader {
	return &keyReader{
		controls:      controls,
		engine:        eng,
		manager:       mgr,
		quit:          quit,
		stopCh:        make(chan struct{}),
		done:          make(chan struct{}),
		manualAmbient: 0.5,
		manualRhythm:  0.5,
	}
}

// start sets stdin to raw non-blocking mode and begins reading keys in a
// goroutine. Call stop to restore the terminal.
func (k *keyReader) start() error {
	k.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(k.fd)
	if err != nil {
		close(k.done)
		return fmt.Errorf("setting raw mode: %w", err)
	}
	k.oldTermState = oldState

	if err := syscall.SetNonblock(k.fd, true); err != nil {
		_ = term.Restore(k.fd, k.oldTermState)
		k.oldTermState = nil
		close(k.done)
		return fmt.Errorf("setting nonblocking stdin: %w", err)
	}
	k.nonblockSet = true

	go func() {
		defer close(k.done)
		buf := make([]byte, 1)

		for {
			select {
			case <-k.stopCh:
				return
			default:
			}

			n, err := syscall.Read(k.fd, buf)
			if n > 0 {
				k.handleKey(buf[0])
			}
			if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK {
				time.Sleep(5 * time.Millisecond)
				continue
			}
			if err != nil {
				return
			}
			if n == 0 {
				time.Sleep(5 * time.Millisecond)
			}
		}
	}()

	return nil
}

// stop terminates the key goroutine and restores the terminal.
func (k *keyReader) stop() {
	k.stopped.Do(func() {
		close(k.stopCh)
	})
	<-k.done
	if k.nonblockSet {
		_ = syscall.SetNonblock(k.fd, false)
		k.nonblockSet = false
	}
	if k.oldTermState != nil {
		_ = term.Restore(k.fd, k.oldTermState)
		k.oldTermState = nil
	}
}

func (k *keyReader) handleKey(b byte) {
	switch b {
	case 'q', 0x1b: // q or Esc
		k.quit()
	case 'Q':
		// Fader 0 is full ambient, so raising ambient lowers the fader.
		k.controls.nudgeFader(-nudgeStep)
	case 'a', 'A':
		k.controls.nudgeFader(nudgeStep)
	case 'w', 'W':
		k.controls.nudgeDelay(nudgeStep)
	case 's', 'S':
		k.controls.nudgeDelay(-nudgeStep)
	case 'e', 'E':
		k.controls.nudgeReverb(nudgeStep)
	case 'd', 'D':
		k.controls.nudgeReverb(-nudgeStep)
	case 'z', 'Z':
		k.nudgeManual(nudgeStep)
	case 'x', 'X':
		k.nudgeManual(-nudgeStep)
	case 'r', 'R':
		_ = k.manager.Scan()
	}
}

// nudgeManual shifts the balance in manual two-volume mode: ambient up
// means rhythm down, like tilting a mixer.
func (k *keyReader) nudgeManual(d float64) {
	k.manualAmbient = clamp01(k.manualAmbient + d)
	k.manualRhythm = clamp01(k.manualRhythm - d)
	k.engine.SetVolumes(k.manualAmbient, k.manualRhythm)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
