// SPDX-License-Identifier: EPL-2.0

package control

import (
	"context"
	"time"

	"github.com/loopdeck/loopdeck/engine"
	"github.com/loopdeck/loopdeck/library"
)

const (
	// DefaultPollInterval is how often the Controller samples the
	// control surface.
	DefaultPollInterval = 50 * time.Millisecond

	// HighTrigger is the crossfader position at and above which the
	// ambient slot counts as silent and a fresh ambient track is queued.
	HighTrigger = 0.95

	// LowTrigger is the mirror position for the rhythm slot.
	LowTrigger = 0.05
)

// Controls is a read-only view of the control surface. Implementations
// must be safe to read from the controller goroutine while the host
// mutates them.
type Controls interface {
	// Crossfader position in [0,1]: 0 is all ambient, 1 all rhythm.
	Crossfader() float64
	// DelayAmount in [0,1].
	DelayAmount() float64
	// ReverbAmount in [0,1].
	ReverbAmount() float64
}

// Controller polls a Controls surface, pushes changed values into the
// engine, and fires the fader-extreme track swap trigger.
type Controller struct {
	engine   *engine.Engine
	controls Controls
	manager  *library.Manager
	loader   *Loader

	// Interval between polls; DefaultPollInterval when zero.
	Interval time.Duration

	primed     bool
	prevFader  float64
	lastFader  float64
	lastDelay  float64
	lastReverb float64
}

func NewController(eng *engine.Engine, controls Controls, mgr *library.Manager, loader *Loader) *Controller {
	return &Controller{
		engine:   eng,
		controls: controls,
		manager:  mgr,
		loader:   loader,
	}
}

// Run polls until ctx is cancelled.
func (c *Controller) Run(ctx context.Context) {
	interval := c.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.tick()
		}
	}
}

// tick performs one poll cycle.
func (c *Controller) tick() {
	fader := c.controls.Crossfader()
	delay := c.controls.DelayAmount()
	reverb := c.controls.ReverbAmount()

	if !c.primed {
		// First cycle establishes the baseline without firing triggers
		c.engine.SetCrossfader(fader)
		c.engine.SetDelayAmount(delay)
		c.engine.SetReverbAmount(reverb)

		c.primed = true
		c.prevFader = fader
		c.lastFader, c.lastDelay, c.lastReverb = fader, delay, reverb
		return
	}

	// Push only changed values so manual volume mode survives until the
	// fader actually moves
	if fader != c.lastFader {
		c.engine.SetCrossfader(fader)
	}
	if delay != c.lastDelay {
		c.engine.SetDelayAmount(delay)
	}
	if reverb != c.lastReverb {
		c.engine.SetReverbAmount(reverb)
	}

	// Edge-triggered swap: fires on entering an extreme, re-arms on
	// leaving it
	if fader >= HighTrigger && c.prevFader < HighTrigger {
		c.queueAmbient()
	} else if fader <= LowTrigger && c.prevFader > LowTrigger {
		c.queueRhythm()
	}

	c.prevFader = fader
	c.lastFader, c.lastDelay, c.lastReverb = fader, delay, reverb
}

func (c *Controller) queueAmbient() {
	track, err := c.manager.NextAmbient()
	if err != nil {
		return
	}

	c.loader.QueueAmbient(TrackLoadRequest{
		Name:        track.Name,
		Path:        track.Path,
		CrossfadeMS: track.CrossfadeMS,
	})
}

func (c *Controller) queueRhythm() {
	track, err := c.manager.NextRhythm()
	if err != nil {
		return
	}

	c.loader.QueueRhythm(TrackLoadRequest{
		Name:        track.Name,
		Path:        track.Path,
		CrossfadeMS: track.CrossfadeMS,
	})
}
