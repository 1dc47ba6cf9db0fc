// SPDX-License-Identifier: EPL-2.0

package engine

// The effects chain runs inside the audio callback, so every state buffer
// is allocated at construction time, sized for the largest preset, and
// Process never allocates. An amount of zero fully bypasses a processor
// (dry passthrough), not merely a zero mix.

// delayPreset is one of the three fixed delay settings selected by the
// amount knob.
type delayPreset struct {
	timeMS   int
	feedback float32
}

var delayPresets = [3]delayPreset{
	{timeMS: 200, feedback: 0.3}, // amount <= 0.3
	{timeMS: 400, feedback: 0.5}, // amount <= 0.7
	{timeMS: 800, feedback: 0.7}, // amount > 0.7
}

const maxDelayMS = 800

// presetFor maps an amount in (0,1] to a preset index.
func presetFor(amount float64) int {
	switch {
	case amount <= 0.3:
		return 0
	case amount <= 0.7:
		return 1
	default:
		return 2
	}
}

// Delay is a stereo feedback delay with three time/feedback presets. The
// wet/dry mix equals the amount directly in all bands.
type Delay struct {
	amount atomicFloat

	lines [Channels][]float32 // rings sized for the longest preset
	pos   int
}

func NewDelay(sampleRate int) *Delay {
	maxSamples := maxDelayMS * sampleRate / 1000
	d := &Delay{}
	for c := range d.lines {
		d.lines[c] = make([]float32, maxSamples)
	}
	return d
}

// SetAmount sets the delay knob. Values are clamped to [0,1]; zero
// bypasses the processor entirely.
func (d *Delay) SetAmount(x float64) { d.amount.Store(clamp01(x)) }

// Amount returns the current knob value.
func (d *Delay) Amount() float64 { return d.amount.Load() }

// Process applies the delay to an interleaved stereo block in place.
func (d *Delay) Process(block []float32, sampleRate int) {
	amount := d.amount.Load()
	if amount == 0 {
		return
	}
	p := delayPresets[presetFor(amount)]
	n := p.timeMS * sampleRate / 1000
	if n > len(d.lines[0]) {
		n = len(d.lines[0])
	}
	if n == 0 {
		return
	}
	if d.pos >= n {
		d.pos = 0
	}
	mix := float32(amount)
	frames := len(block) / Channels
	for f := 0; f < frames; f++ {
		for c := 0; c < Channels; c++ {
			i := f*Channels + c
			in := block[i]
			echoed := d.lines[c][d.pos]
			d.lines[c][d.pos] = in + echoed*p.feedback
			block[i] = in*(1-mix) + echoed*mix
		}
		d.pos++
		if d.pos >= n {
			d.pos = 0
		}
	}
}

// Schroeder reverb constants, tuned at 44.1kHz and scaled to the engine
// rate. The right channel combs are offset for stereo spread.
var (
	combTuning    = [4]int{1116, 1188, 1277, 1356}
	allpassTuning = [2]int{556, 441}
)

const (
	reverbStereoSpread = 23
	reverbRoomFeedback = 0.84
	reverbDamping      = 0.2
	reverbInputGain    = 0.015
	allpassFeedback    = 0.5
)

type comb struct {
	buf   []float32
	pos   int
	store float32 // damped low-pass state
}

func (cb *comb) process(in float32) float32 {
	out := cb.buf[cb.pos]
	cb.store = out*(1-reverbDamping) + cb.store*reverbDamping
	cb.buf[cb.pos] = in + cb.store*reverbRoomFeedback
	cb.pos++
	if cb.pos >= len(cb.buf) {
		cb.pos = 0
	}
	return out
}

type allpass struct {
	buf []float32
	pos int
}

func (ap *allpass) process(in float32) float32 {
	bufout := ap.buf[ap.pos]
	ap.buf[ap.pos] = in + bufout*allpassFeedback
	ap.pos++
	if ap.pos >= len(ap.buf) {
		ap.pos = 0
	}
	return bufout - in
}

// Reverb is a fixed-character Schroeder reverb network: four damped comb
// filters in parallel feeding two series allpasses, per channel. Wet level
// equals the amount, dry level is one minus the amount.
type Reverb struct {
	amount atomicFloat

	combs     [Channels][4]comb
	allpasses [Channels][2]allpass
}

func NewReverb(sampleRate int) *Reverb {
	r := &Reverb{}
	scale := func(n int) int {
		s := n * sampleRate / 44100
		if s < 1 {
			s = 1
		}
		return s
	}
	for c := 0; c < Channels; c++ {
		spread := c * reverbStereoSpread
		for i, n := range combTuning {
			r.combs[c][i].buf = make([]float32, scale(n+spread))
		}
		for i, n := range allpassTuning {
			r.allpasses[c][i].buf = make([]float32, scale(n+spread))
		}
	}
	return r
}

// SetAmount sets the reverb knob. Values are clamped to [0,1]; zero
// bypasses the processor entirely.
func (r *Reverb) SetAmount(x float64) { r.amount.Store(clamp01(x)) }

// Amount returns the current knob value.
func (r *Reverb) Amount() float64 { return r.amount.Load() }

// Process applies the reverb to an interleaved stereo block in place.
func (r *Reverb) Process(block []float32) {
	amount := r.amount.Load()
	if amount == 0 {
		return
	}
	wet := float32(amount)
	dry := 1 - wet
	frames := len(block) / Channels
	for f := 0; f < frames; f++ {
		for c := 0; c < Channels; c++ {
			i := f*Channels + c
			in := block[i]
			scaled := in * reverbInputGain
			var out float32
			for k := range r.combs[c] {
				out += r.combs[c][k].process(scaled)
			}
			for k := range r.allpasses[c] {
				out = r.allpasses[c][k].process(out)
			}
			block[i] = in*dry + out*wet
		}
	}
}

// Chain is the engine's effect stack: delay into reverb. Both processors
// share the single-amount parameter mapping described above.
type Chain struct {
	sampleRate int
	delay      *Delay
	reverb     *Reverb
}

func NewChain(sampleRate int) *Chain {
	return &Chain{
		sampleRate: sampleRate,
		delay:      NewDelay(sampleRate),
		reverb:     NewReverb(sampleRate),
	}
}

func (c *Chain) SetDelayAmount(x float64)  { c.delay.SetAmount(x) }
func (c *Chain) SetReverbAmount(x float64) { c.reverb.SetAmount(x) }
func (c *Chain) DelayAmount() float64      { return c.delay.Amount() }
func (c *Chain) ReverbAmount() float64     { return c.reverb.Amount() }

// Process runs the chain over an interleaved stereo block in place. Safe
// to call every audio period; does not allocate.
func (c *Chain) Process(block []float32) {
	c.delay.Process(block, c.sampleRate)
	c.reverb.Process(block)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
