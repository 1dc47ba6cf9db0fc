// SPDX-License-Identifier: EPL-2.0

package main

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/ebitengine/oto/v3"

	"github.com/loopdeck/loopdeck/engine"
)

// player feeds engine output to the sound device. oto pulls bytes through
// Read on its own mixing goroutine; the engine pointer is atomic so the
// hot path takes no lock.
type player struct {
	ctx       *oto.Context
	player    *oto.Player
	engine    atomic.Pointer[engine.Engine]
	sampleBuf []float32
	started   bool
	mu        sync.Mutex
}

func newPlayer(sampleRate int) (*player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: engine.Channels,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	return &player{ctx: ctx}, nil
}

func (p *player) attach(eng *engine.Engine) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.engine.Store(eng)
	p.player = p.ctx.NewPlayer(p)
	// Pre-allocate for typical oto pull sizes
	p.sampleBuf = make([]float32, 4096)
}

func (p *player) Read(b []byte) (int, error) {
	eng := p.engine.Load()
	if eng == nil {
		clear(b)
		return len(b), nil
	}

	numSamples := len(b) / 4
	if numSamples == 0 {
		clear(b)
		return len(b), nil
	}

	// Should not happen after attach, but never allocate twice
	if len(p.sampleBuf) < numSamples {
		p.sampleBuf = make([]float32, numSamples)
	}
	samples := p.sampleBuf[:numSamples]

	eng.RenderBlock(samples)

	n := numSamples * 4
	copy(b[:n], (*[1 << 30]byte)(unsafe.Pointer(&samples[0]))[:n])
	clear(b[n:])
	return len(b), nil
}

func (p *player) start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started && p.player != nil {
		p.player.Play()
		p.started = true
	}
}

func (p *player) close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.player != nil {
		p.player.Close()
		p.player = nil
		p.started = false
	}
}
