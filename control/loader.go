// SPDX-License-Identifier: EPL-2.0

package control

import (
	"context"
	"fmt"
	"sync"

	"github.com/loopdeck/loopdeck"
	"github.com/loopdeck/loopdeck/engine"
)

// DefaultLoopSeconds is how much audio a prepared loop buffer covers when
// the Loader is not configured otherwise.
const DefaultLoopSeconds = 60

// TrackLoadRequest identifies one track to prepare for a slot.
type TrackLoadRequest struct {
	Name        string
	Path        string
	CrossfadeMS int
}

// Loader renders loop buffers off the audio thread, one worker per slot
// kind. Queue methods never block; each kind holds at most one pending
// request and a newer one supersedes it.
type Loader struct {
	engine      *engine.Engine
	loopSeconds float64

	// OnLoaded, if set, is called from a worker goroutine after a
	// prepared buffer has been handed to the engine.
	OnLoaded func(kind string, req TrackLoadRequest)

	// OnError, if set, is called from a worker goroutine when a request
	// cannot be prepared.
	OnError func(req TrackLoadRequest, err error)

	ambient slotLoader
	rhythm  slotLoader
}

// NewLoader creates a Loader targeting eng. loopSeconds <= 0 selects
// DefaultLoopSeconds.
func NewLoader(eng *engine.Engine, loopSeconds float64) *Loader {
	if loopSeconds <= 0 {
		loopSeconds = DefaultLoopSeconds
	}

	l := &Loader{
		engine:      eng,
		loopSeconds: loopSeconds,
	}
	l.ambient.init()
	l.rhythm.init()

	return l
}

// Run starts both workers and blocks until ctx is cancelled.
func (l *Loader) Run(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		l.work(ctx, &l.ambient, l.engine.PreloadAmbient, "ambient")
	}()
	go func() {
		defer wg.Done()
		l.work(ctx, &l.rhythm, l.engine.PreloadRhythm, "rhythm")
	}()

	wg.Wait()
}

// QueueAmbient schedules req for the ambient slot, replacing any pending
// request.
func (l *Loader) QueueAmbient(req TrackLoadRequest) {
	l.ambient.put(req)
}

// QueueRhythm schedules req for the rhythm slot, replacing any pending
// request.
func (l *Loader) QueueRhythm(req TrackLoadRequest) {
	l.rhythm.put(req)
}

func (l *Loader) work(ctx context.Context, slot *slotLoader, preload func(*engine.Buffer), kind string) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-slot.wake:
		}

		for {
			req, gen, ok := slot.take()
			if !ok {
				break
			}

			buf, err := l.prepare(req)
			if err != nil {
				if l.OnError != nil {
					l.OnError(req, err)
				}
				continue
			}

			// A request queued while rendering supersedes this one
			if !slot.isCurrent(gen) {
				continue
			}

			preload(buf)

			if l.OnLoaded != nil {
				l.OnLoaded(kind, req)
			}
		}
	}
}

// prepare runs the full pipeline: open, decode, resample to the engine
// rate, stereo-ize, pre-render the loop.
func (l *Loader) prepare(req TrackLoadRequest) (*engine.Buffer, error) {
	src, err := loopdeck.DecodeFile(req.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", req.Name, err)
	}
	defer src.Close()

	res, err := loopdeck.PrepareLoop(src, l.engine.SampleRate(), req.CrossfadeMS, l.loopSeconds)
	if err != nil {
		return nil, fmt.Errorf("preparing %s: %w", req.Name, err)
	}

	return res.Buffer, nil
}

// slotLoader is a single-pending mailbox with a generation counter. The
// generation lets a worker detect that the request it just rendered has
// been superseded.
type slotLoader struct {
	mu      sync.Mutex
	pending *TrackLoadRequest
	gen     uint64
	wake    chan struct{}
}

func (s *slotLoader) init() {
	s.wake = make(chan struct{}, 1)
}

func (s *slotLoader) put(req TrackLoadRequest) {
	s.mu.Lock()
	s.pending = &req
	s.gen++
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *slotLoader) take() (TrackLoadRequest, uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return TrackLoadRequest{}, 0, false
	}

	req := *s.pending
	s.pending = nil

	return req, s.gen, true
}

func (s *slotLoader) isCurrent(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen == gen
}
