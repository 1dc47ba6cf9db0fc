// SPDX-License-Identifier: EPL-2.0

// Command loopdeck plays two endless loop tracks with live keyboard
// control: a crossfader between an ambient bed and a rhythm layer, delay
// and reverb sends, and automatic track swapping at the fader extremes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/loopdeck/loopdeck"
	"github.com/loopdeck/loopdeck/control"
	"github.com/loopdeck/loopdeck/engine"
	"github.com/loopdeck/loopdeck/library"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ambientDir := flag.String("ambient", "samples/ambient", "directory of ambient tracks")
	rhythmDir := flag.String("rhythm", "samples/rhythm", "directory of rhythm tracks")
	rate := flag.Int("rate", 44100, "engine sample rate in Hz")
	loopSeconds := flag.Float64("loop", 60, "pre-rendered loop length in seconds")
	cachePath := flag.String("cache", "data/tracks.db", "metadata cache path, empty to disable")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cache *library.Cache
	if *cachePath != "" {
		c, err := library.OpenCache(*cachePath)
		if err != nil {
			log.Printf("metadata cache disabled: %v", err)
		} else {
			cache = c
			defer c.Close()
		}
	}

	mgr := library.NewManager(*ambientDir, *rhythmDir, cache)
	if err := mgr.Scan(); err != nil {
		return err
	}

	ambientCount, rhythmCount := mgr.Counts()
	log.Printf("library: %d ambient, %d rhythm tracks", ambientCount, rhythmCount)

	eng := engine.New(*rate)
	names := &trackNames{}

	// Initial tracks load synchronously; LoadAmbient/LoadRhythm may only
	// run before playback starts.
	if track, err := mgr.NextAmbient(); err == nil {
		if buf, err := prepareTrack(track, *rate, *loopSeconds); err == nil {
			eng.LoadAmbient(buf)
			names.set("ambient", track.Name)
		} else {
			log.Printf("loading %s: %v", track.Name, err)
		}
	}
	if track, err := mgr.NextRhythm(); err == nil {
		if buf, err := prepareTrack(track, *rate, *loopSeconds); err == nil {
			eng.LoadRhythm(buf)
			names.set("rhythm", track.Name)
		} else {
			log.Printf("loading %s: %v", track.Name, err)
		}
	}

	if err := eng.EnsureReady(); err != nil {
		return fmt.Errorf("no playable tracks in %s or %s: %w", *ambientDir, *rhythmDir, err)
	}

	loader := control.NewLoader(eng, *loopSeconds)
	loader.OnLoaded = func(kind string, req control.TrackLoadRequest) {
		names.set(kind, req.Name)
	}
	loader.OnError = func(req control.TrackLoadRequest, err error) {
		log.Printf("load %s: %v", req.Name, err)
	}
	go loader.Run(ctx)

	controls := newControlState()
	ctrl := control.NewController(eng, controls, mgr, loader)
	go ctrl.Run(ctx)

	pl, err := newPlayer(*rate)
	if err != nil {
		return fmt.Errorf("opening audio device: %w", err)
	}
	defer pl.close()
	pl.attach(eng)

	eng.Start()
	pl.start()

	keys := newKeyReader(controls, eng, mgr, stop)
	if err := keys.start(); err != nil {
		return err
	}
	defer keys.stop()

	fmt.Print("\x1b[2J")
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			eng.Stop()
			return nil
		case <-ticker.C:
			ambientName, rhythmName := names.get()
			fmt.Print("\x1b[H")
			fmt.Print(renderStatus(eng.Snapshot(), ambientName, rhythmName))
			fmt.Print("Keys: Q fader→ambient  A fader→rhythm  W/S delay  E/D reverb  Z/X balance  R rescan  q quit\r\n")
		}
	}
}

func prepareTrack(track library.TrackInfo, rate int, loopSeconds float64) (*engine.Buffer, error) {
	src, err := loopdeck.DecodeFile(track.Path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	res, err := loopdeck.PrepareLoop(src, rate, track.CrossfadeMS, loopSeconds)
	if err != nil {
		return nil, err
	}

	return res.Buffer, nil
}
