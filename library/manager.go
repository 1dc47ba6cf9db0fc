// SPDX-License-Identifier: EPL-2.0

package library

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/loopdeck/loopdeck"
)

// supported audio extensions, matching the decoder registry
var supportedExts = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".ogg":  true,
	".oga":  true,
	".aiff": true,
	".aif":  true,
}

// Manager scans the track directories and hands out random selections.
// One upcoming track per kind is always pre-picked so the host can show
// what a fader trigger would load.
//
// All methods are safe for concurrent use.
type Manager struct {
	ambientDir string
	rhythmDir  string
	cache      *Cache

	mu          sync.Mutex
	ambient     []TrackInfo
	rhythm      []TrackInfo
	nextAmbient *TrackInfo
	nextRhythm  *TrackInfo
}

// NewManager creates a Manager over the two track directories. cache may
// be nil, in which case every scan probes durations from scratch.
func NewManager(ambientDir, rhythmDir string, cache *Cache) *Manager {
	return &Manager{
		ambientDir: ambientDir,
		rhythmDir:  rhythmDir,
		cache:      cache,
	}
}

// Scan walks both directories and rebuilds the track lists. Tracks
// without a valid sidecar are skipped. A missing directory yields an
// empty list for its kind, not an error.
func (m *Manager) Scan() error {
	ambient, err := m.scanDir(m.ambientDir, KindAmbient)
	if err != nil {
		return fmt.Errorf("scanning ambient: %w", err)
	}

	rhythm, err := m.scanDir(m.rhythmDir, KindRhythm)
	if err != nil {
		return fmt.Errorf("scanning rhythm: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.ambient = ambient
	m.rhythm = rhythm
	m.nextAmbient = pick(ambient)
	m.nextRhythm = pick(rhythm)

	return nil
}

func (m *Manager) scanDir(dir string, kind Kind) ([]TrackInfo, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	var tracks []TrackInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !supportedExts[ext] {
			continue
		}

		path := filepath.Join(dir, entry.Name())

		crossfadeMS, err := LoadCrossfade(path)
		if err != nil {
			// No usable sidecar: work-in-progress material, skip it
			continue
		}

		track := TrackInfo{
			Name:        entry.Name(),
			Path:        path,
			Kind:        kind,
			CrossfadeMS: crossfadeMS,
		}

		track.Duration = m.trackDuration(path, entry)

		tracks = append(tracks, track)

		if m.cache != nil {
			if info, err := entry.Info(); err == nil {
				_ = m.cache.Store(track, info.ModTime().Unix())
			}
		}
	}

	return tracks, nil
}

// trackDuration returns the cached duration when the file is unchanged,
// probing (full decode) otherwise.
func (m *Manager) trackDuration(path string, entry os.DirEntry) float64 {
	var modTime int64
	if info, err := entry.Info(); err == nil {
		modTime = info.ModTime().Unix()
	}

	if m.cache != nil {
		if d, ok := m.cache.Lookup(path, modTime); ok {
			return d
		}
	}

	d, err := probeDuration(path)
	if err != nil {
		return 0
	}
	return d
}

// probeDuration decodes the whole file to count its frames.
func probeDuration(path string) (float64, error) {
	src, err := loopdeck.DecodeFile(path)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	rate := src.SampleRate()
	channels := src.Channels()
	if rate == 0 || channels == 0 {
		return 0, nil
	}

	var total int
	buf := make([]float32, 4096)
	for {
		n, err := src.ReadSamples(buf)
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("%w", err)
		}
	}

	return float64(total/channels) / float64(rate), nil
}

func pick(list []TrackInfo) *TrackInfo {
	if len(list) == 0 {
		return nil
	}
	t := list[rand.IntN(len(list))]
	return &t
}

// Counts returns how many tracks each kind has.
func (m *Manager) Counts() (ambient, rhythm int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ambient), len(m.rhythm)
}

// NextAmbient consumes the pre-picked upcoming ambient track and picks a
// new one.
func (m *Manager) NextAmbient() (TrackInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.next(m.ambient, &m.nextAmbient)
}

// NextRhythm consumes the pre-picked upcoming rhythm track and picks a
// new one.
func (m *Manager) NextRhythm() (TrackInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.next(m.rhythm, &m.nextRhythm)
}

func (m *Manager) next(list []TrackInfo, upcoming **TrackInfo) (TrackInfo, error) {
	if len(list) == 0 {
		return TrackInfo{}, ErrNoTracks
	}

	var current TrackInfo
	if *upcoming != nil {
		current = **upcoming
	} else {
		current = *pick(list)
	}

	*upcoming = pick(list)

	return current, nil
}

// PeekNextAmbient reports the pre-picked upcoming ambient track without
// consuming it.
func (m *Manager) PeekNextAmbient() (TrackInfo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.nextAmbient == nil {
		return TrackInfo{}, false
	}
	return *m.nextAmbient, true
}

// PeekNextRhythm reports the pre-picked upcoming rhythm track without
// consuming it.
func (m *Manager) PeekNextRhythm() (TrackInfo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.nextRhythm == nil {
		return TrackInfo{}, false
	}
	return *m.nextRhythm, true
}

// SetCrossfade persists a new crossfade for the track at path and updates
// the in-memory lists.
func (m *Manager) SetCrossfade(path string, crossfadeMS int) error {
	if err := SaveCrossfade(path, crossfadeMS); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, list := range [][]TrackInfo{m.ambient, m.rhythm} {
		for i := range list {
			if list[i].Path == path {
				list[i].CrossfadeMS = crossfadeMS
			}
		}
	}

	// The pre-picked upcoming tracks are copies and need updating too
	for _, upcoming := range []*TrackInfo{m.nextAmbient, m.nextRhythm} {
		if upcoming != nil && upcoming.Path == path {
			upcoming.CrossfadeMS = crossfadeMS
		}
	}

	return nil
}
