// SPDX-License-Identifier: EPL-2.0

package library

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// sidecarConfig is the on-disk JSON format next to each track.
type sidecarConfig struct {
	CrossfadeMS int `json:"crossfade_ms"`
}

// SidecarPath returns the config path for an audio file: the same base
// name with a .txt extension ("pad.wav" -> "pad.txt").
func SidecarPath(audioPath string) string {
	ext := filepath.Ext(audioPath)
	return strings.TrimSuffix(audioPath, ext) + ".txt"
}

// LoadCrossfade reads the sidecar config for audioPath. A missing or
// malformed sidecar returns ErrNoSidecar.
func LoadCrossfade(audioPath string) (int, error) {
	data, err := os.ReadFile(SidecarPath(audioPath))
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrNoSidecar, filepath.Base(audioPath))
	}

	var cfg sidecarConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrNoSidecar, filepath.Base(audioPath), err)
	}

	if cfg.CrossfadeMS < 0 {
		return 0, fmt.Errorf("%w: %s: negative crossfade", ErrNoSidecar, filepath.Base(audioPath))
	}

	return cfg.CrossfadeMS, nil
}

// SaveCrossfade writes the sidecar config for audioPath.
func SaveCrossfade(audioPath string, crossfadeMS int) error {
	data, err := json.MarshalIndent(sidecarConfig{CrossfadeMS: crossfadeMS}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	if err := os.WriteFile(SidecarPath(audioPath), data, 0o644); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
