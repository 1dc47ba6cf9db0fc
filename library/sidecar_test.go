// SPDX-License-Identifier: EPL-2.0

package library

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSidecarPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"wav", "samples/ambient/pad.wav", "samples/ambient/pad.txt"},
		{"mp3", "beat.mp3", "beat.txt"},
		{"upper case ext", "PAD.WAV", "PAD.txt"},
		{"no ext", "noext", "noext.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SidecarPath(tt.in); got != filepath.FromSlash(tt.want) {
				t.Errorf("SidecarPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoadCrossfade_Valid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	audioPath := filepath.Join(dir, "pad.wav")
	if err := os.WriteFile(SidecarPath(audioPath), []byte(`{"crossfade_ms": 500}`), 0o644); err != nil {
		t.Fatal(err)
	}

	ms, err := LoadCrossfade(audioPath)
	if err != nil {
		t.Fatalf("LoadCrossfade() error = %v", err)
	}

	if ms != 500 {
		t.Errorf("LoadCrossfade() = %d, want 500", ms)
	}
}

func TestLoadCrossfade_Missing(t *testing.T) {
	t.Parallel()

	audioPath := filepath.Join(t.TempDir(), "pad.wav")

	_, err := LoadCrossfade(audioPath)
	if !errors.Is(err, ErrNoSidecar) {
		t.Errorf("LoadCrossfade() error = %v, want ErrNoSidecar", err)
	}
}

func TestLoadCrossfade_MalformedJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	audioPath := filepath.Join(dir, "pad.wav")
	if err := os.WriteFile(SidecarPath(audioPath), []byte(`not json`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadCrossfade(audioPath)
	if !errors.Is(err, ErrNoSidecar) {
		t.Errorf("LoadCrossfade() error = %v, want ErrNoSidecar", err)
	}
}

func TestLoadCrossfade_Negative(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	audioPath := filepath.Join(dir, "pad.wav")
	if err := os.WriteFile(SidecarPath(audioPath), []byte(`{"crossfade_ms": -10}`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadCrossfade(audioPath)
	if !errors.Is(err, ErrNoSidecar) {
		t.Errorf("LoadCrossfade() error = %v, want ErrNoSidecar", err)
	}
}

func TestSaveCrossfade_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	audioPath := filepath.Join(dir, "beat.mp3")

	if err := SaveCrossfade(audioPath, 250); err != nil {
		t.Fatalf("SaveCrossfade() error = %v", err)
	}

	ms, err := LoadCrossfade(audioPath)
	if err != nil {
		t.Fatalf("LoadCrossfade() error = %v", err)
	}

	if ms != 250 {
		t.Errorf("LoadCrossfade() = %d, want 250", ms)
	}
}
