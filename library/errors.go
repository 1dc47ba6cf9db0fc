package library

import "errors"

var (
	// ErrNoTracks indicates a selection was requested from an empty kind.
	ErrNoTracks = errors.New("no tracks available")

	// ErrNoSidecar indicates the track has no readable sidecar config.
	ErrNoSidecar = errors.New("no sidecar config")
)
