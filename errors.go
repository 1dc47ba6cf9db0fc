package loopdeck

import "errors"

var (
	// ErrUnknownFormat indicates the file extension maps to no registered decoder.
	ErrUnknownFormat = errors.New("unknown audio format")
)
