package engine

import "errors"

var (
	// ErrNoPacks indicates an empty input pack list.
	ErrNoPacks = errors.New("no input packs")

	// ErrInvalidPack indicates a directory or upload without a usable
	// manifest marker.
	ErrInvalidPack = errors.New("invalid pack")
)
