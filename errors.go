//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package versa3d

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is wrapped by every error caused by missing or
	// unusable settings.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrNoStrategy is returned when printer or printhead settings arrive
	// before a print parameter set has selected a slicing strategy.
	ErrNoStrategy = fmt.Errorf("%w: no slicing strategy selected", ErrInvalidConfiguration)

	// ErrEmptyMesh is returned when a mesh without triangles is sliced.
	ErrEmptyMesh = errors.New("mesh has no triangles")

	// ErrSuperseded is returned by a slice request that was cancelled by a
	// newer request on the same stage.
	ErrSuperseded = errors.New("slice superseded by newer request")
)

type ErrSettingMissing string

func (e ErrSettingMissing) Error() string {
	return fmt.Sprintf("setting '%s' missing", string(e))
}

func (e ErrSettingMissing) Unwrap() error {
	return ErrInvalidConfiguration
}

type ErrSettingInvalid string

func (e ErrSettingInvalid) Error() string {
	return fmt.Sprintf("setting '%s' invalid", string(e))
}

func (e ErrSettingInvalid) Unwrap() error {
	return ErrInvalidConfiguration
}

// ErrUnknownFillPattern reports a fill pattern without a slicing strategy.
type ErrUnknownFillPattern FillPattern

func (e ErrUnknownFillPattern) Error() string {
	return fmt.Sprintf("fill pattern %v not implemented", FillPattern(e))
}

func (e ErrUnknownFillPattern) Unwrap() error {
	return ErrInvalidConfiguration
}
