//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package versa3d

import (
	"context"
)

// Slicer is a slicing strategy. Each Update method receives one settings
// domain and reports whether the voxel geometry (spacing or dimensions)
// changed; that report is the only staleness signal a Stage consumes.
// On error the committed settings are left untouched.
type Slicer interface {
	UpdatePrinter(setting Settings) (changed bool, err error)
	UpdatePrinthead(setting Settings) (changed bool, err error)
	UpdateParam(setting Settings) (changed bool, err error)

	// Info returns the grid Slice would produce for mesh
	Info(mesh *Mesh) (grid Grid, err error)

	// Slice voxelizes mesh into a new volume
	Slice(ctx context.Context, mesh *Mesh) (vol *Volume, err error)
}

// NewSlicer returns a fresh strategy for a fill pattern. The strategy
// reports per-layer slicing progress to progressor, which may be nil.
func NewSlicer(pattern FillPattern, progressor Progressor) (slicer Slicer, err error) {
	switch pattern {
	case FillUniform:
		us := NewUniformSlicer()
		us.Progressor = progressor
		slicer = us
	default:
		err = ErrUnknownFillPattern(pattern)
	}

	return
}
