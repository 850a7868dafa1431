//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package versa3d

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// MillimeterPerInch converts dpi to voxel pitch
const MillimeterPerInch = 25.4

// Grid describes the voxel lattice a mesh is sliced into
type Grid struct {
	Origin  r3.Vec // Bounding box minimum corner, mm
	Spacing r3.Vec // Voxel pitch, mm
	Dims    [3]int // Voxel count per axis
}

// ComputeSpacing returns the voxel pitch for a resolution (dpi) and a set
// of layer thicknesses. Z uses the thinnest layer.
func ComputeSpacing(thickness []float64, resolution [2]int) (spacing r3.Vec) {
	spacing.X = MillimeterPerInch / float64(resolution[0])
	spacing.Y = MillimeterPerInch / float64(resolution[1])
	spacing.Z = floats.Min(thickness)

	return
}

// ComputeDims returns the voxel counts needed to cover bounds completely
func ComputeDims(bounds r3.Box, spacing r3.Vec) (dims [3]int) {
	extent := r3.Sub(bounds.Max, bounds.Min)

	dims[0] = int(math.Ceil(extent.X / spacing.X))
	dims[1] = int(math.Ceil(extent.Y / spacing.Y))
	dims[2] = int(math.Ceil(extent.Z / spacing.Z))

	return
}

// NewGrid returns the grid for bounds at the given spacing
func NewGrid(bounds r3.Box, spacing r3.Vec) Grid {
	return Grid{
		Origin:  bounds.Min,
		Spacing: spacing,
		Dims:    ComputeDims(bounds, spacing),
	}
}

// Len returns the number of voxels
func (g Grid) Len() int {
	return g.Dims[0] * g.Dims[1] * g.Dims[2]
}

// IsEmpty is true when any axis has no voxels
func (g Grid) IsEmpty() bool {
	return g.Len() == 0
}

// Index returns the offset of voxel (x, y, z) in a volume
func (g Grid) Index(x, y, z int) int {
	return x + g.Dims[0]*(y+g.Dims[1]*z)
}

// Center returns the sample point of voxel (x, y, z)
func (g Grid) Center(x, y, z int) r3.Vec {
	return r3.Vec{
		X: g.Origin.X + (float64(x)+0.5)*g.Spacing.X,
		Y: g.Origin.Y + (float64(y)+0.5)*g.Spacing.Y,
		Z: g.Origin.Z + (float64(z)+0.5)*g.Spacing.Z,
	}
}

// Extent returns the inclusive index range per axis, as
// (xmin, xmax, ymin, ymax, zmin, zmax). Empty axes have max < min.
func (g Grid) Extent() [6]int {
	return [6]int{0, g.Dims[0] - 1, 0, g.Dims[1] - 1, 0, g.Dims[2] - 1}
}

// Size returns the physical size covered by the grid
func (g Grid) Size() r3.Vec {
	return r3.Vec{
		X: float64(g.Dims[0]) * g.Spacing.X,
		Y: float64(g.Dims[1]) * g.Spacing.Y,
		Z: float64(g.Dims[2]) * g.Spacing.Z,
	}
}
