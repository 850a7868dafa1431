//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package versa3d

import (
	"context"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	defaultResolution     = 50
	defaultLayerThickness = 0.1
)

// UniformSlicer fills the whole interior of every cross section
type UniformSlicer struct {
	Resolution     [2]int    // X/Y dots per inch
	LayerThickness []float64 // mm

	// Progressor receives per-layer progress while slicing, if set
	Progressor Progressor
}

var _ Slicer = (*UniformSlicer)(nil)

func NewUniformSlicer() (us *UniformSlicer) {
	us = &UniformSlicer{
		Resolution:     [2]int{defaultResolution, defaultResolution},
		LayerThickness: []float64{defaultLayerThickness},
	}

	return
}

func (us *UniformSlicer) UpdatePrinthead(setting Settings) (changed bool, err error) {
	res, err := setting.Resolution(KeyDPI)
	if err != nil {
		return
	}

	if res != us.Resolution {
		us.Resolution = res
		changed = true
	}

	return
}

func (us *UniformSlicer) UpdateParam(setting Settings) (changed bool, err error) {
	thickness, err := setting.Thickness(KeyLayerThickness)
	if err != nil {
		return
	}

	if !equalFloats(thickness, us.LayerThickness) {
		us.LayerThickness = thickness
		changed = true
	}

	return
}

// UpdatePrinter never changes the geometry of a uniform fill
func (us *UniformSlicer) UpdatePrinter(setting Settings) (changed bool, err error) {
	return
}

func equalFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}

	for n := range a {
		if a[n] != b[n] {
			return false
		}
	}

	return true
}

// Spacing returns the voxel pitch for the committed settings
func (us *UniformSlicer) Spacing() r3.Vec {
	return ComputeSpacing(us.LayerThickness, us.Resolution)
}

func (us *UniformSlicer) Info(mesh *Mesh) (grid Grid, err error) {
	if mesh.IsEmpty() {
		err = ErrEmptyMesh
		return
	}

	grid = NewGrid(mesh.Bounds(), us.Spacing())

	return
}

func (us *UniformSlicer) Slice(ctx context.Context, mesh *Mesh) (vol *Volume, err error) {
	grid, err := us.Info(mesh)
	if err != nil {
		return
	}

	start := time.Now()

	background := NewVolume(grid, VoxelEmpty)

	stencil, err := NewStencil(ctx, mesh, grid, us.Progressor)
	if err != nil {
		return
	}

	stencil.Apply(background, VoxelFilled, false)

	logger().Debug("uniform slice complete",
		"dims", grid.Dims,
		"spacing", grid.Spacing,
		"filled", stencil.Count(),
		"elapsed", time.Since(start))

	vol = background

	return
}
