//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package versa3d

import (
	"image"
)

// Voxel values
const (
	VoxelEmpty  = uint8(0x00)
	VoxelFilled = uint8(0xff)
)

// Volume is a dense occupancy grid, one byte per voxel, laid out with X
// varying fastest and Z slowest.
type Volume struct {
	Grid   Grid
	Voxels []uint8
}

// NewVolume allocates a volume with every voxel set to value
func NewVolume(grid Grid, value uint8) (vol *Volume) {
	vol = &Volume{
		Grid:   grid,
		Voxels: make([]uint8, grid.Len()),
	}

	if value != 0 {
		for n := range vol.Voxels {
			vol.Voxels[n] = value
		}
	}

	return
}

// At returns the value of voxel (x, y, z)
func (vol *Volume) At(x, y, z int) uint8 {
	return vol.Voxels[vol.Grid.Index(x, y, z)]
}

// Set stores the value of voxel (x, y, z)
func (vol *Volume) Set(x, y, z int, value uint8) {
	vol.Voxels[vol.Grid.Index(x, y, z)] = value
}

// Count returns how many voxels hold value
func (vol *Volume) Count(value uint8) (count int) {
	for _, v := range vol.Voxels {
		if v == value {
			count++
		}
	}

	return
}

// Properties describes the volume as a layer stack
func (vol *Volume) Properties() (prop Properties) {
	prop = PropertiesFromGrid(vol.Grid)

	return
}

// Layer returns layer index as a gray image. The image shares memory
// with the volume.
func (vol *Volume) Layer(index int) (layer Layer) {
	grid := &vol.Grid
	plane := grid.Dims[0] * grid.Dims[1]

	layer.Z = float32(grid.Origin.Z + float64(index)*grid.Spacing.Z)
	layer.Image = &image.Gray{
		Pix:    vol.Voxels[index*plane : (index+1)*plane : (index+1)*plane],
		Stride: grid.Dims[0],
		Rect:   image.Rect(0, 0, grid.Dims[0], grid.Dims[1]),
	}

	return
}
