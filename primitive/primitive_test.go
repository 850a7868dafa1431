//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package primitive

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msam/versa3d"
)

func TestParse(t *testing.T) {
	table := []struct {
		desc string
		max  [3]float64
	}{
		{desc: "box:10,6,4", max: [3]float64{10, 6, 4}},
		{desc: "cylinder:8,3", max: [3]float64{3, 3, 8}},
		{desc: "sphere:5", max: [3]float64{5, 5, 10}},
		{desc: "tube:6,4,2", max: [3]float64{4, 4, 6}},
	}

	for _, item := range table {
		mesh, err := Parse(item.desc, 50)
		require.NoError(t, err, item.desc)
		require.False(t, mesh.IsEmpty(), item.desc)

		// Marching cubes cells are a fraction of the largest dimension
		tolerance := 0.1 * item.max[2]
		bounds := mesh.Bounds()
		assert.InDelta(t, item.max[0], bounds.Max.X, tolerance, item.desc)
		assert.InDelta(t, item.max[1], bounds.Max.Y, tolerance, item.desc)
		assert.InDelta(t, item.max[2], bounds.Max.Z, tolerance, item.desc)
		assert.InDelta(t, 0.0, bounds.Min.Z, tolerance, item.desc)
	}
}

func TestParseErrors(t *testing.T) {
	for _, desc := range []string{"box:1,2", "cone:1,2", "sphere:big", "tube:5,2,3", "sphere:-1"} {
		_, err := Parse(desc, 10)
		assert.Error(t, err, desc)
	}
}

func TestSphereVolume(t *testing.T) {
	mesh, err := Parse("sphere:5", 60)
	require.NoError(t, err)

	vol, err := versa3d.NewUniformSlicer().Slice(context.Background(), mesh)
	require.NoError(t, err)

	voxel := vol.Grid.Spacing.X * vol.Grid.Spacing.Y * vol.Grid.Spacing.Z
	got := float64(vol.Count(versa3d.VoxelFilled)) * voxel
	expected := 4.0 / 3.0 * math.Pi * 125

	assert.InEpsilon(t, expected, got, 0.1)
}

func TestTubeIsHollow(t *testing.T) {
	mesh, err := Parse("tube:4,5,3", 60)
	require.NoError(t, err)

	vol, err := versa3d.NewUniformSlicer().Slice(context.Background(), mesh)
	require.NoError(t, err)

	grid := vol.Grid
	cx, cy := grid.Dims[0]/2, grid.Dims[1]/2
	z := grid.Dims[2] / 2

	assert.Equal(t, versa3d.VoxelEmpty, vol.At(cx, cy, z), "bore")

	// Walk outward along X until the wall is found
	wall := false
	for x := cx; x < grid.Dims[0]; x++ {
		if vol.At(x, cy, z) == versa3d.VoxelFilled {
			wall = true
			break
		}
	}
	assert.True(t, wall, "wall")
}
