//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package versa3d

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func insideBox(p r3.Vec, box r3.Box) bool {
	return p.X > box.Min.X && p.X < box.Max.X &&
		p.Y > box.Min.Y && p.Y < box.Max.Y &&
		p.Z > box.Min.Z && p.Z < box.Max.Z
}

func nearFace(p r3.Vec, box r3.Box) bool {
	const eps = 1e-9
	near := func(v, a, b float64) bool {
		return math.Abs(v-a) < eps || math.Abs(v-b) < eps
	}

	return near(p.X, box.Min.X, box.Max.X) || near(p.Y, box.Min.Y, box.Max.Y) || near(p.Z, box.Min.Z, box.Max.Z)
}

func TestStencilBoxes(t *testing.T) {
	boxes := []r3.Box{
		{Min: r3.Vec{X: 0, Y: 0, Z: 0}, Max: r3.Vec{X: 4, Y: 4, Z: 4}},
		{Min: r3.Vec{X: 6, Y: 0, Z: 0}, Max: r3.Vec{X: 10, Y: 4, Z: 4}},
	}

	mesh := NewBoxMesh(boxes[0].Min, boxes[0].Max).Merge(NewBoxMesh(boxes[1].Min, boxes[1].Max))
	grid := NewGrid(mesh.Bounds(), ComputeSpacing([]float64{0.2}, [2]int{127, 127}))

	stencil, err := NewStencil(context.Background(), mesh, grid, nil)
	require.NoError(t, err)

	count := 0
	for z := 0; z < grid.Dims[2]; z++ {
		for y := 0; y < grid.Dims[1]; y++ {
			for x := 0; x < grid.Dims[0]; x++ {
				center := grid.Center(x, y, z)
				if nearFace(center, boxes[0]) || nearFace(center, boxes[1]) {
					continue
				}

				expected := insideBox(center, boxes[0]) || insideBox(center, boxes[1])
				if expected {
					count++
				}
				if stencil.Inside(x, y, z) != expected {
					t.Fatalf("voxel (%v,%v,%v) at %v: expected inside=%v", x, y, z, center, expected)
				}
			}
		}
	}

	assert.Equal(t, count, stencil.Count())
}

func TestStencilApply(t *testing.T) {
	mesh := NewBoxMesh(r3.Vec{X: 1, Y: 1, Z: 0}, r3.Vec{X: 3, Y: 3, Z: 2})
	grid := Grid{
		Origin:  r3.Vec{},
		Spacing: r3.Vec{X: 1, Y: 1, Z: 1},
		Dims:    [3]int{4, 4, 2},
	}

	stencil, err := NewStencil(context.Background(), mesh, grid, nil)
	require.NoError(t, err)
	assert.Equal(t, 8, stencil.Count())
	assert.Equal(t, []Span{{X0: 1, X1: 3}}, stencil.Spans(1, 0))
	assert.Empty(t, stencil.Spans(0, 0))

	vol := NewVolume(grid, 7)
	stencil.Apply(vol, VoxelFilled, false)
	assert.Equal(t, 8, vol.Count(VoxelFilled))
	assert.Equal(t, 24, vol.Count(7))
	assert.Equal(t, VoxelFilled, vol.At(2, 2, 1))
	assert.Equal(t, uint8(7), vol.At(0, 2, 1))

	rev := NewVolume(grid, VoxelEmpty)
	stencil.Apply(rev, VoxelFilled, true)
	assert.Equal(t, 24, rev.Count(VoxelFilled))
	assert.Equal(t, VoxelEmpty, rev.At(1, 1, 0))
}

func TestStencilEmptyGrid(t *testing.T) {
	mesh := NewBoxMesh(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1})
	grid := Grid{Spacing: r3.Vec{X: 1, Y: 1, Z: 1}, Dims: [3]int{1, 1, 0}}

	stencil, err := NewStencil(context.Background(), mesh, grid, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, stencil.Count())
}

func TestStencilCancel(t *testing.T) {
	mesh := NewBoxMesh(r3.Vec{}, r3.Vec{X: 10, Y: 10, Z: 10})
	grid := NewGrid(mesh.Bounds(), r3.Vec{X: 0.1, Y: 0.1, Z: 0.1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stencil, err := NewStencil(ctx, mesh, grid, nil)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Nil(t, stencil)
}

func TestCutLayerVertexOnPlane(t *testing.T) {
	// A vertex exactly on the plane counts as below it
	tri := Triangle{{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 2}, {X: 0, Y: 1, Z: 0}}

	segments := cutLayer([]Triangle{tri}, 1)
	require.Len(t, segments, 1)

	flat := Triangle{{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 1}}
	assert.Empty(t, cutLayer([]Triangle{flat}, 1))
}

func TestCutLayerSharedEdge(t *testing.T) {
	// Two faces of a box side share the diagonal (0,0,0)-(0,4,4) and walk
	// it in opposite directions
	lower := Triangle{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 4, Z: 4}, {X: 0, Y: 4, Z: 0}}
	upper := Triangle{{X: 0, Y: 4, Z: 4}, {X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 4}}

	spacing := 0.2
	for z := 0; z < 20; z++ {
		level := (float64(z) + 0.5) * spacing

		a := cutLayer([]Triangle{lower}, level)
		b := cutLayer([]Triangle{upper}, level)
		require.Len(t, a, 1)
		require.Len(t, b, 1)

		if a[0][0] != b[0][0] {
			t.Fatalf("level %v: shared edge cut at %v and %v", level, a[0][0], b[0][0])
		}
	}
}

func newOctahedron(center r3.Vec, r float64) *Mesh {
	var triangles []Triangle
	for _, sx := range []float64{-1, 1} {
		for _, sy := range []float64{-1, 1} {
			for _, sz := range []float64{-1, 1} {
				triangles = append(triangles, Triangle{
					r3.Add(center, r3.Vec{X: sx * r}),
					r3.Add(center, r3.Vec{Y: sy * r}),
					r3.Add(center, r3.Vec{Z: sz * r}),
				})
			}
		}
	}

	return NewMesh(triangles)
}

func TestStencilOctahedron(t *testing.T) {
	table := map[string]struct {
		center  r3.Vec
		radius  float64
		spacing r3.Vec
	}{
		"vertices-on-planes": {
			radius:  2.125,
			spacing: r3.Vec{X: 0.25, Y: 0.25, Z: 0.25},
		},
		"vertices-between-planes": {
			radius:  2,
			spacing: r3.Vec{X: 0.25, Y: 0.25, Z: 0.25},
		},
		"printhead-pitch": {
			center:  r3.Vec{X: 1.3, Y: -0.7, Z: 2.1},
			radius:  3,
			spacing: ComputeSpacing([]float64{0.15}, [2]int{127, 100}),
		},
	}

	for name, item := range table {
		t.Run(name, func(t *testing.T) {
			mesh := newOctahedron(item.center, item.radius)
			grid := NewGrid(mesh.Bounds(), item.spacing)

			stencil, err := NewStencil(context.Background(), mesh, grid, nil)
			require.NoError(t, err)

			inside := 0
			for z := 0; z < grid.Dims[2]; z++ {
				for y := 0; y < grid.Dims[1]; y++ {
					for x := 0; x < grid.Dims[0]; x++ {
						d := r3.Sub(grid.Center(x, y, z), item.center)
						dist := math.Abs(d.X) + math.Abs(d.Y) + math.Abs(d.Z)
						if math.Abs(dist-item.radius) < 1e-9 {
							continue
						}

						expected := dist < item.radius
						if expected {
							inside++
						}
						if stencil.Inside(x, y, z) != expected {
							t.Fatalf("voxel (%v,%v,%v) at distance %v: expected inside=%v", x, y, z, dist, expected)
						}
					}
				}
			}

			assert.Greater(t, inside, 0)
		})
	}
}
