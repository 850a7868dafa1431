//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package versa3d

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestBoxMesh(t *testing.T) {
	min := r3.Vec{X: 1, Y: 2, Z: 3}
	max := r3.Vec{X: 4, Y: 6, Z: 8}
	mesh := NewBoxMesh(min, max)

	assert.Equal(t, 12, mesh.TriangleCount())
	assert.Equal(t, r3.Box{Min: min, Max: max}, mesh.Bounds())
	assert.False(t, mesh.IsEmpty())

	// Every facet faces away from the box center
	center := r3.Scale(0.5, r3.Add(min, max))
	for n, tri := range mesh.Triangles() {
		normal := r3.Cross(r3.Sub(tri[1], tri[0]), r3.Sub(tri[2], tri[0]))
		outward := r3.Sub(tri[0], center)
		assert.Greater(t, r3.Dot(normal, outward), 0.0, "facet %v", n)
	}
}

func TestMeshTranslateMerge(t *testing.T) {
	a := NewBoxMesh(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1})
	b := a.Translate(r3.Vec{X: 2, Y: 0, Z: 0.5})

	assert.Equal(t, r3.Box{Min: r3.Vec{X: 2, Z: 0.5}, Max: r3.Vec{X: 3, Y: 1, Z: 1.5}}, b.Bounds())
	assert.Equal(t, r3.Box{Max: r3.Vec{X: 1, Y: 1, Z: 1}}, a.Bounds(), "translate must not modify the source")

	merged := a.Merge(b)
	assert.Equal(t, 24, merged.TriangleCount())
	assert.Equal(t, r3.Box{Max: r3.Vec{X: 3, Y: 1, Z: 1.5}}, merged.Bounds())
}

func TestMeshEmpty(t *testing.T) {
	var nilMesh *Mesh
	assert.True(t, nilMesh.IsEmpty())
	assert.True(t, NewMesh(nil).IsEmpty())
	assert.Equal(t, r3.Box{}, NewMesh(nil).Bounds())
}
