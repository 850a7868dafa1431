//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package versa3d

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle is a single oriented facet
type Triangle [3]r3.Vec

// Mesh is a closed triangulated surface. A Mesh is never modified after
// construction; transforms return a new Mesh.
type Mesh struct {
	triangles []Triangle
	bounds    r3.Box
}

// NewMesh wraps a triangle list
func NewMesh(triangles []Triangle) (mesh *Mesh) {
	mesh = &Mesh{
		triangles: append([]Triangle(nil), triangles...),
	}

	mesh.bounds = computeBounds(mesh.triangles)

	return
}

func computeBounds(triangles []Triangle) (box r3.Box) {
	if len(triangles) == 0 {
		return
	}

	inf := math.Inf(1)
	box.Min = r3.Vec{X: inf, Y: inf, Z: inf}
	box.Max = r3.Vec{X: -inf, Y: -inf, Z: -inf}

	for _, tri := range triangles {
		for _, v := range tri {
			box.Min.X = math.Min(box.Min.X, v.X)
			box.Min.Y = math.Min(box.Min.Y, v.Y)
			box.Min.Z = math.Min(box.Min.Z, v.Z)
			box.Max.X = math.Max(box.Max.X, v.X)
			box.Max.Y = math.Max(box.Max.Y, v.Y)
			box.Max.Z = math.Max(box.Max.Z, v.Z)
		}
	}

	return
}

// Triangles returns the facets of the mesh. The slice must not be modified.
func (mesh *Mesh) Triangles() []Triangle {
	return mesh.triangles
}

// TriangleCount returns the number of facets
func (mesh *Mesh) TriangleCount() int {
	return len(mesh.triangles)
}

// IsEmpty returns true if the mesh has no geometry
func (mesh *Mesh) IsEmpty() bool {
	return mesh == nil || len(mesh.triangles) == 0
}

// Bounds returns the axis aligned bounding box
func (mesh *Mesh) Bounds() r3.Box {
	return mesh.bounds
}

// Translate returns a copy of the mesh moved by delta
func (mesh *Mesh) Translate(delta r3.Vec) *Mesh {
	moved := make([]Triangle, len(mesh.triangles))
	for n, tri := range mesh.triangles {
		for i := range tri {
			moved[n][i] = r3.Add(tri[i], delta)
		}
	}

	return &Mesh{
		triangles: moved,
		bounds:    computeBounds(moved),
	}
}

// Merge returns a mesh holding the facets of both meshes. The shells
// must not intersect.
func (mesh *Mesh) Merge(other *Mesh) *Mesh {
	merged := make([]Triangle, 0, len(mesh.triangles)+len(other.triangles))
	merged = append(merged, mesh.triangles...)
	merged = append(merged, other.triangles...)

	return &Mesh{
		triangles: merged,
		bounds:    computeBounds(merged),
	}
}

// NewBoxMesh builds an axis aligned box with outward facing triangles
func NewBoxMesh(min, max r3.Vec) *Mesh {
	// Corner n has bit 0 = X, bit 1 = Y, bit 2 = Z
	corner := func(n int) (v r3.Vec) {
		v = min
		if n&1 != 0 {
			v.X = max.X
		}
		if n&2 != 0 {
			v.Y = max.Y
		}
		if n&4 != 0 {
			v.Z = max.Z
		}
		return
	}

	quads := [6][4]int{
		{0, 2, 3, 1}, // -Z
		{4, 5, 7, 6}, // +Z
		{0, 1, 5, 4}, // -Y
		{2, 6, 7, 3}, // +Y
		{0, 4, 6, 2}, // -X
		{1, 3, 7, 5}, // +X
	}

	triangles := make([]Triangle, 0, 12)
	for _, q := range quads {
		triangles = append(triangles,
			Triangle{corner(q[0]), corner(q[1]), corner(q[2])},
			Triangle{corner(q[0]), corner(q[2]), corner(q[3])},
		)
	}

	return NewMesh(triangles)
}
