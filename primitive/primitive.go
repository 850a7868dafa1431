//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package primitive builds test and calibration solids as meshes, using
// the github.com/deadsy/sdfx signed distance library and marching cubes.
package primitive

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/msam/versa3d"
)

// DefaultCells is the marching cubes resolution along the longest axis
const DefaultCells = 100

// Box returns a box with its minimum corner at the origin
func Box(x, y, z float64) (solid sdf.SDF3, err error) {
	solid, err = sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		return
	}

	solid = sdf.Transform3D(solid, sdf.Translate3d(v3.Vec{X: x / 2, Y: y / 2, Z: z / 2}))

	return
}

// Cylinder returns a Z axis cylinder standing on the origin plane
func Cylinder(height, radius float64) (solid sdf.SDF3, err error) {
	solid, err = sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return
	}

	solid = sdf.Transform3D(solid, sdf.Translate3d(v3.Vec{Z: height / 2}))

	return
}

// Sphere returns a sphere resting on the origin plane
func Sphere(radius float64) (solid sdf.SDF3, err error) {
	solid, err = sdf.Sphere3D(radius)
	if err != nil {
		return
	}

	solid = sdf.Transform3D(solid, sdf.Translate3d(v3.Vec{Z: radius}))

	return
}

// Tube returns a hollow cylinder, useful to check that enclosed voids
// stay empty
func Tube(height, outer, inner float64) (solid sdf.SDF3, err error) {
	if inner >= outer {
		err = fmt.Errorf("tube: inner radius %v must be less than outer radius %v", inner, outer)
		return
	}

	body, err := Cylinder(height, outer)
	if err != nil {
		return
	}

	bore, err := sdf.Cylinder3D(height*2, inner, 0)
	if err != nil {
		return
	}

	solid = sdf.Difference3D(body, bore)

	return
}

// ToMesh tessellates an SDF solid with uniform marching cubes
func ToMesh(solid sdf.SDF3, cells int) *versa3d.Mesh {
	if cells <= 0 {
		cells = DefaultCells
	}

	triangles := render.ToTriangles(solid, render.NewMarchingCubesUniform(cells))

	mesh := make([]versa3d.Triangle, 0, len(triangles))
	for _, tri := range triangles {
		var t versa3d.Triangle
		for j := 0; j < 3; j++ {
			v := tri[j]
			t[j] = r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
		}
		mesh = append(mesh, t)
	}

	return versa3d.NewMesh(mesh)
}

// Parse builds a mesh from a description such as 'box:10,10,5',
// 'cylinder:20,5', 'sphere:8' or 'tube:20,8,5'.
func Parse(desc string, cells int) (mesh *versa3d.Mesh, err error) {
	kind, argList, _ := strings.Cut(desc, ":")

	var args []float64
	if argList != "" {
		for _, field := range strings.Split(argList, ",") {
			var value float64
			value, err = strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				err = fmt.Errorf("%s: %w", desc, err)
				return
			}
			if !(value > 0) {
				err = fmt.Errorf("%s: dimensions must be positive", desc)
				return
			}
			args = append(args, value)
		}
	}

	need := map[string]int{
		"box":      3,
		"cylinder": 2,
		"sphere":   1,
		"tube":     3,
	}

	count, ok := need[kind]
	if !ok {
		err = fmt.Errorf("%s: unknown primitive '%s'", desc, kind)
		return
	}

	if len(args) != count {
		err = fmt.Errorf("%s: %s needs %d parameters, got %d", desc, kind, count, len(args))
		return
	}

	var solid sdf.SDF3
	switch kind {
	case "box":
		solid, err = Box(args[0], args[1], args[2])
	case "cylinder":
		solid, err = Cylinder(args[0], args[1])
	case "sphere":
		solid, err = Sphere(args[0])
	case "tube":
		solid, err = Tube(args[0], args[1], args[2])
	}
	if err != nil {
		return
	}

	mesh = ToMesh(solid, cells)

	return
}
