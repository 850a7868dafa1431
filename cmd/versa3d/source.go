//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"context"
	"log/slog"
	"strings"

	"github.com/msam/versa3d"
	"github.com/msam/versa3d/primitive"
	"github.com/msam/versa3d/stl"
)

const primitivePrefix = "primitive:"

// Source is the pipeline input: a mesh to be sliced, or an already sliced
// layer file
type Source struct {
	Name   string
	Mesh   *versa3d.Mesh
	Layers versa3d.Printable
}

// NewSource loads an input by name. '.stl' files and 'primitive:'
// descriptions are meshes; anything else must be a known layer format.
func NewSource(name string, cells int) (src *Source, err error) {
	src = &Source{Name: name}

	switch {
	case strings.HasPrefix(name, primitivePrefix):
		src.Mesh, err = primitive.Parse(strings.TrimPrefix(name, primitivePrefix), cells)
	case strings.HasSuffix(strings.ToLower(name), ".stl"):
		src.Mesh, err = stl.Load(name)
	default:
		var format *versa3d.Format
		format, err = versa3d.NewFormat(name, nil)
		if err != nil {
			break
		}
		src.Layers, err = format.Printable()
	}

	if err != nil {
		src = nil
		return
	}

	if src.Mesh != nil {
		slog.Info("mesh loaded", "input", name, "triangles", src.Mesh.TriangleCount(), "bounds", src.Mesh.Bounds())
	}

	return
}

// Printable returns the layer stack for the source, slicing meshes on the
// stage
func (src *Source) Printable(ctx context.Context, stage *versa3d.Stage) (printable versa3d.Printable, err error) {
	if src.Mesh == nil {
		printable = src.Layers
		return
	}

	grid, err := stage.RequestInformation(src.Mesh)
	if err != nil {
		return
	}

	slog.Info("slicing", "input", src.Name, "dims", grid.Dims, "spacing", grid.Spacing)

	vol, err := stage.RequestData(ctx, src.Mesh)
	if err != nil {
		return
	}

	printable = vol

	return
}
