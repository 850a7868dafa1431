//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package versa3d

import (
	"context"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Span is a run of inside voxels [X0, X1) along one grid row
type Span struct {
	X0, X1 int
}

// Stencil classifies every voxel center of a grid as inside or outside a
// closed surface, stored as runs per (y, z) row.
type Stencil struct {
	Grid Grid
	rows [][]Span
}

type point2 struct {
	X, Y float64
}

type segment [2]point2

// NewStencil rasterizes mesh onto grid. Each layer is cut by the plane
// through its voxel centers, and each row of the resulting contours is
// filled with the even-odd rule.
func NewStencil(ctx context.Context, mesh *Mesh, grid Grid, progressor Progressor) (stencil *Stencil, err error) {
	stencil = &Stencil{
		Grid: grid,
		rows: make([][]Span, grid.Dims[1]*grid.Dims[2]),
	}

	if grid.IsEmpty() {
		return
	}

	layers := grid.Dims[2]
	prog := newProgress(progressor, layers)
	defer prog.Close()

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))

	triangles := mesh.Triangles()
	for z := 0; z < layers; z++ {
		z := z
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			stencil.rasterizeLayer(triangles, z)
			prog.Indicate()
			return nil
		})
	}

	err = group.Wait()
	if err != nil {
		stencil = nil
	}

	return
}

// cutLayer intersects the triangles with the plane z = level. A vertex
// lying exactly on the plane counts as below it. Crossing edges are
// always interpolated from their lower vertex, so both triangles sharing
// an edge produce the bit-identical cut point.
func cutLayer(triangles []Triangle, level float64) (segments []segment) {
	for _, tri := range triangles {
		var above [3]bool
		count := 0
		for i, v := range tri {
			above[i] = v.Z > level
			if above[i] {
				count++
			}
		}

		if count == 0 || count == 3 {
			continue
		}

		var seg segment
		found := 0
		for i := 0; i < 3; i++ {
			j := (i + 1) % 3
			if above[i] == above[j] {
				continue
			}
			a, b := tri[i], tri[j]
			if above[i] {
				a, b = b, a
			}
			t := (level - a.Z) / (b.Z - a.Z)
			seg[found] = point2{
				X: a.X + t*(b.X-a.X),
				Y: a.Y + t*(b.Y-a.Y),
			}
			found++
		}

		segments = append(segments, seg)
	}

	return
}

// centerIndex returns the first voxel index whose center is >= pos
func centerIndex(pos, origin, spacing float64) int {
	return int(math.Ceil((pos-origin)/spacing - 0.5))
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func (stencil *Stencil) rasterizeLayer(triangles []Triangle, z int) {
	grid := &stencil.Grid
	nx, ny := grid.Dims[0], grid.Dims[1]
	level := grid.Origin.Z + (float64(z)+0.5)*grid.Spacing.Z

	segments := cutLayer(triangles, level)
	if len(segments) == 0 {
		return
	}

	crossings := make([][]float64, ny)
	for _, seg := range segments {
		p, q := seg[0], seg[1]
		if p.Y == q.Y {
			continue
		}

		lo := clamp(centerIndex(math.Min(p.Y, q.Y), grid.Origin.Y, grid.Spacing.Y), 0, ny)
		hi := clamp(centerIndex(math.Max(p.Y, q.Y), grid.Origin.Y, grid.Spacing.Y)+1, 0, ny)

		for y := lo; y < hi; y++ {
			row := grid.Origin.Y + (float64(y)+0.5)*grid.Spacing.Y
			if (p.Y > row) == (q.Y > row) {
				continue
			}
			x := p.X + (row-p.Y)*(q.X-p.X)/(q.Y-p.Y)
			crossings[y] = append(crossings[y], x)
		}
	}

	for y, xs := range crossings {
		if len(xs) < 2 {
			continue
		}
		sort.Float64s(xs)

		var spans []Span
		for n := 0; n+1 < len(xs); n += 2 {
			x0 := clamp(centerIndex(xs[n], grid.Origin.X, grid.Spacing.X), 0, nx)
			x1 := clamp(centerIndex(xs[n+1], grid.Origin.X, grid.Spacing.X), 0, nx)
			if x0 < x1 {
				spans = append(spans, Span{X0: x0, X1: x1})
			}
		}

		stencil.rows[y+ny*z] = spans
	}
}

// Spans returns the inside runs of row (y, z)
func (stencil *Stencil) Spans(y, z int) []Span {
	return stencil.rows[y+stencil.Grid.Dims[1]*z]
}

// Inside reports whether the center of voxel (x, y, z) is enclosed
func (stencil *Stencil) Inside(x, y, z int) bool {
	for _, span := range stencil.Spans(y, z) {
		if x >= span.X0 && x < span.X1 {
			return true
		}
	}

	return false
}

// Count returns the number of enclosed voxels
func (stencil *Stencil) Count() (count int) {
	for _, spans := range stencil.rows {
		for _, span := range spans {
			count += span.X1 - span.X0
		}
	}

	return
}

// Apply writes value into every enclosed voxel of vol, or into every
// voxel outside the surface when reverse is set. Other voxels keep their
// background value.
func (stencil *Stencil) Apply(vol *Volume, value uint8, reverse bool) {
	grid := &stencil.Grid
	nx, ny := grid.Dims[0], grid.Dims[1]

	fill := func(row []uint8, x0, x1 int) {
		for x := x0; x < x1; x++ {
			row[x] = value
		}
	}

	for z := 0; z < grid.Dims[2]; z++ {
		for y := 0; y < ny; y++ {
			base := grid.Index(0, y, z)
			row := vol.Voxels[base : base+nx]
			spans := stencil.rows[y+ny*z]

			if !reverse {
				for _, span := range spans {
					fill(row, span.X0, span.X1)
				}
				continue
			}

			x := 0
			for _, span := range spans {
				fill(row, x, span.X0)
				x = span.X1
			}
			fill(row, x, nx)
		}
	}
}
