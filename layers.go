//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package versa3d

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// WithEachLayer calls fn for every layer, in order
func WithEachLayer(ctx context.Context, p Printable, fn func(n int, layer Layer) error) (err error) {
	layers := p.Properties().Size.Layers

	prog := NewProgress(layers)
	defer prog.Close()

	for n := 0; n < layers; n++ {
		err = ctx.Err()
		if err != nil {
			return
		}

		err = fn(n, p.Layer(n))
		if err != nil {
			return
		}
		prog.Indicate()
	}

	return
}

// WithAllLayers calls fn for every layer, in parallel. The first error
// cancels the remaining layers.
func WithAllLayers(ctx context.Context, p Printable, fn func(n int, layer Layer) error) (err error) {
	layers := p.Properties().Size.Layers

	prog := NewProgress(layers)
	defer prog.Close()

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))

	for n := 0; n < layers; n++ {
		n := n
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(n, p.Layer(n)); err != nil {
				return err
			}
			prog.Indicate()
			return nil
		})
	}

	err = group.Wait()

	return
}
