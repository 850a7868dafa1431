//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/pflag"

	"github.com/msam/versa3d"
)

type InfoCommand struct {
	*pflag.FlagSet

	SizeSummary bool
	LayerDetail bool
	Metadata    bool

	Output io.Writer
}

func NewInfoCommand() (info *InfoCommand) {
	flagSet := pflag.NewFlagSet("info", pflag.ContinueOnError)

	info = &InfoCommand{
		FlagSet: flagSet,
		Output:  os.Stdout,
	}

	info.SetInterspersed(false)
	info.BoolVarP(&info.SizeSummary, "size", "s", true, "Show size summary")
	info.BoolVarP(&info.Metadata, "metadata", "m", true, "Show the volume metadata")
	info.BoolVarP(&info.LayerDetail, "layer", "l", false, "Show layer detail")

	return
}

func (info *InfoCommand) Filter(input versa3d.Printable) (output versa3d.Printable, err error) {
	prop := input.Properties()
	out := info.Output

	if info.SizeSummary {
		size := &prop.Size
		fmt.Fprintf(out, "Layers: %v, %vx%v slices, %.2f x %.2f x %.2f mm bed required\n",
			size.Layers, size.X, size.Y,
			size.Millimeter.X, size.Millimeter.Y, prop.Height())
		if size.X > 0 && size.Y > 0 {
			fmt.Fprintf(out, "Voxel: %.4g x %.4g x %.4g mm\n",
				size.Millimeter.X/float32(size.X),
				size.Millimeter.Y/float32(size.Y),
				size.LayerHeight)
		}
	}

	if info.Metadata {
		keys := []string{}
		for k := range prop.Metadata {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		for _, k := range keys {
			fmt.Fprintf(out, "%v: %v\n", k, prop.Metadata[k])
		}
	}

	if info.LayerDetail {
		for n := 0; n < prop.Size.Layers; n++ {
			layer := input.Layer(n)
			filled := 0
			for _, v := range layer.Image.Pix {
				if v == versa3d.VoxelFilled {
					filled++
				}
			}
			fmt.Fprintf(out, "%d: @%.2f %d filled\n", n, layer.Z, filled)
		}
	}

	output = input

	return
}
