//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/spf13/pflag"
	"golang.org/x/image/draw"

	"github.com/msam/versa3d"
)

type BedCommand struct {
	*pflag.FlagSet

	Pixels      []int
	Millimeters []float32
	Machine     string
}

func NewBedCommand() (bc *BedCommand) {
	bc = &BedCommand{
		FlagSet: pflag.NewFlagSet("bed", pflag.ContinueOnError),
	}

	bc.IntSliceVarP(&bc.Pixels, "pixels", "p", []int{100, 100}, "Bed size, in pixels")
	bc.Float32SliceVarP(&bc.Millimeters, "millimeters", "m", []float32{50.8, 50.8}, "Bed size, in millimeters")

	bc.StringVarP(&bc.Machine, "machine", "M", "default", "Size preset by machine type")
	bc.SetInterspersed(false)

	return
}

// machineSize returns the raster of a machine's build bed at its
// printhead resolution
func machineSize(name string) (size versa3d.Size, err error) {
	machine, ok := versa3d.LookupMachine(name)
	if !ok {
		err = fmt.Errorf("unknown machine '%s'", name)
		return
	}

	size.Millimeter.X = float32(machine.Size.Xmm)
	size.Millimeter.Y = float32(machine.Size.Ymm)
	size.X = int(math.Round(machine.Size.Xmm * float64(machine.DPI[0]) / versa3d.MillimeterPerInch))
	size.Y = int(math.Round(machine.Size.Ymm * float64(machine.DPI[1]) / versa3d.MillimeterPerInch))

	return
}

func (bc *BedCommand) Filter(input versa3d.Printable) (output versa3d.Printable, err error) {
	srcSize := input.Properties().Size
	dstSize := srcSize

	if bc.Changed("machine") {
		var size versa3d.Size
		size, err = machineSize(bc.Machine)
		if err != nil {
			return
		}
		dstSize.X = size.X
		dstSize.Y = size.Y
		dstSize.Millimeter = size.Millimeter
	}

	if bc.Changed("pixels") {
		if len(bc.Pixels) != 2 {
			err = fmt.Errorf("--pixels needs X,Y")
			return
		}
		dstSize.X = bc.Pixels[0]
		dstSize.Y = bc.Pixels[1]
	}

	if bc.Changed("millimeters") {
		if len(bc.Millimeters) != 2 {
			err = fmt.Errorf("--millimeters needs X,Y")
			return
		}
		dstSize.Millimeter.X = bc.Millimeters[0]
		dstSize.Millimeter.Y = bc.Millimeters[1]
	}

	if dstSize.X <= 0 || dstSize.Y <= 0 {
		err = fmt.Errorf("bed of %dx%d pixels is empty", dstSize.X, dstSize.Y)
		return
	}

	// Compute the X & Y scaling
	dstXPpm := dstSize.Millimeter.X / float32(dstSize.X)
	dstYPpm := dstSize.Millimeter.Y / float32(dstSize.Y)

	// First, get the size of the src bed, scaled to the size in dest pixels
	dstRect := image.Rect(0, 0, int(srcSize.Millimeter.X/dstXPpm), int(srcSize.Millimeter.Y/dstYPpm))

	// Center on bed
	dstRect = dstRect.Add(image.Point{
		X: (dstSize.X - dstRect.Max.X) / 2,
		Y: (dstSize.Y - dstRect.Max.Y) / 2,
	})

	slog.Info("re-bed",
		"from", fmt.Sprintf("%dx%d (%.3gx%.3g mm)", srcSize.X, srcSize.Y, srcSize.Millimeter.X, srcSize.Millimeter.Y),
		"to", dstRect)

	bm := &bedModifier{
		Printable: input,
		size:      dstSize,
		dstRect:   dstRect,
	}

	output = bm

	return
}

// bedModifier modifies the given printable to have the new size
type bedModifier struct {
	versa3d.Printable

	size    versa3d.Size
	dstRect image.Rectangle
}

func (bm *bedModifier) Properties() (prop versa3d.Properties) {
	prop = bm.Printable.Properties()

	prop.Size = bm.size

	return
}

func (bm *bedModifier) Layer(index int) (layer versa3d.Layer) {
	layer = bm.Printable.Layer(index)

	// Re-bed the layer to the new size
	newImage := image.NewGray(image.Rect(0, 0, bm.size.X, bm.size.Y))
	draw.NearestNeighbor.Scale(newImage, bm.dstRect, layer.Image, layer.Image.Bounds(), draw.Src, nil)

	layer.Image = newImage

	return
}
