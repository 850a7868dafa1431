//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/msam/versa3d"
)

// ErrCheck reports a part that cannot be printed as sliced
type ErrCheck string

func (e ErrCheck) Error() string {
	return string(e)
}

type CheckCommand struct {
	*pflag.FlagSet

	Bed    []float64
	Layers bool

	printer versa3d.Settings
}

func NewCheckCommand() (cmd *CheckCommand) {
	cmd = &CheckCommand{
		FlagSet: pflag.NewFlagSet("check", pflag.ContinueOnError),
	}

	cmd.Float64SliceVarP(&cmd.Bed, "bed", "b", nil, "Build bed size X,Y,Z in mm (defaults to the printer settings)")
	cmd.BoolVarP(&cmd.Layers, "layers", "l", true, "Check layer heights")
	cmd.SetInterspersed(false)

	return
}

func (cmd *CheckCommand) SetPrinter(printer versa3d.Settings) {
	cmd.printer = printer
}

func (cmd *CheckCommand) bed() (bed [3]float64, err error) {
	if cmd.Changed("bed") {
		if len(cmd.Bed) != 3 {
			err = fmt.Errorf("--bed needs X,Y,Z")
			return
		}
		copy(bed[:], cmd.Bed)
		return
	}

	bed, err = cmd.printer.Vec3(versa3d.KeyBuildBedSize)

	return
}

func (cmd *CheckCommand) Filter(input versa3d.Printable) (output versa3d.Printable, err error) {
	bed, err := cmd.bed()
	if err != nil {
		return
	}

	prop := input.Properties()
	size := [3]float64{
		float64(prop.Size.Millimeter.X),
		float64(prop.Size.Millimeter.Y),
		float64(prop.Height()),
	}

	for n, axis := range []string{"X", "Y", "Z"} {
		if size[n] > bed[n] {
			err = ErrCheck(fmt.Sprintf("%s: part is %.2fmm, build bed is %.2fmm", axis, size[n], bed[n]))
			return
		}
	}

	if cmd.Layers {
		err = checkLayers(input)
		if err != nil {
			return
		}
	}

	output = input

	return
}

// checkLayers verifies the layer stack rises monotonically at about the
// nominal layer height
func checkLayers(input versa3d.Printable) (err error) {
	prop := input.Properties()
	nominal := prop.Size.LayerHeight

	var prevZ float32
	for index := 0; index < prop.Size.Layers; index++ {
		z := input.Layer(index).Z

		if index > 0 {
			if z <= prevZ {
				err = ErrCheck(fmt.Sprintf("layer %d: Z value of %.02fmm is not above the previous layer at %.02fmm", index, z, prevZ))
				return
			}

			if (z - prevZ) > nominal*1.5 {
				err = ErrCheck(fmt.Sprintf("layer %d: layer height of %.02fmm is too far from nominal of %.02fmm", index, z-prevZ, nominal))
				return
			}
		}

		prevZ = z
	}

	return
}
