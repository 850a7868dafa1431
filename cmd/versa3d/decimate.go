//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/msam/versa3d"
)

type DecimateCommand struct {
	*pflag.FlagSet

	Passes int
	First  int
	Count  int
}

func NewDecimateCommand() (cmd *DecimateCommand) {
	flagSet := pflag.NewFlagSet("decimate", pflag.ContinueOnError)

	cmd = &DecimateCommand{
		FlagSet: flagSet,
	}

	cmd.IntVarP(&cmd.Passes, "passes", "p", 1, "Number of decimation passes")
	cmd.IntVarP(&cmd.First, "first", "f", 0, "First layer to decimate")
	cmd.IntVarP(&cmd.Count, "count", "c", -1, "Count of layers to decimate (-1 for all layers after first)")

	cmd.SetInterspersed(false)

	return
}

func (cmd *DecimateCommand) Filter(input versa3d.Printable) (output versa3d.Printable, err error) {
	if cmd.Passes < 0 {
		err = fmt.Errorf("--passes must not be negative")
		return
	}

	dec := versa3d.NewDecimatedPrintable(input)

	dec.Passes = cmd.Passes
	dec.FirstLayer = cmd.First

	layers := input.Properties().Size.Layers
	if cmd.Count >= 0 {
		dec.Layers = cmd.Count
	} else {
		dec.Layers = layers - cmd.First
	}

	output = dec

	return
}
