//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/msam/versa3d"
)

type SelectCommand struct {
	*pflag.FlagSet

	First int
	Count int
	Step  int
}

func NewSelectCommand() (cmd *SelectCommand) {
	flagSet := pflag.NewFlagSet("select", pflag.ContinueOnError)
	flagSet.SetInterspersed(false)

	cmd = &SelectCommand{
		FlagSet: flagSet,
	}

	cmd.IntVarP(&cmd.First, "first", "f", 0, "First layer to select")
	cmd.IntVarP(&cmd.Count, "count", "c", -1, "Count of layers to select (-1 for all layers after first)")
	cmd.IntVarP(&cmd.Step, "step", "s", 1, "Keep every Nth layer, multiplying the layer height")

	return
}

// SelectPrintable is a window onto the layers of another printable
type SelectPrintable struct {
	versa3d.Printable

	first int
	count int
	step  int
}

func (sp *SelectPrintable) Layer(index int) (layer versa3d.Layer) {
	layer = sp.Printable.Layer(sp.first + index*sp.step)

	return
}

func (sp *SelectPrintable) Properties() (prop versa3d.Properties) {
	prop = sp.Printable.Properties()

	if sp.count > 0 {
		// Keep the origin metadata in step with the first kept layer
		metadata := make(map[string]interface{}, len(prop.Metadata))
		for k, v := range prop.Metadata {
			metadata[k] = v
		}
		metadata["OriginZ"] = float64(sp.Printable.Layer(sp.first).Z)
		prop.Metadata = metadata
	}

	prop.Size.Layers = sp.count
	prop.Size.LayerHeight *= float32(sp.step)

	return
}

func (cmd *SelectCommand) Filter(input versa3d.Printable) (output versa3d.Printable, err error) {
	if cmd.Step < 1 {
		err = fmt.Errorf("--step must be at least 1")
		return
	}

	layers := input.Properties().Size.Layers

	first := cmd.First
	last := layers

	if first < 0 {
		first = 0
	}

	if layers == 0 || first >= layers {
		first = 0
		last = 0
	} else if cmd.Count >= 0 && first+cmd.Count < last {
		last = first + cmd.Count
	}

	// Layers first, first+step, ... below last
	count := 0
	if last > first {
		count = (last - first + cmd.Step - 1) / cmd.Step
	}

	sp := &SelectPrintable{
		Printable: input,
		first:     first,
		count:     count,
		step:      cmd.Step,
	}

	output = sp

	return
}
