//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/msam/versa3d"
	"github.com/msam/versa3d/profile"
)

func overlay(dst, src versa3d.Settings) {
	for key, entry := range src {
		dst[key] = entry
	}
}

// collectSettings layers the settings domains: machine preset, then the
// profile, then any flags given on the command line.
func collectSettings(flags *pflag.FlagSet, prof *profile.Profile) (printer, printhead, parameter versa3d.Settings, err error) {
	machineName := param.Machine
	if prof != nil && prof.Printer.Machine != "" && !flags.Changed("machine") {
		machineName = prof.Printer.Machine
	}

	machine, ok := versa3d.LookupMachine(machineName)
	if !ok {
		err = fmt.Errorf("%w: unknown machine '%s'", versa3d.ErrInvalidConfiguration, machineName)
		return
	}

	printer = machine.PrinterSettings()
	printhead = machine.PrintheadSettings()

	parameter = versa3d.Settings{}
	parameter.Set(versa3d.KeyFillPattern, param.FillPattern)
	parameter.Set(versa3d.KeyLayerThickness, param.Thickness)

	if prof != nil {
		// The machine preset is already resolved
		local := *prof
		local.Printer.Machine = ""

		var profPrinter, profPrinthead, profParam versa3d.Settings
		profPrinter, profPrinthead, profParam, err = local.Settings()
		if err != nil {
			return
		}

		overlay(printer, profPrinter)
		overlay(printhead, profPrinthead)
		overlay(parameter, profParam)
	}

	if flags.Changed("dpi") {
		switch len(param.DPI) {
		case 1:
			printhead.Set(versa3d.KeyDPI, param.DPI[0])
		default:
			printhead.Set(versa3d.KeyDPI, param.DPI)
		}
	}

	if flags.Changed("layer-thickness") {
		parameter.Set(versa3d.KeyLayerThickness, param.Thickness)
	}

	if flags.Changed("fill-pattern") {
		parameter.Set(versa3d.KeyFillPattern, param.FillPattern)
	}

	return
}

// applyProfile pushes the collected settings into the stage, returning
// the printer domain for printer aware commands
func applyProfile(stage *versa3d.Stage, prof *profile.Profile) (printer versa3d.Settings, err error) {
	printer, printhead, parameter, err := collectSettings(pflag.CommandLine, prof)
	if err != nil {
		return
	}

	err = stage.SetSettings(printer, printhead, parameter)
	if err != nil {
		return
	}

	slog.Info("settings applied", "machine", param.Machine, "state", stage.State())

	return
}
