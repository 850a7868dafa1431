//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"fmt"
	"os"

	"github.com/msam/versa3d"
)

func PrintMachines() {
	fmt.Fprintln(os.Stderr, "Known machines:")
	fmt.Fprintln(os.Stderr)

	for _, key := range versa3d.MachineNames() {
		item, _ := versa3d.LookupMachine(key)
		size := &item.Size
		fmt.Fprintf(os.Stderr, "    %-20s %v dpi, %.4gx%.4gx%.4g mm\n", key, item.DPI, size.Xmm, size.Ymm, size.Zmm)
	}
}
