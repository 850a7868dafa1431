//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package versa3d

import (
	"fmt"
	"sort"
)

// MachineSize is the usable build volume, in mm
type MachineSize struct {
	Xmm, Ymm, Zmm float64
}

type Machine struct {
	Vendor string
	Model  string
	Size   MachineSize
	DPI    [2]int // Printhead resolution
}

// PrinterSettings returns the printer settings domain for the machine
func (machine *Machine) PrinterSettings() (setting Settings) {
	setting = Settings{}
	setting[KeyBuildBedSize] = Setting{
		Name:  KeyBuildBedSize,
		Value: [3]float64{machine.Size.Xmm, machine.Size.Ymm, machine.Size.Zmm},
		UI:    SettingUI{Category: "Printer", Section: "Build Bed"},
	}

	return
}

// PrintheadSettings returns the printhead settings domain for the machine
func (machine *Machine) PrintheadSettings() (setting Settings) {
	setting = Settings{}
	setting[KeyDPI] = Setting{
		Name:  KeyDPI,
		Value: machine.DPI,
		UI:    SettingUI{Category: "Printhead", Section: "Resolution"},
	}

	return
}

var (
	machineMap = map[string]Machine{}
)

func RegisterMachine(name string, machine Machine) (err error) {
	_, ok := machineMap[name]
	if ok {
		err = fmt.Errorf("%s: name already exists in Machine list", name)
		return
	}

	machineMap[name] = machine

	return
}

func RegisterMachines(machines map[string]Machine) (err error) {
	for name, machine := range machines {
		err = RegisterMachine(name, machine)
		if err != nil {
			return
		}
	}

	return
}

// LookupMachine returns a registered machine by name
func LookupMachine(name string) (machine Machine, ok bool) {
	machine, ok = machineMap[name]
	return
}

// MachineNames returns the registered machine names, sorted
func MachineNames() (names []string) {
	for name := range machineMap {
		names = append(names, name)
	}

	sort.Strings(names)

	return
}

func init() {
	RegisterMachines(map[string]Machine{
		"default": {Vendor: "Generic", Model: "Default", Size: MachineSize{50.8, 50.8, 50.8}, DPI: [2]int{50, 50}},
		"draft":   {Vendor: "Generic", Model: "Draft", Size: MachineSize{200.0, 200.0, 150.0}, DPI: [2]int{150, 150}},
		"fine":    {Vendor: "Generic", Model: "Fine", Size: MachineSize{200.0, 200.0, 150.0}, DPI: [2]int{600, 300}},
	})
}
