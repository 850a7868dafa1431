//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package profile loads printer, printhead and print parameter settings
// from YAML files.
package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/msam/versa3d"
)

// Floats accepts either a scalar or a sequence of numbers
type Floats []float64

func (f *Floats) UnmarshalYAML(value *yaml.Node) (err error) {
	switch value.Kind {
	case yaml.ScalarNode:
		var v float64
		err = value.Decode(&v)
		if err != nil {
			return
		}
		*f = Floats{v}
	case yaml.SequenceNode:
		var v []float64
		err = value.Decode(&v)
		if err != nil {
			return
		}
		*f = Floats(v)
	default:
		err = fmt.Errorf("line %v: expected a number or a list of numbers", value.Line)
	}

	return
}

// Ints accepts either a scalar or a sequence of integers
type Ints []int

func (i *Ints) UnmarshalYAML(value *yaml.Node) (err error) {
	switch value.Kind {
	case yaml.ScalarNode:
		var v int
		err = value.Decode(&v)
		if err != nil {
			return
		}
		*i = Ints{v, v}
	case yaml.SequenceNode:
		var v []int
		err = value.Decode(&v)
		if err != nil {
			return
		}
		*i = Ints(v)
	default:
		err = fmt.Errorf("line %v: expected an integer or a list of integers", value.Line)
	}

	return
}

type Printer struct {
	Machine      string `yaml:"machine,omitempty"`
	BuildBedSize Floats `yaml:"build_bed_size,omitempty"`
}

type Printhead struct {
	DPI Ints `yaml:"dpi,omitempty"`
}

type Param struct {
	LayerThickness Floats `yaml:"layer_thickness,omitempty"`
	FillPattern    string `yaml:"fill_pattern,omitempty"`
}

// Profile is the on-disk form of the three settings domains
type Profile struct {
	Printer   Printer   `yaml:"printer"`
	Printhead Printhead `yaml:"printhead"`
	Param     Param     `yaml:"param"`
}

// Parse decodes a profile document. Unknown keys are rejected; an empty
// document is an empty profile.
func Parse(data []byte) (prof *Profile, err error) {
	prof = &Profile{}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	err = decoder.Decode(prof)
	if errors.Is(err, io.EOF) {
		err = nil
	}
	if err != nil {
		prof = nil
		err = fmt.Errorf("profile: %w", err)
	}

	return
}

// Load reads and decodes a profile file
func Load(path string) (prof *Profile, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	prof, err = Parse(data)
	if err != nil {
		err = fmt.Errorf("%s: %w", path, err)
	}

	return
}

// Marshal encodes the profile as YAML
func (prof *Profile) Marshal() (data []byte, err error) {
	data, err = yaml.Marshal(prof)

	return
}

// Settings returns the printer, printhead and print parameter domains.
// The printer domain starts from the named machine, if any, and values
// given in the profile override it. Omitted keys stay unset.
func (prof *Profile) Settings() (printer, printhead, param versa3d.Settings, err error) {
	printer = versa3d.Settings{}
	printhead = versa3d.Settings{}
	param = versa3d.Settings{}

	if prof.Printer.Machine != "" {
		machine, ok := versa3d.LookupMachine(prof.Printer.Machine)
		if !ok {
			err = fmt.Errorf("%w: unknown machine '%s'", versa3d.ErrInvalidConfiguration, prof.Printer.Machine)
			return
		}
		printer = machine.PrinterSettings()
		printhead = machine.PrintheadSettings()
	}

	if prof.Printer.BuildBedSize != nil {
		printer.Set(versa3d.KeyBuildBedSize, []float64(prof.Printer.BuildBedSize))
	}

	if prof.Printhead.DPI != nil {
		printhead.Set(versa3d.KeyDPI, []int(prof.Printhead.DPI))
	}

	if prof.Param.LayerThickness != nil {
		param.Set(versa3d.KeyLayerThickness, []float64(prof.Param.LayerThickness))
	}

	if prof.Param.FillPattern != "" {
		param.Set(versa3d.KeyFillPattern, prof.Param.FillPattern)
	}

	return
}

// Apply pushes the profile into a stage
func (prof *Profile) Apply(st *versa3d.Stage) (err error) {
	printer, printhead, param, err := prof.Settings()
	if err != nil {
		return
	}

	err = st.SetSettings(printer, printhead, param)

	return
}
