//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package versa3d

import (
	"fmt"
)

// Setting keys consumed by the slicer
const (
	KeyDPI            = "dpi"
	KeyLayerThickness = "layer_thickness"
	KeyFillPattern    = "fill_pattern"
	KeyBuildBedSize   = "build_bed_size"
)

// FillPattern selects how layer interiors are rasterized
type FillPattern int

const (
	FillUniform = FillPattern(iota)
)

func (fp FillPattern) String() string {
	switch fp {
	case FillUniform:
		return "uniform"
	default:
		return fmt.Sprintf("FillPattern(%d)", int(fp))
	}
}

// ParseFillPattern maps a pattern name to its value
func ParseFillPattern(name string) (fp FillPattern, err error) {
	switch name {
	case "uniform", "full", "0":
		fp = FillUniform
	default:
		err = ErrSettingInvalid(KeyFillPattern)
	}

	return
}

// SettingUI is only meaningful to settings editors
type SettingUI struct {
	Category string
	Section  string
}

// Setting is a single named configuration value
type Setting struct {
	Name  string
	Value interface{}
	UI    SettingUI
}

// Settings is one settings domain (printer, printhead or print parameter)
type Settings map[string]Setting

// Set stores a value, keeping any existing UI metadata
func (s Settings) Set(name string, value interface{}) {
	entry := s[name]
	entry.Name = name
	entry.Value = value
	s[name] = entry
}

func (s Settings) lookup(key string) (value interface{}, err error) {
	entry, ok := s[key]
	if !ok {
		err = ErrSettingMissing(key)
		return
	}

	value = entry.Value
	return
}

// Resolution returns a positive [2]int dpi value
func (s Settings) Resolution(key string) (res [2]int, err error) {
	value, err := s.lookup(key)
	if err != nil {
		return
	}

	switch v := value.(type) {
	case [2]int:
		res = v
	case []int:
		if len(v) != 2 {
			err = ErrSettingInvalid(key)
			return
		}
		res = [2]int{v[0], v[1]}
	case int:
		res = [2]int{v, v}
	default:
		err = ErrSettingInvalid(key)
		return
	}

	if res[0] <= 0 || res[1] <= 0 {
		err = ErrSettingInvalid(key)
	}

	return
}

// Thickness returns a non-empty list of positive layer thicknesses
func (s Settings) Thickness(key string) (thickness []float64, err error) {
	value, err := s.lookup(key)
	if err != nil {
		return
	}

	switch v := value.(type) {
	case float64:
		thickness = []float64{v}
	case float32:
		thickness = []float64{float64(v)}
	case []float64:
		thickness = append([]float64(nil), v...)
	default:
		err = ErrSettingInvalid(key)
		return
	}

	if len(thickness) == 0 {
		err = ErrSettingInvalid(key)
		return
	}

	for _, t := range thickness {
		if !(t > 0) {
			err = ErrSettingInvalid(key)
			return
		}
	}

	return
}

// FillPattern returns the fill pattern selector
func (s Settings) FillPattern(key string) (fp FillPattern, err error) {
	value, err := s.lookup(key)
	if err != nil {
		return
	}

	switch v := value.(type) {
	case FillPattern:
		fp = v
	case int:
		fp = FillPattern(v)
	case string:
		fp, err = ParseFillPattern(v)
	default:
		err = ErrSettingInvalid(key)
	}

	return
}

// Vec3 returns a three component float setting, such as a bed size
func (s Settings) Vec3(key string) (vec [3]float64, err error) {
	value, err := s.lookup(key)
	if err != nil {
		return
	}

	switch v := value.(type) {
	case [3]float64:
		vec = v
	case []float64:
		if len(v) != 3 {
			err = ErrSettingInvalid(key)
			return
		}
		copy(vec[:], v)
	default:
		err = ErrSettingInvalid(key)
	}

	return
}
