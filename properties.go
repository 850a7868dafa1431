//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package versa3d

import (
	"image"
)

type SizeMillimeter struct {
	X, Y float32
}

type Size struct {
	X, Y        int            // Layer size in pixels (x,y)
	Millimeter  SizeMillimeter // Layer size in mm
	Layers      int
	LayerHeight float32 // Height of an individual layer
}

type Properties struct {
	Size     Size
	Metadata map[string](interface{}) `json:",omitempty"`
}

// Get metadata
func (prop *Properties) GetMetadataFloat(attr string, defValue float64) (value float64) {
	value = defValue

	tmp, found := prop.Metadata[attr]
	if found {
		f, ok := tmp.(float64)
		if ok {
			value = f
		}
	}

	return
}

// Get image bounds
func (prop *Properties) Bounds() image.Rectangle {
	return image.Rect(0, 0, prop.Size.X, prop.Size.Y)
}

// Height returns the total height of the layer stack, in mm
func (prop *Properties) Height() float32 {
	return prop.Size.LayerHeight * float32(prop.Size.Layers)
}

// PropertiesFromGrid describes the layer stack of a voxel grid
func PropertiesFromGrid(grid Grid) (prop Properties) {
	prop.Size = Size{
		X: grid.Dims[0],
		Y: grid.Dims[1],
		Millimeter: SizeMillimeter{
			X: float32(float64(grid.Dims[0]) * grid.Spacing.X),
			Y: float32(float64(grid.Dims[1]) * grid.Spacing.Y),
		},
		Layers:      grid.Dims[2],
		LayerHeight: float32(grid.Spacing.Z),
	}

	prop.Metadata = map[string](interface{}){
		"OriginX": grid.Origin.X,
		"OriginY": grid.Origin.Y,
		"OriginZ": grid.Origin.Z,
	}

	return
}
