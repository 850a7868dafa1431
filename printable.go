//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package versa3d

import (
	"image"
)

// Everything needed to print a single layer
type Layer struct {
	Z     float32     // Z height of the layer bottom, in mm
	Image *image.Gray // Occupancy mask, 0xff is filled
}

type Printable interface {
	Properties() (prop Properties)
	Layer(index int) (layer Layer)
}
