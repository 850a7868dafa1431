//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package bmp writes layer stacks as zip archives of BMP images, optionally
// split into printhead swaths
package bmp

import (
	"github.com/msam/versa3d"
)

func init() {
	newFormatter := func(suffix string) versa3d.Formatter { return NewBMPFormatter(suffix) }

	versa3d.RegisterFormatter(".bmp.zip", newFormatter)
}
