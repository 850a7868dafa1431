//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package uvj handles input and output of 'generic' zip files (JSON layer
// description and PNG images)
package uvj

import (
	"github.com/msam/versa3d"
)

func init() {
	newFormatter := func(suffix string) versa3d.Formatter { return NewUVJFormatter(suffix) }

	versa3d.RegisterFormatter(".uvj", newFormatter)
}
