//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package versa3d

import (
	"log/slog"
	"sync/atomic"
)

var packageLogger atomic.Pointer[slog.Logger]

// SetLogger replaces the logger used by the slicer. A nil logger restores
// slog.Default.
func SetLogger(logger *slog.Logger) {
	packageLogger.Store(logger)
}

func logger() *slog.Logger {
	if l := packageLogger.Load(); l != nil {
		return l
	}

	return slog.Default()
}
