//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"log/slog"
	"sync"
)

// LogProgress reports slicing progress in ten percent steps
type LogProgress struct {
	Name string

	mu   sync.Mutex
	last int
}

func NewLogProgress(name string) (lp *LogProgress) {
	lp = &LogProgress{
		Name: name,
		last: -1,
	}

	return
}

func (lp *LogProgress) Show(percent float32) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	step := int(percent) / 10
	if step == lp.last {
		return
	}

	lp.last = step
	slog.Info("progress", "input", lp.Name, "percent", step*10)
}

func (lp *LogProgress) Stop() {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	lp.last = -1
}
