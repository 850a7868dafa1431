//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package versa3d

import (
	"context"
	"sync"
)

// State of a Stage's output relative to its settings
type State int

const (
	StateClean = State(iota) // Output reflects the committed settings
	StateDirty               // Settings changed since the last slice
)

func (s State) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateDirty:
		return "dirty"
	default:
		return "unknown"
	}
}

type StageOption func(st *Stage)

// WithProgress reports per-layer slicing progress to prog
func WithProgress(prog Progressor) StageOption {
	return func(st *Stage) {
		st.progressor = prog
	}
}

// Stage owns the active slicing strategy, tracks whether its output is
// stale, and runs slice requests. Settings must be applied print
// parameter first, as that selects the strategy receiving the printer
// and printhead settings.
//
// A slice request cancels any older request still running on the stage.
// Settings changes wait for a running slice to return.
type Stage struct {
	mu         sync.Mutex
	slicer     Slicer
	state      State
	listeners  []func(State)
	progressor Progressor

	requestMu  sync.Mutex
	generation uint64
	cancel     context.CancelFunc
}

func NewStage(opts ...StageOption) (st *Stage) {
	st = &Stage{
		state: StateClean,
	}

	for _, opt := range opts {
		opt(st)
	}

	return
}

// OnModified registers fn to be called on every state transition
func (st *Stage) OnModified(fn func(State)) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.listeners = append(st.listeners, fn)
}

// State returns the current state
func (st *Stage) State() State {
	st.mu.Lock()
	defer st.mu.Unlock()

	return st.state
}

// Slicer returns the active strategy, or nil before the first print
// parameter set.
func (st *Stage) Slicer() Slicer {
	st.mu.Lock()
	defer st.mu.Unlock()

	return st.slicer
}

// transition must be called with mu held. The returned function notifies
// the listeners and must be called after mu is released.
func (st *Stage) transition(to State) (notify func()) {
	notify = func() {}

	if st.state == to {
		return
	}

	logger().Debug("slicing stage state change", "from", st.state, "to", to)
	st.state = to

	listeners := append([]func(State){}, st.listeners...)
	notify = func() {
		for _, fn := range listeners {
			fn(to)
		}
	}

	return
}

// SetSettings applies print parameters, then printer, then printhead
// settings.
func (st *Stage) SetSettings(printer, printhead, param Settings) (err error) {
	err = st.SetPrintParameter(param)
	if err != nil {
		return
	}

	err = st.SetPrinter(printer)
	if err != nil {
		return
	}

	err = st.SetPrinthead(printhead)

	return
}

// SetPrintParameter replaces the strategy with a fresh one for the
// requested fill pattern and applies param to it. On error the previous
// strategy stays active.
func (st *Stage) SetPrintParameter(param Settings) (err error) {
	pattern, err := param.FillPattern(KeyFillPattern)
	if err != nil {
		return
	}

	slicer, err := NewSlicer(pattern, st.progressor)
	if err != nil {
		return
	}

	changed, err := slicer.UpdateParam(param)
	if err != nil {
		return
	}

	st.mu.Lock()
	replaced := st.slicer != nil
	st.slicer = slicer
	notify := func() {}
	if changed || replaced {
		notify = st.transition(StateDirty)
	}
	st.mu.Unlock()

	logger().Debug("slicing strategy selected", "fill_pattern", pattern, "replaced", replaced)
	notify()

	return
}

// SetPrinter forwards printer settings to the active strategy
func (st *Stage) SetPrinter(setting Settings) (err error) {
	return st.update(Slicer.UpdatePrinter, setting)
}

// SetPrinthead forwards printhead settings to the active strategy
func (st *Stage) SetPrinthead(setting Settings) (err error) {
	return st.update(Slicer.UpdatePrinthead, setting)
}

func (st *Stage) update(method func(Slicer, Settings) (bool, error), setting Settings) (err error) {
	st.mu.Lock()

	if st.slicer == nil {
		st.mu.Unlock()
		err = ErrNoStrategy
		return
	}

	changed, err := method(st.slicer, setting)
	notify := func() {}
	if err == nil && changed {
		notify = st.transition(StateDirty)
	}
	st.mu.Unlock()

	notify()

	return
}

// RequestInformation returns the grid a slice of mesh would produce. It
// does not change the stage state.
func (st *Stage) RequestInformation(mesh *Mesh) (grid Grid, err error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.slicer == nil {
		err = ErrNoStrategy
		return
	}

	grid, err = st.slicer.Info(mesh)

	return
}

// RequestData slices mesh with the active strategy. On success the stage
// becomes clean. A request superseded by a newer one returns
// ErrSuperseded.
func (st *Stage) RequestData(ctx context.Context, mesh *Mesh) (vol *Volume, err error) {
	st.requestMu.Lock()
	if st.cancel != nil {
		st.cancel()
	}
	st.generation++
	gen := st.generation
	ctx, cancel := context.WithCancel(ctx)
	st.cancel = cancel
	st.requestMu.Unlock()

	defer func() {
		st.requestMu.Lock()
		if st.generation == gen {
			st.cancel = nil
		}
		st.requestMu.Unlock()
		cancel()
	}()

	st.mu.Lock()

	superseded := func() bool {
		st.requestMu.Lock()
		defer st.requestMu.Unlock()
		return st.generation != gen
	}

	if superseded() {
		st.mu.Unlock()
		err = ErrSuperseded
		return
	}

	if st.slicer == nil {
		st.mu.Unlock()
		err = ErrNoStrategy
		return
	}

	vol, err = st.slicer.Slice(ctx, mesh)
	if err != nil {
		st.mu.Unlock()
		vol = nil
		if ctx.Err() != nil && superseded() {
			err = ErrSuperseded
		}
		return
	}

	// Finished, but a newer request owns the output
	if superseded() {
		st.mu.Unlock()
		vol = nil
		err = ErrSuperseded
		return
	}

	notify := st.transition(StateClean)
	st.mu.Unlock()

	notify()

	return
}
