//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package versa3d

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestStageFresh(t *testing.T) {
	st := NewStage()

	assert.Equal(t, StateClean, st.State())
	assert.Nil(t, st.Slicer())

	err := st.SetPrinthead(printheadSettings(100))
	assert.ErrorIs(t, err, ErrNoStrategy)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	err = st.SetPrinter(Settings{})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = st.RequestInformation(NewBoxMesh(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1}))
	assert.ErrorIs(t, err, ErrNoStrategy)

	_, err = st.RequestData(context.Background(), NewBoxMesh(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1}))
	assert.ErrorIs(t, err, ErrNoStrategy)

	assert.Equal(t, StateClean, st.State())
}

func TestStageSetSettings(t *testing.T) {
	st := NewStage()

	var transitions []State
	st.OnModified(func(state State) {
		transitions = append(transitions, state)
	})

	// Printer and printhead arrive together with the parameters
	err := st.SetSettings(Settings{}, printheadSettings([2]int{100, 100}), paramSettings(0.2))
	require.NoError(t, err)
	assert.Equal(t, StateDirty, st.State())

	us := st.Slicer().(*UniformSlicer)
	assert.Equal(t, [2]int{100, 100}, us.Resolution)
	assert.Equal(t, []float64{0.2}, us.LayerThickness)

	mesh := NewBoxMesh(r3.Vec{}, r3.Vec{X: 2.54, Y: 2.54, Z: 1})
	grid, err := st.RequestInformation(mesh)
	require.NoError(t, err)
	assert.Equal(t, StateDirty, st.State(), "information does not clean the stage")

	vol, err := st.RequestData(context.Background(), mesh)
	require.NoError(t, err)
	assert.Equal(t, grid, vol.Grid)
	assert.Equal(t, StateClean, st.State())

	assert.Equal(t, []State{StateDirty, StateClean}, transitions)
}

func TestStageIdempotent(t *testing.T) {
	st := NewStage()
	require.NoError(t, st.SetPrintParameter(paramSettings(0.1)))

	// Defaults already match, so a fresh stage stays clean
	assert.Equal(t, StateClean, st.State())

	require.NoError(t, st.SetPrinthead(printheadSettings(50)))
	assert.Equal(t, StateClean, st.State())

	require.NoError(t, st.SetPrinthead(printheadSettings(75)))
	assert.Equal(t, StateDirty, st.State())

	_, err := st.RequestData(context.Background(), NewBoxMesh(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1}))
	require.NoError(t, err)
	assert.Equal(t, StateClean, st.State())

	require.NoError(t, st.SetPrinthead(printheadSettings(75)))
	assert.Equal(t, StateClean, st.State())

	require.NoError(t, st.SetPrinter(Settings{}))
	assert.Equal(t, StateClean, st.State())
}

func TestStageReplaceStrategy(t *testing.T) {
	st := NewStage()
	require.NoError(t, st.SetSettings(Settings{}, printheadSettings(300), paramSettings(0.1)))

	_, err := st.RequestData(context.Background(), NewBoxMesh(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1}))
	require.NoError(t, err)
	require.Equal(t, StateClean, st.State())

	first := st.Slicer()

	// A new parameter set replaces the strategy, dropping the printhead
	// resolution, so the output is stale
	require.NoError(t, st.SetPrintParameter(paramSettings(0.1)))
	assert.Equal(t, StateDirty, st.State())
	assert.NotSame(t, first, st.Slicer())
	assert.Equal(t, [2]int{50, 50}, st.Slicer().(*UniformSlicer).Resolution)

	// Different thickness: the fresh strategy holds the second value
	require.NoError(t, st.SetPrintParameter(paramSettings(0.3)))
	coarse := st.Slicer()
	assert.Equal(t, []float64{0.3}, coarse.(*UniformSlicer).LayerThickness)

	require.NoError(t, st.SetPrintParameter(paramSettings(0.05)))
	assert.NotSame(t, coarse, st.Slicer())
	assert.Equal(t, []float64{0.05}, st.Slicer().(*UniformSlicer).LayerThickness)
	assert.Equal(t, StateDirty, st.State())
}

func TestStageProgressor(t *testing.T) {
	prog := &nilProgress{}
	st := NewStage(WithProgress(prog))

	require.NoError(t, st.SetPrintParameter(paramSettings(0.1)))
	assert.Same(t, prog, st.Slicer().(*UniformSlicer).Progressor)

	// Every replacement strategy reports to the same progressor
	require.NoError(t, st.SetPrintParameter(paramSettings(0.2)))
	assert.Same(t, prog, st.Slicer().(*UniformSlicer).Progressor)
}

func TestStageInvalidParamKeepsStrategy(t *testing.T) {
	st := NewStage()
	require.NoError(t, st.SetPrintParameter(paramSettings(0.3)))
	active := st.Slicer()

	bad := paramSettings(0.1)
	bad.Set(KeyFillPattern, FillPattern(2))
	err := st.SetPrintParameter(bad)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Same(t, active, st.Slicer())

	missing := Settings{}
	missing.Set(KeyFillPattern, FillUniform)
	err = st.SetPrintParameter(missing)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Same(t, active, st.Slicer())

	err = st.SetSettings(Settings{}, printheadSettings(100), bad)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Equal(t, [2]int{50, 50}, st.Slicer().(*UniformSlicer).Resolution, "printhead must not apply after a failed parameter set")
}

func TestStageEmptyMesh(t *testing.T) {
	st := NewStage()
	require.NoError(t, st.SetPrintParameter(paramSettings(0.2)))

	_, err := st.RequestData(context.Background(), NewMesh(nil))
	assert.ErrorIs(t, err, ErrEmptyMesh)
	assert.Equal(t, StateDirty, st.State())
}

type blockingProgress struct {
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func (bp *blockingProgress) Show(percent float32) {
	if percent == 0.0 {
		return
	}
	bp.once.Do(func() { close(bp.started) })
	<-bp.release
}

func (bp *blockingProgress) Stop() {}

func TestStageSupersede(t *testing.T) {
	prog := &blockingProgress{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}

	st := NewStage(WithProgress(prog))
	require.NoError(t, st.SetPrintParameter(paramSettings(0.05)))

	mesh := NewBoxMesh(r3.Vec{}, r3.Vec{X: 5, Y: 5, Z: 5})

	first := make(chan error, 1)
	go func() {
		_, err := st.RequestData(context.Background(), mesh)
		first <- err
	}()

	// Wait for the first request to be slicing
	select {
	case <-prog.started:
	case <-time.After(5 * time.Second):
		t.Fatal("first request never started")
	}

	second := make(chan error, 1)
	go func() {
		_, err := st.RequestData(context.Background(), mesh)
		second <- err
	}()

	// Let the first request observe its cancellation
	time.Sleep(50 * time.Millisecond)
	close(prog.release)

	select {
	case err := <-first:
		assert.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(10 * time.Second):
		t.Fatal("first request never returned")
	}

	select {
	case err := <-second:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("second request never returned")
	}

	assert.Equal(t, StateClean, st.State())
}

func TestStageCancel(t *testing.T) {
	st := NewStage()
	require.NoError(t, st.SetPrintParameter(paramSettings(0.05)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := st.RequestData(ctx, NewBoxMesh(r3.Vec{}, r3.Vec{X: 5, Y: 5, Z: 5}))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, StateDirty, st.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "clean", StateClean.String())
	assert.Equal(t, "dirty", StateDirty.String())
	assert.Equal(t, "unknown", State(9).String())
}
