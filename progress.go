//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package versa3d

type Progressor interface {
	Show(percent float32)
	Stop()
}

type nilProgress struct{}

func (np *nilProgress) Show(float32) {}
func (np *nilProgress) Stop()        {}

var defaultProgress = Progressor(&nilProgress{})

func SetProgress(prog Progressor) {
	if prog == Progressor(nil) {
		prog = &nilProgress{}
	}
	defaultProgress = prog
}

// Progress reports completion of a fixed number of steps. Steps may be
// indicated from any goroutine; Close may be called before every step
// completes, as happens on cancellation.
type Progress struct {
	Progressor
	Completed chan struct{}
	Done      chan struct{}
}

func NewProgress(total int) (prog *Progress) {
	return newProgress(defaultProgress, total)
}

func newProgress(progressor Progressor, total int) (prog *Progress) {
	if progressor == nil {
		progressor = defaultProgress
	}

	prog = &Progress{
		Progressor: progressor,
		Completed:  make(chan struct{}, total),
		Done:       make(chan struct{}),
	}

	go func(prog *Progress) {
		completion := 0
		prog.Show(0.0)
		for range prog.Completed {
			completion++
			if completion < total {
				prog.Show(float32(completion) * 100.0 / float32(total))
			}
		}
		prog.Show(100.0)
		prog.Stop()
		close(prog.Done)
	}(prog)

	return
}

func (prog *Progress) Indicate() {
	prog.Completed <- struct{}{}
}

func (prog *Progress) Close() {
	close(prog.Completed)
	<-prog.Done
}
