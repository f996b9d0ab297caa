package dispatch

import (
	"time"
)

// Phase marks where a run is in its single accepted->complete transition.
type Phase string

const (
	PhaseAccepted Phase = "accepted"
	PhaseComplete Phase = "complete"
)

// Result is the binary outcome of one run.
type Result struct {
	OK       bool
	ExitCode int32
	Err      error
	Duration time.Duration
}

// Run is the handle for one background execution.
type Run struct {
	ID        string
	Module    string
	StartedAt time.Time

	done   chan struct{}
	result Result
}

func newRun(id, module string) *Run {
	return &Run{
		ID:        id,
		Module:    module,
		StartedAt: time.Now(),
		done:      make(chan struct{}),
	}
}

// Done is closed once the run's result is available.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the run completes.
func (r *Run) Wait() Result {
	<-r.done
	return r.result
}

// Result returns the outcome if the run has completed.
func (r *Run) Result() (Result, bool) {
	select {
	case <-r.done:
		return r.result, true
	default:
		return Result{}, false
	}
}

// Phase reports the current lifecycle marker.
func (r *Run) Phase() Phase {
	if _, ok := r.Result(); ok {
		return PhaseComplete
	}
	return PhaseAccepted
}

func (r *Run) complete(res Result) {
	r.result = res
	close(r.done)
}
