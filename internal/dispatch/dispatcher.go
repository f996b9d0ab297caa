package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/danmuck/installctl/internal/modules"
	"github.com/danmuck/installctl/internal/observability"
	"github.com/danmuck/installctl/internal/tools"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrNonZeroExit = errors.New("dispatch: script exited non-zero")
	ErrRunPanicked = errors.New("dispatch: run panicked")
)

const stderrTailLimit = 512

// Config wires a dispatcher to its working directory and process runner.
type Config struct {
	WorkDir string
	Runner  tools.CommandRunner
}

// Dispatcher starts module scripts without waiting for them.
type Dispatcher struct {
	workDir  string
	runner   tools.CommandRunner
	inFlight atomic.Int64
}

func New(cfg Config) *Dispatcher {
	runner := cfg.Runner
	if runner == nil {
		runner = tools.ExecRunner{}
	}
	return &Dispatcher{
		workDir: cfg.WorkDir,
		runner:  runner,
	}
}

// WorkDir is the directory every script runs in.
func (d *Dispatcher) WorkDir() string {
	return d.workDir
}

// InFlight reports runs that have been submitted but not completed.
func (d *Dispatcher) InFlight() int64 {
	return d.inFlight.Load()
}

// Submit launches m's script in a new goroutine and returns immediately.
// The run is detached from ctx cancellation so a finished HTTP request
// does not kill the script.
func (d *Dispatcher) Submit(ctx context.Context, m modules.Module) *Run {
	run := newRun(uuid.NewString(), m.ID)
	d.inFlight.Add(1)
	observability.RecordRunStarted(m.ID)
	log.Info().
		Str("run_id", run.ID).
		Str("module", m.ID).
		Str("script", m.Script).
		Str("work_dir", d.workDir).
		Msg("run started")

	go d.execute(context.WithoutCancel(ctx), run, m)
	return run
}

func (d *Dispatcher) execute(ctx context.Context, run *Run, m modules.Module) {
	var res Result
	defer func() {
		if p := recover(); p != nil {
			res = Result{
				OK:       false,
				ExitCode: tools.ExitCodeLaunchFailed,
				Err:      fmt.Errorf("%w: %v", ErrRunPanicked, p),
			}
		}
		res.Duration = time.Since(run.StartedAt)
		d.finish(run, res)
	}()

	name, args := modules.Command(m, d.workDir)
	_, stderr, code, err := d.runner.Run(ctx, d.workDir, name, args...)
	res = Result{OK: err == nil && code == 0, ExitCode: code, Err: err}
	if err == nil && code != 0 {
		res.Err = fmt.Errorf("%w: exit_code=%d", ErrNonZeroExit, code)
	}
	if !res.OK && len(stderr) > 0 {
		log.Debug().Str("run_id", run.ID).Str("stderr_tail", tail(stderr)).Msg("run stderr")
	}
}

func (d *Dispatcher) finish(run *Run, res Result) {
	d.inFlight.Add(-1)
	observability.RecordRunFinished(run.Module, res.OK, res.Duration)
	if res.OK {
		log.Info().
			Str("run_id", run.ID).
			Str("module", run.Module).
			Dur("duration", res.Duration).
			Msg("run succeeded")
	} else {
		log.Warn().
			Str("run_id", run.ID).
			Str("module", run.Module).
			Int32("exit_code", res.ExitCode).
			Dur("duration", res.Duration).
			Err(res.Err).
			Msg("run failed")
	}
	run.complete(res)
}

func tail(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= stderrTailLimit {
		return s
	}
	start := len(s) - stderrTailLimit
	for start < len(s) && !utf8.RuneStart(s[start]) {
		start++
	}
	return s[start:]
}
