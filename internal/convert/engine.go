package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Result captures the outcome of one engine invocation for one job. Stderr
// holds the engine's diagnostic output verbatim, success or not.
type Result struct {
	Job      Job    `json:"job"`
	ExitCode int    `json:"exitCode"`
	Stderr   string `json:"stderr"`
	Success  bool   `json:"success"`
	Err      error  `json:"-"`
}

// commandResult is an internal process execution response.
type commandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// commandRunner abstracts process execution for testability.
type commandRunner interface {
	Run(ctx context.Context, name string, args ...string) (commandResult, error)
}

// execRunner executes commands via os/exec.
type execRunner struct{}

// Run executes one command and captures stdout/stderr and exit code.
func (r *execRunner) Run(ctx context.Context, name string, args ...string) (commandResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := commandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: 0,
	}
	if err != nil {
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		return result, err
	}

	return result, nil
}

// Engine invokes ffmpeg once per job. All signal processing is the engine's;
// this type only assembles arguments and interprets exit status.
type Engine struct {
	ffmpegPath string
	runner     commandRunner
	lookPath   func(string) (string, error)
	stat       func(string) (os.FileInfo, error)
	mkdirAll   func(string, os.FileMode) error
	remove     func(string) error
}

// NewEngine constructs the production engine with OS dependencies.
func NewEngine() *Engine {
	return &Engine{
		ffmpegPath: "ffmpeg",
		runner:     &execRunner{},
		lookPath:   exec.LookPath,
		stat:       os.Stat,
		mkdirAll:   os.MkdirAll,
		remove:     os.Remove,
	}
}

// Check verifies the engine binary is reachable. Callers run it once before
// a batch so a missing engine is reported before any file is processed.
func (e *Engine) Check() error {
	if _, err := e.lookPath(e.ffmpegPath); err != nil {
		return fmt.Errorf("%w (looked for %q)", ErrEngineNotFound, e.ffmpegPath)
	}
	return nil
}

// Run executes one conversion job as a single atomic external call and
// returns its Result. On failure or cancellation the incomplete destination
// file is removed so no partial output is left behind.
func (e *Engine) Run(ctx context.Context, job Job) Result {
	if _, err := e.stat(job.InputPath); err != nil {
		return Result{
			Job:     job,
			Success: false,
			Err:     fmt.Errorf("cannot access input: %w", err),
		}
	}

	if err := e.mkdirAll(filepath.Dir(job.OutputPath), 0o755); err != nil {
		return Result{
			Job:     job,
			Success: false,
			Err:     fmt.Errorf("cannot create output directory: %w", err),
		}
	}

	args := BuildArgs(job)
	res, runErr := e.runner.Run(ctx, e.ffmpegPath, args...)
	if runErr != nil {
		_ = e.remove(job.OutputPath)

		err := runErr
		switch {
		case ctx.Err() != nil:
			err = ctx.Err()
		case errors.Is(runErr, exec.ErrNotFound):
			err = fmt.Errorf("%w (looked for %q)", ErrEngineNotFound, e.ffmpegPath)
		default:
			err = &EngineError{
				InputPath: job.InputPath,
				ExitCode:  res.ExitCode,
				Stderr:    res.Stderr,
				Err:       runErr,
			}
		}

		return Result{
			Job:      job,
			ExitCode: res.ExitCode,
			Stderr:   res.Stderr,
			Success:  false,
			Err:      err,
		}
	}

	if _, err := e.stat(job.OutputPath); err != nil {
		return Result{
			Job:     job,
			Stderr:  res.Stderr,
			Success: false,
			Err:     fmt.Errorf("ffmpeg completed but output file is missing: %w", err),
		}
	}

	return Result{
		Job:     job,
		Stderr:  res.Stderr,
		Success: true,
	}
}

// NewEngineForTests constructs an engine with injectable dependencies.
func NewEngineForTests(
	ffmpegPath string,
	runner commandRunner,
	lookPath func(string) (string, error),
	stat func(string) (os.FileInfo, error),
	mkdirAll func(string, os.FileMode) error,
	remove func(string) error,
) *Engine {
	return &Engine{
		ffmpegPath: ffmpegPath,
		runner:     runner,
		lookPath:   lookPath,
		stat:       stat,
		mkdirAll:   mkdirAll,
		remove:     remove,
	}
}
