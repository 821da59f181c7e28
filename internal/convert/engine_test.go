package convert

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// fakeRunner simulates engine invocations with injected behavior.
type fakeRunner struct {
	run func(ctx context.Context, name string, args ...string) (commandResult, error)
}

// Run delegates to injected behavior.
func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (commandResult, error) {
	if f.run == nil {
		return commandResult{}, nil
	}
	return f.run(ctx, name, args...)
}

// mustWriteFile writes a file or fails the test.
func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// TestEngineRunSuccess checks the happy path: input stat, output dir
// creation, one engine call, and output verification.
func TestEngineRunSuccess(t *testing.T) {
	root := t.TempDir()
	inputPath := filepath.Join(root, "song.mp3")
	outputPath := filepath.Join(root, "out", "song.wav")
	mustWriteFile(t, inputPath, "audio")

	var gotName string
	var gotArgs []string
	runner := &fakeRunner{
		run: func(ctx context.Context, name string, args ...string) (commandResult, error) {
			gotName = name
			gotArgs = append([]string{}, args...)
			mustWriteFile(t, args[len(args)-1], "converted")
			return commandResult{Stderr: "size=128kB", ExitCode: 0}, nil
		},
	}

	engine := NewEngineForTests("ffmpeg-custom", runner, exec.LookPath, os.Stat, os.MkdirAll, os.Remove)
	job := Job{InputPath: inputPath, OutputPath: outputPath, Options: DefaultOptions()}
	res := engine.Run(context.Background(), job)

	if !res.Success {
		t.Fatalf("Run() failed: %v", res.Err)
	}
	if gotName != "ffmpeg-custom" {
		t.Fatalf("command name = %q, want ffmpeg-custom", gotName)
	}
	if gotArgs[len(gotArgs)-1] != outputPath {
		t.Fatalf("last arg = %q, want %q", gotArgs[len(gotArgs)-1], outputPath)
	}
	if res.Stderr != "size=128kB" {
		t.Fatalf("stderr = %q", res.Stderr)
	}
	if _, err := os.Stat(outputPath); err != nil {
		t.Fatalf("output missing: %v", err)
	}
}

// TestEngineRunMissingInput checks an unreadable input fails before the
// engine is invoked.
func TestEngineRunMissingInput(t *testing.T) {
	called := false
	runner := &fakeRunner{
		run: func(ctx context.Context, name string, args ...string) (commandResult, error) {
			called = true
			return commandResult{}, nil
		},
	}

	engine := NewEngineForTests("ffmpeg", runner, exec.LookPath, os.Stat, os.MkdirAll, os.Remove)
	res := engine.Run(context.Background(), Job{
		InputPath:  filepath.Join(t.TempDir(), "missing.wav"),
		OutputPath: filepath.Join(t.TempDir(), "out.wav"),
		Options:    DefaultOptions(),
	})

	if res.Success {
		t.Fatal("Run() succeeded for missing input")
	}
	if called {
		t.Fatal("engine was invoked despite missing input")
	}
}

// TestEngineRunFailureRemovesPartialOutput checks a failed conversion
// classifies the error and deletes the incomplete destination.
func TestEngineRunFailureRemovesPartialOutput(t *testing.T) {
	root := t.TempDir()
	inputPath := filepath.Join(root, "song.flac")
	outputPath := filepath.Join(root, "song.mp3")
	mustWriteFile(t, inputPath, "audio")

	runner := &fakeRunner{
		run: func(ctx context.Context, name string, args ...string) (commandResult, error) {
			mustWriteFile(t, outputPath, "partial")
			return commandResult{Stderr: "Invalid data found", ExitCode: 1}, errors.New("exit status 1")
		},
	}

	engine := NewEngineForTests("ffmpeg", runner, exec.LookPath, os.Stat, os.MkdirAll, os.Remove)
	opts := DefaultOptions()
	opts.Format = FormatMP3
	res := engine.Run(context.Background(), Job{InputPath: inputPath, OutputPath: outputPath, Options: opts})

	if res.Success {
		t.Fatal("Run() succeeded for failing engine")
	}
	var engineErr *EngineError
	if !errors.As(res.Err, &engineErr) {
		t.Fatalf("error = %v, want *EngineError", res.Err)
	}
	if engineErr.ExitCode != 1 {
		t.Fatalf("exit code = %d, want 1", engineErr.ExitCode)
	}
	if engineErr.Stderr != "Invalid data found" {
		t.Fatalf("stderr = %q", engineErr.Stderr)
	}
	if _, err := os.Stat(outputPath); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("partial output not removed, stat err = %v", err)
	}
}

// TestEngineRunCancelledContext checks cancellation wins error
// classification and removes the partial output.
func TestEngineRunCancelledContext(t *testing.T) {
	root := t.TempDir()
	inputPath := filepath.Join(root, "song.wav")
	outputPath := filepath.Join(root, "song.flac")
	mustWriteFile(t, inputPath, "audio")

	ctx, cancel := context.WithCancel(context.Background())
	runner := &fakeRunner{
		run: func(ctx context.Context, name string, args ...string) (commandResult, error) {
			mustWriteFile(t, outputPath, "partial")
			cancel()
			return commandResult{ExitCode: -1}, errors.New("signal: killed")
		},
	}

	engine := NewEngineForTests("ffmpeg", runner, exec.LookPath, os.Stat, os.MkdirAll, os.Remove)
	opts := DefaultOptions()
	opts.Format = FormatFLAC
	res := engine.Run(ctx, Job{InputPath: inputPath, OutputPath: outputPath, Options: opts})

	if res.Success {
		t.Fatal("Run() succeeded for cancelled context")
	}
	if !errors.Is(res.Err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", res.Err)
	}
	if _, err := os.Stat(outputPath); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("partial output not removed, stat err = %v", err)
	}
}

// TestEngineRunBinaryNotFound checks a missing engine binary maps to the
// sentinel error.
func TestEngineRunBinaryNotFound(t *testing.T) {
	root := t.TempDir()
	inputPath := filepath.Join(root, "song.wav")
	mustWriteFile(t, inputPath, "audio")

	runner := &fakeRunner{
		run: func(ctx context.Context, name string, args ...string) (commandResult, error) {
			return commandResult{ExitCode: -1}, exec.ErrNotFound
		},
	}

	engine := NewEngineForTests("ffmpeg", runner, exec.LookPath, os.Stat, os.MkdirAll, os.Remove)
	res := engine.Run(context.Background(), Job{
		InputPath:  inputPath,
		OutputPath: filepath.Join(root, "song.mp3"),
		Options:    DefaultOptions(),
	})

	if !errors.Is(res.Err, ErrEngineNotFound) {
		t.Fatalf("error = %v, want ErrEngineNotFound", res.Err)
	}
}

// TestEngineRunOutputMissingAfterSuccess checks a zero-exit run without an
// output file is still reported as a failure.
func TestEngineRunOutputMissingAfterSuccess(t *testing.T) {
	root := t.TempDir()
	inputPath := filepath.Join(root, "song.wav")
	mustWriteFile(t, inputPath, "audio")

	runner := &fakeRunner{
		run: func(ctx context.Context, name string, args ...string) (commandResult, error) {
			return commandResult{ExitCode: 0}, nil
		},
	}

	engine := NewEngineForTests("ffmpeg", runner, exec.LookPath, os.Stat, os.MkdirAll, os.Remove)
	res := engine.Run(context.Background(), Job{
		InputPath:  inputPath,
		OutputPath: filepath.Join(root, "song.mp3"),
		Options:    DefaultOptions(),
	})

	if res.Success {
		t.Fatal("Run() succeeded with no output file")
	}
}

// TestEngineCheck checks PATH lookup success and failure.
func TestEngineCheck(t *testing.T) {
	engine := NewEngineForTests("ffmpeg", &fakeRunner{},
		func(string) (string, error) { return "/usr/bin/ffmpeg", nil },
		os.Stat, os.MkdirAll, os.Remove)
	if err := engine.Check(); err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	engine = NewEngineForTests("ffmpeg", &fakeRunner{},
		func(string) (string, error) { return "", exec.ErrNotFound },
		os.Stat, os.MkdirAll, os.Remove)
	if err := engine.Check(); !errors.Is(err, ErrEngineNotFound) {
		t.Fatalf("Check() error = %v, want ErrEngineNotFound", err)
	}
}
