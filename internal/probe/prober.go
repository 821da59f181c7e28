// Package probe inspects input media via a single ffprobe JSON invocation.
package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

// Info holds the audio stream and container parameters of one input file.
type Info struct {
	Container  string
	Codec      string
	Channels   int
	SampleRate int
	BitDepth   int
	Duration   time.Duration
	BitRate    int64
}

// ffprobe emits numbers as JSON strings; these mirror its document shape.
type probeOutput struct {
	Streams []probeStream `json:"streams"`
	Format  probeFormat   `json:"format"`
}

type probeStream struct {
	CodecName        string `json:"codec_name"`
	Channels         int    `json:"channels"`
	SampleRate       string `json:"sample_rate"`
	BitsPerSample    int    `json:"bits_per_sample"`
	BitsPerRawSample string `json:"bits_per_raw_sample"`
}

type probeFormat struct {
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	BitRate    string `json:"bit_rate"`
}

// runner abstracts process execution for testability.
type runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execProbeRunner executes ffprobe via os/exec and returns stdout.
type execProbeRunner struct{}

func (execProbeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("ffprobe exited with %d: %s", exitErr.ExitCode(), stderr.String())
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

// Prober runs ffprobe against input files.
type Prober struct {
	ffprobePath string
	runner      runner
}

// NewProber constructs the production prober.
func NewProber() *Prober {
	return &Prober{ffprobePath: "ffprobe", runner: execProbeRunner{}}
}

// NewProberForTests constructs a prober with an injectable runner.
func NewProberForTests(ffprobePath string, r runner) *Prober {
	return &Prober{ffprobePath: ffprobePath, runner: r}
}

// Probe runs a single ffprobe JSON call for the first audio stream of path.
func (p *Prober) Probe(ctx context.Context, path string) (*Info, error) {
	args := []string{
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		"-select_streams", "a:0",
		path,
	}

	out, err := p.runner.Run(ctx, p.ffprobePath, args...)
	if err != nil {
		return nil, err
	}

	var doc probeOutput
	if err := json.Unmarshal(out, &doc); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}
	if len(doc.Streams) == 0 {
		return nil, fmt.Errorf("no audio stream found in %s", path)
	}

	s := doc.Streams[0]
	info := &Info{
		Container:  doc.Format.FormatName,
		Codec:      s.CodecName,
		Channels:   s.Channels,
		SampleRate: atoiSafe(s.SampleRate),
		BitDepth:   s.BitsPerSample,
	}
	if info.BitDepth == 0 {
		info.BitDepth = atoiSafe(s.BitsPerRawSample)
	}
	if secs, err := strconv.ParseFloat(doc.Format.Duration, 64); err == nil {
		info.Duration = time.Duration(secs * float64(time.Second))
	}
	info.BitRate = int64(atoiSafe(doc.Format.BitRate))

	return info, nil
}

// atoiSafe parses the string-typed numbers ffprobe emits, returning zero for
// empty or malformed values.
func atoiSafe(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
