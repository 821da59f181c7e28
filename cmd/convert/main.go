// Command convert is the headless batch entrypoint for the audio converter.
// It parses flags, expands the positional files and directories into a job
// list, and runs the conversions through the engine without the GUI.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"audio-converter/internal/convert"
	"audio-converter/internal/diagnostics"
	"audio-converter/internal/domain"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	var (
		formatName  = fs.String("format", "wav", "Output format: wav | mp3 | flac")
		mono        = fs.Bool("mono", false, "Downmix stereo input to mono")
		sampleRate  = fs.Int("rate", 0, "Output sample rate in Hz (0 keeps the source rate)")
		normalize   = fs.Bool("normalize", false, "Apply loudness normalization")
		loudness    = fs.Float64("target", -16.0, "Loudness target in LUFS when normalizing")
		bitDepth    = fs.Int("bit-depth", 16, "WAV bit depth: 16 | 24 | 32")
		bitrate     = fs.Int("bitrate", 192, "MP3 bitrate in kbps: 128 | 192 | 256 | 320")
		compression = fs.Int("compression", 5, "FLAC compression level 0-8")
		outputDir   = fs.String("out", "", "Output directory (default: next to each input)")
		workers     = fs.Int("jobs", 1, "Parallel conversions")
		verify      = fs.Bool("verify", false, "Inspect each output after conversion")
		checkOnly   = fs.Bool("check", false, "Run dependency checks and exit")
	)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *checkOnly {
		return runCheck(*outputDir)
	}

	inputs, err := convert.Discover(fs.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "convert: %v\n", err)
		return 1
	}
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "convert: no audio files given")
		printUsage(fs)
		return 2
	}

	format, err := convert.ParseFormat(*formatName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "convert: %v\n", err)
		return 2
	}

	opts := convert.Options{
		Format:          format,
		Channels:        convert.ChannelKeep,
		SampleRate:      *sampleRate,
		Normalize:       *normalize,
		TargetLoudness:  *loudness,
		WavBitDepth:     *bitDepth,
		MP3BitrateKbps:  *bitrate,
		FlacCompression: *compression,
		OutputDir:       *outputDir,
	}
	if *mono {
		opts.Channels = convert.ChannelMono
	}

	jobsToRun, err := convert.BuildJobs(inputs, opts)
	if err != nil {
		var cfgErr *convert.ConfigError
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(os.Stderr, "convert: invalid -%s: %s\n", flagForField(cfgErr.Field), cfgErr.Reason)
			return 2
		}
		fmt.Fprintf(os.Stderr, "convert: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *workers < 1 {
		*workers = 1
	}

	batch := convert.Batch{
		Engine:  convert.NewEngine(),
		Workers: *workers,
		OnResult: func(res convert.Result) {
			printResult(res, *verify)
		},
	}

	_, stats, err := batch.Run(ctx, jobsToRun)
	if err != nil {
		if errors.Is(err, convert.ErrEngineNotFound) {
			fmt.Fprintln(os.Stderr, "convert: ffmpeg not found on PATH; install it or run with -check")
			return 1
		}
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "convert: cancelled")
			return 1
		}
		fmt.Fprintf(os.Stderr, "convert: %v\n", err)
		return 1
	}

	fmt.Printf("\n%d converted, %d failed, %d total\n", stats.Succeeded, stats.Failed, stats.Total)
	if stats.Failed > 0 {
		return 1
	}
	return 0
}

func printResult(res convert.Result, verify bool) {
	if !res.Success {
		fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", res.Job.InputPath, res.Err)
		if res.Stderr != "" {
			fmt.Fprintf(os.Stderr, "     %s\n", lastLine(res.Stderr))
		}
		return
	}

	fmt.Printf("ok   %s -> %s\n", res.Job.InputPath, res.Job.OutputPath)
	if verify {
		if err := convert.VerifyOutput(res); err != nil {
			fmt.Fprintf(os.Stderr, "     verify: %v\n", err)
		}
	}
}

// runCheck mirrors the GUI diagnostics panel for scripted use.
func runCheck(outputDir string) int {
	if outputDir == "" {
		outputDir = "."
	}
	checker := diagnostics.NewChecker()
	report := checker.Run(domain.Settings{OutputDir: outputDir})

	exitCode := 0
	for _, item := range report.Items {
		marker := "ok  "
		if item.Status == domain.DiagnosticStatusFail {
			marker = "FAIL"
			exitCode = 1
		}
		fmt.Printf("%s %s", marker, item.Name)
		if item.Message != "" {
			fmt.Printf(": %s", item.Message)
		}
		fmt.Println()
	}
	return exitCode
}

// flagForField maps option validation fields to the CLI flags that set them.
func flagForField(field string) string {
	switch field {
	case "sample rate":
		return "rate"
	case "loudness target":
		return "target"
	case "bit depth":
		return "bit-depth"
	case "compression level":
		return "compression"
	default:
		return strings.ReplaceAll(field, " ", "-")
	}
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return lines[len(lines)-1]
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintln(os.Stderr, "Usage: convert [flags] FILE_OR_DIR...")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Converts audio files with ffmpeg. Directories are scanned for audio files.")
	fmt.Fprintln(os.Stderr, "")
	fs.PrintDefaults()
}
