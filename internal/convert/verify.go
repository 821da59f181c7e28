package convert

import (
	"fmt"

	"audio-converter/internal/inspect"
)

// VerifyOutput re-reads a successful job's output header and checks it
// against the requested parameters: one channel for mono jobs, and the
// requested sample rate when one was set. MP3 and Ogg headers expose no
// bit depth, so only channel count and rate are checked.
func VerifyOutput(res Result) error {
	if !res.Success {
		return fmt.Errorf("cannot verify a failed job")
	}

	info, err := inspect.File(res.Job.OutputPath)
	if err != nil {
		return fmt.Errorf("inspect output %s: %w", res.Job.OutputPath, err)
	}

	opts := res.Job.Options
	if opts.Channels == ChannelMono && info.Channels != 1 {
		return fmt.Errorf("%s: expected 1 channel, got %d", res.Job.OutputPath, info.Channels)
	}
	if opts.SampleRate > 0 && info.SampleRate != opts.SampleRate {
		return fmt.Errorf("%s: expected sample rate %d, got %d", res.Job.OutputPath, opts.SampleRate, info.SampleRate)
	}
	return nil
}
