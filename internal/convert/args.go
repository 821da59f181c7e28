package convert

import (
	"fmt"
	"strconv"
)

// BuildArgs constructs the complete ffmpeg argument list for one job:
// preamble, input, channel/rate/loudness handling, codec selection, and
// the destination path. The -y flag makes re-runs overwrite the previous
// output, so repeating a job is idempotent.
func BuildArgs(job Job) []string {
	opts := job.Options

	args := []string{
		"-hide_banner",
		"-nostdin",
		"-y",
		"-i", job.InputPath,
		"-vn",
	}

	if opts.Channels == ChannelMono {
		args = append(args, "-ac", "1")
	}
	if opts.SampleRate > 0 {
		args = append(args, "-ar", strconv.Itoa(opts.SampleRate))
	}
	if opts.Normalize {
		args = append(args, "-af", loudnormFilter(opts.TargetLoudness))
	}

	args = append(args, codecArgs(opts)...)
	return append(args, job.OutputPath)
}

// loudnormFilter builds the EBU R128 loudness normalization filter for the
// requested integrated loudness target.
func loudnormFilter(target float64) string {
	return fmt.Sprintf("loudnorm=I=%.1f:TP=-1.5:LRA=11", target)
}

// codecArgs selects the output codec and its format-specific parameters.
func codecArgs(opts Options) []string {
	switch opts.Format {
	case FormatWAV:
		codec := "pcm_s16le"
		switch opts.WavBitDepth {
		case 24:
			codec = "pcm_s24le"
		case 32:
			codec = "pcm_s32le"
		}
		return []string{"-c:a", codec}

	case FormatMP3:
		return []string{
			"-c:a", "libmp3lame",
			"-b:a", strconv.Itoa(opts.MP3BitrateKbps) + "k",
		}

	case FormatFLAC:
		return []string{
			"-c:a", "flac",
			"-compression_level", strconv.Itoa(opts.FlacCompression),
		}
	}
	return nil
}
