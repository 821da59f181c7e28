package convert

import (
	"fmt"
	"strings"
)

// Format is the target output format.
type Format string

const (
	FormatWAV  Format = "wav"
	FormatMP3  Format = "mp3"
	FormatFLAC Format = "flac"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "wav":
		return FormatWAV, nil
	case "mp3":
		return FormatMP3, nil
	case "flac":
		return FormatFLAC, nil
	}
	return "", &ConfigError{Field: "format", Reason: fmt.Sprintf("unrecognized format %q (want wav, mp3, or flac)", raw)}
}

// Ext returns the output file extension without the leading dot.
func (f Format) Ext() string {
	return string(f)
}

// ChannelMode selects the output channel handling.
type ChannelMode string

const (
	ChannelKeep ChannelMode = "keep" // Keep the source channel count.
	ChannelMono ChannelMode = "mono" // Downmix to a single channel.
)

// Loudness target bounds accepted by ffmpeg's loudnorm filter.
const (
	loudnessMin = -70.0
	loudnessMax = -5.0
)

// MP3BitratesKbps lists the selectable MP3 bitrates.
var MP3BitratesKbps = []int{128, 192, 256, 320}

// WavBitDepths lists the selectable WAV bit depths.
var WavBitDepths = []int{16, 24, 32}

// SampleRates lists the sample rates offered in the UI. Any positive rate is
// accepted from the CLI.
var SampleRates = []int{44100, 48000, 96000}

// Options enumerates every recognized conversion setting. Zero SampleRate
// keeps the source rate; empty OutputDir writes next to each input file.
type Options struct {
	Format          Format
	Channels        ChannelMode
	SampleRate      int
	Normalize       bool
	TargetLoudness  float64 // Integrated loudness target in LUFS.
	WavBitDepth     int
	MP3BitrateKbps  int
	FlacCompression int
	OutputDir       string
}

// DefaultOptions returns the baseline conversion settings.
func DefaultOptions() Options {
	return Options{
		Format:          FormatWAV,
		Channels:        ChannelKeep,
		TargetLoudness:  -16.0,
		WavBitDepth:     16,
		MP3BitrateKbps:  192,
		FlacCompression: 5,
	}
}

// Validate checks every field and returns a *ConfigError describing the
// first problem found. It never touches the filesystem.
func (o Options) Validate() error {
	switch o.Format {
	case FormatWAV, FormatMP3, FormatFLAC:
	default:
		return &ConfigError{Field: "format", Reason: fmt.Sprintf("unrecognized format %q (want wav, mp3, or flac)", string(o.Format))}
	}

	switch o.Channels {
	case ChannelKeep, ChannelMono:
	default:
		return &ConfigError{Field: "channels", Reason: fmt.Sprintf("unrecognized channel mode %q (want keep or mono)", string(o.Channels))}
	}

	if o.SampleRate < 0 {
		return &ConfigError{Field: "sample rate", Reason: fmt.Sprintf("must be a positive integer, got %d", o.SampleRate)}
	}

	if o.Normalize {
		if o.TargetLoudness >= 0 {
			return &ConfigError{Field: "loudness target", Reason: fmt.Sprintf("must be negative, got %.1f", o.TargetLoudness)}
		}
		if o.TargetLoudness < loudnessMin || o.TargetLoudness > loudnessMax {
			return &ConfigError{Field: "loudness target", Reason: fmt.Sprintf("%.1f LUFS is outside the supported range [%.0f, %.0f]", o.TargetLoudness, loudnessMin, loudnessMax)}
		}
	}

	switch o.Format {
	case FormatWAV:
		if !containsInt(WavBitDepths, o.WavBitDepth) {
			return &ConfigError{Field: "bit depth", Reason: fmt.Sprintf("must be one of %v, got %d", WavBitDepths, o.WavBitDepth)}
		}
	case FormatMP3:
		if !containsInt(MP3BitratesKbps, o.MP3BitrateKbps) {
			return &ConfigError{Field: "bitrate", Reason: fmt.Sprintf("must be one of %v kbps, got %d", MP3BitratesKbps, o.MP3BitrateKbps)}
		}
	case FormatFLAC:
		if o.FlacCompression < 0 || o.FlacCompression > 8 {
			return &ConfigError{Field: "compression level", Reason: fmt.Sprintf("must be between 0 and 8, got %d", o.FlacCompression)}
		}
	}

	return nil
}

func containsInt(values []int, v int) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
