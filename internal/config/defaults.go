package config

import (
	"os"
	"path/filepath"

	"audio-converter/internal/domain"
)

// DefaultSettings returns baseline conversion settings for first launch.
func DefaultSettings() domain.Settings {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return domain.Settings{
		OutputDir:       filepath.Join(homeDir, "Music", "Converted"),
		Format:          "wav",
		SampleRate:      0, // Keep the source rate.
		TargetLoudness:  -16.0,
		WavBitDepth:     16,
		MP3BitrateKbps:  192,
		FlacCompression: 5,
		Workers:         1,
	}
}
