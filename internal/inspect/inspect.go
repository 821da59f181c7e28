// Package inspect reads audio stream parameters directly from file headers.
//
// It backs the UI's audio info panel when ffprobe is unavailable and the
// output verification step after conversions. It only parses container and
// stream headers; it never decodes or transforms audio beyond what the
// format requires to expose its parameters.
package inspect

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Info describes the audio stream of a file as read from its headers.
// BitDepth is zero for formats that do not expose one (MP3, Ogg Vorbis).
type Info struct {
	Format     string
	Channels   int
	SampleRate int
	BitDepth   int
	Duration   time.Duration
}

// ErrUnsupportedFormat is returned for extensions this package cannot read.
var ErrUnsupportedFormat = fmt.Errorf("unsupported audio format")

// File opens path and dispatches to the reader for its extension.
func File(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return WAV(f)
	case ".flac":
		return FLAC(f)
	case ".mp3":
		return MP3(f)
	case ".ogg":
		return Ogg(f)
	}
	return Info{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
}
