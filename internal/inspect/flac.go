package inspect

import (
	"fmt"
	"io"
	"time"

	"github.com/mewkiz/flac"
)

// FLAC parses the metadata blocks (no audio frames) and returns the stream
// parameters from STREAMINFO.
func FLAC(r io.Reader) (Info, error) {
	stream, err := flac.New(r)
	if err != nil {
		return Info{}, fmt.Errorf("parse flac metadata: %w", err)
	}

	si := stream.Info
	info := Info{
		Format:     "flac",
		Channels:   int(si.NChannels),
		SampleRate: int(si.SampleRate),
		BitDepth:   int(si.BitsPerSample),
	}
	if si.SampleRate > 0 && si.NSamples > 0 {
		seconds := float64(si.NSamples) / float64(si.SampleRate)
		info.Duration = time.Duration(seconds * float64(time.Second))
	}
	return info, nil
}
