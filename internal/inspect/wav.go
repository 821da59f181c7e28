package inspect

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"
)

// WAV reads the RIFF/WAVE header and returns the stream parameters.
func WAV(r io.ReadSeeker) (Info, error) {
	d := wav.NewDecoder(r)
	d.ReadInfo()
	if err := d.Err(); err != nil {
		return Info{}, fmt.Errorf("read wav header: %w", err)
	}
	if !d.IsValidFile() {
		return Info{}, fmt.Errorf("not a valid wav file")
	}

	info := Info{
		Format:     "wav",
		Channels:   int(d.NumChans),
		SampleRate: int(d.SampleRate),
		BitDepth:   int(d.BitDepth),
	}
	if dur, err := d.Duration(); err == nil {
		info.Duration = dur
	}
	return info, nil
}
