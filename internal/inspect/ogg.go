package inspect

import (
	"fmt"
	"io"
	"time"

	"github.com/jfreymuth/oggvorbis"
)

// Ogg reads the identification header of an Ogg Vorbis stream. Duration is
// only available when the reader is seekable.
func Ogg(r io.Reader) (Info, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return Info{}, fmt.Errorf("read ogg vorbis header: %w", err)
	}

	info := Info{
		Format:     "ogg",
		Channels:   dec.Channels(),
		SampleRate: dec.SampleRate(),
	}
	if frames := dec.Length(); frames > 0 && dec.SampleRate() > 0 {
		seconds := float64(frames) / float64(dec.SampleRate())
		info.Duration = time.Duration(seconds * float64(time.Second))
	}
	return info, nil
}
