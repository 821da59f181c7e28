package inspect

import (
	"bytes"
	"fmt"
	"io"
	"time"

	mp3 "github.com/hajimehoshi/go-mp3"
)

// MP3 reads the stream parameters of an MP3 file. The go-mp3 decoder always
// outputs 16-bit stereo PCM regardless of the source channel layout, so the
// channel count is taken from the first frame header instead.
func MP3(r io.Reader) (Info, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Info{}, err
	}

	d, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("read mp3 header: %w", err)
	}

	info := Info{
		Format:     "mp3",
		Channels:   mp3ChannelCount(data),
		SampleRate: d.SampleRate(),
	}

	// Length reports decoded bytes: 4 per frame (16-bit stereo output).
	if frames := d.Length() / 4; frames > 0 && d.SampleRate() > 0 {
		seconds := float64(frames) / float64(d.SampleRate())
		info.Duration = time.Duration(seconds * float64(time.Second))
	}
	return info, nil
}

// mp3ChannelCount scans for the first MPEG frame header and reads its
// channel mode. Mode 3 is single channel; everything else is two channels.
// Returns 0 when no frame header is found.
func mp3ChannelCount(data []byte) int {
	data = skipID3v2(data)

	for i := 0; i+3 < len(data); i++ {
		if data[i] != 0xFF || data[i+1]&0xE0 != 0xE0 {
			continue
		}
		version := (data[i+1] >> 3) & 0x3
		layer := (data[i+1] >> 1) & 0x3
		bitrate := data[i+2] >> 4
		if version == 1 || layer == 0 || bitrate == 0xF {
			continue // Reserved values: not a real frame header.
		}
		if mode := data[i+3] >> 6; mode == 3 {
			return 1
		}
		return 2
	}
	return 0
}

// skipID3v2 advances past a leading ID3v2 tag when one is present.
func skipID3v2(data []byte) []byte {
	if len(data) < 10 || !bytes.HasPrefix(data, []byte("ID3")) {
		return data
	}
	// Tag size is a 28-bit synchsafe integer in bytes 6-9.
	size := int(data[6]&0x7F)<<21 | int(data[7]&0x7F)<<14 | int(data[8]&0x7F)<<7 | int(data[9]&0x7F)
	if 10+size > len(data) {
		return data
	}
	return data[10+size:]
}
