package inspect

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// writeTestWAV encodes a silent mono WAV file and returns its path.
func writeTestWAV(t *testing.T, sampleRate, bitDepth, channels, numSamples int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	enc := wav.NewEncoder(f, sampleRate, bitDepth, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           make([]int, numSamples*channels),
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
	return path
}

// TestWAVReadsHeader checks channel count, rate, depth, and duration come
// back from a real RIFF header.
func TestWAVReadsHeader(t *testing.T) {
	path := writeTestWAV(t, 44100, 16, 1, 4410)

	info, err := File(path)
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}

	if info.Format != "wav" {
		t.Fatalf("format = %q, want wav", info.Format)
	}
	if info.Channels != 1 {
		t.Fatalf("channels = %d, want 1", info.Channels)
	}
	if info.SampleRate != 44100 {
		t.Fatalf("sample rate = %d, want 44100", info.SampleRate)
	}
	if info.BitDepth != 16 {
		t.Fatalf("bit depth = %d, want 16", info.BitDepth)
	}
	want := 100 * time.Millisecond
	if diff := info.Duration - want; diff < -time.Millisecond || diff > time.Millisecond {
		t.Fatalf("duration = %v, want about %v", info.Duration, want)
	}
}

// TestWAVStereo checks a two-channel header.
func TestWAVStereo(t *testing.T) {
	path := writeTestWAV(t, 48000, 24, 2, 480)

	info, err := File(path)
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}
	if info.Channels != 2 {
		t.Fatalf("channels = %d, want 2", info.Channels)
	}
	if info.SampleRate != 48000 {
		t.Fatalf("sample rate = %d, want 48000", info.SampleRate)
	}
	if info.BitDepth != 24 {
		t.Fatalf("bit depth = %d, want 24", info.BitDepth)
	}
}

// TestWAVRejectsGarbage checks non-RIFF content is an error.
func TestWAVRejectsGarbage(t *testing.T) {
	if _, err := WAV(bytes.NewReader([]byte("this is not a wav file at all"))); err == nil {
		t.Fatal("WAV() succeeded for garbage input")
	}
}
