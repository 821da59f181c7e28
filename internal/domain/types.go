package domain

// JobStatus tracks the lifecycle of a single batch conversion job.
type JobStatus string

const (
	JobStatusIdle      JobStatus = "idle"
	JobStatusRunning   JobStatus = "running"
	JobStatusDone      JobStatus = "done"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// Settings contains the user-selectable conversion configuration that is
// persisted between runs. Zero SampleRate keeps the source rate.
type Settings struct {
	OutputDir       string  `json:"outputDir"`
	Format          string  `json:"format"`
	Mono            bool    `json:"mono"`
	SampleRate      int     `json:"sampleRate"`
	Normalize       bool    `json:"normalize"`
	TargetLoudness  float64 `json:"targetLoudness"`
	WavBitDepth     int     `json:"wavBitDepth"`
	MP3BitrateKbps  int     `json:"mp3BitrateKbps"`
	FlacCompression int     `json:"flacCompression"`
	Workers         int     `json:"workers"`
}

// Job stores the identity, lifecycle status, and progress counters of the
// current batch.
type Job struct {
	ID        string    `json:"id"`
	Status    JobStatus `json:"status"`
	Total     int       `json:"total"`
	Completed int       `json:"completed"`
	Failed    int       `json:"failed"`
}

// AudioInfo describes one input file's audio stream, shown in the UI when a
// file is selected. Source records which reader produced it ("ffprobe" or
// "header").
type AudioInfo struct {
	Path            string  `json:"path"`
	Container       string  `json:"container,omitempty"`
	Codec           string  `json:"codec,omitempty"`
	Channels        int     `json:"channels"`
	SampleRate      int     `json:"sampleRate"`
	BitDepth        int     `json:"bitDepth,omitempty"`
	DurationSeconds float64 `json:"durationSeconds"`
	Source          string  `json:"source"`
}
