// Package convert builds conversion jobs and invokes the external ffmpeg
// engine to run them.
//
// The package is a thin orchestration layer: BuildJobs turns input paths and
// an Options struct into one immutable Job per file, BuildArgs maps a Job to
// an ffmpeg argument list, and Engine/Batch execute jobs as child processes
// and collect per-file Results. All signal processing (downmix, resampling,
// loudness normalization, codec encoding) is delegated to ffmpeg.
package convert
