package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	goruntime "runtime"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"audio-converter/internal/config"
	"audio-converter/internal/convert"
	"audio-converter/internal/diagnostics"
	"audio-converter/internal/domain"
	"audio-converter/internal/inspect"
	"audio-converter/internal/jobs"
	"audio-converter/internal/probe"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

var audioDialogFilter = []wailsruntime.FileFilter{
	{
		DisplayName: "Audio files",
		Pattern:     "*.wav;*.mp3;*.flac;*.aac;*.ogg;*.m4a;*.aiff;*.opus;*.wma",
	},
	{
		DisplayName: "All files",
		Pattern:     "*",
	},
}

// App wires configuration, jobs, the conversion engine, and UI runtime
// callbacks.
type App struct {
	Settings    domain.Settings
	Store       config.Store
	Jobs        *jobs.Manager
	Converter   converter
	Diagnostics domain.DiagnosticReport
	assets      fs.FS
	checker     *diagnostics.Checker
	prober      *probe.Prober

	mu          sync.Mutex
	activeJobID string
	cancel      context.CancelFunc
	events      *jobs.EventBus
	runtimeCtx  context.Context
}

// converter isolates batch execution behind an interface. OnResult is called
// once per finished file, serialized across workers.
type converter interface {
	Run(ctx context.Context, batch []convert.Job, workers int, onResult func(convert.Result)) (convert.Stats, error)
}

// engineConverter runs batches against the real ffmpeg engine.
type engineConverter struct{}

// Run executes the batch with a fresh engine and bounded workers.
func (engineConverter) Run(ctx context.Context, batch []convert.Job, workers int, onResult func(convert.Result)) (convert.Stats, error) {
	b := &convert.Batch{
		Engine:   convert.NewEngine(),
		Workers:  workers,
		OnResult: onResult,
	}
	_, stats, err := b.Run(ctx, batch)
	return stats, err
}

// New builds the application with persisted settings and startup diagnostics.
func New() (*App, error) {
	return NewWithAssets(nil)
}

// NewWithAssets builds the application and optionally configures embedded
// frontend assets.
func NewWithAssets(assets fs.FS) (*App, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve user home: %w", err)
	}
	if err := ensureLocalBinOnPATH(homeDir); err != nil {
		return nil, fmt.Errorf("prepare local tool path: %w", err)
	}

	store := config.NewJSONStore(filepath.Join(homeDir, ".audio-converter", "settings.json"))
	settings, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	checker := diagnostics.NewChecker()
	report := checker.Run(settings)

	return &App{
		Settings:    settings,
		Store:       store,
		Jobs:        jobs.NewManager(),
		Converter:   engineConverter{},
		Diagnostics: report,
		assets:      assets,
		checker:     checker,
		prober:      probe.NewProber(),
		events:      jobs.NewEventBus(1000),
	}, nil
}

// Run starts the Wails desktop application and binds backend methods.
func (a *App) Run() error {
	assetOptions := &assetserver.Options{}
	if a.assets != nil {
		assetOptions.Assets = a.assets
	} else {
		assetOptions.Handler = http.FileServer(http.Dir("./frontend"))
	}

	return wails.Run(&options.App{
		Title:       "Audio Converter",
		Width:       980,
		Height:      720,
		AssetServer: assetOptions,
		OnStartup:   a.Startup,
		OnShutdown: func(ctx context.Context) {
			a.mu.Lock()
			defer a.mu.Unlock()
			a.runtimeCtx = nil
		},
		Bind: []interface{}{a},
	})
}

// Startup stores the Wails runtime context for push events.
func (a *App) Startup(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.runtimeCtx = ctx
}

// GetDiagnostics returns the latest cached diagnostics report.
func (a *App) GetDiagnostics() domain.DiagnosticReport {
	return a.Diagnostics
}

// GetSettings loads and returns the latest persisted settings.
func (a *App) GetSettings() (domain.Settings, error) {
	settings, err := a.Store.Load()
	if err != nil {
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}

	a.mu.Lock()
	a.Settings = settings
	a.mu.Unlock()

	return settings, nil
}

// SaveSettings validates, persists, and caches settings, then refreshes
// diagnostics. Invalid conversion options are rejected before anything is
// written.
func (a *App) SaveSettings(settings domain.Settings) (domain.Settings, error) {
	normalized := normalizeSettings(settings)
	if _, err := OptionsFromSettings(normalized); err != nil {
		return domain.Settings{}, err
	}
	if err := a.Store.Save(normalized); err != nil {
		return domain.Settings{}, fmt.Errorf("save settings: %w", err)
	}

	a.mu.Lock()
	a.Settings = normalized
	if a.checker != nil {
		a.Diagnostics = a.checker.Run(normalized)
	}
	a.mu.Unlock()

	return normalized, nil
}

// RefreshDiagnostics reloads settings and reruns dependency checks.
func (a *App) RefreshDiagnostics() (domain.DiagnosticReport, error) {
	settings, err := a.Store.Load()
	if err != nil {
		return domain.DiagnosticReport{}, fmt.Errorf("load settings: %w", err)
	}

	a.Settings = settings
	a.Diagnostics = a.checker.Run(settings)
	return a.Diagnostics, nil
}

// ListPresets returns the option lists for the conversion form.
func (a *App) ListPresets() domain.PresetCatalog {
	return presetCatalog()
}

// PickInputFiles opens a native multi-select dialog for audio files.
func (a *App) PickInputFiles() ([]string, error) {
	ctx, err := a.runtimeContext()
	if err != nil {
		return nil, err
	}

	paths, err := wailsruntime.OpenMultipleFilesDialog(ctx, wailsruntime.OpenDialogOptions{
		Title:   "Select audio files",
		Filters: audioDialogFilter,
	})
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out, nil
}

// PickInputDirectory opens a native directory picker; its audio files are
// discovered recursively.
func (a *App) PickInputDirectory() ([]string, error) {
	ctx, err := a.runtimeContext()
	if err != nil {
		return nil, err
	}

	dir, err := wailsruntime.OpenDirectoryDialog(ctx, wailsruntime.OpenDialogOptions{
		Title: "Select folder with audio files",
	})
	if err != nil {
		return nil, err
	}
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, nil
	}

	return convert.Discover([]string{dir})
}

// PickOutputDirectory opens a native directory picker for converted files.
func (a *App) PickOutputDirectory() (string, error) {
	ctx, err := a.runtimeContext()
	if err != nil {
		return "", err
	}

	path, err := wailsruntime.OpenDirectoryDialog(ctx, wailsruntime.OpenDialogOptions{
		Title: "Select output directory",
	})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(path), nil
}

// GetAudioInfo inspects one input file for the info panel. It prefers a
// single ffprobe call and falls back to native header readers when ffprobe
// is unavailable.
func (a *App) GetAudioInfo(path string) (domain.AudioInfo, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return domain.AudioInfo{}, fmt.Errorf("input path is required")
	}
	if _, err := os.Stat(path); err != nil {
		return domain.AudioInfo{}, fmt.Errorf("cannot access input: %w", err)
	}

	ctx := context.Background()
	if pi, err := a.prober.Probe(ctx, path); err == nil {
		return domain.AudioInfo{
			Path:            path,
			Container:       pi.Container,
			Codec:           pi.Codec,
			Channels:        pi.Channels,
			SampleRate:      pi.SampleRate,
			BitDepth:        pi.BitDepth,
			DurationSeconds: pi.Duration.Seconds(),
			Source:          "ffprobe",
		}, nil
	}

	hi, err := inspect.File(path)
	if err != nil {
		return domain.AudioInfo{}, err
	}
	return domain.AudioInfo{
		Path:            path,
		Container:       hi.Format,
		Channels:        hi.Channels,
		SampleRate:      hi.SampleRate,
		BitDepth:        hi.BitDepth,
		DurationSeconds: hi.Duration.Seconds(),
		Source:          "header",
	}, nil
}

// OpenOutputFolder opens the given path (or configured output dir) in the
// file manager.
func (a *App) OpenOutputFolder(path string) error {
	target := strings.TrimSpace(path)
	if target == "" {
		a.mu.Lock()
		target = a.Settings.OutputDir
		a.mu.Unlock()
	}
	if target == "" {
		return fmt.Errorf("output path is empty")
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	openPath := target
	if !info.IsDir() {
		openPath = filepath.Dir(target)
	}

	return openInFileManager(openPath)
}

// StartConversion builds one job per input file and runs the batch
// asynchronously. Only one batch may run at a time.
func (a *App) StartConversion(inputs []string) (domain.Job, error) {
	if len(inputs) == 0 {
		return domain.Job{}, fmt.Errorf("no input files selected")
	}

	settings, err := a.Store.Load()
	if err != nil {
		return domain.Job{}, fmt.Errorf("load settings: %w", err)
	}

	opts, err := OptionsFromSettings(settings)
	if err != nil {
		return domain.Job{}, err
	}

	batch, err := convert.BuildJobs(inputs, opts)
	if err != nil {
		return domain.Job{}, err
	}

	jobID := uuid.NewString()
	if err := a.Jobs.Start(jobID, len(batch)); err != nil {
		return domain.Job{}, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.mu.Lock()
	a.activeJobID = jobID
	a.cancel = cancel
	a.Settings = settings
	a.mu.Unlock()

	a.publishStatus(jobID, domain.JobStatusRunning, fmt.Sprintf("Converting %d file(s)", len(batch)))

	go a.runConversionJob(ctx, jobID, batch, settings.Workers)
	return a.Jobs.Current(), nil
}

// CancelConversion cancels the currently running batch, if any.
func (a *App) CancelConversion() error {
	a.mu.Lock()
	cancel := a.cancel
	activeJobID := a.activeJobID
	a.mu.Unlock()

	if cancel == nil {
		return jobs.ErrNoRunningJob
	}

	cancel()
	if err := a.Jobs.Cancel(); err != nil && !errors.Is(err, jobs.ErrNoRunningJob) {
		return err
	}

	if activeJobID != "" {
		a.publishStatus(activeJobID, domain.JobStatusCancelled, "Cancellation requested")
	}
	return nil
}

// CurrentJob returns current batch metadata and progress.
func (a *App) CurrentJob() domain.Job {
	return a.Jobs.Current()
}

// JobEvents returns all events with sequence greater than sinceSeq.
func (a *App) JobEvents(sinceSeq int64) []jobs.Event {
	return a.events.Since(sinceSeq)
}

// runConversionJob executes the batch and maps outcomes to job events.
func (a *App) runConversionJob(ctx context.Context, jobID string, batch []convert.Job, workers int) {
	onResult := func(res convert.Result) {
		a.Jobs.RecordResult(res.Success)
		current := a.Jobs.Current()

		event := jobs.Event{
			JobID:      jobID,
			Type:       jobs.EventTypeFile,
			InputPath:  res.Job.InputPath,
			OutputPath: res.Job.OutputPath,
			ExitCode:   res.ExitCode,
			Completed:  current.Completed,
			Failed:     current.Failed,
			Total:      current.Total,
		}
		if res.Success {
			event.Message = "Converted"
		} else {
			event.Message = "Failed"
			event.Stderr = res.Stderr
			if res.Err != nil && res.Stderr == "" {
				event.Message = res.Err.Error()
			}
		}
		a.publishEvent(event)
	}

	stats, err := a.Converter.Run(ctx, batch, workers, onResult)
	if err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			_ = a.Jobs.Transition(domain.JobStatusCancelled)
			a.publishStatus(jobID, domain.JobStatusCancelled, "Conversion cancelled")
			a.clearActiveJob(jobID)
			return
		}

		// Engine missing or batch-level failure: no file was processed.
		_ = a.Jobs.Transition(domain.JobStatusFailed)
		a.publishStatus(jobID, domain.JobStatusFailed, "Conversion failed")
		a.publishEvent(jobs.Event{
			JobID:   jobID,
			Type:    jobs.EventTypeError,
			Status:  domain.JobStatusFailed,
			Message: err.Error(),
		})
		a.clearActiveJob(jobID)
		return
	}

	if ctx.Err() != nil {
		_ = a.Jobs.Transition(domain.JobStatusCancelled)
		a.publishStatus(jobID, domain.JobStatusCancelled, "Conversion cancelled")
		a.clearActiveJob(jobID)
		return
	}

	status := domain.JobStatusDone
	message := fmt.Sprintf("Done: %d converted, %d failed", stats.Succeeded, stats.Failed)
	if stats.Failed > 0 {
		status = domain.JobStatusFailed
	}
	if err := a.Jobs.Transition(status); err == nil {
		a.publishStatus(jobID, status, message)
	}
	a.clearActiveJob(jobID)
}

// publishStatus sends a normalized status event with progress counters.
func (a *App) publishStatus(jobID string, status domain.JobStatus, message string) {
	current := a.Jobs.Current()
	a.publishEvent(jobs.Event{
		JobID:     jobID,
		Type:      jobs.EventTypeStatus,
		Status:    status,
		Message:   message,
		Completed: current.Completed,
		Failed:    current.Failed,
		Total:     current.Total,
	})
}

// publishEvent stores event history and emits runtime push notifications.
func (a *App) publishEvent(event jobs.Event) {
	published := a.events.Publish(event)

	a.mu.Lock()
	ctx := a.runtimeCtx
	a.mu.Unlock()
	if ctx != nil {
		wailsruntime.EventsEmit(ctx, "job:event", published)
	}
}

// clearActiveJob clears cancellation handles for completed job IDs.
func (a *App) clearActiveJob(jobID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.activeJobID == jobID {
		a.activeJobID = ""
		a.cancel = nil
	}
}

// runtimeContext returns the current Wails runtime context for dialog APIs.
func (a *App) runtimeContext() (context.Context, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.runtimeCtx == nil {
		return nil, fmt.Errorf("runtime context is not initialized")
	}
	return a.runtimeCtx, nil
}

// OptionsFromSettings maps persisted settings to validated conversion
// options.
func OptionsFromSettings(settings domain.Settings) (convert.Options, error) {
	format, err := convert.ParseFormat(settings.Format)
	if err != nil {
		return convert.Options{}, err
	}

	channels := convert.ChannelKeep
	if settings.Mono {
		channels = convert.ChannelMono
	}

	opts := convert.Options{
		Format:          format,
		Channels:        channels,
		SampleRate:      settings.SampleRate,
		Normalize:       settings.Normalize,
		TargetLoudness:  settings.TargetLoudness,
		WavBitDepth:     settings.WavBitDepth,
		MP3BitrateKbps:  settings.MP3BitrateKbps,
		FlacCompression: settings.FlacCompression,
		OutputDir:       settings.OutputDir,
	}
	if err := opts.Validate(); err != nil {
		return convert.Options{}, err
	}
	return opts, nil
}

// normalizeSettings trims user inputs and fills defaults for zero values.
func normalizeSettings(settings domain.Settings) domain.Settings {
	settings.OutputDir = strings.TrimSpace(settings.OutputDir)
	settings.Format = strings.ToLower(strings.TrimSpace(settings.Format))
	if settings.Format == "" {
		settings.Format = "wav"
	}
	if settings.TargetLoudness == 0 {
		settings.TargetLoudness = -16.0
	}
	if settings.WavBitDepth == 0 {
		settings.WavBitDepth = 16
	}
	if settings.MP3BitrateKbps == 0 {
		settings.MP3BitrateKbps = 192
	}
	if settings.Workers == 0 {
		settings.Workers = 1
	}
	return settings
}

// openInFileManager launches the platform file explorer for the provided
// path.
func openInFileManager(path string) error {
	var cmd *exec.Cmd
	switch goruntime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("explorer", filepath.Clean(path))
	default:
		cmd = exec.Command("xdg-open", path)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch file manager: %w", err)
	}
	return nil
}
