package diagnostics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"audio-converter/internal/domain"
)

// itemByID finds one report item or fails the test.
func itemByID(t *testing.T, report domain.DiagnosticReport, id string) domain.DiagnosticItem {
	t.Helper()
	for _, item := range report.Items {
		if item.ID == id {
			return item
		}
	}
	t.Fatalf("report has no item %q", id)
	return domain.DiagnosticItem{}
}

// TestRunAllChecksPass checks a fully healthy environment.
func TestRunAllChecksPass(t *testing.T) {
	outputDir := t.TempDir()
	checker := NewCheckerForTests(
		func(name string) (string, error) { return "/usr/bin/" + name, nil },
		os.MkdirAll,
		os.CreateTemp,
		os.Remove,
	)

	report := checker.Run(domain.Settings{OutputDir: outputDir})

	if report.HasFailures {
		t.Fatalf("HasFailures = true, items = %+v", report.Items)
	}
	if len(report.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(report.Items))
	}
	for _, id := range []string{"tool_ffmpeg", "tool_ffprobe", "output_dir"} {
		if item := itemByID(t, report, id); item.Status != domain.DiagnosticStatusPass {
			t.Fatalf("item %s status = %q", id, item.Status)
		}
	}
}

// TestRunMissingTool checks a PATH miss fails that tool's item and the
// report overall.
func TestRunMissingTool(t *testing.T) {
	checker := NewCheckerForTests(
		func(name string) (string, error) {
			if name == "ffmpeg" {
				return "", errors.New("not found")
			}
			return "/usr/bin/" + name, nil
		},
		os.MkdirAll,
		os.CreateTemp,
		os.Remove,
	)

	report := checker.Run(domain.Settings{OutputDir: t.TempDir()})

	if !report.HasFailures {
		t.Fatal("HasFailures = false")
	}
	if item := itemByID(t, report, "tool_ffmpeg"); item.Status != domain.DiagnosticStatusFail {
		t.Fatalf("ffmpeg status = %q, want fail", item.Status)
	}
	if item := itemByID(t, report, "tool_ffprobe"); item.Status != domain.DiagnosticStatusPass {
		t.Fatalf("ffprobe status = %q, want pass", item.Status)
	}
}

// TestRunEmptyOutputDir checks a blank directory fails its item.
func TestRunEmptyOutputDir(t *testing.T) {
	checker := NewCheckerForTests(
		func(name string) (string, error) { return "/usr/bin/" + name, nil },
		os.MkdirAll,
		os.CreateTemp,
		os.Remove,
	)

	report := checker.Run(domain.Settings{OutputDir: "   "})

	if item := itemByID(t, report, "output_dir"); item.Status != domain.DiagnosticStatusFail {
		t.Fatalf("output_dir status = %q, want fail", item.Status)
	}
}

// TestRunUnwritableOutputDir checks a failed write probe fails the item and
// that the probe file is cleaned up on success elsewhere.
func TestRunUnwritableOutputDir(t *testing.T) {
	checker := NewCheckerForTests(
		func(name string) (string, error) { return "/usr/bin/" + name, nil },
		func(string, os.FileMode) error { return nil },
		func(string, string) (*os.File, error) { return nil, errors.New("permission denied") },
		os.Remove,
	)

	report := checker.Run(domain.Settings{OutputDir: "/readonly"})

	if item := itemByID(t, report, "output_dir"); item.Status != domain.DiagnosticStatusFail {
		t.Fatalf("output_dir status = %q, want fail", item.Status)
	}
}

// TestRunRemovesWriteProbe checks the temporary write-check file does not
// linger in the output directory.
func TestRunRemovesWriteProbe(t *testing.T) {
	outputDir := t.TempDir()
	checker := NewCheckerForTests(
		func(name string) (string, error) { return "/usr/bin/" + name, nil },
		os.MkdirAll,
		os.CreateTemp,
		os.Remove,
	)

	checker.Run(domain.Settings{OutputDir: outputDir})

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, entry := range entries {
		t.Fatalf("leftover file in output dir: %s", filepath.Join(outputDir, entry.Name()))
	}
}
