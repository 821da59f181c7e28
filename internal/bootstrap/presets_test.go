package bootstrap

import (
	"testing"

	"audio-converter/internal/convert"
)

// TestPresetCatalogCoversAllFormats checks every conversion format has a
// preset with a valid default parameter.
func TestPresetCatalogCoversAllFormats(t *testing.T) {
	catalog := presetCatalog()

	if len(catalog.Formats) != 3 {
		t.Fatalf("formats = %d, want 3", len(catalog.Formats))
	}
	if len(catalog.SampleRates) == 0 {
		t.Fatal("sample rates are empty")
	}

	for _, preset := range catalog.Formats {
		if _, err := convert.ParseFormat(preset.ID); err != nil {
			t.Fatalf("preset %q is not a known format: %v", preset.ID, err)
		}
		if preset.Extension != preset.ID {
			t.Fatalf("preset %q extension = %q", preset.ID, preset.Extension)
		}
		if len(preset.ParamValues) == 0 {
			t.Fatalf("preset %q has no parameter values", preset.ID)
		}

		found := false
		for _, v := range preset.ParamValues {
			if v == preset.DefaultParam {
				found = true
			}
		}
		if !found {
			t.Fatalf("preset %q default %d not among values %v", preset.ID, preset.DefaultParam, preset.ParamValues)
		}
	}
}

// TestPresetDefaultsValidate checks each preset's default parameter passes
// option validation for its format.
func TestPresetDefaultsValidate(t *testing.T) {
	for _, preset := range presetCatalog().Formats {
		opts := convert.DefaultOptions()
		opts.Format = convert.Format(preset.ID)
		switch opts.Format {
		case convert.FormatWAV:
			opts.WavBitDepth = preset.DefaultParam
		case convert.FormatMP3:
			opts.MP3BitrateKbps = preset.DefaultParam
		case convert.FormatFLAC:
			opts.FlacCompression = preset.DefaultParam
		}
		if err := opts.Validate(); err != nil {
			t.Fatalf("preset %q default does not validate: %v", preset.ID, err)
		}
	}
}

// TestPresetCatalogReturnsCopies checks callers cannot mutate the shared
// preset lists.
func TestPresetCatalogReturnsCopies(t *testing.T) {
	first := presetCatalog()
	first.Formats[0].Name = "mutated"
	first.SampleRates[0] = -1

	second := presetCatalog()
	if second.Formats[0].Name == "mutated" {
		t.Fatal("format presets are shared between calls")
	}
	if second.SampleRates[0] == -1 {
		t.Fatal("sample rates are shared between calls")
	}
}
