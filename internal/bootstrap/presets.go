package bootstrap

import (
	"audio-converter/internal/convert"
	"audio-converter/internal/domain"
)

// formatPresets lists the selectable output formats and their
// format-specific parameter choices shown in the conversion form.
var formatPresets = []domain.FormatPreset{
	{
		ID:           "wav",
		Name:         "WAV (PCM)",
		Extension:    "wav",
		Description:  "Uncompressed PCM audio.",
		ParamName:    "Bit depth",
		ParamValues:  convert.WavBitDepths,
		ParamUnit:    "bit",
		DefaultParam: 16,
	},
	{
		ID:           "mp3",
		Name:         "MP3",
		Extension:    "mp3",
		Description:  "Lossy compression via LAME.",
		ParamName:    "Bitrate",
		ParamValues:  convert.MP3BitratesKbps,
		ParamUnit:    "kbps",
		DefaultParam: 192,
	},
	{
		ID:           "flac",
		Name:         "FLAC",
		Extension:    "flac",
		Description:  "Lossless compression.",
		ParamName:    "Compression level",
		ParamValues:  []int{0, 1, 2, 3, 4, 5, 6, 7, 8},
		DefaultParam: 5,
	},
}

// presetCatalog assembles every option list the conversion form offers.
func presetCatalog() domain.PresetCatalog {
	formats := make([]domain.FormatPreset, len(formatPresets))
	copy(formats, formatPresets)

	rates := make([]int, len(convert.SampleRates))
	copy(rates, convert.SampleRates)

	return domain.PresetCatalog{
		Formats:     formats,
		SampleRates: rates,
	}
}
