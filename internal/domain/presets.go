package domain

// FormatPreset describes one selectable output format and its
// format-specific parameter choices, used to populate UI dropdowns.
type FormatPreset struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Extension    string `json:"extension"`
	Description  string `json:"description,omitempty"`
	ParamName    string `json:"paramName,omitempty"`
	ParamValues  []int  `json:"paramValues,omitempty"`
	ParamUnit    string `json:"paramUnit,omitempty"`
	DefaultParam int    `json:"defaultParam,omitempty"`
}

// PresetCatalog groups every option list the conversion form offers.
type PresetCatalog struct {
	Formats     []FormatPreset `json:"formats"`
	SampleRates []int          `json:"sampleRates"`
}
