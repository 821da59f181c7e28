package convert

import (
	"path/filepath"
	"strings"
)

// Job describes the conversion of one input file. It is immutable once
// built; the engine never modifies it.
type Job struct {
	InputPath  string  `json:"inputPath"`
	OutputPath string  `json:"outputPath"`
	Options    Options `json:"-"`
}

// BuildJobs validates opts and produces one Job per input path. It has no
// side effects; destination directories are created at execution time.
func BuildJobs(inputs []string, opts Options) ([]Job, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	jobs := make([]Job, 0, len(inputs))
	for _, input := range inputs {
		if strings.TrimSpace(input) == "" {
			return nil, &ConfigError{Field: "input", Reason: "empty input path"}
		}
		jobs = append(jobs, Job{
			InputPath:  input,
			OutputPath: outputPath(input, opts),
			Options:    opts,
		})
	}
	return jobs, nil
}

// outputPath derives the destination from the source name and the target
// format extension. When the derived path would overwrite the source file
// itself, the name gains a "_processed" suffix instead.
func outputPath(input string, opts Options) string {
	base := filepath.Base(input)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	dir := opts.OutputDir
	if dir == "" {
		dir = filepath.Dir(input)
	}

	out := filepath.Join(dir, name+"."+opts.Format.Ext())
	if filepath.Clean(out) == filepath.Clean(input) {
		out = filepath.Join(dir, name+"_processed."+opts.Format.Ext())
	}
	return out
}
