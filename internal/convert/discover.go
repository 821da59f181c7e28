package convert

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Supported audio input extensions (lowercase, with leading dot).
var audioExtensions = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".flac": true,
	".aac":  true,
	".ogg":  true,
	".m4a":  true,
	".aiff": true,
	".opus": true,
	".wma":  true,
}

// IsAudioFile reports whether the path has a recognized audio extension.
func IsAudioFile(path string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(path))]
}

// Discover expands the given paths into a flat list of audio files.
// Directories are walked recursively; plain files are taken as-is so a user
// can force an unrecognized extension explicitly. The result is sorted for
// deterministic processing order.
func Discover(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && IsAudioFile(p) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}
