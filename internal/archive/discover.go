package archive

import (
	"os"
	"path/filepath"
	"strings"
)

// Discover lists the zip archives directly inside dir, sorted by name.
// Subdirectories and files with other extensions are ignored.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var archives []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ".zip") {
			continue
		}
		archives = append(archives, filepath.Join(dir, entry.Name()))
	}
	return archives, nil
}
