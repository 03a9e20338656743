package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DropIns returns one Source per supported configuration file in dir, in
// lexicographic order of file name. Subdirectories and files with unknown
// extensions are skipped. A missing directory yields no sources.
func DropIns(dir string) ([]Source, error) {
	paths, err := findDropInFiles(dir)
	if err != nil {
		return nil, err
	}

	sources := make([]Source, 0, len(paths))
	for _, path := range paths {
		s, err := ForPath(path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, s)
	}

	return sources, nil
}

// findDropInFiles finds and returns sorted paths to drop-in configuration files.
// Returns nil if the drop-in directory doesn't exist (not an error).
func findDropInFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read drop-in directory %s: %w", dir, err)
	}

	var filenames []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := extensions[strings.ToLower(filepath.Ext(entry.Name()))]; ok {
			filenames = append(filenames, filepath.Join(dir, entry.Name()))
		}
	}

	// Sort lexicographically
	sort.Strings(filenames)

	return filenames, nil
}
