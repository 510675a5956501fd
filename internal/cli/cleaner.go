package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"weakwrap-generator/internal/gen"
)

// Cleaner removes generated Go files.
type Cleaner struct {
	// Header identifies generated files. Empty means gen.DefaultHeader.
	Header string
	// DryRun lists the files without removing them.
	DryRun bool
}

// Clean removes generated files below the given directories. A pattern
// ending in "/..." is searched recursively. It returns the affected paths
// in lexical order.
func (c *Cleaner) Clean(patterns []string) ([]string, error) {
	var removed []string

	for _, pattern := range patterns {
		dir, recursive := strings.CutSuffix(pattern, "/...")
		if dir == "" {
			dir = "."
		}

		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}

		files, err := c.find(dir, recursive)
		if err != nil {
			return removed, fmt.Errorf("failed to clean directory %s: %w", dir, err)
		}

		for _, path := range files {
			if !c.DryRun {
				if err := os.Remove(path); err != nil {
					return removed, fmt.Errorf("removing %s: %w", path, err)
				}
			}

			removed = append(removed, path)
		}
	}

	sort.Strings(removed)

	return removed, nil
}

func (c *Cleaner) find(root string, recursive bool) ([]string, error) {
	var found []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == root {
				return nil
			}

			if !recursive || skipDir(d.Name()) {
				return filepath.SkipDir
			}

			return nil
		}

		if !strings.HasSuffix(path, ".go") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		if gen.IsGenerated(content, c.Header) {
			found = append(found, path)
		}

		return nil
	})

	return found, err
}

// skipDir reports whether the go tool ignores a directory.
func skipDir(name string) bool {
	return name == "vendor" || name == "testdata" ||
		strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}
