package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// ErrNoGoMod is returned when no go.mod exists above the start directory.
var ErrNoGoMod = errors.New("go.mod file not found")

// FindGoMod searches for go.mod starting at startDir and walking up.
func FindGoMod(startDir string) (string, error) {
	dir := filepath.Clean(startDir)

	for {
		path := filepath.Join(dir, "go.mod")
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoGoMod
		}

		dir = parent
	}
}

// ModulePath returns the module path declared in a go.mod file.
func ModulePath(goModPath string) (string, error) {
	data, err := os.ReadFile(goModPath)
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod file: %w", err)
	}

	f, err := modfile.ParseLax(goModPath, data, nil)
	if err != nil {
		return "", fmt.Errorf("failed to parse go.mod file: %w", err)
	}

	if f.Module == nil {
		return "", fmt.Errorf("no module declaration found in %s", goModPath)
	}

	return f.Module.Mod.Path, nil
}
