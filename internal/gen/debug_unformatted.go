package gen

import (
	"os"
	"path/filepath"
	"strings"
)

// UnformattedName is the sidecar name holding source that failed to format.
func UnformattedName(filename string) string {
	return strings.TrimSuffix(filename, ".go") + ".unformatted.go"
}

// writeDebugUnformatted writes unformatted code next to the intended output
// so the failure can be inspected. Best effort: errors are returned but
// never replace the formatting error.
func writeDebugUnformatted(dir, filename string, content []byte) error {
	if dir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, UnformattedName(filename)), content, filePerm)
}
