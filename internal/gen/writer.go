package gen

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFile writes one generated file under root, creating its directory.
// It returns the path written.
func WriteFile(file GeneratedFile, root string) (string, error) {
	path := file.Path(root)

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return "", fmt.Errorf("creating directory for %s: %w", file.Filename, err)
	}

	if err := os.WriteFile(path, file.Content, filePerm); err != nil {
		return "", fmt.Errorf("writing file %s: %w", file.Filename, err)
	}

	return path, nil
}

// WriteFiles writes all generated files under root.
func WriteFiles(files []GeneratedFile, root string) ([]string, error) {
	written := make([]string, 0, len(files))

	for _, f := range files {
		path, err := WriteFile(f, root)
		if err != nil {
			return written, err
		}

		written = append(written, path)
	}

	return written, nil
}

func joinPath(root, dir, name string) string {
	if filepath.IsAbs(dir) {
		return filepath.Join(dir, name)
	}

	return filepath.Join(root, dir, name)
}
