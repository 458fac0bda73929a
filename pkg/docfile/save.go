package docfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Save writes f to path, as JSON for .json files and YAML otherwise. The
// write goes through a temporary file in the same directory so readers never
// see a partial document.
func Save(path string, f File) error {
	if path == "" {
		return errors.New("docfile: path is required")
	}
	data, err := Encode(f, FormatFromPath(path))
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".formbuilder-*")
	if err != nil {
		return fmt.Errorf("docfile: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("docfile: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("docfile: write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("docfile: chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("docfile: replace %s: %w", path, err)
	}
	return nil
}
