package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// DataDir returns dir, or the directory name under the system temp
// directory when dir is empty.
func DataDir(dir, name string) string {
	if dir != "" {
		return dir
	}
	return filepath.Join(os.TempDir(), name)
}

// EnsureDir creates a directory and all parent directories if they don't
// exist, with mode 0755. Returns nil if the directory already exists.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}

// EnsureWritableDir is EnsureDir followed by a probe write, so that a
// read-only directory is reported before any real file is written.
func EnsureWritableDir(path string) error {
	if err := EnsureDir(path); err != nil {
		return err
	}
	probe, err := os.CreateTemp(path, ".probe-*")
	if err != nil {
		return fmt.Errorf("directory %s is not writable: %w", path, err)
	}
	name := probe.Name()
	_ = probe.Close()
	if err := os.Remove(name); err != nil {
		return fmt.Errorf("remove probe %s: %w", name, err)
	}
	return nil
}
