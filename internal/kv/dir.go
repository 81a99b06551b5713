package kv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	directoryPerms = 0o755
	filePerms      = 0o600
	fileSuffix     = ".json"
)

// Compile-time interface checks.
var (
	_ Store = (*Dir)(nil)
	_ Sizer = (*Dir)(nil)
)

// Dir stores each key as a file below a base directory. Writes go through a
// temporary file and a rename so readers never observe a partial value.
type Dir struct {
	baseDir string
}

func NewDir(baseDir string) (*Dir, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolving base directory: %w", err)
	}
	if err := os.MkdirAll(abs, directoryPerms); err != nil {
		return nil, fmt.Errorf("creating base directory: %w", err)
	}
	return &Dir{baseDir: abs}, nil
}

// cleanPath maps key onto a file path that is guaranteed to stay inside
// baseDir.
func cleanPath(baseDir, key string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	full := filepath.Join(baseDir, filepath.FromSlash(key)+fileSuffix)
	rel, err := filepath.Rel(baseDir, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q escapes the base directory", ErrInvalidKey, key)
	}
	return full, nil
}

func (d *Dir) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := cleanPath(d.baseDir, key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return data, nil
}

func (d *Dir) Set(ctx context.Context, key string, value []byte) error {
	path, err := cleanPath(d.baseDir, key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), directoryPerms); err != nil {
		return fmt.Errorf("creating parent directories: %w", err)
	}

	file, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	tmp := file.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := file.Write(value); err != nil {
		_ = file.Close()
		return fmt.Errorf("writing file: %w", err)
	}
	if err := file.Chmod(filePerms); err != nil {
		_ = file.Close()
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing file: %w", err)
	}
	return nil
}

func (d *Dir) Delete(ctx context.Context, key string) error {
	path, err := cleanPath(d.baseDir, key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing file: %w", err)
	}
	return nil
}

// Usage sums the value files below the namespace directory. Temporary
// files of writes in flight are skipped.
func (d *Dir) Usage(ctx context.Context, namespace string) (int64, error) {
	if err := ValidateKey(namespace); err != nil {
		return 0, err
	}
	root := filepath.Join(d.baseDir, filepath.FromSlash(namespace))
	var total int64
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileSuffix) {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	} else if err != nil {
		return 0, fmt.Errorf("walking namespace: %w", err)
	}
	return total, nil
}
