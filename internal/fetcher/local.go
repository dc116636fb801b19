package fetcher

import (
	"fmt"
	"os"
	"path/filepath"

	"treeprobe/internal/errors"
)

// LocalFetcher serves a tree from a local directory, e.g. a mounted ISO.
type LocalFetcher struct {
	root string
}

func (f *LocalFetcher) Location() string {
	return f.root
}

func (f *LocalFetcher) HasFile(relpath string) bool {
	info, err := os.Stat(filepath.Join(f.root, relpath))
	return err == nil && !info.IsDir()
}

func (f *LocalFetcher) AcquireFileContent(relpath string) (string, error) {
	data, err := os.ReadFile(filepath.Join(f.root, relpath))
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%s: %w", relpath, ErrNotFound)
	}
	if err != nil {
		return "", errors.EPath("read", relpath, err)
	}
	return string(data), nil
}

// AcquireFile returns the file in place; local trees need no copy.
func (f *LocalFetcher) AcquireFile(relpath string) (string, error) {
	full := filepath.Join(f.root, relpath)
	if !f.HasFile(relpath) {
		return "", fmt.Errorf("%s: %w", relpath, ErrNotFound)
	}
	return full, nil
}

func (f *LocalFetcher) CanAccess() bool {
	info, err := os.Stat(f.root)
	return err == nil && info.IsDir()
}
