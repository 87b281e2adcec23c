package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// WriteText writes text to path atomically: the content goes to a temporary
// file in the same directory first, which is then renamed over path. An
// existing file keeps its mode; new files get 0o644.
func WriteText(path, text string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename over %s: %w", path, err)
	}
	return nil
}

// Transform rewrites path through fn under an advisory file lock, so
// concurrent transformations of the same file serialize instead of clobbering
// each other. The file is written (atomically) only when fn changed the
// text; the returned bool reports whether it did.
func Transform(path string, fn func(text string) (string, error)) (bool, error) {
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return false, fmt.Errorf("acquire lock for %s: %w", path, err)
	}
	// The lock file is left in place: unlinking it would let a waiter
	// holding the old inode and a newcomer on a fresh one both proceed.
	defer func() {
		_ = lock.Unlock()
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	text := string(data)

	out, err := fn(text)
	if err != nil {
		return false, err
	}
	if out == text {
		return false, nil
	}
	if err := WriteText(path, out); err != nil {
		return false, err
	}
	return true, nil
}
