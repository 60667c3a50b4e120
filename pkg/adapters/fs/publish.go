package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fscs/prototool/pkg/core"
)

// TempFilePrefix marks staged writes; List skips files carrying it.
const TempFilePrefix = "prototool-tmp-"

// publish makes content appear at target in one step: readers see the old document, the
// complete new one, or nothing. Without replace an existing target is left untouched and
// core.ErrTargetExists is returned, even if it appeared after the caller checked.
func publish(target string, content []byte, perm os.FileMode, replace bool) error {
	staged, err := stage(filepath.Dir(target), content, perm)
	if err != nil {
		return err
	}
	defer os.Remove(staged)

	if replace {
		if err := os.Rename(staged, target); err != nil {
			return fmt.Errorf("failed to replace %s: %w", target, err)
		}
		return nil
	}

	// A hard link never replaces its destination.
	err = os.Link(staged, target)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, os.ErrExist):
		return fmt.Errorf("%w: %s", core.ErrTargetExists, target)
	}

	// Filesystems without hard links: fall back to check-then-rename.
	if _, statErr := os.Lstat(target); statErr == nil {
		return fmt.Errorf("%w: %s", core.ErrTargetExists, target)
	}
	if err := os.Rename(staged, target); err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	return nil
}

// stage writes content to a synced temp file in dir, the same directory as the target so
// the final rename or link stays on one filesystem.
func stage(dir string, content []byte, perm os.FileMode) (string, error) {
	f, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return "", fmt.Errorf("failed to stage protokoll: %w", err)
	}
	name := f.Name()

	_, err = f.Write(content)
	if err == nil {
		err = f.Sync()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(name, perm)
	}
	if err != nil {
		os.Remove(name)
		return "", fmt.Errorf("failed to stage protokoll: %w", err)
	}
	return name, nil
}
