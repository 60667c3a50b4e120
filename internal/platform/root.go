package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrRootNotFound is returned when no site root indicator exists above the start directory.
var ErrRootNotFound = errors.New("site root not found")

// rootIndicators mark the root of a site checkout.
var rootIndicators = []string{"hugo.toml", "hugo.yaml", "config.toml", ".git"}

// FindSiteRoot walks upwards from startDir and returns the first absolute directory holding
// one of the root indicators.
func FindSiteRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		for _, name := range rootIndicators {
			if hasFile(dir, name) {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", ErrRootNotFound
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
