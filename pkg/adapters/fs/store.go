// Package fs stores protokolle below a content directory on the local filesystem.
package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/fscs/prototool/pkg/core"
	"github.com/fscs/prototool/pkg/frontmatter"
)

// ListPattern matches every stored protokoll relative to the store root.
const ListPattern = "protokolle/**/*protokoll.md"

// Store implements core.Repository on a directory, usually <site>/content/<lang>.
type Store struct {
	Root   string
	logger *slog.Logger

	mu        sync.RWMutex
	writes    int
	lastWrite *time.Time
	lastPath  string
}

// NewStore creates a store rooted at root. The directory is created on first write.
func NewStore(root string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{Root: root, logger: logger}
}

// Save writes content to rel below the root, creating parent directories as needed.
// An existing target is only replaced when force is set.
func (s *Store) Save(ctx context.Context, rel string, content []byte, force bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	target, err := s.resolve(rel)
	if err != nil {
		return "", err
	}

	// Early answer for the common case; publish enforces it again.
	if _, err := os.Stat(target); err == nil {
		if !force {
			return "", fmt.Errorf("%w: %w: %s", core.ErrFilesystem, core.ErrTargetExists, target)
		}
		s.logger.Debug("overwriting existing protokoll", "path", target)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %w", core.ErrFilesystem, err)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", fmt.Errorf("%w: failed to create directory: %w", core.ErrFilesystem, err)
	}

	if err := publish(target, content, 0644, force); err != nil {
		return "", fmt.Errorf("%w: %w", core.ErrFilesystem, err)
	}

	s.recordWrite(target)
	return target, nil
}

// Read returns the document stored at rel.
func (s *Store) Read(ctx context.Context, rel string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target, err := s.resolve(rel)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", core.ErrNotFound, rel)
		}
		return nil, fmt.Errorf("%w: %w", core.ErrFilesystem, err)
	}
	return data, nil
}

// Entry is a stored protokoll as seen by List.
type Entry struct {
	// Path is relative to the store root, slash separated.
	Path string
	Date time.Time
	Kind core.MeetingKind
	// Err is set when the frontmatter could not be recovered; Date and Kind are then zero.
	Err error
}

// List enumerates the stored protokolle sorted by path. A missing root yields no entries.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	if _, err := os.Stat(s.Root); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	matches, err := doublestar.Glob(os.DirFS(s.Root), ListPattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrFilesystem, err)
	}
	sort.Strings(matches)

	entries := make([]Entry, 0, len(matches))
	for _, rel := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if strings.HasPrefix(path.Base(rel), TempFilePrefix) {
			continue
		}

		entry := Entry{Path: rel}
		data, err := s.Read(ctx, rel)
		if err != nil {
			entry.Err = err
		} else if rec, err := frontmatter.Recover(string(data)); err != nil {
			entry.Err = err
		} else {
			entry.Date, entry.Kind = rec.Date, rec.Kind
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// resolve maps a slash separated path below the root to a filesystem path.
func (s *Store) resolve(rel string) (string, error) {
	local := filepath.FromSlash(rel)
	if !filepath.IsLocal(local) {
		return "", fmt.Errorf("%w: path %q escapes %s", core.ErrFilesystem, rel, s.Root)
	}
	return filepath.Join(s.Root, local), nil
}

func (s *Store) recordWrite(target string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.writes++
	s.lastWrite = &now
	s.lastPath = target
}

var _ core.Repository = (*Store)(nil)

func dirExists(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}
