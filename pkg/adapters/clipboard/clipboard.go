// Package clipboard gives the pipeline text access to the OS clipboard.
//
// On X11 and Wayland the clipboard is owned by a process, and its content disappears once
// that process exits. Writes there are handed to a detached copy of the running binary
// (see Serve) which keeps the text available until another application takes the
// clipboard over.
package clipboard

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"golang.design/x/clipboard"

	"github.com/fscs/prototool/pkg/core"
)

// DaemonCommand is the hidden subcommand the detached copy is started with.
const DaemonCommand = "clipboard-daemon"

// backend is the part of golang.design/x/clipboard this package uses.
type backend interface {
	Init() error
	Read() []byte
	Write(data []byte) <-chan struct{}
}

type systemBackend struct{}

func (systemBackend) Init() error                       { return clipboard.Init() }
func (systemBackend) Read() []byte                      { return clipboard.Read(clipboard.FmtText) }
func (systemBackend) Write(data []byte) <-chan struct{} { return clipboard.Write(clipboard.FmtText, data) }

// System is the OS clipboard.
type System struct {
	logger  *slog.Logger
	backend backend
	detach  bool
	args    []string
	spawn   func(exe string, args []string, text string) (int, error)

	initOnce sync.Once

	mu          sync.Mutex
	initErr     error
	initialized bool
	detached    int
}

// Option configures a System.
type Option func(*System)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *System) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDetach overrides whether writes are handed to a background process.
// The default is true on Linux for a regular binary and false everywhere else.
func WithDetach(detach bool) Option {
	return func(s *System) {
		s.detach = detach
	}
}

// WithDaemonArgs sets the arguments the background process is started with.
// Defaults to []string{DaemonCommand}.
func WithDaemonArgs(args ...string) Option {
	return func(s *System) {
		s.args = args
	}
}

// New creates a clipboard adapter.
func New(opts ...Option) *System {
	s := &System{
		logger:  slog.Default(),
		backend: systemBackend{},
		detach:  detachSupported && !isTestBinary(),
		args:    []string{DaemonCommand},
		spawn:   detach,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *System) init() error {
	s.initOnce.Do(func() {
		err := s.backend.Init()

		s.mu.Lock()
		defer s.mu.Unlock()
		s.initialized = true
		if err != nil {
			s.initErr = fmt.Errorf("%w: %w", core.ErrClipboard, err)
		}
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initErr
}

// ReadText returns the text currently on the clipboard.
func (s *System) ReadText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := s.init(); err != nil {
		return "", err
	}
	return string(s.backend.Read()), nil
}

// WriteText puts text on the clipboard. With detaching enabled it returns once the
// background process reports that it owns the clipboard.
func (s *System) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.init(); err != nil {
		return err
	}

	if !s.detach {
		s.backend.Write([]byte(text))
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrClipboard, err)
	}
	pid, err := s.spawn(exe, s.args, text)
	if err != nil {
		return fmt.Errorf("%w: clipboard daemon: %w", core.ErrClipboard, err)
	}
	s.logger.Debug("clipboard handed to background process", "pid", pid)

	s.mu.Lock()
	s.detached++
	s.mu.Unlock()
	return nil
}

// isTestBinary reports whether we run inside `go test`, where re-executing ourselves would
// run the test suite again.
func isTestBinary() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}
	return strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe")
}

var _ core.Clipboard = (*System)(nil)
