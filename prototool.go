package prototool

import (
	_ "embed"
	"log/slog"
	"net/http"

	"github.com/fscs/prototool/internal/config"
	"github.com/fscs/prototool/internal/platform"
	"github.com/fscs/prototool/pkg/attendance"
	"github.com/fscs/prototool/pkg/core"
	"github.com/fscs/prototool/pkg/protokoll"
)

// Version is the release of the tool, embedded from the VERSION file.
//
//go:embed VERSION
var Version string

// --- Types ---

// Config is a public alias for the resolved configuration.
type Config = config.Config

// Generator is a public alias for the protocol generator.
type Generator = protokoll.Generator

// --- Configuration ---

// Option defines a functional option for wiring a Generator.
type Option = platform.Option

// WithLogger sets the logger handed to every component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithSource allows injecting a custom council API.
func WithSource(src core.Source) Option {
	return platform.WithSource(src)
}

// WithRepository allows injecting a custom document store.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithClipboard allows injecting a custom clipboard.
func WithClipboard(c core.Clipboard) Option {
	return platform.WithClipboard(c)
}

// WithPad allows injecting a custom pad client.
func WithPad(p core.Pad) Option {
	return platform.WithPad(p)
}

// WithSelector replaces the interactive attendance prompt.
func WithSelector(s attendance.Selector) Option {
	return platform.WithSelector(s)
}

// WithHTTPClient sets the client used for API and pad requests.
func WithHTTPClient(hc *http.Client) Option {
	return platform.WithHTTPClient(hc)
}

// WithWorkDir sets where the site root search starts.
func WithWorkDir(dir string) Option {
	return platform.WithWorkDir(dir)
}

// --- Factory ---

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return config.Defaults()
}

// New creates a Generator from cfg.
func New(cfg Config, opts ...Option) (*Generator, error) {
	return platform.New(cfg, opts...)
}
