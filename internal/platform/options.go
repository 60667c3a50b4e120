package platform

import (
	"log/slog"
	"net/http"

	"github.com/fscs/prototool/pkg/attendance"
	"github.com/fscs/prototool/pkg/core"
)

// options holds what the factory may take instead of building it from the config.
type options struct {
	logger     *slog.Logger
	source     core.Source
	repository core.Repository
	clipboard  core.Clipboard
	pad        core.Pad
	selector   attendance.Selector
	httpClient *http.Client
	workDir    string
}

// Option defines a functional option for the factory.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		selector: attendance.PromptSelector{},
	}
}

// WithLogger sets the logger handed to every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSource injects the council API (e.g. a fake in tests).
func WithSource(src core.Source) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithRepository injects a custom document store.
// If provided, the filesystem store below the site root is skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithClipboard injects the clipboard.
func WithClipboard(c core.Clipboard) Option {
	return func(o *options) {
		o.clipboard = c
	}
}

// WithPad injects the pad client.
func WithPad(p core.Pad) Option {
	return func(o *options) {
		o.pad = p
	}
}

// WithSelector replaces the terminal prompt used for interactive attendance.
func WithSelector(s attendance.Selector) Option {
	return func(o *options) {
		o.selector = s
	}
}

// WithHTTPClient sets the client for API and pad requests. Defaults to http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithWorkDir sets where the site root search starts. Defaults to the working directory.
func WithWorkDir(dir string) Option {
	return func(o *options) {
		o.workDir = dir
	}
}
